package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/onedayhr/crm-api/internal/entity"
	"github.com/onedayhr/crm-api/internal/infra/integration/telegram"
	"github.com/onedayhr/crm-api/internal/usecase"
)

func jsonRequest(method, target, body string) *http.Request {
	r := httptest.NewRequest(method, target, bytes.NewBufferString(body))
	r.Header.Set("Content-Type", "application/json")
	return r
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func withURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func TestWriteFailure_Mapping(t *testing.T) {
	cases := []struct {
		err    error
		status int
		msg    string
	}{
		{usecase.NewDomainError(usecase.CodeUnauthorized, "Authentication required"), 401, "Authentication required"},
		{usecase.NewDomainError(usecase.CodeForbidden, "No permission to generate invites"), 403, "No permission to generate invites"},
		{usecase.NewDomainError(usecase.CodeInvalidToken, "Token has expired"), 400, "Token has expired"},
		{usecase.NewDomainError(usecase.CodeNotFound, "Lead not found"), 404, "Lead not found"},
		{entity.ErrLastStage, 400, "Cannot delete the last remaining stage"},
		{entity.ErrLeadNotFound, 404, "Lead not found"},
		{&usecase.TechnicalError{Code: usecase.CodeDatabase, Message: "failed to save lead", Err: errors.New("conn reset")}, 500, "failed to save lead"},
		{errors.New("boom"), 500, "Database error"},
	}

	for _, c := range cases {
		w := httptest.NewRecorder()
		writeFailure(w, "TEST", c.err)
		assert.Equal(t, c.status, w.Code, c.msg)
		body := decode(t, w)
		assert.Equal(t, false, body["success"])
		assert.Equal(t, c.msg, body["error"])
	}
}

func TestCaptureHandler_Validation(t *testing.T) {
	repo := new(MockLeadRepository)
	h := NewCaptureHandler(&usecase.CaptureLeadUseCase{Repo: repo})

	w := httptest.NewRecorder()
	h.Handle(w, jsonRequest(http.MethodPost, "/capture", `{"name":"  ","phone":"+7900"}`))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decode(t, w)["error"], "name is required")
	repo.AssertNotCalled(t, "CreateOnFirstStage", mock.Anything, mock.Anything)
}

func TestCaptureHandler_Success(t *testing.T) {
	repo := new(MockLeadRepository)
	repo.On("CreateOnFirstStage", mock.Anything, mock.MatchedBy(func(l *entity.Lead) bool {
		return l.Name == "Anna" && l.Source == entity.SourceMainForm
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*entity.Lead).ID = 12
	}).Return(nil)

	w := httptest.NewRecorder()
	NewCaptureHandler(&usecase.CaptureLeadUseCase{Repo: repo}).
		Handle(w, jsonRequest(http.MethodPost, "/capture", `{"name":"Anna","phone":"+7900"}`))

	assert.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, float64(12), body["lead_id"])
	assert.Equal(t, "Request submitted successfully", body["message"])
}

func TestLeadHandler_CreateDefaults(t *testing.T) {
	leads := new(MockLeadRepository)
	leads.On("Create", mock.Anything, mock.MatchedBy(func(l *entity.Lead) bool {
		return l.Source == entity.SourceManual && l.Priority == entity.PriorityMedium && l.Email == nil
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*entity.Lead).ID = 5
	}).Return(nil)

	h := &LeadHandler{Leads: leads}
	w := httptest.NewRecorder()
	h.Create(w, jsonRequest(http.MethodPost, "/leads", `{"name":"Anna","phone":"+7900","email":""}`))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(5), decode(t, w)["lead_id"])
}

func TestLeadHandler_CreateRejectsBadPriority(t *testing.T) {
	h := &LeadHandler{Leads: new(MockLeadRepository)}
	w := httptest.NewRecorder()
	h.Create(w, jsonRequest(http.MethodPost, "/leads", `{"name":"Anna","phone":"1","priority":"urgent"}`))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decode(t, w)["error"], "priority")
}

func TestLeadHandler_ListBoard(t *testing.T) {
	leads := new(MockLeadRepository)
	stages := new(MockStageRepository)
	stageID := int64(2)
	leads.On("List", mock.Anything, entity.LeadFilter{StageID: &stageID, Limit: 10}).
		Return([]entity.Lead{{ID: 1, Name: "Anna"}}, nil)
	stages.On("List", mock.Anything).Return([]entity.Stage{{ID: 2, Name: "New lead"}}, nil)

	h := &LeadHandler{Leads: leads, Stages: stages}
	w := httptest.NewRecorder()
	h.List(w, httptest.NewRequest(http.MethodGet, "/leads?stage_id=2&limit=10", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, float64(1), body["total"])
	assert.Len(t, body["stages"], 1)
}

func TestLeadHandler_DetailsNotFound(t *testing.T) {
	leads := new(MockLeadRepository)
	leads.On("FindByID", mock.Anything, int64(99)).Return(nil, entity.ErrLeadNotFound)

	h := &LeadHandler{Leads: leads}
	w := httptest.NewRecorder()
	h.List(w, httptest.NewRequest(http.MethodGet, "/leads?id=99", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Lead not found", decode(t, w)["error"])
}

func TestLeadHandler_DetailsNestsActivity(t *testing.T) {
	leads := new(MockLeadRepository)
	tasks := new(MockTaskRepository)
	comments := new(MockCommentRepository)
	calls := new(MockCallRepository)

	older := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	leads.On("FindByID", mock.Anything, int64(1)).Return(&entity.Lead{ID: 1, Name: "Anna"}, nil)
	tasks.On("ListByLead", mock.Anything, int64(1)).Return([]entity.Task{
		{ID: 10, CreatedAt: older},
		{ID: 11, CreatedAt: older.Add(time.Hour)},
	}, nil)
	comments.On("ListByLead", mock.Anything, int64(1)).Return(nil, nil)
	calls.On("ListByLead", mock.Anything, int64(1)).Return([]entity.Call{{ID: 3}}, nil)

	h := &LeadHandler{Leads: leads, Tasks: tasks, Comments: comments, Calls: calls}
	w := httptest.NewRecorder()
	h.List(w, httptest.NewRequest(http.MethodGet, "/leads?id=1", nil))

	require.Equal(t, http.StatusOK, w.Code)
	lead := decode(t, w)["lead"].(map[string]any)
	assert.Equal(t, "Anna", lead["name"])
	taskList := lead["tasks"].([]any)
	assert.Equal(t, float64(11), taskList[0].(map[string]any)["id"])
	assert.Equal(t, []any{}, lead["comments"])
	assert.Len(t, lead["calls"], 1)
}

func TestLeadHandler_PatchNullClearsField(t *testing.T) {
	leads := new(MockLeadRepository)
	leads.On("Patch", mock.Anything, int64(4), mock.MatchedBy(func(p entity.LeadPatch) bool {
		return p.Company.Set && p.Company.Null && !p.Name.Set
	})).Return(nil)

	h := &LeadHandler{Leads: leads}
	w := httptest.NewRecorder()
	h.Patch(w, jsonRequest(http.MethodPatch, "/leads", `{"id":4,"company":null}`))

	assert.Equal(t, http.StatusOK, w.Code)
	leads.AssertExpectations(t)
}

func TestLeadHandler_PatchRequiresID(t *testing.T) {
	h := &LeadHandler{Leads: new(MockLeadRepository)}
	w := httptest.NewRecorder()
	h.Patch(w, jsonRequest(http.MethodPatch, "/leads", `{"name":"x"}`))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Lead ID required", decode(t, w)["error"])
}

func TestLeadHandler_Delete(t *testing.T) {
	leads := new(MockLeadRepository)
	leads.On("Delete", mock.Anything, int64(8)).Return(entity.ErrLeadNotFound)

	h := &LeadHandler{Leads: leads}
	w := httptest.NewRecorder()
	h.Delete(w, withURLParam(httptest.NewRequest(http.MethodDelete, "/leads/8", nil), "id", "8"))

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestStageHandler_DeleteLastStage(t *testing.T) {
	stages := new(MockStageRepository)
	stages.On("Delete", mock.Anything, int64(1)).Return(entity.ErrLastStage)

	h := &StageHandler{Stages: stages}
	w := httptest.NewRecorder()
	h.Delete(w, withURLParam(httptest.NewRequest(http.MethodDelete, "/stages/1", nil), "id", "1"))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestStageHandler_CreateDefaultsColor(t *testing.T) {
	stages := new(MockStageRepository)
	stages.On("Create", mock.Anything, mock.MatchedBy(func(s *entity.Stage) bool {
		return s.Name == "Interview" && s.Color == entity.DefaultStageColor
	}), (*int)(nil)).Run(func(args mock.Arguments) {
		args.Get(1).(*entity.Stage).ID = 6
	}).Return(nil)

	h := &StageHandler{Stages: stages}
	w := httptest.NewRecorder()
	h.Create(w, jsonRequest(http.MethodPost, "/stages", `{"name":"Interview"}`))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(6), decode(t, w)["stage_id"])
}

func TestParseDueDate(t *testing.T) {
	for _, s := range []string{"2026-03-10T09:30:00Z", "2026-03-10T09:30", "2026-03-10T09:30:15", "2026-03-10"} {
		got, err := ParseDueDate(s)
		require.NoError(t, err, s)
		require.NotNil(t, got)
		assert.Equal(t, 10, got.Day())
	}

	got, err := ParseDueDate("")
	assert.NoError(t, err)
	assert.Nil(t, got)

	_, err = ParseDueDate("10/03/2026")
	assert.Error(t, err)
}

func TestTaskHandler_PatchDefaultsToCompleted(t *testing.T) {
	tasks := new(MockTaskRepository)
	tasks.On("Patch", mock.Anything, int64(3), mock.MatchedBy(func(p entity.TaskPatch) bool {
		return p.Completed.Set && p.Completed.Value && !p.Title.Set
	})).Return(nil)

	h := &TaskHandler{Tasks: tasks}
	w := httptest.NewRecorder()
	h.Patch(w, jsonRequest(http.MethodPatch, "/tasks", `{"id":3}`))

	assert.Equal(t, http.StatusOK, w.Code)
	tasks.AssertExpectations(t)
}

func TestTaskHandler_PatchClearsDueDate(t *testing.T) {
	tasks := new(MockTaskRepository)
	tasks.On("Patch", mock.Anything, int64(3), mock.MatchedBy(func(p entity.TaskPatch) bool {
		return p.DueDate.Set && p.DueDate.Null && !p.Completed.Set
	})).Return(nil)

	h := &TaskHandler{Tasks: tasks}
	w := httptest.NewRecorder()
	h.Patch(w, jsonRequest(http.MethodPatch, "/tasks", `{"id":3,"due_date":null}`))

	assert.Equal(t, http.StatusOK, w.Code)
	tasks.AssertExpectations(t)
}

func TestTaskHandler_CreateAndList(t *testing.T) {
	tasks := new(MockTaskRepository)
	tasks.On("Create", mock.Anything, mock.MatchedBy(func(task *entity.Task) bool {
		return task.LeadID == 1 && task.Priority == entity.PriorityMedium && task.DueDate != nil
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*entity.Task).ID = 9
	}).Return(nil)
	tasks.On("ListByLead", mock.Anything, int64(1)).Return(nil, nil)

	h := &TaskHandler{Tasks: tasks}

	w := httptest.NewRecorder()
	h.Create(w, jsonRequest(http.MethodPost, "/tasks", `{"lead_id":1,"title":"Call back","due_date":"2026-03-11"}`))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(9), decode(t, w)["task_id"])

	w = httptest.NewRecorder()
	h.List(w, httptest.NewRequest(http.MethodGet, "/tasks?lead_id=1", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []any{}, decode(t, w)["tasks"])

	w = httptest.NewRecorder()
	h.List(w, httptest.NewRequest(http.MethodGet, "/tasks", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "lead_id required", decode(t, w)["error"])
}

func TestCommentHandler_DefaultAuthor(t *testing.T) {
	comments := new(MockCommentRepository)
	comments.On("Create", mock.Anything, mock.MatchedBy(func(c *entity.Comment) bool {
		return c.AuthorName == entity.DefaultCommentAuthor && c.Text == "Interested"
	})).Return(nil)

	h := &CommentHandler{Comments: comments}
	w := httptest.NewRecorder()
	h.Create(w, jsonRequest(http.MethodPost, "/comments", `{"lead_id":1,"text":" Interested "}`))

	assert.Equal(t, http.StatusOK, w.Code)
	comments.AssertExpectations(t)
}

func TestCallHandler_WebhookMatchesLeadByPhone(t *testing.T) {
	leads := new(MockLeadRepository)
	calls := new(MockCallRepository)
	leads.On("FindIDByPhone", mock.Anything, "+7900").Return(int64(4), nil)
	calls.On("Create", mock.Anything, mock.MatchedBy(func(c *entity.Call) bool {
		return c.LeadID == 4 && c.Direction == entity.DirectionInbound &&
			c.Status == entity.CallStatusCompleted && c.Duration == 42 && *c.ExternalID == "m-1"
	})).Return(nil)

	h := &CallHandler{Calls: calls, Leads: leads}
	w := httptest.NewRecorder()
	h.Webhook(w, jsonRequest(http.MethodPost, "/calls/webhook",
		`{"call":{"to":"+7900","direction":"inbound","duration":42,"call_id":"m-1"}}`))

	assert.Equal(t, http.StatusOK, w.Code)
	calls.AssertExpectations(t)
}

func TestCallHandler_WebhookUnknownPhone(t *testing.T) {
	leads := new(MockLeadRepository)
	leads.On("FindIDByPhone", mock.Anything, "+7000").Return(int64(0), entity.ErrLeadNotFound)

	h := &CallHandler{Calls: new(MockCallRepository), Leads: leads}
	w := httptest.NewRecorder()
	h.Webhook(w, jsonRequest(http.MethodPost, "/calls/webhook", `{"call":{"to":"+7000"}}`))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCallHandler_CreateOutbound(t *testing.T) {
	calls := new(MockCallRepository)
	calls.On("Create", mock.Anything, mock.MatchedBy(func(c *entity.Call) bool {
		return c.Direction == entity.DirectionOutbound && c.Status == entity.CallStatusInitiated
	})).Return(nil)

	h := &CallHandler{Calls: calls}
	w := httptest.NewRecorder()
	h.Create(w, jsonRequest(http.MethodPost, "/calls", `{"lead_id":1,"phone":"+7900"}`))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	h.Create(w, jsonRequest(http.MethodPost, "/calls", `{"lead_id":1}`))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "lead_id and phone required", decode(t, w)["error"])
}

func TestNotificationHandler_OverdueTask(t *testing.T) {
	now := time.Date(2026, 3, 10, 15, 30, 0, 0, time.UTC)
	source := new(MockNotificationSource)
	source.On("DueTasks", mock.Anything, mock.Anything).Return([]entity.DueTask{{
		ID: 1, Title: "Send offer", DueDate: now.AddDate(0, 0, -1), Priority: entity.PriorityHigh, LeadID: 2, LeadName: "Anna",
	}}, nil)

	h := &NotificationHandler{Service: &usecase.NotificationService{Source: source, Now: func() time.Time { return now }}}
	w := httptest.NewRecorder()
	h.List(w, httptest.NewRequest(http.MethodGet, "/notifications?type=tasks", nil))

	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, float64(1), body["total"])
	assert.Equal(t, float64(1), body["unread"])
	n := body["notifications"].([]any)[0].(map[string]any)
	assert.Equal(t, "overdue", n["urgency"])
	assert.Contains(t, n["title"], "1 day")
	source.AssertNotCalled(t, "StaleLeadCandidates", mock.Anything, mock.Anything, mock.Anything)
}

func TestNotificationHandler_UnknownType(t *testing.T) {
	h := &NotificationHandler{Service: usecase.NewNotificationService(new(MockNotificationSource))}
	w := httptest.NewRecorder()
	h.List(w, httptest.NewRequest(http.MethodGet, "/notifications?type=calls", nil))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestNotificationHandler_StoreFailure(t *testing.T) {
	source := new(MockNotificationSource)
	source.On("DueTasks", mock.Anything, mock.Anything).Return(nil, errors.New("connection refused"))

	h := &NotificationHandler{Service: usecase.NewNotificationService(source)}
	w := httptest.NewRecorder()
	h.List(w, httptest.NewRequest(http.MethodGet, "/notifications", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestAIHandler_NotConfigured(t *testing.T) {
	h := &AIHandler{Service: &usecase.AssistantService{}}

	w := httptest.NewRecorder()
	h.Handle(w, jsonRequest(http.MethodPost, "/ai", `{"lead_id":1}`))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "OPENAI_API_KEY not configured", decode(t, w)["error"])

	w = httptest.NewRecorder()
	h.Insights(w, httptest.NewRequest(http.MethodGet, "/ai/insights?lead_id=1", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestExportHandler_JSON(t *testing.T) {
	repo := new(MockExportRepository)
	repo.On("Rows", mock.Anything, mock.MatchedBy(func(f entity.ExportFilter) bool {
		return f.Priority == "high" && f.DateFrom != nil && f.DateTo != nil && f.DateTo.Hour() == 23
	})).Return(nil, nil)

	h := &ExportHandler{Service: &usecase.ExportService{Repo: repo}}
	w := httptest.NewRecorder()
	h.Handle(w, httptest.NewRequest(http.MethodGet, "/export?priority=high&date_from=2026-03-01&date_to=2026-03-10", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, []any{}, body["leads"])
	assert.Equal(t, float64(0), body["total"])
}

func TestExportHandler_ExcelWithoutRenderer(t *testing.T) {
	repo := new(MockExportRepository)
	repo.On("Rows", mock.Anything, mock.Anything).Return([]entity.ExportRow{{Lead: entity.Lead{ID: 1}}}, nil)

	h := &ExportHandler{Service: &usecase.ExportService{Repo: repo}}
	w := httptest.NewRecorder()
	h.Handle(w, httptest.NewRequest(http.MethodGet, "/export?format=excel", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, `attachment; filename="leads_export.xlsx"`, w.Header().Get("Content-Disposition"))
	assert.Equal(t, usecase.ExportFailedMarker, w.Body.String())
}

type stubRenderer struct{}

func (stubRenderer) Render([]entity.ExportRow) ([]byte, error) { return []byte("PK\x03\x04"), nil }

func TestExportHandler_Excel(t *testing.T) {
	repo := new(MockExportRepository)
	repo.On("Rows", mock.Anything, mock.Anything).Return([]entity.ExportRow{}, nil)

	h := &ExportHandler{Service: &usecase.ExportService{Repo: repo, Renderer: stubRenderer{}}}
	w := httptest.NewRecorder()
	h.Handle(w, httptest.NewRequest(http.MethodPost, "/export?format=excel", nil))

	assert.Equal(t, xlsxContentType, w.Header().Get("Content-Type"))
	assert.Equal(t, "PK\x03\x04", w.Body.String())
}

func TestExportHandler_BadStage(t *testing.T) {
	h := &ExportHandler{Service: &usecase.ExportService{Repo: new(MockExportRepository)}}
	w := httptest.NewRecorder()
	h.Handle(w, httptest.NewRequest(http.MethodGet, "/export?stage_id=abc", nil))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAuthHandler_GenerateInviteRequiresHeader(t *testing.T) {
	h := &AuthHandler{Service: &usecase.AuthService{}}
	w := httptest.NewRecorder()
	h.GenerateInvite(w, jsonRequest(http.MethodPost, "/auth/invites", `{}`))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Authentication required", decode(t, w)["error"])
}

func TestDecodeBody_InvalidJSON(t *testing.T) {
	h := &AuthHandler{Service: &usecase.AuthService{}}
	w := httptest.NewRecorder()
	h.Login(w, jsonRequest(http.MethodPost, "/auth/login", `{"email":`))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid JSON", decode(t, w)["error"])
}

type fakeMessenger struct {
	got telegram.LeadMessage
	err error
}

func (f *fakeMessenger) SendLead(_ context.Context, m telegram.LeadMessage) error {
	f.got = m
	return f.err
}

func TestTelegramHandler(t *testing.T) {
	w := httptest.NewRecorder()
	(&TelegramHandler{}).Notify(w, jsonRequest(http.MethodPost, "/telegram/notify", `{}`))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Telegram credentials not configured", decode(t, w)["error"])

	m := &fakeMessenger{}
	w = httptest.NewRecorder()
	(&TelegramHandler{Messenger: m}).Notify(w, jsonRequest(http.MethodPost, "/telegram/notify", `{"name":"Anna","phone":"1"}`))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Anna", m.got.Name)

	w = httptest.NewRecorder()
	(&TelegramHandler{Messenger: &fakeMessenger{err: errors.New("chat not found")}}).
		Notify(w, jsonRequest(http.MethodPost, "/telegram/notify", `{}`))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

type fakePinger struct{ err error }

func (f fakePinger) PingContext(context.Context) error { return f.err }

func TestHealthHandler(t *testing.T) {
	h := NewHealthHandler(fakePinger{})
	h.Checks["rabbitmq"] = nil
	h.Upstreams["openai"] = true

	w := httptest.NewRecorder()
	h.Handle(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	var resp HealthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "healthy", resp.Status)
	assert.Equal(t, "not configured", resp.Dependencies["rabbitmq"])
	assert.Equal(t, "configured", resp.Dependencies["openai"])

	h = NewHealthHandler(fakePinger{err: errors.New("refused")})
	w = httptest.NewRecorder()
	h.Handle(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
