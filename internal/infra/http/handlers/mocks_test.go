package handlers

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/onedayhr/crm-api/internal/entity"
)

type MockLeadRepository struct{ mock.Mock }

func (m *MockLeadRepository) Create(ctx context.Context, lead *entity.Lead) error {
	args := m.Called(ctx, lead)
	return args.Error(0)
}

func (m *MockLeadRepository) CreateOnFirstStage(ctx context.Context, lead *entity.Lead) error {
	args := m.Called(ctx, lead)
	return args.Error(0)
}

func (m *MockLeadRepository) FindByID(ctx context.Context, id int64) (*entity.Lead, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Lead), args.Error(1)
}

func (m *MockLeadRepository) FindIDByPhone(ctx context.Context, phone string) (int64, error) {
	args := m.Called(ctx, phone)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockLeadRepository) List(ctx context.Context, filter entity.LeadFilter) ([]entity.Lead, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Lead), args.Error(1)
}

func (m *MockLeadRepository) Replace(ctx context.Context, lead *entity.Lead) error {
	args := m.Called(ctx, lead)
	return args.Error(0)
}

func (m *MockLeadRepository) Patch(ctx context.Context, id int64, patch entity.LeadPatch) error {
	args := m.Called(ctx, id, patch)
	return args.Error(0)
}

func (m *MockLeadRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockStageRepository struct{ mock.Mock }

func (m *MockStageRepository) List(ctx context.Context) ([]entity.Stage, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Stage), args.Error(1)
}

func (m *MockStageRepository) Create(ctx context.Context, stage *entity.Stage, position *int) error {
	args := m.Called(ctx, stage, position)
	return args.Error(0)
}

func (m *MockStageRepository) Patch(ctx context.Context, id int64, patch entity.StagePatch) error {
	args := m.Called(ctx, id, patch)
	return args.Error(0)
}

func (m *MockStageRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockTaskRepository struct{ mock.Mock }

func (m *MockTaskRepository) ListByLead(ctx context.Context, leadID int64) ([]entity.Task, error) {
	args := m.Called(ctx, leadID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Task), args.Error(1)
}

func (m *MockTaskRepository) Create(ctx context.Context, task *entity.Task) error {
	args := m.Called(ctx, task)
	return args.Error(0)
}

func (m *MockTaskRepository) Patch(ctx context.Context, id int64, patch entity.TaskPatch) error {
	args := m.Called(ctx, id, patch)
	return args.Error(0)
}

type MockCommentRepository struct{ mock.Mock }

func (m *MockCommentRepository) ListByLead(ctx context.Context, leadID int64) ([]entity.Comment, error) {
	args := m.Called(ctx, leadID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Comment), args.Error(1)
}

func (m *MockCommentRepository) Create(ctx context.Context, c *entity.Comment) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

type MockCallRepository struct{ mock.Mock }

func (m *MockCallRepository) ListByLead(ctx context.Context, leadID int64) ([]entity.Call, error) {
	args := m.Called(ctx, leadID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Call), args.Error(1)
}

func (m *MockCallRepository) Create(ctx context.Context, c *entity.Call) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

type MockNotificationSource struct{ mock.Mock }

func (m *MockNotificationSource) DueTasks(ctx context.Context, until time.Time) ([]entity.DueTask, error) {
	args := m.Called(ctx, until)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.DueTask), args.Error(1)
}

func (m *MockNotificationSource) StaleLeadCandidates(ctx context.Context, maxStageID int64, limit int) ([]entity.LeadActivity, error) {
	args := m.Called(ctx, maxStageID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.LeadActivity), args.Error(1)
}

type MockExportRepository struct{ mock.Mock }

func (m *MockExportRepository) Rows(ctx context.Context, f entity.ExportFilter) ([]entity.ExportRow, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.ExportRow), args.Error(1)
}
