package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/onedayhr/crm-api/internal/entity"
	"github.com/onedayhr/crm-api/internal/usecase"
)

const (
	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	exportFilename  = "leads_export.xlsx"
)

type ExportHandler struct {
	Service *usecase.ExportService
}

func parseExportDate(raw string, endOfDay bool) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return &t, nil
	}
	t, err := time.ParseInLocation(time.DateOnly, raw, time.Local)
	if err != nil {
		return nil, err
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return &t, nil
}

func exportFilter(r *http.Request) (entity.ExportFilter, string) {
	q := r.URL.Query()
	f := entity.ExportFilter{
		Priority: strings.TrimSpace(q.Get("priority")),
		Source:   strings.TrimSpace(q.Get("source")),
	}

	stageID, ok, err := queryID(r, "stage_id")
	if err != nil {
		return f, err.Error()
	}
	if ok {
		f.StageID = &stageID
	}

	if f.DateFrom, err = parseExportDate(q.Get("date_from"), false); err != nil {
		return f, "date_from must be YYYY-MM-DD or RFC3339"
	}
	if f.DateTo, err = parseExportDate(q.Get("date_to"), true); err != nil {
		return f, "date_to must be YYYY-MM-DD or RFC3339"
	}
	return f, ""
}

// Handle returns JSON rows, or an .xlsx attachment with format=excel.
func (h *ExportHandler) Handle(w http.ResponseWriter, r *http.Request) {
	filter, problem := exportFilter(r)
	if problem != "" {
		writeError(w, http.StatusBadRequest, problem)
		return
	}
	ctx := r.Context()

	if r.URL.Query().Get("format") != "excel" {
		rows, err := h.Service.Rows(ctx, filter)
		if err != nil {
			writeFailure(w, "EXPORT", err)
			return
		}
		writeOK(w, envelope{"leads": rows, "total": len(rows)})
		return
	}

	data, ok, err := h.Service.Workbook(ctx, filter)
	if err != nil {
		writeFailure(w, "EXPORT", err)
		return
	}
	if ok {
		w.Header().Set("Content-Type", xlsxContentType)
	} else {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	}
	w.Header().Set("Content-Disposition", `attachment; filename="`+exportFilename+`"`)
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}
