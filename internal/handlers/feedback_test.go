package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"saferail/internal/models"
	"saferail/internal/service"
	"saferail/internal/validation"
)

func TestFeedbackHandlers_Create(t *testing.T) {
	fb := &mockFeedback{item: models.Feedback{ID: "f1", Station: "Dadar", Priority: models.PriorityHigh, Status: models.FeedbackActive}}
	r := newTestRouter(&service.Service{Authorization: &mockAuth{parseID: 7}, Feedback: fb})

	w := serve(r, http.MethodPost, "/api/v1/feedback", `{"station":"Dadar","category":"Harassment","message":"group near gate"}`, "valid")
	if w.Code != http.StatusCreated {
		t.Fatalf("status=%d, body=%s", w.Code, w.Body.String())
	}
	if fb.lastUserID != 7 || fb.lastInput.Category != "Harassment" {
		t.Fatalf("service got user=%d input=%+v", fb.lastUserID, fb.lastInput)
	}

	fb.err = &validation.FieldsError{Fields: validation.Fields{"station": "Unknown station"}}
	w = serve(r, http.MethodPost, "/api/v1/feedback", `{"station":"Atlantis","category":"Harassment","message":"x"}`, "valid")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	var out struct {
		Fields map[string]string `json:"fields"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &out)
	if out.Fields["station"] != "Unknown station" {
		t.Fatalf("unexpected fields %v", out.Fields)
	}
}

func TestFeedbackHandlers_ListPassesFilters(t *testing.T) {
	fb := &mockFeedback{items: []models.Feedback{{ID: "f1"}, {ID: "f2"}}}
	r := newTestRouter(&service.Service{Authorization: &mockAuth{parseID: 7}, Feedback: fb})

	w := serve(r, http.MethodGet, "/api/v1/feedback?station=Dadar&priority=high", "", "valid")
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d", w.Code)
	}
	if fb.lastFilter.Station != "Dadar" || fb.lastFilter.Priority != "high" {
		t.Fatalf("filter = %+v", fb.lastFilter)
	}
	var out struct {
		Count int `json:"count"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &out)
	if out.Count != 2 {
		t.Fatalf("count = %d", out.Count)
	}

	w = serve(r, http.MethodGet, "/api/v1/feedback/stats", "", "valid")
	if w.Code != http.StatusOK {
		t.Fatalf("stats status=%d", w.Code)
	}
}

func TestFeedbackHandlers_Vote(t *testing.T) {
	cases := []struct {
		name     string
		body     string
		err      error
		wantCode int
	}{
		{name: "ok", body: `{"direction":"down"}`, wantCode: http.StatusOK},
		{name: "missing direction", body: `{}`, wantCode: http.StatusBadRequest},
		{name: "bad direction", body: `{"direction":"sideways"}`, err: service.ErrInvalidDirection, wantCode: http.StatusBadRequest},
		{name: "unknown", body: `{"direction":"up"}`, err: service.ErrFeedbackNotFound, wantCode: http.StatusNotFound},
		{name: "hidden", body: `{"direction":"up"}`, err: service.ErrFeedbackHidden, wantCode: http.StatusConflict},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			fb := &mockFeedback{err: tc.err, item: models.Feedback{ID: "f1", Downvotes: 5, Status: models.FeedbackHidden}}
			r := newTestRouter(&service.Service{Authorization: &mockAuth{parseID: 7}, Feedback: fb})

			w := serve(r, http.MethodPost, "/api/v1/feedback/f1/vote", tc.body, "valid")
			if w.Code != tc.wantCode {
				t.Fatalf("status=%d, body=%s", w.Code, w.Body.String())
			}
		})
	}
}

func TestQuickFeedbackHandlers(t *testing.T) {
	q := &mockQuick{item: models.QuickFeedback{ID: "q1", Type: "star"}}
	r := newTestRouter(&service.Service{QuickFeedback: q})

	w := serve(r, http.MethodPost, "/feedback", `{"type":"thumbs_up","message":"clean coach"}`, "")
	if w.Code != http.StatusCreated {
		t.Fatalf("create status=%d, body=%s", w.Code, w.Body.String())
	}
	var created models.QuickFeedback
	_ = json.Unmarshal(w.Body.Bytes(), &created)
	if created.ID != "q1" || created.Type != "thumbs_up" || created.Message == nil || *created.Message != "clean coach" {
		t.Fatalf("unexpected body %s", w.Body.String())
	}

	if w := serve(r, http.MethodGet, "/feedback", "", ""); w.Code != http.StatusOK {
		t.Fatalf("list status=%d", w.Code)
	}
	if w := serve(r, http.MethodGet, "/feedback/q1", "", ""); w.Code != http.StatusOK {
		t.Fatalf("get status=%d", w.Code)
	}
	if w := serve(r, http.MethodDelete, "/feedback/q1", "", ""); w.Code != http.StatusNoContent {
		t.Fatalf("delete status=%d", w.Code)
	}
	if len(q.deleted) != 1 || q.deleted[0] != "q1" {
		t.Fatalf("deleted = %v", q.deleted)
	}

	q.err = service.ErrQuickNotFound
	if w := serve(r, http.MethodGet, "/feedback/nope", "", ""); w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
	q.err = service.ErrInvalidQuickType
	if w := serve(r, http.MethodPost, "/feedback", `{"type":"heart"}`, ""); w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}
