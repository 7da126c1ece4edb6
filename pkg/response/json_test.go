package response

import (
	"encoding/json"
	"net/http/httptest"
	"testing"
)

func TestJSONEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	JSON(rec, 201, map[string]string{"name": "trip"})

	if rec.Code != 201 {
		t.Fatalf("status = %d, want 201", rec.Code)
	}
	if got := rec.Header().Get("Content-Type"); got != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", got)
	}

	var body APIResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if !body.Success {
		t.Error("success = false for a 2xx status")
	}
	if body.Error != nil {
		t.Errorf("error = %+v, want nil", body.Error)
	}
}

func TestErrorEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	NotFound(rec, "no such group")

	if rec.Code != 404 {
		t.Fatalf("status = %d, want 404", rec.Code)
	}

	var body APIResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if body.Success {
		t.Error("success = true for an error status")
	}
	if body.Error == nil || body.Error.Code != "NOT_FOUND" || body.Error.Message != "no such group" {
		t.Errorf("error = %+v, want NOT_FOUND with the given message", body.Error)
	}
}

func TestJSONWithMetaCarriesPagination(t *testing.T) {
	rec := httptest.NewRecorder()
	JSONWithMeta(rec, 200, []int{1, 2}, &Meta{Page: 2, PerPage: 20, Total: 45, TotalPages: 3})

	var body APIResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if body.Meta == nil || body.Meta.Page != 2 || body.Meta.TotalPages != 3 {
		t.Errorf("meta = %+v, want page 2 of 3", body.Meta)
	}
}
