package resp

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ncobase/example-api/ecode"
)

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body %q: %v", rec.Body.String(), err)
	}
	return body
}

func TestSuccessWritesPayload(t *testing.T) {
	rec := httptest.NewRecorder()
	Success(rec, map[string]string{"id": "example-0"})

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json; charset=utf-8" {
		t.Errorf("content type = %q", ct)
	}
	if body := decode(t, rec); body["id"] != "example-0" {
		t.Errorf("body = %v", body)
	}
}

func TestWithStatusCodeMessage(t *testing.T) {
	rec := httptest.NewRecorder()
	WithStatusCode(rec, http.StatusCreated, "created")
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d", rec.Code)
	}
	if body := decode(t, rec); body["message"] != "created" {
		t.Errorf("body = %v", body)
	}
}

func TestWithStatusCodeNoContent(t *testing.T) {
	rec := httptest.NewRecorder()
	WithStatusCode(rec, http.StatusNoContent)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d", rec.Code)
	}
	if rec.Body.Len() != 0 {
		t.Errorf("expected empty body, got %q", rec.Body.String())
	}
}

func TestFailNotFound(t *testing.T) {
	rec := httptest.NewRecorder()
	Fail(rec, NotFound("Example with ID x not found"))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d", rec.Code)
	}
	body := decode(t, rec)
	if body["message"] != "Example with ID x not found" {
		t.Errorf("message = %v", body["message"])
	}
	if int(body["code"].(float64)) != ecode.NothingFound {
		t.Errorf("code = %v", body["code"])
	}
}

func TestFailBadRequestWithErrors(t *testing.T) {
	rec := httptest.NewRecorder()
	Fail(rec, BadRequest("validation failed", map[string]string{"name": "name is required"}))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
	errs, ok := decode(t, rec)["errors"].(map[string]any)
	if !ok || errs["name"] != "name is required" {
		t.Errorf("errors = %v", errs)
	}
}

func TestFailNil(t *testing.T) {
	rec := httptest.NewRecorder()
	Fail(rec, nil)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d", rec.Code)
	}
	if body := decode(t, rec); body["message"] != ecode.Text(ecode.ServerErr) {
		t.Errorf("message = %v", body["message"])
	}
}
