package bind

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	perr "portreg/internal/platform/errors"
)

// shared payload for many tests
type payload struct {
	Service  string `json:"service" validate:"required,min=2"`
	Protocol string `json:"protocol" validate:"required"`
}

func TestParseJSON_Success(t *testing.T) {
	req := httptest.NewRequest("POST", "/", strings.NewReader(`{"service":"http","protocol":"tcp"}`))
	got, err := ParseJSON[payload](req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Service != "http" || got.Protocol != "tcp" {
		t.Fatalf("got %+v", got)
	}
}

func TestParseJSON_EmptyBody_Disallow(t *testing.T) {
	req := httptest.NewRequest("POST", "/", http.NoBody)
	_, err := ParseJSON[payload](req)
	if perr.CodeOf(err) != perr.ErrorCodeJSON {
		t.Fatalf("expected JSON error code, got %v (%v)", perr.CodeOf(err), err)
	}
}

// Covers: AllowEmptyBody true + EOF path in Decode
func TestParseJSON_AllowEmptyBody_EOF_OK(t *testing.T) {
	type emptyOK struct {
		Note string `json:"note"`
	}
	opts := JSONOptions{AllowEmptyBody: true}
	req := httptest.NewRequest("POST", "/", http.NoBody)

	got, err := ParseJSON[emptyOK](req, opts)
	if err != nil {
		t.Fatalf("unexpected: %v", err)
	}
	if got != (emptyOK{}) {
		t.Fatalf("expected zero value, got %+v", got)
	}
}

func TestParseJSON_InvalidJSON(t *testing.T) {
	req := httptest.NewRequest("POST", "/", strings.NewReader(`{`))
	_, err := ParseJSON[payload](req)
	if perr.CodeOf(err) != perr.ErrorCodeJSON {
		t.Fatalf("expected JSON error code, got %v (%v)", perr.CodeOf(err), err)
	}
}

func TestParseJSON_UnknownField(t *testing.T) {
	req := httptest.NewRequest("POST", "/", strings.NewReader(`{"service":"http","protocol":"tcp","boom":1}`))
	_, err := ParseJSON[payload](req) // DisallowUnknown default true
	if perr.CodeOf(err) != perr.ErrorCodeJSON {
		t.Fatalf("expected JSON error for unknown field, got %v (%v)", perr.CodeOf(err), err)
	}
}

func TestParseJSON_DisallowUnknownFalse_OK(t *testing.T) {
	opts := JSONOptions{DisallowUnknown: false}
	req := httptest.NewRequest("POST", "/", strings.NewReader(`{"service":"http","protocol":"tcp","extra":"ok"}`))
	got, err := ParseJSON[payload](req, opts)
	if err != nil {
		t.Fatalf("unexpected: %v", err)
	}
	if got.Service != "http" || got.Protocol != "tcp" {
		t.Fatalf("unexpected payload: %+v", got)
	}
}

// Forces trailing-data branch via seam
func TestParseJSON_TrailingData_Seam(t *testing.T) {
	orig := jsonMore
	jsonMore = func(_ *json.Decoder) bool { return true }
	defer func() { jsonMore = orig }()

	req := httptest.NewRequest("POST", "/", strings.NewReader(`{"service":"http","protocol":"tcp"}`))
	_, err := ParseJSON[payload](req)
	if perr.CodeOf(err) != perr.ErrorCodeJSON {
		t.Fatalf("expected JSON error for trailing data, got %v (%v)", perr.CodeOf(err), err)
	}
}

func TestParseJSON_ValidationError(t *testing.T) {
	req := httptest.NewRequest("POST", "/", strings.NewReader(`{"service":"h","protocol":""}`))
	_, err := ParseJSON[payload](req)
	if perr.CodeOf(err) != perr.ErrorCodeValidation {
		t.Fatalf("expected validation error code, got %v (%v)", perr.CodeOf(err), err)
	}
}

func TestParseJSON_MaxBytes_Fail(t *testing.T) {
	opts := JSONOptions{MaxBytes: 5, DisallowUnknown: true, AllowEmptyBody: false}
	req := httptest.NewRequest("POST", "/", strings.NewReader(`{"service":"http","protocol":"tcp"}`))
	_, err := ParseJSON[payload](req, opts)
	if perr.CodeOf(err) != perr.ErrorCodeJSON {
		t.Fatalf("expected JSON error due to size limit, got %v (%v)", perr.CodeOf(err), err)
	}
}

// Triggers InvalidValidationError in validator.Struct
func TestParseJSON_InvalidValidationError_Path(t *testing.T) {
	req := httptest.NewRequest("POST", "/", strings.NewReader(`5`))
	_, err := ParseJSON[int](req) // non-struct validation
	// ParseJSON maps that to a JSON-coded error with message "validation error"
	if perr.CodeOf(err) != perr.ErrorCodeJSON {
		t.Fatalf("expected JSON-coded error, got %v (%v)", perr.CodeOf(err), err)
	}
}

func TestValidationFieldAndMessage(t *testing.T) {
	req := httptest.NewRequest("POST", "/", strings.NewReader(`{"service":"h","protocol":"tcp"}`))
	_, err := ParseJSON[payload](req)
	if err == nil {
		t.Fatalf("expected validation error")
	}
	// the message is already translated with json tag names
	if msg := err.Error(); !strings.Contains(msg, "service") {
		t.Fatalf("message should name the json field: %q", msg)
	}
}
