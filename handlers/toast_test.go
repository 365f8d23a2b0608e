package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/pocketbase/pocketbase/core"
)

func newToastEvent() (*core.RequestEvent, *httptest.ResponseRecorder) {
	rec := httptest.NewRecorder()
	e := &core.RequestEvent{}
	e.Response = rec
	return e, rec
}

// triggers decodes the HX-Trigger header into event name -> payload.
func triggers(t *testing.T, rec *httptest.ResponseRecorder) map[string]map[string]string {
	t.Helper()
	var parsed map[string]map[string]string
	if err := json.Unmarshal([]byte(rec.Header().Get("HX-Trigger")), &parsed); err != nil {
		t.Fatalf("HX-Trigger is not valid JSON: %v", err)
	}
	return parsed
}

func TestSetTrigger(t *testing.T) {
	tests := []struct {
		name     string
		existing string
		want     []string
	}{
		{"empty header", "", []string{"gridRowOpened"}},
		{"merges into object", `{"refreshCounts":{"grid":"fuel_bills"}}`, []string{"refreshCounts", "gridRowOpened"}},
		{"replaces invalid header", "refreshCounts", []string{"gridRowOpened"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, rec := newToastEvent()
			if tt.existing != "" {
				rec.Header().Set("HX-Trigger", tt.existing)
			}

			setTrigger(e, "gridRowOpened", map[string]string{"grid": "employees", "key": "e7"})

			got := triggers(t, rec)
			if len(got) != len(tt.want) {
				t.Errorf("events = %v, want %v", got, tt.want)
			}
			for _, name := range tt.want {
				if _, ok := got[name]; !ok {
					t.Errorf("missing event %q in %v", name, got)
				}
			}
			if got["gridRowOpened"]["key"] != "e7" {
				t.Errorf("gridRowOpened payload = %v", got["gridRowOpened"])
			}
		})
	}
}

func TestSetTrigger_KeepsToast(t *testing.T) {
	e, rec := newToastEvent()

	SetToast(e, "success", "Deleted 2 rows")
	setTrigger(e, "gridRowOpened", map[string]string{"grid": "employees", "key": "e1"})

	parsed := triggers(t, rec)
	if parsed["showToast"]["message"] != "Deleted 2 rows" {
		t.Errorf("toast lost after merge: %v", parsed)
	}
	if parsed["gridRowOpened"]["key"] != "e1" {
		t.Errorf("expected gridRowOpened key e1, got %v", parsed["gridRowOpened"])
	}
}

func TestSetToast_FlashCookie(t *testing.T) {
	e, rec := newToastEvent()

	SetToast(e, "success", `Exported "Fuel Bills" & more`)

	toast := triggers(t, rec)["showToast"]
	if toast["type"] != "success" || toast["message"] != `Exported "Fuel Bills" & more` {
		t.Errorf("showToast = %v", toast)
	}

	var flash *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == "flash_toast" {
			flash = c
		}
	}
	if flash == nil {
		t.Fatal("expected flash_toast cookie")
	}
	if flash.HttpOnly {
		t.Error("flash cookie must be readable by the page script")
	}
	raw, err := url.QueryUnescape(flash.Value)
	if err != nil {
		t.Fatalf("flash cookie not query-escaped: %v", err)
	}
	var fromCookie map[string]string
	if err := json.Unmarshal([]byte(raw), &fromCookie); err != nil {
		t.Fatalf("flash cookie is not JSON: %v", err)
	}
	if fromCookie["message"] != toast["message"] {
		t.Errorf("cookie message = %q, header message = %q", fromCookie["message"], toast["message"])
	}
}

func TestErrorToast(t *testing.T) {
	for _, code := range []int{http.StatusBadRequest, http.StatusNotFound, http.StatusInternalServerError} {
		t.Run(http.StatusText(code), func(t *testing.T) {
			e, rec := newToastEvent()

			if err := ErrorToast(e, code, "Grid not found"); err != nil {
				t.Fatalf("ErrorToast() error = %v", err)
			}
			if rec.Code != code {
				t.Errorf("status = %d, want %d", rec.Code, code)
			}
			if rec.Header().Get("HX-Reswap") != "none" {
				t.Error("expected HX-Reswap: none")
			}
			if rec.Body.String() != "Grid not found" {
				t.Errorf("body = %q", rec.Body.String())
			}
			if toast := triggers(t, rec)["showToast"]; toast["type"] != "error" {
				t.Errorf("showToast = %v, want type error", toast)
			}
		})
	}
}
