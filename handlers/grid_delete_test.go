package handlers

import (
	"net/http"
	"testing"

	"gridadmin/testhelpers"
)

func TestHandleGridDeleteSelected(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	pending := testhelpers.CreateTestFuelBill(t, app, "MH-01-AA-1111", "2024-05-01", "pending", 1200)
	testhelpers.CreateTestFuelBill(t, app, "MH-02-BB-2222", "2024-05-02", "rejected", 800)
	sessions := newTestSessions(t)
	path := map[string]string{"grid": "fuel_bills"}

	serve(t, app, HandleGridSelectRow(app, sessions), gridCall{
		method: http.MethodPost,
		target: "/grids/fuel_bills/rows/" + pending.Id + "/select",
		path:   map[string]string{"grid": "fuel_bills", "key": pending.Id},
	})

	rec := serve(t, app, HandleGridDeleteSelected(app, sessions), gridCall{
		method: http.MethodDelete,
		target: "/grids/fuel_bills/selected",
		path:   path,
		htmx:   true,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	body := rec.Body.String()
	testhelpers.AssertHTMLContains(t, body, "MH-02-BB-2222", "Showing 1 to 1 of 1 entries")
	testhelpers.AssertHTMLNotContains(t, body, "MH-01-AA-1111", "Delete selected")
	testhelpers.AssertHTMLContains(t, rec.Header().Get("HX-Trigger"), "Deleted 1 rows")

	if _, err := app.FindRecordById("fuel_bills", pending.Id); err == nil {
		t.Error("expected selected record to be deleted")
	}
}

func TestHandleGridDeleteSelected_NothingSelected(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	testhelpers.CreateTestFuelBill(t, app, "MH-01-AA-1111", "2024-05-01", "pending", 1200)
	sessions := newTestSessions(t)

	rec := serve(t, app, HandleGridDeleteSelected(app, sessions), gridCall{
		method: http.MethodDelete,
		target: "/grids/fuel_bills/selected",
		path:   map[string]string{"grid": "fuel_bills"},
	})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", rec.Code)
	}
	if n, _ := app.CountRecords("fuel_bills"); n != 1 {
		t.Errorf("expected no records deleted, got %d left", n)
	}
}
