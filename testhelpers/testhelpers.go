// Package testhelpers provides utilities for testing PocketBase-based applications.
package testhelpers

import (
	"strings"
	"testing"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"gridadmin/collections"
)

// NewTestApp creates a PocketBase instance backed by a temporary directory.
// It bootstraps the app and runs collections.Setup to create all tables.
// The temporary directory is cleaned up automatically when the test finishes.
func NewTestApp(t *testing.T) *pocketbase.PocketBase {
	t.Helper()

	tmpDir := t.TempDir()
	app := pocketbase.NewWithConfig(pocketbase.Config{
		DefaultDataDir: tmpDir,
	})

	if err := app.Bootstrap(); err != nil {
		t.Fatalf("failed to bootstrap test app: %v", err)
	}

	collections.Setup(app)

	return app
}

// CreateTestEmployee creates an employee record and returns it.
func CreateTestEmployee(t *testing.T, app *pocketbase.PocketBase, name, department, status string) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("employees")
	if err != nil {
		t.Fatalf("failed to find employees collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("name", name)
	record.Set("department", department)
	record.Set("position", "Analyst")
	record.Set("location", "Mumbai")
	record.Set("cost_center", "CC-100")
	record.Set("status", status)
	record.Set("hired", "2022-04-01 00:00:00.000Z")
	record.Set("skills", []string{"Excel"})
	record.Set("manager", map[string]any{"name": "Test Manager"})

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test employee: %v", err)
	}

	return record
}

// CreateTestFuelBill creates a fuel bill record and returns it.
func CreateTestFuelBill(t *testing.T, app *pocketbase.PocketBase, vehicle, billDate, status string, amount float64) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("fuel_bills")
	if err != nil {
		t.Fatalf("failed to find fuel_bills collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("card_number", "4111-1000")
	record.Set("vehicle", vehicle)
	record.Set("station", "HP Andheri")
	record.Set("liters", 30)
	record.Set("amount", amount)
	record.Set("bill_date", billDate+" 10:00:00.000Z")
	record.Set("status", status)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test fuel bill: %v", err)
	}

	return record
}

// AssertHTMLContains checks that body contains all specified fragments.
func AssertHTMLContains(t *testing.T, body string, fragments ...string) {
	t.Helper()

	for _, frag := range fragments {
		if !strings.Contains(body, frag) {
			t.Errorf("expected HTML to contain %q, but it was not found\nbody (first 500 chars): %s",
				frag, truncate(body, 500))
		}
	}
}

// AssertHTMLNotContains checks that body contains none of the fragments.
func AssertHTMLNotContains(t *testing.T, body string, fragments ...string) {
	t.Helper()

	for _, frag := range fragments {
		if strings.Contains(body, frag) {
			t.Errorf("expected HTML not to contain %q\nbody (first 500 chars): %s",
				frag, truncate(body, 500))
		}
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
