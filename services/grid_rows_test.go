package services_test

import (
	"testing"
	"time"

	"gridadmin/config"
	"gridadmin/services"
	"gridadmin/testhelpers"
)

func TestLoadRows_DecodesRecordFields(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	testhelpers.CreateTestEmployee(t, app, "Asha Rao", "Finance", "active")

	s, err := config.Load("")
	if err != nil {
		t.Fatalf("config.Load() error = %v", err)
	}
	reg, err := services.NewGridRegistry(s)
	if err != nil {
		t.Fatalf("NewGridRegistry() error = %v", err)
	}
	def, _ := reg.Get("employees")

	rows, err := services.LoadRows(app, def)
	if err != nil {
		t.Fatalf("LoadRows() error = %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	row := rows[0]
	if services.RowID(row) == "" {
		t.Error("row has no id")
	}
	if _, ok := row["hired"].(time.Time); !ok {
		t.Errorf("hired decoded as %T, want time.Time", row["hired"])
	}
	if skills, ok := row["skills"].([]any); !ok || len(skills) != 1 {
		t.Errorf("skills decoded as %#v", row["skills"])
	}
	if m, ok := row["manager"].(map[string]any); !ok || m["name"] != "Test Manager" {
		t.Errorf("manager decoded as %#v", row["manager"])
	}
}

func TestDeleteRecords(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	a := testhelpers.CreateTestFuelBill(t, app, "MH-01", "2024-05-01", "pending", 1200)
	b := testhelpers.CreateTestFuelBill(t, app, "MH-02", "2024-05-02", "pending", 800)

	s, _ := config.Load("")
	reg, _ := services.NewGridRegistry(s)
	def, _ := reg.Get("fuel_bills")

	n, err := services.DeleteRecords(app, def, []string{a.Id, "missing", b.Id})
	if err != nil {
		t.Fatalf("DeleteRecords() error = %v", err)
	}
	if n != 2 {
		t.Errorf("deleted %d, want 2", n)
	}
	if rows, _ := services.LoadRows(app, def); len(rows) != 0 {
		t.Errorf("expected no rows left, got %d", len(rows))
	}
}

func TestDeleteRecords_LookupError(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	bill := testhelpers.CreateTestFuelBill(t, app, "MH-01", "2024-05-01", "pending", 1200)

	s, _ := config.Load("")
	reg, _ := services.NewGridRegistry(s)
	def, _ := reg.Get("fuel_bills")
	broken := *def
	broken.Config.Collection = "fuel_bills_archive"

	n, err := services.DeleteRecords(app, &broken, []string{bill.Id})
	if err == nil {
		t.Fatal("expected error for an unknown collection")
	}
	if n != 0 {
		t.Errorf("deleted %d, want 0", n)
	}
	if rows, _ := services.LoadRows(app, def); len(rows) != 1 {
		t.Errorf("expected the bill to survive, got %d rows", len(rows))
	}
}
