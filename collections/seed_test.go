package collections_test

import (
	"testing"

	"gridadmin/collections"
	"gridadmin/testhelpers"
)

func TestSeed_CreatesData(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	if err := collections.Seed(app); err != nil {
		t.Fatalf("Seed() error: %v", err)
	}

	employees, err := app.FindAllRecords("employees")
	if err != nil {
		t.Fatalf("query employees error: %v", err)
	}
	if len(employees) != 25 {
		t.Fatalf("expected 25 employees, got %d", len(employees))
	}

	bills, err := app.FindAllRecords("fuel_bills")
	if err != nil {
		t.Fatalf("query fuel_bills error: %v", err)
	}
	if len(bills) != 72 {
		t.Errorf("expected 72 fuel bills, got %d", len(bills))
	}
}

func TestSeed_Idempotent(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	if err := collections.Seed(app); err != nil {
		t.Fatalf("first Seed() error: %v", err)
	}
	if err := collections.Seed(app); err != nil {
		t.Fatalf("second Seed() error: %v", err)
	}

	employees, _ := app.FindAllRecords("employees")
	if len(employees) != 25 {
		t.Errorf("expected 25 employees after idempotent seed, got %d", len(employees))
	}
	bills, _ := app.FindAllRecords("fuel_bills")
	if len(bills) != 72 {
		t.Errorf("expected 72 fuel bills after idempotent seed, got %d", len(bills))
	}
}

func TestSeed_EmployeeDetails(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	if err := collections.Seed(app); err != nil {
		t.Fatalf("Seed() error: %v", err)
	}

	rec, err := app.FindFirstRecordByData("employees", "name", "Nikhil Joshi")
	if err != nil {
		t.Fatalf("find Nikhil Joshi: %v", err)
	}
	if rec.GetString("department") != "Engineering" {
		t.Errorf("department = %q, want Engineering", rec.GetString("department"))
	}
	if got := rec.GetDateTime("hired").String(); got[:10] != "2021-03-08" {
		t.Errorf("hired = %q, want 2021-03-08", got)
	}
	var skills []string
	if err := rec.UnmarshalJSONField("skills", &skills); err != nil {
		t.Fatalf("unmarshal skills: %v", err)
	}
	if len(skills) != 3 || skills[0] != "Go" {
		t.Errorf("skills = %v", skills)
	}
	var manager map[string]any
	if err := rec.UnmarshalJSONField("manager", &manager); err != nil {
		t.Fatalf("unmarshal manager: %v", err)
	}
	if manager["name"] != "Priya Nair" {
		t.Errorf("manager = %v", manager)
	}
}

func TestSeed_SkipsWhenDataExists(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	testhelpers.CreateTestEmployee(t, app, "Existing Person", "Finance", "active")

	if err := collections.Seed(app); err != nil {
		t.Fatalf("Seed() error: %v", err)
	}

	employees, _ := app.FindAllRecords("employees")
	if len(employees) != 1 {
		t.Errorf("expected seed to skip populated employees, got %d", len(employees))
	}
	bills, _ := app.FindAllRecords("fuel_bills")
	if len(bills) == 0 {
		t.Error("expected fuel bills to be seeded independently")
	}
}
