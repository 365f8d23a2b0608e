package collections_test

import (
	"testing"

	"gridadmin/collections"
	"gridadmin/datagrid"
	"gridadmin/testhelpers"
)

func TestPreferenceStore_SaveAndLoad(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	store := collections.NewPreferenceStore(app, "client-a")

	if _, ok := store.Load("customDataGrid_fuel_page"); ok {
		t.Fatal("expected no value before Save")
	}
	if err := store.Save("customDataGrid_fuel_page", "3"); err != nil {
		t.Fatalf("Save() error: %v", err)
	}
	if err := store.Save("customDataGrid_fuel_page", "4"); err != nil {
		t.Fatalf("second Save() error: %v", err)
	}
	got, ok := store.Load("customDataGrid_fuel_page")
	if !ok || got != "4" {
		t.Errorf("Load() = %q, %v; want 4, true", got, ok)
	}

	records, _ := app.FindAllRecords(collections.PreferencesCollection)
	if len(records) != 1 {
		t.Errorf("expected upsert to keep one record, got %d", len(records))
	}
}

func TestPreferenceStore_ClientsAreIsolated(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	a := collections.NewPreferenceStore(app, "client-a")
	b := collections.NewPreferenceStore(app, "client-b")

	a.Save("customDataGrid_default_pageSize", "50")
	if _, ok := b.Load("customDataGrid_default_pageSize"); ok {
		t.Error("client-b saw client-a's preference")
	}
}

func TestPreferenceStore_RestoresGridPagination(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	store := collections.NewPreferenceStore(app, "client-a")

	rows := make([]int, 120)
	cols := []datagrid.Column[int]{datagrid.Field("n", "N", func(n int) any { return n })}
	opts := datagrid.Options[int]{Pagination: true, PersistPagination: true, PersistenceKey: "nums", Store: store}

	g := datagrid.New(rows, cols, opts)
	if err := g.SetPageSize(50); err != nil {
		t.Fatalf("SetPageSize() error: %v", err)
	}
	if err := g.SetPage(2); err != nil {
		t.Fatalf("SetPage() error: %v", err)
	}

	restored := datagrid.New(rows, cols, opts)
	if restored.Page() != 2 || restored.PageSize() != 50 {
		t.Errorf("restored page/size = %d/%d, want 2/50", restored.Page(), restored.PageSize())
	}
}
