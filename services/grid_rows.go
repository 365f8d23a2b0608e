package services

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/pocketbase/pocketbase/core"
	"github.com/pocketbase/pocketbase/tools/types"
	"github.com/spf13/cast"

	"gridadmin/datagrid"
)

// RowID is the key of a record row.
func RowID(row datagrid.MapRow) string {
	return cast.ToString(row["id"])
}

// LoadRows reads every record of the grid's collection as rows, in the
// configured default order.
func LoadRows(app core.App, d *GridDef) ([]datagrid.MapRow, error) {
	records, err := app.FindRecordsByFilter(d.Config.Collection, "id != ''", d.Config.DefaultSort, 0, 0)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", d.Config.Collection, err)
	}
	rows := make([]datagrid.MapRow, len(records))
	for i, rec := range records {
		rows[i] = RecordRow(rec)
	}
	return rows, nil
}

// RecordRow flattens a record into a row: dates become time.Time (zero dates
// become nil) and JSON fields are decoded.
func RecordRow(rec *core.Record) datagrid.MapRow {
	row := make(datagrid.MapRow)
	for k, v := range rec.PublicExport() {
		row[k] = rowValue(v)
	}
	return row
}

func rowValue(v any) any {
	switch t := v.(type) {
	case types.DateTime:
		if t.IsZero() {
			return nil
		}
		return t.Time()
	case types.JSONRaw:
		if len(t) == 0 {
			return nil
		}
		var out any
		if err := json.Unmarshal(t, &out); err != nil {
			return t.String()
		}
		return out
	}
	return v
}

// DeleteRecords deletes the records with the given ids from the grid's
// collection and reports how many were removed. Missing records are skipped.
func DeleteRecords(app core.App, d *GridDef, ids []string) (int, error) {
	deleted := 0
	for _, id := range ids {
		rec, err := app.FindRecordById(d.Config.Collection, id)
		if errors.Is(err, sql.ErrNoRows) {
			continue
		}
		if err != nil {
			return deleted, fmt.Errorf("find %s/%s: %w", d.Config.Collection, id, err)
		}
		if err := app.Delete(rec); err != nil {
			return deleted, fmt.Errorf("delete %s/%s: %w", d.Config.Collection, id, err)
		}
		deleted++
	}
	return deleted, nil
}
