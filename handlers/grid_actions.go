package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"gridadmin/datagrid"
)

// HandleGridSearch sets the global text filter from form field q.
func HandleGridSearch(app *pocketbase.PocketBase, sessions *SessionStore) func(*core.RequestEvent) error {
	return gridAction(app, sessions, func(e *core.RequestEvent, s *Session) error {
		return s.Grid.SetGlobalFilter(strings.TrimSpace(e.Request.FormValue("q")))
	})
}

// HandleGridFilter sets the filter of one column. Text, select and date
// filters read "value", multi-selects read every "values" entry and date
// ranges read "from" and "to".
func HandleGridFilter(app *pocketbase.PocketBase, sessions *SessionStore) func(*core.RequestEvent) error {
	return gridAction(app, sessions, func(e *core.RequestEvent, s *Session) error {
		key := e.Request.PathValue("column")
		col, ok := s.Grid.Column(key)
		if !ok {
			return fmt.Errorf("%w: %q", datagrid.ErrUnknownColumn, key)
		}
		if err := e.Request.ParseForm(); err != nil {
			return fmt.Errorf("%w: %v", errBadRequest, err)
		}

		form := e.Request.Form
		var v datagrid.FilterValue
		switch col.Filter {
		case datagrid.FilterNone:
			return fmt.Errorf("%w: column %q has no filter", errBadRequest, key)
		case datagrid.FilterInput:
			v = datagrid.TextFilter(form.Get("value"))
		case datagrid.FilterSingleSelect:
			v = datagrid.SelectFilter(form.Get("value"))
		case datagrid.FilterDate:
			v = datagrid.DateFilter(form.Get("value"))
		case datagrid.FilterMultiSelect:
			values := form["values"]
			if len(values) == 0 {
				values = form["values[]"]
			}
			v = datagrid.MultiFilter(values...)
		case datagrid.FilterDateRange:
			v = datagrid.RangeFilter(form.Get("from"), form.Get("to"))
		}
		return s.Grid.SetFilter(key, v)
	})
}

// HandleGridClearFilters removes every column filter and the search text.
func HandleGridClearFilters(app *pocketbase.PocketBase, sessions *SessionStore) func(*core.RequestEvent) error {
	return gridAction(app, sessions, func(e *core.RequestEvent, s *Session) error {
		return s.Grid.ClearFilters()
	})
}

// HandleGridSort toggles the sort of a column.
func HandleGridSort(app *pocketbase.PocketBase, sessions *SessionStore) func(*core.RequestEvent) error {
	return gridAction(app, sessions, func(e *core.RequestEvent, s *Session) error {
		return s.Grid.ToggleSort(e.Request.PathValue("column"))
	})
}

// HandleGridPage moves to a page number, or to the next or previous page.
func HandleGridPage(app *pocketbase.PocketBase, sessions *SessionStore) func(*core.RequestEvent) error {
	return gridAction(app, sessions, func(e *core.RequestEvent, s *Session) error {
		switch page := e.Request.PathValue("page"); page {
		case "next":
			return s.Grid.NextPage()
		case "prev":
			return s.Grid.PrevPage()
		default:
			n, err := strconv.Atoi(page)
			if err != nil {
				return fmt.Errorf("%w: page %q", errBadRequest, page)
			}
			return s.Grid.SetPage(n)
		}
	})
}

// HandleGridPageSize changes the page size from form field size.
func HandleGridPageSize(app *pocketbase.PocketBase, sessions *SessionStore) func(*core.RequestEvent) error {
	return gridAction(app, sessions, func(e *core.RequestEvent, s *Session) error {
		size, err := strconv.Atoi(e.Request.FormValue("size"))
		if err != nil {
			return fmt.Errorf("%w: page size %q", errBadRequest, e.Request.FormValue("size"))
		}
		return s.Grid.SetPageSize(size)
	})
}

// HandleGridSelectRow toggles one row. Rows that cannot be selected are left
// as they are.
func HandleGridSelectRow(app *pocketbase.PocketBase, sessions *SessionStore) func(*core.RequestEvent) error {
	return gridAction(app, sessions, func(e *core.RequestEvent, s *Session) error {
		s.Grid.ToggleRow(e.Request.PathValue("key"))
		return nil
	})
}

// HandleGridSelectPage toggles every selectable row of the current page.
func HandleGridSelectPage(app *pocketbase.PocketBase, sessions *SessionStore) func(*core.RequestEvent) error {
	return gridAction(app, sessions, func(e *core.RequestEvent, s *Session) error {
		s.Grid.TogglePage()
		return nil
	})
}

// HandleGridClearSelection empties the selection.
func HandleGridClearSelection(app *pocketbase.PocketBase, sessions *SessionStore) func(*core.RequestEvent) error {
	return gridAction(app, sessions, func(e *core.RequestEvent, s *Session) error {
		s.Grid.ClearSelectedRows()
		return nil
	})
}

// HandleGridDeselectRow removes one key from the selection.
func HandleGridDeselectRow(app *pocketbase.PocketBase, sessions *SessionStore) func(*core.RequestEvent) error {
	return gridAction(app, sessions, func(e *core.RequestEvent, s *Session) error {
		s.Grid.DeselectRow(e.Request.PathValue("key"))
		return nil
	})
}

// HandleGridSelection returns the effective selection as JSON.
func HandleGridSelection(app *pocketbase.PocketBase, sessions *SessionStore) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		s, err := openSession(app, sessions, e)
		if err != nil {
			return gridError(e, err)
		}
		s.Lock()
		defer s.Unlock()

		if err := s.Refresh(app); err != nil {
			return gridError(e, err)
		}
		keys, rows := s.Grid.EffectiveSelection()
		if keys == nil {
			keys = []string{}
		}
		if rows == nil {
			rows = []datagrid.MapRow{}
		}
		return e.JSON(http.StatusOK, map[string]any{
			"grid":  s.Def.Name,
			"count": len(keys),
			"keys":  keys,
			"rows":  rows,
		})
	}
}

// HandleGridExpand toggles the detail row of one row.
func HandleGridExpand(app *pocketbase.PocketBase, sessions *SessionStore) func(*core.RequestEvent) error {
	return gridAction(app, sessions, func(e *core.RequestEvent, s *Session) error {
		s.Grid.ToggleExpanded(e.Request.PathValue("key"))
		return nil
	})
}

// HandleGridClick records a row click. The second click on the same row
// within the double-click gap fires a gridRowOpened event on the client.
func HandleGridClick(app *pocketbase.PocketBase, sessions *SessionStore) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		s, err := openSession(app, sessions, e)
		if err != nil {
			return gridError(e, err)
		}
		s.Lock()
		defer s.Unlock()

		if err := s.Refresh(app); err != nil {
			return gridError(e, err)
		}
		key := e.Request.PathValue("key")
		if s.Grid.Click(key, time.Now()) {
			setTrigger(e, "gridRowOpened", map[string]string{"grid": s.Def.Name, "key": key})
		}
		return e.NoContent(http.StatusNoContent)
	}
}

// HandleGridColumnVisibility shows or hides a column. Without a "visible"
// form value the column is toggled.
func HandleGridColumnVisibility(app *pocketbase.PocketBase, sessions *SessionStore) func(*core.RequestEvent) error {
	return gridAction(app, sessions, func(e *core.RequestEvent, s *Session) error {
		key := e.Request.PathValue("column")
		raw := e.Request.FormValue("visible")
		if raw == "" {
			return s.Grid.ToggleColumn(key)
		}
		visible, err := strconv.ParseBool(raw)
		if err != nil {
			return fmt.Errorf("%w: visible %q", errBadRequest, raw)
		}
		return s.Grid.SetColumnVisible(key, visible)
	})
}

// HandleGridColumnResize applies a width delta in pixels from form field delta.
func HandleGridColumnResize(app *pocketbase.PocketBase, sessions *SessionStore) func(*core.RequestEvent) error {
	return gridAction(app, sessions, func(e *core.RequestEvent, s *Session) error {
		delta, err := strconv.Atoi(e.Request.FormValue("delta"))
		if err != nil {
			return fmt.Errorf("%w: delta %q", errBadRequest, e.Request.FormValue("delta"))
		}
		_, err = s.Grid.ResizeColumn(e.Request.PathValue("column"), delta)
		return err
	})
}
