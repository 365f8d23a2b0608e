package handlers

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"gridadmin/services"
)

// HandleGridExport downloads every filtered and sorted row over the visible
// columns as csv, xlsx or pdf.
func HandleGridExport(app *pocketbase.PocketBase, sessions *SessionStore) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		s, err := openSession(app, sessions, e)
		if err != nil {
			return gridError(e, err)
		}
		s.Lock()
		defer s.Unlock()

		if !s.Grid.Options().DataExport {
			return ErrorToast(e, http.StatusNotFound, "Export is not enabled for "+s.Def.Title())
		}

		format := e.Request.PathValue("format")
		contentType, err := services.ExportContentType(format)
		if err != nil {
			return gridError(e, err)
		}
		if err := s.Refresh(app); err != nil {
			return gridError(e, err)
		}

		table := s.Def.ToExportTable(s.Grid.ExportTable())
		data, err := services.GenerateExport(format, table)
		if err != nil {
			log.Printf("grid_export: could not generate %s for %s: %v", format, s.Def.Name, err)
			return ErrorToast(e, http.StatusInternalServerError, "Failed to generate export")
		}

		filename := services.ExportFilename(format, time.Now())
		e.Response.Header().Set("Content-Type", contentType)
		e.Response.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
		e.Response.WriteHeader(http.StatusOK)
		_, err = e.Response.Write(data)
		return err
	}
}
