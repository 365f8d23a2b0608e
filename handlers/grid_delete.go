package handlers

import (
	"fmt"
	"log"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"gridadmin/services"
)

// HandleGridDeleteSelected deletes the records of the effective selection,
// clears the selection and re-renders the grid. Selected rows hidden by a
// filter are not deleted.
func HandleGridDeleteSelected(app *pocketbase.PocketBase, sessions *SessionStore) func(*core.RequestEvent) error {
	return gridAction(app, sessions, func(e *core.RequestEvent, s *Session) error {
		keys, _ := s.Grid.EffectiveSelection()
		if len(keys) == 0 {
			return fmt.Errorf("%w: no rows selected", errBadRequest)
		}

		deleted, err := services.DeleteRecords(app, s.Def, keys)
		if err != nil {
			log.Printf("grid_delete: could not delete from %s: %v", s.Def.Name, err)
			SetToast(e, "error", fmt.Sprintf("Deleted %d of %d rows", deleted, len(keys)))
		} else {
			SetToast(e, "success", fmt.Sprintf("Deleted %d rows", deleted))
		}

		s.Grid.ClearSelectedRows()
		return s.Refresh(app)
	})
}
