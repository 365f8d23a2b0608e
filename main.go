package main

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"gridadmin/collections"
	"gridadmin/commands"
	"gridadmin/config"
	"gridadmin/handlers"
	"gridadmin/services"
)

func main() {
	app := pocketbase.New()

	// Grid definitions: embedded defaults, merged with $GRIDADMIN_GRIDS when set
	settings, err := config.Load("")
	if err != nil {
		log.Fatal(err)
	}
	registry, err := services.NewGridRegistry(settings)
	if err != nil {
		log.Fatal(err)
	}
	sessions := handlers.NewSessionStore(registry)

	app.RootCmd.AddCommand(commands.NewExportCommand(app))

	// Create collections and seed data on startup
	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		collections.Setup(app)
		if err := collections.Seed(app); err != nil {
			log.Printf("Warning: seed data failed: %v", err)
		}
		return se.Next()
	})

	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		// Every browser gets a client id for its grid sessions
		se.Router.BindFunc(handlers.ClientMiddleware())

		// ── Grid pages ───────────────────────────────────────────
		se.Router.GET("/grids", handlers.HandleGridIndex(app, sessions))
		se.Router.GET("/grids/{grid}", handlers.HandleGridView(app, sessions))

		// ── Filtering and sorting ────────────────────────────────
		se.Router.POST("/grids/{grid}/search", handlers.HandleGridSearch(app, sessions))
		se.Router.POST("/grids/{grid}/filters/{column}", handlers.HandleGridFilter(app, sessions))
		se.Router.DELETE("/grids/{grid}/filters", handlers.HandleGridClearFilters(app, sessions))
		se.Router.POST("/grids/{grid}/sort/{column}", handlers.HandleGridSort(app, sessions))

		// ── Pagination ───────────────────────────────────────────
		se.Router.POST("/grids/{grid}/page/{page}", handlers.HandleGridPage(app, sessions))
		se.Router.POST("/grids/{grid}/page-size", handlers.HandleGridPageSize(app, sessions))

		// ── Selection ────────────────────────────────────────────
		se.Router.POST("/grids/{grid}/rows/{key}/select", handlers.HandleGridSelectRow(app, sessions))
		se.Router.POST("/grids/{grid}/select-page", handlers.HandleGridSelectPage(app, sessions))
		se.Router.GET("/grids/{grid}/selection", handlers.HandleGridSelection(app, sessions))
		se.Router.DELETE("/grids/{grid}/selection", handlers.HandleGridClearSelection(app, sessions))
		se.Router.DELETE("/grids/{grid}/selection/{key}", handlers.HandleGridDeselectRow(app, sessions))
		se.Router.DELETE("/grids/{grid}/selected", handlers.HandleGridDeleteSelected(app, sessions))

		// ── Rows and columns ─────────────────────────────────────
		se.Router.POST("/grids/{grid}/rows/{key}/expand", handlers.HandleGridExpand(app, sessions))
		se.Router.POST("/grids/{grid}/rows/{key}/click", handlers.HandleGridClick(app, sessions))
		se.Router.POST("/grids/{grid}/columns/{column}/visibility", handlers.HandleGridColumnVisibility(app, sessions))
		se.Router.POST("/grids/{grid}/columns/{column}/resize", handlers.HandleGridColumnResize(app, sessions))

		// ── Export ───────────────────────────────────────────────
		se.Router.GET("/grids/{grid}/export/{format}", handlers.HandleGridExport(app, sessions))

		// Redirect home to the grid index
		se.Router.GET("/", func(e *core.RequestEvent) error {
			return e.Redirect(http.StatusFound, "/grids")
		})

		return se.Next()
	})

	if err := app.Start(); err != nil {
		log.Fatal(err)
	}
}
