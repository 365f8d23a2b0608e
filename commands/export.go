package commands

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
	"github.com/spf13/cobra"

	"gridadmin/collections"
	"gridadmin/config"
	"gridadmin/datagrid"
	"gridadmin/services"
)

// exportOptions are the flags of the export command.
type exportOptions struct {
	format    string
	outDir    string
	search    string
	filters   []string
	gridsFile string
}

// NewExportCommand returns the "export" command, which builds a grid without
// a browser and writes its filtered rows to a file, or prints them as a
// table.
func NewExportCommand(app *pocketbase.PocketBase) *cobra.Command {
	opts := exportOptions{}

	cmd := &cobra.Command{
		Use:   "export <grid>",
		Short: "Export the rows of a configured grid",
		Long: "Export the rows of a configured grid as csv, xlsx or pdf, or print them as a table.\n" +
			"Filters use key=value; multi-select values are comma separated and date ranges use from..to.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			collections.Setup(app)

			settings, err := config.Load(opts.gridsFile)
			if err != nil {
				return err
			}
			reg, err := services.NewGridRegistry(settings)
			if err != nil {
				return err
			}
			return runExport(app, reg, args[0], opts, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVarP(&opts.format, "format", "f", "csv", "output format: csv, xlsx, pdf or table")
	cmd.Flags().StringVarP(&opts.outDir, "out", "o", ".", "directory the export file is written to")
	cmd.Flags().StringVar(&opts.search, "search", "", "global search text")
	cmd.Flags().StringArrayVar(&opts.filters, "filter", nil, "column filter as key=value (repeatable)")
	cmd.Flags().StringVar(&opts.gridsFile, "grids", "", "grid definitions file merged over the defaults")

	return cmd
}

func runExport(app core.App, reg *services.GridRegistry, name string, opts exportOptions, w io.Writer) error {
	def, err := reg.Get(name)
	if err != nil {
		return err
	}
	rows, err := services.LoadRows(app, def)
	if err != nil {
		return err
	}

	g := def.NewGrid(rows, def.GridOptions(nil, nil, nil))
	if opts.search != "" {
		if err := g.SetGlobalFilter(opts.search); err != nil {
			return err
		}
	}
	for _, raw := range opts.filters {
		key, v, err := parseFilterFlag(g, raw)
		if err != nil {
			return err
		}
		if err := g.SetFilter(key, v); err != nil {
			return fmt.Errorf("filter %q: %w", raw, err)
		}
	}

	table := def.ToExportTable(g.ExportTable())
	if opts.format == "table" {
		_, err := fmt.Fprintln(w, services.RenderTextTable(table))
		return err
	}

	data, err := services.GenerateExport(opts.format, table)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(opts.outDir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	path := filepath.Join(opts.outDir, services.ExportFilename(opts.format, time.Now()))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write export: %w", err)
	}
	_, err = fmt.Fprintf(w, "wrote %s (%d rows)\n", path, len(table.Rows))
	return err
}

// parseFilterFlag turns key=value into a filter value shaped for the
// column's filter type.
func parseFilterFlag(g *datagrid.Grid[datagrid.MapRow], raw string) (string, datagrid.FilterValue, error) {
	key, value, ok := strings.Cut(raw, "=")
	if !ok || key == "" {
		return "", datagrid.FilterValue{}, fmt.Errorf("filter %q: expected key=value", raw)
	}
	col, found := g.Column(key)
	if !found {
		return "", datagrid.FilterValue{}, fmt.Errorf("filter %q: %w: %q", raw, datagrid.ErrUnknownColumn, key)
	}

	switch col.Filter {
	case datagrid.FilterMultiSelect:
		return key, datagrid.MultiFilter(strings.Split(value, ",")...), nil
	case datagrid.FilterDateRange:
		from, to, _ := strings.Cut(value, "..")
		return key, datagrid.RangeFilter(from, to), nil
	case datagrid.FilterSingleSelect:
		return key, datagrid.SelectFilter(value), nil
	case datagrid.FilterDate:
		return key, datagrid.DateFilter(value), nil
	}
	return key, datagrid.TextFilter(value), nil
}
