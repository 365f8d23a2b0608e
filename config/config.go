// Package config loads grid definitions: which collections are browsable,
// their columns, filters and feature switches.
package config

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"slices"
	"sort"
	"strings"

	"github.com/spf13/viper"

	"gridadmin/datagrid"
)

//go:embed grids.yaml
var defaultGrids []byte

// EnvGridsFile names an optional YAML file merged over the built-in grids.
const EnvGridsFile = "GRIDADMIN_GRIDS"

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("invalid grid config")

// Settings holds every configured grid, keyed by grid name.
type Settings struct {
	Grids map[string]GridConfig `mapstructure:"grids"`
}

// GridConfig describes one grid over a PocketBase collection.
type GridConfig struct {
	Title             string         `mapstructure:"title"`
	Collection        string         `mapstructure:"collection"`
	DefaultSort       string         `mapstructure:"default_sort"`
	PersistenceKey    string         `mapstructure:"persistence_key"`
	PersistPagination bool           `mapstructure:"persist_pagination"`
	Pagination        bool           `mapstructure:"pagination"`
	PageSize          int            `mapstructure:"page_size"`
	InputFilter       bool           `mapstructure:"input_filter"`
	ChainedFilters    []string       `mapstructure:"chained_filters"`
	Expandable        bool           `mapstructure:"expandable"`
	DetailFields      []string       `mapstructure:"detail_fields"`
	Selectable        bool           `mapstructure:"selectable"`
	SelectableWhen    *Condition     `mapstructure:"selectable_when"`
	ColumnsVisible    bool           `mapstructure:"columns_visible_option"`
	DataExport        bool           `mapstructure:"data_export"`
	RowColHighlight   bool           `mapstructure:"row_col_highlight"`
	GridSettings      bool           `mapstructure:"grid_settings"`
	Columns           []ColumnConfig `mapstructure:"columns"`
}

// Condition excludes rows whose Column value is one of NotIn.
type Condition struct {
	Column string   `mapstructure:"column"`
	NotIn  []string `mapstructure:"not_in"`
}

// Allows reports whether a row with the given column value passes.
func (c *Condition) Allows(value string) bool {
	if c == nil {
		return true
	}
	return !slices.Contains(c.NotIn, value)
}

// ColumnConfig describes one column. Kind is "field" (default) or "computed";
// Render names a renderer registered by the host.
type ColumnConfig struct {
	Key      string            `mapstructure:"key"`
	Header   string            `mapstructure:"header"`
	Kind     string            `mapstructure:"kind"`
	Render   string            `mapstructure:"render"`
	Sortable bool              `mapstructure:"sortable"`
	Filter   string            `mapstructure:"filter"`
	Options  []string          `mapstructure:"options"`
	LabelMap map[string]string `mapstructure:"label_map"`
	Hidden   bool              `mapstructure:"hidden"`
	Width    int               `mapstructure:"width"`
	Class    string            `mapstructure:"class"`
}

// IsComputed reports whether the column has no backing field.
func (c ColumnConfig) IsComputed() bool { return c.Kind == "computed" }

// Load reads the built-in grids and merges the YAML file at path over them.
// An empty path falls back to $GRIDADMIN_GRIDS; when both are empty only the
// built-in grids are used.
func Load(path string) (Settings, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	if err := v.ReadConfig(bytes.NewReader(defaultGrids)); err != nil {
		return Settings{}, fmt.Errorf("read default grids: %w", err)
	}

	if path == "" {
		path = os.Getenv(EnvGridsFile)
	}
	if path != "" {
		v.SetConfigFile(path)
		if err := v.MergeInConfig(); err != nil {
			return Settings{}, fmt.Errorf("merge grids file %s: %w", path, err)
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return Settings{}, fmt.Errorf("unmarshal grids: %w", err)
	}
	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// Names returns the grid names in sorted order.
func (s Settings) Names() []string {
	names := make([]string, 0, len(s.Grids))
	for name := range s.Grids {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Validate checks every grid.
func (s Settings) Validate() error {
	var errs []error
	for _, name := range s.Names() {
		if err := s.Grids[name].Validate(); err != nil {
			errs = append(errs, fmt.Errorf("grid %q: %w", name, err))
		}
	}
	return errors.Join(errs...)
}

// Validate checks one grid definition.
func (g GridConfig) Validate() error {
	var problems []string
	if g.Collection == "" {
		problems = append(problems, "collection is required")
	}
	if g.PageSize != 0 && !slices.Contains(datagrid.PageSizes, g.PageSize) {
		problems = append(problems, fmt.Sprintf("page_size %d not in %v", g.PageSize, datagrid.PageSizes))
	}

	filters := make(map[string]string, len(g.Columns))
	for i, col := range g.Columns {
		switch {
		case col.Key == "":
			problems = append(problems, fmt.Sprintf("column %d has no key", i))
			continue
		case col.Kind != "" && col.Kind != "field" && col.Kind != "computed":
			problems = append(problems, fmt.Sprintf("column %q: unknown kind %q", col.Key, col.Kind))
		case col.IsComputed() && col.Render == "":
			problems = append(problems, fmt.Sprintf("column %q: computed columns need a render", col.Key))
		}
		if _, dup := filters[col.Key]; dup {
			problems = append(problems, fmt.Sprintf("duplicate column %q", col.Key))
		}
		if !datagrid.FilterType(col.Filter).Valid() {
			problems = append(problems, fmt.Sprintf("column %q: unknown filter %q", col.Key, col.Filter))
		}
		filters[col.Key] = col.Filter
	}

	for _, key := range g.ChainedFilters {
		ft, ok := filters[key]
		if !ok {
			problems = append(problems, fmt.Sprintf("chained filter %q is not a column", key))
		} else if ft == "" {
			problems = append(problems, fmt.Sprintf("chained filter %q has no filter", key))
		}
	}
	if g.SelectableWhen != nil {
		if _, ok := filters[g.SelectableWhen.Column]; !ok {
			problems = append(problems, fmt.Sprintf("selectable_when column %q is not a column", g.SelectableWhen.Column))
		}
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(problems, "; "))
	}
	return nil
}
