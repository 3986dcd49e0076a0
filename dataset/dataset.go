// Package dataset fetches raw rows for charts whose data does not come from
// the widget settings.
package dataset

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/bingLAN/chart_driver/catalog"
	"github.com/bingLAN/chart_driver/common"
	"github.com/bingLAN/chart_driver/settings"
	cmap "github.com/orcaman/concurrent-map"
)

var (
	ErrUnknownProvider = errors.New("unknown data provider")
	// ErrPermission marks a source that refused access.
	ErrPermission  = errors.New("permission denied by data source")
	ErrEmptySource = errors.New("data source not configured")
	ErrBadStatus   = errors.New("unexpected response status")
	ErrBadFormat   = errors.New("unsupported data format")
)

// FilterPlaceholder is replaced by the selected filter value in URLs and
// queries.
const FilterPlaceholder = "{{filter}}"

// ProviderError tags a fetch failure with the provider that produced it.
type ProviderError struct {
	Provider string
	Err      error
}

func (e *ProviderError) Error() string {
	return e.Provider + ": " + e.Err.Error()
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// Request is one fetch for one widget.
type Request struct {
	Type     catalog.ChartType
	Settings *settings.Bag
	// Filter is the value picked in the chart filter dropdown.
	Filter string
}

// Provider fetches the raw table of one data option.
type Provider interface {
	Name() string
	Fetch(ctx context.Context, req Request) (*common.Table, error)
}

// ProviderKey returns the provider selected by the settings: the dynamic
// option for dynamic data, the data option otherwise.
func ProviderKey(bag *settings.Bag) string {
	option := bag.DataOption()
	if option == catalog.DataDynamic {
		return bag.StrOr("chart_dynamic_data_option", catalog.DynamicCSV)
	}
	return option
}

// Datasets routes fetches to the registered providers.
type Datasets struct {
	providerMap cmap.ConcurrentMap // key---Provider
}

func NewDatasets(providers ...Provider) *Datasets {
	d := &Datasets{providerMap: cmap.New()}
	for _, p := range providers {
		d.Register(p)
	}
	return d
}

// Register adds p, replacing any provider of the same name.
func (d *Datasets) Register(p Provider) {
	d.providerMap.Set(p.Name(), p)
}

func (d *Datasets) GetProviderByKey(key string) (Provider, error) {
	p, ok := d.providerMap.Get(key)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownProvider, key)
	}
	return p.(Provider), nil
}

// Keys lists the registered provider names.
func (d *Datasets) Keys() []string {
	return d.providerMap.Keys()
}

// Fetch runs the provider selected by req.Settings.
func (d *Datasets) Fetch(ctx context.Context, req Request) (*common.Table, error) {
	key := ProviderKey(req.Settings)
	p, err := d.GetProviderByKey(key)
	if err != nil {
		return nil, &ProviderError{Provider: key, Err: err}
	}
	table, err := p.Fetch(ctx, req)
	if err != nil {
		return nil, &ProviderError{Provider: key, Err: err}
	}
	return table, nil
}

// filterURL substitutes the query escaped filter for the placeholder of a
// source URL.
func filterURL(u, filter string) string {
	return strings.ReplaceAll(u, FilterPlaceholder, url.QueryEscape(filter))
}

// splitColumns parses a comma separated column list.
func splitColumns(s string) []string {
	var cols []string
	for _, c := range strings.Split(s, ",") {
		if c = strings.TrimSpace(c); c != "" {
			cols = append(cols, c)
		}
	}
	return cols
}

// transpose turns a column wise grid into a row wise one.
func transpose(grid [][]string) [][]string {
	width := 0
	for _, row := range grid {
		if len(row) > width {
			width = len(row)
		}
	}
	res := make([][]string, width)
	for j := range res {
		res[j] = make([]string, len(grid))
		for i, row := range grid {
			if j < len(row) {
				res[j][i] = row[j]
			}
		}
	}
	return res
}

// gridTable builds a table from string rows, the first row being the header.
func gridTable(grid [][]string, columnWise bool) *common.Table {
	if columnWise {
		grid = transpose(grid)
	}
	table := &common.Table{Header: []string{}, Body: [][]interface{}{}}
	if len(grid) == 0 {
		return table
	}
	table.Header = append(table.Header, grid[0]...)
	for _, row := range grid[1:] {
		cells := make([]interface{}, len(row))
		for i, c := range row {
			cells[i] = c
		}
		table.Body = append(table.Body, cells)
	}
	return table
}
