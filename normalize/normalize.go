// Package normalize turns widget settings and raw provider rows into the
// canonical chart data consumed by the option compiler.
package normalize

import (
	"context"
	"errors"

	"github.com/bingLAN/chart_driver/catalog"
	"github.com/bingLAN/chart_driver/common"
	"github.com/bingLAN/chart_driver/dataset"
	"github.com/bingLAN/chart_driver/settings"
)

// PermissionMessage is reported when a data source refuses access.
const PermissionMessage = "You do not have permission to access this data source."

// Fetcher loads the raw table of a non manual data source.
type Fetcher interface {
	Fetch(ctx context.Context, req dataset.Request) (*common.Table, error)
}

// Request is one normalization.
type Request struct {
	Settings *settings.Bag
	// Filter is the selected chart filter value, if any.
	Filter string
	// Format overrides the normalizer number format when set.
	Format NumberFormat
}

type Option func(*Normalizer)

// WithPlaceholder replaces the preview value strategy for empty manual cells.
func WithPlaceholder(p Placeholder) Option {
	return func(n *Normalizer) {
		n.placeholder = p
	}
}

func WithNumberFormat(f NumberFormat) Option {
	return func(n *Normalizer) {
		n.format = f
	}
}

type Normalizer struct {
	fetcher     Fetcher
	placeholder Placeholder
	format      NumberFormat
}

func New(f Fetcher, opts ...Option) *Normalizer {
	n := &Normalizer{
		fetcher:     f,
		placeholder: NewSeededPlaceholder(0),
		format:      DefaultNumberFormat(),
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Normalize builds the canonical data of one widget. Data source failures
// are reported through ChartData.Fail, never as an error.
func (n *Normalizer) Normalize(ctx context.Context, req Request) *common.ChartData {
	bag := req.Settings
	caps := catalog.Lookup(bag.Type)
	if caps.Datatable {
		return n.Datatable(ctx, req)
	}

	var data *common.ChartData
	if bag.DataOption() == catalog.DataManual {
		data = Manual(bag, n.placeholder)
	} else {
		table, err := n.fetch(ctx, req)
		if err != nil {
			return Failed(err)
		}
		data = FromTable(bag, table)
	}

	if bag.Type == catalog.DistributedColumn {
		Distribute(data, bag.SeriesCount())
	}
	Align(data)
	if caps.Google {
		format := req.Format
		if format == (NumberFormat{}) {
			format = n.format
		}
		data.Google = Google(bag, data, format)
	}
	return data
}

func (n *Normalizer) fetch(ctx context.Context, req Request) (*common.Table, error) {
	if n.fetcher == nil {
		return nil, dataset.ErrUnknownProvider
	}
	return n.fetcher.Fetch(ctx, dataset.Request{Type: req.Settings.Type, Settings: req.Settings, Filter: req.Filter})
}

// Failed maps a data source error onto the short-circuit result.
func Failed(err error) *common.ChartData {
	if errors.Is(err, dataset.ErrPermission) {
		return common.FailedChartData(PermissionMessage)
	}
	return common.FailedChartData(err.Error())
}
