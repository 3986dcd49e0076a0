package dataset

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"

	"github.com/bingLAN/chart_driver/catalog"
	"github.com/bingLAN/chart_driver/common"
)

// CSVProvider reads an uploaded or remote CSV file.
type CSVProvider struct {
	name    string
	fetcher *Fetcher
}

// NewCSVProvider serves the csv option.
func NewCSVProvider(f *Fetcher) *CSVProvider {
	return &CSVProvider{name: catalog.DynamicCSV, fetcher: f}
}

// NewRemoteCSVProvider serves the remote-csv option.
func NewRemoteCSVProvider(f *Fetcher) *CSVProvider {
	return &CSVProvider{name: catalog.DynamicRemoteCSV, fetcher: f}
}

func (p *CSVProvider) Name() string {
	return p.name
}

func (p *CSVProvider) Fetch(ctx context.Context, req Request) (*common.Table, error) {
	bag := req.Settings
	data, err := p.fetcher.Get(ctx, filterURL(bag.Str("chart_csv_url"), req.Filter))
	if err != nil {
		return nil, err
	}
	grid, err := ParseCSV(data)
	if err != nil {
		return nil, err
	}
	table := gridTable(grid, bag.Bool("chart_csv_column_wise_enable"))
	return projectXY(table, bag.Str("chart_sql_builder_x_columns"), bag.Str("chart_sql_builder_y_columns"))
}

// ParseCSV reads every record of data. A leading byte order mark is
// dropped and ragged rows are allowed.
func ParseCSV(data []byte) ([][]string, error) {
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))
	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true
	grid, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadFormat, err)
	}
	return grid, nil
}
