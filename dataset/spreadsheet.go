package dataset

import (
	"bytes"
	"context"
	"fmt"

	"github.com/bingLAN/chart_driver/catalog"
	"github.com/bingLAN/chart_driver/common"
	"github.com/xuri/excelize/v2"
)

// SpreadsheetProvider reads one sheet of an xlsx workbook, typically a
// spreadsheet export link.
type SpreadsheetProvider struct {
	fetcher *Fetcher
}

func NewSpreadsheetProvider(f *Fetcher) *SpreadsheetProvider {
	return &SpreadsheetProvider{fetcher: f}
}

func (p *SpreadsheetProvider) Name() string {
	return catalog.DynamicSheet
}

func (p *SpreadsheetProvider) Fetch(ctx context.Context, req Request) (*common.Table, error) {
	bag := req.Settings
	data, err := p.fetcher.Get(ctx, filterURL(bag.Str("chart_sheet_url"), req.Filter))
	if err != nil {
		return nil, err
	}
	grid, err := ReadSheet(data, bag.Str("chart_sheet_name"))
	if err != nil {
		return nil, err
	}
	table := gridTable(grid, bag.Bool("chart_csv_column_wise_enable"))
	return projectXY(table, bag.Str("chart_sql_builder_x_columns"), bag.Str("chart_sql_builder_y_columns"))
}

// ReadSheet returns the rows of sheet, or of the first sheet when sheet is
// empty.
func ReadSheet(data []byte, sheet string) ([][]string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadFormat, err)
	}
	defer f.Close()

	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("%w: workbook has no sheets", ErrBadFormat)
		}
		sheet = sheets[0]
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadFormat, err)
	}
	return rows, nil
}
