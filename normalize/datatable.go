package normalize

import (
	"context"
	"html"
	"regexp"
	"strings"

	"github.com/bingLAN/chart_driver/catalog"
	"github.com/bingLAN/chart_driver/common"
	"github.com/bingLAN/chart_driver/settings"
)

// EmptyCell pads short datatable rows.
const EmptyCell = "-"

var linkPattern = regexp.MustCompile(`\[([^\]]*)\]\(([^)\s]+)\)`)

var schemePattern = regexp.MustCompile(`^([a-zA-Z][a-zA-Z0-9+.-]*://|mailto:|tel:)`)

// Datatable builds the header/body form of a datatable widget.
func (n *Normalizer) Datatable(ctx context.Context, req Request) *common.ChartData {
	bag := req.Settings
	var table *common.Table
	if bag.DataOption() == catalog.DataManual {
		table = ManualTable(bag)
	} else {
		raw, err := n.fetch(ctx, req)
		if err != nil {
			return Failed(err)
		}
		table = textTable(raw)
	}
	FitTable(table)
	return &common.ChartData{Series: []common.Series{}, Category: []string{}, Table: table}
}

// ManualTable reads the header titles and row repeaters of the settings.
func ManualTable(bag *settings.Bag) *common.Table {
	caps := catalog.Lookup(bag.Type)
	cols := clamp(bag.IntOr("element_columns", caps.DefaultSeries), 1, catalog.MaxDatatableColumns)
	rows := clamp(bag.IntOr("element_rows", 3), 1, catalog.MaxDatatableRows)

	table := &common.Table{Header: make([]string, 0, cols), Body: make([][]interface{}, 0, rows)}
	for j := 0; j < cols; j++ {
		table.Header = append(table.Header, bag.Str("chart_header_title_"+itoa(j)))
	}
	for i := 0; i < rows; i++ {
		var cells []interface{}
		for _, row := range bag.Rows("row_list" + itoa(i)) {
			cells = append(cells, row.Str("row_value"))
		}
		table.Body = append(table.Body, cells)
	}
	return table
}

func textTable(raw *common.Table) *common.Table {
	table := &common.Table{Header: []string{}, Body: [][]interface{}{}}
	if raw == nil {
		return table
	}
	table.Header = append(table.Header, raw.Header...)
	for _, row := range raw.Body {
		cells := make([]interface{}, len(row))
		for i, c := range row {
			cells[i] = common.CellString(c)
		}
		table.Body = append(table.Body, cells)
	}
	return table
}

// FitTable pads rows with EmptyCell or truncates them to the header width
// and rewrites markdown links in text cells.
func FitTable(table *common.Table) {
	width := len(table.Header)
	for i, row := range table.Body {
		if len(row) > width {
			row = row[:width]
		}
		for len(row) < width {
			row = append(row, EmptyCell)
		}
		for j, c := range row {
			if s, ok := c.(string); ok {
				row[j] = RewriteLinks(s)
			}
		}
		table.Body[i] = row
	}
}

// HeaderEmpty reports whether the table has no titled column.
func HeaderEmpty(table *common.Table) bool {
	if table == nil {
		return true
	}
	for _, h := range table.Header {
		if strings.TrimSpace(h) != "" {
			return false
		}
	}
	return true
}

// RewriteLinks turns every [text](url) into an anchor. URLs without a
// scheme get http://.
func RewriteLinks(s string) string {
	return linkPattern.ReplaceAllStringFunc(s, func(m string) string {
		parts := linkPattern.FindStringSubmatch(m)
		href := parts[2]
		if !schemePattern.MatchString(href) {
			href = "http://" + strings.TrimPrefix(href, "//")
		}
		return `<a href="` + html.EscapeString(href) + `" target="_blank">` + html.EscapeString(parts[1]) + `</a>`
	})
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
