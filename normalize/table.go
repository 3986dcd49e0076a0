package normalize

import (
	"strings"

	"github.com/bingLAN/chart_driver/catalog"
	"github.com/bingLAN/chart_driver/common"
	"github.com/bingLAN/chart_driver/dataset"
	"github.com/bingLAN/chart_driver/schema"
	"github.com/bingLAN/chart_driver/settings"
)

// FromTable maps provider rows onto chart data. The first column holds the
// categories. Candle, bubble and timeline charts read one column per point
// component, in the order of their manual fields.
func FromTable(bag *settings.Bag, table *common.Table) *common.ChartData {
	if table == nil || len(table.Header) == 0 {
		return &common.ChartData{Series: []common.Series{}, Category: []string{}}
	}
	caps := catalog.Lookup(bag.Type)
	switch {
	case caps.Org:
		return orgData(tableNodes(table))
	case caps.Circle || caps.Tuples:
		return tableLabelValue(table)
	}

	var data *common.ChartData
	if width := len(schema.PointSemantics(bag.Type, 0)); width > 1 {
		data = tablePoints(table, width)
	} else {
		data = dataset.Chart(table, dataset.Fields(table.Header, 1))
	}
	if len(data.Series) > caps.MaxSeries {
		data.Series = data.Series[:caps.MaxSeries]
	}
	if bag.Type == catalog.Mixed {
		for i := range data.Series {
			data.Series[i].Type = bag.StrOr("chart_type_3_"+itoa(i), catalog.FirstKey(catalog.MixedSeriesTypes))
		}
	}
	return data
}

func tableLabelValue(table *common.Table) *common.ChartData {
	data := &common.ChartData{Category: make([]string, 0, len(table.Body))}
	name := valueSeries
	if len(table.Header) > 1 {
		name = table.Header[1]
	}
	s := common.Series{Name: name, Data: make([]float64, 0, len(table.Body))}
	for _, row := range table.Body {
		data.Category = append(data.Category, common.CellString(cell(row, 0)))
		s.Data = append(s.Data, common.NumberOrZero(cell(row, 1)))
	}
	data.Series = []common.Series{s}
	return data
}

func tablePoints(table *common.Table, width int) *common.ChartData {
	data := &common.ChartData{Series: []common.Series{}, Category: make([]string, 0, len(table.Body))}
	for _, row := range table.Body {
		data.Category = append(data.Category, common.CellString(cell(row, 0)))
	}
	for col := 1; col+width <= len(table.Header); col += width {
		s := common.Series{Name: table.Header[col], Data: []float64{}}
		for _, row := range table.Body {
			point := make([]float64, width)
			for k := range point {
				point[k] = common.NumberOrZero(cell(row, col+k))
			}
			s.Data = append(s.Data, point[0])
			s.Points = append(s.Points, point)
		}
		data.Series = append(data.Series, s)
	}
	return data
}

// tableNodes reads name, parent, tooltip and value columns by header name,
// falling back to that column order.
func tableNodes(table *common.Table) []common.OrgNode {
	idx := func(name string, pos int) int {
		for i, h := range table.Header {
			if strings.EqualFold(strings.TrimSpace(h), name) {
				return i
			}
		}
		if pos < len(table.Header) {
			return pos
		}
		return -1
	}
	name, parent, tooltip, value := idx("name", 0), idx("parent", 1), idx("tooltip", 2), idx("value", 3)
	nodes := make([]common.OrgNode, 0, len(table.Body))
	for _, row := range table.Body {
		nodes = append(nodes, common.OrgNode{
			Name:    strings.TrimSpace(common.CellString(cell(row, name))),
			Parent:  strings.TrimSpace(common.CellString(cell(row, parent))),
			Tooltip: common.CellString(cell(row, tooltip)),
			Value:   strings.TrimSpace(common.CellString(cell(row, value))),
		})
	}
	return nodes
}

func cell(row []interface{}, i int) interface{} {
	if i < 0 || i >= len(row) {
		return nil
	}
	return row[i]
}
