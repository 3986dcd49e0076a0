package normalize

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/bingLAN/chart_driver/catalog"
	"github.com/bingLAN/chart_driver/common"
	"github.com/bingLAN/chart_driver/schema"
	"github.com/bingLAN/chart_driver/settings"
)

// valueSeries names the single series of label/value charts.
const valueSeries = "Value"

// Manual builds chart data from the repeaters of the settings.
func Manual(bag *settings.Bag, ph Placeholder) *common.ChartData {
	caps := catalog.Lookup(bag.Type)
	switch {
	case caps.Org:
		return manualOrg(bag)
	case caps.Circle || caps.Tuples:
		return manualLabelValue(bag, ph)
	}
	return manualSeries(bag, ph)
}

// manualNumber coerces a manual cell. Empty cells get a placeholder and
// non numeric text counts as 0.
func manualNumber(v any, ph Placeholder, key string) float64 {
	if strings.TrimSpace(common.CellString(v)) == "" {
		if ph == nil {
			return 0
		}
		return ph.Value(key)
	}
	return common.NumberOrZero(v)
}

func cellKey(bag *settings.Bag, semantic string, row int) string {
	return bag.Key(semantic) + "#" + strconv.Itoa(row)
}

func manualSeries(bag *settings.Bag, ph Placeholder) *common.ChartData {
	data := &common.ChartData{Series: []common.Series{}, Category: []string{}}
	for _, row := range bag.Rows("category_list") {
		data.Category = append(data.Category, row.Str("chart_category"))
	}

	for i := 0; i < bag.SeriesCount(); i++ {
		n := strconv.Itoa(i)
		semantics := schema.PointSemantics(bag.Type, i)
		s := common.Series{
			Name: bag.StrOr("chart_title_3_"+n, fmt.Sprintf("Element %d", i+1)),
			Data: []float64{},
		}
		if bag.Type == catalog.Mixed {
			s.Type = bag.StrOr("chart_type_3_"+n, catalog.FirstKey(catalog.MixedSeriesTypes))
		}
		for j, row := range bag.Rows("value_list_3_1_repeaters_" + n) {
			point := make([]float64, len(semantics))
			for k, sem := range semantics {
				point[k] = manualNumber(row.Raw(sem), ph, cellKey(bag, sem, j))
			}
			s.Data = append(s.Data, point[0])
			if len(semantics) > 1 {
				s.Points = append(s.Points, point)
			}
		}
		data.Series = append(data.Series, s)
	}
	return data
}

func manualLabelValue(bag *settings.Bag, ph Placeholder) *common.ChartData {
	data := &common.ChartData{Category: []string{}}
	s := common.Series{Name: valueSeries, Data: []float64{}}
	limit := bag.SeriesCount()
	for j, row := range bag.Rows("values") {
		if j >= limit {
			break
		}
		data.Category = append(data.Category, row.Str("chart_label"))
		s.Data = append(s.Data, manualNumber(row.Raw("chart_value"), ph, cellKey(bag, "chart_value", j)))
	}
	data.Series = []common.Series{s}
	return data
}

// manualOrg reads at most series-count rows and skips rows without a name
// or value.
func manualOrg(bag *settings.Bag) *common.ChartData {
	var nodes []common.OrgNode
	limit := bag.SeriesCount()
	for j, row := range bag.Rows("values") {
		if j >= limit {
			break
		}
		nodes = append(nodes, common.OrgNode{
			Name:    strings.TrimSpace(row.Str("chart_label")),
			Parent:  strings.TrimSpace(row.Str("chart_parent")),
			Tooltip: row.Str("chart_tooltip"),
			Value:   strings.TrimSpace(row.Str("chart_value")),
		})
	}
	return orgData(nodes)
}

func orgData(nodes []common.OrgNode) *common.ChartData {
	data := &common.ChartData{Category: []string{}, Nodes: []common.OrgNode{}}
	s := common.Series{Name: valueSeries, Data: []float64{}}
	for _, node := range nodes {
		if node.Name == "" || node.Value == "" {
			continue
		}
		data.Nodes = append(data.Nodes, node)
		data.Category = append(data.Category, node.Name)
		s.Data = append(s.Data, common.NumberOrZero(node.Value))
	}
	data.Series = []common.Series{s}
	return data
}
