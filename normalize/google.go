package normalize

import (
	"github.com/bingLAN/chart_driver/catalog"
	"github.com/bingLAN/chart_driver/common"
	"github.com/bingLAN/chart_driver/settings"
)

// GoogleCell is a value with its display text.
type GoogleCell struct {
	V float64 `json:"v"`
	F string  `json:"f"`
}

// Google reshapes aligned chart data into the Google Charts tuple forms:
// [label, value] for pie, donut, gauge and geo charts, [name, parent,
// tooltip] for organization charts and [category, v1, (annotation1), ...]
// rows for the rest.
func Google(bag *settings.Bag, data *common.ChartData, format NumberFormat) *common.GoogleData {
	caps := catalog.Lookup(bag.Type)
	g := &common.GoogleData{TitleArray: []string{}, Data: [][]interface{}{}}
	if bag.Bool("google_chart_title_show") {
		g.Title = bag.Str("google_chart_title")
	}
	prefix, postfix := bag.Str("chart_yaxis_label_prefix"), bag.Str("chart_yaxis_label_postfix")
	value := func(v float64) interface{} {
		if prefix == "" && postfix == "" {
			return v
		}
		return GoogleCell{V: v, F: format.Affix(v, prefix, postfix)}
	}
	for _, s := range data.Series {
		g.TitleArray = append(g.TitleArray, s.Name)
	}

	switch {
	case caps.Org:
		for _, node := range data.Nodes {
			g.Data = append(g.Data, []interface{}{node.Name, node.Parent, node.Tooltip})
		}
	case caps.Tuples:
		if len(data.Series) > 0 {
			for i, label := range data.Category {
				g.Data = append(g.Data, []interface{}{label, value(data.Series[0].Data[i])})
			}
		}
	default:
		annotate := bag.Bool("google_chart_annotation_show")
		for i, label := range data.Category {
			row := make([]interface{}, 0, 1+2*len(data.Series))
			row = append(row, label)
			for _, s := range data.Series {
				row = append(row, value(s.Data[i]))
				if annotate {
					row = append(row, format.Affix(s.Data[i], prefix, postfix))
				}
			}
			g.Data = append(g.Data, row)
		}
	}
	g.Count = len(g.Data)
	return g
}
