// Package compile maps canonical chart data and widget settings onto the
// options object of the client chart library.
package compile

import (
	"strconv"

	"github.com/bingLAN/chart_driver/catalog"
	"github.com/bingLAN/chart_driver/common"
	"github.com/bingLAN/chart_driver/settings"
)

// Options is a nested render options object. Marshalling sorts map keys, so
// equal inputs always encode to the same bytes.
type Options = map[string]interface{}

// Pattern fill geometry shared by every pattern style.
const (
	PatternWidth       = 6
	PatternHeight      = 6
	PatternStrokeWidth = 2
)

// Compile builds the options of bag.Type: ApexCharts options, Google Charts
// options or datatable options. Missing settings fall back to their
// defaults and a failed data set compiles to empty options.
func Compile(bag *settings.Bag, data *common.ChartData) Options {
	if data == nil {
		data = &common.ChartData{}
	}
	caps := catalog.Lookup(bag.Type)
	switch {
	case caps.Datatable:
		return Datatable(bag)
	case caps.Google:
		return Google(bag, data)
	}
	return Apex(bag, data)
}

// Datatable builds the table widget behaviour options.
func Datatable(bag *settings.Bag) Options {
	return Options{
		"searching":  bag.Bool("table_search"),
		"paging":     bag.Bool("table_pagination"),
		"pageLength": bag.IntOr("table_page_length", 10),
		"ordering":   bag.Bool("table_sort"),
	}
}

// slots returns how many per-series settings apply: one per slice for
// circle charts, one per series otherwise.
func slots(caps catalog.Capabilities, data *common.ChartData) int {
	n := len(data.Series)
	if caps.Circle || caps.Tuples {
		n = len(data.Category)
	}
	if n > caps.MaxSeries {
		n = caps.MaxSeries
	}
	return n
}

func colors(bag *settings.Bag, n int) []string {
	res := make([]string, n)
	for i := range res {
		res[i] = bag.StrOr("chart_gradient_1_"+strconv.Itoa(i), catalog.ColorAt(i))
	}
	return res
}

func gradientColors(bag *settings.Bag, n int) []string {
	res := make([]string, n)
	for i := range res {
		res[i] = bag.StrOr("chart_gradient_2_"+strconv.Itoa(i), catalog.GradientAt(i))
	}
	return res
}

func patterns(bag *settings.Bag, n int) []string {
	res := make([]string, n)
	for i := range res {
		def := catalog.PatternStyles[i%len(catalog.PatternStyles)].Key
		res[i] = bag.StrOr("chart_bg_pattern_"+strconv.Itoa(i), def)
	}
	return res
}

func indices(n int) []int {
	res := make([]int, n)
	for i := range res {
		res[i] = i
	}
	return res
}

func percent(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64) + "%"
}
