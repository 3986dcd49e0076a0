package normalize

import (
	"strconv"

	"github.com/bingLAN/chart_driver/common"
)

func itoa(i int) string {
	return strconv.Itoa(i)
}

// Align pads every series with 0 or truncates it to the category count.
func Align(data *common.ChartData) {
	n := len(data.Category)
	for i := range data.Series {
		s := &data.Series[i]
		if len(s.Data) > n {
			s.Data = s.Data[:n]
		}
		for len(s.Data) < n {
			s.Data = append(s.Data, 0)
		}
		if s.Points == nil {
			continue
		}
		width := 1
		if len(s.Points) > 0 {
			width = len(s.Points[0])
		}
		if len(s.Points) > n {
			s.Points = s.Points[:n]
		}
		for len(s.Points) < n {
			s.Points = append(s.Points, make([]float64, width))
		}
	}
}

// Distribute keeps the first series only and truncates both its data and
// the categories to count.
func Distribute(data *common.ChartData, count int) {
	if len(data.Series) > 1 {
		data.Series = data.Series[:1]
	}
	if len(data.Category) > count {
		data.Category = data.Category[:count]
	}
	if len(data.Series) == 1 && len(data.Series[0].Data) > count {
		data.Series[0].Data = data.Series[0].Data[:count]
	}
}
