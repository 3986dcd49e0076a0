package dataset

import (
	"fmt"
	"sort"
	"strings"

	"github.com/bingLAN/chart_driver/common"
)

// Field roles of a table column.
const (
	FieldDimension = "d"
	FieldQuota     = "q"
)

type FieldDef struct {
	Name        string // column name
	GroupType   string // FieldDimension or FieldQuota
	ColumnIndex int64  // position in the table header
}

type FieldDefList []FieldDef

func (f FieldDefList) Len() int {
	return len(f)
}

func (f FieldDefList) Swap(i, j int) {
	f[i], f[j] = f[j], f[i]
}

func (f FieldDefList) Less(i, j int) bool {
	return f[i].ColumnIndex < f[j].ColumnIndex
}

// Fields declares the first xCount header columns as dimensions and the
// rest as quotas.
func Fields(header []string, xCount int) FieldDefList {
	fields := make(FieldDefList, 0, len(header))
	for i, name := range header {
		groupType := FieldQuota
		if i < xCount {
			groupType = FieldDimension
		}
		fields = append(fields, FieldDef{Name: name, GroupType: groupType, ColumnIndex: int64(i)})
	}
	return fields
}

func (f FieldDefList) byType(groupType string) FieldDefList {
	var res FieldDefList
	for _, field := range f {
		if field.GroupType == groupType {
			res = append(res, field)
		}
	}
	sort.Sort(res)
	return res
}

// xAxis joins the dimension values of every row into one category label.
func xAxis(records []common.SqlRes, dimensionList FieldDefList) []string {
	xs := make([]string, 0, len(records))
	for _, row := range records {
		var names []string
		for _, dimension := range dimensionList {
			if v, ok := row[dimension.Name]; ok {
				names = append(names, common.CellString(v))
			}
		}
		xs = append(xs, strings.Join(names, " "))
	}
	return xs
}

// series builds one series per quota column, one point per row.
func series(records []common.SqlRes, quotaList FieldDefList) []common.Series {
	res := make([]common.Series, 0, len(quotaList))
	for _, quota := range quotaList {
		data := make([]float64, 0, len(records))
		for _, row := range records {
			data = append(data, common.NumberOrZero(row[quota.Name]))
		}
		res = append(res, common.Series{Name: quota.Name, Data: data})
	}
	return res
}

// Chart maps a table onto chart data: dimension columns form the category
// labels and every quota column becomes a series.
func Chart(table *common.Table, fields FieldDefList) *common.ChartData {
	records := table.Records()
	return &common.ChartData{
		Category: xAxis(records, fields.byType(FieldDimension)),
		Series:   series(records, fields.byType(FieldQuota)),
	}
}

// Project keeps columns in the given order. Names are matched case
// insensitively.
func Project(table *common.Table, columns []string) (*common.Table, error) {
	idx := make([]int, len(columns))
	for i, name := range columns {
		idx[i] = -1
		for j, h := range table.Header {
			if strings.EqualFold(strings.TrimSpace(h), name) {
				idx[i] = j
				break
			}
		}
		if idx[i] < 0 {
			return nil, fmt.Errorf("column %q not found", name)
		}
	}
	res := &common.Table{Header: make([]string, len(columns)), Body: make([][]interface{}, 0, len(table.Body))}
	for i, j := range idx {
		res.Header[i] = table.Header[j]
	}
	for _, row := range table.Body {
		cells := make([]interface{}, len(idx))
		for i, j := range idx {
			if j < len(row) {
				cells[i] = row[j]
			}
		}
		res.Body = append(res.Body, cells)
	}
	return res, nil
}

// projectXY applies the x and y column settings when both are given. Several
// x columns are merged into one leading label column.
func projectXY(table *common.Table, x, y string) (*common.Table, error) {
	xs, ys := splitColumns(x), splitColumns(y)
	if len(xs) == 0 || len(ys) == 0 {
		return table, nil
	}
	projected, err := Project(table, append(xs, ys...))
	if err != nil {
		return nil, err
	}
	return mergeDimensions(projected, len(xs)), nil
}

func mergeDimensions(table *common.Table, xCount int) *common.Table {
	if xCount <= 1 {
		return table
	}
	fields := Fields(table.Header, xCount)
	labels := xAxis(table.Records(), fields.byType(FieldDimension))

	res := &common.Table{
		Header: append([]string{strings.Join(table.Header[:xCount], " ")}, table.Header[xCount:]...),
		Body:   make([][]interface{}, len(table.Body)),
	}
	for i, row := range table.Body {
		cells := []interface{}{labels[i]}
		if len(row) > xCount {
			cells = append(cells, row[xCount:]...)
		}
		res.Body[i] = cells
	}
	return res
}
