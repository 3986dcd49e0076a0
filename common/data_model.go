package common

// SqlRes is one row returned by a raw query, keyed by column name.
type SqlRes = map[string]interface{}

// Series is one named sequence of values plotted against the shared categories.
type Series struct {
	Name string    `json:"name" form:"name"`
	Data []float64 `json:"data" form:"data"`
	// Type is the per-series renderer of mixed charts (bar, line, area).
	Type string `json:"type,omitempty" form:"type"`
	// Points holds the full tuple per category for candle, bubble and
	// timeline charts; Data then carries the first component.
	Points [][]float64 `json:"points,omitempty" form:"-"`
}

// ChartData is the canonical chart data shared by every chart type.
type ChartData struct {
	Series      []Series `json:"series" form:"series"`
	Category    []string `json:"category" form:"category"`
	Fail        bool     `json:"fail" form:"fail"`
	FailMessage string   `json:"fail_message" form:"fail_message"`

	// Google holds the tuple form handed to Google Charts.
	Google *GoogleData `json:"-" form:"-"`
	// Table holds the header/body form of datatable charts.
	Table *Table `json:"-" form:"-"`
	// Nodes holds the hierarchy of organization charts.
	Nodes []OrgNode `json:"-" form:"-"`
}

// OrgNode is one entry of an organization chart.
type OrgNode struct {
	Name    string `json:"name"`
	Parent  string `json:"parent"`
	Tooltip string `json:"tooltip"`
	Value   string `json:"value"`
}

// GoogleData is the googlechartData block of the chart settings response.
type GoogleData struct {
	Count      int             `json:"count"`
	TitleArray []string        `json:"title_array"`
	Data       [][]interface{} `json:"data"`
	Title      string          `json:"title"`
}

// Table is the header/body form consumed by the datatable widget.
type Table struct {
	Header []string        `json:"header"`
	Body   [][]interface{} `json:"body"`
}

// Records returns the body rows keyed by header name.
func (t *Table) Records() []SqlRes {
	res := make([]SqlRes, 0, len(t.Body))
	for _, row := range t.Body {
		rec := make(SqlRes, len(t.Header))
		for i, name := range t.Header {
			if i < len(row) {
				rec[name] = row[i]
			}
		}
		res = append(res, rec)
	}
	return res
}

// Column returns the index of name in the header, or -1.
func (t *Table) Column(name string) int {
	for i, h := range t.Header {
		if h == name {
			return i
		}
	}
	return -1
}

// MaxPoints returns the length of the longest series.
func (c *ChartData) MaxPoints() int {
	n := 0
	for i := range c.Series {
		if l := len(c.Series[i].Data); l > n {
			n = l
		}
	}
	return n
}

// Empty reports whether there is nothing to plot.
func (c *ChartData) Empty() bool {
	return len(c.Series) == 0 && len(c.Category) == 0
}

// FailedChartData builds the short-circuit result of a failed data source.
func FailedChartData(msg string) *ChartData {
	return &ChartData{Series: []Series{}, Category: []string{}, Fail: true, FailMessage: msg}
}
