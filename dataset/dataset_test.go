package dataset

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"reflect"
	"sync/atomic"
	"testing"
	"time"

	"github.com/bingLAN/chart_driver/catalog"
	"github.com/bingLAN/chart_driver/common"
	"github.com/bingLAN/chart_driver/db_driver"
	"github.com/bingLAN/chart_driver/settings"
	"github.com/xuri/excelize/v2"
)

func testFetcher() *Fetcher {
	return NewFetcher(FetcherConfig{Timeout: 2 * time.Second, MaxAttempts: 3, InitialDelay: time.Millisecond})
}

func request(t catalog.ChartType, values map[string]any) Request {
	return Request{Type: t, Settings: settings.NewBag(t, values)}
}

func TestFetcherRetriesServerErrors(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = w.Write([]byte("ok"))
	}))
	defer srv.Close()

	data, err := testFetcher().Get(context.Background(), srv.URL)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "ok" || atomic.LoadInt32(&calls) != 3 {
		t.Errorf("data %q after %d calls", data, calls)
	}
}

func TestFetcherPermission(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	_, err := testFetcher().Get(context.Background(), srv.URL)
	if !errors.Is(err, ErrPermission) {
		t.Fatalf("err = %v, want ErrPermission", err)
	}
	if atomic.LoadInt32(&calls) != 1 {
		t.Errorf("permission failure retried %d times", calls)
	}
	if _, err := testFetcher().Get(context.Background(), ""); !errors.Is(err, ErrEmptySource) {
		t.Errorf("empty url err = %v", err)
	}
}

func TestCSVProvider(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("region") == "eu" {
			_, _ = w.Write([]byte("\xef\xbb\xbfmonth,sales,cost\nJan,10,4\nFeb,12,5\n"))
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	p := NewCSVProvider(testFetcher())
	req := request(catalog.Line, map[string]any{
		"iq_line_chart_data_option":         catalog.DataDynamic,
		"iq_line_chart_dynamic_data_option": catalog.DynamicCSV,
		"iq_line_chart_csv_url":             srv.URL + "/data.csv?region={{filter}}",
	})
	req.Filter = "eu"

	table, err := p.Fetch(context.Background(), req)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(table.Header, []string{"month", "sales", "cost"}) {
		t.Errorf("header = %v", table.Header)
	}
	if len(table.Body) != 2 || table.Body[1][0] != "Feb" {
		t.Errorf("body = %v", table.Body)
	}
}

func TestCSVColumnWise(t *testing.T) {
	grid, err := ParseCSV([]byte("month,Jan,Feb\nsales,10,12\n"))
	if err != nil {
		t.Fatal(err)
	}
	table := gridTable(grid, true)
	if !reflect.DeepEqual(table.Header, []string{"month", "sales"}) {
		t.Errorf("header = %v", table.Header)
	}
	if !reflect.DeepEqual(table.Body, [][]interface{}{{"Jan", "10"}, {"Feb", "12"}}) {
		t.Errorf("body = %v", table.Body)
	}
}

func TestSpreadsheetProvider(t *testing.T) {
	f := excelize.NewFile()
	rows := [][]interface{}{{"month", "sales"}, {"Jan", 10}, {"Feb", 12}}
	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow("Sheet1", cell, &row); err != nil {
			t.Fatal(err)
		}
	}
	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatal(err)
	}
	_ = f.Close()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(buf.Bytes())
	}))
	defer srv.Close()

	req := request(catalog.Column, map[string]any{"iq_column_chart_sheet_url": srv.URL})
	table, err := NewSpreadsheetProvider(testFetcher()).Fetch(context.Background(), req)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(table.Header, []string{"month", "sales"}) || len(table.Body) != 2 {
		t.Errorf("table = %+v", table)
	}
	if _, err := ReadSheet(buf.Bytes(), "Missing"); !errors.Is(err, ErrBadFormat) {
		t.Errorf("missing sheet err = %v", err)
	}
}

func TestDecodeJSON(t *testing.T) {
	tests := []struct {
		name   string
		in     string
		header []string
		rows   int
	}{
		{"series", `{"series":[{"name":"a","data":[1,2]}],"category":["x","y"]}`, []string{"category", "a"}, 2},
		{"wrapped", `{"data":{"series":[{"name":"a","data":[1]}],"category":["x"]}}`, []string{"category", "a"}, 1},
		{"rows", `[["month","sales"],["Jan",1]]`, []string{"month", "sales"}, 1},
		{"records", `[{"sales":1,"month":"Jan"},{"month":"Feb","sales":2}]`, []string{"month", "sales"}, 2},
		{"keyed", `{"-Nb":{"month":"Jan","sales":1},"-Na":{"month":"Feb","sales":2}}`, []string{"month", "sales"}, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table, err := DecodeJSON([]byte(tt.in))
			if err != nil {
				t.Fatal(err)
			}
			if !reflect.DeepEqual(table.Header, tt.header) || len(table.Body) != tt.rows {
				t.Errorf("table = %+v", table)
			}
		})
	}
	if _, err := DecodeJSON([]byte(`"text"`)); !errors.Is(err, ErrBadFormat) {
		t.Errorf("scalar err = %v", err)
	}
}

func TestFirebaseAppendsJSONSuffix(t *testing.T) {
	var path string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		_, _ = w.Write([]byte(`[{"month":"Jan","sales":3}]`))
	}))
	defer srv.Close()

	req := request(catalog.Line, map[string]any{
		"iq_line_chart_data_option":  catalog.DataFirebase,
		"iq_line_chart_firebase_url": srv.URL + "/sales/",
	})
	if _, err := NewFirebaseProvider(testFetcher()).Fetch(context.Background(), req); err != nil {
		t.Fatal(err)
	}
	if path != "/sales.json" {
		t.Errorf("path = %s", path)
	}
}

func TestAPIProviderEscapesFilter(t *testing.T) {
	var query map[string][]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query = r.URL.Query()
		_, _ = w.Write([]byte(`[{"month":"Jan","sales":3}]`))
	}))
	defer srv.Close()

	req := request(catalog.Line, map[string]any{
		"iq_line_chart_data_option":         catalog.DataDynamic,
		"iq_line_chart_dynamic_data_option": catalog.DynamicAPI,
		"iq_line_chart_api_url":             srv.URL + "/sales?region={{filter}}&year=2024",
	})
	req.Filter = "eu&token=x#top"

	if _, err := NewAPIProvider(testFetcher()).Fetch(context.Background(), req); err != nil {
		t.Fatal(err)
	}
	want := map[string][]string{"region": {"eu&token=x#top"}, "year": {"2024"}}
	if !reflect.DeepEqual(query, want) {
		t.Errorf("query = %v, want %v", query, want)
	}
}

type fakeDriver struct {
	db_driver.DBDriver
	query  string
	args   []interface{}
	table  string
	cols   []string
	result *common.Table
}

func (f *fakeDriver) Query(ctx context.Context, sql string, values ...interface{}) (*common.Table, error) {
	f.query, f.args = sql, values
	return f.result, nil
}

func (f *fakeDriver) QueryTable(ctx context.Context, table string, columns []string, limit int) (*common.Table, error) {
	f.table, f.cols = table, columns
	return f.result, nil
}

type fakeDrivers map[string]*fakeDriver

func (f fakeDrivers) Driver(ctx context.Context, name string) (db_driver.DBDriver, error) {
	d, ok := f[name]
	if !ok {
		return nil, errors.New("no such connection")
	}
	return d, nil
}

func TestDatabaseProviderBindsFilter(t *testing.T) {
	d := &fakeDriver{result: &common.Table{
		Header: []string{"sales", "month"},
		Body:   [][]interface{}{{int64(1), "Jan"}},
	}}
	p := NewDatabaseProvider(fakeDrivers{"prod": d})
	req := request(catalog.Line, map[string]any{
		"iq_line_chart_import_from_database":  "prod",
		"iq_line_chart_sql_query":             "SELECT month, sales FROM orders WHERE region = {{filter}}",
		"iq_line_chart_sql_builder_x_columns": "month",
		"iq_line_chart_sql_builder_y_columns": "sales",
	})
	req.Filter = "eu'; --"

	table, err := p.Fetch(context.Background(), req)
	if err != nil {
		t.Fatal(err)
	}
	if d.query != "SELECT month, sales FROM orders WHERE region = ?" || !reflect.DeepEqual(d.args, []interface{}{"eu'; --"}) {
		t.Errorf("query %q args %v", d.query, d.args)
	}
	if !reflect.DeepEqual(table.Header, []string{"month", "sales"}) {
		t.Errorf("projected header = %v", table.Header)
	}

	empty := request(catalog.Line, map[string]any{})
	if _, err := p.Fetch(context.Background(), empty); !errors.Is(err, ErrEmptySource) {
		t.Errorf("empty settings err = %v", err)
	}
}

func TestSQLBuilderMergesDimensions(t *testing.T) {
	d := &fakeDriver{result: &common.Table{
		Header: []string{"month", "region", "sales"},
		Body:   [][]interface{}{{"Jan", "EU", 1}, {"Feb", "US", 2}},
	}}
	p := NewSQLBuilderProvider(fakeDrivers{"prod": d}, 100)
	req := request(catalog.Column, map[string]any{
		"iq_column_chart_import_from_database":  "prod",
		"iq_column_chart_import_from_table":     "orders",
		"iq_column_chart_sql_builder_x_columns": "month, region",
		"iq_column_chart_sql_builder_y_columns": "sales",
	})
	table, err := p.Fetch(context.Background(), req)
	if err != nil {
		t.Fatal(err)
	}
	if d.table != "orders" || !reflect.DeepEqual(d.cols, []string{"month", "region", "sales"}) {
		t.Errorf("queried %s %v", d.table, d.cols)
	}
	if !reflect.DeepEqual(table.Header, []string{"month region", "sales"}) || table.Body[1][0] != "Feb US" {
		t.Errorf("table = %+v", table)
	}
}

type staticEntries []map[string]interface{}

func (s staticEntries) Entries(ctx context.Context, formID string) ([]map[string]interface{}, error) {
	return s, nil
}

func TestForminatorProvider(t *testing.T) {
	p := NewForminatorProvider(staticEntries{{"name": "a", "score": 3}, {"name": "b", "score": 4}})
	req := request(catalog.Bar, map[string]any{"iq_bar_chart_forminator_form": "12"})
	table, err := p.Fetch(context.Background(), req)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(table.Header, []string{"name", "score"}) || len(table.Body) != 2 {
		t.Errorf("table = %+v", table)
	}
}

func TestDatasetsRouting(t *testing.T) {
	d := NewDatasets(NewCSVProvider(testFetcher()), NewAPIProvider(testFetcher()))
	req := request(catalog.Line, map[string]any{
		"iq_line_chart_data_option":         catalog.DataDynamic,
		"iq_line_chart_dynamic_data_option": catalog.DynamicSQLBuilder,
	})
	_, err := d.Fetch(context.Background(), req)
	var perr *ProviderError
	if !errors.As(err, &perr) || perr.Provider != catalog.DynamicSQLBuilder || !errors.Is(err, ErrUnknownProvider) {
		t.Errorf("err = %v", err)
	}
	if ProviderKey(settings.NewBag(catalog.Line, nil)) != catalog.DataManual {
		t.Error("default provider key should be manual")
	}
	if len(d.Keys()) != 2 {
		t.Errorf("keys = %v", d.Keys())
	}
}

func TestChartGrouping(t *testing.T) {
	table := &common.Table{
		Header: []string{"month", "sales", "cost"},
		Body:   [][]interface{}{{"Jan", "10", 4.5}, {"Feb", int64(12), nil}},
	}
	data := Chart(table, Fields(table.Header, 1))
	if !reflect.DeepEqual(data.Category, []string{"Jan", "Feb"}) {
		t.Errorf("category = %v", data.Category)
	}
	if len(data.Series) != 2 || !reflect.DeepEqual(data.Series[1].Data, []float64{4.5, 0}) {
		t.Errorf("series = %+v", data.Series)
	}
	if _, err := Project(table, []string{"missing"}); err == nil {
		t.Error("projecting a missing column should fail")
	}
}
