package dataset

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/bingLAN/chart_driver/catalog"
	"github.com/bingLAN/chart_driver/common"
	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// APIProvider reads JSON from a remote endpoint.
type APIProvider struct {
	fetcher *Fetcher
}

func NewAPIProvider(f *Fetcher) *APIProvider {
	return &APIProvider{fetcher: f}
}

func (p *APIProvider) Name() string {
	return catalog.DynamicAPI
}

func (p *APIProvider) Fetch(ctx context.Context, req Request) (*common.Table, error) {
	bag := req.Settings
	data, err := p.fetcher.Get(ctx, filterURL(bag.Str("chart_api_url"), req.Filter))
	if err != nil {
		return nil, err
	}
	table, err := DecodeJSON(data)
	if err != nil {
		return nil, err
	}
	return projectXY(table, bag.Str("chart_sql_builder_x_columns"), bag.Str("chart_sql_builder_y_columns"))
}

// FirebaseProvider reads a realtime database node over its REST interface.
type FirebaseProvider struct {
	fetcher *Fetcher
}

func NewFirebaseProvider(f *Fetcher) *FirebaseProvider {
	return &FirebaseProvider{fetcher: f}
}

func (p *FirebaseProvider) Name() string {
	return catalog.DataFirebase
}

func (p *FirebaseProvider) Fetch(ctx context.Context, req Request) (*common.Table, error) {
	bag := req.Settings
	endpoint := filterURL(bag.Str("chart_firebase_url"), req.Filter)
	if endpoint != "" && !strings.Contains(endpoint, ".json") {
		endpoint = strings.TrimSuffix(endpoint, "/") + ".json"
	}
	data, err := p.fetcher.Get(ctx, endpoint)
	if err != nil {
		return nil, err
	}
	table, err := DecodeJSON(data)
	if err != nil {
		return nil, err
	}
	return projectXY(table, bag.Str("chart_sql_builder_x_columns"), bag.Str("chart_sql_builder_y_columns"))
}

type seriesDocument struct {
	Series   []common.Series `json:"series"`
	Category []string        `json:"category"`
}

// DecodeJSON accepts a {series, category} document, optionally under a
// "data" key, an array of rows whose first row is the header, or a list or
// keyed object of records. Record columns are sorted by name.
func DecodeJSON(data []byte) (*common.Table, error) {
	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadFormat, err)
	}
	if obj, ok := raw.(map[string]interface{}); ok {
		if inner, ok := obj["data"]; ok && len(obj) == 1 {
			raw = inner
			obj, _ = inner.(map[string]interface{})
		}
		if obj != nil {
			if _, ok := obj["series"]; ok {
				return decodeSeries(raw)
			}
			return recordsTable(sortedValues(obj))
		}
	}
	list, ok := raw.([]interface{})
	if !ok {
		return nil, ErrBadFormat
	}
	if len(list) > 0 {
		if _, ok := list[0].([]interface{}); ok {
			return rowsTable(list)
		}
	}
	return recordsTable(list)
}

func decodeSeries(raw interface{}) (*common.Table, error) {
	encoded, err := json.Marshal(raw)
	if err != nil {
		return nil, err
	}
	var doc seriesDocument
	if err := json.Unmarshal(encoded, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadFormat, err)
	}
	table := &common.Table{Header: []string{"category"}, Body: make([][]interface{}, len(doc.Category))}
	for _, s := range doc.Series {
		table.Header = append(table.Header, s.Name)
	}
	for i, c := range doc.Category {
		row := make([]interface{}, 0, len(table.Header))
		row = append(row, c)
		for _, s := range doc.Series {
			var v interface{}
			if i < len(s.Data) {
				v = s.Data[i]
			}
			row = append(row, v)
		}
		table.Body[i] = row
	}
	return table, nil
}

func sortedValues(obj map[string]interface{}) []interface{} {
	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	res := make([]interface{}, len(keys))
	for i, k := range keys {
		res[i] = obj[k]
	}
	return res
}

func rowsTable(list []interface{}) (*common.Table, error) {
	table := &common.Table{Header: []string{}, Body: [][]interface{}{}}
	for i, item := range list {
		row, ok := item.([]interface{})
		if !ok {
			return nil, ErrBadFormat
		}
		if i == 0 {
			for _, h := range row {
				table.Header = append(table.Header, common.CellString(h))
			}
			continue
		}
		table.Body = append(table.Body, row)
	}
	return table, nil
}

func recordsTable(list []interface{}) (*common.Table, error) {
	table := &common.Table{Header: []string{}, Body: [][]interface{}{}}
	seen := make(map[string]bool)
	records := make([]map[string]interface{}, 0, len(list))
	for _, item := range list {
		rec, ok := item.(map[string]interface{})
		if !ok {
			return nil, ErrBadFormat
		}
		records = append(records, rec)
		for k := range rec {
			if !seen[k] {
				seen[k] = true
				table.Header = append(table.Header, k)
			}
		}
	}
	sort.Strings(table.Header)
	for _, rec := range records {
		row := make([]interface{}, len(table.Header))
		for i, h := range table.Header {
			row[i] = rec[h]
		}
		table.Body = append(table.Body, row)
	}
	return table, nil
}
