package dataset

import (
	"context"
	"strings"

	"github.com/bingLAN/chart_driver/catalog"
	"github.com/bingLAN/chart_driver/common"
	"github.com/bingLAN/chart_driver/db_driver"
)

// Drivers hands out live drivers by connection name.
type Drivers interface {
	Driver(ctx context.Context, name string) (db_driver.DBDriver, error)
}

// DatabaseProvider runs the configured SQL query on a stored connection.
// The filter placeholder is bound as a query parameter.
type DatabaseProvider struct {
	drivers Drivers
}

func NewDatabaseProvider(d Drivers) *DatabaseProvider {
	return &DatabaseProvider{drivers: d}
}

func (p *DatabaseProvider) Name() string {
	return catalog.DynamicDatabase
}

func (p *DatabaseProvider) Fetch(ctx context.Context, req Request) (*common.Table, error) {
	bag := req.Settings
	name, query := bag.Str("chart_import_from_database"), strings.TrimSpace(bag.Str("chart_sql_query"))
	if name == "" || query == "" {
		return nil, ErrEmptySource
	}
	driver, err := p.drivers.Driver(ctx, name)
	if err != nil {
		return nil, err
	}

	n := strings.Count(query, FilterPlaceholder)
	args := make([]interface{}, n)
	for i := range args {
		args[i] = req.Filter
	}
	table, err := driver.Query(ctx, strings.ReplaceAll(query, FilterPlaceholder, "?"), args...)
	if err != nil {
		return nil, err
	}
	return projectXY(table, bag.Str("chart_sql_builder_x_columns"), bag.Str("chart_sql_builder_y_columns"))
}

// SQLBuilderProvider selects the configured x and y columns from one table
// of a stored connection.
type SQLBuilderProvider struct {
	drivers Drivers
	limit   int
}

func NewSQLBuilderProvider(d Drivers, limit int) *SQLBuilderProvider {
	return &SQLBuilderProvider{drivers: d, limit: limit}
}

func (p *SQLBuilderProvider) Name() string {
	return catalog.DynamicSQLBuilder
}

func (p *SQLBuilderProvider) Fetch(ctx context.Context, req Request) (*common.Table, error) {
	bag := req.Settings
	name, table := bag.Str("chart_import_from_database"), bag.Str("chart_import_from_table")
	xs, ys := splitColumns(bag.Str("chart_sql_builder_x_columns")), splitColumns(bag.Str("chart_sql_builder_y_columns"))
	if name == "" || table == "" || len(xs) == 0 || len(ys) == 0 {
		return nil, ErrEmptySource
	}
	driver, err := p.drivers.Driver(ctx, name)
	if err != nil {
		return nil, err
	}
	res, err := driver.QueryTable(ctx, table, append(xs, ys...), p.limit)
	if err != nil {
		return nil, err
	}
	return mergeDimensions(res, len(xs)), nil
}
