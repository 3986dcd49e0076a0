// Package db_driver opens live connections to the external databases charts
// read from.
package db_driver

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/bingLAN/chart_driver/common"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type DBConnStatus = int

const (
	Unknown DBConnStatus = iota - 1
	ConnSuccess
	ConnFail
)

const (
	DatasourceCH    string = "clickhouse"
	DatasourceMYSQL string = "mysql"
)

var (
	ErrUnsupportedVendor = errors.New("unsupported database vendor")
	ErrInvalidIdentifier = errors.New("invalid table or column name")
	ErrNotConnected      = errors.New("database not connected")
)

type DBDriverHandle struct {
	CreateFunc func(conn common.DatabaseConnection, cfg common.Configuration) (DBDriver, error)
}

var DBDriverMap = map[string]DBDriverHandle{
	DatasourceCH:    {CreateFunc: NewClickhouseDriver},
	DatasourceMYSQL: {CreateFunc: NewMysqlDriver},
}

type DBDriver interface {
	// DBRecovery closes and reopens the pool.
	DBRecovery(ctx context.Context) error
	Close() error
	// GetDBConnStatus returns the last known status.
	GetDBConnStatus() DBConnStatus
	// CheckDBConnStatus pings the database now.
	CheckDBConnStatus(ctx context.Context) DBConnStatus
	// Query runs a raw statement. Columns keep the statement's order.
	Query(ctx context.Context, sql string, values ...interface{}) (*common.Table, error)
	// QueryTable selects columns from table, at most limit rows when limit > 0.
	QueryTable(ctx context.Context, table string, columns []string, limit int) (*common.Table, error)
}

// New opens a driver for conn.Vendor. An empty vendor means mysql.
func New(conn common.DatabaseConnection, cfg common.Configuration) (DBDriver, error) {
	vendor := strings.ToLower(conn.Vendor)
	if vendor == "" {
		vendor = DatasourceMYSQL
	}
	handle, ok := DBDriverMap[vendor]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedVendor, conn.Vendor)
	}
	return handle.CreateFunc(conn, cfg)
}

// TestConnection opens conn, pings it within ctx and closes it again.
func TestConnection(ctx context.Context, conn common.DatabaseConnection, cfg common.Configuration) error {
	type result struct {
		driver DBDriver
		err    error
	}
	done := make(chan result, 1)
	go func() {
		d, err := New(conn, cfg)
		done <- result{d, err}
	}()

	var d DBDriver
	select {
	case <-ctx.Done():
		go func() {
			if r := <-done; r.driver != nil {
				_ = r.driver.Close()
			}
		}()
		return ctx.Err()
	case r := <-done:
		if r.err != nil {
			return r.err
		}
		d = r.driver
	}
	defer d.Close()

	if d.CheckDBConnStatus(ctx) != ConnSuccess {
		if err := ctx.Err(); err != nil {
			return err
		}
		if gd, ok := d.(interface{ lastError() error }); ok && gd.lastError() != nil {
			return gd.lastError()
		}
		return ErrNotConnected
	}
	return nil
}

var identifierRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_$]*(\.[A-Za-z_][A-Za-z0-9_$]*)?$`)

// ValidIdentifier reports whether name is a plain, optionally schema
// qualified, identifier.
func ValidIdentifier(name string) bool {
	return identifierRe.MatchString(name)
}

// gormDriver holds the pool shared by every vendor. Vendors differ only in
// how the dialector is opened.
type gormDriver struct {
	dbConn *gorm.DB
	conn   common.DatabaseConnection
	config common.Configuration
	status DBConnStatus
	err    error
	open   func() (gorm.Dialector, error)
}

func gormConfig() *gorm.Config {
	return &gorm.Config{
		Logger:               logger.Default.LogMode(logger.Silent),
		DisableAutomaticPing: true,
	}
}

// DBConn opens the pool. The pool is not pinged here.
func (g *gormDriver) DBConn() error {
	dialector, err := g.open()
	if err != nil {
		g.status, g.err = ConnFail, err
		return err
	}
	db, err := gorm.Open(dialector, gormConfig())
	if err != nil {
		g.status, g.err = ConnFail, err
		return err
	}

	sqlDB, err := db.DB()
	if err != nil {
		g.status, g.err = ConnFail, err
		return err
	}
	sqlDB.SetMaxIdleConns(int(g.config.MaxIdleConns))
	sqlDB.SetMaxOpenConns(int(g.config.MaxPoolSize))
	sqlDB.SetConnMaxIdleTime(time.Duration(g.config.ConnectTimeout) * time.Second)
	g.dbConn = db
	g.status, g.err = ConnSuccess, nil
	return nil
}

func (g *gormDriver) DBRecovery(ctx context.Context) error {
	_ = g.Close()
	if err := g.DBConn(); err != nil {
		return err
	}
	if g.CheckDBConnStatus(ctx) != ConnSuccess {
		return g.err
	}
	return nil
}

func (g *gormDriver) Close() error {
	if g.dbConn == nil {
		return nil
	}
	sqlDB, err := g.dbConn.DB()
	g.dbConn = nil
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (g *gormDriver) GetDBConnStatus() DBConnStatus {
	return g.status
}

// CheckDBConnStatus pings the pool, opening it first when needed. A ctx
// without deadline is bounded by the configured connect timeout.
func (g *gormDriver) CheckDBConnStatus(ctx context.Context) DBConnStatus {
	if g.dbConn == nil {
		if err := g.DBConn(); err != nil {
			return ConnFail
		}
	}
	if _, ok := ctx.Deadline(); !ok && g.config.ConnectTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(g.config.ConnectTimeout)*time.Second)
		defer cancel()
	}

	sqlDB, err := g.dbConn.DB()
	if err == nil {
		err = sqlDB.PingContext(ctx)
	}
	if err != nil {
		g.status, g.err = ConnFail, err
		return ConnFail
	}
	g.status, g.err = ConnSuccess, nil
	return ConnSuccess
}

func (g *gormDriver) lastError() error {
	return g.err
}

func (g *gormDriver) queryContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if _, ok := ctx.Deadline(); !ok && g.config.QueryTimeout > 0 {
		return context.WithTimeout(ctx, time.Duration(g.config.QueryTimeout)*time.Second)
	}
	return ctx, func() {}
}

func (g *gormDriver) Query(ctx context.Context, sql string, values ...interface{}) (*common.Table, error) {
	if g.dbConn == nil {
		return nil, ErrNotConnected
	}
	ctx, cancel := g.queryContext(ctx)
	defer cancel()

	return scanTable(g.dbConn.WithContext(ctx).Raw(sql, values...))
}

func (g *gormDriver) QueryTable(ctx context.Context, table string, columns []string, limit int) (*common.Table, error) {
	if g.dbConn == nil {
		return nil, ErrNotConnected
	}
	if !ValidIdentifier(table) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidIdentifier, table)
	}
	for _, c := range columns {
		if !ValidIdentifier(c) {
			return nil, fmt.Errorf("%w: %q", ErrInvalidIdentifier, c)
		}
	}
	ctx, cancel := g.queryContext(ctx)
	defer cancel()

	tx := g.dbConn.WithContext(ctx).Table(table)
	if len(columns) > 0 {
		tx = tx.Select(columns)
	}
	if limit > 0 {
		tx = tx.Limit(limit)
	}
	return scanTable(tx)
}

// scanTable reads every row of tx, keeping column order. Byte slices are
// returned as strings.
func scanTable(tx *gorm.DB) (*common.Table, error) {
	rows, err := tx.Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}
	res := &common.Table{Header: columns, Body: [][]interface{}{}}
	for rows.Next() {
		cells := make([]interface{}, len(columns))
		ptrs := make([]interface{}, len(columns))
		for i := range cells {
			ptrs[i] = &cells[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, err
		}
		for i, c := range cells {
			if b, ok := c.([]byte); ok {
				cells[i] = string(b)
			}
		}
		res.Body = append(res.Body, cells)
	}
	return res, rows.Err()
}
