package db_driver

import (
	"fmt"
	"net/url"

	"github.com/bingLAN/chart_driver/common"
	"gorm.io/driver/clickhouse"
	"gorm.io/gorm"
)

type ClickhouseDriver struct {
	gormDriver
}

// ClickhouseDSN builds the clickhouse-go DSN of conn.
func ClickhouseDSN(conn common.DatabaseConnection, cfg common.Configuration) string {
	port := conn.Port
	if port == "" {
		port = "9000"
	}
	dsn := fmt.Sprintf("tcp://%s:%s?database=%s&username=%s&password=%s&dial_timeout=%ds&read_timeout=%ds",
		conn.Host, port, url.QueryEscape(conn.DBName), url.QueryEscape(conn.UserName), url.QueryEscape(conn.Pass),
		cfg.ConnectTimeout, cfg.QueryTimeout)
	if cfg.ExtraParams != "" {
		dsn = dsn + "&" + cfg.ExtraParams
	}
	return dsn
}

func NewClickhouseDriver(conn common.DatabaseConnection, cfg common.Configuration) (DBDriver, error) {
	source := &ClickhouseDriver{gormDriver{conn: conn, config: cfg, status: Unknown}}
	source.open = func() (gorm.Dialector, error) {
		return clickhouse.New(clickhouse.Config{DSN: ClickhouseDSN(conn, cfg)}), nil
	}
	if err := source.DBConn(); err != nil {
		return nil, err
	}
	return source, nil
}
