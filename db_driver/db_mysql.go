package db_driver

import (
	"net"
	"net/url"
	"time"

	"github.com/bingLAN/chart_driver/common"
	gosql "github.com/go-sql-driver/mysql"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

type MysqlDriver struct {
	gormDriver
}

// MysqlDSN builds the go-sql-driver DSN of conn. Extra params are read as a
// query string; malformed pairs are skipped.
func MysqlDSN(conn common.DatabaseConnection, cfg common.Configuration) string {
	port := conn.Port
	if port == "" {
		port = "3306"
	}
	dsn := gosql.NewConfig()
	dsn.User = conn.UserName
	dsn.Passwd = conn.Pass
	dsn.Net = "tcp"
	dsn.Addr = net.JoinHostPort(conn.Host, port)
	dsn.DBName = conn.DBName
	dsn.ParseTime = true
	dsn.Loc = time.Local
	dsn.Params = map[string]string{"charset": "utf8mb4"}
	if cfg.ConnectTimeout > 0 {
		dsn.Timeout = time.Duration(cfg.ConnectTimeout) * time.Second
	}
	if cfg.QueryTimeout > 0 {
		dsn.ReadTimeout = time.Duration(cfg.QueryTimeout) * time.Second
	}
	if cfg.ExtraParams != "" {
		extra, _ := url.ParseQuery(cfg.ExtraParams)
		for k, v := range extra {
			dsn.Params[k] = v[len(v)-1]
		}
	}
	return dsn.FormatDSN()
}

func NewMysqlDriver(conn common.DatabaseConnection, cfg common.Configuration) (DBDriver, error) {
	source := &MysqlDriver{gormDriver{conn: conn, config: cfg, status: Unknown}}
	source.open = func() (gorm.Dialector, error) {
		return mysql.New(mysql.Config{
			DSN:                       MysqlDSN(conn, cfg),
			DefaultStringSize:         191,
			SkipInitializeWithVersion: true,
		}), nil
	}
	if err := source.DBConn(); err != nil {
		return nil, err
	}
	return source, nil
}
