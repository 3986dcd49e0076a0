package db_driver

import (
	"context"
	"errors"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/bingLAN/chart_driver/common"
	gosql "github.com/go-sql-driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestMysqlDSN(t *testing.T) {
	conn := common.DatabaseConnection{Host: "db.local", DBName: "sales", UserName: "root", Pass: "p@ss/word?x=1"}
	cfg := common.Configuration{ConnectTimeout: 3, QueryTimeout: 20, ExtraParams: "sql_mode=ANSI&bad;pair"}
	got := MysqlDSN(conn, cfg)

	parsed, err := gosql.ParseDSN(got)
	if err != nil {
		t.Fatalf("ParseDSN(%q): %v", got, err)
	}
	if parsed.User != "root" || parsed.Passwd != conn.Pass || parsed.Addr != "db.local:3306" || parsed.DBName != "sales" {
		t.Errorf("parsed = %+v", parsed)
	}
	if !parsed.ParseTime || parsed.Loc != time.Local {
		t.Errorf("time handling = %v %v", parsed.ParseTime, parsed.Loc)
	}
	if parsed.Timeout != 3*time.Second || parsed.ReadTimeout != 20*time.Second {
		t.Errorf("timeouts = %v %v", parsed.Timeout, parsed.ReadTimeout)
	}
	if parsed.Params["sql_mode"] != "ANSI" {
		t.Errorf("params = %v", parsed.Params)
	}
	if !strings.Contains(got, "charset=utf8mb4") {
		t.Errorf("charset missing from %q", got)
	}

	ipv6 := MysqlDSN(common.DatabaseConnection{Host: "::1", Port: "3307", DBName: "d", UserName: "u"}, common.Configuration{})
	if !strings.Contains(ipv6, "@tcp([::1]:3307)/d") {
		t.Errorf("ipv6 dsn = %q", ipv6)
	}
}

func TestClickhouseDSN(t *testing.T) {
	conn := common.DatabaseConnection{Host: "ch", Port: "9440", DBName: "events", UserName: "u", Pass: "p&q"}
	got := ClickhouseDSN(conn, common.Configuration{ConnectTimeout: 2, QueryTimeout: 10})
	if !strings.HasPrefix(got, "tcp://ch:9440?database=events&username=u&password=p%26q") {
		t.Errorf("ClickhouseDSN = %q", got)
	}
	if !strings.Contains(got, "dial_timeout=2s") {
		t.Errorf("missing dial timeout in %q", got)
	}
}

func TestNewUnsupportedVendor(t *testing.T) {
	_, err := New(common.DatabaseConnection{Vendor: "oracle"}, common.DefaultConfiguration())
	if !errors.Is(err, ErrUnsupportedVendor) {
		t.Errorf("New = %v, want ErrUnsupportedVendor", err)
	}
}

func TestTestConnectionHonoursContext(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()
	// 192.0.2.0/24 is reserved for documentation and never answers.
	conn := common.DatabaseConnection{ConName: "x", Vendor: "mysql", Host: "192.0.2.1", DBName: "d", UserName: "u", Pass: "p"}
	start := time.Now()
	err := TestConnection(ctx, conn, common.Configuration{ConnectTimeout: 30})
	if err == nil {
		t.Fatal("expected connection failure")
	}
	if time.Since(start) > 5*time.Second {
		t.Errorf("connection test took %v", time.Since(start))
	}
}

func TestValidIdentifier(t *testing.T) {
	for name, want := range map[string]bool{
		"orders":       true,
		"shop.orders":  true,
		"_tmp1":        true,
		"orders; drop": false,
		"1orders":      false,
		"a.b.c":        false,
		"":             false,
		"orders`--":    false,
	} {
		if got := ValidIdentifier(name); got != want {
			t.Errorf("ValidIdentifier(%q) = %v", name, got)
		}
	}
}

func sqliteDriver(t *testing.T) *gormDriver {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sales.db")
	d := &gormDriver{config: common.Configuration{QueryTimeout: 5}, status: Unknown}
	d.open = func() (gorm.Dialector, error) {
		return sqlite.Open(path), nil
	}
	if err := d.DBConn(); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = d.Close() })

	stmts := []string{
		"CREATE TABLE orders (month TEXT, region TEXT, sales INTEGER, cost REAL)",
		"INSERT INTO orders VALUES ('Jan', 'EU', 10, 4.5), ('Feb', 'EU', 12, 5)",
	}
	for _, stmt := range stmts {
		if err := d.dbConn.Exec(stmt).Error; err != nil {
			t.Fatal(err)
		}
	}
	return d
}

func TestQueryKeepsColumnOrder(t *testing.T) {
	d := sqliteDriver(t)
	ctx := context.Background()

	if d.CheckDBConnStatus(ctx) != ConnSuccess {
		t.Fatal("sqlite ping failed")
	}
	table, err := d.Query(ctx, "SELECT sales, month FROM orders ORDER BY sales")
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(table.Header, []string{"sales", "month"}) {
		t.Errorf("header = %v", table.Header)
	}
	if len(table.Body) != 2 || table.Body[0][1] != "Jan" {
		t.Errorf("body = %v", table.Body)
	}

	table, err = d.QueryTable(ctx, "orders", []string{"region", "cost"}, 1)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(table.Header, []string{"region", "cost"}) || len(table.Body) != 1 {
		t.Errorf("QueryTable = %+v", table)
	}

	if _, err := d.QueryTable(ctx, "orders; DROP TABLE orders", nil, 0); !errors.Is(err, ErrInvalidIdentifier) {
		t.Errorf("QueryTable with bad name = %v", err)
	}
}

func TestClosedDriver(t *testing.T) {
	d := sqliteDriver(t)
	_ = d.Close()
	if _, err := d.Query(context.Background(), "SELECT 1"); !errors.Is(err, ErrNotConnected) {
		t.Errorf("Query after Close = %v", err)
	}
	if err := d.DBRecovery(context.Background()); err != nil {
		t.Fatal(err)
	}
	if d.GetDBConnStatus() != ConnSuccess {
		t.Errorf("status after recovery = %d", d.GetDBConnStatus())
	}
}
