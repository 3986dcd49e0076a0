package datasource

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/bingLAN/chart_driver/common"
	"github.com/bingLAN/chart_driver/db_driver"
	"github.com/bingLAN/chart_driver/store"
)

func okTester(calls *int) Tester {
	return func(ctx context.Context, conn common.DatabaseConnection, cfg common.Configuration) error {
		*calls++
		return nil
	}
}

func prod(host string) common.DatabaseConnection {
	return common.DatabaseConnection{ConName: "prod", Vendor: "mysql", Host: host, DBName: "sales", UserName: "u", Pass: "p"}
}

func TestConnectionUniqueness(t *testing.T) {
	ctx := context.Background()
	var calls int
	ds := NewDatasources(store.NewMemoryStore(), common.DefaultConfiguration(), WithTester(okTester(&calls)))

	if err := ds.CreateDatasource(ctx, prod("a")); err != nil {
		t.Fatalf("first save: %v", err)
	}
	if err := ds.CreateDatasource(ctx, prod("b")); !errors.Is(err, ErrExists) {
		t.Fatalf("second save = %v, want ErrExists", err)
	}
	got, err := ds.GetDatasource(ctx, "prod")
	if err != nil {
		t.Fatal(err)
	}
	if got.Host != "a" {
		t.Errorf("duplicate save overwrote host: %s", got.Host)
	}

	if err := ds.ModifyDatasource(ctx, prod("b")); err != nil {
		t.Fatalf("edit: %v", err)
	}
	if got, _ := ds.GetDatasource(ctx, "prod"); got.Host != "b" {
		t.Errorf("edit did not overwrite, host %s", got.Host)
	}
	if calls != 3 {
		t.Errorf("connection tested %d times, want 3", calls)
	}
}

func TestEditMissing(t *testing.T) {
	var calls int
	ds := NewDatasources(store.NewMemoryStore(), common.DefaultConfiguration(), WithTester(okTester(&calls)))
	if err := ds.ModifyDatasource(context.Background(), prod("a")); !errors.Is(err, ErrNotExists) {
		t.Errorf("edit missing = %v", err)
	}
}

func TestFailedTestDoesNotPersist(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemoryStore()
	ds := NewDatasources(s, common.DefaultConfiguration(), WithTester(
		func(ctx context.Context, conn common.DatabaseConnection, cfg common.Configuration) error {
			return errors.New("access denied")
		}))

	if err := ds.CreateDatasource(ctx, prod("a")); err == nil || err.Error() != "access denied" {
		t.Fatalf("save = %v", err)
	}
	var conns common.Connections
	if err := s.Get(ctx, common.OptionDatabase, &conns); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("record written after failed test: %v %v", conns, err)
	}
}

func TestCheckRequiresEveryField(t *testing.T) {
	var calls int
	ds := NewDatasources(store.NewMemoryStore(), common.DefaultConfiguration(), WithTester(okTester(&calls)))
	for _, clear := range []func(*common.DatabaseConnection){
		func(c *common.DatabaseConnection) { c.Host = "" },
		func(c *common.DatabaseConnection) { c.UserName = "" },
		func(c *common.DatabaseConnection) { c.Pass = "" },
		func(c *common.DatabaseConnection) { c.DBName = "" },
		func(c *common.DatabaseConnection) { c.ConName = "" },
	} {
		c := prod("a")
		clear(&c)
		if err := ds.CheckDatasource(context.Background(), c); !errors.Is(err, ErrInvalidConnection) {
			t.Errorf("CheckDatasource(%+v) = %v", c, err)
		}
	}
	if calls != 0 {
		t.Errorf("tester called for invalid connections")
	}
}

func TestCheckIsBounded(t *testing.T) {
	ds := NewDatasources(store.NewMemoryStore(), common.DefaultConfiguration(),
		WithConnectTimeout(50*time.Millisecond),
		WithTester(func(ctx context.Context, conn common.DatabaseConnection, cfg common.Configuration) error {
			<-ctx.Done()
			return ctx.Err()
		}))
	err := ds.CheckDatasource(context.Background(), prod("a"))
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("CheckDatasource = %v, want deadline exceeded", err)
	}
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	var calls int
	ds := NewDatasources(store.NewMemoryStore(), common.DefaultConfiguration(), WithTester(okTester(&calls)))
	if err := ds.CreateDatasource(ctx, prod("a")); err != nil {
		t.Fatal(err)
	}
	if err := ds.DelDatasource(ctx, "prod"); err != nil {
		t.Fatal(err)
	}
	if err := ds.DelDatasource(ctx, "missing"); err != nil {
		t.Errorf("deleting a missing name = %v", err)
	}
	all, err := ds.GetDatasourceAll(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 0 {
		t.Errorf("connections after delete = %v", all)
	}
}

type fakeDriver struct {
	closed int
	status db_driver.DBConnStatus
}

func (f *fakeDriver) DBRecovery(ctx context.Context) error {
	return nil
}

func (f *fakeDriver) Close() error {
	f.closed++
	return nil
}

func (f *fakeDriver) GetDBConnStatus() db_driver.DBConnStatus {
	return f.status
}

func (f *fakeDriver) CheckDBConnStatus(ctx context.Context) db_driver.DBConnStatus {
	return f.status
}

func (f *fakeDriver) Query(ctx context.Context, sql string, values ...interface{}) (*common.Table, error) {
	return nil, nil
}

func (f *fakeDriver) QueryTable(ctx context.Context, table string, columns []string, limit int) (*common.Table, error) {
	return nil, nil
}

func TestDriverCache(t *testing.T) {
	ctx := context.Background()
	var calls, opened int
	driver := &fakeDriver{status: db_driver.ConnSuccess}
	ds := NewDatasources(store.NewMemoryStore(), common.DefaultConfiguration(),
		WithTester(okTester(&calls)),
		WithOpener(func(conn common.DatabaseConnection, cfg common.Configuration) (db_driver.DBDriver, error) {
			opened++
			return driver, nil
		}))

	if _, err := ds.Driver(ctx, "prod"); !errors.Is(err, ErrNotExists) {
		t.Fatalf("Driver for unknown name = %v", err)
	}
	if err := ds.CreateDatasource(ctx, prod("a")); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 2; i++ {
		d, err := ds.Driver(ctx, "prod")
		if err != nil {
			t.Fatal(err)
		}
		if d != driver {
			t.Fatal("unexpected driver")
		}
	}
	if opened != 1 {
		t.Errorf("driver opened %d times, want 1", opened)
	}

	if err := ds.ModifyDatasource(ctx, prod("b")); err != nil {
		t.Fatal(err)
	}
	if driver.closed != 1 {
		t.Errorf("edit should close the cached driver")
	}
	ds.Close()
}
