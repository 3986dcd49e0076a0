// Package datasource manages the external database connections stored in
// the connection settings record.
package datasource

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bingLAN/chart_driver/common"
	"github.com/bingLAN/chart_driver/db_driver"
	"github.com/bingLAN/chart_driver/store"
	cmap "github.com/orcaman/concurrent-map"
)

var (
	ErrExists            = errors.New("connection name already exists")
	ErrNotExists         = errors.New("connection does not exist")
	ErrInvalidConnection = errors.New("host, user name, password, database name and connection name are required")
)

// Tester attempts a live connection.
type Tester func(ctx context.Context, conn common.DatabaseConnection, cfg common.Configuration) error

// Opener opens a live driver for a stored connection.
type Opener func(conn common.DatabaseConnection, cfg common.Configuration) (db_driver.DBDriver, error)

type Option func(*Datasources)

// WithTester replaces the live connection test.
func WithTester(t Tester) Option {
	return func(ds *Datasources) {
		ds.tester = t
	}
}

// WithOpener replaces the driver factory used by Driver.
func WithOpener(o Opener) Option {
	return func(ds *Datasources) {
		ds.opener = o
	}
}

// WithConnectTimeout bounds every connection test.
func WithConnectTimeout(d time.Duration) Option {
	return func(ds *Datasources) {
		ds.connectTimeout = d
	}
}

// Datasources is the connection map persisted under common.OptionDatabase.
// Every mutation rewrites the whole record; concurrent writers race
// last-write-wins.
type Datasources struct {
	store          store.Store
	config         common.Configuration
	tester         Tester
	opener         Opener
	connectTimeout time.Duration
	dbDriverMap    cmap.ConcurrentMap // con_name---db_driver.DBDriver
}

func NewDatasources(s store.Store, cfg common.Configuration, opts ...Option) *Datasources {
	ds := &Datasources{
		store:          s,
		config:         cfg,
		tester:         db_driver.TestConnection,
		opener:         db_driver.New,
		connectTimeout: time.Duration(cfg.ConnectTimeout) * time.Second,
		dbDriverMap:    cmap.New(),
	}
	for _, opt := range opts {
		opt(ds)
	}
	return ds
}

// GetDatasourceAll loads the connection map. A missing record is empty.
func (ds *Datasources) GetDatasourceAll(ctx context.Context) (common.Connections, error) {
	conns := common.Connections{}
	if err := store.GetOr(ctx, ds.store, common.OptionDatabase, &conns); err != nil {
		return nil, err
	}
	if conns == nil {
		conns = common.Connections{}
	}
	return conns, nil
}

// GetDatasource returns the connection named name.
func (ds *Datasources) GetDatasource(ctx context.Context, name string) (common.DatabaseConnection, error) {
	conns, err := ds.GetDatasourceAll(ctx)
	if err != nil {
		return common.DatabaseConnection{}, err
	}
	conn, ok := conns[name]
	if !ok {
		return common.DatabaseConnection{}, fmt.Errorf("%w: %s", ErrNotExists, name)
	}
	return conn, nil
}

// CheckDatasource validates conn and attempts a live connection bounded by
// the connect timeout.
func (ds *Datasources) CheckDatasource(ctx context.Context, conn common.DatabaseConnection) error {
	if !conn.Complete() {
		return ErrInvalidConnection
	}
	if ds.connectTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, ds.connectTimeout)
		defer cancel()
	}
	return ds.tester(ctx, conn, ds.config)
}

// CreateDatasource tests conn and stores it. Existing names are left alone.
func (ds *Datasources) CreateDatasource(ctx context.Context, conn common.DatabaseConnection) error {
	if err := ds.CheckDatasource(ctx, conn); err != nil {
		return err
	}
	conns, err := ds.GetDatasourceAll(ctx)
	if err != nil {
		return err
	}
	if _, ok := conns[conn.ConName]; ok {
		return fmt.Errorf("%w: %s", ErrExists, conn.ConName)
	}
	conns[conn.ConName] = conn
	return ds.store.Set(ctx, common.OptionDatabase, conns)
}

// ModifyDatasource tests conn and overwrites the stored entry of the same name.
func (ds *Datasources) ModifyDatasource(ctx context.Context, conn common.DatabaseConnection) error {
	if err := ds.CheckDatasource(ctx, conn); err != nil {
		return err
	}
	conns, err := ds.GetDatasourceAll(ctx)
	if err != nil {
		return err
	}
	if _, ok := conns[conn.ConName]; !ok {
		return fmt.Errorf("%w: %s", ErrNotExists, conn.ConName)
	}
	conns[conn.ConName] = conn
	if err := ds.store.Set(ctx, common.OptionDatabase, conns); err != nil {
		return err
	}
	ds.dropDriver(conn.ConName)
	return nil
}

// DelDatasource removes name when present and persists the map.
func (ds *Datasources) DelDatasource(ctx context.Context, name string) error {
	conns, err := ds.GetDatasourceAll(ctx)
	if err != nil {
		return err
	}
	delete(conns, name)
	if err := ds.store.Set(ctx, common.OptionDatabase, conns); err != nil {
		return err
	}
	ds.dropDriver(name)
	return nil
}

// Driver returns a live driver for the stored connection name, opening and
// caching it on first use.
func (ds *Datasources) Driver(ctx context.Context, name string) (db_driver.DBDriver, error) {
	if d, ok := ds.dbDriverMap.Get(name); ok {
		driver := d.(db_driver.DBDriver)
		if driver.CheckDBConnStatus(ctx) == db_driver.ConnSuccess {
			return driver, nil
		}
		if err := driver.DBRecovery(ctx); err != nil {
			ds.dropDriver(name)
			return nil, err
		}
		return driver, nil
	}

	conn, err := ds.GetDatasource(ctx, name)
	if err != nil {
		return nil, err
	}
	driver, err := ds.opener(conn, ds.config)
	if err != nil {
		return nil, err
	}
	if driver.CheckDBConnStatus(ctx) != db_driver.ConnSuccess {
		_ = driver.Close()
		return nil, fmt.Errorf("connect %s: %w", name, db_driver.ErrNotConnected)
	}
	if !ds.dbDriverMap.SetIfAbsent(name, driver) {
		_ = driver.Close()
		d, _ := ds.dbDriverMap.Get(name)
		return d.(db_driver.DBDriver), nil
	}
	return driver, nil
}

func (ds *Datasources) dropDriver(name string) {
	if d, ok := ds.dbDriverMap.Pop(name); ok {
		_ = d.(db_driver.DBDriver).Close()
	}
}

// Close releases every cached driver.
func (ds *Datasources) Close() {
	for name := range ds.dbDriverMap.Items() {
		ds.dropDriver(name)
	}
}
