// Package chart_driver wires the option store, external connections, data
// providers and the AJAX dispatcher into one service.
package chart_driver

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/bingLAN/chart_driver/ajax"
	"github.com/bingLAN/chart_driver/common"
	"github.com/bingLAN/chart_driver/config"
	"github.com/bingLAN/chart_driver/dataset"
	"github.com/bingLAN/chart_driver/datasource"
	"github.com/bingLAN/chart_driver/logging"
	"github.com/bingLAN/chart_driver/normalize"
	"github.com/bingLAN/chart_driver/settings"
	"github.com/bingLAN/chart_driver/store"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// DocumentPrefix prefixes the option key of a stored page document.
const DocumentPrefix = "_elementor_data_"

type ChartDriver struct {
	store       store.Store
	datasources *datasource.Datasources
	datasets    *dataset.Datasets
	nonces      *ajax.NonceManager
	server      *ajax.Server
	closers     []func() error
}

type Option func(*options)

type options struct {
	store store.Store
	tags  settings.TagResolver
	forms dataset.FormEntries
}

// WithStore replaces the configured option store.
func WithStore(s store.Store) Option {
	return func(o *options) {
		o.store = s
	}
}

// WithTagResolver expands dynamic tags bound to widget fields.
func WithTagResolver(t settings.TagResolver) Option {
	return func(o *options) {
		o.tags = t
	}
}

// WithFormEntries replaces the HTTP form entries source.
func WithFormEntries(f dataset.FormEntries) Option {
	return func(o *options) {
		o.forms = f
	}
}

// New builds the service from a validated configuration.
func New(cfg config.Config, opts ...Option) (*ChartDriver, error) {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	logging.Init(cfg.Log)

	c := &ChartDriver{store: o.store}
	if c.store == nil {
		s, closer, err := openStore(cfg.Store)
		if err != nil {
			return nil, err
		}
		c.store = s
		if closer != nil {
			c.closers = append(c.closers, closer)
		}
	}

	c.datasources = datasource.NewDatasources(c.store, connectionConfig(cfg.Database))
	c.closers = append(c.closers, func() error {
		c.datasources.Close()
		return nil
	})

	fetcher := dataset.NewFetcher(dataset.FetcherConfig{
		Timeout:      cfg.Providers.HTTPTimeout,
		MaxAttempts:  cfg.Providers.RetryAttempts,
		InitialDelay: cfg.Providers.RetryDelay,
	})
	forms := o.forms
	if forms == nil {
		forms = dataset.HTTPFormEntries{BaseURL: cfg.Providers.FormsURL, Fetcher: fetcher}
	}
	c.datasets = dataset.NewDatasets(
		dataset.NewCSVProvider(fetcher),
		dataset.NewRemoteCSVProvider(fetcher),
		dataset.NewSpreadsheetProvider(fetcher),
		dataset.NewAPIProvider(fetcher),
		dataset.NewFirebaseProvider(fetcher),
		dataset.NewDatabaseProvider(c.datasources),
		dataset.NewSQLBuilderProvider(c.datasources, cfg.Providers.SQLBuilderLimit),
		dataset.NewForminatorProvider(forms),
	)

	resolverOpts := []settings.Option{settings.WithDocumentLookup(c.Documents())}
	if o.tags != nil {
		resolverOpts = append(resolverOpts, settings.WithTagResolver(o.tags))
	}
	normalizer := normalize.New(c.datasets,
		normalize.WithPlaceholder(normalize.NewSeededPlaceholder(cfg.Providers.PlaceholderSeed)))

	c.nonces = ajax.NewNonceManager(cfg.Security.NonceSecret, cfg.Security.NonceLifetime)
	dispatcher := ajax.NewDispatcher(c.store, c.datasources, settings.NewResolver(resolverOpts...), normalizer, c.nonces,
		ajax.WithAuthorizer(ajax.TokenAuthorizer{Token: cfg.Security.AdminToken}))
	c.server = ajax.NewServer(ajax.ServerConfig{
		Addr:         cfg.Server.Addr,
		AjaxPath:     cfg.Server.AjaxPath,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}, dispatcher)
	return c, nil
}

func openStore(cfg config.StoreConfig) (store.Store, func() error, error) {
	switch cfg.Driver {
	case config.StoreMysql:
		db, err := gorm.Open(mysql.Open(cfg.DSN), &gorm.Config{})
		if err != nil {
			return nil, nil, fmt.Errorf("open option store: %w", err)
		}
		s, err := store.NewGormStore(db)
		if err != nil {
			return nil, nil, fmt.Errorf("migrate option store: %w", err)
		}
		return s, func() error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.Close()
		}, nil
	case config.StoreRedis:
		s, err := store.NewRedisStore(cfg.Redis)
		if err != nil {
			return nil, nil, fmt.Errorf("open option store: %w", err)
		}
		return s, s.Close, nil
	}
	return store.NewMemoryStore(), nil, nil
}

func connectionConfig(cfg config.DatabaseConfig) common.Configuration {
	res := common.DefaultConfiguration()
	if cfg.MaxPoolSize > 0 {
		res.MaxPoolSize = cfg.MaxPoolSize
	}
	if cfg.MaxIdleConns > 0 {
		res.MaxIdleConns = cfg.MaxIdleConns
	}
	if cfg.ConnectTimeout > 0 {
		res.ConnectTimeout = uint(cfg.ConnectTimeout / time.Second)
	}
	if cfg.QueryTimeout > 0 {
		res.QueryTimeout = uint(cfg.QueryTimeout / time.Second)
	}
	return res
}

// Documents looks page documents up in the option store.
func (c *ChartDriver) Documents() settings.DocumentLookup {
	return settings.DocumentLookupFunc(func(ctx context.Context, pageID string) ([]settings.Node, error) {
		var nodes []settings.Node
		if err := c.store.Get(ctx, DocumentPrefix+pageID, &nodes); err != nil {
			return nil, err
		}
		return nodes, nil
	})
}

// SaveDocument stores the element tree of a page for widgets that post no
// settings of their own.
func (c *ChartDriver) SaveDocument(ctx context.Context, pageID string, nodes []settings.Node) error {
	return c.store.Set(ctx, DocumentPrefix+pageID, nodes)
}

func (c *ChartDriver) Store() store.Store {
	return c.store
}

func (c *ChartDriver) Nonces() *ajax.NonceManager {
	return c.nonces
}

// ProviderKeys lists the registered data provider keys.
func (c *ChartDriver) ProviderKeys() []string {
	return c.datasets.Keys()
}

// Handler returns the routed HTTP handler.
func (c *ChartDriver) Handler() http.Handler {
	return c.server.Handler()
}

// Serve listens until Shutdown is called.
func (c *ChartDriver) Serve() error {
	return c.server.Start()
}

func (c *ChartDriver) Shutdown(ctx context.Context) error {
	return c.server.Shutdown(ctx)
}

// Close releases the option store and every cached connection.
func (c *ChartDriver) Close() error {
	var first error
	for i := len(c.closers) - 1; i >= 0; i-- {
		if err := c.closers[i](); err != nil && first == nil {
			first = err
		}
	}
	return first
}
