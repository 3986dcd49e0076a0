// Package cli is the chart_driver command line.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bingLAN/chart_driver"
	"github.com/bingLAN/chart_driver/ajax"
	"github.com/bingLAN/chart_driver/catalog"
	"github.com/bingLAN/chart_driver/config"
	"github.com/bingLAN/chart_driver/logging"
	"github.com/bingLAN/chart_driver/schema"
	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/cobra"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Version is set at build time.
var Version = "dev"

type App struct {
	root       *cobra.Command
	stdout     io.Writer
	stderr     io.Writer
	configPath string
}

func New() *App {
	app := &App{stdout: os.Stdout, stderr: os.Stderr}
	app.root = &cobra.Command{
		Use:           "chart_driver",
		Short:         "Chart settings, data and AJAX service",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	app.root.PersistentFlags().StringVarP(&app.configPath, "config", "c", "", "config file (yaml)")
	app.root.AddCommand(
		app.newVersionCmd(),
		app.newServeCmd(),
		app.newSchemaCmd(),
		app.newNonceCmd(),
		app.newHashCmd(),
	)
	return app
}

// WithOutput sets custom output writers.
func (a *App) WithOutput(stdout, stderr io.Writer) *App {
	a.stdout = stdout
	a.stderr = stderr
	a.root.SetOut(stdout)
	a.root.SetErr(stderr)
	return a
}

func (a *App) Execute(ctx context.Context) error {
	ctx, cancel := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()
	return a.root.ExecuteContext(ctx)
}

// ExecuteWithArgs runs the CLI with specific arguments.
func (a *App) ExecuteWithArgs(ctx context.Context, args []string) error {
	a.root.SetArgs(args)
	return a.Execute(ctx)
}

func (a *App) loadConfig() (*config.Config, error) {
	if a.configPath == "" {
		cfg := config.Default()
		cfg.Security.NonceSecret = os.Getenv("CHART_NONCE_SECRET")
		cfg.Security.AdminToken = os.Getenv("CHART_ADMIN_TOKEN")
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
		return &cfg, nil
	}
	return config.NewLoader().LoadFile(a.configPath)
}

func (a *App) newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			_, _ = fmt.Fprintf(a.stdout, "chart_driver %s\n", Version)
		},
	}
}

func (a *App) newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the AJAX endpoint",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.loadConfig()
			if err != nil {
				return err
			}
			driver, err := chart_driver.New(*cfg)
			if err != nil {
				return err
			}
			defer driver.Close()

			errs := make(chan error, 1)
			go func() {
				logging.Info().Add(logging.Str("addr", cfg.Server.Addr)).Msg("chart service listening")
				errs <- driver.Serve()
			}()
			select {
			case err := <-errs:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return err
			case <-cmd.Context().Done():
			}
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return driver.Shutdown(ctx)
		},
	}
}

func (a *App) newSchemaCmd() *cobra.Command {
	var all bool
	cmd := &cobra.Command{
		Use:   "schema [chart type]",
		Short: "Print the settings schema of a chart type",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if all || len(args) == 0 {
				types := catalog.AllTypes()
				names := make([]string, len(types))
				for i, t := range types {
					names[i] = t.String()
				}
				return a.printJSON(names)
			}
			t := catalog.ParseChartType(args[0])
			if !t.Known() {
				return fmt.Errorf("unknown chart type %q", args[0])
			}
			return a.printJSON(schema.Build(t))
		},
	}
	cmd.Flags().BoolVar(&all, "list", false, "list the chart types")
	return cmd
}

func (a *App) newNonceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "nonce <purpose>",
		Short: "Mint a nonce for an action",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.loadConfig()
			if err != nil {
				return err
			}
			nonces := ajax.NewNonceManager(cfg.Security.NonceSecret, cfg.Security.NonceLifetime)
			_, _ = fmt.Fprintln(a.stdout, nonces.Create(args[0]))
			return nil
		},
	}
}

func (a *App) newHashCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hash-password <password>",
		Short: "Hash a chart restriction password",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			hash, err := ajax.HashPassword(args[0])
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(a.stdout, hash)
			return nil
		},
	}
}

func (a *App) printJSON(v interface{}) error {
	enc := json.NewEncoder(a.stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
