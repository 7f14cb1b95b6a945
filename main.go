package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/christux/bambo/framework/app"
	"github.com/christux/bambo/framework/config"
	"github.com/christux/bambo/framework/container"
	"github.com/christux/bambo/framework/logging"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCommand().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

// ── Commands ─────────────────────────────────────────────────────────────────

type globalFlags struct {
	envFiles []string
	debug    bool
}

func newRootCommand() *cobra.Command {
	g := &globalFlags{}

	root := &cobra.Command{
		Use:          "bambo",
		Short:        "Module-container site server",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringSliceVar(&g.envFiles, "env-file", nil, ".env files to load (default .env)")
	root.PersistentFlags().BoolVar(&g.debug, "debug", false, "debug logging")

	root.AddCommand(newServeCommand(g), newModulesCommand(g), newVersionCommand())
	return root
}

func newServeCommand(g *globalFlags) *cobra.Command {
	var (
		host     string
		port     int
		noReload bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Boot the modules and serve the site",
		Example: `  bambo serve
  bambo serve --host 0.0.0.0 --port 3000 --no-reload`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(g, func(cfg *config.Config) {
				if cmd.Flags().Changed("host") {
					cfg.Server.Host = host
				}
				if cmd.Flags().Changed("port") {
					cfg.Server.Port = port
				}
				if noReload {
					cfg.Server.LiveReload = false
				}
			})
			if err != nil {
				return err
			}

			application, log, err := newApplication(cfg)
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			return application.Run(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&host, "host", "", "listen host (default from config)")
	cmd.Flags().IntVar(&port, "port", 0, "listen port (default from config)")
	cmd.Flags().BoolVar(&noReload, "no-reload", false, "disable live reload")
	return cmd
}

func newModulesCommand(g *globalFlags) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "modules",
		Short: "Boot the modules without serving and print their state",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(g, func(cfg *config.Config) {
				cfg.Server.LiveReload = false
			})
			if err != nil {
				return err
			}

			application, log, err := newApplication(cfg)
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			if err := application.Boot(cmd.Context()); err != nil {
				return err
			}
			return printModules(cmd.OutOrStdout(), application.Injector().Modules(), asJSON)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return cmd
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "bambo", version)
		},
	}
}

// ── Helpers ──────────────────────────────────────────────────────────────────

func loadConfig(g *globalFlags, override func(*config.Config)) (*config.Config, error) {
	cfg, err := config.Load(g.envFiles...)
	if err != nil {
		return nil, err
	}
	if cfg.App.Version == "dev" {
		cfg.App.Version = version
	}
	if g.debug {
		cfg.App.Debug = true
		cfg.Log.Level = "debug"
	}
	override(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newApplication(cfg *config.Config) (*app.Application, *zap.Logger, error) {
	log, err := logging.New(cfg.Log)
	if err != nil {
		return nil, nil, err
	}
	application, err := app.New(cfg, log)
	if err != nil {
		return nil, nil, err
	}
	return application, log, nil
}

func printModules(w io.Writer, modules []container.ModuleInfo, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(modules)
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tSTARTUP\tINSTANTIATED")
	for _, m := range modules {
		fmt.Fprintf(tw, "%s\t%t\t%t\n", m.Name, m.LoadOnStartup, m.Instantiated)
	}
	return tw.Flush()
}
