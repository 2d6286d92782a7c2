package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/MrJamesThe3rd/revrec/internal/api"
	"github.com/MrJamesThe3rd/revrec/internal/config"
	"github.com/MrJamesThe3rd/revrec/internal/dashboard"
	"github.com/MrJamesThe3rd/revrec/internal/logging"
)

type app struct {
	cfg    *config.Config
	client *api.Client
	loader *dashboard.Loader
}

// connect builds the client once flags are parsed, so --api takes effect.
func (a *app) connect() {
	a.client = api.New(a.cfg.API.URL, a.cfg.API.Timeout)
	a.loader = dashboard.NewLoader(a.client)
}

func newRootCmd(a *app) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "revrec",
		Short:        "Upload contracts and review their revenue recognition",
		SilenceUsage: true,
		PersistentPreRun: func(*cobra.Command, []string) {
			a.connect()
		},
	}

	rootCmd.PersistentFlags().StringVar(&a.cfg.API.URL, "api", a.cfg.API.URL, "backend base URL")

	rootCmd.AddCommand(a.uploadCmd())
	rootCmd.AddCommand(a.samplesCmd())
	rootCmd.AddCommand(a.statusCmd())
	rootCmd.AddCommand(a.listCmd())
	rootCmd.AddCommand(a.showCmd())
	rootCmd.AddCommand(a.memoCmd())
	rootCmd.AddCommand(a.watchCmd())
	rootCmd.AddCommand(a.healthCmd())

	return rootCmd
}

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	closeLog, err := logging.Init(cfg.Logging())
	if err != nil {
		slog.Error("failed to initialise logging", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	err = newRootCmd(&app{cfg: cfg}).ExecuteContext(ctx)

	stop()
	_ = closeLog()

	if err != nil {
		os.Exit(1)
	}
}
