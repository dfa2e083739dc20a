// cmd/catalog/main.go
package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"libracatalog/internal/catalog"
	"libracatalog/internal/config"
	"libracatalog/internal/display"
	"libracatalog/internal/logging"
	"libracatalog/internal/storage"
	"libracatalog/internal/telemetry"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:           "catalog",
		Short:         "Interactive library catalog manager",
		Long:          "Starts an interactive prompt for adding, removing, updating, searching and listing books.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), v, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}

	flags := cmd.Flags()
	flags.String("storage", "", "catalog file (overrides BOOK_STORAGE_NAME)")
	flags.String("driver", "", "storage driver: file, sqlite or postgres (overrides STORAGE_DRIVER)")
	flags.String("dsn", "", "data source name for SQL drivers (overrides STORAGE_DSN)")
	flags.String("log-level", "", "log level (overrides LOG_LEVEL)")

	for key, flag := range map[string]string{
		config.KeyStorageName:   "storage",
		config.KeyStorageDriver: "driver",
		config.KeyStorageDSN:    "dsn",
		config.KeyLogLevel:      "log-level",
	} {
		if err := v.BindPFlag(key, flags.Lookup(flag)); err != nil {
			panic(fmt.Sprintf("bind %s flag: %v", flag, err))
		}
	}

	return cmd
}

func run(ctx context.Context, v *viper.Viper, in io.Reader, out io.Writer) error {
	config.LoadEnvFiles(config.EnvFiles...)

	cfg, err := config.Load(v)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		return err
	}

	logger := logging.Configure(cfg.LogLevel, cfg.LogFormat)
	ctx = logging.WithLogger(ctx, &logger)

	shutdown, err := telemetry.Setup(ctx, cfg.OTLPEndpoint, "libracatalog")
	if err != nil {
		logger.Error().Err(err).Msg("failed to set up tracing")
		return err
	}
	defer func() {
		if err := shutdown(context.Background()); err != nil {
			logger.Warn().Err(err).Msg("failed to flush traces")
		}
	}()

	gw, closeStorage, err := storage.Open(ctx, cfg.StorageOptions())
	if err != nil {
		logger.Error().Err(err).Str("driver", cfg.StorageDriver).Msg("failed to open storage")
		return err
	}
	defer closeStorage()

	logger.Debug().
		Str("driver", cfg.StorageDriver).
		Str("storage", cfg.StorageName).
		Msg("catalog storage ready")

	svc := catalog.NewService(gw)
	handler := catalog.NewHandler(svc, display.NewPrinter(), out)

	return catalog.NewLoop(handler, in, out).Run(ctx)
}
