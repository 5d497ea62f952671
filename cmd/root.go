package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/StinkyLord/ibuildhw/internal/config"
	"github.com/StinkyLord/ibuildhw/internal/logging"
)

const toolVersion = "1.0.0"

var (
	flagConfig  string
	flagVerbose bool
	flagAPIURL  string
	flagBuild   string
	flagOffline bool
	flagOutput  string
	flagFormat  string

	cfg    *config.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "ibuildhw",
	Short: "PC build compatibility resolver",
	Long: `ibuildhw narrows hardware catalogs to the parts that fit the build you
have chosen so far.

Compatibility rules:
  • CPU and motherboard    socket must match (LGA1851 only matches itself)
  • Motherboard and case   board form factor must be one the case accepts
  • GPU and power supply   PSU wattage must cover the GPU's requirement

The build lives in a YAML sheet (default build.yaml) edited with 'select'.
Catalogs come from the parts API and are cached locally in SQLite.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(flagConfig)
		if err != nil {
			return err
		}
		if flagAPIURL != "" {
			cfg.API.BaseURL = flagAPIURL
		}
		if flagOffline {
			cfg.Cache.Offline = true
		}
		if err := cfg.Validate(); err != nil {
			return err
		}
		if flagBuild == "" {
			flagBuild = cfg.Build.Sheet
		}

		logger, err = logging.New(cfg.Logging, flagVerbose)
		if err != nil {
			return err
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&flagConfig, "config", "c", "ibuildhw.yaml", "Path to the configuration file")
	pf.BoolVarP(&flagVerbose, "verbose", "v", false, "Enable debug logging")
	pf.StringVar(&flagAPIURL, "api-url", "", "Catalog API base URL (overrides config and IBUILDHW_API_URL)")
	pf.StringVarP(&flagBuild, "build", "b", "", "Path to the build sheet (default from config: build.yaml)")
	pf.BoolVar(&flagOffline, "offline", false, "Serve catalogs from the local cache only")

	rootCmd.AddCommand(resolveCmd, selectCmd, statusCmd, refreshCmd, applyCmd, watchCmd, cacheCmd, versionCmd)
}

// addOutputFlags registers --output and --format on commands that print
// reports.
func addOutputFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&flagOutput, "output", "o", "-", "Output file path (use '-' for stdout)")
	cmd.Flags().StringVarP(&flagFormat, "format", "f", "text", "Output format: text, json")
}

// Execute runs the root command. Interrupts cancel in-flight catalog
// requests.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
