// Package main provides the varcore command-line tool.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// Exit codes, following the donor's cmd/vibe-vep convention.
const (
	ExitSuccess = 0
	ExitError   = 1
	ExitUsage   = 2
)

// Version information (set at build time)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	root := newRootCmd()
	if err := root.Execute(); err != nil {
		return ExitError
	}
	return ExitSuccess
}

func newRootCmd() *cobra.Command {
	var cfgFile string

	root := &cobra.Command{
		Use:   "varcore",
		Short: "Variant-annotation input pipeline core",
		Long: `varcore ingests VCF call records into normalized variant and sample
records, persists them to an embedded analytical database, and stitches
block-compressed annotated JSON shards back into a single output.`,
		Version:      fmt.Sprintf("%s (%s) built %s", version, commit, date),
		SilenceUsage: true,
	}

	cobra.OnInitialize(func() { initConfig(cfgFile) })
	root.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default ~/.varcore.yaml)")

	root.AddCommand(newIngestCmd())
	root.AddCommand(newStitchCmd())
	root.AddCommand(newConfigCmd())

	return root
}

func initConfig(cfgFile string) {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
		}
		viper.SetConfigName(".varcore")
		viper.SetConfigType("yaml")
	}

	viper.SetDefault("workers", 0)
	viper.SetDefault("store.path", "")
	viper.SetDefault("sidecar.codec", "json")

	_ = viper.ReadInConfig() // absence of a config file is not an error
}

// newLogger builds a zap production logger, or a development logger when
// verbose output is requested via a subcommand's --verbose flag.
func newLogger(verbose bool) *zap.Logger {
	var logger *zap.Logger
	var err error
	if verbose {
		logger, err = zap.NewDevelopment()
	} else {
		cfg := zap.NewProductionConfig()
		cfg.DisableStacktrace = true
		logger, err = cfg.Build()
	}
	if err != nil {
		logger = zap.NewNop()
	}
	return logger
}
