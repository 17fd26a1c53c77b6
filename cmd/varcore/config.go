package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Config is the typed shape of ~/.varcore.yaml, mirroring the three keys
// initConfig defaults in main.go (workers, store.path, sidecar.codec).
// Unlike the donor's loose viper.AllSettings()/viper.Set dump, config show
// always reports exactly these fields, and config get/set reject anything
// else rather than silently round-tripping an unknown key.
type Config struct {
	Workers int `yaml:"workers"`
	Store   struct {
		Path string `yaml:"path"`
	} `yaml:"store"`
	Sidecar struct {
		Codec string `yaml:"codec"`
	} `yaml:"sidecar"`
}

// configKeys are the only keys config get/set recognize. Ordered for
// deterministic --help/error output.
var configKeys = []string{"workers", "store.path", "sidecar.codec"}

func isKnownConfigKey(key string) bool {
	for _, k := range configKeys {
		if k == key {
			return true
		}
	}
	return false
}

func loadConfig() (*Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	return &cfg, nil
}

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage varcore configuration",
		Long:  "Show, get, or set configuration values. Config is stored in ~/.varcore.yaml.",
		Example: `  varcore config                       # show all config
  varcore config set workers 8         # set worker pool size
  varcore config get store.path        # get a value`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigShow()
		},
	}

	cmd.AddCommand(newConfigSetCmd())
	cmd.AddCommand(newConfigGetCmd())

	return cmd
}

func newConfigSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: fmt.Sprintf("Set a configuration value (%v)", configKeys),
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigSet(args[0], args[1])
		},
	}
}

func newConfigGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <key>",
		Short: fmt.Sprintf("Get a configuration value (%v)", configKeys),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigGet(args[0])
		},
	}
}

func runConfigShow() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	out, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	fmt.Print(string(out))
	return nil
}

func runConfigSet(key, value string) error {
	if !isKnownConfigKey(key) {
		return fmt.Errorf("unknown config key %q (expected one of %v)", key, configKeys)
	}

	if key == "workers" {
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("workers must be an integer: %w", err)
		}
		viper.Set(key, n)
	} else {
		viper.Set(key, value)
	}

	cfgFile := viper.ConfigFileUsed()
	if cfgFile == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("cannot determine home directory: %w", err)
		}
		cfgFile = filepath.Join(home, ".varcore.yaml")
	}

	if err := viper.WriteConfigAs(cfgFile); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	fmt.Printf("Set %s = %s in %s\n", key, value, cfgFile)
	return nil
}

func runConfigGet(key string) error {
	if !isKnownConfigKey(key) {
		return fmt.Errorf("unknown config key %q (expected one of %v)", key, configKeys)
	}

	val := viper.Get(key)
	if val == nil {
		return fmt.Errorf("key %q is not set", key)
	}
	fmt.Println(val)
	return nil
}
