package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/philjestin/ratchet/internal/model"
)

// cfgFile stores an optional explicit path to ratchet.toml (if not provided
// we look for ./ratchet.toml by default).
var cfgFile string

// repoRoot (aka --root) is the workspace root every relative path (config,
// counts document, rule directories, file discovery) is resolved against.
var repoRoot string

var rootCmd = &cobra.Command{
	Use:   "ratchet",
	Short: "Progressive lint-budget enforcement for legacy code",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cfgFile != "" {
			viper.SetConfigFile(cfgFile)
		} else {
			viper.AddConfigPath(repoRoot)
			viper.SetConfigName("ratchet")
			viper.SetConfigType("toml")
		}

		viper.SetEnvPrefix("RATCHET")
		viper.AutomaticEnv()

		if err := viper.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return &model.ConfigError{Why: err.Error()}
			}
		}
		return nil
	},
}

// Execute is called from main and runs the CLI, mapping any returned error
// to its ExitCoder exit code (or 2 for an error that doesn't implement it,
// e.g. a cobra usage error).
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		if ec, ok := err.(model.ExitCoder); ok {
			os.Exit(ec.ExitCode())
		}
		os.Exit(model.ExitConfigOrUsageIO)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: <root>/ratchet.toml)")
	rootCmd.PersistentFlags().StringVar(&repoRoot, "root", ".", "repo root to check")
	_ = viper.BindPFlag("root", rootCmd.PersistentFlags().Lookup("root"))
}
