package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/verdir/verdir/internal/config"
	"github.com/verdir/verdir/internal/store"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "verdir",
	Short: "Immutable numbered snapshots of a working directory",
	Long: `verdir captures immutable, numbered snapshots of a mutable output
directory (a report draft, generated artifacts, any working tree):

  - save     copy the working directory as the next numbered version
  - list     show every saved version with size and file counts
  - restore  bring a version back, backing up the current tree first
  - diff     compare the file sets of two versions
  - info     metadata and content summary for one version

Snapshots are full independent copies; once saved they are never
modified. Restores relocate the current working directory to a
timestamped backup before overwriting anything.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./.verdir.toml)")
	rootCmd.PersistentFlags().String("root", "", "snapshot store root (default .versions)")
	rootCmd.PersistentFlags().String("workdir", "", "working directory to version (default report)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	viper.BindPFlag("store.root", rootCmd.PersistentFlags().Lookup("root"))
	viper.BindPFlag("store.workdir", rootCmd.PersistentFlags().Lookup("workdir"))
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "verdir"))
		}
		viper.SetConfigType("toml")
		viper.SetConfigName(".verdir")
	}

	viper.SetEnvPrefix("verdir")
	viper.AutomaticEnv()

	viper.SetDefault("store.root", ".versions")
	viper.SetDefault("store.workdir", "report")
	viper.SetDefault("store.lock_timeout", "10s")
	viper.SetDefault("log.level", "warn")

	if err := viper.ReadInConfig(); err == nil {
		log.Debugf("using config file: %s", viper.ConfigFileUsed())
	}

	level, err := log.ParseLevel(config.GetLogLevel())
	if err != nil {
		level = log.WarnLevel
	}
	if verbose {
		level = log.DebugLevel
	}
	log.SetLevel(level)
	log.SetOutput(os.Stderr)
}

// newStore builds the snapshot store from the effective configuration.
func newStore() *store.Store {
	s := store.New(config.GetStoreRoot(), config.GetWorkdir())
	if timeout := config.GetLockTimeout(); timeout > 0 {
		s.LockTimeout = timeout
	}
	return s
}

// parseVersion validates a positional version argument.
func parseVersion(arg string) (int, error) {
	version, err := strconv.Atoi(arg)
	if err != nil || version < 1 {
		return 0, fmt.Errorf("invalid version %q (expected a positive integer)", arg)
	}
	return version, nil
}
