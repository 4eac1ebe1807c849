package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const defaultConfigFile = ".lazyre.yaml"

var (
	cfgFile string
	timeout time.Duration
	verbose bool

	logger *zap.Logger
	config Config
)

var rootCmd = &cobra.Command{
	Use:          "lazyre",
	Short:        "lazyre - inspect the lazy quantifier optimizer and run patterns",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		if verbose {
			logger, err = zap.NewDevelopment()
		} else {
			logger, err = zap.NewProduction()
		}
		if err != nil {
			return err
		}

		config, err = loadConfig(cfgFile)
		if err != nil {
			return fmt.Errorf("loading %s: %w", cfgFile, err)
		}
		return nil
	},
	Run: func(cmd *cobra.Command, args []string) {
		// no subcommand
		_ = cmd.Help()
	},
}

func Execute() error {
	defer func() {
		if logger != nil {
			_ = logger.Sync()
		}
	}()
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", defaultConfigFile, "Path to the configuration file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log every optimizer rewrite")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 5*time.Minute, "Give up on a command after this long")

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(optimizeCmd)
	rootCmd.AddCommand(matchCmd)
	rootCmd.AddCommand(replCmd)
}
