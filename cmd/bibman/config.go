package main

import (
	"github.com/mr91i/bibmanager/internal/config"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Read and write the global configuration",
	Long: `Read and write values in ` + config.ConfigFile + `.

Keys: ads_token, paper, data_dir

Examples:
  bibman config get paper
  bibman config set paper a4
  bibman config set data_dir ~/refs`,
}

func init() {
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Print one configuration value",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := mustLoadConfig()
		value, err := cfg.Get(args[0])
		if err != nil {
			exitWithError(ExitConfigError, "%v", err)
		}
		if humanOutput {
			outputHuman("%s\n", value)
			return nil
		}
		return outputJSON(map[string]string{args[0]: value})
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set one configuration value",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := mustLoadConfig()
		if err := cfg.Set(args[0], args[1]); err != nil {
			exitWithError(ExitConfigError, "%v", err)
		}
		if err := cfg.Save(); err != nil {
			exitWithError(ExitConfigError, "%v", err)
		}
		return nil
	},
}
