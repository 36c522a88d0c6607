package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/muurk/uistate/internal/backend"
	"github.com/muurk/uistate/internal/config"
	"github.com/muurk/uistate/internal/ui"
)

var failOff bool

// configCmd groups the config file commands
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the configuration file",
	Long: `Create, inspect and edit the configuration file.

The file controls the mock backend (latency, list and page sizes, failing
operations) and preferences such as logging and draft restore.`,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default configuration file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		path, err := resolveConfigPath()
		if err != nil {
			return err
		}
		if _, err := os.Stat(path); err == nil && !forceInit {
			if !ui.ConfirmOverwrite(os.Stdout, os.Stdin, path) {
				fmt.Println("Aborted, existing file kept.")
				return nil
			}
		}

		if configPath == "" {
			if _, err := config.CreateDefaultConfig(); err != nil {
				return err
			}
		} else if err := config.NewRegistry().SaveFile(path); err != nil {
			return err
		}

		ui.PrintSuccess("Configuration written", map[string]string{"Path": path})
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		registry, err := loadRegistry()
		if err != nil {
			return err
		}
		out, err := yaml.Marshal(registry)
		if err != nil {
			return fmt.Errorf("failed to marshal config: %w", err)
		}
		fmt.Print(string(out))
		return nil
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the configuration file path",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := resolveConfigPath()
		if err != nil {
			return err
		}
		fmt.Println(path)
		return nil
	},
}

var configFailCmd = &cobra.Command{
	Use:   "fail <operation>",
	Short: "Make a backend operation start out failing",
	Long: `Record in the configuration file that a backend operation fails until
switched back, either with --off or with ctrl+f inside the app.

Operations: fetch_items fetch_page fetch_next_page fetch_order cancel_order
fetch_settings update_setting add_note fetch_nickname update_nickname`,
	Example: `  uistate-sample config fail fetch_next_page
  uistate-sample config fail fetch_next_page --off`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		op, err := backend.ParseOp(args[0])
		if err != nil {
			return err
		}
		cmd.SilenceUsage = true

		registry, err := loadRegistry()
		if err != nil {
			return err
		}
		registry.Backend.SetFailing(op, !failOff)

		path, err := resolveConfigPath()
		if err != nil {
			return err
		}
		if configPath == "" {
			err = registry.Save()
		} else {
			err = registry.SaveFile(path)
		}
		if err != nil {
			return err
		}

		ui.PrintSuccess("Configuration updated", map[string]string{
			"Path":    path,
			"Failing": fmt.Sprint(registry.Backend.FailingOps()),
		})
		return nil
	},
}

func init() {
	configInitCmd.Flags().BoolVar(&forceInit, "force", false, "Overwrite an existing file without asking")
	configFailCmd.Flags().BoolVar(&failOff, "off", false, "Make the operation succeed again")

	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configFailCmd)
	rootCmd.AddCommand(configCmd)
}

func resolveConfigPath() (string, error) {
	if configPath != "" {
		return configPath, nil
	}
	return config.GetConfigPath()
}

func loadRegistry() (*config.Registry, error) {
	if configPath != "" {
		return config.LoadFile(configPath)
	}
	return config.LoadRegistry()
}
