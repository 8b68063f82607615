package main

import (
	"fmt"
	"os"

	"digitalmandi/internal/config"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var configForce bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage .mandi/config.yaml",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default config to the workspace",
	Args:  cobra.NoArgs,
	RunE:  runConfigInit,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective config (file plus environment overrides)",
	Args:  cobra.NoArgs,
	RunE:  runConfigShow,
}

func init() {
	configInitCmd.Flags().BoolVarP(&configForce, "force", "f", false, "Overwrite an existing config")
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	ws, err := resolveWorkspace()
	if err != nil {
		return err
	}
	path := resolveConfigPath(ws)
	if _, err := os.Stat(path); err == nil && !configForce {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}
	if err := config.DefaultConfig().Save(path); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
	return nil
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	ws, err := resolveWorkspace()
	if err != nil {
		return err
	}
	cfg, err := config.Load(resolveConfigPath(ws))
	if err != nil {
		return err
	}
	if catalogPath != "" {
		cfg.Catalog.Path = catalogPath
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}
