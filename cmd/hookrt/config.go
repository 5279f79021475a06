package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/vango-dev/hookrt/internal/config"
	"github.com/vango-dev/hookrt/internal/errors"
)

func configCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Create or show the hookrt configuration",
	}

	cmd.AddCommand(configInitCmd(), configShowCmd())

	return cmd
}

func configInitCmd() *cobra.Command {
	var (
		dir    string
		asYAML bool
		force  bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a configuration file with the default values",
		Long: `Write hookrt.json (or hookrt.yaml with --yaml) with the default values.

Examples:
  hookrt config init
  hookrt config init --yaml --dir ./deploy`,
		RunE: func(cmd *cobra.Command, args []string) error {
			name := config.ConfigFileName
			if asYAML {
				name = config.YAMLConfigFileName
			}
			path := filepath.Join(dir, name)

			if _, err := os.Stat(path); err == nil && !force {
				return errors.New("H102").
					Because("%s already exists", path).
					WithSuggestion("Pass --force to overwrite it")
			}

			cfg := config.New()
			if err := cfg.SaveTo(path); err != nil {
				return err
			}
			success(cmd.OutOrStdout(), "Wrote %s", cfg.Path())
			return nil
		},
	}

	cmd.Flags().StringVarP(&dir, "dir", "d", ".", "Directory to write the file to")
	cmd.Flags().BoolVar(&asYAML, "yaml", false, "Write hookrt.yaml instead of hookrt.json")
	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing file")

	return cmd
}

func configShowCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Long: `Print the configuration after defaults and HOOKRT_* environment
variables were applied, as YAML.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if cfg.Path() != "" {
				fmt.Fprintf(out, "# loaded from %s\n", cfg.Path())
			} else {
				fmt.Fprintln(out, "# defaults")
			}
			data, err := yaml.Marshal(cfg)
			if err != nil {
				return err
			}
			_, err = out.Write(data)
			return err
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Config file (default hookrt.json or hookrt.yaml in the working directory)")

	return cmd
}
