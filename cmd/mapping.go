package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/huangsam/gitwrapped/core"
	"github.com/huangsam/gitwrapped/internal/contract"
	"github.com/huangsam/gitwrapped/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// mappingSetup loads the minimal configuration the mapping commands need.
// No stores are opened and no scan targets are resolved.
func mappingSetup() error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	cfg.MappingFile = viper.GetString("mapping-file")
	if cfg.MappingFile == "" {
		cfg.MappingFile = contract.GetMappingFilePath()
	}

	cfg.Output = schema.OutputMode(strings.ToLower(viper.GetString("output")))
	if cfg.Output == "" {
		cfg.Output = schema.TextOut
	}
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, csv, json, parquet", cfg.Output)
	}
	cfg.OutputFile = viper.GetString("output-file")
	cfg.Width = viper.GetInt("width")

	colors, err := contract.ParseBoolString(viper.GetString("color"))
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors
	return nil
}

// mappingSetupWrapper wraps mappingSetup to provide PreRunE for mapping commands.
func mappingSetupWrapper(_ *cobra.Command, _ []string) error {
	return mappingSetup()
}

// mappingCmd focused on the author mapping table.
var mappingCmd = &cobra.Command{
	Use:   "mapping",
	Short: "Manage the author mapping (merge aliases, pick colors)",
	Long: `Manage the author mapping that merges several emails into one person.

The mapping is a JSON object keyed by canonical name:
  {"Jane Doe": {"emails": ["jane@work.com", "jane@home.org"], "color": "#3b82f6"}}

Subcommands:
  show - Print the current mapping
  set  - Replace the mapping with a JSON file
  add  - Add or replace one author

Examples:
  gitwrapped mapping show --output json > authors.json
  gitwrapped mapping set authors.json
  gitwrapped mapping add "Jane Doe" --email jane@work.com --email jane@home.org`,
}

// mappingShowCmd prints the mapping.
var mappingShowCmd = &cobra.Command{
	Use:     "show",
	Short:   "Print the author mapping",
	Args:    cobra.NoArgs,
	PreRunE: mappingSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteMappingShow(cfg); err != nil {
			contract.LogFatal("Failed to show author mapping", err)
		}
	},
}

// mappingSetCmd replaces the mapping.
var mappingSetCmd = &cobra.Command{
	Use:   "set <file>",
	Short: "Replace the author mapping with a JSON file ('-' for stdin)",
	Long: `Validate a mapping document and replace the whole table with it.
On any validation error the current mapping is kept.

Examples:
  gitwrapped mapping set authors.json
  cat authors.json | gitwrapped mapping set -`,
	Args:    cobra.ExactArgs(1),
	PreRunE: mappingSetupWrapper,
	Run: func(_ *cobra.Command, args []string) {
		if err := core.ExecuteMappingSet(os.Stdout, cfg, args[0]); err != nil {
			contract.LogFatal("Failed to update author mapping", err)
		}
	},
}

// mappingAddCmd adds one author.
var mappingAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add or replace one author in the mapping",
	Long: `Map one or more emails to a canonical author name. Without --color the
next palette color is used.

Examples:
  gitwrapped mapping add "Jane Doe" --email jane@work.com --email jane@home.org
  gitwrapped mapping add "Bot" --email ci@example.com --color "#6b7280"`,
	Args:    cobra.ExactArgs(1),
	PreRunE: mappingSetupWrapper,
	Run: func(cmd *cobra.Command, args []string) {
		emails, err := cmd.Flags().GetStringSlice("email")
		if err != nil {
			contract.LogFatal("Invalid --email", err)
		}
		color, err := cmd.Flags().GetString("color")
		if err != nil {
			contract.LogFatal("Invalid --color", err)
		}
		if err := core.ExecuteMappingAdd(os.Stdout, cfg, args[0], emails, color); err != nil {
			contract.LogFatal("Failed to add author", err)
		}
	},
}
