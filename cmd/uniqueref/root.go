// Root command for the uniqueref CLI.
package main

import (
	"github.com/spf13/cobra"

	"github.com/reddishgreen/contentful-unique-references/internal/paths"
)

// Global flag values.
var (
	flagConfigDir string
	flagDataDir   string
	flagParent    string
	flagField     string
	flagLocale    string
	flagJSON      bool
)

// Config-file values loaded by PersistentPreRunE.
var (
	configDataDir string
	configParent  string
	configField   string
	configLocale  string
	configAllowed []string
)

var rootCmd = &cobra.Command{
	Use:   "uniqueref",
	Short: "uniqueref edits a unique reference list on a record field",
	Long: `Uniqueref maintains the ordered list of entry references held by one
field of a parent record, keeping each referenced entry linked from at
most one parent: adding an entry that another parent already links
offers to move it here instead.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		configDir, err := resolveConfigDir()
		if err != nil {
			return err
		}
		cfg, err := loadConfig(configDir)
		if err != nil {
			return err
		}
		configDataDir = cfg.GetString(cfgKeyDataDir)
		configParent = cfg.GetString(cfgKeyParent)
		configField = cfg.GetString(cfgKeyField)
		configLocale = cfg.GetString(cfgKeyLocale)
		configAllowed = cfg.GetStringSlice(cfgKeyAllowed)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfigDir, "config-dir", "", "configuration directory (default: $(CWD)/.uniqueref)")
	rootCmd.PersistentFlags().StringVar(&flagDataDir, "data-dir", "", "data directory (default: $(CWD)/.uniqueref-db)")
	rootCmd.PersistentFlags().StringVar(&flagParent, "parent", "", "parent record id (default from config)")
	rootCmd.PersistentFlags().StringVar(&flagField, "field", "", "field id being edited (default from config)")
	rootCmd.PersistentFlags().StringVar(&flagLocale, "locale", "", "working locale (default from config)")
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "output as JSON")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(typesCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(createCmd)
	rootCmd.AddCommand(removeCmd)
	rootCmd.AddCommand(moveCmd)
	rootCmd.AddCommand(reorderCmd)
	rootCmd.AddCommand(openCmd)
	rootCmd.AddCommand(resyncCmd)
}

// resolveConfigDir follows flag > UNIQUEREF_CONFIG_DIR env > platform default.
func resolveConfigDir() (string, error) {
	return paths.ResolveConfigDir(flagConfigDir)
}

// resolveDataDir follows flag > config data_dir > UNIQUEREF_DATA_DIR env >
// $(CWD)/.uniqueref-db.
func resolveDataDir() (string, error) {
	return paths.ResolveDataDir(flagDataDir, configDataDir)
}
