package cmd

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"summagraph/guideline"
)

var optionsCmd = &cobra.Command{
	Use:   "options",
	Short: "List available layouts and styles",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, logger, err := loadConfig()
		if err != nil {
			return err
		}
		catalog := guideline.NewFileStore(cfg.ReferencesDirs, logger).Catalog()

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(catalog)
	},
}
