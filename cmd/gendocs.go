package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"
)

var genDocsCmd = &cobra.Command{
	Use:    "gendocs",
	Short:  "Generate markdown documentation for every knode command",
	Hidden: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, err := cmd.Flags().GetString("dir")
		if err != nil || dir == "" {
			dir = "./docs"
		}

		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating docs directory: %w", err)
		}
		if err := doc.GenMarkdownTree(rootCmd, dir); err != nil {
			return fmt.Errorf("generating markdown docs: %w", err)
		}

		fmt.Printf("Documentation generated in %s\n", dir)
		return nil
	},
}

func init() {
	genDocsCmd.Flags().String("dir", "./docs", "Directory to write the generated docs into")

	rootCmd.AddCommand(genDocsCmd)
}
