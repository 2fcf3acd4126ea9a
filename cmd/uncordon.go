package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var uncordonCmd = &cobra.Command{
	Use:               "uncordon [NODE...]",
	Short:             "Mark nodes schedulable again",
	ValidArgsFunction: completeNodeNames,
	Run: func(cmd *cobra.Command, args []string) {
		captype, _ := cmd.Flags().GetString("captype")
		nodes := resolveTargetNodes(cmd, args, captype)

		fmt.Printf("Uncordoning %d node(s): %s\n", len(nodes), strings.Join(nodes, ", "))

		rc, out, err := kubectlClient().Uncordon(cmd.Context(), nodes)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error running uncordon: %v\n", err)
			os.Exit(1)
		}
		fmt.Print(ensureNewline(out))
		if rc != 0 {
			os.Exit(rc)
		}
	},
}

func init() {
	addCaptypeFlag(uncordonCmd)

	rootCmd.AddCommand(uncordonCmd)
}
