package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var cordonCmd = &cobra.Command{
	Use:               "cordon [NODE...]",
	Short:             "Mark nodes unschedulable",
	ValidArgsFunction: completeNodeNames,
	Run: func(cmd *cobra.Command, args []string) {
		captype, _ := cmd.Flags().GetString("captype")
		nodes := resolveTargetNodes(cmd, args, captype)

		fmt.Printf("Cordoning %d node(s): %s\n", len(nodes), strings.Join(nodes, ", "))

		rc, out, err := kubectlClient().Cordon(cmd.Context(), nodes)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error running cordon: %v\n", err)
			os.Exit(1)
		}
		fmt.Print(ensureNewline(out))
		if rc != 0 {
			os.Exit(rc)
		}
	},
}

func init() {
	addCaptypeFlag(cordonCmd)

	rootCmd.AddCommand(cordonCmd)
}
