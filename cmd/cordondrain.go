package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var cordonDrainCmd = &cobra.Command{
	Use:               "cordon-drain [NODE...]",
	Short:             "Cordon nodes, then drain them",
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

		runDrain(cmd, nodes)
	},
}

func init() {
	addCaptypeFlag(cordonDrainCmd)
	cordonDrainCmd.Flags().Bool("ignore-errors", false, "Continue draining past per-pod errors")
	cordonDrainCmd.Flags().Bool("no-progress", false, "Run the drain synchronously without a progress bar")

	rootCmd.AddCommand(cordonDrainCmd)
}
