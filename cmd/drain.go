package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/opsdevcode/knode/pkg/k8s"
)

// runDrain is shared by drain and cordon-drain.
func runDrain(cmd *cobra.Command, nodes []string) {
	ignoreErrors, _ := cmd.Flags().GetBool("ignore-errors")
	noProgress, _ := cmd.Flags().GetBool("no-progress")

	opts := k8s.DrainOptions{
		IgnoreDaemonSets:   true,
		DeleteEmptyDirData: true,
		IgnoreErrors:       ignoreErrors,
	}

	fmt.Printf("Draining %d node(s): %s\n", len(nodes), strings.Join(nodes, ", "))

	client := kubectlClient()
	rc, out, err := k8s.DrainNodes(cmd.Context(), client, client, nodes, opts, !noProgress, os.Stderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error running drain: %v\n", err)
		if out != "" {
			fmt.Fprint(os.Stderr, ensureNewline(out))
		}
		os.Exit(1)
	}

	fmt.Print(ensureNewline(out))
	if rc != 0 {
		os.Exit(rc)
	}
}

func ensureNewline(s string) string {
	if s == "" || strings.HasSuffix(s, "\n") {
		return s
	}
	return s + "\n"
}

var drainCmd = &cobra.Command{
	Use:               "drain [NODE...]",
	Short:             "Evict pods from nodes, with live eviction progress",
	ValidArgsFunction: completeNodeNames,
	Run: func(cmd *cobra.Command, args []string) {
		captype, _ := cmd.Flags().GetString("captype")
		nodes := resolveTargetNodes(cmd, args, captype)
		runDrain(cmd, nodes)
	},
}

func init() {
	addCaptypeFlag(drainCmd)
	drainCmd.Flags().Bool("ignore-errors", false, "Continue draining past per-pod errors")
	drainCmd.Flags().Bool("no-progress", false, "Run the drain synchronously without a progress bar")

	rootCmd.AddCommand(drainCmd)
}
