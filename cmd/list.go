package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/opsdevcode/knode/pkg/k8s"
	"github.com/opsdevcode/knode/pkg/printutils"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List worker nodes with instance type, capacity type, zone and status",
	Run: func(cmd *cobra.Command, args []string) {
		output, err := cmd.Flags().GetString("output")
		if err != nil {
			output = "table"
		}
		if output != "table" && output != "name" {
			fmt.Fprintf(os.Stderr, "Invalid output format %q: expected table or name\n", output)
			os.Exit(1)
		}

		noHeaders, err := cmd.Flags().GetBool("no-headers")
		if err != nil {
			noHeaders = false
		}

		nodes, err := k8s.AllNodes(cmd.Context(), kubectlClient())
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error listing nodes: %v\n", err)
			os.Exit(1)
		}

		if len(nodes) == 0 {
			fmt.Println("No nodes found in the cluster.")
			return
		}

		if output == "name" {
			printutils.PrintNodeNames(nodes...)
			return
		}

		printutils.PrintNodes(noHeaders, nodes...)
	},
}

func init() {
	listCmd.Flags().StringP("output", "o", "table", "Output format: table or name")
	listCmd.Flags().Bool("no-headers", false, "Don't print headers")
	_ = listCmd.RegisterFlagCompletionFunc("output", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return []string{"table", "name"}, cobra.ShellCompDirectiveNoFileComp
	})

	rootCmd.AddCommand(listCmd)
}
