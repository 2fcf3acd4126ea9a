package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/opsdevcode/knode/pkg/k8s"
	"github.com/opsdevcode/knode/pkg/printutils"
)

var podsCmd = &cobra.Command{
	Use:               "pods [NODE...]",
	Short:             "Show the pods scheduled on the given nodes, grouped per node",
	ValidArgsFunction: completeNodeNames,
	Run: func(cmd *cobra.Command, args []string) {
		captype, _ := cmd.Flags().GetString("captype")
		includeDaemonSets, _ := cmd.Flags().GetBool("include-daemonsets")

		if len(args) == 0 && captype == "" {
			fmt.Fprintf(os.Stderr, "No nodes specified: pass node names or --captype\n")
			os.Exit(1)
		}

		client := kubectlClient()
		nodes, err := k8s.AllNodes(cmd.Context(), client)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error listing nodes: %v\n", err)
			os.Exit(1)
		}

		if err := k8s.ValidateNodeNames(nodes, args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		nodesByName := make(map[string]k8s.NodeInfo, len(nodes))
		for _, node := range nodes {
			nodesByName[node.Name] = node
		}

		targets, err := k8s.ResolveNodes(cmd.Context(), client, args, captype)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error resolving nodes: %v\n", err)
			os.Exit(1)
		}
		if len(targets) == 0 {
			fmt.Printf("No nodes with captype %q\n", captype)
			return
		}

		pods, err := k8s.PodsForNodes(cmd.Context(), client, targets, includeDaemonSets)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error listing pods: %v\n", err)
			os.Exit(1)
		}

		if len(pods) == 0 {
			fmt.Println("No pods found on the selected nodes.")
			return
		}

		printutils.PrintPodsByNode(pods, nodesByName)
		fmt.Printf("\n%d pod(s) on %d node(s)\n", len(pods), distinctNodeCount(pods))
	},
}

// distinctNodeCount counts the nodes that actually host pods in the listing;
// targeted nodes with nothing scheduled on them do not count.
func distinctNodeCount(pods []k8s.PodInfo) int {
	seen := map[string]bool{}
	for _, pod := range pods {
		seen[pod.Node] = true
	}
	return len(seen)
}

func init() {
	addCaptypeFlag(podsCmd)
	podsCmd.Flags().Bool("include-daemonsets", false, "Include DaemonSet-owned pods in the listing")

	rootCmd.AddCommand(podsCmd)
}
