package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/opsdevcode/knode/pkg/cluster"
	"github.com/opsdevcode/knode/pkg/eks"
	"github.com/opsdevcode/knode/pkg/k8s"
)

// captypeChoices are the values the capacity classifier produces for worker
// nodes. NG/ prefixed values select managed node group members.
var captypeChoices = []string{"spot", "on-demand", "NG/spot", "NG/on-demand", "fargate"}

// scaleCaptypeChoices are the capacity types the EKS nodegroup API reports.
var scaleCaptypeChoices = []string{"spot", "on-demand"}

// kubectlClient builds the kubectl-backed cluster client, honoring the
// --context persistent flag when set.
func kubectlClient() *k8s.Client {
	client := &k8s.Client{}
	if KubernetesConfigFlags.Context != nil {
		client.Context = *KubernetesConfigFlags.Context
	}
	return client
}

// currentCluster resolves the EKS cluster targeted by the active kubeconfig
// context.
func currentCluster() cluster.Context {
	cc, err := cluster.Current(KubernetesConfigFlags)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return cc
}

// eksClient builds the node group API client for the given cluster.
func eksClient(cmd *cobra.Command, cc cluster.Context) eks.NodegroupAPI {
	api, err := eks.NewClient(cmd.Context(), cc)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading AWS configuration: %v\n", err)
		os.Exit(1)
	}
	return api
}

// resolveTargetNodes expands positional node names plus the --captype filter
// into the node list a lifecycle command operates on. Passing neither is a
// usage error; a filter matching nothing ends the command without touching
// the cluster.
func resolveTargetNodes(cmd *cobra.Command, args []string, captype string) []string {
	if len(args) == 0 && captype == "" {
		fmt.Fprintf(os.Stderr, "No nodes specified: pass node names or --captype\n")
		os.Exit(1)
	}

	nodes, err := k8s.ResolveNodes(cmd.Context(), kubectlClient(), args, captype)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error resolving nodes: %v\n", err)
		os.Exit(1)
	}
	if len(nodes) == 0 {
		fmt.Printf("No nodes with captype %q\n", captype)
		os.Exit(0)
	}
	return nodes
}

// addCaptypeFlag registers the shared -c/--captype node selector.
func addCaptypeFlag(cmd *cobra.Command) {
	cmd.Flags().StringP("captype", "c", "", "Select all nodes of this capacity type ("+strings.Join(captypeChoices, ", ")+")")
	_ = cmd.RegisterFlagCompletionFunc("captype", completeCaptype)
}

func completeNodeNames(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	nodes, err := k8s.AllNodes(cmd.Context(), kubectlClient())
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}

	already := map[string]bool{}
	for _, arg := range args {
		already[arg] = true
	}

	names := []string{}
	for _, node := range nodes {
		if already[node.Name] || !strings.HasPrefix(node.Name, toComplete) {
			continue
		}
		names = append(names, node.Name)
	}
	return names, cobra.ShellCompDirectiveNoFileComp
}

func completeCaptype(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	return captypeChoices, cobra.ShellCompDirectiveNoFileComp
}

func completeScaleCaptype(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	return scaleCaptypeChoices, cobra.ShellCompDirectiveNoFileComp
}

func completeNodeGroups(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) != 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	cc, err := cluster.Current(KubernetesConfigFlags)
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	api, err := eks.NewClient(cmd.Context(), cc)
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	groups, err := eks.ListNodeGroups(cmd.Context(), api, cc.Name)
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	return groups, cobra.ShellCompDirectiveNoFileComp
}
