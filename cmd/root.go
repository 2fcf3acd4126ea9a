package cmd

import (
	"os"

	"github.com/spf13/cobra"
	"k8s.io/cli-runtime/pkg/genericclioptions"
)

var KubernetesConfigFlags *genericclioptions.ConfigFlags

var rootCmd = &cobra.Command{
	Use:   "knode",
	Short: "Manage EKS worker nodes and managed node group scaling",
	Long: `Manage the worker nodes of the EKS cluster selected by the current
kubeconfig context: list nodes and their pods, cordon, uncordon and drain
nodes, and inspect or update managed node group scaling.`,
	Example: `  knode list                        # list nodes with instance type, capacity and status
  knode list -o name                # node names only, one per line
  knode pods ip-10-12-1-20.ec2...   # pods scheduled on a node
  knode pods -c spot                # pods on every spot node
  knode cordon -c spot              # mark all spot nodes unschedulable
  knode uncordon ip-10-12-1-20...   # mark a node schedulable again
  knode drain -c spot               # evict pods from all spot nodes
  knode cordon-drain -c spot        # cordon first, then drain
  knode nodegroups                  # managed node groups and their scaling
  knode scale workers --desired=4   # scale one node group
  knode scale --all --desired=0     # scale every managed node group to zero`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	KubernetesConfigFlags = genericclioptions.NewConfigFlags(true)
	KubernetesConfigFlags.AddFlags(rootCmd.PersistentFlags())
}
