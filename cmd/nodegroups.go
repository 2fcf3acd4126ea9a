package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/opsdevcode/knode/pkg/eks"
	"github.com/opsdevcode/knode/pkg/printutils"
)

var nodegroupsCmd = &cobra.Command{
	Use:   "nodegroups",
	Short: "List managed node groups with status and scaling configuration",
	Run: func(cmd *cobra.Command, args []string) {
		noHeaders, err := cmd.Flags().GetBool("no-headers")
		if err != nil {
			noHeaders = false
		}

		cc := currentCluster()
		api := eksClient(cmd, cc)

		groups, err := eks.ListNodeGroups(cmd.Context(), api, cc.Name)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error listing node groups for cluster %s: %v\n", cc.Name, err)
			os.Exit(1)
		}

		if len(groups) == 0 {
			fmt.Println("No managed node groups in this cluster.")
			return
		}

		rows := make([]printutils.NodeGroupRow, 0, len(groups))
		for _, group := range groups {
			info, err := eks.GetNodeGroupInfo(cmd.Context(), api, cc.Name, group)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error describing node group %s: %v\n", group, err)
				rows = append(rows, printutils.NodeGroupRow{Name: group})
				continue
			}
			rows = append(rows, printutils.NodeGroupRow{Name: group, Info: info})
		}

		printutils.PrintNodeGroups(noHeaders, rows...)
	},
}

func init() {
	nodegroupsCmd.Flags().Bool("no-headers", false, "Don't print headers")

	rootCmd.AddCommand(nodegroupsCmd)
}
