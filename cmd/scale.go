package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/opsdevcode/knode/pkg/eks"
)

var scaleCmd = &cobra.Command{
	Use:               "scale [NODEGROUP]",
	Short:             "Update managed node group scaling (min, max, desired)",
	Args:              cobra.MaximumNArgs(1),
	ValidArgsFunction: completeNodeGroups,
	Run: func(cmd *cobra.Command, args []string) {
		all, _ := cmd.Flags().GetBool("all")
		captype, _ := cmd.Flags().GetString("captype")

		nodegroup := ""
		if len(args) == 1 {
			nodegroup = args[0]
		}

		if nodegroup != "" && (all || captype != "") {
			fmt.Fprintf(os.Stderr, "Cannot combine a node group name with --all or --captype\n")
			os.Exit(1)
		}
		if all && captype != "" {
			fmt.Fprintf(os.Stderr, "Cannot combine --all with --captype\n")
			os.Exit(1)
		}
		if nodegroup == "" && !all && captype == "" {
			fmt.Fprintf(os.Stderr, "No node groups specified: pass a node group name, --all or --captype\n")
			os.Exit(1)
		}
		if captype != "" && captype != "spot" && captype != "on-demand" {
			fmt.Fprintf(os.Stderr, "Invalid captype %q: expected spot or on-demand\n", captype)
			os.Exit(1)
		}

		var sizes eks.ScaleSizes
		if cmd.Flags().Changed("min") {
			v, _ := cmd.Flags().GetInt32("min")
			sizes.Min = &v
		}
		if cmd.Flags().Changed("max") {
			v, _ := cmd.Flags().GetInt32("max")
			sizes.Max = &v
		}
		if cmd.Flags().Changed("desired") {
			v, _ := cmd.Flags().GetInt32("desired")
			sizes.Desired = &v
		}

		cc := currentCluster()
		api := eksClient(cmd, cc)

		target := eks.ScaleTarget{Name: nodegroup, All: all, CapacityType: captype}
		results, err := eks.UpdateScaling(cmd.Context(), api, cc.Name, target, sizes)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		failed := 0
		for _, result := range results {
			if result.Err != nil {
				fmt.Fprintf(os.Stderr, "%s: %v\n", result.Group, result.Err)
				failed++
				continue
			}
			fmt.Printf("%s: %s\n", result.Group, result.Message)
		}

		if failed > 0 {
			os.Exit(1)
		}
	},
}

func init() {
	scaleCmd.Flags().Bool("all", false, "Scale every managed node group in the cluster")
	scaleCmd.Flags().StringP("captype", "c", "", "Scale all node groups of this capacity type (spot, on-demand)")
	scaleCmd.Flags().Int32("min", 0, "Minimum node count")
	scaleCmd.Flags().Int32("max", 0, "Maximum node count")
	scaleCmd.Flags().Int32("desired", 0, "Desired node count")
	_ = scaleCmd.RegisterFlagCompletionFunc("captype", completeScaleCaptype)

	rootCmd.AddCommand(scaleCmd)
}
