package printutils

import (
	"fmt"
	"os"
	"sort"

	v1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/cli-runtime/pkg/printers"

	"github.com/opsdevcode/knode/pkg/k8s"
)

func PrintNodes(noHeaders bool, nodes ...k8s.NodeInfo) {
	sort.Slice(nodes, func(i, j int) bool {
		return nodes[i].Name < nodes[j].Name
	})

	printer := printers.NewTablePrinter(printers.PrintOptions{NoHeaders: noHeaders})

	table := &v1.Table{
		ColumnDefinitions: []v1.TableColumnDefinition{
			{Name: "NODE NAME", Type: "string"},
			{Name: "INSTANCE TYPE", Type: "string"},
			{Name: "CAPTYPE", Type: "string"},
			{Name: "ZONE", Type: "string"},
			{Name: "STATUS", Type: "string"},
		},
	}

	for _, node := range nodes {
		status := node.Status
		if node.Unschedulable {
			status += " [cordoned]"
		}
		table.Rows = append(table.Rows, v1.TableRow{
			Cells: []interface{}{
				node.Name,
				node.InstanceType,
				node.CapacityType,
				node.Zone,
				status,
			},
		})
	}

	err := printer.PrintObj(table, os.Stdout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error printing table: %v\n", err)
		os.Exit(1)
	}
}

// PrintNodeNames prints one node name per line, for piping into other tools.
func PrintNodeNames(nodes ...k8s.NodeInfo) {
	sort.Slice(nodes, func(i, j int) bool {
		return nodes[i].Name < nodes[j].Name
	})
	for _, node := range nodes {
		fmt.Println(node.Name)
	}
}
