package printutils

import (
	"fmt"
	"os"

	v1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/cli-runtime/pkg/printers"

	"github.com/opsdevcode/knode/pkg/k8s"
)

// PrintPodsByNode prints pods grouped under a per-node header showing the
// node's instance and capacity type. The input is expected in
// (node, namespace, name) order, as PodsForNodes returns it.
func PrintPodsByNode(pods []k8s.PodInfo, nodesByName map[string]k8s.NodeInfo) {
	i := 0
	for i < len(pods) {
		j := i
		for j < len(pods) && pods[j].Node == pods[i].Node {
			j++
		}
		group := pods[i:j]

		if node, ok := nodesByName[group[0].Node]; ok {
			fmt.Printf("%s  (%s, %s)\n", node.Name, node.InstanceType, node.CapacityType)
		} else {
			fmt.Println(group[0].Node)
		}

		printer := printers.NewTablePrinter(printers.PrintOptions{NoHeaders: true})
		table := &v1.Table{
			ColumnDefinitions: []v1.TableColumnDefinition{
				{Name: "NAMESPACE", Type: "string"},
				{Name: "POD NAME", Type: "string"},
				{Name: "STATUS", Type: "string"},
				{Name: "RESTARTS", Type: "string"},
			},
		}
		for _, pod := range group {
			restarts := ""
			if pod.Restarts > 0 {
				restarts = fmt.Sprintf("restarts=%d", pod.Restarts)
			}
			table.Rows = append(table.Rows, v1.TableRow{
				Cells: []interface{}{
					pod.Namespace,
					pod.Name,
					pod.Status,
					restarts,
				},
			})
		}
		if err := printer.PrintObj(table, os.Stdout); err != nil {
			fmt.Fprintf(os.Stderr, "Error printing table: %v\n", err)
			os.Exit(1)
		}
		fmt.Println()

		i = j
	}
}
