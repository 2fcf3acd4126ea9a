package printutils

import (
	"fmt"
	"os"

	v1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/cli-runtime/pkg/printers"

	"github.com/opsdevcode/knode/pkg/eks"
)

// NodeGroupRow pairs a node group name with its description; a nil Info marks
// a group that could not be described.
type NodeGroupRow struct {
	Name string
	Info *eks.NodeGroupInfo
}

func PrintNodeGroups(noHeaders bool, rows ...NodeGroupRow) {
	printer := printers.NewTablePrinter(printers.PrintOptions{NoHeaders: noHeaders})

	table := &v1.Table{
		ColumnDefinitions: []v1.TableColumnDefinition{
			{Name: "NODEGROUP", Type: "string"},
			{Name: "STATUS", Type: "string"},
			{Name: "CAPTYPE", Type: "string"},
			{Name: "MIN", Type: "number"},
			{Name: "MAX", Type: "number"},
			{Name: "DESIRED", Type: "number"},
		},
	}

	for _, row := range rows {
		if row.Info == nil {
			table.Rows = append(table.Rows, v1.TableRow{
				Cells: []interface{}{row.Name, "(unable to describe)", "-", "-", "-", "-"},
			})
			continue
		}
		table.Rows = append(table.Rows, v1.TableRow{
			Cells: []interface{}{
				row.Info.Name,
				row.Info.Status,
				row.Info.CapacityType,
				row.Info.MinSize,
				row.Info.MaxSize,
				row.Info.DesiredSize,
			},
		})
	}

	err := printer.PrintObj(table, os.Stdout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error printing table: %v\n", err)
		os.Exit(1)
	}
}
