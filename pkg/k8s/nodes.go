package k8s

import (
	"context"
	"strings"
)

// Label keys EKS and Karpenter stamp on worker nodes.
const (
	labelCapacityType     = "karpenter.sh/capacity-type"
	labelCapacityTypeEKS  = "eks.amazonaws.com/capacityType"
	labelComputeType      = "eks.amazonaws.com/compute-type"
	labelNodegroup        = "eks.amazonaws.com/nodegroup"
	labelInstanceType     = "node.kubernetes.io/instance-type"
	labelInstanceTypeBeta = "beta.kubernetes.io/instance-type"
	labelZone             = "topology.kubernetes.io/zone"
)

// NodeInfo is the node view knode works with: display fields plus the
// normalized capacity type used for node selection.
type NodeInfo struct {
	Name          string
	Status        string
	InstanceType  string
	Zone          string
	CapacityType  string
	Unschedulable bool
}

// CapacityType derives a normalized capacity type (spot, on-demand, fargate)
// from a node's labels. Karpenter's label wins, then the EKS capacityType
// label (ON_DEMAND style, normalized to on-demand), then the EKS compute-type
// label. Nodes in a managed node group get an NG/ prefix. Unclassified nodes
// yield "".
func CapacityType(labels map[string]string) string {
	ctype := labels[labelCapacityType]
	if ctype == "" {
		if v := labels[labelCapacityTypeEKS]; v != "" {
			ctype = strings.ToLower(strings.ReplaceAll(v, "_", "-"))
		} else {
			ctype = labels[labelComputeType]
		}
	}
	if labels[labelNodegroup] != "" && ctype != "" {
		return "NG/" + ctype
	}
	return ctype
}

// nodeFromObject builds a NodeInfo from one item of kubectl get nodes -o
// json. Missing fields default to empty values.
func nodeFromObject(obj map[string]any) NodeInfo {
	var active []string
	for _, c := range nestedSlice(obj, "status", "conditions") {
		cond := asObject(c)
		if nestedString(cond, "status") == "True" {
			active = append(active, nestedString(cond, "type"))
		}
	}
	unschedulable := nestedBool(obj, "spec", "unschedulable")
	if unschedulable {
		active = append(active, "NoSchedule")
	}

	labels := nestedStringMap(obj, "metadata", "labels")
	instanceType := labels[labelInstanceType]
	if instanceType == "" {
		instanceType = labels[labelInstanceTypeBeta]
	}

	captype := CapacityType(labels)
	if captype == "" {
		captype = "-"
	}

	return NodeInfo{
		Name:          nestedString(obj, "metadata", "name"),
		Status:        strings.Join(active, ","),
		InstanceType:  instanceType,
		Zone:          labels[labelZone],
		CapacityType:  captype,
		Unschedulable: unschedulable,
	}
}

// AllNodes fetches every node in the current cluster. Zero nodes is a valid
// empty result; a failed or unparseable fetch is a *QueryError.
func AllNodes(ctx context.Context, q Query) ([]NodeInfo, error) {
	doc, err := q.Nodes(ctx)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, &QueryError{Resource: "nodes"}
	}
	items := nestedSlice(doc, "items")
	nodes := make([]NodeInfo, 0, len(items))
	for _, item := range items {
		if obj := asObject(item); obj != nil {
			nodes = append(nodes, nodeFromObject(obj))
		}
	}
	return nodes, nil
}
