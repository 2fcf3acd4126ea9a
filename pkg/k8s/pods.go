package k8s

import (
	"context"
	"fmt"
	"sort"
	"strings"
)

// PodInfo is the pod view knode works with. Node references the hosting
// node by name; it may name a node absent from a concurrently fetched node
// inventory.
type PodInfo struct {
	Namespace   string
	Name        string
	Status      string
	Node        string
	Restarts    int
	IsDaemonSet bool
}

// podFromObject builds a PodInfo from one item of kubectl get pods -o json.
// Missing fields default to empty values.
func podFromObject(obj map[string]any) PodInfo {
	status := nestedString(obj, "status", "phase")
	if status == "" {
		status = "Unknown"
	}

	restarts := 0
	containers := nestedSlice(obj, "status", "containerStatuses")
	for _, c := range containers {
		restarts += nestedInt(asObject(c), "restartCount")
	}

	// A waiting container reason (e.g. CrashLoopBackOff) is more telling
	// than the bare phase. First one found wins.
	for _, c := range containers {
		if reason := nestedString(asObject(c), "state", "waiting", "reason"); reason != "" {
			status = reason
			break
		}
	}

	isDaemonSet := false
	for _, ref := range nestedSlice(obj, "metadata", "ownerReferences") {
		if nestedString(asObject(ref), "kind") == "DaemonSet" {
			isDaemonSet = true
			break
		}
	}

	return PodInfo{
		Namespace:   nestedString(obj, "metadata", "namespace"),
		Name:        nestedString(obj, "metadata", "name"),
		Status:      status,
		Node:        nestedString(obj, "spec", "nodeName"),
		Restarts:    restarts,
		IsDaemonSet: isDaemonSet,
	}
}

// PodsForNodes fetches the pods running on the given nodes, sorted by
// (node, namespace, name). DaemonSet-managed pods are excluded unless
// requested. An empty node list yields no pods without querying the cluster.
func PodsForNodes(ctx context.Context, q Query, nodeNames []string, includeDaemonSets bool) ([]PodInfo, error) {
	if len(nodeNames) == 0 {
		return nil, nil
	}
	doc, err := q.Pods(ctx)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, &QueryError{Resource: "pods"}
	}

	nodeSet := make(map[string]bool, len(nodeNames))
	for _, name := range nodeNames {
		nodeSet[name] = true
	}

	var pods []PodInfo
	for _, item := range nestedSlice(doc, "items") {
		obj := asObject(item)
		if obj == nil {
			continue
		}
		pod := podFromObject(obj)
		if !nodeSet[pod.Node] {
			continue
		}
		if pod.IsDaemonSet && !includeDaemonSets {
			continue
		}
		pods = append(pods, pod)
	}

	sort.Slice(pods, func(i, j int) bool {
		if pods[i].Node != pods[j].Node {
			return pods[i].Node < pods[j].Node
		}
		if pods[i].Namespace != pods[j].Namespace {
			return pods[i].Namespace < pods[j].Namespace
		}
		return pods[i].Name < pods[j].Name
	})
	return pods, nil
}

// ValidateNodeNames rejects names missing from the known node inventory, so
// a typo'd node errors out instead of silently coming back as "no pods".
func ValidateNodeNames(known []NodeInfo, names []string) error {
	byName := make(map[string]bool, len(known))
	for _, n := range known {
		byName[n.Name] = true
	}
	var unknown []string
	for _, name := range names {
		if !byName[name] {
			unknown = append(unknown, name)
		}
	}
	if len(unknown) > 0 {
		return &ValidationError{Msg: fmt.Sprintf("unknown node(s): %s", strings.Join(unknown, ", "))}
	}
	return nil
}
