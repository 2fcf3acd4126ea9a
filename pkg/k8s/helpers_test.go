package k8s

import (
	"context"
)

// fakeQuery serves canned raw documents and records how often each fetch ran.
type fakeQuery struct {
	nodes     map[string]any
	pods      map[string]any
	nodesErr  error
	podsErr   error
	nodeCalls int
	podCalls  int
}

func (f *fakeQuery) Nodes(ctx context.Context) (map[string]any, error) {
	f.nodeCalls++
	return f.nodes, f.nodesErr
}

func (f *fakeQuery) Pods(ctx context.Context) (map[string]any, error) {
	f.podCalls++
	return f.pods, f.podsErr
}

func itemList(items ...any) map[string]any {
	return map[string]any{"items": items}
}

func nodeObject(name string, labels map[string]any, unschedulable bool) map[string]any {
	obj := map[string]any{
		"metadata": map[string]any{
			"name":   name,
			"labels": labels,
		},
		"spec": map[string]any{},
		"status": map[string]any{
			"conditions": []any{
				map[string]any{"type": "Ready", "status": "True"},
			},
		},
	}
	if unschedulable {
		obj["spec"] = map[string]any{"unschedulable": true}
	}
	return obj
}

func podObject(namespace, name, node string, daemonSet bool) map[string]any {
	obj := map[string]any{
		"metadata": map[string]any{
			"name":      name,
			"namespace": namespace,
		},
		"spec": map[string]any{
			"nodeName": node,
		},
		"status": map[string]any{
			"phase": "Running",
		},
	}
	if daemonSet {
		meta := obj["metadata"].(map[string]any)
		meta["ownerReferences"] = []any{
			map[string]any{"kind": "DaemonSet", "name": "ds"},
		}
	}
	return obj
}
