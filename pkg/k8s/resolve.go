package k8s

import (
	"context"
	"sort"
)

// ResolveNodes merges explicit node names with a capacity-type filter into a
// deduplicated, sorted target list. Explicit names are taken verbatim (no
// existence check at this stage); the filter matches NodeInfo.CapacityType
// exactly, including NG/-prefixed forms. Both inputs empty yields an empty
// list, which callers treat as a usage error.
func ResolveNodes(ctx context.Context, q Query, explicit []string, captype string) ([]string, error) {
	set := make(map[string]bool, len(explicit))
	for _, name := range explicit {
		set[name] = true
	}

	if captype != "" {
		nodes, err := AllNodes(ctx, q)
		if err != nil {
			return nil, err
		}
		for _, n := range nodes {
			if n.CapacityType == captype {
				set[n.Name] = true
			}
		}
	}

	names := make([]string, 0, len(set))
	for name := range set {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}
