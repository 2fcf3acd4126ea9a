package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/opsdevcode/knode/pkg/k8s"
)

func TestDistinctNodeCount(t *testing.T) {
	pods := []k8s.PodInfo{
		{Namespace: "default", Name: "api-1", Node: "node-a"},
		{Namespace: "default", Name: "api-2", Node: "node-a"},
		{Namespace: "kube-system", Name: "dns-1", Node: "node-b"},
	}

	// Two nodes host pods even when three were targeted; empty targets
	// count nothing.
	assert.Equal(t, 2, distinctNodeCount(pods))
	assert.Equal(t, 0, distinctNodeCount(nil))
}

func TestEnsureNewline(t *testing.T) {
	assert.Equal(t, "", ensureNewline(""))
	assert.Equal(t, "node/a cordoned\n", ensureNewline("node/a cordoned"))
	assert.Equal(t, "node/a cordoned\n", ensureNewline("node/a cordoned\n"))
}
