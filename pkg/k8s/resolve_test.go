package k8s

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveNodesExplicitOnly(t *testing.T) {
	q := &fakeQuery{}

	names, err := ResolveNodes(context.Background(), q, []string{"a", "a", "b"}, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, names)
	assert.Zero(t, q.nodeCalls, "no filter means no inventory fetch")
}

func TestResolveNodesEmptyInputs(t *testing.T) {
	q := &fakeQuery{}

	names, err := ResolveNodes(context.Background(), q, nil, "")
	require.NoError(t, err)
	assert.Empty(t, names)
	assert.Zero(t, q.nodeCalls)
}

func TestResolveNodesCapacityFilter(t *testing.T) {
	q := &fakeQuery{nodes: itemList(
		nodeObject("spot-1", map[string]any{labelCapacityType: "spot"}, false),
		nodeObject("spot-2", map[string]any{labelCapacityType: "spot"}, false),
		nodeObject("od-1", map[string]any{labelCapacityTypeEKS: "ON_DEMAND"}, false),
		nodeObject("ng-spot-1", map[string]any{labelCapacityType: "spot", labelNodegroup: "main"}, false),
	)}

	names, err := ResolveNodes(context.Background(), q, nil, "spot")
	require.NoError(t, err)
	assert.Equal(t, []string{"spot-1", "spot-2"}, names, "NG/spot must not match a plain spot filter")

	names, err = ResolveNodes(context.Background(), q, nil, "NG/spot")
	require.NoError(t, err)
	assert.Equal(t, []string{"ng-spot-1"}, names)
}

func TestResolveNodesUnion(t *testing.T) {
	q := &fakeQuery{nodes: itemList(
		nodeObject("spot-1", map[string]any{labelCapacityType: "spot"}, false),
	)}

	names, err := ResolveNodes(context.Background(), q, []string{"spot-1", "other"}, "spot")
	require.NoError(t, err)
	assert.Equal(t, []string{"other", "spot-1"}, names)
}

func TestResolveNodesQueryErrorPropagates(t *testing.T) {
	q := &fakeQuery{nodesErr: &QueryError{Resource: "nodes", Err: errors.New("boom")}}

	_, err := ResolveNodes(context.Background(), q, []string{"a"}, "spot")
	var qerr *QueryError
	require.ErrorAs(t, err, &qerr)
}
