package eks

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awseks "github.com/aws/aws-sdk-go-v2/service/eks"
	"github.com/aws/aws-sdk-go-v2/service/eks/types"
)

// ErrNoSizes is returned when a scale request carries none of min, max, or
// desired. It is checked before any node group is resolved.
var ErrNoSizes = errors.New("specify at least one of min, max, or desired size")

// ScaleTarget selects which node groups a scale request applies to: exactly
// one of a single name, all groups, or groups matching a capacity type.
// Managed node groups are never fargate, so CapacityType is spot or
// on-demand.
type ScaleTarget struct {
	Name         string
	All          bool
	CapacityType string
}

// ScaleSizes carries the requested sizing. Nil fields keep the group's
// current value.
type ScaleSizes struct {
	Min     *int32
	Max     *int32
	Desired *int32
}

// ScaleResult is one node group's outcome. Failures in one group never block
// the others; the caller aggregates.
type ScaleResult struct {
	Group   string
	Message string
	Err     error
}

// UpdateScaling applies the requested sizing to every node group the target
// selects. Each group is described immediately before its update so that
// unspecified fields carry the current values forward; the EKS API wants the
// full scaling triple even for a partial change.
func UpdateScaling(ctx context.Context, api NodegroupAPI, clusterName string, target ScaleTarget, sizes ScaleSizes) ([]ScaleResult, error) {
	if sizes.Min == nil && sizes.Max == nil && sizes.Desired == nil {
		return nil, ErrNoSizes
	}

	names, err := resolveTarget(ctx, api, clusterName, target)
	if err != nil {
		return nil, err
	}

	results := make([]ScaleResult, 0, len(names))
	for _, name := range names {
		results = append(results, scaleOne(ctx, api, clusterName, name, sizes))
	}
	return results, nil
}

func resolveTarget(ctx context.Context, api NodegroupAPI, clusterName string, target ScaleTarget) ([]string, error) {
	if target.Name != "" {
		return []string{target.Name}, nil
	}

	names, err := ListNodeGroups(ctx, api, clusterName)
	if err != nil {
		return nil, err
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("no managed node groups in cluster %s", clusterName)
	}
	if target.CapacityType == "" {
		return names, nil
	}

	var matched []string
	for _, name := range names {
		info, err := GetNodeGroupInfo(ctx, api, clusterName, name)
		if err != nil {
			continue
		}
		if info.CapacityType == target.CapacityType {
			matched = append(matched, name)
		}
	}
	if len(matched) == 0 {
		return nil, fmt.Errorf("no managed node groups with capacity type %q", target.CapacityType)
	}
	return matched, nil
}

func scaleOne(ctx context.Context, api NodegroupAPI, clusterName, name string, sizes ScaleSizes) ScaleResult {
	current, err := GetNodeGroupInfo(ctx, api, clusterName, name)
	if err != nil {
		return ScaleResult{Group: name, Err: err}
	}

	scaling := &types.NodegroupScalingConfig{
		MinSize:     aws.Int32(current.MinSize),
		MaxSize:     aws.Int32(current.MaxSize),
		DesiredSize: aws.Int32(current.DesiredSize),
	}
	if sizes.Min != nil {
		scaling.MinSize = aws.Int32(*sizes.Min)
	}
	if sizes.Max != nil {
		scaling.MaxSize = aws.Int32(*sizes.Max)
	}
	if sizes.Desired != nil {
		scaling.DesiredSize = aws.Int32(*sizes.Desired)
	}

	_, err = api.UpdateNodegroupConfig(ctx, &awseks.UpdateNodegroupConfigInput{
		ClusterName:   aws.String(clusterName),
		NodegroupName: aws.String(name),
		ScalingConfig: scaling,
	})
	if err != nil {
		return ScaleResult{Group: name, Err: fmt.Errorf("failed to update node group %s: %w", name, err)}
	}
	return ScaleResult{
		Group: name,
		Message: fmt.Sprintf("scaling updated: min=%d max=%d desired=%d",
			aws.ToInt32(scaling.MinSize), aws.ToInt32(scaling.MaxSize), aws.ToInt32(scaling.DesiredSize)),
	}
}
