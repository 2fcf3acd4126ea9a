package eks

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	awseks "github.com/aws/aws-sdk-go-v2/service/eks"

	"github.com/opsdevcode/knode/pkg/cluster"
)

// NodegroupAPI is the slice of the EKS API knode uses. The real *eks.Client
// satisfies it; tests substitute mocks.
type NodegroupAPI interface {
	ListNodegroups(ctx context.Context, params *awseks.ListNodegroupsInput, optFns ...func(*awseks.Options)) (*awseks.ListNodegroupsOutput, error)
	DescribeNodegroup(ctx context.Context, params *awseks.DescribeNodegroupInput, optFns ...func(*awseks.Options)) (*awseks.DescribeNodegroupOutput, error)
	UpdateNodegroupConfig(ctx context.Context, params *awseks.UpdateNodegroupConfigInput, optFns ...func(*awseks.Options)) (*awseks.UpdateNodegroupConfigOutput, error)
}

// NodeGroupInfo is the scaling view of an EKS managed node group. It is
// fetched immediately before use and never cached, so partial updates merge
// against current truth.
type NodeGroupInfo struct {
	Name         string
	Status       string
	CapacityType string
	MinSize      int32
	MaxSize      int32
	DesiredSize  int32
}

// NewClient builds an EKS API client for the cluster's account and region.
// Empty profile or region fall back to the ambient AWS configuration.
func NewClient(ctx context.Context, cc cluster.Context) (*awseks.Client, error) {
	var opts []func(*config.LoadOptions) error
	if cc.Profile != "" {
		opts = append(opts, config.WithSharedConfigProfile(cc.Profile))
	}
	if cc.Region != "" {
		opts = append(opts, config.WithRegion(cc.Region))
	}
	cfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}
	return awseks.NewFromConfig(cfg), nil
}

// ListNodeGroups returns the managed node group names in the cluster, sorted.
func ListNodeGroups(ctx context.Context, api NodegroupAPI, clusterName string) ([]string, error) {
	names := []string{}
	input := &awseks.ListNodegroupsInput{
		ClusterName: aws.String(clusterName),
	}
	for {
		result, err := api.ListNodegroups(ctx, input)
		if err != nil {
			return nil, fmt.Errorf("failed to list node groups for cluster %s: %w", clusterName, err)
		}
		names = append(names, result.Nodegroups...)
		if result.NextToken == nil {
			break
		}
		input.NextToken = result.NextToken
	}
	sort.Strings(names)
	return names, nil
}

// GetNodeGroupInfo describes one node group and normalizes its capacity type
// (ON_DEMAND becomes on-demand).
func GetNodeGroupInfo(ctx context.Context, api NodegroupAPI, clusterName, nodegroupName string) (*NodeGroupInfo, error) {
	result, err := api.DescribeNodegroup(ctx, &awseks.DescribeNodegroupInput{
		ClusterName:   aws.String(clusterName),
		NodegroupName: aws.String(nodegroupName),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to describe node group %s: %w", nodegroupName, err)
	}
	ng := result.Nodegroup
	if ng == nil {
		return nil, fmt.Errorf("node group %s not found", nodegroupName)
	}

	info := &NodeGroupInfo{
		Name:         nodegroupName,
		Status:       string(ng.Status),
		CapacityType: strings.ToLower(strings.ReplaceAll(string(ng.CapacityType), "_", "-")),
	}
	if ng.NodegroupName != nil {
		info.Name = *ng.NodegroupName
	}
	if info.Status == "" {
		info.Status = "UNKNOWN"
	}
	if sc := ng.ScalingConfig; sc != nil {
		info.MinSize = aws.ToInt32(sc.MinSize)
		info.MaxSize = aws.ToInt32(sc.MaxSize)
		info.DesiredSize = aws.ToInt32(sc.DesiredSize)
	}
	return info, nil
}
