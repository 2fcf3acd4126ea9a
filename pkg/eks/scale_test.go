package eks

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	awseks "github.com/aws/aws-sdk-go-v2/service/eks"
	"github.com/aws/aws-sdk-go-v2/service/eks/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockNodegroupAPI is a mock implementation of the EKS API subset.
type mockNodegroupAPI struct {
	mockListNodegroups        func(ctx context.Context, input *awseks.ListNodegroupsInput) (*awseks.ListNodegroupsOutput, error)
	mockDescribeNodegroup     func(ctx context.Context, input *awseks.DescribeNodegroupInput) (*awseks.DescribeNodegroupOutput, error)
	mockUpdateNodegroupConfig func(ctx context.Context, input *awseks.UpdateNodegroupConfigInput) (*awseks.UpdateNodegroupConfigOutput, error)
}

func (m *mockNodegroupAPI) ListNodegroups(ctx context.Context, input *awseks.ListNodegroupsInput, optFns ...func(*awseks.Options)) (*awseks.ListNodegroupsOutput, error) {
	return m.mockListNodegroups(ctx, input)
}

func (m *mockNodegroupAPI) DescribeNodegroup(ctx context.Context, input *awseks.DescribeNodegroupInput, optFns ...func(*awseks.Options)) (*awseks.DescribeNodegroupOutput, error) {
	return m.mockDescribeNodegroup(ctx, input)
}

func (m *mockNodegroupAPI) UpdateNodegroupConfig(ctx context.Context, input *awseks.UpdateNodegroupConfigInput, optFns ...func(*awseks.Options)) (*awseks.UpdateNodegroupConfigOutput, error) {
	return m.mockUpdateNodegroupConfig(ctx, input)
}

func describeOutput(name string, capacityType types.CapacityTypes, min, max, desired int32) *awseks.DescribeNodegroupOutput {
	return &awseks.DescribeNodegroupOutput{
		Nodegroup: &types.Nodegroup{
			NodegroupName: aws.String(name),
			Status:        types.NodegroupStatusActive,
			CapacityType:  capacityType,
			ScalingConfig: &types.NodegroupScalingConfig{
				MinSize:     aws.Int32(min),
				MaxSize:     aws.Int32(max),
				DesiredSize: aws.Int32(desired),
			},
		},
	}
}

func TestGetNodeGroupInfoNormalizesCapacityType(t *testing.T) {
	api := &mockNodegroupAPI{
		mockDescribeNodegroup: func(ctx context.Context, input *awseks.DescribeNodegroupInput) (*awseks.DescribeNodegroupOutput, error) {
			return describeOutput("main", types.CapacityTypesOnDemand, 1, 5, 3), nil
		},
	}

	info, err := GetNodeGroupInfo(context.Background(), api, "cluster", "main")
	require.NoError(t, err)
	assert.Equal(t, "main", info.Name)
	assert.Equal(t, "ACTIVE", info.Status)
	assert.Equal(t, "on-demand", info.CapacityType)
	assert.Equal(t, int32(1), info.MinSize)
	assert.Equal(t, int32(5), info.MaxSize)
	assert.Equal(t, int32(3), info.DesiredSize)
}

func TestListNodeGroupsSorted(t *testing.T) {
	api := &mockNodegroupAPI{
		mockListNodegroups: func(ctx context.Context, input *awseks.ListNodegroupsInput) (*awseks.ListNodegroupsOutput, error) {
			return &awseks.ListNodegroupsOutput{Nodegroups: []string{"zeta", "alpha", "main"}}, nil
		},
	}

	names, err := ListNodeGroups(context.Background(), api, "cluster")
	require.NoError(t, err)
	assert.Equal(t, []string{"alpha", "main", "zeta"}, names)
}

func TestListNodeGroupsPagination(t *testing.T) {
	api := &mockNodegroupAPI{
		mockListNodegroups: func(ctx context.Context, input *awseks.ListNodegroupsInput) (*awseks.ListNodegroupsOutput, error) {
			if input.NextToken == nil {
				return &awseks.ListNodegroupsOutput{
					Nodegroups: []string{"page1-a", "page1-b"},
					NextToken:  aws.String("next"),
				}, nil
			}
			assert.Equal(t, "next", *input.NextToken)
			return &awseks.ListNodegroupsOutput{Nodegroups: []string{"page2-a"}}, nil
		},
	}

	names, err := ListNodeGroups(context.Background(), api, "cluster")
	require.NoError(t, err)
	assert.Equal(t, []string{"page1-a", "page1-b", "page2-a"}, names)
}

func TestUpdateScalingRequiresASize(t *testing.T) {
	calls := 0
	api := &mockNodegroupAPI{
		mockListNodegroups: func(ctx context.Context, input *awseks.ListNodegroupsInput) (*awseks.ListNodegroupsOutput, error) {
			calls++
			return &awseks.ListNodegroupsOutput{}, nil
		},
	}

	_, err := UpdateScaling(context.Background(), api, "cluster", ScaleTarget{All: true}, ScaleSizes{})
	require.ErrorIs(t, err, ErrNoSizes)
	assert.Zero(t, calls, "validation happens before any group resolution")
}

func TestUpdateScalingDesiredOnlyCarriesCurrentMinMax(t *testing.T) {
	var issued *awseks.UpdateNodegroupConfigInput
	api := &mockNodegroupAPI{
		mockDescribeNodegroup: func(ctx context.Context, input *awseks.DescribeNodegroupInput) (*awseks.DescribeNodegroupOutput, error) {
			return describeOutput("main", types.CapacityTypesSpot, 1, 5, 3), nil
		},
		mockUpdateNodegroupConfig: func(ctx context.Context, input *awseks.UpdateNodegroupConfigInput) (*awseks.UpdateNodegroupConfigOutput, error) {
			issued = input
			return &awseks.UpdateNodegroupConfigOutput{}, nil
		},
	}

	results, err := UpdateScaling(context.Background(), api, "cluster",
		ScaleTarget{Name: "main"}, ScaleSizes{Desired: aws.Int32(0)})
	require.NoError(t, err)
	require.Len(t, results, 1)
	require.NoError(t, results[0].Err)

	require.NotNil(t, issued)
	assert.Equal(t, int32(1), aws.ToInt32(issued.ScalingConfig.MinSize))
	assert.Equal(t, int32(5), aws.ToInt32(issued.ScalingConfig.MaxSize))
	assert.Equal(t, int32(0), aws.ToInt32(issued.ScalingConfig.DesiredSize))
}

func TestUpdateScalingAllIsolatesFailures(t *testing.T) {
	updated := []string{}
	api := &mockNodegroupAPI{
		mockListNodegroups: func(ctx context.Context, input *awseks.ListNodegroupsInput) (*awseks.ListNodegroupsOutput, error) {
			return &awseks.ListNodegroupsOutput{Nodegroups: []string{"a", "b", "c"}}, nil
		},
		mockDescribeNodegroup: func(ctx context.Context, input *awseks.DescribeNodegroupInput) (*awseks.DescribeNodegroupOutput, error) {
			name := aws.ToString(input.NodegroupName)
			if name == "b" {
				return nil, errors.New("access denied")
			}
			return describeOutput(name, types.CapacityTypesOnDemand, 0, 10, 2), nil
		},
		mockUpdateNodegroupConfig: func(ctx context.Context, input *awseks.UpdateNodegroupConfigInput) (*awseks.UpdateNodegroupConfigOutput, error) {
			updated = append(updated, aws.ToString(input.NodegroupName))
			return &awseks.UpdateNodegroupConfigOutput{}, nil
		},
	}

	results, err := UpdateScaling(context.Background(), api, "cluster",
		ScaleTarget{All: true}, ScaleSizes{Min: aws.Int32(1)})
	require.NoError(t, err)
	require.Len(t, results, 3)

	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
			assert.Equal(t, "b", r.Group)
		}
	}
	assert.Equal(t, 1, failed)
	assert.Equal(t, []string{"a", "c"}, updated, "the failing group never blocks the others")
}

func TestUpdateScalingCapacityTypeFilter(t *testing.T) {
	updated := []string{}
	capTypes := map[string]types.CapacityTypes{
		"spot-group": types.CapacityTypesSpot,
		"od-group":   types.CapacityTypesOnDemand,
	}
	api := &mockNodegroupAPI{
		mockListNodegroups: func(ctx context.Context, input *awseks.ListNodegroupsInput) (*awseks.ListNodegroupsOutput, error) {
			return &awseks.ListNodegroupsOutput{Nodegroups: []string{"od-group", "spot-group"}}, nil
		},
		mockDescribeNodegroup: func(ctx context.Context, input *awseks.DescribeNodegroupInput) (*awseks.DescribeNodegroupOutput, error) {
			name := aws.ToString(input.NodegroupName)
			return describeOutput(name, capTypes[name], 0, 3, 1), nil
		},
		mockUpdateNodegroupConfig: func(ctx context.Context, input *awseks.UpdateNodegroupConfigInput) (*awseks.UpdateNodegroupConfigOutput, error) {
			updated = append(updated, aws.ToString(input.NodegroupName))
			return &awseks.UpdateNodegroupConfigOutput{}, nil
		},
	}

	results, err := UpdateScaling(context.Background(), api, "cluster",
		ScaleTarget{CapacityType: "spot"}, ScaleSizes{Desired: aws.Int32(0)})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, []string{"spot-group"}, updated)
}

func TestUpdateScalingNoMatchingCapacityType(t *testing.T) {
	api := &mockNodegroupAPI{
		mockListNodegroups: func(ctx context.Context, input *awseks.ListNodegroupsInput) (*awseks.ListNodegroupsOutput, error) {
			return &awseks.ListNodegroupsOutput{Nodegroups: []string{"od-group"}}, nil
		},
		mockDescribeNodegroup: func(ctx context.Context, input *awseks.DescribeNodegroupInput) (*awseks.DescribeNodegroupOutput, error) {
			return describeOutput("od-group", types.CapacityTypesOnDemand, 0, 3, 1), nil
		},
	}

	_, err := UpdateScaling(context.Background(), api, "cluster",
		ScaleTarget{CapacityType: "spot"}, ScaleSizes{Desired: aws.Int32(0)})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "spot")
}
