package cluster

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseClusterID(t *testing.T) {
	tests := []struct {
		name       string
		clusterID  string
		server     string
		wantName   string
		wantRegion string
	}{
		{
			name:       "eks arn",
			clusterID:  "arn:aws:eks:us-east-1:123456789012:cluster/3p-acme-use1-staging-eks-cluster",
			wantName:   "3p-acme-use1-staging-eks-cluster",
			wantRegion: "us-east-1",
		},
		{
			name:       "plain name with cluster endpoint server",
			clusterID:  "my-cluster",
			server:     "https://A1B2C3D4E5.gr7.eu-west-1.eks.amazonaws.com",
			wantName:   "my-cluster",
			wantRegion: "eu-west-1",
		},
		{
			name:       "plain name with regional endpoint server",
			clusterID:  "my-cluster",
			server:     "https://api.eks.us-east-2.amazonaws.com",
			wantName:   "my-cluster",
			wantRegion: "us-east-2",
		},
		{
			name:      "plain name without region hints",
			clusterID: "minikube",
			server:    "https://192.168.49.2:8443",
			wantName:  "minikube",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			name, region := parseClusterID(tt.clusterID, tt.server)
			assert.Equal(t, tt.wantName, name)
			assert.Equal(t, tt.wantRegion, region)
		})
	}
}

func TestProfileForCluster(t *testing.T) {
	tests := []struct {
		cluster string
		want    string
	}{
		{"3p-acme-use1-staging-eks-cluster", "3p-acme-gbl-staging-admin"},
		{"3p-acme-us-east-1-prod-eks-cluster", "3p-acme-gbl-prod-admin"},
		{"3p-x-dev-eks-cluster", ""},
		{"my-cluster", ""},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ProfileForCluster(tt.cluster), "cluster %q", tt.cluster)
	}
}
