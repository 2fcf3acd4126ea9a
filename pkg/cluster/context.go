package cluster

import (
	"fmt"
	"regexp"
	"strings"

	"k8s.io/cli-runtime/pkg/genericclioptions"
)

// Context identifies the cluster a command operates on: the EKS cluster name
// plus the AWS region and profile used for node group API calls. It is built
// once at the start of a command and passed down explicitly.
type Context struct {
	Name    string
	Region  string
	Profile string
}

var (
	eksARN = regexp.MustCompile(`^arn:aws:eks:([a-z0-9-]+):\d{12}:cluster/(.+)$`)
	// EKS API server hostnames carry the region either after ".eks."
	// (regional endpoint form) or as the segment right before
	// ".eks.amazonaws.com" (cluster endpoint form). Accept both.
	eksServer     = regexp.MustCompile(`\.eks\.([a-z0-9-]+)\.amazonaws\.com`)
	eksServerHost = regexp.MustCompile(`([a-z0-9-]+)\.eks\.amazonaws\.com`)
)

// Current resolves the active cluster from the kubeconfig current context.
func Current(flags *genericclioptions.ConfigFlags) (Context, error) {
	config, err := flags.ToRawKubeConfigLoader().RawConfig()
	if err != nil {
		return Context{}, fmt.Errorf("error loading kubeconfig: %w", err)
	}

	contextDetails, exists := config.Contexts[config.CurrentContext]
	if !exists {
		return Context{}, fmt.Errorf("context %q not found in kubeconfig; select a cluster first", config.CurrentContext)
	}

	server := ""
	if clusterDetails, ok := config.Clusters[contextDetails.Cluster]; ok {
		server = clusterDetails.Server
	}

	name, region := parseClusterID(contextDetails.Cluster, server)
	if name == "" {
		return Context{}, fmt.Errorf("could not determine cluster name from kubeconfig; select a cluster first")
	}
	return Context{Name: name, Region: region, Profile: ProfileForCluster(name)}, nil
}

// parseClusterID extracts the cluster name and AWS region from a kubeconfig
// cluster entry. EKS kubeconfigs name clusters by ARN; the region falls back
// to the API server hostname when the entry is not an ARN.
func parseClusterID(clusterID, server string) (name, region string) {
	name = clusterID
	if m := eksARN.FindStringSubmatch(clusterID); m != nil {
		region = m[1]
		name = m[2]
	}
	if region == "" {
		if m := eksServer.FindStringSubmatch(server); m != nil {
			region = m[1]
		} else if m := eksServerHost.FindStringSubmatch(server); m != nil {
			region = m[1]
		}
	}
	return name, region
}

// ProfileForCluster derives the AWS profile holding the cluster's account
// credentials. Cluster names follow 3p-{tenant}-{region}-{stage}-eks-cluster
// and the matching admin profile is 3p-{tenant}-gbl-{stage}-admin. Names
// outside that scheme yield "" and the ambient credentials apply.
func ProfileForCluster(name string) string {
	if !strings.Contains(name, "-eks-cluster") {
		return ""
	}
	rest := strings.Replace(name, "-eks-cluster", "", 1)
	parts := strings.Split(rest, "-")
	if len(parts) < 4 {
		return ""
	}
	tenant := parts[1]
	stage := parts[len(parts)-1]
	return fmt.Sprintf("3p-%s-gbl-%s-admin", tenant, stage)
}
