// Package contour derives ingress configuration for clusters fronted by a
// shared contour instance: host names follow the cluster naming convention
// and TLS wiring is annotated for cert-manager when a secret is requested.
package contour

import (
	"fmt"
	"io"
	"strings"

	"github.com/davidmdm/conf"
	"gopkg.in/yaml.v3"
)

// Cluster is the externally supplied cluster metadata document.
type Cluster struct {
	Name          string `yaml:"name"`
	Region        string `yaml:"region"`
	CloudProvider string `yaml:"cloud_provider"`
	DNSZone       string `yaml:"dns_zone"`
}

// FQDN joins the cluster name onto its dns zone.
func (cluster Cluster) FQDN() string {
	return strings.Join([]string{cluster.Name, cluster.DNSZone}, ".")
}

func (cluster Cluster) validate() error {
	if cluster.Name == "" {
		return fmt.Errorf("cluster metadata: name is required")
	}
	if cluster.DNSZone == "" {
		return fmt.Errorf("cluster metadata: dns_zone is required")
	}
	return nil
}

// LoadCluster decodes cluster metadata from a yaml or json document.
func LoadCluster(r io.Reader) (Cluster, error) {
	var cluster Cluster

	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(&cluster); err != nil {
		return cluster, fmt.Errorf("failed to decode cluster metadata: %w", err)
	}

	return cluster, cluster.validate()
}

// ClusterFromEnv reads cluster metadata from CLUSTER_* environment variables.
func ClusterFromEnv() (Cluster, error) {
	var cluster Cluster

	conf.Var(conf.Environ, &cluster.Name, "CLUSTER_NAME", conf.Required[string](true))
	conf.Var(conf.Environ, &cluster.Region, "CLUSTER_REGION")
	conf.Var(conf.Environ, &cluster.CloudProvider, "CLUSTER_CLOUD_PROVIDER")
	conf.Var(conf.Environ, &cluster.DNSZone, "CLUSTER_DNS_ZONE", conf.Required[string](true))
	if err := conf.Environ.Parse(); err != nil {
		return cluster, err
	}

	return cluster, cluster.validate()
}
