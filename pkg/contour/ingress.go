package contour

import (
	"fmt"

	corev1 "k8s.io/api/core/v1"
	netv1 "k8s.io/api/networking/v1"

	"github.com/davidmdm/airframe/pkg/kube"
)

const (
	defaultInstance = "contour"
	defaultIssuer   = "letsencrypt"

	dnsTargetAnnotation = "external-dns.alpha.kubernetes.io/target"
	issuerAnnotation    = "cert-manager.io/cluster-issuer"
	acmeAnnotation      = "kubernetes.io/tls-acme"
)

type IngressConfig struct {
	Meta    kube.MetaOptions
	Service *corev1.Service
	Port    int32

	// ClusterMeta supplies the default cluster name and domains. Cluster and
	// Host override it with increasing precedence: Host wins over Cluster,
	// which wins over the metadata cluster name.
	ClusterMeta Cluster
	Cluster     string
	Host        string

	// IngressDomain and ContourDomain default to the metadata dns zone.
	IngressDomain string
	ContourDomain string
	// ContourInstance is the shared contour deployment fronting the cluster.
	ContourInstance string

	// TLSSecret enables the tls block and cert-manager annotations.
	TLSSecret     string
	ClusterIssuer string
}

// Ingress composes an ingress whose host and dns target follow the cluster
// naming convention.
func Ingress(name string, cfg IngressConfig) (*netv1.Ingress, error) {
	if name == "" {
		return nil, fmt.Errorf("contour ingress: name is required")
	}
	if cfg.Service == nil {
		return nil, fmt.Errorf("contour ingress %s: service is required", name)
	}

	cluster := cfg.Cluster
	if cluster == "" {
		cluster = cfg.ClusterMeta.Name
	}
	if cluster == "" {
		return nil, fmt.Errorf("contour ingress %s: cluster name is required", name)
	}

	ingressDomain := cfg.IngressDomain
	if ingressDomain == "" {
		ingressDomain = cfg.ClusterMeta.DNSZone
	}
	contourDomain := cfg.ContourDomain
	if contourDomain == "" {
		contourDomain = cfg.ClusterMeta.DNSZone
	}
	instance := cfg.ContourInstance
	if instance == "" {
		instance = defaultInstance
	}

	host := cfg.Host
	if host == "" {
		if ingressDomain == "" {
			return nil, fmt.Errorf("contour ingress %s: ingress domain is required", name)
		}
		host = fmt.Sprintf("%s.%s.%s", name, cluster, ingressDomain)
	}
	if contourDomain == "" {
		return nil, fmt.Errorf("contour ingress %s: contour domain is required", name)
	}

	meta := cfg.Meta
	annotations := map[string]string{
		dnsTargetAnnotation: fmt.Sprintf("%s.%s.%s", instance, cluster, contourDomain),
	}
	if cfg.TLSSecret != "" {
		issuer := cfg.ClusterIssuer
		if issuer == "" {
			issuer = defaultIssuer
		}
		annotations[issuerAnnotation] = issuer
		annotations[acmeAnnotation] = "true"
	}
	for key, value := range meta.Annotations {
		if _, ok := annotations[key]; !ok {
			annotations[key] = value
		}
	}
	meta.Annotations = annotations

	return kube.Ingress(name, kube.IngressConfig{
		Meta: meta,
		Rules: []kube.IngressRule{{
			Host:    host,
			Service: cfg.Service,
			Port:    cfg.Port,
		}},
		TLSSecret: cfg.TLSSecret,
	})
}
