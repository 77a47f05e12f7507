package kube

import (
	"fmt"

	corev1 "k8s.io/api/core/v1"
	netv1 "k8s.io/api/networking/v1"
)

// IngressRule routes one host and path to a service. Port zero routes to the
// service's first declared port.
type IngressRule struct {
	Host     string
	Path     string
	PathType netv1.PathType
	Service  *corev1.Service
	Port     int32
}

type IngressConfig struct {
	Meta      MetaOptions
	Rules     []IngressRule
	ClassName string
	// TLSSecret enables the tls block; left empty the block is omitted
	// entirely rather than set to null.
	TLSSecret string
}

func Ingress(name string, cfg IngressConfig) (*netv1.Ingress, error) {
	meta, err := Meta(name, cfg.Meta)
	if err != nil {
		return nil, fmt.Errorf("ingress: %w", err)
	}
	if len(cfg.Rules) == 0 {
		return nil, fmt.Errorf("ingress %s: at least one rule is required", name)
	}

	var rules []netv1.IngressRule
	var hosts []string
	for _, rule := range cfg.Rules {
		if rule.Host == "" {
			return nil, fmt.Errorf("ingress %s: rule host is required", name)
		}
		if rule.Service == nil {
			return nil, fmt.Errorf("ingress %s: rule for host %s: service is required", name, rule.Host)
		}

		port := rule.Port
		if port == 0 {
			if len(rule.Service.Spec.Ports) == 0 {
				return nil, fmt.Errorf("ingress %s: service %s declares no ports", name, rule.Service.Name)
			}
			port = rule.Service.Spec.Ports[0].Port
		}

		path := rule.Path
		if path == "" {
			path = "/"
		}
		pathType := rule.PathType
		if pathType == "" {
			pathType = netv1.PathTypePrefix
		}

		hosts = append(hosts, rule.Host)
		rules = append(rules, netv1.IngressRule{
			Host: rule.Host,
			IngressRuleValue: netv1.IngressRuleValue{
				HTTP: &netv1.HTTPIngressRuleValue{
					Paths: []netv1.HTTPIngressPath{{
						Path:     path,
						PathType: &pathType,
						Backend: netv1.IngressBackend{
							Service: &netv1.IngressServiceBackend{
								Name: rule.Service.Name,
								Port: netv1.ServiceBackendPort{Number: port},
							},
						},
					}},
				},
			},
		})
	}

	ingress := netv1.Ingress{
		ObjectMeta: meta,
		Spec:       netv1.IngressSpec{Rules: rules},
	}
	if cfg.ClassName != "" {
		ingress.Spec.IngressClassName = &cfg.ClassName
	}
	if cfg.TLSSecret != "" {
		ingress.Spec.TLS = []netv1.IngressTLS{{Hosts: hosts, SecretName: cfg.TLSSecret}}
	}
	if ingress.TypeMeta, err = typeMeta(&ingress); err != nil {
		return nil, fmt.Errorf("ingress %s: %w", name, err)
	}
	return &ingress, nil
}
