package kube

import (
	"fmt"

	corev1 "k8s.io/api/core/v1"
	apiregistrationv1 "k8s.io/kube-aggregator/pkg/apis/apiregistration/v1"
)

type APIServiceConfig struct {
	Group   string
	Version string
	// Service is the backing extension api server; nil registers a local
	// (core apiserver handled) group version.
	Service               *corev1.Service
	CABundle              []byte
	InsecureSkipTLSVerify bool
	GroupPriorityMinimum  int32
	VersionPriority       int32
}

// APIService registers an aggregated API group version. The object name is
// derived from the group and version, matching the apiregistration convention.
func APIService(cfg APIServiceConfig) (*apiregistrationv1.APIService, error) {
	if cfg.Group == "" || cfg.Version == "" {
		return nil, fmt.Errorf("api service: group and version are required")
	}

	name := cfg.Version + "." + cfg.Group
	meta, err := Meta(name, MetaOptions{})
	if err != nil {
		return nil, fmt.Errorf("api service: %w", err)
	}

	groupPriority := cfg.GroupPriorityMinimum
	if groupPriority == 0 {
		groupPriority = 1000
	}
	versionPriority := cfg.VersionPriority
	if versionPriority == 0 {
		versionPriority = 15
	}

	service := apiregistrationv1.APIService{
		ObjectMeta: meta,
		Spec: apiregistrationv1.APIServiceSpec{
			Group:                 cfg.Group,
			Version:               cfg.Version,
			CABundle:              cfg.CABundle,
			InsecureSkipTLSVerify: cfg.InsecureSkipTLSVerify,
			GroupPriorityMinimum:  groupPriority,
			VersionPriority:       versionPriority,
		},
	}
	if cfg.Service != nil {
		service.Spec.Service = &apiregistrationv1.ServiceReference{
			Name:      cfg.Service.Name,
			Namespace: cfg.Service.Namespace,
		}
		if ports := cfg.Service.Spec.Ports; len(ports) > 0 {
			service.Spec.Service.Port = &ports[0].Port
		}
	}
	if service.TypeMeta, err = typeMeta(&service); err != nil {
		return nil, fmt.Errorf("api service %s: %w", name, err)
	}
	return &service, nil
}
