package kube

import (
	"fmt"

	corev1 "k8s.io/api/core/v1"
	"k8s.io/apimachinery/pkg/util/intstr"

	"github.com/davidmdm/airframe/internal"
)

func Namespace(name string, opts MetaOptions) (*corev1.Namespace, error) {
	meta, err := Meta(name, opts)
	if err != nil {
		return nil, fmt.Errorf("namespace: %w", err)
	}

	namespace := corev1.Namespace{ObjectMeta: meta}
	if namespace.TypeMeta, err = typeMeta(&namespace); err != nil {
		return nil, fmt.Errorf("namespace %s: %w", name, err)
	}
	return &namespace, nil
}

type ServiceConfig struct {
	Meta MetaOptions
	// Target is the pod template the service fronts. Its labels become the
	// selector and its declared container ports supply the default port.
	Target   corev1.PodTemplateSpec
	Port     int32
	PortName string
	Type     corev1.ServiceType
	NodePort int32
	Headless bool
}

func targetPort(target corev1.PodTemplateSpec, portName string) (corev1.ContainerPort, error) {
	if portName != "" {
		for _, container := range target.Spec.Containers {
			if port, ok := internal.Find(container.Ports, func(p corev1.ContainerPort) bool { return p.Name == portName }); ok {
				return port, nil
			}
		}
		return corev1.ContainerPort{}, fmt.Errorf("target pod declares no port named %q", portName)
	}
	if len(target.Spec.Containers) == 0 {
		return corev1.ContainerPort{}, fmt.Errorf("target pod declares no containers")
	}
	if first := target.Spec.Containers[0]; len(first.Ports) > 0 {
		return first.Ports[0], nil
	}
	return corev1.ContainerPort{}, fmt.Errorf("target pod declares no ports")
}

// Service fronts a pod template: the selector and default port are computed
// from the target rather than repeated by the caller.
func Service(name string, cfg ServiceConfig) (*corev1.Service, error) {
	meta, err := Meta(name, cfg.Meta)
	if err != nil {
		return nil, fmt.Errorf("service: %w", err)
	}
	if len(cfg.Target.Labels) == 0 {
		return nil, fmt.Errorf("service %s: target pod has no labels to select on", name)
	}

	port := corev1.ContainerPort{ContainerPort: cfg.Port, Name: internal.Hyphenate(cfg.PortName)}
	if cfg.Port == 0 {
		if port, err = targetPort(cfg.Target, cfg.PortName); err != nil {
			return nil, fmt.Errorf("service %s: %w", name, err)
		}
	}

	serviceType := cfg.Type
	if serviceType == "" {
		serviceType = corev1.ServiceTypeClusterIP
	}

	servicePort := corev1.ServicePort{
		Name:       port.Name,
		Port:       port.ContainerPort,
		TargetPort: intstr.FromInt32(port.ContainerPort),
	}
	if cfg.NodePort != 0 {
		if serviceType != corev1.ServiceTypeNodePort && serviceType != corev1.ServiceTypeLoadBalancer {
			return nil, fmt.Errorf("service %s: node port requires a NodePort or LoadBalancer service", name)
		}
		servicePort.NodePort = cfg.NodePort
	}

	service := corev1.Service{
		ObjectMeta: meta,
		Spec: corev1.ServiceSpec{
			Type:     serviceType,
			Selector: cfg.Target.Labels,
			Ports:    []corev1.ServicePort{servicePort},
		},
	}
	if cfg.Headless {
		service.Spec.ClusterIP = corev1.ClusterIPNone
	}
	if service.TypeMeta, err = typeMeta(&service); err != nil {
		return nil, fmt.Errorf("service %s: %w", name, err)
	}
	return &service, nil
}
