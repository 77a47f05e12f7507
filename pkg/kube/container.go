package kube

import (
	"fmt"

	corev1 "k8s.io/api/core/v1"
	"k8s.io/apimachinery/pkg/api/resource"

	"github.com/davidmdm/x/xerr"

	"github.com/davidmdm/airframe/internal"
)

// Resources declares compute requests and limits as quantity strings.
type Resources struct {
	Requests map[corev1.ResourceName]string
	Limits   map[corev1.ResourceName]string
}

func resourceList(quantities map[corev1.ResourceName]string) (corev1.ResourceList, error) {
	if len(quantities) == 0 {
		return nil, nil
	}
	list := corev1.ResourceList{}
	var errs []error
	for name, value := range quantities {
		quantity, err := resource.ParseQuantity(value)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %q: %w", name, value, err))
			continue
		}
		list[name] = quantity
	}
	if err := xerr.MultiErrFrom("invalid quantity", errs...); err != nil {
		return nil, err
	}
	return list, nil
}

// ContainerConfig is the convenience surface for building a container.
// None of its fields appear in the output document directly; ordered maps
// are expanded into the named lists Kubernetes expects.
type ContainerConfig struct {
	Image           string
	Command         []string
	Args            *internal.OrderedMap[string]
	Env             *internal.OrderedMap[EnvValue]
	Ports           *internal.OrderedMap[int32]
	VolumeMounts    *internal.OrderedMap[MountOptions]
	WorkingDir      string
	Resources       Resources
	LivenessProbe   *corev1.Probe
	ReadinessProbe  *corev1.Probe
	SecurityContext *corev1.SecurityContext
	ImagePullPolicy corev1.PullPolicy
	Stdin           bool
	TTY             bool
}

func Container(name string, cfg ContainerConfig) (corev1.Container, error) {
	if name == "" {
		return corev1.Container{}, fmt.Errorf("container: name is required")
	}
	if cfg.Image == "" {
		return corev1.Container{}, fmt.Errorf("container %s: image is required", name)
	}
	if cfg.TTY && !cfg.Stdin {
		return corev1.Container{}, fmt.Errorf("container %s: tty requires stdin", name)
	}

	requests, err := resourceList(cfg.Resources.Requests)
	if err != nil {
		return corev1.Container{}, fmt.Errorf("container %s: requests: %w", name, err)
	}
	limits, err := resourceList(cfg.Resources.Limits)
	if err != nil {
		return corev1.Container{}, fmt.Errorf("container %s: limits: %w", name, err)
	}

	return corev1.Container{
		Name:            name,
		Image:           cfg.Image,
		Command:         cfg.Command,
		Args:            Args(cfg.Args),
		Env:             EnvVars(cfg.Env),
		Ports:           ContainerPorts(cfg.Ports),
		VolumeMounts:    VolumeMounts(cfg.VolumeMounts),
		WorkingDir:      cfg.WorkingDir,
		LivenessProbe:   cfg.LivenessProbe,
		ReadinessProbe:  cfg.ReadinessProbe,
		SecurityContext: cfg.SecurityContext,
		ImagePullPolicy: cfg.ImagePullPolicy,
		Resources: corev1.ResourceRequirements{
			Requests: requests,
			Limits:   limits,
		},
		Stdin: cfg.Stdin,
		TTY:   cfg.TTY,
	}, nil
}
