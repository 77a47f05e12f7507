package kube

import (
	"fmt"

	corev1 "k8s.io/api/core/v1"

	"github.com/davidmdm/airframe/internal"
)

// NamedList expands an ordered map into the array-of-named-objects shape
// Kubernetes uses pervasively. Keys are hyphenated into DNS-label safe names
// and declared order is preserved.
func NamedList[V, T any](m *internal.OrderedMap[V], build func(name string, value V) T) []T {
	if m.Len() == 0 {
		return nil
	}
	result := make([]T, 0, m.Len())
	for _, entry := range m.Items() {
		result = append(result, build(internal.Hyphenate(entry.Key), entry.Value))
	}
	return result
}

// EnvValue is either a literal value or a reference into another object.
type EnvValue struct {
	Value string
	From  *corev1.EnvVarSource
}

func EnvVal(value string) EnvValue { return EnvValue{Value: value} }

func EnvFrom(source *corev1.EnvVarSource) EnvValue { return EnvValue{From: source} }

// EnvVars expands an ordered map of environment values. Env var names keep
// their underscores; only list-entry names get hyphenated.
func EnvVars(m *internal.OrderedMap[EnvValue]) []corev1.EnvVar {
	if m.Len() == 0 {
		return nil
	}
	vars := make([]corev1.EnvVar, 0, m.Len())
	for _, entry := range m.Items() {
		vars = append(vars, corev1.EnvVar{
			Name:      entry.Key,
			Value:     entry.Value.Value,
			ValueFrom: entry.Value.From,
		})
	}
	return vars
}

// Args renders each pair as a --key=value command line flag.
func Args(m *internal.OrderedMap[string]) []string {
	if m.Len() == 0 {
		return nil
	}
	args := make([]string, 0, m.Len())
	for _, entry := range m.Items() {
		args = append(args, fmt.Sprintf("--%s=%s", entry.Key, entry.Value))
	}
	return args
}

func ContainerPorts(m *internal.OrderedMap[int32]) []corev1.ContainerPort {
	return NamedList(m, func(name string, port int32) corev1.ContainerPort {
		return corev1.ContainerPort{Name: name, ContainerPort: port}
	})
}

// MountOptions configures a single volume mount keyed by volume name.
type MountOptions struct {
	Path     string
	SubPath  string
	ReadOnly bool
}

func VolumeMounts(m *internal.OrderedMap[MountOptions]) []corev1.VolumeMount {
	return NamedList(m, func(name string, opts MountOptions) corev1.VolumeMount {
		return corev1.VolumeMount{
			Name:      name,
			MountPath: opts.Path,
			SubPath:   opts.SubPath,
			ReadOnly:  opts.ReadOnly,
		}
	})
}
