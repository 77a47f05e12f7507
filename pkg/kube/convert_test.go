package kube

import (
	"testing"

	"github.com/stretchr/testify/require"
	corev1 "k8s.io/api/core/v1"

	"github.com/davidmdm/airframe/internal"
)

func TestNamedListOrderAndHyphenation(t *testing.T) {
	m := internal.MapOf(internal.E("config_volume", 1), internal.E("data", 2))

	names := NamedList(m, func(name string, _ int) string { return name })
	require.Equal(t, []string{"config-volume", "data"}, names)

	require.Nil(t, NamedList[int, string](nil, func(name string, _ int) string { return name }))
}

func TestArgs(t *testing.T) {
	m := internal.MapOf(internal.E("log.level", "debug"), internal.E("port", "8080"))
	require.Equal(t, []string{"--log.level=debug", "--port=8080"}, Args(m))
	require.Nil(t, Args(nil))
}

func TestEnvVars(t *testing.T) {
	ref := FieldRef("metadata.name")
	m := internal.MapOf(
		internal.E("LOG_LEVEL", EnvVal("info")),
		internal.E("POD_NAME", EnvFrom(ref)),
	)

	require.Equal(t, []corev1.EnvVar{
		{Name: "LOG_LEVEL", Value: "info"},
		{Name: "POD_NAME", ValueFrom: ref},
	}, EnvVars(m))
}

func TestContainerPorts(t *testing.T) {
	m := internal.MapOf(internal.E("http_alt", int32(8080)), internal.E("metrics", int32(9090)))

	require.Equal(t, []corev1.ContainerPort{
		{Name: "http-alt", ContainerPort: 8080},
		{Name: "metrics", ContainerPort: 9090},
	}, ContainerPorts(m))
}

func TestVolumeMounts(t *testing.T) {
	m := internal.MapOf(internal.E("config_volume", MountOptions{Path: "/etc/app", ReadOnly: true}))

	require.Equal(t, []corev1.VolumeMount{
		{Name: "config-volume", MountPath: "/etc/app", ReadOnly: true},
	}, VolumeMounts(m))
}
