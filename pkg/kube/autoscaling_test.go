package kube

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/davidmdm/airframe/internal"
)

func TestHorizontalPodAutoscaler(t *testing.T) {
	template := testTemplate(t, internal.MapOf(internal.E("http", int32(8080))))

	deployment, err := Deployment("app", DeploymentConfig{Template: template, Replicas: 3})
	require.NoError(t, err)

	hpa, err := HorizontalPodAutoscaler("app", HPAConfig{Target: deployment, MaxReplicas: 10})
	require.NoError(t, err)

	require.Equal(t, "apps/v1", hpa.Spec.ScaleTargetRef.APIVersion)
	require.Equal(t, "Deployment", hpa.Spec.ScaleTargetRef.Kind)
	require.Equal(t, "app", hpa.Spec.ScaleTargetRef.Name)
	require.Equal(t, int32(3), *hpa.Spec.MinReplicas)
	require.Equal(t, int32(10), hpa.Spec.MaxReplicas)
	require.Len(t, hpa.Spec.Metrics, 1)
}

func TestHorizontalPodAutoscalerMaxBelowMin(t *testing.T) {
	template := testTemplate(t, nil)

	deployment, err := Deployment("app", DeploymentConfig{Template: template, Replicas: 5})
	require.NoError(t, err)

	_, err = HorizontalPodAutoscaler("app", HPAConfig{Target: deployment, MaxReplicas: 2})
	require.EqualError(t, err, "horizontal pod autoscaler app: max replicas 2 is less than min replicas 5")
}

func TestHorizontalPodAutoscalerRejectsTarget(t *testing.T) {
	namespace, err := Namespace("default", MetaOptions{})
	require.NoError(t, err)

	_, err = HorizontalPodAutoscaler("app", HPAConfig{Target: namespace, MaxReplicas: 2})
	require.EqualError(t, err, "horizontal pod autoscaler app: target must be a Deployment or StatefulSet, got *v1.Namespace")
}
