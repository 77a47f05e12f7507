package kube

import (
	"testing"

	"github.com/stretchr/testify/require"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/utils/ptr"
)

func testContainer(t *testing.T) corev1.Container {
	t.Helper()
	container, err := Container("app", ContainerConfig{Image: "nginx"})
	require.NoError(t, err)
	return container
}

func TestPodSpecRequiresContainers(t *testing.T) {
	_, err := PodSpec(PodConfig{})
	require.EqualError(t, err, "pod spec: at least one container is required")
}

func TestPodSpecDefaults(t *testing.T) {
	spec, err := PodSpec(PodConfig{Containers: []corev1.Container{testContainer(t)}})
	require.NoError(t, err)
	require.Equal(t, int64(30), *spec.TerminationGracePeriodSeconds)
}

func TestPodSpecGraceOverride(t *testing.T) {
	spec, err := PodSpec(PodConfig{
		Containers:                    []corev1.Container{testContainer(t)},
		TerminationGracePeriodSeconds: ptr.To(int64(0)),
	})
	require.NoError(t, err)
	require.Equal(t, int64(0), *spec.TerminationGracePeriodSeconds)
}

func TestPodTemplateLabels(t *testing.T) {
	template, err := PodTemplate("app", PodConfig{
		Meta:       MetaOptions{Namespace: "default", App: "app"},
		Containers: []corev1.Container{testContainer(t)},
	})
	require.NoError(t, err)
	require.Equal(t, map[string]string{"name": "app", "app": "app"}, template.Labels)
}

func TestPodTypeMeta(t *testing.T) {
	pod, err := Pod("app", PodConfig{Containers: []corev1.Container{testContainer(t)}})
	require.NoError(t, err)
	require.Equal(t, "v1", pod.APIVersion)
	require.Equal(t, "Pod", pod.Kind)
}

func TestWeightedPodAffinityTerm(t *testing.T) {
	cases := []struct {
		Name  string
		Cfg   AffinityTermConfig
		Error string
	}{
		{
			Name:  "neither selector",
			Cfg:   AffinityTermConfig{},
			Error: "affinity term: exactly one of match labels or match expressions is required",
		},
		{
			Name: "both selectors",
			Cfg: AffinityTermConfig{
				MatchLabels:      map[string]string{"app": "x"},
				MatchExpressions: []metav1.LabelSelectorRequirement{{Key: "app", Operator: metav1.LabelSelectorOpExists}},
			},
			Error: "affinity term: exactly one of match labels or match expressions is required",
		},
		{
			Name: "match labels only",
			Cfg:  AffinityTermConfig{MatchLabels: map[string]string{"app": "x"}},
		},
	}

	for _, tc := range cases {
		t.Run(tc.Name, func(t *testing.T) {
			term, err := WeightedPodAffinityTerm(tc.Cfg)

			if tc.Error != "" {
				require.EqualError(t, err, tc.Error)
				return
			}

			require.NoError(t, err)
			require.Equal(t, int32(100), term.Weight)
			require.Equal(t, "kubernetes.io/hostname", term.PodAffinityTerm.TopologyKey)
		})
	}
}
