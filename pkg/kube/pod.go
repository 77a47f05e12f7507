package kube

import (
	"fmt"

	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/utils/ptr"
)

const defaultTerminationGracePeriod = int64(30)

type PodConfig struct {
	Meta                          MetaOptions
	Containers                    []corev1.Container
	InitContainers                []corev1.Container
	Volumes                       []corev1.Volume
	ServiceAccountName            string
	RestartPolicy                 corev1.RestartPolicy
	NodeSelector                  map[string]string
	Affinity                      *corev1.Affinity
	Tolerations                   []corev1.Toleration
	ImagePullSecrets              []string
	TerminationGracePeriodSeconds *int64
}

func PodSpec(cfg PodConfig) (corev1.PodSpec, error) {
	if len(cfg.Containers) == 0 {
		return corev1.PodSpec{}, fmt.Errorf("pod spec: at least one container is required")
	}

	grace := cfg.TerminationGracePeriodSeconds
	if grace == nil {
		grace = ptr.To(defaultTerminationGracePeriod)
	}

	var pullSecrets []corev1.LocalObjectReference
	for _, name := range cfg.ImagePullSecrets {
		pullSecrets = append(pullSecrets, corev1.LocalObjectReference{Name: name})
	}

	return corev1.PodSpec{
		Containers:                    cfg.Containers,
		InitContainers:                cfg.InitContainers,
		Volumes:                       cfg.Volumes,
		ServiceAccountName:            cfg.ServiceAccountName,
		RestartPolicy:                 cfg.RestartPolicy,
		NodeSelector:                  cfg.NodeSelector,
		Affinity:                      cfg.Affinity,
		Tolerations:                   cfg.Tolerations,
		ImagePullSecrets:              pullSecrets,
		TerminationGracePeriodSeconds: grace,
	}, nil
}

// PodTemplate builds the pod template embedded by workload objects. The
// template's labels are the envelope labels, which workload selectors and
// services derive their match labels from.
func PodTemplate(name string, cfg PodConfig) (corev1.PodTemplateSpec, error) {
	meta, err := Meta(name, cfg.Meta)
	if err != nil {
		return corev1.PodTemplateSpec{}, fmt.Errorf("pod template: %w", err)
	}
	spec, err := PodSpec(cfg)
	if err != nil {
		return corev1.PodTemplateSpec{}, fmt.Errorf("pod template %s: %w", name, err)
	}
	return corev1.PodTemplateSpec{ObjectMeta: meta, Spec: spec}, nil
}

func Pod(name string, cfg PodConfig) (*corev1.Pod, error) {
	template, err := PodTemplate(name, cfg)
	if err != nil {
		return nil, err
	}

	pod := corev1.Pod{ObjectMeta: template.ObjectMeta, Spec: template.Spec}
	if pod.TypeMeta, err = typeMeta(&pod); err != nil {
		return nil, fmt.Errorf("pod %s: %w", name, err)
	}
	return &pod, nil
}

type AffinityTermConfig struct {
	Weight           int32
	TopologyKey      string
	MatchLabels      map[string]string
	MatchExpressions []metav1.LabelSelectorRequirement
	Namespaces       []string
}

// WeightedPodAffinityTerm builds a weighted term for preferred pod
// (anti-)affinity. Exactly one of MatchLabels or MatchExpressions must be set.
func WeightedPodAffinityTerm(cfg AffinityTermConfig) (corev1.WeightedPodAffinityTerm, error) {
	if (len(cfg.MatchLabels) == 0) == (len(cfg.MatchExpressions) == 0) {
		return corev1.WeightedPodAffinityTerm{}, fmt.Errorf("affinity term: exactly one of match labels or match expressions is required")
	}

	weight := cfg.Weight
	if weight == 0 {
		weight = 100
	}
	topologyKey := cfg.TopologyKey
	if topologyKey == "" {
		topologyKey = "kubernetes.io/hostname"
	}

	return corev1.WeightedPodAffinityTerm{
		Weight: weight,
		PodAffinityTerm: corev1.PodAffinityTerm{
			TopologyKey: topologyKey,
			Namespaces:  cfg.Namespaces,
			LabelSelector: &metav1.LabelSelector{
				MatchLabels:      cfg.MatchLabels,
				MatchExpressions: cfg.MatchExpressions,
			},
		},
	}, nil
}
