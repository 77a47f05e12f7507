package kube

import (
	"fmt"

	appsv1 "k8s.io/api/apps/v1"
	autoscalingv2 "k8s.io/api/autoscaling/v2"
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/utils/ptr"
)

type HPAConfig struct {
	Meta MetaOptions
	// Target is the scalable workload: a *appsv1.Deployment or *appsv1.StatefulSet.
	Target      runtime.Object
	MaxReplicas int32
	// Metrics defaults to 80 percent average cpu utilization.
	Metrics []autoscalingv2.MetricSpec
}

func scaleTarget(target runtime.Object) (name string, replicas int32, err error) {
	switch target := target.(type) {
	case *appsv1.Deployment:
		return target.Name, ptr.Deref(target.Spec.Replicas, 1), nil
	case *appsv1.StatefulSet:
		return target.Name, ptr.Deref(target.Spec.Replicas, 1), nil
	default:
		return "", 0, fmt.Errorf("target must be a Deployment or StatefulSet, got %T", target)
	}
}

// HorizontalPodAutoscaler scales an existing workload object. The scale
// target reference and the minimum replica count are copied from the target.
func HorizontalPodAutoscaler(name string, cfg HPAConfig) (*autoscalingv2.HorizontalPodAutoscaler, error) {
	meta, err := Meta(name, cfg.Meta)
	if err != nil {
		return nil, fmt.Errorf("horizontal pod autoscaler: %w", err)
	}

	targetName, minReplicas, err := scaleTarget(cfg.Target)
	if err != nil {
		return nil, fmt.Errorf("horizontal pod autoscaler %s: %w", name, err)
	}
	targetType, err := typeMeta(cfg.Target)
	if err != nil {
		return nil, fmt.Errorf("horizontal pod autoscaler %s: %w", name, err)
	}
	if cfg.MaxReplicas < minReplicas {
		return nil, fmt.Errorf("horizontal pod autoscaler %s: max replicas %d is less than min replicas %d", name, cfg.MaxReplicas, minReplicas)
	}

	metrics := cfg.Metrics
	if len(metrics) == 0 {
		metrics = []autoscalingv2.MetricSpec{{
			Type: autoscalingv2.ResourceMetricSourceType,
			Resource: &autoscalingv2.ResourceMetricSource{
				Name: "cpu",
				Target: autoscalingv2.MetricTarget{
					Type:               autoscalingv2.UtilizationMetricType,
					AverageUtilization: ptr.To(int32(80)),
				},
			},
		}}
	}

	hpa := autoscalingv2.HorizontalPodAutoscaler{
		ObjectMeta: meta,
		Spec: autoscalingv2.HorizontalPodAutoscalerSpec{
			ScaleTargetRef: autoscalingv2.CrossVersionObjectReference{
				APIVersion: targetType.APIVersion,
				Kind:       targetType.Kind,
				Name:       targetName,
			},
			MinReplicas: ptr.To(minReplicas),
			MaxReplicas: cfg.MaxReplicas,
			Metrics:     metrics,
		},
	}
	if hpa.TypeMeta, err = typeMeta(&hpa); err != nil {
		return nil, fmt.Errorf("horizontal pod autoscaler %s: %w", name, err)
	}
	return &hpa, nil
}
