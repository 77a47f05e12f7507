package kube

import (
	"fmt"

	appsv1 "k8s.io/api/apps/v1"
	batchv1 "k8s.io/api/batch/v1"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/utils/ptr"
)

func workloadTemplate(kind, name string, template corev1.PodTemplateSpec) (*metav1.LabelSelector, error) {
	if len(template.Spec.Containers) == 0 {
		return nil, fmt.Errorf("%s %s: pod template must declare at least one container", kind, name)
	}
	if len(template.Labels) == 0 {
		return nil, fmt.Errorf("%s %s: pod template has no labels to select on", kind, name)
	}
	return &metav1.LabelSelector{MatchLabels: template.Labels}, nil
}

type DeploymentConfig struct {
	Meta                 MetaOptions
	Template             corev1.PodTemplateSpec
	Replicas             int32
	Strategy             appsv1.DeploymentStrategyType
	MinReadySeconds      int32
	RevisionHistoryLimit *int32
}

func Deployment(name string, cfg DeploymentConfig) (*appsv1.Deployment, error) {
	meta, err := Meta(name, cfg.Meta)
	if err != nil {
		return nil, fmt.Errorf("deployment: %w", err)
	}
	selector, err := workloadTemplate("deployment", name, cfg.Template)
	if err != nil {
		return nil, err
	}

	replicas := cfg.Replicas
	if replicas == 0 {
		replicas = 1
	}
	if replicas < 1 {
		return nil, fmt.Errorf("deployment %s: replicas must be at least 1", name)
	}

	strategy := cfg.Strategy
	if strategy == "" {
		strategy = appsv1.RollingUpdateDeploymentStrategyType
	}

	deployment := appsv1.Deployment{
		ObjectMeta: meta,
		Spec: appsv1.DeploymentSpec{
			Replicas:             ptr.To(replicas),
			Selector:             selector,
			Template:             cfg.Template,
			Strategy:             appsv1.DeploymentStrategy{Type: strategy},
			MinReadySeconds:      cfg.MinReadySeconds,
			RevisionHistoryLimit: cfg.RevisionHistoryLimit,
		},
	}
	if deployment.TypeMeta, err = typeMeta(&deployment); err != nil {
		return nil, fmt.Errorf("deployment %s: %w", name, err)
	}
	return &deployment, nil
}

type StatefulSetConfig struct {
	Meta                 MetaOptions
	Template             corev1.PodTemplateSpec
	ServiceName          string
	Replicas             int32
	VolumeClaimTemplates []corev1.PersistentVolumeClaim
	PodManagementPolicy  appsv1.PodManagementPolicyType
}

func StatefulSet(name string, cfg StatefulSetConfig) (*appsv1.StatefulSet, error) {
	meta, err := Meta(name, cfg.Meta)
	if err != nil {
		return nil, fmt.Errorf("stateful set: %w", err)
	}
	selector, err := workloadTemplate("stateful set", name, cfg.Template)
	if err != nil {
		return nil, err
	}
	if cfg.ServiceName == "" {
		return nil, fmt.Errorf("stateful set %s: service name is required", name)
	}

	replicas := cfg.Replicas
	if replicas == 0 {
		replicas = 1
	}
	if replicas < 1 {
		return nil, fmt.Errorf("stateful set %s: replicas must be at least 1", name)
	}

	set := appsv1.StatefulSet{
		ObjectMeta: meta,
		Spec: appsv1.StatefulSetSpec{
			Replicas:             ptr.To(replicas),
			Selector:             selector,
			Template:             cfg.Template,
			ServiceName:          cfg.ServiceName,
			VolumeClaimTemplates: cfg.VolumeClaimTemplates,
			PodManagementPolicy:  cfg.PodManagementPolicy,
			UpdateStrategy: appsv1.StatefulSetUpdateStrategy{
				Type: appsv1.RollingUpdateStatefulSetStrategyType,
			},
		},
	}
	if set.TypeMeta, err = typeMeta(&set); err != nil {
		return nil, fmt.Errorf("stateful set %s: %w", name, err)
	}
	return &set, nil
}

type DaemonSetConfig struct {
	Meta     MetaOptions
	Template corev1.PodTemplateSpec
}

func DaemonSet(name string, cfg DaemonSetConfig) (*appsv1.DaemonSet, error) {
	meta, err := Meta(name, cfg.Meta)
	if err != nil {
		return nil, fmt.Errorf("daemon set: %w", err)
	}
	selector, err := workloadTemplate("daemon set", name, cfg.Template)
	if err != nil {
		return nil, err
	}

	set := appsv1.DaemonSet{
		ObjectMeta: meta,
		Spec: appsv1.DaemonSetSpec{
			Selector: selector,
			Template: cfg.Template,
			UpdateStrategy: appsv1.DaemonSetUpdateStrategy{
				Type: appsv1.RollingUpdateDaemonSetStrategyType,
			},
		},
	}
	if set.TypeMeta, err = typeMeta(&set); err != nil {
		return nil, fmt.Errorf("daemon set %s: %w", name, err)
	}
	return &set, nil
}

type JobConfig struct {
	Meta         MetaOptions
	Template     corev1.PodTemplateSpec
	Completions  *int32
	Parallelism  *int32
	BackoffLimit *int32
}

func Job(name string, cfg JobConfig) (*batchv1.Job, error) {
	meta, err := Meta(name, cfg.Meta)
	if err != nil {
		return nil, fmt.Errorf("job: %w", err)
	}
	if len(cfg.Template.Spec.Containers) == 0 {
		return nil, fmt.Errorf("job %s: pod template must declare at least one container", name)
	}

	template := cfg.Template
	switch template.Spec.RestartPolicy {
	case "":
		template.Spec.RestartPolicy = corev1.RestartPolicyOnFailure
	case corev1.RestartPolicyAlways:
		return nil, fmt.Errorf("job %s: restart policy Always is not valid for jobs", name)
	}

	job := batchv1.Job{
		ObjectMeta: meta,
		Spec: batchv1.JobSpec{
			Template:     template,
			Completions:  cfg.Completions,
			Parallelism:  cfg.Parallelism,
			BackoffLimit: cfg.BackoffLimit,
		},
	}
	if job.TypeMeta, err = typeMeta(&job); err != nil {
		return nil, fmt.Errorf("job %s: %w", name, err)
	}
	return &job, nil
}

type CronJobConfig struct {
	Meta              MetaOptions
	Template          corev1.PodTemplateSpec
	Schedule          string
	ConcurrencyPolicy batchv1.ConcurrencyPolicy
	Suspend           *bool
}

func CronJob(name string, cfg CronJobConfig) (*batchv1.CronJob, error) {
	meta, err := Meta(name, cfg.Meta)
	if err != nil {
		return nil, fmt.Errorf("cron job: %w", err)
	}
	if cfg.Schedule == "" {
		return nil, fmt.Errorf("cron job %s: schedule is required", name)
	}

	job, err := Job(name, JobConfig{Meta: cfg.Meta, Template: cfg.Template})
	if err != nil {
		return nil, err
	}

	concurrency := cfg.ConcurrencyPolicy
	if concurrency == "" {
		concurrency = batchv1.ForbidConcurrent
	}

	cron := batchv1.CronJob{
		ObjectMeta: meta,
		Spec: batchv1.CronJobSpec{
			Schedule:          cfg.Schedule,
			ConcurrencyPolicy: concurrency,
			Suspend:           cfg.Suspend,
			JobTemplate: batchv1.JobTemplateSpec{
				ObjectMeta: job.ObjectMeta,
				Spec:       job.Spec,
			},
		},
	}
	if cron.TypeMeta, err = typeMeta(&cron); err != nil {
		return nil, fmt.Errorf("cron job %s: %w", name, err)
	}
	return &cron, nil
}
