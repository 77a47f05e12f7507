package kube

import (
	"testing"

	"github.com/stretchr/testify/require"
	appsv1 "k8s.io/api/apps/v1"
	batchv1 "k8s.io/api/batch/v1"
	corev1 "k8s.io/api/core/v1"

	"github.com/davidmdm/airframe/internal"
)

func TestDeploymentDefaults(t *testing.T) {
	template := testTemplate(t, internal.MapOf(internal.E("http", int32(8080))))

	deployment, err := Deployment("app", DeploymentConfig{Meta: MetaOptions{Namespace: "default"}, Template: template})
	require.NoError(t, err)

	require.Equal(t, int32(1), *deployment.Spec.Replicas)
	require.Equal(t, appsv1.RollingUpdateDeploymentStrategyType, deployment.Spec.Strategy.Type)
	require.Equal(t, template.Labels, deployment.Spec.Selector.MatchLabels)
	require.Equal(t, "apps/v1", deployment.APIVersion)
	require.Equal(t, "Deployment", deployment.Kind)
}

func TestDeploymentReplicasValidation(t *testing.T) {
	template := testTemplate(t, nil)

	_, err := Deployment("app", DeploymentConfig{Template: template, Replicas: -1})
	require.EqualError(t, err, "deployment app: replicas must be at least 1")
}

func TestDeploymentRequiresContainers(t *testing.T) {
	_, err := Deployment("app", DeploymentConfig{})
	require.EqualError(t, err, "deployment app: pod template must declare at least one container")
}

func TestStatefulSetRequiresServiceName(t *testing.T) {
	template := testTemplate(t, nil)

	_, err := StatefulSet("db", StatefulSetConfig{Template: template})
	require.EqualError(t, err, "stateful set db: service name is required")
}

func TestStatefulSetVolumeClaimTemplates(t *testing.T) {
	template := testTemplate(t, nil)

	claim, err := PersistentVolumeClaim("data", PVCConfig{Storage: "10Gi"})
	require.NoError(t, err)

	set, err := StatefulSet("db", StatefulSetConfig{
		Template:             template,
		ServiceName:          "db",
		VolumeClaimTemplates: []corev1.PersistentVolumeClaim{*claim},
	})
	require.NoError(t, err)
	require.Len(t, set.Spec.VolumeClaimTemplates, 1)
	require.Equal(t, int32(1), *set.Spec.Replicas)
}

func TestDaemonSetSelector(t *testing.T) {
	template := testTemplate(t, nil)

	set, err := DaemonSet("agent", DaemonSetConfig{Template: template})
	require.NoError(t, err)
	require.Equal(t, template.Labels, set.Spec.Selector.MatchLabels)
	require.Equal(t, appsv1.RollingUpdateDaemonSetStrategyType, set.Spec.UpdateStrategy.Type)
}

func TestJobRestartPolicy(t *testing.T) {
	template := testTemplate(t, nil)

	job, err := Job("migrate", JobConfig{Template: template})
	require.NoError(t, err)
	require.Equal(t, corev1.RestartPolicyOnFailure, job.Spec.Template.Spec.RestartPolicy)

	template.Spec.RestartPolicy = corev1.RestartPolicyAlways
	_, err = Job("migrate", JobConfig{Template: template})
	require.EqualError(t, err, "job migrate: restart policy Always is not valid for jobs")
}

func TestCronJob(t *testing.T) {
	template := testTemplate(t, nil)

	_, err := CronJob("backup", CronJobConfig{Template: template})
	require.EqualError(t, err, "cron job backup: schedule is required")

	cron, err := CronJob("backup", CronJobConfig{Template: template, Schedule: "0 3 * * *"})
	require.NoError(t, err)
	require.Equal(t, "0 3 * * *", cron.Spec.Schedule)
	require.Equal(t, batchv1.ForbidConcurrent, cron.Spec.ConcurrencyPolicy)
	require.Equal(t, corev1.RestartPolicyOnFailure, cron.Spec.JobTemplate.Spec.Template.Spec.RestartPolicy)
}
