package kube

import (
	"testing"

	"github.com/stretchr/testify/require"
	rbacv1 "k8s.io/api/rbac/v1"
)

func TestRoleBinding(t *testing.T) {
	account, err := ServiceAccount("runner", MetaOptions{Namespace: "ci"})
	require.NoError(t, err)

	role, err := Role("reader", RoleConfig{
		Meta: MetaOptions{Namespace: "ci"},
		Rules: []rbacv1.PolicyRule{{
			APIGroups: []string{""},
			Resources: []string{"pods"},
			Verbs:     []string{"get", "list"},
		}},
	})
	require.NoError(t, err)

	binding, err := RoleBinding("reader", BindingConfig{
		Meta:     MetaOptions{Namespace: "ci"},
		Role:     role,
		Subjects: []rbacv1.Subject{ServiceAccountSubject(account)},
	})
	require.NoError(t, err)

	require.Equal(t, rbacv1.RoleRef{APIGroup: rbacv1.GroupName, Kind: "Role", Name: "reader"}, binding.RoleRef)
	require.Equal(t, []rbacv1.Subject{{
		Kind:      rbacv1.ServiceAccountKind,
		Name:      "runner",
		Namespace: "ci",
	}}, binding.Subjects)
	require.Equal(t, "rbac.authorization.k8s.io/v1", binding.APIVersion)
}

func TestRoleBindingValidation(t *testing.T) {
	role, err := Role("reader", RoleConfig{})
	require.NoError(t, err)

	_, err = RoleBinding("reader", BindingConfig{Role: role})
	require.EqualError(t, err, "role binding reader: at least one subject is required")

	_, err = RoleBinding("reader", BindingConfig{Role: "reader", Subjects: []rbacv1.Subject{UserSubject("alice")}})
	require.EqualError(t, err, "role binding reader: role must be a Role or ClusterRole, got string")
}

func TestClusterRoleBindingRejectsNamespacedRole(t *testing.T) {
	role, err := Role("reader", RoleConfig{Meta: MetaOptions{Namespace: "ci"}})
	require.NoError(t, err)

	_, err = ClusterRoleBinding("reader", BindingConfig{Role: role, Subjects: []rbacv1.Subject{UserSubject("alice")}})
	require.EqualError(t, err, "cluster role binding reader: role must be a ClusterRole, got *v1.Role")
}

func TestAPIService(t *testing.T) {
	_, err := APIService(APIServiceConfig{Group: "metrics.k8s.io"})
	require.EqualError(t, err, "api service: group and version are required")

	template := testTemplate(t, nil)
	backend, err := Service("metrics-server", ServiceConfig{
		Meta:   MetaOptions{Namespace: "kube-system"},
		Target: template,
		Port:   443,
	})
	require.NoError(t, err)

	service, err := APIService(APIServiceConfig{
		Group:   "metrics.k8s.io",
		Version: "v1beta1",
		Service: backend,
	})
	require.NoError(t, err)

	require.Equal(t, "v1beta1.metrics.k8s.io", service.Name)
	require.Equal(t, "metrics-server", service.Spec.Service.Name)
	require.Equal(t, "kube-system", service.Spec.Service.Namespace)
	require.Equal(t, int32(443), *service.Spec.Service.Port)
	require.Equal(t, int32(1000), service.Spec.GroupPriorityMinimum)
	require.Equal(t, int32(15), service.Spec.VersionPriority)
	require.Equal(t, "apiregistration.k8s.io/v1", service.APIVersion)
}
