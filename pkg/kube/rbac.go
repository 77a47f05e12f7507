package kube

import (
	"fmt"

	corev1 "k8s.io/api/core/v1"
	rbacv1 "k8s.io/api/rbac/v1"
)

func ServiceAccount(name string, opts MetaOptions) (*corev1.ServiceAccount, error) {
	meta, err := Meta(name, opts)
	if err != nil {
		return nil, fmt.Errorf("service account: %w", err)
	}

	account := corev1.ServiceAccount{ObjectMeta: meta}
	if account.TypeMeta, err = typeMeta(&account); err != nil {
		return nil, fmt.Errorf("service account %s: %w", name, err)
	}
	return &account, nil
}

type RoleConfig struct {
	Meta  MetaOptions
	Rules []rbacv1.PolicyRule
}

func Role(name string, cfg RoleConfig) (*rbacv1.Role, error) {
	meta, err := Meta(name, cfg.Meta)
	if err != nil {
		return nil, fmt.Errorf("role: %w", err)
	}

	role := rbacv1.Role{ObjectMeta: meta, Rules: cfg.Rules}
	if role.TypeMeta, err = typeMeta(&role); err != nil {
		return nil, fmt.Errorf("role %s: %w", name, err)
	}
	return &role, nil
}

func ClusterRole(name string, cfg RoleConfig) (*rbacv1.ClusterRole, error) {
	meta, err := Meta(name, MetaOptions{App: cfg.Meta.App, Labels: cfg.Meta.Labels, Annotations: cfg.Meta.Annotations})
	if err != nil {
		return nil, fmt.Errorf("cluster role: %w", err)
	}

	role := rbacv1.ClusterRole{ObjectMeta: meta, Rules: cfg.Rules}
	if role.TypeMeta, err = typeMeta(&role); err != nil {
		return nil, fmt.Errorf("cluster role %s: %w", name, err)
	}
	return &role, nil
}

// Subjects are projected into their wire shape at construction time: only
// kind, name and namespace survive from the referenced object.

func ServiceAccountSubject(account *corev1.ServiceAccount) rbacv1.Subject {
	return rbacv1.Subject{
		Kind:      rbacv1.ServiceAccountKind,
		Name:      account.Name,
		Namespace: account.Namespace,
	}
}

func UserSubject(name string) rbacv1.Subject {
	return rbacv1.Subject{Kind: rbacv1.UserKind, APIGroup: rbacv1.GroupName, Name: name}
}

func GroupSubject(name string) rbacv1.Subject {
	return rbacv1.Subject{Kind: rbacv1.GroupKind, APIGroup: rbacv1.GroupName, Name: name}
}

func roleRef(role any) (rbacv1.RoleRef, error) {
	switch role := role.(type) {
	case *rbacv1.Role:
		return rbacv1.RoleRef{APIGroup: rbacv1.GroupName, Kind: "Role", Name: role.Name}, nil
	case *rbacv1.ClusterRole:
		return rbacv1.RoleRef{APIGroup: rbacv1.GroupName, Kind: "ClusterRole", Name: role.Name}, nil
	default:
		return rbacv1.RoleRef{}, fmt.Errorf("role must be a Role or ClusterRole, got %T", role)
	}
}

type BindingConfig struct {
	Meta MetaOptions
	// Role is the *rbacv1.Role or *rbacv1.ClusterRole being granted.
	Role     any
	Subjects []rbacv1.Subject
}

func RoleBinding(name string, cfg BindingConfig) (*rbacv1.RoleBinding, error) {
	meta, err := Meta(name, cfg.Meta)
	if err != nil {
		return nil, fmt.Errorf("role binding: %w", err)
	}
	ref, err := roleRef(cfg.Role)
	if err != nil {
		return nil, fmt.Errorf("role binding %s: %w", name, err)
	}
	if len(cfg.Subjects) == 0 {
		return nil, fmt.Errorf("role binding %s: at least one subject is required", name)
	}

	binding := rbacv1.RoleBinding{ObjectMeta: meta, RoleRef: ref, Subjects: cfg.Subjects}
	if binding.TypeMeta, err = typeMeta(&binding); err != nil {
		return nil, fmt.Errorf("role binding %s: %w", name, err)
	}
	return &binding, nil
}

func ClusterRoleBinding(name string, cfg BindingConfig) (*rbacv1.ClusterRoleBinding, error) {
	meta, err := Meta(name, MetaOptions{App: cfg.Meta.App, Labels: cfg.Meta.Labels, Annotations: cfg.Meta.Annotations})
	if err != nil {
		return nil, fmt.Errorf("cluster role binding: %w", err)
	}
	role, ok := cfg.Role.(*rbacv1.ClusterRole)
	if !ok {
		return nil, fmt.Errorf("cluster role binding %s: role must be a ClusterRole, got %T", name, cfg.Role)
	}
	if len(cfg.Subjects) == 0 {
		return nil, fmt.Errorf("cluster role binding %s: at least one subject is required", name)
	}

	binding := rbacv1.ClusterRoleBinding{
		ObjectMeta: meta,
		RoleRef:    rbacv1.RoleRef{APIGroup: rbacv1.GroupName, Kind: "ClusterRole", Name: role.Name},
		Subjects:   cfg.Subjects,
	}
	if binding.TypeMeta, err = typeMeta(&binding); err != nil {
		return nil, fmt.Errorf("cluster role binding %s: %w", name, err)
	}
	return &binding, nil
}
