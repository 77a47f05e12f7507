package kube

import (
	"fmt"

	corev1 "k8s.io/api/core/v1"
)

type ConfigMapConfig struct {
	Meta MetaOptions
	Data map[string]string
}

func ConfigMap(name string, cfg ConfigMapConfig) (*corev1.ConfigMap, error) {
	meta, err := Meta(name, cfg.Meta)
	if err != nil {
		return nil, fmt.Errorf("config map: %w", err)
	}

	data := map[string]string{}
	for key, value := range cfg.Data {
		data[key] = value
	}

	config := corev1.ConfigMap{ObjectMeta: meta, Data: data}
	if config.TypeMeta, err = typeMeta(&config); err != nil {
		return nil, fmt.Errorf("config map %s: %w", name, err)
	}
	return &config, nil
}

type SecretConfig struct {
	Meta MetaOptions
	// StringData holds plaintext values; they are carried as raw bytes in the
	// object and base64 encoded by the wire codec.
	StringData map[string]string
	Type       corev1.SecretType
}

func Secret(name string, cfg SecretConfig) (*corev1.Secret, error) {
	meta, err := Meta(name, cfg.Meta)
	if err != nil {
		return nil, fmt.Errorf("secret: %w", err)
	}

	secretType := cfg.Type
	if secretType == "" {
		secretType = corev1.SecretTypeOpaque
	}

	data := map[string][]byte{}
	for key, value := range cfg.StringData {
		data[key] = []byte(value)
	}

	secret := corev1.Secret{ObjectMeta: meta, Type: secretType, Data: data}
	if secret.TypeMeta, err = typeMeta(&secret); err != nil {
		return nil, fmt.Errorf("secret %s: %w", name, err)
	}
	return &secret, nil
}

// SecretKeyRef builds an env var source referencing a key of an already
// constructed secret. The key must exist at construction time; dangling
// references are not deferred to the cluster API.
func SecretKeyRef(secret *corev1.Secret, key string) (*corev1.EnvVarSource, error) {
	if secret == nil {
		return nil, fmt.Errorf("secret key ref: secret is required")
	}
	if _, ok := secret.Data[key]; !ok {
		if _, ok := secret.StringData[key]; !ok {
			return nil, fmt.Errorf("secret key ref: key %q not found in secret %s", key, secret.Name)
		}
	}
	return &corev1.EnvVarSource{
		SecretKeyRef: &corev1.SecretKeySelector{
			LocalObjectReference: corev1.LocalObjectReference{Name: secret.Name},
			Key:                  key,
		},
	}, nil
}

// ConfigMapKeyRef is the config map analogue of SecretKeyRef.
func ConfigMapKeyRef(config *corev1.ConfigMap, key string) (*corev1.EnvVarSource, error) {
	if config == nil {
		return nil, fmt.Errorf("config map key ref: config map is required")
	}
	if _, ok := config.Data[key]; !ok {
		return nil, fmt.Errorf("config map key ref: key %q not found in config map %s", key, config.Name)
	}
	return &corev1.EnvVarSource{
		ConfigMapKeyRef: &corev1.ConfigMapKeySelector{
			LocalObjectReference: corev1.LocalObjectReference{Name: config.Name},
			Key:                  key,
		},
	}, nil
}

// FieldRef exposes a field of the enclosing pod via the downward API.
func FieldRef(path string) *corev1.EnvVarSource {
	return &corev1.EnvVarSource{
		FieldRef: &corev1.ObjectFieldSelector{FieldPath: path},
	}
}
