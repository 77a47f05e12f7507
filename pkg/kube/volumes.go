package kube

import (
	"fmt"

	corev1 "k8s.io/api/core/v1"
	"k8s.io/apimachinery/pkg/api/resource"
)

type PVCConfig struct {
	Meta         MetaOptions
	Storage      string
	AccessModes  []corev1.PersistentVolumeAccessMode
	StorageClass string
}

func PersistentVolumeClaim(name string, cfg PVCConfig) (*corev1.PersistentVolumeClaim, error) {
	meta, err := Meta(name, cfg.Meta)
	if err != nil {
		return nil, fmt.Errorf("persistent volume claim: %w", err)
	}
	if cfg.Storage == "" {
		return nil, fmt.Errorf("persistent volume claim %s: storage size is required", name)
	}

	storage, err := resource.ParseQuantity(cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("persistent volume claim %s: storage %q: %w", name, cfg.Storage, err)
	}

	accessModes := cfg.AccessModes
	if len(accessModes) == 0 {
		accessModes = []corev1.PersistentVolumeAccessMode{corev1.ReadWriteOnce}
	}

	claim := corev1.PersistentVolumeClaim{
		ObjectMeta: meta,
		Spec: corev1.PersistentVolumeClaimSpec{
			AccessModes: accessModes,
			Resources: corev1.VolumeResourceRequirements{
				Requests: corev1.ResourceList{corev1.ResourceStorage: storage},
			},
		},
	}
	if cfg.StorageClass != "" {
		claim.Spec.StorageClassName = &cfg.StorageClass
	}
	if claim.TypeMeta, err = typeMeta(&claim); err != nil {
		return nil, fmt.Errorf("persistent volume claim %s: %w", name, err)
	}
	return &claim, nil
}

// Volume wrappers reference their backing objects by name only; the claim or
// config object is not owned by the pod that mounts it.

func PVCVolume(name string, claim *corev1.PersistentVolumeClaim) corev1.Volume {
	return corev1.Volume{
		Name: name,
		VolumeSource: corev1.VolumeSource{
			PersistentVolumeClaim: &corev1.PersistentVolumeClaimVolumeSource{ClaimName: claim.Name},
		},
	}
}

func ConfigMapVolume(name string, config *corev1.ConfigMap) corev1.Volume {
	return corev1.Volume{
		Name: name,
		VolumeSource: corev1.VolumeSource{
			ConfigMap: &corev1.ConfigMapVolumeSource{
				LocalObjectReference: corev1.LocalObjectReference{Name: config.Name},
			},
		},
	}
}

func SecretVolume(name string, secret *corev1.Secret) corev1.Volume {
	return corev1.Volume{
		Name: name,
		VolumeSource: corev1.VolumeSource{
			Secret: &corev1.SecretVolumeSource{SecretName: secret.Name},
		},
	}
}

func EmptyDirVolume(name string) corev1.Volume {
	return corev1.Volume{
		Name:         name,
		VolumeSource: corev1.VolumeSource{EmptyDir: &corev1.EmptyDirVolumeSource{}},
	}
}

func HostPathVolume(name, path string) corev1.Volume {
	return corev1.Volume{
		Name: name,
		VolumeSource: corev1.VolumeSource{
			HostPath: &corev1.HostPathVolumeSource{Path: path},
		},
	}
}
