package kube

import (
	"fmt"

	corev1 "k8s.io/api/core/v1"
	"k8s.io/apimachinery/pkg/runtime"
)

// NewList aggregates constructed objects into a single v1 List document.
func NewList(objects ...runtime.Object) (*corev1.List, error) {
	list := corev1.List{
		Items: make([]runtime.RawExtension, 0, len(objects)),
	}
	for i, obj := range objects {
		if obj == nil {
			return nil, fmt.Errorf("list: item %d is nil", i)
		}
		list.Items = append(list.Items, runtime.RawExtension{Object: obj})
	}

	var err error
	if list.TypeMeta, err = typeMeta(&list); err != nil {
		return nil, fmt.Errorf("list: %w", err)
	}
	return &list, nil
}
