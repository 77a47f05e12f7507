package kube

import (
	"encoding/json"
	"fmt"

	"dario.cat/mergo"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"k8s.io/apimachinery/pkg/runtime"
)

// Overlay deep merges a patch document onto a constructed object and returns
// the result as an unstructured document. The base is never mutated; within
// the merge the patch wins field by field and lists are replaced wholesale.
func Overlay(base runtime.Object, patch map[string]any) (*unstructured.Unstructured, error) {
	data, err := json.Marshal(base)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal base object: %w", err)
	}

	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to unmarshal base object: %w", err)
	}

	if err := mergo.Merge(&doc, patch, mergo.WithOverride); err != nil {
		return nil, fmt.Errorf("failed to merge patch: %w", err)
	}

	return &unstructured.Unstructured{Object: doc}, nil
}
