// Package kube builds fully populated Kubernetes API objects from partial,
// high level descriptions. Every constructor is a pure function of its
// inputs: it applies the defaults and computed fields the platform expects,
// validates required fields and cross field invariants up front, and returns
// a typed object ready to be serialized and applied by external tooling.
package kube

import (
	"fmt"

	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/runtime"
	utilruntime "k8s.io/apimachinery/pkg/util/runtime"
	"k8s.io/client-go/kubernetes/scheme"
	apiregistrationv1 "k8s.io/kube-aggregator/pkg/apis/apiregistration/v1"
)

var schemes = func() *runtime.Scheme {
	s := runtime.NewScheme()
	utilruntime.Must(scheme.AddToScheme(s))
	utilruntime.Must(apiregistrationv1.AddToScheme(s))
	return s
}()

// typeMeta resolves apiVersion and kind from the compiled-in scheme so that
// the discriminators can never drift from the object's Go type.
func typeMeta(obj runtime.Object) (metav1.TypeMeta, error) {
	gvks, _, err := schemes.ObjectKinds(obj)
	if err != nil {
		return metav1.TypeMeta{}, fmt.Errorf("failed to resolve group version kind: %w", err)
	}
	gvk := gvks[0]
	return metav1.TypeMeta{APIVersion: gvk.GroupVersion().String(), Kind: gvk.Kind}, nil
}

// MetaOptions carries the optional portion of the common object envelope.
type MetaOptions struct {
	Namespace   string
	App         string
	Labels      map[string]string
	Annotations map[string]string
}

// Meta builds the common metadata envelope. The name label is always set;
// the app label is set when an app is given; and within kube-system the
// platform additionally expects the k8s-app label to mirror app.
func Meta(name string, opts MetaOptions) (metav1.ObjectMeta, error) {
	if name == "" {
		return metav1.ObjectMeta{}, fmt.Errorf("metadata: name is required")
	}

	labels := map[string]string{"name": name}
	if opts.App != "" {
		labels["app"] = opts.App
		if opts.Namespace == "kube-system" {
			labels["k8s-app"] = opts.App
		}
	}
	for key, value := range opts.Labels {
		if _, ok := labels[key]; !ok {
			labels[key] = value
		}
	}

	annotations := map[string]string{}
	for key, value := range opts.Annotations {
		annotations[key] = value
	}

	return metav1.ObjectMeta{
		Name:        name,
		Namespace:   opts.Namespace,
		Labels:      labels,
		Annotations: annotations,
	}, nil
}
