package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"
	corev1 "k8s.io/api/core/v1"
	apimeta "k8s.io/apimachinery/pkg/api/meta"
	"k8s.io/apimachinery/pkg/runtime"

	"github.com/davidmdm/airframe/internal"
	"github.com/davidmdm/airframe/internal/text"
	"github.com/davidmdm/airframe/pkg/contour"
	"github.com/davidmdm/airframe/pkg/kube"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type Values struct {
	Namespace   string `yaml:"namespace"`
	Image       string `yaml:"image"`
	Replicas    int32  `yaml:"replicas"`
	MaxReplicas int32  `yaml:"maxReplicas"`
	TLSSecret   string `yaml:"tlsSecret"`
	Cluster     string `yaml:"cluster"`
	Host        string `yaml:"host"`
}

func run() error {
	output := flag.String("o", "json", "output format: json or yaml")
	summary := flag.Bool("summary", false, "print a table of generated resources to stderr")
	diff := flag.String("diff", "", "diff generated yaml against an existing manifest file instead of writing output")
	flag.Parse()

	values := Values{
		Namespace:   "webapp",
		Image:       "nginx:1.27",
		MaxReplicas: 5,
	}
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		if err := yaml.NewDecoder(os.Stdin).Decode(&values); err != nil && err != io.EOF {
			return fmt.Errorf("failed to decode stdin: %w", err)
		}
	}

	cluster, err := contour.ClusterFromEnv()
	if err != nil {
		return fmt.Errorf("failed to load cluster metadata: %w", err)
	}

	name := "webapp"
	meta := kube.MetaOptions{Namespace: values.Namespace, App: name}

	namespace, err := kube.Namespace(values.Namespace, kube.MetaOptions{})
	if err != nil {
		return err
	}

	config, err := kube.ConfigMap(name, kube.ConfigMapConfig{
		Meta: meta,
		Data: map[string]string{"log_level": "info"},
	})
	if err != nil {
		return err
	}

	secret, err := kube.Secret(name, kube.SecretConfig{
		Meta:       meta,
		StringData: map[string]string{"session_key": "changeme"},
	})
	if err != nil {
		return err
	}

	sessionKey, err := kube.SecretKeyRef(secret, "session_key")
	if err != nil {
		return err
	}
	logLevel, err := kube.ConfigMapKeyRef(config, "log_level")
	if err != nil {
		return err
	}

	container, err := kube.Container(name, kube.ContainerConfig{
		Image: values.Image,
		Ports: internal.MapOf(internal.E("http", int32(8080))),
		Env: internal.MapOf(
			internal.E("SESSION_KEY", kube.EnvFrom(sessionKey)),
			internal.E("LOG_LEVEL", kube.EnvFrom(logLevel)),
			internal.E("POD_NAME", kube.EnvFrom(kube.FieldRef("metadata.name"))),
		),
		Resources: kube.Resources{
			Requests: map[corev1.ResourceName]string{"cpu": "100m", "memory": "128Mi"},
		},
	})
	if err != nil {
		return err
	}

	template, err := kube.PodTemplate(name, kube.PodConfig{
		Meta:       meta,
		Containers: []corev1.Container{container},
	})
	if err != nil {
		return err
	}

	deployment, err := kube.Deployment(name, kube.DeploymentConfig{
		Meta:     meta,
		Template: template,
		Replicas: values.Replicas,
	})
	if err != nil {
		return err
	}

	service, err := kube.Service(name, kube.ServiceConfig{Meta: meta, Target: template})
	if err != nil {
		return err
	}

	ingress, err := contour.Ingress(name, contour.IngressConfig{
		Meta:        meta,
		Service:     service,
		ClusterMeta: cluster,
		Cluster:     values.Cluster,
		Host:        values.Host,
		TLSSecret:   values.TLSSecret,
	})
	if err != nil {
		return err
	}

	hpa, err := kube.HorizontalPodAutoscaler(name, kube.HPAConfig{
		Meta:        meta,
		Target:      deployment,
		MaxReplicas: values.MaxReplicas,
	})
	if err != nil {
		return err
	}

	list, err := kube.NewList(namespace, config, secret, deployment, service, ingress, hpa)
	if err != nil {
		return err
	}

	if *summary {
		printSummary(list.Items)
	}

	if *diff != "" {
		expected, err := os.ReadFile(*diff)
		if err != nil {
			return fmt.Errorf("failed to read manifest: %w", err)
		}
		actual, err := text.ToYamlFile("generated", list)
		if err != nil {
			return fmt.Errorf("failed to encode resources: %w", err)
		}
		fmt.Print(text.DiffColorized(text.File{Name: *diff, Content: string(expected)}, actual, 4))
		return nil
	}

	switch *output {
	case "yaml":
		file, err := text.ToYamlFile("webapp.yaml", list)
		if err != nil {
			return fmt.Errorf("failed to encode resources: %w", err)
		}
		_, err = io.WriteString(os.Stdout, file.Content)
		return err
	default:
		return json.NewEncoder(os.Stdout).Encode(list)
	}
}

func printSummary(items []runtime.RawExtension) {
	tbl := table.NewWriter()
	tbl.SetOutputMirror(os.Stderr)
	tbl.AppendHeader(table.Row{"kind", "namespace", "name"})

	for _, item := range items {
		kind := item.Object.GetObjectKind().GroupVersionKind().Kind
		accessor, err := apimeta.Accessor(item.Object)
		if err != nil {
			continue
		}
		tbl.AppendRow(table.Row{kind, accessor.GetNamespace(), accessor.GetName()})
	}

	tbl.Render()
}
