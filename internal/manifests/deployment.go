/*
Copyright 2023 The Kubernetes Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package manifests

import (
	"encoding/json"
	"fmt"

	appsv1 "k8s.io/api/apps/v1"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/util/intstr"
	"k8s.io/utils/ptr"

	akv1 "github.com/dany-dev/authentik-operator/api/v1"
)

// Role names the two Deployment roles an IdPInstance owns.
type Role string

const (
	RoleServer Role = "server"
	RoleWorker Role = "worker"
)

const serverPort = 9000

// terminationGracePeriodSeconds is an ambient default (SPEC_FULL.md C3
// additions); the teacher's own workload builders set one rather than
// inherit Kubernetes' 30s zero-value default implicitly.
const terminationGracePeriodSeconds = 30

// DeploymentName returns the naming-scheme name for a role's Deployment
// (spec.md §6): authentik-<instance>-server / authentik-<instance>-worker.
func DeploymentName(instance string, role Role) string {
	return fmt.Sprintf("authentik-%s-%s", instance, role)
}

// Deployment builds the desired server or worker Deployment for an
// IdPInstance. spec.Postgres.PasswordSecret, if non-nil, sources
// AUTHENTIK_POSTGRESQL__PASSWORD from a Secret key instead of
// spec.Postgres.Password (spec.md §6).
func Deployment(instance string, spec akv1.AuthentikSpec, role Role, owner OwnerRef) (*appsv1.Deployment, error) {
	env, err := buildEnv(instance, spec)
	if err != nil {
		return nil, err
	}

	name := DeploymentName(instance, role)
	labels := Labels(instance, spec.Image.Tag, string(role))
	match := MatchLabels(instance, string(role))

	container := corev1.Container{
		Name:  name,
		Image: fmt.Sprintf("%s:%s", spec.Image.Repository, spec.Image.Tag),
		Env:   env,
	}
	if role == RoleWorker {
		container.Args = []string{"worker"}
	} else {
		container.Args = []string{"server"}
		container.Ports = []corev1.ContainerPort{
			{Name: "http", ContainerPort: serverPort, Protocol: corev1.ProtocolTCP},
		}
		container.LivenessProbe = healthProbe("/-/health/live/")
		container.ReadinessProbe = healthProbe("/-/health/ready/")
	}

	if r := resourcesFor(spec, role); r != nil {
		container.Resources = *r
	}

	deploy := &appsv1.Deployment{
		TypeMeta: metav1.TypeMeta{APIVersion: "apps/v1", Kind: "Deployment"},
		ObjectMeta: metav1.ObjectMeta{
			Name:            name,
			Labels:          labels,
			OwnerReferences: []metav1.OwnerReference{owner.toMeta()},
		},
		Spec: appsv1.DeploymentSpec{
			Replicas: ptr.To(int32(1)),
			Selector: &metav1.LabelSelector{MatchLabels: match},
			Template: corev1.PodTemplateSpec{
				ObjectMeta: metav1.ObjectMeta{Labels: labels},
				Spec: corev1.PodSpec{
					ServiceAccountName:            ServiceAccountName(instance),
					TerminationGracePeriodSeconds: ptr.To(int64(terminationGracePeriodSeconds)),
					Containers:                    []corev1.Container{container},
				},
			},
		},
	}

	return deploy, nil
}

func resourcesFor(spec akv1.AuthentikSpec, role Role) *corev1.ResourceRequirements {
	if spec.Resources == nil {
		return nil
	}
	if role == RoleWorker {
		return spec.Resources.Worker
	}
	return spec.Resources.Server
}

func healthProbe(path string) *corev1.Probe {
	return &corev1.Probe{
		ProbeHandler: corev1.ProbeHandler{
			HTTPGet: &corev1.HTTPGetAction{
				Path: path,
				Port: intstr.FromInt32(serverPort),
			},
		},
	}
}

func buildEnv(instance string, spec akv1.AuthentikSpec) ([]corev1.EnvVar, error) {
	footer, err := json.Marshal(spec.FooterLinks)
	if err != nil {
		return nil, fmt.Errorf("marshaling footerLinks: %w", err)
	}

	env := []corev1.EnvVar{
		{Name: "AUTHENTIK_SECRET_KEY", Value: spec.SecretKey},
		{Name: "AUTHENTIK_BOOTSTRAP_TOKEN", Value: "AUTHENTIK_TEMP_AUTH_TOKEN"},
		{Name: "AUTHENTIK_FOOTER_LINKS", Value: string(footer)},
		{Name: "AUTHENTIK_DISABLE_STARTUP_ANALYTICS", Value: "true"},
		{Name: "AUTHENTIK_ERROR_REPORTING__ENABLED", Value: "false"},
		{Name: "AUTHENTIK_POSTGRESQL__HOST", Value: spec.Postgres.Host},
		{Name: "AUTHENTIK_POSTGRESQL__PORT", Value: fmt.Sprintf("%d", postgresPort(spec))},
		{Name: "AUTHENTIK_POSTGRESQL__NAME", Value: spec.Postgres.Database},
		{Name: "AUTHENTIK_POSTGRESQL__USER", Value: spec.Postgres.Username},
		{Name: "AUTHENTIK_REDIS__HOST", Value: spec.Redis.Host},
		{Name: "AUTHENTIK_REDIS__PORT", Value: fmt.Sprintf("%d", redisPort(spec))},
	}

	if spec.Postgres.PasswordSecret != nil {
		env = append(env, corev1.EnvVar{
			Name: "AUTHENTIK_POSTGRESQL__PASSWORD",
			ValueFrom: &corev1.EnvVarSource{
				SecretKeyRef: &corev1.SecretKeySelector{
					LocalObjectReference: corev1.LocalObjectReference{Name: spec.Postgres.PasswordSecret.Name},
					Key:                  spec.Postgres.PasswordSecret.Key,
				},
			},
		})
	} else if spec.Postgres.Password != "" {
		env = append(env, corev1.EnvVar{Name: "AUTHENTIK_POSTGRESQL__PASSWORD", Value: spec.Postgres.Password})
	}

	if spec.Redis.Password != "" {
		env = append(env, corev1.EnvVar{Name: "AUTHENTIK_REDIS__PASSWORD", Value: spec.Redis.Password})
	}

	if spec.LogLevel != "" {
		env = append(env, corev1.EnvVar{Name: "AUTHENTIK_LOG_LEVEL", Value: spec.LogLevel})
	}

	if spec.SMTP != nil {
		env = append(env, smtpEnv(*spec.SMTP)...)
	}

	return env, nil
}

func smtpEnv(smtp akv1.SMTPSpec) []corev1.EnvVar {
	port := smtp.Port
	if port == 0 {
		port = 25
	}
	env := []corev1.EnvVar{
		{Name: "AUTHENTIK_EMAIL__HOST", Value: smtp.Host},
		{Name: "AUTHENTIK_EMAIL__PORT", Value: fmt.Sprintf("%d", port)},
		{Name: "AUTHENTIK_EMAIL__FROM", Value: smtp.From},
	}
	if smtp.Username != "" {
		env = append(env, corev1.EnvVar{Name: "AUTHENTIK_EMAIL__USERNAME", Value: smtp.Username})
	}
	if smtp.Password != "" {
		env = append(env, corev1.EnvVar{Name: "AUTHENTIK_EMAIL__PASSWORD", Value: smtp.Password})
	}
	if smtp.UseTLS {
		env = append(env, corev1.EnvVar{Name: "AUTHENTIK_EMAIL__USE_TLS", Value: "true"})
	}
	if smtp.UseSSL {
		env = append(env, corev1.EnvVar{Name: "AUTHENTIK_EMAIL__USE_SSL", Value: "true"})
	}
	if smtp.Timeout != 0 {
		env = append(env, corev1.EnvVar{Name: "AUTHENTIK_EMAIL__TIMEOUT", Value: fmt.Sprintf("%d", smtp.Timeout)})
	}
	return env
}

func postgresPort(spec akv1.AuthentikSpec) int32 {
	if spec.Postgres.Port != 0 {
		return spec.Postgres.Port
	}
	return 5432
}

func redisPort(spec akv1.AuthentikSpec) int32 {
	if spec.Redis.Port != 0 {
		return spec.Redis.Port
	}
	return 6379
}
