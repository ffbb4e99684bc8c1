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

package v1

import (
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

// IdPInstanceFinalizer is ensured present before the IdPInstance reconcile
// pipeline runs, and removed only once cleanup has completed.
const IdPInstanceFinalizer = "authentik/" + FinalizerSuffix

// ImageSpec identifies the container image used by both the server and
// worker Deployments.
type ImageSpec struct {
	// Repository is the image repository, without tag.
	// +kubebuilder:default="ghcr.io/goauthentik/server"
	// +optional
	Repository string `json:"repository,omitempty"`

	// Tag is the image tag.
	// +kubebuilder:default="latest"
	// +optional
	Tag string `json:"tag,omitempty"`

	// PullPolicy controls when the kubelet pulls the image.
	// +kubebuilder:default="IfNotPresent"
	// +optional
	PullPolicy corev1.PullPolicy `json:"pullPolicy,omitempty"`
}

// PostgresSpec carries the connection parameters for the IdP's database.
type PostgresSpec struct {
	// Host is the Postgres server address.
	Host string `json:"host"`
	// Port is the Postgres server port.
	// +kubebuilder:default=5432
	// +optional
	Port int32 `json:"port,omitempty"`
	// Database is the database name.
	Database string `json:"database"`
	// Username used to authenticate.
	Username string `json:"username"`
	// Password, if set inline. Mutually exclusive with PasswordSecret.
	// +optional
	Password string `json:"password,omitempty"`
	// PasswordSecret sources the password from a Secret key instead.
	// +optional
	PasswordSecret *SecretKeyReference `json:"passwordSecret,omitempty"`
}

// RedisSpec carries the connection parameters for the IdP's cache/broker.
type RedisSpec struct {
	// Host is the Redis server address.
	Host string `json:"host"`
	// Port is the Redis server port.
	// +kubebuilder:default=6379
	// +optional
	Port int32 `json:"port,omitempty"`
	// Password, if the Redis instance requires one.
	// +optional
	Password string `json:"password,omitempty"`
}

// SMTPSpec carries optional outbound-mail settings.
type SMTPSpec struct {
	Host string `json:"host"`
	// +kubebuilder:default=25
	// +optional
	Port     int32  `json:"port,omitempty"`
	From     string `json:"from"`
	Username string `json:"username,omitempty"`
	Password string `json:"password,omitempty"`
	UseTLS   bool   `json:"useTls,omitempty"`
	UseSSL   bool   `json:"useSsl,omitempty"`
	// Timeout in seconds.
	// +optional
	Timeout int32 `json:"timeout,omitempty"`
}

// IngressSpec controls whether and how the server is exposed outside the
// cluster.
type IngressSpec struct {
	// Host is the external hostname routed to the server Service.
	Host string `json:"host"`
	// ClassName selects an IngressClass.
	// +optional
	ClassName string `json:"className,omitempty"`
	// Annotations are copied verbatim onto the built Ingress.
	// +optional
	Annotations map[string]string `json:"annotations,omitempty"`
	// TLSSecretName, if set, enables TLS termination using this Secret.
	// +optional
	TLSSecretName string `json:"tlsSecretName,omitempty"`
}

// ResourcesSpec allows overriding the compute resources of a role's
// container; see SPEC_FULL.md C3 additions.
type ResourcesSpec struct {
	// +optional
	Server *corev1.ResourceRequirements `json:"server,omitempty"`
	// +optional
	Worker *corev1.ResourceRequirements `json:"worker,omitempty"`
}

// AuthentikSpec is the desired state of an IdP instance.
type AuthentikSpec struct {
	// Image selects the IdP container image.
	// +optional
	Image ImageSpec `json:"image,omitempty"`

	// Postgres carries the database connection.
	Postgres PostgresSpec `json:"postgres"`

	// Redis carries the cache/broker connection.
	Redis RedisSpec `json:"redis"`

	// SMTP carries optional outbound mail settings.
	// +optional
	SMTP *SMTPSpec `json:"smtp,omitempty"`

	// Avatars selects the avatar source mode.
	// +kubebuilder:default="gravatar"
	// +optional
	Avatars string `json:"avatars,omitempty"`

	// SecretKey is the Django-style signing secret. Auto-generated on first
	// reconcile if absent; never rewritten once present (I6).
	// +optional
	SecretKey string `json:"secretKey,omitempty"`

	// FooterLinks is serialized into AUTHENTIK_FOOTER_LINKS as a JSON array.
	// +optional
	FooterLinks []FooterLink `json:"footerLinks,omitempty"`

	// Ingress, if set, exposes the server outside the cluster.
	// +optional
	Ingress *IngressSpec `json:"ingress,omitempty"`

	// LogLevel, if set, is projected as AUTHENTIK_LOG_LEVEL.
	// +optional
	LogLevel string `json:"logLevel,omitempty"`

	// Resources optionally overrides container compute resources.
	// +optional
	Resources *ResourcesSpec `json:"resources,omitempty"`
}

// FooterLink is one entry of the IdP's configurable footer link list.
type FooterLink struct {
	Name string `json:"name"`
	Href string `json:"href"`
}

// AuthentikStatus is the observed state of an IdP instance. Hidden is the
// literal placeholder field carried verbatim from spec.md §3/§9 ("it
// communicates no useful information"); CommonStatus is additive.
type AuthentikStatus struct {
	// +optional
	Hidden bool `json:"hidden,omitempty"`

	CommonStatus `json:",inline"`
}

// +kubebuilder:object:root=true
// +kubebuilder:subresource:status
// +kubebuilder:resource:shortName=ak

// Authentik is the IdPInstance custom resource.
type Authentik struct {
	metav1.TypeMeta   `json:",inline"`
	metav1.ObjectMeta `json:"metadata,omitempty"`

	Spec   AuthentikSpec   `json:"spec,omitempty"`
	Status AuthentikStatus `json:"status,omitempty"`
}

// +kubebuilder:object:root=true

// AuthentikList contains a list of Authentik.
type AuthentikList struct {
	metav1.TypeMeta `json:",inline"`
	metav1.ListMeta `json:"metadata,omitempty"`
	Items           []Authentik `json:"items"`
}
