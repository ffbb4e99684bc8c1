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
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

// AppFinalizer is ensured present before the App reconcile pipeline runs.
const AppFinalizer = "authentikapplication/" + FinalizerSuffix

// AppPolicyMode selects how multiple bound policies are combined.
// +kubebuilder:validation:Enum=all;any
type AppPolicyMode string

const (
	PolicyModeAll AppPolicyMode = "all"
	PolicyModeAny AppPolicyMode = "any"
)

// AppUISpec carries the application tile's display metadata.
type AppUISpec struct {
	// Icon, a themed icon reference (fa://... or a URL).
	// +kubebuilder:default="fa://fa-eye"
	// +optional
	Icon string `json:"icon,omitempty"`
	// OpenInNewTab controls the launch link's target.
	// +optional
	OpenInNewTab bool `json:"openInNewTab,omitempty"`
	// LaunchURL overrides the provider-derived launch URL.
	// +optional
	LaunchURL string `json:"launchUrl,omitempty"`
	// Description shown on the application tile.
	// +optional
	Description string `json:"description,omitempty"`
	// Publisher shown on the application tile.
	// +optional
	Publisher string `json:"publisher,omitempty"`
}

// AuthentikApplicationSpec is the desired state of an App.
type AuthentikApplicationSpec struct {
	// AuthentikInstance names the owning IdPInstance in this namespace.
	AuthentikInstance string `json:"authentikInstance"`

	// Name is the application's display name.
	Name string `json:"name"`

	// Slug identifies the application in the IdP; immutable in effect,
	// since it is also the REST key.
	// +kubebuilder:validation:Pattern="^[-a-zA-Z0-9_]+$"
	Slug string `json:"slug"`

	// Provider names an OAuthProvider custom resource's `spec.name` that
	// must resolve to exactly one live Provider at reconcile time (I5).
	Provider string `json:"provider"`

	// Group, if set, groups this application under a named section in the
	// IdP's application list UI.
	// +optional
	Group string `json:"group,omitempty"`

	// PolicyMode selects how access policies combine.
	// +kubebuilder:default="any"
	// +optional
	PolicyMode AppPolicyMode `json:"policyMode,omitempty"`

	// UI carries display metadata.
	// +optional
	UI AppUISpec `json:"ui,omitempty"`
}

// AuthentikApplicationStatus is the observed state of an App.
type AuthentikApplicationStatus struct {
	CommonStatus `json:",inline"`
}

// +kubebuilder:object:root=true
// +kubebuilder:subresource:status

// AuthentikApplication is the App custom resource.
type AuthentikApplication struct {
	metav1.TypeMeta   `json:",inline"`
	metav1.ObjectMeta `json:"metadata,omitempty"`

	Spec   AuthentikApplicationSpec   `json:"spec,omitempty"`
	Status AuthentikApplicationStatus `json:"status,omitempty"`
}

// +kubebuilder:object:root=true

// AuthentikApplicationList contains a list of AuthentikApplication.
type AuthentikApplicationList struct {
	metav1.TypeMeta `json:",inline"`
	metav1.ListMeta `json:"metadata,omitempty"`
	Items           []AuthentikApplication `json:"items"`
}
