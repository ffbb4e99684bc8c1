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

// GroupFinalizer is ensured present before the Group reconcile pipeline runs.
const GroupFinalizer = "authentikgroup/" + FinalizerSuffix

// AuthentikGroupSpec is the desired state of a Group.
type AuthentikGroupSpec struct {
	// AuthentikInstance names the owning IdPInstance in this namespace.
	AuthentikInstance string `json:"authentikInstance"`

	// Name is the exact-match group name.
	Name string `json:"name"`

	// Superuser marks every member of this group as an IdP superuser.
	// +kubebuilder:default=false
	// +optional
	Superuser bool `json:"superuser,omitempty"`

	// Parent, if set, names another AuthentikGroup's spec.name to resolve
	// as this group's parent.
	// +optional
	Parent string `json:"parent,omitempty"`
}

// AuthentikGroupStatus is the observed state of a Group.
type AuthentikGroupStatus struct {
	CommonStatus `json:",inline"`
}

// +kubebuilder:object:root=true
// +kubebuilder:subresource:status

// AuthentikGroup is the Group custom resource.
type AuthentikGroup struct {
	metav1.TypeMeta   `json:",inline"`
	metav1.ObjectMeta `json:"metadata,omitempty"`

	Spec   AuthentikGroupSpec   `json:"spec,omitempty"`
	Status AuthentikGroupStatus `json:"status,omitempty"`
}

// +kubebuilder:object:root=true

// AuthentikGroupList contains a list of AuthentikGroup.
type AuthentikGroupList struct {
	metav1.TypeMeta `json:",inline"`
	metav1.ListMeta `json:"metadata,omitempty"`
	Items           []AuthentikGroup `json:"items"`
}
