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

// UserFinalizer is ensured present before the User reconcile pipeline runs.
const UserFinalizer = "authentikuser/" + FinalizerSuffix

// AuthentikUserSpec is the desired state of a User.
type AuthentikUserSpec struct {
	// AuthentikInstance names the owning IdPInstance in this namespace.
	AuthentikInstance string `json:"authentikInstance"`

	// Username is the exact-match login name.
	Username string `json:"username"`

	// DisplayName is the user's full name.
	DisplayName string `json:"displayName"`

	// Path is the IdP's hierarchical grouping path for the account.
	Path string `json:"path"`

	// Email, optional.
	// +optional
	Email string `json:"email,omitempty"`

	// Password, optional; a 128-char secret is generated if absent.
	// Rotation is not supported once provisioned (spec.md §9).
	// +optional
	Password string `json:"password,omitempty"`

	// Groups names AuthentikGroup custom resources this user should belong
	// to; reconciled each pass, independent of account creation.
	// +optional
	Groups []string `json:"groups,omitempty"`
}

// AuthentikUserStatus is the observed state of a User.
type AuthentikUserStatus struct {
	CommonStatus `json:",inline"`
}

// +kubebuilder:object:root=true
// +kubebuilder:subresource:status

// AuthentikUser is the User custom resource.
type AuthentikUser struct {
	metav1.TypeMeta   `json:",inline"`
	metav1.ObjectMeta `json:"metadata,omitempty"`

	Spec   AuthentikUserSpec   `json:"spec,omitempty"`
	Status AuthentikUserStatus `json:"status,omitempty"`
}

// +kubebuilder:object:root=true

// AuthentikUserList contains a list of AuthentikUser.
type AuthentikUserList struct {
	metav1.TypeMeta `json:",inline"`
	metav1.ListMeta `json:"metadata,omitempty"`
	Items           []AuthentikUser `json:"items"`
}
