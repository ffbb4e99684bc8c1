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

const (
	// ReadyCondition reports the overall reconcile outcome of a custom resource.
	ReadyCondition = "Ready"

	// FinalizerSuffix is appended to each kind's own finalizer name, per spec
	// "<kind>/ak.dany.dev".
	FinalizerSuffix = "ak.dany.dev"
)

// CommonStatus is embedded by every kind's Status struct. ObservedGeneration
// and Conditions are additive observability (see SPEC_FULL.md); they never
// replace a kind-specific status field.
type CommonStatus struct {
	// ObservedGeneration is the generation most recently acted on.
	// +optional
	ObservedGeneration int64 `json:"observedGeneration,omitempty"`

	// Conditions is the set of condition reports for this resource.
	// +optional
	Conditions []metav1.Condition `json:"conditions,omitempty"`
}

// SecretKeyReference points at a single key in a Secret.
type SecretKeyReference struct {
	// Name of the Secret.
	Name string `json:"name"`
	// Key within the Secret's data.
	Key string `json:"key"`
}
