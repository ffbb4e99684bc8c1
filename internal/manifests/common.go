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
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/types"
	"k8s.io/utils/ptr"
)

// OwnerRef describes the custom resource a namespaced object is built for;
// every namespaced builder in this package attaches it with controller:true
// (spec.md §4.3) so Kubernetes GC removes the child when the parent goes.
// Cluster-scoped objects (ClusterRole, ClusterRoleBinding) never carry one;
// the cleanup pipeline deletes those explicitly (spec.md §3 Lifecycles).
type OwnerRef struct {
	APIVersion string
	Kind       string
	Name       string
	UID        string
}

func (o OwnerRef) toMeta() metav1.OwnerReference {
	return metav1.OwnerReference{
		APIVersion:         o.APIVersion,
		Kind:               o.Kind,
		Name:               o.Name,
		UID:                types.UID(o.UID),
		Controller:         ptr.To(true),
		BlockOwnerDeletion: ptr.To(true),
	}
}
