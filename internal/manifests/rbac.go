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
	"fmt"

	corev1 "k8s.io/api/core/v1"
	rbacv1 "k8s.io/api/rbac/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

// ServiceAccountName is the naming-scheme ServiceAccount the server and
// worker pods run as.
func ServiceAccountName(instance string) string {
	return fmt.Sprintf("ak-%s", instance)
}

// ClusterRoleName is the naming-scheme ClusterRole granted to the instance's
// ServiceAccount, letting the IdP validate Kubernetes service accounts via
// TokenReview (spec.md §6).
func ClusterRoleName(instance string) string {
	return fmt.Sprintf("ak-%s", instance)
}

// ClusterRoleBindingName is the naming-scheme binding of ClusterRoleName to
// the instance's ServiceAccount.
func ClusterRoleBindingName(instance string) string {
	return ClusterRoleName(instance)
}

// ServiceAccount builds the instance's pod-running identity.
func ServiceAccount(instance, namespace, version string, owner OwnerRef) *corev1.ServiceAccount {
	return &corev1.ServiceAccount{
		TypeMeta: metav1.TypeMeta{APIVersion: "v1", Kind: "ServiceAccount"},
		ObjectMeta: metav1.ObjectMeta{
			Name:            ServiceAccountName(instance),
			Namespace:       namespace,
			Labels:          Labels(instance, version, "server"),
			OwnerReferences: []metav1.OwnerReference{owner.toMeta()},
		},
	}
}

// ClusterRole builds the cluster-scoped role granting TokenReview access.
// Cluster-scoped objects never carry an owner reference (see OwnerRef);
// the IdPInstance cleanup pipeline deletes this explicitly.
func ClusterRole(instance, version string) *rbacv1.ClusterRole {
	return &rbacv1.ClusterRole{
		TypeMeta: metav1.TypeMeta{APIVersion: "rbac.authorization.k8s.io/v1", Kind: "ClusterRole"},
		ObjectMeta: metav1.ObjectMeta{
			Name:   ClusterRoleName(instance),
			Labels: Labels(instance, version, "server"),
		},
		Rules: []rbacv1.PolicyRule{
			{
				APIGroups: []string{"authentication.k8s.io"},
				Resources: []string{"tokenreviews"},
				Verbs:     []string{"create"},
			},
		},
	}
}

// ClusterRoleBinding binds ClusterRole to the instance's ServiceAccount.
func ClusterRoleBinding(instance, namespace, version string) *rbacv1.ClusterRoleBinding {
	return &rbacv1.ClusterRoleBinding{
		TypeMeta: metav1.TypeMeta{APIVersion: "rbac.authorization.k8s.io/v1", Kind: "ClusterRoleBinding"},
		ObjectMeta: metav1.ObjectMeta{
			Name:   ClusterRoleBindingName(instance),
			Labels: Labels(instance, version, "server"),
		},
		RoleRef: rbacv1.RoleRef{
			APIGroup: rbacv1.GroupName,
			Kind:     "ClusterRole",
			Name:     ClusterRoleName(instance),
		},
		Subjects: []rbacv1.Subject{
			{
				Kind:      rbacv1.ServiceAccountKind,
				Name:      ServiceAccountName(instance),
				Namespace: namespace,
			},
		},
	}
}
