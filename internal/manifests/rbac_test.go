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
	"testing"

	. "github.com/onsi/gomega"
)

func TestRBACNaming(t *testing.T) {
	g := NewWithT(t)

	g.Expect(ServiceAccountName("foo")).To(Equal("ak-foo"))
	g.Expect(ClusterRoleName("foo")).To(Equal("ak-foo"))
	g.Expect(ClusterRoleBindingName("foo")).To(Equal("ak-foo"))
}

func TestClusterRoleGrantsTokenReviewOnly(t *testing.T) {
	g := NewWithT(t)

	cr := ClusterRole("foo", "2023.10")
	g.Expect(cr.Rules).To(HaveLen(1))
	g.Expect(cr.Rules[0].APIGroups).To(ConsistOf("authentication.k8s.io"))
	g.Expect(cr.Rules[0].Resources).To(ConsistOf("tokenreviews"))
	g.Expect(cr.Rules[0].Verbs).To(ConsistOf("create"))
}

func TestClusterScopedObjectsCarryNoOwnerReference(t *testing.T) {
	g := NewWithT(t)

	cr := ClusterRole("foo", "2023.10")
	g.Expect(cr.OwnerReferences).To(BeEmpty())

	crb := ClusterRoleBinding("foo", "auth", "2023.10")
	g.Expect(crb.OwnerReferences).To(BeEmpty())
	g.Expect(crb.Subjects).To(HaveLen(1))
	g.Expect(crb.Subjects[0].Name).To(Equal(ServiceAccountName("foo")))
	g.Expect(crb.Subjects[0].Namespace).To(Equal("auth"))
	g.Expect(crb.RoleRef.Name).To(Equal(ClusterRoleName("foo")))
}

func TestServiceAccountCarriesOwnerReference(t *testing.T) {
	g := NewWithT(t)

	sa := ServiceAccount("foo", "auth", "2023.10", OwnerRef{Name: "foo"})
	g.Expect(sa.Namespace).To(Equal("auth"))
	g.Expect(sa.OwnerReferences).To(HaveLen(1))
}
