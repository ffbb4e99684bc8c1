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

package controller

import (
	"context"
	"testing"

	. "github.com/onsi/gomega"
	corev1 "k8s.io/api/core/v1"
	rbacv1 "k8s.io/api/rbac/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"sigs.k8s.io/controller-runtime/pkg/client/fake"

	akv1 "github.com/dany-dev/authentik-operator/api/v1"
)

func TestOwnerEnqueuerEnqueuesTheInstanceNamedByTheLabel(t *testing.T) {
	g := NewWithT(t)

	scheme := runtimeNewScheme()
	instance := &akv1.Authentik{ObjectMeta: metav1.ObjectMeta{Name: "foo", Namespace: "auth"}}
	c := fake.NewClientBuilder().WithScheme(scheme).WithObjects(instance).Build()

	role := &rbacv1.ClusterRole{ObjectMeta: metav1.ObjectMeta{
		Name:   "ak-foo",
		Labels: map[string]string{instanceLabel: "foo"},
	}}

	reqs := ownerEnqueuer(c, &rbacv1.ClusterRole{})(context.Background(), role)
	g.Expect(reqs).To(HaveLen(1))
	g.Expect(reqs[0].Name).To(Equal("foo"))
	g.Expect(reqs[0].Namespace).To(Equal("auth"))
}

func TestOwnerEnqueuerReturnsNilWhenLabelMissing(t *testing.T) {
	g := NewWithT(t)

	scheme := runtimeNewScheme()
	c := fake.NewClientBuilder().WithScheme(scheme).Build()

	orphan := &corev1.Secret{ObjectMeta: metav1.ObjectMeta{Name: "mystery"}}
	reqs := ownerEnqueuer(c, &corev1.Secret{})(context.Background(), orphan)
	g.Expect(reqs).To(BeEmpty())
}

func TestOwnerEnqueuerReturnsNilWhenNoInstanceMatchesTheLabel(t *testing.T) {
	g := NewWithT(t)

	scheme := runtimeNewScheme()
	c := fake.NewClientBuilder().WithScheme(scheme).Build()

	role := &rbacv1.ClusterRole{ObjectMeta: metav1.ObjectMeta{
		Name:   "ak-ghost",
		Labels: map[string]string{instanceLabel: "ghost"},
	}}

	reqs := ownerEnqueuer(c, &rbacv1.ClusterRole{})(context.Background(), role)
	g.Expect(reqs).To(BeEmpty())
}
