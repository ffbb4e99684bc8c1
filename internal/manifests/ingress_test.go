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

	akv1 "github.com/dany-dev/authentik-operator/api/v1"
)

func TestIngressNamingAndBackend(t *testing.T) {
	g := NewWithT(t)

	g.Expect(IngressName("foo")).To(Equal("authentik-foo"))

	spec := akv1.IngressSpec{Host: "ak.example.com"}
	ing := Ingress("foo", "2023.10", spec, OwnerRef{Name: "foo"})

	g.Expect(ing.Name).To(Equal("authentik-foo"))
	g.Expect(ing.Spec.Rules).To(HaveLen(1))
	g.Expect(ing.Spec.Rules[0].Host).To(Equal("ak.example.com"))
	backend := ing.Spec.Rules[0].HTTP.Paths[0].Backend.Service
	g.Expect(backend.Name).To(Equal(ServiceName("foo")))
	g.Expect(backend.Port.Number).To(Equal(int32(80)))
	g.Expect(ing.Spec.IngressClassName).To(BeNil())
	g.Expect(ing.Spec.TLS).To(BeEmpty())
}

func TestIngressClassNameAndTLS(t *testing.T) {
	g := NewWithT(t)

	spec := akv1.IngressSpec{
		Host:          "ak.example.com",
		ClassName:     "nginx",
		TLSSecretName: "ak-tls",
		Annotations:   map[string]string{"a": "b"},
	}
	ing := Ingress("foo", "2023.10", spec, OwnerRef{Name: "foo"})

	g.Expect(ing.Spec.IngressClassName).NotTo(BeNil())
	g.Expect(*ing.Spec.IngressClassName).To(Equal("nginx"))
	g.Expect(ing.Spec.TLS).To(HaveLen(1))
	g.Expect(ing.Spec.TLS[0].SecretName).To(Equal("ak-tls"))
	g.Expect(ing.Spec.TLS[0].Hosts).To(ConsistOf("ak.example.com"))
	g.Expect(ing.Annotations).To(HaveKeyWithValue("a", "b"))
}
