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

// TestLabelsIsTheClosedSixKeySet pins down spec.md §4.3's label scheme:
// DESIGN.md resolves two divergent builders found in original_source in
// favor of this single closed set.
func TestLabelsIsTheClosedSixKeySet(t *testing.T) {
	g := NewWithT(t)

	labels := Labels("foo", "2023.10", "server")
	g.Expect(labels).To(HaveLen(6))
	g.Expect(labels).To(HaveKeyWithValue("app.kubernetes.io/name", "authentik"))
	g.Expect(labels).To(HaveKeyWithValue("app.kubernetes.io/part-of", "ak-ak"))
	g.Expect(labels).To(HaveKeyWithValue("app.kubernetes.io/instance", "foo"))
	g.Expect(labels).To(HaveKeyWithValue("app.kubernetes.io/component", "server"))
	g.Expect(labels).To(HaveKeyWithValue("app.kubernetes.io/version", "2023.10"))
	g.Expect(labels).To(HaveKeyWithValue("app.kubernetes.io/created-by", "authentik-operator"))
}

// TestMatchLabelsIsStableAcrossVersionBumps ensures selector labels never
// include the version key, so a tag bump can never orphan running pods.
func TestMatchLabelsIsStableAcrossVersionBumps(t *testing.T) {
	g := NewWithT(t)

	match := MatchLabels("foo", "server")
	g.Expect(match).To(HaveLen(4))
	g.Expect(match).NotTo(HaveKey("app.kubernetes.io/version"))

	full := Labels("foo", "2023.10", "server")
	for k, v := range match {
		g.Expect(full).To(HaveKeyWithValue(k, v))
	}
}

func TestOwnerRefSetsControllerAndBlockOwnerDeletion(t *testing.T) {
	g := NewWithT(t)

	ref := OwnerRef{APIVersion: "ak.dany.dev/v1", Kind: "Authentik", Name: "foo", UID: "abc-123"}
	meta := ref.toMeta()
	g.Expect(meta.Controller).NotTo(BeNil())
	g.Expect(*meta.Controller).To(BeTrue())
	g.Expect(meta.BlockOwnerDeletion).NotTo(BeNil())
	g.Expect(*meta.BlockOwnerDeletion).To(BeTrue())
	g.Expect(string(meta.UID)).To(Equal("abc-123"))
}
