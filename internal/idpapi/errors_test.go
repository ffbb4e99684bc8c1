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

package idpapi

import (
	"fmt"
	"testing"

	. "github.com/onsi/gomega"
)

// TestErrorKindsAreMutuallyExclusive pins down spec.md §9's "error enums
// per op": a NotFoundError is never also mistaken for AlreadyExists or
// Forbidden, and a wrapped error still discriminates via errors.As.
func TestErrorKindsAreMutuallyExclusive(t *testing.T) {
	g := NewWithT(t)

	nf := newNotFound(404, "gone")
	ae := newAlreadyExists(400, "dup")
	fb := newForbidden(403, "nope")

	g.Expect(IsNotFound(nf)).To(BeTrue())
	g.Expect(IsAlreadyExists(nf)).To(BeFalse())
	g.Expect(IsForbidden(nf)).To(BeFalse())

	g.Expect(IsAlreadyExists(ae)).To(BeTrue())
	g.Expect(IsNotFound(ae)).To(BeFalse())

	g.Expect(IsForbidden(fb)).To(BeTrue())
	g.Expect(IsNotFound(fb)).To(BeFalse())

	wrapped := fmt.Errorf("finding group: %w", nf)
	g.Expect(IsNotFound(wrapped)).To(BeTrue())
}

func TestUnexpectedStatusIsNoneOfTheMappedKinds(t *testing.T) {
	g := NewWithT(t)

	err := unexpectedStatus(500, "boom")
	g.Expect(IsNotFound(err)).To(BeFalse())
	g.Expect(IsAlreadyExists(err)).To(BeFalse())
	g.Expect(IsForbidden(err)).To(BeFalse())
	g.Expect(err.Error()).To(ContainSubstring("500"))
}
