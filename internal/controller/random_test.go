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
	"strings"
	"testing"

	. "github.com/onsi/gomega"
)

// TestRandomStringLengthsMatchSpec pins down spec.md's exact char-length
// requirements for every generated credential (§4.4.1 stage1, §4.4.4
// stage1): secretKey/password/clientId are 128 chars, clientSecret 255.
func TestRandomStringLengthsMatchSpec(t *testing.T) {
	g := NewWithT(t)

	for _, length := range []int{secretKeyLength, passwordLength, clientSecretLength} {
		s, err := randomString(length)
		g.Expect(err).NotTo(HaveOccurred())
		g.Expect(s).To(HaveLen(length))
		for _, r := range s {
			g.Expect(strings.ContainsRune(alphanumeric, r)).To(BeTrue())
		}
	}
}

func TestRandomStringIsNotDeterministic(t *testing.T) {
	g := NewWithT(t)

	a, err := randomString(32)
	g.Expect(err).NotTo(HaveOccurred())
	b, err := randomString(32)
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(a).NotTo(Equal(b))
}
