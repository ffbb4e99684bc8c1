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
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	. "github.com/onsi/gomega"
)

func TestClientAttachesAuthAndContentType(t *testing.T) {
	g := NewWithT(t)

	var gotAuth, gotContentType, gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotContentType = r.Header.Get("Content-Type")
		gotUA = r.Header.Get("User-Agent")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"results":[]}`))
	}))
	defer srv.Close()

	c := NewWithBaseURL(srv.URL, "mytoken")
	_, err := c.FindUsers(context.Background(), FindUsersInput{})
	g.Expect(err).NotTo(HaveOccurred())

	g.Expect(gotAuth).To(Equal("Bearer mytoken"))
	g.Expect(gotContentType).To(Equal("application/json"))
	g.Expect(gotUA).To(ContainSubstring("authentik-operator/"))
}

func TestPkPathAndIdPath(t *testing.T) {
	g := NewWithT(t)

	g.Expect(pkPath("/core/users/", 3)).To(Equal("/core/users/3/"))
	g.Expect(idPath("/core/tokens/", "my-ident")).To(Equal("/core/tokens/my-ident/"))
}

func TestNewDerivesInClusterHost(t *testing.T) {
	g := NewWithT(t)

	c := New("foo", "auth", "tok")
	g.Expect(c.http.BaseURL).To(Equal("http://authentik-foo.auth/api/v3"))
}
