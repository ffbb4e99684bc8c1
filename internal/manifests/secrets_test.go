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

func TestUserSecretNameAndContent(t *testing.T) {
	g := NewWithT(t)

	name := UserSecretName("foo", "alice")
	g.Expect(name).To(Equal("ak-foo-user-alice"))

	s := UserSecret("foo", "alice", "auth", "2023.10", "alice", "alice@example.com", "hunter2", OwnerRef{Name: "alice"})
	g.Expect(s.Name).To(Equal(name))
	g.Expect(s.Namespace).To(Equal("auth"))
	g.Expect(s.StringData).To(HaveKeyWithValue("username", "alice"))
	g.Expect(s.StringData).To(HaveKeyWithValue("email", "alice@example.com"))
	g.Expect(s.StringData).To(HaveKeyWithValue("password", "hunter2"))
	g.Expect(s.OwnerReferences).To(HaveLen(1))
}

func TestOAuthSecretNameAndContent(t *testing.T) {
	g := NewWithT(t)

	name := OAuthSecretName("foo", "app1")
	g.Expect(name).To(Equal("ak-foo-oauth-app1"))

	s := OAuthSecret("foo", "app1", "auth", "2023.10", "confidential", "cid", "csecret",
		[]string{"https://a.example.com/cb", "https://b.example.com/cb"}, OwnerRef{Name: "app1"})
	g.Expect(s.Name).To(Equal(name))
	g.Expect(s.StringData).To(HaveKeyWithValue("clientType", "confidential"))
	g.Expect(s.StringData).To(HaveKeyWithValue("clientId", "cid"))
	g.Expect(s.StringData).To(HaveKeyWithValue("clientSecret", "csecret"))
	g.Expect(s.StringData).To(HaveKeyWithValue("redirectUris", "https://a.example.com/cb,https://b.example.com/cb"))
}

func TestTokenSecretCarriesTokenUnderFixedKey(t *testing.T) {
	g := NewWithT(t)

	s := TokenSecret("ak-foo-token", "auth", "foo", "2023.10", "durable-tok", OwnerRef{Name: "foo"})
	g.Expect(s.Data).To(HaveKeyWithValue(TokenSecretKey, []byte("durable-tok")))
}
