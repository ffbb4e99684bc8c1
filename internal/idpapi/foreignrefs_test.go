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

// Tests for the small reference-resolution endpoints OAuthProvider
// reconciliation depends on: flows, stages, scope mappings, certificates,
// providers (spec.md §4.1/§4.4.4 stage 2).
package idpapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	. "github.com/onsi/gomega"
)

func TestGetFlowNotFound(t *testing.T) {
	g := NewWithT(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		g.Expect(r.URL.Path).To(Equal("/flows/instances/initial-setup/"))
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	c := NewWithBaseURL(srv.URL, "tok")
	_, err := c.GetFlow(context.Background(), "initial-setup")
	g.Expect(IsNotFound(err)).To(BeTrue())
}

func TestDeleteFlowIdempotent(t *testing.T) {
	g := NewWithT(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	c := NewWithBaseURL(srv.URL, "tok")
	err := c.DeleteFlow(context.Background(), "initial-setup")
	g.Expect(IsNotFound(err)).To(BeTrue())
}

func TestFindStagesAndDelete(t *testing.T) {
	g := NewWithT(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(`{"results":[{"pk":"s1","name":"default-oobe-password"}]}`))
		case http.MethodDelete:
			w.WriteHeader(http.StatusNoContent)
		}
	}))
	defer srv.Close()

	c := NewWithBaseURL(srv.URL, "tok")
	stages, err := c.FindStages(context.Background(), "default-oobe-password")
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(stages).To(HaveLen(1))
	g.Expect(c.DeleteStage(context.Background(), stages[0].PK)).To(Succeed())
}

func TestFindScopeMappingsExactMatchHelperPattern(t *testing.T) {
	g := NewWithT(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"results":[{"pk":"m1","name":"authentik default OAuth Mapping: OpenID 'openid'"},{"pk":"m2","name":"openid"}]}`))
	}))
	defer srv.Close()

	c := NewWithBaseURL(srv.URL, "tok")
	mappings, err := c.FindScopeMappings(context.Background(), "openid")
	g.Expect(err).NotTo(HaveOccurred())

	var match *ScopeMapping
	for i := range mappings {
		if mappings[i].Name == "openid" {
			match = &mappings[i]
		}
	}
	g.Expect(match).NotTo(BeNil())
	g.Expect(match.PK).To(Equal("m2"))
}

func TestFindCertificatesHasKeyQueryParam(t *testing.T) {
	g := NewWithT(t)

	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"results":[]}`))
	}))
	defer srv.Close()

	hasKey := true
	c := NewWithBaseURL(srv.URL, "tok")
	_, err := c.FindCertificates(context.Background(), FindCertificatesInput{Name: "sig", HasKey: &hasKey})
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(gotQuery).To(ContainSubstring("has_key=true"))
	g.Expect(gotQuery).To(ContainSubstring("name=sig"))
}

func TestFindProviderByNameExactMatch(t *testing.T) {
	g := NewWithT(t)

	providers := []Provider{{PK: 1, Name: "google-oauth"}, {PK: 2, Name: "google-oauth-staging"}}
	found, ok := FindProviderByName(providers, "google-oauth")
	g.Expect(ok).To(BeTrue())
	g.Expect(found.PK).To(Equal(1))
}
