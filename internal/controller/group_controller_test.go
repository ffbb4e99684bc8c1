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
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	. "github.com/onsi/gomega"

	akv1 "github.com/dany-dev/authentik-operator/api/v1"
	"github.com/dany-dev/authentik-operator/internal/idpapi"
)

// groupServer stands in for the IdP's /core/groups/ endpoint, tracking
// created groups in memory so FindGroups reflects a prior CreateGroup
// within the same test (spec.md §4.4.2 idempotence, P1).
func groupServer(t *testing.T, seed ...idpapi.Group) (*httptest.Server, *[]idpapi.Group) {
	t.Helper()
	groups := append([]idpapi.Group{}, seed...)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet:
			name := r.URL.Query().Get("name")
			var matches []idpapi.Group
			for _, g := range groups {
				if name == "" || g.Name == name {
					matches = append(matches, g)
				}
			}
			w.WriteHeader(http.StatusOK)
			_ = json.NewEncoder(w).Encode(map[string]any{"results": matches})
		case r.Method == http.MethodPost:
			var in idpapi.CreateGroupInput
			_ = json.NewDecoder(r.Body).Decode(&in)
			for _, g := range groups {
				if g.Name == in.Name {
					w.WriteHeader(http.StatusBadRequest)
					return
				}
			}
			created := idpapi.Group{PK: "new-pk", Name: in.Name, IsSuperuser: in.IsSuperuser, Parent: in.Parent}
			groups = append(groups, created)
			w.WriteHeader(http.StatusCreated)
			_ = json.NewEncoder(w).Encode(created)
		case r.Method == http.MethodDelete:
			w.WriteHeader(http.StatusNoContent)
		}
	}))
	t.Cleanup(srv.Close)
	return srv, &groups
}

func TestReconcileGroupCreatesWhenAbsent(t *testing.T) {
	g := NewWithT(t)

	srv, _ := groupServer(t)
	st := &groupState{
		obj: &akv1.AuthentikGroup{Spec: akv1.AuthentikGroupSpec{Name: "engineering"}},
		idp: idpapi.NewWithBaseURL(srv.URL, "tok"),
	}

	r := &GroupReconciler{}
	_, err := r.reconcileGroup(context.Background(), st)
	g.Expect(err).NotTo(HaveOccurred())
}

func TestReconcileGroupIsIdempotentWhenAlreadyPresent(t *testing.T) {
	g := NewWithT(t)

	srv, _ := groupServer(t, idpapi.Group{PK: "p1", Name: "engineering"})
	st := &groupState{
		obj: &akv1.AuthentikGroup{Spec: akv1.AuthentikGroupSpec{Name: "engineering"}},
		idp: idpapi.NewWithBaseURL(srv.URL, "tok"),
	}

	r := &GroupReconciler{}
	_, err := r.reconcileGroup(context.Background(), st)
	g.Expect(err).NotTo(HaveOccurred())
}

func TestReconcileGroupResolvesParentByName(t *testing.T) {
	g := NewWithT(t)

	srv, _ := groupServer(t, idpapi.Group{PK: "parent-pk", Name: "parent-team"})
	st := &groupState{
		obj: &akv1.AuthentikGroup{Spec: akv1.AuthentikGroupSpec{Name: "child-team", Parent: "parent-team"}},
		idp: idpapi.NewWithBaseURL(srv.URL, "tok"),
	}

	r := &GroupReconciler{}
	_, err := r.reconcileGroup(context.Background(), st)
	g.Expect(err).NotTo(HaveOccurred())
}

func TestReconcileGroupFailsWhenParentMissing(t *testing.T) {
	g := NewWithT(t)

	srv, _ := groupServer(t)
	st := &groupState{
		obj: &akv1.AuthentikGroup{Spec: akv1.AuthentikGroupSpec{Name: "child-team", Parent: "ghost-team"}},
		idp: idpapi.NewWithBaseURL(srv.URL, "tok"),
	}

	r := &GroupReconciler{}
	_, err := r.reconcileGroup(context.Background(), st)
	g.Expect(err).To(HaveOccurred())
}

func TestGroupCleanupIsIdempotentWhenAlreadyGone(t *testing.T) {
	g := NewWithT(t)

	srv, _ := groupServer(t)
	st := &groupState{
		obj: &akv1.AuthentikGroup{Spec: akv1.AuthentikGroupSpec{Name: "engineering"}},
		idp: idpapi.NewWithBaseURL(srv.URL, "tok"),
	}

	r := &GroupReconciler{}
	g.Expect(r.cleanup(context.Background(), st)).To(Succeed())
}

func TestGroupCleanupDeletesWhenPresent(t *testing.T) {
	g := NewWithT(t)

	srv, _ := groupServer(t, idpapi.Group{PK: "p1", Name: "engineering"})
	st := &groupState{
		obj: &akv1.AuthentikGroup{Spec: akv1.AuthentikGroupSpec{Name: "engineering"}},
		idp: idpapi.NewWithBaseURL(srv.URL, "tok"),
	}

	r := &GroupReconciler{}
	g.Expect(r.cleanup(context.Background(), st)).To(Succeed())
}
