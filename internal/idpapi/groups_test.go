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

func TestFindGroupsOmitsEmptyName(t *testing.T) {
	g := NewWithT(t)

	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"results":[]}`))
	}))
	defer srv.Close()

	c := NewWithBaseURL(srv.URL, "tok")
	_, err := c.FindGroups(context.Background(), "")
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(gotQuery).NotTo(ContainSubstring("name="))
}

func TestCreateGroupAlreadyExists(t *testing.T) {
	g := NewWithT(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	c := NewWithBaseURL(srv.URL, "tok")
	_, err := c.CreateGroup(context.Background(), CreateGroupInput{Name: "admins", IsSuperuser: true})
	g.Expect(IsAlreadyExists(err)).To(BeTrue())
}

func TestDeleteGroupNotFoundVariants(t *testing.T) {
	g := NewWithT(t)

	for _, code := range []int{http.StatusBadRequest, http.StatusNotFound} {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(code)
		}))
		c := NewWithBaseURL(srv.URL, "tok")
		err := c.DeleteGroup(context.Background(), "pk-1")
		g.Expect(IsNotFound(err)).To(BeTrue())
		srv.Close()
	}
}

func TestGetGroup(t *testing.T) {
	g := NewWithT(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		g.Expect(r.URL.Path).To(Equal("/core/groups/pk-1/"))
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"pk":"pk-1","name":"admins","users":[1,2]}`))
	}))
	defer srv.Close()

	c := NewWithBaseURL(srv.URL, "tok")
	group, err := c.GetGroup(context.Background(), "pk-1")
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(group.Users).To(Equal([]int{1, 2}))
}
