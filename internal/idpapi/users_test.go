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

func TestFindUsersSendsPageSizeAndFilters(t *testing.T) {
	g := NewWithT(t)

	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"results":[{"pk":1,"username":"alice"}]}`))
	}))
	defer srv.Close()

	c := NewWithBaseURL(srv.URL, "tok")
	users, err := c.FindUsers(context.Background(), FindUsersInput{Username: "alice"})
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(users).To(HaveLen(1))
	g.Expect(users[0].PK).To(Equal(1))
	g.Expect(gotQuery).To(ContainSubstring("page_size=1000"))
	g.Expect(gotQuery).To(ContainSubstring("username=alice"))
}

func TestGetSelfMapsForbidden(t *testing.T) {
	g := NewWithT(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	c := NewWithBaseURL(srv.URL, "stale")
	_, err := c.GetSelf(context.Background())
	g.Expect(IsForbidden(err)).To(BeTrue())
}

func TestGetSelfSuccess(t *testing.T) {
	g := NewWithT(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		g.Expect(r.URL.Path).To(Equal("/core/users/me/"))
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"user":{"pk":7,"username":"ak-operator"}}`))
	}))
	defer srv.Close()

	c := NewWithBaseURL(srv.URL, "good")
	res, err := c.GetSelf(context.Background())
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(res.User.PK).To(Equal(7))
}

func TestCreateServiceAccountAlreadyExists(t *testing.T) {
	g := NewWithT(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"non_field_errors":["user with this username already exists"]}`))
	}))
	defer srv.Close()

	c := NewWithBaseURL(srv.URL, "tok")
	_, err := c.CreateServiceAccount(context.Background(), CreateServiceAccountInput{Name: "ak-operator"})
	g.Expect(IsAlreadyExists(err)).To(BeTrue())
}

func TestDeleteAccountTreats400And404AsNotFound(t *testing.T) {
	g := NewWithT(t)

	for _, code := range []int{http.StatusBadRequest, http.StatusNotFound} {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(code)
		}))
		c := NewWithBaseURL(srv.URL, "tok")
		err := c.DeleteAccount(context.Background(), 5)
		g.Expect(IsNotFound(err)).To(BeTrue())
		srv.Close()
	}
}

func TestSetPasswordAndUpdateUser(t *testing.T) {
	g := NewWithT(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/core/users/9/set_password/":
			w.WriteHeader(http.StatusNoContent)
		case "/core/users/9/":
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(`{"pk":9,"username":"alice","groups":["abc"]}`))
		default:
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
	}))
	defer srv.Close()

	c := NewWithBaseURL(srv.URL, "tok")
	g.Expect(c.SetPassword(context.Background(), 9, SetPasswordInput{Password: "x"})).To(Succeed())

	u, err := c.UpdateUser(context.Background(), 9, UpdateUserInput{Groups: []string{"abc"}})
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(u.Groups).To(Equal([]string{"abc"}))
}
