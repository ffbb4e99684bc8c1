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
)

// FindUsersInput filters the user list query. Zero-value fields are
// omitted from the query string.
type FindUsersInput struct {
	Name     string
	Username string
	UUID     string
}

type findUsersResponse struct {
	Results []User `json:"results"`
}

// FindUsers lists users matching the given filter, page_size=1000, first
// page only (spec.md §4.1 cardinality assumption).
func (c *Client) FindUsers(ctx context.Context, in FindUsersInput) ([]User, error) {
	q := map[string]string{"page_size": "1000"}
	if in.Name != "" {
		q["name"] = in.Name
	}
	if in.Username != "" {
		q["username"] = in.Username
	}
	if in.UUID != "" {
		q["uuid"] = in.UUID
	}

	var out findUsersResponse
	res, err := c.R(ctx).SetQueryParams(q).SetResult(&out).Get("/core/users/")
	if err != nil {
		return nil, err
	}
	if res.StatusCode() != http.StatusOK {
		return nil, unexpectedStatus(res.StatusCode(), res.String())
	}
	return out.Results, nil
}

// GetSelfResponse is the decoded body of GET /core/users/me/.
type GetSelfResponse struct {
	User User `json:"user"`
}

// GetSelf validates the client's bearer token and returns the caller's own
// user record. A Forbidden error is C2's signal to fall back to the seed
// token (spec.md §4.2).
func (c *Client) GetSelf(ctx context.Context) (*GetSelfResponse, error) {
	var out GetSelfResponse
	res, err := c.R(ctx).SetResult(&out).Get("/core/users/me/")
	if err != nil {
		return nil, err
	}
	switch res.StatusCode() {
	case http.StatusOK:
		return &out, nil
	case http.StatusForbidden:
		return nil, newForbidden(res.StatusCode(), res.String())
	default:
		return nil, unexpectedStatus(res.StatusCode(), res.String())
	}
}

// CreateAccountInput is the body of POST /core/users/.
type CreateAccountInput struct {
	Name     string   `json:"name"`
	Username string   `json:"username"`
	Email    string   `json:"email,omitempty"`
	Path     string   `json:"path"`
	Groups   []string `json:"groups"`
}

// CreateAccount creates a regular (non-service-account) user.
func (c *Client) CreateAccount(ctx context.Context, in CreateAccountInput) (*User, error) {
	var out User
	res, err := c.R(ctx).SetBody(in).SetResult(&out).Post("/core/users/")
	if err != nil {
		return nil, err
	}
	if res.StatusCode() != http.StatusCreated {
		return nil, unexpectedStatus(res.StatusCode(), res.String())
	}
	return &out, nil
}

// CreateServiceAccountInput is the body of POST /core/users/service_account/.
type CreateServiceAccountInput struct {
	Name        string `json:"name"`
	CreateGroup bool   `json:"create_group"`
}

// CreateServiceAccountResponse is its decoded response.
type CreateServiceAccountResponse struct {
	Username string `json:"username"`
	UserUID  string `json:"user_uid"`
	UserPK   int    `json:"user_pk"`
	Token    string `json:"token"`
}

// CreateServiceAccount creates the operator's own bootstrap service account.
// A 400 response means it already exists (AlreadyExists, idempotent).
func (c *Client) CreateServiceAccount(ctx context.Context, in CreateServiceAccountInput) (*CreateServiceAccountResponse, error) {
	var out CreateServiceAccountResponse
	res, err := c.R(ctx).SetBody(in).SetResult(&out).Post("/core/users/service_account/")
	if err != nil {
		return nil, err
	}
	switch res.StatusCode() {
	case http.StatusOK:
		return &out, nil
	case http.StatusBadRequest:
		return nil, newAlreadyExists(res.StatusCode(), res.String())
	default:
		return nil, unexpectedStatus(res.StatusCode(), res.String())
	}
}

// DeleteAccount deletes a user by pk. 400/404 map to NotFound (idempotent).
func (c *Client) DeleteAccount(ctx context.Context, pk int) error {
	res, err := c.R(ctx).Delete(pkPath("/core/users/", pk))
	if err != nil {
		return err
	}
	switch res.StatusCode() {
	case http.StatusNoContent:
		return nil
	case http.StatusBadRequest, http.StatusNotFound:
		return newNotFound(res.StatusCode(), res.String())
	default:
		return unexpectedStatus(res.StatusCode(), res.String())
	}
}

// SetPasswordInput is the body of POST /core/users/{id}/set_password/.
type SetPasswordInput struct {
	Password string `json:"password"`
}

// SetPassword sets pk's password.
func (c *Client) SetPassword(ctx context.Context, pk int, in SetPasswordInput) error {
	res, err := c.R(ctx).SetBody(in).Post(pkPath("/core/users/", pk) + "set_password/")
	if err != nil {
		return err
	}
	if res.StatusCode() != http.StatusNoContent {
		return unexpectedStatus(res.StatusCode(), res.String())
	}
	return nil
}

// UpdateUserInput is the body of PATCH /core/users/{id}/.
type UpdateUserInput struct {
	Groups []string `json:"groups"`
}

// UpdateUser patches pk, currently only used to rewrite group membership.
func (c *Client) UpdateUser(ctx context.Context, pk int, in UpdateUserInput) (*User, error) {
	var out User
	res, err := c.R(ctx).SetBody(in).SetResult(&out).Patch(pkPath("/core/users/", pk))
	if err != nil {
		return nil, err
	}
	if res.StatusCode() != http.StatusOK {
		return nil, unexpectedStatus(res.StatusCode(), res.String())
	}
	return &out, nil
}
