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

type findGroupsResponse struct {
	Results []Group `json:"results"`
}

// FindGroups lists groups matching name, page_size=1000 first-page only.
func (c *Client) FindGroups(ctx context.Context, name string) ([]Group, error) {
	q := map[string]string{"page_size": "1000"}
	if name != "" {
		q["name"] = name
	}

	var out findGroupsResponse
	res, err := c.R(ctx).SetQueryParams(q).SetResult(&out).Get("/core/groups/")
	if err != nil {
		return nil, err
	}
	if res.StatusCode() != http.StatusOK {
		return nil, unexpectedStatus(res.StatusCode(), res.String())
	}
	return out.Results, nil
}

// GetGroup reads a single group by pk, including its current `users` list
// (SPEC_FULL.md C1 additions). No reconciler in this repo calls it.
func (c *Client) GetGroup(ctx context.Context, pk string) (*Group, error) {
	var out Group
	res, err := c.R(ctx).SetResult(&out).Get(idPath("/core/groups/", pk))
	if err != nil {
		return nil, err
	}
	switch res.StatusCode() {
	case http.StatusOK:
		return &out, nil
	case http.StatusNotFound:
		return nil, newNotFound(res.StatusCode(), res.String())
	default:
		return nil, unexpectedStatus(res.StatusCode(), res.String())
	}
}

// CreateGroupInput is the body of POST /core/groups/.
type CreateGroupInput struct {
	Name        string `json:"name"`
	IsSuperuser bool   `json:"is_superuser"`
	Parent      string `json:"parent"`
	Users       []int  `json:"users"`
}

// CreateGroup creates a group. A 400 response means it already exists
// (AlreadyExists, idempotent).
func (c *Client) CreateGroup(ctx context.Context, in CreateGroupInput) (*Group, error) {
	var out Group
	res, err := c.R(ctx).SetBody(in).SetResult(&out).Post("/core/groups/")
	if err != nil {
		return nil, err
	}
	switch res.StatusCode() {
	case http.StatusCreated:
		return &out, nil
	case http.StatusBadRequest:
		return nil, newAlreadyExists(res.StatusCode(), res.String())
	default:
		return nil, unexpectedStatus(res.StatusCode(), res.String())
	}
}

// DeleteGroup deletes a group by pk. 400 maps to NotFound (idempotent).
func (c *Client) DeleteGroup(ctx context.Context, pk string) error {
	res, err := c.R(ctx).Delete(idPath("/core/groups/", pk))
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
