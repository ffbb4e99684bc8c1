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

// GetApplication fetches an application by slug. A 404 response is not an
// error here — it means "create, don't patch" — so it returns (nil, nil).
func (c *Client) GetApplication(ctx context.Context, slug string) (*Application, error) {
	var out Application
	res, err := c.R(ctx).SetResult(&out).Get(idPath("/core/applications/", slug))
	if err != nil {
		return nil, err
	}
	switch res.StatusCode() {
	case http.StatusOK:
		return &out, nil
	case http.StatusNotFound:
		return nil, nil
	default:
		return nil, unexpectedStatus(res.StatusCode(), res.String())
	}
}

// CreateApplication creates an application from a fully-built payload.
func (c *Client) CreateApplication(ctx context.Context, in Application) (*Application, error) {
	var out Application
	res, err := c.R(ctx).SetBody(in).SetResult(&out).Post("/core/applications/")
	if err != nil {
		return nil, err
	}
	if res.StatusCode() != http.StatusCreated {
		return nil, unexpectedStatus(res.StatusCode(), res.String())
	}
	return &out, nil
}

// PatchApplication patches an existing application, keyed by in.Slug.
func (c *Client) PatchApplication(ctx context.Context, in Application) (*Application, error) {
	var out Application
	res, err := c.R(ctx).SetBody(in).SetResult(&out).Patch(idPath("/core/applications/", in.Slug))
	if err != nil {
		return nil, err
	}
	if res.StatusCode() != http.StatusOK {
		return nil, unexpectedStatus(res.StatusCode(), res.String())
	}
	return &out, nil
}

// DeleteApplication deletes an application by key. The endpoint is
// slug-addressed, and AppReconciler's cleanup passes spec.Slug (see
// DESIGN.md). 400/404 map to NotFound.
func (c *Client) DeleteApplication(ctx context.Context, key string) error {
	res, err := c.R(ctx).Delete(idPath("/core/applications/", key))
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
