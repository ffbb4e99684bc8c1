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

// GetFlow fetches a flow by slug.
func (c *Client) GetFlow(ctx context.Context, slug string) (*Flow, error) {
	var out Flow
	res, err := c.R(ctx).SetResult(&out).Get(idPath("/flows/instances/", slug))
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

// DeleteFlow deletes a flow by slug. 404 maps to NotFound.
func (c *Client) DeleteFlow(ctx context.Context, slug string) error {
	res, err := c.R(ctx).Delete(idPath("/flows/instances/", slug))
	if err != nil {
		return err
	}
	switch res.StatusCode() {
	case http.StatusNoContent:
		return nil
	case http.StatusNotFound:
		return newNotFound(res.StatusCode(), res.String())
	default:
		return unexpectedStatus(res.StatusCode(), res.String())
	}
}
