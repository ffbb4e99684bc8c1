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

// CreateTokenInput is the body of POST /core/tokens/.
type CreateTokenInput struct {
	Identifier  string `json:"identifier"`
	Intent      string `json:"intent"`
	User        int    `json:"user"`
	Description string `json:"description,omitempty"`
	Expiring    bool   `json:"expiring"`
}

// CreateToken creates a token. A 400 response means one with this
// identifier already exists (AlreadyExists, idempotent).
func (c *Client) CreateToken(ctx context.Context, in CreateTokenInput) (*Token, error) {
	var out Token
	res, err := c.R(ctx).SetBody(in).SetResult(&out).Post("/core/tokens/")
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

// DeleteToken deletes a token by identifier. 404 maps to NotFound.
func (c *Client) DeleteToken(ctx context.Context, identifier string) error {
	res, err := c.R(ctx).Delete(idPath("/core/tokens/", identifier))
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

type viewKeyResponse struct {
	Key string `json:"key"`
}

// ViewKey reveals a token's secret value by identifier. 404 maps to NotFound.
func (c *Client) ViewKey(ctx context.Context, identifier string) (string, error) {
	var out viewKeyResponse
	res, err := c.R(ctx).SetResult(&out).Get(idPath("/core/tokens/", identifier) + "view_key/")
	if err != nil {
		return "", err
	}
	switch res.StatusCode() {
	case http.StatusOK:
		return out.Key, nil
	case http.StatusNotFound:
		return "", newNotFound(res.StatusCode(), res.String())
	default:
		return "", unexpectedStatus(res.StatusCode(), res.String())
	}
}
