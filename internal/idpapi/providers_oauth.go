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

type findOAuthProvidersResponse struct {
	Results []OAuthProvider `json:"results"`
}

// FindOAuthProviders lists OAuth2 providers matching name, page_size=1000
// first-page only.
func (c *Client) FindOAuthProviders(ctx context.Context, name string) ([]OAuthProvider, error) {
	q := map[string]string{"page_size": "1000"}
	if name != "" {
		q["name"] = name
	}

	var out findOAuthProvidersResponse
	res, err := c.R(ctx).SetQueryParams(q).SetResult(&out).Get("/providers/oauth2/")
	if err != nil {
		return nil, err
	}
	if res.StatusCode() != http.StatusOK {
		return nil, unexpectedStatus(res.StatusCode(), res.String())
	}
	return out.Results, nil
}

// FindOAuthProviderByName is the exact-match helper over FindOAuthProviders.
func FindOAuthProviderByName(providers []OAuthProvider, name string) (*OAuthProvider, bool) {
	for i := range providers {
		if providers[i].Name == name {
			return &providers[i], true
		}
	}
	return nil, false
}

// CreateOAuthProvider creates an OAuth2 provider from a fully-built payload.
func (c *Client) CreateOAuthProvider(ctx context.Context, in OAuthProvider) (*OAuthProvider, error) {
	var out OAuthProvider
	res, err := c.R(ctx).SetBody(in).SetResult(&out).Post("/providers/oauth2/")
	if err != nil {
		return nil, err
	}
	if res.StatusCode() != http.StatusCreated {
		return nil, unexpectedStatus(res.StatusCode(), res.String())
	}
	return &out, nil
}

// PatchOAuthProvider patches an existing OAuth2 provider, keyed by in.PK.
func (c *Client) PatchOAuthProvider(ctx context.Context, in OAuthProvider) (*OAuthProvider, error) {
	var out OAuthProvider
	res, err := c.R(ctx).SetBody(in).SetResult(&out).Patch(pkPath("/providers/oauth2/", in.PK))
	if err != nil {
		return nil, err
	}
	if res.StatusCode() != http.StatusOK {
		return nil, unexpectedStatus(res.StatusCode(), res.String())
	}
	return &out, nil
}

// DeleteOAuthProvider deletes an OAuth2 provider by pk. 404 maps to NotFound.
func (c *Client) DeleteOAuthProvider(ctx context.Context, pk int) error {
	res, err := c.R(ctx).Delete(pkPath("/providers/oauth2/", pk))
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
