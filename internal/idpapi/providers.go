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

type findProvidersResponse struct {
	Results []Provider `json:"results"`
}

// FindProviders lists providers of any type matching a search term,
// page_size=1000 first-page only.
func (c *Client) FindProviders(ctx context.Context, search string) ([]Provider, error) {
	q := map[string]string{"page_size": "1000"}
	if search != "" {
		q["search"] = search
	}

	var out findProvidersResponse
	res, err := c.R(ctx).SetQueryParams(q).SetResult(&out).Get("/providers/all/")
	if err != nil {
		return nil, err
	}
	if res.StatusCode() != http.StatusOK {
		return nil, unexpectedStatus(res.StatusCode(), res.String())
	}
	return out.Results, nil
}

// FindProviderByName is a pure client-side helper (SPEC_FULL.md C1
// additions) that picks the exact-name match out of a FindProviders result,
// since the search endpoint itself is substring, not exact.
func FindProviderByName(providers []Provider, name string) (*Provider, bool) {
	for i := range providers {
		if providers[i].Name == name {
			return &providers[i], true
		}
	}
	return nil, false
}
