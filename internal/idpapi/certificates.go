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
	"strconv"
)

type findCertificatesResponse struct {
	Results []Certificate `json:"results"`
}

// FindCertificatesInput filters the certificate-keypair list query.
type FindCertificatesInput struct {
	Name string
	// HasKey, if non-nil, filters to keypairs that do (or do not) hold a
	// private key.
	HasKey *bool
}

// FindCertificates lists certificate keypairs matching the filter,
// page_size=1000 first-page only.
func (c *Client) FindCertificates(ctx context.Context, in FindCertificatesInput) ([]Certificate, error) {
	q := map[string]string{"page_size": "1000"}
	if in.Name != "" {
		q["name"] = in.Name
	}
	if in.HasKey != nil {
		q["has_key"] = strconv.FormatBool(*in.HasKey)
	}

	var out findCertificatesResponse
	res, err := c.R(ctx).SetQueryParams(q).SetResult(&out).Get("/crypto/certificatekeypairs/")
	if err != nil {
		return nil, err
	}
	if res.StatusCode() != http.StatusOK {
		return nil, unexpectedStatus(res.StatusCode(), res.String())
	}
	return out.Results, nil
}
