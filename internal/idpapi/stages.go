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

type findStagesResponse struct {
	Results []Stage `json:"results"`
}

// FindStages lists stages matching name, page_size=1000 first-page only.
func (c *Client) FindStages(ctx context.Context, name string) ([]Stage, error) {
	q := map[string]string{"page_size": "1000"}
	if name != "" {
		q["name"] = name
	}

	var out findStagesResponse
	res, err := c.R(ctx).SetQueryParams(q).SetResult(&out).Get("/stages/all/")
	if err != nil {
		return nil, err
	}
	if res.StatusCode() != http.StatusOK {
		return nil, unexpectedStatus(res.StatusCode(), res.String())
	}
	return out.Results, nil
}

// DeleteStage deletes a stage by pk. 404 maps to NotFound.
func (c *Client) DeleteStage(ctx context.Context, pk string) error {
	res, err := c.R(ctx).Delete(idPath("/stages/", pk))
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
