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

// Package idpapi is a typed facade over the IdP's REST API, reachable at
// http://authentik-<instance>.<namespace>/api/v3/.
package idpapi

import (
	"errors"
	"fmt"
)

// APIError is returned by every operation in this package for any
// non-transport failure. Callers discriminate with the Is* helpers rather
// than matching on StatusCode directly, since each operation only maps the
// status codes its own endpoint actually returns.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("unexpected status code %d: %s", e.StatusCode, e.Body)
}

// NotFoundError means the endpoint reported the resource does not exist.
type NotFoundError struct{ *APIError }

// AlreadyExistsError means the endpoint refused to create a resource that
// already exists under the same natural key.
type AlreadyExistsError struct{ *APIError }

// ForbiddenError means the bearer token was rejected.
type ForbiddenError struct{ *APIError }

func newNotFound(code int, body string) error {
	return &NotFoundError{&APIError{StatusCode: code, Body: body}}
}

func newAlreadyExists(code int, body string) error {
	return &AlreadyExistsError{&APIError{StatusCode: code, Body: body}}
}

func newForbidden(code int, body string) error {
	return &ForbiddenError{&APIError{StatusCode: code, Body: body}}
}

// IsNotFound reports whether err is (or wraps) a NotFoundError.
func IsNotFound(err error) bool {
	var e *NotFoundError
	return errors.As(err, &e)
}

// IsAlreadyExists reports whether err is (or wraps) an AlreadyExistsError.
func IsAlreadyExists(err error) bool {
	var e *AlreadyExistsError
	return errors.As(err, &e)
}

// IsForbidden reports whether err is (or wraps) a ForbiddenError.
func IsForbidden(err error) bool {
	var e *ForbiddenError
	return errors.As(err, &e)
}

// unexpectedStatus builds the generic error for a status code an operation
// did not explicitly map.
func unexpectedStatus(code int, body string) error {
	return &APIError{StatusCode: code, Body: body}
}
