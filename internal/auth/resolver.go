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

// Package auth resolves a currently-valid bearer token for an IdP instance
// (C2), following the bootstrap handshake in spec.md §4.2: prefer the
// durable token mirrored into a Secret, fall back to the one-time seed
// token the IdP image boots with, and never trust a stale token without
// revalidating it.
package auth

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
	corev1 "k8s.io/api/core/v1"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	"k8s.io/apimachinery/pkg/types"
	"sigs.k8s.io/controller-runtime/pkg/client"

	"github.com/dany-dev/authentik-operator/internal/idpapi"
)

// SeedToken is the well-known literal the IdP image boots with via
// AUTHENTIK_BOOTSTRAP_TOKEN. It is valid only until the operator's own
// durable token has been created and mirrored into the Secret.
const SeedToken = "AUTHENTIK_TEMP_AUTH_TOKEN"

// NewClientFunc builds an idpapi.Client for (instance, namespace) using a
// candidate bearer token. Overridable in tests to point at an
// httptest.Server instead of a real cluster-DNS host.
type NewClientFunc func(instance, namespace, token string) *idpapi.Client

// Resolver implements C2: given a target IdP instance, return a
// currently-valid bearer token.
type Resolver struct {
	Client    client.Client
	NewClient NewClientFunc
}

// NewResolver builds a Resolver using idpapi.New to construct clients.
func NewResolver(c client.Client) *Resolver {
	return &Resolver{Client: c, NewClient: idpapi.New}
}

// TokenSecretName is the naming-scheme Secret holding the durable token
// (spec.md §6).
func TokenSecretName(instance string) string {
	return fmt.Sprintf("ak-%s-api-operatortoken", instance)
}

// Resolve implements the two-step algorithm of spec.md §4.2: try the
// Secret-held token first, then the seed token, failing only if neither
// validates.
func (r *Resolver) Resolve(ctx context.Context, namespace, instance string) (string, error) {
	if token, ok, err := r.secretToken(ctx, namespace, instance); err != nil {
		return "", err
	} else if ok {
		valid, err := r.validates(ctx, namespace, instance, token)
		if err != nil {
			return "", err
		}
		if valid {
			return token, nil
		}
	}

	valid, err := r.validates(ctx, namespace, instance, SeedToken)
	if err != nil {
		return "", err
	}
	if valid {
		return SeedToken, nil
	}

	return "", errors.New("no valid token")
}

// secretToken reads the `token` field of the durable-token Secret, if it
// exists. Absence is not an error — it just means skip to the seed.
func (r *Resolver) secretToken(ctx context.Context, namespace, instance string) (string, bool, error) {
	var secret corev1.Secret
	key := types.NamespacedName{Namespace: namespace, Name: TokenSecretName(instance)}
	if err := r.Client.Get(ctx, key, &secret); err != nil {
		if apierrors.IsNotFound(err) {
			return "", false, nil
		}
		return "", false, errors.Wrapf(err, "reading token secret %s", key)
	}

	token, ok := secret.Data["token"]
	if !ok || len(token) == 0 {
		return "", false, nil
	}
	return string(token), true, nil
}

// validates checks a candidate token against GET /users/me. A Forbidden
// response is "this token is invalid", not a transport failure.
func (r *Resolver) validates(ctx context.Context, namespace, instance, token string) (bool, error) {
	c := r.NewClient(instance, namespace, token)
	_, err := c.GetSelf(ctx)
	if err == nil {
		return true, nil
	}
	if idpapi.IsForbidden(err) {
		return false, nil
	}
	return false, err
}
