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

package controller

import (
	"crypto/rand"
	"math/big"

	"github.com/pkg/errors"
)

// alphanumeric is the character set every generated credential is drawn
// from (spec.md §4.4.1/§4.4.3/§4.4.4): secret keys, ids, passwords and
// client secrets are all plain alphanumeric strings, never containing
// characters that would need escaping in a shell env var or JSON string.
const alphanumeric = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// secretKeyLength is the IdP's Django-style secret key length.
const secretKeyLength = 128

// passwordLength is the generated-password/client-id length.
const passwordLength = 128

// clientSecretLength is the generated OAuth2 client secret length.
const clientSecretLength = 255

// randomString uses crypto/rand, not math/rand or k8s.io/utils/rand: every
// string this package generates ends up as a live credential (secret key,
// account password, OAuth2 client secret), so it must be unguessable.
func randomString(length int) (string, error) {
	out := make([]byte, length)
	max := big.NewInt(int64(len(alphanumeric)))
	for i := range out {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", errors.Wrap(err, "generating random string")
		}
		out[i] = alphanumeric[n.Int64()]
	}
	return string(out), nil
}
