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

package manifests

import (
	"fmt"
	"strings"

	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

// TokenSecretKey is the data key the durable API token is stored under.
const TokenSecretKey = "token"

// TokenSecret builds the Secret mirroring the operator's durable IdP token,
// named per internal/auth.TokenSecretName — the operator's own persisted
// half of the bootstrap handshake (spec.md §4.2).
func TokenSecret(name, namespace, instance, version, token string, owner OwnerRef) *corev1.Secret {
	return &corev1.Secret{
		TypeMeta: metav1.TypeMeta{APIVersion: "v1", Kind: "Secret"},
		ObjectMeta: metav1.ObjectMeta{
			Name:            name,
			Namespace:       namespace,
			Labels:          Labels(instance, version, string(RoleServer)),
			OwnerReferences: []metav1.OwnerReference{owner.toMeta()},
		},
		Type: corev1.SecretTypeOpaque,
		Data: map[string][]byte{
			TokenSecretKey: []byte(token),
		},
	}
}

// UserSecretName is the naming-scheme Secret holding a User's provisioned
// credentials: ak-<instance>-user-<cr> (spec.md §6).
func UserSecretName(instance, crName string) string {
	return fmt.Sprintf("ak-%s-user-%s", instance, crName)
}

// UserSecret builds the Secret carrying the provisioned account credentials
// for a User custom resource (spec.md §4.4.3 password sub-stage). Its
// existence is itself the "already provisioned" marker the password
// sub-stage checks for — password rotation is deliberately unsupported
// (spec.md §9).
func UserSecret(instance, crName, namespace, version, username, email, password string, owner OwnerRef) *corev1.Secret {
	return &corev1.Secret{
		TypeMeta: metav1.TypeMeta{APIVersion: "v1", Kind: "Secret"},
		ObjectMeta: metav1.ObjectMeta{
			Name:            UserSecretName(instance, crName),
			Namespace:       namespace,
			Labels:          Labels(instance, version, "user"),
			OwnerReferences: []metav1.OwnerReference{owner.toMeta()},
		},
		Type: corev1.SecretTypeOpaque,
		StringData: map[string]string{
			"username": username,
			"email":    email,
			"password": password,
		},
	}
}

// OAuthSecretName is the naming-scheme Secret projecting an OAuthProvider's
// live client credentials: ak-<instance>-oauth-<cr> (spec.md §6).
func OAuthSecretName(instance, crName string) string {
	return fmt.Sprintf("ak-%s-oauth-%s", instance, crName)
}

// OAuthSecret builds the Secret mirroring an OAuth2 provider's live values
// back to the cluster (spec.md §4.4.4 stage 4). The IdP is the source of
// truth for these fields, not the custom resource's own spec.
func OAuthSecret(instance, crName, namespace, version, clientType, clientID, clientSecret string, redirectURIs []string, owner OwnerRef) *corev1.Secret {
	return &corev1.Secret{
		TypeMeta: metav1.TypeMeta{APIVersion: "v1", Kind: "Secret"},
		ObjectMeta: metav1.ObjectMeta{
			Name:            OAuthSecretName(instance, crName),
			Namespace:       namespace,
			Labels:          Labels(instance, version, "oauth"),
			OwnerReferences: []metav1.OwnerReference{owner.toMeta()},
		},
		Type: corev1.SecretTypeOpaque,
		StringData: map[string]string{
			"clientType":   clientType,
			"clientId":     clientID,
			"clientSecret": clientSecret,
			"redirectUris": strings.Join(redirectURIs, ","),
		},
	}
}
