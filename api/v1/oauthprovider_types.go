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

package v1

import (
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

// OAuthProviderFinalizer is ensured present before the OAuthProvider
// reconcile pipeline runs.
const OAuthProviderFinalizer = "authentikoauthprovider/" + FinalizerSuffix

// OAuthClientType mirrors the IdP's own OAuth2 client type enum.
// +kubebuilder:validation:Enum=confidential;public
type OAuthClientType string

const (
	OAuthClientConfidential OAuthClientType = "confidential"
	OAuthClientPublic       OAuthClientType = "public"
)

// OAuthSubjectMode mirrors the IdP's subject-identifier derivation modes.
// +kubebuilder:validation:Enum=hashed_user_id;user_username;user_email;user_upn
type OAuthSubjectMode string

// OAuthIssuerMode mirrors the IdP's issuer-URL derivation modes.
// +kubebuilder:validation:Enum=per_provider;global
type OAuthIssuerMode string

// AuthentikOAuthProviderSpec is the desired state of an OAuthProvider.
type AuthentikOAuthProviderSpec struct {
	// AuthentikInstance names the owning IdPInstance in this namespace.
	AuthentikInstance string `json:"authentikInstance"`

	// Name identifies the provider in the IdP (exact-match lookup key).
	Name string `json:"name"`

	// Flow names the authorization flow by slug.
	Flow string `json:"flow"`

	// ClientType selects confidential vs. public OAuth2 clients.
	ClientType OAuthClientType `json:"clientType"`

	// ClientID is generated on first reconcile if absent; never rewritten
	// once present (I6).
	// +optional
	ClientID string `json:"clientId,omitempty"`

	// ClientSecret is generated on first reconcile if absent; never
	// rewritten once present (I6). Ignored for public clients.
	// +optional
	ClientSecret string `json:"clientSecret,omitempty"`

	// Scopes names ScopeMapping entries by exact name; each must resolve.
	Scopes []string `json:"scopes"`

	// RedirectURIs is the allowed redirect URI list.
	RedirectURIs []string `json:"redirectUris"`

	// AccessCodeValidity is the IdP's duration-string format.
	// +kubebuilder:default="minutes=1"
	// +optional
	AccessCodeValidity string `json:"accessCodeValidity,omitempty"`

	// TokenValidity is the IdP's duration-string format.
	// +kubebuilder:default="days=30"
	// +optional
	TokenValidity string `json:"tokenValidity,omitempty"`

	// ClaimsInToken controls whether user claims are embedded in the token.
	// +kubebuilder:default=true
	// +optional
	ClaimsInToken bool `json:"claimsInToken,omitempty"`

	// SigningKey names a Certificate keypair by exact name; resolved to a
	// pk at reconcile time. Required for confidential flows that sign
	// tokens; optional otherwise.
	// +optional
	SigningKey string `json:"signingKey,omitempty"`

	// SubjectMode selects subject-identifier derivation.
	// +kubebuilder:default="hashed_user_id"
	// +optional
	SubjectMode OAuthSubjectMode `json:"subjectMode,omitempty"`

	// IssuerMode selects issuer-URL derivation.
	// +kubebuilder:default="per_provider"
	// +optional
	IssuerMode OAuthIssuerMode `json:"issuerMode,omitempty"`
}

// AuthentikOAuthProviderStatus is the observed state of an OAuthProvider.
type AuthentikOAuthProviderStatus struct {
	CommonStatus `json:",inline"`
}

// +kubebuilder:object:root=true
// +kubebuilder:subresource:status

// AuthentikOAuthProvider is the OAuthProvider custom resource.
type AuthentikOAuthProvider struct {
	metav1.TypeMeta   `json:",inline"`
	metav1.ObjectMeta `json:"metadata,omitempty"`

	Spec   AuthentikOAuthProviderSpec   `json:"spec,omitempty"`
	Status AuthentikOAuthProviderStatus `json:"status,omitempty"`
}

// +kubebuilder:object:root=true

// AuthentikOAuthProviderList contains a list of AuthentikOAuthProvider.
type AuthentikOAuthProviderList struct {
	metav1.TypeMeta `json:",inline"`
	metav1.ListMeta `json:"metadata,omitempty"`
	Items           []AuthentikOAuthProvider `json:"items"`
}
