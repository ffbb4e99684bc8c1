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

// User is a `core/users` record.
type User struct {
	PK          int    `json:"pk"`
	UID         string `json:"uid,omitempty"`
	Name        string `json:"name,omitempty"`
	Username    string `json:"username"`
	Path        string `json:"path,omitempty"`
	Email       string `json:"email,omitempty"`
	Avatar      string `json:"avatar,omitempty"`
	IsActive    bool   `json:"is_active,omitempty"`
	IsSuperuser bool   `json:"is_superuser,omitempty"`
	Groups      []string `json:"groups,omitempty"`
}

// Group is a `core/groups` record.
type Group struct {
	PK          string `json:"pk,omitempty"`
	Name        string `json:"name"`
	IsSuperuser bool   `json:"is_superuser"`
	Parent      string `json:"parent,omitempty"`
	Users       []int  `json:"users,omitempty"`
}

// Token is a `core/tokens` record.
type Token struct {
	PK          string `json:"pk,omitempty"`
	Identifier  string `json:"identifier"`
	Intent      string `json:"intent"`
	User        int    `json:"user"`
	Description string `json:"description,omitempty"`
	Expiring    bool   `json:"expiring"`
}

// Stage is a `stages/all` record.
type Stage struct {
	PK        string `json:"pk"`
	Name      string `json:"name"`
	Component string `json:"component,omitempty"`
}

// Flow is a `flows/instances` record.
type Flow struct {
	PK         string `json:"pk"`
	Name       string `json:"name"`
	Slug       string `json:"slug"`
	Title      string `json:"title,omitempty"`
	Background string `json:"background,omitempty"`
}

// ScopeMapping is a `propertymappings/scope` record.
type ScopeMapping struct {
	PK          string `json:"pk"`
	Name        string `json:"name"`
	Expression  string `json:"expression,omitempty"`
	Component   string `json:"component,omitempty"`
	ScopeName   string `json:"scope_name,omitempty"`
	Description string `json:"description,omitempty"`
}

// Certificate is a `crypto/certificatekeypairs` record.
type Certificate struct {
	PK         string `json:"pk"`
	Name       string `json:"name"`
	CertExpiry string `json:"cert_expiry,omitempty"`
}

// Provider is a `providers/all` record — the minimal shape shared by every
// provider type, used to resolve an App's `spec.provider` by name.
type Provider struct {
	PK                int      `json:"pk"`
	Name              string   `json:"name"`
	AuthorizationFlow string   `json:"authorization_flow,omitempty"`
	PropertyMappings  []string `json:"property_mappings,omitempty"`
	Component         string   `json:"component,omitempty"`
}

// OAuthProvider is a `providers/oauth2` record. Every field round-trips
// through both the find-response decode and the create/patch encode, so
// OAuthProviderReconciler compares two instances of this same type by their
// JSON serialization to decide whether a patch is needed.
type OAuthProvider struct {
	PK                     int      `json:"pk"`
	Name                   string   `json:"name"`
	AuthorizationFlow      string   `json:"authorization_flow"`
	PropertyMappings       []string `json:"property_mappings"`
	ClientType             string   `json:"client_type,omitempty"`
	ClientID               string   `json:"client_id,omitempty"`
	ClientSecret           string   `json:"client_secret,omitempty"`
	IncludeClaimsInIDToken bool     `json:"include_claims_in_id_token"`
	RedirectURIs           string   `json:"redirect_uris,omitempty"`
	AccessCodeValidity     string   `json:"access_code_validity,omitempty"`
	TokenValidity          string   `json:"token_validity,omitempty"`
	SubMode                string   `json:"sub_mode,omitempty"`
	IssuerMode             string   `json:"issuer_mode,omitempty"`
	SigningKey             string   `json:"signing_key,omitempty"`
}

// Application is a `core/applications` record, keyed by Slug rather than a
// numeric pk (the IdP's own applications endpoint is slug-addressed).
// ProviderObj never travels in a request body.
type Application struct {
	Name             string    `json:"name"`
	Slug             string    `json:"slug"`
	Provider         *int      `json:"provider"`
	ProviderObj      *Provider `json:"-"`
	OpenInNewTab     bool      `json:"open_in_new_tab"`
	MetaLaunchURL    string    `json:"meta_launch_url,omitempty"`
	MetaDescription  string    `json:"meta_description,omitempty"`
	MetaPublisher    string    `json:"meta_publisher,omitempty"`
	PolicyEngineMode string    `json:"policy_engine_mode,omitempty"`
	Group            string    `json:"group,omitempty"`
}
