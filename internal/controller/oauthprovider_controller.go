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
	"context"
	"strings"

	"github.com/pkg/errors"
	corev1 "k8s.io/api/core/v1"
	kerrors "k8s.io/apimachinery/pkg/util/errors"
	"k8s.io/client-go/util/retry"
	ctrl "sigs.k8s.io/controller-runtime"
	"sigs.k8s.io/controller-runtime/pkg/client"
	"sigs.k8s.io/controller-runtime/pkg/controller"
	"sigs.k8s.io/controller-runtime/pkg/controller/controllerutil"
	"sigs.k8s.io/controller-runtime/pkg/reconcile"

	akv1 "github.com/dany-dev/authentik-operator/api/v1"
	"github.com/dany-dev/authentik-operator/internal/auth"
	"github.com/dany-dev/authentik-operator/internal/idpapi"
	"github.com/dany-dev/authentik-operator/internal/manifests"
)

// OAuthProviderReconciler drives C4's OAuthProvider pipeline (spec.md §4.4.4).
type OAuthProviderReconciler struct {
	Client   client.Client
	Resolver *auth.Resolver
}

type oauthProviderState struct {
	obj   *akv1.AuthentikOAuthProvider
	owner manifests.OwnerRef
	idp   *idpapi.Client
	live  *idpapi.OAuthProvider
}

func (r *OAuthProviderReconciler) SetupWithManager(mgr ctrl.Manager, opts controller.Options) error {
	return ctrl.NewControllerManagedBy(mgr).
		For(&akv1.AuthentikOAuthProvider{}).
		Owns(&corev1.Secret{}).
		WithOptions(opts).
		Complete(r)
}

func (r *OAuthProviderReconciler) Reconcile(ctx context.Context, req reconcile.Request) (ctrl.Result, error) {
	log := ctrl.LoggerFrom(ctx)

	var obj akv1.AuthentikOAuthProvider
	if err := r.Client.Get(ctx, req.NamespacedName, &obj); err != nil {
		return ctrl.Result{}, client.IgnoreNotFound(err)
	}

	before := obj.DeepCopy()
	st := &oauthProviderState{
		obj: &obj,
		owner: manifests.OwnerRef{
			APIVersion: akv1.GroupVersion.String(),
			Kind:       "AuthentikOAuthProvider",
			Name:       obj.Name,
			UID:        string(obj.UID),
		},
	}

	var reterr error
	defer func() {
		reterr = r.patchStatus(ctx, before, st.obj, reterr)
	}()

	if !obj.DeletionTimestamp.IsZero() {
		if !controllerutil.ContainsFinalizer(&obj, akv1.OAuthProviderFinalizer) {
			return ctrl.Result{}, nil
		}
		if err := r.cleanup(ctx, st); err != nil {
			reterr = err
			return ctrl.Result{}, err
		}
		controllerutil.RemoveFinalizer(&obj, akv1.OAuthProviderFinalizer)
		if err := r.Client.Update(ctx, &obj); err != nil {
			reterr = err
			return ctrl.Result{}, err
		}
		return ctrl.Result{}, nil
	}

	if !controllerutil.ContainsFinalizer(&obj, akv1.OAuthProviderFinalizer) {
		controllerutil.AddFinalizer(&obj, akv1.OAuthProviderFinalizer)
		if err := r.Client.Update(ctx, &obj); err != nil {
			reterr = err
			return ctrl.Result{}, err
		}
		return ctrl.Result{}, nil
	}

	requeueAfter, err := runPipeline(ctx, st, []stage[*oauthProviderState]{
		{name: "AutofillCredentials", run: r.autofillCredentials},
		{name: "ReconcileProvider", run: r.reconcileProvider},
		{name: "CredentialsSecret", run: r.credentialsSecret},
	})
	reterr = err
	if err != nil {
		log.Error(err, "reconcile failed", "provider", obj.Spec.Name)
		return ctrl.Result{RequeueAfter: requeueError}, nil
	}
	return ctrl.Result{RequeueAfter: requeueAfter}, nil
}

func (r *OAuthProviderReconciler) patchStatus(ctx context.Context, before, after *akv1.AuthentikOAuthProvider, reterr error) error {
	after.Status.ObservedGeneration = after.Generation
	setReady(&after.Status.Conditions, after.Generation, reterr)
	if err := patchStatus(ctx, r.Client, before, after); err != nil {
		return kerrors.NewAggregate([]error{reterr, err})
	}
	return reterr
}

func (r *OAuthProviderReconciler) idpClient(ctx context.Context, st *oauthProviderState) (*idpapi.Client, error) {
	if st.idp != nil {
		return st.idp, nil
	}
	token, err := r.Resolver.Resolve(ctx, st.obj.Namespace, st.obj.Spec.AuthentikInstance)
	if err != nil {
		return nil, errors.Wrap(err, "resolving bearer token")
	}
	st.idp = idpapi.New(st.obj.Spec.AuthentikInstance, st.obj.Namespace, token)
	return st.idp, nil
}

// autofillCredentials implements spec.md §4.4.4 stage 1 (I6): generate
// clientId/clientSecret exactly once, then stop and re-observe. The persist
// step re-fetches the object under retry.RetryOnConflict so a benign
// resource-version race with another writer doesn't fail the whole stage.
func (r *OAuthProviderReconciler) autofillCredentials(ctx context.Context, st *oauthProviderState) (stageResult, error) {
	clientID := st.obj.Spec.ClientID
	needID := clientID == ""
	if needID {
		id, err := randomString(passwordLength)
		if err != nil {
			return stageResult{}, errors.Wrap(err, "generating client id")
		}
		clientID = id
	}

	clientSecret := st.obj.Spec.ClientSecret
	needSecret := st.obj.Spec.ClientType == akv1.OAuthClientConfidential && clientSecret == ""
	if needSecret {
		secret, err := randomString(clientSecretLength)
		if err != nil {
			return stageResult{}, errors.Wrap(err, "generating client secret")
		}
		clientSecret = secret
	}

	if !needID && !needSecret {
		return stageResult{}, nil
	}

	key := client.ObjectKeyFromObject(st.obj)
	err := retry.RetryOnConflict(retry.DefaultRetry, func() error {
		if err := r.Client.Get(ctx, key, st.obj); err != nil {
			return err
		}
		if needID {
			st.obj.Spec.ClientID = clientID
		}
		if needSecret {
			st.obj.Spec.ClientSecret = clientSecret
		}
		return r.Client.Update(ctx, st.obj)
	})
	if err != nil {
		return stageResult{}, errors.Wrap(err, "persisting client credentials")
	}
	return stageResult{requeueAfter: requeueMutated}, nil
}

// reconcileProvider implements spec.md §4.4.4 stages 2-3: resolve foreign
// references by exact name, then find-or-create-or-patch the live provider.
func (r *OAuthProviderReconciler) reconcileProvider(ctx context.Context, st *oauthProviderState) (stageResult, error) {
	idp, err := r.idpClient(ctx, st)
	if err != nil {
		return stageResult{}, err
	}
	spec := st.obj.Spec

	flow, err := idp.GetFlow(ctx, spec.Flow)
	if err != nil {
		return stageResult{}, errors.Wrapf(err, "resolving flow %q", spec.Flow)
	}

	mappings := make([]string, 0, len(spec.Scopes))
	for _, name := range spec.Scopes {
		found, err := idp.FindScopeMappings(ctx, name)
		if err != nil {
			return stageResult{}, errors.Wrapf(err, "finding scope mapping %q", name)
		}
		ok := false
		for _, m := range found {
			if m.Name == name {
				mappings = append(mappings, m.PK)
				ok = true
				break
			}
		}
		if !ok {
			return stageResult{}, errors.Errorf("scope mapping %q not found", name)
		}
	}

	var signingKey string
	if spec.SigningKey != "" {
		certs, err := idp.FindCertificates(ctx, idpapi.FindCertificatesInput{Name: spec.SigningKey})
		if err != nil {
			return stageResult{}, errors.Wrapf(err, "resolving signing key %q", spec.SigningKey)
		}
		ok := false
		for _, c := range certs {
			if c.Name == spec.SigningKey {
				signingKey = c.PK
				ok = true
				break
			}
		}
		if !ok {
			return stageResult{}, errors.Errorf("signing key %q not found", spec.SigningKey)
		}
	}

	desired := idpapi.OAuthProvider{
		Name:                   spec.Name,
		AuthorizationFlow:      flow.PK,
		PropertyMappings:       mappings,
		ClientType:             string(spec.ClientType),
		ClientID:               spec.ClientID,
		ClientSecret:           spec.ClientSecret,
		IncludeClaimsInIDToken: spec.ClaimsInToken,
		RedirectURIs:           strings.Join(spec.RedirectURIs, "\n"),
		AccessCodeValidity:     spec.AccessCodeValidity,
		TokenValidity:          spec.TokenValidity,
		SubMode:                string(spec.SubjectMode),
		IssuerMode:             string(spec.IssuerMode),
		SigningKey:             signingKey,
	}

	existing, err := idp.FindOAuthProviders(ctx, spec.Name)
	if err != nil {
		return stageResult{}, errors.Wrap(err, "finding oauth provider")
	}
	current, found := idpapi.FindOAuthProviderByName(existing, spec.Name)
	if !found {
		created, err := idp.CreateOAuthProvider(ctx, desired)
		if err != nil && !idpapi.IsAlreadyExists(err) {
			return stageResult{}, errors.Wrap(err, "creating oauth provider")
		}
		st.live = created
		return stageResult{}, nil
	}

	desired.PK = current.PK
	// Keep current's ordered list when the resolved set hasn't changed, so
	// an unrelated patch doesn't reorder it; otherwise replace it outright —
	// property_mappings tracks spec.scopes exactly, including removals.
	if setsEqual(current.PropertyMappings, mappings) {
		desired.PropertyMappings = current.PropertyMappings
	} else {
		desired.PropertyMappings = mappings
	}

	if providerEqual(*current, desired) {
		st.live = current
		return stageResult{}, nil
	}

	patched, err := idp.PatchOAuthProvider(ctx, desired)
	if err != nil {
		return stageResult{}, errors.Wrap(err, "patching oauth provider")
	}
	st.live = patched
	return stageResult{}, nil
}

// credentialsSecret implements spec.md §4.4.4 stage 4: project the live
// provider's values back to the cluster, not the custom resource's own
// requested values: clientType, clientId, clientSecret and redirectUris
// are taken from the provider the IdP returned.
func (r *OAuthProviderReconciler) credentialsSecret(ctx context.Context, st *oauthProviderState) (stageResult, error) {
	if st.live == nil {
		return stageResult{}, nil
	}

	var redirectURIs []string
	if st.live.RedirectURIs != "" {
		redirectURIs = strings.Split(st.live.RedirectURIs, "\n")
	}

	secret := manifests.OAuthSecret(
		st.obj.Spec.AuthentikInstance, st.obj.Name, st.obj.Namespace, "",
		st.live.ClientType, st.live.ClientID, st.live.ClientSecret, redirectURIs, st.owner,
	)
	if err := apply(ctx, r.Client, secret); err != nil {
		return stageResult{}, err
	}
	return stageResult{}, nil
}

// cleanup implements spec.md §4.4.4's teardown, tolerating the provider
// already being gone.
func (r *OAuthProviderReconciler) cleanup(ctx context.Context, st *oauthProviderState) error {
	idp, err := r.idpClient(ctx, st)
	if err != nil {
		return err
	}

	existing, err := idp.FindOAuthProviders(ctx, st.obj.Spec.Name)
	if err != nil {
		return errors.Wrap(err, "finding oauth provider")
	}
	current, found := idpapi.FindOAuthProviderByName(existing, st.obj.Spec.Name)
	if !found {
		return nil
	}
	if err := idp.DeleteOAuthProvider(ctx, current.PK); err != nil && !idpapi.IsNotFound(err) {
		return errors.Wrap(err, "deleting oauth provider")
	}
	return nil
}

// setsEqual reports whether a and b contain the same elements, ignoring
// order (spec.md §4.4.4's property-mapping comparison rule).
func setsEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	seen := make(map[string]bool, len(a))
	for _, v := range a {
		seen[v] = true
	}
	for _, v := range b {
		if !seen[v] {
			return false
		}
	}
	return true
}

// providerEqual compares the fields the operator manages, ignoring PK
// (desired's PK is only set to address the patch, never compared).
func providerEqual(a, b idpapi.OAuthProvider) bool {
	if !setsEqual(a.PropertyMappings, b.PropertyMappings) {
		return false
	}
	return a.Name == b.Name &&
		a.AuthorizationFlow == b.AuthorizationFlow &&
		a.ClientType == b.ClientType &&
		a.ClientID == b.ClientID &&
		a.ClientSecret == b.ClientSecret &&
		a.IncludeClaimsInIDToken == b.IncludeClaimsInIDToken &&
		a.RedirectURIs == b.RedirectURIs &&
		a.AccessCodeValidity == b.AccessCodeValidity &&
		a.TokenValidity == b.TokenValidity &&
		a.SubMode == b.SubMode &&
		a.IssuerMode == b.IssuerMode &&
		a.SigningKey == b.SigningKey
}
