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

	"github.com/pkg/errors"
	kerrors "k8s.io/apimachinery/pkg/util/errors"
	ctrl "sigs.k8s.io/controller-runtime"
	"sigs.k8s.io/controller-runtime/pkg/client"
	"sigs.k8s.io/controller-runtime/pkg/controller"
	"sigs.k8s.io/controller-runtime/pkg/controller/controllerutil"
	"sigs.k8s.io/controller-runtime/pkg/reconcile"

	akv1 "github.com/dany-dev/authentik-operator/api/v1"
	"github.com/dany-dev/authentik-operator/internal/auth"
	"github.com/dany-dev/authentik-operator/internal/idpapi"
)

// AppReconciler drives C4's App pipeline (spec.md §4.4.5).
type AppReconciler struct {
	Client   client.Client
	Resolver *auth.Resolver
}

type appState struct {
	obj *akv1.AuthentikApplication
	idp *idpapi.Client
}

func (r *AppReconciler) SetupWithManager(mgr ctrl.Manager, opts controller.Options) error {
	return ctrl.NewControllerManagedBy(mgr).
		For(&akv1.AuthentikApplication{}).
		WithOptions(opts).
		Complete(r)
}

func (r *AppReconciler) Reconcile(ctx context.Context, req reconcile.Request) (ctrl.Result, error) {
	log := ctrl.LoggerFrom(ctx)

	var obj akv1.AuthentikApplication
	if err := r.Client.Get(ctx, req.NamespacedName, &obj); err != nil {
		return ctrl.Result{}, client.IgnoreNotFound(err)
	}

	before := obj.DeepCopy()
	st := &appState{obj: &obj}

	var reterr error
	defer func() {
		reterr = r.patchStatus(ctx, before, st.obj, reterr)
	}()

	if !obj.DeletionTimestamp.IsZero() {
		if !controllerutil.ContainsFinalizer(&obj, akv1.AppFinalizer) {
			return ctrl.Result{}, nil
		}
		if err := r.cleanup(ctx, st); err != nil {
			reterr = err
			return ctrl.Result{}, err
		}
		controllerutil.RemoveFinalizer(&obj, akv1.AppFinalizer)
		if err := r.Client.Update(ctx, &obj); err != nil {
			reterr = err
			return ctrl.Result{}, err
		}
		return ctrl.Result{}, nil
	}

	if !controllerutil.ContainsFinalizer(&obj, akv1.AppFinalizer) {
		controllerutil.AddFinalizer(&obj, akv1.AppFinalizer)
		if err := r.Client.Update(ctx, &obj); err != nil {
			reterr = err
			return ctrl.Result{}, err
		}
		return ctrl.Result{}, nil
	}

	requeueAfter, err := runPipeline(ctx, st, []stage[*appState]{
		{name: "ReconcileApplication", run: r.reconcileApplication},
	})
	reterr = err
	if err != nil {
		log.Error(err, "reconcile failed", "application", obj.Spec.Slug)
		return ctrl.Result{RequeueAfter: requeueError}, nil
	}
	return ctrl.Result{RequeueAfter: requeueAfter}, nil
}

func (r *AppReconciler) patchStatus(ctx context.Context, before, after *akv1.AuthentikApplication, reterr error) error {
	after.Status.ObservedGeneration = after.Generation
	setReady(&after.Status.Conditions, after.Generation, reterr)
	if err := patchStatus(ctx, r.Client, before, after); err != nil {
		return kerrors.NewAggregate([]error{reterr, err})
	}
	return reterr
}

func (r *AppReconciler) idpClient(ctx context.Context, st *appState) (*idpapi.Client, error) {
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

// reconcileApplication implements spec.md §4.4.5: resolve spec.provider by
// exact name (I5, must resolve to exactly one live provider), then
// get-or-create-or-patch the application keyed by slug.
func (r *AppReconciler) reconcileApplication(ctx context.Context, st *appState) (stageResult, error) {
	idp, err := r.idpClient(ctx, st)
	if err != nil {
		return stageResult{}, err
	}
	spec := st.obj.Spec

	providers, err := idp.FindProviders(ctx, spec.Provider)
	if err != nil {
		return stageResult{}, errors.Wrap(err, "finding provider")
	}
	provider, found := idpapi.FindProviderByName(providers, spec.Provider)
	if !found {
		return stageResult{}, errors.Errorf("provider %q not found", spec.Provider)
	}

	desired := idpapi.Application{
		Name:             spec.Name,
		Slug:             spec.Slug,
		Provider:         &provider.PK,
		OpenInNewTab:     spec.UI.OpenInNewTab,
		MetaLaunchURL:    spec.UI.LaunchURL,
		MetaDescription:  spec.UI.Description,
		MetaPublisher:    spec.UI.Publisher,
		PolicyEngineMode: string(spec.PolicyMode),
		Group:            spec.Group,
	}

	current, err := idp.GetApplication(ctx, spec.Slug)
	if err != nil {
		return stageResult{}, errors.Wrap(err, "getting application")
	}
	if current == nil {
		if _, err := idp.CreateApplication(ctx, desired); err != nil && !idpapi.IsAlreadyExists(err) {
			return stageResult{}, errors.Wrap(err, "creating application")
		}
		return stageResult{}, nil
	}

	if applicationEqual(*current, desired) {
		return stageResult{}, nil
	}
	if _, err := idp.PatchApplication(ctx, desired); err != nil {
		return stageResult{}, errors.Wrap(err, "patching application")
	}
	return stageResult{}, nil
}

func applicationEqual(a, b idpapi.Application) bool {
	aProvider, bProvider := -1, -1
	if a.Provider != nil {
		aProvider = *a.Provider
	}
	if b.Provider != nil {
		bProvider = *b.Provider
	}
	return a.Name == b.Name &&
		a.Slug == b.Slug &&
		aProvider == bProvider &&
		a.OpenInNewTab == b.OpenInNewTab &&
		a.MetaLaunchURL == b.MetaLaunchURL &&
		a.MetaDescription == b.MetaDescription &&
		a.MetaPublisher == b.MetaPublisher &&
		a.PolicyEngineMode == b.PolicyEngineMode &&
		a.Group == b.Group
}

// cleanup implements spec.md §4.4.5's teardown, deleting by spec.Slug
// (DESIGN.md resolves the original implementation's slug/name mismatch).
func (r *AppReconciler) cleanup(ctx context.Context, st *appState) error {
	idp, err := r.idpClient(ctx, st)
	if err != nil {
		return err
	}
	if err := idp.DeleteApplication(ctx, st.obj.Spec.Slug); err != nil && !idpapi.IsNotFound(err) {
		return errors.Wrap(err, "deleting application")
	}
	return nil
}
