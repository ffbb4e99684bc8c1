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

// GroupReconciler drives C4's Group pipeline (spec.md §4.4.2).
type GroupReconciler struct {
	Client   client.Client
	Resolver *auth.Resolver
}

type groupState struct {
	obj *akv1.AuthentikGroup
	idp *idpapi.Client
}

func (r *GroupReconciler) SetupWithManager(mgr ctrl.Manager, opts controller.Options) error {
	return ctrl.NewControllerManagedBy(mgr).
		For(&akv1.AuthentikGroup{}).
		WithOptions(opts).
		Complete(r)
}

func (r *GroupReconciler) Reconcile(ctx context.Context, req reconcile.Request) (ctrl.Result, error) {
	log := ctrl.LoggerFrom(ctx)

	var obj akv1.AuthentikGroup
	if err := r.Client.Get(ctx, req.NamespacedName, &obj); err != nil {
		return ctrl.Result{}, client.IgnoreNotFound(err)
	}

	before := obj.DeepCopy()
	st := &groupState{obj: &obj}

	var reterr error
	defer func() {
		reterr = r.patchStatus(ctx, before, st.obj, reterr)
	}()

	if !obj.DeletionTimestamp.IsZero() {
		if !controllerutil.ContainsFinalizer(&obj, akv1.GroupFinalizer) {
			return ctrl.Result{}, nil
		}
		if err := r.cleanup(ctx, st); err != nil {
			reterr = err
			return ctrl.Result{}, err
		}
		controllerutil.RemoveFinalizer(&obj, akv1.GroupFinalizer)
		if err := r.Client.Update(ctx, &obj); err != nil {
			reterr = err
			return ctrl.Result{}, err
		}
		return ctrl.Result{}, nil
	}

	if !controllerutil.ContainsFinalizer(&obj, akv1.GroupFinalizer) {
		controllerutil.AddFinalizer(&obj, akv1.GroupFinalizer)
		if err := r.Client.Update(ctx, &obj); err != nil {
			reterr = err
			return ctrl.Result{}, err
		}
		return ctrl.Result{}, nil
	}

	requeueAfter, err := runPipeline(ctx, st, []stage[*groupState]{
		{name: "ResolveGroup", run: r.reconcileGroup},
	})
	reterr = err
	if err != nil {
		log.Error(err, "reconcile failed", "group", obj.Spec.Name)
		return ctrl.Result{RequeueAfter: requeueError}, nil
	}
	return ctrl.Result{RequeueAfter: requeueAfter}, nil
}

func (r *GroupReconciler) patchStatus(ctx context.Context, before, after *akv1.AuthentikGroup, reterr error) error {
	after.Status.ObservedGeneration = after.Generation
	setReady(&after.Status.Conditions, after.Generation, reterr)
	if err := patchStatus(ctx, r.Client, before, after); err != nil {
		return kerrors.NewAggregate([]error{reterr, err})
	}
	return reterr
}

func (r *GroupReconciler) idpClient(ctx context.Context, st *groupState) (*idpapi.Client, error) {
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

// reconcileGroup implements spec.md §4.4.2: find by exact name, resolve an
// optional parent by name, create if absent, tolerating a concurrent
// creation (AlreadyExists).
func (r *GroupReconciler) reconcileGroup(ctx context.Context, st *groupState) (stageResult, error) {
	idp, err := r.idpClient(ctx, st)
	if err != nil {
		return stageResult{}, err
	}

	spec := st.obj.Spec
	groups, err := idp.FindGroups(ctx, spec.Name)
	if err != nil {
		return stageResult{}, errors.Wrap(err, "finding group")
	}
	for _, g := range groups {
		if g.Name == spec.Name {
			return stageResult{}, nil
		}
	}

	var parentPK string
	if spec.Parent != "" {
		parents, err := idp.FindGroups(ctx, spec.Parent)
		if err != nil {
			return stageResult{}, errors.Wrap(err, "finding parent group")
		}
		found := false
		for _, p := range parents {
			if p.Name == spec.Parent {
				parentPK = p.PK
				found = true
				break
			}
		}
		if !found {
			return stageResult{}, errors.Errorf("parent group %q not found", spec.Parent)
		}
	}

	_, err = idp.CreateGroup(ctx, idpapi.CreateGroupInput{
		Name:        spec.Name,
		IsSuperuser: spec.Superuser,
		Parent:      parentPK,
	})
	if err != nil && !idpapi.IsAlreadyExists(err) {
		return stageResult{}, errors.Wrap(err, "creating group")
	}
	return stageResult{}, nil
}

// cleanup implements spec.md §4.4.2's delete-by-name teardown, tolerating
// the group already being gone.
func (r *GroupReconciler) cleanup(ctx context.Context, st *groupState) error {
	idp, err := r.idpClient(ctx, st)
	if err != nil {
		return err
	}

	groups, err := idp.FindGroups(ctx, st.obj.Spec.Name)
	if err != nil {
		return errors.Wrap(err, "finding group")
	}
	for _, g := range groups {
		if g.Name != st.obj.Spec.Name {
			continue
		}
		if err := idp.DeleteGroup(ctx, g.PK); err != nil && !idpapi.IsNotFound(err) {
			return errors.Wrap(err, "deleting group")
		}
		break
	}
	return nil
}
