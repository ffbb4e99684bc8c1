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
	corev1 "k8s.io/api/core/v1"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	"k8s.io/apimachinery/pkg/types"
	kerrors "k8s.io/apimachinery/pkg/util/errors"
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

// UserReconciler drives C4's User pipeline (spec.md §4.4.3).
type UserReconciler struct {
	Client   client.Client
	Resolver *auth.Resolver
}

type userState struct {
	obj   *akv1.AuthentikUser
	owner manifests.OwnerRef
	idp   *idpapi.Client
	pk    int
}

func (r *UserReconciler) SetupWithManager(mgr ctrl.Manager, opts controller.Options) error {
	return ctrl.NewControllerManagedBy(mgr).
		For(&akv1.AuthentikUser{}).
		Owns(&corev1.Secret{}).
		WithOptions(opts).
		Complete(r)
}

func (r *UserReconciler) Reconcile(ctx context.Context, req reconcile.Request) (ctrl.Result, error) {
	log := ctrl.LoggerFrom(ctx)

	var obj akv1.AuthentikUser
	if err := r.Client.Get(ctx, req.NamespacedName, &obj); err != nil {
		return ctrl.Result{}, client.IgnoreNotFound(err)
	}

	before := obj.DeepCopy()
	st := &userState{
		obj: &obj,
		owner: manifests.OwnerRef{
			APIVersion: akv1.GroupVersion.String(),
			Kind:       "AuthentikUser",
			Name:       obj.Name,
			UID:        string(obj.UID),
		},
	}

	var reterr error
	defer func() {
		reterr = r.patchStatus(ctx, before, st.obj, reterr)
	}()

	if !obj.DeletionTimestamp.IsZero() {
		if !controllerutil.ContainsFinalizer(&obj, akv1.UserFinalizer) {
			return ctrl.Result{}, nil
		}
		if err := r.cleanup(ctx, st); err != nil {
			reterr = err
			return ctrl.Result{}, err
		}
		controllerutil.RemoveFinalizer(&obj, akv1.UserFinalizer)
		if err := r.Client.Update(ctx, &obj); err != nil {
			reterr = err
			return ctrl.Result{}, err
		}
		return ctrl.Result{}, nil
	}

	if !controllerutil.ContainsFinalizer(&obj, akv1.UserFinalizer) {
		controllerutil.AddFinalizer(&obj, akv1.UserFinalizer)
		if err := r.Client.Update(ctx, &obj); err != nil {
			reterr = err
			return ctrl.Result{}, err
		}
		return ctrl.Result{}, nil
	}

	requeueAfter, err := runPipeline(ctx, st, []stage[*userState]{
		{name: "ResolveAccount", run: r.resolveAccount},
		{name: "ProvisionPassword", run: r.provisionPassword},
		{name: "ResolveGroups", run: r.resolveGroups},
	})
	reterr = err
	if err != nil {
		log.Error(err, "reconcile failed", "user", obj.Spec.Username)
		return ctrl.Result{RequeueAfter: requeueError}, nil
	}
	return ctrl.Result{RequeueAfter: requeueAfter}, nil
}

func (r *UserReconciler) patchStatus(ctx context.Context, before, after *akv1.AuthentikUser, reterr error) error {
	after.Status.ObservedGeneration = after.Generation
	setReady(&after.Status.Conditions, after.Generation, reterr)
	if err := patchStatus(ctx, r.Client, before, after); err != nil {
		return kerrors.NewAggregate([]error{reterr, err})
	}
	return reterr
}

func (r *UserReconciler) idpClient(ctx context.Context, st *userState) (*idpapi.Client, error) {
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

// resolveAccount implements spec.md §4.4.3's account sub-stage: find the
// user by exact username, creating it if absent.
func (r *UserReconciler) resolveAccount(ctx context.Context, st *userState) (stageResult, error) {
	idp, err := r.idpClient(ctx, st)
	if err != nil {
		return stageResult{}, err
	}

	spec := st.obj.Spec
	users, err := idp.FindUsers(ctx, idpapi.FindUsersInput{Username: spec.Username})
	if err != nil {
		return stageResult{}, errors.Wrap(err, "finding user")
	}
	for _, u := range users {
		if u.Username == spec.Username {
			st.pk = u.PK
			return stageResult{}, nil
		}
	}

	created, err := idp.CreateAccount(ctx, idpapi.CreateAccountInput{
		Name:     spec.DisplayName,
		Username: spec.Username,
		Email:    spec.Email,
		Path:     spec.Path,
	})
	if err != nil {
		return stageResult{}, errors.Wrap(err, "creating user")
	}
	st.pk = created.PK
	return stageResult{}, nil
}

// provisionPassword implements spec.md §4.4.3's password sub-stage. The
// Secret's existence is itself the "already provisioned" marker, so a
// password is set exactly once (rotation is unsupported, spec.md §9).
func (r *UserReconciler) provisionPassword(ctx context.Context, st *userState) (stageResult, error) {
	name := manifests.UserSecretName(st.obj.Spec.AuthentikInstance, st.obj.Name)
	key := types.NamespacedName{Namespace: st.obj.Namespace, Name: name}

	var existing corev1.Secret
	err := r.Client.Get(ctx, key, &existing)
	if err == nil {
		return stageResult{}, nil
	}
	if !apierrors.IsNotFound(err) {
		return stageResult{}, errors.Wrap(err, "reading user secret")
	}

	password := st.obj.Spec.Password
	if password == "" {
		password, err = randomString(passwordLength)
		if err != nil {
			return stageResult{}, err
		}
	}

	idp, err := r.idpClient(ctx, st)
	if err != nil {
		return stageResult{}, err
	}
	if err := idp.SetPassword(ctx, st.pk, idpapi.SetPasswordInput{Password: password}); err != nil {
		return stageResult{}, errors.Wrap(err, "setting password")
	}

	secret := manifests.UserSecret(
		st.obj.Spec.AuthentikInstance, st.obj.Name, st.obj.Namespace, "",
		st.obj.Spec.Username, st.obj.Spec.Email, password, st.owner,
	)
	if err := apply(ctx, r.Client, secret); err != nil {
		return stageResult{}, err
	}
	return stageResult{}, nil
}

// resolveGroups implements spec.md §4.4.3's group sub-stage: resolve each
// named AuthentikGroup's live group to a pk and rewrite membership,
// independent of account creation so group changes apply every reconcile.
func (r *UserReconciler) resolveGroups(ctx context.Context, st *userState) (stageResult, error) {
	if len(st.obj.Spec.Groups) == 0 {
		return stageResult{}, nil
	}

	idp, err := r.idpClient(ctx, st)
	if err != nil {
		return stageResult{}, err
	}

	pks := make([]string, 0, len(st.obj.Spec.Groups))
	for _, name := range st.obj.Spec.Groups {
		groups, err := idp.FindGroups(ctx, name)
		if err != nil {
			return stageResult{}, errors.Wrapf(err, "finding group %q", name)
		}
		found := false
		for _, g := range groups {
			if g.Name == name {
				pks = append(pks, g.PK)
				found = true
				break
			}
		}
		if !found {
			return stageResult{}, errors.Errorf("group %q not found", name)
		}
	}

	if _, err := idp.UpdateUser(ctx, st.pk, idpapi.UpdateUserInput{Groups: pks}); err != nil {
		return stageResult{}, errors.Wrap(err, "updating user groups")
	}
	return stageResult{}, nil
}

// cleanup implements spec.md §4.4.3's teardown: delete the account by pk,
// tolerating it already being gone. The credentials Secret is owned by the
// custom resource and is removed by Kubernetes GC.
func (r *UserReconciler) cleanup(ctx context.Context, st *userState) error {
	idp, err := r.idpClient(ctx, st)
	if err != nil {
		return err
	}

	users, err := idp.FindUsers(ctx, idpapi.FindUsersInput{Username: st.obj.Spec.Username})
	if err != nil {
		return errors.Wrap(err, "finding user")
	}
	for _, u := range users {
		if u.Username != st.obj.Spec.Username {
			continue
		}
		if err := idp.DeleteAccount(ctx, u.PK); err != nil && !idpapi.IsNotFound(err) {
			return errors.Wrap(err, "deleting user")
		}
		break
	}
	return nil
}
