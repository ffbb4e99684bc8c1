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
	"fmt"

	"github.com/pkg/errors"
	appsv1 "k8s.io/api/apps/v1"
	corev1 "k8s.io/api/core/v1"
	networkingv1 "k8s.io/api/networking/v1"
	rbacv1 "k8s.io/api/rbac/v1"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	kerrors "k8s.io/apimachinery/pkg/util/errors"
	"k8s.io/apimachinery/pkg/types"
	"k8s.io/client-go/util/retry"
	ctrl "sigs.k8s.io/controller-runtime"
	"sigs.k8s.io/controller-runtime/pkg/client"
	"sigs.k8s.io/controller-runtime/pkg/controller"
	"sigs.k8s.io/controller-runtime/pkg/controller/controllerutil"
	"sigs.k8s.io/controller-runtime/pkg/handler"
	"sigs.k8s.io/controller-runtime/pkg/reconcile"

	akv1 "github.com/dany-dev/authentik-operator/api/v1"
	"github.com/dany-dev/authentik-operator/internal/auth"
	"github.com/dany-dev/authentik-operator/internal/idpapi"
	"github.com/dany-dev/authentik-operator/internal/manifests"
)

// apiUser is the name of the operator's own service-account user inside the
// IdP (spec.md §6 naming scheme).
const apiUser = "ak-operator"

// serviceGroupName is the superuser group the api user belongs to.
func serviceGroupName(instance string) string {
	return fmt.Sprintf("akOperator %s service group", instance)
}

// operatorTokenIdentifier is the durable token's identifier (spec.md §6).
func operatorTokenIdentifier(instance string) string {
	return fmt.Sprintf("ak-operator-%s__operatortoken", instance)
}

// IdPInstanceReconciler drives C4's IdPInstance pipeline (spec.md §4.4.1).
type IdPInstanceReconciler struct {
	Client       client.Client
	Resolver     *auth.Resolver
	NewIdPClient auth.NewClientFunc
}

// idpInstanceState threads values computed by one stage to a later one.
type idpInstanceState struct {
	obj      *akv1.Authentik
	instance string
	ns       string
	version  string
	owner    manifests.OwnerRef
	idp      *idpapi.Client
	userPK   int
}

func (r *IdPInstanceReconciler) SetupWithManager(mgr ctrl.Manager, opts controller.Options) error {
	childSelector := handler.EnqueueRequestsFromMapFunc(ownerEnqueuer(mgr.GetClient(), &akv1.Authentik{}))

	return ctrl.NewControllerManagedBy(mgr).
		For(&akv1.Authentik{}).
		Owns(&appsv1.Deployment{}).
		Owns(&corev1.Service{}).
		Owns(&networkingv1.Ingress{}).
		Owns(&corev1.Secret{}).
		Owns(&corev1.ServiceAccount{}).
		Watches(&rbacv1.ClusterRole{}, childSelector).
		Watches(&rbacv1.ClusterRoleBinding{}, childSelector).
		WithOptions(opts).
		Complete(r)
}

func (r *IdPInstanceReconciler) Reconcile(ctx context.Context, req reconcile.Request) (ctrl.Result, error) {
	log := ctrl.LoggerFrom(ctx)

	var obj akv1.Authentik
	if err := r.Client.Get(ctx, req.NamespacedName, &obj); err != nil {
		return ctrl.Result{}, client.IgnoreNotFound(err)
	}

	before := obj.DeepCopy()
	st := &idpInstanceState{
		obj:      &obj,
		instance: obj.Name,
		ns:       obj.Namespace,
		version:  obj.Spec.Image.Tag,
		owner: manifests.OwnerRef{
			APIVersion: akv1.GroupVersion.String(),
			Kind:       "Authentik",
			Name:       obj.Name,
			UID:        string(obj.UID),
		},
	}

	var reterr error
	defer func() {
		reterr = r.patchStatus(ctx, before, st.obj, reterr)
	}()

	if !obj.DeletionTimestamp.IsZero() {
		if !controllerutil.ContainsFinalizer(&obj, akv1.IdPInstanceFinalizer) {
			return ctrl.Result{}, nil
		}
		if err := r.cleanup(ctx, st); err != nil {
			reterr = err
			return ctrl.Result{}, err
		}
		controllerutil.RemoveFinalizer(&obj, akv1.IdPInstanceFinalizer)
		if err := r.Client.Update(ctx, &obj); err != nil {
			reterr = err
			return ctrl.Result{}, err
		}
		return ctrl.Result{}, nil
	}

	if !controllerutil.ContainsFinalizer(&obj, akv1.IdPInstanceFinalizer) {
		controllerutil.AddFinalizer(&obj, akv1.IdPInstanceFinalizer)
		if err := r.Client.Update(ctx, &obj); err != nil {
			reterr = err
			return ctrl.Result{}, err
		}
		return ctrl.Result{}, nil
	}

	requeueAfter, err := runPipeline(ctx, st, r.stages())
	reterr = err
	if err != nil {
		log.Error(err, "reconcile failed", "instance", st.instance)
		return ctrl.Result{RequeueAfter: requeueError}, nil
	}
	return ctrl.Result{RequeueAfter: requeueAfter}, nil
}

func (r *IdPInstanceReconciler) patchStatus(ctx context.Context, before, after *akv1.Authentik, reterr error) error {
	after.Status.ObservedGeneration = after.Generation
	setReady(&after.Status.Conditions, after.Generation, reterr)
	if err := patchStatus(ctx, r.Client, before, after); err != nil {
		return kerrors.NewAggregate([]error{reterr, err})
	}
	return reterr
}

func (r *IdPInstanceReconciler) stages() []stage[*idpInstanceState] {
	return []stage[*idpInstanceState]{
		{name: "AutofillDefaults", run: r.autofillDefaults},
		{name: "ClusterRBAC", run: r.clusterRBAC},
		{name: "Workload", run: r.workload},
		{name: "ServiceIngress", run: r.serviceIngress},
		{name: "BootstrapServiceAccount", run: r.bootstrapServiceAccount},
		{name: "DurableToken", run: r.durableToken},
		{name: "SuperuserGroup", run: r.superuserGroup},
		{name: "TokenSecretMirror", run: r.tokenSecretMirror},
		{name: "RemoveOOBE", run: r.removeOOBE},
	}
}

// autofillDefaults implements spec.md §4.4.1 stage 1 (I6): generate
// spec.secretKey exactly once, then stop and re-observe. The persist step
// re-fetches the object under retry.RetryOnConflict so a benign
// resource-version race with another writer doesn't fail the whole stage.
func (r *IdPInstanceReconciler) autofillDefaults(ctx context.Context, st *idpInstanceState) (stageResult, error) {
	if st.obj.Spec.SecretKey != "" {
		return stageResult{}, nil
	}

	key, err := randomString(secretKeyLength)
	if err != nil {
		return stageResult{}, errors.Wrap(err, "generating secret key")
	}

	objKey := client.ObjectKeyFromObject(st.obj)
	if err := retry.RetryOnConflict(retry.DefaultRetry, func() error {
		if err := r.Client.Get(ctx, objKey, st.obj); err != nil {
			return err
		}
		if st.obj.Spec.SecretKey != "" {
			return nil
		}
		st.obj.Spec.SecretKey = key
		return r.Client.Update(ctx, st.obj)
	}); err != nil {
		return stageResult{}, errors.Wrap(err, "persisting secretKey")
	}
	return stageResult{requeueAfter: requeueMutated}, nil
}

// clusterRBAC implements spec.md §4.4.1 stage 2.
func (r *IdPInstanceReconciler) clusterRBAC(ctx context.Context, st *idpInstanceState) (stageResult, error) {
	sa := manifests.ServiceAccount(st.instance, st.ns, st.version, st.owner)
	if err := apply(ctx, r.Client, sa); err != nil {
		return stageResult{}, err
	}
	role := manifests.ClusterRole(st.instance, st.version)
	if err := apply(ctx, r.Client, role); err != nil {
		return stageResult{}, err
	}
	binding := manifests.ClusterRoleBinding(st.instance, st.ns, st.version)
	if err := apply(ctx, r.Client, binding); err != nil {
		return stageResult{}, err
	}
	return stageResult{}, nil
}

// workload implements spec.md §4.4.1 stage 3.
func (r *IdPInstanceReconciler) workload(ctx context.Context, st *idpInstanceState) (stageResult, error) {
	for _, role := range []manifests.Role{manifests.RoleServer, manifests.RoleWorker} {
		desired, err := manifests.Deployment(st.instance, st.obj.Spec, role, st.owner)
		if err != nil {
			return stageResult{}, errors.Wrapf(err, "building %s deployment", role)
		}
		desired.Namespace = st.ns

		var current appsv1.Deployment
		if err := createOrMergePatch(ctx, r.Client, &current, desired); err != nil {
			return stageResult{}, err
		}
	}
	return stageResult{}, nil
}

// serviceIngress implements spec.md §4.4.1 stage 4.
func (r *IdPInstanceReconciler) serviceIngress(ctx context.Context, st *idpInstanceState) (stageResult, error) {
	svc := manifests.Service(st.instance, st.version, st.owner)
	svc.Namespace = st.ns
	if err := apply(ctx, r.Client, svc); err != nil {
		return stageResult{}, err
	}

	if st.obj.Spec.Ingress != nil {
		ing := manifests.Ingress(st.instance, st.version, *st.obj.Spec.Ingress, st.owner)
		ing.Namespace = st.ns
		if err := apply(ctx, r.Client, ing); err != nil {
			return stageResult{}, err
		}
		return stageResult{}, nil
	}

	existing := &networkingv1.Ingress{}
	existing.Name = manifests.IngressName(st.instance)
	existing.Namespace = st.ns
	if err := deleteIfExists(ctx, r.Client, existing); err != nil {
		return stageResult{}, err
	}
	return stageResult{}, nil
}

// idpClient resolves a currently-valid bearer (C2) and memoizes the client
// on st for the rest of the pipeline's IdP-facing stages.
func (r *IdPInstanceReconciler) idpClient(ctx context.Context, st *idpInstanceState) (*idpapi.Client, error) {
	if st.idp != nil {
		return st.idp, nil
	}
	token, err := r.Resolver.Resolve(ctx, st.ns, st.instance)
	if err != nil {
		return nil, errors.Wrap(err, "resolving bearer token")
	}
	st.idp = r.NewIdPClient(st.instance, st.ns, token)
	return st.idp, nil
}

// bootstrapServiceAccount implements spec.md §4.4.1 stage 6.
func (r *IdPInstanceReconciler) bootstrapServiceAccount(ctx context.Context, st *idpInstanceState) (stageResult, error) {
	idp, err := r.idpClient(ctx, st)
	if err != nil {
		return stageResult{}, err
	}

	_, err = idp.CreateServiceAccount(ctx, idpapi.CreateServiceAccountInput{Name: apiUser, CreateGroup: false})
	if err != nil && !idpapi.IsAlreadyExists(err) {
		return stageResult{}, errors.Wrap(err, "creating service account")
	}

	if err := idp.DeleteToken(ctx, fmt.Sprintf("service-account-%s-password", apiUser)); err != nil && !idpapi.IsNotFound(err) {
		return stageResult{}, errors.Wrap(err, "deleting service account password token")
	}

	users, err := idp.FindUsers(ctx, idpapi.FindUsersInput{Username: apiUser})
	if err != nil {
		return stageResult{}, errors.Wrap(err, "finding service account user")
	}
	for i := range users {
		if users[i].Username == apiUser {
			st.userPK = users[i].PK
			return stageResult{}, nil
		}
	}
	return stageResult{}, errors.Errorf("service account user %q not found after creation", apiUser)
}

// durableToken implements spec.md §4.4.1 stage 7.
func (r *IdPInstanceReconciler) durableToken(ctx context.Context, st *idpInstanceState) (stageResult, error) {
	idp, err := r.idpClient(ctx, st)
	if err != nil {
		return stageResult{}, err
	}

	_, err = idp.CreateToken(ctx, idpapi.CreateTokenInput{
		Identifier:  operatorTokenIdentifier(st.instance),
		Intent:      "api",
		User:        st.userPK,
		Description: "authentik-operator durable API token",
		Expiring:    false,
	})
	if err != nil && !idpapi.IsAlreadyExists(err) {
		return stageResult{}, errors.Wrap(err, "creating durable token")
	}
	return stageResult{}, nil
}

// superuserGroup implements spec.md §4.4.1 stage 8.
func (r *IdPInstanceReconciler) superuserGroup(ctx context.Context, st *idpInstanceState) (stageResult, error) {
	idp, err := r.idpClient(ctx, st)
	if err != nil {
		return stageResult{}, err
	}

	name := serviceGroupName(st.instance)
	groups, err := idp.FindGroups(ctx, name)
	if err != nil {
		return stageResult{}, errors.Wrap(err, "finding superuser group")
	}
	if len(groups) > 0 {
		return stageResult{}, nil
	}

	_, err = idp.CreateGroup(ctx, idpapi.CreateGroupInput{
		Name:        name,
		IsSuperuser: true,
		Parent:      "",
		Users:       []int{st.userPK},
	})
	if err != nil && !idpapi.IsAlreadyExists(err) {
		return stageResult{}, errors.Wrap(err, "creating superuser group")
	}
	return stageResult{}, nil
}

// tokenSecretMirror implements spec.md §4.4.1 stage 9 (I4).
func (r *IdPInstanceReconciler) tokenSecretMirror(ctx context.Context, st *idpInstanceState) (stageResult, error) {
	name := auth.TokenSecretName(st.instance)

	var secret corev1.Secret
	err := r.Client.Get(ctx, types.NamespacedName{Namespace: st.ns, Name: name}, &secret)
	if err == nil {
		if token, ok := secret.Data[manifests.TokenSecretKey]; ok && len(token) > 0 {
			c := r.NewIdPClient(st.instance, st.ns, string(token))
			if _, err := c.GetSelf(ctx); err == nil {
				return stageResult{}, nil
			} else if !idpapi.IsForbidden(err) {
				return stageResult{}, errors.Wrap(err, "validating mirrored token")
			}
		}
	} else if !apierrors.IsNotFound(err) {
		return stageResult{}, errors.Wrap(err, "reading token secret")
	}

	idp, err := r.idpClient(ctx, st)
	if err != nil {
		return stageResult{}, err
	}
	key, err := idp.ViewKey(ctx, operatorTokenIdentifier(st.instance))
	if err != nil {
		return stageResult{}, errors.Wrap(err, "viewing durable token key")
	}

	desired := manifests.TokenSecret(name, st.ns, st.instance, st.version, key, st.owner)
	if err := apply(ctx, r.Client, desired); err != nil {
		return stageResult{}, err
	}
	return stageResult{}, nil
}

// removeOOBE implements spec.md §4.4.1 stage 10: best-effort, idempotent
// teardown of the IdP's out-of-box-experience objects.
func (r *IdPInstanceReconciler) removeOOBE(ctx context.Context, st *idpInstanceState) (stageResult, error) {
	idp, err := r.idpClient(ctx, st)
	if err != nil {
		return stageResult{}, err
	}

	if err := idp.DeleteFlow(ctx, "initial-setup"); err != nil && !idpapi.IsNotFound(err) {
		return stageResult{}, errors.Wrap(err, "deleting initial-setup flow")
	}

	stages, err := idp.FindStages(ctx, "default-oobe-password")
	if err != nil {
		return stageResult{}, errors.Wrap(err, "finding oobe stage")
	}
	for _, s := range stages {
		if s.Name != "default-oobe-password" {
			continue
		}
		if err := idp.DeleteStage(ctx, s.PK); err != nil && !idpapi.IsNotFound(err) {
			return stageResult{}, errors.Wrap(err, "deleting oobe stage")
		}
		break
	}

	users, err := idp.FindUsers(ctx, idpapi.FindUsersInput{Username: "akadmin"})
	if err != nil {
		return stageResult{}, errors.Wrap(err, "finding akadmin user")
	}
	for _, u := range users {
		if u.Username != "akadmin" {
			continue
		}
		if err := idp.DeleteAccount(ctx, u.PK); err != nil && !idpapi.IsNotFound(err) {
			return stageResult{}, errors.Wrap(err, "deleting akadmin user")
		}
		break
	}

	groups, err := idp.FindGroups(ctx, "authentik Admins")
	if err != nil {
		return stageResult{}, errors.Wrap(err, "finding authentik Admins group")
	}
	for _, g := range groups {
		if g.Name != "authentik Admins" {
			continue
		}
		if err := idp.DeleteGroup(ctx, g.PK); err != nil && !idpapi.IsNotFound(err) {
			return stageResult{}, errors.Wrap(err, "deleting authentik Admins group")
		}
		break
	}

	return stageResult{}, nil
}

// cleanup implements spec.md §4.4.1's reverse-order cleanup pipeline.
func (r *IdPInstanceReconciler) cleanup(ctx context.Context, st *idpInstanceState) error {
	idp, err := r.idpClient(ctx, st)
	if err == nil {
		name := serviceGroupName(st.instance)
		groups, ferr := idp.FindGroups(ctx, name)
		if ferr == nil {
			for _, g := range groups {
				if g.Name == name {
					if derr := idp.DeleteGroup(ctx, g.PK); derr != nil && !idpapi.IsNotFound(derr) {
						return errors.Wrap(derr, "deleting superuser group")
					}
					break
				}
			}
		}

		users, uerr := idp.FindUsers(ctx, idpapi.FindUsersInput{Username: apiUser})
		if uerr == nil {
			for _, u := range users {
				if u.Username == apiUser {
					if derr := idp.DeleteAccount(ctx, u.PK); derr != nil && !idpapi.IsNotFound(derr) {
						return errors.Wrap(derr, "deleting service account user")
					}
					break
				}
			}
		}
	}

	ing := &networkingv1.Ingress{}
	ing.Name, ing.Namespace = manifests.IngressName(st.instance), st.ns
	if err := deleteIfExists(ctx, r.Client, ing); err != nil {
		return err
	}

	svc := &corev1.Service{}
	svc.Name, svc.Namespace = manifests.ServiceName(st.instance), st.ns
	if err := deleteIfExists(ctx, r.Client, svc); err != nil {
		return err
	}

	for _, role := range []manifests.Role{manifests.RoleServer, manifests.RoleWorker} {
		d := &appsv1.Deployment{}
		d.Name, d.Namespace = manifests.DeploymentName(st.instance, role), st.ns
		if err := deleteIfExists(ctx, r.Client, d); err != nil {
			return err
		}
	}

	role := &rbacv1.ClusterRole{}
	role.Name = manifests.ClusterRoleName(st.instance)
	if err := deleteIfExists(ctx, r.Client, role); err != nil {
		return err
	}

	binding := &rbacv1.ClusterRoleBinding{}
	binding.Name = manifests.ClusterRoleBindingName(st.instance)
	if err := deleteIfExists(ctx, r.Client, binding); err != nil {
		return err
	}

	return nil
}
