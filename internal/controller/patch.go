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
	"encoding/json"

	jsonpatch "github.com/evanphx/json-patch/v5"
	"github.com/pkg/errors"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	"k8s.io/apimachinery/pkg/types"
	"sigs.k8s.io/controller-runtime/pkg/client"

	"github.com/dany-dev/authentik-operator/internal/manifests"
)

// apply server-side-applies obj with the operator's fixed field manager
// (spec.md §4.3/§4.4.1). obj must carry an explicit TypeMeta — SSA requires
// the GVK on the wire, which typed client-go objects don't set implicitly.
func apply(ctx context.Context, c client.Client, obj client.Object) error {
	if err := c.Patch(ctx, obj, client.Apply, client.ForceOwnership, client.FieldOwner(manifests.FieldManager)); err != nil {
		return errors.Wrapf(err, "applying %T %s", obj, client.ObjectKeyFromObject(obj))
	}
	return nil
}

// deleteIfExists deletes obj, tolerating it already being gone.
func deleteIfExists(ctx context.Context, c client.Client, obj client.Object) error {
	if err := c.Delete(ctx, obj); err != nil {
		if client.IgnoreNotFound(err) == nil {
			return nil
		}
		return errors.Wrapf(err, "deleting %T %s", obj, client.ObjectKeyFromObject(obj))
	}
	return nil
}

// patchStatus persists the status subresource of obj as a merge patch
// computed against before; an unchanged status yields an empty patch, which
// is still sent. Both before and after must be deep copies of the same
// object at different points in the reconcile.
func patchStatus(ctx context.Context, c client.Client, before, after client.Object) error {
	if err := c.Status().Patch(ctx, after, client.MergeFrom(before)); err != nil {
		return errors.Wrapf(err, "patching status of %T %s", after, client.ObjectKeyFromObject(after))
	}
	return nil
}

// createOrMergePatch realizes a desired workload object (spec.md §4.4.1
// stage 3's "patch-apply"): create it if absent, otherwise compute a JSON
// merge patch (github.com/evanphx/json-patch/v5) between the live object
// and desired and send only the diff, rather than replacing the object
// wholesale and clobbering fields the API server itself owns (resourceVersion,
// status, defaulted fields). current must be a zero-value pointer of the
// right type; it is populated by the Get call this function performs.
func createOrMergePatch(ctx context.Context, c client.Client, current, desired client.Object) error {
	key := client.ObjectKeyFromObject(desired)
	err := c.Get(ctx, key, current)
	if apierrors.IsNotFound(err) {
		if err := c.Create(ctx, desired); err != nil {
			return errors.Wrapf(err, "creating %T %s", desired, key)
		}
		return nil
	}
	if err != nil {
		return errors.Wrapf(err, "reading %T %s", current, key)
	}

	// desired never carries the server-assigned identity fields (they're
	// omitempty and freshly built), so diffing it against current as-is
	// would emit a patch nulling out uid/resourceVersion/creationTimestamp/
	// generation — fields the API server rejects changes to. Copy them
	// across first so the diff reflects only what actually changed.
	desired.SetUID(current.GetUID())
	desired.SetResourceVersion(current.GetResourceVersion())
	desired.SetCreationTimestamp(current.GetCreationTimestamp())
	desired.SetGeneration(current.GetGeneration())

	currentJSON, err := json.Marshal(current)
	if err != nil {
		return errors.Wrap(err, "marshaling current object")
	}
	desiredJSON, err := json.Marshal(desired)
	if err != nil {
		return errors.Wrap(err, "marshaling desired object")
	}

	patchBytes, err := jsonpatch.CreateMergePatch(currentJSON, desiredJSON)
	if err != nil {
		return errors.Wrap(err, "computing merge patch")
	}
	if string(patchBytes) == "{}" {
		return nil
	}

	if err := c.Patch(ctx, current, client.RawPatch(types.MergePatchType, patchBytes)); err != nil {
		return errors.Wrapf(err, "patching %T %s", current, key)
	}
	return nil
}
