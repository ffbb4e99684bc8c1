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

	"sigs.k8s.io/controller-runtime/pkg/client"
	"sigs.k8s.io/controller-runtime/pkg/handler"
	"sigs.k8s.io/controller-runtime/pkg/reconcile"

	akv1 "github.com/dany-dev/authentik-operator/api/v1"
)

// instanceLabel is the label key every built object carries naming the
// owning Authentik instance (internal/manifests.Labels).
const instanceLabel = "app.kubernetes.io/instance"

// ownerEnqueuer maps a cluster-scoped child (ClusterRole, ClusterRoleBinding)
// back to the Authentik instance that owns it. Cluster-scoped objects can't
// carry an owner reference to a namespaced parent, so the instance label is
// the only link; this resolves it to the parent's namespace by listing
// Authentik objects cluster-wide and matching on name (spec.md §4.3).
func ownerEnqueuer(c client.Client, _ client.Object) handler.MapFunc {
	return func(ctx context.Context, obj client.Object) []reconcile.Request {
		instance, ok := obj.GetLabels()[instanceLabel]
		if !ok {
			return nil
		}

		var list akv1.AuthentikList
		if err := c.List(ctx, &list); err != nil {
			return nil
		}

		var reqs []reconcile.Request
		for i := range list.Items {
			if list.Items[i].Name == instance {
				reqs = append(reqs, reconcile.Request{NamespacedName: client.ObjectKeyFromObject(&list.Items[i])})
			}
		}
		return reqs
	}
}
