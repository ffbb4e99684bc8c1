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
	"errors"

	"k8s.io/apimachinery/pkg/api/meta"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

	akv1 "github.com/dany-dev/authentik-operator/api/v1"
)

// setReady records the reconcile outcome as the kind's Ready condition
// (SPEC_FULL.md §3 additions: every kind's Status gains a conditions field,
// following the ironcore-dev network-operator reference's
// meta.SetStatusCondition pattern).
func setReady(conditions *[]metav1.Condition, generation int64, err error) {
	cond := metav1.Condition{
		Type:               akv1.ReadyCondition,
		Status:             metav1.ConditionTrue,
		Reason:             "ReconcileSucceeded",
		Message:            "reconcile succeeded",
		ObservedGeneration: generation,
	}
	if err != nil {
		cond.Status = metav1.ConditionFalse
		cond.Reason = "ReconcileFailed"
		cond.Message = err.Error()

		var se *stageError
		if errors.As(err, &se) {
			cond.Reason = se.Reason()
		}
	}
	meta.SetStatusCondition(conditions, cond)
}
