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
	"testing"

	. "github.com/onsi/gomega"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

	akv1 "github.com/dany-dev/authentik-operator/api/v1"
)

func TestSetReadyMarksTrueOnSuccess(t *testing.T) {
	g := NewWithT(t)

	var conditions []metav1.Condition
	setReady(&conditions, 3, nil)

	g.Expect(conditions).To(HaveLen(1))
	g.Expect(conditions[0].Type).To(Equal(akv1.ReadyCondition))
	g.Expect(conditions[0].Status).To(Equal(metav1.ConditionTrue))
	g.Expect(conditions[0].Reason).To(Equal("ReconcileSucceeded"))
	g.Expect(conditions[0].ObservedGeneration).To(Equal(int64(3)))
}

func TestSetReadyMarksFalseWithPlainErrorMessage(t *testing.T) {
	g := NewWithT(t)

	var conditions []metav1.Condition
	setReady(&conditions, 1, errors.New("boom"))

	g.Expect(conditions[0].Status).To(Equal(metav1.ConditionFalse))
	g.Expect(conditions[0].Reason).To(Equal("ReconcileFailed"))
	g.Expect(conditions[0].Message).To(Equal("boom"))
}

func TestSetReadyUsesStageNameAsReasonForStageErrors(t *testing.T) {
	g := NewWithT(t)

	var conditions []metav1.Condition
	err := &stageError{stage: "Workload", err: errors.New("patch failed")}
	setReady(&conditions, 1, err)

	g.Expect(conditions[0].Status).To(Equal(metav1.ConditionFalse))
	g.Expect(conditions[0].Reason).To(Equal("Workload"))
}

func TestSetReadyFlipsBackToTrueOnSubsequentSuccess(t *testing.T) {
	g := NewWithT(t)

	var conditions []metav1.Condition
	setReady(&conditions, 1, errors.New("boom"))
	setReady(&conditions, 2, nil)

	g.Expect(conditions).To(HaveLen(1))
	g.Expect(conditions[0].Status).To(Equal(metav1.ConditionTrue))
	g.Expect(conditions[0].ObservedGeneration).To(Equal(int64(2)))
}
