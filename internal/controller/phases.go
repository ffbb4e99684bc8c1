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

// Package controller implements C4/C5: one controller per custom resource
// kind, each a sequenced pipeline of idempotent stages driving the IdP's
// state toward what the kind's spec declares (spec.md §4.4).
package controller

import (
	"context"
	"time"
)

// requeue policy, shared by every reconciler (spec.md §4.5).
const (
	requeueSuccess = 30 * time.Minute
	requeueError   = 60 * time.Second
	requeueMutated = 1 * time.Second
)

// stageResult is what a single pipeline stage returns to its driver.
type stageResult struct {
	// requeueAfter, if non-zero, short-circuits the remaining stages and
	// asks the caller to requeue after this duration. Used by autofill
	// stages that just mutated the spec (spec.md §4.4.1 step 1, §4.4.4
	// step 1): the in-memory spec is now stale, so stop and re-observe.
	requeueAfter time.Duration
}

// stage is one named, idempotent step of a reconcile pipeline.
type stage[T any] struct {
	name string
	run  func(ctx context.Context, rc T) (stageResult, error)
}

// runPipeline executes stages in order, stopping at the first error or the
// first stage requesting a requeue. It never reorders or retries a stage
// itself — retry is the caller's job, driven by controller-runtime.
func runPipeline[T any](ctx context.Context, rc T, stages []stage[T]) (time.Duration, error) {
	for _, s := range stages {
		result, err := s.run(ctx, rc)
		if err != nil {
			return 0, &stageError{stage: s.name, err: err}
		}
		if result.requeueAfter != 0 {
			return result.requeueAfter, nil
		}
	}
	return requeueSuccess, nil
}

// stageError tags a pipeline failure with the stage name it occurred in, so
// logs point at the failing step without the caller needing a switch: the
// name prefixes the error message (SPEC_FULL.md §7).
type stageError struct {
	stage string
	err   error
}

func (e *stageError) Error() string {
	return e.stage + ": " + e.err.Error()
}

func (e *stageError) Unwrap() error {
	return e.err
}

// Reason returns the failing stage's name, used as the Ready condition's
// Reason.
func (e *stageError) Reason() string {
	return e.stage
}
