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
	"testing"

	. "github.com/onsi/gomega"
	"github.com/pkg/errors"
)

func TestRunPipelineStopsAtFirstError(t *testing.T) {
	g := NewWithT(t)

	var ran []string
	stages := []stage[int]{
		{name: "one", run: func(ctx context.Context, rc int) (stageResult, error) {
			ran = append(ran, "one")
			return stageResult{}, nil
		}},
		{name: "two", run: func(ctx context.Context, rc int) (stageResult, error) {
			ran = append(ran, "two")
			return stageResult{}, errors.New("boom")
		}},
		{name: "three", run: func(ctx context.Context, rc int) (stageResult, error) {
			ran = append(ran, "three")
			return stageResult{}, nil
		}},
	}

	_, err := runPipeline(context.Background(), 0, stages)
	g.Expect(err).To(HaveOccurred())
	g.Expect(ran).To(Equal([]string{"one", "two"}))

	var se *stageError
	g.Expect(errors.As(err, &se)).To(BeTrue())
	g.Expect(se.Reason()).To(Equal("two"))
}

func TestRunPipelineStopsAtFirstRequeue(t *testing.T) {
	g := NewWithT(t)

	var ran []string
	stages := []stage[int]{
		{name: "autofill", run: func(ctx context.Context, rc int) (stageResult, error) {
			ran = append(ran, "autofill")
			return stageResult{requeueAfter: requeueMutated}, nil
		}},
		{name: "never", run: func(ctx context.Context, rc int) (stageResult, error) {
			ran = append(ran, "never")
			return stageResult{}, nil
		}},
	}

	d, err := runPipeline(context.Background(), 0, stages)
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(d).To(Equal(requeueMutated))
	g.Expect(ran).To(Equal([]string{"autofill"}))
}

func TestRunPipelineSuccessRequeuesAfterSuccessInterval(t *testing.T) {
	g := NewWithT(t)

	d, err := runPipeline(context.Background(), 0, []stage[int]{
		{name: "only", run: func(ctx context.Context, rc int) (stageResult, error) {
			return stageResult{}, nil
		}},
	})
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(d).To(Equal(requeueSuccess))
}
