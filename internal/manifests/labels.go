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

// Package manifests holds the pure Kubernetes object builder functions (C3):
// given a spec, produce the desired Deployment/Service/Ingress/Secret/
// ServiceAccount/ClusterRole/ClusterRoleBinding manifest. No function in
// this package talks to the Kubernetes API or the IdP; callers apply what
// these functions build.
package manifests

// FieldManager is the fixed field-manager name used for every server-side
// apply the operator performs (SPEC_FULL.md §6 additions).
const FieldManager = "authentik-operator"

// Labels builds the closed six-key label set spec.md §4.3 requires on
// every built object: name, part-of, instance, component, version,
// created-by. There is exactly one label builder in this repo; no variant
// omits a key (DESIGN.md resolves two divergent label builders found in
// original_source in favor of a single one).
func Labels(instance, version, component string) map[string]string {
	return map[string]string{
		"app.kubernetes.io/name":       "authentik",
		"app.kubernetes.io/part-of":    "ak-ak",
		"app.kubernetes.io/instance":   instance,
		"app.kubernetes.io/component":  component,
		"app.kubernetes.io/version":    version,
		"app.kubernetes.io/created-by": "authentik-operator",
	}
}

// MatchLabels is the subset of Labels stable across image-tag bumps, used
// as a Deployment/Service selector so a version change never orphans pods.
func MatchLabels(instance, component string) map[string]string {
	return map[string]string{
		"app.kubernetes.io/name":      "authentik",
		"app.kubernetes.io/part-of":   "ak-ak",
		"app.kubernetes.io/instance":  instance,
		"app.kubernetes.io/component": component,
	}
}
