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

package manifests

import (
	"fmt"

	networkingv1 "k8s.io/api/networking/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/utils/ptr"

	akv1 "github.com/dany-dev/authentik-operator/api/v1"
)

// IngressName is the naming-scheme name for the optional server Ingress.
func IngressName(instance string) string {
	return fmt.Sprintf("authentik-%s", instance)
}

// Ingress builds the Ingress that exposes the server Service externally.
// Callers only invoke this when spec.Ingress is non-nil.
func Ingress(instance, version string, spec akv1.IngressSpec, owner OwnerRef) *networkingv1.Ingress {
	pathType := networkingv1.PathTypePrefix

	rule := networkingv1.IngressRule{
		Host: spec.Host,
		IngressRuleValue: networkingv1.IngressRuleValue{
			HTTP: &networkingv1.HTTPIngressRuleValue{
				Paths: []networkingv1.HTTPIngressPath{
					{
						Path:     "/",
						PathType: &pathType,
						Backend: networkingv1.IngressBackend{
							Service: &networkingv1.IngressServiceBackend{
								Name: ServiceName(instance),
								Port: networkingv1.ServiceBackendPort{Number: 80},
							},
						},
					},
				},
			},
		},
	}

	ingress := &networkingv1.Ingress{
		TypeMeta: metav1.TypeMeta{APIVersion: "networking.k8s.io/v1", Kind: "Ingress"},
		ObjectMeta: metav1.ObjectMeta{
			Name:            IngressName(instance),
			Labels:          Labels(instance, version, string(RoleServer)),
			Annotations:     spec.Annotations,
			OwnerReferences: []metav1.OwnerReference{owner.toMeta()},
		},
		Spec: networkingv1.IngressSpec{
			Rules: []networkingv1.IngressRule{rule},
		},
	}

	if spec.ClassName != "" {
		ingress.Spec.IngressClassName = ptr.To(spec.ClassName)
	}

	if spec.TLSSecretName != "" {
		ingress.Spec.TLS = []networkingv1.IngressTLS{
			{Hosts: []string{spec.Host}, SecretName: spec.TLSSecretName},
		}
	}

	return ingress
}
