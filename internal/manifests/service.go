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

	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/util/intstr"
)

// ServiceName is the naming-scheme name for the server's ClusterIP Service.
func ServiceName(instance string) string {
	return fmt.Sprintf("authentik-%s", instance)
}

// Service builds the ClusterIP Service fronting the server Deployment's pods.
func Service(instance, version string, owner OwnerRef) *corev1.Service {
	return &corev1.Service{
		TypeMeta: metav1.TypeMeta{APIVersion: "v1", Kind: "Service"},
		ObjectMeta: metav1.ObjectMeta{
			Name:            ServiceName(instance),
			Labels:          Labels(instance, version, string(RoleServer)),
			OwnerReferences: []metav1.OwnerReference{owner.toMeta()},
		},
		Spec: corev1.ServiceSpec{
			Selector: MatchLabels(instance, string(RoleServer)),
			Ports: []corev1.ServicePort{
				{
					Name:       "http",
					Port:       80,
					TargetPort: intstr.FromInt32(serverPort),
					Protocol:   corev1.ProtocolTCP,
				},
			},
		},
	}
}
