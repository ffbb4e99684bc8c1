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

// Hand-written in place of controller-gen output: this exercise does not run
// `controller-gen object`, so every DeepCopy/DeepCopyObject method that
// satisfies runtime.Object below is authored directly, following the same
// shape controller-gen would produce.

package v1

import (
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	runtime "k8s.io/apimachinery/pkg/runtime"
)

func (in *CommonStatus) DeepCopyInto(out *CommonStatus) {
	*out = *in
	if in.Conditions != nil {
		out.Conditions = make([]metav1.Condition, len(in.Conditions))
		for i := range in.Conditions {
			in.Conditions[i].DeepCopyInto(&out.Conditions[i])
		}
	}
}

func (in *SecretKeyReference) DeepCopy() *SecretKeyReference {
	if in == nil {
		return nil
	}
	out := new(SecretKeyReference)
	*out = *in
	return out
}

// --- Authentik ---

func (in *ImageSpec) DeepCopyInto(out *ImageSpec) { *out = *in }

func (in *PostgresSpec) DeepCopyInto(out *PostgresSpec) {
	*out = *in
	if in.PasswordSecret != nil {
		out.PasswordSecret = in.PasswordSecret.DeepCopy()
	}
}

func (in *RedisSpec) DeepCopyInto(out *RedisSpec) { *out = *in }

func (in *SMTPSpec) DeepCopyInto(out *SMTPSpec) { *out = *in }

func (in *SMTPSpec) DeepCopy() *SMTPSpec {
	if in == nil {
		return nil
	}
	out := new(SMTPSpec)
	in.DeepCopyInto(out)
	return out
}

func (in *IngressSpec) DeepCopyInto(out *IngressSpec) {
	*out = *in
	if in.Annotations != nil {
		out.Annotations = make(map[string]string, len(in.Annotations))
		for k, v := range in.Annotations {
			out.Annotations[k] = v
		}
	}
}

func (in *IngressSpec) DeepCopy() *IngressSpec {
	if in == nil {
		return nil
	}
	out := new(IngressSpec)
	in.DeepCopyInto(out)
	return out
}

func (in *ResourcesSpec) DeepCopyInto(out *ResourcesSpec) {
	*out = *in
	if in.Server != nil {
		out.Server = in.Server.DeepCopy()
	}
	if in.Worker != nil {
		out.Worker = in.Worker.DeepCopy()
	}
}

func (in *ResourcesSpec) DeepCopy() *ResourcesSpec {
	if in == nil {
		return nil
	}
	out := new(ResourcesSpec)
	in.DeepCopyInto(out)
	return out
}

func (in *FooterLink) DeepCopyInto(out *FooterLink) { *out = *in }

func (in *AuthentikSpec) DeepCopyInto(out *AuthentikSpec) {
	*out = *in
	in.Image.DeepCopyInto(&out.Image)
	in.Postgres.DeepCopyInto(&out.Postgres)
	in.Redis.DeepCopyInto(&out.Redis)
	if in.SMTP != nil {
		out.SMTP = in.SMTP.DeepCopy()
	}
	if in.FooterLinks != nil {
		out.FooterLinks = make([]FooterLink, len(in.FooterLinks))
		copy(out.FooterLinks, in.FooterLinks)
	}
	if in.Ingress != nil {
		out.Ingress = in.Ingress.DeepCopy()
	}
	if in.Resources != nil {
		out.Resources = in.Resources.DeepCopy()
	}
}

func (in *AuthentikStatus) DeepCopyInto(out *AuthentikStatus) {
	*out = *in
	in.CommonStatus.DeepCopyInto(&out.CommonStatus)
}

func (in *Authentik) DeepCopyInto(out *Authentik) {
	*out = *in
	out.TypeMeta = in.TypeMeta
	in.ObjectMeta.DeepCopyInto(&out.ObjectMeta)
	in.Spec.DeepCopyInto(&out.Spec)
	in.Status.DeepCopyInto(&out.Status)
}

func (in *Authentik) DeepCopy() *Authentik {
	if in == nil {
		return nil
	}
	out := new(Authentik)
	in.DeepCopyInto(out)
	return out
}

func (in *Authentik) DeepCopyObject() runtime.Object { return in.DeepCopy() }

func (in *AuthentikList) DeepCopyInto(out *AuthentikList) {
	*out = *in
	out.TypeMeta = in.TypeMeta
	in.ListMeta.DeepCopyInto(&out.ListMeta)
	if in.Items != nil {
		out.Items = make([]Authentik, len(in.Items))
		for i := range in.Items {
			in.Items[i].DeepCopyInto(&out.Items[i])
		}
	}
}

func (in *AuthentikList) DeepCopy() *AuthentikList {
	if in == nil {
		return nil
	}
	out := new(AuthentikList)
	in.DeepCopyInto(out)
	return out
}

func (in *AuthentikList) DeepCopyObject() runtime.Object { return in.DeepCopy() }

// --- AuthentikApplication ---

func (in *AppUISpec) DeepCopyInto(out *AppUISpec) { *out = *in }

func (in *AuthentikApplicationSpec) DeepCopyInto(out *AuthentikApplicationSpec) {
	*out = *in
	in.UI.DeepCopyInto(&out.UI)
}

func (in *AuthentikApplicationStatus) DeepCopyInto(out *AuthentikApplicationStatus) {
	*out = *in
	in.CommonStatus.DeepCopyInto(&out.CommonStatus)
}

func (in *AuthentikApplication) DeepCopyInto(out *AuthentikApplication) {
	*out = *in
	out.TypeMeta = in.TypeMeta
	in.ObjectMeta.DeepCopyInto(&out.ObjectMeta)
	in.Spec.DeepCopyInto(&out.Spec)
	in.Status.DeepCopyInto(&out.Status)
}

func (in *AuthentikApplication) DeepCopy() *AuthentikApplication {
	if in == nil {
		return nil
	}
	out := new(AuthentikApplication)
	in.DeepCopyInto(out)
	return out
}

func (in *AuthentikApplication) DeepCopyObject() runtime.Object { return in.DeepCopy() }

func (in *AuthentikApplicationList) DeepCopyInto(out *AuthentikApplicationList) {
	*out = *in
	out.TypeMeta = in.TypeMeta
	in.ListMeta.DeepCopyInto(&out.ListMeta)
	if in.Items != nil {
		out.Items = make([]AuthentikApplication, len(in.Items))
		for i := range in.Items {
			in.Items[i].DeepCopyInto(&out.Items[i])
		}
	}
}

func (in *AuthentikApplicationList) DeepCopy() *AuthentikApplicationList {
	if in == nil {
		return nil
	}
	out := new(AuthentikApplicationList)
	in.DeepCopyInto(out)
	return out
}

func (in *AuthentikApplicationList) DeepCopyObject() runtime.Object { return in.DeepCopy() }

// --- AuthentikUser ---

func (in *AuthentikUserSpec) DeepCopyInto(out *AuthentikUserSpec) {
	*out = *in
	if in.Groups != nil {
		out.Groups = make([]string, len(in.Groups))
		copy(out.Groups, in.Groups)
	}
}

func (in *AuthentikUserStatus) DeepCopyInto(out *AuthentikUserStatus) {
	*out = *in
	in.CommonStatus.DeepCopyInto(&out.CommonStatus)
}

func (in *AuthentikUser) DeepCopyInto(out *AuthentikUser) {
	*out = *in
	out.TypeMeta = in.TypeMeta
	in.ObjectMeta.DeepCopyInto(&out.ObjectMeta)
	in.Spec.DeepCopyInto(&out.Spec)
	in.Status.DeepCopyInto(&out.Status)
}

func (in *AuthentikUser) DeepCopy() *AuthentikUser {
	if in == nil {
		return nil
	}
	out := new(AuthentikUser)
	in.DeepCopyInto(out)
	return out
}

func (in *AuthentikUser) DeepCopyObject() runtime.Object { return in.DeepCopy() }

func (in *AuthentikUserList) DeepCopyInto(out *AuthentikUserList) {
	*out = *in
	out.TypeMeta = in.TypeMeta
	in.ListMeta.DeepCopyInto(&out.ListMeta)
	if in.Items != nil {
		out.Items = make([]AuthentikUser, len(in.Items))
		for i := range in.Items {
			in.Items[i].DeepCopyInto(&out.Items[i])
		}
	}
}

func (in *AuthentikUserList) DeepCopy() *AuthentikUserList {
	if in == nil {
		return nil
	}
	out := new(AuthentikUserList)
	in.DeepCopyInto(out)
	return out
}

func (in *AuthentikUserList) DeepCopyObject() runtime.Object { return in.DeepCopy() }

// --- AuthentikGroup ---

func (in *AuthentikGroupSpec) DeepCopyInto(out *AuthentikGroupSpec) { *out = *in }

func (in *AuthentikGroupStatus) DeepCopyInto(out *AuthentikGroupStatus) {
	*out = *in
	in.CommonStatus.DeepCopyInto(&out.CommonStatus)
}

func (in *AuthentikGroup) DeepCopyInto(out *AuthentikGroup) {
	*out = *in
	out.TypeMeta = in.TypeMeta
	in.ObjectMeta.DeepCopyInto(&out.ObjectMeta)
	out.Spec = in.Spec
	in.Status.DeepCopyInto(&out.Status)
}

func (in *AuthentikGroup) DeepCopy() *AuthentikGroup {
	if in == nil {
		return nil
	}
	out := new(AuthentikGroup)
	in.DeepCopyInto(out)
	return out
}

func (in *AuthentikGroup) DeepCopyObject() runtime.Object { return in.DeepCopy() }

func (in *AuthentikGroupList) DeepCopyInto(out *AuthentikGroupList) {
	*out = *in
	out.TypeMeta = in.TypeMeta
	in.ListMeta.DeepCopyInto(&out.ListMeta)
	if in.Items != nil {
		out.Items = make([]AuthentikGroup, len(in.Items))
		for i := range in.Items {
			in.Items[i].DeepCopyInto(&out.Items[i])
		}
	}
}

func (in *AuthentikGroupList) DeepCopy() *AuthentikGroupList {
	if in == nil {
		return nil
	}
	out := new(AuthentikGroupList)
	in.DeepCopyInto(out)
	return out
}

func (in *AuthentikGroupList) DeepCopyObject() runtime.Object { return in.DeepCopy() }

// --- AuthentikOAuthProvider ---

func (in *AuthentikOAuthProviderSpec) DeepCopyInto(out *AuthentikOAuthProviderSpec) {
	*out = *in
	if in.Scopes != nil {
		out.Scopes = make([]string, len(in.Scopes))
		copy(out.Scopes, in.Scopes)
	}
	if in.RedirectURIs != nil {
		out.RedirectURIs = make([]string, len(in.RedirectURIs))
		copy(out.RedirectURIs, in.RedirectURIs)
	}
}

func (in *AuthentikOAuthProviderStatus) DeepCopyInto(out *AuthentikOAuthProviderStatus) {
	*out = *in
	in.CommonStatus.DeepCopyInto(&out.CommonStatus)
}

func (in *AuthentikOAuthProvider) DeepCopyInto(out *AuthentikOAuthProvider) {
	*out = *in
	out.TypeMeta = in.TypeMeta
	in.ObjectMeta.DeepCopyInto(&out.ObjectMeta)
	in.Spec.DeepCopyInto(&out.Spec)
	in.Status.DeepCopyInto(&out.Status)
}

func (in *AuthentikOAuthProvider) DeepCopy() *AuthentikOAuthProvider {
	if in == nil {
		return nil
	}
	out := new(AuthentikOAuthProvider)
	in.DeepCopyInto(out)
	return out
}

func (in *AuthentikOAuthProvider) DeepCopyObject() runtime.Object { return in.DeepCopy() }

func (in *AuthentikOAuthProviderList) DeepCopyInto(out *AuthentikOAuthProviderList) {
	*out = *in
	out.TypeMeta = in.TypeMeta
	in.ListMeta.DeepCopyInto(&out.ListMeta)
	if in.Items != nil {
		out.Items = make([]AuthentikOAuthProvider, len(in.Items))
		for i := range in.Items {
			in.Items[i].DeepCopyInto(&out.Items[i])
		}
	}
}

func (in *AuthentikOAuthProviderList) DeepCopy() *AuthentikOAuthProviderList {
	if in == nil {
		return nil
	}
	out := new(AuthentikOAuthProviderList)
	in.DeepCopyInto(out)
	return out
}

func (in *AuthentikOAuthProviderList) DeepCopyObject() runtime.Object { return in.DeepCopy() }
