/*
Copyright 2021 The Kubernetes Authors.

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

package main

import (
	"context"
	"fmt"
	"net/http"
	"os"

	apiextensionsclient "k8s.io/apiextensions-apiserver/pkg/client/clientset/versioned"
	"k8s.io/apimachinery/pkg/runtime"
	utilruntime "k8s.io/apimachinery/pkg/util/runtime"
	clientgoscheme "k8s.io/client-go/kubernetes/scheme"
	"k8s.io/client-go/rest"
	"k8s.io/klog/v2"
	"k8s.io/klog/v2/textlogger"
	ctrl "sigs.k8s.io/controller-runtime"
	"sigs.k8s.io/controller-runtime/pkg/controller"
	metricsserver "sigs.k8s.io/controller-runtime/pkg/metrics/server"

	akv1 "github.com/dany-dev/authentik-operator/api/v1"
	akcontroller "github.com/dany-dev/authentik-operator/internal/controller"
	"github.com/dany-dev/authentik-operator/internal/auth"
	"github.com/dany-dev/authentik-operator/internal/crds"
	"github.com/dany-dev/authentik-operator/internal/idpapi"
)

// Version is the operator's own version; overridden at build time via
// -ldflags -X, and mirrored into idpapi's user agent.
var Version = "dev"

// healthAddr is the fixed health-check listen address (spec.md §4.6); this
// operator takes no CLI flags (spec.md §6).
const healthAddr = ":8080"

var (
	scheme   = runtime.NewScheme()
	setupLog = ctrl.Log.WithName("setup")
)

func init() {
	utilruntime.Must(clientgoscheme.AddToScheme(scheme))
	utilruntime.Must(akv1.AddToScheme(scheme))
}

func main() {
	idpapi.Version = Version

	logLevel := logLevelFromEnv()
	klog.SetLogger(textlogger.NewLogger(textlogger.NewConfig(textlogger.Verbosity(logLevel))))
	ctrl.SetLogger(klog.Background())

	restConfig, err := ctrl.GetConfig()
	if err != nil {
		setupLog.Error(err, "unable to load kubeconfig")
		os.Exit(1)
	}

	if err := installCRDs(restConfig); err != nil {
		setupLog.Error(err, "unable to install CRDs")
		os.Exit(1)
	}

	mgr, err := ctrl.NewManager(restConfig, ctrl.Options{
		Scheme:                 scheme,
		HealthProbeBindAddress: "0",
		Metrics:                metricsserver.Options{BindAddress: "0"},
	})
	if err != nil {
		setupLog.Error(err, "unable to start manager")
		os.Exit(1)
	}

	resolver := auth.NewResolver(mgr.GetClient())
	opts := controller.Options{MaxConcurrentReconciles: 1}

	if err := (&akcontroller.IdPInstanceReconciler{
		Client:       mgr.GetClient(),
		Resolver:     resolver,
		NewIdPClient: resolver.NewClient,
	}).SetupWithManager(mgr, opts); err != nil {
		setupLog.Error(err, "unable to create controller", "kind", "Authentik")
		os.Exit(1)
	}

	if err := (&akcontroller.GroupReconciler{Client: mgr.GetClient(), Resolver: resolver}).SetupWithManager(mgr, opts); err != nil {
		setupLog.Error(err, "unable to create controller", "kind", "AuthentikGroup")
		os.Exit(1)
	}

	if err := (&akcontroller.UserReconciler{Client: mgr.GetClient(), Resolver: resolver}).SetupWithManager(mgr, opts); err != nil {
		setupLog.Error(err, "unable to create controller", "kind", "AuthentikUser")
		os.Exit(1)
	}

	if err := (&akcontroller.OAuthProviderReconciler{Client: mgr.GetClient(), Resolver: resolver}).SetupWithManager(mgr, opts); err != nil {
		setupLog.Error(err, "unable to create controller", "kind", "AuthentikOAuthProvider")
		os.Exit(1)
	}

	if err := (&akcontroller.AppReconciler{Client: mgr.GetClient(), Resolver: resolver}).SetupWithManager(mgr, opts); err != nil {
		setupLog.Error(err, "unable to create controller", "kind", "AuthentikApplication")
		os.Exit(1)
	}

	go serveHealth()

	setupLog.Info("starting manager", "version", Version)
	if err := mgr.Start(ctrl.SetupSignalHandler()); err != nil {
		setupLog.Error(err, "manager exited")
		os.Exit(1)
	}
}

// logLevelFromEnv reads AUTHENTIK_OPERATOR_LOG_LEVEL (spec.md §6), mapping
// the IdP-style level names onto klog's numeric verbosity.
func logLevelFromEnv() int {
	switch os.Getenv("AUTHENTIK_OPERATOR_LOG_LEVEL") {
	case "debug":
		return 4
	case "warn", "error":
		return 0
	default:
		return 1
	}
}

// installCRDs runs C7 before any controller starts, since every reconciler
// depends on its kind already existing in the API server.
func installCRDs(cfg *rest.Config) error {
	client, err := apiextensionsclient.NewForConfig(cfg)
	if err != nil {
		return err
	}
	return crds.Install(context.Background(), client)
}

// serveHealth exposes the fixed /health endpoint (spec.md §4.6); a manager
// exit is fatal, so there is nothing this handler needs to report beyond
// "the process is up".
func serveHealth() {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, "healthy")
	})
	if err := http.ListenAndServe(healthAddr, mux); err != nil {
		setupLog.Error(err, "health endpoint exited")
		os.Exit(1)
	}
}
