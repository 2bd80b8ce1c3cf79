package router

import "net/http"

type AccountRouteRegistrar interface {
	RegisterRoutes(mux *http.ServeMux, authMiddleware func(http.Handler) http.Handler)
}

type MovementRouteRegistrar interface {
	RegisterRoutes(mux *http.ServeMux, authMiddleware func(http.Handler) http.Handler)
}

func New(
	accountController AccountRouteRegistrar,
	movementController MovementRouteRegistrar,
	metricsHandler http.Handler,
	authMiddleware func(http.Handler) http.Handler,
) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	if metricsHandler != nil {
		mux.Handle("/metrics", metricsHandler)
	}

	if accountController != nil {
		accountController.RegisterRoutes(mux, authMiddleware)
	}
	if movementController != nil {
		movementController.RegisterRoutes(mux, authMiddleware)
	}

	return mux
}
