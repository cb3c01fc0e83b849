package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler, metrics http.Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
	mux.HandleFunc("GET /v1/status", handler.Status)
	if metrics != nil {
		mux.Handle("GET /metrics", metrics)
	}
}

func registerPlayerRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/players/{name}", handler.GetPlayer)
}

func registerCrawlRoutes(mux *http.ServeMux, handler *Handler, triggerToken string) {
	mux.Handle("POST /v1/crawls", RequireTriggerToken(triggerToken, http.HandlerFunc(handler.CreateCrawl)))
	mux.Handle("POST /v1/crawls/batch", RequireTriggerToken(triggerToken, http.HandlerFunc(handler.CreateCrawlBatch)))
}
