package handler

import (
	"fleetdesk/config"
	"fleetdesk/di"
	"fleetdesk/shared/logger"
	"fleetdesk/transport/http"
	nethttp "net/http"
	"sync"
)

var (
	server   *http.HTTP
	initOnce sync.Once
)

// Handler is the serverless entrypoint. The dependency graph is built once
// per warm instance.
func Handler(w nethttp.ResponseWriter, r *nethttp.Request) {
	r.RequestURI = r.URL.String()

	initOnce.Do(func() {
		cfg := config.Get()

		logger.InitLogger(cfg, logger.ComponentAPI)

		server = di.InitializeService()
	})

	server.ServeHTTP(w, r)
}
