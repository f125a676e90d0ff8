// Package httpx wires the HTTP surface of the download service.
package httpx

import (
	"log/slog"
	"net/http"

	"github.com/spotdown/spotdown/internal/service"
)

// RouterServices holds all the services needed by the HTTP router.
type RouterServices struct {
	Downloads *service.DownloadService
	Logger    *slog.Logger // Logger for handler errors (optional)
}

// NewRouter creates and configures the HTTP router.
func NewRouter(services RouterServices) http.Handler {
	mux := http.NewServeMux()

	downloadHandlers := &DownloadHandlers{
		Svc:    services.Downloads,
		Logger: services.Logger,
	}

	mux.HandleFunc("GET /{$}", downloadHandlers.Index)
	mux.HandleFunc("POST /start-download", downloadHandlers.StartDownload)
	mux.HandleFunc("GET /download-status/{id}", downloadHandlers.DownloadStatus)
	mux.HandleFunc("GET /download-file/{id}", downloadHandlers.DownloadFile)

	mux.Handle("GET /healthz", http.HandlerFunc(healthHandler))
	mux.Handle("HEAD /healthz", http.HandlerFunc(healthHandler))

	return mux
}
