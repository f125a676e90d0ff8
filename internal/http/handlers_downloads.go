package httpx

import (
	"errors"
	"html/template"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strconv"

	"github.com/spotdown/spotdown/internal/service"
)

// DownloadHandlers serves the download API: start a job, poll its status, and
// collect the finished file.
type DownloadHandlers struct {
	Svc    *service.DownloadService
	Logger *slog.Logger
}

type startDownloadRequest struct {
	TrackURL string `json:"trackUrl"`
}

type startDownloadResponse struct {
	DownloadID string `json:"download_id"`
	Status     string `json:"status"`
}

// Index serves the single-page UI. When metadata credentials are missing the
// page renders a configuration warning instead of the form.
func (h *DownloadHandlers) Index(w http.ResponseWriter, r *http.Request) {
	data := indexData{}
	if !h.Svc.Configured() {
		data.Error = "Spotify API credentials not configured. Please set the " +
			"SPOTIFY_CLIENT_ID and SPOTIFY_CLIENT_SECRET environment variables."
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := indexTemplate.Execute(w, data); err != nil {
		h.logger().Error("failed to render index page", "error", err)
	}
}

// StartDownload accepts a Spotify track URL and begins an asynchronous
// download job. The response carries the job ID to poll.
func (h *DownloadHandlers) StartDownload(w http.ResponseWriter, r *http.Request) {
	var req startDownloadRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	download, err := h.Svc.Start(r.Context(), req.TrackURL)
	if err != nil {
		h.logger().ErrorContext(r.Context(), "error starting download", "error", err)
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, startDownloadResponse{
		DownloadID: download.ID,
		Status:     string(download.Status),
	})
}

// DownloadStatus returns a snapshot of the job. Every poll also sweeps stale
// records out of the registry.
func (h *DownloadHandlers) DownloadStatus(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	download, err := h.Svc.Status(r.Context(), id)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, download)
}

// DownloadFile streams the completed MP3 as an attachment. Delivery is
// single-use: once a send has been attempted the record and its temp storage
// are removed, whether or not the send succeeded.
func (h *DownloadHandlers) DownloadFile(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	download, err := h.Svc.Deliver(id)
	if err != nil {
		WriteAppError(w, err)
		return
	}
	defer h.Svc.Finish(id)

	f, err := os.Open(download.FilePath)
	if err != nil {
		h.logger().ErrorContext(r.Context(), "error sending file", "download_id", id, "error", err)
		WriteError(w, ErrorParams{
			Code:    http.StatusInternalServerError,
			ErrCode: "delivery",
			Err:     errors.New("error sending file"),
		})
		return
	}
	defer func() { _ = f.Close() }()

	w.Header().Set("Content-Type", "audio/mpeg")
	w.Header().Set("Content-Disposition", `attachment; filename="`+download.Filename+`"`)
	if info, statErr := f.Stat(); statErr == nil {
		w.Header().Set("Content-Length", strconv.FormatInt(info.Size(), 10))
	}

	if _, err := io.Copy(w, f); err != nil {
		// Headers are gone; the cleanup in Finish still runs.
		h.logger().ErrorContext(r.Context(), "error streaming file", "download_id", id, "error", err)
	}
}

func (h *DownloadHandlers) logger() *slog.Logger {
	if h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

type indexData struct {
	Error string
}

var indexTemplate = template.Must(template.New("index").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <title>spotdown</title>
  <style>
    body { font-family: sans-serif; max-width: 40rem; margin: 3rem auto; padding: 0 1rem; }
    input[type=url] { width: 100%; padding: .5rem; }
    button { margin-top: .5rem; padding: .5rem 1rem; }
    .error { color: #b00020; }
    #status { margin-top: 1rem; }
  </style>
</head>
<body>
  <h1>spotdown</h1>
{{if .Error}}
  <p class="error">{{.Error}}</p>
{{else}}
  <form id="download-form">
    <label for="track-url">Spotify track URL</label>
    <input type="url" id="track-url" name="trackUrl" placeholder="https://open.spotify.com/track/..." required>
    <button type="submit">Download</button>
  </form>
  <p id="status"></p>
  <script>
    const form = document.getElementById('download-form');
    const status = document.getElementById('status');
    form.addEventListener('submit', async (e) => {
      e.preventDefault();
      status.textContent = 'Starting...';
      const resp = await fetch('/start-download', {
        method: 'POST',
        headers: {'Content-Type': 'application/json'},
        body: JSON.stringify({trackUrl: document.getElementById('track-url').value})
      });
      const body = await resp.json();
      if (!resp.ok) { status.textContent = body.message || body.error; return; }
      poll(body.download_id);
    });
    async function poll(id) {
      const resp = await fetch('/download-status/' + id);
      const body = await resp.json();
      if (!resp.ok) { status.textContent = body.message || body.error; return; }
      status.textContent = body.status;
      if (body.status === 'completed') {
        window.location = '/download-file/' + id;
      } else if (body.status === 'error') {
        status.textContent = 'Error: ' + (body.error || 'download failed');
      } else {
        setTimeout(() => poll(id), 1000);
      }
    }
  </script>
{{end}}
</body>
</html>
`))
