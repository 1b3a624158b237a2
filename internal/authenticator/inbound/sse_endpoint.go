package inbound

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/shandysiswandi/authenticator/internal/authenticator/usecase"
)

// StreamCodes streams the current code of a provisioning URI using SSE.
// @Summary Stream codes
// @Description Emits a "code" event every second with the code valid at that instant, and an "end" event when the stream reaches its maximum age.
// @Tags Authenticator
// @Produce text/event-stream
// @Param uri query string true "Provisioning URI"
// @Success 200 {string} string "SSE stream"
// @Failure 422 {object} router.errorResponse "Malformed URI"
// @Failure 429 {object} router.errorResponse "Too many streams"
// @Failure 500 {string} string "streaming unsupported"
// @Router /api/v1/authenticator/stream [get]
func (h *HTTPEndpoint) StreamCodes(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	stream, err := h.uc.StreamCodes(ctx, usecase.StreamInput{URI: r.URL.Query().Get("uri")})
	if err != nil {
		h.writeError(ctx, w, err)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")

	w.WriteHeader(http.StatusOK)
	if _, err := fmt.Fprint(w, ": connected\n\n"); err != nil {
		slog.ErrorContext(ctx, "failed to send response connected", "error", err)
		return
	}
	flusher.Flush()

	// heartbeat ping, so proxies won't drop idle connections.
	var heartbeat <-chan time.Time
	if h.heartbeat > 0 {
		ticker := time.NewTicker(h.heartbeat)
		defer ticker.Stop()
		heartbeat = ticker.C
	}

	for seq := 1; ; {
		select {
		case <-ctx.Done():
			return

		case <-heartbeat:
			if _, err := fmt.Fprint(w, ": ping\n\n"); err != nil {
				return
			}
			flusher.Flush()

		case evt, ok := <-stream:
			if !ok {
				if _, err := fmt.Fprint(w, "event: end\ndata: {}\n\n"); err == nil {
					flusher.Flush()
				}
				return
			}

			payload, err := json.Marshal(StreamEventResponse{
				StreamID: evt.StreamID,
				Rotated:  evt.Rotated,
				Tick:     toCodeTickResponse(evt.Tick),
			})
			if err != nil {
				slog.ErrorContext(ctx, "failed to marshal data", "error", err)
				continue
			}
			if _, err := fmt.Fprintf(w, "id: %d\nevent: code\ndata: %s\n\n", seq, payload); err != nil {
				slog.ErrorContext(ctx, "failed to send response data", "error", err)
				return
			}
			flusher.Flush()
			seq++
		}
	}
}
