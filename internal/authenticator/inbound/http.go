package inbound

import (
	"net/http"
	"time"

	"github.com/shandysiswandi/authenticator/internal/pkg/router"
)

// RegisterHTTPEndpoint mounts the authenticator API on r. heartbeat is the
// idle ping interval of the code stream; zero disables it.
func RegisterHTTPEndpoint(r *router.Router, uc uc, heartbeat time.Duration) {
	end := &HTTPEndpoint{uc: uc, writeError: r.WriteError, heartbeat: heartbeat}

	r.POST("/api/v1/authenticator/inspect", end.Inspect)
	r.POST("/api/v1/authenticator/code", end.Code)
	r.POST("/api/v1/authenticator/uri", end.GenerateURI)

	r.GETRaw("/api/v1/authenticator/stream", http.HandlerFunc(end.StreamCodes))
}
