package handler

import "net/http"

// Ping handles GET /health-check/ping.
func Ping(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, MessageEnvelope{Message: "pong"})
}
