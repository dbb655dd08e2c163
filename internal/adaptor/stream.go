package adaptor

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"
)

const contentTypeNDJSON = "application/x-ndjson"

// streamNDJSON writes every value received from items as one JSON document
// per line, flushing after each. It returns when items is closed or the
// client goes away.
func streamNDJSON[T any](log *zap.Logger, w http.ResponseWriter, r *http.Request, items <-chan T) {
	rc := http.NewResponseController(w)

	w.Header().Set("Content-Type", contentTypeNDJSON)
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(http.StatusOK)
	if err := rc.Flush(); err != nil {
		log.Warn("Streaming not supported by response writer", zap.Error(err))
	}

	enc := json.NewEncoder(w)
	sent := 0
	for item := range items {
		if err := enc.Encode(item); err != nil {
			log.Debug("Stream write failed", zap.Error(err), zap.Int("sent", sent))
			return
		}
		if err := rc.Flush(); err != nil {
			log.Debug("Stream flush failed", zap.Error(err))
		}
		sent++
	}

	log.Debug("Stream closed",
		zap.Int("sent", sent),
		zap.Bool("client_gone", r.Context().Err() != nil))
}
