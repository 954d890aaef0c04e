package transport

import (
	"encoding/json"
	"iter"
	"net/http"

	"catalog-api/internal/middleware"

	"go.uber.org/zap"
)

// streamJSONArray writes the sequence as a JSON array while it is being read.
// An error before the first element becomes a 500; after that the status is
// already sent, so the array is left unterminated and the error is logged.
func streamJSONArray[T any](w http.ResponseWriter, seq iter.Seq2[T, error], logger *zap.Logger) {
	started := false
	for item, err := range seq {
		if err != nil {
			logger.Error("Failed to stream list", zap.Error(err), zap.Bool("started", started))
			if !started {
				middleware.RespondWithError(w, http.StatusInternalServerError, "failed to list")
			}
			return
		}

		b, err := json.Marshal(item)
		if err != nil {
			logger.Error("Failed to encode list item", zap.Error(err))
			if !started {
				middleware.RespondWithError(w, http.StatusInternalServerError, "failed to list")
			}
			return
		}

		if !started {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			w.Write([]byte("["))
			started = true
		} else {
			w.Write([]byte(","))
		}
		w.Write(b)

		if f, ok := w.(http.Flusher); ok {
			f.Flush()
		}
	}

	if !started {
		middleware.RespondWithJSON(w, http.StatusOK, []T{})
		return
	}
	w.Write([]byte("]"))
}
