package httputil

import (
	"encoding/json"
	"net/http"
)

// RespondJSON writes a JSON response with the given status code.
// It marshals first so a failed encode never produces a partial body
// after headers are sent.
func RespondJSON(w http.ResponseWriter, status int, data interface{}) {
	payload, err := json.Marshal(data)
	if err != nil {
		RespondError(w, http.StatusInternalServerError, "failed to encode response")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(payload)
}

// errorBody is the wire shape clients parse on failure: {"error": "..."}.
type errorBody struct {
	Error string `json:"error"`
}

// RespondError writes a JSON error response in the {"error": string}
// shape the client SDK extracts messages from.
func RespondError(w http.ResponseWriter, status int, detail string) {
	payload, err := json.Marshal(errorBody{Error: detail})
	if err != nil {
		// Fallback to plain text if JSON encoding fails
		w.Header().Set("Content-Type", "text/plain")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("internal server error"))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(payload)
}
