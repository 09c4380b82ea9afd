package api

import (
	"encoding/json"
	"mime"
	"net/http"

	"github.com/vytor/arithmetica/internal/errors"
	"github.com/vytor/arithmetica/internal/logger"
)

const maxBodyBytes = 1 << 16

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Warn("failed to encode response: %v", err)
	}
}

// formValue reads a field from a JSON object body or, for any other content
// type, from the submitted form. A missing field reads as "".
func formValue(w http.ResponseWriter, r *http.Request, field string) (string, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType != "application/json" {
		if err := r.ParseForm(); err != nil {
			return "", errors.NewBadRequestError("invalid form body")
		}
		return r.FormValue(field), nil
	}

	var body map[string]json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		return "", errors.NewBadRequestError("invalid JSON body")
	}
	raw, ok := body[field]
	if !ok {
		return "", nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s, nil
	}
	// Accept bare numbers for answers, e.g. {"answer": 10}.
	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		return "", errors.NewValidationError(field, "must be a string or number")
	}
	return n.String(), nil
}
