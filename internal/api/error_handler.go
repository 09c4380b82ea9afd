package api

import (
	stderrors "errors"
	"net/http"

	"github.com/vytor/arithmetica/internal/errors"
	"github.com/vytor/arithmetica/internal/logger"
)

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// handleError centralizes error handling for HTTP responses. Extra fields,
// such as the session snapshot of a rejected action, are merged into the body.
func handleError(w http.ResponseWriter, r *http.Request, err error, extra ...map[string]any) {
	log := logger.FromContext(r.Context())

	appErr := asAppError(err)

	if appErr.Status >= 500 {
		log.Error("server error: %v", appErr)
	} else if appErr.Status >= 400 {
		log.Warn("client error: %v", appErr)
	} else {
		log.Debug("error: %v", appErr)
	}

	var fields map[string]any
	if len(extra) > 0 {
		fields = extra[0]
	}
	writeError(w, appErr, fields)
}

func writeError(w http.ResponseWriter, appErr *errors.AppError, fields map[string]any) {
	body := map[string]any{}
	for k, v := range fields {
		body[k] = v
	}
	body["error"] = errorBody{Code: appErr.Code, Message: appErr.Message}
	writeJSON(w, appErr.Status, body)
}

func asAppError(err error) *errors.AppError {
	var appErr *errors.AppError
	if stderrors.As(err, &appErr) {
		return appErr
	}
	// Wrap unknown errors as internal errors
	return errors.NewInternalError(err)
}
