package http

import (
	"bytes"
	"errors"
	"net/http"

	"fundboard/internal/api"
	"fundboard/internal/log"
)

// renderTemplate executes a named template into a buffer so a render
// failure never leaves a half-written response.
func (s *Server) renderTemplate(name string, data interface{}) ([]byte, error) {
	var buf bytes.Buffer
	if err := s.templates.ExecuteTemplate(&buf, name, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// renderPage writes a full page, logging and degrading to a 500 on
// template failure.
func (s *Server) renderPage(w http.ResponseWriter, r *http.Request, name string, data interface{}) {
	body, err := s.renderTemplate(name, data)
	if err != nil {
		s.logger.ErrorContext(r.Context(), "Template rendering failed",
			log.FieldOperation, log.OpRender, "template", name, log.FieldError, err.Error())
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(body)
}

// errMessage extracts the user-facing message from an API client error.
// The client normalizes every failure, so the fallback only covers
// non-client errors reaching this path.
func errMessage(err error) string {
	var apiErr *api.Error
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return api.MsgNetworkError
}

// errStatus maps an API client error to the HTTP status the dashboard
// responds with. Backend rejections keep their status so failed
// mutations never swap content.
func errStatus(err error) int {
	var apiErr *api.Error
	if !errors.As(err, &apiErr) {
		return http.StatusBadGateway
	}
	switch apiErr.Kind {
	case api.KindServer:
		if apiErr.Status >= 400 {
			return apiErr.Status
		}
		return http.StatusBadGateway
	default:
		return http.StatusBadGateway
	}
}

// apiErrorResponse builds the standard response for a failed backend call:
// non-2xx status (so the target is left untouched) plus an error toast.
func apiErrorResponse(err error) *HTMXResponseBuilder {
	msg := errMessage(err)
	return ErrorResponse(errStatus(err), msg).TriggerErrorNotification(msg)
}
