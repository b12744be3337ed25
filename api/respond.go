package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rpupo63/zenith-portfolio/errs"
	"github.com/rs/zerolog"
)

const maxResponseSize = 10 * 1024 * 1024

type Responder struct {
	logger zerolog.Logger
}

func NewResponder(logger zerolog.Logger) Responder {
	return Responder{logger}
}

// WriteJSON writes data with a 200 status.
func (r Responder) WriteJSON(w http.ResponseWriter, data any) {
	r.WriteStatusJSON(w, http.StatusOK, data)
}

// WriteStatusJSON marshals first so a marshal failure can still become a clean 500.
func (r Responder) WriteStatusJSON(w http.ResponseWriter, status int, data any) {
	jsonData, err := json.Marshal(data)
	if err != nil {
		r.logger.Error().Err(err).Msg("error marshaling response data")
		status = http.StatusInternalServerError
		jsonData = []byte(`{"error":"Internal server error"}`)
	}

	if len(jsonData) > maxResponseSize {
		r.logger.Error().
			Int("responseSize", len(jsonData)).
			Int("maxSize", maxResponseSize).
			Msg("response too large")
		status = http.StatusInternalServerError
		jsonData = []byte(`{"error":"Internal server error"}`)
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if _, err := w.Write(jsonData); err != nil {
		r.logger.Error().Err(err).Msg("error writing response")
	}
}

// WriteError writes {"error": message} using the ApiErr status. Anything else is logged and
// becomes a generic 500; causes never reach the client.
func (r Responder) WriteError(w http.ResponseWriter, err error) {
	var apiErr *errs.ApiErr
	if !errors.As(err, &apiErr) {
		r.logger.Error().Err(err).Msg("unexpected error")
		r.WriteStatusJSON(w, http.StatusInternalServerError, map[string]any{
			"error": "Internal server error",
		})
		return
	}

	if apiErr.StatusCode >= http.StatusInternalServerError {
		r.logger.Error().Str("error", apiErr.GetFullError()).Msg("request failed")
	} else if apiErr.Field != "" {
		r.logger.Debug().Str("field", apiErr.Field).Msg(apiErr.Message())
	}

	response := map[string]any{
		"error": apiErr.Message(),
	}
	if apiErr.Details != "" {
		response["details"] = apiErr.Details
	}

	r.WriteStatusJSON(w, apiErr.StatusCode, response)
}

// WriteMessage writes {"message": text} for endpoints whose failures use that shape.
func (r Responder) WriteMessage(w http.ResponseWriter, err error) {
	var apiErr *errs.ApiErr
	if !errors.As(err, &apiErr) {
		r.logger.Error().Err(err).Msg("unexpected error")
		r.WriteStatusJSON(w, http.StatusInternalServerError, MessageResponse{Message: "Internal server error"})
		return
	}
	r.WriteStatusJSON(w, apiErr.StatusCode, MessageResponse{Message: apiErr.Message()})
}
