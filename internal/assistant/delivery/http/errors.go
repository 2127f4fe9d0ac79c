package http

import (
	"errors"
	"net/http"

	"assistant-kit/internal/assistant"
	"assistant-kit/internal/extraction"
	"assistant-kit/internal/router"
	"assistant-kit/pkg/response"
)

var errInvalidBody = response.NewHTTPError(http.StatusBadRequest, "request body must be JSON with a non-empty message")

// mapError translates domain/use-case errors into HTTP errors.
func (h *handler) mapError(err error) error {
	var (
		completionErr *router.CompletionError
		extractionErr *extraction.ExtractionError
		httpErr       *response.HTTPError
	)

	switch {
	case errors.As(err, &httpErr):
		return httpErr
	case errors.Is(err, assistant.ErrSessionNotFound):
		return response.NewHTTPError(http.StatusNotFound, "session not found")
	case errors.Is(err, assistant.ErrEmptySessionID), errors.Is(err, assistant.ErrEmptyMessage),
		errors.Is(err, router.ErrEmptyUtterance):
		return response.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.As(err, &completionErr), errors.As(err, &extractionErr):
		return response.NewHTTPError(http.StatusBadGateway, "language model unavailable")
	default:
		return response.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
}
