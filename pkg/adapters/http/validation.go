package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/aretw0/carebot/pkg/domain"
)

// ValidationError describes one rejected field.
type ValidationError struct {
	Type     string `json:"type"`
	Value    any    `json:"value,omitempty"`
	Msg      string `json:"msg"`
	Path     string `json:"path"`
	Location string `json:"location"`
}

type validationResponse struct {
	Errors []ValidationError `json:"errors"`
}

type sendMessageRequest struct {
	Message *string `json:"message"`
}

type updateContextRequest struct {
	Context *string `json:"context"`
}

const (
	msgMessageTooShort = "Message must be at least 1 characters long"
)

func msgInvalidContext() string {
	return "The context value must be one of " + domain.FlowStateNames()
}

type payloadKey struct{}

func withPayload[T any](ctx context.Context, v *T) context.Context {
	return context.WithValue(ctx, payloadKey{}, v)
}

// payloadFrom returns the body decoded by a validation middleware.
func payloadFrom[T any](ctx context.Context) *T {
	v, _ := ctx.Value(payloadKey{}).(*T)
	return v
}

func fieldError(path string, value any, msg string) ValidationError {
	return ValidationError{Type: "field", Value: value, Msg: msg, Path: path, Location: "body"}
}

func writeValidationErrors(w http.ResponseWriter, errs ...ValidationError) {
	writeJSON(w, http.StatusBadRequest, validationResponse{Errors: errs})
}

// decodeBody reads a JSON object. An empty body decodes to the zero value.
func decodeBody[T any](r *http.Request) (*T, error) {
	var v T
	if r.Body == nil || r.ContentLength == 0 {
		return &v, nil
	}
	if err := json.NewDecoder(r.Body).Decode(&v); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	return &v, nil
}

func validateSendMessage(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := decodeBody[sendMessageRequest](r)
		if err != nil {
			writeStatus(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		if body.Message == nil || len(*body.Message) < 1 {
			var value any
			if body.Message != nil {
				value = *body.Message
			}
			writeValidationErrors(w, fieldError("message", value, msgMessageTooShort))
			return
		}
		next.ServeHTTP(w, r.WithContext(withPayload(r.Context(), body)))
	})
}

func validateUpdateContext(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := decodeBody[updateContextRequest](r)
		if err != nil {
			writeStatus(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		if body.Context == nil || !domain.FlowState(*body.Context).Valid() {
			var value any
			if body.Context != nil {
				value = *body.Context
			}
			writeValidationErrors(w, fieldError("context", value, msgInvalidContext()))
			return
		}
		next.ServeHTTP(w, r.WithContext(withPayload(r.Context(), body)))
	})
}
