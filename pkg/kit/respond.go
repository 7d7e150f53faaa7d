package kit

import (
	"encoding/json"
	"net/http"

	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// HandlerFunc is an http.HandlerFunc that reports failures by returning them.
type HandlerFunc func(w http.ResponseWriter, r *http.Request) error

// Handle adapts fn so that any returned error is rendered by WriteProblem.
func Handle(log *zap.Logger, fn HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := fn(w, r); err != nil {
			WriteProblem(w, r, log, err)
		}
	}
}

func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func WriteText(w http.ResponseWriter, status int, s string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(s))
}

// WriteProblem is the terminal error handler: it logs err and renders it as
// {error, message} with the status carried by the error.
func WriteProblem(w http.ResponseWriter, r *http.Request, log *zap.Logger, err error) {
	e := AsError(err)
	status := e.StatusCode()

	if log != nil {
		fields := []zap.Field{
			zap.String("request_id", chimw.GetReqID(r.Context())),
			zap.String("kind", string(e.Kind)),
			zap.String("message", e.Message),
			zap.Int("status", status),
		}
		if e.Err != nil {
			fields = append(fields, zap.Error(e.Err))
		}
		if status >= http.StatusInternalServerError {
			log.Error("request failed", fields...)
		} else {
			log.Warn("request failed", fields...)
		}
	}

	WriteJSON(w, status, ErrorResponse{
		Error:   string(e.Kind),
		Message: e.Message,
	})
}
