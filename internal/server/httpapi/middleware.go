package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/dmitrijs2005/messagely/internal/common"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type ctxKey string

const (
	usernameKey  ctxKey = "username"
	requestIDKey ctxKey = "request_id"
)

// UsernameFromContext returns the caller set by requireAuthenticated.
func UsernameFromContext(ctx context.Context) (string, bool) {
	u, ok := ctx.Value(usernameKey).(string)
	return u, ok && u != ""
}

// RequestIDFromContext returns the id assigned by the logging middleware.
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

type responseRecorder struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (r *responseRecorder) Write(p []byte) (int, error) {
	if r.status == 0 {
		r.status = http.StatusOK
	}
	n, err := r.ResponseWriter.Write(p)
	r.bytes += n
	return n, err
}

func (r *responseRecorder) WriteHeader(statusCode int) {
	r.status = statusCode
	r.ResponseWriter.WriteHeader(statusCode)
}

// logRequests tags each request with an id (echoed in X-Request-ID) and logs
// it once it completes.
func (h *Handler) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(common.RequestIDHeaderName)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(common.RequestIDHeaderName, id)

		ctx := context.WithValue(r.Context(), requestIDKey, id)
		start := time.Now()
		rr := &responseRecorder{ResponseWriter: w}

		next.ServeHTTP(rr, r.WithContext(ctx))

		h.logger.Info(ctx, "request complete",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rr.status,
			"bytes", rr.bytes,
			"took_ms", time.Since(start).Milliseconds(),
			"request_id", id,
		)
	})
}

func (h *Handler) withTimeout(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h.timeout <= 0 {
			next.ServeHTTP(w, r)
			return
		}
		ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
		defer cancel()
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// requireAuthenticated resolves the caller from the request token and puts
// the username into the context. Without a valid token the chain stops with 401.
func (h *Handler) requireAuthenticated(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token, err := extractToken(r)
		if err != nil {
			writeError(w, r, h.logger, err)
			return
		}

		username, err := h.auth.VerifyToken(token)
		if err != nil {
			if !errors.Is(err, common.ErrInvalidToken) {
				err = fmt.Errorf("%w: %w", common.ErrInvalidToken, err)
			}
			writeError(w, r, h.logger, err)
			return
		}

		ctx := context.WithValue(r.Context(), usernameKey, username)
		next(w, r.WithContext(ctx))
	}
}

// requireSelf additionally demands that the caller is the {username} in the path.
func (h *Handler) requireSelf(next http.HandlerFunc) http.HandlerFunc {
	return h.requireAuthenticated(func(w http.ResponseWriter, r *http.Request) {
		caller, _ := UsernameFromContext(r.Context())
		if caller != mux.Vars(r)["username"] {
			writeError(w, r, h.logger, fmt.Errorf("%w: not your account", common.ErrForbidden))
			return
		}
		next(w, r)
	})
}

// extractToken looks at the Authorization header, then the _token query
// parameter, then a _token field in a JSON body. The body is left readable
// for the handler.
func extractToken(r *http.Request) (string, error) {
	if h := r.Header.Get(common.AuthorizationHeaderName); h != "" {
		scheme, token, ok := strings.Cut(h, " ")
		if ok && strings.EqualFold(scheme, "Bearer") && strings.TrimSpace(token) != "" {
			return strings.TrimSpace(token), nil
		}
	}

	if t := r.URL.Query().Get(common.TokenFieldName); t != "" {
		return t, nil
	}

	if r.Body != nil && r.Body != http.NoBody {
		b, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes+1))
		if err != nil {
			return "", fmt.Errorf("%w: reading body: %v", common.ErrValidation, err)
		}
		r.Body.Close()
		r.Body = io.NopCloser(bytes.NewReader(b))

		var body struct {
			Token string `json:"_token"`
		}
		if json.Unmarshal(b, &body) == nil && body.Token != "" {
			return body.Token, nil
		}
	}

	return "", common.ErrUnauthenticated
}
