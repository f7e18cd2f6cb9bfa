// Package httpapi is the JSON-over-HTTP surface of the server: routing, the
// access-control middleware and the error translator.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/dmitrijs2005/messagely/internal/common"
	"github.com/dmitrijs2005/messagely/internal/logging"
	"github.com/dmitrijs2005/messagely/internal/server/models"
	"github.com/gorilla/mux"
)

const maxBodyBytes = 1 << 20

type AuthService interface {
	Login(ctx context.Context, username, password string) (string, error)
	Register(ctx context.Context, r models.Registration) (string, error)
	VerifyToken(token string) (string, error)
}

type UserService interface {
	List(ctx context.Context) ([]models.UserProfile, error)
	Get(ctx context.Context, username string) (*models.User, error)
}

type MessageService interface {
	Create(ctx context.Context, from, to, body string) (*models.SentMessage, error)
	Get(ctx context.Context, caller, id string) (*models.MessageDetail, error)
	MarkRead(ctx context.Context, caller, id string) (*models.ReadReceipt, error)
	ListFrom(ctx context.Context, username string) ([]models.OutboxMessage, error)
	ListTo(ctx context.Context, username string) ([]models.InboxMessage, error)
}

type Handler struct {
	auth     AuthService
	users    UserService
	messages MessageService
	logger   logging.Logger
	timeout  time.Duration
}

func NewHandler(a AuthService, u UserService, m MessageService, l logging.Logger, timeout time.Duration) *Handler {
	return &Handler{
		auth:     a,
		users:    u,
		messages: m,
		logger:   l.With("module", "http"),
		timeout:  timeout,
	}
}

// Routes builds the router wrapped in the logging and timeout middleware.
func (h *Handler) Routes() http.Handler {
	r := mux.NewRouter()

	r.HandleFunc("/healthz", h.healthz).Methods(http.MethodGet)

	for _, prefix := range []string{"/auth", ""} {
		r.HandleFunc(prefix+"/login", h.login).Methods(http.MethodPost)
		r.HandleFunc(prefix+"/register", h.register).Methods(http.MethodPost)
	}

	r.HandleFunc("/users", h.requireAuthenticated(h.listUsers)).Methods(http.MethodGet)
	r.HandleFunc("/users/{username}", h.requireSelf(h.getUser)).Methods(http.MethodGet)
	r.HandleFunc("/users/{username}/to", h.requireSelf(h.listTo)).Methods(http.MethodGet)
	r.HandleFunc("/users/{username}/from", h.requireSelf(h.listFrom)).Methods(http.MethodGet)

	r.HandleFunc("/messages", h.requireAuthenticated(h.createMessage)).Methods(http.MethodPost)
	r.HandleFunc("/messages/{id}", h.requireAuthenticated(h.getMessage)).Methods(http.MethodGet)
	r.HandleFunc("/messages/{id}/read", h.requireAuthenticated(h.markRead)).Methods(http.MethodPost)

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeErrorStatus(w, http.StatusNotFound, "not found")
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeErrorStatus(w, http.StatusMethodNotAllowed, "method not allowed")
	})

	return h.logRequests(h.withTimeout(r))
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return fmt.Errorf("%w: request body too large", common.ErrValidation)
		}
		return fmt.Errorf("%w: malformed JSON body", common.ErrValidation)
	}
	return nil
}

func caller(r *http.Request) string {
	u, _ := UsernameFromContext(r.Context())
	return u
}

func (h *Handler) healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	token, err := h.auth.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, tokenResponse{Token: token})
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	var req models.Registration
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	token, err := h.auth.Register(r.Context(), req)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, tokenResponse{Token: token})
}

func (h *Handler) listUsers(w http.ResponseWriter, r *http.Request) {
	list, err := h.users.List(r.Context())
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"users": list})
}

func (h *Handler) getUser(w http.ResponseWriter, r *http.Request) {
	u, err := h.users.Get(r.Context(), mux.Vars(r)["username"])
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"user": u})
}

func (h *Handler) listTo(w http.ResponseWriter, r *http.Request) {
	list, err := h.messages.ListTo(r.Context(), mux.Vars(r)["username"])
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"messages": list})
}

func (h *Handler) listFrom(w http.ResponseWriter, r *http.Request) {
	list, err := h.messages.ListFrom(r.Context(), mux.Vars(r)["username"])
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"messages": list})
}

type createMessageRequest struct {
	ToUsername string `json:"to_username"`
	Body       string `json:"body"`
}

func (h *Handler) createMessage(w http.ResponseWriter, r *http.Request) {
	var req createMessageRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	msg, err := h.messages.Create(r.Context(), caller(r), req.ToUsername, req.Body)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"message": msg})
}

func (h *Handler) getMessage(w http.ResponseWriter, r *http.Request) {
	msg, err := h.messages.Get(r.Context(), caller(r), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"message": msg})
}

func (h *Handler) markRead(w http.ResponseWriter, r *http.Request) {
	rc, err := h.messages.MarkRead(r.Context(), caller(r), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"message": rc})
}
