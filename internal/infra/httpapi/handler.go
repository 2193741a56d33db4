package httpapi

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/runoshun/brutal/internal/domain"
	"github.com/runoshun/brutal/internal/usecase"
)

// UseCases are the operations the handler exposes.
type UseCases struct {
	List   *usecase.ListTodos
	Create *usecase.CreateTodo
	Update *usecase.UpdateTodo
	Delete *usecase.DeleteTodo
}

// errorResponse is the body of every error response.
type errorResponse struct {
	Error string `json:"error"`
}

type createRequest struct {
	Text string `json:"text"`
}

// Handler routes /api/todos requests to the use cases.
type Handler struct {
	root   http.Handler
	uc     UseCases
	logger *slog.Logger
}

// NewHandler builds the routed and wrapped handler.
func NewHandler(uc UseCases, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	h := &Handler{uc: uc, logger: logger}

	mux := http.NewServeMux()
	mux.HandleFunc("GET "+domain.TodosPath, h.list)
	mux.HandleFunc("POST "+domain.TodosPath, h.create)
	mux.HandleFunc("PUT "+domain.TodosPath+"/{id}", h.update)
	mux.HandleFunc("DELETE "+domain.TodosPath+"/{id}", h.delete)

	h.root = chain(mux, requestID(), logRequests(logger), cors())
	return h
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.root.ServeHTTP(w, r)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	out, err := h.uc.List.Execute(r.Context(), usecase.ListTodosInput{})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, out.Todos)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := decodeBody(r.Body, createSchema, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	out, err := h.uc.Create.Execute(r.Context(), usecase.CreateTodoInput{Text: req.Text})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, out.Todo)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		h.writeError(w, r, domain.ErrTodoNotFound)
		return
	}
	var patch domain.TodoPatch
	if err := decodeBody(r.Body, updateSchema, &patch); err != nil {
		h.writeError(w, r, err)
		return
	}
	out, err := h.uc.Update.Execute(r.Context(), usecase.UpdateTodoInput{ID: id, Patch: patch})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, out.Todo)
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		h.writeError(w, r, domain.ErrTodoNotFound)
		return
	}
	if _, err := h.uc.Delete.Execute(r.Context(), usecase.DeleteTodoInput{ID: id}); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// pathID parses the {id} path segment as a non-negative integer.
func pathID(r *http.Request) (int, bool) {
	raw := r.PathValue("id")
	if raw == "" || raw[0] < '0' || raw[0] > '9' {
		return 0, false
	}
	id, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return id, true
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("encode response", "error", err)
	}
}

// writeError maps domain errors to status codes.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	msg := "internal server error"
	switch {
	case errors.Is(err, domain.ErrTodoNotFound):
		status, msg = http.StatusNotFound, "Todo not found"
	case errors.Is(err, errInvalidBody),
		errors.Is(err, domain.ErrEmptyText),
		errors.Is(err, domain.ErrNoFieldsToUpdate):
		status, msg = http.StatusBadRequest, err.Error()
	default:
		h.logger.Error("request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"request_id", r.Header.Get(RequestIDHeader),
			"error", err,
		)
	}
	h.writeJSON(w, status, errorResponse{Error: msg})
}
