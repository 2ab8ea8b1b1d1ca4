package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"pods/internal/db"
	"pods/internal/feed"
	"pods/internal/service"
)

type Handlers struct {
	svc     *service.Service
	baseURL string
	log     logrus.FieldLogger
}

func New(svc *service.Service, baseURL string, log logrus.FieldLogger) *Handlers {
	return &Handlers{
		svc:     svc,
		baseURL: baseURL,
		log:     log,
	}
}

// Router registers every route. Middlewares run in the order given.
func (h *Handlers) Router(mws ...mux.MiddlewareFunc) *mux.Router {
	r := mux.NewRouter()
	r.Use(mws...)

	r.HandleFunc("/", h.Hello).Methods(http.MethodGet)
	r.HandleFunc("/users", h.PostUser).Methods(http.MethodPost)
	r.HandleFunc("/users/{id}", h.GetUser).Methods(http.MethodGet)
	r.HandleFunc("/users/{id}/rss", h.GetUserFeed).Methods(http.MethodGet)
	r.HandleFunc("/login", h.GetLogin).Methods(http.MethodGet)
	r.HandleFunc("/login/{id}", h.PostLogin).Methods(http.MethodPost)
	r.HandleFunc("/podcast", h.PostSubscription).Methods(http.MethodPost)
	r.HandleFunc("/subscribe", h.PostSubscription).Methods(http.MethodPost)
	return r
}

func (h *Handlers) Hello(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, "hello world")
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError maps an error from the service layer to a status code and a
// fixed client message. The wrapped error is only logged.
func (h *Handlers) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, msg := http.StatusInternalServerError, "internal server error"
	switch {
	case errors.Is(err, db.ErrNotFound):
		status, msg = http.StatusNotFound, "not found"
	case errors.Is(err, service.ErrUnauthorized):
		status, msg = http.StatusBadRequest, "no user logged in"
	case errors.Is(err, feed.ErrFetch):
		status, msg = http.StatusBadRequest, "feed could not be fetched"
	case errors.Is(err, feed.ErrParse):
		status, msg = http.StatusBadRequest, "feed is not a valid RSS document"
	}

	log := h.log.WithFields(logrus.Fields{"method": r.Method, "path": r.URL.Path, "status": status})
	if status == http.StatusInternalServerError {
		log.WithError(err).Error("request failed")
	} else {
		log.WithError(err).Debug("request rejected")
	}
	writeJSON(w, status, errorResponse{Error: msg})
}

func badRequest(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusBadRequest, errorResponse{Error: msg})
}

func pathID(r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	return id, err == nil
}
