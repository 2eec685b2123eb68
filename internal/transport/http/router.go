package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"ccse-study-service/internal/catalog"
	"ccse-study-service/internal/domain"
	"github.com/gorilla/mux"
	"github.com/rs/cors"
)

// ProgressReader exposes the persisted progress document.
type ProgressReader interface {
	Snapshot() domain.ProgressState
	Identity() string
}

type taskSummary struct {
	ID        domain.TaskID `json:"id"`
	Title     string        `json:"title"`
	Questions int           `json:"questions"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// NewRouter serves the read-only catalog and progress API next to the websocket endpoint.
func NewRouter(cat *catalog.Catalog, progress ProgressReader, ws *WSHandler, allowedOrigins []string) http.Handler {
	r := mux.NewRouter()

	r.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	}).Methods("GET")
	r.HandleFunc("/ws", ws.ServeWS).Methods("GET")

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/tasks", func(w http.ResponseWriter, r *http.Request) {
		tasks := cat.Tasks()
		out := make([]taskSummary, 0, len(tasks))
		for _, t := range tasks {
			out = append(out, taskSummary{ID: t.ID, Title: t.Title, Questions: len(t.Questions)})
		}
		writeJSON(w, http.StatusOK, out)
	}).Methods("GET")

	api.HandleFunc("/tasks/{id}", func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.Atoi(mux.Vars(r)["id"])
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid task id"})
			return
		}
		task, ok := cat.Task(domain.TaskID(id))
		if !ok {
			writeJSON(w, http.StatusNotFound, errorResponse{Error: domain.ErrTaskNotFound.Error()})
			return
		}
		writeJSON(w, http.StatusOK, task)
	}).Methods("GET")

	api.HandleFunc("/questions", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, catalog.Search(cat.AllQuestions(), r.URL.Query().Get("search")))
	}).Methods("GET")

	api.HandleFunc("/progress", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, progressPayload{Identity: progress.Identity(), State: progress.Snapshot()})
	}).Methods("GET")

	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"*"}
	}
	c := cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type"},
	})
	return c.Handler(r)
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
