package http

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"ccse-study-service/internal/app"
	"ccse-study-service/internal/domain"
	"github.com/gorilla/websocket"
)

// ProgressSync is the slice of the progress store the UI boundary drives directly.
type ProgressSync interface {
	Snapshot() domain.ProgressState
	Identity() string
	SignIn(ctx context.Context, identity string) error
	SignOut()
}

// IdentityVerifier turns an identity provider token into a stable identity key.
type IdentityVerifier interface {
	Verify(token string) (string, error)
}

type WSHandler struct {
	service  *app.StudyService
	progress ProgressSync
	verifier IdentityVerifier
	upgrader websocket.Upgrader
}

// NewWSHandler wires the study controller to websocket clients. A nil verifier
// disables signIn.
func NewWSHandler(service *app.StudyService, progress ProgressSync, verifier IdentityVerifier) *WSHandler {
	return &WSHandler{
		service:  service,
		progress: progress,
		verifier: verifier,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

type inboundMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type selectTabPayload struct {
	Tab app.Tab `json:"tab"`
}

type searchPayload struct {
	Query string `json:"query"`
}

type answerPayload struct {
	QuestionID int           `json:"questionId"`
	Letter     domain.Letter `json:"letter"`
}

type favoritePayload struct {
	QuestionID int `json:"questionId"`
}

type signInPayload struct {
	Token string `json:"token"`
}

type outboundMessage struct {
	Type    string `json:"type"`
	Payload any    `json:"payload"`
}

type progressPayload struct {
	Identity string               `json:"identity,omitempty"`
	State    domain.ProgressState `json:"state"`
}

type errorPayload struct {
	Message  string `json:"message"`
	Rejected bool   `json:"rejected,omitempty"`
}

// ServeWS upgrades HTTP requests to websockets and dispatches UI events to the study service.
func (h *WSHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	clientID := r.URL.Query().Get("clientId")
	if clientID == "" {
		http.Error(w, "missing clientId", http.StatusBadRequest)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("ws upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	ctx := r.Context()
	defer h.service.Close(ctx, clientID)

	send := make(chan outboundMessage, 16)
	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		for msg := range send {
			if err := conn.WriteJSON(msg); err != nil {
				log.Printf("ws write error: %v", err)
				// keep draining so the reader never blocks on a dead connection
				for range send {
				}
				return
			}
		}
	}()

	send <- outboundMessage{Type: "view", Payload: h.service.Open(ctx, clientID)}
	send <- h.progressMessage()

	for {
		var inbound inboundMessage
		if err := conn.ReadJSON(&inbound); err != nil {
			break
		}
		for _, msg := range h.handle(ctx, clientID, inbound) {
			send <- msg
		}
	}

	close(send)
	<-writerDone
}

func (h *WSHandler) handle(ctx context.Context, clientID string, in inboundMessage) []outboundMessage {
	switch in.Type {
	case "selectTab":
		var p selectTabPayload
		if err := decodePayload(in.Payload, &p); err != nil {
			return errorMessages("invalid selectTab payload")
		}
		return viewOrError(h.service.SelectTab(ctx, clientID, p.Tab))

	case "search":
		var p searchPayload
		if err := decodePayload(in.Payload, &p); err != nil {
			return errorMessages("invalid search payload")
		}
		return viewOrError(h.service.Search(ctx, clientID, p.Query))

	case "regenerateExam":
		return viewOrError(h.service.RegenerateExam(ctx, clientID))

	case "answer":
		var p answerPayload
		if err := decodePayload(in.Payload, &p); err != nil {
			return errorMessages("invalid answer payload")
		}
		out := viewOrError(h.service.Answer(ctx, clientID, p.QuestionID, p.Letter))
		return append(out, h.progressMessage())

	case "submitExam":
		result, view, err := h.service.SubmitExam(ctx, clientID)
		if err != nil {
			return []outboundMessage{errorMessage(err)}
		}
		return []outboundMessage{
			{Type: "examResult", Payload: result},
			{Type: "view", Payload: view},
			h.progressMessage(),
		}

	case "toggleFavorite":
		var p favoritePayload
		if err := decodePayload(in.Payload, &p); err != nil {
			return errorMessages("invalid toggleFavorite payload")
		}
		_, view, err := h.service.ToggleFavorite(ctx, clientID, p.QuestionID)
		if err != nil {
			return []outboundMessage{errorMessage(err)}
		}
		return []outboundMessage{{Type: "view", Payload: view}, h.progressMessage()}

	case "signIn":
		var p signInPayload
		if err := decodePayload(in.Payload, &p); err != nil {
			return errorMessages("invalid signIn payload")
		}
		if h.verifier == nil {
			return errorMessages("sign-in is not configured")
		}
		identity, err := h.verifier.Verify(p.Token)
		if err != nil {
			return []outboundMessage{errorMessage(err)}
		}
		if err := h.progress.SignIn(ctx, identity); err != nil {
			log.Printf("sign in %s: %v", identity, err)
			return errorMessages("progress sync unavailable")
		}
		return h.refresh(ctx, clientID)

	case "signOut":
		h.progress.SignOut()
		return []outboundMessage{h.progressMessage()}

	default:
		return errorMessages("unsupported message type")
	}
}

// refresh re-renders after progress was replaced underneath the client.
func (h *WSHandler) refresh(ctx context.Context, clientID string) []outboundMessage {
	out := viewOrError(h.service.View(ctx, clientID))
	return append(out, h.progressMessage())
}

func (h *WSHandler) progressMessage() outboundMessage {
	return outboundMessage{Type: "progress", Payload: progressPayload{
		Identity: h.progress.Identity(),
		State:    h.progress.Snapshot(),
	}}
}

func decodePayload(raw json.RawMessage, dst any) error {
	if len(raw) == 0 {
		return errors.New("empty payload")
	}
	return json.Unmarshal(raw, dst)
}

func viewOrError(view app.View, err error) []outboundMessage {
	if err != nil {
		return []outboundMessage{errorMessage(err)}
	}
	return []outboundMessage{{Type: "view", Payload: view}}
}

func errorMessage(err error) outboundMessage {
	return outboundMessage{Type: "error", Payload: errorPayload{Message: err.Error(), Rejected: app.IsRejection(err)}}
}

func errorMessages(msg string) []outboundMessage {
	return []outboundMessage{{Type: "error", Payload: errorPayload{Message: msg}}}
}
