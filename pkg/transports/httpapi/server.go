// Package httpapi is the presentation boundary: a thin HTTP and WebSocket
// layer that feeds projector output to a two-column chat front end. No chat
// logic lives here; every mutation goes through the engine.
package httpapi

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"

	"github.com/harunnryd/parley/pkg/adapters/transcribe"
	"github.com/harunnryd/parley/pkg/chat"
	"github.com/harunnryd/parley/pkg/langs"
	"github.com/harunnryd/parley/pkg/logging"
	"github.com/harunnryd/parley/pkg/parley"
	"github.com/harunnryd/parley/pkg/pipeline"
	"github.com/harunnryd/parley/pkg/render"
)

// maxUploadBytes caps audio uploads at 20 MiB.
const maxUploadBytes = 20 << 20

type Server struct {
	engine   *parley.Engine
	log      *slog.Logger
	upgrader websocket.Upgrader

	mu    sync.Mutex
	conns map[*wsClient]struct{}
}

// wsClient serializes writes to one connection. gorilla/websocket allows at
// most one concurrent writer per Conn, and broadcasts arrive on whichever
// handler goroutine performed the mutation.
type wsClient struct {
	mu    sync.Mutex
	conn  *websocket.Conn
	party chat.Party
}

func (c *wsClient) writeJSON(v any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteJSON(v)
}

func NewServer(engine *parley.Engine, logger *slog.Logger) *Server {
	return &Server{
		engine: engine,
		log:    logging.NewComponentLogger(logger, "httpapi"),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
		conns: make(map[*wsClient]struct{}),
	}
}

// Router builds the chi mux for the API surface.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Route("/api", func(r chi.Router) {
		r.Post("/messages/{party}/text", s.handleText)
		r.Post("/messages/{party}/audio", s.handleUpload)
		r.Post("/messages/{party}/recording", s.handleRecording)
		r.Get("/view/{party}", s.handleView)
		r.Get("/languages", s.handleLanguages)
		r.Put("/languages/{party}", s.handleSetLanguage)
		r.Post("/clear", s.handleClear)
	})
	r.Get("/ws/{party}", s.handleWS)
	return r
}

type bubblePayload struct {
	MessageID string `json:"message_id"`
	Text      string `json:"text"`
	AudioB64  string `json:"audio_b64,omitempty"`
	TimeLabel string `json:"time_label"`
	Side      string `json:"side"`
	Mine      bool   `json:"mine"`
}

type viewPayload struct {
	Party   string          `json:"party"`
	Bubbles []bubblePayload `json:"bubbles"`
}

func toPayload(party chat.Party, bubbles []render.Bubble) viewPayload {
	out := viewPayload{Party: party.String(), Bubbles: make([]bubblePayload, 0, len(bubbles))}
	for _, b := range bubbles {
		p := bubblePayload{
			MessageID: b.MessageID,
			Text:      b.Text,
			TimeLabel: b.TimeLabel,
			Side:      string(b.Side),
			Mine:      b.Mine,
		}
		if len(b.Audio) > 0 {
			p.AudioB64 = base64.StdEncoding.EncodeToString(b.Audio)
		}
		out.Bubbles = append(out.Bubbles, p)
	}
	return out
}

func (s *Server) handleText(w http.ResponseWriter, r *http.Request) {
	party, ok := s.party(w, r)
	if !ok {
		return
	}
	var body struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json body")
		return
	}
	msg, err := s.engine.SendText(r.Context(), party, body.Text)
	if err != nil {
		s.writeIngestError(w, err)
		return
	}
	s.broadcast()
	writeJSON(w, http.StatusCreated, map[string]string{"message_id": msg.ID})
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	party, ok := s.party(w, r)
	if !ok {
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	file, header, err := r.FormFile("clip")
	if err != nil {
		writeError(w, http.StatusBadRequest, "missing clip file")
		return
	}
	defer file.Close()
	data, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusBadRequest, "unreadable clip")
		return
	}
	msg, err := s.engine.SendUpload(r.Context(), party, header.Filename, data)
	if err != nil {
		s.writeIngestError(w, err)
		return
	}
	s.broadcast()
	writeJSON(w, http.StatusCreated, map[string]string{"message_id": msg.ID})
}

func (s *Server) handleRecording(w http.ResponseWriter, r *http.Request) {
	party, ok := s.party(w, r)
	if !ok {
		return
	}
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxUploadBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, "unreadable clip")
		return
	}
	msg, err := s.engine.SendRecording(r.Context(), party, data)
	if err != nil {
		s.writeIngestError(w, err)
		return
	}
	s.broadcast()
	writeJSON(w, http.StatusCreated, map[string]string{"message_id": msg.ID})
}

func (s *Server) handleView(w http.ResponseWriter, r *http.Request) {
	party, ok := s.party(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, toPayload(party, s.engine.View(party)))
}

func (s *Server) handleLanguages(w http.ResponseWriter, r *http.Request) {
	choices := make([]map[string]string, 0, len(langs.Choices()))
	for _, c := range langs.Choices() {
		choices = append(choices, map[string]string{"name": c.Name, "code": c.Code})
	}
	current := s.engine.Languages()
	writeJSON(w, http.StatusOK, map[string]any{
		"party_a": current[chat.PartyA],
		"party_b": current[chat.PartyB],
		"choices": choices,
	})
}

func (s *Server) handleSetLanguage(w http.ResponseWriter, r *http.Request) {
	party, ok := s.party(w, r)
	if !ok {
		return
	}
	var body struct {
		Code string `json:"code"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json body")
		return
	}
	if err := s.engine.SetLanguage(party, body.Code); err != nil {
		if errors.Is(err, parley.ErrUnknownLanguage) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"party": party.String(), "code": body.Code})
}

func (s *Server) handleClear(w http.ResponseWriter, r *http.Request) {
	s.engine.Clear()
	s.broadcast()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	party, ok := s.party(w, r)
	if !ok {
		return
	}
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn("ws_upgrade_failed", slog.String("error", err.Error()))
		return
	}
	client := &wsClient{conn: conn, party: party}
	s.mu.Lock()
	s.conns[client] = struct{}{}
	s.mu.Unlock()
	s.log.Info("ws_connected", slog.String("party", party.String()))

	// Initial snapshot so a reconnecting viewer catches up immediately.
	s.push(client)

	// Reader loop only detects closure; clients never send payloads.
	go func() {
		defer s.drop(client)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

func (s *Server) drop(client *wsClient) {
	s.mu.Lock()
	delete(s.conns, client)
	s.mu.Unlock()
	_ = client.conn.Close()
}

// broadcast pushes each connected viewer their own projection.
func (s *Server) broadcast() {
	s.mu.Lock()
	subs := make([]*wsClient, 0, len(s.conns))
	for c := range s.conns {
		subs = append(subs, c)
	}
	s.mu.Unlock()
	for _, client := range subs {
		s.push(client)
	}
}

func (s *Server) push(client *wsClient) {
	payload := toPayload(client.party, s.engine.View(client.party))
	if err := client.writeJSON(payload); err != nil {
		s.log.Warn("ws_push_failed",
			slog.String("party", client.party.String()),
			slog.String("error", err.Error()))
		s.drop(client)
	}
}

func (s *Server) party(w http.ResponseWriter, r *http.Request) (chat.Party, bool) {
	party, err := chat.ParseParty(chi.URLParam(r, "party"))
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return "", false
	}
	return party, true
}

func (s *Server) writeIngestError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, pipeline.ErrEmptyUtterance):
		writeError(w, http.StatusUnprocessableEntity, "utterance was empty")
	case transcribe.IsTranscriptionError(err):
		writeError(w, http.StatusUnprocessableEntity, "audio could not be transcribed")
	case errors.Is(err, parley.ErrUnsupportedAudio):
		writeError(w, http.StatusUnsupportedMediaType, err.Error())
	case errors.Is(err, parley.ErrClipTooShort):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, parley.ErrUnknownParty):
		writeError(w, http.StatusNotFound, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
