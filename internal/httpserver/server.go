// internal/httpserver/server.go
//
// HTTP wiring for the word-game backend. The browser client is a dumb
// renderer: it forwards key presses as events and redraws from state
// snapshots, so every route maps 1:1 onto a game operation or query.
//
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs).
//   - Public endpoints: "/", "/health", "/debug/words".
//   - Event endpoints: POST /game/new, /game/letter, /game/delete, /game/guess.
//   - Query endpoints: GET /game/state (snapshot), GET /game/events (SSE).
//   - Anonymous session cookie tying a browser to its in-memory game.
//
// Notes:
//   - CORS is origin-aware and credentials-enabled (so the cookie works).
//   - Events for one session are serialized by the session's own lock;
//     handlers never touch a game outside Session.Update.
//   - A state snapshot is broadcast over SSE after every effective mutation.

package httpserver

import (
	"encoding/json"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/hadlow/wordlet/internal/game"
	"github.com/hadlow/wordlet/internal/store"
	"github.com/hadlow/wordlet/internal/words"
)

// Server bundles router, session store, and the SSE broadcaster.
type Server struct {
	r     *chi.Mux
	store store.Store
	bc    *broadcaster
}

// New constructs a Server, installs middleware, and registers routes.
func New(st store.Store) *Server {
	s := &Server{r: chi.NewRouter(), store: st, bc: newBroadcaster()}

	// --- middleware ---
	s.r.Use(chimw.RequestID) // add X-Request-ID
	s.r.Use(chimw.RealIP)    // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(chimw.Recoverer) // recover from panics
	s.r.Use(corsFromEnv)     // credentials-friendly CORS

	// SSE stays outside the timeout group: the stream is long-lived.
	s.r.Get("/game/events", s.handleEvents)

	s.r.Group(func(r chi.Router) {
		r.Use(chimw.Timeout(10 * time.Second)) // bound handler time
		r.Use(jsonContentType)                 // default JSON responses

		// --- diagnostics ---
		r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(`{"service":"wordlet","endpoints":["/health","POST /game/new","POST /game/letter","POST /game/delete","POST /game/guess","GET /game/state","GET /game/events"]}`))
		})
		r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(`{"ok":true}`))
		})
		r.Get("/debug/words", func(w http.ResponseWriter, _ *http.Request) {
			t, a := words.Stats()
			_ = json.NewEncoder(w).Encode(map[string]int{"targets": t, "allowed": a})
		})

		// --- game events + queries ---
		r.Post("/game/new", s.handleNewGame)
		r.Post("/game/letter", s.handleLetter)
		r.Post("/game/delete", s.handleDelete)
		r.Post("/game/guess", s.handleGuess)
		r.Get("/game/state", s.handleState)
	})

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"not_found","path":"`+r.URL.Path+`"}`, http.StatusNotFound)
	})

	return s
}

// Start begins serving HTTP on addr.
func (s *Server) Start(addr string) error { return http.ListenAndServe(addr, s.r) }

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// corsFromEnv enables credentialed CORS for a single origin.
// Uses CLIENT_ORIGIN env var; defaults to http://localhost:5173.
func corsFromEnv(next http.Handler) http.Handler {
	origin := os.Getenv("CLIENT_ORIGIN")
	if origin == "" {
		origin = "http://localhost:5173"
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Vary", "Origin")
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Allow-Credentials", "true")
		w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ------------------------------ sessions -----------------------------------

const sessionCookieName = "wordlet_session"

// ensureSession returns the browser's session, minting the cookie on first
// contact. Each cookie owns exactly one live game.
func (s *Server) ensureSession(w http.ResponseWriter, r *http.Request) *store.Session {
	if c, err := r.Cookie(sessionCookieName); err == nil && c.Value != "" {
		return s.store.GetOrCreate(c.Value)
	}
	id := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		Secure:   os.Getenv("APP_ENV") == "production",
		SameSite: func() http.SameSite {
			if os.Getenv("APP_ENV") == "production" {
				return http.SameSiteNoneMode
			}
			return http.SameSiteLaxMode
		}(),
		Expires: time.Now().Add(180 * 24 * time.Hour),
	})
	log.Debug().Str("session", id).Msg("new session")
	return s.store.GetOrCreate(id)
}

// ------------------------------ snapshots ----------------------------------

// stateRes is the full render surface for the client: everything the
// original reactive UI derived is here, recomputed per snapshot.
type stateRes struct {
	GameID     string                      `json:"gameId"`
	WordLength int                         `json:"wordLength"`
	Pending    string                      `json:"pending"`
	History    []game.Guess                `json:"history"`
	Finished   bool                        `json:"finished"`
	Hints      map[string]game.LetterMatch `json:"hints"`
	Share      string                      `json:"share,omitempty"` // only once finished
}

// snapshot builds a stateRes from a game. Callers must hold the session
// lock (i.e. call this inside Session.Update).
func snapshot(g *game.Game) stateRes {
	res := stateRes{
		GameID:     g.ID,
		WordLength: len(g.Target),
		Pending:    g.Pending,
		History:    g.History,
		Finished:   g.Finished,
		Hints:      g.KeyboardHints(),
	}
	if g.Finished {
		res.Share = g.ShareText()
	}
	return res
}

// push broadcasts a snapshot to the session's SSE listeners.
func (s *Server) push(sessionID string, res stateRes) {
	data, err := json.Marshal(res)
	if err != nil {
		log.Error().Err(err).Msg("marshal snapshot")
		return
	}
	s.bc.broadcast(sessionID, string(data))
}

// ------------------------------- handlers ----------------------------------

// newGameReq is the payload for POST /game/new.
type newGameReq struct {
	Target string `json:"target"` // optional fixed target (testing)
}

// handleNewGame replaces the session's game with a fresh one.
func (s *Server) handleNewGame(w http.ResponseWriter, r *http.Request) {
	var req newGameReq
	_ = json.NewDecoder(r.Body).Decode(&req)

	sess := s.ensureSession(w, r)
	gameID := sess.Reset(req.Target)
	log.Info().Str("session", sess.ID).Str("gameId", gameID).Msg("new game")

	var res stateRes
	sess.Update(func(g *game.Game) { res = snapshot(g) })
	s.push(sess.ID, res)
	_ = json.NewEncoder(w).Encode(res)
}

// letterReq is the payload for POST /game/letter.
type letterReq struct {
	Letter string `json:"letter"`
}

// handleLetter appends one typed letter to the pending guess.
func (s *Server) handleLetter(w http.ResponseWriter, r *http.Request) {
	var req letterReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Letter == "" {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}

	sess := s.ensureSession(w, r)
	var (
		res     stateRes
		changed bool
	)
	sess.Update(func(g *game.Game) {
		for _, c := range req.Letter {
			changed = g.AppendLetter(c)
			break // a key press carries exactly one letter
		}
		res = snapshot(g)
	})
	if changed {
		s.push(sess.ID, res)
	}
	_ = json.NewEncoder(w).Encode(res)
}

// handleDelete removes the last pending letter.
func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	sess := s.ensureSession(w, r)
	var (
		res     stateRes
		changed bool
	)
	sess.Update(func(g *game.Game) {
		changed = g.DeleteLetter()
		res = snapshot(g)
	})
	if changed {
		s.push(sess.ID, res)
	}
	_ = json.NewEncoder(w).Encode(res)
}

// guessRes is the payload for POST /game/guess responses. A guess not in
// the allowed list is no error: accepted=false and the state is unchanged.
type guessRes struct {
	Accepted bool        `json:"accepted"`
	Guess    *game.Guess `json:"guess,omitempty"`
	State    stateRes    `json:"state"`
}

// handleGuess submits the pending letters as a guess.
func (s *Server) handleGuess(w http.ResponseWriter, r *http.Request) {
	sess := s.ensureSession(w, r)
	var out guessRes
	sess.Update(func(g *game.Game) {
		guess, ok := g.SubmitGuess()
		out.Accepted = ok
		if ok {
			out.Guess = &guess
		} else {
			log.Debug().Str("session", sess.ID).Str("pending", g.Pending).Msg("guess rejected")
		}
		out.State = snapshot(g)
	})
	if out.Accepted {
		s.push(sess.ID, out.State)
	}
	_ = json.NewEncoder(w).Encode(out)
}

// handleState returns one snapshot of the session's game.
func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	sess := s.ensureSession(w, r)
	var res stateRes
	sess.Update(func(g *game.Game) { res = snapshot(g) })
	_ = json.NewEncoder(w).Encode(res)
}

// handleEvents streams state snapshots for the session over SSE.
// The current state is pushed immediately on connect.
func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	sess := s.ensureSession(w, r)
	s.bc.serveSSE(w, r, sess.ID, func(c *sseClient) {
		var res stateRes
		sess.Update(func(g *game.Game) { res = snapshot(g) })
		if data, err := json.Marshal(res); err == nil {
			c.ch <- string(data)
		}
	})
}
