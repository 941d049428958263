// internal/httpserver/server.go
//
// HTTP host for independent single-player games.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs,
//     request logging).
//   - Public endpoints: "/", "/health", "/debug/words".
//   - Game endpoints: POST /games, GET /games/{id}, POST /games/{id}/guess,
//     POST /games/{id}/new, DELETE /games/{id}.
//   - Daily endpoints: mounted under /daily.
//   - Idle game expiry (Sweep, RunSweeper).
//
// Notes:
//   - Every game owns its own game.Session; games never share state.
//   - Players are anonymous and identified by a signed token (see player.go);
//     a game is only visible to the player who created it.
//   - The optional dictionary pre-check runs before SubmitGuess and never
//     changes the session when it fails.

package httpserver

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/robalobadob/wordall/internal/game"
	"github.com/robalobadob/wordall/internal/store"
	"github.com/robalobadob/wordall/internal/words"
)

// Library provides word lists by length. *words.Library satisfies it.
type Library interface {
	Get(ctx context.Context, length int) (*words.List, error)
	Contains(word string) bool
}

// Checker is an external "is this a real word" lookup.
type Checker interface {
	IsWord(ctx context.Context, word string) (bool, error)
}

// Config holds the server's tunables.
type Config struct {
	WordLength    int
	MaxGuesses    int
	Strict        bool
	DailySalt     string
	Secret        string
	TokenTTL      time.Duration
	GameTTL       time.Duration
	CookieName    string
	SecureCookies bool
	ClientOrigin  string
}

// Deps are the collaborators the server calls into.
type Deps struct {
	Store   store.Store
	Words   Library
	Checker Checker // optional
	Logger  zerolog.Logger
	Now     func() time.Time // optional, defaults to time.Now
}

// Server bundles router, game store and word library.
type Server struct {
	r       *chi.Mux
	cfg     Config
	store   store.Store
	words   Library
	checker Checker
	log     zerolog.Logger
	now     func() time.Time
	daily   *dailyServer
}

// New constructs a Server, installs middleware, and registers routes.
func New(cfg Config, deps Deps) *Server {
	if cfg.WordLength <= 0 {
		cfg.WordLength = game.DefaultWordLength
	}
	if cfg.MaxGuesses <= 0 {
		cfg.MaxGuesses = game.DefaultMaxGuesses
	}
	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = 14 * 24 * time.Hour
	}
	if cfg.GameTTL <= 0 {
		cfg.GameTTL = 24 * time.Hour
	}
	if cfg.CookieName == "" {
		cfg.CookieName = "wordall_player"
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}

	s := &Server{
		r:       chi.NewRouter(),
		cfg:     cfg,
		store:   deps.Store,
		words:   deps.Words,
		checker: deps.Checker,
		log:     deps.Logger.With().Str("component", "httpserver").Logger(),
		now:     deps.Now,
	}

	// --- middleware ---
	s.r.Use(chimw.RequestID)                 // add X-Request-ID
	s.r.Use(chimw.RealIP)                    // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(s.requestLogger)                 // one log line per request
	s.r.Use(chimw.Recoverer)                 // recover from panics
	s.r.Use(chimw.Timeout(10 * time.Second)) // bound handler time
	s.r.Use(jsonContentType)                 // default JSON responses
	s.r.Use(s.cors)                          // credentials-friendly CORS
	s.r.Use(s.withPlayer)                    // player id from token, if any

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"service":"wordall","endpoints":["/health","POST /games","GET /games/{id}","POST /games/{id}/guess","POST /games/{id}/new","DELETE /games/{id}","POST /daily/new"]}`))
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"ok":true}`))
	})
	s.r.Get("/debug/words", s.handleWordStats)

	// --- games ---
	s.r.Post("/games", s.handleNewGame)
	s.r.Route("/games/{id}", func(r chi.Router) {
		r.Use(requirePlayer)
		r.Get("/", s.handleGetGame)
		r.Delete("/", s.handleDeleteGame)
		r.Post("/guess", s.handleGuess)
		r.Post("/new", s.handleRestart)
	})

	s.mountDaily(s.r)

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not_found", "no route for "+r.URL.Path)
	})

	return s
}

// Handler exposes the router (used by the serve command and tests).
func (s *Server) Handler() http.Handler { return s.r }

// Sweep drops games idle for longer than the configured TTL.
func (s *Server) Sweep(ctx context.Context) int {
	n := s.store.Sweep(ctx, s.now().Add(-s.cfg.GameTTL))
	if n > 0 {
		s.log.Info().Int("expired", n).Int("active", s.store.Len()).Msg("swept idle games")
	}
	s.daily.forget(s.store)
	return n
}

// RunSweeper calls Sweep every interval (default one minute) until ctx is done.
func (s *Server) RunSweeper(ctx context.Context, interval time.Duration) error {
	if interval <= 0 {
		interval = time.Minute
	}
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-t.C:
			s.Sweep(ctx)
		}
	}
}

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// cors enables credentialed CORS for a single configured origin.
func (s *Server) cors(next http.Handler) http.Handler {
	origin := s.cfg.ClientOrigin
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if origin != "" {
			w.Header().Set("Vary", "Origin")
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Set("Access-Control-Allow-Methods", "GET,POST,DELETE,OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		}
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// requestLogger logs method, path, status and latency for every request.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.log.Debug().
			Str("requestId", chimw.GetReqID(r.Context())).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("elapsed", time.Since(start)).
			Msg("request")
	})
}

// ------------------------------ GAME ---------------------------------------

// newGameReq is the payload for POST /games and POST /games/{id}/new.
// Both fields are optional.
type newGameReq struct {
	WordLength int  `json:"wordLength"`
	Daily      bool `json:"daily"`
}

// guessReq is the payload for POST /games/{id}/guess.
type guessReq struct {
	Guess string `json:"guess"`
}

// gameView is the JSON shape of a game returned by every game endpoint.
type gameView struct {
	GameID     string                 `json:"gameId"`
	WordLength int                    `json:"wordLength"`
	MaxGuesses int                    `json:"maxGuesses"`
	Remaining  int                    `json:"remaining"`
	State      string                 `json:"state"` // "playing" | "won" | "lost"
	Attempts   []game.Attempt         `json:"attempts"`
	Letters    map[string]game.Status `json:"letters"`
	Answer     string                 `json:"answer,omitempty"` // only once finished
	Date       string                 `json:"date,omitempty"`   // daily games only
	Token      string                 `json:"token,omitempty"`  // only when newly issued
}

func viewOf(id string, sess *game.Session) gameView {
	v := gameView{
		GameID:     id,
		WordLength: sess.WordLength(),
		MaxGuesses: sess.MaxGuesses(),
		Remaining:  sess.RemainingGuesses(),
		State:      stateOf(sess),
		Attempts:   sess.Attempts(),
		Letters:    make(map[string]game.Status),
	}
	for r, st := range sess.UsedLetters() {
		v.Letters[string(r)] = st
	}
	if v.State != "playing" {
		v.Answer = sess.Target()
	}
	return v
}

// stateOf reports a coarse string representation of the session state.
func stateOf(sess *game.Session) string {
	switch {
	case sess.IsSolved():
		return "won"
	case sess.RemainingGuesses() == 0:
		return "lost"
	default:
		return "playing"
	}
}

// newSession builds a session configured the way this server plays.
func (s *Server) newSession(target string, length int) *game.Session {
	opts := []game.Option{game.WithWordLength(length), game.WithMaxGuesses(s.cfg.MaxGuesses)}
	if s.cfg.Strict {
		opts = append(opts, game.WithLexicon(s.words))
	}
	return game.New(target, opts...)
}

// handleNewGame creates a game with a random target for the calling player,
// issuing a player token first if the caller has none.
func (s *Server) handleNewGame(w http.ResponseWriter, r *http.Request) {
	var req newGameReq
	if !decodeOptional(w, r, &req) {
		return
	}
	if req.Daily {
		s.daily.handleNew(w, r)
		return
	}
	length := req.WordLength
	if length <= 0 {
		length = s.cfg.WordLength
	}
	list, err := s.words.Get(r.Context(), length)
	if err != nil {
		s.log.Warn().Err(err).Int("wordLength", length).Msg("load words")
		writeError(w, http.StatusBadRequest, "no_words", err.Error())
		return
	}

	player, token := s.ensurePlayer(w, r)
	e := store.NewEntry(genID(), player, s.newSession(list.Random(), length), s.now())
	if err := s.store.Save(r.Context(), e); err != nil {
		s.log.Error().Err(err).Msg("save game")
		writeError(w, http.StatusInternalServerError, "save_failed", err.Error())
		return
	}
	s.log.Info().Str("gameId", e.ID).Int("wordLength", length).Msg("game created")

	var v gameView
	_ = e.With(s.now(), func(sess *game.Session) error {
		v = viewOf(e.ID, sess)
		return nil
	})
	v.Token = token
	writeJSON(w, http.StatusCreated, v)
}

// handleGetGame returns the current view of a game.
func (s *Server) handleGetGame(w http.ResponseWriter, r *http.Request) {
	e, ok := s.ownedEntry(w, r)
	if !ok {
		return
	}
	var v gameView
	err := e.With(s.now(), func(sess *game.Session) error {
		v = viewOf(e.ID, sess)
		return nil
	})
	if err != nil {
		writeError(w, http.StatusNotFound, "not_found", "no such game")
		return
	}
	writeJSON(w, http.StatusOK, v)
}

// handleDeleteGame abandons a game.
func (s *Server) handleDeleteGame(w http.ResponseWriter, r *http.Request) {
	e, ok := s.ownedEntry(w, r)
	if !ok {
		return
	}
	if err := s.store.Delete(r.Context(), e.ID); err != nil {
		writeError(w, http.StatusInternalServerError, "delete_failed", err.Error())
		return
	}
	s.log.Info().Str("gameId", e.ID).Msg("game deleted")
	w.WriteHeader(http.StatusNoContent)
}

// guessFailure maps a rejected guess to its HTTP status and error code.
type guessFailure struct {
	status int
	code   string
	err    error
}

func (f *guessFailure) Error() string { return f.err.Error() }

// handleGuess pre-checks and applies a guess.
//   - 422 invalid_guess: malformed, or not a word
//   - 409 budget_exhausted: game already solved or out of guesses
//   - 502 dictionary_unavailable: the pre-check could not be completed
//
// The dictionary lookup runs without holding the game's lock; the session
// validates the guess again when it is submitted.
func (s *Server) handleGuess(w http.ResponseWriter, r *http.Request) {
	e, ok := s.ownedEntry(w, r)
	if !ok {
		return
	}
	var req guessReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json", err.Error())
		return
	}
	guess := strings.TrimSpace(req.Guess)

	var length, remaining int
	err := e.With(s.now(), func(sess *game.Session) error {
		length, remaining = sess.WordLength(), sess.RemainingGuesses()
		return nil
	})
	if err == nil && remaining > 0 {
		err = s.precheck(r.Context(), guess, length)
	}

	var v gameView
	if err == nil {
		err = e.With(s.now(), func(sess *game.Session) error {
			if err := sess.SubmitGuess(guess); err != nil {
				return err
			}
			v = viewOf(e.ID, sess)
			return nil
		})
	}

	var gf *guessFailure
	switch {
	case err == nil:
		s.log.Debug().Str("gameId", e.ID).Str("state", v.State).Int("remaining", v.Remaining).Msg("guess accepted")
		writeJSON(w, http.StatusOK, v)
	case errors.As(err, &gf):
		writeError(w, gf.status, gf.code, gf.err.Error())
	case errors.Is(err, game.ErrInvalidFormat):
		writeError(w, http.StatusUnprocessableEntity, "invalid_guess", err.Error())
	case errors.Is(err, game.ErrExhaustedBudget):
		writeError(w, http.StatusConflict, "budget_exhausted", err.Error())
	case errors.Is(err, store.ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found", "no such game")
	default:
		writeError(w, http.StatusInternalServerError, "internal", err.Error())
	}
}

// precheck consults the dictionary for well-formed guesses. Other guesses go
// straight to SubmitGuess, which reports them precisely.
func (s *Server) precheck(ctx context.Context, guess string, length int) error {
	if s.checker == nil || !wellFormed(guess, length) {
		return nil
	}
	ok, err := s.checker.IsWord(ctx, strings.ToUpper(guess))
	if err != nil {
		s.log.Warn().Err(err).Msg("dictionary lookup")
		return &guessFailure{status: http.StatusBadGateway, code: "dictionary_unavailable", err: err}
	}
	if !ok {
		return &guessFailure{status: http.StatusUnprocessableEntity, code: "invalid_guess", err: errors.New("not a valid word")}
	}
	return nil
}

// handleRestart starts a new game in place, optionally with a new length.
func (s *Server) handleRestart(w http.ResponseWriter, r *http.Request) {
	e, ok := s.ownedEntry(w, r)
	if !ok {
		return
	}
	var req newGameReq
	if !decodeOptional(w, r, &req) {
		return
	}

	var v gameView
	err := e.With(s.now(), func(sess *game.Session) error {
		length := req.WordLength
		if length <= 0 {
			length = sess.WordLength()
		}
		list, err := s.words.Get(r.Context(), length)
		if err != nil {
			return err
		}
		sess.NewGame(list.Random(), length)
		v = viewOf(e.ID, sess)
		return nil
	})
	switch {
	case errors.Is(err, store.ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found", "no such game")
	case err != nil:
		writeError(w, http.StatusBadRequest, "no_words", err.Error())
	default:
		writeJSON(w, http.StatusOK, v)
	}
}

// ownedEntry loads the game named in the URL, answering 404 when it does not
// exist or belongs to another player.
func (s *Server) ownedEntry(w http.ResponseWriter, r *http.Request) (*store.Entry, bool) {
	e, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil || e.Owner != playerFrom(r.Context()) {
		writeError(w, http.StatusNotFound, "not_found", "no such game")
		return nil, false
	}
	return e, true
}

// handleWordStats reports word-list counts for the default length.
func (s *Server) handleWordStats(w http.ResponseWriter, r *http.Request) {
	list, err := s.words.Get(r.Context(), s.cfg.WordLength)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "no_words", err.Error())
		return
	}
	a, g := list.Stats()
	writeJSON(w, http.StatusOK, map[string]int{"wordLength": list.WordLength(), "answers": a, "allowed": g})
}

// ------------------------------- small util --------------------------------

// decodeOptional decodes a JSON body into v; an empty body leaves v untouched.
func decodeOptional(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "bad_json", err.Error())
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	writeJSON(w, status, map[string]string{"error": code, "message": msg})
}

// wellFormed reports whether guess is length ASCII letters of either case.
func wellFormed(guess string, length int) bool {
	if len(guess) != length {
		return false
	}
	for i := 0; i < len(guess); i++ {
		c := guess[i] | 0x20
		if c < 'a' || c > 'z' {
			return false
		}
	}
	return true
}

// genID creates a 22-char URL-safe, crypto-random identifier (no padding).
func genID() string {
	var b [16]byte
	_, _ = rand.Read(b[:])
	return base64.RawURLEncoding.EncodeToString(b[:])
}
