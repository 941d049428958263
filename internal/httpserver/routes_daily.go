// internal/httpserver/routes_daily.go
//
// HTTP routes for the "word of the day" mode.
//   - POST /daily/new → start (or resume) today's game for the calling player.
//   - GET  /daily     → today's date key and how many players started it.
//
// Every player gets the same target on the same UTC date. A player who asks
// again on the same day gets their existing game back, so the daily word
// cannot be rerolled by starting over.

package httpserver

import (
	"context"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/robalobadob/wordall/internal/daily"
	"github.com/robalobadob/wordall/internal/game"
	"github.com/robalobadob/wordall/internal/store"
	"github.com/robalobadob/wordall/internal/words"
)

// dailyServer tracks which game each player uses for each date.
type dailyServer struct {
	srv   *Server
	mu    sync.Mutex        // guards games
	games map[string]string // playerID|date → game ID
}

// mountDaily registers all /daily routes.
func (s *Server) mountDaily(r chi.Router) {
	s.daily = &dailyServer{srv: s, games: make(map[string]string)}
	r.Route("/daily", func(r chi.Router) {
		r.Get("/", s.daily.handleInfo)
		r.Post("/new", s.daily.handleNew)
	})
}

// handleNew creates or resumes the caller's game for today.
func (d *dailyServer) handleNew(w http.ResponseWriter, r *http.Request) {
	s := d.srv
	now := s.now()
	date := daily.DateKey(now)

	list, err := s.words.Get(r.Context(), s.cfg.WordLength)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "no_words", err.Error())
		return
	}
	player, token := s.ensurePlayer(w, r)
	key := player + "|" + date

	// An entry swept between resolve and With is recreated once.
	var v gameView
	status := http.StatusOK
	for attempt := 0; ; attempt++ {
		e, created, err := d.resolve(r.Context(), key, list, player, now)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "save_failed", err.Error())
			return
		}
		if created {
			status = http.StatusCreated
			s.log.Info().Str("gameId", e.ID).Str("date", date).Msg("daily game created")
		}
		err = e.With(now, func(sess *game.Session) error {
			v = viewOf(e.ID, sess)
			return nil
		})
		if err == nil {
			break
		}
		if attempt > 0 {
			writeError(w, http.StatusNotFound, "not_found", "no such game")
			return
		}
	}
	v.Date = date
	v.Token = token
	writeJSON(w, status, v)
}

// resolve returns the player's game for key, creating it if needed. Only the
// mapping is guarded by d.mu; the entry itself is not locked here.
func (d *dailyServer) resolve(ctx context.Context, key string, list *words.List, player string, now time.Time) (*store.Entry, bool, error) {
	s := d.srv
	d.mu.Lock()
	defer d.mu.Unlock()
	if e, err := d.lookup(ctx, key); err == nil {
		return e, false, nil
	}
	answer := daily.Word(list, now, s.cfg.DailySalt)
	e := store.NewEntry(genID(), player, s.newSession(answer, list.WordLength()), now)
	if err := s.store.Save(ctx, e); err != nil {
		return nil, false, err
	}
	d.games[key] = e.ID
	return e, true, nil
}

// lookup returns the stored game for key, if it still exists. Callers hold d.mu.
func (d *dailyServer) lookup(ctx context.Context, key string) (*store.Entry, error) {
	id, ok := d.games[key]
	if !ok {
		return nil, store.ErrNotFound
	}
	return d.srv.store.Get(ctx, id)
}

// handleInfo reports today's date key and the number of daily games tracked.
func (d *dailyServer) handleInfo(w http.ResponseWriter, r *http.Request) {
	date := daily.DateKey(d.srv.now())
	d.mu.Lock()
	n := 0
	for key := range d.games {
		if strings.HasSuffix(key, "|"+date) {
			n++
		}
	}
	d.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]any{"date": date, "players": n})
}

// forget drops mappings whose game is no longer in st.
func (d *dailyServer) forget(st store.Store) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for key, id := range d.games {
		if _, err := st.Get(context.Background(), id); err != nil {
			delete(d.games, key)
		}
	}
}
