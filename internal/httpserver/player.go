package httpserver

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ctxPlayerKey is the context key type for the calling player's id.
type ctxPlayerKey struct{}

func playerFrom(ctx context.Context) string {
	id, _ := ctx.Value(ctxPlayerKey{}).(string)
	return id
}

// withPlayer decorates requests with the player id from a valid token.
// It never rejects; routes that need a player use requirePlayer.
func (s *Server) withPlayer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if tok := s.bearerOrCookie(r); tok != "" {
			if id, err := s.parseToken(tok); err == nil {
				r = r.WithContext(context.WithValue(r.Context(), ctxPlayerKey{}, id))
			} else {
				s.log.Debug().Err(err).Msg("ignoring player token")
			}
		}
		next.ServeHTTP(w, r)
	})
}

// requirePlayer answers 401 unless withPlayer found a valid token.
func requirePlayer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if playerFrom(r.Context()) == "" {
			writeError(w, http.StatusUnauthorized, "unauthorized", "missing or invalid player token")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ensurePlayer returns the caller's player id. Callers without one get a new
// id, a signed token in a cookie, and the token itself for non-browser
// clients; token is empty when the caller already had a valid one.
func (s *Server) ensurePlayer(w http.ResponseWriter, r *http.Request) (id, token string) {
	if id := playerFrom(r.Context()); id != "" {
		return id, ""
	}
	id = genID()
	token, exp, err := s.signToken(id)
	if err != nil {
		s.log.Error().Err(err).Msg("sign player token")
		return id, ""
	}
	s.setPlayerCookie(w, token, exp)
	return id, token
}

// signToken creates an HS256 JWT whose subject is the player id.
func (s *Server) signToken(id string) (string, time.Time, error) {
	now := s.now()
	exp := now.Add(s.cfg.TokenTTL)
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   id,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(exp),
	})
	ss, err := t.SignedString(s.secret())
	return ss, exp, err
}

// parseToken validates a player token and returns its subject.
func (s *Server) parseToken(raw string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(raw, claims,
		func(t *jwt.Token) (any, error) { return s.secret(), nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return "", err
	}
	if claims.Subject == "" {
		return "", jwt.ErrTokenInvalidSubject
	}
	return claims.Subject, nil
}

func (s *Server) secret() []byte {
	if s.cfg.Secret == "" {
		return []byte("dev_secret_change_me")
	}
	return []byte(s.cfg.Secret)
}

// setPlayerCookie writes the token cookie with appropriate security attributes.
func (s *Server) setPlayerCookie(w http.ResponseWriter, token string, exp time.Time) {
	sameSite := http.SameSiteLaxMode
	if s.cfg.SecureCookies {
		sameSite = http.SameSiteNoneMode // required for third-party contexts when Secure
	}
	http.SetCookie(w, &http.Cookie{
		Name:     s.cfg.CookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.cfg.SecureCookies,
		SameSite: sameSite,
		Expires:  exp,
	})
}

// bearerOrCookie extracts a token from the Authorization header or the cookie.
func (s *Server) bearerOrCookie(r *http.Request) string {
	if a := r.Header.Get("Authorization"); strings.HasPrefix(strings.ToLower(a), "bearer ") {
		return strings.TrimSpace(a[7:])
	}
	if c, err := r.Cookie(s.cfg.CookieName); err == nil {
		return c.Value
	}
	return ""
}
