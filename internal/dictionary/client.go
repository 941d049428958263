// internal/dictionary/client.go
//
// Client for an external dictionary service used as a pre-check before a
// guess reaches the game session.
//
// The service follows the dictionaryapi.dev convention:
//   GET {base}/{word} → 200 when the word has entries, 404 when it has none.
// Any other outcome is an error; callers report it and leave the session
// untouched.

package dictionary

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

const DefaultBaseURL = "https://api.dictionaryapi.dev/api/v2/entries/en"

// ErrUnavailable wraps every failure that is not a definite yes/no answer.
var ErrUnavailable = errors.New("dictionary unavailable")

// Client looks words up in a remote dictionary.
type Client struct {
	base string
	http *http.Client
	log  zerolog.Logger
}

// New returns a Client for baseURL (DefaultBaseURL when empty). A
// non-positive timeout defaults to five seconds.
func New(baseURL string, timeout time.Duration, log zerolog.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Client{
		base: strings.TrimRight(baseURL, "/"),
		http: &http.Client{Timeout: timeout},
		log:  log.With().Str("component", "dictionary").Logger(),
	}
}

// IsWord reports whether the dictionary knows word.
func (c *Client) IsWord(ctx context.Context, word string) (bool, error) {
	word = strings.ToLower(strings.TrimSpace(word))
	if word == "" {
		return false, nil
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base+"/"+url.PathEscape(word), nil)
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn().Err(err).Str("word", word).Msg("lookup failed")
		return false, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 1<<20))

	c.log.Debug().
		Str("word", word).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Msg("lookup")

	switch resp.StatusCode {
	case http.StatusOK:
		return true, nil
	case http.StatusNotFound:
		return false, nil
	default:
		return false, fmt.Errorf("%w: unexpected status %d", ErrUnavailable, resp.StatusCode)
	}
}
