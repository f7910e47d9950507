package client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog/log"
)

type (
	// Crumb is the anti-forgery token the build server requires on state
	// changing requests. The zero value means the server has no csrf
	// protection.
	Crumb struct {
		Field string `json:"crumbRequestField"`
		Value string `json:"crumb"`
	}
)

var (
	// ErrCrumb is the family of crumb retrieval errors.
	ErrCrumb = errors.New("crumb request")

	// ErrSubmit is the family of script submission errors.
	ErrSubmit = errors.New("script request")

	// ErrStatusCode is returned when the server answers with an
	// unexpected status code.
	ErrStatusCode = errors.New("unexpected status code")
)

// IsZero returns true if the crumb holds no token.
func (t Crumb) IsZero() bool {
	return t.Field == "" || t.Value == ""
}

// GetCrumb fetches a crumb from the crumb issuer. The session cookie set by
// the server is kept by the client, as the crumb is bound to the session.
//
// A 404 response means the crumb issuer is disabled, and returns a zero
// crumb without error.
func (t *T) GetCrumb(ctx context.Context) (Crumb, error) {
	var c Crumb
	req, err := t.factory.NewRequestWithContext(ctx, http.MethodGet, t.crumbPath, nil)
	if err != nil {
		return c, fmt.Errorf("%w: %w", ErrCrumb, err)
	}
	req.Header.Set("Accept", "application/json")
	resp, err := t.httpClient.Do(req)
	if err != nil {
		return c, fmt.Errorf("%w: %w", ErrCrumb, err)
	}
	defer func() { _ = resp.Body.Close() }()
	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		log.Debug().Str("path", t.crumbPath).Msg("crumb issuer disabled")
		return c, nil
	default:
		return c, fmt.Errorf("%w: %w: %s", ErrCrumb, ErrStatusCode, resp.Status)
	}
	if err := json.NewDecoder(resp.Body).Decode(&c); err != nil {
		return c, fmt.Errorf("%w: decode: %w", ErrCrumb, err)
	}
	if c.IsZero() {
		return c, fmt.Errorf("%w: empty crumb in response", ErrCrumb)
	}
	log.Debug().Str("field", c.Field).Msg("crumb received")
	return c, nil
}

// PostScript submits the groovy script to the script console and copies the
// console output to w as it is received.
//
// The response body is copied even when the status code is not 2xx, as
// it holds the server error page.
func (t *T) PostScript(ctx context.Context, script string, crumb Crumb, w io.Writer) error {
	form := url.Values{}
	form.Set("script", script)
	req, err := t.factory.NewRequestWithContext(ctx, http.MethodPost, t.scriptPath, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSubmit, err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if !crumb.IsZero() {
		req.Header.Set(crumb.Field, crumb.Value)
	}
	log.Debug().Int("len", len(script)).Str("path", t.scriptPath).Msg("submit script")
	resp, err := t.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSubmit, err)
	}
	defer func() { _ = resp.Body.Close() }()
	_, copyErr := io.Copy(w, resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%w: %w: %s", ErrSubmit, ErrStatusCode, resp.Status)
	}
	if copyErr != nil {
		return fmt.Errorf("%w: read console output: %w", ErrSubmit, copyErr)
	}
	return nil
}
