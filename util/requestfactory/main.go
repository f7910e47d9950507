// Package requestfactory provides *http.Request factory with default headers,
// credentials and base url.
package requestfactory

import (
	"context"
	"io"
	"net/http"
	"net/url"
)

type (
	T struct {
		URL      *url.URL
		header   http.Header
		username string
		password string
	}
)

// New returns http.Request factory for server with default headers.
func New(server *url.URL, header http.Header) *T {
	if header == nil {
		header = make(http.Header)
	}
	return &T{
		URL:    server,
		header: header,
	}
}

// SetBasicAuth sets the credentials added to every new request.
func (r *T) SetBasicAuth(username, password string) {
	r.username = username
	r.password = password
}

// SetHeader sets a default header added to every new request.
func (r *T) SetHeader(key, value string) {
	r.header.Set(key, value)
}

// NewRequestWithContext returns a request for the path relative to the
// factory url, with the default headers and credentials.
func (r *T) NewRequestWithContext(ctx context.Context, method, relPath string, body io.Reader) (req *http.Request, err error) {
	u := r.URL.JoinPath(relPath)
	req, err = http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return
	}
	req.Header = r.header.Clone()
	if r.username != "" {
		req.SetBasicAuth(r.username, r.password)
	}
	return
}
