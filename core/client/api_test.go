package client

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type (
	fakeServer struct {
		crumbStatus int
		crumbBody   string

		scriptStatus int
		scriptOutput string

		gotScript   string
		gotCrumb    string
		gotUsername string
		gotCookie   string
		gotAgent    string
	}
)

func (f *fakeServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.URL.Path {
	case "/ci/crumbIssuer/api/json":
		http.SetCookie(w, &http.Cookie{Name: "JSESSIONID", Value: "sess1", Path: "/"})
		w.WriteHeader(f.crumbStatus)
		_, _ = io.WriteString(w, f.crumbBody)
	case "/ci/scriptText":
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		f.gotUsername, _, _ = r.BasicAuth()
		f.gotAgent = r.UserAgent()
		f.gotCrumb = r.Header.Get("Jenkins-Crumb")
		if c, err := r.Cookie("JSESSIONID"); err == nil {
			f.gotCookie = c.Value
		}
		f.gotScript = r.PostFormValue("script")
		w.WriteHeader(f.scriptStatus)
		_, _ = io.WriteString(w, f.scriptOutput)
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func newTestClient(t *testing.T, f *fakeServer) *T {
	srv := httptest.NewServer(f)
	t.Cleanup(srv.Close)
	c, err := New(WithURL(srv.URL + "/ci/"))
	require.NoError(t, err)
	c.SetCredentials("alice", "s3cret")
	return c
}

func TestSubmitWithCrumb(t *testing.T) {
	f := &fakeServer{
		crumbStatus:  http.StatusOK,
		crumbBody:    `{"_class":"hudson.security.csrf.DefaultCrumbIssuer","crumb":"c0ffee","crumbRequestField":"Jenkins-Crumb"}`,
		scriptStatus: http.StatusOK,
		scriptOutput: "n1: online\nn2: offline\n",
	}
	c := newTestClient(t, f)
	ctx := context.Background()

	crumb, err := c.GetCrumb(ctx)
	require.NoError(t, err)
	assert.Equal(t, Crumb{Field: "Jenkins-Crumb", Value: "c0ffee"}, crumb)

	var out bytes.Buffer
	require.NoError(t, c.PostScript(ctx, "println 'x + y'", crumb, &out))
	assert.Equal(t, "n1: online\nn2: offline\n", out.String())
	assert.Equal(t, "println 'x + y'", f.gotScript)
	assert.Equal(t, "c0ffee", f.gotCrumb)
	assert.Equal(t, "alice", f.gotUsername)
	assert.Equal(t, "sess1", f.gotCookie)
	assert.Equal(t, UserAgent, f.gotAgent)
}

func TestCrumbIssuerDisabled(t *testing.T) {
	f := &fakeServer{
		crumbStatus:  http.StatusNotFound,
		scriptStatus: http.StatusOK,
	}
	c := newTestClient(t, f)
	crumb, err := c.GetCrumb(context.Background())
	require.NoError(t, err)
	assert.True(t, crumb.IsZero())

	require.NoError(t, c.PostScript(context.Background(), "println 1", crumb, io.Discard))
	assert.Equal(t, "", f.gotCrumb)
}

func TestCrumbErrors(t *testing.T) {
	cases := map[string]fakeServer{
		"server error": {crumbStatus: http.StatusInternalServerError},
		"unauthorized": {crumbStatus: http.StatusUnauthorized},
		"not json":     {crumbStatus: http.StatusOK, crumbBody: "<html>"},
		"empty crumb":  {crumbStatus: http.StatusOK, crumbBody: `{"crumbRequestField":"Jenkins-Crumb"}`},
	}
	for name, tc := range cases {
		f := tc
		t.Run(name, func(t *testing.T) {
			c := newTestClient(t, &f)
			_, err := c.GetCrumb(context.Background())
			assert.True(t, errors.Is(err, ErrCrumb), "%v", err)
		})
	}
}

func TestPostScriptForbidden(t *testing.T) {
	f := &fakeServer{
		scriptStatus: http.StatusForbidden,
		scriptOutput: "No valid crumb was included in the request",
	}
	c := newTestClient(t, f)
	var out bytes.Buffer
	err := c.PostScript(context.Background(), "println 1", Crumb{}, &out)
	assert.True(t, errors.Is(err, ErrSubmit))
	assert.True(t, errors.Is(err, ErrStatusCode))
	assert.Equal(t, "No valid crumb was included in the request", out.String())
}

func TestPostScriptUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	u := srv.URL
	srv.Close()
	c, err := New(WithURL(u))
	require.NoError(t, err)
	err = c.PostScript(context.Background(), "println 1", Crumb{}, io.Discard)
	assert.True(t, errors.Is(err, ErrSubmit))
}

func TestNewCertificate(t *testing.T) {
	_, err := New(WithURL("https://ci.example.com"), WithCertificate("/nonexistent/cert.pem", "/nonexistent/key.pem"))
	assert.Error(t, err)

	_, err = New(WithURL("https://ci.example.com"), WithCertificate("", ""))
	assert.NoError(t, err)
}

func TestNewURL(t *testing.T) {
	for _, s := range []string{"", "ci.example.com", "ftp://ci.example.com", "https://"} {
		_, err := New(WithURL(s))
		assert.Truef(t, errors.Is(err, ErrURL), "url %q", s)
	}
	c, err := New(WithURL("https://ci.example.com:8443/jenkins/"))
	require.NoError(t, err)
	assert.Equal(t, "ci.example.com", c.Host())
	assert.Equal(t, "https://ci.example.com:8443/jenkins", c.URL().String())
}
