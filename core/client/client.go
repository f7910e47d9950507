package client

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/opensvc/jnodes/util/httpclient"
	"github.com/opensvc/jnodes/util/requestfactory"
)

type (
	// T is the build server api client configuration
	T struct {
		url                string
		insecureSkipVerify bool
		certFile           string
		keyFile            string
		timeout            time.Duration
		dialTimeout        time.Duration
		crumbPath          string
		scriptPath         string

		httpClient *http.Client
		factory    *requestfactory.T
	}

	// Option is a functional option configurer.
	// https://dave.cheney.net/2014/10/17/functional-options-for-friendly-apis
	Option interface {
		apply(t *T) error
	}

	optionFunc func(*T) error
)

const (
	DefaultCrumbPath  = "crumbIssuer/api/json"
	DefaultScriptPath = "scriptText"

	// UserAgent is the User-Agent header of every request.
	UserAgent = "jnodes"
)

var (
	// ErrURL is returned by New when the server url is not a http or
	// https url with a host.
	ErrURL = errors.New("invalid server url")
)

func (fn optionFunc) apply(t *T) error {
	return fn(t)
}

// New allocates a new client configuration and returns the reference.
func New(opts ...Option) (*T, error) {
	t := &T{
		crumbPath:  DefaultCrumbPath,
		scriptPath: DefaultScriptPath,
	}
	for _, opt := range opts {
		if err := opt.apply(t); err != nil {
			return nil, err
		}
	}
	if err := t.configure(); err != nil {
		return nil, err
	}
	return t, nil
}

// WithURL is the option pointing the build server root url, with the
// context path if any.
//
// Examples:
// * https://ci.example.com
// * http://build.example.com:8080/jenkins
func WithURL(s string) Option {
	return optionFunc(func(t *T) error {
		t.url = s
		return nil
	})
}

// WithInsecureSkipVerify skips certificate validity checks.
func WithInsecureSkipVerify(v bool) Option {
	return optionFunc(func(t *T) error {
		t.insecureSkipVerify = v
		return nil
	})
}

// WithTimeout limits the duration of each request. Zero means no limit.
func WithTimeout(d time.Duration) Option {
	return optionFunc(func(t *T) error {
		t.timeout = d
		return nil
	})
}

// WithDialTimeout limits the connection establishment duration.
func WithDialTimeout(d time.Duration) Option {
	return optionFunc(func(t *T) error {
		t.dialTimeout = d
		return nil
	})
}

// WithCrumbPath sets the crumb issuer path, relative to the server url.
func WithCrumbPath(s string) Option {
	return optionFunc(func(t *T) error {
		if s != "" {
			t.crumbPath = s
		}
		return nil
	})
}

// WithScriptPath sets the script console path, relative to the server url.
func WithScriptPath(s string) Option {
	return optionFunc(func(t *T) error {
		if s != "" {
			t.scriptPath = s
		}
		return nil
	})
}

// WithCertificate sets the tls client certificate and key files. Empty
// values disable the client certificate authentication.
func WithCertificate(certFile, keyFile string) Option {
	return optionFunc(func(t *T) error {
		t.certFile = certFile
		t.keyFile = keyFile
		return nil
	})
}

func (t *T) configure() error {
	u, err := url.Parse(strings.TrimRight(t.url, "/"))
	if err != nil {
		return fmt.Errorf("%w: %s", ErrURL, err)
	}
	switch {
	case u.Scheme != "http" && u.Scheme != "https":
		return fmt.Errorf("%w: %s: scheme must be http or https", ErrURL, t.url)
	case u.Host == "":
		return fmt.Errorf("%w: %s: no host", ErrURL, t.url)
	}
	t.httpClient, err = httpclient.New(httpclient.Options{
		CertFile:           t.certFile,
		KeyFile:            t.keyFile,
		Timeout:            t.timeout,
		DialTimeout:        t.dialTimeout,
		InsecureSkipVerify: t.insecureSkipVerify,
	})
	if err != nil {
		return err
	}
	t.factory = requestfactory.New(u, nil)
	t.factory.SetHeader("User-Agent", UserAgent)
	log.Debug().Str("url", u.Redacted()).Msg("client configured")
	return nil
}

// SetCredentials sets the basic auth credentials of the next requests.
func (t *T) SetCredentials(username, password string) {
	t.factory.SetBasicAuth(username, password)
}

// URL returns the build server url.
func (t *T) URL() *url.URL {
	return t.factory.URL
}

// Host returns the build server hostname, without port.
func (t *T) Host() string {
	return t.factory.URL.Hostname()
}
