// Package httpclient builds the http clients used to talk to the build
// server.
package httpclient

import (
	"crypto/tls"
	"fmt"
	"net"
	"net/http"
	"net/http/cookiejar"
	"time"

	"golang.org/x/net/http2"
	"golang.org/x/net/publicsuffix"
)

type (
	// Options struct describes client properties
	Options struct {
		CertFile string
		KeyFile  string

		// Timeout limits the whole request duration. Zero means no limit.
		Timeout time.Duration

		// DialTimeout limits the tcp connect and tls handshake durations.
		DialTimeout time.Duration

		InsecureSkipVerify bool
	}
)

// New returns a http client with a cookie jar, so the session cookie set by
// a first request is sent with the next ones.
//
// The transport negotiates http/2 when the server supports it and falls
// back to http/1.1.
func New(o Options) (*http.Client, error) {
	tlsConfig := &tls.Config{
		InsecureSkipVerify: o.InsecureSkipVerify,
	}
	if o.CertFile != "" && o.KeyFile != "" {
		cer, err := tls.LoadX509KeyPair(o.CertFile, o.KeyFile)
		if err != nil {
			return nil, fmt.Errorf("load client certificate: %w", err)
		}
		tlsConfig.Certificates = []tls.Certificate{cer}
	}
	dialer := &net.Dialer{
		Timeout:   o.DialTimeout,
		KeepAlive: 30 * time.Second,
	}
	tp := &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		DialContext:         dialer.DialContext,
		TLSClientConfig:     tlsConfig,
		TLSHandshakeTimeout: o.DialTimeout,
	}
	if err := http2.ConfigureTransport(tp); err != nil {
		return nil, fmt.Errorf("configure http/2 transport: %w", err)
	}
	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return nil, err
	}
	client := &http.Client{
		Transport: tp,
		Jar:       jar,
	}
	if o.Timeout > 0 {
		client.Timeout = o.Timeout
	}
	return client, nil
}
