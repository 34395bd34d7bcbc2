// Package transport builds the HTTP transport used to reach the store.
package transport

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	utls "github.com/refraction-networking/utls"
	"golang.org/x/net/http2"
)

// DefaultUserAgent identifies the gateway to the store.
const DefaultUserAgent = "wc-invoice-gateway/2.0.0"

// Config selects how store requests leave the process.
type Config struct {
	Timeout time.Duration

	// Fingerprint presents a Chrome TLS fingerprint instead of Go's, for
	// hosts whose CDN rate limits the Go client hello.
	Fingerprint bool

	// UserAgent is set on requests that carry none. Empty uses DefaultUserAgent.
	UserAgent string
}

// New returns the round tripper described by cfg.
func New(cfg Config) http.RoundTripper {
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = DefaultUserAgent
	}

	var base http.RoundTripper
	if cfg.Fingerprint {
		base = newChromeTransport(cfg.Timeout)
	} else {
		t := http.DefaultTransport.(*http.Transport).Clone()
		t.TLSHandshakeTimeout = cfg.Timeout
		base = t
	}
	return &userAgentTransport{next: base, userAgent: cfg.UserAgent}
}

type userAgentTransport struct {
	next      http.RoundTripper
	userAgent string
}

func (t *userAgentTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.Header.Get("User-Agent") == "" {
		req = req.Clone(req.Context())
		req.Header.Set("User-Agent", t.userAgent)
	}
	return t.next.RoundTrip(req)
}

// =============================================================================
// TLS FINGERPRINT TRANSPORT
// =============================================================================
//
// uTLS with HelloChrome_Auto gives Chrome's client hello. ALPN negotiates
// h2 or http/1.1; h2 framing goes through x/net/http2, http/1.1 through a
// plain http.Transport with the same dialer.
//
// =============================================================================

func newChromeTransport(timeout time.Duration) *chromeTransport {
	dialer := &net.Dialer{Timeout: timeout}

	h2 := &http2.Transport{
		DialTLSContext: func(ctx context.Context, network, addr string, _ *tls.Config) (net.Conn, error) {
			conn, err := dialChromeTLS(ctx, dialer, network, addr)
			if err != nil {
				return nil, err
			}
			if proto := conn.ConnectionState().NegotiatedProtocol; proto != http2.NextProtoTLS {
				conn.Close()
				return nil, fmt.Errorf("%s negotiated %q: %w", addr, proto, errNoH2)
			}
			return conn, nil
		},
	}
	h1 := &http.Transport{
		DialTLSContext: func(ctx context.Context, network, addr string) (net.Conn, error) {
			conn, err := dialChromeTLS(ctx, dialer, network, addr)
			if err != nil {
				return nil, err
			}
			return conn, nil
		},
		TLSHandshakeTimeout: timeout,
		ForceAttemptHTTP2:   false,
	}

	return &chromeTransport{h2: h2, h1: h1}
}

// errNoH2 reports a host that did not select h2 during the handshake. No
// request bytes have been sent when it is returned.
var errNoH2 = errors.New("server did not negotiate h2")

// chromeTransport tries HTTP/2 first and remembers hosts that only speak
// HTTP/1.1.
type chromeTransport struct {
	h2 http.RoundTripper
	h1 http.RoundTripper

	h1Only sync.Map // host -> struct{}
}

// RoundTrip implements http.RoundTripper.
// A failed h2 attempt is retried over HTTP/1.1 when the host refused h2,
// or when the method is idempotent. Either way the body must be
// replayable. Only a refused h2 marks the host as HTTP/1.1 only.
func (t *chromeTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.URL.Scheme != "https" {
		return t.h1.RoundTrip(req)
	}
	if _, ok := t.h1Only.Load(req.URL.Host); ok {
		return t.h1.RoundTrip(req)
	}

	resp, err := t.h2.RoundTrip(req)
	if err == nil {
		return resp, nil
	}

	refused := errors.Is(err, errNoH2)
	if !refused && !idempotent(req.Method) {
		return nil, err
	}
	retry, rerr := rewind(req)
	if rerr != nil {
		return nil, err
	}
	resp, err = t.h1.RoundTrip(retry)
	if err == nil && refused {
		t.h1Only.Store(req.URL.Host, struct{}{})
	}
	return resp, err
}

// idempotent reports whether a request with method may be sent twice.
func idempotent(method string) bool {
	switch method {
	case "", http.MethodGet, http.MethodHead, http.MethodOptions, http.MethodTrace, http.MethodPut, http.MethodDelete:
		return true
	}
	return false
}

// rewind returns a copy of req with a fresh body.
func rewind(req *http.Request) (*http.Request, error) {
	if req.Body == nil || req.Body == http.NoBody {
		return req, nil
	}
	if req.GetBody == nil {
		return nil, fmt.Errorf("request body cannot be replayed")
	}
	body, err := req.GetBody()
	if err != nil {
		return nil, err
	}
	out := req.Clone(req.Context())
	out.Body = body
	return out, nil
}

// dialChromeTLS establishes a TLS connection with Chrome's fingerprint.
func dialChromeTLS(ctx context.Context, dialer *net.Dialer, network, addr string) (*utls.UConn, error) {
	host, _, err := net.SplitHostPort(addr)
	if err != nil {
		host = addr
	}

	conn, err := dialer.DialContext(ctx, network, addr)
	if err != nil {
		return nil, fmt.Errorf("dial: %w", err)
	}

	tlsConn := utls.UClient(conn, &utls.Config{ServerName: host}, utls.HelloChrome_Auto)
	if err := tlsConn.HandshakeContext(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("tls handshake %s: %w", host, err)
	}

	return tlsConn, nil
}
