package fetcher

import (
	"crypto/tls"
	"net/http"
	"time"
)

// Connection-pool tuning for the crawl client. A crawl hits one host over
// and over, so keep a small warm per-host pool and recycle idle connections.
const (
	maxIdleConns          = 100
	maxIdleConnsPerHost   = 10
	idleConnTimeout       = 90 * time.Second
	tlsHandshakeTimeout   = 10 * time.Second
	responseHeaderTimeout = 30 * time.Second
	expectContinueTimeout = 1 * time.Second
)

// NewHTTPClient builds an HTTP client with the tuned transport. The robots
// checker shares it so robots.txt requests reuse the same connection pool.
func NewHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Transport: newTransport(),
		Timeout:   timeout,
	}
}

// newTransport builds the HTTP transport used by every Fetcher.
func newTransport() *http.Transport {
	return &http.Transport{
		MaxIdleConns:          maxIdleConns,
		MaxIdleConnsPerHost:   maxIdleConnsPerHost,
		IdleConnTimeout:       idleConnTimeout,
		TLSHandshakeTimeout:   tlsHandshakeTimeout,
		ResponseHeaderTimeout: responseHeaderTimeout,
		ExpectContinueTimeout: expectContinueTimeout,
		TLSClientConfig: &tls.Config{
			MinVersion: tls.VersionTLS12,
		},
	}
}
