// Package httpx holds the shared client for outbound HTTP calls (the mail
// API). Callers bound individual requests with their own context deadlines;
// the client timeout is the hard ceiling.
package httpx

import (
	"net"
	"net/http"
	"time"
)

var shared = &http.Client{
	Timeout: 15 * time.Second,
	Transport: &http.Transport{
		DialContext: (&net.Dialer{
			Timeout:   5 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		TLSHandshakeTimeout: 5 * time.Second,
		MaxIdleConns:        50,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
	},
}

func Client() *http.Client { return shared }
