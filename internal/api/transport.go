package api

import (
	"net/http"
	"time"

	"github.com/kirinyoku/tix-client/internal/config"
	"github.com/sony/gobreaker"
)

// NewHTTPClient builds the process-wide HTTP client. It speaks HTTP/1.1 only and
// bounds every call by cfg.Timeout; there is no retry policy.
func NewHTTPClient(cfg config.APIConfig) *http.Client {
	protocols := new(http.Protocols)
	protocols.SetHTTP1(true)

	transport := &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		Protocols:           protocols,
		IdleConnTimeout:     90 * time.Second,
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		TLSHandshakeTimeout: 10 * time.Second,
	}

	return &http.Client{
		Transport: transport,
		Timeout:   cfg.Timeout,
	}
}

// newBreaker trips after five consecutive transport failures or 5xx answers and
// lets a probe through after 30 seconds.
func newBreaker(name string) *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    name,
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
	})
}
