package helpers

import (
	"crypto/tls"
	"net"
	"net/http"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
)

// ESOptions configures the client behind the university search index.
type ESOptions struct {
	Addrs      []string
	Username   string
	Password   string
	MaxRetries int  // 0 disables retries
	Compress   bool // gzip bulk reindex bodies
}

// retried on top of transport errors; bulk reindex hits 429 under load
var esRetryStatuses = []int{http.StatusTooManyRequests, http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout}

// NewESClient creates an Elasticsearch client with bounded timeouts,
// linear retry backoff and optional basic auth.
func NewESClient(opts ESOptions) (*elasticsearch.Client, error) {
	cfg := elasticsearch.Config{
		Addresses:           opts.Addrs,
		Username:            opts.Username,
		Password:            opts.Password,
		CompressRequestBody: opts.Compress,
		RetryOnStatus:       esRetryStatuses,
		MaxRetries:          opts.MaxRetries,
		DisableRetry:        opts.MaxRetries <= 0,
		RetryBackoff:        func(attempt int) time.Duration { return time.Duration(attempt) * 100 * time.Millisecond },
		Transport: &http.Transport{
			MaxIdleConnsPerHost:   10,
			ResponseHeaderTimeout: 10 * time.Second,
			TLSClientConfig:       &tls.Config{MinVersion: tls.VersionTLS12},
			DialContext:           (&net.Dialer{Timeout: 5 * time.Second}).DialContext,
		},
	}
	return elasticsearch.NewClient(cfg)
}
