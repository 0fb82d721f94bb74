package fetch

import (
	"fmt"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog/log"
)

// Client wraps http.Client with bounded exponential backoff retries for the
// upstream transport calls. Requests built with a body reader carry GetBody,
// which lets each attempt replay the payload.
type Client struct {
	httpClient  *http.Client
	maxAttempts int
}

func NewClient(timeout time.Duration, maxAttempts int) *Client {
	if maxAttempts < 1 {
		maxAttempts = 1
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		maxAttempts: maxAttempts,
	}
}

func (c *Client) Do(req *http.Request) (*http.Response, error) {
	var response *http.Response

	retryBackoff := backoff.NewExponentialBackOff()

	operation := func() error {
		attempt := req.Clone(req.Context())
		if req.GetBody != nil {
			body, err := req.GetBody()
			if err != nil {
				return backoff.Permanent(err)
			}
			attempt.Body = body
		}

		var err error
		response, err = c.httpClient.Do(attempt)
		if err != nil {
			return err
		}

		if response.StatusCode < 200 || response.StatusCode >= 300 {
			response.Body.Close()
			return fmt.Errorf("%s returned status %d", req.URL.Host, response.StatusCode)
		}

		return nil
	}

	notify := func(err error, wait time.Duration) {
		log.Debug().Err(err).Dur("wait", wait).Str("host", req.URL.Host).Msg("Retrying upstream request")
	}

	err := backoff.RetryNotify(operation, backoff.WithMaxRetries(retryBackoff, uint64(c.maxAttempts-1)), notify)
	if err != nil {
		return nil, err
	}

	return response, nil
}
