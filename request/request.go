// © 2024 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

// Package request provides a simplified way to make HTTP requests, especially for JSON APIs.
package request

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Params defines the parameters needed for making an HTTP request.
type Params struct {
	// Method is the HTTP method (GET, POST, etc.) for the request.
	Method string
	// URL is the target URL of the request.
	URL string
	// Headers is a map of key-value pairs for additional request headers.
	Headers map[string]string
	// Body is any data to be sent in the request body. It will be marshaled
	// to JSON.
	Body any
	// HTTPClient is an optional custom http.Client to use for the request.
	// If not provided, DefaultClient will be used.
	HTTPClient *http.Client
	// Scrubber is an optional strings.Replacer that scrubs unwanted data from
	// error messages.
	Scrubber *strings.Replacer
}

// DefaultClient is the default [http.Client] used by [Make].
//
// It has a timeout of 30 seconds to prevent requests from hanging indefinitely.
var DefaultClient = &http.Client{
	Timeout: 30 * time.Second,
}

// StatusError represents an error where an HTTP request returned
// an unexpected status code.
type StatusError struct {
	// WantedStatusCode is the HTTP status code that was expected by the caller
	// (e.g., http.StatusOK).
	WantedStatusCode int
	// StatusCode is the actual HTTP status code received in the response.
	StatusCode int
	// Headers are the HTTP headers from the response.
	Headers http.Header
	// Body is the raw body of the HTTP response.
	Body []byte
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("want %d, got %d: %s", e.WantedStatusCode, e.StatusCode, e.Body)
}

// Temporary reports whether the request may succeed if repeated: the server
// failed or asked the client to slow down.
func (e *StatusError) Temporary() bool {
	return e.StatusCode >= 500 || e.StatusCode == http.StatusTooManyRequests
}

// Make sends an HTTP request and unmarshals the JSON response body into a
// value of type Response.
//
// For non-200 status codes, it returns an error wrapping [*StatusError].
func Make[Response any](ctx context.Context, p Params) (Response, error) {
	resp, _, err := Do[Response](ctx, p)
	return resp, err
}

// Do is like [Make], but also returns the response headers.
func Do[Response any](ctx context.Context, p Params) (Response, http.Header, error) {
	var resp Response

	var br io.Reader
	if p.Body != nil {
		data, err := json.Marshal(p.Body)
		if err != nil {
			return resp, nil, scrubErr(err, p.Scrubber)
		}
		br = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, p.Method, p.URL, br)
	if err != nil {
		return resp, nil, scrubErr(err, p.Scrubber)
	}

	for k, v := range p.Headers {
		req.Header.Set(k, v)
	}
	if br != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	httpc := DefaultClient
	if p.HTTPClient != nil {
		httpc = p.HTTPClient
	}

	res, err := httpc.Do(req)
	if err != nil {
		return resp, nil, scrubErr(err, p.Scrubber)
	}
	defer res.Body.Close()

	b, err := io.ReadAll(res.Body)
	if err != nil {
		return resp, res.Header, scrubErr(err, p.Scrubber)
	}

	if res.StatusCode != http.StatusOK {
		return resp, res.Header, scrubErr(fmt.Errorf("%s %q: %w", p.Method, p.URL, &StatusError{
			WantedStatusCode: http.StatusOK,
			StatusCode:       res.StatusCode,
			Headers:          res.Header,
			Body:             b,
		}), p.Scrubber)
	}

	if err := json.Unmarshal(b, &resp); err != nil {
		return resp, res.Header, scrubErr(err, p.Scrubber)
	}
	return resp, res.Header, nil
}

type scrubbedError struct {
	err      error
	scrubber *strings.Replacer
}

func (se *scrubbedError) Error() string {
	if se.scrubber != nil {
		return se.scrubber.Replace(se.err.Error())
	}
	return se.err.Error()
}

func (se *scrubbedError) Unwrap() error { return se.err }

func scrubErr(err error, scrubber *strings.Replacer) error {
	return &scrubbedError{err: err, scrubber: scrubber}
}
