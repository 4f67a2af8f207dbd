// Package remote adapts the RPC clients in pkg/api to the provider
// interfaces the sync client depends on.
package remote

import (
	"errors"
	"net/http"

	"connectrpc.com/connect"

	"github.com/mmynk/rigbudget/internal/localstore"
	"github.com/mmynk/rigbudget/internal/syncclient"
)

// Error is a provider failure. Its text is the server's message, unchanged,
// so it can be shown to the user as is.
type Error struct {
	Code connect.Code
	err  *connect.Error
}

func (e *Error) Error() string {
	if msg := e.err.Message(); msg != "" {
		return msg
	}
	return e.err.Error()
}

func (e *Error) Unwrap() error { return e.err }

// wrap converts Connect errors to *Error and leaves everything else alone.
func wrap(err error) error {
	var ce *connect.Error
	if errors.As(err, &ce) {
		return &Error{Code: ce.Code(), err: ce}
	}
	return err
}

// tokenSource reads the session token from local storage on every call.
func tokenSource(tokens syncclient.LocalStorage) func() string {
	return func() string {
		tok, _ := tokens.Get(localstore.KeySessionToken)
		return tok
	}
}

func httpClientOrDefault(c connect.HTTPClient) connect.HTTPClient {
	if c == nil {
		return http.DefaultClient
	}
	return c
}
