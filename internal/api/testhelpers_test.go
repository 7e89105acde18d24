package api

import (
	"errors"
	"net/http"
)

// errRT always fails at the transport level, for exercising network
// error paths.
type errRT struct{}

func (errRT) RoundTrip(*http.Request) (*http.Response, error) {
	return nil, errors.New("transport down")
}
