package entity

import "errors"

var (
	ErrUpstreamUnavailable       = errors.New("upstream unavailable")
	ErrMalformedUpstreamResponse = errors.New("malformed upstream response")
	ErrUnknownTool               = errors.New("unknown tool")
	ErrUnexpectedSecondToolCall  = errors.New("unexpected tool call in second round-trip")

	ErrLookupNotFound = errors.New("lookup: subject not found")
)
