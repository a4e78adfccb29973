package api

import "net/url"

// RequestDescriptor describes one logical request against the backend.
// It is built per call and immutable once handed to the client.
//
// Path is relative to the client's base URL. Body, when non-nil, is
// JSON-encoded. RequiresAuth requests carry the current session's bearer
// token and are gated on connectivity.
type RequestDescriptor struct {
	Method       string
	Path         string
	Query        url.Values
	Body         any
	RequiresAuth bool
}
