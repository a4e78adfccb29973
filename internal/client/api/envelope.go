package api

import "encoding/json"

// Envelope is the fixed JSON shape of every backend response:
//
//	{ "success": bool, "message": "...", "data": ..., "errors": [...] }
//
// Data is kept raw and decoded into the caller's type on demand.
type Envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
	Errors  []any           `json:"errors,omitempty"`
}
