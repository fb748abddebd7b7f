// Package ifc is the external-interface adapter: it encodes and decodes
// the intent/response envelopes BWT exchanges with a caller outside this
// process (a CLI invocation's stdin/stdout, or a library consumer that
// wants wire-stable JSON rather than the internal Go structs directly).
package ifc

import (
	"encoding/json"
	"fmt"

	"github.com/steveyegge/brain/internal/types"
)

// DecodeIntent parses a JSON-encoded intent from data.
func DecodeIntent(data []byte) (types.Intent, error) {
	var intent types.Intent
	if err := json.Unmarshal(data, &intent); err != nil {
		return types.Intent{}, fmt.Errorf("decoding intent: %w", err)
	}
	return intent, nil
}

// EncodeResponse renders a BWT response as indented JSON.
func EncodeResponse(resp types.Response) ([]byte, error) {
	data, err := json.MarshalIndent(resp, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding response: %w", err)
	}
	return data, nil
}

// EncodeQueryResponse renders a query response as indented JSON.
func EncodeQueryResponse(resp types.QueryResponse) ([]byte, error) {
	data, err := json.MarshalIndent(resp, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding query response: %w", err)
	}
	return data, nil
}

// DecodeQueryRequest parses a JSON-encoded query request from data.
func DecodeQueryRequest(data []byte) (types.QueryRequest, error) {
	var req types.QueryRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return types.QueryRequest{}, fmt.Errorf("decoding query request: %w", err)
	}
	return req, nil
}
