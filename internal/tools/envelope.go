package tools

import (
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"
)

const credentialsHint = "Check your Nutritionix API credentials"

// ErrorEnvelope is the uniform error payload every tool returns on failure.
// It is serialized as the text content of an otherwise normal tool result,
// the same channel as success payloads.
type ErrorEnvelope struct {
	Error     string `json:"error"`
	Message   string `json:"message,omitempty"`
	Hint      string `json:"hint,omitempty"`
	NixItemID string `json:"nix_item_id,omitempty"`
}

// jsonResult serializes v as pretty-printed JSON inside a text content
// block. Marshal failure here means a programming error in the result
// shapes, reported through the protocol error channel.
func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, err
	}
	return mcp.NewToolResultText(string(data)), nil
}

// validationError is the short-circuit envelope for malformed arguments.
// No I/O has happened when it is produced.
func validationError(msg string) (*mcp.CallToolResult, error) {
	return jsonResult(ErrorEnvelope{Error: msg})
}

// upstreamError wraps a Nutritionix failure with the fixed credentials hint.
func upstreamError(title string, err error) (*mcp.CallToolResult, error) {
	return jsonResult(ErrorEnvelope{
		Error:   title,
		Message: err.Error(),
		Hint:    credentialsHint,
	})
}
