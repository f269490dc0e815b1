package tools

import "github.com/mark3labs/mcp-go/mcp"

// stringArg extracts a string argument, returning "" when absent or not a
// string.
func stringArg(req mcp.CallToolRequest, key string) string {
	v, _ := req.GetArguments()[key].(string)
	return v
}

// floatArg extracts a numeric argument (JSON numbers decode as float64),
// returning defaultVal when the key is missing or not a number.
func floatArg(req mcp.CallToolRequest, key string, defaultVal float64) float64 {
	v, ok := req.GetArguments()[key].(float64)
	if !ok {
		return defaultVal
	}
	return v
}

// objectArg extracts an object argument, nil when absent.
func objectArg(req mcp.CallToolRequest, key string) map[string]any {
	v, _ := req.GetArguments()[key].(map[string]any)
	return v
}
