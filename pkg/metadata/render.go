package metadata

import (
	"encoding/json"
	"fmt"
)

// Render serializes a lookup result to indented JSON. Field order
// follows the schema's declared struct order (encoding/json preserves
// it), byte fields render as 0x-prefixed hex, and still-encoded fields
// render as {"raw":"0x…"}. The caller owns writing the string out.
func Render(res *LookupResult) (string, error) {
	var v any
	switch {
	case res.Full != nil:
		v = res.Full
	case res.Module != nil:
		v = res.Module
	default:
		return "", fmt.Errorf("metadata: empty lookup result")
	}
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", fmt.Errorf("metadata: render: %w", err)
	}
	return string(out), nil
}
