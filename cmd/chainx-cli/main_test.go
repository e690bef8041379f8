package main

import (
	"encoding/json"
	"testing"
)

func TestIndentJSON(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"object", `{"a":1,"b":"x"}`, "{\n  \"a\": 1,\n  \"b\": \"x\"\n}"},
		{"array", `[1,2]`, "[\n  1,\n  2\n]"},
		{"scalar", `"0xabcd"`, `"0xabcd"`},
		{"null", `null`, `null`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := string(indentJSON(json.RawMessage(tt.in)))
			if got != tt.want {
				t.Errorf("indentJSON(%s) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestIndentJSON_PassesThroughMalformed(t *testing.T) {
	// A result the node sent that is not valid JSON must still reach
	// the user unchanged.
	in := json.RawMessage(`{"unterminated`)
	got := indentJSON(in)
	if string(got) != string(in) {
		t.Errorf("indentJSON(%q) = %q, want input unchanged", in, got)
	}
}
