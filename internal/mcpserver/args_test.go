package mcpserver

import (
	"reflect"
	"testing"
)

func TestRequireStrings(t *testing.T) {
	tests := []struct {
		name    string
		args    map[string]any
		want    []string
		wantErr bool
	}{
		{"any slice", map[string]any{"options": []any{"A", "B"}}, []string{"A", "B"}, false},
		{"string slice", map[string]any{"options": []string{"A"}}, []string{"A"}, false},
		{"empty", map[string]any{"options": []any{}}, []string{}, false},
		{"null", map[string]any{"options": nil}, []string{}, false},
		{"missing", map[string]any{}, nil, true},
		{"not an array", map[string]any{"options": "A"}, nil, true},
		{"mixed", map[string]any{"options": []any{"A", 2}}, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := requireStrings(tt.args, "options")
			if (err != nil) != tt.wantErr {
				t.Fatalf("requireStrings() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && !reflect.DeepEqual(got, tt.want) {
				t.Errorf("requireStrings() = %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestRequireString(t *testing.T) {
	if _, err := requireString(map[string]any{}, "question"); err == nil {
		t.Error("expected error for missing key")
	}
	if _, err := requireString(map[string]any{"question": true}, "question"); err == nil {
		t.Error("expected error for non-string")
	}
	got, err := requireString(map[string]any{"question": "Why?"}, "question")
	if err != nil || got != "Why?" {
		t.Errorf("requireString() = %q, %v", got, err)
	}
}
