package completion

import (
	"bytes"
	"reflect"
	"strings"
	"testing"
)

func TestGenerate(t *testing.T) {
	tests := []struct {
		name      string
		shell     string
		wantErr   bool
		contains  []string
		errSubstr string
	}{
		{
			name:  "bash generates valid script",
			shell: "bash",
			contains: []string{
				"_pairpilot_completions",
				"complete -F",
				"sse http stdio",
				"serve console completion",
			},
		},
		{
			name:  "zsh generates valid script",
			shell: "zsh",
			contains: []string{
				"#compdef pairpilot",
				"_arguments",
				"charm base dracula catppuccin",
			},
		},
		{
			name:  "fish generates valid script",
			shell: "fish",
			contains: []string{
				"complete -c pairpilot",
				"auto always never",
				"debug info warn error",
			},
		},
		{
			name:      "unsupported shell returns error",
			shell:     "powershell",
			wantErr:   true,
			errSubstr: "unsupported shell",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			err := Generate(&buf, tt.shell)

			if tt.wantErr {
				if err == nil {
					t.Fatal("Generate() error = nil, want error")
				}
				if !strings.Contains(err.Error(), tt.errSubstr) {
					t.Errorf("error %q should contain %q", err, tt.errSubstr)
				}
				return
			}

			if err != nil {
				t.Fatalf("Generate() error = %v", err)
			}

			output := buf.String()
			for _, want := range tt.contains {
				if !strings.Contains(output, want) {
					t.Errorf("output should contain %q", want)
				}
			}
			if strings.Contains(output, "{{") {
				t.Error("output contains unexpanded template actions")
			}
		})
	}
}

func TestSupportedShells(t *testing.T) {
	want := []string{"bash", "fish", "zsh"}
	if got := SupportedShells(); !reflect.DeepEqual(got, want) {
		t.Errorf("SupportedShells() = %v, want %v", got, want)
	}
}
