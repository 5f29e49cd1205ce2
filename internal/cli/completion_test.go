package cli

import (
	"bytes"
	"strings"
	"testing"
)

func TestGenerateCompletion(t *testing.T) {
	t.Parallel()
	tests := []struct {
		shell    string
		contains []string
	}{
		{"bash", []string{"complete -F _vsort_completions vsort", "--kind)", "int32 float32 bytes", "--input|-i|--output|-o|--calibration-profile)", "compgen -f"}},
		{"zsh", []string{"#compdef vsort", "'(-q --quiet)'{-q,--quiet}'[Print only the result]'", "'--executor[Fork-join backend]:executor:(ants errgroup sequential)'", "_files"}},
		{"fish", []string{"complete -c vsort -f", "# Thresholds", "complete -c vsort -l pattern", "complete -c vsort -s o -l output -d 'Output file' -rF", "-l workers -d 'Worker count' -x"}},
	}
	for _, tt := range tests {
		t.Run(tt.shell, func(t *testing.T) {
			t.Parallel()
			var buf bytes.Buffer
			if err := GenerateCompletion(&buf, tt.shell); err != nil {
				t.Fatalf("GenerateCompletion(%q): %v", tt.shell, err)
			}
			out := buf.String()
			for _, want := range tt.contains {
				if !strings.Contains(out, want) {
					t.Errorf("%s script missing %q", tt.shell, want)
				}
			}
		})
	}
}

func TestGenerateCompletion_Unsupported(t *testing.T) {
	t.Parallel()
	err := GenerateCompletion(&bytes.Buffer{}, "powershell")
	if err == nil || !strings.Contains(err.Error(), "unsupported shell") {
		t.Errorf("expected unsupported shell error, got %v", err)
	}
}

func TestFlagRegistryCoversEverySection(t *testing.T) {
	t.Parallel()
	seen := map[string]bool{}
	for _, f := range flagRegistry {
		if f.Long == "" {
			t.Errorf("flag %+v has no long name", f)
		}
		seen[f.Section] = true
	}
	for _, s := range completionSections {
		if !seen[s] {
			t.Errorf("section %q has no flags", s)
		}
		delete(seen, s)
	}
	for s := range seen {
		t.Errorf("flag section %q is not listed in completionSections", s)
	}
}
