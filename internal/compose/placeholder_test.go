package compose

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestReplaceToken(t *testing.T) {
	tests := []struct {
		name        string
		content     string
		token       string
		value       string
		want        string
		wantChanged bool
	}{
		{
			name:        "single occurrence",
			content:     "name: {{PROJECT_NAME}}\n",
			token:       "{{PROJECT_NAME}}",
			value:       "demo",
			want:        "name: demo\n",
			wantChanged: true,
		},
		{
			name:        "multiple occurrences",
			content:     "{{X}} and {{X}} and {{X}}",
			token:       "{{X}}",
			value:       "y",
			want:        "y and y and y",
			wantChanged: true,
		},
		{
			name:        "dollar prefix preserved",
			content:     "token: ${{PROJECT_NAME}}\n",
			token:       "{{PROJECT_NAME}}",
			value:       "demo",
			want:        "token: ${{PROJECT_NAME}}\n",
			wantChanged: false,
		},
		{
			name:        "mixed guarded and plain",
			content:     "a={{X}} b=${{X}} c={{X}}",
			token:       "{{X}}",
			value:       "v",
			want:        "a=v b=${{X}} c=v",
			wantChanged: true,
		},
		{
			name:        "value containing token is not re-expanded",
			content:     "{{X}}",
			token:       "{{X}}",
			value:       "wrap({{X}})",
			want:        "wrap({{X}})",
			wantChanged: true,
		},
		{
			name:        "token absent",
			content:     "nothing here",
			token:       "{{X}}",
			value:       "v",
			want:        "nothing here",
			wantChanged: false,
		},
		{
			name:        "token at start of content",
			content:     "{{X}} first",
			token:       "{{X}}",
			value:       "v",
			want:        "v first",
			wantChanged: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, changed := replaceToken([]byte(tt.content), tt.token, tt.value)
			if string(got) != tt.want {
				t.Errorf("replaceToken() = %q, want %q", got, tt.want)
			}
			if changed != tt.wantChanged {
				t.Errorf("replaceToken() changed = %v, want %v", changed, tt.wantChanged)
			}
		})
	}
}

func TestSubstituteAll(t *testing.T) {
	dir := t.TempDir()
	writeTemplate(t, dir, "README.md", "# {{PROJECT_DISPLAY_NAME}}\n\nslug: {{PROJECT_NAME}}\n")
	writeTemplate(t, dir, "logo.png", "binary {{PROJECT_NAME}} bytes")
	writeTemplate(t, dir, "node_modules/pkg/index.js", "module {{PROJECT_NAME}}")

	err := substituteAll(context.Background(), dir, map[string]string{
		"{{PROJECT_NAME}}":         "demo",
		"{{PROJECT_DISPLAY_NAME}}": "Demo App",
	}, nil)
	if err != nil {
		t.Fatalf("substituteAll() error = %v", err)
	}

	if got := readOutput(t, dir, "README.md"); got != "# Demo App\n\nslug: demo\n" {
		t.Errorf("README.md = %q", got)
	}
	if got := readOutput(t, dir, "logo.png"); got != "binary {{PROJECT_NAME}} bytes" {
		t.Errorf("logo.png = %q, binary files must not be rewritten", got)
	}
	if got := readOutput(t, dir, "node_modules/pkg/index.js"); got != "module {{PROJECT_NAME}}" {
		t.Errorf("node_modules content = %q, excluded dirs must not be rewritten", got)
	}
}

func TestSubstituteAll_ExemptGlobs(t *testing.T) {
	dir := t.TempDir()
	writeTemplate(t, dir, "package-lock.json", "{\"name\": \"{{PROJECT_NAME}}\"}")
	writeTemplate(t, dir, "package.json", "{\"name\": \"{{PROJECT_NAME}}\"}")
	writeTemplate(t, dir, "docs/generated/api.md", "# {{PROJECT_NAME}}")

	placeholders := map[string]string{"{{PROJECT_NAME}}": "demo"}
	exempt := []string{"package-lock.json", "docs/generated/*"}
	if err := substituteAll(context.Background(), dir, placeholders, exempt); err != nil {
		t.Fatalf("substituteAll() error = %v", err)
	}

	if got := readOutput(t, dir, "package-lock.json"); got != "{\"name\": \"{{PROJECT_NAME}}\"}" {
		t.Errorf("package-lock.json = %q, exempt by name", got)
	}
	if got := readOutput(t, dir, "docs/generated/api.md"); got != "# {{PROJECT_NAME}}" {
		t.Errorf("docs/generated/api.md = %q, exempt by relative path", got)
	}
	if got := readOutput(t, dir, "package.json"); got != "{\"name\": \"demo\"}" {
		t.Errorf("package.json = %q, want substituted", got)
	}
}

func TestSubstituteAll_NoPlaceholders(t *testing.T) {
	dir := t.TempDir()
	writeTemplate(t, dir, "a.txt", "{{PROJECT_NAME}}")

	if err := substituteAll(context.Background(), dir, nil, nil); err != nil {
		t.Fatalf("substituteAll() error = %v", err)
	}
	if got := readOutput(t, dir, "a.txt"); got != "{{PROJECT_NAME}}" {
		t.Errorf("a.txt = %q, want untouched", got)
	}
}

func TestSubstituteAll_UnchangedFileKeepsMode(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "run.sh")
	if err := os.WriteFile(path, []byte("echo static\n"), 0o755); err != nil {
		t.Fatal(err)
	}

	err := substituteAll(context.Background(), dir, map[string]string{"{{X}}": "y"}, nil)
	if err != nil {
		t.Fatalf("substituteAll() error = %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm() != 0o755 {
		t.Errorf("run.sh mode = %v, files without tokens must not be rewritten", info.Mode().Perm())
	}
}
