package models_test

import (
	"testing"

	"github.com/appforge-dev/appforge/pkg/models"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		name    string
		display string
		want    string
	}{
		{"simple name", "Acme", "acme"},
		{"spaces collapse to hyphens", "My Cool App", "my-cool-app"},
		{"accents stripped not dropped", "Café Métro", "cafe-metro"},
		{"punctuation collapses", "Foo!!Bar", "foo-bar"},
		{"leading and trailing junk trimmed", "  --Hello--  ", "hello"},
		{"digits preserved", "App 2 Go", "app-2-go"},
		{"consecutive separators collapse", "a - _ - b", "a-b"},
		{"already a slug", "my-app", "my-app"},
		{"empty input", "", ""},
		{"only punctuation", "!?#", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := models.Slugify(tt.display); got != tt.want {
				t.Errorf("Slugify(%q) = %q, want %q", tt.display, got, tt.want)
			}
		})
	}
}

func TestManifestServices(t *testing.T) {
	m := &models.Manifest{}

	m.AddService("backend")
	m.AddService("webapp")
	m.AddService("backend")

	if len(m.InstalledServices) != 2 {
		t.Fatalf("len(InstalledServices) = %d, want 2", len(m.InstalledServices))
	}
	if m.InstalledServices[0] != "backend" || m.InstalledServices[1] != "webapp" {
		t.Errorf("InstalledServices = %v, want installation order preserved", m.InstalledServices)
	}
	if !m.HasService("webapp") {
		t.Error("HasService(webapp) = false, want true")
	}
	if m.HasService("admin") {
		t.Error("HasService(admin) = true, want false")
	}
}
