package models

// ManifestVersion is the schema version written into new manifests.
const ManifestVersion = "1.0.0"

// Manifest is the durable record of a generated project. It lives at the
// project root and is the sole signal downstream commands use to recognize
// a generated project directory.
type Manifest struct {
	Version            string    `json:"version"`
	CreatedAt          string    `json:"createdAt"`
	ProjectName        string    `json:"projectName"`
	ProjectDisplayName string    `json:"projectDisplayName"`
	DeployConfigured   bool      `json:"deployConfigured"`
	InstalledServices  []string  `json:"installedServices"`
	Variants           ChoiceSet `json:"variants"`
}

// HasService reports whether the named service is recorded as installed.
func (m *Manifest) HasService(name string) bool {
	for _, s := range m.InstalledServices {
		if s == name {
			return true
		}
	}
	return false
}

// AddService appends a service to the installed list if not already present.
// Order is preserved; the list reflects installation order.
func (m *Manifest) AddService(name string) {
	if m.HasService(name) {
		return
	}
	m.InstalledServices = append(m.InstalledServices, name)
}
