// Package policy holds the variant policy table: which logical services
// exist, which choice axes each one sees, and which ordered variant list
// a given set of choices resolves to.
package policy

import (
	"path/filepath"
	"slices"

	"github.com/appforge-dev/appforge/internal/defs"
	"github.com/appforge-dev/appforge/pkg/models"
)

// Variant names produced by the resolution rules.
const (
	VariantMultiTenant       = "multi-tenant"
	VariantSingleTenant      = "single-tenant"
	VariantB2B2C             = "b2b2c"
	VariantB2B2CMultiTenant  = "b2b2c_multi-tenant"
	VariantB2B2CSingleTenant = "b2b2c_single-tenant"
)

// Axes describes which choice axes a service receives. A service linked
// to a single axis gets a projection with the other axis unset.
type Axes struct {
	Tenancy   bool
	UserModel bool
}

// VariantDefinition describes the content applied for one variant.
// Files and Sections may independently be empty: a section-only variant
// has no whole files, and a file-only combo carries everything in Files.
type VariantDefinition struct {
	// Files lists paths copied verbatim from the variant file store into
	// the destination, overwriting on conflict.
	Files []string

	// Sections maps a target file (relative to the service root) to the
	// ordered section names injected into it.
	Sections map[string][]string
}

// ServicePolicy describes how one logical service responds to
// architecture choices. The service name doubles as the template
// directory under the template root, the sparse-checkout include path,
// and the output directory name.
type ServicePolicy struct {
	Name string

	// Axes selects which parts of the project choice set the service
	// sees when resolving variants.
	Axes Axes

	// Include decides whether the service is generated at all for a
	// choice set. Nil means always.
	Include func(models.ChoiceSet) bool

	// Variants defined for this service. A variant resolved by the
	// global rules but absent here is silently skipped.
	Variants map[string]VariantDefinition
}

// TemplateDir returns the service's directory under the template root.
func (p ServicePolicy) TemplateDir() string {
	return p.Name
}

// BasePath returns the base template directory under the template root.
func (p ServicePolicy) BasePath() string {
	return filepath.Join(p.Name, defs.BaseDir)
}

// VariantDir returns the named variant's directory under the template
// root.
func (p ServicePolicy) VariantDir(variant string) string {
	return filepath.Join(p.Name, defs.VariantsDir, variant)
}

// Project returns the projection of choices onto the axes this service
// receives.
func (p ServicePolicy) Project(choices models.ChoiceSet) models.PartialChoiceSet {
	var out models.PartialChoiceSet
	if p.Axes.Tenancy {
		out.Tenancy = choices.Tenancy
	}
	if p.Axes.UserModel {
		out.UserModel = choices.UserModel
	}
	return out
}

// Included reports whether the service is generated for choices.
func (p ServicePolicy) Included(choices models.ChoiceSet) bool {
	return p.Include == nil || p.Include(choices)
}

// VariantsToApply resolves a service's choices to the ordered variant
// list. Rules are evaluated in priority order and an unset axis fails
// every equality test. Combo variants come after their constituents so
// that their whole-file copies win on conflicting paths.
func VariantsToApply(choices models.PartialChoiceSet) []string {
	multi := choices.Tenancy == models.TenancyMulti
	single := choices.Tenancy == models.TenancySingle
	b2b2c := choices.UserModel == models.UserModelB2B2C

	switch {
	case multi && b2b2c:
		return []string{VariantMultiTenant, VariantB2B2C, VariantB2B2CMultiTenant}
	case b2b2c:
		return []string{VariantB2B2C, VariantB2B2CSingleTenant}
	case multi:
		return []string{VariantMultiTenant}
	case single && !choices.HasUserModel():
		return []string{VariantSingleTenant}
	default:
		return nil
	}
}

// Table is an ordered collection of service policies. Order is install
// order: it drives generation sequence and the manifest's service list.
type Table struct {
	order    []string
	services map[string]ServicePolicy
}

// NewTable builds a table from policies, preserving their order.
func NewTable(policies ...ServicePolicy) *Table {
	t := &Table{services: make(map[string]ServicePolicy, len(policies))}
	for _, p := range policies {
		t.order = append(t.order, p.Name)
		t.services[p.Name] = p
	}
	return t
}

// Service returns the policy for name.
func (t *Table) Service(name string) (ServicePolicy, bool) {
	p, ok := t.services[name]
	return p, ok
}

// ServiceNames returns every service name in install order.
func (t *Table) ServiceNames() []string {
	return slices.Clone(t.order)
}

// IncludedServices returns the services generated for choices, in
// install order.
func (t *Table) IncludedServices(choices models.ChoiceSet) []string {
	var out []string
	for _, name := range t.order {
		if t.services[name].Included(choices) {
			out = append(out, name)
		}
	}
	return out
}

// ResolveChoices maps every included service to its axis projection.
func (t *Table) ResolveChoices(choices models.ChoiceSet) map[string]models.PartialChoiceSet {
	out := make(map[string]models.PartialChoiceSet)
	for _, name := range t.IncludedServices(choices) {
		out[name] = t.services[name].Project(choices)
	}
	return out
}

// VariantExists reports whether the named service defines variant. The
// resolution rules are global while variant definitions are per-service,
// so callers treat a missing variant as a silent skip.
func (t *Table) VariantExists(service, variant string) bool {
	p, ok := t.services[service]
	if !ok {
		return false
	}
	_, ok = p.Variants[variant]
	return ok
}
