package policy

import "github.com/appforge-dev/appforge/pkg/models"

// Logical service names in the built-in catalog.
const (
	ServiceBackend     = "backend"
	ServiceWebapp      = "webapp"
	ServiceAdmin       = "admin"
	ServiceWorker      = "worker"
	ServiceConsumerApp = "consumer-app"
	ServiceLanding     = "landing"
)

// Default returns the built-in service catalog in install order.
//
// backend is the driving service and sees the full choice set. webapp
// varies only on the user model, worker and consumer-app only on
// tenancy. admin is linked to tenancy but needs the user model too to
// pick its variant set, so it is the one service that receives both
// axes despite not being the driving service. landing is identical for
// every choice set.
func Default() *Table {
	return NewTable(
		ServicePolicy{
			Name: ServiceBackend,
			Axes: Axes{Tenancy: true, UserModel: true},
			Variants: map[string]VariantDefinition{
				VariantMultiTenant: {
					Files: []string{
						"src/modules/tenants",
						"src/middleware/tenant-context.ts",
					},
					Sections: map[string][]string{
						"src/app.module.ts":     {"TENANT_MODULE_IMPORT", "TENANT_MODULE_REGISTER"},
						"prisma/schema.prisma":  {"TENANT_MODELS"},
						"src/config/default.ts": {"TENANT_CONFIG"},
					},
				},
				VariantB2B2C: {
					Files: []string{
						"src/modules/consumers",
						"src/modules/invitations",
					},
					Sections: map[string][]string{
						"src/app.module.ts":    {"CONSUMER_MODULE_IMPORT", "CONSUMER_MODULE_REGISTER"},
						"prisma/schema.prisma": {"CONSUMER_MODELS"},
						"src/auth/roles.ts":    {"CONSUMER_ROLES"},
					},
				},
				// Combo overlays are file-only: their whole-file copies
				// supersede what the constituent variants injected.
				VariantB2B2CMultiTenant: {
					Files: []string{
						"src/modules/consumers/consumer-scope.service.ts",
						"src/auth/tenant-consumer.guard.ts",
					},
				},
				VariantB2B2CSingleTenant: {
					Files: []string{
						"src/modules/consumers/consumer-scope.service.ts",
					},
				},
			},
		},
		ServicePolicy{
			Name: ServiceWebapp,
			Axes: Axes{UserModel: true},
			Variants: map[string]VariantDefinition{
				VariantB2B2C: {
					Files: []string{
						"app/consumer",
						"components/consumer-nav.tsx",
					},
					Sections: map[string][]string{
						"app/layout.tsx":         {"CONSUMER_PROVIDERS"},
						"components/sidebar.tsx": {"CONSUMER_LINKS"},
					},
				},
			},
		},
		ServicePolicy{
			Name: ServiceAdmin,
			Axes: Axes{Tenancy: true, UserModel: true},
			Variants: map[string]VariantDefinition{
				VariantMultiTenant: {
					Files: []string{"src/pages/tenants"},
					Sections: map[string][]string{
						"src/navigation.tsx":   {"TENANT_NAV"},
						"src/api/resources.ts": {"TENANT_RESOURCES"},
					},
				},
				VariantB2B2C: {
					Files: []string{"src/pages/consumers"},
					Sections: map[string][]string{
						"src/navigation.tsx":   {"CONSUMER_NAV"},
						"src/api/resources.ts": {"CONSUMER_RESOURCES"},
					},
				},
				VariantB2B2CMultiTenant: {
					Files: []string{"src/pages/consumers/consumer-tenant-filter.tsx"},
				},
			},
		},
		ServicePolicy{
			Name: ServiceWorker,
			Axes: Axes{Tenancy: true},
			Variants: map[string]VariantDefinition{
				VariantMultiTenant: {
					Files: []string{"worker/tenancy.py"},
					Sections: map[string][]string{
						"worker/settings.py":       {"TENANT_SETTINGS"},
						"worker/tasks/__init__.py": {"TENANT_TASKS"},
					},
				},
				VariantSingleTenant: {
					Sections: map[string][]string{
						"worker/settings.py": {"SINGLE_TENANT_SETTINGS"},
					},
				},
			},
		},
		ServicePolicy{
			Name: ServiceConsumerApp,
			Axes: Axes{Tenancy: true},
			Include: func(c models.ChoiceSet) bool {
				return c.UserModel == models.UserModelB2B2C
			},
			Variants: map[string]VariantDefinition{
				VariantMultiTenant: {
					Sections: map[string][]string{
						"app/config.ts": {"TENANT_LOOKUP"},
					},
				},
			},
		},
		ServicePolicy{
			Name:     ServiceLanding,
			Variants: map[string]VariantDefinition{},
		},
	)
}
