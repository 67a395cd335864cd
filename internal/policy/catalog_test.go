package policy

import (
	"slices"
	"testing"

	"github.com/appforge-dev/appforge/pkg/models"
)

func TestDefault_InstallOrder(t *testing.T) {
	want := []string{
		ServiceBackend,
		ServiceWebapp,
		ServiceAdmin,
		ServiceWorker,
		ServiceConsumerApp,
		ServiceLanding,
	}
	if got := Default().ServiceNames(); !slices.Equal(got, want) {
		t.Errorf("ServiceNames() = %v, want %v", got, want)
	}
}

func TestDefault_IncludedServices(t *testing.T) {
	table := Default()

	t.Run("consumer app only for b2b2c", func(t *testing.T) {
		b2b := models.ChoiceSet{Tenancy: models.TenancyMulti, UserModel: models.UserModelB2B}
		if slices.Contains(table.IncludedServices(b2b), ServiceConsumerApp) {
			t.Error("consumer-app included for b2b choice set")
		}

		b2b2c := models.ChoiceSet{Tenancy: models.TenancyMulti, UserModel: models.UserModelB2B2C}
		if !slices.Contains(table.IncludedServices(b2b2c), ServiceConsumerApp) {
			t.Error("consumer-app excluded for b2b2c choice set")
		}
	})

	t.Run("all other services always included", func(t *testing.T) {
		for _, cs := range []models.ChoiceSet{
			{Tenancy: models.TenancySingle, UserModel: models.UserModelB2B},
			{Tenancy: models.TenancyMulti, UserModel: models.UserModelB2B2C},
		} {
			included := table.IncludedServices(cs)
			for _, name := range []string{ServiceBackend, ServiceWebapp, ServiceAdmin, ServiceWorker, ServiceLanding} {
				if !slices.Contains(included, name) {
					t.Errorf("service %s missing for %+v", name, cs)
				}
			}
		}
	})
}

func TestDefault_ResolveChoices(t *testing.T) {
	table := Default()
	choices := models.ChoiceSet{Tenancy: models.TenancyMulti, UserModel: models.UserModelB2B2C}

	resolved := table.ResolveChoices(choices)

	tests := []struct {
		service string
		want    models.PartialChoiceSet
	}{
		{ServiceBackend, models.PartialChoiceSet{Tenancy: models.TenancyMulti, UserModel: models.UserModelB2B2C}},
		{ServiceWebapp, models.PartialChoiceSet{UserModel: models.UserModelB2B2C}},
		// admin is linked to tenancy but needs both axes for its
		// variant set.
		{ServiceAdmin, models.PartialChoiceSet{Tenancy: models.TenancyMulti, UserModel: models.UserModelB2B2C}},
		{ServiceWorker, models.PartialChoiceSet{Tenancy: models.TenancyMulti}},
		{ServiceConsumerApp, models.PartialChoiceSet{Tenancy: models.TenancyMulti}},
		{ServiceLanding, models.PartialChoiceSet{}},
	}
	for _, tt := range tests {
		t.Run(tt.service, func(t *testing.T) {
			got, ok := resolved[tt.service]
			if !ok {
				t.Fatalf("service %s missing from resolution", tt.service)
			}
			if got != tt.want {
				t.Errorf("projection = %+v, want %+v", got, tt.want)
			}
		})
	}

	t.Run("excluded service absent from resolution", func(t *testing.T) {
		b2b := models.ChoiceSet{Tenancy: models.TenancySingle, UserModel: models.UserModelB2B}
		if _, ok := table.ResolveChoices(b2b)[ServiceConsumerApp]; ok {
			t.Error("consumer-app resolved for b2b choice set")
		}
	})
}

// End-to-end over the catalog: the variant list each service actually
// applies for every full choice set combination.
func TestDefault_AppliedVariantsByService(t *testing.T) {
	table := Default()

	tests := []struct {
		name    string
		choices models.ChoiceSet
		service string
		// want holds the resolved list filtered to variants the service
		// defines, which is what composition ends up applying.
		want []string
	}{
		{
			"backend multi b2b2c",
			models.ChoiceSet{Tenancy: models.TenancyMulti, UserModel: models.UserModelB2B2C},
			ServiceBackend,
			[]string{"multi-tenant", "b2b2c", "b2b2c_multi-tenant"},
		},
		{
			"backend single b2b2c",
			models.ChoiceSet{Tenancy: models.TenancySingle, UserModel: models.UserModelB2B2C},
			ServiceBackend,
			[]string{"b2b2c", "b2b2c_single-tenant"},
		},
		{
			"webapp single b2b2c drops undefined combo",
			models.ChoiceSet{Tenancy: models.TenancySingle, UserModel: models.UserModelB2B2C},
			ServiceWebapp,
			[]string{"b2b2c"},
		},
		{
			"admin multi b2b2c drops undefined single combo",
			models.ChoiceSet{Tenancy: models.TenancyMulti, UserModel: models.UserModelB2B2C},
			ServiceAdmin,
			[]string{"multi-tenant", "b2b2c", "b2b2c_multi-tenant"},
		},
		{
			"worker single tenancy applies section-only variant",
			models.ChoiceSet{Tenancy: models.TenancySingle, UserModel: models.UserModelB2B},
			ServiceWorker,
			[]string{"single-tenant"},
		},
		{
			"landing never varies",
			models.ChoiceSet{Tenancy: models.TenancyMulti, UserModel: models.UserModelB2B2C},
			ServiceLanding,
			nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, ok := table.Service(tt.service)
			if !ok {
				t.Fatalf("service %s not in catalog", tt.service)
			}
			var got []string
			for _, v := range VariantsToApply(p.Project(tt.choices)) {
				if table.VariantExists(tt.service, v) {
					got = append(got, v)
				}
			}
			if !slices.Equal(got, tt.want) {
				t.Errorf("applied variants = %v, want %v", got, tt.want)
			}
		})
	}
}
