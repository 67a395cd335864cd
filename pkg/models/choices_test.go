package models_test

import (
	"testing"

	"github.com/appforge-dev/appforge/pkg/models"
)

func TestTenancyIsValid(t *testing.T) {
	tests := []struct {
		name    string
		tenancy models.Tenancy
		valid   bool
	}{
		{"single-tenant is valid", models.TenancySingle, true},
		{"multi-tenant is valid", models.TenancyMulti, true},
		{"empty is invalid", models.Tenancy(""), false},
		{"uppercase is invalid", models.Tenancy("Multi-Tenant"), false},
		{"underscore form is invalid", models.Tenancy("multi_tenant"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.tenancy.IsValid(); got != tt.valid {
				t.Errorf("Tenancy(%q).IsValid() = %v, want %v", tt.tenancy, got, tt.valid)
			}
		})
	}
}

func TestUserModelIsValid(t *testing.T) {
	tests := []struct {
		name  string
		um    models.UserModel
		valid bool
	}{
		{"b2b is valid", models.UserModelB2B, true},
		{"b2b2c is valid", models.UserModelB2B2C, true},
		{"empty is invalid", models.UserModel(""), false},
		{"b2c is invalid", models.UserModel("b2c"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.um.IsValid(); got != tt.valid {
				t.Errorf("UserModel(%q).IsValid() = %v, want %v", tt.um, got, tt.valid)
			}
		})
	}
}

func TestChoiceSetIsValid(t *testing.T) {
	tests := []struct {
		name  string
		cs    models.ChoiceSet
		valid bool
	}{
		{
			"both axes valid",
			models.ChoiceSet{Tenancy: models.TenancyMulti, UserModel: models.UserModelB2B},
			true,
		},
		{
			"missing tenancy",
			models.ChoiceSet{UserModel: models.UserModelB2B2C},
			false,
		},
		{
			"missing user model",
			models.ChoiceSet{Tenancy: models.TenancySingle},
			false,
		},
		{
			"zero value",
			models.ChoiceSet{},
			false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.cs.IsValid(); got != tt.valid {
				t.Errorf("IsValid() = %v, want %v", got, tt.valid)
			}
		})
	}
}

func TestPartialChoiceSet(t *testing.T) {
	t.Run("zero value is empty", func(t *testing.T) {
		var p models.PartialChoiceSet
		if !p.IsEmpty() {
			t.Error("zero value should be empty")
		}
		if p.HasTenancy() || p.HasUserModel() {
			t.Error("zero value should have no axis set")
		}
	})

	t.Run("single axis set", func(t *testing.T) {
		p := models.PartialChoiceSet{UserModel: models.UserModelB2B2C}
		if p.IsEmpty() {
			t.Error("IsEmpty() = true, want false")
		}
		if p.HasTenancy() {
			t.Error("HasTenancy() = true, want false")
		}
		if !p.HasUserModel() {
			t.Error("HasUserModel() = false, want true")
		}
	})

	t.Run("projection from full choice set", func(t *testing.T) {
		cs := models.ChoiceSet{Tenancy: models.TenancyMulti, UserModel: models.UserModelB2B}
		p := cs.Partial()
		if p.Tenancy != models.TenancyMulti || p.UserModel != models.UserModelB2B {
			t.Errorf("Partial() = %+v, want both axes carried over", p)
		}
	})
}

func TestValidValueLists(t *testing.T) {
	if got := len(models.ValidTenancies()); got != 2 {
		t.Errorf("len(ValidTenancies()) = %d, want 2", got)
	}
	if got := len(models.ValidUserModels()); got != 2 {
		t.Errorf("len(ValidUserModels()) = %d, want 2", got)
	}
}
