package models

// Tenancy represents the tenancy axis of a project.
type Tenancy string

const (
	// TenancySingle generates a project serving one tenant per deployment.
	TenancySingle Tenancy = "single-tenant"

	// TenancyMulti generates a project where many tenants share one deployment.
	TenancyMulti Tenancy = "multi-tenant"
)

// ValidTenancies returns all valid tenancy values.
func ValidTenancies() []Tenancy {
	return []Tenancy{TenancySingle, TenancyMulti}
}

// IsValid checks if the tenancy is a valid value.
func (t Tenancy) IsValid() bool {
	switch t {
	case TenancySingle, TenancyMulti:
		return true
	}
	return false
}

// UserModel represents the user-model axis of a project.
type UserModel string

const (
	// UserModelB2B generates a project whose end users are business accounts.
	UserModelB2B UserModel = "b2b"

	// UserModelB2B2C adds a consumer-facing layer on top of business accounts.
	UserModelB2B2C UserModel = "b2b2c"
)

// ValidUserModels returns all valid user-model values.
func ValidUserModels() []UserModel {
	return []UserModel{UserModelB2B, UserModelB2B2C}
}

// IsValid checks if the user model is a valid value.
func (u UserModel) IsValid() bool {
	switch u {
	case UserModelB2B, UserModelB2B2C:
		return true
	}
	return false
}

// ChoiceSet holds the complete set of architecture choices for a project.
// Both axes are always populated; use [PartialChoiceSet] when an axis may
// be absent.
type ChoiceSet struct {
	Tenancy   Tenancy   `json:"tenancy" yaml:"tenancy"`
	UserModel UserModel `json:"userModel" yaml:"user_model"`
}

// IsValid checks that both axes carry valid values.
func (c ChoiceSet) IsValid() bool {
	return c.Tenancy.IsValid() && c.UserModel.IsValid()
}

// PartialChoiceSet is a projection of a [ChoiceSet] onto the axes a single
// service cares about. An empty string means the axis is not set.
type PartialChoiceSet struct {
	Tenancy   Tenancy
	UserModel UserModel
}

// HasTenancy reports whether the tenancy axis is set.
func (p PartialChoiceSet) HasTenancy() bool {
	return p.Tenancy != ""
}

// HasUserModel reports whether the user-model axis is set.
func (p PartialChoiceSet) HasUserModel() bool {
	return p.UserModel != ""
}

// IsEmpty reports whether no axis is set.
func (p PartialChoiceSet) IsEmpty() bool {
	return !p.HasTenancy() && !p.HasUserModel()
}

// Partial returns the projection of the choice set onto both axes.
func (c ChoiceSet) Partial() PartialChoiceSet {
	return PartialChoiceSet{Tenancy: c.Tenancy, UserModel: c.UserModel}
}
