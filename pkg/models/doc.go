// Package models provides shared data models and types for AppForge.
//
// This package contains the architecture choice enums, the project
// manifest schema, and naming helpers used across multiple packages in
// the AppForge codebase.
//
// # Architecture Choices
//
// A generated project is shaped by two independent axes:
//   - [Tenancy]: single-tenant or multi-tenant deployment model
//   - [UserModel]: b2b (business accounts only) or b2b2c (business
//     accounts plus a consumer-facing layer)
//
// A [ChoiceSet] carries both axes and is recorded verbatim in the
// project manifest. Services that only care about one axis receive a
// [PartialChoiceSet] projection with the other axis unset.
//
// # Manifest
//
// The [Manifest] type is the JSON document written to the root of every
// generated project. Later commands (service addition, inspection) locate
// and parse this file to determine what was installed and with which
// variants.
//
// # Naming
//
// [Slugify] derives the machine-safe project name from a human display
// name:
//
//	models.Slugify("Café Métro") // "cafe-metro"
package models
