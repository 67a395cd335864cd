package cli

import (
	"errors"
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/appforge-dev/appforge/internal/policy"
	"github.com/appforge-dev/appforge/pkg/models"
)

var servicesCmd = &cobra.Command{
	Use:   "services",
	Short: "List the service catalog or a resolved generation plan",
	Long: `List the services appforge knows how to generate.

Without flags, print the catalog: every service, the choice axes it
sees, and the variants it defines. With --tenancy and --user-model,
print the plan for that choice set instead: which services would be
generated and which variants each would receive, without touching the
filesystem.`,
	Args:    cobra.NoArgs,
	PreRunE: validateServicesFlags,
	RunE:    runServices,
}

func init() {
	rootCmd.AddCommand(servicesCmd)

	servicesCmd.Flags().String("tenancy", "", "Resolve for this tenancy: single-tenant or multi-tenant")
	servicesCmd.Flags().String("user-model", "", "Resolve for this user model: b2b or b2b2c")
}

func validateServicesFlags(cmd *cobra.Command, _ []string) error {
	tenancy := getStringFlag(cmd, "tenancy")
	userModel := getStringFlag(cmd, "user-model")
	if (tenancy == "") != (userModel == "") {
		return errors.New("--tenancy and --user-model must be given together")
	}
	if tenancy == "" {
		return nil
	}
	if !models.Tenancy(tenancy).IsValid() {
		return fmt.Errorf("invalid --tenancy value %q: must be one of: single-tenant, multi-tenant", tenancy)
	}
	if !models.UserModel(userModel).IsValid() {
		return fmt.Errorf("invalid --user-model value %q: must be one of: b2b, b2b2c", userModel)
	}
	return nil
}

func runServices(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()
	table := policy.Default()

	tenancy := getStringFlag(cmd, "tenancy")
	if tenancy == "" {
		printCatalog(out, table)
		return nil
	}

	choices := models.ChoiceSet{
		Tenancy:   models.Tenancy(tenancy),
		UserModel: models.UserModel(getStringFlag(cmd, "user-model")),
	}
	printPlan(out, table, choices)
	return nil
}

func printCatalog(out io.Writer, table *policy.Table) {
	_, _ = fmt.Fprintln(out, "Service catalog (install order):")
	_, _ = fmt.Fprintln(out)
	for _, name := range table.ServiceNames() {
		svc, _ := table.Service(name)
		_, _ = fmt.Fprintf(out, "  %-14s axes: %-20s variants: %s\n",
			name, axesLabel(svc.Axes), variantsLabel(svc))
	}
	_, _ = fmt.Fprintln(out)
	_, _ = fmt.Fprintln(out, "Run with --tenancy and --user-model to see the resolved plan.")
}

func printPlan(out io.Writer, table *policy.Table, choices models.ChoiceSet) {
	_, _ = fmt.Fprintf(out, "Plan for %s, %s:\n\n", choices.Tenancy, choices.UserModel)
	for _, name := range table.IncludedServices(choices) {
		svc, _ := table.Service(name)
		resolved := policy.VariantsToApply(svc.Project(choices))

		var applied, skipped []string
		for _, v := range resolved {
			if table.VariantExists(name, v) {
				applied = append(applied, v)
			} else {
				skipped = append(skipped, v)
			}
		}

		label := "base only"
		if len(applied) > 0 {
			label = strings.Join(applied, ", ")
		}
		if len(skipped) > 0 {
			label += fmt.Sprintf(" (skipped: %s)", strings.Join(skipped, ", "))
		}
		_, _ = fmt.Fprintf(out, "  %-14s %s\n", name, label)
	}

	if excluded := excludedServices(table, choices); len(excluded) > 0 {
		_, _ = fmt.Fprintf(out, "\nNot generated: %s\n", strings.Join(excluded, ", "))
	}
}

func axesLabel(a policy.Axes) string {
	switch {
	case a.Tenancy && a.UserModel:
		return "tenancy, user-model"
	case a.Tenancy:
		return "tenancy"
	case a.UserModel:
		return "user-model"
	default:
		return "none"
	}
}

func variantsLabel(svc policy.ServicePolicy) string {
	if len(svc.Variants) == 0 {
		return "none"
	}
	return strings.Join(slices.Sorted(maps.Keys(svc.Variants)), ", ")
}

func excludedServices(table *policy.Table, choices models.ChoiceSet) []string {
	included := table.IncludedServices(choices)
	var out []string
	for _, name := range table.ServiceNames() {
		if !slices.Contains(included, name) {
			out = append(out, name)
		}
	}
	return out
}
