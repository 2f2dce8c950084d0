package engine

import (
	"fmt"
	"strings"

	"github.com/plotkit-org/plotkit/schema"
)

// ============================================================================
// COMPATIBILITY MATCHER — Maps dataset columns to chart roles
// ============================================================================
// Partition columns into numeric and categorical pools preserving dataset
// order, then fill the chart type's roles first-available without reuse:
// each concrete column may fill only one role per evaluation. Required
// roles fill first; optional roles only consume spares. The earliest
// eligible column always wins, so suggestions are deterministic and
// reproducible for the same dataset.
//
// No side effects. The matcher judges structure (type/count) only — a
// later render can still fail (degenerate aggregation), and that is a
// distinct, later-stage error.
// ============================================================================

// Match evaluates whether columns can satisfy a chart type's roles and
// suggests a binding.
func Match(chartType string, columns []schema.Column) CompatibilityResult {
	desc, ok := lookup(chartType)
	if !ok {
		return CompatibilityResult{Compatible: false, Reason: "unknown chart type"}
	}

	// Column pools in original dataset order.
	pools := map[schema.ColumnType][]string{}
	for _, c := range columns {
		pools[c.Type] = append(pools[c.Type], c.Name)
	}

	// Structural check first: enough columns of each type for the
	// non-optional roles?
	need := map[schema.ColumnType]int{}
	for _, role := range desc.spec.Roles {
		if !role.Optional {
			need[role.Type]++
		}
	}
	var unmet []string
	for _, t := range []schema.ColumnType{schema.Categorical, schema.Numeric} {
		if need[t] > len(pools[t]) {
			unmet = append(unmet, fmt.Sprintf("requires %d %s %s, found %d",
				need[t], t, plural("column", need[t]), len(pools[t])))
		}
	}
	if len(unmet) > 0 {
		return CompatibilityResult{
			Compatible: false,
			Reason:     strings.Join(unmet, "; "),
			Suggested:  fillRoles(desc.spec.Roles, pools), // partial suggestion
		}
	}

	binding := fillRoles(desc.spec.Roles, pools)

	matched := map[schema.ColumnType]int{}
	for _, role := range desc.spec.Roles {
		if binding.roleColumn(role.Name) != "" {
			matched[role.Type]++
		}
	}
	var parts []string
	for _, t := range []schema.ColumnType{schema.Categorical, schema.Numeric} {
		if matched[t] > 0 {
			parts = append(parts, fmt.Sprintf("%d %s %s", matched[t], t, plural("column", matched[t])))
		}
	}

	return CompatibilityResult{
		Compatible: true,
		Reason:     "matched " + strings.Join(parts, " and "),
		Suggested:  binding,
	}
}

// fillRoles assigns pool columns to roles: required roles in listed
// order, then optional roles from whatever spares remain. Returns a
// partial binding when pools run dry.
func fillRoles(roles []Role, pools map[schema.ColumnType][]string) Binding {
	var binding Binding
	used := make(map[string]bool)

	assign := func(role Role) {
		for _, name := range pools[role.Type] {
			if !used[name] {
				used[name] = true
				binding.setRole(role.Name, name)
				return
			}
		}
	}

	for _, role := range roles {
		if !role.Optional {
			assign(role)
		}
	}
	for _, role := range roles {
		if role.Optional {
			assign(role)
		}
	}
	return binding
}

func plural(word string, n int) string {
	if n == 1 {
		return word
	}
	return word + "s"
}
