package app

import (
	"fmt"

	"uvm/internal/core"
	"uvm/internal/types"
)

// installHints explains choices the install made that the caller did not
// ask for explicitly.
func installHints(requested core.Version, projectVersion core.Version, components types.ComponentSet, expanded types.ComponentSet) []string {
	var hints []string
	if !projectVersion.IsZero() && !requested.Equal(projectVersion) {
		hints = append(hints, fmt.Sprintf(
			"hint: --version %s overrides the project version %s",
			requested, projectVersion,
		))
	}
	for _, component := range expanded.Difference(components).Sorted() {
		hints = append(hints, fmt.Sprintf(
			"hint: %s is installed because a requested component requires it",
			component,
		))
	}
	return hints
}
