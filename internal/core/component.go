package core

import (
	"fmt"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"uvm/internal/shared"
	"uvm/internal/types"
)

var knownComponents = func() map[types.Component]struct{} {
	known := make(map[types.Component]struct{}, len(types.KnownComponents))
	for _, component := range types.KnownComponents {
		known[component] = struct{}{}
	}
	return known
}()

// ParseComponent accepts a component name in any case, with underscores or
// hyphens.
func ParseComponent(text string) (types.Component, error) {
	name := types.Component(shared.NormalizeComponentName(text))
	if name == "" {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("component name is empty")
	}
	if _, ok := knownComponents[name]; !ok {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("unknown component: %s", strings.TrimSpace(text)))
	}
	return name, nil
}

// ParseComponents parses a list of names into a set; duplicates collapse.
func ParseComponents(texts []string) (types.ComponentSet, error) {
	set := types.ComponentSet{}
	for _, text := range texts {
		component, err := ParseComponent(text)
		if err != nil {
			return nil, err
		}
		set.Add(component)
	}
	return set, nil
}
