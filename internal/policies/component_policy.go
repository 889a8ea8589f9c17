package policies

import (
	"fmt"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"uvm/internal/types"
)

// componentRequires lists the components a component cannot work without.
var componentRequires = map[types.Component][]types.Component{
	types.ComponentAndroidSdkNdkTools: {types.ComponentAndroid},
	types.ComponentAndroidOpenJdk:     {types.ComponentAndroid},
}

// componentHosts restricts components to the host operating systems that
// can install them. Components not listed install everywhere.
var componentHosts = map[types.Component][]string{
	types.ComponentUwp:           {"windows"},
	types.ComponentWindowsIl2cpp: {"windows"},
	types.ComponentMacIl2cpp:     {"darwin"},
	types.ComponentLinuxIl2cpp:   {"linux"},
	types.ComponentMacMono:       {"windows", "linux"},
	types.ComponentWindowsMono:   {"darwin", "linux"},
	types.ComponentLinuxMono:     {"darwin", "windows"},
}

// ComponentPolicy applies the component graph of the editor to a request.
type ComponentPolicy struct {
	HostOS string
}

func NewComponentPolicy(hostOS string) ComponentPolicy {
	return ComponentPolicy{HostOS: strings.ToLower(strings.TrimSpace(hostOS))}
}

// Expand returns requested plus every component it transitively requires.
func (p ComponentPolicy) Expand(requested types.ComponentSet) types.ComponentSet {
	out := types.ComponentSet{}
	pending := requested.Sorted()
	for len(pending) > 0 {
		next := pending[0]
		pending = pending[1:]
		if out.Has(next) {
			continue
		}
		out.Add(next)
		pending = append(pending, componentRequires[next]...)
	}
	return out
}

// Check rejects components the host operating system cannot install.
func (p ComponentPolicy) Check(components types.ComponentSet) error {
	for _, component := range components.Sorted() {
		hosts, ok := componentHosts[component]
		if !ok || p.HostOS == "" {
			continue
		}
		if !containsHost(hosts, p.HostOS) {
			return errbuilder.New().
				WithCode(errbuilder.CodeFailedPrecondition).
				WithMsg(fmt.Sprintf("component %s is not available on %s", component, p.HostOS))
		}
	}
	return nil
}

// Apply expands and then checks requested.
func (p ComponentPolicy) Apply(requested types.ComponentSet) (types.ComponentSet, error) {
	expanded := p.Expand(requested)
	if err := p.Check(expanded); err != nil {
		return nil, err
	}
	return expanded, nil
}

func containsHost(hosts []string, host string) bool {
	for _, candidate := range hosts {
		if candidate == host {
			return true
		}
	}
	return false
}
