package nodescript

import (
	"fmt"
	"strings"
)

type (
	// Probe associates a boolean computer property to the state reported
	// when the property is true.
	Probe struct {
		Property string
		State    string
	}
)

const (
	StateOnline       = "online"
	StateOffline      = "offline"
	StateConnecting   = "connecting"
	StateDisconnected = "disconnected"
	StateConnected    = "connected"
)

// StatusProbes is evaluated in order, the first true property wins.
var StatusProbes = []Probe{
	{Property: "online", State: StateOnline},
	{Property: "temporarilyOffline", State: StateOffline},
	{Property: "connecting", State: StateConnecting},
	{Property: "offline", State: StateDisconnected},
}

// DefaultState is reported when no status probe is true.
const DefaultState = StateDisconnected

// States returns the states the generated scripts can report for a node.
func States() []string {
	return []string{
		StateOnline,
		StateOffline,
		StateConnecting,
		StateDisconnected,
		StateConnected,
	}
}

// statusChain renders the groovy if/else chain assigning the state
// variable from the computer properties, in StatusProbes order.
func statusChain(computer, state, indent string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%sdef %s = '%s'\n", indent, state, DefaultState)
	for i, probe := range StatusProbes {
		if i == 0 {
			fmt.Fprintf(&b, "%sif (%s?.%s) {\n", indent, computer, probe.Property)
		} else {
			fmt.Fprintf(&b, "%s} else if (%s?.%s) {\n", indent, computer, probe.Property)
		}
		fmt.Fprintf(&b, "%s    %s = '%s'\n", indent, state, probe.State)
	}
	fmt.Fprintf(&b, "%s}", indent)
	return b.String()
}
