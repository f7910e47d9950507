package verb

import (
	"bytes"
	"strings"
)

// T is an integer representing a bulk node operation.
type T int

const (
	// Invalid is for unrecognized verbs
	Invalid T = iota
	// Connect launches the agent of the selected nodes.
	Connect
	// Disconnect closes the agent channel of the selected nodes.
	Disconnect
	// Online clears the temporarily offline flag of the selected nodes.
	Online
	// Offline sets the temporarily offline flag of the selected nodes.
	Offline
	// Labels reports the label string of the selected nodes, all if none.
	Labels
	// Status reports the connection state of the selected nodes, all if none.
	Status
	// List reports the name of every node.
	List
)

var (
	toString = map[T]string{
		Connect:    "connect-nodes",
		Disconnect: "disconnect-nodes",
		Online:     "online-nodes",
		Offline:    "offline-nodes",
		Labels:     "node-labels",
		Status:     "node-status",
		List:       "list-nodes",
	}

	toID = map[string]T{
		"connect-nodes":    Connect,
		"disconnect-nodes": Disconnect,
		"online-nodes":     Online,
		"offline-nodes":    Offline,
		"node-labels":      Labels,
		"node-status":      Status,
		"list-nodes":       List,
	}

	// All is the verb list in usage order.
	All = []T{Connect, Disconnect, Online, Offline, Labels, Status, List}
)

func (t T) String() string {
	return toString[t]
}

// New returns the verb from its string representation. The lookup is
// case-insensitive.
func New(s string) T {
	t, ok := toID[strings.ToLower(s)]
	if ok {
		return t
	}
	return Invalid
}

// IsValid returns true if the verb is one of the supported operations.
func (t T) IsValid() bool {
	_, ok := toString[t]
	return ok
}

// AcceptsNodes returns false for verbs that ignore node name arguments.
func (t T) AcceptsNodes() bool {
	return t != List
}

// EmptyMeansAll returns true for the read-only verbs that select every
// node when no node name is passed.
func (t T) EmptyMeansAll() bool {
	switch t {
	case Labels, Status, List:
		return true
	default:
		return false
	}
}

// MarshalJSON marshals the enum as a quoted json string
func (t T) MarshalJSON() ([]byte, error) {
	buffer := bytes.NewBufferString(`"`)
	buffer.WriteString(toString[t])
	buffer.WriteString(`"`)
	return buffer.Bytes(), nil
}

// MarshalYAML marshals the enum as its string representation
func (t T) MarshalYAML() (interface{}, error) {
	return t.String(), nil
}
