// Package router resolves a command line verb and its node name arguments
// to the script to submit to the build server.
package router

import (
	"errors"
	"fmt"

	"github.com/opensvc/jnodes/core/nodescript"
	"github.com/opensvc/jnodes/core/verb"
)

var (
	// ErrUnknownVerb is returned for verbs outside the supported set.
	ErrUnknownVerb = errors.New("unrecognized command")
)

// NewRequest returns the structured request of the verb, with the node
// names flattened from the whitespace-delimited args. The args are
// ignored for the list-nodes verb.
func NewRequest(s string, args []string, actor string) (nodescript.Request, error) {
	v := verb.New(s)
	if !v.IsValid() {
		return nodescript.Request{}, fmt.Errorf("%w: %s", ErrUnknownVerb, s)
	}
	r := nodescript.Request{
		Verb:  v,
		Nodes: []string{},
		Actor: actor,
	}
	if !v.AcceptsNodes() {
		return r, nil
	}
	r.Nodes = nodescript.SplitNodes(args)
	return r, nil
}

// Route returns the script of the verb for the node names in args.
func Route(s string, args []string, actor string) (string, error) {
	r, err := NewRequest(s, args, actor)
	if err != nil {
		return "", err
	}
	return r.Script()
}

// Verbs returns the accepted verbs, in usage order.
func Verbs() []string {
	l := make([]string, len(verb.All))
	for i, v := range verb.All {
		l[i] = v.String()
	}
	return l
}
