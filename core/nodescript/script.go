// Package nodescript generates the groovy scripts submitted to the build
// server script console to operate on a set of worker nodes in one request.
//
// The connect and disconnect scripts dispatch the operation on every
// selected node without blocking, then wait the returned futures in node
// enumeration order. A failure is reported on the node line and does not
// abort the batch.
//
// The online and offline scripts flag the selected nodes first, then wait
// for each node to reach the expected state. These waits have no timeout.
package nodescript

import (
	"bytes"
	"embed"
	"fmt"
	"text/template"

	"github.com/opensvc/jnodes/core/verb"
)

type (
	// Generator returns the script of a verb for the node names and the
	// acting user.
	Generator func(nodes []string, actor string) string

	// Request is the structured form of a generated script.
	Request struct {
		Verb  verb.T   `json:"verb" yaml:"verb"`
		Nodes []string `json:"nodes" yaml:"nodes"`
		Actor string   `json:"actor" yaml:"actor"`
	}

	data struct {
		Nodes string
		Actor string
	}
)

var (
	//go:embed text
	fs embed.FS

	templates = template.Must(template.New("").
			Funcs(template.FuncMap{"statusChain": statusChain}).
			ParseFS(fs, "text/*.groovy"))

	generators = map[verb.T]Generator{
		verb.Connect:    Connect,
		verb.Disconnect: Disconnect,
		verb.Online:     Online,
		verb.Offline:    Offline,
		verb.Labels:     Labels,
		verb.Status:     Status,
		verb.List:       List,
	}
)

func render(v verb.T, nodes []string, actor string) string {
	var b bytes.Buffer
	d := data{
		Nodes: EncodeNodes(nodes),
		Actor: actor,
	}
	if err := templates.ExecuteTemplate(&b, v.String()+".groovy", d); err != nil {
		panic(err)
	}
	return b.String()
}

// Connect returns the script launching the agent of the nodes.
func Connect(nodes []string, _ string) string {
	return render(verb.Connect, nodes, "")
}

// Disconnect returns the script closing the agent channel of the nodes,
// with a "Disconnected by <actor>" cause.
func Disconnect(nodes []string, actor string) string {
	return render(verb.Disconnect, nodes, actor)
}

// Online returns the script clearing the temporarily offline flag of the
// nodes and waiting for each node to come online.
func Online(nodes []string, _ string) string {
	return render(verb.Online, nodes, "")
}

// Offline returns the script setting the temporarily offline flag of the
// nodes, with a "Offlined by <actor>" cause, and waiting for each node to
// go offline.
func Offline(nodes []string, actor string) string {
	return render(verb.Offline, nodes, actor)
}

// Labels returns the script printing the label string of the nodes, or of
// every node if nodes is empty.
func Labels(nodes []string, _ string) string {
	return render(verb.Labels, nodes, "")
}

// Status returns the script printing the state of the nodes, or of every
// node if nodes is empty.
func Status(nodes []string, _ string) string {
	return render(verb.Status, nodes, "")
}

// List returns the script printing the name of every node.
func List(_ []string, _ string) string {
	return render(verb.List, nil, "")
}

// GeneratorOf returns the script generator of the verb.
func GeneratorOf(v verb.T) (Generator, bool) {
	g, ok := generators[v]
	return g, ok
}

// Script returns the script text of the request.
func (t Request) Script() (string, error) {
	g, ok := GeneratorOf(t.Verb)
	if !ok {
		return "", fmt.Errorf("no script generator for verb %d", t.Verb)
	}
	return g(t.Nodes, t.Actor), nil
}
