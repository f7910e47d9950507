package nodescript

import (
	"regexp"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

var regexpQuoted = regexp.MustCompile(`'([^']*)'`)

func decodeNodes(s string) []string {
	l := make([]string, 0)
	for _, m := range regexpQuoted.FindAllStringSubmatch(s, -1) {
		l = append(l, m[1])
	}
	return l
}

func TestEncodeNodes(t *testing.T) {
	cases := map[string]struct {
		nodes    []string
		expected string
	}{
		"nil":        {nil, "[]"},
		"empty":      {[]string{}, "[]"},
		"one":        {[]string{"web1"}, "[ 'web1' ]"},
		"two":        {[]string{"alice", "bob"}, "[ 'alice', 'bob' ]"},
		"duplicates": {[]string{"b", "a", "b"}, "[ 'b', 'a', 'b' ]"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			s := EncodeNodes(tc.nodes)
			assert.Equal(t, tc.expected, s)
			assert.NotContains(t, s, ",]")
			assert.NotContains(t, s, "''")
		})
	}
}

func TestEncodeNodesRoundTrip(t *testing.T) {
	lists := [][]string{
		{},
		{"n1"},
		{"z9", "a1", "m5"},
		{"dup", "dup", "other"},
		{"build-agent-01", "build_agent.02"},
	}
	for _, nodes := range lists {
		got := decodeNodes(EncodeNodes(nodes))
		if diff := cmp.Diff(nodes, got); diff != "" {
			t.Errorf("round trip mismatch (-want +got):\n%s", diff)
		}
	}
}

func TestSplitNodes(t *testing.T) {
	cases := map[string]struct {
		args     []string
		expected []string
	}{
		"nil":           {nil, []string{}},
		"whitespace":    {[]string{"n1  n2", "n3", "", "\tn4\n"}, []string{"n1", "n2", "n3", "n4"}},
		"backslash":     {[]string{`win\agent01`}, []string{`win\agent01`}},
		"single quote":  {[]string{"o'neil web1"}, []string{"o'neil", "web1"}},
		"double quotes": {[]string{`"a b"`}, []string{`"a`, `b"`}},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tc.expected, SplitNodes(tc.args))
		})
	}
}
