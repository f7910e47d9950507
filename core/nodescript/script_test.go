package nodescript

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opensvc/jnodes/core/verb"
)

func TestStatusScript(t *testing.T) {
	s := Status([]string{"alice", "bob"}, "")
	assert.Contains(t, s, "def nodes = [ 'alice', 'bob' ]\n")
	assert.Contains(t, s, "nodes.isEmpty() || nodes.contains(it.nodeName)")
	assert.Contains(t, s, `println "${node.nodeName}: ${state}"`)

	// the probes are rendered in priority order
	last := -1
	for _, probe := range StatusProbes {
		i := strings.Index(s, "computer?."+probe.Property+")")
		require.Greaterf(t, i, last, "probe %s out of order", probe.Property)
		last = i
	}
	assert.Contains(t, s, "def state = 'disconnected'")
}

func TestStatusChain(t *testing.T) {
	expected := "  def st = 'disconnected'\n" +
		"  if (c?.online) {\n" +
		"      st = 'online'\n" +
		"  } else if (c?.temporarilyOffline) {\n" +
		"      st = 'offline'\n" +
		"  } else if (c?.connecting) {\n" +
		"      st = 'connecting'\n" +
		"  } else if (c?.offline) {\n" +
		"      st = 'disconnected'\n" +
		"  }"
	assert.Equal(t, expected, statusChain("c", "st", "  "))
}

func TestOfflineScript(t *testing.T) {
	s := Offline([]string{"web3"}, "carol")
	assert.Contains(t, s, "def nodes = [ 'web3' ]\n")
	assert.Contains(t, s, "Offlined by carol")
	assert.Contains(t, s, "if (!computer.temporarilyOffline)")
	assert.Contains(t, s, "computer.waitUntilOffline()")
	assert.NotContains(t, s, "catch")
}

func TestOnlineScript(t *testing.T) {
	s := Online([]string{"web3", "web4"}, "carol")
	assert.Contains(t, s, "def nodes = [ 'web3', 'web4' ]\n")
	assert.Contains(t, s, "computer.setTemporarilyOffline(false, null)")
	assert.Contains(t, s, "computer.waitUntilOnline()")
	assert.NotContains(t, s, "carol")
	assert.NotContains(t, s, "catch")

	// flag all nodes before waiting on any
	assert.Less(t, strings.Index(s, "setTemporarilyOffline"), strings.Index(s, "waitUntilOnline"))
}

func TestConnectScript(t *testing.T) {
	s := Connect([]string{"n1", "n2"}, "alice")
	assert.Contains(t, s, "def nodes = [ 'n1', 'n2' ]\n")
	assert.Contains(t, s, "new LinkedHashMap()")
	assert.Contains(t, s, "computer.connect(false)")
	assert.Contains(t, s, "catch (Throwable e)")
	assert.Contains(t, s, `println "${name}: connected"`)
	assert.NotContains(t, s, "isEmpty()")
	assert.Less(t, strings.Index(s, "connect(false)"), strings.Index(s, "future.get()"))
}

func TestDisconnectScript(t *testing.T) {
	s := Disconnect([]string{"n1"}, "alice")
	assert.Contains(t, s, "new OfflineCause.ByCLI('Disconnected by alice')")
	assert.Contains(t, s, "catch (Throwable e)")
	assert.Contains(t, s, `println "${name}: disconnected"`)
}

func TestEmptySelection(t *testing.T) {
	for _, g := range []Generator{Connect, Disconnect, Online, Offline, Labels, Status} {
		s := g(nil, "alice")
		assert.Contains(t, s, "def nodes = []\n")
	}
}

func TestLabelsScript(t *testing.T) {
	s := Labels(nil, "")
	assert.Contains(t, s, "nodes.isEmpty() || nodes.contains(it.nodeName)")
	assert.Contains(t, s, `println "${node.nodeName}: ${node.labelString}"`)
}

func TestListScriptIgnoresNodes(t *testing.T) {
	assert.Equal(t, List(nil, ""), List([]string{"foo", "bar"}, "alice"))
	assert.NotContains(t, List([]string{"foo"}, ""), "foo")
}

func TestRequestScript(t *testing.T) {
	r := Request{Verb: verb.Offline, Nodes: []string{"web3"}, Actor: "carol"}
	s, err := r.Script()
	require.NoError(t, err)
	assert.Equal(t, Offline([]string{"web3"}, "carol"), s)

	_, err = Request{Verb: verb.Invalid}.Script()
	assert.Error(t, err)
}

func TestAllVerbsHaveGenerator(t *testing.T) {
	for _, v := range verb.All {
		g, ok := GeneratorOf(v)
		require.Truef(t, ok, "verb %s", v)
		assert.NotEmpty(t, g(nil, ""))
	}
}
