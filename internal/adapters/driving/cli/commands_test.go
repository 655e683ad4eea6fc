package cli

import (
	"bytes"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueryCmd_Shape(t *testing.T) {
	assert.Equal(t, "query [text]", queryCmd.Use)

	flag := queryCmd.Flags().Lookup("top-k")
	require.NotNil(t, flag)
	assert.Equal(t, "k", flag.Shorthand)

	require.NotNil(t, queryCmd.Flags().Lookup("json"))
}

func TestQueryCmd_RequiresExactlyOneArg(t *testing.T) {
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"query"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 1 arg(s)")
}

func TestIngestCmd_Shape(t *testing.T) {
	assert.Equal(t, "ingest [path]", ingestCmd.Use)

	flag := ingestCmd.Flags().Lookup("ext")
	require.NotNil(t, flag)
	assert.Equal(t, "e", flag.Shorthand)
}

func TestAskCmd_Shape(t *testing.T) {
	assert.Equal(t, "ask [question]", askCmd.Use)

	sources := askCmd.Flags().Lookup("sources")
	require.NotNil(t, sources)
	assert.Equal(t, "true", sources.DefValue)
}

func TestPapersCmd_Shape(t *testing.T) {
	assert.Equal(t, "papers", papersCmd.Use)
	assert.Equal(t, "discover", papersDiscoverCmd.Use)
	assert.Equal(t, "upgrade [arxiv-id]", papersUpgradeCmd.Use)

	top := papersUpgradeCmd.Flags().Lookup("top")
	require.NotNil(t, top)
	assert.Equal(t, "n", top.Shorthand)
	assert.Equal(t, "5", top.DefValue)

	minCitations := papersUpgradeCmd.Flags().Lookup("min-citations")
	require.NotNil(t, minCitations)
	assert.Equal(t, "100", minCitations.DefValue)
}

func TestMCPServeCmd_Shape(t *testing.T) {
	assert.Equal(t, "serve", mcpServeCmd.Use)

	port := mcpServeCmd.Flags().Lookup("port")
	require.NotNil(t, port)
	assert.Equal(t, "p", port.Shorthand)
	assert.Equal(t, "0", port.DefValue)
}

func TestRootCmd_PersistentFlags(t *testing.T) {
	assert.Equal(t, "ragdex", rootCmd.Use)
	require.NotNil(t, rootCmd.PersistentFlags().Lookup("config"))

	verboseFlag := rootCmd.PersistentFlags().Lookup("verbose")
	require.NotNil(t, verboseFlag)
	assert.Equal(t, "v", verboseFlag.Shorthand)
}

func TestEffectiveMinScore(t *testing.T) {
	assert.Equal(t, 5, effectiveMinScore(5))
	// An explicit zero or negative floor turns filtering off rather
	// than falling back to the adapter defaults.
	assert.Equal(t, math.MinInt, effectiveMinScore(0))
	assert.Equal(t, math.MinInt, effectiveMinScore(-3))
}

func TestCommandsAreRegistered(t *testing.T) {
	names := make(map[string]bool)
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}

	for _, want := range []string{
		"ingest", "query", "ask", "chat", "fetch", "papers",
		"stats", "delete", "setup", "watch", "mcp", "version",
	} {
		assert.True(t, names[want], "command %q not registered", want)
	}
}
