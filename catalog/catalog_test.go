package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultTables(t *testing.T) {
	c := Default()

	assert.NotEmpty(t, c.Categories)
	assert.Equal(t, []string{"python2", "python3"}, c.PythonSubtypes)
	assert.Equal(t, []string{"domain", "email", "file", "ip", "url"}, c.ReputationCommands)
	assert.Len(t, c.ScoreOutputs, 4)
	assert.Equal(t, "The actual score.", c.ScoreOutputs["DBotScore.Score"])
	assert.Equal(t, 8, c.BooleanParamType)
	assert.Equal(t, "5.0.0", c.DockerPinnedBelow)

	// email has no type-specific indicator contract
	_, ok := c.IndicatorOutputs["email"]
	assert.False(t, ok)

	require.Len(t, c.ParamContracts, 2)
	assert.Equal(t, []string{"proxy"}, c.ParamContracts[0].Names)
	assert.False(t, c.ParamContracts[0].Optional)
	assert.Equal(t, []string{"insecure", "unsecure"}, c.ParamContracts[1].Names)
	assert.True(t, c.ParamContracts[1].Optional)
}

func TestHasCategory(t *testing.T) {
	c := Default()
	assert.True(t, c.HasCategory("Utilities"))
	assert.True(t, c.HasCategory("Data Enrichment & Threat Intelligence"))
	assert.False(t, c.HasCategory(""))
	assert.False(t, c.HasCategory("utilities"))
}

func TestHasPythonSubtype(t *testing.T) {
	c := Default()
	assert.True(t, c.HasPythonSubtype("python2"))
	assert.True(t, c.HasPythonSubtype("python3"))
	assert.False(t, c.HasPythonSubtype(""))
	assert.False(t, c.HasPythonSubtype("python4"))
}

func TestIsReputationCommand(t *testing.T) {
	c := Default()
	for _, name := range []string{"domain", "email", "file", "ip", "url"} {
		assert.True(t, c.IsReputationCommand(name), name)
	}
	assert.False(t, c.IsReputationCommand("whois"))
}

// TestAlternateTables verifies the rule sets can run against non-production
// tables, which is the point of passing the catalog explicitly.
func TestAlternateTables(t *testing.T) {
	c := Catalog{Categories: []string{"Test"}, ReputationCommands: []string{"hash"}}
	assert.True(t, c.HasCategory("Test"))
	assert.False(t, c.HasCategory("Utilities"))
	assert.True(t, c.IsReputationCommand("hash"))
}
