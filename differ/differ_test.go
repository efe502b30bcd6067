package differ

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/integkit/integtools/oldrev"
	"github.com/integkit/integtools/parser"
)

// baseDoc returns a definition that compares clean against an identical copy.
func baseDoc() *parser.IntegrationDocument {
	return &parser.IntegrationDocument{
		CommonFields: parser.CommonFields{ID: "ExampleIntel", Version: -1},
		Name:         "ExampleIntel",
		Display:      "Example Intel",
		Category:     "Data Enrichment & Threat Intelligence",
		FromVersion:  "4.5.0",
		Configuration: []parser.ConfigParam{
			{Name: "apikey", Display: "API Key", Required: true, Type: 4},
		},
		Script: parser.Script{
			Type:        "python",
			Subtype:     "python3",
			DockerImage: "demisto/python3:3.10.12.63474",
			Commands: []parser.Command{
				{
					Name: "example-search",
					Arguments: []parser.Argument{
						{Name: "query", Required: true},
						{Name: "limit"},
					},
					Outputs: []parser.Output{
						{ContextPath: "Example.Result.ID", Description: "Result ID."},
						{ContextPath: "Example.Result.Name", Description: "Result name."},
					},
				},
				{
					Name: "example-get",
					Arguments: []parser.Argument{
						{Name: "id", Required: true},
					},
					Outputs: []parser.Output{
						{ContextPath: "Example.Item.ID", Description: "Item ID."},
					},
				},
			},
		},
	}
}

func check(t *testing.T, current, old *parser.IntegrationDocument) *Result {
	t.Helper()
	d := New()
	result, err := d.CheckParsed(parser.ParseResult{Document: current}, oldrev.Present(old))
	require.NoError(t, err)
	return result
}

func TestCheckIdenticalRevisions(t *testing.T) {
	result := check(t, baseDoc(), baseDoc())

	assert.True(t, result.Compatible)
	assert.True(t, result.OldPresent)
	assert.Empty(t, result.Changes)
	assert.Zero(t, result.BreakingCount)
}

func TestCheckAbsentRevision(t *testing.T) {
	d := New()
	result, err := d.CheckParsed(parser.ParseResult{Document: baseDoc()}, oldrev.Absent())
	require.NoError(t, err)

	assert.True(t, result.Compatible)
	assert.False(t, result.OldPresent)
	assert.Empty(t, result.Changes)
}

func TestCheckAbsentRevisionWithWarning(t *testing.T) {
	d := New()
	result, err := d.CheckParsed(
		parser.ParseResult{Document: baseDoc()},
		oldrev.AbsentWithWarning("fetch failed: connection refused"),
	)
	require.NoError(t, err)

	assert.True(t, result.Compatible)
	require.Len(t, result.Changes, 1)
	assert.Equal(t, SeverityWarning, result.Changes[0].Severity)
	assert.Contains(t, result.Changes[0].Message, "connection refused")
}

func TestCheckNilCurrentDocument(t *testing.T) {
	d := New()
	_, err := d.CheckParsed(parser.ParseResult{}, oldrev.Absent())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nil")
}

func TestCheckCommandRemoved(t *testing.T) {
	current := baseDoc()
	current.Script.Commands = current.Script.Commands[:1]

	result := check(t, current, baseDoc())

	assert.False(t, result.Compatible)
	require.Len(t, result.Changes, 1)
	c := result.Changes[0]
	assert.Equal(t, ChangeTypeRemoved, c.Type)
	assert.Equal(t, CategoryCommand, c.Category)
	assert.Equal(t, SeverityCritical, c.Severity)
	assert.Equal(t, "script.commands.example-get", c.Path)
}

// A removed command is reported once at command level; its arguments and
// outputs are not reported again individually.
func TestCheckCommandRemovedNotDoubleReported(t *testing.T) {
	current := baseDoc()
	current.Script.Commands = current.Script.Commands[1:]

	result := check(t, current, baseDoc())

	require.Len(t, result.Changes, 1)
	assert.Equal(t, CategoryCommand, result.Changes[0].Category)
}

func TestCheckArgumentRemoved(t *testing.T) {
	current := baseDoc()
	current.Script.Commands[0].Arguments = current.Script.Commands[0].Arguments[:1]

	result := check(t, current, baseDoc())

	assert.False(t, result.Compatible)
	require.Len(t, result.Changes, 1)
	c := result.Changes[0]
	assert.Equal(t, ChangeTypeRemoved, c.Type)
	assert.Equal(t, CategoryArgument, c.Category)
	assert.Equal(t, SeverityError, c.Severity)
	assert.Equal(t, "script.commands.example-search.arguments.limit", c.Path)
}

func TestCheckArgumentRequiredChanged(t *testing.T) {
	tests := []struct {
		name     string
		oldReq   bool
		newReq   bool
		breaking bool
	}{
		{name: "optional became required", oldReq: false, newReq: true, breaking: true},
		{name: "required became optional", oldReq: true, newReq: false, breaking: true},
		{name: "unchanged", oldReq: true, newReq: true, breaking: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			old := baseDoc()
			old.Script.Commands[0].Arguments[1].Required = tt.oldReq
			current := baseDoc()
			current.Script.Commands[0].Arguments[1].Required = tt.newReq

			result := check(t, current, old)

			if !tt.breaking {
				assert.True(t, result.Compatible)
				assert.Empty(t, result.Changes)
				return
			}
			assert.False(t, result.Compatible)
			require.Len(t, result.Changes, 1)
			c := result.Changes[0]
			assert.Equal(t, ChangeTypeModified, c.Type)
			assert.Equal(t, tt.oldReq, c.OldValue)
			assert.Equal(t, tt.newReq, c.NewValue)
		})
	}
}

func TestCheckArgumentAddedIsFine(t *testing.T) {
	current := baseDoc()
	current.Script.Commands[0].Arguments = append(current.Script.Commands[0].Arguments,
		parser.Argument{Name: "verbose"})

	result := check(t, current, baseDoc())

	assert.True(t, result.Compatible)
	assert.Empty(t, result.Changes)
}

func TestCheckContextPathRemoved(t *testing.T) {
	current := baseDoc()
	current.Script.Commands[0].Outputs = current.Script.Commands[0].Outputs[:1]

	result := check(t, current, baseDoc())

	assert.False(t, result.Compatible)
	require.Len(t, result.Changes, 1)
	c := result.Changes[0]
	assert.Equal(t, CategoryOutput, c.Category)
	assert.Equal(t, SeverityError, c.Severity)
	assert.Equal(t, "script.commands.example-search.outputs.Example.Result.Name", c.Path)
}

func TestCheckContextPathAddedIsFine(t *testing.T) {
	current := baseDoc()
	current.Script.Commands[0].Outputs = append(current.Script.Commands[0].Outputs,
		parser.Output{ContextPath: "Example.Result.Extra"})

	result := check(t, current, baseDoc())

	assert.True(t, result.Compatible)
	assert.Empty(t, result.Changes)
}

func TestCheckRequiredParamAdded(t *testing.T) {
	current := baseDoc()
	current.Configuration = append(current.Configuration,
		parser.ConfigParam{Name: "tenant", Display: "Tenant", Required: true, Type: 0})

	result := check(t, current, baseDoc())

	assert.False(t, result.Compatible)
	require.Len(t, result.Changes, 1)
	c := result.Changes[0]
	assert.Equal(t, ChangeTypeAdded, c.Type)
	assert.Equal(t, CategoryConfiguration, c.Category)
	assert.Equal(t, "configuration.tenant", c.Path)
}

func TestCheckParamBecameRequired(t *testing.T) {
	old := baseDoc()
	old.Configuration = append(old.Configuration,
		parser.ConfigParam{Name: "tenant", Display: "Tenant", Type: 0})
	current := baseDoc()
	current.Configuration = append(current.Configuration,
		parser.ConfigParam{Name: "tenant", Display: "Tenant", Required: true, Type: 0})

	result := check(t, current, old)

	assert.False(t, result.Compatible)
	require.Len(t, result.Changes, 1)
	c := result.Changes[0]
	assert.Equal(t, ChangeTypeModified, c.Type)
	assert.Equal(t, "configuration.tenant.required", c.Path)
}

func TestCheckOptionalParamAddedIsFine(t *testing.T) {
	current := baseDoc()
	current.Configuration = append(current.Configuration,
		parser.ConfigParam{Name: "tenant", Display: "Tenant", Type: 0})

	result := check(t, current, baseDoc())

	assert.True(t, result.Compatible)
	assert.Empty(t, result.Changes)
}

func TestCheckParamBecameOptionalIsFine(t *testing.T) {
	current := baseDoc()
	current.Configuration[0].Required = false

	result := check(t, current, baseDoc())

	assert.True(t, result.Compatible)
	assert.Empty(t, result.Changes)
}

func TestCheckSubtypeChanged(t *testing.T) {
	current := baseDoc()
	current.Script.Subtype = "python2"

	result := check(t, current, baseDoc())

	assert.False(t, result.Compatible)
	require.Len(t, result.Changes, 1)
	c := result.Changes[0]
	assert.Equal(t, "script.subtype", c.Path)
	assert.Equal(t, "python3", c.OldValue)
	assert.Equal(t, "python2", c.NewValue)
}

func TestCheckSubtypeIgnoredForNonPython(t *testing.T) {
	old := baseDoc()
	old.Script.Type = "javascript"
	old.Script.Subtype = ""
	old.Script.DockerImage = ""
	current := baseDoc()
	current.Script.Type = "javascript"
	current.Script.Subtype = "whatever"
	current.Script.DockerImage = ""

	result := check(t, current, old)

	assert.True(t, result.Compatible)
}

func TestCheckSubtypeOldEmptyIsFine(t *testing.T) {
	old := baseDoc()
	old.Script.Subtype = ""

	result := check(t, baseDoc(), old)

	assert.True(t, result.Compatible)
}

func TestCheckDockerImageChanged(t *testing.T) {
	tests := []struct {
		name     string
		oldFrom  string
		breaking bool
	}{
		{name: "below threshold", oldFrom: "4.5.0", breaking: true},
		{name: "missing fromversion treated as zero", oldFrom: "", breaking: true},
		{name: "at threshold", oldFrom: "5.0.0", breaking: false},
		{name: "above threshold", oldFrom: "5.5.0", breaking: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			old := baseDoc()
			old.FromVersion = tt.oldFrom
			current := baseDoc()
			current.FromVersion = tt.oldFrom
			current.Script.DockerImage = "demisto/python3:3.11.0.12345"

			result := check(t, current, old)

			if !tt.breaking {
				assert.True(t, result.Compatible)
				assert.Empty(t, result.Changes)
				return
			}
			assert.False(t, result.Compatible)
			require.Len(t, result.Changes, 1)
			assert.Equal(t, "script.dockerimage", result.Changes[0].Path)
		})
	}
}

func TestCheckDuplicateArgumentInCurrent(t *testing.T) {
	current := baseDoc()
	current.Script.Commands[0].Arguments = append(current.Script.Commands[0].Arguments,
		parser.Argument{Name: "query"})

	result := check(t, current, baseDoc())

	assert.False(t, result.Compatible)
	require.Len(t, result.Changes, 1)
	assert.Equal(t, CategoryArgument, result.Changes[0].Category)
	assert.Contains(t, result.Changes[0].Message, "query")
}

func TestCheckDuplicateParamInCurrent(t *testing.T) {
	current := baseDoc()
	current.Configuration = append(current.Configuration,
		parser.ConfigParam{Name: "apikey", Display: "API Key (again)", Type: 4})

	result := check(t, current, baseDoc())

	assert.False(t, result.Compatible)
	require.Len(t, result.Changes, 1)
	assert.Equal(t, CategoryConfiguration, result.Changes[0].Category)
}

// A reputation command that loses a score output fails both the contract rule
// and the context path rule.
func TestCheckReputationContractInCurrent(t *testing.T) {
	old := baseDoc()
	old.Script.Commands = append(old.Script.Commands, parser.Command{
		Name: "ip",
		Arguments: []parser.Argument{
			{Name: "ip", Default: boolPtr(true)},
		},
		Outputs: []parser.Output{
			{ContextPath: "DBotScore.Indicator", Description: "The indicator that was tested."},
			{ContextPath: "DBotScore.Type", Description: "The indicator type."},
			{ContextPath: "DBotScore.Vendor", Description: "The vendor used to calculate the score."},
			{ContextPath: "DBotScore.Score", Description: "The actual score."},
			{ContextPath: "IP.Address", Description: "The IP address."},
		},
	})
	current := baseDoc()
	cmd := old.Script.Commands[2]
	cmd.Outputs = cmd.Outputs[:3]
	current.Script.Commands = append(current.Script.Commands, cmd)

	result := check(t, current, old)

	assert.False(t, result.Compatible)
	categories := make(map[ChangeCategory]int)
	for _, c := range result.Changes {
		categories[c.Category]++
	}
	assert.NotZero(t, categories[CategoryOutput])
}

func TestCheckRulesSeverityOverride(t *testing.T) {
	current := baseDoc()
	current.Script.DockerImage = "demisto/python3:3.11.0.12345"

	d := New()
	d.Rules = &RulesConfig{
		DockerImageChanged: &BreakingChangeRule{Severity: SeverityPtr(SeverityInfo)},
	}
	result, err := d.CheckParsed(parser.ParseResult{Document: current}, oldrev.Present(baseDoc()))
	require.NoError(t, err)

	assert.True(t, result.Compatible)
	require.Len(t, result.Changes, 1)
	assert.Equal(t, SeverityInfo, result.Changes[0].Severity)
	assert.Equal(t, 1, result.InfoCount)
}

func TestCheckRulesIgnore(t *testing.T) {
	current := baseDoc()
	current.Script.Commands = current.Script.Commands[:1]

	d := New()
	d.Rules = &RulesConfig{
		CommandRemoved: &BreakingChangeRule{Ignore: true},
	}
	result, err := d.CheckParsed(parser.ParseResult{Document: current}, oldrev.Present(baseDoc()))
	require.NoError(t, err)

	assert.True(t, result.Compatible)
	assert.Empty(t, result.Changes)
}

func TestCheckExcludeInfo(t *testing.T) {
	current := baseDoc()
	current.Script.DockerImage = "demisto/python3:3.11.0.12345"

	d := New()
	d.IncludeInfo = false
	d.Rules = &RulesConfig{
		DockerImageChanged: &BreakingChangeRule{Severity: SeverityPtr(SeverityInfo)},
	}
	result, err := d.CheckParsed(parser.ParseResult{Document: current}, oldrev.Present(baseDoc()))
	require.NoError(t, err)

	assert.True(t, result.Compatible)
	assert.Empty(t, result.Changes)
	assert.Zero(t, result.InfoCount)
}

func TestCheckAccumulatesAllChanges(t *testing.T) {
	current := baseDoc()
	current.Script.Commands = current.Script.Commands[:1]
	current.Script.Commands[0].Arguments = current.Script.Commands[0].Arguments[:1]
	current.Script.Subtype = "python2"
	current.Script.DockerImage = "demisto/python3:3.11.0.12345"

	result := check(t, current, baseDoc())

	assert.False(t, result.Compatible)
	assert.Equal(t, 4, result.BreakingCount)
	assert.Len(t, result.Changes, 4)
}

func TestCheckFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "integration.yml")
	content := `
commonfields:
  id: ExampleIntel
  version: -1
name: ExampleIntel
display: Example Intel
category: Data Enrichment & Threat Intelligence
fromversion: 4.5.0
configuration:
  - name: apikey
    display: API Key
    required: true
    type: 4
script:
  type: python
  subtype: python3
  dockerimage: demisto/python3:3.10.12.63474
  commands:
    - name: example-get
      arguments:
        - name: id
          required: true
      outputs:
        - contextPath: Example.Item.ID
          description: Item ID.
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	old := baseDoc()
	old.Script.Commands = old.Script.Commands[1:]

	d := New()
	result, err := d.Check(path, oldrev.Present(old))
	require.NoError(t, err)

	assert.True(t, result.Compatible)
	assert.Equal(t, path, result.SourcePath)
}

func TestChangeString(t *testing.T) {
	c := Change{
		Path:     "script.commands.example-get",
		Type:     ChangeTypeRemoved,
		Category: CategoryCommand,
		Severity: SeverityCritical,
		Message:  `command "example-get" was removed`,
	}
	s := c.String()
	assert.Contains(t, s, "✗")
	assert.Contains(t, s, "script.commands.example-get")
	assert.Contains(t, s, "removed")
}

func boolPtr(b bool) *bool { return &b }
