package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/integkit/integtools/parser"
)

func boolPtr(b bool) *bool { return &b }

// validDoc returns a definition that passes the full schema pass.
func validDoc() *parser.IntegrationDocument {
	return &parser.IntegrationDocument{
		CommonFields: parser.CommonFields{ID: "ExampleIntel", Version: -1},
		Name:         "ExampleIntel",
		Display:      "Example Intel",
		Category:     "Data Enrichment & Threat Intelligence",
		Configuration: []parser.ConfigParam{
			{Name: "apikey", Display: "API Key", Required: true, Type: 4},
			{Name: "proxy", Display: "Use system proxy settings", DefaultValue: "false", Type: 8},
			{Name: "insecure", Display: "Trust any certificate (not secure)", Type: 8},
		},
		Script: parser.Script{
			Type:        "python",
			Subtype:     "python3",
			DockerImage: "demisto/python3:3.10.12.63474",
			Commands: []parser.Command{
				{
					Name: "file",
					Arguments: []parser.Argument{
						{Name: "file", Default: boolPtr(true)},
					},
					Outputs: []parser.Output{
						{ContextPath: "DBotScore.Indicator", Description: "The indicator that was tested."},
						{ContextPath: "DBotScore.Type", Description: "The indicator type."},
						{ContextPath: "DBotScore.Vendor", Description: "The vendor used to calculate the score."},
						{ContextPath: "DBotScore.Score", Description: "The actual score."},
						{ContextPath: "File.MD5", Description: "The MD5 hash."},
					},
				},
			},
		},
	}
}

func validateDoc(t *testing.T, doc *parser.IntegrationDocument) *ValidationResult {
	t.Helper()
	v := New()
	result, err := v.ValidateParsed(parser.ParseResult{Document: doc})
	require.NoError(t, err)
	return result
}

// TestValidateValidDocument covers the reputation contract happy path: the
// file command carries all four score outputs plus File.MD5, so the pass
// produces zero diagnostics.
func TestValidateValidDocument(t *testing.T) {
	result := validateDoc(t, validDoc())

	assert.True(t, result.Valid)
	assert.Empty(t, result.Errors)
	assert.Empty(t, result.Warnings)
}

// TestValidateParsedNilDocument verifies both passes reject a parse result
// that carries no document instead of running rules against it.
func TestValidateParsedNilDocument(t *testing.T) {
	v := New()

	result, err := v.ValidateParsed(parser.ParseResult{})
	assert.Error(t, err)
	assert.Nil(t, result)

	result, err = v.ValidateBetaParsed(parser.ParseResult{}, true)
	assert.Error(t, err)
	assert.Nil(t, result)
}

// TestValidateIdempotent verifies that running the schema pass twice on the
// same document yields the same diagnostics and the same boolean.
func TestValidateIdempotent(t *testing.T) {
	doc := validDoc()
	doc.Category = "bogus"

	first := validateDoc(t, doc)
	second := validateDoc(t, doc)

	assert.Equal(t, first.Valid, second.Valid)
	assert.Equal(t, first.Errors, second.Errors)
	assert.Equal(t, first.Warnings, second.Warnings)
}

func TestCheckValidCategory(t *testing.T) {
	tests := []struct {
		name     string
		category string
		valid    bool
	}{
		{"allowed category", "Utilities", true},
		{"empty category", "", false},
		{"unknown category", "Threat Hunting", false},
		{"case sensitive", "utilities", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := validDoc()
			doc.Category = tt.category
			result := validateDoc(t, doc)
			assert.Equal(t, tt.valid, result.Valid)
			if !tt.valid {
				require.NotEmpty(t, result.Errors)
				assert.Equal(t, "category", result.Errors[0].Path)
			}
		})
	}
}

func TestCheckValidSubtype(t *testing.T) {
	tests := []struct {
		name       string
		scriptType string
		subtype    string
		valid      bool
	}{
		{"python3", "python", "python3", true},
		{"python2", "python", "python2", true},
		{"python without subtype", "python", "", false},
		{"python with bogus subtype", "python", "python4", false},
		{"javascript needs no subtype", "javascript", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := validDoc()
			doc.Script.Type = tt.scriptType
			doc.Script.Subtype = tt.subtype
			result := validateDoc(t, doc)
			assert.Equal(t, tt.valid, result.Valid, "errors: %v", result.Errors)
		})
	}
}

func TestCheckDefaultArguments(t *testing.T) {
	t.Run("explicit false fails", func(t *testing.T) {
		doc := validDoc()
		doc.Script.Commands[0].Arguments[0].Default = boolPtr(false)
		result := validateDoc(t, doc)
		assert.False(t, result.Valid)
		require.NotEmpty(t, result.Errors)
		assert.Contains(t, result.Errors[0].Message, "not configured as default")
	})

	t.Run("unset default passes", func(t *testing.T) {
		doc := validDoc()
		doc.Script.Commands[0].Arguments[0].Default = nil
		result := validateDoc(t, doc)
		assert.True(t, result.Valid)
	})

	t.Run("non-reputation command skipped", func(t *testing.T) {
		doc := validDoc()
		doc.Script.Commands = append(doc.Script.Commands, parser.Command{
			Name: "scan",
			Arguments: []parser.Argument{
				{Name: "scan", Default: boolPtr(false)},
			},
		})
		result := validateDoc(t, doc)
		assert.True(t, result.Valid)
	})
}

func TestCheckParamContracts(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*parser.IntegrationDocument)
		valid   bool
		message string
	}{
		{
			name:   "conforming proxy and insecure",
			mutate: func(*parser.IntegrationDocument) {},
			valid:  true,
		},
		{
			name: "wrong proxy display",
			mutate: func(doc *parser.IntegrationDocument) {
				doc.Configuration[1].Display = "Proxy"
			},
			valid:   false,
			message: "display name of the proxy parameter",
		},
		{
			name: "wrong proxy default value",
			mutate: func(doc *parser.IntegrationDocument) {
				doc.Configuration[1].DefaultValue = "true"
			},
			valid:   false,
			message: "default value of the proxy parameter",
		},
		{
			name: "required proxy",
			mutate: func(doc *parser.IntegrationDocument) {
				doc.Configuration[1].Required = true
			},
			valid:   false,
			message: "must not be required",
		},
		{
			name: "wrong proxy type",
			mutate: func(doc *parser.IntegrationDocument) {
				doc.Configuration[1].Type = 0
			},
			valid:   false,
			message: "type of the proxy parameter should be 8",
		},
		{
			name: "unsecure alias checked",
			mutate: func(doc *parser.IntegrationDocument) {
				doc.Configuration[2].Name = "unsecure"
				doc.Configuration[2].Display = "Trust certs"
			},
			valid:   false,
			message: "display name of the unsecure parameter",
		},
		{
			name: "insecure family absent is a no-op pass",
			mutate: func(doc *parser.IntegrationDocument) {
				doc.Configuration = doc.Configuration[:2]
			},
			valid: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := validDoc()
			tt.mutate(doc)
			result := validateDoc(t, doc)
			assert.Equal(t, tt.valid, result.Valid, "errors: %v", result.Errors)
			if tt.message != "" {
				require.NotEmpty(t, result.Errors)
				assert.Contains(t, result.Errors[0].Message, tt.message)
			}
		})
	}
}

func TestCheckDuplicateParams(t *testing.T) {
	doc := validDoc()
	doc.Configuration = append(doc.Configuration,
		parser.ConfigParam{Name: "token"},
		parser.ConfigParam{Name: "token"},
	)

	result := validateDoc(t, doc)

	assert.False(t, result.Valid)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0].Message, "token")
	assert.Equal(t, "configuration", result.Errors[0].Path)
}

func TestCheckDuplicateArguments(t *testing.T) {
	doc := validDoc()
	doc.Script.Commands[0].Arguments = append(doc.Script.Commands[0].Arguments,
		parser.Argument{Name: "file"},
	)

	result := validateDoc(t, doc)

	assert.False(t, result.Valid)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0].Message, `command "file" declares duplicate arguments: file`)
}

func TestCheckReputationOutputs(t *testing.T) {
	t.Run("missing score path fails", func(t *testing.T) {
		doc := validDoc()
		// drop DBotScore.Score
		doc.Script.Commands[0].Outputs = doc.Script.Commands[0].Outputs[:3]
		doc.Script.Commands[0].Outputs = append(doc.Script.Commands[0].Outputs,
			parser.Output{ContextPath: "File.MD5"})

		result := validateDoc(t, doc)

		assert.False(t, result.Valid)
		require.NotEmpty(t, result.Errors)
		assert.Contains(t, result.Errors[0].Message, "DBotScore.Score")
	})

	t.Run("description mismatch is a warning only", func(t *testing.T) {
		doc := validDoc()
		doc.Script.Commands[0].Outputs[3].Description = "Score."

		result := validateDoc(t, doc)

		assert.True(t, result.Valid)
		require.Len(t, result.Warnings, 1)
		assert.Contains(t, result.Warnings[0].Message, "DBotScore.Score")
	})

	t.Run("missing indicator path fails", func(t *testing.T) {
		doc := validDoc()
		// drop File.MD5, keep the four score outputs
		doc.Script.Commands[0].Outputs = doc.Script.Commands[0].Outputs[:4]

		result := validateDoc(t, doc)

		assert.False(t, result.Valid)
		require.NotEmpty(t, result.Errors)
		assert.Contains(t, result.Errors[0].Message, "File.MD5, File.SHA1, File.SHA256")
	})

	t.Run("email has no indicator contract", func(t *testing.T) {
		doc := validDoc()
		doc.Script.Commands[0].Name = "email"
		doc.Script.Commands[0].Arguments[0].Name = "email"
		// score outputs only, no type-specific path required
		doc.Script.Commands[0].Outputs = doc.Script.Commands[0].Outputs[:4]

		result := validateDoc(t, doc)

		assert.True(t, result.Valid, "errors: %v", result.Errors)
	})

	t.Run("non-reputation command skipped", func(t *testing.T) {
		doc := validDoc()
		doc.Script.Commands[0].Name = "enrich"
		doc.Script.Commands[0].Arguments[0].Name = "target"
		doc.Script.Commands[0].Outputs = nil

		result := validateDoc(t, doc)

		assert.True(t, result.Valid)
	})
}

func TestValidateBeta(t *testing.T) {
	betaDoc := func() *parser.IntegrationDocument {
		doc := validDoc()
		doc.Display = "Example Intel (Beta)"
		doc.Beta = true
		return doc
	}

	validateBeta := func(t *testing.T, doc *parser.IntegrationDocument, isNew bool) *ValidationResult {
		t.Helper()
		v := New()
		result, err := v.ValidateBetaParsed(parser.ParseResult{Document: doc}, isNew)
		require.NoError(t, err)
		return result
	}

	t.Run("valid beta integration", func(t *testing.T) {
		result := validateBeta(t, betaDoc(), false)
		assert.True(t, result.Valid, "errors: %v", result.Errors)
	})

	t.Run("display missing beta", func(t *testing.T) {
		doc := betaDoc()
		doc.Display = "Example Intel"
		result := validateBeta(t, doc, false)
		assert.False(t, result.Valid)
		require.NotEmpty(t, result.Errors)
		assert.Equal(t, "display", result.Errors[0].Path)
	})

	t.Run("beta flag unset", func(t *testing.T) {
		doc := betaDoc()
		doc.Beta = false
		result := validateBeta(t, doc, false)
		assert.False(t, result.Valid)
		require.NotEmpty(t, result.Errors)
		assert.Equal(t, "beta", result.Errors[0].Path)
	})

	t.Run("new file with beta in id fails", func(t *testing.T) {
		doc := betaDoc()
		doc.CommonFields.ID = "ExampleIntelBeta"
		result := validateBeta(t, doc, true)
		assert.False(t, result.Valid)
		require.NotEmpty(t, result.Errors)
		assert.Equal(t, "commonfields.id", result.Errors[0].Path)
	})

	t.Run("new file with beta in name fails", func(t *testing.T) {
		doc := betaDoc()
		doc.Name = "ExampleIntel beta"
		result := validateBeta(t, doc, true)
		assert.False(t, result.Valid)
	})

	t.Run("existing file may keep beta in id and name", func(t *testing.T) {
		doc := betaDoc()
		doc.CommonFields.ID = "ExampleIntelBeta"
		doc.Name = "ExampleIntel beta"
		result := validateBeta(t, doc, false)
		assert.True(t, result.Valid, "errors: %v", result.Errors)
	})
}

func TestValidateAllRulesReport(t *testing.T) {
	// A document violating several rules at once must surface every problem
	// in one pass rather than stopping at the first failure.
	doc := validDoc()
	doc.Category = ""
	doc.Script.Subtype = "python4"
	doc.Configuration = append(doc.Configuration, parser.ConfigParam{Name: "apikey"})

	result := validateDoc(t, doc)

	assert.False(t, result.Valid)
	assert.GreaterOrEqual(t, len(result.Errors), 3)
}

func TestValidateWithOptionsParsed(t *testing.T) {
	result, err := ValidateWithOptions(WithParsed(parser.ParseResult{Document: validDoc()}))
	require.NoError(t, err)
	assert.True(t, result.Valid)
}

func TestValidateWithOptionsBetaPass(t *testing.T) {
	doc := validDoc()
	doc.Display = "Example Intel (beta)"
	doc.Beta = true

	result, err := ValidateWithOptions(
		WithParsed(parser.ParseResult{Document: doc}),
		WithBetaPass(false),
	)
	require.NoError(t, err)
	assert.True(t, result.Valid, "errors: %v", result.Errors)

	// The beta pass must not run the schema-only rules.
	doc.Category = "bogus"
	result, err = ValidateWithOptions(
		WithParsed(parser.ParseResult{Document: doc}),
		WithBetaPass(false),
	)
	require.NoError(t, err)
	assert.True(t, result.Valid)
}

func TestValidateWithOptionsInputValidation(t *testing.T) {
	_, err := ValidateWithOptions()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must specify an input source")
}

func TestValidateWithOptionsNoWarnings(t *testing.T) {
	doc := validDoc()
	doc.Script.Commands[0].Outputs[3].Description = "Score."

	result, err := ValidateWithOptions(
		WithParsed(parser.ParseResult{Document: doc}),
		WithIncludeWarnings(false),
	)
	require.NoError(t, err)
	assert.True(t, result.Valid)
	assert.Empty(t, result.Warnings)
	assert.Zero(t, result.WarningCount)
}

func TestValidateWithOptionsCatalogOverride(t *testing.T) {
	cat := New().Catalog
	cat.Categories = []string{"Test Only"}

	doc := validDoc()
	doc.Category = "Test Only"

	result, err := ValidateWithOptions(
		WithParsed(parser.ParseResult{Document: doc}),
		WithCatalog(cat),
	)
	require.NoError(t, err)
	assert.True(t, result.Valid, "errors: %v", result.Errors)
}
