package mcpserver

import (
	"context"

	"github.com/integkit/integtools/validator"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type validateInput struct {
	Doc        docInput `json:"doc"                   jsonschema:"The integration definition to validate"`
	Beta       bool     `json:"beta,omitempty"        jsonschema:"Run the beta naming pass instead of the schema pass"`
	New        bool     `json:"new,omitempty"         jsonschema:"Treat the document as a newly added file (beta pass only)"`
	NoWarnings *bool    `json:"no_warnings,omitempty" jsonschema:"Suppress warnings from output"`
}

type validateIssue struct {
	Path    string `json:"path"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

type validateOutput struct {
	Valid        bool            `json:"valid"`
	Name         string          `json:"name,omitempty"`
	ErrorCount   int             `json:"error_count"`
	WarningCount int             `json:"warning_count"`
	Errors       []validateIssue `json:"errors,omitempty"`
	Warnings     []validateIssue `json:"warnings,omitempty"`
}

func handleValidate(_ context.Context, _ *mcp.CallToolRequest, input validateInput) (*mcp.CallToolResult, validateOutput, error) {
	noWarnings := cfg.ValidateNoWarnings
	if input.NoWarnings != nil {
		noWarnings = *input.NoWarnings
	}

	parseResult, err := input.Doc.resolve()
	if err != nil {
		return errResult(err), validateOutput{}, nil
	}

	opts := []validator.Option{
		validator.WithParsed(*parseResult),
		validator.WithIncludeWarnings(!noWarnings),
	}
	if input.Beta {
		opts = append(opts, validator.WithBetaPass(input.New))
	}

	result, err := validator.ValidateWithOptions(opts...)
	if err != nil {
		return errResult(err), validateOutput{}, nil
	}

	output := validateOutput{
		Valid:      result.Valid,
		ErrorCount: result.ErrorCount,
	}
	if parseResult.Document != nil {
		output.Name = parseResult.Document.Name
	}

	output.Errors = makeSlice[validateIssue](len(result.Errors))
	for _, e := range result.Errors {
		output.Errors = append(output.Errors, validateIssue{
			Path:    e.Path,
			Message: e.Message,
			Field:   e.Field,
		})
	}
	if !noWarnings {
		output.WarningCount = result.WarningCount
		output.Warnings = makeSlice[validateIssue](len(result.Warnings))
		for _, w := range result.Warnings {
			output.Warnings = append(output.Warnings, validateIssue{
				Path:    w.Path,
				Message: w.Message,
				Field:   w.Field,
			})
		}
	}

	return nil, output, nil
}
