package mcpserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type parseInput struct {
	Doc docInput `json:"doc" jsonschema:"The integration definition to parse"`
}

type parseOutput struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Display       string   `json:"display,omitempty"`
	Category      string   `json:"category,omitempty"`
	Beta          bool     `json:"beta,omitempty"`
	FromVersion   string   `json:"from_version,omitempty"`
	ScriptType    string   `json:"script_type,omitempty"`
	Subtype       string   `json:"subtype,omitempty"`
	DockerImage   string   `json:"docker_image,omitempty"`
	ParamCount    int      `json:"param_count"`
	CommandCount  int      `json:"command_count"`
	ArgumentCount int      `json:"argument_count"`
	OutputCount   int      `json:"output_count"`
	Commands      []string `json:"commands,omitempty"`
	Format        string   `json:"format"`
	WarningCount  int      `json:"warning_count"`
}

func handleParse(_ context.Context, _ *mcp.CallToolRequest, input parseInput) (*mcp.CallToolResult, parseOutput, error) {
	result, err := input.Doc.resolve()
	if err != nil {
		return errResult(err), parseOutput{}, nil
	}

	output := parseOutput{
		Format:        string(result.SourceFormat),
		ParamCount:    result.Stats.ParamCount,
		CommandCount:  result.Stats.CommandCount,
		ArgumentCount: result.Stats.ArgumentCount,
		OutputCount:   result.Stats.OutputCount,
		WarningCount:  len(result.Warnings),
	}

	doc := result.Document
	if doc != nil {
		output.ID = doc.CommonFields.ID
		output.Name = doc.Name
		output.Display = doc.Display
		output.Category = doc.Category
		output.Beta = doc.Beta
		output.FromVersion = doc.FromVersion
		output.ScriptType = doc.Script.Type
		output.Subtype = doc.Script.Subtype
		output.DockerImage = doc.Script.DockerImage
		output.Commands = makeSlice[string](len(doc.Script.Commands))
		for _, cmd := range doc.Script.Commands {
			output.Commands = append(output.Commands, cmd.Name)
		}
	}

	return nil, output, nil
}
