package mcpserver

import (
	"context"
	"strconv"

	"github.com/integkit/integtools/differ"
	"github.com/integkit/integtools/oldrev"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type compatInput struct {
	Current docInput `json:"current"           jsonschema:"The candidate integration definition"`
	Old     docInput `json:"old,omitempty"     jsonschema:"The old revision to compare against (file, url, or content). Omit along with git_dir for a brand-new integration."`
	GitDir  string   `json:"git_dir,omitempty" jsonschema:"Path inside a git working tree to read the old revision from"`
	GitRef  string   `json:"git_ref,omitempty" jsonschema:"Git revision to read the old file at (default: the configured branch)"`
	GitPath string   `json:"git_path,omitempty" jsonschema:"Repo-relative path of the integration file at the git ref (defaults to the current file input)"`
	NoInfo  bool     `json:"no_info,omitempty" jsonschema:"Suppress informational changes"`
}

type compatChange struct {
	Severity string `json:"severity"`
	Type     string `json:"type"`
	Category string `json:"category"`
	Path     string `json:"path"`
	Message  string `json:"message"`
}

type compatOutput struct {
	Compatible    bool           `json:"compatible"`
	OldPresent    bool           `json:"old_present"`
	TotalChanges  int            `json:"total_changes"`
	BreakingCount int            `json:"breaking_count"`
	WarningCount  int            `json:"warning_count"`
	InfoCount     int            `json:"info_count"`
	Changes       []compatChange `json:"changes,omitempty"`
	Summary       string         `json:"summary"`
}

func handleCompat(_ context.Context, _ *mcp.CallToolRequest, input compatInput) (*mcp.CallToolResult, compatOutput, error) {
	currentResult, err := input.Current.resolve()
	if err != nil {
		return errResult(err), compatOutput{}, nil
	}

	old, err := resolveOldRevision(input)
	if err != nil {
		return errResult(err), compatOutput{}, nil
	}

	result, err := differ.CheckWithOptions(
		differ.WithCurrentParsed(currentResult),
		differ.WithOldRevision(old),
		differ.WithIncludeInfo(!input.NoInfo),
	)
	if err != nil {
		return errResult(err), compatOutput{}, nil
	}

	output := compatOutput{
		Compatible:    result.Compatible,
		OldPresent:    result.OldPresent,
		TotalChanges:  len(result.Changes),
		BreakingCount: result.BreakingCount,
		WarningCount:  result.WarningCount,
		InfoCount:     result.InfoCount,
		Changes:       makeSlice[compatChange](len(result.Changes)),
	}
	for _, c := range result.Changes {
		output.Changes = append(output.Changes, compatChange{
			Severity: c.Severity.String(),
			Type:     string(c.Type),
			Category: string(c.Category),
			Path:     c.Path,
			Message:  c.Message,
		})
	}
	output.Summary = buildCompatSummary(output)

	return nil, output, nil
}

// resolveOldRevision builds the old revision from the tool input. Git input
// wins over a direct document input; with neither the revision is absent.
func resolveOldRevision(input compatInput) (oldrev.Revision, error) {
	if input.GitDir != "" {
		ref := input.GitRef
		if ref == "" {
			ref = cfg.CompatBranch
		}
		path := input.GitPath
		if path == "" {
			path = input.Current.File
		}
		return oldrev.FetchGit(oldrev.GitConfig{
			Dir:  input.GitDir,
			Ref:  ref,
			Path: path,
		}), nil
	}

	if input.Old.File == "" && input.Old.URL == "" && input.Old.Content == "" {
		return oldrev.Absent(), nil
	}

	oldResult, err := input.Old.resolve()
	if err != nil {
		// The old revision being unreadable must not fail the check
		// for what may simply be a renamed or new file.
		return oldrev.AbsentWithWarning("old revision unavailable: " + sanitizeError(err)), nil
	}
	if oldResult.Document == nil || len(oldResult.Errors) > 0 {
		return oldrev.AbsentWithWarning("old revision did not parse cleanly"), nil
	}
	return oldrev.Present(oldResult.Document), nil
}

func buildCompatSummary(output compatOutput) string {
	if !output.OldPresent && output.TotalChanges == 0 {
		return "No old revision; nothing to compare."
	}
	if output.TotalChanges == 0 {
		return "No changes detected."
	}

	summary := ""
	if output.BreakingCount > 0 {
		summary = "Breaking changes detected. "
	}
	summary += formatCount(output.TotalChanges, "change") + " found"
	if output.BreakingCount > 0 {
		summary += " (" + formatCount(output.BreakingCount, "breaking change") + ")."
	} else {
		summary += "."
	}
	return summary
}

func formatCount(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return strconv.Itoa(n) + " " + noun + "s"
}
