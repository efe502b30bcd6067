package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/integkit/integtools"
	"github.com/integkit/integtools/differ"
	"github.com/integkit/integtools/internal/mcpserver"
	"github.com/integkit/integtools/oldrev"
	"github.com/integkit/integtools/parser"
	"github.com/integkit/integtools/validator"
	"gopkg.in/yaml.v3"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]

	switch command {
	case "version", "-v", "--version":
		fmt.Printf("integtools v%s\n", integtools.Version())
	case "help", "-h", "--help":
		printUsage()
	case "validate":
		if err := handleValidate(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "compat":
		if err := handleCompat(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "parse":
		if err := handleParse(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "mcp":
		if err := handleMCP(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		if suggestion := suggestCommand(command); suggestion != "" {
			fmt.Fprintf(os.Stderr, "Did you mean: %s?\n", suggestion)
		}
		fmt.Fprintln(os.Stderr)
		printUsage()
		os.Exit(1)
	}
}

// suggestCommand returns the closest known command within edit distance 2,
// or an empty string when nothing is close enough.
func suggestCommand(input string) string {
	commands := []string{"validate", "compat", "parse", "mcp", "version", "help"}

	best := ""
	bestDist := 3
	for _, cmd := range commands {
		if d := editDistance(input, cmd); d < bestDist {
			best = cmd
			bestDist = d
		}
	}
	return best
}

// editDistance computes the Levenshtein distance between two strings.
func editDistance(a, b string) int {
	if a == b {
		return 0
	}
	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}

// validateFlags contains flags for the validate command
type validateFlags struct {
	beta       bool
	newFile    bool
	noWarnings bool
}

func setupValidateFlags() (*flag.FlagSet, *validateFlags) {
	fs := flag.NewFlagSet("validate", flag.ContinueOnError)
	flags := &validateFlags{}

	fs.BoolVar(&flags.beta, "beta", false, "run the beta naming checks instead of the schema checks")
	fs.BoolVar(&flags.newFile, "new", false, "treat the file as newly added (stricter beta naming rules)")
	fs.BoolVar(&flags.noWarnings, "no-warnings", false, "suppress warning messages (only show errors)")

	fs.Usage = func() {
		_, _ = fmt.Fprintf(fs.Output(), "Usage: integtools validate [flags] <file|url>\n\n")
		_, _ = fmt.Fprintf(fs.Output(), "Validate an integration definition against the schema rules: category,\n")
		_, _ = fmt.Fprintf(fs.Output(), "Python subtype, reputation command contracts, proxy/insecure parameters,\n")
		_, _ = fmt.Fprintf(fs.Output(), "and duplicate names.\n\n")
		_, _ = fmt.Fprintf(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		_, _ = fmt.Fprintf(fs.Output(), "\nExamples:\n")
		_, _ = fmt.Fprintf(fs.Output(), "  integtools validate MyIntegration.yml\n")
		_, _ = fmt.Fprintf(fs.Output(), "  integtools validate --no-warnings MyIntegration.yml\n")
		_, _ = fmt.Fprintf(fs.Output(), "  integtools validate --beta --new BetaIntegration.yml\n")
	}

	return fs, flags
}

func handleValidate(args []string) error {
	fs, flags := setupValidateFlags()

	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil
		}
		return err
	}

	if fs.NArg() != 1 {
		fs.Usage()
		return fmt.Errorf("validate command requires exactly one file path or URL")
	}

	docPath := fs.Arg(0)

	v := validator.New()
	v.IncludeWarnings = !flags.noWarnings

	startTime := time.Now()
	var result *validator.ValidationResult
	var err error
	if flags.beta {
		result, err = v.ValidateBeta(docPath, flags.newFile)
	} else {
		result, err = v.Validate(docPath)
	}
	totalTime := time.Since(startTime)
	if err != nil {
		return fmt.Errorf("validating file: %w", err)
	}

	fmt.Printf("Integration Validator\n")
	fmt.Printf("=====================\n\n")
	fmt.Printf("integtools version: %s\n", integtools.Version())
	fmt.Printf("Integration: %s\n", docPath)
	fmt.Printf("Source Size: %s\n", parser.FormatBytes(result.SourceSize))
	fmt.Printf("Parameters: %d\n", result.Stats.ParamCount)
	fmt.Printf("Commands: %d\n", result.Stats.CommandCount)
	fmt.Printf("Arguments: %d\n", result.Stats.ArgumentCount)
	fmt.Printf("Outputs: %d\n", result.Stats.OutputCount)
	fmt.Printf("Load Time: %v\n", result.LoadTime)
	fmt.Printf("Total Time: %v\n\n", totalTime)

	if len(result.Errors) > 0 {
		fmt.Printf("Errors (%d):\n", result.ErrorCount)
		for _, err := range result.Errors {
			fmt.Printf("  %s\n", err.String())
		}
		fmt.Println()
	}

	if len(result.Warnings) > 0 {
		fmt.Printf("Warnings (%d):\n", result.WarningCount)
		for _, warning := range result.Warnings {
			fmt.Printf("  %s\n", warning.String())
		}
		fmt.Println()
	}

	if result.Valid {
		fmt.Printf("✓ Validation passed")
		if result.WarningCount > 0 {
			fmt.Printf(" with %d warning(s)", result.WarningCount)
		}
		fmt.Println()
	} else {
		fmt.Printf("✗ Validation failed: %d error(s)", result.ErrorCount)
		if result.WarningCount > 0 {
			fmt.Printf(", %d warning(s)", result.WarningCount)
		}
		fmt.Println()
		os.Exit(1)
	}

	return nil
}

// compatFlags contains flags for the compat command
type compatFlags struct {
	oldPath    string
	gitDir     string
	gitRef     string
	gitPath    string
	remoteBase string
	branch     string
	remotePath string
	newFile    bool
	noInfo     bool
}

func setupCompatFlags() (*flag.FlagSet, *compatFlags) {
	fs := flag.NewFlagSet("compat", flag.ContinueOnError)
	flags := &compatFlags{}

	fs.StringVar(&flags.oldPath, "old", "", "path or URL of the old revision")
	fs.StringVar(&flags.gitDir, "git-dir", "", "git working tree to read the old revision from")
	fs.StringVar(&flags.gitRef, "git-ref", "master", "git revision to read the old file at")
	fs.StringVar(&flags.gitPath, "git-path", "", "repo-relative path at the git ref (default: the current file argument)")
	fs.StringVar(&flags.remoteBase, "remote-base", "", "base raw-content URL to fetch the old revision from")
	fs.StringVar(&flags.branch, "branch", "master", "branch used with -remote-base")
	fs.StringVar(&flags.remotePath, "remote-path", "", "repo-relative path used with -remote-base (default: the current file argument)")
	fs.BoolVar(&flags.newFile, "new", false, "treat the integration as brand new (no old revision)")
	fs.BoolVar(&flags.noInfo, "no-info", false, "exclude informational changes from output")

	fs.Usage = func() {
		_, _ = fmt.Fprintf(fs.Output(), "Usage: integtools compat [flags] <file|url>\n\n")
		_, _ = fmt.Fprintf(fs.Output(), "Check backward compatibility of an integration definition against its old\n")
		_, _ = fmt.Fprintf(fs.Output(), "revision. Reports removed commands, removed arguments and context paths,\n")
		_, _ = fmt.Fprintf(fs.Output(), "required-flag flips, subtype changes, and docker image changes.\n\n")
		_, _ = fmt.Fprintf(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		_, _ = fmt.Fprintf(fs.Output(), "\nOld Revision Sources (pick one; with none, -new is implied):\n")
		_, _ = fmt.Fprintf(fs.Output(), "  -old <file|url>          Read the old revision directly\n")
		_, _ = fmt.Fprintf(fs.Output(), "  -git-dir <dir>           Read the file at -git-ref from a local clone\n")
		_, _ = fmt.Fprintf(fs.Output(), "  -remote-base <url>       Fetch <base>/<branch>/<path> over HTTP\n")
		_, _ = fmt.Fprintf(fs.Output(), "\nExamples:\n")
		_, _ = fmt.Fprintf(fs.Output(), "  integtools compat -old old/MyIntegration.yml MyIntegration.yml\n")
		_, _ = fmt.Fprintf(fs.Output(), "  integtools compat -git-dir . MyIntegration.yml\n")
		_, _ = fmt.Fprintf(fs.Output(), "  integtools compat -remote-base https://raw.example.com/content -branch master MyIntegration.yml\n")
		_, _ = fmt.Fprintf(fs.Output(), "  integtools compat -new NewIntegration.yml\n")
		_, _ = fmt.Fprintf(fs.Output(), "\nExit Status:\n")
		_, _ = fmt.Fprintf(fs.Output(), "  0    Backward compatible (warnings allowed)\n")
		_, _ = fmt.Fprintf(fs.Output(), "  1    Breaking changes found\n")
		_, _ = fmt.Fprintf(fs.Output(), "\nNotes:\n")
		_, _ = fmt.Fprintf(fs.Output(), "  - An unreadable old revision degrades to a warning, not a failure\n")
		_, _ = fmt.Fprintf(fs.Output(), "  - A missing old revision means a brand-new integration, which always passes\n")
	}

	return fs, flags
}

func handleCompat(args []string) error {
	fs, flags := setupCompatFlags()

	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil
		}
		return err
	}

	if fs.NArg() != 1 {
		fs.Usage()
		return fmt.Errorf("compat command requires exactly one file path or URL")
	}

	docPath := fs.Arg(0)

	old, err := resolveOldRevision(flags, docPath)
	if err != nil {
		return err
	}

	d := differ.New()
	d.IncludeInfo = !flags.noInfo

	startTime := time.Now()
	result, err := d.Check(docPath, old)
	totalTime := time.Since(startTime)
	if err != nil {
		return fmt.Errorf("checking compatibility: %w", err)
	}

	fmt.Printf("Integration Compatibility Check\n")
	fmt.Printf("===============================\n\n")
	fmt.Printf("integtools version: %s\n", integtools.Version())
	fmt.Printf("Integration: %s\n", docPath)
	if result.OldPresent {
		fmt.Printf("Old Revision: present\n")
	} else {
		fmt.Printf("Old Revision: none (new integration)\n")
	}
	fmt.Printf("Total Time: %v\n\n", totalTime)

	if len(result.Changes) == 0 {
		fmt.Println("✓ No changes detected - revisions are compatible")
		return nil
	}

	// Group changes by category.
	categories := make(map[differ.ChangeCategory][]differ.Change)
	for _, change := range result.Changes {
		categories[change.Category] = append(categories[change.Category], change)
	}

	categoryOrder := []differ.ChangeCategory{
		differ.CategoryCommand,
		differ.CategoryArgument,
		differ.CategoryOutput,
		differ.CategoryConfiguration,
		differ.CategoryScript,
	}

	for _, category := range categoryOrder {
		changes := categories[category]
		if len(changes) == 0 {
			continue
		}

		fmt.Printf("%s changes (%d):\n", category, len(changes))
		for _, change := range changes {
			fmt.Printf("  %s\n", change.String())
		}
		fmt.Println()
	}

	fmt.Printf("Summary:\n")
	fmt.Printf("  Total changes: %d\n", len(result.Changes))
	if result.BreakingCount > 0 {
		fmt.Printf("  ⚠️  Breaking changes: %d\n", result.BreakingCount)
	} else {
		fmt.Printf("  ✓ Breaking changes: 0\n")
	}
	fmt.Printf("  Warnings: %d\n", result.WarningCount)
	if d.IncludeInfo {
		fmt.Printf("  Info: %d\n", result.InfoCount)
	}

	if !result.Compatible {
		os.Exit(1)
	}

	return nil
}

// resolveOldRevision builds the old revision from the compat flags. Exactly
// one source may be selected; with none, the integration is treated as new.
func resolveOldRevision(flags *compatFlags, docPath string) (oldrev.Revision, error) {
	sources := 0
	if flags.oldPath != "" {
		sources++
	}
	if flags.gitDir != "" {
		sources++
	}
	if flags.remoteBase != "" {
		sources++
	}
	if sources > 1 {
		return oldrev.Revision{}, fmt.Errorf("at most one of -old, -git-dir, or -remote-base may be used")
	}
	if flags.newFile && sources > 0 {
		return oldrev.Revision{}, fmt.Errorf("-new cannot be combined with an old revision source")
	}

	switch {
	case flags.newFile || sources == 0:
		return oldrev.Absent(), nil
	case flags.gitDir != "":
		path := flags.gitPath
		if path == "" {
			path = docPath
		}
		return oldrev.FetchGit(oldrev.GitConfig{
			Dir:  flags.gitDir,
			Ref:  flags.gitRef,
			Path: path,
		}), nil
	case flags.remoteBase != "":
		path := flags.remotePath
		if path == "" {
			path = docPath
		}
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return oldrev.FetchRemote(ctx, oldrev.RemoteConfig{
			BaseURL: flags.remoteBase,
			Branch:  flags.branch,
			Path:    path,
		}), nil
	default:
		p := parser.New()
		parsed, err := p.Parse(flags.oldPath)
		if err != nil || parsed.Document == nil || len(parsed.Errors) > 0 {
			// A missing or unparsable old file means the integration is
			// effectively new; the check proceeds with a warning.
			return oldrev.AbsentWithWarning(fmt.Sprintf("old revision %s could not be read", flags.oldPath)), nil
		}
		return oldrev.Present(parsed.Document), nil
	}
}

// parseFlags contains flags for the parse command
type parseFlags struct {
	raw bool
}

func setupParseFlags() (*flag.FlagSet, *parseFlags) {
	fs := flag.NewFlagSet("parse", flag.ContinueOnError)
	flags := &parseFlags{}

	fs.BoolVar(&flags.raw, "raw", false, "dump the raw document data after the summary")

	fs.Usage = func() {
		output := fs.Output()
		_, _ = fmt.Fprintf(output, "Usage: integtools parse [flags] <file|url>\n\n")
		_, _ = fmt.Fprintf(output, "Parse and output integration definition structure.\n\n")
		_, _ = fmt.Fprintf(output, "Flags:\n")
		fs.PrintDefaults()
		_, _ = fmt.Fprintf(output, "\nExamples:\n")
		_, _ = fmt.Fprintf(output, "  integtools parse MyIntegration.yml\n")
		_, _ = fmt.Fprintf(output, "  integtools parse --raw https://example.com/content/MyIntegration.yml\n")
	}

	return fs, flags
}

func handleParse(args []string) error {
	fs, flags := setupParseFlags()

	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil
		}
		return err
	}

	if fs.NArg() != 1 {
		fs.Usage()
		return fmt.Errorf("parse command requires exactly one file path or URL")
	}

	docPath := fs.Arg(0)

	p := parser.New()
	result, err := p.Parse(docPath)
	if err != nil {
		return fmt.Errorf("parsing file: %w", err)
	}

	fmt.Printf("Integration Parser\n")
	fmt.Printf("==================\n\n")
	fmt.Printf("integtools version: %s\n", integtools.Version())
	fmt.Printf("Integration: %s\n", docPath)
	fmt.Printf("Source Size: %s\n", parser.FormatBytes(result.SourceSize))
	fmt.Printf("Parameters: %d\n", result.Stats.ParamCount)
	fmt.Printf("Commands: %d\n", result.Stats.CommandCount)
	fmt.Printf("Arguments: %d\n", result.Stats.ArgumentCount)
	fmt.Printf("Outputs: %d\n", result.Stats.OutputCount)
	fmt.Printf("Load Time: %v\n\n", result.LoadTime)

	if len(result.Warnings) > 0 {
		fmt.Printf("Warnings:\n")
		for _, warning := range result.Warnings {
			fmt.Printf("  - %s\n", warning)
		}
		fmt.Println()
	}

	if len(result.Errors) > 0 {
		fmt.Printf("Parse Errors:\n")
		for _, err := range result.Errors {
			fmt.Printf("  - %s\n", err)
		}
		fmt.Println()
		os.Exit(1)
	}

	if doc := result.Document; doc != nil {
		fmt.Printf("ID: %s\n", doc.CommonFields.ID)
		fmt.Printf("Name: %s\n", doc.Name)
		fmt.Printf("Display: %s\n", doc.Display)
		fmt.Printf("Category: %s\n", doc.Category)
		if doc.Beta {
			fmt.Printf("Beta: true\n")
		}
		if doc.FromVersion != "" {
			fmt.Printf("From Version: %s\n", doc.FromVersion)
		}
		fmt.Printf("Script Type: %s\n", doc.Script.Type)
		if doc.Script.Subtype != "" {
			fmt.Printf("Subtype: %s\n", doc.Script.Subtype)
		}
		if doc.Script.DockerImage != "" {
			fmt.Printf("Docker Image: %s\n", doc.Script.DockerImage)
		}
		if len(doc.Script.Commands) > 0 {
			fmt.Printf("Commands:\n")
			for _, cmd := range doc.Script.Commands {
				fmt.Printf("  - %s (%d args, %d outputs)\n", cmd.Name, len(cmd.Arguments), len(cmd.Outputs))
			}
		}
	}

	if flags.raw {
		fmt.Printf("\nRaw Data:\n")
		data, err := marshalData(result.Data, result.SourceFormat)
		if err != nil {
			return fmt.Errorf("marshaling raw data: %w", err)
		}
		fmt.Println(string(data))
	}

	fmt.Printf("\nParsing completed successfully!\n")
	return nil
}

// marshalData marshals raw document data in the given source format.
func marshalData(data map[string]any, format parser.SourceFormat) ([]byte, error) {
	if format == parser.SourceFormatJSON {
		return json.MarshalIndent(data, "", "  ")
	}
	return yaml.Marshal(data)
}

func handleMCP() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return mcpserver.Run(ctx)
}

func printUsage() {
	fmt.Println(`integtools - Integration Definition Tools

Usage:
  integtools <command> [options]

Commands:
  validate    Validate an integration definition file or URL
  compat      Check backward compatibility against an old revision
  parse       Parse and display an integration definition file or URL
  mcp         Run the MCP server over stdio
  version     Show version information
  help        Show this help message

Examples:
  integtools validate MyIntegration.yml
  integtools validate --beta --new BetaIntegration.yml
  integtools compat -git-dir . MyIntegration.yml
  integtools compat -old old/MyIntegration.yml MyIntegration.yml
  integtools parse MyIntegration.yml

Run 'integtools <command> --help' for more information on a command.`)
}
