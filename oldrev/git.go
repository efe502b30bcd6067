package oldrev

import (
	"fmt"
	"strings"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"

	"github.com/integkit/integtools/parser"
)

// GitConfig configures reading the old revision out of a local git clone of
// the content repository, avoiding the network round trip entirely.
type GitConfig struct {
	// Dir is the path of the clone (the repository root or any directory inside it)
	Dir string
	// Ref is the revision to read from: a branch, tag, or commit hash
	// (e.g. "master", "origin/master"). Defaults to "master".
	Ref string
	// Path is the definition file path relative to the repository root
	Path string
	// Logger is the structured logger for diagnostics (nil disables logging)
	Logger parser.Logger
}

// FetchGit reads the old revision from a local git clone at the configured
// ref. Like FetchRemote, every failure degrades to an absent revision with a
// warning: a file that does not exist at the ref is a newly added file, and a
// broken clone must not block schema validation.
func FetchGit(cfg GitConfig) Revision {
	logger := cfg.Logger
	if logger == nil {
		logger = parser.NopLogger{}
	}

	if cfg.Dir == "" || cfg.Path == "" {
		return AbsentWithWarning("old revision lookup skipped: git dir and path are both required")
	}
	ref := cfg.Ref
	if ref == "" {
		ref = "master"
	}

	data, err := readAtRef(cfg.Dir, ref, cfg.Path)
	if err != nil {
		logger.Warn("old revision unavailable from git, skipping compatibility checks",
			"dir", cfg.Dir, "ref", ref, "path", cfg.Path, "error", err)
		return AbsentWithWarning(fmt.Sprintf("could not read %s at %s: %v", cfg.Path, ref, err))
	}

	p := parser.New()
	p.Logger = cfg.Logger
	result, err := p.ParseBytes(data)
	if err != nil {
		logger.Warn("old revision could not be parsed, skipping compatibility checks",
			"ref", ref, "path", cfg.Path, "error", err)
		return AbsentWithWarning(fmt.Sprintf("could not parse %s at %s: %v", cfg.Path, ref, err))
	}
	return Present(result.Document)
}

// readAtRef resolves ref to a commit and returns the file contents at path.
func readAtRef(dir, ref, path string) ([]byte, error) {
	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, fmt.Errorf("opening git repo: %w", err)
	}

	hash, err := repo.ResolveRevision(plumbing.Revision(ref))
	if err != nil {
		return nil, fmt.Errorf("resolving ref %q: %w", ref, err)
	}

	commit, err := repo.CommitObject(*hash)
	if err != nil {
		return nil, fmt.Errorf("reading commit %s: %w", hash, err)
	}

	file, err := commit.File(strings.ReplaceAll(path, "\\", "/"))
	if err != nil {
		return nil, fmt.Errorf("reading %q at %s: %w", path, ref, err)
	}

	contents, err := file.Contents()
	if err != nil {
		return nil, err
	}
	return []byte(contents), nil
}
