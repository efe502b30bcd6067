package oldrev

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const oldIntegration = `
name: ExampleIntel
script:
  type: python
  subtype: python2
  commands:
  - name: ip
    outputs:
    - contextPath: IP.Address
`

func TestAbsent(t *testing.T) {
	rev := Absent()
	assert.False(t, rev.Present)
	assert.Nil(t, rev.Document)
	assert.Empty(t, rev.Warning)
}

func TestAbsentWithWarning(t *testing.T) {
	rev := AbsentWithWarning("host unreachable")
	assert.False(t, rev.Present)
	assert.Equal(t, "host unreachable", rev.Warning)
}

func TestFetchRemote(t *testing.T) {
	var requested string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requested = r.URL.Path
		_, _ = w.Write([]byte(oldIntegration))
	}))
	defer server.Close()

	rev := FetchRemote(context.Background(), RemoteConfig{
		BaseURL: server.URL,
		Branch:  "master",
		Path:    "Integrations/integration-Example.yml",
	})

	require.True(t, rev.Present)
	require.NotNil(t, rev.Document)
	assert.Equal(t, "ExampleIntel", rev.Document.Name)
	assert.Equal(t, "python2", rev.Document.Script.Subtype)
	assert.Equal(t, "/master/Integrations/integration-Example.yml", requested)
	assert.Empty(t, rev.Warning)
}

// TestFetchRemoteWindowsPath verifies backslash normalization in the file path.
func TestFetchRemoteWindowsPath(t *testing.T) {
	var requested string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requested = r.URL.Path
		_, _ = w.Write([]byte(oldIntegration))
	}))
	defer server.Close()

	rev := FetchRemote(context.Background(), RemoteConfig{
		BaseURL: server.URL,
		Branch:  "master",
		Path:    `Integrations\integration-Example.yml`,
	})

	require.True(t, rev.Present)
	assert.Equal(t, "/master/Integrations/integration-Example.yml", requested)
}

// TestFetchRemoteNotFound verifies the permissive default: a missing old
// revision degrades to absent with a warning rather than failing.
func TestFetchRemoteNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	rev := FetchRemote(context.Background(), RemoteConfig{
		BaseURL: server.URL,
		Branch:  "master",
		Path:    "Integrations/integration-Missing.yml",
	})

	assert.False(t, rev.Present)
	assert.Contains(t, rev.Warning, "could not fetch old revision")
	assert.Contains(t, rev.Warning, "unexpected status 404")
}

func TestFetchRemoteUnreachableHost(t *testing.T) {
	rev := FetchRemote(context.Background(), RemoteConfig{
		BaseURL: "http://127.0.0.1:1",
		Branch:  "master",
		Path:    "integration.yml",
	})

	assert.False(t, rev.Present)
	assert.Contains(t, rev.Warning, "could not fetch old revision")
}

func TestFetchRemoteUnparsableBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("name: [unclosed"))
	}))
	defer server.Close()

	rev := FetchRemote(context.Background(), RemoteConfig{
		BaseURL: server.URL,
		Branch:  "master",
		Path:    "integration.yml",
	})

	assert.False(t, rev.Present)
	assert.Contains(t, rev.Warning, "could not parse old revision")
}

func TestFetchRemoteMissingConfig(t *testing.T) {
	rev := FetchRemote(context.Background(), RemoteConfig{})
	assert.False(t, rev.Present)
	assert.Contains(t, rev.Warning, "fetch skipped")
}

func TestFetchGitMissingConfig(t *testing.T) {
	rev := FetchGit(GitConfig{})
	assert.False(t, rev.Present)
	assert.Contains(t, rev.Warning, "lookup skipped")
}

// TestFetchGitNotARepo verifies the degradation path when the directory is
// not a git clone.
func TestFetchGitNotARepo(t *testing.T) {
	rev := FetchGit(GitConfig{
		Dir:  t.TempDir(),
		Ref:  "master",
		Path: "Integrations/integration-Example.yml",
	})

	assert.False(t, rev.Present)
	assert.Contains(t, rev.Warning, "could not read")
}
