//go:build unit

package golden

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewEnvironment_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv(EnvSourceDir, "")
	t.Setenv(EnvTargetDir, "")

	env := NewEnvironment()
	require.Equal(t, "testdata", env.SourceRoot)
	require.Equal(t, "build/testdata", env.TargetRoot)
	require.Equal(t, filepath.Join("build/testdata", "assert-report.log"), env.ReportPath)
}

func TestNewEnvironment_EnvOverrides(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv(EnvSourceDir, "golden-src")
	t.Setenv(EnvTargetDir, "golden-out")

	env := NewEnvironment()
	require.Equal(t, "golden-src", env.SourceRoot)
	require.Equal(t, "golden-out", env.TargetRoot)
}

func TestNewEnvironment_ConfigFile(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv(EnvSourceDir, "")
	t.Setenv(EnvTargetDir, "")

	cfg := "source_dir: cfg-src\ntarget_dir: cfg-out\nreport_path: logs/assert.log\n"
	require.NoError(t, os.WriteFile(ConfigFile, []byte(cfg), 0o644))

	env := NewEnvironment()
	require.Equal(t, "cfg-src", env.SourceRoot)
	require.Equal(t, "cfg-out", env.TargetRoot)
	require.Equal(t, "logs/assert.log", env.ReportPath)
}

func TestNewEnvironment_EnvBeatsConfigFile(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv(EnvSourceDir, "env-src")
	t.Setenv(EnvTargetDir, "")

	require.NoError(t, os.WriteFile(ConfigFile, []byte("source_dir: cfg-src\n"), 0o644))

	env := NewEnvironment()
	require.Equal(t, "env-src", env.SourceRoot)
}

func TestNewEnvironment_MalformedConfigFileIgnored(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv(EnvSourceDir, "")
	t.Setenv(EnvTargetDir, "")

	require.NoError(t, os.WriteFile(ConfigFile, []byte("{not yaml::"), 0o644))

	env := NewEnvironment()
	require.Equal(t, "testdata", env.SourceRoot)
}

func TestEnvironment_PathResolution(t *testing.T) {
	t.Parallel()

	env := Environment{SourceRoot: "src", TargetRoot: "out"}

	require.Equal(t, filepath.Join("src", "composition", "page1.json"), env.SourcePath("composition/page1.json"))
	require.Equal(t, filepath.Join("out", "composition", "page1.json"), env.TargetPath("composition/page1.json"))
}

func TestEnvironment_UnexpectedPath(t *testing.T) {
	t.Parallel()

	env := Environment{SourceRoot: "src"}

	require.Equal(t,
		filepath.Join("src", "composition", "page1_UNEXPECTED.json"),
		env.UnexpectedPath("composition/page1.json"))

	// Extensionless resources get the suffix appended.
	require.Equal(t,
		filepath.Join("src", "raw", "content_UNEXPECTED"),
		env.UnexpectedPath("raw/content"))
}
