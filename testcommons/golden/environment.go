package golden

import (
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/pdfclown/lib-testcommons/testcommons"
)

// Environment variable names consumed by the golden package. They carry the
// testcommons.assert.* parameters into the test process.
const (
	// EnvUpdate holds the testcommons.assert.update parameter.
	EnvUpdate = "TESTCOMMONS_ASSERT_UPDATE"
	// EnvSourceDir overrides the source-side resource root.
	EnvSourceDir = "TESTCOMMONS_SOURCE_DIR"
	// EnvTargetDir overrides the target-side (build output) resource root.
	EnvTargetDir = "TESTCOMMONS_TARGET_DIR"
)

// ConfigFile is the optional per-module configuration file, looked up in
// the current working directory.
const ConfigFile = ".testcommons.yaml"

const (
	defaultSourceRoot = "testdata"
	defaultTargetRoot = "build/testdata"

	// unexpectedSuffix is inserted before the file extension of the
	// diagnostic sidecar written on terminal mismatches.
	unexpectedSuffix = "_UNEXPECTED"
)

// Environment resolves logical resource names to physical paths.
//
// A logical name is slash-separated (e.g. "composition/page1.json") and maps
// to two files: the version-controlled source path and the build-output
// target path. Both must stay byte-identical after any successful rebuild.
type Environment struct {
	SourceRoot string
	TargetRoot string
	// ReportPath is where full (unabridged) mismatch reports are appended.
	ReportPath string
}

// fileConfig mirrors the ConfigFile schema.
type fileConfig struct {
	SourceDir  string `yaml:"source_dir"`
	TargetDir  string `yaml:"target_dir"`
	ReportPath string `yaml:"report_path"`
}

// NewEnvironment builds an Environment from (highest precedence first)
// environment variables, the optional ConfigFile, and built-in defaults.
func NewEnvironment() Environment {
	var cfg fileConfig

	if raw, err := os.ReadFile(ConfigFile); err == nil {
		// A malformed config file silently falls through to defaults; the
		// file is an opt-in convenience and must not break test runs.
		_ = yaml.Unmarshal(raw, &cfg)
	}

	source := testcommons.Coalesce(os.Getenv(EnvSourceDir), cfg.SourceDir, defaultSourceRoot)
	target := testcommons.Coalesce(os.Getenv(EnvTargetDir), cfg.TargetDir, defaultTargetRoot)
	report := testcommons.Coalesce(cfg.ReportPath, filepath.Join(target, "assert-report.log"))

	return Environment{SourceRoot: source, TargetRoot: target, ReportPath: report}
}

// SourcePath resolves the version-controlled path of a logical resource.
func (env Environment) SourcePath(name string) string {
	return filepath.Join(env.SourceRoot, filepath.FromSlash(name))
}

// TargetPath resolves the build-output path of a logical resource.
func (env Environment) TargetPath(name string) string {
	return filepath.Join(env.TargetRoot, filepath.FromSlash(name))
}

// UnexpectedPath resolves the diagnostic sidecar path of a logical
// resource: the source path with unexpectedSuffix inserted before the file
// extension.
func (env Environment) UnexpectedPath(name string) string {
	return insertSuffix(env.SourcePath(name), unexpectedSuffix)
}

// insertSuffix inserts suffix before the extension of path (or appends it
// when there is no extension).
func insertSuffix(path, suffix string) string {
	ext := filepath.Ext(path)

	return strings.TrimSuffix(path, ext) + suffix + ext
}
