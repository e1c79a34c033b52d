package inject

import (
	stderrors "errors"
	"testing"

	"github.com/arthur-debert/envinject/pkg/config"
	"github.com/arthur-debert/envinject/pkg/errors"
	"github.com/arthur-debert/envinject/pkg/testutil"
	"github.com/arthur-debert/envinject/pkg/types"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const parent = "/home/dev/.vscode/extensions"

func TestRun_InjectsEveryVersion(t *testing.T) {
	mem, fs := testutil.NewMemFS()
	a := testutil.CreateExtension(t, mem, parent, "google.geminicodeassist-2.1.0", "console.log('hi');\n")
	b := testutil.CreateExtension(t, mem, parent, "google.geminicodeassist-2.2.0", "console.log('v2');\n")
	other := testutil.CreateExtension(t, mem, parent, "ms-python.python-1.0.0", "py();\n")

	report, err := Run(Options{
		ParentDir:  parent,
		Extension:  "google.geminicodeassist",
		VarsJSON:   `{"FOO":"bar"}`,
		FileSystem: fs,
	})
	require.NoError(t, err)

	assert.False(t, report.NoMatch)
	assert.Equal(t, []string{"FOO"}, report.Vars)
	require.Len(t, report.Targets, 2)
	assert.Equal(t, 2, report.Count(types.StatusApplied))
	assert.False(t, report.HasFailures())

	assert.Equal(t, "// --- My Env Injector Start ---\nprocess.env.FOO = 'bar';\n// --- My Env Injector End ---\n\nconsole.log('hi');\n", testutil.ReadFS(t, fs, a))
	assert.Contains(t, testutil.ReadFS(t, fs, b), "console.log('v2');")
	assert.Equal(t, "py();\n", testutil.ReadFS(t, fs, other))
	assert.Equal(t, "console.log('hi');\n", testutil.ReadFS(t, fs, a+".bak"))
}

func TestRun_SecondRunSkips(t *testing.T) {
	mem, fs := testutil.NewMemFS()
	testutil.CreateExtension(t, mem, parent, "pub.ext-1.0.0", "x();\n")
	opts := Options{ParentDir: parent, Extension: "pub.ext", VarsJSON: `{"A":"1","B":"2"}`, FileSystem: fs}

	_, err := Run(opts)
	require.NoError(t, err)
	report, err := Run(opts)
	require.NoError(t, err)

	require.Len(t, report.Targets, 1)
	assert.Equal(t, types.StatusSkipped, report.Targets[0].Result.Status)
	assert.Equal(t, types.SkipAlreadyApplied, report.Targets[0].Result.Reason)
}

func TestRun_MalformedJSONTouchesNothing(t *testing.T) {
	mem, base := testutil.NewMemFS()
	target := testutil.CreateExtension(t, mem, parent, "pub.ext-1.0.0", "x();\n")
	fs := testutil.NewFailingFS(base)

	report, err := Run(Options{ParentDir: parent, Extension: "pub.ext", VarsJSON: `{"A":`, FileSystem: fs})
	require.Error(t, err)
	assert.Nil(t, report)
	assert.True(t, errors.IsErrorCode(err, errors.ErrInputParse))
	assert.Empty(t, fs.Writes)
	assert.Equal(t, "x();\n", testutil.ReadFS(t, fs, target))
}

func TestRun_EmptyVars(t *testing.T) {
	_, fs := testutil.NewMemFS()
	_, err := Run(Options{ParentDir: parent, Extension: "pub.ext", VarsJSON: `{}`, FileSystem: fs})
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
}

func TestRun_NoVarsAtAll(t *testing.T) {
	_, fs := testutil.NewMemFS()
	_, err := Run(Options{ParentDir: parent, Extension: "pub.ext", FileSystem: fs})
	assert.True(t, errors.IsErrorCode(err, errors.ErrInputParse))
}

func TestRun_NoMatch(t *testing.T) {
	mem, base := testutil.NewMemFS()
	testutil.CreateExtension(t, mem, parent, "other.ext-1.0.0", "x();\n")
	fs := testutil.NewFailingFS(base)

	report, err := Run(Options{ParentDir: parent, Extension: "google.geminicodeassist", VarsJSON: `{"A":"1"}`, FileSystem: fs})
	require.NoError(t, err)

	assert.True(t, report.NoMatch)
	assert.Empty(t, report.Targets)
	assert.Empty(t, fs.Writes)
}

func TestRun_MissingTargetIsSkipped(t *testing.T) {
	mem, fs := testutil.NewMemFS()
	good := testutil.CreateExtension(t, mem, parent, "pub.ext-1.0.0", "x();\n")
	require.NoError(t, mem.MkdirAll(parent+"/pub.ext-2.0.0", 0755))

	report, err := Run(Options{ParentDir: parent, Extension: "pub.ext", VarsJSON: `{"A":"1"}`, FileSystem: fs})
	require.NoError(t, err)
	require.Len(t, report.Targets, 2)

	assert.Equal(t, types.StatusApplied, report.Targets[0].Result.Status)
	assert.Equal(t, types.StatusSkipped, report.Targets[1].Result.Status)
	assert.Equal(t, types.SkipTargetMissing, report.Targets[1].Result.Reason)
	assert.True(t, errors.IsErrorCode(report.Targets[1].Result.Err, errors.ErrTargetMissing))
	assert.False(t, report.HasFailures())
	assert.Contains(t, testutil.ReadFS(t, fs, good), "process.env.A = '1';")
}

func TestRun_FailureDoesNotAbortOtherTargets(t *testing.T) {
	mem, base := testutil.NewMemFS()
	first := testutil.CreateExtension(t, mem, parent, "pub.ext-1.0.0", "one();\n")
	second := testutil.CreateExtension(t, mem, parent, "pub.ext-2.0.0", "two();\n")
	fs := testutil.NewFailingFS(base)
	fs.FailWrite(first, -1, stderrors.New("permission denied"))

	report, err := Run(Options{ParentDir: parent, Extension: "pub.ext", VarsJSON: `{"A":"1"}`, FileSystem: fs})
	require.NoError(t, err)
	require.Len(t, report.Targets, 2)

	assert.True(t, report.HasFailures())
	assert.Equal(t, types.StatusFailed, report.Targets[0].Result.Status)
	assert.True(t, errors.IsErrorCode(report.Targets[0].Result.Err, errors.ErrRestoreFailed))
	assert.Equal(t, types.StatusApplied, report.Targets[1].Result.Status)
	assert.Equal(t, "one();\n", testutil.ReadFS(t, fs, first+".bak"))
	assert.Contains(t, testutil.ReadFS(t, fs, second), "process.env.A = '1';")
}

func TestRun_VarsFile(t *testing.T) {
	mem, fs := testutil.NewMemFS()
	target := testutil.CreateExtension(t, mem, parent, "pub.ext-1.0.0", "x();\n")
	require.NoError(t, afero.WriteFile(mem, "/vars.yaml", []byte("Z: last\nA: first\n"), 0644))

	_, err := Run(Options{ParentDir: parent, Extension: "pub.ext", VarsFile: "/vars.yaml", FileSystem: fs})
	require.NoError(t, err)

	assert.Equal(t, "// --- My Env Injector Start ---\nprocess.env.Z = 'last';\nprocess.env.A = 'first';\n// --- My Env Injector End ---\n\nx();\n", testutil.ReadFS(t, fs, target))
}

func TestRun_DryRun(t *testing.T) {
	mem, base := testutil.NewMemFS()
	testutil.CreateExtension(t, mem, parent, "pub.ext-1.0.0", "x();\n")
	fs := testutil.NewFailingFS(base)

	report, err := Run(Options{ParentDir: parent, Extension: "pub.ext", VarsJSON: `{"A":"1"}`, FileSystem: fs, DryRun: true})
	require.NoError(t, err)

	assert.True(t, report.DryRun)
	assert.Equal(t, 1, report.Count(types.StatusWouldChange))
	assert.Empty(t, fs.Writes)
}

func TestRun_ConfiguredTargetAndSuffix(t *testing.T) {
	mem, fs := testutil.NewMemFS()
	require.NoError(t, afero.WriteFile(mem, parent+"/pub.ext-1/out/main.js", []byte("x();\n"), 0644))

	cfg := config.Default()
	cfg.Target.Path = "out/main.js"
	cfg.Target.BackupSuffix = ".orig"

	report, err := Run(Options{ParentDir: parent, Extension: "pub.ext", VarsJSON: `{"A":"1"}`, Config: cfg, FileSystem: fs})
	require.NoError(t, err)
	require.Len(t, report.Targets, 1)

	assert.Equal(t, types.StatusApplied, report.Targets[0].Result.Status)
	assert.Equal(t, "x();\n", testutil.ReadFS(t, fs, parent+"/pub.ext-1/out/main.js.orig"))
}

func TestRun_InvalidNameTouchesNothing(t *testing.T) {
	mem, base := testutil.NewMemFS()
	target := testutil.CreateExtension(t, mem, parent, "pub.ext-1.0.0", "x();\n")
	fs := testutil.NewFailingFS(base)

	report, err := Run(Options{
		ParentDir:  parent,
		Extension:  "pub.ext",
		Spec:       types.InjectionSpecFromMap(map[string]string{"HTTP-PROXY": "x"}),
		FileSystem: fs,
	})
	require.Error(t, err)
	assert.Nil(t, report)
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
	assert.Empty(t, fs.Writes)
	assert.Equal(t, "x();\n", testutil.ReadFS(t, fs, target))
}

func TestRun_InvalidJSONNameIsParseError(t *testing.T) {
	_, base := testutil.NewMemFS()
	fs := testutil.NewFailingFS(base)

	_, err := Run(Options{ParentDir: parent, Extension: "pub.ext", VarsJSON: `{"a'b":"v"}`, FileSystem: fs})
	assert.True(t, errors.IsErrorCode(err, errors.ErrInputParse))
	assert.Empty(t, fs.Writes)
}
