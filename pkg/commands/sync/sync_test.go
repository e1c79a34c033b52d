package sync

import (
	"testing"

	"github.com/arthur-debert/envinject/pkg/config"
	"github.com/arthur-debert/envinject/pkg/errors"
	"github.com/arthur-debert/envinject/pkg/testutil"
	"github.com/arthur-debert/envinject/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun(t *testing.T) {
	mem, fs := testutil.NewMemFS()
	a := testutil.CreateExtension(t, mem, "/ext", "pub.one-1.0.0", "one();\n")
	b := testutil.CreateExtension(t, mem, "/ext", "pub.two-1.0.0", "two();\n")

	cfg := config.Default()
	cfg.Extensions.ParentDir = "/ext"
	cfg.Targets = []config.TargetSpec{
		{Extension: "pub.one", Vars: map[string]string{"B": "2", "A": "1"}},
		{Extension: "pub.two", Vars: map[string]string{"C": "3"}},
		{Extension: "pub.gone", Vars: map[string]string{"D": "4"}},
	}

	reports, err := Run(Options{Config: cfg, FileSystem: fs})
	require.NoError(t, err)
	require.Len(t, reports, 3)

	assert.Equal(t, 1, reports[0].Count(types.StatusApplied))
	assert.Equal(t, []string{"A", "B"}, reports[0].Vars)
	assert.Equal(t, 1, reports[1].Count(types.StatusApplied))
	assert.True(t, reports[2].NoMatch)

	assert.Equal(t, "// --- My Env Injector Start ---\nprocess.env.A = '1';\nprocess.env.B = '2';\n// --- My Env Injector End ---\n\none();\n", testutil.ReadFS(t, fs, a))
	assert.Contains(t, testutil.ReadFS(t, fs, b), "process.env.C = '3';")
}

func TestRun_ParentDirOverride(t *testing.T) {
	mem, fs := testutil.NewMemFS()
	a := testutil.CreateExtension(t, mem, "/other", "pub.one-1.0.0", "one();\n")

	cfg := config.Default()
	cfg.Targets = []config.TargetSpec{{Extension: "pub.one", Vars: map[string]string{"A": "1"}}}

	_, err := Run(Options{Config: cfg, ParentDir: "/other", FileSystem: fs})
	require.NoError(t, err)
	assert.Contains(t, testutil.ReadFS(t, fs, a), "process.env.A = '1';")
}

func TestRun_NoTargets(t *testing.T) {
	_, fs := testutil.NewMemFS()
	_, err := Run(Options{Config: config.Default(), FileSystem: fs})
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigValid))
}

func TestRun_EmptyVarsStops(t *testing.T) {
	mem, fs := testutil.NewMemFS()
	testutil.CreateExtension(t, mem, "/ext", "pub.one-1.0.0", "one();\n")

	cfg := config.Default()
	cfg.Extensions.ParentDir = "/ext"
	cfg.Targets = []config.TargetSpec{{Extension: "pub.one"}}

	reports, err := Run(Options{Config: cfg, FileSystem: fs})
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
	assert.Empty(t, reports)
}
