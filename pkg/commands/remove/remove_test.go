package remove

import (
	"testing"

	"github.com/arthur-debert/envinject/pkg/commands/inject"
	"github.com/arthur-debert/envinject/pkg/testutil"
	"github.com/arthur-debert/envinject/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const parent = "/ext"

func TestRun(t *testing.T) {
	mem, fs := testutil.NewMemFS()
	a := testutil.CreateExtension(t, mem, parent, "pub.ext-1.0.0", "one();\n")
	b := testutil.CreateExtension(t, mem, parent, "pub.ext-2.0.0", "two();\n")
	require.NoError(t, mem.MkdirAll(parent+"/pub.ext-3.0.0", 0755))

	_, err := inject.Run(inject.Options{ParentDir: parent, Extension: "pub.ext-1", VarsJSON: `{"A":"1"}`, FileSystem: fs})
	require.NoError(t, err)

	report, err := Run(Options{ParentDir: parent, Extension: "pub.ext", FileSystem: fs})
	require.NoError(t, err)
	require.Len(t, report.Targets, 3)

	assert.Equal(t, types.StatusRemoved, report.Targets[0].Result.Status)
	assert.Equal(t, types.SkipNoBlock, report.Targets[1].Result.Reason)
	assert.Equal(t, types.SkipTargetMissing, report.Targets[2].Result.Reason)

	assert.Equal(t, "one();\n", testutil.ReadFS(t, fs, a))
	assert.Equal(t, "two();\n", testutil.ReadFS(t, fs, b))
	assert.Equal(t, "one();\n", testutil.ReadFS(t, fs, a+".bak"))
}

func TestRun_DryRun(t *testing.T) {
	mem, base := testutil.NewMemFS()
	testutil.CreateExtension(t, mem, parent, "pub.ext-1.0.0", "one();\n")
	_, err := inject.Run(inject.Options{ParentDir: parent, Extension: "pub.ext", VarsJSON: `{"A":"1"}`, FileSystem: base})
	require.NoError(t, err)

	fs := testutil.NewFailingFS(base)
	report, err := Run(Options{ParentDir: parent, Extension: "pub.ext", DryRun: true, FileSystem: fs})
	require.NoError(t, err)

	assert.Equal(t, types.StatusWouldChange, report.Targets[0].Result.Status)
	assert.Empty(t, fs.Writes)
}
