package levels

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/liquidsort/internal/games/liquid/core"
)

func writeLevel(t *testing.T, dir, name, body string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
	require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	return p
}

func TestLoaderCheckReportsEveryFile(t *testing.T) {
	dir := t.TempDir()
	writeLevel(t, dir, "a_ok.yaml", "id: ok\ncapacity: 2\ncylinders:\n  - [red, blue]\n  - [blue, red]\n  - []\n")
	writeLevel(t, dir, "b_dup.yaml", "id: ok\ncapacity: 2\ncylinders:\n  - [red, red]\n  - [blue]\n  - [blue]\n")
	writeLevel(t, dir, "c_uneven.yaml", "id: uneven\ncapacity: 2\ncylinders:\n  - [red, blue]\n  - [red]\n  - []\n")
	writeLevel(t, dir, "d_broken.yaml", "id: [\n")
	writeLevel(t, dir, "readme.md", "# levels\n")

	reports, err := NewLoader(dir).Check(0)
	require.NoError(t, err)
	require.Len(t, reports, 4)

	ok := reports[0]
	assert.True(t, ok.OK(), "got %v", ok.Err)
	assert.Equal(t, "ok", ok.ID)
	assert.Equal(t, 3, ok.Moves)
	assert.Equal(t, filepath.Join(dir, "a_ok.yaml"), ok.Path)

	assert.ErrorContains(t, reports[1].Err, "duplicate level id")

	var verr core.ValidationError
	require.True(t, errors.As(reports[2].Err, &verr), "got %v", reports[2].Err)
	assert.Equal(t, "UNEVEN_COLOR", verr.Code)
	assert.Zero(t, reports[2].Moves)

	assert.False(t, reports[3].OK())
	assert.Empty(t, reports[3].ID)
}

func TestLoaderCheckEmbeddedCampaign(t *testing.T) {
	reports, err := Embedded().Check(core.DefaultMaxStates)
	require.NoError(t, err)
	require.Len(t, reports, 6)
	for _, r := range reports {
		assert.True(t, r.OK(), "%s: %v", r.ID, r.Err)
		assert.Positive(t, r.Moves, r.ID)
	}
}

func TestCheckFile(t *testing.T) {
	r := CheckFile(filepath.Join(testdataPath(), "intro.yaml"), 0)
	assert.True(t, r.OK(), "got %v", r.Err)
	assert.Equal(t, "t01", r.ID)
	assert.Equal(t, 3, r.Moves)

	r = CheckFile(filepath.Join(testdataPath(), "gap.yaml"), 0)
	assert.True(t, errors.Is(r.Err, core.ErrInvalidLevelData), "got %v", r.Err)
}
