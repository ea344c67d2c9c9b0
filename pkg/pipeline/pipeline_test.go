package pipeline

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saylorsolutions/pixveil/pkg/raster"
)

func patternRaster(t *testing.T, width, height int, seed byte) *raster.Image {
	t.Helper()
	img, err := raster.New(width, height)
	require.NoError(t, err)
	for i := range img.Pix {
		img.Pix[i] = byte(i)*3 + seed
	}
	return img
}

// seedInputs writes the three input rasters into dir with the recorded names.
func seedInputs(t *testing.T, opts Options) {
	t.Helper()
	require.NoError(t, patternRaster(t, 20, 10, 1).EncodeFile(opts.OriginalPath))
	require.NoError(t, patternRaster(t, 20, 10, 101).EncodeFile(opts.DistortionPath))
	require.NoError(t, patternRaster(t, 5, 2, 7).EncodeFile(opts.MaskPath))
}

func stageByName(t *testing.T, report *Report, name string) Stage {
	t.Helper()
	for _, s := range report.Stages {
		if s.Name == name {
			return s
		}
	}
	t.Fatalf("no stage named %q", name)
	return Stage{}
}

func checkByName(t *testing.T, report *Report, name string) Check {
	t.Helper()
	for _, c := range report.Checks {
		if c.Name == name {
			return c
		}
	}
	t.Fatalf("no check named %q", name)
	return Check{}
}

func TestRun_RoundTrip(t *testing.T) {
	opts, err := NewOptions(t.TempDir())
	require.NoError(t, err)
	seedInputs(t, opts)

	report := Run(opts)
	for _, name := range []string{
		"load original", "load distortion", "combine", "rotate",
		"demo fill", "load mask", "log from rotated", "log from combined", "recover",
	} {
		assert.Equal(t, StatusDone, stageByName(t, report, name).Status, name)
	}

	recovered := checkByName(t, report, "recovered == original")
	assert.True(t, recovered.Ran)
	assert.True(t, recovered.Passed)

	// No reference logs recorded yet, so the log checks cannot run.
	assert.False(t, checkByName(t, report, "rotated log == reference").Ran)
	assert.False(t, report.AllPassed())
}

func TestRun_VerifiesAgainstRecordedReferences(t *testing.T) {
	opts, err := NewOptions(t.TempDir())
	require.NoError(t, err)
	seedInputs(t, opts)

	// First run records the generated logs; promote them to references.
	Run(opts)
	promote := func(from, to string) {
		data, err := os.ReadFile(from)
		require.NoError(t, err)
		require.NoError(t, os.WriteFile(to, data, 0644))
	}
	promote(opts.RotatedLogPath, opts.RefRotatedLogPath)
	promote(opts.CombinedLogPath, opts.RefCombinedLogPath)

	report := Run(opts)
	assert.True(t, report.AllPassed())
	for _, c := range report.Checks {
		assert.True(t, c.Ran, c.Name)
		assert.True(t, c.Passed, c.Name)
	}

	// The reference log preview was parsed.
	assert.Equal(t, StatusDone, stageByName(t, report, "inspect reference log").Status)
	assert.Equal(t, DefaultLogOffset, report.PreviewOffset)
	assert.NotEmpty(t, report.PreviewTriplets)
}

func TestRun_DetectsTamperedReference(t *testing.T) {
	opts, err := NewOptions(t.TempDir())
	require.NoError(t, err)
	seedInputs(t, opts)

	Run(opts)
	data, err := os.ReadFile(opts.RotatedLogPath)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(opts.RefRotatedLogPath, append(data, '\n'), 0644))
	require.NoError(t, os.WriteFile(opts.RefCombinedLogPath, data, 0644))

	report := Run(opts)
	assert.False(t, checkByName(t, report, "rotated log == reference").Passed)
	assert.False(t, report.AllPassed())
}

func TestRun_MissingOriginal(t *testing.T) {
	opts, err := NewOptions(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, patternRaster(t, 20, 10, 101).EncodeFile(opts.DistortionPath))
	require.NoError(t, patternRaster(t, 5, 2, 7).EncodeFile(opts.MaskPath))

	report := Run(opts)
	assert.Equal(t, StatusFailed, stageByName(t, report, "load original").Status)
	assert.Equal(t, StatusSkipped, stageByName(t, report, "combine").Status)
	assert.Equal(t, StatusSkipped, stageByName(t, report, "rotate").Status)
	assert.Equal(t, StatusSkipped, stageByName(t, report, "demo fill").Status)
	// The mask is independent of the original, so it still loads.
	assert.Equal(t, StatusDone, stageByName(t, report, "load mask").Status)
	assert.Equal(t, StatusSkipped, stageByName(t, report, "log from rotated").Status)
	assert.Equal(t, StatusSkipped, stageByName(t, report, "recover").Status)
	assert.False(t, report.AllPassed())
}

func TestRun_DimensionMismatch(t *testing.T) {
	opts, err := NewOptions(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, patternRaster(t, 20, 10, 1).EncodeFile(opts.OriginalPath))
	require.NoError(t, patternRaster(t, 10, 20, 101).EncodeFile(opts.DistortionPath))
	require.NoError(t, patternRaster(t, 5, 2, 7).EncodeFile(opts.MaskPath))

	report := Run(opts)
	combine := stageByName(t, report, "combine")
	assert.Equal(t, StatusSkipped, combine.Status)
	assert.Contains(t, combine.Detail, "dimensions differ")
	// The demo fill only needs the original, so it still runs.
	assert.Equal(t, StatusDone, stageByName(t, report, "demo fill").Status)
}

func TestRun_LogsFromEarlierArtifacts(t *testing.T) {
	opts, err := NewOptions(t.TempDir())
	require.NoError(t, err)
	seedInputs(t, opts)

	// Produce intermediates, then remove the original. Log generation and
	// recovery read persisted artifacts, so they still run.
	Run(opts)
	require.NoError(t, os.Remove(opts.OriginalPath))
	require.NoError(t, os.Remove(opts.RotatedLogPath))

	report := Run(opts)
	assert.Equal(t, StatusFailed, stageByName(t, report, "load original").Status)
	assert.Equal(t, StatusDone, stageByName(t, report, "log from rotated").Status)
	assert.Equal(t, StatusDone, stageByName(t, report, "log from combined").Status)
	assert.Equal(t, StatusDone, stageByName(t, report, "recover").Status)
	// Nothing to verify the recovery against.
	assert.False(t, checkByName(t, report, "recovered == original").Ran)
}

func TestRun_CustomRotationAndOffset(t *testing.T) {
	opts, err := NewOptions(t.TempDir(), WithRotationBits(5), WithLogOffset(0))
	require.NoError(t, err)
	seedInputs(t, opts)

	report := Run(opts)
	assert.Equal(t, StatusDone, stageByName(t, report, "recover").Status)
	recovered := checkByName(t, report, "recovered == original")
	assert.True(t, recovered.Ran)
	assert.True(t, recovered.Passed)
}

func TestRun_LogOffsetOutOfBounds(t *testing.T) {
	opts, err := NewOptions(t.TempDir(), WithLogOffset(100_000))
	require.NoError(t, err)
	seedInputs(t, opts)

	report := Run(opts)
	// Log generation aborts, the rest of the pipeline is unaffected.
	assert.Equal(t, StatusFailed, stageByName(t, report, "log from rotated").Status)
	assert.Equal(t, StatusDone, stageByName(t, report, "recover").Status)
	assert.True(t, checkByName(t, report, "recovered == original").Passed)
}

func TestNewOptions_Neg(t *testing.T) {
	_, err := NewOptions(t.TempDir(), WithRotationBits(9))
	assert.Error(t, err)
	_, err = NewOptions(t.TempDir(), WithLogOffset(-1))
	assert.Error(t, err)
	_, err = NewOptions(t.TempDir(), WithInputs("", "b", "c"))
	assert.Error(t, err)
}
