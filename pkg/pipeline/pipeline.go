/*
Package pipeline orchestrates the full obfuscation round trip over named
raster and masking-log artifacts, and verifies that the trip is lossless.

The encode path XORs the original raster with a distortion raster, rotates
every byte right, and persists both intermediate rasters. Masking logs are
generated from each intermediate against an additive mask raster. The recovery
path reloads the rotated raster, rotates left, and XORs with the distortion
again, which must reproduce the original bit-for-bit.

Every stage is fault tolerant toward the rest of the run: a missing or
unreadable artifact skips only the stages that depend on it, so independently
available artifacts are still produced and verified.
*/
package pipeline

import (
	"github.com/saylorsolutions/pixveil/pkg/masklog"
	"github.com/saylorsolutions/pixveil/pkg/raster"
	"github.com/saylorsolutions/pixveil/pkg/screen"
)

const previewTriplets = 10

// Run executes the encode, log-generation, recovery, and verification stages
// in order, recording every outcome in the returned Report. Run never returns
// an error: failures are local to the stage that hit them.
func Run(opts Options) *Report {
	report := new(Report)

	original, err := raster.DecodeFile(opts.OriginalPath)
	if err != nil {
		report.fail("load original", err)
	} else {
		report.done("load original")
	}
	distortion, err := raster.DecodeFile(opts.DistortionPath)
	if err != nil {
		report.fail("load distortion", err)
	} else {
		report.done("load distortion")
	}

	runEncode(report, opts, original, distortion)
	runDemoFill(report, opts, original)
	runLogs(report, opts)
	runRecovery(report, opts, distortion)
	runPreview(report, opts)
	runChecks(report, opts)
	return report
}

// runEncode produces the combined (P1) and rotated (P2) rasters.
func runEncode(report *Report, opts Options, original, distortion *raster.Image) {
	if original == nil || distortion == nil {
		report.skip("combine", "input raster unavailable")
		report.skip("rotate", "input raster unavailable")
		return
	}
	if !original.SameSize(distortion) {
		report.skip("combine", "original and distortion dimensions differ")
		report.skip("rotate", "original and distortion dimensions differ")
		return
	}
	combined, err := screen.CombineImages(original, distortion)
	if err != nil {
		report.fail("combine", err)
		report.skip("rotate", "combine failed")
		return
	}
	if err := combined.EncodeFile(opts.CombinedPath); err != nil {
		report.fail("combine", err)
	} else {
		report.done("combine")
	}
	rotated := screen.RotateImageRight(combined, opts.RotationBits)
	if err := rotated.EncodeFile(opts.RotatedPath); err != nil {
		report.fail("rotate", err)
		return
	}
	report.done("rotate")
}

// runDemoFill exports the positional-gradient demo raster. Each channel of
// pixel i gets the low byte of its own sample index.
func runDemoFill(report *Report, opts Options, original *raster.Image) {
	if original == nil {
		report.skip("demo fill", "original unavailable")
		return
	}
	demo := original.Clone()
	for i := 0; i < len(demo.Pix); i += 3 {
		demo.Pix[i] = byte(i)
		demo.Pix[i+1] = byte(i)
		demo.Pix[i+2] = byte(i)
	}
	if err := demo.EncodeFile(opts.DemoPath); err != nil {
		report.fail("demo fill", err)
		return
	}
	report.done("demo fill")
}

// runLogs generates a masking log from each persisted intermediate raster.
// The intermediates are reloaded from storage rather than handed over in
// memory, so logs can still be generated from artifacts left by an earlier
// run even when this run's encode stage was skipped.
func runLogs(report *Report, opts Options) {
	mask, err := raster.DecodeFile(opts.MaskPath)
	if err != nil {
		report.fail("load mask", err)
		report.skip("log from rotated", "mask unavailable")
		report.skip("log from combined", "mask unavailable")
		return
	}
	report.done("load mask")

	writeLog := func(stage, sourcePath, logPath string) {
		source, err := raster.DecodeFile(sourcePath)
		if err != nil {
			report.skip(stage, "source raster unavailable")
			return
		}
		triplets, err := masklog.Build(source, mask, opts.LogOffset)
		if err != nil {
			report.fail(stage, err)
			return
		}
		if err := masklog.WriteFile(logPath, opts.LogOffset, triplets); err != nil {
			report.fail(stage, err)
			return
		}
		report.done(stage)
	}
	writeLog("log from rotated", opts.RotatedPath, opts.RotatedLogPath)
	writeLog("log from combined", opts.CombinedPath, opts.CombinedLogPath)
}

// runRecovery reloads the rotated raster, undoes the rotation and the XOR,
// and persists the recovered raster.
func runRecovery(report *Report, opts Options, distortion *raster.Image) {
	rotated, err := raster.DecodeFile(opts.RotatedPath)
	if err != nil {
		report.skip("recover", "rotated raster unavailable")
		return
	}
	if distortion == nil {
		report.skip("recover", "distortion unavailable")
		return
	}
	unrotated := screen.RotateImageLeft(rotated, opts.RotationBits)
	recovered, err := screen.CombineImages(unrotated, distortion)
	if err != nil {
		report.fail("recover", err)
		return
	}
	if err := recovered.EncodeFile(opts.RecoveredPath); err != nil {
		report.fail("recover", err)
		return
	}
	report.done("recover")
}

// runPreview parses the reference rotated-raster log and keeps its offset and
// leading triplets for display.
func runPreview(report *Report, opts Options) {
	offset, triplets, err := masklog.ReadFile(opts.RefRotatedLogPath)
	if err != nil {
		report.skip("inspect reference log", "reference log unavailable")
		return
	}
	report.PreviewOffset = offset
	if len(triplets) > previewTriplets {
		triplets = triplets[:previewTriplets]
	}
	report.PreviewTriplets = triplets
	report.done("inspect reference log")
}

// runChecks runs the three verification comparisons, each against whichever
// artifacts are available.
func runChecks(report *Report, opts Options) {
	equal, err := ImagesEqualFiles(opts.RecoveredPath, opts.OriginalPath)
	if err != nil {
		report.check("recovered == original", false, false, err.Error())
	} else {
		report.check("recovered == original", true, equal, "")
	}

	logCheck := func(name, generated, reference string) {
		equal, err := LogsEqualFiles(generated, reference)
		if err != nil {
			report.check(name, false, false, err.Error())
			return
		}
		report.check(name, true, equal, "")
	}
	logCheck("rotated log == reference", opts.RotatedLogPath, opts.RefRotatedLogPath)
	logCheck("combined log == reference", opts.CombinedLogPath, opts.RefCombinedLogPath)
}
