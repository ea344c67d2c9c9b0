package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	flag "github.com/spf13/pflag"

	"github.com/saylorsolutions/pixveil/cmd/internal"
	"github.com/saylorsolutions/pixveil/pkg/pipeline"
	"github.com/saylorsolutions/pixveil/pkg/raster"
	"github.com/saylorsolutions/pixveil/pkg/screen"
)

func main() {
	var (
		helpFlag   bool
		dir        string
		bits       int
		offset     int
		genSize    string
		screenPath string
		keyPath    string
		outPath    string
		passphrase string
	)
	flags := flag.NewFlagSet("pixveil", flag.ContinueOnError)
	flags.BoolVarP(&helpFlag, "help", "h", false, "Prints this usage information.")
	flags.StringVarP(&dir, "dir", "d", ".", "Directory holding the input rasters and receiving generated artifacts.")
	flags.IntVarP(&bits, "bits", "b", pipeline.DefaultRotationBits, "Cyclic bit rotation count applied after the XOR combine.")
	flags.IntVarP(&offset, "offset", "s", pipeline.DefaultLogOffset, "Starting pixel index for masking log generation.")
	flags.StringVarP(&genSize, "gen-distortion", "G", "", "Generate a distortion raster of the given WIDTHxHEIGHT instead of running the pipeline.")
	flags.StringVarP(&screenPath, "screen", "S", "", "Screen (or unscreen) the given file against a key raster instead of running the pipeline.")
	flags.StringVarP(&keyPath, "key", "k", "", "Key raster for --screen (.bmp, or .rgb for the raw container).")
	flags.StringVarP(&outPath, "out", "o", "", "Output path for --gen-distortion (default distortion.bmp) or --screen.")
	flags.StringVarP(&passphrase, "passphrase", "p", "", "Derive the generated distortion from a passphrase so it can be reproduced later.")
	flags.Usage = func() {
		fmt.Printf(`
pixveil runs a reversible, mask-based pixel obfuscation pipeline over BMP rasters.

The pipeline XORs the original raster (I_O.bmp) with a distortion raster (I_M.bmp),
rotates every byte right, and persists both intermediates (P1.bmp, P2.bmp). A masking
log is generated from each intermediate against the additive mask raster (M.bmp).
The recovery path then reverses both transforms and the result is verified byte-exact
against the original, with each generated log verified against its recorded reference
(M1.txt, M2.txt). Missing artifacts skip only the stages that depend on them.

The --screen mode XORs any file against a key raster's samples, used as a repeating
key. Running the same command on the result restores the original file.

USAGE:  pixveil [FLAGS]
        pixveil -G WIDTHxHEIGHT [-o FILE] [-p PASSPHRASE]
        pixveil -S FILE -k KEY_RASTER -o FILE

FLAGS:
%s
NOTE:
    This is obfuscation, not encryption. The pipeline demonstrates that the
transform chain is lossless, it makes no key-strength claims.
`, flags.FlagUsages())
	}
	if err := flags.Parse(os.Args[1:]); err != nil {
		flags.Usage()
		internal.Fatal("Error parsing flags: %v", err)
	}
	if helpFlag {
		flags.Usage()
		return
	}

	switch {
	case genSize != "":
		if outPath == "" {
			outPath = "distortion.bmp"
		}
		generateDistortion(genSize, outPath, passphrase)
		return
	case screenPath != "":
		if keyPath == "" || outPath == "" {
			internal.Fatal("--screen requires both --key and --out")
		}
		if err := screenFile(screenPath, keyPath, outPath); err != nil {
			internal.Fatal("Failed to screen %s: %v", screenPath, err)
		}
		internal.Echo("Screened %s against %s into %s", screenPath, keyPath, outPath)
		return
	}

	opts, err := pipeline.NewOptions(dir,
		pipeline.WithRotationBits(bits),
		pipeline.WithLogOffset(offset),
	)
	if err != nil {
		internal.Fatal("Invalid pipeline options: %v", err)
	}
	report := pipeline.Run(opts)
	for _, line := range report.Lines() {
		fmt.Println(line)
	}
	for i, t := range report.PreviewTriplets {
		if i == 0 {
			fmt.Printf("Reference log offset: %d\n", report.PreviewOffset)
		}
		fmt.Printf("Pixel %d: (%d, %d, %d)\n", i, t.R, t.G, t.B)
	}
	if !report.AllPassed() {
		os.Exit(1)
	}
}

func generateDistortion(size, outPath, passphrase string) {
	width, height, err := parseSize(size)
	if err != nil {
		internal.Fatal("Invalid size %q: %v", size, err)
	}
	var img *raster.Image
	if passphrase != "" {
		deriver, err := screen.NewDeriver()
		if err != nil {
			internal.Fatal("Failed to configure derivation: %v", err)
		}
		img, err = deriver.DeriveDistortion([]byte(passphrase), width, height)
		if err != nil {
			internal.Fatal("Failed to derive distortion: %v", err)
		}
	} else {
		img, err = screen.GenDistortion(width, height)
		if err != nil {
			internal.Fatal("Failed to generate distortion: %v", err)
		}
	}
	if err := writeRaster(img, outPath); err != nil {
		internal.Fatal("Failed to write distortion raster: %v", err)
	}
	internal.Echo("Wrote %dx%d distortion raster to %s", width, height, outPath)
}

// screenFile streams inPath through an XOR screen keyed by the sample buffer
// of the raster at keyPath. The screen is self-inverse, so screening the
// output with the same key raster restores the input.
func screenFile(inPath, keyPath, outPath string) error {
	key, err := readRaster(keyPath)
	if err != nil {
		return err
	}
	in, err := os.Open(inPath)
	if err != nil {
		return err
	}
	defer func() {
		_ = in.Close()
	}()
	screened, err := screen.NewReader(in, key.Pix)
	if err != nil {
		return err
	}
	out, err := os.Create(outPath)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, screened); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}

func readRaster(path string) (*raster.Image, error) {
	if strings.EqualFold(filepath.Ext(path), ".rgb") {
		return raster.ReadRawFile(path)
	}
	return raster.DecodeFile(path)
}

func writeRaster(img *raster.Image, path string) error {
	if strings.EqualFold(filepath.Ext(path), ".rgb") {
		return img.WriteRawFile(path)
	}
	return img.EncodeFile(path)
}

func parseSize(size string) (width, height int, err error) {
	parts := strings.SplitN(strings.ToLower(size), "x", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("expected WIDTHxHEIGHT")
	}
	width, err = strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, err
	}
	height, err = strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, err
	}
	if width <= 0 || height <= 0 {
		return 0, 0, fmt.Errorf("dimensions must be positive")
	}
	return width, height, nil
}
