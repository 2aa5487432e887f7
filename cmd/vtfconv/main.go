// vtfconv - Valve Texture Format converter
//
// Converts between VTF containers and common raster formats. Decoding
// extracts any frame or mip level to PNG (or JPEG/BMP/TIFF by output
// extension); encoding compresses a raster image into a VTF container,
// by default as DXT5 with a full mipmap chain.
//
// Containers compressed with zstd are detected by their frame magic and
// unpacked on read regardless of extension; output paths ending in .zst
// are compressed on write.
//
// Usage:
//   vtfconv decode [-frame N] [-mip N] [-force] input.vtf [output.png]
//   vtfconv encode [options] input.png [output.vtf]
//   vtfconv info input.vtf
//   vtfconv batch decode|encode input_dir output_dir

package main

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/cmg-divined/vtf/pkg/vtf"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	var err error
	switch os.Args[1] {
	case "decode":
		err = cmdDecode(os.Args[2:])
	case "encode":
		err = cmdEncode(os.Args[2:])
	case "info":
		err = cmdInfo(os.Args[2:])
	case "batch":
		err = cmdBatch(os.Args[2:])
	case "help", "-h", "-help", "--help":
		printUsage()
		return
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("vtfconv - Valve Texture Format converter")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  vtfconv decode [-frame N] [-mip N] [-force] <input.vtf> [output.png]")
	fmt.Println("  vtfconv encode [options] <input.png> [output.vtf]")
	fmt.Println("  vtfconv info <input.vtf>")
	fmt.Println("  vtfconv batch <decode|encode> <input_dir> <output_dir>")
	fmt.Println()
	fmt.Println("Encode options:")
	fmt.Println("  -format F     dxt1, dxt1a, dxt3, dxt5, rgba8888, bgra8888, rgb888, bgr888 (default dxt5)")
	fmt.Println("  -flags 0xHEX  header flag bits (default chosen per format)")
	fmt.Println("  -nomips       store only the base image")
	fmt.Println("  -resize WxH   resample the input before encoding")
	fmt.Println("  -pow2         round dimensions up to powers of two")
	fmt.Println("  -zstd N       compression level for .zst outputs (default 3)")
	fmt.Println()
	fmt.Println("Raster formats: png, jpeg, gif, bmp, tiff and webp are read;")
	fmt.Println("png, jpeg, bmp and tiff are written, chosen by output extension.")
	fmt.Println("Containers compressed with zstd are unpacked transparently;")
	fmt.Println("outputs ending in .zst are compressed on write.")
}

func cmdDecode(args []string) error {
	fs := flag.NewFlagSet("decode", flag.ExitOnError)
	frame := fs.Int("frame", 0, "animation frame to extract")
	mip := fs.Int("mip", 0, "mip level to extract (0 = largest)")
	force := fs.Bool("force", false, "write the magenta placeholder for unsupported pixel formats")
	fs.Parse(args)

	if fs.NArg() < 1 || fs.NArg() > 2 {
		return errors.New("usage: vtfconv decode [-frame N] [-mip N] [-force] <input.vtf> [output.png]")
	}
	input := fs.Arg(0)
	output := fs.Arg(1)
	if output == "" {
		output = replaceExt(input, ".png")
	}

	if err := decodeFile(input, output, *frame, *mip, *force); err != nil {
		return err
	}
	fmt.Printf("Decoded %s → %s\n", input, output)
	return nil
}

func decodeFile(input, output string, frame, mip int, force bool) error {
	data, err := readContainer(input)
	if err != nil {
		return err
	}
	tex, err := vtf.Parse(data)
	if err != nil {
		return fmt.Errorf("parse %s: %w", input, err)
	}

	pix, err := tex.RGBA(frame, mip)
	if err != nil {
		if !force || !errors.Is(err, vtf.ErrUnsupportedPixelFormat) {
			return fmt.Errorf("decode %s: %w", input, err)
		}
		fmt.Fprintf(os.Stderr, "Warning: %v, writing placeholder\n", err)
	}

	w, h := tex.MipSize(mip)
	img := &image.NRGBA{Pix: pix, Stride: w * 4, Rect: image.Rect(0, 0, w, h)}
	return writeImage(output, img)
}

// encodeOptions carries the encode command's settings so batch mode can
// reuse the defaults.
type encodeOptions struct {
	format    vtf.ImageFormat
	flags     vtf.TextureFlags
	flagsSet  bool
	mipmaps   bool
	resize    string
	pow2      bool
	zstdLevel int
}

func defaultEncodeOptions() encodeOptions {
	return encodeOptions{format: vtf.FormatDXT5, mipmaps: true, zstdLevel: 3}
}

func cmdEncode(args []string) error {
	fs := flag.NewFlagSet("encode", flag.ExitOnError)
	formatName := fs.String("format", "dxt5", "output pixel format")
	flagBits := fs.String("flags", "", "header flags as a hex bitset, e.g. 0x2000")
	noMips := fs.Bool("nomips", false, "store only the base image")
	resizeSpec := fs.String("resize", "", "resample input to WxH before encoding")
	pow2 := fs.Bool("pow2", false, "round dimensions up to powers of two")
	zstdLevel := fs.Int("zstd", 3, "compression level for .zst outputs")
	fs.Parse(args)

	if fs.NArg() < 1 || fs.NArg() > 2 {
		return errors.New("usage: vtfconv encode [options] <input.png> [output.vtf]")
	}
	input := fs.Arg(0)
	output := fs.Arg(1)
	if output == "" {
		output = replaceExt(input, ".vtf")
	}

	opt := defaultEncodeOptions()
	opt.mipmaps = !*noMips
	opt.resize = *resizeSpec
	opt.pow2 = *pow2
	opt.zstdLevel = *zstdLevel

	var err error
	opt.format, err = parseFormat(*formatName)
	if err != nil {
		return err
	}
	if *flagBits != "" {
		bits, err := strconv.ParseUint(*flagBits, 0, 32)
		if err != nil {
			return fmt.Errorf("parse -flags: %w", err)
		}
		opt.flags = vtf.TextureFlags(bits)
		opt.flagsSet = true
	}

	n, err := encodeFile(input, output, opt)
	if err != nil {
		return err
	}
	fmt.Printf("Encoded %s → %s (%d bytes)\n", input, output, n)
	return nil
}

func encodeFile(input, output string, opt encodeOptions) (int, error) {
	img, err := readImage(input)
	if err != nil {
		return 0, err
	}
	img, err = resample(img, opt.resize, opt.pow2)
	if err != nil {
		return 0, err
	}

	flags := opt.flags
	if !opt.flagsSet {
		flags = defaultFlags(opt.format, imageHasAlpha(img))
	}

	var buf bytes.Buffer
	err = vtf.Encode(&buf, img,
		vtf.WithFormat(opt.format),
		vtf.WithFlags(flags),
		vtf.WithMipmaps(opt.mipmaps),
	)
	if err != nil {
		return 0, fmt.Errorf("encode %s: %w", input, err)
	}
	if err := writeContainer(output, buf.Bytes(), opt.zstdLevel); err != nil {
		return 0, err
	}
	return buf.Len(), nil
}

// defaultFlags picks the conventional alpha hint for the target format
// when the user gives no explicit -flags value.
func defaultFlags(format vtf.ImageFormat, hasAlpha bool) vtf.TextureFlags {
	switch {
	case format == vtf.FormatDXT1OneBitAlpha:
		return vtf.FlagOneBitAlpha
	case hasAlpha && format.HasAlpha():
		return vtf.FlagEightBitAlpha
	}
	return 0
}

func parseFormat(name string) (vtf.ImageFormat, error) {
	switch strings.ToLower(name) {
	case "dxt1":
		return vtf.FormatDXT1, nil
	case "dxt1a":
		return vtf.FormatDXT1OneBitAlpha, nil
	case "dxt3":
		return vtf.FormatDXT3, nil
	case "dxt5":
		return vtf.FormatDXT5, nil
	case "rgba8888":
		return vtf.FormatRGBA8888, nil
	case "bgra8888":
		return vtf.FormatBGRA8888, nil
	case "rgb888":
		return vtf.FormatRGB888, nil
	case "bgr888":
		return vtf.FormatBGR888, nil
	}
	return 0, fmt.Errorf("unknown format %q", name)
}

func cmdInfo(args []string) error {
	if len(args) != 1 {
		return errors.New("usage: vtfconv info <input.vtf>")
	}
	input := args[0]

	data, err := readContainer(input)
	if err != nil {
		return err
	}
	tex, err := vtf.Parse(data)
	if err != nil {
		return fmt.Errorf("parse %s: %w", input, err)
	}
	h := tex.Header()

	fmt.Printf("File: %s\n", input)
	fmt.Printf("Version: %d.%d\n", h.VersionMajor, h.VersionMinor)
	fmt.Printf("Dimensions: %dx%d\n", tex.Width(), tex.Height())
	fmt.Printf("Format: %s\n", tex.Format())
	fmt.Printf("Flags: %s\n", tex.Flags())
	fmt.Printf("Frames: %d (first frame %d)\n", tex.Frames(), h.FirstFrame)
	fmt.Printf("Depth: %d\n", h.Depth)
	fmt.Printf("Reflectivity: %.3f %.3f %.3f\n", h.Reflectivity[0], h.Reflectivity[1], h.Reflectivity[2])
	fmt.Printf("Bump scale: %.3f\n", h.BumpScale)
	if h.LowResFormat != vtf.FormatNone {
		fmt.Printf("Thumbnail: %s %dx%d\n", h.LowResFormat, h.LowResWidth, h.LowResHeight)
	}

	fmt.Printf("Mip levels: %d\n", tex.MipmapCount())
	for mip := 0; mip < tex.MipmapCount(); mip++ {
		w, hh := tex.MipSize(mip)
		fmt.Printf("  mip %2d: %5dx%-5d %d bytes per frame\n", mip, w, hh, tex.Format().ImageSize(w, hh))
	}

	if res := tex.Resources(); len(res) > 0 {
		fmt.Printf("Resources: %d\n", len(res))
		for _, r := range res {
			fmt.Printf("  %-16s flags 0x%02x offset 0x%08x\n", r.Name(), r.Flags, r.Offset)
		}
	}
	return nil
}

func cmdBatch(args []string) error {
	if len(args) != 3 {
		return errors.New("usage: vtfconv batch <decode|encode> <input_dir> <output_dir>")
	}
	mode, inputDir, outputDir := args[0], args[1], args[2]
	if mode != "decode" && mode != "encode" {
		return fmt.Errorf("batch mode must be decode or encode, got %q", mode)
	}
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	count := 0
	failed := 0

	err := filepath.Walk(inputDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}

		var outPath string
		if mode == "decode" {
			if !isContainerPath(path) {
				return nil
			}
			rel, _ := filepath.Rel(inputDir, path)
			outPath = filepath.Join(outputDir, replaceExt(rel, ".png"))
		} else {
			if !isRasterPath(path) {
				return nil
			}
			rel, _ := filepath.Rel(inputDir, path)
			outPath = filepath.Join(outputDir, replaceExt(rel, ".vtf"))
		}

		if err := os.MkdirAll(filepath.Dir(outPath), 0755); err != nil {
			fmt.Fprintf(os.Stderr, "mkdir %s: %v\n", filepath.Dir(outPath), err)
			failed++
			return nil
		}

		var convErr error
		if mode == "decode" {
			convErr = decodeFile(path, outPath, 0, 0, false)
		} else {
			_, convErr = encodeFile(path, outPath, defaultEncodeOptions())
		}

		if convErr != nil {
			fmt.Fprintf(os.Stderr, "convert %s: %v\n", path, convErr)
			failed++
		} else {
			count++
			if count%100 == 0 {
				fmt.Printf("Processed %d files...\n", count)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	fmt.Printf("\nCompleted: %d files converted, %d errors\n", count, failed)
	return nil
}
