package main

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/dunamismax/bmpflow/internal/bmp"
	"github.com/dunamismax/bmpflow/internal/container"
	"github.com/dunamismax/bmpflow/internal/transform"
	"github.com/urfave/cli/v2"
)

func main() {
	app := cli.NewApp()

	app.Name = "bmpctl"
	app.Usage = "inspect, render and compress BMP files from the command line"
	app.Version = "1.0.0"

	app.Flags = []cli.Flag{
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "increase verbosity",
		},
	}

	app.Commands = []*cli.Command{
		{
			Name:      "inspect",
			Usage:     "Print the header summary of a BMP file",
			ArgsUsage: "FILE",
			Action:    runInspect,
		},
		{
			Name:      "render",
			Usage:     "Apply brightness, channel and scale adjustments to a BMP file",
			ArgsUsage: "FILE",
			Flags: []cli.Flag{
				&cli.IntFlag{
					Name:  "brightness",
					Usage: "brightness percentage (0-200, 100 leaves pixels unchanged)",
					Value: 100,
				},
				&cli.IntFlag{
					Name:  "scale",
					Usage: "scale percentage (1-400, 100 leaves dimensions unchanged)",
					Value: 100,
				},
				&cli.BoolFlag{Name: "no-red", Usage: "zero the red channel"},
				&cli.BoolFlag{Name: "no-green", Usage: "zero the green channel"},
				&cli.BoolFlag{Name: "no-blue", Usage: "zero the blue channel"},
				&cli.StringFlag{
					Name:    "output",
					Aliases: []string{"o"},
					Usage:   "output path (defaults to FILE with a _rendered suffix)",
				},
			},
			Action: runRender,
		},
		{
			Name:      "compress",
			Usage:     "Compress a BMP file's pixels into a CMPT container",
			ArgsUsage: "FILE",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:  "algorithm",
					Usage: "compression algorithm: lzw or lz77",
					Value: "lz77",
				},
				&cli.StringFlag{
					Name:    "output",
					Aliases: []string{"o"},
					Usage:   "output path (defaults to FILE with a .cmpt extension)",
				},
			},
			Action: runCompress,
		},
		{
			Name:      "decompress",
			Usage:     "Restore a BMP file from a CMPT container",
			ArgsUsage: "FILE",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:    "output",
					Aliases: []string{"o"},
					Usage:   "output path (defaults to FILE with a .bmp extension)",
				},
			},
			Action: runDecompress,
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func verboseLogger(c *cli.Context) *log.Logger {
	logger := log.New(io.Discard, "", 0)
	if c.Bool("verbose") {
		logger.SetOutput(os.Stderr)
	}
	return logger
}

func requireFileArg(c *cli.Context) (string, error) {
	if c.NArg() < 1 {
		cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
	}
	return c.Args().First(), nil
}

func runInspect(c *cli.Context) error {
	path, err := requireFileArg(c)
	if err != nil {
		return err
	}

	parser := bmp.NewParser(path)
	if err := parser.Parse(); err != nil {
		return cli.Exit(err, 1)
	}

	fh, _ := parser.FileHeader()
	ih, _ := parser.InfoHeader()

	fmt.Printf("File:          %s\n", path)
	fmt.Printf("Signature:     %s\n", string(fh.Signature[:]))
	fmt.Printf("File size:     %s\n", bmp.FormatFileSize(fh.FileSize))
	fmt.Printf("Pixel offset:  %d\n", fh.PixelOffset)
	fmt.Printf("Header size:   %d\n", ih.HeaderSize)
	fmt.Printf("Dimensions:    %dx%d", ih.Width, ih.AbsHeight())
	if ih.TopDown() {
		fmt.Printf(" (top-down)")
	}
	fmt.Println()
	fmt.Printf("Color depth:   %s\n", bmp.ColorDepthName(ih.BitCount))
	fmt.Printf("Compression:   %s\n", bmp.CompressionName(ih.Compression))
	fmt.Printf("Row stride:    %d bytes\n", ih.Stride())
	return nil
}

func runRender(c *cli.Context) error {
	path, err := requireFileArg(c)
	if err != nil {
		return err
	}
	logger := verboseLogger(c)

	pixels, err := decodeFilePixels(path)
	if err != nil {
		return cli.Exit(err, 1)
	}

	if pct := c.Int("brightness"); pct != 100 {
		logger.Printf("applying brightness %d%%", pct)
		pixels, err = transform.Brightness(pixels, float64(pct)/100)
		if err != nil {
			return cli.Exit(err, 1)
		}
	}

	if c.Bool("no-red") || c.Bool("no-green") || c.Bool("no-blue") {
		logger.Printf("masking channels red=%v green=%v blue=%v",
			!c.Bool("no-red"), !c.Bool("no-green"), !c.Bool("no-blue"))
		pixels = transform.Channels(pixels, !c.Bool("no-red"), !c.Bool("no-green"), !c.Bool("no-blue"))
	}

	if pct := c.Int("scale"); pct != 100 {
		logger.Printf("scaling to %d%%", pct)
		pixels, err = transform.Scale(pixels, float64(pct)/100)
		if err != nil {
			return cli.Exit(err, 1)
		}
	}

	output := c.String("output")
	if output == "" {
		output = withSuffix(path, "_rendered", ".bmp")
	}

	if err := writeBitmap(output, pixels); err != nil {
		return cli.Exit(err, 1)
	}
	fmt.Printf("wrote %s (%dx%d)\n", output, pixels.Width(), pixels.Height())
	return nil
}

func runCompress(c *cli.Context) error {
	path, err := requireFileArg(c)
	if err != nil {
		return err
	}

	var alg container.Algorithm
	switch strings.ToLower(c.String("algorithm")) {
	case "lzw":
		alg = container.AlgorithmLZW
	case "lz77":
		alg = container.AlgorithmLZ77
	default:
		return cli.Exit(fmt.Errorf("unsupported algorithm: %s", c.String("algorithm")), 1)
	}

	pixels, err := decodeFilePixels(path)
	if err != nil {
		return cli.Exit(err, 1)
	}

	output := c.String("output")
	if output == "" {
		output = strings.TrimSuffix(path, filepath.Ext(path)) + ".cmpt"
	}

	f, err := os.Create(output)
	if err != nil {
		return cli.Exit(err, 1)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	stats, err := container.Save(w, pixels, alg)
	if err != nil {
		return cli.Exit(err, 1)
	}
	if err := w.Flush(); err != nil {
		return cli.Exit(err, 1)
	}

	fmt.Printf("wrote %s (%d -> %d bytes, ratio %.2f)\n",
		output, stats.RawBytes, stats.CompressedBytes, stats.Ratio())
	return nil
}

func runDecompress(c *cli.Context) error {
	path, err := requireFileArg(c)
	if err != nil {
		return err
	}

	f, err := os.Open(path)
	if err != nil {
		return cli.Exit(err, 1)
	}
	defer f.Close()

	pixels, err := container.Load(bufio.NewReader(f))
	if err != nil {
		return cli.Exit(err, 1)
	}

	output := c.String("output")
	if output == "" {
		output = strings.TrimSuffix(path, filepath.Ext(path)) + ".bmp"
	}

	if err := writeBitmap(output, pixels); err != nil {
		return cli.Exit(err, 1)
	}
	fmt.Printf("wrote %s (%dx%d)\n", output, pixels.Width(), pixels.Height())
	return nil
}

func decodeFilePixels(path string) (bmp.PixelBuffer, error) {
	parser := bmp.NewParser(path)
	if err := parser.Parse(); err != nil {
		return nil, err
	}
	return parser.DecodePixels()
}

func writeBitmap(path string, pixels bmp.PixelBuffer) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	if err := bmp.Encode(f, pixels); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func withSuffix(path, suffix, ext string) string {
	base := strings.TrimSuffix(path, filepath.Ext(path))
	return base + suffix + ext
}
