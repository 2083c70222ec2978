// Command svgpng converts a SVG file to a PNG image, written
// in the working directory:
//
//	svgpng drawing.svg  # writes drawing.png
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/benoitkugler/svgpng/svgdraw"
	"github.com/benoitkugler/svgpng/svgicon"
	"github.com/fogleman/gg"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
)

const (
	inputExt  = ".svg"
	outputExt = ".png"
)

func newApp() *cli.App {
	return &cli.App{
		Name:      "svgpng",
		Usage:     "convert a SVG file to a PNG image",
		ArgsUsage: "<file" + inputExt + ">",
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return errors.Errorf("expected exactly one %s file, got %d arguments", inputExt, c.NArg())
			}
			out, err := convertFile(c.Args().First(), ".")
			if err != nil {
				return err
			}
			fmt.Fprintln(c.App.Writer, "written", out)
			return nil
		},
	}
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// outputName returns the name of the image produced from `input`,
// without its directory.
func outputName(input string) string {
	base := filepath.Base(input)
	return strings.TrimSuffix(base, filepath.Ext(base)) + outputExt
}

// convertFile renders `input` and saves it in `outDir`,
// returning the path of the image.
func convertFile(input, outDir string) (string, error) {
	if !strings.EqualFold(filepath.Ext(input), inputExt) {
		return "", errors.Errorf("%s: expected a %s file", input, inputExt)
	}
	if _, err := os.Stat(input); err != nil {
		return "", errors.Wrap(err, "checking input file")
	}
	doc, err := svgicon.ReadDocument(input, svgicon.WarnErrorMode)
	if err != nil {
		return "", errors.Wrapf(err, "loading %s", input)
	}
	img, err := svgdraw.Render(doc)
	if err != nil {
		return "", errors.Wrapf(err, "rendering %s", input)
	}
	out := filepath.Join(outDir, outputName(input))
	if err = gg.SavePNG(out, img); err != nil {
		return "", errors.Wrap(err, "saving image")
	}
	return out, nil
}
