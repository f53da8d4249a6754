package commands

import (
	"fmt"
	"image/color"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/benoitkugler/okcanvas/canvasdraw"
	"github.com/benoitkugler/okcanvas/canvasitem"
	"github.com/benoitkugler/okcanvas/canvaspdf"
	"github.com/benoitkugler/okcanvas/canvasraster"
	"github.com/benoitkugler/okcanvas/canvassvg"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

// renderFlags are shared by render and watch
type renderFlags struct {
	output  string
	format  string
	scale   float64
	path    string
	charset string
	strict  bool
}

func (f *renderFlags) register(fs *pflag.FlagSet) {
	fs.StringVarP(&f.output, "output", "o", "", "output file, - for stdout (default: the input file with the format extension)")
	fs.StringVar(&f.format, "format", "", "png, pdf or svg (default: from the output extension, then the configuration)")
	fs.Float64Var(&f.scale, "scale", 0, "pixels per logical unit, for png output (default: from the configuration)")
	fs.StringVar(&f.path, "path", "", "gjson path of the item array in the input, such as result.items")
	fs.StringVar(&f.charset, "charset", "", "charset of the input, when not UTF-8")
	fs.BoolVar(&f.strict, "strict", false, "fail on items which can't be drawn")
}

func newRenderCmd(a *app) *cobra.Command {
	var flags renderFlags
	cmd := &cobra.Command{
		Use:   "render <input.json>",
		Short: "draw the items of a JSON file, - for stdin",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			j, err := newJob(a, flags, args[0])
			if err != nil {
				return err
			}
			items, err := j.readItems()
			if err != nil {
				return err
			}
			s, err := j.newSurface()
			if err != nil {
				return err
			}
			canvasdraw.Render(s, items)
			if err := writeFile(j.output, cmd.OutOrStdout(), s.writeTo); err != nil {
				return err
			}
			j.logger.Info("rendered", zap.Int("items", len(items)), zap.String("output", j.output), zap.String("format", j.format))
			return nil
		},
	}
	flags.register(cmd.Flags())
	return cmd
}

// job merges the command line and the configuration
type job struct {
	input, output string
	format        string
	scale         float64
	background    color.Color
	overlay       canvasdraw.Overlay
	decoder       canvasitem.Decoder
	fonts         *canvasdraw.FontLibrary
	logger        *zap.Logger
}

func newJob(a *app, flags renderFlags, input string) (job, error) {
	cfg := a.cfg
	j := job{input: input, output: flags.output, scale: cfg.Output.Scale, logger: a.logger}

	j.format = flags.format
	if j.format == "" && j.output != "" && j.output != "-" {
		j.format = strings.TrimPrefix(strings.ToLower(filepath.Ext(j.output)), ".")
	}
	if j.format == "" {
		j.format = cfg.Output.Format
	}
	if j.format == "" {
		j.format = "png"
	}
	switch j.format {
	case "png", "pdf", "svg":
	default:
		return job{}, fmt.Errorf("unsupported output format %q", j.format)
	}

	if j.output == "" {
		if input == "-" {
			j.output = "-"
		} else {
			j.output = strings.TrimSuffix(input, filepath.Ext(input)) + "." + j.format
		}
	}
	if flags.scale != 0 {
		if flags.scale < 0 {
			return job{}, fmt.Errorf("invalid scale %g", flags.scale)
		}
		j.scale = flags.scale
	}

	var err error
	if j.background, err = cfg.Background(); err != nil {
		return job{}, err
	}
	if j.fonts, err = cfg.FontLibrary(); err != nil {
		return job{}, err
	}

	j.overlay = canvasdraw.DefaultOverlay
	j.overlay.Message = cfg.Watch.Message

	j.decoder = canvasitem.Decoder{Path: cfg.Input.ItemsPath, Charset: cfg.Input.Charset, Logger: a.logger}
	if j.decoder.ErrorMode, err = cfg.ErrorMode(); err != nil {
		return job{}, err
	}
	if flags.strict {
		j.decoder.ErrorMode = canvasitem.StrictErrorMode
	}
	if flags.path != "" {
		j.decoder.Path = flags.path
	}
	if flags.charset != "" {
		j.decoder.Charset = flags.charset
	}
	return j, nil
}

func (j job) readItems() ([]canvasitem.DrawableItem, error) {
	if j.input == "-" {
		return j.decoder.Decode(os.Stdin)
	}
	f, err := os.Open(j.input)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	items, err := j.decoder.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", j.input, err)
	}
	return items, nil
}

// surface is a driver which may be saved
type surface interface {
	canvasdraw.Driver
	writeTo(w io.Writer) error
}

type pngSurface struct{ *canvasraster.Renderer }

func (s pngSurface) writeTo(w io.Writer) error { return png.Encode(w, s.Image()) }

type svgSurface struct{ *canvassvg.Renderer }

func (s svgSurface) writeTo(w io.Writer) error {
	_, err := s.WriteTo(w)
	return err
}

// pdfSurface may only be written once
type pdfSurface struct{ *canvaspdf.Renderer }

func (s pdfSurface) writeTo(w io.Writer) error { return s.Output(w) }

func (j job) newSurface() (surface, error) {
	switch j.format {
	case "png":
		fonts := canvasraster.NewFontCache(j.fonts)
		return pngSurface{canvasraster.NewRenderer(canvasraster.Options{Scale: j.scale, Background: j.background, Fonts: fonts})}, nil
	case "svg":
		return svgSurface{canvassvg.NewRenderer(canvassvg.Options{Scale: j.scale, Background: j.background})}, nil
	case "pdf":
		return pdfSurface{canvaspdf.NewRenderer(j.fonts, j.logger)}, nil
	default:
		return nil, fmt.Errorf("unsupported output format %q", j.format)
	}
}

// writeFile writes to a temporary file, renamed on success,
// so that readers never see a partial output.
// The "-" file is `stdout`.
func writeFile(file string, stdout io.Writer, write func(w io.Writer) error) error {
	if file == "-" {
		return write(stdout)
	}
	tmp, err := os.CreateTemp(filepath.Dir(file), "."+filepath.Base(file)+".*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name()) // no-op after the rename

	if err := write(tmp); err != nil {
		tmp.Close()
		return fmt.Errorf("writing %s: %w", file, err)
	}
	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), file)
}
