package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/trokit/aerotro/internal/config"
	"github.com/trokit/aerotro/internal/readout"
	"github.com/trokit/aerotro/internal/render"
)

var (
	renderFormat string
	renderOut    string
	renderPretty bool
	renderWidth  int
)

var renderCmd = &cobra.Command{
	Use:   "render [unit files...]",
	Short: "Generate readouts for unit files",
	Long: `Parses each unit file, builds its readout and writes it to --out, or to
stdout when no output directory is set. Every readout is archived in the
configured storage backend.

--pretty renders the markdown variant for the terminal.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runRender,
}

func init() {
	flags := renderCmd.Flags()
	flags.StringVarP(&renderFormat, "format", "f", "", "output format: text, html or markdown")
	flags.StringVarP(&renderOut, "out", "o", "", "directory for rendered readouts")
	flags.BoolVar(&renderPretty, "pretty", false, "render markdown for the terminal")
	flags.IntVar(&renderWidth, "width", 100, "word wrap width for --pretty, 0 disables wrapping")

	_ = viper.BindPFlag("output.format", flags.Lookup("format"))
	_ = viper.BindPFlag("output.dir", flags.Lookup("out"))
	_ = viper.BindPFlag("output.pretty", flags.Lookup("pretty"))
}

// outputSettings resolves the effective format, directory and pretty flag.
type outputSettings struct {
	format render.Format
	dir    string
	pretty bool
	width  int
}

func resolveOutput(format, dir string, pretty bool, width int) (outputSettings, error) {
	f, err := render.ParseFormat(format)
	if err != nil {
		return outputSettings{}, err
	}
	// terminal rendering only understands markdown, and files are never prettified
	if pretty && dir == "" {
		f = render.FormatMarkdown
	} else {
		pretty = false
	}
	return outputSettings{format: f, dir: dir, pretty: pretty, width: width}, nil
}

func runRender(cmd *cobra.Command, args []string) error {
	out := config.GetOutputConfig()
	settings, err := resolveOutput(out.Format, out.Dir, out.Pretty, renderWidth)
	if err != nil {
		return err
	}

	svc, err := application.readoutService(cmd.Context())
	if err != nil {
		return err
	}

	failed := 0
	for _, path := range args {
		if err := renderOne(cmd.Context(), svc, path, settings, cmd.OutOrStdout(), cmd.ErrOrStderr()); err != nil {
			application.logger.Error("Failed to generate readout", "path", path, "error", err)
			fmt.Fprintf(cmd.ErrOrStderr(), "%s: %v\n", path, err)
			failed++
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d unit files failed", failed, len(args))
	}
	return nil
}

func renderOne(ctx context.Context, svc *readout.Service, path string, settings outputSettings, stdout, stderr io.Writer) error {
	res, err := svc.Generate(ctx, path, settings.format)
	if err != nil {
		return err
	}
	r := res.Readout

	if n := len(r.Diagnostics); n > 0 {
		fmt.Fprintf(stderr, "%s: %d equipment problem(s) skipped\n", r.UnitName, n)
		for _, d := range r.Diagnostics {
			fmt.Fprintf(stderr, "  %s: %s\n", d.Kind, d.Message)
		}
	}

	if settings.dir != "" {
		written, err := readout.WriteDocument(settings.dir, r)
		if err != nil {
			return err
		}
		fmt.Fprintln(stdout, written)
		return nil
	}

	doc := r.Document
	if settings.pretty {
		doc, err = render.Pretty(doc, settings.width)
		if err != nil {
			return err
		}
	}
	_, err = io.WriteString(stdout, doc)
	return err
}
