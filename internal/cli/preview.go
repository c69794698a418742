package cli

import (
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/printable/stencil/label"
	"github.com/printable/stencil/preview"
)

// previewOpts holds the command-line flags for the preview command.
type previewOpts struct {
	output   string
	fontPath string
	vars     []string
}

// newPreviewCmd creates the preview command: label file in, PDF proof out.
func newPreviewCmd() *cobra.Command {
	var opts previewOpts

	cmd := &cobra.Command{
		Use:   "preview [file]",
		Short: "Render a label file to a PDF proof",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPreview(cmd, args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output PDF path (default: input with .pdf)")
	cmd.Flags().StringVar(&opts.fontPath, "font", "", "font file used for text (default: system font)")
	cmd.Flags().StringArrayVar(&opts.vars, "var", nil, "variable binding name=value (repeatable)")

	return cmd
}

func runPreview(cmd *cobra.Command, input string, opts *previewOpts) error {
	logger := loggerFromContext(cmd.Context())

	doc, err := loadDocument(input)
	if err != nil {
		return err
	}
	vars, err := parseVars(opts.vars)
	if err != nil {
		return err
	}

	resolved := *doc
	resolved.Elements = label.Substitute(doc.Elements, vars)

	r := preview.NewRendererWithOptions(preview.Options{
		BaseDir:  filepath.Dir(input),
		FontPath: opts.fontPath,
	})
	pdfBytes, err := r.Render(&resolved)
	if err != nil {
		return err
	}

	output := opts.output
	if output == "" {
		output = strings.TrimSuffix(input, filepath.Ext(input)) + ".pdf"
	}
	if err := writeOutput(output, pdfBytes); err != nil {
		return err
	}
	logger.Infof("Generated %s (%d bytes)", output, len(pdfBytes))
	return nil
}
