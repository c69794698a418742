package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/printable/stencil/binding"
	"github.com/printable/stencil/dsl"
	"github.com/printable/stencil/label"
	"github.com/printable/stencil/printer"
	"github.com/printable/stencil/profile"
)

// emitOpts holds the command-line flags for the emit command.
type emitOpts struct {
	output      string   // output file path; stdout when empty
	protocol    string   // target protocol key (zpl, epl, sbpl)
	profileFile string   // TOML profiles file
	profileName string   // profile name inside the file
	vars        []string // name=value bindings
	dpi         float64
	speed       int
	density     int
	tearOff     int
	copies      int
}

// newEmitCmd creates the emit command: label file in, printer command
// stream out.
func newEmitCmd() *cobra.Command {
	opts := emitOpts{protocol: string(printer.ProtocolZPL)}

	cmd := &cobra.Command{
		Use:   "emit [file]",
		Short: "Emit a printer command stream from a label file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEmit(cmd, args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().StringVarP(&opts.protocol, "protocol", "p", opts.protocol, "target protocol: zpl, epl, sbpl")
	cmd.Flags().StringVar(&opts.profileFile, "profiles", "", "printer profiles TOML file")
	cmd.Flags().StringVar(&opts.profileName, "profile", "", "profile name from the profiles file")
	cmd.Flags().StringArrayVar(&opts.vars, "var", nil, "variable binding name=value (repeatable)")
	cmd.Flags().Float64Var(&opts.dpi, "dpi", 0, "device resolution in dots per inch")
	cmd.Flags().IntVar(&opts.speed, "speed", 0, "print speed")
	cmd.Flags().IntVar(&opts.density, "density", 0, "print density / darkness")
	cmd.Flags().IntVar(&opts.tearOff, "tear-off", 0, "tear-off adjustment in dots (zpl)")
	cmd.Flags().IntVar(&opts.copies, "copies", 0, "number of copies (epl)")

	return cmd
}

func runEmit(cmd *cobra.Command, input string, opts *emitOpts) error {
	logger := loggerFromContext(cmd.Context())

	doc, err := loadDocument(input)
	if err != nil {
		return err
	}
	logger.Debugf("Parsed %s: %d elements on %gx%g canvas",
		input, len(doc.Elements), doc.Canvas.Width, doc.Canvas.Height)

	vars, err := parseVars(opts.vars)
	if err != nil {
		return err
	}
	elements := label.Substitute(doc.Elements, vars)

	proto, emitOptions, err := resolveEmitOptions(opts)
	if err != nil {
		return err
	}

	stream, err := printer.Emit(proto, elements, doc.Canvas, emitOptions)
	if err != nil {
		return err
	}
	logger.Infof("Emitted %s: %d bytes", proto, len(stream))

	return writeOutput(opts.output, []byte(stream))
}

// resolveEmitOptions merges a profile (when given) with explicit flags;
// flags win over the profile.
func resolveEmitOptions(opts *emitOpts) (printer.Protocol, printer.Options, error) {
	proto := printer.Protocol(strings.ToLower(opts.protocol))
	var merged printer.Options

	if opts.profileName != "" {
		if opts.profileFile == "" {
			return "", merged, fmt.Errorf("--profile requires --profiles")
		}
		f, err := profile.Load(opts.profileFile)
		if err != nil {
			return "", merged, err
		}
		p, err := f.Get(opts.profileName)
		if err != nil {
			return "", merged, err
		}
		proto = printer.Protocol(p.Protocol)
		merged = p.Options()
	}

	if opts.dpi > 0 {
		merged.DPI = opts.dpi
	}
	if opts.speed > 0 {
		merged.PrintSpeed = opts.speed
	}
	if opts.density > 0 {
		merged.Density = opts.density
	}
	if opts.tearOff != 0 {
		merged.TearOff = opts.tearOff
	}
	if opts.copies > 0 {
		merged.Copies = opts.copies
	}
	return proto, merged, nil
}

// parseVars turns repeated name=value flags into typed bindings, sniffing
// the value kind once at construction.
func parseVars(pairs []string) (binding.Map, error) {
	vars := binding.Map{}
	for _, pair := range pairs {
		name, value, found := strings.Cut(pair, "=")
		name = strings.TrimSpace(name)
		if !found || name == "" {
			return nil, fmt.Errorf("invalid --var %q (want name=value)", pair)
		}
		vars[name] = binding.Auto(value)
	}
	return vars, nil
}

// loadDocument parses and lowers a label description file.
func loadDocument(path string) (*label.Document, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	ast, err := dsl.Parse(file)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return dsl.Build(ast)
}

// writeOutput writes data to path, or stdout when path is empty.
func writeOutput(path string, data []byte) error {
	if path == "" {
		_, err := os.Stdout.Write(data)
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, 0o644)
}
