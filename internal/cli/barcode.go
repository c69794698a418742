package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/printable/stencil/barcode"
)

// newBarcodeCmd creates the barcode command: it checks data against a
// symbol's validation rules and prints the check digit where the symbology
// defines one.
func newBarcodeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "barcode [symbol] [data]",
		Short: "Validate barcode data and print its check digit",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			sym := barcode.Symbol(strings.ToUpper(args[0]))
			data := args[1]

			spec, ok := barcode.Lookup(sym)
			if !ok {
				return fmt.Errorf("unknown barcode symbol %q", args[0])
			}

			out := cmd.OutOrStdout()
			if barcode.Validate(data, sym) {
				fmt.Fprintf(out, "%s: valid\n", spec.Name)
			} else {
				fmt.Fprintf(out, "%s: INVALID\n", spec.Name)
			}
			if digit, ok := barcode.Checksum(data, sym); ok {
				fmt.Fprintf(out, "check digit: %d\n", digit)
			}
			return nil
		},
	}
}
