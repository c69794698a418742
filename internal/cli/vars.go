package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/printable/stencil/label"
)

// newVarsCmd creates the vars command: it lists the placeholder variables a
// label file references, so callers know which bindings a job needs.
func newVarsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "vars [file]",
		Short: "List the placeholder variables a label file uses",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := loadDocument(args[0])
			if err != nil {
				return err
			}
			names := label.CollectUsedVariableNames(doc.Elements)
			if len(names) == 0 {
				loggerFromContext(cmd.Context()).Info("No placeholders found")
				return nil
			}
			for _, name := range names {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}
}
