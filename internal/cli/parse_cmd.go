package cli

import (
	"encoding/json"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Jowenthebui/PO-Tracking/internal/domain/checklist"
)

func newParseCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "parse <folder name>",
		Short:   "Show how a PO folder name is classified",
		Example: "  po-tracker parse 2026-01-IT-045_Capex_New_Laptop",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			info := checklist.ParseFolderName(strings.Join(args, " "))

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(info)
		},
	}
}
