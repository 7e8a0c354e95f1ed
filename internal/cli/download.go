package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/AURORA-H2020/AURORA-Dashboard-sub000/internal/snapshot"
	"github.com/AURORA-H2020/AURORA-Dashboard-sub000/internal/summary"
)

// defaultDownloadFile is written when --out is not given.
const defaultDownloadFile = "aurora-global-summary.json"

// NewDownloadCmd creates the download command that writes every stored
// snapshot as one GlobalSummary JSON document.
func NewDownloadCmd() *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "download",
		Short: "Write all snapshots as a single JSON document",
		Example: `  aurora download --out summary.json
  aurora download --out - | jq '.snapshots | length'`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := openStore(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			global, err := snapshot.GlobalSummary(ctx, store, time.Now().Unix())
			if err != nil {
				return fmt.Errorf("collecting snapshots: %w", err)
			}

			if out == "-" {
				return summary.WriteJSON(cmd.OutOrStdout(), global)
			}
			if err = summary.SaveJSONFile(out, global); err != nil {
				return err
			}
			cmd.Printf("Wrote %d snapshots to %s\n", len(global.Snapshots), out)
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", defaultDownloadFile, "output file, or - for stdout")
	return cmd
}
