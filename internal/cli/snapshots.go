package cli

import (
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/AURORA-H2020/AURORA-Dashboard-sub000/internal/config"
	"github.com/AURORA-H2020/AURORA-Dashboard-sub000/internal/summary"
)

// snapshotInfo is one line of the snapshots listing.
type snapshotInfo struct {
	Date         int64  `json:"date"`
	Day          string `json:"day"`
	DaysPeriod   int    `json:"daysPeriod"`
	Countries    int    `json:"countries"`
	Users        int    `json:"users"`
	Consumptions int    `json:"consumptions"`
}

func newSnapshotInfo(s summary.Summary) snapshotInfo {
	info := snapshotInfo{
		Date:       s.Date,
		Day:        time.Unix(s.Date, 0).UTC().Format(time.DateOnly),
		DaysPeriod: s.DaysPeriod,
		Countries:  len(s.Countries),
	}
	for _, country := range s.Countries {
		for _, city := range country.Cities {
			info.Users += city.Users.UserCount
			info.Consumptions += city.Users.ConsumptionsCount
		}
	}
	return info
}

// NewSnapshotsCmd creates the snapshots command that lists stored snapshots.
func NewSnapshotsCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "snapshots",
		Short: "List stored snapshots",
		Example: `  aurora snapshots
  aurora snapshots --output json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			format, err := resolveFormat(output)
			if err != nil {
				return err
			}
			snaps, err := loadSnapshots(cmd.Context())
			if err != nil {
				return err
			}

			infos := make([]snapshotInfo, 0, len(snaps))
			for _, s := range snaps {
				infos = append(infos, newSnapshotInfo(s))
			}

			if format != config.FormatTable {
				return writeRecords(cmd.OutOrStdout(), format, infos)
			}
			if len(infos) == 0 {
				cmd.Println("No snapshots stored.")
				return nil
			}
			rows := make([][]string, 0, len(infos))
			for _, info := range infos {
				rows = append(rows, []string{
					info.Day,
					strconv.FormatInt(info.Date, 10),
					strconv.Itoa(info.DaysPeriod),
					strconv.Itoa(info.Countries),
					strconv.Itoa(info.Users),
					strconv.Itoa(info.Consumptions),
				})
			}
			return renderTable(cmd.OutOrStdout(),
				[]string{"Day", "Date", "Days", "Countries", "Users", "Consumptions"}, rows)
		},
	}

	cmd.Flags().StringVar(&output, "output", "", "output format: table, json or ndjson (default from config)")
	return cmd
}
