package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/enttlevo/mapai/internal/daemon"
)

func init() {
	sessionsCmd.Flags().IntVar(&sessionsLimit, "limit", 20, "Maximum sessions to show")
	rootCmd.AddCommand(sessionsCmd)
}

var sessionsLimit int

var sessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "List recent chat sessions",
	RunE:  runSessions,
}

func runSessions(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	sessions, err := d.DB.ListSessions(sessionsLimit)
	if err != nil {
		return err
	}

	if len(sessions) == 0 {
		fmt.Println("No sessions yet. Start one with the chat API or web UI.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tPROVINCE\tREGION\tLAST ACTIVE")
	for _, s := range sessions {
		province := s.Province
		if province == "" {
			province = "-"
		}
		region := s.RegionID
		if region == "" {
			region = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			s.ID,
			province,
			region,
			s.LastActive.Format("2006-01-02 15:04"),
		)
	}
	return w.Flush()
}
