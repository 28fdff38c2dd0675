package cli

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"github.com/enttlevo/mapai/internal/daemon"
)

func init() {
	rootCmd.AddCommand(regionsCmd)
}

var regionsCmd = &cobra.Command{
	Use:     "regions",
	Aliases: []string{"ls"},
	Short:   "List regions known to the daemon",
	RunE:    runRegions,
}

func runRegions(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	regions, err := d.Regions.List(ctx)
	if err != nil {
		return err
	}

	if len(regions) == 0 {
		fmt.Println("No regions available. Check the upstream regions_url in config.toml.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tPROVINCE\tLAT\tLONG")
	for _, r := range regions {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			r.RegionID,
			r.RegionName,
			r.ProvinceName,
			r.Lat,
			r.Long,
		)
	}
	return w.Flush()
}
