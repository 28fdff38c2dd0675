package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/enttlevo/mapai/internal/daemon"
	"github.com/enttlevo/mapai/internal/geo"
)

func init() {
	detectCmd.Flags().StringVar(&detectDataset, "dataset", "", "Province GeoJSON file (overrides config)")
	rootCmd.AddCommand(detectCmd)
}

var detectDataset string

var detectCmd = &cobra.Command{
	Use:   "detect <text>",
	Short: "Resolve a province mention from free text",
	Long:  `Resolve a province mention offline, without starting the server.`,
	Args:  cobra.MinimumNArgs(1),
	RunE:  runDetect,
}

func runDetect(cmd *cobra.Command, args []string) error {
	cfg, err := daemon.LoadConfig()
	if err != nil {
		return err
	}
	if detectDataset != "" {
		cfg.Geo.Dataset = detectDataset
	}

	// A missing dataset still resolves canonical names and aliases.
	fc, err := geo.LoadDataset(cfg.Geo.Dataset)
	if err != nil {
		fc = &geo.FeatureCollection{}
	}
	idx := geo.BuildIndex(fc)

	det := geo.DetectProvince(strings.Join(args, " "), idx)
	switch det.Kind {
	case geo.DetectionMatched:
		fmt.Println("Matched:", det.Province)
	case geo.DetectionAmbiguous:
		fmt.Println("Ambiguous between:")
		for _, opt := range det.Options {
			fmt.Println("  -", opt)
		}
	default:
		fmt.Println("No province detected.")
	}
	return nil
}
