package cli

import (
	"github.com/spf13/cobra"

	"github.com/vvka-141/exodus/internal/collection"
	"github.com/vvka-141/exodus/internal/logging"
)

var collectionsCmd = &cobra.Command{
	Use:   "collections",
	Short: "Generate import records for collection objects",
	Long: `Collections fetches each collection's MODS and POLICY datastreams and
writes one Collection row per pid: descriptive metadata mapped to the
fixed collection columns, visibility derived from the XACML policy.
Requires FEDORA_URL in the environment or a .env file.

Example:
  exodus collections --pid collections:bass --pid collections:rfta -o collections.csv`,
	RunE: runCollections,
}

type collectionsFlagValues struct {
	pids   []string
	output string
}

var collectionsFlags collectionsFlagValues

func init() {
	rootCmd.AddCommand(collectionsCmd)

	collectionsCmd.Flags().StringSliceVar(&collectionsFlags.pids, "pid", nil,
		"Collection pid, e.g. collections:bass (can be specified multiple times)")
	collectionsCmd.Flags().StringVarP(&collectionsFlags.output, "output", "o", "",
		"Path of the collection sheet (required)")
	_ = collectionsCmd.MarkFlagRequired("pid")
	_ = collectionsCmd.MarkFlagRequired("output")
}

func runCollections(cmd *cobra.Command, args []string) error {
	logger := logging.NewConsoleLogger(getVerboseFlag(cmd))
	console := newConsole()

	env := loadEnvironment()
	if err := env.requireFedora(); err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	console.Phase("Building collection records")
	meter := console.StartMeter("collections", len(collectionsFlags.pids))
	importer := collection.New(env.newRepository(logger), logger,
		collection.WithProgress(func(done, total int) {
			meter.SetTotal(total)
			meter.Step(done)
		}))
	err := importer.WriteCSV(ctx, collectionsFlags.pids, collectionsFlags.output)
	meter.Finish()
	if err != nil {
		return err
	}
	console.Success("Wrote " + collectionsFlags.output)
	return nil
}
