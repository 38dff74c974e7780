package cli

import (
	"github.com/spf13/cobra"

	"github.com/vvka-141/exodus/internal/controller"
	"github.com/vvka-141/exodus/internal/logging"
	"github.com/vvka-141/exodus/internal/mapping"
)

var worksCmd = &cobra.Command{
	Use:   "works",
	Short: "Generate a metadata sheet from a directory of MODS files",
	Long: `Works maps every MODS file under --path to one spreadsheet row using the
field rules in the mapping config, synthesizes page and part rows for books
and compound objects, and validates the finished sheet against the M3
profile.

The sheet is written to <output>/<basename-of-output>.csv.

Examples:
  # Map a directory of exported MODS records
  exodus works -c configs/bass.yml -p ./mods -o ./bass

  # Also write a workbook copy for operator review
  exodus works -c configs/bass.yml -p ./mods -o ./bass --xlsx`,
	RunE: runWorks,
}

type worksFlagValues struct {
	config string
	path   string
	output string
	xlsx   bool
}

var worksFlags worksFlagValues

func init() {
	rootCmd.AddCommand(worksCmd)

	worksCmd.Flags().StringVarP(&worksFlags.config, "config", "c", "",
		"Path to the yaml mapping config (required)")
	worksCmd.Flags().StringVarP(&worksFlags.path, "path", "p", "",
		"Directory of MODS xml files to map (required)")
	worksCmd.Flags().StringVarP(&worksFlags.output, "output", "o", "",
		"Output directory; its basename names the sheet (required)")
	worksCmd.Flags().BoolVar(&worksFlags.xlsx, "xlsx", false,
		"Also write the sheet as an xlsx workbook")
	_ = worksCmd.MarkFlagRequired("config")
	_ = worksCmd.MarkFlagRequired("path")
	_ = worksCmd.MarkFlagRequired("output")
}

func runWorks(cmd *cobra.Command, args []string) error {
	verbose := getVerboseFlag(cmd)
	logger := logging.NewConsoleLogger(verbose)

	cfg, err := mapping.LoadConfig(worksFlags.config)
	if err != nil {
		return err
	}

	env := loadEnvironment()
	ctrl, err := controller.New(cfg, env.newIndex(logger), env.newRepository(logger),
		logger, newConsole(), worksFlags.output)
	if err != nil {
		return err
	}
	defer ctrl.Close()

	ctx, cancel := signalContext()
	defer cancel()

	return ctrl.GenerateWorks(ctx, worksFlags.path, worksFlags.xlsx)
}
