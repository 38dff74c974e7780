package cli

import (
	"github.com/spf13/cobra"

	"github.com/vvka-141/exodus/internal/logging"
	"github.com/vvka-141/exodus/internal/restrict"
)

var restrictCmd = &cobra.Command{
	Use:   "restrict",
	Short: "Stamp visibility onto a sheet from XACML policies",
	Long: `Restrict reads the XACML POLICY files in --policies and rewrites the
sheet's visibility column: works denied to anonymous users become
restricted, as do fileset and attachment rows whose datastream a policy
denies. Rows without a matching policy stay open.

Example:
  exodus restrict -s ./bass/bass.csv -p ./policies -o ./bass/bass_visibility.csv`,
	RunE: runRestrict,
}

type restrictFlagValues struct {
	sheet    string
	policies string
	output   string
}

var restrictFlags restrictFlagValues

func init() {
	rootCmd.AddCommand(restrictCmd)

	restrictCmd.Flags().StringVarP(&restrictFlags.sheet, "sheet", "s", "",
		"Sheet to stamp (required)")
	restrictCmd.Flags().StringVarP(&restrictFlags.policies, "policies", "p", "",
		"Directory of downloaded POLICY files (required)")
	restrictCmd.Flags().StringVarP(&restrictFlags.output, "output", "o", "",
		"Path of the stamped sheet (required)")
	_ = restrictCmd.MarkFlagRequired("sheet")
	_ = restrictCmd.MarkFlagRequired("policies")
	_ = restrictCmd.MarkFlagRequired("output")
}

func runRestrict(cmd *cobra.Command, args []string) error {
	logger := logging.NewConsoleLogger(getVerboseFlag(cmd))
	console := newConsole()

	console.Phase("Restricting files and works")
	merger := restrict.NewSheetMerger(restrictFlags.policies, logger)
	if err := merger.WriteCSV(restrictFlags.sheet, restrictFlags.output); err != nil {
		return err
	}
	console.Success("Wrote " + restrictFlags.output)
	return nil
}
