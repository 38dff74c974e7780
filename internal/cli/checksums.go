package cli

import (
	"github.com/spf13/cobra"

	"github.com/vvka-141/exodus/internal/checksum"
	"github.com/vvka-141/exodus/internal/logging"
)

var checksumsCmd = &cobra.Command{
	Use:   "checksums",
	Short: "Hash every remote file referenced by finished sheets",
	Long: `Checksums walks the csv sheets under --directory, downloads every
remote_files URL, and writes a url,checksum sheet of SHA-1 digests for
post-import fixity comparison.

Example:
  exodus checksums -d ./bass -o ./bass/checksums.csv`,
	RunE: runChecksums,
}

type checksumsFlagValues struct {
	directory string
	output    string
}

var checksumsFlags checksumsFlagValues

func init() {
	rootCmd.AddCommand(checksumsCmd)

	checksumsCmd.Flags().StringVarP(&checksumsFlags.directory, "directory", "d", "",
		"Directory of finished csv sheets (required)")
	checksumsCmd.Flags().StringVarP(&checksumsFlags.output, "output", "o", "",
		"Path of the checksum sheet (required)")
	_ = checksumsCmd.MarkFlagRequired("directory")
	_ = checksumsCmd.MarkFlagRequired("output")
}

func runChecksums(cmd *cobra.Command, args []string) error {
	logger := logging.NewConsoleLogger(getVerboseFlag(cmd))
	console := newConsole()

	ctx, cancel := signalContext()
	defer cancel()

	console.Phase("Hashing remote files")
	meter := console.StartMeter("hashing", 0)
	hasher := checksum.New(logger, checksum.WithProgress(func(done, total int) {
		meter.SetTotal(total)
		meter.Step(done)
	}))
	err := hasher.WriteSheet(ctx, checksumsFlags.directory, checksumsFlags.output)
	meter.Finish()
	if err != nil {
		return err
	}
	console.Success("Wrote " + checksumsFlags.output)
	return nil
}
