package cli

import (
	"context"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/vvka-141/exodus/internal/logging"
	"github.com/vvka-141/exodus/internal/validate"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a finished sheet against the M3 profile",
	Long: `Validate checks every row of a sheet against the M3 metadata profile:
unknown properties, properties on models they are not available on,
cardinality bounds, URI-ranged values, license URIs, and required
columns. All problems are reported together; any problem fails the run.

When --profile is omitted the published profile is downloaded.

Example:
  exodus validate -s ./bass/bass_visibility.csv`,
	RunE: runValidate,
}

type validateFlagValues struct {
	sheet   string
	profile string
}

var validateFlags validateFlagValues

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().StringVarP(&validateFlags.sheet, "sheet", "s", "",
		"Sheet to validate (required)")
	validateCmd.Flags().StringVarP(&validateFlags.profile, "profile", "p", "",
		"Local M3 profile yaml (default: download the published profile)")
	_ = validateCmd.MarkFlagRequired("sheet")
}

func runValidate(cmd *cobra.Command, args []string) error {
	logger := logging.NewConsoleLogger(getVerboseFlag(cmd))
	console := newConsole()

	ctx, cancel := signalContext()
	defer cancel()

	profile, err := loadOrFetchProfile(ctx, validateFlags.profile)
	if err != nil {
		return err
	}

	console.Phase("Validating import")
	if err := validate.New(profile, logger).ValidateFile(validateFlags.sheet); err != nil {
		console.Failure("Sheet failed validation")
		return err
	}
	console.Success("Sheet passes all checks")
	return nil
}

// loadOrFetchProfile reads the profile at path, downloading the published
// one into a temporary file when path is empty.
func loadOrFetchProfile(ctx context.Context, path string) (*validate.Profile, error) {
	if path == "" {
		dir, err := os.MkdirTemp("", "exodus-m3-")
		if err != nil {
			return nil, err
		}
		defer os.RemoveAll(dir)
		path = filepath.Join(dir, "m3.yml")
		if err := validate.DownloadProfile(ctx, validate.DefaultProfileURL, path); err != nil {
			return nil, err
		}
	}
	return validate.LoadProfile(path)
}
