package cli

import (
	"github.com/spf13/cobra"

	"github.com/vvka-141/exodus/internal/template"
)

var templateCmd = &cobra.Command{
	Use:   "template",
	Short: "Generate an import template for a work type",
	Long: `Template writes a starter sheet for hand-built imports: one column per
property the M3 profile makes available on the chosen model, with hint
rows for cardinality, range, and usage guidelines.

Example:
  exodus template --model Image -o image_template.csv`,
	RunE: runTemplate,
}

type templateFlagValues struct {
	model   string
	profile string
	output  string
}

var templateFlags templateFlagValues

func init() {
	rootCmd.AddCommand(templateCmd)

	templateCmd.Flags().StringVarP(&templateFlags.model, "model", "m", "",
		"Model class from the profile, e.g. Image or Book (required)")
	templateCmd.Flags().StringVarP(&templateFlags.profile, "profile", "p", "",
		"Local M3 profile yaml (default: download the published profile)")
	templateCmd.Flags().StringVarP(&templateFlags.output, "output", "o", "",
		"Path of the template csv (required)")
	_ = templateCmd.MarkFlagRequired("model")
	_ = templateCmd.MarkFlagRequired("output")
}

func runTemplate(cmd *cobra.Command, args []string) error {
	console := newConsole()

	ctx, cancel := signalContext()
	defer cancel()

	profile, err := loadOrFetchProfile(ctx, templateFlags.profile)
	if err != nil {
		return err
	}
	t, err := template.New(profile, templateFlags.model)
	if err != nil {
		return err
	}
	if err := t.Write(templateFlags.output); err != nil {
		return err
	}
	console.Success("Wrote " + templateFlags.output)
	return nil
}
