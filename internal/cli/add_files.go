package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vvka-141/exodus/internal/controller"
	"github.com/vvka-141/exodus/internal/finder"
	"github.com/vvka-141/exodus/internal/logging"
)

var addFilesCmd = &cobra.Command{
	Use:   "add-files",
	Short: "Expand a works sheet with fileset and attachment rows",
	Long: `Add-files reads an existing works sheet, asks the resource index which
datastreams each work carries, and writes an expanded sheet holding the
original rows plus one fileset row (and usually one attachment row) per
migratable datastream. Book page rows are replaced by their files,
reparented to the book.

Examples:
  exodus add-files -s ./bass/works.csv -o ./bass

  # Filesets only
  exodus add-files -s ./bass/works.csv -o ./bass --what-to-add filesets`,
	RunE: runAddFiles,
}

type addFilesFlagValues struct {
	sheet     string
	output    string
	whatToAdd string
	remote    string
}

var addFilesFlags addFilesFlagValues

func init() {
	rootCmd.AddCommand(addFilesCmd)

	addFilesCmd.Flags().StringVarP(&addFilesFlags.sheet, "sheet", "s", "",
		"Works sheet to expand (required)")
	addFilesCmd.Flags().StringVarP(&addFilesFlags.output, "output", "o", "",
		"Output directory; its basename names the expanded sheet (required)")
	addFilesCmd.Flags().StringVar(&addFilesFlags.whatToAdd, "what-to-add", "all",
		"Which rows to add: all|filesets|attachments")
	addFilesCmd.Flags().StringVar(&addFilesFlags.remote, "remote", "",
		"Public address remote_files URLs point at (default: the library's Islandora)")
	_ = addFilesCmd.MarkFlagRequired("sheet")
	_ = addFilesCmd.MarkFlagRequired("output")
}

func parseInclude(whatToAdd string) (finder.Include, error) {
	switch whatToAdd {
	case "all":
		return finder.Include{FileSets: true, Attachments: true}, nil
	case "filesets":
		return finder.Include{FileSets: true}, nil
	case "attachments":
		return finder.Include{Attachments: true}, nil
	}
	return finder.Include{}, fmt.Errorf("--what-to-add must be all, filesets, or attachments, got %q", whatToAdd)
}

func runAddFiles(cmd *cobra.Command, args []string) error {
	include, err := parseInclude(addFilesFlags.whatToAdd)
	if err != nil {
		return err
	}

	verbose := getVerboseFlag(cmd)
	logger := logging.NewConsoleLogger(verbose)
	console := newConsole()

	env := loadEnvironment()
	var opts []controller.Option
	if addFilesFlags.remote != "" {
		opts = append(opts, controller.WithRemote(addFilesFlags.remote))
	}
	ctrl, err := controller.New(nil, env.newIndex(logger), env.newRepository(logger),
		logger, console, addFilesFlags.output, opts...)
	if err != nil {
		return err
	}
	defer ctrl.Close()

	ctx, cancel := signalContext()
	defer cancel()

	path, err := ctrl.ExpandSheet(ctx, addFilesFlags.sheet, include)
	if err != nil {
		return err
	}
	console.Success("Wrote " + path)
	return nil
}
