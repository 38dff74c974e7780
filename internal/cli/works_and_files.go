package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vvka-141/exodus/internal/controller"
	"github.com/vvka-141/exodus/internal/logging"
	"github.com/vvka-141/exodus/internal/mapping"
)

var worksAndFilesCmd = &cobra.Command{
	Use:   "works-and-files",
	Short: "Run the full migration pipeline",
	Long: `Works-and-files runs every stage: metadata sheet, fileset and attachment
expansion, visibility stamping, M3 validation, and curation into
import-sized sheets.

Two modes:
  Directory mode   --path points at exported MODS files already on disk.
  Collection mode  --collection and --model name a live collection; MODS
                   and POLICY datastreams are downloaded first. Requires
                   FEDORA_URL (and usually FEDORA_USERNAME/FEDORA_PASSWORD)
                   in the environment or a .env file.

Examples:
  # From a directory of MODS exports
  exodus works-and-files -c configs/bass.yml -p ./mods -o ./bass

  # Everything of one type in a live collection
  exodus works-and-files -c configs/bass.yml -o ./bass \
    --collection collections:bass --model image`,
	RunE: runWorksAndFiles,
}

type worksAndFilesFlagValues struct {
	config     string
	path       string
	output     string
	collection string
	model      string
	remote     string
	perSheet   int
}

var worksAndFilesFlags worksAndFilesFlagValues

func init() {
	rootCmd.AddCommand(worksAndFilesCmd)

	worksAndFilesCmd.Flags().StringVarP(&worksAndFilesFlags.config, "config", "c", "",
		"Path to the yaml mapping config (required)")
	worksAndFilesCmd.Flags().StringVarP(&worksAndFilesFlags.path, "path", "p", "",
		"Directory of MODS xml files (directory mode)")
	worksAndFilesCmd.Flags().StringVarP(&worksAndFilesFlags.output, "output", "o", "",
		"Output directory; its basename names the sheets (required)")
	worksAndFilesCmd.Flags().StringVar(&worksAndFilesFlags.collection, "collection", "",
		"Collection pid, e.g. collections:bass (collection mode)")
	worksAndFilesCmd.Flags().StringVar(&worksAndFilesFlags.model, "model", "",
		"Work type to migrate: audio|book|compound|image|large_image|pdf|video|binary (collection mode)")
	worksAndFilesCmd.Flags().StringVar(&worksAndFilesFlags.remote, "remote", "",
		"Public address remote_files URLs point at (default: the library's Islandora)")
	worksAndFilesCmd.Flags().IntVar(&worksAndFilesFlags.perSheet, "per-sheet", 800,
		"File rows per curated sheet; 0 keeps one sheet")
	_ = worksAndFilesCmd.MarkFlagRequired("config")
	_ = worksAndFilesCmd.MarkFlagRequired("output")
}

func runWorksAndFiles(cmd *cobra.Command, args []string) error {
	flags := worksAndFilesFlags
	collectionMode := flags.collection != "" || flags.model != ""
	if collectionMode && (flags.collection == "" || flags.model == "") {
		return fmt.Errorf("collection mode needs both --collection and --model")
	}
	if !collectionMode && flags.path == "" {
		return fmt.Errorf("pass --path for directory mode, or --collection and --model")
	}

	verbose := getVerboseFlag(cmd)
	logger := logging.NewConsoleLogger(verbose)

	cfg, err := mapping.LoadConfig(flags.config)
	if err != nil {
		return err
	}

	env := loadEnvironment()
	if collectionMode {
		if err := env.requireFedora(); err != nil {
			return err
		}
	}

	opts := []controller.Option{controller.WithPerSheet(flags.perSheet)}
	if flags.remote != "" {
		opts = append(opts, controller.WithRemote(flags.remote))
	}
	ctrl, err := controller.New(cfg, env.newIndex(logger), env.newRepository(logger),
		logger, newConsole(), flags.output, opts...)
	if err != nil {
		return err
	}
	defer ctrl.Close()

	ctx, cancel := signalContext()
	defer cancel()

	if collectionMode {
		return ctrl.BuildFromCollection(ctx, flags.collection, flags.model)
	}
	return ctrl.BuildFromDirectory(ctx, flags.path)
}
