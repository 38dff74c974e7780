package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

const asciiLogo = `
  _____  _____  ___   ____  _   _  ____
 | ____|| ____|/ _ \ |  _ \| | | |/ ___|
 |  _|   \ \  | | | || | | | | | |\___ \
 | |___  _\ \ | |_| || |_| | |_| | ___) |
 |_____||____| \___/ |____/ \___/ |____/`

var rootCmd = &cobra.Command{
	Use:   "exodus",
	Short: "Islandora to bulk-import migration tool",
	Long: asciiLogo + `

exodus turns a Fedora 3 / Islandora repository into bulk-import sheets:
it maps MODS metadata to spreadsheet columns, expands each work into its
fileset and attachment rows, stamps visibility from XACML policies, and
validates the result against the M3 metadata profile.

Exit Codes:
  0  - Success
  1  - General error
  2  - CLI usage error (invalid arguments or flags)
  3  - Panic or unexpected system error
  10 - Invalid mapping configuration or content model
  11 - Resource index or Fedora unreachable
  12 - Import sheet failed M3 validation`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() error {
	if len(os.Args) > 1 && os.Args[1] == "--version" {
		printVersionInfo()
		return nil
	}
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().Bool("help", false, "Help for exodus")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output for all commands")
}

// getVerboseFlag safely retrieves the verbose flag value
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Failed to get verbose flag: %v\n", err)
		return false
	}
	return verbose
}

// signalContext returns a context cancelled on Ctrl+C or SIGTERM so long
// downloads stop cleanly instead of leaving half-written sheets.
func signalContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		select {
		case <-sigChan:
			fmt.Fprintln(os.Stderr, "\n[INTERRUPT] Received interrupt signal, cancelling run...")
			cancel()
		case <-ctx.Done():
		}
		signal.Stop(sigChan)
	}()

	return ctx, cancel
}
