package main

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/vvka-141/exodus/internal/cli"
	"github.com/vvka-141/exodus/pkg/exodus"
)

func main() {
	// Recover from panics to ensure graceful exits with stack traces
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "panic: %v\n%s\n", r, debug.Stack())
			os.Exit(exodus.ExitPanic)
		}
	}()

	if os.Getenv("EXODUS_TEST_PANIC") == "1" {
		panic("intentional test panic")
	}

	if err := cli.Execute(); err != nil {
		os.Exit(exodus.ExitCodeForError(err))
	}
}
