package cli

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/vvka-141/exodus/internal/fedora"
	"github.com/vvka-141/exodus/internal/risearch"
	"github.com/vvka-141/exodus/internal/ui"
	"github.com/vvka-141/exodus/pkg/exodus"
)

// environment carries the repository endpoints a command talks to.
// Values come from the process environment, with a .env file merged in
// when one exists in the working directory.
type environment struct {
	fedoraURL  string
	username   string
	password   string
	riEndpoint string
}

func loadEnvironment() environment {
	_ = godotenv.Load()

	env := environment{
		fedoraURL:  os.Getenv("FEDORA_URL"),
		username:   os.Getenv("FEDORA_USERNAME"),
		password:   os.Getenv("FEDORA_PASSWORD"),
		riEndpoint: os.Getenv("RI_ENDPOINT"),
	}
	if env.riEndpoint == "" {
		env.riEndpoint = exodus.DefaultRIEndpoint
	}
	return env
}

// requireFedora checks that the environment names a Fedora instance before
// a command that downloads datastreams starts.
func (e environment) requireFedora() error {
	if e.fedoraURL == "" {
		return fmt.Errorf("FEDORA_URL is not set; add it to the environment or a .env file")
	}
	return nil
}

func (e environment) newIndex(logger exodus.Logger) *risearch.Client {
	return risearch.New(e.riEndpoint, logger)
}

func (e environment) newRepository(logger exodus.Logger) *fedora.Client {
	return fedora.New(e.fedoraURL, e.username, e.password, logger)
}

func newConsole() *ui.Console {
	return ui.NewConsole(os.Stderr, ui.DetectMode())
}
