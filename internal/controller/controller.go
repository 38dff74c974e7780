// Package controller wires the migration stages into the end-to-end runs
// the CLI exposes: metadata sheet generation, file expansion, restriction
// stamping, validation, and final curation into import-sized sheets.
package controller

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/vvka-141/exodus/internal/curate"
	"github.com/vvka-141/exodus/internal/finder"
	"github.com/vvka-141/exodus/internal/mapping"
	"github.com/vvka-141/exodus/internal/restrict"
	"github.com/vvka-141/exodus/internal/ui"
	"github.com/vvka-141/exodus/internal/validate"
	"github.com/vvka-141/exodus/pkg/exodus"
)

// Index is the resource-index surface the pipeline needs: the per-object
// queries plus the collection-level sweeps.
type Index interface {
	exodus.ResourceIndex
	GetWorksByTypeAndCollection(ctx context.Context, workType, collection string) ([]string, error)
	GetPoliciesByTypeAndCollection(ctx context.Context, workType, collection string) ([]string, error)
}

// Controller runs migration pipelines.
type Controller struct {
	config     *mapping.Config
	index      Index
	repo       exodus.ObjectRepository
	logger     exodus.Logger
	console    *ui.Console
	output     string
	remote     string
	perSheet   int
	profileURL string
	scratch    string
}

// Option configures a Controller.
type Option func(*Controller)

// WithRemote overrides the public file address used in remote_files URLs.
func WithRemote(remote string) Option {
	return func(c *Controller) {
		c.remote = remote
	}
}

// WithPerSheet sets how many file rows each curated sheet carries.
func WithPerSheet(n int) Option {
	return func(c *Controller) {
		c.perSheet = n
	}
}

// WithProfileURL overrides where the M3 profile is fetched from.
func WithProfileURL(url string) Option {
	return func(c *Controller) {
		c.profileURL = url
	}
}

// New creates a Controller writing its sheets under output. Each run gets
// its own scratch directory so concurrent runs never collide.
func New(config *mapping.Config, index Index, repo exodus.ObjectRepository,
	logger exodus.Logger, console *ui.Console, output string, opts ...Option) (*Controller, error) {
	scratch := filepath.Join(os.TempDir(), "exodus-"+uuid.NewString())
	if err := os.MkdirAll(scratch, 0o755); err != nil {
		return nil, fmt.Errorf("creating scratch directory: %w", err)
	}
	if err := os.MkdirAll(output, 0o755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	c := &Controller{
		config:     config,
		index:      index,
		repo:       repo,
		logger:     logger,
		console:    console,
		output:     output,
		remote:     exodus.DefaultRemote,
		perSheet:   800,
		profileURL: validate.DefaultProfileURL,
		scratch:    scratch,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Close removes the run's scratch directory.
func (c *Controller) Close() error {
	return os.RemoveAll(c.scratch)
}

func (c *Controller) sheetPath(suffix string) string {
	return filepath.Join(c.output, filepath.Base(c.output)+suffix)
}

// BuildFromDirectory runs the directory pipeline: metadata sheet from the
// MODS files under modsDir, file expansion, validation, curation.
func (c *Controller) BuildFromDirectory(ctx context.Context, modsDir string) error {
	worksSheet, err := c.generateMetadataSheet(ctx, modsDir)
	if err != nil {
		return err
	}
	importSheet, err := c.expandFiles(ctx, worksSheet)
	if err != nil {
		return err
	}
	if err := c.validateSheet(ctx, importSheet); err != nil {
		return err
	}
	if err := c.curateSheets(importSheet); err != nil {
		return err
	}
	c.console.Success("Done ...")
	return nil
}

// BuildFromCollection runs the full pipeline for one collection and work
// type: MODS and POLICY downloads from the live repository, then the
// directory pipeline plus restriction stamping.
func (c *Controller) BuildFromCollection(ctx context.Context, collection, workType string) error {
	modsDir, err := c.downloadDatastreams(ctx, collection, workType, "MODS", "mods_downloads")
	if err != nil {
		return err
	}
	worksSheet, err := c.generateMetadataSheet(ctx, modsDir)
	if err != nil {
		return err
	}
	policiesDir, err := c.downloadPolicies(ctx, collection, workType)
	if err != nil {
		return err
	}
	importSheet, err := c.expandFiles(ctx, worksSheet)
	if err != nil {
		return err
	}
	visibilitySheet, err := c.RestrictSheet(importSheet, policiesDir)
	if err != nil {
		return err
	}
	if err := c.validateSheet(ctx, visibilitySheet); err != nil {
		return err
	}
	if err := c.curateSheets(visibilitySheet); err != nil {
		return err
	}
	c.console.Success("Done ...")
	return nil
}

// GenerateWorks writes the metadata sheet for the MODS files under modsDir
// into the output directory and validates it. When asXLSX is set a workbook
// copy is written alongside the CSV.
func (c *Controller) GenerateWorks(ctx context.Context, modsDir string, asXLSX bool) error {
	scratchSheet, err := c.generateMetadataSheet(ctx, modsDir)
	if err != nil {
		return err
	}
	sheet, err := readSheet(scratchSheet)
	if err != nil {
		return err
	}
	path := c.sheetPath(".csv")
	if err := mapping.WriteCSV(sheet, path); err != nil {
		return err
	}
	if asXLSX {
		if err := mapping.WriteXLSX(sheet, c.sheetPath(".xlsx")); err != nil {
			return err
		}
	}
	if err := c.validateSheet(ctx, path); err != nil {
		return err
	}
	c.console.Success("Done ...")
	return nil
}

func (c *Controller) generateMetadataSheet(ctx context.Context, modsDir string) (string, error) {
	c.console.Phase("Generating metadata sheet")
	meter := c.console.StartMeter("mapping", 0)
	mapper := mapping.NewMapper(c.config, c.index, c.logger,
		mapping.WithProgress(func(done, total int) {
			meter.SetTotal(total)
			meter.Step(done)
		}))
	sheet, err := mapper.Run(ctx, modsDir)
	meter.Finish()
	if err != nil {
		return "", err
	}

	path := filepath.Join(c.scratch, "works.csv")
	if err := mapping.WriteCSV(sheet, path); err != nil {
		return "", err
	}
	return path, nil
}

func (c *Controller) expandFiles(ctx context.Context, worksSheet string) (string, error) {
	return c.ExpandSheet(ctx, worksSheet, finder.Include{FileSets: true, Attachments: true})
}

// ExpandSheet adds fileset and attachment rows to an existing works sheet
// and returns the expanded sheet's path.
func (c *Controller) ExpandSheet(ctx context.Context, worksSheet string, include finder.Include) (string, error) {
	c.console.Phase("Grabbing file info")
	sheet, err := readSheet(worksSheet)
	if err != nil {
		return "", err
	}
	meter := c.console.StartMeter("expanding", len(sheet.Records))
	expander := finder.New(c.index, c.logger, finder.WithRemote(c.remote),
		finder.WithProgress(func(done, total int) {
			meter.SetTotal(total)
			meter.Step(done)
		}))
	expanded, err := expander.Expand(ctx, sheet, include)
	meter.Finish()
	if err != nil {
		return "", err
	}

	path := c.sheetPath(".csv")
	if err := mapping.WriteCSV(expanded, path); err != nil {
		return "", err
	}
	return path, nil
}

// RestrictSheet stamps visibility onto sheetPath from the policies in
// policiesDir and returns the stamped sheet's path.
func (c *Controller) RestrictSheet(sheetPath, policiesDir string) (string, error) {
	c.console.Phase("Restricting files and works")
	out := c.sheetPath("_visibility.csv")
	merger := restrict.NewSheetMerger(policiesDir, c.logger)
	if err := merger.WriteCSV(sheetPath, out); err != nil {
		return "", err
	}
	return out, nil
}

// ValidateSheet validates one finished sheet against the M3 profile.
func (c *Controller) ValidateSheet(ctx context.Context, sheetPath, profilePath string) error {
	profile, err := c.loadProfile(ctx, profilePath)
	if err != nil {
		return err
	}
	return validate.New(profile, c.logger).ValidateFile(sheetPath)
}

func (c *Controller) validateSheet(ctx context.Context, sheetPath string) error {
	c.console.Phase("Validating import")
	return c.ValidateSheet(ctx, sheetPath, "")
}

func (c *Controller) curateSheets(sheetPath string) error {
	c.console.Phase("Curating filesets and attachments")
	curator := curate.New(c.logger)
	if _, err := curator.WriteFileRows(sheetPath,
		c.sheetPath("_filesets_and_attachments.csv"), curate.KindBoth, c.perSheet); err != nil {
		return err
	}
	return curator.WriteWorkRows(sheetPath, c.sheetPath("_works_and_collections_only.csv"))
}

// downloadPolicies fetches the POLICY datastreams of restricted works.
func (c *Controller) downloadPolicies(ctx context.Context, collection, workType string) (string, error) {
	c.console.Phase("Finding Policy files")
	var pids []string
	err := c.console.Wait("querying the resource index", func() error {
		var qerr error
		pids, qerr = c.index.GetPoliciesByTypeAndCollection(ctx, workType, collection)
		return qerr
	})
	if err != nil {
		return "", err
	}
	return c.download(ctx, pids, "POLICY", "policy_downloads")
}

func (c *Controller) downloadDatastreams(ctx context.Context, collection, workType, dsid, subdir string) (string, error) {
	c.console.Phase("Finding " + dsid + " files")
	var pids []string
	err := c.console.Wait("querying the resource index", func() error {
		var qerr error
		pids, qerr = c.index.GetWorksByTypeAndCollection(ctx, workType, collection)
		return qerr
	})
	if err != nil {
		return "", err
	}
	return c.download(ctx, pids, dsid, subdir)
}

func (c *Controller) download(ctx context.Context, pids []string, dsid, subdir string) (string, error) {
	dir := filepath.Join(c.scratch, subdir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	meter := c.console.StartMeter("downloading "+dsid, len(pids))
	for i, pid := range pids {
		if _, err := c.repo.DownloadDatastream(ctx, pid, dsid, dir); err != nil {
			return "", fmt.Errorf("downloading %s/%s: %w", pid, dsid, err)
		}
		meter.Step(i + 1)
	}
	meter.Finish()
	return dir, nil
}

// loadProfile reads the M3 profile from path, or downloads the published
// profile into scratch when path is empty.
func (c *Controller) loadProfile(ctx context.Context, path string) (*validate.Profile, error) {
	if path == "" {
		path = filepath.Join(c.scratch, "m3.yml")
		err := c.console.Wait("fetching the m3 profile", func() error {
			return validate.DownloadProfile(ctx, c.profileURL, path)
		})
		if err != nil {
			return nil, err
		}
	}
	return validate.LoadProfile(path)
}

// readSheet loads a CSV sheet back into memory for a later stage.
func readSheet(path string) (*mapping.Sheet, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening sheet: %w", err)
	}
	defer f.Close()

	return mapping.ReadCSV(f)
}
