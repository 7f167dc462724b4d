package bundle

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	bosherr "github.com/cloudfoundry/bosh-utils/errors"
	boshlog "github.com/cloudfoundry/bosh-utils/logger"
	boshsys "github.com/cloudfoundry/bosh-utils/system"
)

const (
	zipExtractorLogTag = "ZipExtractor"

	defaultFileMode = os.FileMode(0644)
	dirMode         = os.FileMode(0755)
)

type ExtractOptions struct {
	// ContinueOnError records a failed entry in the result and moves on to the
	// next one. Otherwise the first failure aborts the extraction.
	ContinueOnError bool
}

type EntryOutcome struct {
	Name       string
	RootPrefix string
	Relative   string
	Path       string
	Directory  bool
	Err        error
}

func (o EntryOutcome) String() string {
	return fmt.Sprintf("%s |\t %s |\t %s", o.Relative, o.RootPrefix, o.Path)
}

// ExtractionResult lists entries in the order they were processed, which is
// the reverse of the order they are stored in the archive.
type ExtractionResult struct {
	Plan    ExtractionPlan
	Entries []EntryOutcome
}

func (r ExtractionResult) Failures() []EntryOutcome {
	var failures []EntryOutcome
	for _, entry := range r.Entries {
		if entry.Err != nil {
			failures = append(failures, entry)
		}
	}
	return failures
}

//go:generate counterfeiter . Extractor

type Extractor interface {
	Extract(archivePath, directory string, opts ExtractOptions) (ExtractionResult, error)
}

type ZipExtractor struct {
	fs     boshsys.FileSystem
	logger boshlog.Logger
}

func NewZipExtractor(fs boshsys.FileSystem, logger boshlog.Logger) ZipExtractor {
	return ZipExtractor{fs: fs, logger: logger}
}

func (e ZipExtractor) Extract(archivePath, directory string, opts ExtractOptions) (ExtractionResult, error) {
	if !strings.EqualFold(filepath.Ext(archivePath), archiveExtension) {
		e.logger.Debug(zipExtractorLogTag, "Ignoring '%s', not a zip archive", archivePath)
		return ExtractionResult{}, nil
	}

	reader, err := zip.OpenReader(archivePath)
	if err != nil {
		return ExtractionResult{}, bosherr.WrapErrorf(err, "Opening archive '%s'", archivePath)
	}
	defer func() {
		_ = reader.Close()
	}()

	names := make([]string, len(reader.File))
	for i, file := range reader.File {
		names[i] = file.Name
	}

	plan := PlanExtraction(archivePath, directory, names)
	e.logger.Debug(zipExtractorLogTag, "Extracting %d entries of '%s' into '%s' (root prefix '%s')",
		len(names), archivePath, plan.Destination, plan.RootPrefix)

	return e.extractEntries(reader.File, plan, opts)
}

// extractEntries walks the entries backwards so that, among entries sharing a
// destination, the one stored first in the archive is written last.
func (e ZipExtractor) extractEntries(files []*zip.File, plan ExtractionPlan, opts ExtractOptions) (ExtractionResult, error) {
	result := ExtractionResult{Plan: plan}

	for i := len(files) - 1; i >= 0; i-- {
		outcome := e.extractEntry(files[i], plan)
		result.Entries = append(result.Entries, outcome)

		if outcome.Err == nil {
			continue
		}

		if !opts.ContinueOnError {
			return result, outcome.Err
		}

		e.logger.Debug(zipExtractorLogTag, "Continuing past '%s': %s", outcome.Name, outcome.Err.Error())
	}

	return result, nil
}

func (e ZipExtractor) extractEntry(file *zip.File, plan ExtractionPlan) EntryOutcome {
	outcome := EntryOutcome{
		Name:       file.Name,
		RootPrefix: plan.RootPrefix,
		Relative:   plan.Relative(file.Name),
		Directory:  isDirectoryMarker(file.Name),
	}

	target, err := plan.Target(file.Name)
	if err != nil {
		outcome.Err = err
		return outcome
	}
	outcome.Path = target

	dir := filepath.Dir(target)
	if outcome.Directory {
		dir = target
	}

	err = e.fs.MkdirAll(dir, dirMode)
	if err != nil {
		outcome.Err = bosherr.WrapErrorf(err, "Creating directory '%s'", dir)
		return outcome
	}

	if outcome.Directory {
		return outcome
	}

	err = e.writeFile(file, target)
	if err != nil {
		outcome.Err = bosherr.WrapErrorf(err, "Extracting '%s' to '%s'", file.Name, target)
	}

	return outcome
}

func (e ZipExtractor) writeFile(file *zip.File, target string) error {
	src, err := file.Open()
	if err != nil {
		return err
	}
	defer func() {
		_ = src.Close()
	}()

	mode := file.Mode().Perm()
	if mode == 0 {
		mode = defaultFileMode
	}

	dst, err := e.fs.OpenFile(target, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, mode)
	if err != nil {
		return err
	}

	_, err = io.Copy(dst, src)
	if closeErr := dst.Close(); err == nil {
		err = closeErr
	}

	return err
}
