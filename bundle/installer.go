package bundle

import (
	"errors"
	"net/url"
	"path"
	"path/filepath"
	"strings"

	bosherr "github.com/cloudfoundry/bosh-utils/errors"
	boshlog "github.com/cloudfoundry/bosh-utils/logger"
	boshsys "github.com/cloudfoundry/bosh-utils/system"
)

const installerLogTag = "BundleInstaller"

//go:generate counterfeiter . Downloader

type Downloader interface {
	Download(address, destinationPath string) error
}

type InstallOptions struct {
	ContinueOnError bool
}

type InstallResult struct {
	Success     bool
	ArchivePath string
	Extraction  ExtractionResult
	Err         InstallError
}

// InstallError separates failures of the machine (network, disk) from
// problems with what the caller asked for (bad address, bad archive).
type InstallError interface {
	error
	SystemError() bool
}

type installError struct {
	err      error
	isSystem bool
}

func (e *installError) Error() string     { return e.err.Error() }
func (e *installError) SystemError() bool { return e.isSystem }
func (e *installError) Unwrap() error     { return e.err }

func systemError(err error) InstallError {
	return &installError{err: err, isSystem: true}
}

func userError(err error) InstallError {
	return &installError{err: err, isSystem: false}
}

type Installer struct {
	fs         boshsys.FileSystem
	downloader Downloader
	extractor  Extractor
	locker     *Locker
	logger     boshlog.Logger
}

func NewInstaller(
	fs boshsys.FileSystem,
	downloader Downloader,
	extractor Extractor,
	locker *Locker,
	logger boshlog.Logger,
) Installer {
	return Installer{
		fs:         fs,
		downloader: downloader,
		extractor:  extractor,
		locker:     locker,
		logger:     logger,
	}
}

// Install downloads the archive at address into directory, extracts it as a
// bundle and removes the downloaded archive. It blocks until done.
func (i Installer) Install(directory, address string, opts InstallOptions) InstallResult {
	return <-i.InstallAsync(directory, address, opts)
}

func (i Installer) InstallAsync(directory, address string, opts InstallOptions) <-chan InstallResult {
	resultCh := make(chan InstallResult, 1)

	go func() {
		resultCh <- i.install(directory, address, opts)
	}()

	return resultCh
}

// DownloadBundle installs the bundle reporting through callbacks and returns
// whether the download and extraction completed.
func (i Installer) DownloadBundle(directory, address string, callbacks Callbacks) bool {
	result := i.Install(directory, address, callbacks.InstallOptions())
	callbacks.Replay(result)
	return result.Success
}

func (i Installer) install(directory, address string, opts InstallOptions) InstallResult {
	var result InstallResult

	fileName, err := archiveFileName(address)
	if err != nil {
		result.Err = userError(err)
		return result
	}

	err = i.fs.MkdirAll(directory, dirMode)
	if err != nil {
		result.Err = systemError(bosherr.WrapErrorf(err, "Creating directory '%s'", directory))
		return result
	}

	archivePath := filepath.Join(directory, fileName)
	result.ArchivePath = archivePath

	if i.isDir(archivePath) {
		result.Err = userError(bosherr.Errorf("Download target '%s' is a directory", archivePath))
		return result
	}

	unlock := i.locker.Lock(DestinationFor(archivePath, directory))
	defer unlock()

	defer i.removeArchive(archivePath)

	i.logger.Info(installerLogTag, "Downloading '%s' to '%s'", address, archivePath)

	err = i.downloader.Download(address, archivePath)
	if err != nil {
		result.Err = systemError(bosherr.WrapErrorf(err, "Downloading '%s'", address))
		return result
	}

	extraction, err := i.extractor.Extract(archivePath, directory, ExtractOptions{ContinueOnError: opts.ContinueOnError})
	result.Extraction = extraction
	if err != nil {
		wrapped := bosherr.WrapErrorf(err, "Extracting '%s'", archivePath)
		if len(extraction.Failures()) > 0 {
			result.Err = systemError(wrapped)
		} else {
			result.Err = userError(wrapped)
		}
		return result
	}

	i.logger.Info(installerLogTag, "Installed '%s' (%d entries, %d failed)",
		extraction.Plan.Destination, len(extraction.Entries), len(extraction.Failures()))

	result.Success = true
	return result
}

func (i Installer) removeArchive(archivePath string) {
	if !i.fs.FileExists(archivePath) {
		return
	}

	// Only the downloaded file is ours to remove, never a folder of the same name.
	if i.isDir(archivePath) {
		i.logger.Warn(installerLogTag, "Leaving directory '%s' in place", archivePath)
		return
	}

	err := i.fs.RemoveAll(archivePath)
	if err != nil {
		i.logger.Warn(installerLogTag, "Removing downloaded archive '%s': %s", archivePath, err.Error())
	}
}

func (i Installer) isDir(path string) bool {
	if !i.fs.FileExists(path) {
		return false
	}

	info, err := i.fs.Stat(path)
	return err == nil && info.IsDir()
}

// archiveFileName is the last path segment of address.
func archiveFileName(address string) (string, error) {
	parsed, err := url.Parse(address)
	if err != nil {
		return "", bosherr.WrapErrorf(err, "Parsing address '%s'", address)
	}

	if strings.HasSuffix(parsed.Path, "/") {
		return "", bosherr.Errorf("Address '%s' does not name a file", address)
	}

	name := path.Base(parsed.Path)
	if name == "." || name == "/" || name == "" {
		return "", bosherr.Errorf("Address '%s' does not name a file", address)
	}

	return name, nil
}

// IsSystemError reports whether err is an InstallError caused by the machine
// rather than by the request.
func IsSystemError(err error) bool {
	var installErr InstallError
	if errors.As(err, &installErr) {
		return installErr.SystemError()
	}
	return false
}
