package host

import (
	"path/filepath"
	"regexp"

	"github.com/Masterminds/semver/v3"
	bosherr "github.com/cloudfoundry/bosh-utils/errors"
	boshlog "github.com/cloudfoundry/bosh-utils/logger"
	boshsys "github.com/cloudfoundry/bosh-utils/system"
)

const globLocatorLogTag = "GlobLocator"

//go:generate counterfeiter . Locator

type Locator interface {
	Installations() (Installations, error)
}

type StaticLocator struct {
	installations Installations
}

func NewStaticLocator(installations ...Installation) StaticLocator {
	return StaticLocator{installations: installations}
}

func (l StaticLocator) Installations() (Installations, error) {
	return l.installations.Sorted(), nil
}

var versionPattern = regexp.MustCompile(`\d+(\.\d+){0,2}`)

// GlobLocator finds installations on disk. Every directory matching the
// pattern whose name carries a version number and which holds the
// executable counts as one installation, e.g. "C:/Program Files/Autodesk/Revit 2024".
type GlobLocator struct {
	fs             boshsys.FileSystem
	pattern        string
	executableName string
	logger         boshlog.Logger
}

func NewGlobLocator(fs boshsys.FileSystem, pattern, executableName string, logger boshlog.Logger) GlobLocator {
	return GlobLocator{
		fs:             fs,
		pattern:        pattern,
		executableName: executableName,
		logger:         logger,
	}
}

func (l GlobLocator) Installations() (Installations, error) {
	matches, err := l.fs.Glob(l.pattern)
	if err != nil {
		return nil, bosherr.WrapErrorf(err, "Globbing '%s'", l.pattern)
	}

	var installations Installations

	for _, match := range matches {
		version := versionPattern.FindString(filepath.Base(match))
		if version == "" {
			l.logger.Debug(globLocatorLogTag, "Skipping '%s': no version in name", match)
			continue
		}

		parsed, err := semver.NewVersion(version)
		if err != nil {
			l.logger.Debug(globLocatorLogTag, "Skipping '%s': %s", match, err.Error())
			continue
		}

		if !l.fs.FileExists(filepath.Join(match, l.executableName)) {
			l.logger.Debug(globLocatorLogTag, "Skipping '%s': no '%s'", match, l.executableName)
			continue
		}

		installations = append(installations, Installation{Version: parsed, InstallLocation: match})
	}

	return installations.Sorted(), nil
}

// MultiLocator merges what its locators find. The first locator reporting an
// install location wins.
type MultiLocator []Locator

func (m MultiLocator) Installations() (Installations, error) {
	var merged Installations
	seen := map[string]bool{}

	for _, locator := range m {
		installations, err := locator.Installations()
		if err != nil {
			return nil, err
		}

		for _, installation := range installations {
			key := filepath.Clean(installation.InstallLocation)
			if seen[key] {
				continue
			}
			seen[key] = true
			merged = append(merged, installation)
		}
	}

	return merged.Sorted(), nil
}
