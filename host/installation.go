package host

import (
	"path/filepath"
	"sort"

	"github.com/Masterminds/semver/v3"
	bosherr "github.com/cloudfoundry/bosh-utils/errors"
)

// Installation is one installed version of the host application.
type Installation struct {
	Version         *semver.Version
	InstallLocation string
}

func NewInstallation(version, installLocation string) (Installation, error) {
	parsed, err := semver.NewVersion(version)
	if err != nil {
		return Installation{}, bosherr.WrapErrorf(err, "Parsing version '%s'", version)
	}

	return Installation{Version: parsed, InstallLocation: installLocation}, nil
}

func (i Installation) Executable(executableName string) string {
	return filepath.Join(i.InstallLocation, executableName)
}

func (i Installation) String() string {
	if i.Version == nil {
		return i.InstallLocation
	}
	return i.Version.Original() + " " + i.InstallLocation
}

type Installations []Installation

// Sorted returns a copy ordered from the oldest version to the newest.
func (is Installations) Sorted() Installations {
	sorted := make(Installations, len(is))
	copy(sorted, is)

	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Version.LessThan(sorted[j].Version)
	})

	return sorted
}

// Find returns the first installation of exactly version.
func (is Installations) Find(version *semver.Version) (Installation, bool) {
	for _, installation := range is {
		if installation.Version.Equal(version) {
			return installation, true
		}
	}
	return Installation{}, false
}

// FindAtLeast returns the first installation whose version is version or
// newer. On a Sorted list that is the oldest installation that qualifies.
func (is Installations) FindAtLeast(version *semver.Version) (Installation, bool) {
	for _, installation := range is {
		if !installation.Version.LessThan(version) {
			return installation, true
		}
	}
	return Installation{}, false
}

func (is Installations) Matching(constraints *semver.Constraints) Installations {
	var matching Installations
	for _, installation := range is {
		if constraints.Check(installation.Version) {
			matching = append(matching, installation)
		}
	}
	return matching
}
