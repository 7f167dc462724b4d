package bundle

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	bosherr "github.com/cloudfoundry/bosh-utils/errors"
	boshsys "github.com/cloudfoundry/bosh-utils/system"
)

// Suffix marks a directory as a bundle. The host application only discovers
// plugins living in directories carrying it.
const Suffix = ".bundle"

const archiveExtension = ".zip"

// MissingSuffixError is returned before any filesystem access when a caller
// names a bundle without Suffix.
type MissingSuffixError struct {
	Name string
}

func (e MissingSuffixError) Error() string {
	return fmt.Sprintf("Bundle name '%s' does not end with '%s'", e.Name, Suffix)
}

// Reference names an installed (or to be installed) bundle folder inside a
// plugins directory.
type Reference struct {
	Directory string
	Name      string
}

func NewReference(directory, name string) (Reference, error) {
	ref := Reference{Directory: directory, Name: name}
	return ref, ref.Validate()
}

func (r Reference) Validate() error {
	if !strings.HasSuffix(r.Name, Suffix) {
		return MissingSuffixError{Name: r.Name}
	}
	return nil
}

func (r Reference) Path() string {
	return filepath.Join(r.Directory, r.Name)
}

func IsContractViolation(err error) bool {
	var suffixErr MissingSuffixError
	return errors.As(err, &suffixErr)
}

// hasSuffixFold reports whether name ends with Suffix ignoring case.
func hasSuffixFold(name string) bool {
	return len(name) >= len(Suffix) && strings.EqualFold(name[len(name)-len(Suffix):], Suffix)
}

// List returns the bundle folders installed under pluginsDir, sorted by name.
// A missing plugins directory has no bundles.
func List(fs boshsys.FileSystem, pluginsDir string) ([]Reference, error) {
	if !fs.FileExists(pluginsDir) {
		return nil, nil
	}

	matches, err := fs.Glob(filepath.Join(pluginsDir, "*"+Suffix))
	if err != nil {
		return nil, bosherr.WrapError(err, "Globbing bundles")
	}

	refs := []Reference{}
	for _, match := range matches {
		info, err := fs.Stat(match)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, bosherr.WrapErrorf(err, "Inspecting '%s'", match)
		}
		if !info.IsDir() {
			continue
		}
		refs = append(refs, Reference{Directory: pluginsDir, Name: filepath.Base(match)})
	}

	sort.Slice(refs, func(i, j int) bool { return refs[i].Name < refs[j].Name })
	return refs, nil
}
