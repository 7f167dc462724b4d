package bundle

import (
	"path"
	"path/filepath"
	"strings"

	bosherr "github.com/cloudfoundry/bosh-utils/errors"
)

// ExtractionPlan is computed once per opened archive and applied to each of
// its entries.
type ExtractionPlan struct {
	// RootPrefix is the folder wrapping the bundle contents inside the
	// archive, e.g. "Sample.bundle". Empty when entries are already rooted at
	// the top of the bundle.
	RootPrefix string

	// Destination is the bundle folder entries are written under.
	Destination string
}

func PlanExtraction(archivePath, directory string, entryNames []string) ExtractionPlan {
	return ExtractionPlan{
		RootPrefix:  DetectRootPrefix(entryNames),
		Destination: DestinationFor(archivePath, directory),
	}
}

// DestinationFor returns directory when it already names a bundle folder,
// otherwise the subfolder named after the archive file stem.
func DestinationFor(archivePath, directory string) string {
	if strings.HasSuffix(directory, Suffix) {
		return directory
	}

	base := filepath.Base(archivePath)
	stem := strings.TrimSuffix(base, filepath.Ext(base))

	return filepath.Join(directory, stem)
}

// DetectRootPrefix only looks at the first stored entry. If the folder holding
// it is a bundle folder the whole archive is assumed to be wrapped in it.
func DetectRootPrefix(entryNames []string) string {
	if len(entryNames) == 0 {
		return ""
	}

	dir := path.Dir(entryNames[0])
	if dir == "." || dir == "/" {
		return ""
	}

	if hasSuffixFold(dir) {
		return dir
	}

	return ""
}

// Relative strips the root prefix and any leading separators from an entry
// name. Entries outside the root prefix are kept as they are.
func (p ExtractionPlan) Relative(entryName string) string {
	rel := entryName

	prefix := p.RootPrefix
	if prefix != "" && len(rel) >= len(prefix) && strings.EqualFold(rel[:len(prefix)], prefix) {
		if len(rel) == len(prefix) || rel[len(prefix)] == '/' {
			rel = rel[len(prefix):]
		}
	}

	return strings.TrimLeft(rel, "/")
}

// Target maps an entry name onto the filesystem under Destination.
func (p ExtractionPlan) Target(entryName string) (string, error) {
	rel := p.Relative(entryName)
	if rel == "" {
		return p.Destination, nil
	}

	target := filepath.Join(p.Destination, filepath.FromSlash(rel))

	within, err := filepath.Rel(p.Destination, target)
	if err != nil || within == ".." || strings.HasPrefix(within, ".."+string(filepath.Separator)) {
		return "", bosherr.Errorf("Archive entry '%s' resolves outside of '%s'", entryName, p.Destination)
	}

	return target, nil
}

func isDirectoryMarker(entryName string) bool {
	return entryName == "" || strings.HasSuffix(entryName, "/")
}
