package bundle

import (
	"os"
	"path/filepath"

	boshlog "github.com/cloudfoundry/bosh-utils/logger"
	boshsys "github.com/cloudfoundry/bosh-utils/system"
)

const deleterLogTag = "BundleDeleter"

// DeletionResult accounts for a best-effort delete. Items that could not be
// removed are left in place and listed in Failed, together with every
// directory that still holds one of them.
type DeletionResult struct {
	Removed []string
	Failed  []string
}

func (r DeletionResult) Complete() bool {
	return len(r.Failed) == 0
}

type Deleter struct {
	fs     boshsys.FileSystem
	locker *Locker
	logger boshlog.Logger
}

func NewDeleter(fs boshsys.FileSystem, locker *Locker, logger boshlog.Logger) Deleter {
	return Deleter{fs: fs, locker: locker, logger: logger}
}

// Delete removes pluginsDir/bundleName. Only a bundle name without Suffix is
// reported as an error; items that cannot be removed are skipped silently.
func (d Deleter) Delete(pluginsDir, bundleName string) error {
	_, err := d.DeleteWithResult(pluginsDir, bundleName)
	return err
}

func (d Deleter) DeleteWithResult(pluginsDir, bundleName string) (DeletionResult, error) {
	ref, err := NewReference(pluginsDir, bundleName)
	if err != nil {
		return DeletionResult{}, err
	}

	root := ref.Path()

	unlock := d.locker.Lock(root)
	defer unlock()

	if !d.fs.FileExists(root) {
		d.logger.Debug(deleterLogTag, "Nothing to delete at '%s'", root)
		return DeletionResult{}, nil
	}

	d.logger.Debug(deleterLogTag, "Deleting '%s'", root)

	var paths []string
	dirs := map[string]bool{}

	err = d.fs.Walk(root, func(path string, info os.FileInfo, err error) error {
		if path == root || info == nil {
			return nil
		}
		paths = append(paths, path)
		if info.IsDir() {
			dirs[path] = true
		}
		return nil
	})
	if err != nil {
		d.logger.Debug(deleterLogTag, "Walking '%s' stopped early: %s", root, err.Error())
	}

	// Walk visits a directory before its contents, so going backwards removes
	// children before the directory holding them.
	var result DeletionResult
	retained := map[string]bool{}

	for i := len(paths) - 1; i >= 0; i-- {
		d.remove(root, paths[i], dirs[paths[i]], retained, &result)
	}
	d.remove(root, root, true, retained, &result)

	if !result.Complete() {
		d.logger.Debug(deleterLogTag, "Left %d item(s) of '%s' in place", len(result.Failed), root)
	}

	return result, nil
}

func (d Deleter) remove(root, path string, isDir bool, retained map[string]bool, result *DeletionResult) {
	if isDir && retained[path] {
		result.Failed = append(result.Failed, path)
		return
	}

	err := d.fs.RemoveAll(path)
	if err != nil {
		d.logger.Debug(deleterLogTag, "Leaving '%s' in place: %s", path, err.Error())
		result.Failed = append(result.Failed, path)
		retainAncestors(root, path, retained)
		return
	}

	result.Removed = append(result.Removed, path)
}

// retainAncestors marks every directory between path and root (inclusive) as
// still holding something.
func retainAncestors(root, path string, retained map[string]bool) {
	for path != root {
		parent := filepath.Dir(path)
		if parent == path {
			return
		}
		retained[parent] = true
		path = parent
	}
}
