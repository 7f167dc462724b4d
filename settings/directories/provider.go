package directories

import (
	"os"
	"path/filepath"

	bosherr "github.com/cloudfoundry/bosh-utils/errors"
)

const (
	vendorDirName         = "Autodesk"
	applicationPluginsDir = "ApplicationPlugins"
	hostDirName           = "Revit"
	addinsDirName         = "Addins"
)

// Provider resolves the folders the host application scans for plugins.
// Current-user folders live under the user's roaming configuration directory
// and all-users folders under the machine-wide data directory.
type Provider struct {
	userDir    string
	machineDir string
}

func NewProvider(userDir, machineDir string) Provider {
	return Provider{userDir: userDir, machineDir: machineDir}
}

// NewDefaultProvider uses the platform's configuration directories.
func NewDefaultProvider() (Provider, error) {
	userDir, err := os.UserConfigDir()
	if err != nil {
		return Provider{}, bosherr.WrapError(err, "Resolving user configuration directory")
	}

	return NewProvider(userDir, machineDataDir()), nil
}

func (p Provider) UserDir() string    { return p.userDir }
func (p Provider) MachineDir() string { return p.machineDir }

func (p Provider) CurrentUserApplicationPluginsDir() string {
	return filepath.Join(p.userDir, vendorDirName, applicationPluginsDir)
}

func (p Provider) AllUsersApplicationPluginsDir() string {
	return filepath.Join(p.machineDir, vendorDirName, applicationPluginsDir)
}

func (p Provider) ApplicationPluginsDir(allUsers bool) string {
	if allUsers {
		return p.AllUsersApplicationPluginsDir()
	}
	return p.CurrentUserApplicationPluginsDir()
}

func (p Provider) CurrentUserAddinsDir() string {
	return filepath.Join(p.userDir, vendorDirName, hostDirName, addinsDirName)
}

func (p Provider) AllUsersAddinsDir() string {
	return filepath.Join(p.machineDir, vendorDirName, hostDirName, addinsDirName)
}

// CurrentUserVersionAddinsDir is the add-in folder scanned by one version of
// the host, e.g. ".../Revit/Addins/2024".
func (p Provider) CurrentUserVersionAddinsDir(version string) string {
	return filepath.Join(p.CurrentUserAddinsDir(), version)
}

func (p Provider) AllUsersVersionAddinsDir(version string) string {
	return filepath.Join(p.AllUsersAddinsDir(), version)
}
