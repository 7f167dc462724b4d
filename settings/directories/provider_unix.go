//go:build !windows
// +build !windows

package directories

func machineDataDir() string {
	return "/usr/local/share"
}
