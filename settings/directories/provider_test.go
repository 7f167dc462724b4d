package directories_test

import (
	"path/filepath"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"

	. "github.com/cloudfoundry/bundle-agent/settings/directories"
)

var _ = Describe("Provider", func() {
	var provider Provider

	BeforeEach(func() {
		provider = NewProvider("/home/user/.config", "/usr/local/share")
	})

	It("resolves the current user's plugin folders", func() {
		Expect(provider.CurrentUserApplicationPluginsDir()).To(Equal(filepath.Join("/home/user/.config", "Autodesk", "ApplicationPlugins")))
		Expect(provider.CurrentUserAddinsDir()).To(Equal(filepath.Join("/home/user/.config", "Autodesk", "Revit", "Addins")))
		Expect(provider.CurrentUserVersionAddinsDir("2021")).To(Equal(filepath.Join("/home/user/.config", "Autodesk", "Revit", "Addins", "2021")))
	})

	It("resolves the machine-wide plugin folders", func() {
		Expect(provider.AllUsersApplicationPluginsDir()).To(Equal(filepath.Join("/usr/local/share", "Autodesk", "ApplicationPlugins")))
		Expect(provider.AllUsersAddinsDir()).To(Equal(filepath.Join("/usr/local/share", "Autodesk", "Revit", "Addins")))
		Expect(provider.AllUsersVersionAddinsDir("2021")).To(Equal(filepath.Join("/usr/local/share", "Autodesk", "Revit", "Addins", "2021")))
	})

	It("picks the plugins folder by scope", func() {
		Expect(provider.ApplicationPluginsDir(false)).To(Equal(provider.CurrentUserApplicationPluginsDir()))
		Expect(provider.ApplicationPluginsDir(true)).To(Equal(provider.AllUsersApplicationPluginsDir()))
	})

	It("builds a default provider from the environment", func() {
		defaultProvider, err := NewDefaultProvider()
		if err != nil {
			Skip("no user configuration directory: " + err.Error())
		}
		Expect(defaultProvider.UserDir()).ToNot(BeEmpty())
		Expect(defaultProvider.MachineDir()).ToNot(BeEmpty())
	})
})
