package app_test

import (
	"time"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"

	boshlog "github.com/cloudfoundry/bosh-utils/logger"
	fakesys "github.com/cloudfoundry/bosh-utils/system/fakes"

	. "github.com/cloudfoundry/bundle-agent/app"
	"github.com/cloudfoundry/bundle-agent/downloader"
	"github.com/cloudfoundry/bundle-agent/host"
)

var _ = Describe("Config", func() {
	var (
		fs     *fakesys.FakeFileSystem
		logger boshlog.Logger
	)

	BeforeEach(func() {
		fs = fakesys.NewFakeFileSystem()
		logger = boshlog.NewLogger(boshlog.LevelNone)
	})

	Describe("LoadConfigFromPath", func() {
		It("returns an empty config without a path", func() {
			config, err := LoadConfigFromPath(fs, "")
			Expect(err).ToNot(HaveOccurred())
			Expect(config).To(Equal(Config{}))
		})

		It("loads every section", func() {
			err := fs.WriteFileString("/etc/bundle-agent.json", `{
				"PluginsDir": "/plugins",
				"AllUsers": true,
				"Download": { "TimeoutSeconds": 30, "Attempts": 3, "DelaySeconds": 5, "UserAgent": "fake-agent", "CACertPath": "/ca.pem" },
				"Host": { "ExecutableName": "Host.exe", "Arguments": ["/language", "FRA"] },
				"Sources": [
					{ "Type": "Static", "Version": "2024", "InstallLocation": "/opt/Revit 2024" },
					{ "Type": "Glob", "Pattern": "/opt/Revit *" }
				]
			}`)
			Expect(err).ToNot(HaveOccurred())

			config, err := LoadConfigFromPath(fs, "/etc/bundle-agent.json")
			Expect(err).ToNot(HaveOccurred())

			Expect(config.PluginsDir).To(Equal("/plugins"))
			Expect(config.AllUsers).To(BeTrue())
			Expect(config.Download).To(Equal(DownloadOptions{
				TimeoutSeconds: 30,
				Attempts:       3,
				DelaySeconds:   5,
				UserAgent:      "fake-agent",
				CACertPath:     "/ca.pem",
			}))
			Expect(config.Host.Executable()).To(Equal("Host.exe"))
			Expect(config.Host.Arguments).To(Equal([]string{"/language", "FRA"}))
			Expect(config.Sources).To(Equal(SourceOptionsSlice{
				StaticSourceOptions{Version: "2024", InstallLocation: "/opt/Revit 2024"},
				GlobSourceOptions{Pattern: "/opt/Revit *"},
			}))
		})

		It("returns an error when the file cannot be read", func() {
			_, err := LoadConfigFromPath(fs, "/missing.json")
			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("Reading file"))
		})

		It("returns an error for invalid json", func() {
			Expect(fs.WriteFileString("/bad.json", "{")).To(Succeed())

			_, err := LoadConfigFromPath(fs, "/bad.json")
			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("Loading file"))
		})

		It("returns an error for an unknown source type", func() {
			Expect(fs.WriteFileString("/bad.json", `{ "Sources": [{ "Type": "Registry" }] }`)).To(Succeed())

			_, err := LoadConfigFromPath(fs, "/bad.json")
			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("Unknown source type 'Registry'"))
		})

		It("returns an error for a source without a type", func() {
			Expect(fs.WriteFileString("/bad.json", `{ "Sources": [{ "Pattern": "/opt/*" }] }`)).To(Succeed())

			_, err := LoadConfigFromPath(fs, "/bad.json")
			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("Missing source type"))
		})
	})

	Describe("DownloaderOptions", func() {
		It("falls back to the downloader defaults", func() {
			Expect(DownloadOptions{}.DownloaderOptions()).To(Equal(downloader.DefaultOptions()))
		})

		It("converts seconds to durations", func() {
			opts := DownloadOptions{TimeoutSeconds: 30, Attempts: 3, DelaySeconds: 5, UserAgent: "fake-agent"}.DownloaderOptions()
			Expect(opts.Timeout).To(Equal(30 * time.Second))
			Expect(opts.Attempts).To(Equal(3))
			Expect(opts.Delay).To(Equal(5 * time.Second))
			Expect(opts.UserAgent).To(Equal("fake-agent"))
		})
	})

	Describe("Locator", func() {
		It("defaults the executable name", func() {
			Expect(HostOptions{}.Executable()).To(Equal(host.DefaultExecutableName))
		})

		It("combines every configured source", func() {
			fs.SetGlob("/opt/Revit *", []string{"/opt/Revit 2022"})
			Expect(fs.WriteFileString("/opt/Revit 2022/Revit.exe", "")).To(Succeed())

			config := Config{Sources: SourceOptionsSlice{
				StaticSourceOptions{Version: "2024", InstallLocation: "/opt/Revit 2024"},
				GlobSourceOptions{Pattern: "/opt/Revit *"},
			}}

			locator, err := config.Locator(fs, logger)
			Expect(err).ToNot(HaveOccurred())

			installations, err := locator.Installations()
			Expect(err).ToNot(HaveOccurred())
			Expect(installations).To(HaveLen(2))
			Expect(installations[0].InstallLocation).To(Equal("/opt/Revit 2022"))
			Expect(installations[1].InstallLocation).To(Equal("/opt/Revit 2024"))
		})

		It("rejects a static source with a bad version", func() {
			config := Config{Sources: SourceOptionsSlice{StaticSourceOptions{Version: "latest"}}}

			_, err := config.Locator(fs, logger)
			Expect(err).To(HaveOccurred())
		})
	})
})
