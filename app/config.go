package app

import (
	"encoding/json"
	"time"

	bosherr "github.com/cloudfoundry/bosh-utils/errors"
	boshlog "github.com/cloudfoundry/bosh-utils/logger"
	boshsys "github.com/cloudfoundry/bosh-utils/system"
	mapstruc "github.com/mitchellh/mapstructure"

	"github.com/cloudfoundry/bundle-agent/downloader"
	"github.com/cloudfoundry/bundle-agent/host"
)

const DefaultInstallationsGlob = `C:\Program Files\Autodesk\Revit *`

type Config struct {
	// PluginsDir overrides the ApplicationPlugins folder bundles go into.
	PluginsDir string

	// AllUsers selects the machine-wide ApplicationPlugins folder.
	AllUsers bool

	Download DownloadOptions
	Host     HostOptions
	Sources  SourceOptionsSlice
}

type DownloadOptions struct {
	TimeoutSeconds int
	Attempts       int
	DelaySeconds   int
	UserAgent      string
	CACertPath     string
}

type HostOptions struct {
	ExecutableName string
	Arguments      []string
}

// SourceOptionsSlice is used for unmarshalling different installation source types
type SourceOptionsSlice []SourceOptions

type SourceOptions interface {
	sourceOptionsInterface()
}

type StaticSourceOptions struct {
	Version         string
	InstallLocation string
}

func (o StaticSourceOptions) sourceOptionsInterface() {}

type GlobSourceOptions struct {
	Pattern string
}

func (o GlobSourceOptions) sourceOptionsInterface() {}

func LoadConfigFromPath(fs boshsys.FileSystem, path string) (Config, error) {
	var config Config

	if path == "" {
		return config, nil
	}

	bytes, err := fs.ReadFile(path)
	if err != nil {
		return config, bosherr.WrapError(err, "Reading file")
	}

	err = json.Unmarshal(bytes, &config)
	if err != nil {
		return config, bosherr.WrapError(err, "Loading file")
	}

	return config, nil
}

// DownloaderOptions fills everything left unset with the downloader defaults.
func (o DownloadOptions) DownloaderOptions() downloader.Options {
	opts := downloader.DefaultOptions()

	if o.TimeoutSeconds > 0 {
		opts.Timeout = time.Duration(o.TimeoutSeconds) * time.Second
	}
	if o.Attempts > 0 {
		opts.Attempts = o.Attempts
	}
	if o.DelaySeconds > 0 {
		opts.Delay = time.Duration(o.DelaySeconds) * time.Second
	}
	if o.UserAgent != "" {
		opts.UserAgent = o.UserAgent
	}
	opts.CACertPath = o.CACertPath

	return opts
}

func (o HostOptions) Executable() string {
	if o.ExecutableName == "" {
		return host.DefaultExecutableName
	}
	return o.ExecutableName
}

// Locator builds one locator per configured source. Without sources the
// default install folder is globbed.
func (c Config) Locator(fs boshsys.FileSystem, logger boshlog.Logger) (host.Locator, error) {
	sources := c.Sources
	if len(sources) == 0 {
		sources = SourceOptionsSlice{GlobSourceOptions{Pattern: DefaultInstallationsGlob}}
	}

	var locators host.MultiLocator

	for _, source := range sources {
		switch typedSource := source.(type) {
		case StaticSourceOptions:
			installation, err := host.NewInstallation(typedSource.Version, typedSource.InstallLocation)
			if err != nil {
				return nil, bosherr.WrapErrorf(err, "Building static source '%s'", typedSource.InstallLocation)
			}
			locators = append(locators, host.NewStaticLocator(installation))

		case GlobSourceOptions:
			locators = append(locators, host.NewGlobLocator(fs, typedSource.Pattern, c.Host.Executable(), logger))

		default:
			return nil, bosherr.Errorf("Unknown source type %T", source)
		}
	}

	return locators, nil
}

func (s *SourceOptionsSlice) UnmarshalJSON(data []byte) error {
	var maps []map[string]interface{}

	err := json.Unmarshal(data, &maps)
	if err != nil {
		return bosherr.WrapError(err, "Unmarshalling sources")
	}

	for _, m := range maps {
		optType, ok := m["Type"]
		if !ok {
			return bosherr.Error("Missing source type")
		}

		var opts SourceOptions

		switch {
		case optType == "Static":
			var o StaticSourceOptions
			err, opts = mapstruc.Decode(m, &o), o

		case optType == "Glob":
			var o GlobSourceOptions
			err, opts = mapstruc.Decode(m, &o), o

		default:
			err = bosherr.Errorf("Unknown source type '%s'", optType)
		}

		if err != nil {
			return bosherr.WrapError(err, "Unmarshalling source")
		}

		*s = append(*s, opts)
	}

	return nil
}
