package app

import (
	"fmt"
	"io"
	"text/tabwriter"

	"code.cloudfoundry.org/clock"
	"github.com/Masterminds/semver/v3"
	bosherr "github.com/cloudfoundry/bosh-utils/errors"
	boshlog "github.com/cloudfoundry/bosh-utils/logger"
	boshsys "github.com/cloudfoundry/bosh-utils/system"
	"github.com/spf13/cobra"

	"github.com/cloudfoundry/bundle-agent/bundle"
	"github.com/cloudfoundry/bundle-agent/downloader"
	"github.com/cloudfoundry/bundle-agent/host"
	boshdirs "github.com/cloudfoundry/bundle-agent/settings/directories"
)

const appLogTag = "App"

type Options struct {
	ConfigPath string
	LogLevel   string
	PluginsDir string
	AllUsers   bool
}

type App struct {
	stdout io.Writer
	stderr io.Writer

	fs           boshsys.FileSystem
	runner       boshsys.CmdRunner
	processTable host.ProcessTable
	timeService  clock.Clock
	dirProvider  *boshdirs.Provider

	opts   Options
	config Config
	logger boshlog.Logger
	locker *bundle.Locker
}

// New builds an App on the real filesystem, process runner and clock. They
// are created once the log level is known.
func New(stdout, stderr io.Writer) *App {
	return &App{
		stdout:      stdout,
		stderr:      stderr,
		timeService: clock.NewClock(),
		locker:      bundle.NewLocker(),
	}
}

func NewWithDependencies(
	stdout io.Writer,
	stderr io.Writer,
	fs boshsys.FileSystem,
	runner boshsys.CmdRunner,
	processTable host.ProcessTable,
	timeService clock.Clock,
	dirProvider boshdirs.Provider,
) *App {
	app := New(stdout, stderr)
	app.fs = fs
	app.runner = runner
	app.processTable = processTable
	app.timeService = timeService
	app.dirProvider = &dirProvider
	return app
}

func (app *App) Run(args []string) error {
	cmd := app.rootCommand()
	cmd.SetArgs(args)
	return cmd.Execute()
}

func (app *App) rootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "bundle-agent",
		Short:         "Installs plugin bundles and launches the host application",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return app.setup()
		},
	}

	cmd.SetOut(app.stdout)
	cmd.SetErr(app.stderr)

	flags := cmd.PersistentFlags()
	flags.StringVarP(&app.opts.ConfigPath, "config", "C", "", "path to a JSON config file")
	flags.StringVar(&app.opts.LogLevel, "log-level", "ERROR", "DEBUG, INFO, WARN, ERROR or NONE")
	flags.StringVar(&app.opts.PluginsDir, "plugins-dir", "", "ApplicationPlugins folder to work in")
	flags.BoolVar(&app.opts.AllUsers, "all-users", false, "use the machine-wide ApplicationPlugins folder")

	cmd.AddCommand(
		app.installCommand(),
		app.deleteCommand(),
		app.listCommand(),
		app.installationsCommand(),
		app.startCommand(),
		app.processesCommand(),
	)

	return cmd
}

func (app *App) setup() error {
	level, err := boshlog.Levelify(app.opts.LogLevel)
	if err != nil {
		return bosherr.WrapError(err, "Parsing log level")
	}

	app.logger = boshlog.NewWriterLogger(level, app.stderr)

	if app.fs == nil {
		app.fs = boshsys.NewOsFileSystem(app.logger)
	}
	if app.runner == nil {
		app.runner = boshsys.NewExecCmdRunner(app.logger)
	}
	if app.processTable == nil {
		app.processTable = host.NewSigarProcessTable(app.logger)
	}
	if app.dirProvider == nil {
		provider, err := boshdirs.NewDefaultProvider()
		if err != nil {
			return err
		}
		app.dirProvider = &provider
	}

	app.config, err = LoadConfigFromPath(app.fs, app.opts.ConfigPath)
	if err != nil {
		return bosherr.WrapError(err, "Loading config")
	}

	app.logger.Debug(appLogTag, "Using plugins folder '%s'", app.pluginsDir())

	return nil
}

func (app *App) pluginsDir() string {
	if app.opts.PluginsDir != "" {
		return app.opts.PluginsDir
	}
	if app.config.PluginsDir != "" {
		return app.config.PluginsDir
	}
	return app.dirProvider.ApplicationPluginsDir(app.opts.AllUsers || app.config.AllUsers)
}

func (app *App) installCommand() *cobra.Command {
	var continueOnError bool

	cmd := &cobra.Command{
		Use:   "install ADDRESS",
		Short: "Download a zipped bundle and extract it into the plugins folder",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			httpDownloader, err := downloader.NewHTTPDownloader(app.fs, app.config.Download.DownloaderOptions(), app.logger)
			if err != nil {
				return bosherr.WrapError(err, "Building downloader")
			}

			installer := bundle.NewInstaller(
				app.fs,
				httpDownloader,
				bundle.NewZipExtractor(app.fs, app.logger),
				app.locker,
				app.logger,
			)

			result := installer.Install(app.pluginsDir(), args[0], bundle.InstallOptions{ContinueOnError: continueOnError})

			for _, entry := range result.Extraction.Entries {
				if entry.Err != nil {
					fmt.Fprintf(app.stdout, "failed: %s: %s\n", entry.Name, entry.Err.Error())
					continue
				}
				app.logger.Debug(appLogTag, "%s", entry.String())
			}

			if !result.Success {
				return result.Err
			}

			fmt.Fprintf(app.stdout, "Installed %s\n", result.Extraction.Plan.Destination)
			return nil
		},
	}

	cmd.Flags().BoolVar(&continueOnError, "continue-on-error", false, "extract the remaining entries when one fails")

	return cmd
}

func (app *App) deleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete NAME.bundle",
		Short: "Remove an installed bundle, leaving files in use in place",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			deleter := bundle.NewDeleter(app.fs, app.locker, app.logger)

			result, err := deleter.DeleteWithResult(app.pluginsDir(), args[0])
			if err != nil {
				return err
			}

			fmt.Fprintf(app.stdout, "Removed %d item(s)\n", len(result.Removed))
			for _, path := range result.Failed {
				fmt.Fprintf(app.stdout, "left in place: %s\n", path)
			}

			return nil
		},
	}
}

func (app *App) listCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the bundles in the plugins folder",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			refs, err := bundle.List(app.fs, app.pluginsDir())
			if err != nil {
				return err
			}

			for _, ref := range refs {
				fmt.Fprintln(app.stdout, ref.Name)
			}

			return nil
		},
	}
}

func (app *App) installationsCommand() *cobra.Command {
	var constraint string

	cmd := &cobra.Command{
		Use:   "installations",
		Short: "List installed versions of the host application",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			installations, err := app.installations()
			if err != nil {
				return err
			}

			if constraint != "" {
				constraints, err := semver.NewConstraint(constraint)
				if err != nil {
					return bosherr.WrapErrorf(err, "Parsing constraint '%s'", constraint)
				}
				installations = installations.Matching(constraints)
			}

			w := tabwriter.NewWriter(app.stdout, 0, 0, 2, ' ', 0)
			for _, installation := range installations {
				fmt.Fprintf(w, "%s\t%s\n", installation.Version.Original(), installation.InstallLocation)
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVar(&constraint, "constraint", "", "only versions matching, e.g. '>= 2022'")

	return cmd
}

type selection struct {
	atLeast bool
}

func (s *selection) register(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&s.atLeast, "at-least", false, "accept the oldest installation of VERSION or newer")
}

func (app *App) startCommand() *cobra.Command {
	var (
		sel        selection
		journalDir string
	)

	cmd := &cobra.Command{
		Use:   "start VERSION [-- ARGS...]",
		Short: "Start the host application",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			installation, err := app.selectInstallation(args[0], sel)
			if err != nil {
				return err
			}

			hostArgs := args[1:]
			if len(hostArgs) == 0 {
				hostArgs = app.config.Host.Arguments
			}

			launcher := app.launcher()

			if journalDir != "" {
				_, err = launcher.StartWithJournal(installation, journalDir, hostArgs...)
			} else {
				_, err = launcher.Start(installation, hostArgs...)
			}
			if err != nil {
				return err
			}

			fmt.Fprintf(app.stdout, "Started %s\n", installation.Executable(launcher.ExecutableName()))
			return nil
		},
	}

	sel.register(cmd)
	cmd.Flags().StringVar(&journalDir, "journal", "", "write a journal into this working directory and start from it")

	return cmd
}

func (app *App) processesCommand() *cobra.Command {
	var sel selection

	cmd := &cobra.Command{
		Use:   "processes VERSION",
		Short: "List running host processes of an installation",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			installation, err := app.selectInstallation(args[0], sel)
			if err != nil {
				return err
			}

			processes, err := app.launcher().Processes(installation)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(app.stdout, 0, 0, 2, ' ', 0)
			for _, process := range processes {
				fmt.Fprintf(w, "%d\t%s\n", process.Pid, process.ExecutablePath)
			}
			return w.Flush()
		},
	}

	sel.register(cmd)

	return cmd
}

func (app *App) launcher() host.Launcher {
	return host.NewLauncher(
		app.fs,
		app.runner,
		app.processTable,
		app.timeService,
		app.config.Host.Executable(),
		app.logger,
	)
}

func (app *App) installations() (host.Installations, error) {
	locator, err := app.config.Locator(app.fs, app.logger)
	if err != nil {
		return nil, err
	}

	installations, err := locator.Installations()
	if err != nil {
		return nil, bosherr.WrapError(err, "Locating installations")
	}

	return installations, nil
}

func (app *App) selectInstallation(version string, sel selection) (host.Installation, error) {
	requested, err := semver.NewVersion(version)
	if err != nil {
		return host.Installation{}, bosherr.WrapErrorf(err, "Parsing version '%s'", version)
	}

	installations, err := app.installations()
	if err != nil {
		return host.Installation{}, err
	}

	var (
		installation host.Installation
		found        bool
	)
	if sel.atLeast {
		installation, found = installations.FindAtLeast(requested)
	} else {
		installation, found = installations.Find(requested)
	}

	if !found {
		return host.Installation{}, bosherr.Errorf("No installation of version '%s' found", version)
	}

	return installation, nil
}
