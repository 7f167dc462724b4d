package host

import (
	"fmt"
	"path/filepath"
	"strings"

	"code.cloudfoundry.org/clock"
	bosherr "github.com/cloudfoundry/bosh-utils/errors"
	boshlog "github.com/cloudfoundry/bosh-utils/logger"
	boshsys "github.com/cloudfoundry/bosh-utils/system"
)

const (
	launcherLogTag = "Launcher"

	DefaultExecutableName = "Revit.exe"

	JournalFileName   = "journal.txt"
	journalTimeLayout = "02-Jan-2006 15:04:05.000"
)

// DefaultArguments is used when Start is given no arguments.
var DefaultArguments = []string{"/language", "ENU"}

type Launcher struct {
	fs             boshsys.FileSystem
	runner         boshsys.CmdRunner
	processTable   ProcessTable
	timeService    clock.Clock
	executableName string
	logger         boshlog.Logger
}

func NewLauncher(
	fs boshsys.FileSystem,
	runner boshsys.CmdRunner,
	processTable ProcessTable,
	timeService clock.Clock,
	executableName string,
	logger boshlog.Logger,
) Launcher {
	if executableName == "" {
		executableName = DefaultExecutableName
	}

	return Launcher{
		fs:             fs,
		runner:         runner,
		processTable:   processTable,
		timeService:    timeService,
		executableName: executableName,
		logger:         logger,
	}
}

func (l Launcher) ExecutableName() string { return l.executableName }

// Start runs the host executable of installation without waiting for it.
func (l Launcher) Start(installation Installation, args ...string) (boshsys.Process, error) {
	command := boshsys.Command{
		Name: installation.Executable(l.executableName),
		Args: withDefaultArguments(args),
	}

	return l.run(command)
}

// StartWithJournal writes a journal script into workingDirectory and starts
// the host there with the journal as its first argument. The host also picks
// up add-in manifests placed in workingDirectory.
func (l Launcher) StartWithJournal(installation Installation, workingDirectory string, args ...string) (boshsys.Process, error) {
	journalPath, err := l.writeJournal(workingDirectory)
	if err != nil {
		return nil, err
	}

	command := boshsys.Command{
		Name:       installation.Executable(l.executableName),
		Args:       append([]string{journalPath}, withDefaultArguments(args)...),
		WorkingDir: workingDirectory,
	}

	return l.run(command)
}

// Processes lists running host processes started from installation.
func (l Launcher) Processes(installation Installation) ([]Process, error) {
	processes, err := l.processTable.Processes()
	if err != nil {
		return nil, bosherr.WrapError(err, "Getting processes")
	}

	processName := strings.TrimSuffix(l.executableName, filepath.Ext(l.executableName))

	var matching []Process
	for _, process := range processes {
		if !strings.EqualFold(process.Name, processName) &&
			!strings.EqualFold(process.Name, l.executableName) &&
			!strings.EqualFold(filepath.Base(process.ExecutablePath), l.executableName) {
			continue
		}

		if process.ExecutablePath == "" || !strings.Contains(process.ExecutablePath, installation.InstallLocation) {
			continue
		}

		matching = append(matching, process)
	}

	return matching, nil
}

func (l Launcher) FirstProcess(installation Installation) (Process, bool, error) {
	processes, err := l.Processes(installation)
	if err != nil || len(processes) == 0 {
		return Process{}, false, err
	}
	return processes[0], true, nil
}

func (l Launcher) writeJournal(workingDirectory string) (string, error) {
	err := l.fs.MkdirAll(workingDirectory, 0755)
	if err != nil {
		return "", bosherr.WrapErrorf(err, "Creating working directory '%s'", workingDirectory)
	}

	journalPath := filepath.Join(workingDirectory, JournalFileName)
	contents := fmt.Sprintf("'C %s; \r\nDim Jrn\r\nSet Jrn = CrsJournalScript",
		l.timeService.Now().Format(journalTimeLayout))

	err = l.fs.WriteFileString(journalPath, contents)
	if err != nil {
		return "", bosherr.WrapErrorf(err, "Writing journal '%s'", journalPath)
	}

	return journalPath, nil
}

func (l Launcher) run(command boshsys.Command) (boshsys.Process, error) {
	l.logger.Info(launcherLogTag, "Starting '%s' %v", command.Name, command.Args)

	process, err := l.runner.RunComplexCommandAsync(command)
	if err != nil {
		return nil, bosherr.WrapErrorf(err, "Starting '%s'", command.Name)
	}

	return process, nil
}

func withDefaultArguments(args []string) []string {
	if len(args) == 0 {
		return append([]string{}, DefaultArguments...)
	}
	return args
}
