package host_test

import (
	"errors"
	"path/filepath"
	"strings"
	"time"

	"code.cloudfoundry.org/clock/fakeclock"
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"

	boshlog "github.com/cloudfoundry/bosh-utils/logger"
	boshsys "github.com/cloudfoundry/bosh-utils/system"
	fakesys "github.com/cloudfoundry/bosh-utils/system/fakes"

	. "github.com/cloudfoundry/bundle-agent/host"
	"github.com/cloudfoundry/bundle-agent/host/hostfakes"
)

var _ = Describe("Launcher", func() {
	var (
		fs           *fakesys.FakeFileSystem
		runner       *fakesys.FakeCmdRunner
		processTable *hostfakes.FakeProcessTable
		timeService  *fakeclock.FakeClock
		installation Installation
		launcher     Launcher
	)

	BeforeEach(func() {
		fs = fakesys.NewFakeFileSystem()
		runner = fakesys.NewFakeCmdRunner()
		processTable = &hostfakes.FakeProcessTable{}
		timeService = fakeclock.NewFakeClock(time.Date(2024, time.March, 5, 14, 7, 9, 42000000, time.Local))

		var err error
		installation, err = NewInstallation("2024", "/opt/Autodesk/Revit 2024")
		Expect(err).ToNot(HaveOccurred())

		launcher = NewLauncher(fs, runner, processTable, timeService, "", boshlog.NewLogger(boshlog.LevelNone))
	})

	expectProcess := func(command boshsys.Command) {
		runner.AddProcess(strings.Join(append([]string{command.Name}, command.Args...), " "), &fakesys.FakeProcess{})
	}

	It("defaults to the Revit executable", func() {
		Expect(launcher.ExecutableName()).To(Equal(DefaultExecutableName))
	})

	Describe("Start", func() {
		It("starts the executable with the default arguments", func() {
			expected := boshsys.Command{
				Name: filepath.Join("/opt/Autodesk/Revit 2024", "Revit.exe"),
				Args: []string{"/language", "ENU"},
			}
			expectProcess(expected)

			process, err := launcher.Start(installation)
			Expect(err).ToNot(HaveOccurred())
			Expect(process).ToNot(BeNil())
			Expect(runner.RunComplexCommands).To(Equal([]boshsys.Command{expected}))
		})

		It("passes explicit arguments instead of the defaults", func() {
			expected := boshsys.Command{
				Name: filepath.Join("/opt/Autodesk/Revit 2024", "Revit.exe"),
				Args: []string{"/language", "DEU", "/nosplash"},
			}
			expectProcess(expected)

			_, err := launcher.Start(installation, "/language", "DEU", "/nosplash")
			Expect(err).ToNot(HaveOccurred())
			Expect(runner.RunComplexCommands).To(Equal([]boshsys.Command{expected}))
		})
	})

	Describe("StartWithJournal", func() {
		It("writes the journal and passes it first", func() {
			journalPath := filepath.Join("/tmp/session", "journal.txt")
			expected := boshsys.Command{
				Name:       filepath.Join("/opt/Autodesk/Revit 2024", "Revit.exe"),
				Args:       []string{journalPath, "/language", "ENU"},
				WorkingDir: "/tmp/session",
			}
			expectProcess(expected)

			_, err := launcher.StartWithJournal(installation, "/tmp/session")
			Expect(err).ToNot(HaveOccurred())
			Expect(runner.RunComplexCommands).To(Equal([]boshsys.Command{expected}))

			contents, err := fs.ReadFileString(journalPath)
			Expect(err).ToNot(HaveOccurred())
			Expect(contents).To(Equal("'C 05-Mar-2024 14:07:09.042; \r\nDim Jrn\r\nSet Jrn = CrsJournalScript"))
		})

		It("does not start anything when the journal cannot be written", func() {
			fs.WriteFileError = errors.New("fake-write-err")

			_, err := launcher.StartWithJournal(installation, "/tmp/session")
			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("fake-write-err"))
			Expect(runner.RunComplexCommands).To(BeEmpty())
		})
	})

	Describe("Processes", func() {
		BeforeEach(func() {
			processTable.ProcessesReturns([]Process{
				{Pid: 1, Name: "Revit", ExecutablePath: "/opt/Autodesk/Revit 2024/Revit.exe"},
				{Pid: 2, Name: "Revit", ExecutablePath: "/opt/Autodesk/Revit 2023/Revit.exe"},
				{Pid: 3, Name: "bash", ExecutablePath: "/bin/bash"},
				{Pid: 4, Name: "Revit.exe", ExecutablePath: "/opt/Autodesk/Revit 2024/Revit.exe"},
				{Pid: 5, Name: "Revit", ExecutablePath: ""},
			}, nil)
		})

		It("lists host processes started from the installation", func() {
			processes, err := launcher.Processes(installation)
			Expect(err).ToNot(HaveOccurred())
			Expect(processes).To(HaveLen(2))
			Expect(processes[0].Pid).To(Equal(1))
			Expect(processes[1].Pid).To(Equal(4))
		})

		It("returns the first one", func() {
			process, found, err := launcher.FirstProcess(installation)
			Expect(err).ToNot(HaveOccurred())
			Expect(found).To(BeTrue())
			Expect(process.Pid).To(Equal(1))
		})

		It("reports when no process is running", func() {
			other, err := NewInstallation("2021", "/opt/Autodesk/Revit 2021")
			Expect(err).ToNot(HaveOccurred())

			_, found, err := launcher.FirstProcess(other)
			Expect(err).ToNot(HaveOccurred())
			Expect(found).To(BeFalse())
		})

		It("returns an error when the process table fails", func() {
			processTable.ProcessesReturns(nil, errors.New("fake-proc-err"))

			_, found, err := launcher.FirstProcess(installation)
			Expect(err).To(HaveOccurred())
			Expect(found).To(BeFalse())
		})
	})
})
