package host

import (
	sigar "github.com/cloudfoundry/gosigar"

	bosherr "github.com/cloudfoundry/bosh-utils/errors"
	boshlog "github.com/cloudfoundry/bosh-utils/logger"
)

const processTableLogTag = "SigarProcessTable"

type Process struct {
	Pid            int
	Name           string
	ExecutablePath string
}

//go:generate counterfeiter . ProcessTable

type ProcessTable interface {
	Processes() ([]Process, error)
}

type SigarProcessTable struct {
	logger boshlog.Logger
}

func NewSigarProcessTable(logger boshlog.Logger) SigarProcessTable {
	return SigarProcessTable{logger: logger}
}

func (t SigarProcessTable) Processes() ([]Process, error) {
	pids := sigar.ProcList{}

	err := pids.Get()
	if err != nil {
		return nil, bosherr.WrapError(err, "Listing processes")
	}

	processes := make([]Process, 0, len(pids.List))

	for _, pid := range pids.List {
		state := sigar.ProcState{}

		// Processes may exit between listing and inspecting them.
		err := state.Get(pid)
		if err != nil {
			continue
		}

		process := Process{Pid: pid, Name: state.Name}

		exe := sigar.ProcExe{}
		err = exe.Get(pid)
		if err != nil {
			t.logger.Debug(processTableLogTag, "Reading executable of %d: %s", pid, err.Error())
		} else {
			process.ExecutablePath = exe.Name
		}

		processes = append(processes, process)
	}

	return processes, nil
}
