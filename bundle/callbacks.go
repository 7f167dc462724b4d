package bundle

// Callbacks replays an InstallResult as fire-and-forget notifications.
// OnLog receives one line per processed archive entry; OnError receives every
// entry failure followed by the failure of the operation itself, if any.
//
// Supplying OnError makes extraction continue past failing entries.
type Callbacks struct {
	OnError func(error)
	OnLog   func(string)
}

func (c Callbacks) InstallOptions() InstallOptions {
	return InstallOptions{ContinueOnError: c.OnError != nil}
}

func (c Callbacks) Replay(result InstallResult) {
	for _, entry := range result.Extraction.Entries {
		if c.OnLog != nil {
			c.OnLog(entry.String())
		}
		if entry.Err != nil && c.OnError != nil {
			c.OnError(entry.Err)
		}
	}

	if result.Err != nil && c.OnError != nil {
		c.OnError(result.Err)
	}
}
