package driver

import "time"

// Stage is a per-file pipeline pass.
type Stage string

const (
	StageLoad      Stage = "load"
	StageLex       Stage = "lex"
	StageExtract   Stage = "extract"
	StageCorrelate Stage = "correlate"
)

// Status captures progress state within a stage.
type Status string

const (
	StatusQueued  Status = "queued"
	StatusWorking Status = "working"
	StatusDone    Status = "done"
	StatusError   Status = "error"
)

// Counts summarizes what the pipeline found in one file.
type Counts struct {
	Blocks     int
	Records    int
	Entities   int
	Documented int
	Orphans    int
}

// Event reports progress for a file (or for the whole run when File is empty).
type Event struct {
	File    string
	Stage   Stage
	Status  Status
	Err     error
	Elapsed time.Duration
	// Counts and Cached are set on the final event of a file.
	Counts Counts
	Cached bool
}

// ProgressSink consumes progress events. OnEvent is called from the worker
// goroutines.
type ProgressSink interface {
	OnEvent(Event)
}

// ChannelSink forwards events into a channel.
type ChannelSink struct {
	Ch chan<- Event
}

func (s ChannelSink) OnEvent(evt Event) {
	if s.Ch == nil {
		return
	}
	s.Ch <- evt
}

func (s *Session) emit(ev Event) {
	if s.Progress != nil {
		s.Progress.OnEvent(ev)
	}
}
