package model

// NoteEvent is one discrete note: produced by MIDI parsing on the label
// path and by the segmenter on the inference path. Value type, never
// mutated after creation.
type NoteEvent struct {
	Pitch    uint8
	Start    float64 // seconds
	End      float64 // seconds, > Start
	Velocity uint8   // 1..127
}

func (n NoteEvent) Duration() float64 {
	return n.End - n.Start
}

// Window is one fixed-length slice of a track's timeline. Audio always
// holds exactly the configured window sample count (zero-padded when the
// source ran out) and Notes are re-based to window-local time.
type Window struct {
	Index       int
	StartSample int
	EndSample   int
	StartTime   float64
	EndTime     float64
	Audio       []float32
	Notes       []NoteEvent
}

// TrackPair is one audio file and its aligned MIDI annotation.
type TrackPair struct {
	TrackID   string
	AudioPath string
	MidiPath  string
}

// RecordOverview is the manifest entry for one persisted sparse record.
type RecordOverview struct {
	Filename    string
	TrackID     string
	WindowIndex int
	StartFrame  int64
	NumNotes    int
}

type TrackStatus string

const (
	StatusOK      TrackStatus = "ok"
	StatusSkipped TrackStatus = "skipped"
	StatusFailed  TrackStatus = "failed"
)

// TrackResult is the per-unit outcome of batch processing. A failing
// track records its reason here instead of aborting the batch.
type TrackResult struct {
	TrackID          string
	Status           TrackStatus
	Reason           string
	WindowsTotal     int
	WindowsWithNotes int
	WindowsWritten   int
}

type BatchStats struct {
	Tracks         int
	Succeeded      int
	Skipped        int
	Failed         int
	WindowsTotal   int
	WindowsWritten int
	Results        []TrackResult
}

func (s *BatchStats) Add(r TrackResult) {
	s.Tracks++
	switch r.Status {
	case StatusOK:
		s.Succeeded++
	case StatusSkipped:
		s.Skipped++
	default:
		s.Failed++
	}
	s.WindowsTotal += r.WindowsTotal
	s.WindowsWritten += r.WindowsWritten
	s.Results = append(s.Results, r)
}
