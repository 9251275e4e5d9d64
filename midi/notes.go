package midi

import (
	"sort"

	"github.com/10jackyhu24/Audio2Score/model"
	"gitlab.com/gomidi/midi/v2/smf"
)

type pendingNote struct {
	startMicros int64
	velocity    uint8
}

// NoteEvents flattens an SMF into note events in absolute seconds,
// keeping only pitches inside [minPitch, maxPitch]. Note-ons with
// velocity zero count as note-offs; a note-off without a matching
// note-on, and notes never released before end of file, are dropped.
func NoteEvents(s *smf.SMF, minPitch, maxPitch uint8) []model.NoteEvent {
	var notes []model.NoteEvent

	for _, track := range s.Tracks {
		pressed := make(map[uint8]pendingNote)
		var absTicks int64
		for _, event := range track {
			absTicks += int64(event.Delta)
			var channel uint8
			var key uint8
			var velocity uint8
			switch {
			case event.Message.GetNoteStart(&channel, &key, &velocity):
				pressed[key] = pendingNote{startMicros: s.TimeAt(absTicks), velocity: velocity}
			case event.Message.GetNoteEnd(&channel, &key):
				p, ok := pressed[key]
				if !ok {
					continue
				}
				delete(pressed, key)
				if key < minPitch || key > maxPitch {
					continue
				}
				endMicros := s.TimeAt(absTicks)
				if endMicros <= p.startMicros {
					continue
				}
				notes = append(notes, model.NoteEvent{
					Pitch:    key,
					Start:    float64(p.startMicros) / 1e6,
					End:      float64(endMicros) / 1e6,
					Velocity: p.velocity,
				})
			}
		}
	}

	sort.Slice(notes, func(i, j int) bool {
		if notes[i].Start != notes[j].Start {
			return notes[i].Start < notes[j].Start
		}
		return notes[i].Pitch < notes[j].Pitch
	})
	return notes
}
