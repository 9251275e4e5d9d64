package midi

import (
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/10jackyhu24/Audio2Score/model"
	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

const writeTicksPerQuarter = 960

type timedMessage struct {
	tick uint32
	off  bool
	msg  midi.Message
}

// WriteMidiFile renders segmented notes as a single-track SMF at the
// given tempo. Note-offs sort before note-ons at the same tick so a
// repeated pitch ends before it restarts.
func WriteMidiFile(notes []model.NoteEvent, bpm float64, filepath string) error {
	if bpm <= 0 {
		return fmt.Errorf("%w: bpm %v", model.ErrInvalidInput, bpm)
	}

	clock := smf.MetricTicks(writeTicksPerQuarter)
	ticksAt := func(seconds float64) uint32 {
		return clock.Ticks(bpm, time.Duration(seconds*float64(time.Second)))
	}

	var msgs []timedMessage
	for _, n := range notes {
		msgs = append(msgs, timedMessage{
			tick: ticksAt(n.Start),
			msg:  midi.NoteOn(0, n.Pitch, n.Velocity),
		})
		msgs = append(msgs, timedMessage{
			tick: ticksAt(n.End),
			off:  true,
			msg:  midi.NoteOff(0, n.Pitch),
		})
	}
	sort.SliceStable(msgs, func(i, j int) bool {
		if msgs[i].tick != msgs[j].tick {
			return msgs[i].tick < msgs[j].tick
		}
		return msgs[i].off && !msgs[j].off
	})

	var track smf.Track
	track.Add(0, smf.MetaTempo(bpm))
	var lastTick uint32
	for _, m := range msgs {
		track.Add(m.tick-lastTick, m.msg)
		lastTick = m.tick
	}
	track.Close(0)

	var s smf.SMF
	s.TimeFormat = clock
	s.Tracks = append(s.Tracks, track)

	f, err := os.Create(filepath)
	if err != nil {
		return fmt.Errorf("creating midi file: %w", err)
	}
	defer f.Close()
	if _, err := s.WriteTo(f); err != nil {
		return fmt.Errorf("writing midi file: %w", err)
	}
	return nil
}
