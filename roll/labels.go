package roll

import (
	"github.com/10jackyhu24/Audio2Score/config"
	"github.com/10jackyhu24/Audio2Score/model"
)

// Labels holds the three sparse annotation channels cut from one
// window's note list.
type Labels struct {
	Notes    Record
	Onsets   Record
	Contours Record
}

func (l Labels) Empty() bool {
	return len(l.Notes.Entries) == 0
}

// LabelsFromNotes rasterizes window-local notes into sparse records.
// Notes channel: every frame the note covers. Onsets channel: the start
// frame only. Contours channel: the center contour bin plus both
// neighbors at half strength, to approximate a smooth pitch trajectory.
//
// Entries are appended note by note, and per frame center before left
// before right, so a later note's smoothing write can overwrite an
// earlier note's direct activation on decode (last write wins). The
// source pipeline has the same overwrite quirk via dict assignment; it
// is preserved here deliberately.
func LabelsFromNotes(notes []model.NoteEvent, cfg config.Config) Labels {
	nFrames := cfg.AnnotFrames()
	notesBins := cfg.NotesBins()
	contourBins := cfg.ContourBins()
	fps := cfg.FramesPerSecond

	l := Labels{
		Notes:    Record{Kind: KindNotes, Frames: int64(nFrames), Bins: int64(notesBins)},
		Onsets:   Record{Kind: KindOnsets, Frames: int64(nFrames), Bins: int64(notesBins)},
		Contours: Record{Kind: KindContours, Frames: int64(nFrames), Bins: int64(contourBins)},
	}

	for _, note := range notes {
		if note.Pitch < cfg.MinPitch || note.Pitch > cfg.MaxPitch {
			continue
		}
		semitone := int(note.Pitch) - int(cfg.MinPitch)
		noteBin := semitone * cfg.NotesBinsPerSemitone
		contourBin := semitone*cfg.ContoursBinsPerSemitone + cfg.ContoursBinsPerSemitone/2
		value := float32(note.Velocity) / 127.0

		startFrame := clampFrame(int(note.Start*fps), nFrames)
		endFrame := clampFrame(int(note.End*fps), nFrames)

		if noteBin < notesBins {
			l.Onsets.Entries = append(l.Onsets.Entries,
				Entry{Frame: int64(startFrame), Bin: int64(noteBin), Value: value})
			for f := startFrame; f <= endFrame; f++ {
				l.Notes.Entries = append(l.Notes.Entries,
					Entry{Frame: int64(f), Bin: int64(noteBin), Value: value})
			}
		}

		if contourBin >= contourBins {
			continue
		}
		for f := startFrame; f <= endFrame; f++ {
			l.Contours.Entries = append(l.Contours.Entries,
				Entry{Frame: int64(f), Bin: int64(contourBin), Value: value})
			if cfg.ContoursBinsPerSemitone != 3 {
				continue
			}
			if contourBin > 0 {
				l.Contours.Entries = append(l.Contours.Entries,
					Entry{Frame: int64(f), Bin: int64(contourBin - 1), Value: value * 0.5})
			}
			if contourBin < contourBins-1 {
				l.Contours.Entries = append(l.Contours.Entries,
					Entry{Frame: int64(f), Bin: int64(contourBin + 1), Value: value * 0.5})
			}
		}
	}

	return l
}

func clampFrame(f, nFrames int) int {
	if f < 0 {
		return 0
	}
	if f > nFrames-1 {
		return nFrames - 1
	}
	return f
}
