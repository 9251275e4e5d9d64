// Package record persists one window's sparse annotation channels as a
// single binary file: a 4-byte little-endian header length, a
// gob-encoded header, then the packed entries of the notes, onsets and
// contours channels in that order. Each entry is 20 bytes: frame int64,
// bin int64, value float32, little-endian.
package record

import (
	"bytes"
	"encoding/binary"
	"encoding/gob"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/10jackyhu24/Audio2Score/roll"
)

// EntrySize is the packed byte width of one sparse entry.
const EntrySize = 20

type ChannelHeader struct {
	Count  uint32
	Frames int64
	Bins   int64
}

type Header struct {
	FileID      string
	Source      string
	TrackID     string
	WindowIndex int
	StartFrame  int64
	Notes       ChannelHeader
	Onsets      ChannelHeader
	Contours    ChannelHeader
}

func channelHeader(r roll.Record) ChannelHeader {
	return ChannelHeader{
		Count:  uint32(len(r.Entries)),
		Frames: r.Frames,
		Bins:   r.Bins,
	}
}

func writeEntries(buf *bytes.Buffer, r roll.Record) error {
	for _, e := range r.Entries {
		if err := binary.Write(buf, binary.LittleEndian, e.Frame); err != nil {
			return err
		}
		if err := binary.Write(buf, binary.LittleEndian, e.Bin); err != nil {
			return err
		}
		if err := binary.Write(buf, binary.LittleEndian, e.Value); err != nil {
			return err
		}
	}
	return nil
}

// Write persists one window's labels under the given header. The
// header's channel sections are filled in from the labels themselves.
func Write(path string, h Header, labels roll.Labels) error {
	h.Notes = channelHeader(labels.Notes)
	h.Onsets = channelHeader(labels.Onsets)
	h.Contours = channelHeader(labels.Contours)

	dataBuf := new(bytes.Buffer)
	for _, ch := range []roll.Record{labels.Notes, labels.Onsets, labels.Contours} {
		if err := writeEntries(dataBuf, ch); err != nil {
			return fmt.Errorf("packing %v entries: %w", ch.Kind, err)
		}
	}

	headerBuf := new(bytes.Buffer)
	if err := gob.NewEncoder(headerBuf).Encode(h); err != nil {
		return fmt.Errorf("encoding record header: %w", err)
	}

	sizeBuf := new(bytes.Buffer)
	binary.Write(sizeBuf, binary.LittleEndian, uint32(headerBuf.Len()))

	var finalBytes []byte
	finalBytes = append(finalBytes, sizeBuf.Bytes()...)
	finalBytes = append(finalBytes, headerBuf.Bytes()...)
	finalBytes = append(finalBytes, dataBuf.Bytes()...)
	return os.WriteFile(path, finalBytes, 0777)
}

func readChannel(r io.Reader, kind roll.Kind, ch ChannelHeader) (roll.Record, error) {
	rec := roll.Record{Kind: kind, Frames: ch.Frames, Bins: ch.Bins}
	buf := make([]byte, EntrySize)
	for i := uint32(0); i < ch.Count; i++ {
		if _, err := io.ReadFull(r, buf); err != nil {
			return roll.Record{}, fmt.Errorf("reading %v entry %v: %w", kind, i, err)
		}
		rec.Entries = append(rec.Entries, roll.Entry{
			Frame: int64(binary.LittleEndian.Uint64(buf[0:8])),
			Bin:   int64(binary.LittleEndian.Uint64(buf[8:16])),
			Value: math.Float32frombits(binary.LittleEndian.Uint32(buf[16:20])),
		})
	}
	return rec, nil
}

// Read loads a record file back into its header and channels.
func Read(path string) (Header, roll.Labels, error) {
	var h Header
	var labels roll.Labels

	f, err := os.Open(path)
	if err != nil {
		return h, labels, fmt.Errorf("opening record: %w", err)
	}
	defer f.Close()

	sizeBytes := make([]byte, 4)
	if _, err := io.ReadFull(f, sizeBytes); err != nil {
		return h, labels, fmt.Errorf("reading header length: %w", err)
	}
	headerLength := binary.LittleEndian.Uint32(sizeBytes)

	headerBytes := make([]byte, headerLength)
	if _, err := io.ReadFull(f, headerBytes); err != nil {
		return h, labels, fmt.Errorf("reading header: %w", err)
	}
	if err := gob.NewDecoder(bytes.NewReader(headerBytes)).Decode(&h); err != nil {
		return h, labels, fmt.Errorf("decoding header: %w", err)
	}

	if labels.Notes, err = readChannel(f, roll.KindNotes, h.Notes); err != nil {
		return h, labels, err
	}
	if labels.Onsets, err = readChannel(f, roll.KindOnsets, h.Onsets); err != nil {
		return h, labels, err
	}
	if labels.Contours, err = readChannel(f, roll.KindContours, h.Contours); err != nil {
		return h, labels, err
	}
	return h, labels, nil
}

// ReadHeader loads only the gob header, for reporting over large
// record sets without touching the packed data.
func ReadHeader(path string) (Header, error) {
	var h Header
	f, err := os.Open(path)
	if err != nil {
		return h, fmt.Errorf("opening record: %w", err)
	}
	defer f.Close()

	sizeBytes := make([]byte, 4)
	if _, err := io.ReadFull(f, sizeBytes); err != nil {
		return h, fmt.Errorf("reading header length: %w", err)
	}
	headerBytes := make([]byte, binary.LittleEndian.Uint32(sizeBytes))
	if _, err := io.ReadFull(f, headerBytes); err != nil {
		return h, fmt.Errorf("reading header: %w", err)
	}
	if err := gob.NewDecoder(bytes.NewReader(headerBytes)).Decode(&h); err != nil {
		return h, fmt.Errorf("decoding header: %w", err)
	}
	return h, nil
}
