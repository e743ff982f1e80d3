// Package wavio is the audio container collaborator: it moves flat PCM16
// sample buffers in and out of WAV files so the engine never has to know
// about container headers. Inputs at other bit depths are normalized to
// int16 on load; output is always written as 16-bit PCM, since anything else
// would destroy the embedded LSBs.
package wavio

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// Clip is a flat sequence of 16-bit samples plus the geometry needed to
// write them back out. Channels are interleaved in Samples.
type Clip struct {
	Samples    []int16
	SampleRate int
	Channels   int
}

// Frames returns the number of per-channel sample frames.
func (c *Clip) Frames() int {
	if c.Channels == 0 {
		return 0
	}
	return len(c.Samples) / c.Channels
}

// Duration returns the clip length as playback time.
func (c *Clip) Duration() time.Duration {
	if c.SampleRate == 0 {
		return 0
	}
	return time.Duration(c.Frames()) * time.Second / time.Duration(c.SampleRate)
}

// Decode reads a WAV stream into a Clip, converting to int16 if the source
// uses another bit depth.
func Decode(r io.ReadSeeker) (*Clip, error) {
	dec := wav.NewDecoder(r)
	if !dec.IsValidFile() {
		return nil, errors.New("not a valid WAV file")
	}

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to decode WAV data: %w", err)
	}
	if buf.Format == nil || buf.Format.NumChannels == 0 {
		return nil, errors.New("WAV stream carries no format information")
	}

	samples := make([]int16, len(buf.Data))
	for i, v := range buf.Data {
		samples[i] = toInt16(v, int(dec.BitDepth))
	}

	return &Clip{
		Samples:    samples,
		SampleRate: buf.Format.SampleRate,
		Channels:   buf.Format.NumChannels,
	}, nil
}

// Encode writes a Clip as 16-bit PCM WAV. wav.Encoder patches the RIFF
// sizes on Close, hence the io.WriteSeeker.
func Encode(w io.WriteSeeker, clip *Clip) error {
	if clip.Channels < 1 {
		return fmt.Errorf("invalid channel count: %d", clip.Channels)
	}
	if clip.SampleRate < 1 {
		return fmt.Errorf("invalid sample rate: %d", clip.SampleRate)
	}

	enc := wav.NewEncoder(w, clip.SampleRate, 16, clip.Channels, 1)

	data := make([]int, len(clip.Samples))
	for i, s := range clip.Samples {
		data[i] = int(s)
	}

	buf := &audio.IntBuffer{
		Format: &audio.Format{
			NumChannels: clip.Channels,
			SampleRate:  clip.SampleRate,
		},
		Data:           data,
		SourceBitDepth: 16,
	}

	if err := enc.Write(buf); err != nil {
		return fmt.Errorf("failed to write WAV data: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("failed to finalize WAV stream: %w", err)
	}
	return nil
}

// EncodeBytes renders a Clip into an in-memory WAV file.
func EncodeBytes(clip *Clip) ([]byte, error) {
	var sb seekBuffer
	if err := Encode(&sb, clip); err != nil {
		return nil, err
	}
	return sb.Bytes(), nil
}

// ReadFile loads a WAV file from disk.
func ReadFile(path string) (*Clip, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open WAV file: %w", err)
	}
	defer f.Close()

	clip, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return clip, nil
}

// WriteFile writes a Clip to disk as 16-bit PCM WAV.
func WriteFile(path string, clip *Clip) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create WAV file: %w", err)
	}

	if err := Encode(f, clip); err != nil {
		f.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return f.Close()
}

// toInt16 normalizes a sample decoded at the given bit depth. 8-bit WAV is
// unsigned and recentered; wider formats keep their top 16 bits.
func toInt16(v, bitDepth int) int16 {
	switch bitDepth {
	case 8:
		return int16((v - 128) * 256)
	case 16:
		return int16(v)
	case 24:
		return int16(v >> 8)
	case 32:
		return int16(v >> 16)
	default:
		return int16(v)
	}
}
