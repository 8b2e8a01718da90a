// Package audio decodes WAV containers into analysis waveforms
package audio

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/go-audio/riff"
	"github.com/go-audio/wav"
	"github.com/killallgit/dialogue-qc/internal/analysis"
)

// WAV format tags
const (
	formatPCM        = 1
	formatIEEEFloat  = 3
	formatExtensible = 0xFFFE
)

// extensibleFmt is the 40-byte WAVE_FORMAT_EXTENSIBLE fmt chunk up to the
// first two bytes of the SubFormat GUID, which carry the real format tag.
type extensibleFmt struct {
	FormatTag     uint16
	Channels      uint16
	SampleRate    uint32
	ByteRate      uint32
	BlockAlign    uint16
	BitsPerSample uint16
	ExtraSize     uint16
	ValidBits     uint16
	ChannelMask   uint32
	SubFormat     uint16
}

const extensibleFmtSize = 40

var (
	// ErrDecode is returned when the container cannot be parsed
	ErrDecode = errors.New("failed to decode audio")

	// ErrUnsupportedFormat is returned for codecs or bit depths we cannot normalise
	ErrUnsupportedFormat = errors.New("unsupported audio format")
)

// Metadata describes the source container
type Metadata struct {
	SampleRate int     `json:"sample_rate"`
	Channels   int     `json:"channels"`
	BitDepth   int     `json:"bit_depth"`
	Format     string  `json:"format"`
	Duration   float64 `json:"duration"` // seconds
	SizeBytes  int64   `json:"size_bytes"`
}

// DecodeFile opens and decodes a WAV file from disk
func DecodeFile(path string) (analysis.Waveform, *Metadata, error) {
	f, err := os.Open(path)
	if err != nil {
		return analysis.Waveform{}, nil, fmt.Errorf("failed to open audio file: %w", err)
	}
	defer f.Close()

	wf, meta, err := Decode(f)
	if err != nil {
		return analysis.Waveform{}, nil, err
	}
	if info, statErr := f.Stat(); statErr == nil {
		meta.SizeBytes = info.Size()
	}
	return wf, meta, nil
}

// DecodeBytes decodes an in-memory WAV payload
func DecodeBytes(data []byte) (analysis.Waveform, *Metadata, error) {
	wf, meta, err := Decode(bytes.NewReader(data))
	if err != nil {
		return analysis.Waveform{}, nil, err
	}
	meta.SizeBytes = int64(len(data))
	return wf, meta, nil
}

// Decode reads a WAV stream, mixes it down to mono and normalises it to [-1, 1].
// Integer PCM is scaled by its full-scale magnitude; float data outside the
// unit range is rescaled to its peak.
func Decode(r io.ReadSeeker) (analysis.Waveform, *Metadata, error) {
	dec := wav.NewDecoder(r)
	if !dec.IsValidFile() {
		if err := dec.Err(); err != nil {
			return analysis.Waveform{}, nil, fmt.Errorf("%w: %v", ErrDecode, err)
		}
		return analysis.Waveform{}, nil, fmt.Errorf("%w: invalid WAV file", ErrDecode)
	}

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return analysis.Waveform{}, nil, fmt.Errorf("%w: reading PCM data: %v", ErrDecode, err)
	}

	channels := int(dec.NumChans)
	bitDepth := int(dec.BitDepth)
	meta := &Metadata{
		SampleRate: int(dec.SampleRate),
		Channels:   channels,
		BitDepth:   bitDepth,
	}

	format := dec.WavAudioFormat
	if format == formatExtensible {
		if format, err = subFormat(r); err != nil {
			return analysis.Waveform{}, nil, err
		}
	}

	var samples []float64
	switch format {
	case formatPCM:
		meta.Format = "pcm"
		samples, err = normalizePCM(buf.Data, bitDepth)
	case formatIEEEFloat:
		meta.Format = "float"
		samples, err = normalizeFloat32(buf.Data, bitDepth)
	default:
		err = fmt.Errorf("%w: wav format tag %d", ErrUnsupportedFormat, format)
	}
	if err != nil {
		return analysis.Waveform{}, nil, err
	}

	mono := analysis.MixDown(samples, channels)
	wf := analysis.Waveform{Samples: mono, SampleRate: meta.SampleRate}
	meta.Duration = wf.Duration()

	return wf, meta, nil
}

// subFormat rewinds r and reads the SubFormat tag out of an extensible fmt
// chunk. The wav decoder skips the extension bytes so they are parsed here.
func subFormat(r io.ReadSeeker) (uint16, error) {
	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return 0, fmt.Errorf("%w: rewinding for fmt chunk: %v", ErrDecode, err)
	}

	p := riff.New(r)
	if err := p.ParseHeaders(); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	for {
		ch, err := p.NextChunk()
		if err != nil {
			return 0, fmt.Errorf("%w: fmt chunk not found: %v", ErrDecode, err)
		}
		if ch.ID != riff.FmtID {
			ch.Done()
			continue
		}
		if ch.Size < extensibleFmtSize {
			return 0, fmt.Errorf("%w: extensible fmt chunk is %d bytes", ErrDecode, ch.Size)
		}

		var hdr extensibleFmt
		if err := ch.ReadLE(&hdr); err != nil {
			return 0, fmt.Errorf("%w: reading extensible fmt chunk: %v", ErrDecode, err)
		}
		return hdr.SubFormat, nil
	}
}

func normalizePCM(data []int, bitDepth int) ([]float64, error) {
	switch bitDepth {
	case 8:
		// 8-bit WAV is unsigned with silence at 128
		centred := make([]int, len(data))
		for i, v := range data {
			centred[i] = v - 128
		}
		return analysis.NormalizeInt(centred, 8), nil
	case 16, 24, 32:
		return analysis.NormalizeInt(data, bitDepth), nil
	default:
		return nil, fmt.Errorf("%w: %d-bit PCM", ErrUnsupportedFormat, bitDepth)
	}
}

// normalizeFloat32 recovers IEEE floats from the raw 32-bit words the decoder
// hands back as ints.
func normalizeFloat32(data []int, bitDepth int) ([]float64, error) {
	if bitDepth != 32 {
		return nil, fmt.Errorf("%w: %d-bit float", ErrUnsupportedFormat, bitDepth)
	}
	out := make([]float64, len(data))
	for i, v := range data {
		f := float64(math.Float32frombits(uint32(int32(v))))
		if math.IsNaN(f) || math.IsInf(f, 0) {
			f = 0
		}
		out[i] = f
	}
	return analysis.NormalizeFloat(out), nil
}
