// Package audio reconstructs playable PCM16 sample buffers from the base64
// fragments carried by streaming audio delta events.
package audio

import (
	"encoding/base64"
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/yashrif/openai-log-visualizer-custom/internal/parse"
)

// DefaultSampleRate is the realtime API's PCM16 output rate.
const DefaultSampleRate = 24000

// ErrNoAudioData means a delta run held no decodable audio: every fragment
// failed or the run was empty.
var ErrNoAudioData = errors.New("no audio data")

// Decode turns one base64 chunk of little-endian PCM16 into float samples
// normalized to [-1, 1].
func Decode(b64 string) ([]float32, error) {
	raw, err := base64.StdEncoding.DecodeString(b64)
	if err != nil {
		return nil, fmt.Errorf("decode base64: %w", err)
	}
	if len(raw)%2 != 0 {
		return nil, fmt.Errorf("pcm16 chunk has odd byte length %d", len(raw))
	}

	samples := make([]float32, len(raw)/2)
	for i := range samples {
		s := int16(binary.LittleEndian.Uint16(raw[i*2:]))
		samples[i] = float32(s) / 32768
	}
	return samples, nil
}

// Combine concatenates sample buffers in input order. Combining nothing
// yields an empty buffer; combining one buffer returns it unchanged.
func Combine(buffers ...[]float32) []float32 {
	switch len(buffers) {
	case 0:
		return []float32{}
	case 1:
		return buffers[0]
	}

	total := 0
	for _, b := range buffers {
		total += len(b)
	}
	out := make([]float32, 0, total)
	for _, b := range buffers {
		out = append(out, b...)
	}
	return out
}

// Duration returns the playback length in seconds of a sample buffer.
func Duration(samples []float32, sampleRate int) float64 {
	if sampleRate <= 0 {
		sampleRate = DefaultSampleRate
	}
	return float64(len(samples)) / float64(sampleRate)
}

// ChunkError records one fragment that failed to decode within a run.
// The fragment is skipped and the rest of the run is still combined.
type ChunkError struct {
	LineNumber int
	Err        error
}

func (e ChunkError) Error() string {
	return fmt.Sprintf("line %d: %v", e.LineNumber, e.Err)
}

// ExtractFromRun decodes every non-empty audio delta payload in the run and
// combines the successes. Fragments that fail to decode are reported in the
// returned ChunkError slice. When nothing decodes, the error is
// ErrNoAudioData.
func ExtractFromRun(events []*parse.DecodedLine) ([]float32, []ChunkError, error) {
	var buffers [][]float32
	var skipped []ChunkError

	for _, line := range events {
		b64 := line.Event.Str("delta")
		if b64 == "" {
			continue
		}
		samples, err := Decode(b64)
		if err != nil {
			skipped = append(skipped, ChunkError{LineNumber: line.LineNumber, Err: err})
			continue
		}
		buffers = append(buffers, samples)
	}

	if len(buffers) == 0 {
		return nil, skipped, ErrNoAudioData
	}
	return Combine(buffers...), skipped, nil
}
