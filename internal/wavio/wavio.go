// Package wavio converts float sample buffers to 16-bit PCM and writes
// standard RIFF/WAVE files.
package wavio

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

const bitDepth = 16

// ToPCM16 converts samples in [-1, 1] to little-endian signed 16-bit
// bytes. Out-of-range values are clamped.
func ToPCM16(samples []float64) []byte {
	out := make([]byte, len(samples)*2)
	for i, v := range samples {
		binary.LittleEndian.PutUint16(out[i*2:], uint16(clampToInt16(v)))
	}
	return out
}

// FromPCM16 is the inverse of ToPCM16. Trailing odd bytes are ignored.
func FromPCM16(data []byte) []float64 {
	out := make([]float64, len(data)/2)
	for i := range out {
		out[i] = float64(int16(binary.LittleEndian.Uint16(data[i*2:]))) / 32767.0
	}
	return out
}

// Encode writes samples as mono 16-bit PCM WAV. The writer must seek
// because the RIFF header is patched after the data chunk is known.
func Encode(ws io.WriteSeeker, samples []float64, sampleRate int) error {
	enc := wav.NewEncoder(ws, sampleRate, bitDepth, 1, 1)
	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: 1, SampleRate: sampleRate},
		SourceBitDepth: bitDepth,
		Data:           make([]int, len(samples)),
	}
	for i, v := range samples {
		buf.Data[i] = int(clampToInt16(v))
	}
	if err := enc.Write(buf); err != nil {
		return fmt.Errorf("write wav data: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("finalize wav: %w", err)
	}
	return nil
}

// WriteFile renders samples to a WAV file at path.
func WriteFile(path string, samples []float64, sampleRate int) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := Encode(f, samples, sampleRate); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}

func clampToInt16(v float64) int16 {
	scaled := v * 32767
	if scaled > 32767 {
		return 32767
	}
	if scaled < -32768 {
		return -32768
	}
	return int16(math.Round(scaled))
}
