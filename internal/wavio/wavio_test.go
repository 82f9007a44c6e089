package wavio

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-audio/wav"
)

func TestPCM16RoundTrip(t *testing.T) {
	in := []float64{0, 0.5, -0.5, 1, -1, 0.001}
	out := FromPCM16(ToPCM16(in))
	if len(out) != len(in) {
		t.Fatalf("length %d, want %d", len(out), len(in))
	}
	for i := range in {
		want := in[i]
		if want < -1 {
			want = -1
		}
		if math.Abs(out[i]-want) > 1.0/32767+1e-9 {
			t.Errorf("sample %d: got %v, want ~%v", i, out[i], want)
		}
	}
}

func TestToPCM16Clamps(t *testing.T) {
	data := ToPCM16([]float64{2, -2})
	got := FromPCM16(data)
	if got[0] != 1 {
		t.Errorf("positive overflow clamped to %v, want 1", got[0])
	}
	if got[1] > -0.999 {
		t.Errorf("negative overflow clamped to %v, want about -1", got[1])
	}
}

func TestWriteFile(t *testing.T) {
	samples := make([]float64, 2205)
	for i := range samples {
		samples[i] = 0.8 * math.Sin(2*math.Pi*440*float64(i)/22050)
	}
	path := filepath.Join(t.TempDir(), "tone.wav")
	if err := WriteFile(path, samples, 22050); err != nil {
		t.Fatal(err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	dec := wav.NewDecoder(f)
	buf, err := dec.FullPCMBuffer()
	if err != nil {
		t.Fatal(err)
	}
	if !dec.IsValidFile() {
		t.Fatal("decoder rejected the file")
	}
	if dec.SampleRate != 22050 || dec.NumChans != 1 || dec.BitDepth != 16 {
		t.Fatalf("format %d Hz %d ch %d bit", dec.SampleRate, dec.NumChans, dec.BitDepth)
	}
	if len(buf.Data) != len(samples) {
		t.Fatalf("decoded %d samples, want %d", len(buf.Data), len(samples))
	}
	if got := float64(buf.Data[550]) / 32767; math.Abs(got-samples[550]) > 0.001 {
		t.Errorf("sample 550 round-tripped to %v, want %v", got, samples[550])
	}
}

func TestWriteFileBadPath(t *testing.T) {
	err := WriteFile(filepath.Join(t.TempDir(), "missing", "tone.wav"), []float64{0}, 22050)
	if err == nil {
		t.Fatal("expected error for unwritable path")
	}
}
