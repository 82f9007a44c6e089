package speech

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/formantlabs/formant-core/internal/bus"
	"github.com/formantlabs/formant-core/internal/config"
	"github.com/formantlabs/formant-core/internal/natsserver"
	"github.com/formantlabs/formant-core/internal/protocol"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))
}

func startBus(t *testing.T) *bus.Client {
	t.Helper()
	log := newTestLogger()

	srv, err := natsserver.Start(config.BusConfig{Embedded: true, Port: -1}, log)
	if err != nil {
		t.Fatalf("start embedded server: %v", err)
	}
	t.Cleanup(srv.Shutdown)

	client, err := bus.Connect(context.Background(), config.BusConfig{
		Servers:        []string{srv.ClientURL()},
		ConnectTimeout: 2000,
	}, log)
	if err != nil {
		t.Fatalf("connect bus: %v", err)
	}
	t.Cleanup(client.Close)
	return client
}

func TestServiceRendersRequestOverBus(t *testing.T) {
	client := startBus(t)

	cfg := testSpeechConfig()
	synth, err := NewFormantSynth(cfg)
	if err != nil {
		t.Fatal(err)
	}
	svc := NewService(context.Background(), cfg, client, synth, nil, newTestLogger())
	if err := svc.Start(); err != nil {
		t.Fatalf("start service: %v", err)
	}
	t.Cleanup(svc.Close)

	audio := make(chan protocol.AudioChunk, 64)
	audioSub, err := client.Conn().Subscribe(protocol.SubjectSpeechAudio, func(msg *nats.Msg) {
		var chunk protocol.AudioChunk
		if err := json.Unmarshal(msg.Data, &chunk); err == nil {
			audio <- chunk
		}
	})
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = audioSub.Drain() })

	done := make(chan protocol.SpeechStatus, 1)
	doneSub, err := client.Conn().Subscribe(protocol.SubjectSpeechDone, func(msg *nats.Msg) {
		var status protocol.SpeechStatus
		if err := json.Unmarshal(msg.Data, &status); err == nil {
			done <- status
		}
	})
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = doneSub.Drain() })

	req := protocol.SpeechRequest{SessionID: "bus-1", Text: "hello", Language: "en"}
	payload, err := json.Marshal(req)
	if err != nil {
		t.Fatal(err)
	}
	if err := client.Conn().Publish(protocol.SubjectSpeechSynthesize, payload); err != nil {
		t.Fatal(err)
	}

	deadline := time.After(15 * time.Second)
	var sawFinal bool
	var samples int
	for !sawFinal {
		select {
		case chunk := <-audio:
			if chunk.SessionID != "bus-1" {
				t.Fatalf("unexpected session %q", chunk.SessionID)
			}
			samples += len(chunk.PCM) / 2
			sawFinal = chunk.Final
		case <-deadline:
			t.Fatal("timed out waiting for audio")
		}
	}
	if samples == 0 {
		t.Fatal("no audio samples received")
	}

	select {
	case status := <-done:
		if !status.Completed || status.Error != "" {
			t.Fatalf("unexpected status: %+v", status)
		}
		if status.SessionID != "bus-1" {
			t.Fatalf("status for wrong session %q", status.SessionID)
		}
	case <-deadline:
		t.Fatal("timed out waiting for completion status")
	}
}

func TestServiceDisabledDoesNotSubscribe(t *testing.T) {
	client := startBus(t)
	cfg := testSpeechConfig()
	cfg.Enabled = false

	svc := NewService(context.Background(), cfg, client, NewMockSynth(22050, 1), nil, newTestLogger())
	if err := svc.Start(); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(svc.Close)

	if !svc.Healthy() {
		t.Fatal("disabled service should report healthy")
	}
	if svc.sub != nil {
		t.Fatal("disabled service must not subscribe")
	}
}
