package registry

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/formantlabs/formant-core/internal/bus"
	"github.com/formantlabs/formant-core/internal/config"
	"github.com/formantlabs/formant-core/internal/natsserver"
	"github.com/formantlabs/formant-core/internal/protocol"
)

func newLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))
}

func startRegistry(t *testing.T) (*Registry, *bus.Client) {
	t.Helper()
	log := newLogger()

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

	reg, err := NewRegistry(context.Background(), config.NodeConfig{
		ID:                "node-a",
		Role:              "synthesizer",
		HeartbeatInterval: 100,
		HeartbeatTimeout:  500,
		Capabilities:      []config.NodeCapability{{Name: "speech.synthesize", Tier: "balanced"}},
	}, client, log)
	if err != nil {
		t.Fatalf("start registry: %v", err)
	}
	t.Cleanup(reg.Close)
	return reg, client
}

func TestRegistryAnnouncesSelf(t *testing.T) {
	reg, _ := startRegistry(t)

	if !reg.Healthy() {
		t.Fatal("local node should be healthy after announce")
	}
	nodes := reg.Query(WithCapabilityFilter("speech.synthesize"))
	if len(nodes) != 1 || nodes[0].ID != "node-a" {
		t.Fatalf("unexpected nodes: %+v", nodes)
	}
	if len(nodes[0].Voices) == 0 {
		t.Fatal("announcement should carry the voice catalog")
	}
}

func TestRegistryTracksPeers(t *testing.T) {
	reg, client := startRegistry(t)

	announcement := protocol.NodeAnnouncement{
		NodeID:    "node-b",
		Role:      "synthesizer",
		Voices:    []string{"korean"},
		Languages: []string{"ko"},
		Timestamp: time.Now().UTC(),
	}
	payload, err := json.Marshal(announcement)
	if err != nil {
		t.Fatal(err)
	}
	if err := client.Conn().Publish(protocol.SubjectNodeAnnounce, payload); err != nil {
		t.Fatal(err)
	}

	deadline := time.Now().Add(5 * time.Second)
	for {
		nodes := reg.Query(WithVoiceFilter("korean"))
		if len(nodes) == 1 && nodes[0].ID == "node-b" {
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("peer never registered, have %+v", reg.Query(nil))
		}
		time.Sleep(20 * time.Millisecond)
	}
}

func TestRegistryMarksSilentNodesUnhealthy(t *testing.T) {
	reg, _ := startRegistry(t)

	reg.applyAnnouncement(protocol.NodeAnnouncement{
		NodeID:    "node-stale",
		Role:      "synthesizer",
		Timestamp: time.Now().Add(-time.Minute),
	})
	reg.evaluateHealth()

	for _, node := range reg.Query(nil) {
		if node.ID == "node-stale" && node.Healthy {
			t.Fatal("stale node should be unhealthy")
		}
	}
}
