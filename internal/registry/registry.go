// Package registry tracks synthesizer nodes on the bus: which voices
// and languages each node offers, and whether it is still heartbeating.
package registry

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/nats-io/nats.go"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"

	"github.com/formantlabs/formant-core/internal/bus"
	"github.com/formantlabs/formant-core/internal/config"
	"github.com/formantlabs/formant-core/internal/protocol"
	"github.com/formantlabs/formant-core/internal/voice"
)

// NodeInfo is the registry's view of one node.
type NodeInfo struct {
	ID           string                `json:"id"`
	Role         string                `json:"role"`
	Capabilities []protocol.Capability `json:"capabilities"`
	Voices       []string              `json:"voices,omitempty"`
	Languages    []string              `json:"languages,omitempty"`
	LastSeen     time.Time             `json:"last_seen"`
	Healthy      bool                  `json:"healthy"`
}

// Registry announces the local node, heartbeats it, and mirrors every
// peer it hears about.
type Registry struct {
	cfg        config.NodeConfig
	log        *slog.Logger
	bus        *bus.Client
	mu         sync.RWMutex
	nodes      map[string]*NodeInfo
	heartbeat  *time.Ticker
	cancel     context.CancelFunc
	subs       []*nats.Subscription
	meter      metric.Meter
	nodeGauge  metric.Int64ObservableGauge
	voiceGauge metric.Int64ObservableGauge
}

func NewRegistry(ctx context.Context, cfg config.NodeConfig, busClient *bus.Client, log *slog.Logger) (*Registry, error) {
	ctx, cancel := context.WithCancel(ctx)
	r := &Registry{
		cfg:    cfg,
		log:    log.With(slog.String("component", "node-registry")),
		bus:    busClient,
		nodes:  make(map[string]*NodeInfo),
		meter:  otel.Meter("github.com/formantlabs/formant-core/runtime"),
		cancel: cancel,
	}

	if err := r.initMetrics(); err != nil {
		r.log.Warn("failed to initialize metrics", slog.String("error", err.Error()))
	}

	if err := r.subscribe(); err != nil {
		r.cancel()
		return nil, err
	}

	r.heartbeat = time.NewTicker(time.Duration(cfg.HeartbeatInterval) * time.Millisecond)
	go r.runHeartbeat(ctx)
	go r.monitorHealth(ctx)

	if err := r.announce(); err != nil {
		r.log.Warn("failed to announce node", slog.String("error", err.Error()))
	}

	return r, nil
}

func (r *Registry) Close() {
	if r.cancel != nil {
		r.cancel()
	}
	if r.heartbeat != nil {
		r.heartbeat.Stop()
	}
	for _, sub := range r.subs {
		_ = sub.Drain()
	}
}

func (r *Registry) subscribe() error {
	conn := r.bus.Conn()
	announceSub, err := conn.Subscribe(protocol.SubjectNodeAnnounce, r.handleAnnounce)
	if err != nil {
		return fmt.Errorf("subscribe announce: %w", err)
	}
	r.subs = append(r.subs, announceSub)

	heartbeatSub, err := conn.Subscribe(protocol.SubjectNodeHeartbeat+".*", r.handleHeartbeat)
	if err != nil {
		return fmt.Errorf("subscribe heartbeat: %w", err)
	}
	r.subs = append(r.subs, heartbeatSub)

	return nil
}

func (r *Registry) runHeartbeat(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-r.heartbeat.C:
			if err := r.publishHeartbeat(); err != nil {
				r.log.Warn("failed to publish heartbeat", slog.String("error", err.Error()))
			}
		}
	}
}

func (r *Registry) monitorHealth(ctx context.Context) {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.evaluateHealth()
		}
	}
}

func (r *Registry) announce() error {
	msg := protocol.NodeAnnouncement{
		NodeID:       r.cfg.ID,
		Role:         r.cfg.Role,
		Capabilities: convertCapabilities(r.cfg.Capabilities),
		Voices:       voice.Names(),
		Languages:    []string{"auto", "en", "ko"},
		Timestamp:    time.Now().UTC(),
	}
	payload, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	if err := r.bus.Conn().Publish(protocol.SubjectNodeAnnounce, payload); err != nil {
		return err
	}
	r.applyAnnouncement(msg)
	return nil
}

func (r *Registry) publishHeartbeat() error {
	msg := protocol.Heartbeat{
		NodeID:    r.cfg.ID,
		Timestamp: time.Now().UTC(),
	}
	payload, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	subject := fmt.Sprintf("%s.%s", protocol.SubjectNodeHeartbeat, r.cfg.ID)
	return r.bus.Conn().Publish(subject, payload)
}

func (r *Registry) handleAnnounce(msg *nats.Msg) {
	var announcement protocol.NodeAnnouncement
	if err := json.Unmarshal(msg.Data, &announcement); err != nil {
		r.log.Warn("invalid announce message", slog.String("error", err.Error()))
		return
	}
	if announcement.Timestamp.IsZero() {
		announcement.Timestamp = time.Now().UTC()
	}
	r.applyAnnouncement(announcement)
}

func (r *Registry) handleHeartbeat(msg *nats.Msg) {
	var hb protocol.Heartbeat
	if err := json.Unmarshal(msg.Data, &hb); err != nil {
		r.log.Warn("invalid heartbeat message", slog.String("error", err.Error()))
		return
	}
	if hb.Timestamp.IsZero() {
		hb.Timestamp = time.Now().UTC()
	}
	r.touchNode(hb.NodeID, hb.Timestamp)
}

func (r *Registry) applyAnnouncement(msg protocol.NodeAnnouncement) {
	r.mu.Lock()
	defer r.mu.Unlock()

	node, ok := r.nodes[msg.NodeID]
	if !ok {
		node = &NodeInfo{ID: msg.NodeID}
		r.nodes[msg.NodeID] = node
	}
	if msg.Role != "" {
		node.Role = msg.Role
	}
	if len(msg.Capabilities) > 0 {
		node.Capabilities = msg.Capabilities
	}
	if len(msg.Voices) > 0 {
		node.Voices = msg.Voices
	}
	if len(msg.Languages) > 0 {
		node.Languages = msg.Languages
	}
	node.LastSeen = msg.Timestamp
	node.Healthy = true
}

func (r *Registry) touchNode(nodeID string, timestamp time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()

	node, ok := r.nodes[nodeID]
	if !ok {
		node = &NodeInfo{ID: nodeID}
		r.nodes[nodeID] = node
	}
	node.LastSeen = timestamp
	node.Healthy = true
}

func (r *Registry) evaluateHealth() {
	r.mu.Lock()
	defer r.mu.Unlock()

	timeout := time.Duration(r.cfg.HeartbeatTimeout) * time.Millisecond
	now := time.Now()
	for _, node := range r.nodes {
		if now.Sub(node.LastSeen) > timeout {
			node.Healthy = false
		}
	}
}

func (r *Registry) Healthy() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	node, ok := r.nodes[r.cfg.ID]
	if !ok {
		return false
	}
	return node.Healthy
}

// Query returns a snapshot of nodes passing the filter; a nil filter
// matches everything.
func (r *Registry) Query(filter func(NodeInfo) bool) []NodeInfo {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var results []NodeInfo
	for _, node := range r.nodes {
		snapshot := *node
		if filter == nil || filter(snapshot) {
			results = append(results, snapshot)
		}
	}
	return results
}

func (r *Registry) initMetrics() error {
	if r.meter == nil {
		return nil
	}
	nodeGauge, err := r.meter.Int64ObservableGauge("formant.registry.nodes", metric.WithDescription("Number of known nodes"))
	if err != nil {
		return err
	}
	voiceGauge, err := r.meter.Int64ObservableGauge("formant.registry.voices", metric.WithDescription("Total advertised voices"))
	if err != nil {
		return err
	}
	r.nodeGauge = nodeGauge
	r.voiceGauge = voiceGauge
	_, err = r.meter.RegisterCallback(func(ctx context.Context, obs metric.Observer) error {
		nodes, voices := r.snapshotCounts()
		obs.ObserveInt64(nodeGauge, nodes)
		obs.ObserveInt64(voiceGauge, voices)
		return nil
	}, nodeGauge, voiceGauge)
	return err
}

func (r *Registry) snapshotCounts() (int64, int64) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var nodes int64
	var voices int64
	for _, node := range r.nodes {
		nodes++
		voices += int64(len(node.Voices))
	}
	return nodes, voices
}

func convertCapabilities(source []config.NodeCapability) []protocol.Capability {
	if len(source) == 0 {
		return nil
	}
	result := make([]protocol.Capability, 0, len(source))
	for _, c := range source {
		result = append(result, protocol.Capability{
			Name:       c.Name,
			Tier:       c.Tier,
			Attributes: c.Attributes,
		})
	}
	return result
}

// WithVoiceFilter matches nodes that advertise the named voice.
func WithVoiceFilter(name string) func(NodeInfo) bool {
	return func(node NodeInfo) bool {
		for _, v := range node.Voices {
			if v == name {
				return true
			}
		}
		return false
	}
}

// WithCapabilityFilter matches nodes that advertise the named capability.
func WithCapabilityFilter(name string) func(NodeInfo) bool {
	return func(node NodeInfo) bool {
		for _, c := range node.Capabilities {
			if c.Name == name {
				return true
			}
		}
		return false
	}
}
