package protocol

import (
	"time"

	"github.com/formantlabs/formant-core/internal/voice"
)

// SpeechRequest asks a synthesizer node to render text to audio.
type SpeechRequest struct {
	SessionID string           `json:"session_id"`
	TraceID   string           `json:"trace_id,omitempty"`
	Text      string           `json:"text"`
	Language  string           `json:"language,omitempty"`
	Voice     string           `json:"voice,omitempty"`
	Overrides *voice.Overrides `json:"overrides,omitempty"`
	Target    string           `json:"target,omitempty"`
}

// AudioChunk carries one PCM chunk of a rendered utterance.
type AudioChunk struct {
	SessionID  string `json:"session_id"`
	Target     string `json:"target,omitempty"`
	SampleRate int    `json:"sample_rate"`
	Channels   int    `json:"channels"`
	Sequence   int    `json:"sequence"`
	PCM        []byte `json:"pcm"`
	Final      bool   `json:"final"`
}

// SpeechStatus marks the end of an utterance, successful or not.
type SpeechStatus struct {
	SessionID string    `json:"session_id"`
	Target    string    `json:"target,omitempty"`
	Completed bool      `json:"completed"`
	Error     string    `json:"error,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// NodeAnnouncement is published when a node joins the mesh or its
// capability set changes.
type NodeAnnouncement struct {
	NodeID       string       `json:"node_id"`
	Role         string       `json:"role"`
	Capabilities []Capability `json:"capabilities"`
	Voices       []string     `json:"voices,omitempty"`
	Languages    []string     `json:"languages,omitempty"`
	Timestamp    time.Time    `json:"timestamp"`
}

// Capability describes one advertised node capability.
type Capability struct {
	Name       string            `json:"name"`
	Tier       string            `json:"tier,omitempty"`
	Attributes map[string]string `json:"attributes,omitempty"`
}

// Heartbeat is published periodically by every live node.
type Heartbeat struct {
	NodeID    string    `json:"node_id"`
	Timestamp time.Time `json:"timestamp"`
}

const (
	SubjectSpeechSynthesize = "speech.synthesize"
	SubjectSpeechAudio      = "speech.audio"
	SubjectSpeechDone       = "speech.done"
	SubjectNodeAnnounce     = "node.announce"
	SubjectNodeHeartbeat    = "node.heartbeat"
)
