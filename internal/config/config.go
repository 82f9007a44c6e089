package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/formantlabs/formant-core/internal/voice"
)

type TelemetryConfig struct {
	LogLevel       string `yaml:"log_level"`
	OTLPEndpoint   string `yaml:"otlp_endpoint"`
	OTLPInsecure   bool   `yaml:"otlp_insecure"`
	PrometheusBind string `yaml:"prometheus_bind"`
}

type HTTPConfig struct {
	Bind string `yaml:"bind"`
	Port int    `yaml:"port"`
}

type Config struct {
	RuntimeName string          `yaml:"runtime_name"`
	Environment string          `yaml:"environment"`
	HTTP        HTTPConfig      `yaml:"http"`
	Telemetry   TelemetryConfig `yaml:"telemetry"`
	Bus         BusConfig       `yaml:"bus"`
	Node        NodeConfig      `yaml:"node"`
	History     HistoryConfig   `yaml:"history"`
	Speech      SpeechConfig    `yaml:"speech"`
}

type BusConfig struct {
	Embedded       bool     `yaml:"embedded"`
	Port           int      `yaml:"port"`
	Servers        []string `yaml:"servers"`
	Username       string   `yaml:"username"`
	Password       string   `yaml:"password"`
	Token          string   `yaml:"token"`
	TLSInsecure    bool     `yaml:"tls_insecure"`
	ConnectTimeout int      `yaml:"connect_timeout_ms"`
}

type NodeConfig struct {
	ID                string           `yaml:"id"`
	Role              string           `yaml:"role"`
	HeartbeatInterval int              `yaml:"heartbeat_interval_ms"`
	HeartbeatTimeout  int              `yaml:"heartbeat_timeout_ms"`
	Capabilities      []NodeCapability `yaml:"capabilities"`
}

type NodeCapability struct {
	Name       string            `yaml:"name"`
	Tier       string            `yaml:"tier"`
	Attributes map[string]string `yaml:"attributes"`
}

type HistoryConfig struct {
	Path          string `yaml:"path"`
	RetentionMode string `yaml:"retention_mode"`
	RetentionDays int    `yaml:"retention_days"`
	MaxUtterances int    `yaml:"max_utterances"`
	VacuumOnStart bool   `yaml:"vacuum_on_start"`
}

type SpeechConfig struct {
	Enabled         bool   `yaml:"enabled"`
	Mode            string `yaml:"mode"` // formant, mock, exec
	Command         string `yaml:"command"`
	Voice           string `yaml:"voice"`
	Language        string `yaml:"language"`
	SampleRate      int    `yaml:"sample_rate"`
	Channels        int    `yaml:"channels"`
	ChunkDurationMS int    `yaml:"chunk_duration_ms"`
	Seed            int64  `yaml:"seed"`
}

func Default() Config {
	return Config{
		RuntimeName: "formant-runtime",
		Environment: "development",
		HTTP: HTTPConfig{
			Bind: "0.0.0.0",
			Port: 8080,
		},
		Telemetry: TelemetryConfig{
			LogLevel:       "info",
			OTLPEndpoint:   "",
			OTLPInsecure:   true,
			PrometheusBind: ":9091",
		},
		Bus: BusConfig{
			Embedded:       true,
			Port:           4222,
			Servers:        []string{"nats://localhost:4222"},
			ConnectTimeout: 2000,
		},
		Node: NodeConfig{
			ID:                "formant-node-1",
			Role:              "synthesizer",
			HeartbeatInterval: 2000,
			HeartbeatTimeout:  6000,
			Capabilities: []NodeCapability{
				{Name: "speech.synthesize", Tier: "balanced", Attributes: map[string]string{"sample_rate": "22050"}},
			},
		},
		History: HistoryConfig{
			Path:          "./data/formant-history.db",
			RetentionMode: "session",
			RetentionDays: 30,
			MaxUtterances: 10000,
		},
		Speech: SpeechConfig{
			Enabled:         true,
			Mode:            "formant",
			Voice:           voice.DefaultName,
			Language:        "auto",
			SampleRate:      22050,
			Channels:        1,
			ChunkDurationMS: 400,
		},
	}
}

func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				return cfg, fmt.Errorf("config file not found: %w", err)
			}
			return cfg, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	applyEnvOverrides(&cfg)
	if err := validate(cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	overrideString(&cfg.RuntimeName, "FORMANT_RUNTIME_NAME")
	overrideString(&cfg.Environment, "FORMANT_RUNTIME_ENVIRONMENT")
	overrideString(&cfg.HTTP.Bind, "FORMANT_HTTP_BIND")
	overrideInt(&cfg.HTTP.Port, "FORMANT_HTTP_PORT")
	overrideString(&cfg.Telemetry.LogLevel, "FORMANT_TELEMETRY_LOG_LEVEL")
	overrideString(&cfg.Telemetry.OTLPEndpoint, "FORMANT_TELEMETRY_OTLP_ENDPOINT")
	overrideBool(&cfg.Telemetry.OTLPInsecure, "FORMANT_TELEMETRY_OTLP_INSECURE")
	overrideString(&cfg.Telemetry.PrometheusBind, "FORMANT_TELEMETRY_PROMETHEUS_BIND")
	overrideBool(&cfg.Bus.Embedded, "FORMANT_BUS_EMBEDDED")
	overrideInt(&cfg.Bus.Port, "FORMANT_BUS_PORT")
	overrideStringSlice(&cfg.Bus.Servers, "FORMANT_BUS_SERVERS")
	overrideString(&cfg.Bus.Username, "FORMANT_BUS_USERNAME")
	overrideString(&cfg.Bus.Password, "FORMANT_BUS_PASSWORD")
	overrideString(&cfg.Bus.Token, "FORMANT_BUS_TOKEN")
	overrideBool(&cfg.Bus.TLSInsecure, "FORMANT_BUS_TLS_INSECURE")
	overrideInt(&cfg.Bus.ConnectTimeout, "FORMANT_BUS_CONNECT_TIMEOUT_MS")
	overrideString(&cfg.Node.ID, "FORMANT_NODE_ID")
	overrideString(&cfg.Node.Role, "FORMANT_NODE_ROLE")
	overrideInt(&cfg.Node.HeartbeatInterval, "FORMANT_NODE_HEARTBEAT_INTERVAL_MS")
	overrideInt(&cfg.Node.HeartbeatTimeout, "FORMANT_NODE_HEARTBEAT_TIMEOUT_MS")
	overrideString(&cfg.History.Path, "FORMANT_HISTORY_PATH")
	overrideString(&cfg.History.RetentionMode, "FORMANT_HISTORY_RETENTION_MODE")
	overrideInt(&cfg.History.RetentionDays, "FORMANT_HISTORY_RETENTION_DAYS")
	overrideInt(&cfg.History.MaxUtterances, "FORMANT_HISTORY_MAX_UTTERANCES")
	overrideBool(&cfg.History.VacuumOnStart, "FORMANT_HISTORY_VACUUM_ON_START")
	overrideBool(&cfg.Speech.Enabled, "FORMANT_SPEECH_ENABLED")
	overrideString(&cfg.Speech.Mode, "FORMANT_SPEECH_MODE")
	overrideString(&cfg.Speech.Command, "FORMANT_SPEECH_COMMAND")
	overrideString(&cfg.Speech.Voice, "FORMANT_SPEECH_VOICE")
	overrideString(&cfg.Speech.Language, "FORMANT_SPEECH_LANGUAGE")
	overrideInt(&cfg.Speech.SampleRate, "FORMANT_SPEECH_SAMPLE_RATE")
	overrideInt(&cfg.Speech.Channels, "FORMANT_SPEECH_CHANNELS")
	overrideInt(&cfg.Speech.ChunkDurationMS, "FORMANT_SPEECH_CHUNK_DURATION_MS")
	overrideInt64(&cfg.Speech.Seed, "FORMANT_SPEECH_SEED")
}

func overrideString(target *string, envKey string) {
	if value, ok := os.LookupEnv(envKey); ok && strings.TrimSpace(value) != "" {
		*target = value
	}
}

func overrideInt(target *int, envKey string) {
	if value, ok := os.LookupEnv(envKey); ok {
		if parsed, err := strconv.Atoi(value); err == nil {
			*target = parsed
		}
	}
}

func overrideInt64(target *int64, envKey string) {
	if value, ok := os.LookupEnv(envKey); ok {
		if parsed, err := strconv.ParseInt(value, 10, 64); err == nil {
			*target = parsed
		}
	}
}

func overrideBool(target *bool, envKey string) {
	if value, ok := os.LookupEnv(envKey); ok {
		if parsed, err := strconv.ParseBool(value); err == nil {
			*target = parsed
		}
	}
}

func overrideStringSlice(target *[]string, envKey string) {
	if value, ok := os.LookupEnv(envKey); ok {
		parts := strings.Split(value, ",")
		var trimmed []string
		for _, p := range parts {
			if s := strings.TrimSpace(p); s != "" {
				trimmed = append(trimmed, s)
			}
		}
		if len(trimmed) > 0 {
			*target = trimmed
		}
	}
}

func validate(cfg Config) error {
	if cfg.RuntimeName == "" {
		return errors.New("runtime_name must not be empty")
	}
	if cfg.HTTP.Port <= 0 || cfg.HTTP.Port > 65535 {
		return errors.New("http.port must be between 1 and 65535")
	}
	if cfg.Bus.Embedded {
		if cfg.Bus.Port <= 0 || cfg.Bus.Port > 65535 {
			return errors.New("bus.port must be between 1 and 65535 when embedded mode is enabled")
		}
	} else {
		if len(cfg.Bus.Servers) == 0 {
			return errors.New("bus.servers must not be empty when embedded mode is disabled")
		}
	}
	if cfg.Node.ID == "" {
		return errors.New("node.id must not be empty")
	}
	if cfg.Node.HeartbeatInterval <= 0 {
		return errors.New("node.heartbeat_interval_ms must be positive")
	}
	if cfg.Node.HeartbeatTimeout <= cfg.Node.HeartbeatInterval {
		return errors.New("node.heartbeat_timeout_ms must be greater than heartbeat interval")
	}
	if len(cfg.Node.Capabilities) == 0 {
		return errors.New("node.capabilities must not be empty")
	}
	if cfg.History.Path == "" {
		return errors.New("history.path must not be empty")
	}
	switch cfg.History.RetentionMode {
	case "ephemeral", "session", "persistent":
		// ok
	default:
		return errors.New("history.retention_mode must be one of ephemeral|session|persistent")
	}
	if cfg.History.RetentionDays < 0 {
		return errors.New("history.retention_days must be >= 0")
	}
	if cfg.Telemetry.PrometheusBind == "" {
		return errors.New("telemetry.prometheus_bind must not be empty")
	}
	if cfg.Speech.Enabled {
		switch cfg.Speech.Mode {
		case "formant", "mock", "exec":
		default:
			return errors.New("speech.mode must be one of formant|mock|exec")
		}
		if cfg.Speech.Mode == "exec" && cfg.Speech.Command == "" {
			return errors.New("speech.command must be set when mode=exec")
		}
		if cfg.Speech.Mode == "formant" {
			if _, err := voice.Lookup(cfg.Speech.Voice); err != nil {
				return fmt.Errorf("speech.voice: %w", err)
			}
		}
		if cfg.Speech.SampleRate <= 0 {
			return errors.New("speech.sample_rate must be positive")
		}
		if cfg.Speech.Channels <= 0 {
			return errors.New("speech.channels must be positive")
		}
		if cfg.Speech.ChunkDurationMS <= 0 {
			return errors.New("speech.chunk_duration_ms must be positive")
		}
	}
	return nil
}
