// Package speech exposes synthesis over the bus: it listens for
// synthesize requests, renders them through a Synthesizer backend, and
// streams PCM chunks back out.
package speech

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/formantlabs/formant-core/internal/bus"
	"github.com/formantlabs/formant-core/internal/config"
	"github.com/formantlabs/formant-core/internal/history"
	"github.com/formantlabs/formant-core/internal/protocol"
)

const synthesisTimeout = 45 * time.Second

type Service struct {
	cfg      config.SpeechConfig
	bus      *bus.Client
	synth    Synthesizer
	store    *history.Store
	sub      *nats.Subscription
	ctx      context.Context
	cancel   context.CancelFunc
	wg       sync.WaitGroup
	logger   *slog.Logger
	tracer   trace.Tracer
	requests metric.Int64Counter
	duration metric.Float64Histogram
}

// NewService wires a synthesizer backend to the bus. store may be nil
// when utterance history is disabled.
func NewService(parent context.Context, cfg config.SpeechConfig, busClient *bus.Client, synth Synthesizer, store *history.Store, log *slog.Logger) *Service {
	ctx, cancel := context.WithCancel(parent)
	s := &Service{
		cfg:    cfg,
		bus:    busClient,
		synth:  synth,
		store:  store,
		ctx:    ctx,
		cancel: cancel,
		logger: log.With(slog.String("component", "speech-service")),
		tracer: otel.Tracer("github.com/formantlabs/formant-core/speech"),
	}
	meter := otel.Meter("github.com/formantlabs/formant-core/speech")
	counter, err := meter.Int64Counter("formant.speech.requests", metric.WithDescription("Synthesis requests handled"))
	if err != nil {
		s.logger.Warn("failed to create request counter", slogError(err))
	} else {
		s.requests = counter
	}
	histogram, err := meter.Float64Histogram("formant.speech.duration_seconds", metric.WithDescription("Rendered audio duration per request"))
	if err != nil {
		s.logger.Warn("failed to create duration histogram", slogError(err))
	} else {
		s.duration = histogram
	}
	return s
}

func (s *Service) Start() error {
	if !s.cfg.Enabled {
		return nil
	}
	sub, err := s.bus.Conn().Subscribe(protocol.SubjectSpeechSynthesize, s.handleRequest)
	if err != nil {
		return err
	}
	s.sub = sub
	return nil
}

func (s *Service) Close() {
	s.cancel()
	if s.sub != nil {
		_ = s.sub.Drain()
	}
	s.wg.Wait()
}

func (s *Service) Healthy() bool { return !s.cfg.Enabled || s.sub != nil }

func (s *Service) handleRequest(msg *nats.Msg) {
	var req protocol.SpeechRequest
	if err := json.Unmarshal(msg.Data, &req); err != nil {
		s.logger.Warn("failed to decode speech request", slogError(err))
		return
	}
	if req.SessionID == "" {
		req.SessionID = uuid.NewString()
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		ctx, cancel := context.WithTimeout(s.ctx, synthesisTimeout)
		defer cancel()

		ctx, span := s.tracer.Start(ctx, "speech.synthesize",
			trace.WithAttributes(
				attribute.String("speech.voice", req.Voice),
				attribute.String("speech.language", req.Language),
				attribute.String("speech.trace_id", req.TraceID),
				attribute.Int("speech.text_chars", len([]rune(req.Text))),
			))
		defer span.End()

		if s.requests != nil {
			s.requests.Add(ctx, 1, metric.WithAttributes(attribute.String("voice", req.Voice)))
		}

		chunks, errs := s.synth.Synthesize(ctx, SynthRequest{
			SessionID: req.SessionID,
			Text:      req.Text,
			Language:  req.Language,
			Voice:     req.Voice,
			Overrides: req.Overrides,
		})

		sequence := 0
		sampleCount := 0
		sampleRate := s.cfg.SampleRate
		for {
			select {
			case chunk, ok := <-chunks:
				if !ok {
					chunks = nil
					continue
				}
				chunk.Sequence = sequence
				sequence++
				sampleCount += len(chunk.PCM) / 2
				if chunk.SampleRate > 0 {
					sampleRate = chunk.SampleRate
				}
				s.publishChunk(req, chunk)
				if chunk.Final {
					s.finish(ctx, req, sampleCount, sampleRate)
				}
			case err, ok := <-errs:
				if ok && err != nil {
					s.logger.Warn("speech synthesis error", slogError(err))
					s.publishStatus(req, false, err)
				}
				errs = nil
			case <-ctx.Done():
				s.logger.Warn("speech synthesis cancelled", slogError(ctx.Err()))
				return
			}
			if chunks == nil && errs == nil {
				return
			}
		}
	}()
}

func (s *Service) publishChunk(req protocol.SpeechRequest, chunk SynthChunk) {
	packet := protocol.AudioChunk{
		SessionID:  req.SessionID,
		Target:     req.Target,
		SampleRate: chunk.SampleRate,
		Channels:   chunk.Channels,
		Sequence:   chunk.Sequence,
		PCM:        chunk.PCM,
		Final:      chunk.Final,
	}
	data, err := json.Marshal(packet)
	if err != nil {
		s.logger.Warn("failed to marshal speech chunk", slogError(err))
		return
	}
	if err := s.bus.Conn().Publish(protocol.SubjectSpeechAudio, data); err != nil {
		s.logger.Warn("failed to publish speech chunk", slogError(err))
	}
}

func (s *Service) finish(ctx context.Context, req protocol.SpeechRequest, sampleCount, sampleRate int) {
	s.publishStatus(req, true, nil)
	durationMS := 0
	if sampleRate > 0 {
		durationMS = sampleCount * 1000 / sampleRate
	}
	if s.duration != nil {
		s.duration.Record(ctx, float64(durationMS)/1000,
			metric.WithAttributes(attribute.String("voice", req.Voice)))
	}
	if s.store == nil {
		return
	}
	record := history.Utterance{
		SessionID:   req.SessionID,
		Voice:       req.Voice,
		Language:    req.Language,
		TextChars:   len([]rune(req.Text)),
		SampleCount: sampleCount,
		DurationMS:  durationMS,
	}
	if err := s.store.Record(ctx, record); err != nil {
		s.logger.Warn("failed to record utterance", slogError(err))
	}
}

func (s *Service) publishStatus(req protocol.SpeechRequest, completed bool, cause error) {
	status := protocol.SpeechStatus{
		SessionID: req.SessionID,
		Target:    req.Target,
		Completed: completed,
		Timestamp: time.Now().UTC(),
	}
	if cause != nil {
		status.Error = cause.Error()
	}
	data, err := json.Marshal(status)
	if err != nil {
		s.logger.Warn("failed to marshal speech status", slogError(err))
		return
	}
	if err := s.bus.Conn().Publish(protocol.SubjectSpeechDone, data); err != nil {
		s.logger.Warn("failed to publish speech status", slogError(err))
	}
}

func slogError(err error) slog.Attr {
	return slog.String("error", err.Error())
}
