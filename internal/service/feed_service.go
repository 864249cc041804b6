package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/ManaClgLevelUp/revathi-duba/internal/dto"
	"github.com/ManaClgLevelUp/revathi-duba/internal/observability"
)

const feedBufferSize = 16

// FeedService broadcasts gallery change events to realtime subscribers.
// Events published here fan out to local subscribers immediately and to
// other nodes through Redis pub/sub and NATS; remote echoes of our own
// events are dropped by node id.
type FeedService interface {
	Publish(ctx context.Context, event dto.GalleryEvent)
	PublishLocal(event dto.GalleryEvent)
	Subscribe() (<-chan dto.GalleryEvent, func())
	Start(ctx context.Context)
}

type feedService struct {
	redis        *redis.Client
	redisChannel string
	nats         *nats.Conn
	natsSubject  string
	logger       zerolog.Logger
	broker       *feedBroker
	nodeID       string
}

type feedEnvelope struct {
	Source string           `json:"source"`
	Event  dto.GalleryEvent `json:"event"`
}

type feedBroker struct {
	mu          sync.RWMutex
	subscribers map[chan dto.GalleryEvent]struct{}
}

// NewFeedService constructs the gallery feed service. Both brokers are
// optional; with neither configured the feed is node-local.
func NewFeedService(redisClient *redis.Client, natsConn *nats.Conn, channelBase string, logger zerolog.Logger) FeedService {
	channel := ""
	subject := ""
	if channelBase != "" {
		channel = channelBase + ":gallery"
		subject = strings.ReplaceAll(channelBase, ":", ".") + ".gallery"
	}

	return &feedService{
		redis:        redisClient,
		redisChannel: channel,
		nats:         natsConn,
		natsSubject:  subject,
		logger:       logger.With().Str("component", "feed_service").Logger(),
		broker:       &feedBroker{subscribers: make(map[chan dto.GalleryEvent]struct{})},
		nodeID:       uuid.NewString(),
	}
}

func (s *feedService) Start(ctx context.Context) {
	if s.redis != nil && s.redisChannel != "" {
		go s.consumeRedis(ctx)
	}
	if s.nats != nil && s.natsSubject != "" {
		go s.consumeNATS(ctx)
	}
}

// Publish broadcasts locally and fans out to the other nodes.
func (s *feedService) Publish(ctx context.Context, event dto.GalleryEvent) {
	if event.SentAt.IsZero() {
		event.SentAt = time.Now().UTC()
	}

	s.broadcast(event)

	envelope := feedEnvelope{Source: s.nodeID, Event: event}
	payload, err := json.Marshal(envelope)
	if err != nil {
		s.logger.Warn().Err(err).Msg("failed to encode gallery event")
		return
	}

	if s.redis != nil && s.redisChannel != "" {
		if err := s.redis.Publish(ctx, s.redisChannel, payload).Err(); err != nil {
			s.logger.Warn().Err(err).Msg("failed to publish gallery event to redis")
		}
	}

	if s.nats != nil && s.natsSubject != "" {
		if err := s.nats.Publish(s.natsSubject, payload); err != nil {
			s.logger.Warn().Err(err).Msg("failed to publish gallery event to nats")
		}
	}
}

// PublishLocal broadcasts to this node's subscribers only. Used for
// rollback notices that describe node-local optimistic state.
func (s *feedService) PublishLocal(event dto.GalleryEvent) {
	if event.SentAt.IsZero() {
		event.SentAt = time.Now().UTC()
	}
	s.broadcast(event)
}

func (s *feedService) Subscribe() (<-chan dto.GalleryEvent, func()) {
	channel := make(chan dto.GalleryEvent, feedBufferSize)

	s.broker.subscribe(channel)
	observability.FeedSubscribersActive().Inc()

	cleanup := func() {
		s.broker.unsubscribe(channel)
		observability.FeedSubscribersActive().Dec()
	}

	return channel, cleanup
}

func (s *feedService) broadcast(event dto.GalleryEvent) {
	observability.FeedEvents().WithLabelValues(event.Type).Inc()
	s.broker.broadcast(event)
}

func (s *feedService) consumeRedis(ctx context.Context) {
	pubsub := s.redis.Subscribe(ctx, s.redisChannel)
	defer func() { _ = pubsub.Close() }()

	for {
		msg, err := pubsub.ReceiveMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return
			}
			s.logger.Error().Err(err).Msg("gallery feed redis subscription closed")
			return
		}
		s.handleEnvelope([]byte(msg.Payload))
	}
}

func (s *feedService) consumeNATS(ctx context.Context) {
	sub, err := s.nats.QueueSubscribe(s.natsSubject, "portfolio-gallery", func(msg *nats.Msg) {
		s.handleEnvelope(msg.Data)
	})
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to subscribe to nats gallery subject")
		return
	}

	go func() {
		<-ctx.Done()
		if err := sub.Drain(); err != nil {
			s.logger.Warn().Err(err).Msg("failed to drain gallery nats subscription")
		}
	}()
}

func (s *feedService) handleEnvelope(payload []byte) {
	var envelope feedEnvelope
	if err := json.Unmarshal(payload, &envelope); err != nil {
		s.logger.Warn().Err(err).Msg("invalid gallery event payload")
		return
	}

	if envelope.Source == s.nodeID {
		return
	}

	s.broadcast(envelope.Event)
}

func (b *feedBroker) subscribe(ch chan dto.GalleryEvent) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subscribers[ch] = struct{}{}
}

func (b *feedBroker) unsubscribe(ch chan dto.GalleryEvent) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, ok := b.subscribers[ch]; ok {
		delete(b.subscribers, ch)
		close(ch)
	}
}

func (b *feedBroker) broadcast(event dto.GalleryEvent) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for ch := range b.subscribers {
		select {
		case ch <- event:
		default:
		}
	}
}
