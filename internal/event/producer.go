package event

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/makrand12345/StoreDoc-Backend/internal/domain"
	pkgkafka "github.com/makrand12345/StoreDoc-Backend/pkg/kafka"
	"github.com/makrand12345/StoreDoc-Backend/pkg/logger"
)

// Kafka topics for StoreDoc domain events.
var (
	TopicUserRegistered = pkgkafka.Topic("user", "registered")
	TopicStoreCreated   = pkgkafka.Topic("store", "created")
	TopicStoreRated     = pkgkafka.Topic("store", "rated")
)

const (
	AggregateTypeUser  = "user"
	AggregateTypeStore = "store"
	Source             = "storedoc"
)

// UserRegisteredData is the payload for a user.registered event.
type UserRegisteredData struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// StoreCreatedData is the payload for a store.created event.
type StoreCreatedData struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	OwnerID *int64 `json:"owner_id"`
}

// StoreRatedData is the payload for a store.rated event.
type StoreRatedData struct {
	StoreID int64 `json:"store_id"`
	UserID  int64 `json:"user_id"`
	Rating  int   `json:"rating"`
}

// Publisher is satisfied by *pkgkafka.Producer.
type Publisher interface {
	Publish(ctx context.Context, topic string, event *pkgkafka.Event) error
}

// Producer publishes StoreDoc domain events. A Producer without a publisher
// drops every event, which is how the server runs with Kafka disabled.
type Producer struct {
	publisher Publisher
	logger    *slog.Logger
}

// NewProducer creates an event producer. publisher may be nil.
func NewProducer(publisher Publisher, logger *slog.Logger) *Producer {
	return &Producer{publisher: publisher, logger: logger}
}

// PublishUserRegistered publishes a user.registered event.
func (p *Producer) PublishUserRegistered(ctx context.Context, u *domain.User) error {
	return p.publish(ctx, TopicUserRegistered, "user.registered", AggregateTypeUser, u.ID, UserRegisteredData{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
		Role:  string(u.Role),
	})
}

// PublishStoreCreated publishes a store.created event.
func (p *Producer) PublishStoreCreated(ctx context.Context, s *domain.Store) error {
	return p.publish(ctx, TopicStoreCreated, "store.created", AggregateTypeStore, s.ID, StoreCreatedData{
		ID:      s.ID,
		Name:    s.Name,
		OwnerID: s.OwnerID,
	})
}

// PublishStoreRated publishes a store.rated event keyed by store so ratings of
// one store stay ordered.
func (p *Producer) PublishStoreRated(ctx context.Context, r *domain.Rating) error {
	return p.publish(ctx, TopicStoreRated, "store.rated", AggregateTypeStore, r.StoreID, StoreRatedData{
		StoreID: r.StoreID,
		UserID:  r.UserID,
		Rating:  r.Rating,
	})
}

func (p *Producer) publish(ctx context.Context, topic, eventType, aggregateType string, aggregateID int64, data any) error {
	if p == nil || p.publisher == nil {
		return nil
	}

	evt, err := pkgkafka.NewEvent(eventType, strconv.FormatInt(aggregateID, 10), aggregateType, Source, data)
	if err != nil {
		return fmt.Errorf("create %s event: %w", eventType, err)
	}
	if id := logger.CorrelationIDFromContext(ctx); id != "" {
		evt.WithCorrelationID(id)
	}
	if actorID, role, ok := logger.IdentityFromContext(ctx); ok {
		evt.WithMetadata("actor_id", strconv.FormatInt(actorID, 10)).WithMetadata("actor_role", role)
	}

	if err := p.publisher.Publish(ctx, topic, evt); err != nil {
		return fmt.Errorf("publish %s event: %w", eventType, err)
	}

	p.logger.DebugContext(ctx, "published domain event",
		slog.String("event_type", eventType),
		slog.Int64("aggregate_id", aggregateID),
	)
	return nil
}
