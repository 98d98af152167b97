package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/9rib/marketplace-api/internal/core/domain"
	"github.com/9rib/marketplace-api/internal/core/ports"
)

const applicationEventsCollection = "application_events"

// ApplicationEventRepository implements ports.ApplicationEventRepository using MongoDB.
type ApplicationEventRepository struct {
	coll *mongo.Collection
}

// NewApplicationEventRepository creates a new ApplicationEventRepository.
func NewApplicationEventRepository(db *mongo.Database) ports.ApplicationEventRepository {
	return &ApplicationEventRepository{coll: db.Collection(applicationEventsCollection)}
}

// InsertEvent appends one admin decision to the application_events audit collection.
func (r *ApplicationEventRepository) InsertEvent(ctx context.Context, event *domain.ApplicationEvent) error {
	_, err := r.coll.InsertOne(ctx, eventDocument(event, time.Now().UTC()))
	return err
}

// History returns the decisions recorded for one application, oldest first.
func (r *ApplicationEventRepository) History(ctx context.Context, applicationID string) ([]*domain.ApplicationEvent, error) {
	opts := options.Find().SetSort(bson.D{{Key: "occurred_at", Value: 1}})
	cur, err := r.coll.Find(ctx, bson.M{"application_id": applicationID}, opts)
	if err != nil {
		return nil, fmt.Errorf("find application events: %w", err)
	}
	defer cur.Close(ctx)

	var docs []applicationEventDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode application events: %w", err)
	}

	events := make([]*domain.ApplicationEvent, 0, len(docs))
	for _, d := range docs {
		events = append(events, d.toDomain())
	}
	return events, nil
}

// EnsureIndexes creates the lookup index on application_id.
func (r *ApplicationEventRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "application_id", Value: 1}, {Key: "occurred_at", Value: 1}},
	})
	return err
}

type applicationEventDoc struct {
	ApplicationID string    `bson:"application_id"`
	Action        string    `bson:"action"`
	FromStatus    string    `bson:"from_status"`
	ToStatus      string    `bson:"to_status"`
	AdminID       string    `bson:"admin_id"`
	AdminNotes    string    `bson:"admin_notes,omitempty"`
	OccurredAt    time.Time `bson:"occurred_at"`
	RecordedAt    time.Time `bson:"recorded_at"`
}

func eventDocument(e *domain.ApplicationEvent, recordedAt time.Time) applicationEventDoc {
	return applicationEventDoc{
		ApplicationID: e.ApplicationID,
		Action:        string(e.Action),
		FromStatus:    string(e.FromStatus),
		ToStatus:      string(e.ToStatus),
		AdminID:       e.AdminID,
		AdminNotes:    e.AdminNotes,
		OccurredAt:    e.OccurredAt.UTC(),
		RecordedAt:    recordedAt,
	}
}

func (d applicationEventDoc) toDomain() *domain.ApplicationEvent {
	return &domain.ApplicationEvent{
		ApplicationID: d.ApplicationID,
		Action:        domain.ApplicationAction(d.Action),
		FromStatus:    domain.ApplicationStatus(d.FromStatus),
		ToStatus:      domain.ApplicationStatus(d.ToStatus),
		AdminID:       d.AdminID,
		AdminNotes:    d.AdminNotes,
		OccurredAt:    d.OccurredAt,
	}
}
