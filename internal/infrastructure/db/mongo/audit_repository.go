package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/bingo/shop-console/internal/core/domain"
	"github.com/bingo/shop-console/internal/core/ports"
)

const (
	auditCollection = "audit_events"
	defaultLimit    = 50
	maxLimit        = 100
)

// AuditRepository implements ports.AuditRepository using MongoDB.
type AuditRepository struct {
	coll *mongo.Collection
}

func NewAuditRepository(db *mongo.Database) *AuditRepository {
	return &AuditRepository{coll: db.Collection(auditCollection)}
}

var _ ports.AuditRepository = (*AuditRepository)(nil)

type auditDoc struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	Action     string             `bson:"action"`
	SessionID  string             `bson:"session_id,omitempty"`
	Username   string             `bson:"username,omitempty"`
	ShopID     string             `bson:"shop_id,omitempty"`
	WeekID     string             `bson:"week_id,omitempty"`
	Outcome    string             `bson:"outcome"`
	OccurredAt time.Time          `bson:"occurred_at"`
}

func toAuditDoc(e *domain.AuditEvent) auditDoc {
	return auditDoc{
		Action:     string(e.Action),
		SessionID:  e.SessionID,
		Username:   e.Username,
		ShopID:     e.ShopID,
		WeekID:     e.WeekID,
		Outcome:    e.Outcome,
		OccurredAt: e.OccurredAt.UTC(),
	}
}

func (d auditDoc) toDomain() domain.AuditEvent {
	return domain.AuditEvent{
		ID:         d.ID.Hex(),
		Action:     domain.AuditAction(d.Action),
		SessionID:  d.SessionID,
		Username:   d.Username,
		ShopID:     d.ShopID,
		WeekID:     d.WeekID,
		Outcome:    d.Outcome,
		OccurredAt: d.OccurredAt,
	}
}

// EnsureIndexes creates the indexes used by ListRecent.
func (r *AuditRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "occurred_at", Value: -1}}},
		{Keys: bson.D{{Key: "shop_id", Value: 1}, {Key: "occurred_at", Value: -1}}},
	})
	if err != nil {
		return fmt.Errorf("create audit indexes: %w", err)
	}
	return nil
}

// Insert persists event and sets its ID.
func (r *AuditRepository) Insert(ctx context.Context, event *domain.AuditEvent) error {
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now().UTC()
	}
	res, err := r.coll.InsertOne(ctx, toAuditDoc(event))
	if err != nil {
		return fmt.Errorf("insert audit event: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		event.ID = oid.Hex()
	}
	return nil
}

// ListRecent returns the newest events first, optionally for one shop.
func (r *AuditRepository) ListRecent(ctx context.Context, filter ports.AuditFilter) ([]domain.AuditEvent, error) {
	query := bson.M{}
	if filter.ShopID != "" {
		query["shop_id"] = filter.ShopID
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "occurred_at", Value: -1}}).
		SetLimit(int64(ClampLimit(filter.Limit)))

	cursor, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("find audit events: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []auditDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode audit events: %w", err)
	}

	events := make([]domain.AuditEvent, 0, len(docs))
	for _, d := range docs {
		events = append(events, d.toDomain())
	}
	return events, nil
}

// ClampLimit bounds a requested page size to (0, maxLimit].
func ClampLimit(limit int) int {
	switch {
	case limit <= 0:
		return defaultLimit
	case limit > maxLimit:
		return maxLimit
	default:
		return limit
	}
}
