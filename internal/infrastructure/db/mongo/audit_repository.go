package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/99minutos/user-console/internal/core/domain"
)

const auditCollection = "console_audit"

// AuditRepository implements ports.AuditRepository using MongoDB.
type AuditRepository struct {
	coll *mongo.Collection
}

// NewAuditRepository creates a new AuditRepository.
func NewAuditRepository(db *mongo.Database) *AuditRepository {
	return &AuditRepository{coll: db.Collection(auditCollection)}
}

type mongoAudit struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	ConsoleID  string             `bson:"console_id"`
	Action     string             `bson:"action"`
	UserID     int                `bson:"user_id,omitempty"`
	Outcome    string             `bson:"outcome"`
	Detail     string             `bson:"detail,omitempty"`
	At         time.Time          `bson:"at"`
	RecordedAt time.Time          `bson:"recorded_at"`
}

// InsertAudit persists one console action to the audit collection.
func (r *AuditRepository) InsertAudit(ctx context.Context, event *domain.AuditEvent) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoAudit{
		ConsoleID:  event.ConsoleID,
		Action:     event.Action,
		UserID:     event.UserID,
		Outcome:    event.Outcome,
		Detail:     event.Detail,
		At:         event.At.UTC(),
		RecordedAt: time.Now().UTC(),
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert audit: %w", err)
	}
	return nil
}

// EnsureIndexes creates the indexes used to browse the trail per browser
// and per remote user.
func (r *AuditRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "console_id", Value: 1}, {Key: "at", Value: -1}}},
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "at", Value: -1}}},
		{Keys: bson.D{{Key: "action", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}
