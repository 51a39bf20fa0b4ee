package repositories

import (
	"context"
	"errors"
	"lifetag/models"
	"lifetag/utils"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type AuditLogRepository struct {
	collection *mongo.Collection
}

func NewAuditLogRepository(db *mongo.Database) *AuditLogRepository {
	return &AuditLogRepository{
		collection: db.Collection("audit_logs"),
	}
}

func (ar *AuditLogRepository) Create(ctx context.Context, entry *models.AuditLogEntry) error {
	entry.ID = primitive.NewObjectID()
	entry.CreatedAt = time.Now()

	_, err := ar.collection.InsertOne(ctx, entry)
	return err
}

// GetProfileAuditLog returns access entries for one profile, newest first
func (ar *AuditLogRepository) GetProfileAuditLog(ctx context.Context, profileID string, page, pageSize int) ([]models.AuditLogEntry, int64, error) {
	objectID, err := primitive.ObjectIDFromHex(profileID)
	if err != nil {
		return nil, 0, errors.New("invalid profile ID")
	}

	filter := bson.M{"profileId": objectID}

	total, err := ar.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip(int64(utils.CalculateOffset(page, pageSize))).
		SetLimit(int64(pageSize))

	cursor, err := ar.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	var entries []models.AuditLogEntry
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, 0, err
	}

	return entries, total, nil
}

// GetRecentByEvent returns the most recent entries of a given event type
// across all profiles, for the admin surface.
func (ar *AuditLogRepository) GetRecentByEvent(ctx context.Context, eventType string, limit int) ([]models.AuditLogEntry, error) {
	filter := bson.M{}
	if eventType != "" {
		filter["eventType"] = eventType
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := ar.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var entries []models.AuditLogEntry
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, err
	}

	return entries, nil
}

// CleanupOldLogs removes entries older than the retention window
func (ar *AuditLogRepository) CleanupOldLogs(ctx context.Context, retention time.Duration) (int64, error) {
	cutoff := time.Now().Add(-retention)

	result, err := ar.collection.DeleteMany(ctx, bson.M{
		"createdAt": bson.M{"$lt": cutoff},
	})
	if err != nil {
		return 0, err
	}

	return result.DeletedCount, nil
}
