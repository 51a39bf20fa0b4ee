package database

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Migration represents a database migration
type Migration struct {
	Version     int
	Description string
	Up          func(db *mongo.Database) error
}

// migrationRecord tracks applied migrations
type migrationRecord struct {
	Version     int       `bson:"version"`
	Description string    `bson:"description"`
	AppliedAt   time.Time `bson:"appliedAt"`
}

// migrations is the ordered list of schema migrations
var migrations = []Migration{
	{
		Version:     1,
		Description: "Create users collection indexes",
		Up:          createUserIndexes,
	},
	{
		Version:     2,
		Description: "Create audit_logs collection indexes",
		Up:          createAuditLogIndexes,
	},
}

// RunMigrations applies all pending migrations in order
func RunMigrations(db *mongo.Database) error {
	current, err := getCurrentMigrationVersion(db)
	if err != nil {
		return fmt.Errorf("failed to read migration version: %w", err)
	}

	applied := 0
	for _, migration := range migrations {
		if migration.Version <= current {
			continue
		}

		logrus.Infof("🔄 Applying migration %d: %s", migration.Version, migration.Description)

		if err := migration.Up(db); err != nil {
			return fmt.Errorf("migration %d failed: %w", migration.Version, err)
		}

		record := migrationRecord{
			Version:     migration.Version,
			Description: migration.Description,
			AppliedAt:   time.Now(),
		}

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		_, err := db.Collection("migrations").InsertOne(ctx, record)
		cancel()
		if err != nil {
			return fmt.Errorf("failed to record migration %d: %w", migration.Version, err)
		}

		applied++
	}

	if applied > 0 {
		logrus.Infof("✅ Applied %d migration(s)", applied)
	} else {
		logrus.Info("✅ Database schema is up to date")
	}

	return nil
}

// getCurrentMigrationVersion returns the highest applied migration version
func getCurrentMigrationVersion(db *mongo.Database) (int, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	opts := options.FindOne().SetSort(bson.D{{Key: "version", Value: -1}})

	var record migrationRecord
	err := db.Collection("migrations").FindOne(ctx, bson.M{}, opts).Decode(&record)
	if err == mongo.ErrNoDocuments {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}

	return record.Version, nil
}

// createUserIndexes creates indexes for the users collection
func createUserIndexes(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	collection := db.Collection("users")

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("idx_users_email"),
		},
		{
			Keys:    bson.D{{Key: "role", Value: 1}},
			Options: options.Index().SetName("idx_users_role"),
		},
		{
			Keys:    bson.D{{Key: "isActive", Value: 1}},
			Options: options.Index().SetName("idx_users_active"),
		},
		{
			Keys: bson.D{
				{Key: "personalInfo.firstName", Value: "text"},
				{Key: "personalInfo.lastName", Value: "text"},
				{Key: "email", Value: "text"},
			},
			Options: options.Index().SetName("idx_users_search"),
		},
	}

	_, err := collection.Indexes().CreateMany(ctx, indexes)
	return err
}

// createAuditLogIndexes creates indexes for the audit_logs collection
func createAuditLogIndexes(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	collection := db.Collection("audit_logs")

	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "profileId", Value: 1},
				{Key: "createdAt", Value: -1},
			},
			Options: options.Index().SetName("idx_audit_profile_time"),
		},
		{
			Keys:    bson.D{{Key: "eventType", Value: 1}},
			Options: options.Index().SetName("idx_audit_event_type"),
		},
		{
			Keys:    bson.D{{Key: "createdAt", Value: 1}},
			Options: options.Index().SetName("idx_audit_created_at"),
		},
	}

	_, err := collection.Indexes().CreateMany(ctx, indexes)
	return err
}
