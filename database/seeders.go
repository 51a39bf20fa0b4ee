package database

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/crypto/bcrypt"

	"lifetag/models"
)

// Seeder represents a database seeder
type Seeder struct {
	Name string
	Run  func(db *mongo.Database) error
}

// seederRecord tracks executed seeders
type seederRecord struct {
	Name  string    `bson:"name"`
	RunAt time.Time `bson:"runAt"`
}

// seeders is the list of available seeders
var seeders = []Seeder{
	{
		Name: "demo_users",
		Run:  seedDemoUsers,
	},
}

// RunSeeders executes all seeders that have not run yet
func RunSeeders(db *mongo.Database) error {
	for _, seeder := range seeders {
		done, err := seederHasRun(db, seeder.Name)
		if err != nil {
			return err
		}
		if done {
			continue
		}

		logrus.Infof("🌱 Running seeder: %s", seeder.Name)

		if err := seeder.Run(db); err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		_, err = db.Collection("seeders").InsertOne(ctx, seederRecord{
			Name:  seeder.Name,
			RunAt: time.Now(),
		})
		cancel()
		if err != nil {
			return err
		}
	}

	return nil
}

func seederHasRun(db *mongo.Database, name string) (bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	count, err := db.Collection("seeders").CountDocuments(ctx, bson.M{"name": name})
	if err != nil {
		return false, err
	}

	return count > 0, nil
}

// seedDemoUsers creates demo accounts for development
func seedDemoUsers(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	collection := db.Collection("users")
	now := time.Now()

	password, err := bcrypt.GenerateFromPassword([]byte("demo123456"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	users := []models.User{
		{
			ID:       primitive.NewObjectID(),
			Email:    "admin@lifetag.app",
			Password: string(password),
			Role:     models.RoleAdmin,
			PersonalInfo: models.PersonalInfo{
				FirstName: "System",
				LastName:  "Admin",
			},
			IsActive:   true,
			IsVerified: true,
			CreatedAt:  now,
			UpdatedAt:  now,
		},
		{
			ID:       primitive.NewObjectID(),
			Email:    "demo@lifetag.app",
			Password: string(password),
			Role:     models.RoleUser,
			PersonalInfo: models.PersonalInfo{
				FirstName:   "Jane",
				LastName:    "Doe",
				Phone:       "+15551234567",
				DateOfBirth: "1985-03-12",
			},
			MedicalInfo: models.MedicalInfo{
				BloodType:     "O+",
				Allergies:     []string{"Penicillin", "Latex"},
				Medications:   []string{"Metformin 500mg"},
				Conditions:    []string{"Type 2 Diabetes"},
				EmergencyNote: "Diabetic. Insulin pen in purse.",
			},
			EmergencyContacts: []models.EmergencyContact{
				{
					Name:         "John Doe",
					Phone:        "5559876543",
					Relationship: "spouse",
					IsPrimary:    true,
				},
			},
			Privacy: models.PrivacySettings{
				AllowProfessionalAccess: true,
			},
			Notifications: models.NotificationPrefs{
				PushEnabled:  true,
				AccessAlerts: true,
			},
			IsActive:   true,
			IsVerified: true,
			IsComplete: true,
			CreatedAt:  now,
			UpdatedAt:  now,
		},
	}

	for _, user := range users {
		filter := bson.M{"email": user.Email}
		update := bson.M{"$setOnInsert": user}
		opts := options.Update().SetUpsert(true)

		if _, err := collection.UpdateOne(ctx, filter, update, opts); err != nil {
			return err
		}
	}

	logrus.Infof("✅ Seeded %d demo user(s)", len(users))
	return nil
}
