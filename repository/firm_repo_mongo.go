package repository

import (
	"context"
	"time"

	"jewelbill/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MongoFirmRepo struct {
	DB *mongo.Client
}

func NewMongoFirmRepo(db *mongo.Client) *MongoFirmRepo {
	return &MongoFirmRepo{DB: db}
}

func (r *MongoFirmRepo) CreateFirm(firm *models.Firm) error {
	ctx := context.Background()
	db := r.DB.Database(mongoDatabase)

	if firm.CreatedAt.IsZero() {
		firm.CreatedAt = time.Now().UTC()
	}
	if firm.ID == 0 {
		var err error
		firm.ID, err = nextID(ctx, db, "firm")
		if err != nil {
			return err
		}
	}

	_, err := db.Collection("firm").InsertOne(ctx, firm)
	return err
}

func (r *MongoFirmRepo) GetFirms(ownerID int64) ([]*models.Firm, error) {
	ctx := context.Background()

	cur, err := r.DB.Database(mongoDatabase).Collection("firm").
		Find(ctx, bson.M{"owner_id": ownerID},
			options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var firms []*models.Firm
	for cur.Next(ctx) {
		var f models.Firm
		if err := cur.Decode(&f); err != nil {
			return nil, err
		}
		firms = append(firms, &f)
	}
	return firms, cur.Err()
}

func (r *MongoFirmRepo) GetFirmByID(id, ownerID int64) (*models.Firm, error) {
	ctx := context.Background()

	var f models.Firm
	err := r.DB.Database(mongoDatabase).Collection("firm").
		FindOne(ctx, bson.M{"_id": id, "owner_id": ownerID}).Decode(&f)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &f, nil
}
