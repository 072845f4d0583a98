package repository

import (
	"context"
	"log"
	"time"

	"jewelbill/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MongoInvoiceTypeRepo struct {
	DB *mongo.Client
}

func NewMongoInvoiceTypeRepo(db *mongo.Client) *MongoInvoiceTypeRepo {
	repo := &MongoInvoiceTypeRepo{DB: db}
	repo.seedDefaults()
	return repo
}

// seedDefaults inserts the catalog rows once. Postgres gets the same rows
// from a migration.
func (r *MongoInvoiceTypeRepo) seedDefaults() {
	ctx := context.Background()
	db := r.DB.Database(mongoDatabase)

	defaults := []models.InvoiceType{
		{Name: "Cash Bill", Description: "Retail sale settled in cash"},
		{Name: "Credit Bill", Description: "Sale on customer account"},
		{Name: "Estimate", Description: "Quotation, not a tax invoice"},
	}

	for _, t := range defaults {
		count, err := db.Collection("invoice_type").CountDocuments(ctx, bson.M{"name": t.Name})
		if err != nil || count > 0 {
			continue
		}
		t.CreatedAt = time.Now().UTC()
		t.ID, err = nextID(ctx, db, "invoice_type")
		if err != nil {
			log.Printf("failed to seed invoice type %q: %v", t.Name, err)
			continue
		}
		if _, err := db.Collection("invoice_type").InsertOne(ctx, t); err != nil {
			log.Printf("failed to seed invoice type %q: %v", t.Name, err)
		}
	}
}

func (r *MongoInvoiceTypeRepo) GetInvoiceTypes() ([]*models.InvoiceType, error) {
	ctx := context.Background()

	cur, err := r.DB.Database(mongoDatabase).Collection("invoice_type").
		Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var types []*models.InvoiceType
	for cur.Next(ctx) {
		var t models.InvoiceType
		if err := cur.Decode(&t); err != nil {
			return nil, err
		}
		types = append(types, &t)
	}
	return types, cur.Err()
}
