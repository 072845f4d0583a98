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

type MongoInvoiceRepo struct {
	DB *mongo.Client
}

func NewMongoInvoiceRepo(db *mongo.Client) *MongoInvoiceRepo {
	repo := &MongoInvoiceRepo{DB: db}
	repo.ensureIndexes()
	return repo
}

// ensureIndexes creates the compound unique index backing the per-user
// invoice-number invariant. Concurrent creates race on this index alone.
func (r *MongoInvoiceRepo) ensureIndexes() {
	ctx := context.Background()
	_, err := r.DB.Database(mongoDatabase).Collection("invoice").Indexes().CreateOne(ctx,
		mongo.IndexModel{
			Keys: bson.D{
				{Key: "user_id", Value: 1},
				{Key: "invoice_number", Value: 1},
			},
			Options: options.Index().SetUnique(true).SetName("invoice_user_number_uniq"),
		})
	if err != nil {
		log.Printf("failed to create invoice index: %v", err)
	}
}

// CreateInvoice inserts the invoice with its items embedded
func (r *MongoInvoiceRepo) CreateInvoice(inv *models.Invoice) error {
	ctx := context.Background()
	db := r.DB.Database(mongoDatabase)

	if inv.CreatedAt.IsZero() {
		inv.CreatedAt = time.Now().UTC()
	}
	if inv.ID == 0 {
		var err error
		inv.ID, err = nextID(ctx, db, "invoice")
		if err != nil {
			return err
		}
	}

	_, err := db.Collection("invoice").InsertOne(ctx, inv)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicateInvoiceNumber
		}
		return err
	}
	return nil
}

// populateNested loads the firm and invoice type for a response
func (r *MongoInvoiceRepo) populateNested(ctx context.Context, db *mongo.Database, inv *models.Invoice) *models.Invoice {
	if inv.FirmID != 0 {
		var f models.Firm
		if err := db.Collection("firm").FindOne(ctx, bson.M{"_id": inv.FirmID}).Decode(&f); err == nil {
			inv.Firm = &f
		}
	}
	if inv.InvoiceTypeID != 0 {
		var t models.InvoiceType
		if err := db.Collection("invoice_type").FindOne(ctx, bson.M{"_id": inv.InvoiceTypeID}).Decode(&t); err == nil {
			inv.InvoiceType = &t
		}
	}
	inv.Balance = inv.GrandTotal - inv.Received
	return inv
}

func (r *MongoInvoiceRepo) GetInvoices(userID int64) ([]*models.Invoice, error) {
	ctx := context.Background()
	db := r.DB.Database(mongoDatabase)

	cur, err := db.Collection("invoice").Find(ctx, bson.M{"user_id": userID},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []*models.Invoice
	for cur.Next(ctx) {
		var inv models.Invoice
		if err := cur.Decode(&inv); err != nil {
			return nil, err
		}
		out = append(out, r.populateNested(ctx, db, &inv))
	}
	return out, cur.Err()
}

func (r *MongoInvoiceRepo) GetInvoiceByID(id, userID int64) (*models.Invoice, error) {
	ctx := context.Background()
	db := r.DB.Database(mongoDatabase)

	var inv models.Invoice
	err := db.Collection("invoice").FindOne(ctx, bson.M{"_id": id, "user_id": userID}).Decode(&inv)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return r.populateNested(ctx, db, &inv), nil
}

func (r *MongoInvoiceRepo) UpdateInvoice(inv *models.Invoice) error {
	ctx := context.Background()
	db := r.DB.Database(mongoDatabase)

	now := time.Now().UTC()
	inv.UpdatedAt = &now

	// Responses carry denormalized firm/type; never persist them on the doc.
	// Strip them on a copy so the caller's invoice keeps its expansion.
	doc := *inv
	doc.Firm = nil
	doc.InvoiceType = nil

	res, err := db.Collection("invoice").ReplaceOne(ctx,
		bson.M{"_id": inv.ID, "user_id": inv.UserID}, &doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicateInvoiceNumber
		}
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoInvoiceRepo) DeleteInvoice(id, userID int64) (*models.Invoice, error) {
	ctx := context.Background()
	db := r.DB.Database(mongoDatabase)

	var inv models.Invoice
	err := db.Collection("invoice").
		FindOneAndDelete(ctx, bson.M{"_id": id, "user_id": userID}).Decode(&inv)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &inv, nil
}

func (r *MongoInvoiceRepo) LastInvoiceNumber(userID int64) (string, error) {
	ctx := context.Background()
	db := r.DB.Database(mongoDatabase)

	var doc struct {
		InvoiceNumber string `bson:"invoice_number"`
	}
	err := db.Collection("invoice").FindOne(ctx, bson.M{"user_id": userID},
		options.FindOne().
			SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}}).
			SetProjection(bson.M{"invoice_number": 1}),
	).Decode(&doc)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return "", nil
		}
		return "", err
	}
	return doc.InvoiceNumber, nil
}

func (r *MongoInvoiceRepo) DailyStats(userID int64, days int) ([]models.DailyStat, error) {
	ctx := context.Background()
	db := r.DB.Database(mongoDatabase)

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"user_id": userID}}},
		{{Key: "$group", Value: bson.M{
			"_id": bson.M{"$dateToString": bson.M{
				"format": "%Y-%m-%d",
				"date":   "$created_at",
			}},
			"count":        bson.M{"$sum": 1},
			"total_amount": bson.M{"$sum": "$grand_total"},
		}}},
		{{Key: "$sort", Value: bson.M{"_id": -1}}},
		{{Key: "$limit", Value: days}},
	}

	cur, err := db.Collection("invoice").Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var stats []models.DailyStat
	for cur.Next(ctx) {
		var s models.DailyStat
		if err := cur.Decode(&s); err != nil {
			return nil, err
		}
		stats = append(stats, s)
	}
	return stats, cur.Err()
}

func (r *MongoInvoiceRepo) UpdateDocumentLocator(id, userID int64, url, externalID string, t time.Time) error {
	ctx := context.Background()
	db := r.DB.Database(mongoDatabase)

	res, err := db.Collection("invoice").UpdateOne(ctx,
		bson.M{"_id": id, "user_id": userID},
		bson.M{"$set": bson.M{
			"pdf_url":         url,
			"pdf_external_id": externalID,
			"pdf_created_at":  t,
		}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
