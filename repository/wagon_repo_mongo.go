package repository

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"railshift/models"
)

type MongoWagonRepo struct {
	*MongoStore[models.Wagon]
}

func NewMongoWagonRepo(db *mongo.Database) *MongoWagonRepo {
	return &MongoWagonRepo{MongoStore: NewMongoStore(db, wagonTable)}
}

func (r *MongoWagonRepo) GetByIDs(ctx context.Context, ids []int64) ([]models.Wagon, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	cur, err := r.coll().Find(ctx,
		bson.M{"_id": bson.M{"$in": ids}},
		options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("wagon: get by ids: %w", err)
	}
	defer cur.Close(ctx)

	var wagons []models.Wagon
	if err := cur.All(ctx, &wagons); err != nil {
		return nil, err
	}
	return wagons, nil
}

func (r *MongoWagonRepo) set(ctx context.Context, id int64, fields bson.M) error {
	res, err := r.coll().UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": fields})
	if err != nil {
		return fmt.Errorf("wagon: update: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoWagonRepo) UpdateStatus(ctx context.Context, id int64, u models.WagonStatusUpdate) error {
	return r.set(ctx, id, bson.M{"status": u.Status, "next_status": u.NextStatus})
}

func (r *MongoWagonRepo) UpdatePosition(ctx context.Context, id int64, u models.WagonPositionUpdate) error {
	return r.set(ctx, id, bson.M{
		"current_location_id": u.LocationID,
		"rail":                u.Rail,
		"position":            u.Position,
	})
}
