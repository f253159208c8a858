package repository

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"railshift/models"
)

const countersCollection = "counters"

type MongoStore[T any] struct {
	DB    *mongo.Database
	table Table[T]
}

func NewMongoStore[T any](db *mongo.Database, t Table[T]) *MongoStore[T] {
	return &MongoStore[T]{DB: db, table: t}
}

func (s *MongoStore[T]) coll() *mongo.Collection {
	return s.DB.Collection(s.table.Name)
}

// nextID hands out sequential integer ids so both backends share one id space shape.
func nextID(ctx context.Context, db *mongo.Database, name string) (int64, error) {
	var counter struct {
		Seq int64 `bson:"seq"`
	}
	err := db.Collection(countersCollection).FindOneAndUpdate(ctx,
		bson.M{"_id": name},
		bson.M{"$inc": bson.M{"seq": int64(1)}},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&counter)
	if err != nil {
		return 0, fmt.Errorf("%s: next id: %w", name, err)
	}
	return counter.Seq, nil
}

// filterValue stores numeric query values as integers to match int64 fields.
func filterValue(v string) any {
	if n, err := strconv.ParseInt(v, 10, 64); err == nil {
		return n
	}
	return v
}

func (s *MongoStore[T]) filter(q models.ListQuery) bson.M {
	filter := bson.M{}
	if q.Search != "" && len(s.table.Search) > 0 {
		pattern := regexFilter(q.Search)
		var ors bson.A
		for _, col := range s.table.Search {
			ors = append(ors, bson.M{col: pattern})
		}
		filter["$or"] = ors
	}
	for key, v := range q.Filters {
		if s.table.filterable(key) && v != "" {
			filter[key] = filterValue(v)
		}
	}
	return filter
}

func regexFilter(term string) bson.M {
	return bson.M{"$regex": regexp.QuoteMeta(term), "$options": "i"}
}

func (s *MongoStore[T]) List(ctx context.Context, q models.ListQuery) ([]T, int64, error) {
	q = q.Normalize()
	filter := s.filter(q)

	total, err := s.coll().CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("%s: count: %w", s.table.Name, err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "_id", Value: -1}}).
		SetSkip(int64(q.Offset())).
		SetLimit(int64(q.Limit))
	cur, err := s.coll().Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("%s: list: %w", s.table.Name, err)
	}
	defer cur.Close(ctx)

	items := []T{}
	if err := cur.All(ctx, &items); err != nil {
		return nil, 0, fmt.Errorf("%s: decode: %w", s.table.Name, err)
	}
	return items, total, nil
}

func (s *MongoStore[T]) Get(ctx context.Context, id int64) (*T, error) {
	var item T
	err := s.coll().FindOne(ctx, bson.M{"_id": id}).Decode(&item)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%s: get: %w", s.table.Name, err)
	}
	return &item, nil
}

func (s *MongoStore[T]) Create(ctx context.Context, item *T) error {
	s.table.stamp(item, time.Now().UTC())
	id, err := nextID(ctx, s.DB, s.table.Name)
	if err != nil {
		return err
	}
	*s.table.ID(item) = id
	if _, err := s.coll().InsertOne(ctx, item); err != nil {
		return fmt.Errorf("%s: insert: %w", s.table.Name, err)
	}
	return nil
}

func (s *MongoStore[T]) Update(ctx context.Context, item *T) error {
	s.table.touch(item, time.Now().UTC())
	raw, err := bson.Marshal(item)
	if err != nil {
		return err
	}
	var set bson.M
	if err := bson.Unmarshal(raw, &set); err != nil {
		return err
	}
	delete(set, "_id")
	delete(set, "created_at")

	res, err := s.coll().UpdateOne(ctx, bson.M{"_id": *s.table.ID(item)}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("%s: update: %w", s.table.Name, err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MongoStore[T]) Delete(ctx context.Context, id int64) error {
	res, err := s.coll().DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("%s: delete: %w", s.table.Name, err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// NewMongoRepositories wires every store against one database.
func NewMongoRepositories(db *mongo.Database) *Repositories {
	return &Repositories{
		Reasons:     NewMongoStore(db, reasonTable),
		Locations:   NewMongoStore(db, locationTable),
		Locomotives: NewMongoStore(db, locomotiveTable),
		Roles:       NewMongoStore(db, roleTable),
		Products:    NewMongoStore(db, productTable),
		Employees:   NewMongoStore(db, employeeTable),
		Customers:   NewMongoStore(db, customerTable),
		Orders:      NewMongoStore(db, orderTable),
		Shifts:      NewMongoStore(db, shiftTable),
		USNShifts:   NewMongoStore(db, usnShiftTable),
		Wagons:      NewMongoWagonRepo(db),
	}
}
