package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/meetocure/admin-api/internal/repository"
	"github.com/meetocure/admin-api/pkg/metrics"
)

// collection wraps a mongo collection with error mapping and metrics
type collection struct {
	coll    *mongo.Collection
	name    string
	metrics *metrics.Metrics
}

func (c *collection) wrap(op string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return repository.ErrNotFound
	case mongo.IsDuplicateKeyError(err):
		return fmt.Errorf("%w: %s", repository.ErrDuplicateKey, c.name)
	default:
		return fmt.Errorf("failed to %s %s: %w", op, c.name, err)
	}
}

func (c *collection) observe(op string, start time.Time, err error) {
	if errors.Is(err, mongo.ErrNoDocuments) {
		err = nil
	}
	c.metrics.ObserveDB(c.name, op, start, err)
}

func (c *collection) insert(ctx context.Context, doc interface{}) error {
	start := time.Now()
	_, err := c.coll.InsertOne(ctx, doc)
	c.observe("insert", start, err)
	return c.wrap("insert into", err)
}

func (c *collection) findOne(ctx context.Context, filter interface{}, out interface{}) error {
	start := time.Now()
	err := c.coll.FindOne(ctx, filter).Decode(out)
	c.observe("find_one", start, err)
	return c.wrap("find in", err)
}

func (c *collection) find(ctx context.Context, filter interface{}, out interface{}, opts ...*options.FindOptions) error {
	start := time.Now()
	cur, err := c.coll.Find(ctx, filter, opts...)
	if err == nil {
		err = cur.All(ctx, out)
	}
	c.observe("find", start, err)
	return c.wrap("list", err)
}

func (c *collection) count(ctx context.Context, filter interface{}) (int, error) {
	start := time.Now()
	n, err := c.coll.CountDocuments(ctx, filter)
	c.observe("count", start, err)
	return int(n), c.wrap("count", err)
}

func (c *collection) replace(ctx context.Context, id primitive.ObjectID, doc interface{}) error {
	start := time.Now()
	res, err := c.coll.ReplaceOne(ctx, bson.M{"_id": id}, doc)
	c.observe("replace", start, err)
	if err != nil {
		return c.wrap("update", err)
	}
	if res.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// updateOne applies update and returns nil when a document matched
func (c *collection) updateOne(ctx context.Context, id primitive.ObjectID, update interface{}) error {
	start := time.Now()
	res, err := c.coll.UpdateOne(ctx, bson.M{"_id": id}, update)
	c.observe("update", start, err)
	if err != nil {
		return c.wrap("update", err)
	}
	if res.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// findOneAndUpdate returns the document after update
func (c *collection) findOneAndUpdate(ctx context.Context, filter, update interface{}, out interface{}, upsert bool) error {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After).SetUpsert(upsert)
	start := time.Now()
	err := c.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(out)
	c.observe("find_one_and_update", start, err)
	return c.wrap("update", err)
}

func (c *collection) deleteOne(ctx context.Context, id primitive.ObjectID) error {
	start := time.Now()
	res, err := c.coll.DeleteOne(ctx, bson.M{"_id": id})
	c.observe("delete", start, err)
	if err != nil {
		return c.wrap("delete from", err)
	}
	if res.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func createdIn(from, to time.Time) bson.M {
	return bson.M{"createdAt": bson.M{"$gte": from, "$lt": to}}
}
