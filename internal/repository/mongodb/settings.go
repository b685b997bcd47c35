package mongodb

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/meetocure/admin-api/internal/model"
	"github.com/meetocure/admin-api/internal/repository"
)

type settingsRepository struct {
	c *collection
}

var settingsSingleton = bson.M{"key": model.SettingsKey}

// FindOrCreate upserts on the singleton key, which has a unique index.
// $setOnInsert leaves an existing row untouched. When two first reads race,
// the losing insert fails on the index and the winner's row is read back.
func (r *settingsRepository) FindOrCreate(ctx context.Context, defaults model.GeneralSettings) (*model.Settings, error) {
	now := time.Now()
	update := bson.M{"$setOnInsert": bson.M{
		"general":   defaults,
		"createdAt": now,
		"updatedAt": now,
	}}
	var settings model.Settings
	err := r.c.findOneAndUpdate(ctx, settingsSingleton, update, &settings, true)
	if errors.Is(err, repository.ErrDuplicateKey) {
		err = r.c.findOne(ctx, settingsSingleton, &settings)
	}
	if err != nil {
		return nil, err
	}
	return &settings, nil
}

func (r *settingsRepository) UpdateGeneral(ctx context.Context, id primitive.ObjectID, general model.GeneralSettings) (*model.Settings, error) {
	update := bson.M{"$set": bson.M{"general": general, "updatedAt": time.Now()}}
	var settings model.Settings
	if err := r.c.findOneAndUpdate(ctx, bson.M{"_id": id}, update, &settings, false); err != nil {
		return nil, err
	}
	return &settings, nil
}

// adoptLegacySettings tags the oldest untagged settings row as the singleton
// when none is tagged yet, so rows written before the key existed are kept.
func adoptLegacySettings(ctx context.Context, c *collection) error {
	n, err := c.count(ctx, settingsSingleton)
	if err != nil || n > 0 {
		return err
	}

	opts := options.FindOneAndUpdate().SetSort(bson.D{{Key: "_id", Value: 1}})
	start := time.Now()
	err = c.coll.FindOneAndUpdate(ctx,
		bson.M{"key": bson.M{"$exists": false}},
		bson.M{"$set": bson.M{"key": model.SettingsKey}},
		opts,
	).Err()
	c.observe("adopt", start, err)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil
	}
	return c.wrap("adopt settings in", err)
}
