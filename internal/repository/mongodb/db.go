package mongodb

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/meetocure/admin-api/internal/config"
	"github.com/meetocure/admin-api/internal/repository"
	"github.com/meetocure/admin-api/pkg/metrics"
)

const (
	adminsCollection         = "admins"
	doctorsCollection        = "doctors"
	verificationsCollection  = "doctorverifications"
	hospitalsCollection      = "hospitallogins"
	patientsCollection       = "patients"
	patientDetailsCollection = "patientdetails"
	appointmentsCollection   = "appointments"
	settingsCollection       = "settings"
)

// DB wraps a connected client and the configured database
type DB struct {
	client  *mongo.Client
	db      *mongo.Database
	metrics *metrics.Metrics
}

// Connect dials the server and pings it once
func Connect(ctx context.Context, cfg config.DatabaseConfig, m *metrics.Metrics) (*DB, error) {
	opts := options.Client().ApplyURI(cfg.URI)
	if cfg.MaxPoolSize > 0 {
		opts.SetMaxPoolSize(cfg.MaxPoolSize)
	}
	// every remote call is attempted exactly once
	opts.SetRetryReads(false).SetRetryWrites(false)

	ctx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	log.Info().Str("database", cfg.Name).Msg("connected to mongodb")
	return &DB{client: client, db: client.Database(cfg.Name), metrics: m}, nil
}

func (d *DB) Ping(ctx context.Context) error {
	return d.client.Ping(ctx, nil)
}

func (d *DB) Close(ctx context.Context) error {
	return d.client.Disconnect(ctx)
}

// EnsureIndexes creates the unique indexes the repositories rely on for
// conflict detection. It is idempotent.
func (d *DB) EnsureIndexes(ctx context.Context) error {
	unique := func(keys ...string) mongo.IndexModel {
		doc := bson.D{}
		for _, k := range keys {
			doc = append(doc, bson.E{Key: k, Value: 1})
		}
		return mongo.IndexModel{Keys: doc, Options: options.Index().SetUnique(true)}
	}
	plain := func(key string) mongo.IndexModel {
		return mongo.IndexModel{Keys: bson.D{{Key: key, Value: 1}}}
	}
	// untagged rows left by older writers must not collide on a null key
	tagged := bson.M{"key": bson.M{"$exists": true}}
	singleton := mongo.IndexModel{
		Keys:    bson.D{{Key: "key", Value: 1}},
		Options: options.Index().SetUnique(true).SetPartialFilterExpression(tagged),
	}

	if err := adoptLegacySettings(ctx, d.collection(settingsCollection)); err != nil {
		return err
	}

	indexes := map[string][]mongo.IndexModel{
		adminsCollection:         {unique("email")},
		doctorsCollection:        {unique("email"), unique("mobileNumber"), plain("verificationDetails")},
		hospitalsCollection:      {unique("email")},
		patientsCollection:       {unique("phone")},
		patientDetailsCollection: {plain("patient")},
		appointmentsCollection:   {plain("patient"), plain("doctor"), plain("appointment_date"), plain("createdAt")},
		settingsCollection:       {singleton},
	}

	for name, models := range indexes {
		start := time.Now()
		_, err := d.db.Collection(name).Indexes().CreateMany(ctx, models)
		d.metrics.ObserveDB(name, "create_indexes", start, err)
		if err != nil {
			return fmt.Errorf("failed to create indexes on %s: %w", name, err)
		}
		log.Info().Str("collection", name).Int("indexes", len(models)).Msg("indexes ensured")
	}
	return nil
}

// Repositories wires every repository against d
func (d *DB) Repositories() *repository.Repositories {
	return &repository.Repositories{
		Admins:         &adminRepository{c: d.collection(adminsCollection)},
		Doctors:        &doctorRepository{c: d.collection(doctorsCollection)},
		Verifications:  &verificationRepository{c: d.collection(verificationsCollection)},
		Hospitals:      &hospitalRepository{c: d.collection(hospitalsCollection)},
		Patients:       &patientRepository{c: d.collection(patientsCollection)},
		PatientDetails: &patientDetailsRepository{c: d.collection(patientDetailsCollection)},
		Appointments:   &appointmentRepository{c: d.collection(appointmentsCollection)},
		Settings:       &settingsRepository{c: d.collection(settingsCollection)},
		Health:         d,
	}
}

func (d *DB) collection(name string) *collection {
	return &collection{coll: d.db.Collection(name), name: name, metrics: d.metrics}
}
