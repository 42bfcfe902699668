// Package storage opens the repositories of the configured storage driver.
package storage

import (
	"context"
	"database/sql"

	"github.com/pkg/errors"

	"github.com/MDharunPrasad/giglabs-intern-venture/core"
	"github.com/MDharunPrasad/giglabs-intern-venture/core/ambassador"
	"github.com/MDharunPrasad/giglabs-intern-venture/core/assignment"
	"github.com/MDharunPrasad/giglabs-intern-venture/core/enrollment"
	"github.com/MDharunPrasad/giglabs-intern-venture/core/meeting"
	"github.com/MDharunPrasad/giglabs-intern-venture/core/submission"
	"github.com/MDharunPrasad/giglabs-intern-venture/core/user"
	"github.com/MDharunPrasad/giglabs-intern-venture/storage/database"
	inmemdb "github.com/MDharunPrasad/giglabs-intern-venture/storage/database/inmem"
	boiledrepos "github.com/MDharunPrasad/giglabs-intern-venture/storage/database/sqlboiler"
	sqlxrepos "github.com/MDharunPrasad/giglabs-intern-venture/storage/database/sqlx"
	"github.com/MDharunPrasad/giglabs-intern-venture/storage/kvstore"
)

type Repositories struct {
	DB *sql.DB // nil with the memory driver

	Users       user.Repository
	Enrollments enrollment.Repository
	Submissions submission.Repository
	Meetings    meeting.Repository
	Assignments assignment.Repository
	Ambassadors ambassador.Repository
}

// Open returns the repositories of conf.StorageDriver.
// With the postgres driver, the database is created and migrated when needed.
func Open(conf *core.Config) (*Repositories, error) {
	switch conf.StorageDriver {
	case core.StorageMemory, "":
		db := inmemdb.Open()
		return &Repositories{
			Users:       inmemdb.NewUserRepository(db),
			Enrollments: inmemdb.NewEnrollmentRepository(db),
			Submissions: inmemdb.NewSubmissionRepository(db),
			Meetings:    inmemdb.NewMeetingRepository(db),
			Assignments: inmemdb.NewAssignmentRepository(db),
			Ambassadors: inmemdb.NewAmbassadorRepository(db),
		}, nil

	case core.StoragePostgres:
		if err := database.CreateIfNotExist(conf); err != nil {
			return nil, errors.Wrap(err, "creating database")
		}
		db, err := database.Open(conf)
		if err != nil {
			return nil, errors.Wrap(err, "opening database")
		}
		if err = database.Migrate(db); err != nil {
			_ = db.Close()
			return nil, errors.Wrap(err, "migrating database")
		}
		return &Repositories{
			DB:          db,
			Users:       boiledrepos.NewUserRepository(db),
			Enrollments: sqlxrepos.NewEnrollmentRepository(db),
			Submissions: sqlxrepos.NewSubmissionRepository(db),
			Meetings:    sqlxrepos.NewMeetingRepository(db),
			Assignments: sqlxrepos.NewAssignmentRepository(db),
			Ambassadors: sqlxrepos.NewAmbassadorRepository(db),
		}, nil
	}
	return nil, errors.Errorf("unknown storage driver %q", conf.StorageDriver)
}

func (r *Repositories) Close() error {
	if r.DB == nil {
		return nil
	}
	return r.DB.Close()
}

// KeyValueStore is the Redis store when conf.Redis.Addr is set and an in-process store otherwise.
type KeyValueStore struct {
	core.KeyValueStore
	close func() error
}

func OpenKeyValueStore(ctx context.Context, conf core.RedisConfig) (*KeyValueStore, error) {
	if conf.Addr == "" {
		return &KeyValueStore{KeyValueStore: kvstore.NewMemoryStore(), close: func() error { return nil }}, nil
	}
	client, err := kvstore.NewRedisClient(ctx, conf)
	if err != nil {
		return nil, errors.Wrap(err, "connecting to redis")
	}
	return &KeyValueStore{KeyValueStore: kvstore.NewRedisStore(client), close: client.Close}, nil
}

func (kv *KeyValueStore) Close() error {
	return kv.close()
}
