package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"nightfly_backend/internal/config"
	"nightfly_backend/pkg/utils"
)

var (
	// ErrNotFound is returned when no document has the requested key.
	ErrNotFound = errors.New("document not found")

	// ErrDuplicateKey is returned when inserting a key that already exists.
	ErrDuplicateKey = errors.New("document key already exists")

	// ErrNotConfigured is returned by every call on a store whose connection
	// settings were missing at startup.
	ErrNotConfigured = errors.New("document store is not configured")
)

// Collection names a top-level collection and the document field holding its natural key.
type Collection struct {
	Name string
	Key  string
}

var (
	Users    = Collection{Name: "users", Key: "mobile"}
	Clubs    = Collection{Name: "clubs", Key: "id"}
	Managers = Collection{Name: "managers", Key: "id"}
	Orders   = Collection{Name: "orders", Key: "id"}
)

// AllCollections lists the collections created at store open.
var AllCollections = []Collection{Users, Clubs, Managers, Orders}

// Filter matches documents whose top-level string fields equal the given values.
// An empty Filter matches everything.
type Filter map[string]string

// Store is a minimal document store. Documents are Go values carrying both json and
// bson tags with identical field names; every implementation must honor those names
// so Filter and Merge fields address the same data regardless of backend.
//
// Find returns newest-first by insertion. Merge sets only the given top-level fields
// and fails with ErrNotFound when key is absent. No operation spans documents.
type Store interface {
	Insert(ctx context.Context, c Collection, key string, doc any) error
	Upsert(ctx context.Context, c Collection, key string, doc any) error
	Get(ctx context.Context, c Collection, key string, out any) error
	Find(ctx context.Context, c Collection, filter Filter, out any) error
	Merge(ctx context.Context, c Collection, key string, fields map[string]any) error
	Delete(ctx context.Context, c Collection, key string) error
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}

// Open connects the store selected by cfg.Driver. A driver whose connection string
// is missing yields an unconfigured store instead of an error, so only the routes
// touching persistence fail.
func Open(ctx context.Context, cfg config.StoreConfig) (Store, error) {
	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	switch cfg.Driver {
	case "memory":
		utils.LogWarn("Using in-memory document store; data is lost on restart")
		return NewMemoryStore(), nil
	case "postgres":
		if cfg.PostgresDSN == "" {
			utils.LogWarn("DATABASE_URL is not set; persistence routes will fail", map[string]interface{}{"driver": cfg.Driver})
			return Unconfigured(), nil
		}
		return OpenPostgres(connectCtx, cfg.PostgresDSN)
	case "mongo", "":
		if cfg.MongoURI == "" {
			utils.LogWarn("MONGODB_URI is not set; persistence routes will fail", map[string]interface{}{"driver": "mongo"})
			return Unconfigured(), nil
		}
		return OpenMongo(connectCtx, cfg.MongoURI, cfg.MongoDatabase)
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Driver)
	}
}

type unconfiguredStore struct{}

// Unconfigured returns a Store whose every operation fails with ErrNotConfigured.
func Unconfigured() Store { return unconfiguredStore{} }

func (unconfiguredStore) Insert(context.Context, Collection, string, any) error { return ErrNotConfigured }
func (unconfiguredStore) Upsert(context.Context, Collection, string, any) error { return ErrNotConfigured }
func (unconfiguredStore) Get(context.Context, Collection, string, any) error    { return ErrNotConfigured }
func (unconfiguredStore) Find(context.Context, Collection, Filter, any) error   { return ErrNotConfigured }
func (unconfiguredStore) Merge(context.Context, Collection, string, map[string]any) error {
	return ErrNotConfigured
}
func (unconfiguredStore) Delete(context.Context, Collection, string) error { return ErrNotConfigured }
func (unconfiguredStore) Ping(context.Context) error                       { return ErrNotConfigured }
func (unconfiguredStore) Close(context.Context) error                      { return nil }
