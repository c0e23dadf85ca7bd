package storage

import (
	"github.com/pkg/errors"

	"github.com/trezcool/kazi/core"
	"github.com/trezcool/kazi/storage/kv"
	"github.com/trezcool/kazi/storage/kv/boltkv"
	"github.com/trezcool/kazi/storage/kv/memkv"
	"github.com/trezcool/kazi/storage/kv/sqlkv"
)

// Open opens the kv.Store selected by conf.Storage.Driver.
// The sqlite store is migrated up before being returned.
func Open(conf *core.Config) (kv.Store, error) {
	switch conf.Storage.Driver {
	case core.StorageBolt, "":
		return boltkv.Open(conf.Storage.Path)
	case core.StorageSQLite:
		return sqlkv.OpenAndMigrate(conf.Storage.Path)
	case core.StorageMemory:
		return memkv.Open(), nil
	default:
		return nil, core.NewValidationError(errors.Errorf("unknown storage driver %q", conf.Storage.Driver))
	}
}
