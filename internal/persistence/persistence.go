package persistence

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/markusressel/pid2go/internal/simulation"
	"github.com/markusressel/pid2go/internal/ui"
	bolt "go.etcd.io/bbolt"
)

const (
	BucketRuns = "runs"
)

type Persistence interface {
	Init() error

	SaveRun(record simulation.Record) (err error)
	LoadRun(id string) (*simulation.Record, error)
	ListRuns() ([]simulation.Record, error)
	DeleteRun(id string) (err error)
}

type persistence struct {
	dbPath string
}

func NewPersistence(dbPath string) Persistence {
	p := &persistence{
		dbPath: dbPath,
	}
	return p
}

func (p persistence) Init() (err error) {
	// get parent path of dbPath
	parentDir := filepath.Dir(p.dbPath)
	_, err = os.Stat(parentDir)
	if errors.Is(err, os.ErrNotExist) {
		// create directory
		ui.Info("Creating directory for db: %s", parentDir)
		err = os.MkdirAll(parentDir, 0755)
		if err != nil {
			return err
		}
	}
	return nil
}

func (p persistence) openPersistence() (db *bolt.DB, err error) {
	db, err = bolt.Open(p.dbPath, 0600, &bolt.Options{Timeout: 1 * time.Minute})
	if err != nil {
		return nil, err
	}
	return db, nil
}

// SaveRun saves the given simulation run to persistence, replacing an existing run with the same id
func (p persistence) SaveRun(record simulation.Record) (err error) {
	if len(record.Id) <= 0 {
		return errors.New("run has no id")
	}

	db, err := p.openPersistence()
	if err != nil {
		return err
	}
	defer func(db *bolt.DB) {
		_ = db.Close()
	}(db)

	data, err := json.Marshal(record)
	if err != nil {
		return err
	}

	return db.Update(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists([]byte(BucketRuns))
		if err != nil {
			return fmt.Errorf("create bucket: %s", err)
		}
		return b.Put([]byte(record.Id), data)
	})
}

// LoadRun loads the simulation run with the given id from persistence.
// Returns os.ErrNotExist if there is no such run.
func (p persistence) LoadRun(id string) (*simulation.Record, error) {
	db, err := p.openPersistence()
	if err != nil {
		return nil, err
	}
	defer func(db *bolt.DB) {
		_ = db.Close()
	}(db)

	var record *simulation.Record
	err = db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(BucketRuns))
		if b == nil {
			return os.ErrNotExist
		}
		v := b.Get([]byte(id))
		if v == nil {
			return os.ErrNotExist
		}

		var result simulation.Record
		err := json.Unmarshal(v, &result)
		if err != nil {
			// if we cannot read the saved data, delete it
			ui.Warning("Unable to unmarshal saved run %s: %v", id, err)
			err := b.Delete([]byte(id))
			if err != nil {
				ui.Error("Unable to delete corrupt data key %s: %v", id, err)
			}
			return os.ErrNotExist
		}

		record = &result
		return nil
	})

	return record, err
}

// ListRuns returns all stored simulation runs, oldest first
func (p persistence) ListRuns() ([]simulation.Record, error) {
	db, err := p.openPersistence()
	if err != nil {
		return nil, err
	}
	defer func(db *bolt.DB) {
		_ = db.Close()
	}(db)

	var result []simulation.Record
	err = db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(BucketRuns))
		if b == nil {
			// nothing saved yet
			return nil
		}
		return b.ForEach(func(k, v []byte) error {
			var record simulation.Record
			if err := json.Unmarshal(v, &record); err != nil {
				ui.Warning("Skipping unreadable run %s: %v", string(k), err)
				return nil
			}
			result = append(result, record)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})
	return result, nil
}

// DeleteRun deletes the simulation run with the given id from persistence.
// Returns os.ErrNotExist if there is no such run.
func (p persistence) DeleteRun(id string) error {
	db, err := p.openPersistence()
	if err != nil {
		return err
	}
	defer func(db *bolt.DB) {
		_ = db.Close()
	}(db)

	return db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(BucketRuns))
		if b == nil {
			return os.ErrNotExist
		}
		v := b.Get([]byte(id))
		if v == nil {
			return os.ErrNotExist
		}

		return b.Delete([]byte(id))
	})
}
