package batch

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/util"
)

const stampPrefix = "render/"

// Stamp identifies the inputs a render was made from.
type Stamp struct {
	Size     int64  `json:"size"`
	ModTime  int64  `json:"mod_time"` // unix nanoseconds
	Settings string `json:"settings"`
	RunID    string `json:"run_id"`
	Output   string `json:"output"`
}

// Same reports whether two stamps describe the same inputs; the run that
// produced them does not matter.
func (s Stamp) Same(o Stamp) bool {
	return s.Size == o.Size && s.ModTime == o.ModTime && s.Settings == o.Settings
}

// StampFile builds a stamp from a model file's size and modification time.
func StampFile(path, settings string) (Stamp, error) {
	info, err := os.Stat(path)
	if err != nil {
		return Stamp{}, err
	}
	return Stamp{Size: info.Size(), ModTime: info.ModTime().UnixNano(), Settings: settings}, nil
}

// Index remembers which models were rendered with which settings, so a
// rerun only renders what changed.
type Index struct {
	db *leveldb.DB
}

// OpenIndex opens or creates the index database at path.
func OpenIndex(path string) (*Index, error) {
	db, err := leveldb.OpenFile(path, nil)
	if err != nil {
		return nil, fmt.Errorf("batch: open index %s: %w", path, err)
	}
	return &Index{db: db}, nil
}

func (ix *Index) Close() error {
	return ix.db.Close()
}

// Lookup returns the stored stamp for a model.
func (ix *Index) Lookup(key string) (Stamp, bool, error) {
	data, err := ix.db.Get([]byte(stampPrefix+key), nil)
	if errors.Is(err, leveldb.ErrNotFound) {
		return Stamp{}, false, nil
	}
	if err != nil {
		return Stamp{}, false, fmt.Errorf("batch: index get %s: %w", key, err)
	}
	var st Stamp
	if err := json.Unmarshal(data, &st); err != nil {
		return Stamp{}, false, fmt.Errorf("batch: index decode %s: %w", key, err)
	}
	return st, true, nil
}

// Fresh reports whether key was last rendered from the same inputs and
// the recorded output still exists.
func (ix *Index) Fresh(key string, st Stamp) bool {
	old, ok, err := ix.Lookup(key)
	if err != nil || !ok || !old.Same(st) {
		return false
	}
	_, err = os.Stat(old.Output)
	return err == nil
}

// Record stores the stamp of a successful render.
func (ix *Index) Record(key string, st Stamp) error {
	data, err := json.Marshal(st)
	if err != nil {
		return err
	}
	if err := ix.db.Put([]byte(stampPrefix+key), data, nil); err != nil {
		return fmt.Errorf("batch: index put %s: %w", key, err)
	}
	return nil
}

// Forget drops a model from the index.
func (ix *Index) Forget(key string) error {
	return ix.db.Delete([]byte(stampPrefix+key), nil)
}

// Keys lists every indexed model.
func (ix *Index) Keys() ([]string, error) {
	iter := ix.db.NewIterator(util.BytesPrefix([]byte(stampPrefix)), nil)
	defer iter.Release()
	var keys []string
	for iter.Next() {
		keys = append(keys, string(iter.Key()[len(stampPrefix):]))
	}
	if err := iter.Error(); err != nil {
		return nil, fmt.Errorf("batch: index scan: %w", err)
	}
	return keys, nil
}
