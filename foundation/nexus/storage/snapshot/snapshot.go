// Package snapshot provides a bolt backed store that persists the four
// in-memory stores so a node can survive a restart. The core defines no
// on-disk layout requirement; this is an optional convenience.
package snapshot

import (
	"encoding/binary"
	"encoding/json"
	"fmt"

	"github.com/boltdb/bolt"
	"github.com/nexusbt/nexus/foundation/nexus/accounts"
	"github.com/nexusbt/nexus/foundation/nexus/catalogue"
	"github.com/nexusbt/nexus/foundation/nexus/chain"
)

// Bucket and key names inside the bolt database.
var (
	storesBucket = []byte("stores")
	blocksBucket = []byte("blocks")
	accountsKey  = []byte("accounts")
	filesKey     = []byte("files")
	poolKey      = []byte("pool")
)

// Snapshot carries a consistent copy of the four owned stores.
type Snapshot struct {
	Accounts map[string]accounts.Info
	Files    []catalogue.File
	Pool     []chain.Tx
	Blocks   []chain.BlockData
}

// Store manages the bolt database holding snapshots.
type Store struct {
	db *bolt.DB
}

// New opens or creates the bolt database at the specified path.
func New(path string) (*Store, error) {
	db, err := bolt.Open(path, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("opening snapshot database %q: %w", path, err)
	}

	return &Store{db: db}, nil
}

// Close releases the underlying bolt database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Write persists the snapshot. The three mutable stores replace their
// previous values; blocks are keyed by number so re-writing the chain is
// idempotent.
func (s *Store) Write(snap Snapshot) error {
	return s.db.Update(func(btx *bolt.Tx) error {
		stores, err := btx.CreateBucketIfNotExists(storesBucket)
		if err != nil {
			return fmt.Errorf("creating stores bucket: %w", err)
		}

		if err := putJSON(stores, accountsKey, snap.Accounts); err != nil {
			return err
		}
		if err := putJSON(stores, filesKey, snap.Files); err != nil {
			return err
		}
		if err := putJSON(stores, poolKey, snap.Pool); err != nil {
			return err
		}

		blocks, err := btx.CreateBucketIfNotExists(blocksBucket)
		if err != nil {
			return fmt.Errorf("creating blocks bucket: %w", err)
		}

		for _, blockData := range snap.Blocks {
			if err := putJSON(blocks, numToBytes(blockData.Block.Number), blockData); err != nil {
				return err
			}
		}

		return nil
	})
}

// Load reads the most recent snapshot. The second return is false when
// the database holds no snapshot yet.
func (s *Store) Load() (Snapshot, bool, error) {
	var snap Snapshot
	var exists bool

	err := s.db.View(func(btx *bolt.Tx) error {
		stores := btx.Bucket(storesBucket)
		if stores == nil {
			return nil
		}
		exists = true

		if err := getJSON(stores, accountsKey, &snap.Accounts); err != nil {
			return err
		}
		if err := getJSON(stores, filesKey, &snap.Files); err != nil {
			return err
		}
		if err := getJSON(stores, poolKey, &snap.Pool); err != nil {
			return err
		}

		blocks := btx.Bucket(blocksBucket)
		if blocks == nil {
			return nil
		}

		return blocks.ForEach(func(k, v []byte) error {
			var blockData chain.BlockData
			if err := json.Unmarshal(v, &blockData); err != nil {
				return fmt.Errorf("decoding block %d: %w", binary.BigEndian.Uint64(k), err)
			}
			snap.Blocks = append(snap.Blocks, blockData)
			return nil
		})
	})
	if err != nil {
		return Snapshot{}, false, err
	}

	return snap, exists, nil
}

// =============================================================================

// putJSON marshals the value and stores it under the key.
func putJSON(bucket *bolt.Bucket, key []byte, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encoding %q: %w", key, err)
	}

	return bucket.Put(key, data)
}

// getJSON reads the key and unmarshals it into the value. A missing key
// leaves the value untouched.
func getJSON(bucket *bolt.Bucket, key []byte, value any) error {
	data := bucket.Get(key)
	if data == nil {
		return nil
	}

	if err := json.Unmarshal(data, value); err != nil {
		return fmt.Errorf("decoding %q: %w", key, err)
	}

	return nil
}

// numToBytes converts a block number into a big endian key so blocks
// iterate in chain order.
func numToBytes(num uint64) []byte {
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, num)
	return key
}
