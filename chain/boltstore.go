package chain

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"os"
	"path/filepath"

	"go.etcd.io/bbolt"
)

var (
	bucketBlocks = []byte("blocks")
	bucketHead   = []byte("chainhead")
	keyHead      = []byte("head")
)

// BoltBlockStore is the disk-backed BlockStore named in spec §4.6: every
// StoredBlock lives in one bucket keyed by header hash, and the chain-head
// pointer lives in its own single-entry bucket, written in the same bbolt
// transaction as the block it points at so a crash never leaves the head
// pointing at a block the store doesn't have.
type BoltBlockStore struct {
	db *bbolt.DB
}

// Compile-time interface check.
var _ BlockStore = (*BoltBlockStore)(nil)

// OpenBoltBlockStore opens or creates the bbolt database at dbPath,
// creating its parent directory and both buckets if they don't exist yet.
func OpenBoltBlockStore(dbPath string) (*BoltBlockStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0700); err != nil {
		return nil, fmt.Errorf("chain: create directory: %w", err)
	}
	db, err := bbolt.Open(dbPath, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("chain: open bolt db: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		for _, name := range [][]byte{bucketBlocks, bucketHead} {
			if _, err := tx.CreateBucketIfNotExists(name); err != nil {
				return fmt.Errorf("chain: create bucket %q: %w", name, err)
			}
		}
		return nil
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("chain: create buckets: %w", err)
	}

	return &BoltBlockStore{db: db}, nil
}

// Close closes the underlying database.
func (s *BoltBlockStore) Close() error { return s.db.Close() }

// Put stores a StoredBlock keyed by its header hash.
func (s *BoltBlockStore) Put(sb *StoredBlock) error {
	if sb == nil || sb.Header == nil {
		return fmt.Errorf("%w: stored block", ErrNilParam)
	}
	if len(sb.Header.Hash) != HashSize {
		return fmt.Errorf("%w: stored block hash", ErrInvalidHeader)
	}

	data, err := encodeGob(sb)
	if err != nil {
		return fmt.Errorf("chain: encode stored block: %w", err)
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		if err := tx.Bucket(bucketBlocks).Put(sb.Header.Hash, data); err != nil {
			return fmt.Errorf("chain: put stored block: %w", err)
		}
		return nil
	})
}

// Get retrieves a StoredBlock by header hash.
func (s *BoltBlockStore) Get(hash []byte) (*StoredBlock, error) {
	var sb StoredBlock
	err := s.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket(bucketBlocks).Get(hash)
		if data == nil {
			return ErrUnknownHeader
		}
		if err := decodeGob(data, &sb); err != nil {
			return fmt.Errorf("chain: decode stored block: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &sb, nil
}

// GetChainHead returns the current best-chain tip, or ErrStaleTip if none
// has been set.
func (s *BoltBlockStore) GetChainHead() (*StoredBlock, error) {
	var sb StoredBlock
	err := s.db.View(func(tx *bbolt.Tx) error {
		hash := tx.Bucket(bucketHead).Get(keyHead)
		if hash == nil {
			return ErrStaleTip
		}
		data := tx.Bucket(bucketBlocks).Get(hash)
		if data == nil {
			return ErrUnknownHeader
		}
		if err := decodeGob(data, &sb); err != nil {
			return fmt.Errorf("chain: decode chain head: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &sb, nil
}

// SetChainHead atomically stores sb and updates the chain-head pointer to
// it in one bbolt transaction, so a reader never observes a head hash that
// doesn't resolve to a block already on disk.
func (s *BoltBlockStore) SetChainHead(sb *StoredBlock) error {
	if sb == nil || sb.Header == nil {
		return fmt.Errorf("%w: stored block", ErrNilParam)
	}
	if len(sb.Header.Hash) != HashSize {
		return fmt.Errorf("%w: stored block hash", ErrInvalidHeader)
	}

	data, err := encodeGob(sb)
	if err != nil {
		return fmt.Errorf("chain: encode stored block: %w", err)
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		if err := tx.Bucket(bucketBlocks).Put(sb.Header.Hash, data); err != nil {
			return fmt.Errorf("chain: put stored block: %w", err)
		}
		if err := tx.Bucket(bucketHead).Put(keyHead, sb.Header.Hash); err != nil {
			return fmt.Errorf("chain: put chain head: %w", err)
		}
		return nil
	})
}

// encodeGob serializes a value using gob encoding.
func encodeGob(v interface{}) ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// decodeGob deserializes gob-encoded data into a value.
func decodeGob(data []byte, v interface{}) error {
	return gob.NewDecoder(bytes.NewReader(data)).Decode(v)
}
