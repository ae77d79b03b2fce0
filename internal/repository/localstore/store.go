// Package localstore is the bbolt-backed local cache: one flat key space of
// JSON blobs, one key per logical record collection. It is the fallback side
// of reconciliation and is assumed always available once opened.
package localstore

import (
	"fmt"

	bolt "go.etcd.io/bbolt"
)

const bucketName = "bakery_engine"

// Key names. Tenant-scoped keys embed the site ID so no cross-tenant record
// can ever land under another tenant's key.
const (
	SitesKey             = "sites"
	DefaultCakesKey      = "default:cakes"
	DefaultCategoriesKey = "default:categories"
)

func CakesKey(siteID string) string {
	return "cakes:" + siteID
}

func CouponsKey(siteID string) string {
	return "coupons:" + siteID
}

func CategoriesKey(siteID string) string {
	return "categories:" + siteID
}

type Store struct {
	db *bolt.DB
}

func Open(path string) (*Store, error) {
	db, err := bolt.Open(path, 0o600, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open local store at %s: %w", path, err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketName))
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create local store bucket: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Get(key string) ([]byte, bool) {
	var value []byte
	s.db.View(func(tx *bolt.Tx) error {
		if v := tx.Bucket([]byte(bucketName)).Get([]byte(key)); v != nil {
			value = make([]byte, len(v))
			copy(value, v)
		}
		return nil
	})
	return value, value != nil
}

func (s *Store) Put(key string, value []byte) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucketName)).Put([]byte(key), value)
	})
}

func (s *Store) Delete(key string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucketName)).Delete([]byte(key))
	})
}

func (s *Store) Close() error {
	return s.db.Close()
}
