// Copyright 2018 Dolthub, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package xasl

import (
	"time"

	"github.com/boltdb/bolt"
	"github.com/mitchellh/hashstructure"
	uuid "github.com/satori/go.uuid"
)

// PlanKey identifies one cached plan: the normalized, post-auto-
// parameterization predicate shape plus the statement's resolved spec ids.
// Two statements that differ only in literal values they can share a
// plan through auto-parameterization hash to the same key.
type PlanKey struct {
	NormalizedShape interface{}
	ResolvedSpecIDs []uint32
}

// PlanCache is a forward/lookup-only cache from PlanKey to a serialized
// plan stream: a bolt bucket per session, so concurrent ParserContexts
// never collide on a key even if their statements coincidentally hash the
// same. There is no crash-recovery or write-ahead log here; a process
// restart simply starts with an empty cache, which is within the explicit
// scope this component covers.
type PlanCache struct {
	db *bolt.DB
}

// OpenPlanCache opens (creating if absent) a bolt-backed plan cache at path.
func OpenPlanCache(path string) (*PlanCache, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, err
	}
	return &PlanCache{db: db}, nil
}

// Close releases the underlying bolt database.
func (c *PlanCache) Close() error {
	return c.db.Close()
}

// SessionBucket returns the namespace a given ParserContext session should
// cache its plans under, so two concurrent sessions with coincidentally
// identical PlanKeys never read each other's serialized stream.
func SessionBucket(sessionID uuid.UUID) []byte {
	return []byte("plan:" + sessionID.String())
}

func planCacheKey(key PlanKey) ([]byte, error) {
	h, err := hashstructure.Hash(key, nil)
	if err != nil {
		return nil, err
	}
	b := make([]byte, 8)
	for i := 0; i < 8; i++ {
		b[i] = byte(h >> (8 * uint(i)))
	}
	return b, nil
}

// Get looks up a previously cached serialized plan for key within sessionID's
// namespace. ok is false on a cache miss or if the bucket does not exist yet.
func (c *PlanCache) Get(sessionID uuid.UUID, key PlanKey) (stream []byte, ok bool, err error) {
	k, err := planCacheKey(key)
	if err != nil {
		return nil, false, err
	}
	err = c.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(SessionBucket(sessionID))
		if b == nil {
			return nil
		}
		if v := b.Get(k); v != nil {
			ok = true
			stream = append([]byte(nil), v...)
		}
		return nil
	})
	return stream, ok, err
}

// Put stores a serialized plan stream for key within sessionID's namespace.
func (c *PlanCache) Put(sessionID uuid.UUID, key PlanKey, stream []byte) error {
	k, err := planCacheKey(key)
	if err != nil {
		return err
	}
	return c.db.Update(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists(SessionBucket(sessionID))
		if err != nil {
			return err
		}
		return b.Put(k, stream)
	})
}

// Invalidate drops every cached plan for sessionID, e.g. when that
// ParserContext's session ends.
func (c *PlanCache) Invalidate(sessionID uuid.UUID) error {
	return c.db.Update(func(tx *bolt.Tx) error {
		return tx.DeleteBucket(SessionBucket(sessionID))
	})
}
