// Package orm is a thin chainable layer over gorm that times every query
// and can read through a cache.
package orm

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/pizzeria/pkg/metrics"
)

// Cacher is the subset of pkg/cache the query builder needs. It is declared
// here so orm and cache do not import each other.
type Cacher interface {
	Get(ctx context.Context, key string, dest interface{}) bool
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
}

type Query struct {
	db    *gorm.DB
	cache Cacher
}

// New wraps db. cache may be nil, in which case Cache always hits the database.
func New(db *gorm.DB, cache Cacher) *Query {
	return &Query{db: db, cache: cache}
}

func (q *Query) with(db *gorm.DB) *Query {
	return &Query{db: db, cache: q.cache}
}

func (q *Query) WithContext(ctx context.Context) *Query {
	return q.with(q.db.WithContext(ctx))
}

func (q *Query) Model(v interface{}) *Query {
	return q.with(q.db.Model(v))
}

func (q *Query) Where(query string, args ...interface{}) *Query {
	return q.with(q.db.Where(query, args...))
}

func (q *Query) Order(value string) *Query {
	return q.with(q.db.Order(value))
}

func (q *Query) Preload(association string) *Query {
	return q.with(q.db.Preload(association))
}

func (q *Query) Get(dest interface{}) error {
	defer metrics.ObserveDBQuery("select", time.Now())
	return q.db.Find(dest).Error
}

func (q *Query) First(dest interface{}) error {
	defer metrics.ObserveDBQuery("select", time.Now())
	return q.db.First(dest).Error
}

func (q *Query) Create(value interface{}) error {
	defer metrics.ObserveDBQuery("insert", time.Now())
	return q.db.Create(value).Error
}

// Update sets a single column on the current Model.
func (q *Query) Update(column string, value interface{}) error {
	defer metrics.ObserveDBQuery("update", time.Now())
	return q.db.Update(column, value).Error
}

func (q *Query) Delete(value interface{}) error {
	defer metrics.ObserveDBQuery("delete", time.Now())
	return q.db.Delete(value).Error
}

// Transaction runs fn inside a database transaction; fn's Query is bound to it.
func (q *Query) Transaction(fn func(tx *Query) error) error {
	return q.db.Transaction(func(tx *gorm.DB) error {
		return fn(q.with(tx))
	})
}

// Cache loads dest from the cache under key, or runs the query and stores the
// result for ttl. A failed cache write does not fail the read.
func (q *Query) Cache(ctx context.Context, key string, ttl time.Duration, dest interface{}) error {
	if q.cache != nil && q.cache.Get(ctx, key, dest) {
		return nil
	}

	if err := q.Get(dest); err != nil {
		return err
	}

	if q.cache != nil {
		_ = q.cache.Set(ctx, key, dest, ttl)
	}
	return nil
}
