// Package cache provides caching implementations for repository interfaces.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"employee_directory/internal/feature/employee/domain/entity"
	"employee_directory/internal/feature/employee/usecase"
)

var _ usecase.EmployeeRepository = (*CachingEmployeeRepository)(nil)

// CachingEmployeeRepository decorates an EmployeeRepository with Redis caching.
// Reads by list and by id are cached under the current generation of the
// namespace. Every successful mutation bumps the generation, so entries written
// by reads that started before the mutation are never served again.
// FindByEmail always reaches the store so uniqueness checks never see stale data.
type CachingEmployeeRepository struct {
	inner     usecase.EmployeeRepository
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
}

// NewCachingEmployeeRepository decorates an EmployeeRepository with Redis caching.
// If ttl is 0, it defaults to 1 minute. If namespace is empty, it uses "employees".
func NewCachingEmployeeRepository(rdb *redis.Client, ttl time.Duration, inner usecase.EmployeeRepository, namespace string) *CachingEmployeeRepository {
	if ttl <= 0 {
		ttl = time.Minute
	}
	if namespace == "" {
		namespace = "employees"
	}
	return &CachingEmployeeRepository{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: safe(namespace),
	}
}

// List returns all employees, checking the cache first.
func (c *CachingEmployeeRepository) List(ctx context.Context) ([]entity.Employee, error) {
	if c.rdb == nil {
		return c.inner.List(ctx)
	}

	gen, ok := c.generation(ctx)
	if !ok {
		return c.inner.List(ctx)
	}

	key := c.listKey(gen)
	var out []entity.Employee
	if c.get(ctx, key, &out) {
		return out, nil
	}

	out, err := c.inner.List(ctx)
	if err != nil {
		return nil, err
	}
	c.set(ctx, key, out)
	return out, nil
}

// FindByID returns one employee, checking the cache first.
// Not-found results are never cached.
func (c *CachingEmployeeRepository) FindByID(ctx context.Context, id uint) (*entity.Employee, error) {
	if c.rdb == nil {
		return c.inner.FindByID(ctx, id)
	}

	gen, ok := c.generation(ctx)
	if !ok {
		return c.inner.FindByID(ctx, id)
	}

	key := c.idKey(gen, id)
	var cached entity.Employee
	if c.get(ctx, key, &cached) {
		return &cached, nil
	}

	e, err := c.inner.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	c.set(ctx, key, e)
	return e, nil
}

// FindByEmail bypasses the cache.
func (c *CachingEmployeeRepository) FindByEmail(ctx context.Context, email string) (*entity.Employee, error) {
	return c.inner.FindByEmail(ctx, email)
}

// Create inserts through the inner repository and retires cached reads.
func (c *CachingEmployeeRepository) Create(ctx context.Context, e *entity.Employee) error {
	if err := c.inner.Create(ctx, e); err != nil {
		return err
	}
	c.invalidate(ctx)
	return nil
}

// Update writes through the inner repository and retires cached reads.
func (c *CachingEmployeeRepository) Update(ctx context.Context, e *entity.Employee) error {
	if err := c.inner.Update(ctx, e); err != nil {
		return err
	}
	c.invalidate(ctx)
	return nil
}

// Delete removes through the inner repository and retires cached reads.
func (c *CachingEmployeeRepository) Delete(ctx context.Context, id uint) (int64, error) {
	n, err := c.inner.Delete(ctx, id)
	if err != nil {
		return n, err
	}
	c.invalidate(ctx)
	return n, nil
}

// Purge deletes every key under the namespace. It is called at startup because
// rows may have changed while the server was down.
func (c *CachingEmployeeRepository) Purge(ctx context.Context) error {
	if c.rdb == nil {
		return nil
	}
	return c.deleteByPattern(ctx, c.namespace+":*")
}

// get loads key into dst. A corrupted entry is deleted and reported as a miss.
func (c *CachingEmployeeRepository) get(ctx context.Context, key string, dst any) bool {
	b, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil || len(b) == 0 {
		return false
	}
	if err := json.Unmarshal(b, dst); err != nil {
		_ = c.rdb.Del(ctx, key).Err()
		return false
	}
	return true
}

// set stores v under key (best effort).
func (c *CachingEmployeeRepository) set(ctx context.Context, key string, v any) {
	if b, err := json.Marshal(v); err == nil {
		_ = c.rdb.Set(ctx, key, b, c.ttl).Err()
	}
}

// invalidate bumps the namespace generation (best effort). Entries of older
// generations are left to expire after ttl.
func (c *CachingEmployeeRepository) invalidate(ctx context.Context) {
	if c.rdb == nil {
		return
	}
	_ = c.rdb.Incr(ctx, c.genKey()).Err()
}

// generation reads the current namespace generation. A missing key is
// generation 0. ok is false when Redis cannot answer, and the caller must
// not cache.
func (c *CachingEmployeeRepository) generation(ctx context.Context) (int64, bool) {
	gen, err := c.rdb.Get(ctx, c.genKey()).Int64()
	switch {
	case err == nil:
		return gen, true
	case errors.Is(err, redis.Nil):
		return 0, true
	default:
		return 0, false
	}
}

func (c *CachingEmployeeRepository) genKey() string {
	return c.namespace + ":gen"
}

func (c *CachingEmployeeRepository) listKey(gen int64) string {
	return fmt.Sprintf("%s:list:%d", c.namespace, gen)
}

func (c *CachingEmployeeRepository) idKey(gen int64, id uint) string {
	return fmt.Sprintf("%s:id:%d:%d", c.namespace, gen, id)
}

// deleteByPattern deletes all cache keys matching a given pattern using SCAN.
func (c *CachingEmployeeRepository) deleteByPattern(ctx context.Context, pattern string) error {
	var cursor uint64
	for {
		keys, cur, err := c.rdb.Scan(ctx, cursor, pattern, 200).Result()
		if err != nil {
			return err
		}
		if len(keys) > 0 {
			if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
				return err
			}
		}
		cursor = cur
		if cursor == 0 {
			break
		}
	}
	return nil
}
