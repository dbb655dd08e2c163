package repository

import (
	"context"
	"fmt"
	"sync"

	"movies-service/internal/data/entity"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// memoryCollection is an insertion-ordered map guarded by a RWMutex.
// Values are copied on the way in and out so callers never share state
// with the store.
type memoryCollection[T any] struct {
	mu    sync.RWMutex
	order []string
	data  map[string]T
	clone func(T) T
}

func newMemoryCollection[T any](clone func(T) T) *memoryCollection[T] {
	return &memoryCollection[T]{
		data:  make(map[string]T),
		clone: clone,
	}
}

func (c *memoryCollection[T]) list(keep func(T) bool) []T {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]T, 0, len(c.order))
	for _, id := range c.order {
		v := c.data[id]
		if keep == nil || keep(v) {
			out = append(out, c.clone(v))
		}
	}
	return out
}

func (c *memoryCollection[T]) get(id string) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	v, ok := c.data[id]
	if !ok {
		var zero T
		return zero, false
	}
	return c.clone(v), true
}

// insert reports false, leaving the stored value alone, when id is taken.
func (c *memoryCollection[T]) insert(id string, v T) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.data[id]; exists {
		return false
	}
	c.order = append(c.order, id)
	c.data[id] = c.clone(v)
	return true
}

func (c *memoryCollection[T]) replace(id string, v T) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.data[id]; !exists {
		return false
	}
	c.data[id] = c.clone(v)
	return true
}

func (c *memoryCollection[T]) remove(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.data[id]; !exists {
		return
	}
	delete(c.data, id)
	for i, existing := range c.order {
		if existing == id {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
}

func (c *memoryCollection[T]) clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.order = nil
	c.data = make(map[string]T)
}

// ==================== MOVIE INFO ====================

type movieInfoMemoryRepository struct {
	coll *memoryCollection[*entity.MovieInfo]
	log  *zap.Logger
}

func NewMovieInfoMemoryRepository(log *zap.Logger) MovieInfoRepository {
	return &movieInfoMemoryRepository{
		coll: newMemoryCollection((*entity.MovieInfo).Clone),
		log:  log.With(zap.String("repository", "movie_info"), zap.String("driver", "memory")),
	}
}

func (r *movieInfoMemoryRepository) FindAll(ctx context.Context) ([]*entity.MovieInfo, error) {
	return r.coll.list(nil), nil
}

func (r *movieInfoMemoryRepository) FindByYear(ctx context.Context, year int) ([]*entity.MovieInfo, error) {
	return r.coll.list(func(m *entity.MovieInfo) bool { return m.Year == year }), nil
}

func (r *movieInfoMemoryRepository) FindByID(ctx context.Context, id string) (*entity.MovieInfo, error) {
	movie, ok := r.coll.get(id)
	if !ok {
		return nil, nil
	}
	return movie, nil
}

func (r *movieInfoMemoryRepository) Create(ctx context.Context, movie *entity.MovieInfo) error {
	if movie.ID == "" {
		movie.ID = uuid.NewString()
	}
	if !r.coll.insert(movie.ID, movie) {
		return fmt.Errorf("create movie info %s: %w", movie.ID, ErrDuplicateID)
	}

	r.log.Debug("Movie info stored", zap.String("movie_info_id", movie.ID))
	return nil
}

func (r *movieInfoMemoryRepository) Update(ctx context.Context, movie *entity.MovieInfo) error {
	if !r.coll.replace(movie.ID, movie) {
		return ErrRecordNotFound
	}
	return nil
}

func (r *movieInfoMemoryRepository) DeleteByID(ctx context.Context, id string) error {
	r.coll.remove(id)
	return nil
}

func (r *movieInfoMemoryRepository) DeleteAll(ctx context.Context) error {
	r.coll.clear()
	return nil
}

// ==================== REVIEW ====================

type reviewMemoryRepository struct {
	coll *memoryCollection[*entity.Review]
	log  *zap.Logger
}

func NewReviewMemoryRepository(log *zap.Logger) ReviewRepository {
	return &reviewMemoryRepository{
		coll: newMemoryCollection(func(r *entity.Review) *entity.Review {
			c := *r
			return &c
		}),
		log: log.With(zap.String("repository", "review"), zap.String("driver", "memory")),
	}
}

func (r *reviewMemoryRepository) FindAll(ctx context.Context) ([]*entity.Review, error) {
	return r.coll.list(nil), nil
}

func (r *reviewMemoryRepository) FindByMovieInfoID(ctx context.Context, movieInfoID string) ([]*entity.Review, error) {
	return r.coll.list(func(rv *entity.Review) bool { return rv.MovieInfoID == movieInfoID }), nil
}

func (r *reviewMemoryRepository) FindByID(ctx context.Context, id string) (*entity.Review, error) {
	review, ok := r.coll.get(id)
	if !ok {
		return nil, nil
	}
	return review, nil
}

func (r *reviewMemoryRepository) Create(ctx context.Context, review *entity.Review) error {
	if review.ID == "" {
		review.ID = uuid.NewString()
	}
	if !r.coll.insert(review.ID, review) {
		return fmt.Errorf("create review %s: %w", review.ID, ErrDuplicateID)
	}

	r.log.Debug("Review stored", zap.String("review_id", review.ID))
	return nil
}

func (r *reviewMemoryRepository) Update(ctx context.Context, review *entity.Review) error {
	if !r.coll.replace(review.ID, review) {
		return ErrRecordNotFound
	}
	return nil
}

func (r *reviewMemoryRepository) DeleteByID(ctx context.Context, id string) error {
	r.coll.remove(id)
	return nil
}

func (r *reviewMemoryRepository) DeleteAll(ctx context.Context) error {
	r.coll.clear()
	return nil
}
