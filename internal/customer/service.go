package customer

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/sync/singleflight"
)

// Cache stores the customer list between signups. GetList returns nil, nil on a miss.
type Cache interface {
	GetList(ctx context.Context) ([]Customer, error)
	SetList(ctx context.Context, list []Customer) error
	Invalidate(ctx context.Context) error
}

type Option func(*Service)

// WithCache enables caching of the customer list.
func WithCache(c Cache) Option {
	return func(s *Service) { s.cache = c }
}

// WithBcryptCost overrides bcrypt.DefaultCost. The range is checked by
// config.Load; bcrypt itself clamps costs below MinCost.
func WithBcryptCost(cost int) Option {
	return func(s *Service) { s.cost = cost }
}

// maxPasswordBytes is the longest input bcrypt accepts.
const maxPasswordBytes = 72

// ErrPasswordTooLong is returned for passwords bcrypt cannot hash.
var ErrPasswordTooLong = errors.New("password must be at most 72 bytes")

type Service struct {
	repo  Repository
	cache Cache
	cost  int
	log   *zap.Logger
	sf    singleflight.Group

	// generation is bumped by every signup; a list read started under an
	// older generation must not be written back to the cache.
	generation atomic.Uint64
}

func NewService(repo Repository, log *zap.Logger, opts ...Option) *Service {
	s := &Service{repo: repo, cost: bcrypt.DefaultCost, log: log}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

const listKey = "customers"

// List returns every customer. Concurrent callers share one query.
func (s *Service) List(ctx context.Context) ([]Customer, error) {
	v, err, _ := s.sf.Do(listKey, func() (interface{}, error) {
		gen := s.generation.Load()
		if s.cache != nil {
			list, err := s.cache.GetList(ctx)
			if err != nil {
				s.log.Warn("customer cache read failed", zap.Error(err))
			} else if list != nil {
				return list, nil
			}
		}

		list, err := s.repo.List(ctx)
		if err != nil {
			return nil, err
		}
		if s.cache != nil && s.generation.Load() == gen {
			if err := s.cache.SetList(ctx, list); err != nil {
				s.log.Warn("customer cache write failed", zap.Error(err))
			}
		}
		return list, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]Customer), nil
}

// Signup hashes the password and stores the customer with it.
func (s *Service) Signup(ctx context.Context, email, password string) (Customer, error) {
	email = normalizeEmail(email)
	if len(password) > maxPasswordBytes {
		return Customer{}, ErrPasswordTooLong
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return Customer{}, err
	}
	if err := s.repo.Create(ctx, email, string(hashed)); err != nil {
		return Customer{}, err
	}

	s.generation.Add(1)
	s.sf.Forget(listKey)
	if s.cache != nil {
		if err := s.cache.Invalidate(ctx); err != nil {
			s.log.Warn("customer cache invalidation failed", zap.Error(err))
		}
	}
	return Customer{Email: email}, nil
}

// Authenticate checks the password against the stored hash.
func (s *Service) Authenticate(ctx context.Context, email, password string) (Customer, error) {
	email = normalizeEmail(email)

	hash, err := s.repo.GetPasswordHash(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Customer{}, ErrInvalidCredentials
		}
		return Customer{}, err
	}
	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) != nil {
		return Customer{}, ErrInvalidCredentials
	}
	return Customer{Email: email}, nil
}

// normalizeEmail trims surrounding space and keeps the address as sent.
func normalizeEmail(email string) string {
	return strings.TrimSpace(email)
}
