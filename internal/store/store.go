// Package store holds the gorm-backed repositories for the local database.
// Every query is scoped to a single user.
package store

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"
)

// ErrNotFound is returned when a lookup, update or delete matches no row.
var ErrNotFound = errors.New("record not found")

// ErrDuplicate is returned when an insert hits a unique constraint.
var ErrDuplicate = errors.New("record already exists")

// Store vends repositories bound to one database handle, which may be a
// transaction.
type Store struct {
	db *gorm.DB
}

// New creates a Store over db.
func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// DB returns the underlying handle.
func (s *Store) DB() *gorm.DB {
	return s.db
}

func (s *Store) Ingredients() IngredientRepository {
	return &ingredientRepository{db: s.db}
}

func (s *Store) Recipes() RecipeRepository {
	return &recipeRepository{db: s.db}
}

func (s *Store) DailyEats() DailyEatsRepository {
	return &dailyEatsRepository{db: s.db}
}

func (s *Store) Users() UserRepository {
	return &userRepository{db: s.db}
}

// Transaction runs fn with a Store bound to a new transaction. The
// transaction commits when fn returns nil and rolls back otherwise.
func (s *Store) Transaction(ctx context.Context, fn func(tx *Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&Store{db: tx})
	})
}

func translate(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

// isDuplicate reports a unique constraint violation. The sqlite drivers are
// matched by message since modernc errors are not translated by gorm.
func isDuplicate(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey) || strings.Contains(err.Error(), "UNIQUE constraint failed")
}
