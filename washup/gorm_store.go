package washup

import (
	"context"

	"lounge-orders/models"

	"gorm.io/gorm"
)

// GormStore runs the washup steps as bulk statements
type GormStore struct {
	db *gorm.DB
	// keep lists usernames the users step never deletes
	keep []string
}

// NewGormStore builds the store. Usernames in keep survive the users step
// whatever their role, matching what user management allows.
func NewGormStore(db *gorm.DB, keep ...string) *GormStore {
	var names []string
	for _, k := range keep {
		if k != "" {
			names = append(names, k)
		}
	}
	return &GormStore{db: db, keep: names}
}

func (s *GormStore) ResetPrices(ctx context.Context) error {
	return s.db.WithContext(ctx).Model(&models.MenuItem{}).Where("1 = 1").Update("price", 0).Error
}

func (s *GormStore) ResetAvailability(ctx context.Context) error {
	return s.db.WithContext(ctx).Model(&models.MenuItem{}).Where("1 = 1").Update("available", false).Error
}

func (s *GormStore) DeleteOrderItems(ctx context.Context) error {
	return s.db.WithContext(ctx).Where("1 = 1").Delete(&models.OrderItem{}).Error
}

func (s *GormStore) DeleteOrders(ctx context.Context) error {
	return s.db.WithContext(ctx).Where("1 = 1").Delete(&models.Order{}).Error
}

// DeleteNonAdminUsers removes USER accounts; ADMIN rows and protected usernames stay
func (s *GormStore) DeleteNonAdminUsers(ctx context.Context) error {
	query := s.db.WithContext(ctx).Where("role = ?", models.RoleUser)
	if len(s.keep) > 0 {
		query = query.Where("username NOT IN ?", s.keep)
	}
	return query.Delete(&models.User{}).Error
}

func (s *GormStore) InTransaction(ctx context.Context, fn func(Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&GormStore{db: tx, keep: s.keep})
	})
}
