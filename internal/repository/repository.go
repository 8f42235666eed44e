// internal/repository/repository.go
//
// Store access goes through per-entity repository interfaces so that services
// never touch gorm directly and tests can substitute the in-memory
// implementations from repository/memory.
package repository

import (
	"errors"

	"gorm.io/gorm"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("duplicate record")
)

// Repositories bundles the concrete stores; constructed once at process start
// and handed to the services.
type Repositories struct {
	Users        UserRepository
	Applications VendorApplicationRepository
	Products     ProductRepository
	Ads          AdvertisementRepository
	Wishlist     WishlistRepository
	Cart         CartRepository
	Orders       OrderRepository
	Comments     CommentRepository
}

func NewGorm(db *gorm.DB) *Repositories {
	return &Repositories{
		Users:        NewGormUserRepository(db),
		Applications: NewGormVendorApplicationRepository(db),
		Products:     NewGormProductRepository(db),
		Ads:          NewGormAdvertisementRepository(db),
		Wishlist:     NewGormWishlistRepository(db),
		Cart:         NewGormCartRepository(db),
		Orders:       NewGormOrderRepository(db),
		Comments:     NewGormCommentRepository(db),
	}
}

func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrDuplicate
	default:
		return err
	}
}
