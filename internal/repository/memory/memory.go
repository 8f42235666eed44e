// internal/repository/memory/memory.go
//
// In-memory implementations of the repository interfaces. They mirror the
// conditional-write semantics of the gorm implementations (unique pairs,
// guarded quantity updates, decide-once) behind a mutex, and back the service
// and middleware tests.
package memory

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/bazarcheck/bazarcheck-backend/internal/models"
	"github.com/bazarcheck/bazarcheck-backend/internal/repository"
	"github.com/bazarcheck/bazarcheck-backend/internal/utils"
)

func New() *repository.Repositories {
	return &repository.Repositories{
		Users:        NewUserRepository(),
		Applications: NewVendorApplicationRepository(),
		Products:     NewProductRepository(),
		Ads:          NewAdvertisementRepository(),
		Wishlist:     NewWishlistRepository(),
		Cart:         NewCartRepository(),
		Orders:       NewOrderRepository(),
		Comments:     NewCommentRepository(),
	}
}

func stamp(b *models.BaseModel) {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	now := time.Now()
	if b.CreatedAt.IsZero() {
		b.CreatedAt = now
	}
	b.UpdatedAt = now
}

func page[T any](items []T, params utils.PaginationParams) []T {
	offset := params.Offset()
	if offset >= len(items) {
		return nil
	}
	end := offset + params.Limit
	if end > len(items) {
		end = len(items)
	}
	return items[offset:end]
}

// --- users ---

type UserRepository struct {
	mu    sync.Mutex
	users map[string]*models.User // keyed by email
}

func NewUserRepository() *UserRepository {
	return &UserRepository{users: make(map[string]*models.User)}
}

func (r *UserRepository) Create(user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.users[user.Email]; exists {
		return repository.ErrDuplicate
	}
	stamp(&user.BaseModel)
	if user.Role == "" {
		user.Role = models.RoleUser
	}
	clone := *user
	r.users[user.Email] = &clone
	return nil
}

func (r *UserRepository) GetByEmail(email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, exists := r.users[email]
	if !exists {
		return nil, repository.ErrNotFound
	}
	clone := *user
	return &clone, nil
}

func (r *UserRepository) GetByID(id uuid.UUID) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, user := range r.users {
		if user.ID == id {
			clone := *user
			return &clone, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *UserRepository) RoleByEmail(email string) (models.Role, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, exists := r.users[email]
	if !exists {
		return "", repository.ErrNotFound
	}
	return user.Role, nil
}

func (r *UserRepository) List(emailFilter string, params utils.PaginationParams) ([]models.User, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var matched []models.User
	for _, user := range r.users {
		if emailFilter == "" || strings.Contains(strings.ToLower(user.Email), strings.ToLower(emailFilter)) {
			matched = append(matched, *user)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	total := int64(len(matched))
	return page(matched, params), total, nil
}

func (r *UserRepository) UpdateRole(id uuid.UUID, role models.Role) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, user := range r.users {
		if user.ID == id {
			user.Role = role
			user.UpdatedAt = time.Now()
			return nil
		}
	}
	return repository.ErrNotFound
}

func (r *UserRepository) UpdateRoleByEmail(email string, role models.Role) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, exists := r.users[email]
	if !exists {
		return repository.ErrNotFound
	}
	user.Role = role
	user.UpdatedAt = time.Now()
	return nil
}

func (r *UserRepository) UpdateProfile(email, name, photo string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, exists := r.users[email]
	if !exists {
		return repository.ErrNotFound
	}
	if name != "" {
		user.Name = name
	}
	if photo != "" {
		user.Photo = photo
	}
	user.UpdatedAt = time.Now()
	return nil
}

func (r *UserRepository) TouchLastSignedIn(email string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, exists := r.users[email]
	if !exists {
		return repository.ErrNotFound
	}
	user.LastSignedIn = &at
	return nil
}

// --- vendor applications ---

type VendorApplicationRepository struct {
	mu   sync.Mutex
	apps map[uuid.UUID]*models.VendorApplication
}

func NewVendorApplicationRepository() *VendorApplicationRepository {
	return &VendorApplicationRepository{apps: make(map[uuid.UUID]*models.VendorApplication)}
}

func (r *VendorApplicationRepository) Create(app *models.VendorApplication) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stamp(&app.BaseModel)
	if app.VendorStatus == "" {
		app.VendorStatus = models.ApplicationStatusPending
	}
	clone := *app
	r.apps[app.ID] = &clone
	return nil
}

func (r *VendorApplicationRepository) GetByID(id uuid.UUID) (*models.VendorApplication, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	app, exists := r.apps[id]
	if !exists {
		return nil, repository.ErrNotFound
	}
	clone := *app
	return &clone, nil
}

func (r *VendorApplicationRepository) HasPending(email string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, app := range r.apps {
		if app.ApplicantEmail == email && app.VendorStatus == models.ApplicationStatusPending {
			return true, nil
		}
	}
	return false, nil
}

func (r *VendorApplicationRepository) List(status models.ApplicationStatus, params utils.PaginationParams) ([]models.VendorApplication, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var matched []models.VendorApplication
	for _, app := range r.apps {
		if status == "" || app.VendorStatus == status {
			matched = append(matched, *app)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	total := int64(len(matched))
	return page(matched, params), total, nil
}

func (r *VendorApplicationRepository) Decide(id uuid.UUID, status models.ApplicationStatus, decidedAt time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	app, exists := r.apps[id]
	if !exists || app.VendorStatus != models.ApplicationStatusPending {
		return false, nil
	}
	app.VendorStatus = status
	app.DecidedAt = &decidedAt
	app.UpdatedAt = time.Now()
	return true, nil
}

// --- products ---

type ProductRepository struct {
	mu       sync.Mutex
	products map[uuid.UUID]*models.Product
}

func NewProductRepository() *ProductRepository {
	return &ProductRepository{products: make(map[uuid.UUID]*models.Product)}
}

func (r *ProductRepository) Create(product *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stamp(&product.BaseModel)
	if product.Status == "" {
		product.Status = models.ReviewStatusPending
	}
	clone := *product
	r.products[product.ID] = &clone
	return nil
}

func (r *ProductRepository) GetByID(id uuid.UUID) (*models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	product, exists := r.products[id]
	if !exists {
		return nil, repository.ErrNotFound
	}
	clone := *product
	return &clone, nil
}

func (r *ProductRepository) GetByIDs(ids []uuid.UUID) (map[uuid.UUID]models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	result := make(map[uuid.UUID]models.Product, len(ids))
	for _, id := range ids {
		if product, exists := r.products[id]; exists {
			result[id] = *product
		}
	}
	return result, nil
}

func (r *ProductRepository) IDsByVendor(email string) ([]uuid.UUID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var ids []uuid.UUID
	for _, product := range r.products {
		if product.VendorEmail == email {
			ids = append(ids, product.ID)
		}
	}
	return ids, nil
}

func (r *ProductRepository) ListByVendor(email string, params utils.PaginationParams) ([]models.Product, int64, error) {
	return r.list(func(p *models.Product) bool { return p.VendorEmail == email }, params)
}

func (r *ProductRepository) List(filter repository.ProductFilter, params utils.PaginationParams) ([]models.Product, int64, error) {
	return r.list(func(p *models.Product) bool {
		if filter.Status != "" && p.Status != filter.Status {
			return false
		}
		if filter.MarketName != "" && p.MarketName != filter.MarketName {
			return false
		}
		if filter.Search != "" {
			term := strings.ToLower(filter.Search)
			if !strings.Contains(strings.ToLower(p.ItemName), term) &&
				!strings.Contains(strings.ToLower(p.MarketName), term) {
				return false
			}
		}
		return true
	}, params)
}

func (r *ProductRepository) list(match func(*models.Product) bool, params utils.PaginationParams) ([]models.Product, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var matched []models.Product
	for _, product := range r.products {
		if match(product) {
			matched = append(matched, *product)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	total := int64(len(matched))
	return page(matched, params), total, nil
}

func (r *ProductRepository) Update(id uuid.UUID, updates map[string]interface{}) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	product, exists := r.products[id]
	if !exists {
		return repository.ErrNotFound
	}

	for key, value := range updates {
		switch key {
		case "item_name":
			product.ItemName = value.(string)
		case "market_name":
			product.MarketName = value.(string)
		case "vendor_name":
			product.VendorName = value.(string)
		case "date":
			product.Date = value.(time.Time)
		case "price_per_unit":
			product.PricePerUnit = value.(float64)
		case "price_history":
			product.PriceHistory = value.(models.PriceHistory)
		case "images":
			switch images := value.(type) {
			case pq.StringArray:
				product.Images = images
			case []string:
				product.Images = images
			}
		}
	}
	product.UpdatedAt = time.Now()
	return nil
}

func (r *ProductRepository) Delete(id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.products[id]; !exists {
		return repository.ErrNotFound
	}
	delete(r.products, id)
	return nil
}

func (r *ProductRepository) SetReviewStatus(id uuid.UUID, status models.ReviewStatus, reason, feedback string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	product, exists := r.products[id]
	if !exists {
		return false, nil
	}
	product.Status = status
	product.RejectionReason = reason
	product.RejectionFeedback = feedback
	product.UpdatedAt = time.Now()
	return true, nil
}

// --- advertisements ---

type AdvertisementRepository struct {
	mu  sync.Mutex
	ads map[uuid.UUID]*models.Advertisement
}

func NewAdvertisementRepository() *AdvertisementRepository {
	return &AdvertisementRepository{ads: make(map[uuid.UUID]*models.Advertisement)}
}

func (r *AdvertisementRepository) Create(ad *models.Advertisement) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stamp(&ad.BaseModel)
	if ad.Status == "" {
		ad.Status = models.ReviewStatusPending
	}
	clone := *ad
	r.ads[ad.ID] = &clone
	return nil
}

func (r *AdvertisementRepository) GetByID(id uuid.UUID) (*models.Advertisement, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ad, exists := r.ads[id]
	if !exists {
		return nil, repository.ErrNotFound
	}
	clone := *ad
	return &clone, nil
}

func (r *AdvertisementRepository) ListByCreator(email string, params utils.PaginationParams) ([]models.Advertisement, int64, error) {
	return r.list(func(a *models.Advertisement) bool { return a.AdCreatedBy == email }, params)
}

func (r *AdvertisementRepository) List(status models.ReviewStatus, params utils.PaginationParams) ([]models.Advertisement, int64, error) {
	return r.list(func(a *models.Advertisement) bool {
		return status == "" || a.Status == status
	}, params)
}

func (r *AdvertisementRepository) list(match func(*models.Advertisement) bool, params utils.PaginationParams) ([]models.Advertisement, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var matched []models.Advertisement
	for _, ad := range r.ads {
		if match(ad) {
			matched = append(matched, *ad)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	total := int64(len(matched))
	return page(matched, params), total, nil
}

func (r *AdvertisementRepository) Update(id uuid.UUID, updates map[string]interface{}) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	ad, exists := r.ads[id]
	if !exists {
		return repository.ErrNotFound
	}
	for key, value := range updates {
		switch key {
		case "title":
			ad.Title = value.(string)
		case "short_description":
			ad.ShortDescription = value.(string)
		case "image":
			ad.Image = value.(string)
		}
	}
	ad.UpdatedAt = time.Now()
	return nil
}

func (r *AdvertisementRepository) Delete(id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.ads[id]; !exists {
		return repository.ErrNotFound
	}
	delete(r.ads, id)
	return nil
}

func (r *AdvertisementRepository) SetReviewStatus(id uuid.UUID, status models.ReviewStatus, reason, feedback string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ad, exists := r.ads[id]
	if !exists {
		return false, nil
	}
	ad.Status = status
	ad.RejectionReason = reason
	ad.RejectionFeedback = feedback
	ad.UpdatedAt = time.Now()
	return true, nil
}

// --- wishlist ---

type WishlistRepository struct {
	mu    sync.Mutex
	items map[uuid.UUID]*models.WishlistItem
}

func NewWishlistRepository() *WishlistRepository {
	return &WishlistRepository{items: make(map[uuid.UUID]*models.WishlistItem)}
}

func (r *WishlistRepository) Add(item *models.WishlistItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.items {
		if existing.OwnerEmail == item.OwnerEmail && existing.ProductID == item.ProductID {
			return repository.ErrDuplicate
		}
	}
	stamp(&item.BaseModel)
	clone := *item
	r.items[item.ID] = &clone
	return nil
}

func (r *WishlistRepository) ListByOwner(email string) ([]models.WishlistItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var matched []models.WishlistItem
	for _, item := range r.items {
		if item.OwnerEmail == email {
			matched = append(matched, *item)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})
	return matched, nil
}

func (r *WishlistRepository) Delete(id uuid.UUID, ownerEmail string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, exists := r.items[id]
	if !exists || item.OwnerEmail != ownerEmail {
		return false, nil
	}
	delete(r.items, id)
	return true, nil
}

// --- cart ---

type CartRepository struct {
	mu    sync.Mutex
	items map[uuid.UUID]*models.CartItem
}

func NewCartRepository() *CartRepository {
	return &CartRepository{items: make(map[uuid.UUID]*models.CartItem)}
}

func (r *CartRepository) AddOrIncrement(item *models.CartItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if item.Quantity < 1 {
		item.Quantity = 1
	}
	for _, existing := range r.items {
		if existing.BuyerEmail == item.BuyerEmail && existing.ProductID == item.ProductID {
			existing.Quantity += item.Quantity
			existing.UpdatedAt = time.Now()
			*item = *existing
			return nil
		}
	}
	stamp(&item.BaseModel)
	clone := *item
	r.items[item.ID] = &clone
	return nil
}

func (r *CartRepository) GetByID(id uuid.UUID, buyerEmail string) (*models.CartItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, exists := r.items[id]
	if !exists || item.BuyerEmail != buyerEmail {
		return nil, repository.ErrNotFound
	}
	clone := *item
	return &clone, nil
}

func (r *CartRepository) ListByBuyer(email string) ([]models.CartItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var matched []models.CartItem
	for _, item := range r.items {
		if item.BuyerEmail == email {
			matched = append(matched, *item)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})
	return matched, nil
}

func (r *CartRepository) AdjustQuantity(id uuid.UUID, buyerEmail string, delta int) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, exists := r.items[id]
	if !exists || item.BuyerEmail != buyerEmail {
		return false, nil
	}
	if item.Quantity+delta < 1 {
		return false, nil
	}
	item.Quantity += delta
	item.UpdatedAt = time.Now()
	return true, nil
}

func (r *CartRepository) Delete(id uuid.UUID, buyerEmail string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, exists := r.items[id]
	if !exists || item.BuyerEmail != buyerEmail {
		return false, nil
	}
	delete(r.items, id)
	return true, nil
}

func (r *CartRepository) Clear(buyerEmail string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, item := range r.items {
		if item.BuyerEmail == buyerEmail {
			delete(r.items, id)
		}
	}
	return nil
}

// --- orders ---

type OrderRepository struct {
	mu     sync.Mutex
	orders map[uuid.UUID]*models.Order
}

func NewOrderRepository() *OrderRepository {
	return &OrderRepository{orders: make(map[uuid.UUID]*models.Order)}
}

func (r *OrderRepository) Create(order *models.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stamp(&order.BaseModel)
	for i := range order.Items {
		stamp(&order.Items[i].BaseModel)
		order.Items[i].OrderID = order.ID
	}
	clone := *order
	clone.Items = append([]models.OrderItem(nil), order.Items...)
	r.orders[order.ID] = &clone
	return nil
}

func (r *OrderRepository) GetByID(id uuid.UUID) (*models.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	order, exists := r.orders[id]
	if !exists {
		return nil, repository.ErrNotFound
	}
	clone := *order
	clone.Items = append([]models.OrderItem(nil), order.Items...)
	return &clone, nil
}

func (r *OrderRepository) ListPaid(params utils.PaginationParams) ([]models.Order, int64, error) {
	return r.list(func(o *models.Order) bool { return o.Status == models.OrderStatusPaid }, params)
}

func (r *OrderRepository) ListByBuyer(email string, params utils.PaginationParams) ([]models.Order, int64, error) {
	return r.list(func(o *models.Order) bool { return o.BuyerEmail == email }, params)
}

func (r *OrderRepository) list(match func(*models.Order) bool, params utils.PaginationParams) ([]models.Order, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var matched []models.Order
	for _, order := range r.orders {
		if match(order) {
			clone := *order
			clone.Items = append([]models.OrderItem(nil), order.Items...)
			matched = append(matched, clone)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	total := int64(len(matched))
	return page(matched, params), total, nil
}

func (r *OrderRepository) ListPaidItemsByProductIDs(productIDs []uuid.UUID, params utils.PaginationParams) ([]repository.VendorOrderRow, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	idSet := make(map[uuid.UUID]bool, len(productIDs))
	for _, id := range productIDs {
		idSet[id] = true
	}

	var orders []*models.Order
	for _, order := range r.orders {
		if order.Status == models.OrderStatusPaid {
			orders = append(orders, order)
		}
	}
	sort.Slice(orders, func(i, j int) bool {
		return orders[i].CreatedAt.After(orders[j].CreatedAt)
	})

	var rows []repository.VendorOrderRow
	for _, order := range orders {
		for _, item := range order.Items {
			if !idSet[item.ProductID] {
				continue
			}
			rows = append(rows, repository.VendorOrderRow{
				OrderID:    order.ID,
				BuyerEmail: order.BuyerEmail,
				BuyerName:  order.BuyerName,
				PaidAt:     order.PaidAt,
				ProductID:  item.ProductID,
				ItemName:   item.ItemName,
				Image:      item.Image,
				Price:      item.Price,
				Quantity:   item.Quantity,
			})
		}
	}

	total := int64(len(rows))
	return page(rows, params), total, nil
}

// --- comments ---

type CommentRepository struct {
	mu       sync.Mutex
	comments map[uuid.UUID]*models.Comment
}

func NewCommentRepository() *CommentRepository {
	return &CommentRepository{comments: make(map[uuid.UUID]*models.Comment)}
}

func (r *CommentRepository) Create(comment *models.Comment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stamp(&comment.BaseModel)
	clone := *comment
	r.comments[comment.ID] = &clone
	return nil
}

func (r *CommentRepository) ListByProduct(productID uuid.UUID) ([]models.Comment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var matched []models.Comment
	for _, comment := range r.comments {
		if comment.ProductID == productID {
			matched = append(matched, *comment)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].Date.After(matched[j].Date)
	})
	return matched, nil
}
