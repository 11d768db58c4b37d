package service

import (
	"database/sql"
	"time"

	"go-shop-admin/internal/model"
	"go-shop-admin/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// passthroughTx stands in for *gorm.DB in tests: it runs the function
// directly with a nil handle, which the fake repositories ignore.
type passthroughTx struct{}

func (passthroughTx) Transaction(fc func(tx *gorm.DB) error, opts ...*sql.TxOptions) error {
	return fc(nil)
}

type fakeProductRepo struct {
	products map[uuid.UUID]*model.Product
}

func newFakeProductRepo(products ...*model.Product) *fakeProductRepo {
	repo := &fakeProductRepo{products: make(map[uuid.UUID]*model.Product)}
	for _, p := range products {
		if p.ID == uuid.Nil {
			p.ID = uuid.New()
		}
		stored := *p
		repo.products[p.ID] = &stored
	}
	return repo
}

func (r *fakeProductRepo) Create(product *model.Product) error {
	if product.ID == uuid.Nil {
		product.ID = uuid.New()
	}
	stored := *product
	r.products[product.ID] = &stored
	return nil
}

func (r *fakeProductRepo) Update(_ *gorm.DB, product *model.Product) error {
	stored := *product
	r.products[product.ID] = &stored
	return nil
}

func (r *fakeProductRepo) Delete(id uuid.UUID) error {
	delete(r.products, id)
	return nil
}

func (r *fakeProductRepo) FindAll(filter repository.ProductFilter) ([]model.Product, int64, error) {
	var out []model.Product
	for _, p := range r.products {
		out = append(out, *p)
	}
	return out, int64(len(out)), nil
}

func (r *fakeProductRepo) FindByID(id uuid.UUID) (*model.Product, error) {
	stored, ok := r.products[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	product := *stored
	return &product, nil
}

func (r *fakeProductRepo) FindBySKU(sku string) (*model.Product, error) {
	for _, stored := range r.products {
		if stored.SKU == sku {
			product := *stored
			return &product, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeProductRepo) FindByIDForUpdate(tx *gorm.DB, id uuid.UUID) (*model.Product, error) {
	return r.FindByID(id)
}

func (r *fakeProductRepo) UpdateStock(_ *gorm.DB, id uuid.UUID, newStock int) error {
	stored, ok := r.products[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	stored.Stock = newStock
	return nil
}

func (r *fakeProductRepo) FindLowStock(threshold int) ([]model.Product, error) {
	var out []model.Product
	for _, p := range r.products {
		if p.Stock < threshold {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *fakeProductRepo) GetCatalogStats(lowStockThreshold int) (*repository.CatalogStats, error) {
	stats := &repository.CatalogStats{}
	for _, p := range r.products {
		stats.TotalProducts++
		if p.Stock < lowStockThreshold {
			stats.LowStockCount++
		}
	}
	return stats, nil
}

type fakeOrderRepo struct {
	orders      map[uuid.UUID]*model.Order
	usedNumbers map[string]bool
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{
		orders:      make(map[uuid.UUID]*model.Order),
		usedNumbers: make(map[string]bool),
	}
}

func (r *fakeOrderRepo) Create(_ *gorm.DB, order *model.Order) error {
	if order.ID == uuid.Nil {
		order.ID = uuid.New()
	}
	stored := *order
	r.orders[order.ID] = &stored
	r.usedNumbers[order.OrderNumber] = true
	return nil
}

func (r *fakeOrderRepo) Update(_ *gorm.DB, order *model.Order) error {
	stored := *order
	r.orders[order.ID] = &stored
	return nil
}

// Delete keeps the number reserved, like the soft-deleted row would.
func (r *fakeOrderRepo) Delete(_ *gorm.DB, id uuid.UUID) error {
	delete(r.orders, id)
	return nil
}

func (r *fakeOrderRepo) FindAll(filter repository.OrderFilter) ([]model.Order, int64, error) {
	var out []model.Order
	for _, o := range r.orders {
		out = append(out, *o)
	}
	return out, int64(len(out)), nil
}

func (r *fakeOrderRepo) FindByID(id uuid.UUID) (*model.Order, error) {
	stored, ok := r.orders[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	order := *stored
	return &order, nil
}

func (r *fakeOrderRepo) FindByIDForUpdate(tx *gorm.DB, id uuid.UUID) (*model.Order, error) {
	return r.FindByID(id)
}

func (r *fakeOrderRepo) ExistsByNumber(_ *gorm.DB, number string) (bool, error) {
	return r.usedNumbers[number], nil
}

func (r *fakeOrderRepo) CountByProduct(productID uuid.UUID) (int64, error) {
	var count int64
	for _, o := range r.orders {
		if o.ProductID == productID {
			count++
		}
	}
	return count, nil
}

func (r *fakeOrderRepo) GetStats() (*repository.OrderStats, error) {
	stats := &repository.OrderStats{}
	for _, o := range r.orders {
		stats.Total++
		switch o.Status {
		case model.OrderStatusPending:
			stats.Pending++
		case model.OrderStatusProcessing:
			stats.Processing++
		case model.OrderStatusCompleted:
			stats.Completed++
			stats.TotalRevenue = stats.TotalRevenue.Add(o.TotalPrice)
		case model.OrderStatusCancelled:
			stats.Cancelled++
		}
	}
	return stats, nil
}

type fakeUserRepo struct {
	users map[uuid.UUID]*model.User
}

func newFakeUserRepo(users ...*model.User) *fakeUserRepo {
	repo := &fakeUserRepo{users: make(map[uuid.UUID]*model.User)}
	for _, u := range users {
		if u.ID == uuid.Nil {
			u.ID = uuid.New()
		}
		stored := *u
		repo.users[u.ID] = &stored
	}
	return repo
}

func (r *fakeUserRepo) Create(user *model.User) error {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	stored := *user
	r.users[user.ID] = &stored
	return nil
}

func (r *fakeUserRepo) Update(user *model.User) error {
	stored := *user
	r.users[user.ID] = &stored
	return nil
}

func (r *fakeUserRepo) Delete(id uuid.UUID) error {
	delete(r.users, id)
	return nil
}

func (r *fakeUserRepo) FindAll(filter repository.UserFilter) ([]model.User, int64, error) {
	var out []model.User
	for _, u := range r.users {
		out = append(out, *u)
	}
	return out, int64(len(out)), nil
}

func (r *fakeUserRepo) FindByID(id uuid.UUID) (*model.User, error) {
	stored, ok := r.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	user := *stored
	return &user, nil
}

func (r *fakeUserRepo) FindByEmail(email string) (*model.User, error) {
	for _, stored := range r.users {
		if stored.Email == email {
			user := *stored
			return &user, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

type fakeMovementRepo struct {
	movements []*model.StockMovement
}

func newFakeMovementRepo() *fakeMovementRepo {
	return &fakeMovementRepo{}
}

func (r *fakeMovementRepo) Create(_ *gorm.DB, movement *model.StockMovement) error {
	if movement.ID == uuid.Nil {
		movement.ID = uuid.New()
	}
	stored := *movement
	r.movements = append(r.movements, &stored)
	return nil
}

func (r *fakeMovementRepo) FindAll(page, limit int) ([]model.StockMovement, int64, error) {
	var out []model.StockMovement
	for _, m := range r.movements {
		out = append(out, *m)
	}
	return out, int64(len(out)), nil
}

func (r *fakeMovementRepo) GetMovementSeries(startDate, endDate time.Time) ([]repository.MovementPoint, error) {
	return nil, nil
}

// Interface compliance
var (
	_ repository.TxManager               = passthroughTx{}
	_ repository.ProductRepository       = (*fakeProductRepo)(nil)
	_ repository.OrderRepository         = (*fakeOrderRepo)(nil)
	_ repository.UserRepository          = (*fakeUserRepo)(nil)
	_ repository.StockMovementRepository = (*fakeMovementRepo)(nil)
)
