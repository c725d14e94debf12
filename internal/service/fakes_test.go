package service

import (
	"sync"

	"github.com/vishdevs/inventory-backend/internal/model"
	"github.com/vishdevs/inventory-backend/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// fakeStore is an in-memory stand-in for the database. The fake
// transaction manager serializes transactions the way row locks serialize
// overlapping sales on a real database, and rolls back by restoring a
// snapshot taken at transaction start.
type fakeStore struct {
	mu       sync.Mutex
	products map[uuid.UUID]model.Product
	sales    map[uuid.UUID]model.Sale
	items    []model.SaleItem
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		products: make(map[uuid.UUID]model.Product),
		sales:    make(map[uuid.UUID]model.Sale),
	}
}

func (f *fakeStore) addProduct(p model.Product) uuid.UUID {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	f.products[p.ID] = p
	return p.ID
}

func (f *fakeStore) product(id uuid.UUID) (model.Product, bool) {
	p, ok := f.products[id]
	return p, ok
}

func (f *fakeStore) itemsForSale(saleID uuid.UUID) []model.SaleItem {
	var out []model.SaleItem
	for _, it := range f.items {
		if it.SaleID == saleID {
			out = append(out, it)
		}
	}
	return out
}

func (f *fakeStore) snapshot() (map[uuid.UUID]model.Product, map[uuid.UUID]model.Sale, []model.SaleItem) {
	products := make(map[uuid.UUID]model.Product, len(f.products))
	for id, p := range f.products {
		products[id] = p
	}
	sales := make(map[uuid.UUID]model.Sale, len(f.sales))
	for id, s := range f.sales {
		sales[id] = s
	}
	items := make([]model.SaleItem, len(f.items))
	copy(items, f.items)
	return products, sales, items
}

type fakeTxManager struct {
	store *fakeStore
}

func (m *fakeTxManager) Do(fn func(tx *gorm.DB) error) error {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()

	products, sales, items := m.store.snapshot()
	if err := fn(nil); err != nil {
		m.store.products = products
		m.store.sales = sales
		m.store.items = items
		return err
	}
	return nil
}

type fakeProductRepo struct {
	store *fakeStore
}

func (r *fakeProductRepo) Create(product *model.Product) error {
	product.ID = r.store.addProduct(*product)
	return nil
}

func (r *fakeProductRepo) FindAll() ([]model.Product, error) {
	out := make([]model.Product, 0, len(r.store.products))
	for _, p := range r.store.products {
		out = append(out, p)
	}
	return out, nil
}

func (r *fakeProductRepo) FindByID(id uuid.UUID) (*model.Product, error) {
	p, ok := r.store.products[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &p, nil
}

func (r *fakeProductRepo) Update(tx *gorm.DB, product *model.Product) error {
	r.store.products[product.ID] = *product
	return nil
}

func (r *fakeProductRepo) Delete(id uuid.UUID) error {
	if _, ok := r.store.products[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.store.products, id)
	return nil
}

func (r *fakeProductRepo) LockForUpdate(tx *gorm.DB, id uuid.UUID) (*model.Product, error) {
	p, ok := r.store.products[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &p, nil
}

func (r *fakeProductRepo) DecrementStock(tx *gorm.DB, id uuid.UUID, quantity int) error {
	p := r.store.products[id]
	p.Stock -= quantity
	r.store.products[id] = p
	return nil
}

type fakeSaleRepo struct {
	store *fakeStore
}

func (r *fakeSaleRepo) Insert(tx *gorm.DB, sale *model.Sale) error {
	if sale.ID == uuid.Nil {
		sale.ID = uuid.New()
	}
	r.store.sales[sale.ID] = *sale
	return nil
}

func (r *fakeSaleRepo) InsertItem(tx *gorm.DB, item *model.SaleItem) error {
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	r.store.items = append(r.store.items, *item)
	return nil
}

func (r *fakeSaleRepo) UpdateTotal(tx *gorm.DB, id uuid.UUID, total float64) error {
	s, ok := r.store.sales[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	s.TotalAmount = total
	r.store.sales[id] = s
	return nil
}

func (r *fakeSaleRepo) FindAll() ([]model.Sale, error) {
	out := make([]model.Sale, 0, len(r.store.sales))
	for _, s := range r.store.sales {
		out = append(out, s)
	}
	return out, nil
}

func (r *fakeSaleRepo) FindRecent(limit int) ([]model.Sale, error) {
	all, _ := r.FindAll()
	if len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

func (r *fakeSaleRepo) FindByID(id uuid.UUID) (*model.Sale, error) {
	s, ok := r.store.sales[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	s.Items = r.store.itemsForSale(id)
	return &s, nil
}

func (r *fakeSaleRepo) GetDashboardSummary() (*repository.DashboardSummary, error) {
	summary := &repository.DashboardSummary{
		TotalProducts: int64(len(r.store.products)),
		OrdersToday:   int64(len(r.store.sales)),
	}
	for _, p := range r.store.products {
		summary.ItemsInStock += int64(p.Stock)
		if p.Stock <= repository.LowStockThreshold {
			summary.LowStockItems++
		}
	}
	summary.ReorderAlerts = summary.LowStockItems
	for _, s := range r.store.sales {
		summary.TodayRevenue += s.TotalAmount
	}
	return summary, nil
}
