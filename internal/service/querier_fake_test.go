package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/Observer7203/Online-Store-Test/internal/domain"
	"github.com/Observer7203/Online-Store-Test/internal/repository"
)

// fakeQuerier is an in-memory Querier for service tests. Transactions are
// not isolated; Commit and Rollback are no-ops unless failCreateOrder is set.
type fakeQuerier struct {
	mu     sync.Mutex
	nextID int64

	carts      map[int64]domain.Cart
	cartItems  map[int64]domain.CartItem
	products   map[int64]domain.Product
	attrValues []repository.ProductAttributeValueRow
	attributes map[int64]domain.Attribute
	categories []domain.Category
	orders     map[int64]domain.Order
	orderItems map[int64][]domain.OrderItem
	users      map[int64]domain.User
	tokens     map[string]fakeToken

	// failCreateOrder makes CreateOrder return this error.
	failCreateOrder error
}

type fakeToken struct {
	userID    int64
	expiresAt time.Time
}

func newFakeQuerier() *fakeQuerier {
	return &fakeQuerier{
		carts:      make(map[int64]domain.Cart),
		cartItems:  make(map[int64]domain.CartItem),
		products:   make(map[int64]domain.Product),
		attributes: make(map[int64]domain.Attribute),
		orders:     make(map[int64]domain.Order),
		orderItems: make(map[int64][]domain.OrderItem),
		users:      make(map[int64]domain.User),
		tokens:     make(map[string]fakeToken),
	}
}

var _ repository.Querier = (*fakeQuerier)(nil)

func uniqueViolation() error {
	return &pgconn.PgError{Code: "23505"}
}

func foreignKeyViolation() error {
	return &pgconn.PgError{Code: "23503"}
}

func (f *fakeQuerier) id() int64 {
	f.nextID++
	return f.nextID
}

// addProduct seeds a product and returns it.
func (f *fakeQuerier) addProduct(name, slug string, priceMinor int64) domain.Product {
	f.mu.Lock()
	defer f.mu.Unlock()
	p := domain.Product{ID: f.id(), Name: name, Slug: slug, PriceMinor: priceMinor, CreatedAt: time.Now()}
	f.products[p.ID] = p
	return p
}

func createAttr(name, code string, typ domain.AttributeType) repository.CreateAttributeParams {
	return repository.CreateAttributeParams{Name: name, Code: code, Type: typ}
}

// Transactions

type fakeTx struct{ q *fakeQuerier }

func (t *fakeTx) Queries() repository.Querier       { return t.q }
func (t *fakeTx) Commit(ctx context.Context) error  { return nil }
func (t *fakeTx) Rollback(ctx context.Context) error { return nil }

func (f *fakeQuerier) BeginTx(ctx context.Context) (repository.Tx, error) {
	return &fakeTx{q: f}, nil
}

// Carts

func (f *fakeQuerier) CreateUserCart(ctx context.Context, userID int64) (domain.Cart, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.carts {
		if c.UserID != nil && *c.UserID == userID {
			return domain.Cart{}, repository.ErrNoRows
		}
	}
	c := domain.Cart{ID: f.id(), UserID: &userID, CreatedAt: time.Now(), UpdatedAt: time.Now()}
	f.carts[c.ID] = c
	return c, nil
}

func (f *fakeQuerier) CreateGuestCart(ctx context.Context, token uuid.UUID) (domain.Cart, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.carts {
		if c.GuestToken != nil && *c.GuestToken == token {
			return domain.Cart{}, repository.ErrNoRows
		}
	}
	tok := token
	c := domain.Cart{ID: f.id(), GuestToken: &tok, CreatedAt: time.Now(), UpdatedAt: time.Now()}
	f.carts[c.ID] = c
	return c, nil
}

func (f *fakeQuerier) GetCartByUserID(ctx context.Context, userID int64) (domain.Cart, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.carts {
		if c.UserID != nil && *c.UserID == userID {
			return c, nil
		}
	}
	return domain.Cart{}, repository.ErrNoRows
}

func (f *fakeQuerier) GetGuestCart(ctx context.Context, token uuid.UUID) (domain.Cart, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.carts {
		if c.UserID == nil && c.GuestToken != nil && *c.GuestToken == token {
			return c, nil
		}
	}
	return domain.Cart{}, repository.ErrNoRows
}

func (f *fakeQuerier) RepointCartToUser(ctx context.Context, params repository.RepointCartToUserParams) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.carts[params.CartID]
	if !ok {
		return nil
	}
	c.UserID = &params.UserID
	c.GuestToken = nil
	c.UpdatedAt = time.Now()
	f.carts[params.CartID] = c
	return nil
}

func (f *fakeQuerier) DeleteCart(ctx context.Context, cartID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.carts, cartID)
	for id, it := range f.cartItems {
		if it.CartID == cartID {
			delete(f.cartItems, id)
		}
	}
	return nil
}

func (f *fakeQuerier) TouchCart(ctx context.Context, cartID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if c, ok := f.carts[cartID]; ok {
		c.UpdatedAt = time.Now()
		f.carts[cartID] = c
	}
	return nil
}

// Cart items

func (f *fakeQuerier) UpsertCartItem(ctx context.Context, params repository.UpsertCartItemParams) (repository.UpsertCartItemRow, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for id, it := range f.cartItems {
		if it.CartID == params.CartID && it.ProductID == params.ProductID {
			it.Qty += params.Qty
			f.cartItems[id] = it
			return repository.UpsertCartItemRow{Item: it, Inserted: false}, nil
		}
	}
	it := domain.CartItem{
		ID:            f.id(),
		CartID:        params.CartID,
		ProductID:     params.ProductID,
		Qty:           params.Qty,
		PriceSnapshot: params.PriceSnapshot,
	}
	f.cartItems[it.ID] = it
	return repository.UpsertCartItemRow{Item: it, Inserted: true}, nil
}

func (f *fakeQuerier) GetCartItems(ctx context.Context, cartID int64) ([]domain.CartItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var items []domain.CartItem
	for _, it := range f.cartItems {
		if it.CartID == cartID {
			items = append(items, it)
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	return items, nil
}

func (f *fakeQuerier) GetCartItemsWithProduct(ctx context.Context, cartID int64) ([]domain.CartViewItem, error) {
	items, _ := f.GetCartItems(ctx, cartID)
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.CartViewItem
	for _, it := range items {
		p := f.products[it.ProductID]
		out = append(out, domain.CartViewItem{
			ID:            it.ID,
			ProductID:     it.ProductID,
			Qty:           it.Qty,
			PriceSnapshot: it.PriceSnapshot,
			Product:       domain.ProductRef{ID: p.ID, Name: p.Name, Slug: p.Slug},
		})
	}
	return out, nil
}

func (f *fakeQuerier) UpdateCartItemQty(ctx context.Context, params repository.UpdateCartItemQtyParams) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	it, ok := f.cartItems[params.ID]
	if !ok || it.CartID != params.CartID {
		return repository.ErrNoRows
	}
	it.Qty = params.Qty
	f.cartItems[params.ID] = it
	return nil
}

func (f *fakeQuerier) DeleteCartItem(ctx context.Context, params repository.DeleteCartItemParams) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	it, ok := f.cartItems[params.ID]
	if !ok || it.CartID != params.CartID {
		return repository.ErrNoRows
	}
	delete(f.cartItems, params.ID)
	return nil
}

func (f *fakeQuerier) DeleteCartItems(ctx context.Context, cartID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for id, it := range f.cartItems {
		if it.CartID == cartID {
			delete(f.cartItems, id)
		}
	}
	return nil
}

// Orders

func (f *fakeQuerier) OrderIdempotencyKeyExists(ctx context.Context, key string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, o := range f.orders {
		if o.IdempotencyKey != nil && *o.IdempotencyKey == key {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeQuerier) CreateOrder(ctx context.Context, params repository.CreateOrderParams) (domain.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failCreateOrder != nil {
		return domain.Order{}, f.failCreateOrder
	}
	if params.IdempotencyKey != nil {
		for _, o := range f.orders {
			if o.IdempotencyKey != nil && *o.IdempotencyKey == *params.IdempotencyKey {
				return domain.Order{}, uniqueViolation()
			}
		}
	}
	o := domain.Order{
		ID:             f.id(),
		UserID:         params.UserID,
		GuestToken:     params.GuestToken,
		Email:          params.Email,
		Phone:          params.Phone,
		Status:         params.Status,
		TotalMinor:     params.TotalMinor,
		IdempotencyKey: params.IdempotencyKey,
		CreatedAt:      time.Now(),
	}
	f.orders[o.ID] = o
	return o, nil
}

func (f *fakeQuerier) CreateOrderItem(ctx context.Context, params repository.CreateOrderItemParams) (domain.OrderItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	it := domain.OrderItem{
		ID:            f.id(),
		OrderID:       params.OrderID,
		ProductID:     params.ProductID,
		NameSnapshot:  params.NameSnapshot,
		PriceSnapshot: params.PriceSnapshot,
		Qty:           params.Qty,
	}
	f.orderItems[params.OrderID] = append(f.orderItems[params.OrderID], it)
	return it, nil
}

func (f *fakeQuerier) ListOrdersByUser(ctx context.Context, userID int64) ([]domain.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.Order
	for _, o := range f.orders {
		if o.UserID != nil && *o.UserID == userID {
			out = append(out, o)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeQuerier) GetOrderItems(ctx context.Context, orderID int64) ([]domain.OrderItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.orderItems[orderID], nil
}

// Products

func (f *fakeQuerier) GetProductByID(ctx context.Context, id int64) (domain.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.products[id]
	if !ok {
		return domain.Product{}, repository.ErrNoRows
	}
	return p, nil
}

func (f *fakeQuerier) GetProductBySlug(ctx context.Context, slug string) (domain.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range f.products {
		if p.Slug == slug {
			return p, nil
		}
	}
	return domain.Product{}, repository.ErrNoRows
}

func (f *fakeQuerier) CreateProduct(ctx context.Context, params repository.CreateProductParams) (domain.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range f.products {
		if p.Slug == params.Slug {
			return domain.Product{}, uniqueViolation()
		}
	}
	p := domain.Product{
		ID:          f.id(),
		CategoryID:  params.CategoryID,
		Name:        params.Name,
		Slug:        params.Slug,
		Description: params.Description,
		PriceMinor:  params.PriceMinor,
		CreatedAt:   time.Now(),
	}
	f.products[p.ID] = p
	return p, nil
}

func (f *fakeQuerier) DeleteProduct(ctx context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.products[id]; !ok {
		return repository.ErrNoRows
	}
	// order_items references products without a cascade; deleting an ordered
	// product violates the foreign key.
	for _, items := range f.orderItems {
		for _, it := range items {
			if it.ProductID == id {
				return foreignKeyViolation()
			}
		}
	}
	delete(f.products, id)
	return nil
}

// filteredProducts applies category and price bounds. Attribute filters are
// exercised against real SQL in the repository tests, not here.
func (f *fakeQuerier) filteredProducts(filter domain.ProductFilter) []domain.Product {
	var out []domain.Product
	for _, p := range f.products {
		if len(filter.CategoryIDs) > 0 {
			if p.CategoryID == nil {
				continue
			}
			found := false
			for _, id := range filter.CategoryIDs {
				if *p.CategoryID == id {
					found = true
					break
				}
			}
			if !found {
				continue
			}
		}
		if filter.PriceMin != nil && p.PriceMinor < *filter.PriceMin {
			continue
		}
		if filter.PriceMax != nil && p.PriceMinor > *filter.PriceMax {
			continue
		}
		out = append(out, p)
	}

	switch filter.Sort {
	case domain.SortPriceAsc:
		sort.Slice(out, func(i, j int) bool { return out[i].PriceMinor < out[j].PriceMinor })
	case domain.SortPriceDesc:
		sort.Slice(out, func(i, j int) bool { return out[i].PriceMinor > out[j].PriceMinor })
	default:
		sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	}
	return out
}

func (f *fakeQuerier) CountProductsFiltered(ctx context.Context, filter domain.ProductFilter) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return int64(len(f.filteredProducts(filter))), nil
}

func (f *fakeQuerier) ListProductsFiltered(ctx context.Context, params repository.ListProductsFilteredParams) ([]domain.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	all := f.filteredProducts(params.Filter)
	if params.Offset >= len(all) {
		return nil, nil
	}
	end := params.Offset + params.Limit
	if end > len(all) {
		end = len(all)
	}
	return all[params.Offset:end], nil
}

func (f *fakeQuerier) ListProductAttributeValues(ctx context.Context, productIDs []int64) ([]repository.ProductAttributeValueRow, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []repository.ProductAttributeValueRow
	for _, r := range f.attrValues {
		for _, id := range productIDs {
			if r.ProductID == id {
				out = append(out, r)
			}
		}
	}
	return out, nil
}

// Attributes

func (f *fakeQuerier) ListAttributes(ctx context.Context) ([]domain.Attribute, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.Attribute
	for _, a := range f.attributes {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeQuerier) GetAttributeByCode(ctx context.Context, code string) (domain.Attribute, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, a := range f.attributes {
		if a.Code == code {
			return a, nil
		}
	}
	return domain.Attribute{}, repository.ErrNoRows
}

func (f *fakeQuerier) CreateAttribute(ctx context.Context, params repository.CreateAttributeParams) (domain.Attribute, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, a := range f.attributes {
		if a.Code == params.Code {
			return domain.Attribute{}, uniqueViolation()
		}
	}
	a := domain.Attribute{ID: f.id(), Name: params.Name, Code: params.Code, Type: params.Type}
	f.attributes[a.ID] = a
	return a, nil
}

func (f *fakeQuerier) DeleteAttribute(ctx context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.attributes[id]; !ok {
		return repository.ErrNoRows
	}
	delete(f.attributes, id)
	return nil
}

// Categories

func (f *fakeQuerier) ListCategories(ctx context.Context) ([]domain.Category, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]domain.Category, len(f.categories))
	copy(out, f.categories)
	return out, nil
}

func (f *fakeQuerier) GetCategoryByID(ctx context.Context, id int64) (domain.Category, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.categories {
		if c.ID == id {
			return c, nil
		}
	}
	return domain.Category{}, repository.ErrNoRows
}

// Users and tokens

func (f *fakeQuerier) CreateUser(ctx context.Context, params repository.CreateUserParams) (domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == params.Email {
			return domain.User{}, uniqueViolation()
		}
	}
	u := domain.User{
		ID:           f.id(),
		Name:         params.Name,
		Email:        params.Email,
		PasswordHash: params.PasswordHash,
		CreatedAt:    time.Now(),
	}
	f.users[u.ID] = u
	return u, nil
}

func (f *fakeQuerier) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return domain.User{}, repository.ErrNoRows
}

func (f *fakeQuerier) GetUserByID(ctx context.Context, id int64) (domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return domain.User{}, repository.ErrNoRows
	}
	return u, nil
}

func (f *fakeQuerier) CreateAuthToken(ctx context.Context, params repository.CreateAuthTokenParams) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tokens[params.TokenDigest] = fakeToken{userID: params.UserID, expiresAt: params.ExpiresAt}
	return nil
}

func (f *fakeQuerier) GetUserByTokenDigest(ctx context.Context, digest string) (domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.tokens[digest]
	if !ok || t.expiresAt.Before(time.Now()) {
		return domain.User{}, repository.ErrNoRows
	}
	u, ok := f.users[t.userID]
	if !ok {
		return domain.User{}, repository.ErrNoRows
	}
	return u, nil
}

func (f *fakeQuerier) DeleteAuthToken(ctx context.Context, digest string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.tokens, digest)
	return nil
}
