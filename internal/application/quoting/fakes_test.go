package quoting

import (
	"context"

	"github.com/jhoicas/Cotiza-api/internal/domain/entity"
	"github.com/jhoicas/Cotiza-api/internal/domain/repository"
)

// Fakes en memoria para los puertos de persistencia. Las transacciones se
// simulan ejecutando el closure directamente contra los mismos fakes: el
// comportamiento bajo lock (re-verificación de precondiciones) sigue siendo
// observable porque el closure relee el estado.

type fakeUserRepo struct {
	users map[string]*entity.User
}

func newFakeUserRepo(users ...*entity.User) *fakeUserRepo {
	r := &fakeUserRepo{users: make(map[string]*entity.User)}
	for _, u := range users {
		r.users[u.ID] = u
	}
	return r
}

func (r *fakeUserRepo) Create(u *entity.User) error { r.users[u.ID] = u; return nil }
func (r *fakeUserRepo) GetByID(id string) (*entity.User, error) {
	return r.users[id], nil
}
func (r *fakeUserRepo) GetByEmail(email string) (*entity.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}
func (r *fakeUserRepo) GetByUsername(username string) (*entity.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, nil
}
func (r *fakeUserRepo) Update(u *entity.User) error { r.users[u.ID] = u; return nil }
func (r *fakeUserRepo) List(status string, limit, offset int) ([]*entity.User, error) {
	var out []*entity.User
	for _, u := range r.users {
		if status == "" || u.Status == status {
			out = append(out, u)
		}
	}
	return out, nil
}
func (r *fakeUserRepo) Delete(id string) error { delete(r.users, id); return nil }

type fakeQuoteRepo struct {
	quotes map[string]*entity.Quote
	items  map[string][]*entity.QuoteItem
}

func newFakeQuoteRepo(quotes ...*entity.Quote) *fakeQuoteRepo {
	r := &fakeQuoteRepo{
		quotes: make(map[string]*entity.Quote),
		items:  make(map[string][]*entity.QuoteItem),
	}
	for _, q := range quotes {
		r.quotes[q.ID] = q
	}
	return r
}

func (r *fakeQuoteRepo) Create(q *entity.Quote) error { r.quotes[q.ID] = q; return nil }
func (r *fakeQuoteRepo) CreateItem(it *entity.QuoteItem) error {
	r.items[it.QuoteID] = append(r.items[it.QuoteID], it)
	return nil
}
func (r *fakeQuoteRepo) GetByID(id string) (*entity.Quote, error)          { return r.quotes[id], nil }
func (r *fakeQuoteRepo) GetByIDForUpdate(id string) (*entity.Quote, error) { return r.quotes[id], nil }
func (r *fakeQuoteRepo) GetItemsByQuoteID(quoteID string) ([]*entity.QuoteItem, error) {
	return r.items[quoteID], nil
}
func (r *fakeQuoteRepo) Update(q *entity.Quote) error { r.quotes[q.ID] = q; return nil }
func (r *fakeQuoteRepo) UpdateStatus(id, status string) error {
	if q, ok := r.quotes[id]; ok {
		q.Status = status
	}
	return nil
}
func (r *fakeQuoteRepo) ListByUser(userID string, limit, offset int) ([]*entity.Quote, error) {
	var out []*entity.Quote
	for _, q := range r.quotes {
		if q.UserID == userID {
			out = append(out, q)
		}
	}
	return out, nil
}
func (r *fakeQuoteRepo) List(limit, offset int) ([]*entity.Quote, error) {
	var out []*entity.Quote
	for _, q := range r.quotes {
		out = append(out, q)
	}
	return out, nil
}

type fakeDiscountRepo struct {
	reqs map[string]*entity.DiscountRequest
}

func newFakeDiscountRepo(reqs ...*entity.DiscountRequest) *fakeDiscountRepo {
	r := &fakeDiscountRepo{reqs: make(map[string]*entity.DiscountRequest)}
	for _, req := range reqs {
		r.reqs[req.ID] = req
	}
	return r
}

func (r *fakeDiscountRepo) Create(req *entity.DiscountRequest) error { r.reqs[req.ID] = req; return nil }
func (r *fakeDiscountRepo) GetByID(id string) (*entity.DiscountRequest, error) {
	return r.reqs[id], nil
}
func (r *fakeDiscountRepo) GetByIDForUpdate(id string) (*entity.DiscountRequest, error) {
	return r.reqs[id], nil
}
func (r *fakeDiscountRepo) Update(req *entity.DiscountRequest) error { r.reqs[req.ID] = req; return nil }
func (r *fakeDiscountRepo) List(status string, limit, offset int) ([]*entity.DiscountRequest, error) {
	var out []*entity.DiscountRequest
	for _, req := range r.reqs {
		if status == "" || req.Status == status {
			out = append(out, req)
		}
	}
	return out, nil
}

// fakeTxRunner ejecuta los closures contra los fakes sin transacción real.
type fakeTxRunner struct {
	quoteRepo    *fakeQuoteRepo
	discountRepo *fakeDiscountRepo
}

func (t *fakeTxRunner) RunQuoteCreate(ctx context.Context, fn func(
	quoteRepo repository.QuoteRepository,
	discountRepo repository.DiscountRequestRepository,
) error) error {
	return fn(t.quoteRepo, t.discountRepo)
}

func (t *fakeTxRunner) RunDiscountDecision(ctx context.Context, fn func(
	discountRepo repository.DiscountRequestRepository,
	quoteRepo repository.QuoteRepository,
) error) error {
	return fn(t.discountRepo, t.quoteRepo)
}
