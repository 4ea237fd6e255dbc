package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/TarielTopuria/EcommerceAngular/internal/domain"
	"github.com/TarielTopuria/EcommerceAngular/internal/storage"
	apperrors "github.com/TarielTopuria/EcommerceAngular/pkg/errors"
	"github.com/TarielTopuria/EcommerceAngular/pkg/validator"
)

// API is the remote catalog surface the store depends on.
type API interface {
	ListProducts(ctx context.Context) ([]domain.Product, error)
	ListCategories(ctx context.Context) ([]string, error)
	GetProduct(ctx context.Context, id int64) (domain.Product, error)
	CreateProduct(ctx context.Context, in domain.CreateProduct) (domain.Product, error)
	UpdateProduct(ctx context.Context, id int64, p domain.Product) (domain.Product, error)
	DeleteProduct(ctx context.Context, id int64) error
}

type categoriesState int

const (
	categoriesEmpty categoriesState = iota
	categoriesLoading
	categoriesReady
	categoriesFailed
)

// categoriesCell caches the remote category list for the process lifetime.
// A failed fetch is surfaced to its callers and invalidated, so the next
// call fetches again.
type categoriesCell struct {
	state categoriesState
	value []string
	err   error
	done  chan struct{}
}

// Store is the catalog cache. Reads go to the remote API; when the backend
// does not durably persist writes (localMutations), admin CRUD is recorded
// in a persisted ledger that is overlaid onto every remote read.
type Store struct {
	api            API
	storage        storage.Store
	logger         *slog.Logger
	localMutations bool

	mu     sync.Mutex
	ledger *domain.Ledger

	catMu      sync.Mutex
	categories categoriesCell
}

// NewStore creates a catalog cache. The mutation ledger is loaded from
// storage lazily, on the first operation that needs it.
func NewStore(api API, st storage.Store, localMutations bool, logger *slog.Logger) *Store {
	return &Store{
		api:            api,
		storage:        st,
		logger:         logger,
		localMutations: localMutations,
	}
}

// GetProducts fetches the remote product list and, in local-mutation mode,
// overlays the ledger: deleted ids excluded, updated ids replaced, created
// products appended, sorted by ascending id.
func (s *Store) GetProducts(ctx context.Context) ([]domain.Product, error) {
	remote, err := s.api.ListProducts(ctx)
	if err != nil {
		return nil, err
	}
	if !s.localMutations {
		return remote, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loadLedger(ctx)
	return domain.Merge(remote, s.ledger), nil
}

// GetCategories fetches the remote category list, reusing one in-flight
// fetch and the last successful value across callers. A failed fetch is not
// cached: the next call tries again.
func (s *Store) GetCategories(ctx context.Context) ([]string, error) {
	waited := false
	for {
		s.catMu.Lock()
		switch s.categories.state {
		case categoriesReady:
			out := append([]string(nil), s.categories.value...)
			s.catMu.Unlock()
			return out, nil

		case categoriesFailed:
			if waited {
				err := s.categories.err
				s.catMu.Unlock()
				return nil, err
			}
			s.categories = categoriesCell{}
			s.catMu.Unlock()
			continue

		case categoriesLoading:
			done := s.categories.done
			s.catMu.Unlock()
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-done:
			}
			waited = true
			continue
		}

		// Empty: this caller owns the fetch.
		done := make(chan struct{})
		s.categories = categoriesCell{state: categoriesLoading, done: done}
		s.catMu.Unlock()

		value, err := s.api.ListCategories(ctx)

		s.catMu.Lock()
		if err != nil {
			s.categories = categoriesCell{state: categoriesFailed, err: err}
		} else {
			s.categories = categoriesCell{state: categoriesReady, value: value}
		}
		s.catMu.Unlock()
		close(done)

		if err != nil {
			return nil, err
		}
		return append([]string(nil), value...), nil
	}
}

// GetProductByID returns one product. In local-mutation mode the ledger is
// consulted first: a locally deleted id fails with NotFound, a locally
// created id answers from the ledger without a network call, and a local
// update is overlaid onto the remote product.
func (s *Store) GetProductByID(ctx context.Context, id int64) (domain.Product, error) {
	if s.localMutations {
		s.mu.Lock()
		s.loadLedger(ctx)
		if s.ledger.IsDeleted(id) {
			s.mu.Unlock()
			return domain.Product{}, &apperrors.AppError{
				Code:    "NOT_FOUND",
				Message: fmt.Sprintf("product with id %d deleted locally", id),
				Status:  http.StatusNotFound,
				Err:     apperrors.ErrNotFound,
			}
		}
		if p, ok := s.ledger.FindCreated(id); ok {
			s.mu.Unlock()
			return p, nil
		}
		s.mu.Unlock()
	}

	p, err := s.api.GetProduct(ctx, id)
	if err != nil {
		return domain.Product{}, err
	}

	if s.localMutations {
		s.mu.Lock()
		if upd, ok := s.ledger.FindUpdated(id); ok {
			p = upd
		}
		s.mu.Unlock()
	}
	return p, nil
}

// AddProduct validates and posts a new product. The remote-assigned id is
// used when positive; otherwise a locally generated unique id stands in.
// In local-mutation mode the result is recorded as created and persisted.
func (s *Store) AddProduct(ctx context.Context, in domain.CreateProduct) (domain.Product, error) {
	if err := validator.Validate(&in); err != nil {
		return domain.Product{}, apperrors.InvalidInput(err.Error())
	}

	resp, err := s.api.CreateProduct(ctx, in)
	if err != nil {
		return domain.Product{}, err
	}

	created := in.AsProduct(resp.ID)

	if !s.localMutations {
		return created, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loadLedger(ctx)
	if created.ID <= 0 {
		created.ID = s.nextLocalID()
	}
	s.ledger.RecordCreate(created)
	s.saveLedger(ctx)

	return created, nil
}

// UpdateProduct puts the product to the remote API with the id embedded and
// merges the response over the request payload. In local-mutation mode the
// result is recorded in the ledger and persisted.
func (s *Store) UpdateProduct(ctx context.Context, id int64, p domain.Product) (domain.Product, error) {
	resp, err := s.api.UpdateProduct(ctx, id, p)
	if err != nil {
		return domain.Product{}, err
	}

	updated := overlayResponse(p, resp)
	updated.ID = id

	if !s.localMutations {
		return updated, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loadLedger(ctx)
	s.ledger.RecordUpdate(id, updated)
	s.saveLedger(ctx)

	return updated, nil
}

// DeleteProduct deletes the product remotely. In local-mutation mode the id
// is recorded as deleted, which also clears any created or updated entry.
func (s *Store) DeleteProduct(ctx context.Context, id int64) error {
	if err := s.api.DeleteProduct(ctx, id); err != nil {
		return err
	}

	if !s.localMutations {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loadLedger(ctx)
	s.ledger.RecordDelete(id)
	s.saveLedger(ctx)

	return nil
}

// loadLedger reads the persisted ledger on first use. Missing or corrupt
// stored JSON starts a fresh ledger. Caller holds s.mu.
func (s *Store) loadLedger(ctx context.Context) {
	if s.ledger != nil {
		return
	}

	s.ledger = domain.NewLedger()
	raw, ok := s.storage.Read(ctx, storage.KeyCatalogMutations)
	if !ok {
		return
	}

	var loaded domain.Ledger
	if err := json.Unmarshal([]byte(raw), &loaded); err != nil {
		s.logger.Warn("stored mutation ledger is corrupt, starting fresh",
			slog.String("error", err.Error()),
		)
		return
	}
	s.ledger = &loaded
}

// saveLedger persists the ledger. Storage failures are swallowed by the
// storage port. Caller holds s.mu.
func (s *Store) saveLedger(ctx context.Context) {
	data, err := json.Marshal(s.ledger)
	if err != nil {
		s.logger.Error("marshal mutation ledger", slog.String("error", err.Error()))
		return
	}
	s.storage.Write(ctx, storage.KeyCatalogMutations, string(data))
}

// nextLocalID generates a unique local id for a product the remote API did
// not assign one to. Time-derived, bumped past ledger collisions. Caller
// holds s.mu.
func (s *Store) nextLocalID() int64 {
	id := time.Now().UnixMilli()
	for {
		if _, ok := s.ledger.FindCreated(id); !ok {
			return id
		}
		id++
	}
}

// overlayResponse merges the non-zero fields of a Product-like response over
// the request payload. fakestoreapi echoes partial bodies, so the request is
// the baseline.
func overlayResponse(req, resp domain.Product) domain.Product {
	out := req
	if resp.Title != "" {
		out.Title = resp.Title
	}
	if resp.Price > 0 {
		out.Price = resp.Price
	}
	if resp.Description != "" {
		out.Description = resp.Description
	}
	if resp.Image != "" {
		out.Image = resp.Image
	}
	if resp.Category != "" {
		out.Category = resp.Category
	}
	return out
}
