package supplier

import (
	"net/http"
	"sort"
	"sync"

	"github.com/openpassport/dppsrv/internal/common/apperrors"
)

var (
	ErrSupplier         apperrors.Error = apperrors.New("error in processing supplier").SetStatusCode(http.StatusInternalServerError)
	ErrSupplierNotFound apperrors.Error = ErrSupplier.New("supplier not found").SetStatusCode(http.StatusNotFound)
)

// Supplier is a registry entity referenced weakly from passport supply-chain
// links.
type Supplier struct {
	ID                string   `json:"id"`
	Name              string   `json:"name"`
	Location          string   `json:"location,omitempty"`
	MaterialsSupplied []string `json:"materialsSupplied,omitempty"`
	ContactPerson     string   `json:"contactPerson,omitempty"`
}

// Registry is the process-wide supplier store.
type Registry struct {
	mu        sync.RWMutex
	suppliers map[string]Supplier
}

func NewRegistry() *Registry {
	return &Registry{
		suppliers: make(map[string]Supplier),
	}
}

// Put inserts or replaces a supplier.
func (r *Registry) Put(s Supplier) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.suppliers[s.ID] = s
}

// Resolve looks up a supplier by id. A missing supplier is not an error for
// graph derivation, so the boolean form is the primary lookup.
func (r *Registry) Resolve(id string) (Supplier, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.suppliers[id]
	return s, ok
}

// Get looks up a supplier by id, returning a NotFound error when absent.
func (r *Registry) Get(id string) (Supplier, apperrors.Error) {
	s, ok := r.Resolve(id)
	if !ok {
		return Supplier{}, ErrSupplierNotFound.New("supplier not found: " + id)
	}
	return s, nil
}

// List returns all suppliers ordered by id.
func (r *Registry) List() []Supplier {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Supplier, 0, len(r.suppliers))
	for _, s := range r.suppliers {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
