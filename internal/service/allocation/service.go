package allocation

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"supply-golang/internal/storage"
)

type AllocationStorage interface {
	GetPendingOrders(ctx context.Context) ([]*storage.PendingOrder, error)
	GetProductMappings(ctx context.Context) (map[string][]storage.MaterialMapping, error)
	GetMaterials(ctx context.Context) ([]*storage.Material, error)
	GetMaterial(ctx context.Context, code string) (*storage.Material, error)
	DecrementMaterialStock(ctx context.Context, code string, qty int) error
	CancelOrders(ctx context.Context, orderIDs []string) (int, error)
	RestoreOrders(ctx context.Context, orderIDs []string) (int, error)
	TransferToPreparation(ctx context.Context, orderIDs []string, debits []storage.MaterialDebit) error
}

// Service is the order-to-material allocation and adjustment engine.
//
// Substitution allowances are server-side transient state keyed by material
// code; they never live in the database. Mutations on one material serialize
// through a per-material mutex, the commit serializes against everything
// through the write half of mu because it touches many materials and orders
// at once.
type Service struct {
	storage AllocationStorage

	mu sync.RWMutex

	lockMu sync.Mutex
	locks  map[string]*sync.Mutex

	allowMu    sync.Mutex
	allowances map[string]*storage.SubstitutionAllowance
}

func NewService(st AllocationStorage) *Service {
	return &Service{
		storage:    st,
		locks:      make(map[string]*sync.Mutex),
		allowances: make(map[string]*storage.SubstitutionAllowance),
	}
}

func (s *Service) materialLock(code string) *sync.Mutex {
	s.lockMu.Lock()
	defer s.lockMu.Unlock()

	lock, ok := s.locks[code]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[code] = lock
	}
	return lock
}

func (s *Service) allowance(code string) *storage.SubstitutionAllowance {
	s.allowMu.Lock()
	defer s.allowMu.Unlock()

	if a, ok := s.allowances[code]; ok {
		copied := *a
		return &copied
	}
	return nil
}

func (s *Service) setAllowance(a *storage.SubstitutionAllowance) {
	s.allowMu.Lock()
	defer s.allowMu.Unlock()
	s.allowances[a.MaterialCode] = a
}

// consumeAllowance retires the applied part of an allowance after a commit
// debited its material. A proposal that was never applied is kept, no stock
// moved for it.
func (s *Service) consumeAllowance(code string) {
	s.allowMu.Lock()
	defer s.allowMu.Unlock()

	a, ok := s.allowances[code]
	if !ok {
		return
	}
	if a.AlternateQuantity > 0 {
		a.AppliedQuantity = 0
		a.Applied = false
		return
	}
	delete(s.allowances, code)
}

// snapshot loads orders, mappings and materials in parallel and aggregates
// them. Always recomputed, safe on a stale-but-consistent read.
func (s *Service) snapshot(ctx context.Context) ([]*storage.MaterialGroup, []*storage.PendingOrder, map[string][]storage.MaterialMapping, error) {
	var (
		orders    []*storage.PendingOrder
		mappings  map[string][]storage.MaterialMapping
		materials []*storage.Material
	)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		orders, err = s.storage.GetPendingOrders(gCtx)
		if err != nil {
			return fmt.Errorf("orders: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		mappings, err = s.storage.GetProductMappings(gCtx)
		if err != nil {
			return fmt.Errorf("mappings: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		materials, err = s.storage.GetMaterials(gCtx)
		if err != nil {
			return fmt.Errorf("materials: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, nil, nil, err
	}

	return BuildMaterialGroups(orders, mappings, materials), orders, mappings, nil
}

// GroupView is one material group with its allowance overlay, the shape the
// adjustment screen renders. Mutating operations hand the refreshed view
// back so callers never need a second read to stay consistent.
type GroupView struct {
	storage.MaterialGroup
	AdjustedRemaining int                            `json:"adjusted_remaining"`
	StillDeficit      bool                           `json:"still_deficit"`
	Allowance         *storage.SubstitutionAllowance `json:"allowance,omitempty"`
}

func (s *Service) buildView(groups []*storage.MaterialGroup) []GroupView {
	views := make([]GroupView, 0, len(groups))
	for _, group := range groups {
		allowance := s.allowance(group.MaterialCode)
		adjusted := AdjustedRemaining(group, allowance)
		views = append(views, GroupView{
			MaterialGroup:     *group,
			AdjustedRemaining: adjusted,
			StillDeficit:      adjusted < 0,
			Allowance:         allowance,
		})
	}
	return views
}

// AdjustmentView returns the per-material demand snapshot.
func (s *Service) AdjustmentView(ctx context.Context) ([]GroupView, error) {
	const op = "service.allocation.AdjustmentView"

	groups, _, _, err := s.snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return s.buildView(groups), nil
}

func (s *Service) groupView(ctx context.Context, materialCode string) (*GroupView, error) {
	groups, _, _, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	for _, view := range s.buildView(groups) {
		if view.MaterialCode == materialCode {
			v := view
			return &v, nil
		}
	}
	return nil, nil
}
