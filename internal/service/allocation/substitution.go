package allocation

import (
	"context"
	"errors"
	"fmt"
	"supply-golang/internal/storage"
)

// Propose validates and records a substitution allowance for a material.
// Nothing is deducted yet, the proposal only moves the displayed remaining
// stock until Apply charges the alternate's ledger.
func (s *Service) Propose(ctx context.Context, materialCode, alternateCode string, quantity int) error {
	const op = "service.allocation.Propose"

	s.mu.RLock()
	defer s.mu.RUnlock()

	lock := s.materialLock(materialCode)
	lock.Lock()
	defer lock.Unlock()

	if err := s.validateSubstitution(ctx, materialCode, alternateCode, quantity); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	allowance := s.allowance(materialCode)
	if allowance == nil {
		allowance = &storage.SubstitutionAllowance{MaterialCode: materialCode}
	}
	// A new proposal replaces the pending part; the applied part stays, its
	// stock already moved.
	allowance.AlternateMaterialCode = alternateCode
	allowance.AlternateQuantity = quantity
	s.setAllowance(allowance)

	return nil
}

// Apply charges the proposed quantity to the alternate material's ledger.
// The constraints are re-validated against live stock, a concurrent apply
// may have exhausted the alternate since the proposal. All-or-nothing: a
// failed decrement leaves the allowance untouched.
func (s *Service) Apply(ctx context.Context, materialCode string) (*GroupView, error) {
	const op = "service.allocation.Apply"

	s.mu.RLock()
	defer s.mu.RUnlock()

	lock := s.materialLock(materialCode)
	lock.Lock()
	defer lock.Unlock()

	view, err := s.applyLocked(ctx, materialCode)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return view, nil
}

// ApplySubstitution is the single-call form the adjustment screen uses:
// propose and apply under one critical section.
func (s *Service) ApplySubstitution(ctx context.Context, materialCode, alternateCode string, quantity int) (*GroupView, error) {
	const op = "service.allocation.ApplySubstitution"

	s.mu.RLock()
	defer s.mu.RUnlock()

	lock := s.materialLock(materialCode)
	lock.Lock()
	defer lock.Unlock()

	if err := s.validateSubstitution(ctx, materialCode, alternateCode, quantity); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	allowance := s.allowance(materialCode)
	if allowance == nil {
		allowance = &storage.SubstitutionAllowance{MaterialCode: materialCode}
	}
	allowance.AlternateMaterialCode = alternateCode
	allowance.AlternateQuantity = quantity
	s.setAllowance(allowance)

	view, err := s.applyLocked(ctx, materialCode)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return view, nil
}

func (s *Service) applyLocked(ctx context.Context, materialCode string) (*GroupView, error) {
	allowance := s.allowance(materialCode)
	if allowance == nil || allowance.AlternateQuantity <= 0 {
		return nil, fmt.Errorf("no pending proposal for material %s: %w", materialCode, ErrInvalidSubstitution)
	}

	if err := s.validateSubstitution(ctx, materialCode, allowance.AlternateMaterialCode, allowance.AlternateQuantity); err != nil {
		return nil, err
	}

	err := s.storage.DecrementMaterialStock(ctx, allowance.AlternateMaterialCode, allowance.AlternateQuantity)
	if err != nil {
		if errors.Is(err, storage.ErrInsufficientStock) {
			return nil, fmt.Errorf("alternate %s: %w", allowance.AlternateMaterialCode, ErrInsufficientAlternateStock)
		}
		return nil, err
	}

	allowance.AppliedQuantity += allowance.AlternateQuantity
	allowance.AlternateQuantity = 0
	allowance.Applied = true
	s.setAllowance(allowance)

	return s.groupView(ctx, materialCode)
}

func (s *Service) validateSubstitution(ctx context.Context, materialCode, alternateCode string, quantity int) error {
	if materialCode == "" || alternateCode == "" || alternateCode == materialCode {
		return fmt.Errorf("material %q alternate %q: %w", materialCode, alternateCode, ErrInvalidSubstitution)
	}
	if quantity <= 0 {
		return fmt.Errorf("quantity %d: %w", quantity, ErrInvalidSubstitution)
	}

	alternate, err := s.storage.GetMaterial(ctx, alternateCode)
	if err != nil {
		return fmt.Errorf("alternate %s: %w", alternateCode, ErrInvalidSubstitution)
	}
	if !alternate.Kind.CanSubstitute() {
		return fmt.Errorf("alternate %s kind %s: %w", alternateCode, alternate.Kind, ErrInvalidSubstitution)
	}
	if quantity > alternate.CurrentStock {
		return fmt.Errorf("alternate %s has %d, want %d: %w", alternateCode, alternate.CurrentStock, quantity, ErrInsufficientAlternateStock)
	}

	if _, err := s.storage.GetMaterial(ctx, materialCode); err != nil {
		return fmt.Errorf("material %s: %w", materialCode, ErrInvalidSubstitution)
	}

	return nil
}
