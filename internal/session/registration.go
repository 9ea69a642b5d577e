package session

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/followup/internal/db"
	"github.com/alexanderramin/followup/internal/domain"
	"github.com/alexanderramin/followup/internal/repository"
)

// ErrNoUnitOfWork is returned by SaveRegistration on a Session built
// without a UnitOfWork.
var ErrNoUnitOfWork = errors.New("session has no unit of work")

// Registration is what the sign-up flow collects. It stays on this
// machine; the backend has no registration endpoint.
type Registration struct {
	Name       string
	Email      string
	Plan       string
	TelegramID string
}

// Validate checks the fields the sign-up steps require.
func (r Registration) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return &domain.ValidationError{Field: "nombre", Message: "name is required"}
	}
	if !strings.Contains(r.Email, "@") {
		return &domain.ValidationError{Field: "email", Message: "a valid email is required"}
	}
	if r.Plan != "" {
		if _, ok := domain.FindPlan(r.Plan); !ok {
			return &domain.ValidationError{Field: "plan", Message: "unknown plan " + r.Plan}
		}
	}
	if _, err := ValidateIdentity(r.TelegramID); err != nil {
		return err
	}
	return nil
}

// SaveRegistration stores the registration details and the identity in
// one transaction, then logs the user in.
func (s *Session) SaveRegistration(ctx context.Context, reg Registration) error {
	if err := reg.Validate(); err != nil {
		return err
	}
	if s.uow == nil {
		return ErrNoUnitOfWork
	}
	if reg.Plan == "" {
		reg.Plan = domain.Plans[0].ID
	}
	id, _ := ValidateIdentity(reg.TelegramID)

	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		store := repository.NewSQLiteLocalStore(tx)
		for _, kv := range [][2]string{
			{repository.KeyUserName, strings.TrimSpace(reg.Name)},
			{repository.KeyUserEmail, strings.TrimSpace(reg.Email)},
			{repository.KeyUserPlan, reg.Plan},
			{repository.KeyTelegramID, id},
		} {
			if err := store.Set(ctx, kv[0], kv[1]); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("saving registration: %w", err)
	}
	s.set(id)
	return nil
}

// Registration reads back the stored registration. Missing keys are "".
func (s *Session) Registration(ctx context.Context) (Registration, error) {
	var reg Registration
	for _, f := range []struct {
		key string
		dst *string
	}{
		{repository.KeyUserName, &reg.Name},
		{repository.KeyUserEmail, &reg.Email},
		{repository.KeyUserPlan, &reg.Plan},
		{repository.KeyTelegramID, &reg.TelegramID},
	} {
		v, err := repository.GetOrEmpty(ctx, s.store, f.key)
		if err != nil {
			return Registration{}, fmt.Errorf("reading registration: %w", err)
		}
		*f.dst = v
	}
	return reg, nil
}
