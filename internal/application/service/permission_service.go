package service

import (
	"context"
	"fmt"

	"github.com/marubini/tillpoint-api/internal/domain/entity"
	"github.com/marubini/tillpoint-api/internal/domain/enum"
	"github.com/marubini/tillpoint-api/internal/domain/repository"
	"github.com/marubini/tillpoint-api/pkg/apperror"
	"github.com/marubini/tillpoint-api/pkg/money"
	"golang.org/x/crypto/bcrypt"
)

// DiscountCeiling is the largest discount a role may apply without
// manager approval. A request is within the ceiling when it satisfies
// either limit: at most MaxPct percent, or at most MaxAmount.
type DiscountCeiling struct {
	MaxPct    float64
	MaxAmount money.Cents
	Unlimited bool
}

// Decision is the outcome of a permission check. When Allowed is
// false the operation must be re-submitted through the two-phase
// approval flow with a manager credential.
type Decision struct {
	Allowed bool   `json:"allowed"`
	Reason  string `json:"reason,omitempty"`
}

var allowed = Decision{Allowed: true}

// requiresApproval builds a denial carrying the specific reason the
// caller must surface to the user.
func requiresApproval(format string, args ...interface{}) Decision {
	return Decision{Allowed: false, Reason: fmt.Sprintf(format, args...)}
}

// GateRequest carries the values a sensitive operation wants to apply,
// so the gate can compare them against the actor's ceiling.
type GateRequest struct {
	// Discount is set for apply_discount checks.
	Discount *entity.Discount
	// OverrideFrom/OverrideTo are set for price_override checks.
	OverrideFrom money.Cents
	OverrideTo   money.Cents
}

// PermissionGate centralizes role-ceiling logic for every sensitive
// cart mutation. Call sites never re-implement these rules.
type PermissionGate struct {
	userRepo     repository.UserRepository
	settingsRepo repository.SettingsRepository
}

// NewPermissionGate creates a new permission gate
func NewPermissionGate(userRepo repository.UserRepository, settingsRepo repository.SettingsRepository) *PermissionGate {
	return &PermissionGate{userRepo: userRepo, settingsRepo: settingsRepo}
}

// ceilingFor resolves the discount ceiling for a role from stored
// settings. Admins are unlimited.
func (g *PermissionGate) ceilingFor(ctx context.Context, role enum.Role) (DiscountCeiling, error) {
	if role == enum.RoleAdmin {
		return DiscountCeiling{Unlimited: true}, nil
	}

	settings, err := g.settingsRepo.Get(ctx)
	if err != nil {
		return DiscountCeiling{}, err
	}

	if role == enum.RoleManager {
		return DiscountCeiling{
			MaxPct:    settings.ManagerMaxDiscountPct,
			MaxAmount: settings.ManagerMaxDiscountAmount,
		}, nil
	}
	return DiscountCeiling{
		MaxPct:    settings.CashierMaxDiscountPct,
		MaxAmount: settings.CashierMaxDiscountAmount,
	}, nil
}

// Check evaluates whether the actor's role permits the action
// outright. It never mutates anything; a denial is a recoverable
// state, not an error.
func (g *PermissionGate) Check(ctx context.Context, action enum.GateAction, actorRole enum.Role, req *GateRequest) (Decision, error) {
	switch action {
	case enum.ActionVoidItems:
		// Voids reverse recorded intent, so only elevated roles void
		// without a second credential.
		if actorRole.AtLeast(enum.RoleManager) {
			return allowed, nil
		}
		return requiresApproval("voiding items requires manager approval"), nil

	case enum.ActionApplyDiscount:
		if req == nil || req.Discount == nil {
			return Decision{}, apperror.NewBadRequestError("Discount value required")
		}
		ceiling, err := g.ceilingFor(ctx, actorRole)
		if err != nil {
			return Decision{}, err
		}
		return checkDiscount(req.Discount, ceiling), nil

	case enum.ActionPriceOverride:
		if req == nil {
			return Decision{}, apperror.NewBadRequestError("Override values required")
		}
		ceiling, err := g.ceilingFor(ctx, actorRole)
		if err != nil {
			return Decision{}, err
		}
		return checkOverride(req.OverrideFrom, req.OverrideTo, ceiling), nil
	}

	return Decision{}, apperror.NewBadRequestError("Unknown action: " + action.String())
}

// checkDiscount compares a requested discount against a role ceiling.
// Percentage requests are held to the percentage limit, fixed requests
// to the amount limit.
func checkDiscount(d *entity.Discount, ceiling DiscountCeiling) Decision {
	if ceiling.Unlimited {
		return allowed
	}

	switch d.Type {
	case enum.DiscountTypePercentage:
		if d.Value > ceiling.MaxPct {
			return requiresApproval("exceeds role limit of %g%%", ceiling.MaxPct)
		}
	case enum.DiscountTypeFixed:
		if money.FromFloat(d.Value) > ceiling.MaxAmount {
			return requiresApproval("exceeds role limit of %s", ceiling.MaxAmount)
		}
	}
	return allowed
}

// checkOverride compares the price reduction implied by an override
// against the role ceiling. Overrides that raise the price never
// reduce revenue and pass for every role.
func checkOverride(from, to money.Cents, ceiling DiscountCeiling) Decision {
	if ceiling.Unlimited || to >= from {
		return allowed
	}

	reduction := from - to
	if reduction <= ceiling.MaxAmount {
		return allowed
	}
	if from > 0 {
		pct := float64(reduction) / float64(from) * 100
		if pct <= ceiling.MaxPct {
			return allowed
		}
	}
	return requiresApproval("price reduction of %s exceeds role limit of %s", reduction, ceiling.MaxAmount)
}

// VerifyApproverPIN resolves a manager credential to an approving
// identity. The PIN must belong to an active user with at least the
// manager role. The identity returned is recorded in the resulting
// audit entry when it differs from the requester.
func (g *PermissionGate) VerifyApproverPIN(ctx context.Context, pin string) (*entity.User, error) {
	if pin == "" {
		return nil, apperror.ErrInvalidPIN
	}

	approvers, err := g.userRepo.ListApprovers(ctx, enum.RoleManager)
	if err != nil {
		return nil, err
	}

	for i := range approvers {
		if approvers[i].PinHash == nil {
			continue
		}
		if bcrypt.CompareHashAndPassword([]byte(*approvers[i].PinHash), []byte(pin)) == nil {
			return &approvers[i], nil
		}
	}
	return nil, apperror.ErrInvalidPIN
}
