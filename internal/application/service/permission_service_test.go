package service

import (
	"context"
	"testing"

	"github.com/marubini/tillpoint-api/internal/domain/entity"
	"github.com/marubini/tillpoint-api/internal/domain/enum"
	"github.com/marubini/tillpoint-api/pkg/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func pinHash(t *testing.T, pin string) *string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(pin), bcrypt.MinCost)
	require.NoError(t, err)
	s := string(hash)
	return &s
}

func newGateFixture(t *testing.T) (*PermissionGate, *fakeUserRepo) {
	t.Helper()
	users := newFakeUserRepo()
	return NewPermissionGate(users, newFakeSettingsRepo(0.08)), users
}

func TestPermissionGate_DiscountCeilings(t *testing.T) {
	gate, _ := newGateFixture(t)
	ctx := context.Background()

	tests := []struct {
		name    string
		role    enum.Role
		dtype   enum.DiscountType
		value   float64
		allowed bool
	}{
		{"cashier within percentage ceiling", enum.RoleCashier, enum.DiscountTypePercentage, 10, true},
		{"cashier over percentage ceiling", enum.RoleCashier, enum.DiscountTypePercentage, 25, false},
		{"cashier within amount ceiling", enum.RoleCashier, enum.DiscountTypeFixed, 15.00, true},
		{"cashier over amount ceiling", enum.RoleCashier, enum.DiscountTypeFixed, 25.00, false},
		{"manager takes what cashier cannot", enum.RoleManager, enum.DiscountTypePercentage, 25, true},
		{"manager over percentage ceiling", enum.RoleManager, enum.DiscountTypePercentage, 60, false},
		{"manager within amount ceiling", enum.RoleManager, enum.DiscountTypeFixed, 400.00, true},
		{"manager over amount ceiling", enum.RoleManager, enum.DiscountTypeFixed, 600.00, false},
		{"admin is unlimited", enum.RoleAdmin, enum.DiscountTypePercentage, 100, true},
		{"admin fixed is unlimited", enum.RoleAdmin, enum.DiscountTypeFixed, 9999.00, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decision, err := gate.Check(ctx, enum.ActionApplyDiscount, tt.role, &GateRequest{
				Discount: &entity.Discount{Type: tt.dtype, Value: tt.value, Reason: enum.ReasonLoyalty},
			})
			require.NoError(t, err)
			assert.Equal(t, tt.allowed, decision.Allowed)
			if !tt.allowed {
				assert.Contains(t, decision.Reason, "exceeds role limit")
			}
		})
	}
}

func TestPermissionGate_VoidRequiresElevatedRole(t *testing.T) {
	gate, _ := newGateFixture(t)
	ctx := context.Background()

	decision, err := gate.Check(ctx, enum.ActionVoidItems, enum.RoleCashier, nil)
	require.NoError(t, err)
	assert.False(t, decision.Allowed)
	assert.Contains(t, decision.Reason, "manager approval")

	decision, err = gate.Check(ctx, enum.ActionVoidItems, enum.RoleManager, nil)
	require.NoError(t, err)
	assert.True(t, decision.Allowed)

	decision, err = gate.Check(ctx, enum.ActionVoidItems, enum.RoleAdmin, nil)
	require.NoError(t, err)
	assert.True(t, decision.Allowed)
}

func TestPermissionGate_PriceOverrides(t *testing.T) {
	gate, _ := newGateFixture(t)
	ctx := context.Background()

	// Raising the price never reduces revenue.
	decision, err := gate.Check(ctx, enum.ActionPriceOverride, enum.RoleCashier, &GateRequest{
		OverrideFrom: 1000, OverrideTo: 1500,
	})
	require.NoError(t, err)
	assert.True(t, decision.Allowed)

	// A small reduction stays within the cashier's amount ceiling.
	decision, err = gate.Check(ctx, enum.ActionPriceOverride, enum.RoleCashier, &GateRequest{
		OverrideFrom: 2000, OverrideTo: 1800,
	})
	require.NoError(t, err)
	assert.True(t, decision.Allowed)

	// A large reduction exceeds both the amount and percentage ceilings.
	decision, err = gate.Check(ctx, enum.ActionPriceOverride, enum.RoleCashier, &GateRequest{
		OverrideFrom: 100000, OverrideTo: 10000,
	})
	require.NoError(t, err)
	assert.False(t, decision.Allowed)

	// The same reduction suits a percentage ceiling when the base is
	// large enough.
	decision, err = gate.Check(ctx, enum.ActionPriceOverride, enum.RoleManager, &GateRequest{
		OverrideFrom: 100000, OverrideTo: 60000,
	})
	require.NoError(t, err)
	assert.True(t, decision.Allowed)

	decision, err = gate.Check(ctx, enum.ActionPriceOverride, enum.RoleAdmin, &GateRequest{
		OverrideFrom: 100000, OverrideTo: 0,
	})
	require.NoError(t, err)
	assert.True(t, decision.Allowed)
}

func TestPermissionGate_VerifyApproverPIN(t *testing.T) {
	gate, users := newGateFixture(t)
	ctx := context.Background()

	manager := users.addUser(enum.RoleManager, pinHash(t, "4271"))
	users.addUser(enum.RoleCashier, pinHash(t, "1111")) // cashiers never approve

	approver, err := gate.VerifyApproverPIN(ctx, "4271")
	require.NoError(t, err)
	assert.Equal(t, manager.ID, approver.ID)

	_, err = gate.VerifyApproverPIN(ctx, "0000")
	assert.ErrorIs(t, err, apperror.ErrInvalidPIN)

	_, err = gate.VerifyApproverPIN(ctx, "")
	assert.ErrorIs(t, err, apperror.ErrInvalidPIN)

	// A cashier's PIN does not clear the gate even when it matches.
	_, err = gate.VerifyApproverPIN(ctx, "1111")
	assert.ErrorIs(t, err, apperror.ErrInvalidPIN)
}
