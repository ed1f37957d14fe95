package pricing

import (
	"sort"

	"github.com/google/uuid"
	"github.com/marubini/tillpoint-api/internal/domain/entity"
	"github.com/marubini/tillpoint-api/pkg/apperror"
	"github.com/marubini/tillpoint-api/pkg/money"
)

// SeatShare is one seat's payable share in a by-seat split
type SeatShare struct {
	Seat     int         `json:"seat"`
	Subtotal money.Cents `json:"subtotal"`
	Tax      money.Cents `json:"tax"`
	Total    money.Cents `json:"total"`
}

// SeatSplit is the result of partitioning a cart by seat number. Lines
// with no assigned seat are not silently dropped; their combined total
// is reported in UnassignedTotal so the operator can see what remains
// to be assigned or settled on the main check.
type SeatSplit struct {
	Shares          []SeatShare `json:"shares"`
	UnassignedTotal money.Cents `json:"unassigned_total"`
}

// SplitBySeat partitions the cart's line totals by seat number, taxing
// each seat's subtotal at the cart rate. Shares are ordered by seat.
// The cart is never mutated.
func SplitBySeat(cart *entity.Cart) SeatSplit {
	bySeat := make(map[int]money.Cents)
	var unassigned money.Cents

	for i := range cart.Lines {
		lineTotal := PriceLine(&cart.Lines[i]).LineTotal
		if cart.Lines[i].SeatNumber == nil {
			unassigned += lineTotal
			continue
		}
		bySeat[*cart.Lines[i].SeatNumber] += lineTotal
	}

	seats := make([]int, 0, len(bySeat))
	for seat := range bySeat {
		seats = append(seats, seat)
	}
	sort.Ints(seats)

	shares := make([]SeatShare, 0, len(seats))
	for _, seat := range seats {
		subtotal := bySeat[seat]
		tax := money.TaxOn(subtotal, cart.TaxRate)
		shares = append(shares, SeatShare{
			Seat:     seat,
			Subtotal: subtotal,
			Tax:      tax,
			Total:    subtotal + tax,
		})
	}

	return SeatSplit{Shares: shares, UnassignedTotal: unassigned}
}

// SplitEven divides an order total into n equal shares. The division
// remainder is spread one cent at a time across the first shares so
// the shares always sum exactly to the total.
func SplitEven(total money.Cents, n int) ([]money.Cents, error) {
	if n < 2 {
		return nil, apperror.NewBadRequestError("Even split requires at least 2 payers")
	}
	if total < 0 {
		return nil, apperror.NewBadRequestError("Cannot split a negative total")
	}

	base := total / money.Cents(n)
	remainder := total - base*money.Cents(n)

	shares := make([]money.Cents, n)
	for i := range shares {
		shares[i] = base
		if money.Cents(i) < remainder {
			shares[i]++
		}
	}
	return shares, nil
}

// SplitItems sums the line totals of an operator-chosen subset of cart
// lines. No proportional tax or tip allocation is performed; those are
// computed only on the full order in this mode.
func SplitItems(cart *entity.Cart, lineIDs []uuid.UUID) (money.Cents, error) {
	if len(lineIDs) == 0 {
		return 0, apperror.NewBadRequestError("No line items selected")
	}

	var subtotal money.Cents
	for _, id := range lineIDs {
		line := cart.FindLine(id)
		if line == nil {
			return 0, apperror.NewNotFoundError("Line item")
		}
		subtotal += PriceLine(line).LineTotal
	}
	return subtotal, nil
}
