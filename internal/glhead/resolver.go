package glhead

import (
	"context"
	"strings"

	glheaderrors "eduledger/internal/glhead/errors"
)

// Payment method labels as presented by the collection UI.
const (
	PaymentModeCash    = "Cash"
	PaymentModeBank    = "Bank Account"
	PaymentModeDigital = "Digital Payment"
	PaymentModeCheque  = "Cheque"
)

// matcher picks a head out of a candidate list, or nil.
type matcher func(heads []GLHead) *GLHead

func nameContains(needle string) matcher {
	needle = strings.ToLower(needle)
	return func(heads []GLHead) *GLHead {
		for i := range heads {
			if strings.Contains(strings.ToLower(heads[i].Name), needle) {
				return &heads[i]
			}
		}
		return nil
	}
}

func anyHead(heads []GLHead) *GLHead {
	if len(heads) == 0 {
		return nil
	}
	return &heads[0]
}

// firstMatch tries each matcher in order and returns the first hit. The
// chain order encodes the fallback policy: specific match first, then
// progressively more general ones.
func firstMatch(heads []GLHead, chain ...matcher) *GLHead {
	for _, m := range chain {
		if head := m(heads); head != nil {
			return head
		}
	}
	return nil
}

// Resolver maps coarse categories (payment method label, employee class)
// to concrete GL heads by case-insensitive name matching. The data model
// carries no explicit mapping table, so the lookup is deliberately
// approximate with a fallback chain rather than an exact key.
type Resolver struct {
	repo Repository
}

func NewResolver(repo Repository) *Resolver {
	return &Resolver{repo: repo}
}

// PaymentModeHead picks the Asset head for a payment method label:
// a "cash" name match for Cash, a "bank" match for everything else, then
// the first Asset head at all.
func (r *Resolver) PaymentModeHead(ctx context.Context, label string) (*GLHead, error) {
	heads, err := r.repo.FindByType(ctx, TypeAsset)
	if err != nil {
		return nil, err
	}

	needle := "bank"
	if label == PaymentModeCash {
		needle = "cash"
	}

	head := firstMatch(heads, nameContains(needle), anyHead)
	if head == nil {
		return nil, glheaderrors.ErrNoAssetHead
	}
	return head, nil
}

// CashHead is the strict variant used by payroll approval when no payment
// mode was chosen explicitly: the head name must contain "cash".
func (r *Resolver) CashHead(ctx context.Context) (*GLHead, error) {
	heads, err := r.repo.FindByType(ctx, TypeAsset)
	if err != nil {
		return nil, err
	}

	head := firstMatch(heads, nameContains("cash"))
	if head == nil {
		return nil, glheaderrors.ErrNoCashHead
	}
	return head, nil
}

// SalaryExpenseHeads resolves the three salary posting targets: the
// teacher-specific head, the staff-specific head, and a general fallback
// (any Expense head containing "salary"). Any of the three may be nil;
// an error is returned only when all are.
func (r *Resolver) SalaryExpenseHeads(ctx context.Context) (teacher, staff, fallback *GLHead, err error) {
	heads, err := r.repo.FindByType(ctx, TypeExpense)
	if err != nil {
		return nil, nil, nil, err
	}

	teacher = firstMatch(heads, nameContains("teacher salary"))
	staff = firstMatch(heads, nameContains("staff salary"))
	fallback = firstMatch(heads, nameContains("salary"))

	if teacher == nil && staff == nil && fallback == nil {
		return nil, nil, nil, glheaderrors.ErrNoSalaryExpenseHead
	}
	return teacher, staff, fallback, nil
}
