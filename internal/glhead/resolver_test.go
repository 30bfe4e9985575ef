package glhead

import (
	"context"
	"testing"

	glheaderrors "eduledger/internal/glhead/errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakeHeadRepo struct {
	createFn        func(ctx context.Context, head *GLHead) error
	findAllFn       func(ctx context.Context) ([]GLHead, error)
	findByIDFn      func(ctx context.Context, id string) (*GLHead, error)
	findByTypeFn    func(ctx context.Context, headType string) ([]GLHead, error)
	updateFn        func(ctx context.Context, head *GLHead) error
	deleteFn        func(ctx context.Context, id string) error
	countChildrenFn func(ctx context.Context, id string) (int64, error)
}

func (f *fakeHeadRepo) Create(ctx context.Context, head *GLHead) error { return f.createFn(ctx, head) }
func (f *fakeHeadRepo) FindAll(ctx context.Context) ([]GLHead, error)  { return f.findAllFn(ctx) }
func (f *fakeHeadRepo) FindByID(ctx context.Context, id string) (*GLHead, error) {
	return f.findByIDFn(ctx, id)
}
func (f *fakeHeadRepo) FindByType(ctx context.Context, headType string) ([]GLHead, error) {
	return f.findByTypeFn(ctx, headType)
}
func (f *fakeHeadRepo) Update(ctx context.Context, head *GLHead) error { return f.updateFn(ctx, head) }
func (f *fakeHeadRepo) Delete(ctx context.Context, id string) error    { return f.deleteFn(ctx, id) }
func (f *fakeHeadRepo) CountChildren(ctx context.Context, id string) (int64, error) {
	return f.countChildrenFn(ctx, id)
}

func assetRepo(heads ...GLHead) *fakeHeadRepo {
	return &fakeHeadRepo{
		findByTypeFn: func(ctx context.Context, headType string) ([]GLHead, error) {
			return heads, nil
		},
	}
}

func head(name string) GLHead {
	return GLHead{ID: uuid.New(), Name: name}
}

func TestResolver_PaymentModeHead_CashMatch(t *testing.T) {
	cashBox := head("Cash in Hand")
	repo := assetRepo(head("NIC Asia Bank"), cashBox)

	resolver := NewResolver(repo)
	got, err := resolver.PaymentModeHead(context.Background(), PaymentModeCash)

	assert.NoError(t, err)
	assert.Equal(t, cashBox.ID, got.ID)
}

func TestResolver_PaymentModeHead_BankMatchForNonCashModes(t *testing.T) {
	bank := head("NIC Asia Bank")
	repo := assetRepo(head("Cash in Hand"), bank)
	resolver := NewResolver(repo)

	for _, mode := range []string{PaymentModeBank, PaymentModeDigital, PaymentModeCheque} {
		got, err := resolver.PaymentModeHead(context.Background(), mode)
		assert.NoError(t, err)
		assert.Equal(t, bank.ID, got.ID, "mode %s should pick the bank head", mode)
	}
}

func TestResolver_PaymentModeHead_FallsBackToFirstAsset(t *testing.T) {
	first := head("Petty Float")
	repo := assetRepo(first, head("Fixed Deposit"))

	resolver := NewResolver(repo)
	got, err := resolver.PaymentModeHead(context.Background(), PaymentModeCash)

	assert.NoError(t, err)
	assert.Equal(t, first.ID, got.ID)
}

func TestResolver_PaymentModeHead_NoAssets(t *testing.T) {
	resolver := NewResolver(assetRepo())

	_, err := resolver.PaymentModeHead(context.Background(), PaymentModeCash)

	assert.ErrorIs(t, err, glheaderrors.ErrNoAssetHead)
}

func TestResolver_CashHead_StrictMatchOnly(t *testing.T) {
	cashBox := head("CASH Counter")
	resolver := NewResolver(assetRepo(head("NIC Asia Bank"), cashBox))

	got, err := resolver.CashHead(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, cashBox.ID, got.ID)

	// Unlike PaymentModeHead there is no first-asset fallback here.
	resolver = NewResolver(assetRepo(head("NIC Asia Bank")))
	_, err = resolver.CashHead(context.Background())
	assert.ErrorIs(t, err, glheaderrors.ErrNoCashHead)
}

func TestResolver_SalaryExpenseHeads(t *testing.T) {
	teacherHead := head("Teacher Salary")
	staffHead := head("Staff Salary")
	general := head("Salary Expense")
	repo := assetRepo(head("Stationery"), teacherHead, staffHead, general)

	resolver := NewResolver(repo)
	teacher, staff, fallback, err := resolver.SalaryExpenseHeads(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, teacherHead.ID, teacher.ID)
	assert.Equal(t, staffHead.ID, staff.ID)
	// The fallback chain picks the first name containing "salary",
	// which is the teacher head in this ordering.
	assert.Equal(t, teacherHead.ID, fallback.ID)
}

func TestResolver_SalaryExpenseHeads_NoneResolvable(t *testing.T) {
	resolver := NewResolver(assetRepo(head("Stationery"), head("Rent")))

	teacher, staff, fallback, err := resolver.SalaryExpenseHeads(context.Background())

	assert.ErrorIs(t, err, glheaderrors.ErrNoSalaryExpenseHead)
	assert.Nil(t, teacher)
	assert.Nil(t, staff)
	assert.Nil(t, fallback)
}
