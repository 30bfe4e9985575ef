package payroll_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"eduledger/internal/payroll"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type apiEnvelope struct {
	Ok    bool            `json:"ok"`
	Data  json.RawMessage `json:"data"`
	Error *apiError       `json:"error"`
}

func mustDecodeEnvelope(t *testing.T, body []byte) apiEnvelope {
	t.Helper()
	var env apiEnvelope
	err := json.Unmarshal(body, &env)
	assert.NoError(t, err)
	return env
}

type fakePayrollService struct {
	generateFn  func(ctx context.Context, req payroll.GeneratePayrollRunRequest) (payroll.PayrollRunResponse, error)
	approveFn   func(ctx context.Context, runID string, req payroll.ApprovePayrollRunRequest) (payroll.ApprovePayrollRunResponse, error)
	getAllFn    func(ctx context.Context, fiscalYearID string) ([]payroll.PayrollRunResponse, error)
	getByIDFn   func(ctx context.Context, id string) (payroll.PayrollRunResponse, error)
	deleteFn    func(ctx context.Context, id string) error
	runExistsFn func(ctx context.Context, fiscalYearID, month string) (bool, error)
}

func (f *fakePayrollService) Generate(ctx context.Context, req payroll.GeneratePayrollRunRequest) (payroll.PayrollRunResponse, error) {
	return f.generateFn(ctx, req)
}
func (f *fakePayrollService) Approve(ctx context.Context, runID string, req payroll.ApprovePayrollRunRequest) (payroll.ApprovePayrollRunResponse, error) {
	return f.approveFn(ctx, runID, req)
}
func (f *fakePayrollService) GetAllByFiscalYear(ctx context.Context, fiscalYearID string) ([]payroll.PayrollRunResponse, error) {
	return f.getAllFn(ctx, fiscalYearID)
}
func (f *fakePayrollService) GetByID(ctx context.Context, id string) (payroll.PayrollRunResponse, error) {
	return f.getByIDFn(ctx, id)
}
func (f *fakePayrollService) Delete(ctx context.Context, id string) error {
	return f.deleteFn(ctx, id)
}
func (f *fakePayrollService) RunExists(ctx context.Context, fiscalYearID, month string) (bool, error) {
	return f.runExistsFn(ctx, fiscalYearID, month)
}

func TestPayrollHandler_Generate(t *testing.T) {
	fiscalYearID := uuid.New().String()

	svc := &fakePayrollService{
		runExistsFn: func(ctx context.Context, fyID, month string) (bool, error) {
			assert.Equal(t, fiscalYearID, fyID)
			assert.Equal(t, "Baisakh", month)
			return false, nil
		},
		generateFn: func(ctx context.Context, req payroll.GeneratePayrollRunRequest) (payroll.PayrollRunResponse, error) {
			return payroll.PayrollRunResponse{
				ID:           uuid.New().String(),
				FiscalYearID: req.FiscalYearID,
				Month:        req.Month,
				PayslipCount: 3,
			}, nil
		},
	}

	h := payroll.NewHandler(svc, nil)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	body := `{"fiscal_year_id":"` + fiscalYearID + `","month":"Baisakh"}`
	c.Request = httptest.NewRequest(http.MethodPost, "/payroll-runs", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	h.Generate(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	env := mustDecodeEnvelope(t, w.Body.Bytes())
	assert.True(t, env.Ok)
}

func TestPayrollHandler_Generate_DuplicateMonth(t *testing.T) {
	svc := &fakePayrollService{
		runExistsFn: func(ctx context.Context, fyID, month string) (bool, error) {
			return true, nil
		},
		generateFn: func(ctx context.Context, req payroll.GeneratePayrollRunRequest) (payroll.PayrollRunResponse, error) {
			t.Fatal("a duplicate month must never reach the engine")
			return payroll.PayrollRunResponse{}, nil
		},
	}

	h := payroll.NewHandler(svc, nil)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	body := `{"fiscal_year_id":"` + uuid.New().String() + `","month":"Baisakh"}`
	c.Request = httptest.NewRequest(http.MethodPost, "/payroll-runs", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	h.Generate(c)

	assert.Equal(t, http.StatusConflict, w.Code)
	env := mustDecodeEnvelope(t, w.Body.Bytes())
	assert.False(t, env.Ok)
	assert.Equal(t, "CONFLICT", env.Error.Code)
}

func TestPayrollHandler_Approve_EmptyBodyUsesDefaults(t *testing.T) {
	runID := uuid.New().String()
	actorID := uuid.New().String()

	svc := &fakePayrollService{
		approveFn: func(ctx context.Context, id string, req payroll.ApprovePayrollRunRequest) (payroll.ApprovePayrollRunResponse, error) {
			assert.Equal(t, runID, id)
			assert.Nil(t, req.PaymentModeGLHeadID)
			assert.Equal(t, actorID, req.PostedBy)
			return payroll.ApprovePayrollRunResponse{
				Run:             payroll.PayrollRunResponse{ID: id, IsPosted: true},
				ExpensesCreated: 2,
			}, nil
		},
	}

	h := payroll.NewHandler(svc, nil)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	c.Request = httptest.NewRequest(http.MethodPost, "/payroll-runs/"+runID+"/approve", nil)
	c.Params = []gin.Param{{Key: "id", Value: runID}}
	c.Set("user_id", actorID)

	h.Approve(c)

	assert.Equal(t, http.StatusOK, w.Code)
	env := mustDecodeEnvelope(t, w.Body.Bytes())
	assert.True(t, env.Ok)
}
