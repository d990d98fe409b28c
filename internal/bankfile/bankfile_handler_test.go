package bankfile_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"tl-payroll/internal/bankfile"
	bankfileerrors "tl-payroll/internal/bankfile/errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

type fakeBankFileService struct {
	summarizeFn    func(ctx context.Context, companyID, runID string) (*bankfile.RunSummaryResponse, error)
	generateFileFn func(ctx context.Context, companyID, runID, bankCode string, req bankfile.GenerateFileRequest) (bankfile.BankFileResult, error)
}

func (f *fakeBankFileService) Summarize(ctx context.Context, companyID, runID string) (*bankfile.RunSummaryResponse, error) {
	return f.summarizeFn(ctx, companyID, runID)
}

func (f *fakeBankFileService) GenerateFile(ctx context.Context, companyID, runID, bankCode string, req bankfile.GenerateFileRequest) (bankfile.BankFileResult, error) {
	return f.generateFileFn(ctx, companyID, runID, bankCode, req)
}

func TestBankFileHandler_Summarize(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	t.Run("success", func(t *testing.T) {
		companyID := uuid.New().String()
		runID := uuid.New().String()

		svc := &fakeBankFileService{
			summarizeFn: func(ctx context.Context, cid, rid string) (*bankfile.RunSummaryResponse, error) {
				assert.Equal(t, companyID, cid)
				assert.Equal(t, runID, rid)
				return &bankfile.RunSummaryResponse{
					RunID:     rid,
					RunNumber: "RUN-000007",
					Status:    "PROCESSED",
					Banks: []bankfile.BankSummaryResponse{
						{Bank: "BNU", RecordCount: 2, TotalAmount: "1170.00"},
					},
					Unassigned: []bankfile.UnassignedResponse{
						{EmployeeName: "Pedro Guterres", Reason: "employee has no bank code"},
					},
				}, nil
			},
		}

		h := bankfile.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/payroll-runs/"+runID+"/bank-files", nil)
		c.Params = []gin.Param{{Key: "id", Value: runID}}
		c.Set("company_id", companyID)

		h.Summarize(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "1170.00")
		assert.Contains(t, w.Body.String(), "employee has no bank code")
	})

	t.Run("draft run returns conflict", func(t *testing.T) {
		svc := &fakeBankFileService{
			summarizeFn: func(ctx context.Context, cid, rid string) (*bankfile.RunSummaryResponse, error) {
				return nil, bankfileerrors.ErrRunNotPayable
			},
		}

		h := bankfile.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/payroll-runs/123/bank-files", nil)
		c.Params = []gin.Param{{Key: "id", Value: "123"}}
		c.Set("company_id", uuid.New().String())

		h.Summarize(c)

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Contains(t, w.Body.String(), "INVALID_STATE")
	})
}

func TestBankFileHandler_GenerateFile(t *testing.T) {
	t.Run("streams csv download", func(t *testing.T) {
		companyID := uuid.New().String()
		runID := uuid.New().String()
		content := []byte("BATCH,Timor Cafe Lda,900800700,2026-08-28,1,738.00\n")

		svc := &fakeBankFileService{
			generateFileFn: func(ctx context.Context, cid, rid, bank string, req bankfile.GenerateFileRequest) (bankfile.BankFileResult, error) {
				assert.Equal(t, companyID, cid)
				assert.Equal(t, runID, rid)
				assert.Equal(t, "BNU", bank)
				assert.Equal(t, "2026-08-28", req.ValueDate)
				return bankfile.BankFileResult{
					Bank:        bankfile.BankBNU,
					Content:     content,
					Filename:    "bnu_salary_2026-08_20260828.csv",
					RecordCount: 1,
					Total:       decimal.RequireFromString("738.00"),
				}, nil
			},
		}

		h := bankfile.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		body := `{"value_date":"2026-08-28"}`
		c.Request = httptest.NewRequest(http.MethodPost, "/payroll-runs/"+runID+"/bank-files/BNU", strings.NewReader(body))
		c.Request.Header.Set("Content-Type", "application/json")
		c.Params = []gin.Param{{Key: "id", Value: runID}, {Key: "bank", Value: "BNU"}}
		c.Set("company_id", companyID)

		h.GenerateFile(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, `attachment; filename="bnu_salary_2026-08_20260828.csv"`, w.Header().Get("Content-Disposition"))
		assert.Equal(t, "text/csv; charset=utf-8", w.Header().Get("Content-Type"))
		assert.Equal(t, content, w.Body.Bytes())
	})

	t.Run("fixed width layout streams as plain text", func(t *testing.T) {
		svc := &fakeBankFileService{
			generateFileFn: func(ctx context.Context, cid, rid, bank string, req bankfile.GenerateFileRequest) (bankfile.BankFileResult, error) {
				return bankfile.BankFileResult{
					Bank:     bankfile.BankBNCTL,
					Content:  []byte("01\n"),
					Filename: "bnctl_salary_2026-08_20260828.txt",
				}, nil
			},
		}

		h := bankfile.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPost, "/payroll-runs/123/bank-files/BNCTL", strings.NewReader(`{"value_date":"2026-08-28"}`))
		c.Request.Header.Set("Content-Type", "application/json")
		c.Params = []gin.Param{{Key: "id", Value: "123"}, {Key: "bank", Value: "BNCTL"}}
		c.Set("company_id", uuid.New().String())

		h.GenerateFile(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "text/plain; charset=utf-8", w.Header().Get("Content-Type"))
	})

	t.Run("validation error on missing value date", func(t *testing.T) {
		h := bankfile.NewHandler(&fakeBankFileService{})
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPost, "/payroll-runs/123/bank-files/BNU", strings.NewReader(`{}`))
		c.Request.Header.Set("Content-Type", "application/json")
		c.Params = []gin.Param{{Key: "id", Value: "123"}, {Key: "bank", Value: "BNU"}}
		c.Set("company_id", uuid.New().String())

		h.GenerateFile(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("unsupported bank", func(t *testing.T) {
		svc := &fakeBankFileService{
			generateFileFn: func(ctx context.Context, cid, rid, bank string, req bankfile.GenerateFileRequest) (bankfile.BankFileResult, error) {
				return bankfile.BankFileResult{}, bankfileerrors.ErrUnsupportedBank
			},
		}

		h := bankfile.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPost, "/payroll-runs/123/bank-files/ANZ", strings.NewReader(`{"value_date":"2026-08-28"}`))
		c.Request.Header.Set("Content-Type", "application/json")
		c.Params = []gin.Param{{Key: "id", Value: "123"}, {Key: "bank", Value: "ANZ"}}
		c.Set("company_id", uuid.New().String())

		h.GenerateFile(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "Unsupported bank code")
	})

	t.Run("no records for bank", func(t *testing.T) {
		svc := &fakeBankFileService{
			generateFileFn: func(ctx context.Context, cid, rid, bank string, req bankfile.GenerateFileRequest) (bankfile.BankFileResult, error) {
				return bankfile.BankFileResult{}, bankfileerrors.ErrNoRecordsForBank
			},
		}

		h := bankfile.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPost, "/payroll-runs/123/bank-files/MANDIRI", strings.NewReader(`{"value_date":"2026-08-28"}`))
		c.Request.Header.Set("Content-Type", "application/json")
		c.Params = []gin.Param{{Key: "id", Value: "123"}, {Key: "bank", Value: "MANDIRI"}}
		c.Set("company_id", uuid.New().String())

		h.GenerateFile(c)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
