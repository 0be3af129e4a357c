package service

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shbkp/shbkp-backend/internal/company/biz"
	"github.com/shbkp/shbkp-backend/internal/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memRepo struct {
	mu        sync.Mutex
	companies map[string]*biz.Company
}

func newMemRepo() *memRepo {
	return &memRepo{companies: make(map[string]*biz.Company)}
}

func (r *memRepo) Create(_ context.Context, company *biz.Company) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *company
	r.companies[company.CompanyAPIKey] = &cp
	return nil
}

func (r *memRepo) GetByAPIKey(_ context.Context, apiKey string) (*biz.Company, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.companies[apiKey]
	if !ok {
		return nil, biz.ErrCompanyNotFound
	}
	cp := *c
	return &cp, nil
}

func (r *memRepo) ExistsByName(_ context.Context, name string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.companies {
		if c.CompanyName == name {
			return true, nil
		}
	}
	return false, nil
}

func (r *memRepo) ApplyQuotaDelta(_ context.Context, apiKey string, delta int64) (*biz.Company, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.companies[apiKey]
	if !ok {
		return nil, biz.ErrCompanyNotFound
	}
	next := c.UsedQuota + delta
	if next < 0 {
		return nil, biz.ErrQuotaBelowZero
	}
	if next > c.TotalUsageQuota {
		return nil, biz.ErrQuotaExceeded
	}
	c.UsedQuota = next
	cp := *c
	return &cp, nil
}

func setupRouter(t *testing.T) (*gin.Engine, *memRepo) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	log, err := logger.New(&logger.Config{Level: "error", Format: "json", Output: "console"})
	require.NoError(t, err)

	repo := newMemRepo()
	svc := NewCompanyService(biz.NewCompanyUseCase(repo, 365), log)

	router := gin.New()
	svc.RegisterRoutes(router.Group(""))
	return router, repo
}

func registerBody() map[string]interface{} {
	return map[string]interface{}{
		"company_name":      "acme",
		"total_usage_quota": 1000,
		"used_quota":        0,
		"aws_bucket_name":   "acme-backups",
		"aws_bucket_region": "eu-west-1",
		"aws_access_key":    "AKIAEXAMPLE",
		"aws_secret_key":    "secret",
	}
}

func doJSON(router *gin.Engine, method, path string, body interface{}, headers map[string]string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func dataField(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var envelope struct {
		Data map[string]interface{} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	return envelope.Data
}

func TestRegisterCompany(t *testing.T) {
	router, _ := setupRouter(t)

	w := doJSON(router, http.MethodPost, "/register/company", registerBody(), nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	data := dataField(t, w)
	assert.Equal(t, "acme", data["company_name"])
	assert.NotEmpty(t, data["id"])
	assert.NotEmpty(t, data["company_api_key"])
	assert.NotEmpty(t, data["start_date"])
	assert.NotEmpty(t, data["end_date"])
}

func TestRegisterCompany_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(body map[string]interface{})
	}{
		{
			name:   "missing company name",
			mutate: func(b map[string]interface{}) { delete(b, "company_name") },
		},
		{
			name:   "missing bucket name",
			mutate: func(b map[string]interface{}) { delete(b, "aws_bucket_name") },
		},
		{
			name:   "negative total quota",
			mutate: func(b map[string]interface{}) { b["total_usage_quota"] = -1 },
		},
		{
			name:   "malformed used quota",
			mutate: func(b map[string]interface{}) { b["used_quota"] = "plenty" },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, _ := setupRouter(t)

			body := registerBody()
			tt.mutate(body)

			w := doJSON(router, http.MethodPost, "/register/company", body, nil)
			assert.Equal(t, http.StatusUnprocessableEntity, w.Code, w.Body.String())
		})
	}
}

func TestRegisterCompany_DuplicateName(t *testing.T) {
	router, _ := setupRouter(t)

	w := doJSON(router, http.MethodPost, "/register/company", registerBody(), nil)
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(router, http.MethodPost, "/register/company", registerBody(), nil)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestFindByAPIKey(t *testing.T) {
	router, _ := setupRouter(t)

	w := doJSON(router, http.MethodPost, "/register/company", registerBody(), nil)
	require.Equal(t, http.StatusCreated, w.Code)
	apiKey := dataField(t, w)["company_api_key"].(string)

	t.Run("known key", func(t *testing.T) {
		w := doJSON(router, http.MethodGet, "/companies/by-api-key", nil,
			map[string]string{APIKeyHeader: apiKey})
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "acme", dataField(t, w)["company_name"])
	})

	t.Run("unknown key", func(t *testing.T) {
		w := doJSON(router, http.MethodGet, "/companies/by-api-key", nil,
			map[string]string{APIKeyHeader: "shbkp_unknown"})
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("missing header", func(t *testing.T) {
		w := doJSON(router, http.MethodGet, "/companies/by-api-key", nil, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestQuotaAvailability(t *testing.T) {
	router, _ := setupRouter(t)

	w := doJSON(router, http.MethodPost, "/register/company", registerBody(), nil)
	require.Equal(t, http.StatusCreated, w.Code)
	apiKey := dataField(t, w)["company_api_key"].(string)

	t.Run("quota available", func(t *testing.T) {
		w := doJSON(router, http.MethodGet, "/companies/quota/is-available", nil,
			map[string]string{APIKeyHeader: apiKey})
		require.Equal(t, http.StatusOK, w.Code)

		data := dataField(t, w)
		assert.Equal(t, true, data["is_available"])
		assert.Equal(t, float64(0), data["used_quota"])
	})

	t.Run("quota exhausted", func(t *testing.T) {
		w := doJSON(router, http.MethodPatch, "/companies/quota",
			map[string]interface{}{"used_quota": 1000, "file_txn_type": 1},
			map[string]string{APIKeyHeader: apiKey})
		require.Equal(t, http.StatusOK, w.Code)

		w = doJSON(router, http.MethodGet, "/companies/quota/is-available", nil,
			map[string]string{APIKeyHeader: apiKey})
		require.Equal(t, http.StatusOK, w.Code)

		data := dataField(t, w)
		assert.Equal(t, false, data["is_available"])
		assert.Equal(t, float64(1000), data["used_quota"])
	})

	t.Run("unknown key", func(t *testing.T) {
		w := doJSON(router, http.MethodGet, "/companies/quota/is-available", nil,
			map[string]string{APIKeyHeader: "shbkp_unknown"})
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("missing header", func(t *testing.T) {
		w := doJSON(router, http.MethodGet, "/companies/quota/is-available", nil, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestUpdateQuota(t *testing.T) {
	router, _ := setupRouter(t)

	w := doJSON(router, http.MethodPost, "/register/company", registerBody(), nil)
	require.Equal(t, http.StatusCreated, w.Code)
	apiKey := dataField(t, w)["company_api_key"].(string)

	t.Run("upload adds", func(t *testing.T) {
		w := doJSON(router, http.MethodPatch, "/companies/quota",
			map[string]interface{}{"used_quota": 300, "file_txn_type": 1},
			map[string]string{APIKeyHeader: apiKey})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.Equal(t, float64(300), dataField(t, w)["used_quota"])
	})

	t.Run("delete subtracts", func(t *testing.T) {
		w := doJSON(router, http.MethodPatch, "/companies/quota",
			map[string]interface{}{"used_quota": 100, "file_txn_type": 2},
			map[string]string{APIKeyHeader: apiKey})
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, float64(200), dataField(t, w)["used_quota"])
	})

	t.Run("over total rejected", func(t *testing.T) {
		w := doJSON(router, http.MethodPatch, "/companies/quota",
			map[string]interface{}{"used_quota": 5000, "file_txn_type": 1},
			map[string]string{APIKeyHeader: apiKey})
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("unknown key", func(t *testing.T) {
		w := doJSON(router, http.MethodPatch, "/companies/quota",
			map[string]interface{}{"used_quota": 10, "file_txn_type": 1},
			map[string]string{APIKeyHeader: "shbkp_unknown"})
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("missing body field", func(t *testing.T) {
		w := doJSON(router, http.MethodPatch, "/companies/quota",
			map[string]interface{}{"file_txn_type": 1},
			map[string]string{APIKeyHeader: apiKey})
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})
}
