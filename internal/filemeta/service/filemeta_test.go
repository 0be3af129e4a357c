package service

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	companybiz "github.com/shbkp/shbkp-backend/internal/company/biz"
	companyservice "github.com/shbkp/shbkp-backend/internal/company/service"
	"github.com/shbkp/shbkp-backend/internal/filemeta/biz"
	"github.com/shbkp/shbkp-backend/internal/pkg/logger"
	"github.com/shbkp/shbkp-backend/internal/pkg/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testAPIKey = "shbkp_testkey"

type memFileMetaRepo struct {
	metas []*biz.FileMeta
}

func (r *memFileMetaRepo) Create(_ context.Context, meta *biz.FileMeta) error {
	cp := *meta
	r.metas = append(r.metas, &cp)
	return nil
}

func (r *memFileMetaRepo) ListByCompany(_ context.Context, companyID string, offset, limit int) ([]*biz.FileMeta, error) {
	var out []*biz.FileMeta
	for _, m := range r.metas {
		if m.CompanyID == companyID {
			out = append(out, m)
		}
	}
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

type stubCompanyRepo struct {
	company *companybiz.Company
}

func (r *stubCompanyRepo) Create(context.Context, *companybiz.Company) error { return nil }

func (r *stubCompanyRepo) GetByAPIKey(_ context.Context, apiKey string) (*companybiz.Company, error) {
	if r.company != nil && r.company.CompanyAPIKey == apiKey {
		return r.company, nil
	}
	return nil, companybiz.ErrCompanyNotFound
}

func (r *stubCompanyRepo) ExistsByName(context.Context, string) (bool, error) { return false, nil }

func (r *stubCompanyRepo) ApplyQuotaDelta(context.Context, string, int64) (*companybiz.Company, error) {
	return nil, companybiz.ErrCompanyNotFound
}

type stubPresigner struct{}

func (stubPresigner) PresignPut(_ context.Context, creds s3.BucketCredentials, objectKey, _ string) (string, error) {
	return "https://" + creds.Bucket + ".s3.amazonaws.com/" + objectKey + "?X-Amz-Signature=stub", nil
}

func (stubPresigner) PresignGet(_ context.Context, creds s3.BucketCredentials, objectKey string) (string, error) {
	return "https://" + creds.Bucket + ".s3.amazonaws.com/" + objectKey + "?X-Amz-Signature=stub", nil
}

func (stubPresigner) Expiry() time.Duration { return 15 * time.Minute }

func setupRouter(t *testing.T) (*gin.Engine, *memFileMetaRepo) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	log, err := logger.New(&logger.Config{Level: "error", Format: "json", Output: "console"})
	require.NoError(t, err)

	repo := &memFileMetaRepo{}
	companies := &stubCompanyRepo{company: &companybiz.Company{
		ID:              "4f9c8f0a-0000-0000-0000-000000000001",
		CompanyName:     "acme",
		CompanyAPIKey:   testAPIKey,
		AWSBucketName:   "acme-backups",
		AWSBucketRegion: "eu-west-1",
		AWSAccessKey:    "AKIAEXAMPLE",
		AWSSecretKey:    "secret",
	}}

	svc := NewFileMetaService(biz.NewFileMetaUseCase(repo, companies, stubPresigner{}), log)

	router := gin.New()
	svc.RegisterRoutes(router.Group(""))
	return router, repo
}

func insertBody() map[string]interface{} {
	return map[string]interface{}{
		"file_name":     "report.pdf",
		"file_size":     2048,
		"file_key":      "acme/2026/report.pdf",
		"file_txn_type": 1,
		"file_txn_meta": "{}",
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

func TestInsertFileMeta(t *testing.T) {
	router, repo := setupRouter(t)

	w := doJSON(router, http.MethodPost, "/filemeta", insertBody(),
		map[string]string{companyservice.APIKeyHeader: testAPIKey})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var envelope struct {
		Data FileMetaResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))

	assert.NotEmpty(t, envelope.Data.ID)
	assert.Equal(t, "4f9c8f0a-0000-0000-0000-000000000001", envelope.Data.CompanyID)
	assert.Equal(t, "report.pdf", envelope.Data.FileName)
	assert.Equal(t, int64(2048), envelope.Data.FileSize)

	require.Len(t, repo.metas, 1)
	assert.Equal(t, envelope.Data.ID, repo.metas[0].ID)
}

func TestInsertFileMeta_UnknownKey(t *testing.T) {
	router, repo := setupRouter(t)

	w := doJSON(router, http.MethodPost, "/filemeta", insertBody(),
		map[string]string{companyservice.APIKeyHeader: "shbkp_unknown"})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Empty(t, repo.metas)
}

func TestInsertFileMeta_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(body map[string]interface{})
	}{
		{
			name:   "missing file key",
			mutate: func(b map[string]interface{}) { delete(b, "file_key") },
		},
		{
			name:   "missing file size",
			mutate: func(b map[string]interface{}) { delete(b, "file_size") },
		},
		{
			name:   "negative file size",
			mutate: func(b map[string]interface{}) { b["file_size"] = -5 },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, repo := setupRouter(t)

			body := insertBody()
			tt.mutate(body)

			w := doJSON(router, http.MethodPost, "/filemeta", body,
				map[string]string{companyservice.APIKeyHeader: testAPIKey})
			assert.Equal(t, http.StatusUnprocessableEntity, w.Code, w.Body.String())
			assert.Empty(t, repo.metas)
		})
	}
}

func TestInsertFileMeta_MissingHeader(t *testing.T) {
	router, _ := setupRouter(t)

	w := doJSON(router, http.MethodPost, "/filemeta", insertBody(), nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListFileMeta(t *testing.T) {
	router, _ := setupRouter(t)

	for i := 0; i < 3; i++ {
		w := doJSON(router, http.MethodPost, "/filemeta", insertBody(),
			map[string]string{companyservice.APIKeyHeader: testAPIKey})
		require.Equal(t, http.StatusCreated, w.Code)
	}

	w := doJSON(router, http.MethodGet, "/filemeta?page=1&page_size=10", nil,
		map[string]string{companyservice.APIKeyHeader: testAPIKey})
	require.Equal(t, http.StatusOK, w.Code)

	var envelope struct {
		Data struct {
			Files []FileMetaResponse `json:"files"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.Len(t, envelope.Data.Files, 3)
}

func TestPresignUpload(t *testing.T) {
	router, _ := setupRouter(t)

	w := doJSON(router, http.MethodPost, "/filemeta/presigned-url",
		map[string]interface{}{"file_name": "report.pdf", "content_type": "application/pdf"},
		map[string]string{companyservice.APIKeyHeader: testAPIKey})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var envelope struct {
		Data PresignUploadResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.Contains(t, envelope.Data.UploadURL, "acme-backups")
	assert.NotEmpty(t, envelope.Data.ObjectKey)
	assert.NotEmpty(t, envelope.Data.ExpiresAt)
}

func TestPresignUpload_Validation(t *testing.T) {
	router, _ := setupRouter(t)

	w := doJSON(router, http.MethodPost, "/filemeta/presigned-url",
		map[string]interface{}{"content_type": "application/pdf"},
		map[string]string{companyservice.APIKeyHeader: testAPIKey})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestPresignDownload(t *testing.T) {
	router, _ := setupRouter(t)

	w := doJSON(router, http.MethodGet, "/filemeta/download-url?object_key=acme/2026/report.pdf", nil,
		map[string]string{companyservice.APIKeyHeader: testAPIKey})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var envelope struct {
		Data PresignDownloadResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.Contains(t, envelope.Data.DownloadURL, "acme-backups")
	assert.Equal(t, "acme/2026/report.pdf", envelope.Data.ObjectKey)
	assert.NotEmpty(t, envelope.Data.ExpiresAt)
}

func TestPresignDownload_Errors(t *testing.T) {
	router, _ := setupRouter(t)

	t.Run("missing object key", func(t *testing.T) {
		w := doJSON(router, http.MethodGet, "/filemeta/download-url", nil,
			map[string]string{companyservice.APIKeyHeader: testAPIKey})
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})

	t.Run("unknown key", func(t *testing.T) {
		w := doJSON(router, http.MethodGet, "/filemeta/download-url?object_key=acme/2026/report.pdf", nil,
			map[string]string{companyservice.APIKeyHeader: "shbkp_unknown"})
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
