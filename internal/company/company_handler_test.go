package company_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go-compliance/internal/company"
	companyerrors "go-compliance/internal/company/errors"
	companyMock "go-compliance/internal/company/mock"
	"go-compliance/internal/shared/apperror"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func setupHandlerTest(t *testing.T) (*companyMock.MockService, *gin.Engine) {
	gin.SetMode(gin.TestMode)
	apperror.Init()
	ctrl := gomock.NewController(t)

	mockService := companyMock.NewMockService(ctrl)
	handler := company.NewHandler(mockService)

	r := gin.New()
	company.RegisterRoutes(r.Group(""), handler)
	return mockService, r
}

func TestCompanyHandler_Register(t *testing.T) {
	mockService, r := setupHandlerTest(t)

	t.Run("success", func(t *testing.T) {
		body := map[string]string{
			"company_name":  "Acme Corp",
			"industry_type": "Manufacturing",
			"company_email": "contact@acme.example",
			"reg_no":        "REG-001",
			"admin_name":    "Jane Admin",
			"admin_email":   "admin@acme.example",
			"contact":       "+1-555-0100",
			"password":      "secret123",
		}
		mockService.EXPECT().Apply(gomock.Any(), gomock.Any()).Return(nil)

		w := httptest.NewRecorder()
		jsonReq, _ := json.Marshal(body)
		req, _ := http.NewRequest(http.MethodPost, "/company/register", bytes.NewBuffer(jsonReq))
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		var res map[string]any
		json.Unmarshal(w.Body.Bytes(), &res)
		assert.Equal(t, "Company registration request submitted", res["message"])
	})

	t.Run("duplicate answers 400 with verbatim message", func(t *testing.T) {
		body := map[string]string{
			"company_name":  "Acme Corp",
			"industry_type": "Manufacturing",
			"company_email": "contact@acme.example",
			"reg_no":        "REG-001",
			"admin_name":    "Jane Admin",
			"admin_email":   "admin@acme.example",
			"contact":       "+1-555-0100",
			"password":      "secret123",
		}
		mockService.EXPECT().Apply(gomock.Any(), gomock.Any()).Return(companyerrors.ErrCompanyAlreadyApplied)

		w := httptest.NewRecorder()
		jsonReq, _ := json.Marshal(body)
		req, _ := http.NewRequest(http.MethodPost, "/company/register", bytes.NewBuffer(jsonReq))
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		var res map[string]map[string]any
		json.Unmarshal(w.Body.Bytes(), &res)
		assert.Equal(t, "Company already exists or applied", res["error"]["message"])
	})

	t.Run("missing fields rejected before the service", func(t *testing.T) {
		body := map[string]string{"company_name": "Acme Corp"}

		w := httptest.NewRecorder()
		jsonReq, _ := json.Marshal(body)
		req, _ := http.NewRequest(http.MethodPost, "/company/register", bytes.NewBuffer(jsonReq))
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		var res map[string]map[string]any
		json.Unmarshal(w.Body.Bytes(), &res)
		assert.Equal(t, "INVALID_INPUT", res["error"]["code"])
	})
}

func TestCompanyHandler_ListRequests(t *testing.T) {
	mockService, r := setupHandlerTest(t)

	t.Run("returns bare array", func(t *testing.T) {
		mockService.EXPECT().ListApplications(gomock.Any()).Return([]company.ApplicationResponse{
			{
				ID:           "b2f7f0a8-1111-2222-3333-444455556666",
				CompanyName:  "Acme Corp",
				CompanyEmail: "contact@acme.example",
				RegNo:        "REG-001",
				CreatedAt:    time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
			},
		}, nil)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, "/company/requests", nil)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		var res []map[string]any
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
		assert.Len(t, res, 1)
		assert.Equal(t, "REG-001", res[0]["reg_no"])
		assert.NotContains(t, res[0], "password")
	})

	t.Run("empty list is an empty array, not null", func(t *testing.T) {
		mockService.EXPECT().ListApplications(gomock.Any()).Return([]company.ApplicationResponse{}, nil)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, "/company/requests", nil)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "[]", w.Body.String())
	})
}

func TestCompanyHandler_Approve(t *testing.T) {
	mockService, r := setupHandlerTest(t)

	t.Run("success", func(t *testing.T) {
		id := "b2f7f0a8-1111-2222-3333-444455556666"
		mockService.EXPECT().Approve(gomock.Any(), id).Return(nil)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodPost, "/company/approve/"+id, nil)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		var res map[string]any
		json.Unmarshal(w.Body.Bytes(), &res)
		assert.Equal(t, "Company approved and added successfully", res["message"])
	})

	t.Run("unknown request answers 404", func(t *testing.T) {
		id := "b2f7f0a8-1111-2222-3333-444455556666"
		mockService.EXPECT().Approve(gomock.Any(), id).Return(companyerrors.ErrRequestNotFound)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodPost, "/company/approve/"+id, nil)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
		var res map[string]map[string]any
		json.Unmarshal(w.Body.Bytes(), &res)
		assert.Equal(t, "Request not found", res["error"]["message"])
	})
}

func TestCompanyHandler_Reject(t *testing.T) {
	mockService, r := setupHandlerTest(t)

	t.Run("success", func(t *testing.T) {
		id := "b2f7f0a8-1111-2222-3333-444455556666"
		mockService.EXPECT().Reject(gomock.Any(), id).Return(nil)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodPost, "/company/reject/"+id, nil)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		var res map[string]any
		json.Unmarshal(w.Body.Bytes(), &res)
		assert.Equal(t, "Company registration request rejected", res["message"])
	})

	t.Run("unknown request answers 404", func(t *testing.T) {
		id := "b2f7f0a8-1111-2222-3333-444455556666"
		mockService.EXPECT().Reject(gomock.Any(), id).Return(companyerrors.ErrRequestNotFound)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodPost, "/company/reject/"+id, nil)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestCompanyHandler_List(t *testing.T) {
	mockService, r := setupHandlerTest(t)

	t.Run("returns approved companies", func(t *testing.T) {
		mockService.EXPECT().ListCompanies(gomock.Any()).Return([]company.CompanyListItem{
			{ID: "c1", CompanyName: "Acme Corp", RegNo: "REG-001"},
		}, nil)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, "/company/list", nil)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		var res []map[string]any
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
		assert.Len(t, res, 1)
		assert.Equal(t, "Acme Corp", res[0]["company_name"])
	})
}
