package employee_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"go-compliance/internal/employee"
	employeeerrors "go-compliance/internal/employee/errors"
	employeeMock "go-compliance/internal/employee/mock"
	"go-compliance/internal/shared/apperror"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func setupHandlerTest(t *testing.T) (*employeeMock.MockService, *gin.Engine) {
	gin.SetMode(gin.TestMode)
	apperror.Init()
	ctrl := gomock.NewController(t)

	mockService := employeeMock.NewMockService(ctrl)
	handler := employee.NewHandler(mockService)

	r := gin.New()
	employee.RegisterRoutes(r.Group(""), handler)
	return mockService, r
}

func TestEmployeeHandler_BulkCreate(t *testing.T) {
	mockService, r := setupHandlerTest(t)

	t.Run("partial failure still answers 200", func(t *testing.T) {
		body := map[string]any{
			"employees": []map[string]string{
				{"employee_id": "E-001", "name": "A", "department": "Ops", "company_reg_no": "REG-001"},
				{"employee_id": "E-002", "name": "B", "department": "Ops", "company_reg_no": "REG-404"},
			},
		}
		mockService.EXPECT().
			BulkCreate(gomock.Any(), gomock.Any()).
			Return(employee.BulkCreateSummary{
				Inserted: 1,
				Skipped:  1,
				Errors:   []string{"Row 2: Company REG-404 not found"},
			})

		w := httptest.NewRecorder()
		jsonReq, _ := json.Marshal(body)
		req, _ := http.NewRequest(http.MethodPost, "/employee/bulk-create", bytes.NewBuffer(jsonReq))
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		var res employee.BulkCreateResponse
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
		assert.Equal(t, "Bulk employee insertion completed", res.Message)
		assert.Equal(t, 1, res.Inserted)
		assert.Equal(t, 1, res.Skipped)
		assert.Equal(t, []string{"Row 2: Company REG-404 not found"}, res.Errors)
	})

	t.Run("clean batch reports empty errors array", func(t *testing.T) {
		body := map[string]any{
			"employees": []map[string]string{
				{"employee_id": "E-001", "name": "A", "department": "Ops", "company_reg_no": "REG-001"},
			},
		}
		mockService.EXPECT().
			BulkCreate(gomock.Any(), gomock.Any()).
			Return(employee.BulkCreateSummary{Inserted: 1, Errors: []string{}})

		w := httptest.NewRecorder()
		jsonReq, _ := json.Marshal(body)
		req, _ := http.NewRequest(http.MethodPost, "/employee/bulk-create", bytes.NewBuffer(jsonReq))
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"errors":[]`)
	})

	t.Run("empty employee list rejected", func(t *testing.T) {
		body := map[string]any{"employees": []map[string]string{}}

		w := httptest.NewRecorder()
		jsonReq, _ := json.Marshal(body)
		req, _ := http.NewRequest(http.MethodPost, "/employee/bulk-create", bytes.NewBuffer(jsonReq))
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		var res map[string]map[string]any
		json.Unmarshal(w.Body.Bytes(), &res)
		assert.Equal(t, "INVALID_INPUT", res["error"]["code"])
	})
}

func TestEmployeeHandler_ListByCompany(t *testing.T) {
	mockService, r := setupHandlerTest(t)

	t.Run("returns bare array", func(t *testing.T) {
		mockService.EXPECT().
			ListByCompany(gomock.Any(), "REG-001").
			Return([]employee.EmployeeResponse{
				{EmployeeID: "E-001", Name: "A", Department: "Ops", CompanyRegNo: "REG-001"},
			}, nil)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, "/employee/list/REG-001", nil)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		var res []map[string]any
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
		assert.Len(t, res, 1)
		assert.Equal(t, "E-001", res[0]["employee_id"])
	})

	t.Run("unknown company answers 404", func(t *testing.T) {
		mockService.EXPECT().
			ListByCompany(gomock.Any(), "REG-404").
			Return(nil, employeeerrors.ErrCompanyNotFound)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, "/employee/list/REG-404", nil)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestEmployeeHandler_Create(t *testing.T) {
	mockService, r := setupHandlerTest(t)

	body := map[string]string{
		"employee_id":    "E-001",
		"name":           "A",
		"department":     "Ops",
		"company_reg_no": "REG-001",
	}

	t.Run("success", func(t *testing.T) {
		mockService.EXPECT().
			Create(gomock.Any(), gomock.Any()).
			Return(employee.CreateEmployeeResponse{
				Message:      "Employee created successfully",
				EmployeeID:   "E-001",
				CompanyRegNo: "REG-001",
			}, nil)

		w := httptest.NewRecorder()
		jsonReq, _ := json.Marshal(body)
		req, _ := http.NewRequest(http.MethodPost, "/employee/create", bytes.NewBuffer(jsonReq))
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		var res map[string]any
		json.Unmarshal(w.Body.Bytes(), &res)
		assert.Equal(t, "Employee created successfully", res["message"])
	})

	t.Run("unknown company answers 404", func(t *testing.T) {
		mockService.EXPECT().
			Create(gomock.Any(), gomock.Any()).
			Return(employee.CreateEmployeeResponse{}, employeeerrors.ErrCompanyNotFound)

		w := httptest.NewRecorder()
		jsonReq, _ := json.Marshal(body)
		req, _ := http.NewRequest(http.MethodPost, "/employee/create", bytes.NewBuffer(jsonReq))
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
		var res map[string]map[string]any
		json.Unmarshal(w.Body.Bytes(), &res)
		assert.Equal(t, "Company with given registration number does not exist", res["error"]["message"])
	})

	t.Run("duplicate answers 400", func(t *testing.T) {
		mockService.EXPECT().
			Create(gomock.Any(), gomock.Any()).
			Return(employee.CreateEmployeeResponse{}, employeeerrors.ErrEmployeeAlreadyExists)

		w := httptest.NewRecorder()
		jsonReq, _ := json.Marshal(body)
		req, _ := http.NewRequest(http.MethodPost, "/employee/create", bytes.NewBuffer(jsonReq))
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		var res map[string]map[string]any
		json.Unmarshal(w.Body.Bytes(), &res)
		assert.Equal(t, "Employee already exists for this company", res["error"]["message"])
	})
}
