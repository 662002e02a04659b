package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"ayurveda-backend/internal/domains/doctor/model"
	reviewmodel "ayurveda-backend/internal/domains/review/model"
	"ayurveda-backend/internal/shared/middleware"
	"ayurveda-backend/pkg/jwt"
)

type mockService struct {
	mock.Mock
}

func (m *mockService) ListDoctors(ctx context.Context, req model.ListDoctorsRequest) (*model.ListDoctorsResponse, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*model.ListDoctorsResponse)
	return resp, args.Error(1)
}

func (m *mockService) GetDoctor(ctx context.Context, id int64) (*model.DoctorDetailResponse, error) {
	args := m.Called(ctx, id)
	resp, _ := args.Get(0).(*model.DoctorDetailResponse)
	return resp, args.Error(1)
}

func (m *mockService) GetProfile(ctx context.Context, doctorID int64) (*model.DoctorDetailResponse, error) {
	args := m.Called(ctx, doctorID)
	resp, _ := args.Get(0).(*model.DoctorDetailResponse)
	return resp, args.Error(1)
}

func (m *mockService) UpdateProfile(ctx context.Context, doctorID int64, req model.UpdateProfileRequest) (*model.DoctorResponse, error) {
	args := m.Called(ctx, doctorID, req)
	resp, _ := args.Get(0).(*model.DoctorResponse)
	return resp, args.Error(1)
}

func (m *mockService) CreateDoctor(ctx context.Context, req model.CreateDoctorRequest) (*model.DoctorResponse, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*model.DoctorResponse)
	return resp, args.Error(1)
}

func (m *mockService) SetActive(ctx context.Context, id int64, req model.UpdateActiveRequest) (*model.DoctorResponse, error) {
	args := m.Called(ctx, id, req)
	resp, _ := args.Get(0).(*model.DoctorResponse)
	return resp, args.Error(1)
}

func init() {
	gin.SetMode(gin.TestMode)
}

func setupRouter(svc *mockService, caller *middleware.Caller) *gin.Engine {
	h := NewDoctorHandler(svc)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		if caller != nil {
			c.Request = c.Request.WithContext(middleware.WithCaller(c.Request.Context(), *caller))
		}
		c.Next()
	})

	r.GET("/doctors", h.ListDoctors)
	r.GET("/doctors/me", h.GetProfile)
	r.PUT("/doctors/me", h.UpdateProfile)
	r.GET("/doctors/:id", h.GetDoctor)
	r.POST("/admin/doctors", h.CreateDoctor)
	r.PATCH("/admin/doctors/:id/status", h.SetActive)
	return r
}

func doRequest(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestListDoctors(t *testing.T) {
	svc := new(mockService)
	svc.On("ListDoctors", mock.Anything, model.ListDoctorsRequest{City: "Kochi", Page: 1}).
		Return(&model.ListDoctorsResponse{
			Doctors:    []model.DoctorResponse{{ID: 1, FullName: "Dr. A"}},
			Pagination: model.NewPagination(1, 10, 1),
		}, nil)

	w := doRequest(setupRouter(svc, nil), http.MethodGet, "/doctors?city=Kochi&page=1", "")

	assert.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Len(t, body["doctors"], 1)
	assert.Equal(t, float64(1), body["pagination"].(map[string]interface{})["total_doctors"])
}

func TestGetDoctor(t *testing.T) {
	svc := new(mockService)
	stats := reviewmodel.ToStatisticsResponse(reviewmodel.Aggregate([]reviewmodel.RatingBucket{
		{Status: reviewmodel.StatusApproved, Rating: 5, Count: 1},
	}))
	svc.On("GetDoctor", mock.Anything, int64(3)).Return(&model.DoctorDetailResponse{
		DoctorResponse: model.DoctorResponse{ID: 3, FullName: "Dr. C"},
		Statistics:     stats,
	}, nil)
	svc.On("GetDoctor", mock.Anything, int64(4)).Return(nil, model.NewDoctorNotFoundError())

	r := setupRouter(svc, nil)

	w := doRequest(r, http.MethodGet, "/doctors/3", "")
	assert.Equal(t, http.StatusOK, w.Code)
	doctor := decodeBody(t, w)["doctor"].(map[string]interface{})
	assert.Equal(t, "Dr. C", doctor["full_name"])
	assert.Equal(t, float64(5), doctor["statistics"].(map[string]interface{})["average_rating"])

	w = doRequest(r, http.MethodGet, "/doctors/4", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, model.ErrCodeDoctorNotFound, decodeBody(t, w)["code"])

	w = doRequest(r, http.MethodGet, "/doctors/0", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetProfile_RequiresDoctorCaller(t *testing.T) {
	svc := new(mockService)

	w := doRequest(setupRouter(svc, nil), http.MethodGet, "/doctors/me", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doRequest(setupRouter(svc, &middleware.Caller{Role: jwt.RoleAdmin}), http.MethodGet, "/doctors/me", "")
	assert.Equal(t, http.StatusForbidden, w.Code)

	svc.On("GetProfile", mock.Anything, int64(7)).
		Return(&model.DoctorDetailResponse{DoctorResponse: model.DoctorResponse{ID: 7}}, nil)
	w = doRequest(setupRouter(svc, &middleware.Caller{DoctorID: 7, Role: jwt.RoleDoctor}), http.MethodGet, "/doctors/me", "")
	assert.Equal(t, http.StatusOK, w.Code)
	svc.AssertExpectations(t)
}

func TestUpdateProfile_ValidationError(t *testing.T) {
	svc := new(mockService)
	svc.On("UpdateProfile", mock.Anything, int64(7), mock.Anything).
		Return(nil, model.NewFieldError("experience_years", "experience_years must be between 0 and 80"))

	w := doRequest(setupRouter(svc, &middleware.Caller{DoctorID: 7, Role: jwt.RoleDoctor}),
		http.MethodPut, "/doctors/me", `{"experience_years": -2}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, model.ErrCodeValidation, body["code"])
	assert.Contains(t, body["details"], "experience_years")
}

func TestCreateDoctor(t *testing.T) {
	svc := new(mockService)
	svc.On("CreateDoctor", mock.Anything, mock.Anything).
		Return(&model.DoctorResponse{ID: 1, FullName: "Dr. A", IsActive: true}, nil).Once()
	svc.On("CreateDoctor", mock.Anything, mock.Anything).
		Return(nil, model.NewEmailExistsError()).Once()

	r := setupRouter(svc, &middleware.Caller{Role: jwt.RoleAdmin})
	body := `{"full_name":"Dr. A","email":"a@x.in","specialization":"Rasayana"}`

	w := doRequest(r, http.MethodPost, "/admin/doctors", body)
	assert.Equal(t, http.StatusCreated, w.Code)

	w = doRequest(r, http.MethodPost, "/admin/doctors", body)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = doRequest(r, http.MethodPost, "/admin/doctors", `{"full_name":`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDoctorBody_MistypedField(t *testing.T) {
	svc := new(mockService)
	admin := setupRouter(svc, &middleware.Caller{Role: jwt.RoleAdmin})
	self := setupRouter(svc, &middleware.Caller{DoctorID: 4, Role: jwt.RoleDoctor})

	w := doRequest(admin, http.MethodPost, "/admin/doctors",
		`{"full_name":"Dr. A","email":"a@x.in","specialization":"Rasayana","experience_years":"ten"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, model.ErrCodeValidation, body["code"])
	assert.Equal(t, map[string]interface{}{"experience_years": "experience_years must be an integer"}, body["details"])

	w = doRequest(admin, http.MethodPatch, "/admin/doctors/2/status", `{"is_active":"no"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, map[string]interface{}{"is_active": "is_active must be a boolean"}, decodeBody(t, w)["details"])

	w = doRequest(self, http.MethodPut, "/doctors/me", `{"city":7}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, map[string]interface{}{"city": "city must be a string"}, decodeBody(t, w)["details"])

	svc.AssertNotCalled(t, "CreateDoctor", mock.Anything, mock.Anything)
	svc.AssertNotCalled(t, "SetActive", mock.Anything, mock.Anything, mock.Anything)
	svc.AssertNotCalled(t, "UpdateProfile", mock.Anything, mock.Anything, mock.Anything)
}

func TestSetActive(t *testing.T) {
	svc := new(mockService)
	off := false
	svc.On("SetActive", mock.Anything, int64(2), model.UpdateActiveRequest{IsActive: &off}).
		Return(&model.DoctorResponse{ID: 2, IsActive: false}, nil)

	w := doRequest(setupRouter(svc, &middleware.Caller{Role: jwt.RoleAdmin}),
		http.MethodPatch, "/admin/doctors/2/status", `{"is_active": false}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, false, decodeBody(t, w)["doctor"].(map[string]interface{})["is_active"])
}

func TestInternalErrorIsGeneric(t *testing.T) {
	svc := new(mockService)
	svc.On("ListDoctors", mock.Anything, mock.Anything).Return(nil, errors.New("pq: password authentication failed"))

	w := doRequest(setupRouter(svc, nil), http.MethodGet, "/doctors", "")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "password")
}
