package appointment

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/niramoy/clinic-api/internal/model"
	"github.com/niramoy/clinic-api/internal/repository/postgres"
	appointmentService "github.com/niramoy/clinic-api/internal/service/appointment"
	"github.com/niramoy/clinic-api/internal/service/event"
)

type fakeAppointmentRepo struct {
	appointments map[uuid.UUID]*model.Appointment
}

func (r *fakeAppointmentRepo) Create(_ context.Context, a *model.Appointment) error {
	a.ID = uuid.New()
	r.appointments[a.ID] = a
	return nil
}

func (r *fakeAppointmentRepo) Get(_ context.Context, id uuid.UUID) (*model.Appointment, error) {
	a, ok := r.appointments[id]
	if !ok {
		return nil, postgres.ErrNotFound
	}
	return a, nil
}

func (r *fakeAppointmentRepo) List(_ context.Context) ([]*model.Appointment, error) {
	out := make([]*model.Appointment, 0, len(r.appointments))
	for _, a := range r.appointments {
		out = append(out, a)
	}
	return out, nil
}

func (r *fakeAppointmentRepo) UpdateStatus(_ context.Context, id uuid.UUID, status model.AppointmentStatus) error {
	a, ok := r.appointments[id]
	if !ok {
		return postgres.ErrNotFound
	}
	a.Status = status
	return nil
}

func (r *fakeAppointmentRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.appointments, id)
	return nil
}

type fakeServiceRepo struct {
	service *model.Service
}

func (r *fakeServiceRepo) Create(context.Context, *model.Service) error { return nil }

func (r *fakeServiceRepo) Get(_ context.Context, id uuid.UUID) (*model.Service, error) {
	if r.service == nil || r.service.ID != id {
		return nil, postgres.ErrNotFound
	}
	return r.service, nil
}

func (r *fakeServiceRepo) List(context.Context) ([]*model.Service, error) {
	return []*model.Service{r.service}, nil
}

func (r *fakeServiceRepo) UpdateImage(context.Context, uuid.UUID, string) error { return nil }
func (r *fakeServiceRepo) Delete(context.Context, uuid.UUID) error             { return nil }

type fakeOutboxRepo struct{}

func (fakeOutboxRepo) Create(context.Context, *model.OutboxEvent) error { return nil }
func (fakeOutboxRepo) GetPendingEvents(context.Context, int) ([]*model.OutboxEvent, error) {
	return nil, nil
}
func (fakeOutboxRepo) UpdateStatus(context.Context, uuid.UUID, model.OutboxStatus, *string) error {
	return nil
}
func (fakeOutboxRepo) DeleteProcessedBefore(context.Context, time.Time) (int64, error) {
	return 0, nil
}

func setupRouter(t *testing.T) (*gin.Engine, *model.Service) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	svc := &model.Service{Name: "Skin Consultation"}
	svc.ID = uuid.New()
	svc.Questions = []model.Question{
		{ID: uuid.New(), ServiceID: svc.ID, Text: "Describe your symptoms", AnswerType: model.AnswerTypeText},
	}

	appointmentSvc := appointmentService.NewService(
		&fakeAppointmentRepo{appointments: make(map[uuid.UUID]*model.Appointment)},
		&fakeServiceRepo{service: svc},
		event.NewService(fakeOutboxRepo{}),
	)

	engine := gin.New()
	NewHandler(appointmentSvc, nil).RegisterRoutes(engine.Group(""))
	return engine, svc
}

func multipartBody(t *testing.T, data interface{}) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	payload, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, w.WriteField("data", string(payload)))
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

func TestCreateAppointment(t *testing.T) {
	engine, svc := setupRouter(t)

	body, contentType := multipartBody(t, &model.CreateAppointmentRequest{
		Name:      "Rahim Uddin",
		Phone:     "01712345678",
		ServiceID: svc.ID,
		Questions: []model.QuestionAnswer{
			{Question: "Describe your symptoms", Answer: "itchy skin"},
		},
	})

	req := httptest.NewRequest(http.MethodPost, "/appointment/create-appointment", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)

	var resp struct {
		Success bool              `json:"success"`
		Data    model.Appointment `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, model.AppointmentStatusPending, resp.Data.Status)
	assert.Equal(t, "Skin Consultation", resp.Data.ServiceName)
}

func TestCreateAppointmentMissingDataField(t *testing.T) {
	engine, _ := setupRouter(t)

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/appointment/create-appointment", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateAppointmentMissingRequiredFields(t *testing.T) {
	engine, svc := setupRouter(t)

	body, contentType := multipartBody(t, &model.CreateAppointmentRequest{
		Name:      "Rahim Uddin",
		ServiceID: svc.ID,
	})

	req := httptest.NewRequest(http.MethodPost, "/appointment/create-appointment", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateAppointmentUnansweredQuestion(t *testing.T) {
	engine, svc := setupRouter(t)

	body, contentType := multipartBody(t, &model.CreateAppointmentRequest{
		Name:      "Rahim Uddin",
		Phone:     "01712345678",
		ServiceID: svc.ID,
	})

	req := httptest.NewRequest(http.MethodPost, "/appointment/create-appointment", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var resp struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Contains(t, resp.Message, "must be answered")
}

func TestUpdateAppointmentStatusRejectsUnknown(t *testing.T) {
	engine, svc := setupRouter(t)

	body, contentType := multipartBody(t, &model.CreateAppointmentRequest{
		Name:      "Rahim Uddin",
		Phone:     "01712345678",
		ServiceID: svc.ID,
		Questions: []model.QuestionAnswer{
			{Question: "Describe your symptoms", Answer: "itchy skin"},
		},
	})
	req := httptest.NewRequest(http.MethodPost, "/appointment/create-appointment", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code)

	var created struct {
		Data model.Appointment `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

	patch := httptest.NewRequest(http.MethodPatch, "/appointment/"+created.Data.ID.String(),
		bytes.NewReader([]byte(`{"status":"ARCHIVED"}`)))
	patch.Header.Set("Content-Type", "application/json")
	rec = httptest.NewRecorder()
	engine.ServeHTTP(rec, patch)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
