package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/niramoy/clinic-api/internal/intake"
	"github.com/niramoy/clinic-api/internal/model"
)

func writeEnvelope(t *testing.T, w http.ResponseWriter, status int, data interface{}) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	err := json.NewEncoder(w).Encode(map[string]interface{}{
		"success": status < 400,
		"data":    data,
	})
	require.NoError(t, err)
}

func testAppointment(name, phone string, status model.AppointmentStatus) *model.Appointment {
	a := &model.Appointment{
		Name:        name,
		Phone:       phone,
		Status:      status,
		ServiceName: "Skin Consultation",
	}
	a.ID = uuid.New()
	a.CreatedAt = time.Date(2025, 3, 14, 10, 0, 0, 0, time.UTC)
	return a
}

func TestFilterAppointments(t *testing.T) {
	appointments := []*model.Appointment{
		testAppointment("Rahim Uddin", "01712345678", model.AppointmentStatusPending),
		testAppointment("Karim Mia", "01898765432", model.AppointmentStatusConfirmed),
	}

	assert.Len(t, FilterAppointments(appointments, ""), 2)
	assert.Len(t, FilterAppointments(appointments, "rahim"), 1)
	assert.Len(t, FilterAppointments(appointments, "018"), 1)
	assert.Len(t, FilterAppointments(appointments, "CONFIRMED"), 1)
	assert.Len(t, FilterAppointments(appointments, "skin"), 2)
	assert.Len(t, FilterAppointments(appointments, "2025-03-14"), 2)
	assert.Empty(t, FilterAppointments(appointments, "no such thing"))
}

func TestBoardRemoveIssuesSingleDelete(t *testing.T) {
	target := testAppointment("Rahim Uddin", "01712345678", model.AppointmentStatusPending)

	var mu sync.Mutex
	deletes := 0
	lists := 0

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodDelete:
			mu.Lock()
			deletes++
			mu.Unlock()
			writeEnvelope(t, w, http.StatusOK, nil)
		case r.Method == http.MethodGet && r.URL.Path == "/appointment":
			mu.Lock()
			lists++
			mu.Unlock()
			writeEnvelope(t, w, http.StatusOK, []*model.Appointment{})
		default:
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
	}))
	defer srv.Close()

	board := NewAppointmentBoard(New(srv.URL))
	require.NoError(t, board.Remove(context.Background(), target.ID))

	assert.Equal(t, 1, deletes)
	assert.Equal(t, 1, lists)
	assert.Empty(t, board.Appointments())
}

func TestBoardMoveStatusRollsBackOnFailure(t *testing.T) {
	target := testAppointment("Rahim Uddin", "01712345678", model.AppointmentStatusPending)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet:
			writeEnvelope(t, w, http.StatusOK, []*model.Appointment{target})
		case r.Method == http.MethodPatch:
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(map[string]interface{}{
				"success": false,
				"message": "internal server error",
			})
		default:
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
	}))
	defer srv.Close()

	board := NewAppointmentBoard(New(srv.URL))
	require.NoError(t, board.Refresh(context.Background()))

	err := board.MoveStatus(context.Background(), target.ID, model.AppointmentStatusConfirmed)
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusInternalServerError, apiErr.StatusCode)

	got := board.Appointments()
	require.Len(t, got, 1)
	assert.Equal(t, model.AppointmentStatusPending, got[0].Status)
}

func TestBoardMoveStatusAppliesServerResult(t *testing.T) {
	target := testAppointment("Rahim Uddin", "01712345678", model.AppointmentStatusPending)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet:
			writeEnvelope(t, w, http.StatusOK, []*model.Appointment{target})
		case r.Method == http.MethodPatch:
			updated := *target
			updated.Status = model.AppointmentStatusConfirmed
			writeEnvelope(t, w, http.StatusOK, &updated)
		default:
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
	}))
	defer srv.Close()

	board := NewAppointmentBoard(New(srv.URL))
	require.NoError(t, board.Refresh(context.Background()))
	require.NoError(t, board.MoveStatus(context.Background(), target.ID, model.AppointmentStatusConfirmed))

	got := board.Appointments()
	require.Len(t, got, 1)
	assert.Equal(t, model.AppointmentStatusConfirmed, got[0].Status)
}

func TestClientSendsBearerToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer secret-token", r.Header.Get("Authorization"))
		writeEnvelope(t, w, http.StatusOK, []*model.Appointment{})
	}))
	defer srv.Close()

	c := New(srv.URL, WithTokenSource(StaticToken("secret-token")))
	_, err := c.ListAppointments(context.Background())
	require.NoError(t, err)
}

func submissionService() *model.Service {
	svc := &model.Service{Name: "Skin Consultation", Amount: "1500"}
	svc.ID = uuid.New()
	svc.Questions = []model.Question{{
		ID:         uuid.New(),
		ServiceID:  svc.ID,
		Text:       "Describe your symptoms",
		AnswerType: model.AnswerTypeText,
	}}
	return svc
}

func TestSubmitBlocksConcurrentSubmission(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})

	created := testAppointment("Rahim Uddin", "01712345678", model.AppointmentStatusPending)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		close(started)
		<-release
		writeEnvelope(t, w, http.StatusCreated, created)
	}))
	defer srv.Close()

	svc := submissionService()
	sub, err := NewIntakeSubmission(svc)
	require.NoError(t, err)
	require.NoError(t, sub.Form().SetText(svc.Questions[0].ID, "itchy skin"))

	contact := intake.Contact{Name: "Rahim Uddin", Phone: "01712345678"}
	c := New(srv.URL)

	var wg sync.WaitGroup
	wg.Add(1)
	var firstErr error
	go func() {
		defer wg.Done()
		_, firstErr = sub.Submit(context.Background(), c, contact)
	}()

	<-started
	_, err = sub.Submit(context.Background(), c, contact)
	assert.ErrorIs(t, err, ErrSubmitInFlight)

	close(release)
	wg.Wait()
	require.NoError(t, firstErr)
}

func TestSubmitValidatesBeforeSending(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request should reach the server")
	}))
	defer srv.Close()

	svc := submissionService()
	sub, err := NewIntakeSubmission(svc)
	require.NoError(t, err)

	_, err = sub.Submit(context.Background(), New(srv.URL), intake.Contact{Name: "Rahim Uddin", Phone: "01712345678"})
	assert.ErrorIs(t, err, intake.ErrUnanswered)
}

func TestSubmitSendsMultipartPayload(t *testing.T) {
	created := testAppointment("Rahim Uddin", "01712345678", model.AppointmentStatusPending)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/appointment/create-appointment", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(1<<20))

		var req model.CreateAppointmentRequest
		require.NoError(t, json.Unmarshal([]byte(r.FormValue("data")), &req))
		assert.Equal(t, "Rahim Uddin", req.Name)
		require.Len(t, req.Questions, 1)
		assert.Equal(t, "itchy skin", req.Questions[0].Answer)

		writeEnvelope(t, w, http.StatusCreated, created)
	}))
	defer srv.Close()

	svc := submissionService()
	sub, err := NewIntakeSubmission(svc)
	require.NoError(t, err)
	require.NoError(t, sub.Form().SetText(svc.Questions[0].ID, "itchy skin"))

	got, err := sub.Submit(context.Background(), New(srv.URL), intake.Contact{Name: "Rahim Uddin", Phone: "01712345678"})
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
}
