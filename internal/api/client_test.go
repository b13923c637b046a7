package api_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/carelink/carelink-go/internal/api"
	"github.com/carelink/carelink-go/internal/apitest"
	"github.com/carelink/carelink-go/pkg/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestClient(t *testing.T) (*api.Client, *apitest.Server) {
	t.Helper()

	backend := apitest.New(zap.NewNop())
	t.Cleanup(backend.Close)

	client, err := api.New(backend.URL(), 5*time.Second, zap.NewNop())
	require.NoError(t, err)

	return client, backend
}

func TestNewRequiresBaseURL(t *testing.T) {
	_, err := api.New("", time.Second, zap.NewNop())
	assert.Error(t, err)
}

func TestRegisterAndLogin(t *testing.T) {
	client, _ := newTestClient(t)
	ctx := context.Background()

	user, err := client.Register(ctx, &model.RegisterRequest{
		Username:  "jdoe",
		Password:  "secret123",
		Email:     "jdoe@example.com",
		FirstName: "Jane",
		LastName:  "Doe",
		Role:      model.RolePatient,
	})
	require.NoError(t, err)
	assert.NotZero(t, user.ID)
	assert.Equal(t, model.RolePatient, user.Role)

	resp, err := client.Login(ctx, &model.LoginRequest{Username: "jdoe", Password: "secret123"})
	require.NoError(t, err)
	assert.Equal(t, user.ID, resp.User.ID)
	assert.NotEmpty(t, resp.Token)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	client, _ := newTestClient(t)
	ctx := context.Background()

	_, err := client.Register(ctx, &model.RegisterRequest{
		Username: "jdoe", Password: "secret123", Email: "jdoe@example.com", Role: model.RolePatient,
	})
	require.NoError(t, err)

	_, err = client.Login(ctx, &model.LoginRequest{Username: "jdoe", Password: "wrong"})
	require.Error(t, err)

	var apiErr *api.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
}

func TestGetUserNotFound(t *testing.T) {
	client, _ := newTestClient(t)

	_, err := client.GetUser(context.Background(), 9999)
	require.Error(t, err)
	assert.True(t, errors.Is(err, api.ErrNotFound), "404 should satisfy errors.Is(err, ErrNotFound)")
}

func TestRepeatedGetReturnsSamePayload(t *testing.T) {
	client, backend := newTestClient(t)
	ctx := context.Background()

	user := backend.SeedUser(model.User{Username: "jdoe", Role: model.RolePatient})

	first, err := client.GetUser(ctx, user.ID)
	require.NoError(t, err)
	second, err := client.GetUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestListUsersByRole(t *testing.T) {
	client, backend := newTestClient(t)

	backend.SeedUser(model.User{Username: "doc1", Role: model.RoleDoctor})
	backend.SeedUser(model.User{Username: "doc2", Role: model.RoleDoctor})
	backend.SeedUser(model.User{Username: "pat1", Role: model.RolePatient})

	doctors, err := client.ListUsersByRole(context.Background(), model.RoleDoctor)
	require.NoError(t, err)
	assert.Len(t, doctors, 2)
}

func TestAppointmentLifecycle(t *testing.T) {
	client, backend := newTestClient(t)
	ctx := context.Background()

	patient := backend.SeedUser(model.User{Username: "pat", Role: model.RolePatient})
	doctor := backend.SeedUser(model.User{Username: "doc", Role: model.RoleDoctor})

	appt, err := client.CreateAppointment(ctx, &model.AppointmentRequest{
		PatientID:     patient.ID,
		DoctorID:      doctor.ID,
		ScheduledTime: time.Now().Add(48 * time.Hour),
		Type:          model.AppointmentVideo,
		Reason:        "follow-up",
	})
	require.NoError(t, err)
	assert.Equal(t, model.AppointmentRequested, appt.Status)

	link := "https://meet.example.com/abc"
	updated, err := client.UpdateAppointmentStatus(ctx, appt.ID, &model.AppointmentStatusUpdate{
		Status:      model.AppointmentApproved,
		MeetingLink: &link,
	})
	require.NoError(t, err)
	assert.Equal(t, model.AppointmentApproved, updated.Status)
	require.NotNil(t, updated.MeetingLink)
	assert.Equal(t, link, *updated.MeetingLink)

	list, err := client.ListAppointmentsByPatient(ctx, patient.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, appt.ID, list[0].ID)
}

func TestMedicationDeactivateIsTerminal(t *testing.T) {
	client, backend := newTestClient(t)
	ctx := context.Background()

	patient := backend.SeedUser(model.User{Username: "pat", Role: model.RolePatient})

	med, err := client.CreateMedication(ctx, &model.MedicationRequest{
		PatientID: patient.ID,
		Name:      "Lisinopril",
		Dosage:    "10mg",
		Frequency: "once daily",
		StartDate: time.Now(),
	})
	require.NoError(t, err)
	assert.True(t, med.Active)

	deactivated, err := client.DeactivateMedication(ctx, med.ID)
	require.NoError(t, err)
	assert.False(t, deactivated.Active)

	// a later update cannot resurrect it
	deactivated.Active = true
	after, err := client.UpdateMedication(ctx, deactivated)
	require.NoError(t, err)
	assert.False(t, after.Active)
}

func TestFeedbackUniquePerAppointment(t *testing.T) {
	client, backend := newTestClient(t)
	ctx := context.Background()

	appt := backend.SeedAppointment(model.Appointment{PatientID: 1, DoctorID: 2})

	_, err := client.CreateFeedback(ctx, &model.FeedbackRequest{
		DoctorID:      2,
		PatientID:     1,
		AppointmentID: appt.ID,
		Diagnosis:     "healthy",
	})
	require.NoError(t, err)

	_, err = client.CreateFeedback(ctx, &model.FeedbackRequest{
		DoctorID:      2,
		PatientID:     1,
		AppointmentID: appt.ID,
		Diagnosis:     "second opinion",
	})
	require.Error(t, err)

	var apiErr *api.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusConflict, apiErr.StatusCode)
}

func TestLatestVitals(t *testing.T) {
	client, backend := newTestClient(t)
	ctx := context.Background()

	patient := backend.SeedUser(model.User{Username: "pat", Role: model.RolePatient})

	hr1, hr2 := 70, 80
	_, err := client.CreateVitals(ctx, &model.VitalsRequest{
		PatientID: patient.ID, HeartRate: &hr1, RecordedAt: time.Now().Add(-time.Hour),
	})
	require.NoError(t, err)
	_, err = client.CreateVitals(ctx, &model.VitalsRequest{
		PatientID: patient.ID, HeartRate: &hr2, RecordedAt: time.Now(),
	})
	require.NoError(t, err)

	latest, err := client.GetLatestVitals(ctx, patient.ID)
	require.NoError(t, err)
	require.NotNil(t, latest.HeartRate)
	assert.Equal(t, hr2, *latest.HeartRate)
}

// Unknown response fields are ignored so newer backends keep working
// with older clients.
func TestResponseDecodingIgnoresUnknownFields(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id": 7, "username": "jdoe", "shiny_new_field": {"nested": true}}`))
	}))
	defer srv.Close()

	client, err := api.New(srv.URL, time.Second, zap.NewNop())
	require.NoError(t, err)

	user, err := client.GetUser(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, int64(7), user.ID)
	assert.Equal(t, "jdoe", user.Username)
}

func TestAPIErrorCarriesBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("upstream unavailable"))
	}))
	defer srv.Close()

	client, err := api.New(srv.URL, time.Second, zap.NewNop())
	require.NoError(t, err)

	_, err = client.GetUser(context.Background(), 1)
	require.Error(t, err)

	var apiErr *api.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
	assert.Contains(t, apiErr.Body, "upstream unavailable")
	assert.False(t, errors.Is(err, api.ErrNotFound))
}

func TestContextCancellationAborts(t *testing.T) {
	blocked := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-blocked
	}))
	defer srv.Close()
	defer close(blocked)

	client, err := api.New(srv.URL, 10*time.Second, zap.NewNop())
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err = client.GetUser(ctx, 1)
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
}
