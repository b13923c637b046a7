// Package apitest provides an in-memory stand-in for the hospital
// backend. Tests point the API client at it to exercise the full
// request path without a real server.
package apitest

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"time"

	"github.com/carelink/carelink-go/internal/middleware"
	"github.com/carelink/carelink-go/pkg/model"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Server is the fake backend. All state lives in memory behind one
// mutex; referential integrity between entities follows the real
// backend's delete rules.
type Server struct {
	mu sync.Mutex

	users        map[int64]model.User
	passwords    map[string]string
	patients     map[int64]model.PatientDetail
	doctors      map[int64]model.DoctorDetail
	appointments map[int64]model.Appointment
	medications  map[int64]model.Medication
	vitals       map[int64]model.Vitals
	feedback     map[int64]model.Feedback
	reports      map[int64]model.Report

	nextID int64

	httpServer *httptest.Server
}

// New starts the fake backend on an ephemeral port
func New(logger *zap.Logger) *Server {
	gin.SetMode(gin.TestMode)

	s := &Server{
		users:        make(map[int64]model.User),
		passwords:    make(map[string]string),
		patients:     make(map[int64]model.PatientDetail),
		doctors:      make(map[int64]model.DoctorDetail),
		appointments: make(map[int64]model.Appointment),
		medications:  make(map[int64]model.Medication),
		vitals:       make(map[int64]model.Vitals),
		feedback:     make(map[int64]model.Feedback),
		reports:      make(map[int64]model.Report),
	}

	r := gin.New()
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogging(logger))

	v1 := r.Group("/api/v1")
	{
		v1.POST("/users/register", s.register)
		v1.POST("/auth/login", s.login)
		v1.GET("/users", s.listUsers)
		v1.GET("/users/:id", s.getUser)
		v1.PUT("/users/:id", s.updateUser)
		v1.DELETE("/users/:id", s.deleteUser)

		v1.GET("/patients/:id/detail", s.getPatientDetail)
		v1.PUT("/patients/:id/detail", s.putPatientDetail)
		v1.GET("/doctors/:id/detail", s.getDoctorDetail)
		v1.PUT("/doctors/:id/detail", s.putDoctorDetail)

		v1.POST("/appointments", s.createAppointment)
		v1.GET("/appointments/:id", s.getAppointment)
		v1.PUT("/appointments/:id", s.updateAppointment)
		v1.PATCH("/appointments/:id/status", s.updateAppointmentStatus)
		v1.DELETE("/appointments/:id", s.deleteAppointment)
		v1.GET("/patients/:id/appointments", s.listPatientAppointments)
		v1.GET("/doctors/:id/appointments", s.listDoctorAppointments)

		v1.POST("/medications", s.createMedication)
		v1.GET("/medications/:id", s.getMedication)
		v1.PUT("/medications/:id", s.updateMedication)
		v1.POST("/medications/:id/deactivate", s.deactivateMedication)
		v1.DELETE("/medications/:id", s.deleteMedication)
		v1.GET("/patients/:id/medications", s.listPatientMedications)

		v1.POST("/vitals", s.createVitals)
		v1.GET("/vitals/:id", s.getVitals)
		v1.GET("/patients/:id/vitals", s.listPatientVitals)
		v1.GET("/patients/:id/vitals/latest", s.latestVitals)

		v1.POST("/feedback", s.createFeedback)
		v1.GET("/feedback/:id", s.getFeedback)
		v1.PUT("/feedback/:id", s.updateFeedback)
		v1.GET("/appointments/:id/feedback", s.getAppointmentFeedback)
		v1.GET("/patients/:id/feedback", s.listPatientFeedback)
		v1.GET("/doctors/:id/feedback", s.listDoctorFeedback)

		v1.POST("/reports/generate", s.generateReport)
		v1.GET("/reports/:id", s.getReport)
		v1.DELETE("/reports/:id", s.deleteReport)
		v1.GET("/patients/:id/reports", s.listPatientReports)
	}

	s.httpServer = httptest.NewServer(r)
	return s
}

// URL returns the base URL of the running fake backend
func (s *Server) URL() string {
	return s.httpServer.URL
}

// Close shuts the fake backend down
func (s *Server) Close() {
	s.httpServer.Close()
}

// SeedUser inserts a user directly, bypassing registration. It returns
// the stored user with its assigned id.
func (s *Server) SeedUser(user model.User) model.User {
	s.mu.Lock()
	defer s.mu.Unlock()

	if user.ID == 0 {
		user.ID = s.allocID()
	}
	s.users[user.ID] = user
	return user
}

// SeedAppointment inserts an appointment directly
func (s *Server) SeedAppointment(appt model.Appointment) model.Appointment {
	s.mu.Lock()
	defer s.mu.Unlock()

	if appt.ID == 0 {
		appt.ID = s.allocID()
	}
	s.appointments[appt.ID] = appt
	return appt
}

// allocID hands out the next entity id. Callers hold s.mu.
func (s *Server) allocID() int64 {
	s.nextID++
	return s.nextID
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return id, true
}

func (s *Server) register(c *gin.Context) {
	var req model.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Username == req.Username {
			c.JSON(http.StatusConflict, gin.H{"error": "username already taken"})
			return
		}
	}

	user := model.User{
		ID:        s.allocID(),
		Username:  req.Username,
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
		Gender:    req.Gender,
		DOB:       req.DOB,
		Address:   req.Address,
		Role:      req.Role,
		CreatedAt: time.Now(),
	}
	s.users[user.ID] = user
	s.passwords[req.Username] = req.Password

	c.JSON(http.StatusCreated, user)
}

func (s *Server) login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if stored, ok := s.passwords[req.Username]; !ok || stored != req.Password {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}

	for _, u := range s.users {
		if u.Username == req.Username {
			c.JSON(http.StatusOK, model.LoginResponse{
				User:  u,
				Token: uuid.New().String(),
			})
			return
		}
	}

	c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
}

func (s *Server) listUsers(c *gin.Context) {
	role := model.Role(c.Query("role"))

	s.mu.Lock()
	defer s.mu.Unlock()

	users := []model.User{}
	for _, u := range s.users {
		if role == "" || u.Role == role {
			users = append(users, u)
		}
	}
	c.JSON(http.StatusOK, users)
}

func (s *Server) getUser(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[id]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}
	c.JSON(http.StatusOK, user)
}

func (s *Server) updateUser(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var user model.User
	if err := c.ShouldBindJSON(&user); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[id]; !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}
	user.ID = id
	s.users[id] = user
	c.JSON(http.StatusOK, user)
}

// deleteUser removes the account and everything hanging off it, the
// same way the real backend's foreign keys cascade
func (s *Server) deleteUser(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[id]; !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}

	delete(s.users, id)
	delete(s.patients, id)
	delete(s.doctors, id)

	for apptID, appt := range s.appointments {
		if appt.PatientID == id || appt.DoctorID == id {
			s.removeAppointment(apptID)
		}
	}
	for medID, med := range s.medications {
		if med.PatientID == id {
			delete(s.medications, medID)
		}
	}
	for vID, v := range s.vitals {
		if v.PatientID == id {
			delete(s.vitals, vID)
		}
	}
	for fbID, fb := range s.feedback {
		if fb.PatientID == id || fb.DoctorID == id {
			delete(s.feedback, fbID)
		}
	}
	for rID, r := range s.reports {
		if r.PatientID == id {
			delete(s.reports, rID)
		}
	}

	c.Status(http.StatusNoContent)
}

func (s *Server) getPatientDetail(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	detail, ok := s.patients[id]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "patient detail not found"})
		return
	}
	c.JSON(http.StatusOK, detail)
}

func (s *Server) putPatientDetail(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var detail model.PatientDetail
	if err := c.ShouldBindJSON(&detail); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	detail.UserID = id
	s.patients[id] = detail
	c.JSON(http.StatusOK, detail)
}

func (s *Server) getDoctorDetail(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	detail, ok := s.doctors[id]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "doctor detail not found"})
		return
	}
	c.JSON(http.StatusOK, detail)
}

func (s *Server) putDoctorDetail(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var detail model.DoctorDetail
	if err := c.ShouldBindJSON(&detail); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	detail.UserID = id
	s.doctors[id] = detail
	c.JSON(http.StatusOK, detail)
}

func (s *Server) createAppointment(c *gin.Context) {
	var req model.AppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	appt := model.Appointment{
		ID:            s.allocID(),
		PatientID:     req.PatientID,
		DoctorID:      req.DoctorID,
		ScheduledTime: req.ScheduledTime,
		Status:        model.AppointmentRequested,
		Type:          req.Type,
		Reason:        req.Reason,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	s.appointments[appt.ID] = appt
	c.JSON(http.StatusCreated, appt)
}

func (s *Server) getAppointment(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	appt, ok := s.appointments[id]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "appointment not found"})
		return
	}
	c.JSON(http.StatusOK, appt)
}

func (s *Server) updateAppointment(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var appt model.Appointment
	if err := c.ShouldBindJSON(&appt); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.appointments[id]; !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "appointment not found"})
		return
	}
	appt.ID = id
	appt.UpdatedAt = time.Now()
	s.appointments[id] = appt
	c.JSON(http.StatusOK, appt)
}

func (s *Server) updateAppointmentStatus(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var update model.AppointmentStatusUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	appt, ok := s.appointments[id]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "appointment not found"})
		return
	}

	appt.Status = update.Status
	if update.Notes != nil {
		appt.Notes = update.Notes
	}
	if update.MeetingLink != nil {
		appt.MeetingLink = update.MeetingLink
	}
	appt.UpdatedAt = time.Now()
	s.appointments[id] = appt
	c.JSON(http.StatusOK, appt)
}

// removeAppointment applies the delete rules: feedback goes with the
// appointment, medications and reports keep the row but lose the
// reference. Callers hold s.mu.
func (s *Server) removeAppointment(id int64) {
	delete(s.appointments, id)

	for fbID, fb := range s.feedback {
		if fb.AppointmentID == id {
			delete(s.feedback, fbID)
		}
	}
	for medID, med := range s.medications {
		if med.AppointmentID != nil && *med.AppointmentID == id {
			med.AppointmentID = nil
			s.medications[medID] = med
		}
	}
	for rID, r := range s.reports {
		if r.AppointmentID != nil && *r.AppointmentID == id {
			r.AppointmentID = nil
			s.reports[rID] = r
		}
	}
}

func (s *Server) deleteAppointment(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.appointments[id]; !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "appointment not found"})
		return
	}
	s.removeAppointment(id)
	c.Status(http.StatusNoContent)
}

func (s *Server) listPatientAppointments(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	appts := []model.Appointment{}
	for _, appt := range s.appointments {
		if appt.PatientID == id {
			appts = append(appts, appt)
		}
	}
	c.JSON(http.StatusOK, appts)
}

func (s *Server) listDoctorAppointments(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	appts := []model.Appointment{}
	for _, appt := range s.appointments {
		if appt.DoctorID == id {
			appts = append(appts, appt)
		}
	}
	c.JSON(http.StatusOK, appts)
}

func (s *Server) createMedication(c *gin.Context) {
	var req model.MedicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	med := model.Medication{
		ID:            s.allocID(),
		PatientID:     req.PatientID,
		AppointmentID: req.AppointmentID,
		Name:          req.Name,
		Dosage:        req.Dosage,
		Frequency:     req.Frequency,
		StartDate:     req.StartDate,
		EndDate:       req.EndDate,
		Instructions:  req.Instructions,
		Active:        true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	s.medications[med.ID] = med
	c.JSON(http.StatusCreated, med)
}

func (s *Server) getMedication(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	med, ok := s.medications[id]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "medication not found"})
		return
	}
	c.JSON(http.StatusOK, med)
}

func (s *Server) updateMedication(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var med model.Medication
	if err := c.ShouldBindJSON(&med); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.medications[id]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "medication not found"})
		return
	}

	med.ID = id
	// deactivation is terminal, an update never resurrects a medication
	if !existing.Active {
		med.Active = false
	}
	med.UpdatedAt = time.Now()
	s.medications[id] = med
	c.JSON(http.StatusOK, med)
}

func (s *Server) deactivateMedication(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	med, ok := s.medications[id]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "medication not found"})
		return
	}
	med.Active = false
	med.UpdatedAt = time.Now()
	s.medications[id] = med
	c.JSON(http.StatusOK, med)
}

func (s *Server) deleteMedication(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.medications[id]; !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "medication not found"})
		return
	}
	delete(s.medications, id)
	c.Status(http.StatusNoContent)
}

func (s *Server) listPatientMedications(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	meds := []model.Medication{}
	for _, med := range s.medications {
		if med.PatientID == id {
			meds = append(meds, med)
		}
	}
	c.JSON(http.StatusOK, meds)
}

func (s *Server) createVitals(c *gin.Context) {
	var req model.VitalsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	v := model.Vitals{
		ID:                s.allocID(),
		PatientID:         req.PatientID,
		HeartRate:         req.HeartRate,
		SystolicPressure:  req.SystolicPressure,
		DiastolicPressure: req.DiastolicPressure,
		Temperature:       req.Temperature,
		OxygenSaturation:  req.OxygenSaturation,
		RespiratoryRate:   req.RespiratoryRate,
		BloodSugar:        req.BloodSugar,
		RecordedAt:        req.RecordedAt,
	}
	s.vitals[v.ID] = v
	c.JSON(http.StatusCreated, v)
}

func (s *Server) getVitals(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	v, ok := s.vitals[id]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "vitals not found"})
		return
	}
	c.JSON(http.StatusOK, v)
}

func (s *Server) listPatientVitals(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	list := []model.Vitals{}
	for _, v := range s.vitals {
		if v.PatientID == id {
			list = append(list, v)
		}
	}
	c.JSON(http.StatusOK, list)
}

func (s *Server) latestVitals(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var latest *model.Vitals
	for _, v := range s.vitals {
		if v.PatientID != id {
			continue
		}
		v := v
		if latest == nil || v.RecordedAt.After(latest.RecordedAt) {
			latest = &v
		}
	}

	if latest == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no vitals recorded"})
		return
	}
	c.JSON(http.StatusOK, latest)
}

func (s *Server) createFeedback(c *gin.Context) {
	var req model.FeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, fb := range s.feedback {
		if fb.AppointmentID == req.AppointmentID {
			c.JSON(http.StatusConflict, gin.H{"error": "feedback already exists for appointment"})
			return
		}
	}

	now := time.Now()
	fb := model.Feedback{
		ID:              s.allocID(),
		DoctorID:        req.DoctorID,
		PatientID:       req.PatientID,
		AppointmentID:   req.AppointmentID,
		Comments:        req.Comments,
		Diagnosis:       req.Diagnosis,
		Recommendations: req.Recommendations,
		NextSteps:       req.NextSteps,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	s.feedback[fb.ID] = fb
	c.JSON(http.StatusCreated, fb)
}

func (s *Server) getFeedback(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	fb, ok := s.feedback[id]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "feedback not found"})
		return
	}
	c.JSON(http.StatusOK, fb)
}

func (s *Server) updateFeedback(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var fb model.Feedback
	if err := c.ShouldBindJSON(&fb); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.feedback[id]; !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "feedback not found"})
		return
	}
	fb.ID = id
	fb.UpdatedAt = time.Now()
	s.feedback[id] = fb
	c.JSON(http.StatusOK, fb)
}

func (s *Server) getAppointmentFeedback(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, fb := range s.feedback {
		if fb.AppointmentID == id {
			c.JSON(http.StatusOK, fb)
			return
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"error": "feedback not found"})
}

func (s *Server) listPatientFeedback(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	list := []model.Feedback{}
	for _, fb := range s.feedback {
		if fb.PatientID == id {
			list = append(list, fb)
		}
	}
	c.JSON(http.StatusOK, list)
}

func (s *Server) listDoctorFeedback(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	list := []model.Feedback{}
	for _, fb := range s.feedback {
		if fb.DoctorID == id {
			list = append(list, fb)
		}
	}
	c.JSON(http.StatusOK, list)
}

func (s *Server) generateReport(c *gin.Context) {
	var req model.ReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	report := model.Report{
		ID:              s.allocID(),
		Title:           req.Title,
		GeneratedAt:     time.Now(),
		PatientID:       req.PatientID,
		DoctorID:        req.DoctorID,
		Summary:         fmt.Sprintf("%s report for patient %d", req.ReportType, req.PatientID),
		ReportType:      req.ReportType,
		TimePeriodStart: req.TimePeriodStart,
		TimePeriodEnd:   req.TimePeriodEnd,
	}

	for _, med := range s.medications {
		if med.PatientID == req.PatientID {
			report.MedicationIDs = append(report.MedicationIDs, med.ID)
		}
	}

	s.reports[report.ID] = report
	c.JSON(http.StatusCreated, report)
}

func (s *Server) getReport(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	report, ok := s.reports[id]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "report not found"})
		return
	}
	c.JSON(http.StatusOK, report)
}

func (s *Server) deleteReport(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.reports[id]; !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "report not found"})
		return
	}
	delete(s.reports, id)
	c.Status(http.StatusNoContent)
}

func (s *Server) listPatientReports(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	list := []model.Report{}
	for _, r := range s.reports {
		if r.PatientID == id {
			list = append(list, r)
		}
	}
	c.JSON(http.StatusOK, list)
}
