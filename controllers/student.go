package controllers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"student-portal/config"
	"student-portal/models"
	"student-portal/stores"
	"student-portal/utils"
)

const studentTokenTTL = 24 * time.Hour

type StudentController struct {
	Students    stores.StudentStore
	Assignments stores.AssignmentStore
	Notices     stores.NoticeStore
	Cfg         *config.Config
}

func (c *StudentController) Register() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.RegisterRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, models.Error{Message: "Invalid request body"})
			return
		}

		if err := utils.ValidateStruct(req); err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, models.Error{Message: utils.FormatValidationErrors(err)})
			return
		}

		hash, err := utils.HashPassword(req.Password)
		if err != nil {
			log.Errorf("hashing password: %v", err)
			utils.RespondWithError(w, http.StatusInternalServerError, models.Error{Message: "Server error"})
			return
		}

		student, err := c.Students.Create(r.Context(), &models.Student{
			FullName:    req.FullName,
			Email:       req.Email,
			Age:         req.Age,
			PhoneNumber: req.PhoneNumber,
			Password:    hash,
		})
		if err == stores.ErrDuplicateEmail {
			utils.RespondWithError(w, http.StatusConflict, models.Error{Message: "Student already registered"})
			return
		}
		if err != nil {
			log.Errorf("creating student: %v", err)
			utils.RespondWithError(w, http.StatusInternalServerError, models.Error{Message: "Server error"})
			return
		}

		utils.ResponseJSON(w, http.StatusCreated, map[string]interface{}{
			"message": "Student registered",
			"student": student,
		})
	}
}

func (c *StudentController) Login() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.LoginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, models.Error{Message: "Invalid request body"})
			return
		}

		if err := utils.ValidateStruct(req); err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, models.Error{Message: "Email and password are required"})
			return
		}

		student, err := c.Students.FindByEmail(r.Context(), req.Email)
		if err == stores.ErrNotFound {
			utils.RespondWithError(w, http.StatusNotFound, models.Error{Message: "Student not found"})
			return
		}
		if err != nil {
			log.Errorf("finding student by email: %v", err)
			utils.RespondWithError(w, http.StatusInternalServerError, models.Error{Message: "Server error"})
			return
		}

		if !utils.ComparePasswords(student.Password, req.Password) {
			utils.RespondWithError(w, http.StatusUnauthorized, models.Error{Message: "Invalid credentials"})
			return
		}

		token, err := utils.GenerateToken(student.Email, false, student.ID.Hex(), c.Cfg.JWTSecret, studentTokenTTL)
		if err != nil {
			log.Errorf("generating student token: %v", err)
			utils.RespondWithError(w, http.StatusInternalServerError, models.Error{Message: "Server error"})
			return
		}

		utils.ResponseJSON(w, http.StatusOK, map[string]interface{}{
			"message": "Login successful",
			"student": models.StudentSummary{
				ID:       student.ID,
				FullName: student.FullName,
				Email:    student.Email,
			},
			"token": token,
		})
	}
}

func (c *StudentController) GetProfile() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
		if err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, models.Error{Message: "Invalid student ID"})
			return
		}

		student, err := c.Students.FindByID(r.Context(), id)
		if err == stores.ErrNotFound {
			utils.RespondWithError(w, http.StatusNotFound, models.Error{Message: "Student not found"})
			return
		}
		if err != nil {
			log.Errorf("finding student: %v", err)
			utils.RespondWithError(w, http.StatusInternalServerError, models.Error{Message: "Server error"})
			return
		}

		utils.ResponseJSON(w, http.StatusOK, student)
	}
}

func (c *StudentController) EditProfile() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
		if err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, models.Error{Message: "Invalid student ID"})
			return
		}

		var req models.EditProfileRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, models.Error{Message: "Invalid request body"})
			return
		}

		if err := utils.ValidateStruct(req); err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, models.Error{Message: "Full name, email, age, and phone number are required"})
			return
		}

		student, err := c.Students.FindByID(r.Context(), id)
		if err == stores.ErrNotFound {
			utils.RespondWithError(w, http.StatusNotFound, models.Error{Message: "Student not found"})
			return
		}
		if err != nil {
			log.Errorf("finding student: %v", err)
			utils.RespondWithError(w, http.StatusInternalServerError, models.Error{Message: "Server error"})
			return
		}

		upd := stores.StudentUpdate{
			FullName:    req.FullName,
			Email:       req.Email,
			Age:         req.Age,
			PhoneNumber: req.PhoneNumber,
		}

		if req.NewPassword != "" {
			if req.CurrentPassword == "" {
				utils.RespondWithError(w, http.StatusBadRequest, models.Error{Message: "Current password is required to set a new password"})
				return
			}
			if !utils.ComparePasswords(student.Password, req.CurrentPassword) {
				utils.RespondWithError(w, http.StatusUnauthorized, models.Error{Message: "Current password is incorrect"})
				return
			}
			hash, err := utils.HashPassword(req.NewPassword)
			if err != nil {
				log.Errorf("hashing new password: %v", err)
				utils.RespondWithError(w, http.StatusInternalServerError, models.Error{Message: "Server error"})
				return
			}
			upd.Password = hash
		}

		updated, err := c.Students.Update(r.Context(), id, upd)
		if err == stores.ErrDuplicateEmail {
			utils.RespondWithError(w, http.StatusConflict, models.Error{Message: "Email already registered by another student"})
			return
		}
		if err == stores.ErrNotFound {
			utils.RespondWithError(w, http.StatusNotFound, models.Error{Message: "Student not found"})
			return
		}
		if err != nil {
			log.Errorf("updating student: %v", err)
			utils.RespondWithError(w, http.StatusInternalServerError, models.Error{Message: "Server error"})
			return
		}

		utils.ResponseJSON(w, http.StatusOK, map[string]interface{}{
			"message": "Profile updated successfully",
			"student": updated,
		})
	}
}

func (c *StudentController) SubmitAssignment() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(utils.DefaultMaxUploadBytes); err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, models.Error{Message: "Invalid form data"})
			return
		}

		title := r.FormValue("title")
		description := r.FormValue("description")
		studentIDHex := r.FormValue("studentId")

		if title == "" || studentIDHex == "" {
			utils.RespondWithError(w, http.StatusBadRequest, models.Error{Message: "Title, student ID, and PDF are required"})
			return
		}

		studentID, err := primitive.ObjectIDFromHex(studentIDHex)
		if err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, models.Error{Message: "Invalid student ID"})
			return
		}

		if _, err := c.Students.FindByID(r.Context(), studentID); err != nil {
			if err == stores.ErrNotFound {
				utils.RespondWithError(w, http.StatusNotFound, models.Error{Message: "Student not found"})
				return
			}
			log.Errorf("finding student: %v", err)
			utils.RespondWithError(w, http.StatusInternalServerError, models.Error{Message: "Server error"})
			return
		}

		pdfName, err := utils.SaveUpload(r, c.Cfg.UploadDir, utils.UploadRule{
			Field:        "pdf",
			AllowedMIMEs: utils.PDFMIMEs,
		})
		if err != nil {
			respondUploadError(w, err, "Title, student ID, and PDF are required")
			return
		}

		assignment, err := c.Assignments.Create(r.Context(), &models.Assignment{
			Title:       title,
			Description: description,
			Pdf:         pdfName,
			StudentID:   studentID,
		})
		if err != nil {
			log.Errorf("creating assignment: %v", err)
			utils.RespondWithError(w, http.StatusInternalServerError, models.Error{Message: "Server error"})
			return
		}

		utils.ResponseJSON(w, http.StatusCreated, map[string]interface{}{
			"message":    "Assignment created",
			"assignment": assignment,
		})
	}
}

func (c *StudentController) ListAssignments() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		studentID, err := primitive.ObjectIDFromHex(mux.Vars(r)["studentId"])
		if err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, models.Error{Message: "Invalid student ID"})
			return
		}

		assignments, err := c.Assignments.FindByStudent(r.Context(), studentID)
		if err != nil {
			log.Errorf("listing assignments: %v", err)
			utils.RespondWithError(w, http.StatusInternalServerError, models.Error{Message: "Server error"})
			return
		}

		utils.ResponseJSON(w, http.StatusOK, assignments)
	}
}

func (c *StudentController) ListNotices() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		notices, err := c.Notices.FindAll(r.Context())
		if err != nil {
			log.Errorf("listing notices: %v", err)
			utils.RespondWithError(w, http.StatusInternalServerError, models.Error{Message: "Failed to load notices"})
			return
		}

		utils.ResponseJSON(w, http.StatusOK, notices)
	}
}

// respondUploadError maps upload sentinels to their statuses; missingMsg is
// the message used when the field carried no file.
func respondUploadError(w http.ResponseWriter, err error, missingMsg string) {
	switch err {
	case utils.ErrMissingFile:
		utils.RespondWithError(w, http.StatusBadRequest, models.Error{Message: missingMsg})
	case utils.ErrInvalidFileType:
		utils.RespondWithError(w, http.StatusBadRequest, models.Error{Message: "Invalid file type"})
	case utils.ErrFileTooLarge:
		utils.RespondWithError(w, http.StatusRequestEntityTooLarge, models.Error{Message: "File exceeds the 10MB limit"})
	default:
		log.Errorf("saving upload: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, models.Error{Message: "Error processing upload"})
	}
}
