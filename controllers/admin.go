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

const adminTokenTTL = time.Hour

// AdminController serves the single configuration-defined admin identity.
// There is no admin record in the store.
type AdminController struct {
	Students    stores.StudentStore
	Assignments stores.AssignmentStore
	Notices     stores.NoticeStore
	Cfg         *config.Config
}

func (c *AdminController) Login() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.LoginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, models.Error{Message: "Invalid request body"})
			return
		}

		if req.Email != c.Cfg.AdminEmail || req.Password != c.Cfg.AdminPassword {
			utils.RespondWithError(w, http.StatusUnauthorized, models.Error{Message: "Login failed"})
			return
		}

		token, err := utils.GenerateToken(req.Email, true, "", c.Cfg.JWTSecret, adminTokenTTL)
		if err != nil {
			log.Errorf("generating admin token: %v", err)
			utils.RespondWithError(w, http.StatusInternalServerError, models.Error{Message: "Server error"})
			return
		}

		utils.ResponseJSON(w, http.StatusOK, map[string]interface{}{
			"message": "Admin login successful",
			"token":   token,
		})
	}
}

func (c *AdminController) AddNotice() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(utils.DefaultMaxUploadBytes); err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, models.Error{Message: "Invalid form data"})
			return
		}

		title := r.FormValue("title")
		if title == "" {
			utils.RespondWithError(w, http.StatusBadRequest, models.Error{Message: "Title is required"})
			return
		}

		notice := &models.Notice{
			Title:       title,
			Description: r.FormValue("description"),
		}

		image, err := utils.SaveUpload(r, c.Cfg.UploadDir, utils.UploadRule{
			Field:        "image",
			AllowedMIMEs: utils.ImageMIMEs,
		})
		if err != nil && err != utils.ErrMissingFile {
			respondUploadError(w, err, "")
			return
		}
		notice.Image = image

		file, err := utils.SaveUpload(r, c.Cfg.UploadDir, utils.UploadRule{
			Field:        "file",
			AllowedMIMEs: utils.DocumentMIMEs,
		})
		if err != nil && err != utils.ErrMissingFile {
			respondUploadError(w, err, "")
			return
		}
		notice.File = file

		created, err := c.Notices.Create(r.Context(), notice)
		if err != nil {
			log.Errorf("creating notice: %v", err)
			utils.RespondWithError(w, http.StatusInternalServerError, models.Error{Message: "Failed to add notice"})
			return
		}

		utils.ResponseJSON(w, http.StatusCreated, map[string]interface{}{
			"message": "Notice added successfully",
			"notice":  created,
		})
	}
}

func (c *AdminController) ListNotices() http.HandlerFunc {
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

func (c *AdminController) DeleteNotice() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
		if err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, models.Error{Message: "Invalid notice ID"})
			return
		}

		err = c.Notices.Delete(r.Context(), id)
		if err == stores.ErrNotFound {
			utils.RespondWithError(w, http.StatusNotFound, models.Error{Message: "Notice not found"})
			return
		}
		if err != nil {
			log.Errorf("deleting notice: %v", err)
			utils.RespondWithError(w, http.StatusInternalServerError, models.Error{Message: "Failed to delete notice"})
			return
		}

		utils.ResponseJSON(w, http.StatusOK, map[string]string{"message": "Notice deleted successfully"})
	}
}

func (c *AdminController) ListAssignments() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		assignments, err := c.Assignments.FindAllWithStudents(r.Context())
		if err != nil {
			log.Errorf("listing assignments: %v", err)
			utils.RespondWithError(w, http.StatusInternalServerError, models.Error{Message: "Server error"})
			return
		}

		utils.ResponseJSON(w, http.StatusOK, assignments)
	}
}

func (c *AdminController) AnnotateAssignment() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
		if err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, models.Error{Message: "Invalid assignment ID"})
			return
		}

		var req models.RemarkRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, models.Error{Message: "Invalid request body"})
			return
		}

		assignment, err := c.Assignments.SetRemarks(r.Context(), id, req.Remark)
		if err == stores.ErrNotFound {
			utils.RespondWithError(w, http.StatusNotFound, models.Error{Message: "Assignment not found"})
			return
		}
		if err != nil {
			log.Errorf("setting remark: %v", err)
			utils.RespondWithError(w, http.StatusInternalServerError, models.Error{Message: "Server error"})
			return
		}

		utils.ResponseJSON(w, http.StatusOK, map[string]interface{}{
			"message":    "Remark added",
			"assignment": assignment,
		})
	}
}

func (c *AdminController) DeleteAssignment() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
		if err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, models.Error{Message: "Invalid assignment ID"})
			return
		}

		err = c.Assignments.Delete(r.Context(), id)
		if err == stores.ErrNotFound {
			utils.RespondWithError(w, http.StatusNotFound, models.Error{Message: "Assignment not found"})
			return
		}
		if err != nil {
			log.Errorf("deleting assignment: %v", err)
			utils.RespondWithError(w, http.StatusInternalServerError, models.Error{Message: "Failed to delete assignment"})
			return
		}

		utils.ResponseJSON(w, http.StatusOK, map[string]string{"message": "Assignment deleted successfully"})
	}
}

func (c *AdminController) ListUsers() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		students, err := c.Students.FindAll(r.Context())
		if err != nil {
			log.Errorf("listing users: %v", err)
			utils.RespondWithError(w, http.StatusInternalServerError, models.Error{Message: "Failed to fetch users"})
			return
		}

		utils.ResponseJSON(w, http.StatusOK, students)
	}
}

func (c *AdminController) DeleteUser() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
		if err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, models.Error{Message: "Invalid user ID"})
			return
		}

		err = c.Students.Delete(r.Context(), id)
		if err == stores.ErrNotFound {
			utils.RespondWithError(w, http.StatusNotFound, models.Error{Message: "User not found"})
			return
		}
		if err != nil {
			log.Errorf("deleting user: %v", err)
			utils.RespondWithError(w, http.StatusInternalServerError, models.Error{Message: "Failed to delete user"})
			return
		}

		// The student's assignments go with them.
		if err := c.Assignments.DeleteByStudent(r.Context(), id); err != nil {
			log.Errorf("cascading assignment delete for student %s: %v", id.Hex(), err)
		}

		utils.ResponseJSON(w, http.StatusOK, map[string]string{"message": "User deleted successfully"})
	}
}
