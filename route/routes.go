package route

import (
	"net/http"

	"github.com/gorilla/mux"

	"student-portal/controllers"
	"student-portal/middleware"
)

// NewRouter builds the full route table. Fixed student paths are registered
// before the /{id} catch-all so mux matches them first.
func NewRouter(sc *controllers.StudentController, ac *controllers.AdminController, secret, uploadDir string) *mux.Router {
	router := mux.NewRouter()

	router.HandleFunc("/api/students", sc.Register()).Methods("POST")
	router.HandleFunc("/api/students/login", sc.Login()).Methods("POST")
	router.HandleFunc("/api/students/assignment", sc.SubmitAssignment()).Methods("POST")
	router.HandleFunc("/api/students/assignments/{studentId}", sc.ListAssignments()).Methods("GET")
	router.HandleFunc("/api/students/notices/all", sc.ListNotices()).Methods("GET")
	router.HandleFunc("/api/students/edit-profile/{id}", sc.EditProfile()).Methods("PUT")
	router.HandleFunc("/api/students/{id}", sc.GetProfile()).Methods("GET")

	router.HandleFunc("/api/admin/login", ac.Login()).Methods("POST")
	router.HandleFunc("/api/admin/add", middleware.RequireAdmin(secret, ac.AddNotice())).Methods("POST")
	router.HandleFunc("/api/admin/assignments", middleware.RequireAdmin(secret, ac.ListAssignments())).Methods("GET")
	router.HandleFunc("/api/admin/assignments/{id}/remark", middleware.RequireAdmin(secret, ac.AnnotateAssignment())).Methods("PATCH")
	router.HandleFunc("/api/admin/assignments/{id}", middleware.RequireAdmin(secret, ac.DeleteAssignment())).Methods("DELETE")
	router.HandleFunc("/api/admin/users", middleware.RequireAdmin(secret, ac.ListUsers())).Methods("GET")
	router.HandleFunc("/api/admin/users/{id}", middleware.RequireAdmin(secret, ac.DeleteUser())).Methods("DELETE")
	router.HandleFunc("/api/admin/notices/all/admin", middleware.RequireAdmin(secret, ac.ListNotices())).Methods("GET")
	router.HandleFunc("/api/admin/notices/{id}", middleware.RequireAdmin(secret, ac.DeleteNotice())).Methods("DELETE")

	// Uploaded files are served back as static content.
	router.PathPrefix("/uploads/").Handler(
		http.StripPrefix("/uploads/", http.FileServer(http.Dir(uploadDir))))

	return router
}
