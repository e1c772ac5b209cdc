package main

import (
	"net/http"
	"os"

	"github.com/gorilla/handlers"
	log "github.com/sirupsen/logrus"

	"student-portal/config"
	"student-portal/controllers"
	"student-portal/driver"
	"student-portal/route"
	"student-portal/stores"
)

func main() {
	config.SetupLogger()
	cfg := config.Load()

	db := driver.ConnectDB(cfg.MongoURI, cfg.MongoDBName)

	studentStore := stores.NewMongoStudentStore(db)
	assignmentStore := stores.NewMongoAssignmentStore(db)
	noticeStore := stores.NewMongoNoticeStore(db)

	studentController := &controllers.StudentController{
		Students:    studentStore,
		Assignments: assignmentStore,
		Notices:     noticeStore,
		Cfg:         cfg,
	}
	adminController := &controllers.AdminController{
		Students:    studentStore,
		Assignments: assignmentStore,
		Notices:     noticeStore,
		Cfg:         cfg,
	}

	router := route.NewRouter(studentController, adminController, cfg.JWTSecret, cfg.UploadDir)

	cors := handlers.CORS(
		handlers.AllowedOrigins([]string{"*"}),
		handlers.AllowedMethods([]string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}),
		handlers.AllowedHeaders([]string{"Content-Type", "Authorization"}),
	)

	log.Infof("Server started on port %s", cfg.Port)
	log.Fatal(http.ListenAndServe(":"+cfg.Port, handlers.LoggingHandler(os.Stdout, cors(router))))
}
