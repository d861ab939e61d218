package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/skooli/timetable-backend/internal/config"
	"github.com/skooli/timetable-backend/internal/handler"
	"github.com/skooli/timetable-backend/internal/response"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	TimeSlot       *handler.TimeSlotHandler
	ClassTimetable *handler.ClassTimetableHandler
	TimetableEntry *handler.TimetableEntryHandler
	Schedule       *handler.ScheduleHandler
	ScheduleView   *handler.ScheduleViewHandler
}

// SetupRouter configures all Gin route groups.
func SetupRouter(handlers *Handlers, cfg *config.Config) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.Default()

	// ─── CORS ──────────────────────────────────────────────────────────
	// If AllowedOrigins is set in config, restrict to that list;
	// otherwise allow all (*) so dev works without extra config.
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	// Apply request ID middleware globally so every response includes metadata.
	router.Use(response.RequestIDMiddleware())

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := router.Group("/api/v1")

	// ─── Time Slot Registry ────────────────────────────────────────────
	v1.GET("/schools/:schoolId/time-slots", handlers.TimeSlot.ListTimeSlots)
	v1.POST("/schools/:schoolId/time-slots", handlers.TimeSlot.CreateTimeSlot)
	v1.PUT("/time-slots/:id", handlers.TimeSlot.UpdateTimeSlot)
	v1.DELETE("/time-slots/:id", handlers.TimeSlot.DeleteTimeSlot)

	// ─── Class Timetable Versions ──────────────────────────────────────
	v1.GET("/class-timetables", handlers.ClassTimetable.ListClassTimetables)
	v1.POST("/class-timetables", handlers.ClassTimetable.CreateClassTimetable)
	v1.GET("/class-timetables/:id", handlers.ClassTimetable.GetClassTimetable)
	v1.POST("/class-timetables/:id/activate", handlers.ClassTimetable.ActivateClassTimetable)
	v1.DELETE("/class-timetables/:id", handlers.ClassTimetable.DeleteClassTimetable)

	// ─── Timetable Entries (cells) ─────────────────────────────────────
	v1.GET("/class-timetables/:id/entries", handlers.TimetableEntry.ListEntries)
	v1.POST("/class-timetables/:id/entries", handlers.TimetableEntry.CreateEntry)
	v1.PUT("/timetable-entries/:id", handlers.TimetableEntry.UpdateEntry)
	v1.DELETE("/timetable-entries/:id", handlers.TimetableEntry.DeleteEntry)

	// ─── Scheduling ────────────────────────────────────────────────────
	v1.POST("/timetable-entries/:id/schedule", handlers.Schedule.ScheduleSubject)
	v1.POST("/class-timetables/:id/schedule-block", handlers.Schedule.ScheduleBlock)
	v1.DELETE("/scheduled-subjects/:id", handlers.Schedule.UnscheduleSubject)
	v1.DELETE("/scheduled-subjects", handlers.Schedule.UnscheduleMany)

	// ─── Views ─────────────────────────────────────────────────────────
	v1.GET("/views/class/:classId", handlers.ScheduleView.ClassView)
	v1.GET("/views/timetable/:id", handlers.ScheduleView.TimetableView)
	v1.GET("/views/teacher/:teacherId", handlers.ScheduleView.TeacherView)
	v1.GET("/views/student/:studentId", handlers.ScheduleView.StudentView)

	return router
}
