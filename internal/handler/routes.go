package handler

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts the patient API under /api/v1.
func RegisterRoutes(r gin.IRouter, reminders *ReminderHandler, adherence *AdherenceHandler, notifications *NotificationHandler) {
	v1 := r.Group("/api/v1", RequirePatient())
	{
		v1.GET("/reminders", reminders.List)
		v1.POST("/reminders", reminders.Create)
		v1.PATCH("/reminders/:id", reminders.Update)
		v1.DELETE("/reminders/:id", reminders.Delete)
		v1.POST("/reminders/:id/toggle", reminders.Toggle)
		v1.GET("/reminders/:id/time-remaining", reminders.TimeRemaining)
		v1.POST("/reminders/:id/adherence", adherence.Record)

		v1.GET("/adherence", adherence.List)
		v1.GET("/adherence/stats", adherence.Stats)
		v1.GET("/adherence/subjects/:subject/stats", adherence.SubjectStats)

		v1.GET("/notifications", notifications.Feed)
		v1.GET("/notifications/ws", notifications.Connect)
		v1.DELETE("/session", notifications.EndSession)
	}
}
