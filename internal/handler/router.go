package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/noah-isme/schoolops-api/internal/middleware"
	"github.com/noah-isme/schoolops-api/internal/models"
)

// Handlers groups every API handler mounted by RegisterRoutes.
type Handlers struct {
	Accounts  *AccountHandler
	Students  *StudentHandler
	Teachers  *TeacherHandler
	Courses   *CourseHandler
	ClassWork *ClassWorkHandler
	Me        *MeHandler
	Notices   *NoticeHandler
	Enquiries *EnquiryHandler
	Gallery   *GalleryHandler
}

// RegisterRoutes mounts the API on api. The caller installs authentication and identity
// resolution on the group; every route here expects claims in the context and checks roles itself.
func RegisterRoutes(api *gin.RouterGroup, h Handlers) {
	admin := middleware.RBAC(models.RoleAdmin)
	staff := middleware.RBAC(models.RoleAdmin, models.RoleTeacher)
	members := middleware.RBAC(models.RoleAdmin, models.RoleTeacher, models.RoleStudent)

	accounts := api.Group("/accounts", admin)
	accounts.GET("", h.Accounts.List)
	accounts.GET("/:id", h.Accounts.Get)
	accounts.GET("/:id/transactions", h.Accounts.Transactions)
	accounts.POST("/:id/transactions", h.Accounts.ApplyTransaction)
	accounts.GET("/:id/reconcile", h.Accounts.Reconcile)
	accounts.GET("/:id/statement", h.Accounts.Statement)

	students := api.Group("/students")
	students.GET("", staff, h.Students.List)
	students.POST("", admin, h.Students.Create)
	students.GET("/:id", staff, h.Students.Get)
	students.PATCH("/:id", admin, h.Students.Update)
	students.DELETE("/:id", admin, h.Students.Delete)
	students.PUT("/:id/image", members, h.Students.UpdateImage)
	students.POST("/:id/courses/:courseId", admin, h.Students.Enroll)
	students.GET("/:id/courses/:courseId/attendance", members, h.Students.Attendance)

	teachers := api.Group("/teachers")
	teachers.GET("", staff, h.Teachers.List)
	teachers.POST("", admin, h.Teachers.Create)
	teachers.GET("/:id", staff, h.Teachers.Get)
	teachers.PATCH("/:id", admin, h.Teachers.Update)
	teachers.DELETE("/:id", admin, h.Teachers.Delete)
	teachers.PUT("/:id/image", staff, h.Teachers.UpdateImage)
	teachers.GET("/:id/courses", staff, h.Teachers.Courses)

	courses := api.Group("/courses")
	courses.GET("", members, h.Courses.List)
	courses.POST("", admin, h.Courses.Create)
	courses.GET("/:id", members, h.Courses.Get)
	courses.PATCH("/:id", admin, h.Courses.Update)
	courses.DELETE("/:id", admin, h.Courses.Delete)
	courses.PUT("/:id/image", admin, h.Courses.UpdateImage)
	courses.PUT("/:id/teacher/:teacherId", admin, h.Courses.Assign)
	courses.GET("/:id/students", staff, h.Courses.Students)
	courses.POST("/:id/attendance", staff, h.Courses.MarkAttendance)
	courses.GET("/:id/attendance", staff, h.Courses.Attendance)
	courses.POST("/:id/classwork", staff, h.Courses.PostClassWork)
	courses.GET("/:id/classwork", members, h.Courses.ClassWork)

	classwork := api.Group("/classwork")
	classwork.POST("/:id/works", middleware.RBAC(models.RoleStudent), h.ClassWork.Submit)
	classwork.GET("/:id/works", staff, h.ClassWork.Works)
	classwork.DELETE("/:id", staff, h.ClassWork.Delete)

	api.PUT("/works/:id/marks", staff, h.ClassWork.Grade)

	me := api.Group("/me", members)
	me.GET("", h.Me.Profile)
	me.GET("/account", h.Me.Account)

	notices := api.Group("/notices")
	notices.GET("", members, h.Notices.List)
	notices.POST("", admin, h.Notices.Create)
	notices.DELETE("/:id", admin, h.Notices.Delete)

	gallery := api.Group("/gallery")
	gallery.GET("", members, h.Gallery.List)
	gallery.POST("", admin, h.Gallery.Create)
	gallery.DELETE("/:id", admin, h.Gallery.Delete)

	enquiries := api.Group("/enquiries", admin)
	enquiries.GET("", h.Enquiries.List)
	enquiries.PUT("/:id/status", h.Enquiries.Respond)
	enquiries.DELETE("/:id", h.Enquiries.Delete)
}

// RegisterPublicRoutes mounts the unauthenticated surface of the public site.
func RegisterPublicRoutes(public *gin.RouterGroup, h Handlers) {
	public.GET("/gallery", h.Gallery.List)
	public.GET("/courses", h.Courses.List)
	public.POST("/enquiries", h.Enquiries.Submit)
}
