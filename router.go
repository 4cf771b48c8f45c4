package main

import (
	handler "classroom/biz/adaptor/controller"
	"classroom/biz/adaptor/controller/api"

	"github.com/cloudwego/hertz/pkg/app/server"
)

// customizeRegister registers customize routers.
func customizedRegister(r *server.Hertz) {
	r.GET("/ping", handler.Ping)

	auth := r.Group("/auth")
	{
		auth.PUT("/signUp", api.SignUp)
		auth.POST("/signIn", api.SignIn)
		auth.GET("/logout", api.Logout)
		auth.GET("/refresh", api.RefreshTokens)
		auth.PATCH("/deleteNotifications", api.DeleteNotifications)
	}

	classes := r.Group("/classes")
	{
		classes.GET("", api.ListClasses)
		classes.POST("", api.CreateClass)
		classes.POST("/connect", api.ConnectClass)

		class := classes.Group("/:classId")
		class.GET("", api.ClassInfo)
		class.PATCH("", api.UpdateClassInfo)
		class.DELETE("", api.RemoveClass)
		class.PATCH("/removeMember", api.RemoveMember)
		class.PATCH("/addOwner", api.AddOwner)
		class.PATCH("/removeOwner", api.RemoveOwner)
		class.GET("/gradeBook", api.GetGradeBook)
		class.GET("/gradeBook/export", api.ExportGradeBook)
		class.PUT("/marks", api.RecordMark)
	}
}
