package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/aegisplatform/aegis/internal/app/controllers"
	"github.com/aegisplatform/aegis/internal/app/models"
	"github.com/aegisplatform/aegis/internal/app/models/dto"
	"github.com/aegisplatform/aegis/internal/middleware"
)

// SetupRouter configures all application routes under /api/v1
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	userController *controllers.UserController,
	grievanceController *controllers.GrievanceController,
	courseController *controllers.CourseController,
	opportunityController *controllers.OpportunityController,
	taskController *controllers.TaskController,
	fileController *controllers.FileController,
	authMiddleware *middleware.AuthMiddleware,
) {
	v1 := router.Group("/api/v1")

	// --- Public routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/register", authController.Register)
		auth.POST("/login", authController.Login)
		auth.POST("/refresh", authController.Refresh)
		auth.POST("/logout", authController.Logout)
	}

	// Stored uploads are served publicly by path; names are unguessable UUIDs.
	v1.GET("/files/uploads/*path", fileController.ServeFile)

	v1.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, dto.NewStructuredResponse(gin.H{"status": "ok"}, "Service healthy"))
	})

	// --- Authenticated routes ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		users := authenticated.Group("/users")
		{
			users.GET("/me", userController.GetMe)
			users.PUT("/me", userController.UpdateMe)
			users.PUT("/me/password", userController.ChangePassword)

			usersAdmin := users.Group("")
			usersAdmin.Use(authMiddleware.RoleRequired(models.RoleAdmin))
			{
				usersAdmin.GET("", userController.ListUsers)
				usersAdmin.PUT("/:id/role", userController.UpdateUserRole)
			}
		}

		grievances := authenticated.Group("/grievances")
		{
			grievances.POST("", grievanceController.CreateGrievance)
			grievances.GET("", grievanceController.ListGrievances)
			grievances.GET("/:id", grievanceController.GetGrievance)
			grievances.POST("/:id/photos", grievanceController.UploadGrievancePhoto)

			grievancesStaff := grievances.Group("")
			grievancesStaff.Use(authMiddleware.RoleRequired(models.RoleAuthority, models.RoleAdmin))
			{
				grievancesStaff.POST("/:id/updates", grievanceController.AddGrievanceUpdate)
			}
		}

		courses := authenticated.Group("/courses")
		{
			courses.GET("", courseController.ListCourses)
			courses.GET("/:id", courseController.GetCourse)
			courses.GET("/:id/resources", courseController.ListResources)
			courses.GET("/:id/calendar", courseController.ListCalendar)

			coursesStaff := courses.Group("")
			coursesStaff.Use(authMiddleware.RoleRequired(models.RoleFaculty, models.RoleAdmin))
			{
				coursesStaff.POST("", courseController.CreateCourse)
				coursesStaff.POST("/:id/resources", courseController.CreateResource)
				coursesStaff.POST("/:id/calendar", courseController.CreateCalendarEvent)
			}

			coursesStudent := courses.Group("")
			coursesStudent.Use(authMiddleware.RoleRequired(models.RoleStudent))
			{
				coursesStudent.POST("/:id/enroll", courseController.Enroll)
			}
		}

		resources := authenticated.Group("/resources")
		{
			resources.GET("/:resourceId/download", courseController.DownloadResource)

			resourcesStaff := resources.Group("")
			resourcesStaff.Use(authMiddleware.RoleRequired(models.RoleFaculty, models.RoleAdmin))
			{
				resourcesStaff.POST("/:resourceId/file", courseController.UploadResourceFile)
			}
		}

		opportunities := authenticated.Group("/opportunities")
		{
			opportunities.GET("", opportunityController.ListOpportunities)
			opportunities.GET("/:id", opportunityController.GetOpportunity)
			opportunities.GET("/:id/applications", opportunityController.ListApplications)
			opportunities.POST("/:id/close", opportunityController.CloseOpportunity)

			opportunitiesStaff := opportunities.Group("")
			opportunitiesStaff.Use(authMiddleware.RoleRequired(models.RoleFaculty, models.RoleAuthority))
			{
				opportunitiesStaff.POST("", opportunityController.CreateOpportunity)
			}

			opportunitiesStudent := opportunities.Group("")
			opportunitiesStudent.Use(authMiddleware.RoleRequired(models.RoleStudent))
			{
				opportunitiesStudent.POST("/:id/apply", opportunityController.Apply)
			}
		}

		applications := authenticated.Group("/applications")
		{
			applications.PUT("/:applicationId/status", opportunityController.UpdateApplicationStatus)
			applications.POST("/:applicationId/resume", opportunityController.UploadResume)
		}

		my := authenticated.Group("/my")
		{
			my.GET("/applications", opportunityController.MyApplications)

			myStudent := my.Group("")
			myStudent.Use(authMiddleware.RoleRequired(models.RoleStudent))
			{
				myStudent.GET("/enrollments", courseController.MyEnrollments)
				myStudent.GET("/tasks", taskController.ListTasks)
				myStudent.POST("/tasks", taskController.CreateTask)
				myStudent.GET("/tasks/:id", taskController.GetTask)
				myStudent.PUT("/tasks/:id", taskController.UpdateTask)
				myStudent.DELETE("/tasks/:id", taskController.DeleteTask)
			}
		}

		authenticated.POST("/files/avatar", fileController.UploadAvatar)
	}
}
