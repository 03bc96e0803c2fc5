package routes

import (
	"github.com/go-redis/redis/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"ops-portal/internal/controllers"
	"ops-portal/internal/policies"
	"ops-portal/internal/repositories"
	"ops-portal/internal/services"
	"ops-portal/pkg/config"
	"ops-portal/pkg/constants"
	"ops-portal/pkg/middleware"
	"ops-portal/pkg/service"
)

func InitRouter(e *echo.Echo, dbConn *pgxpool.Pool, redisClient *redis.Client, jwtSvc service.JWTService, logger *zap.Logger, cfg *config.Config) {
	logger.Info("InitRouter: Начало создания маршрутов")

	// --- ОБЩИЕ КОМПОНЕНТЫ ---
	api := e.Group("/api")
	authMW := middleware.NewAuthMiddleware(jwtSvc, logger)
	txManager := repositories.NewTxManager(dbConn)

	// --- РЕПОЗИТОРИИ ---
	userRepo := repositories.NewUserRepository(dbConn, logger)
	roleRepo := repositories.NewRoleRepository(dbConn, logger)
	departmentRepo := repositories.NewDepartmentRepository(dbConn, logger)
	stageRepo := repositories.NewStageRepository(dbConn, logger)
	projectRepo := repositories.NewProjectRepository(dbConn, logger)
	taskRepo := repositories.NewTaskRepository(dbConn, logger)
	ticketRepo := repositories.NewTicketRepository(dbConn, logger)
	dashboardRepo := repositories.NewDashboardRepository(dbConn, logger)
	cacheRepo := repositories.NewRedisCacheRepository(redisClient)

	// --- ПОЛИТИКИ ---
	resolver := policies.NewDepartmentResolver(departmentRepo, logger)
	projectPolicy := policies.NewProjectPolicy(userRepo, projectRepo, resolver, logger)
	taskPolicy := policies.NewTaskPolicy(userRepo, projectRepo, taskRepo, resolver, logger)
	featureGate := policies.NewFeatureGate(userRepo, logger)
	featureMW := middleware.NewFeatureMiddleware(featureGate, logger)

	// --- СЕРВИСЫ ---
	authService := services.NewAuthService(userRepo, cacheRepo, jwtSvc, cfg.Auth, logger)
	userService := services.NewUserService(userRepo, roleRepo, logger)
	departmentService := services.NewDepartmentService(departmentRepo, logger)
	projectService := services.NewProjectService(projectRepo, taskRepo, departmentRepo, stageRepo, userRepo, projectPolicy, resolver, txManager, logger)
	taskService := services.NewTaskService(taskRepo, taskPolicy, logger)
	ticketService := services.NewTicketService(ticketRepo, userRepo, departmentRepo, resolver, logger)
	dashboardService := services.NewDashboardService(dashboardRepo, departmentRepo, cacheRepo, cfg.Dashboard.SummaryCacheTTL, logger)
	reportService := services.NewReportService(ticketRepo, logger)

	// --- КОНТРОЛЛЕРЫ ---
	authController := controllers.NewAuthController(authService, logger)
	userController := controllers.NewUserController(userService, logger)
	departmentController := controllers.NewDepartmentController(departmentService, logger)
	projectController := controllers.NewProjectController(projectService, logger)
	taskController := controllers.NewTaskController(taskService, logger)
	ticketController := controllers.NewTicketController(ticketService, logger)
	dashboardController := controllers.NewDashboardController(dashboardService, logger)
	reportController := controllers.NewReportController(reportService, logger)

	// --- МАРШРУТЫ ---
	secureGroup := api.Group("", authMW.Auth)

	runAuthRouter(api, authController, authMW)
	runUserRouter(secureGroup, userController)
	runDepartmentRouter(secureGroup, departmentController)
	runProjectRouter(secureGroup, projectController, featureMW)
	runTaskRouter(secureGroup, taskController, featureMW)
	runTicketRouter(secureGroup, ticketController, featureMW)
	runDashboardRouter(secureGroup, dashboardController, featureMW)
	runReportRouter(secureGroup, reportController, featureMW)

	logger.Info("InitRouter: Создание маршрутов завершено")
}

func runAuthRouter(api *echo.Group, ctrl *controllers.AuthController, authMW *middleware.AuthMiddleware) {
	authGroup := api.Group("/auth")
	{
		authGroup.POST("/login", ctrl.Login)
		authGroup.POST("/refresh_token", ctrl.RefreshToken)
		authGroup.GET("/me", ctrl.Me, authMW.Auth)
	}
}

func runUserRouter(secureGroup *echo.Group, ctrl *controllers.UserController) {
	secureGroup.GET("/users", ctrl.GetUsers)
	secureGroup.GET("/users/assignable", ctrl.GetAssignableUsers)
	secureGroup.GET("/users/:id", ctrl.FindUser)
	secureGroup.POST("/users", ctrl.CreateUser)
	secureGroup.PUT("/users/:id", ctrl.UpdateUser)
	secureGroup.DELETE("/users/:id", ctrl.DeleteUser)
}

func runDepartmentRouter(secureGroup *echo.Group, ctrl *controllers.DepartmentController) {
	secureGroup.GET("/departments", ctrl.GetDepartments)
	secureGroup.GET("/departments/:id", ctrl.FindDepartment)
}

func runProjectRouter(secureGroup *echo.Group, ctrl *controllers.ProjectController, featureMW *middleware.FeatureMiddleware) {
	projectGroup := secureGroup.Group("/projects", featureMW.Require(constants.FeatureProjects))
	{
		projectGroup.GET("", ctrl.GetProjects)
		projectGroup.GET("/board", ctrl.GetBoard)
		projectGroup.GET("/:id", ctrl.FindProject)
		projectGroup.POST("", ctrl.CreateProject)
		projectGroup.PUT("/:id", ctrl.UpdateProject)
		projectGroup.DELETE("/:id", ctrl.DeleteProject)
		projectGroup.DELETE("/:id/hard", ctrl.HardDeleteProject)
	}
}

func runTaskRouter(secureGroup *echo.Group, ctrl *controllers.TaskController, featureMW *middleware.FeatureMiddleware) {
	taskGroup := secureGroup.Group("/tasks", featureMW.Require(constants.FeatureProjects))
	{
		taskGroup.GET("", ctrl.GetTasks)
		taskGroup.GET("/:id", ctrl.FindTask)
		taskGroup.POST("", ctrl.CreateTask)
		taskGroup.PUT("/:id", ctrl.UpdateTask)
		taskGroup.DELETE("/:id", ctrl.DeleteTask)
	}
}

func runTicketRouter(secureGroup *echo.Group, ctrl *controllers.TicketController, featureMW *middleware.FeatureMiddleware) {
	ticketGroup := secureGroup.Group("/tickets", featureMW.Require(constants.FeatureHelpdesk))
	{
		ticketGroup.GET("", ctrl.GetTickets)
		ticketGroup.GET("/:id", ctrl.FindTicket)
		ticketGroup.POST("", ctrl.CreateTicket)
		ticketGroup.PUT("/:id", ctrl.UpdateTicket)
		ticketGroup.DELETE("/:id", ctrl.DeleteTicket)
	}
}

func runDashboardRouter(secureGroup *echo.Group, ctrl *controllers.DashboardController, featureMW *middleware.FeatureMiddleware) {
	dashboardGroup := secureGroup.Group("/dashboard", featureMW.Require(constants.FeatureDashboard))
	{
		dashboardGroup.GET("/summary", ctrl.GetSummary)
	}
}

func runReportRouter(secureGroup *echo.Group, ctrl *controllers.ReportController, featureMW *middleware.FeatureMiddleware) {
	reportGroup := secureGroup.Group("/reports", featureMW.Require(constants.FeatureHelpdesk))
	{
		reportGroup.GET("/tickets", ctrl.GetTicketReport)
	}
}
