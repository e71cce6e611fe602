package api

import (
	"time"

	"hackathon_system/common"
	"hackathon_system/common/config"
	"hackathon_system/common/db/models"
	"hackathon_system/lib/cache"

	"gorm.io/gorm"
)

type Handler struct {
	hs     *common.HackathonSystem
	db     *gorm.DB
	config *config.Config

	sessions *cache.LRUCache[string, models.User]

	now func() time.Time
}

func SetupHandler(hs *common.HackathonSystem) *Handler {
	h := &Handler{
		hs:     hs,
		db:     hs.DB,
		config: hs.Config,
		now:    time.Now,
	}
	h.sessions = cache.NewLRUCache[string, models.User](hs.Config.Auth.SessionCacheSize, h.loadSession)

	h.setupRoutes()
	hs.AddProcess(h.refreshEventStatuses)

	return h
}

func (h *Handler) setupRoutes() {
	router := h.hs.Router.Group("/api")
	authRouter := router.Group("", h.requireAuth)
	viewerRouter := router.Group("", h.optionalAuth)

	if h.config.Auth.DevLogin {
		router.POST("/auth/login", h.login)
	}
	authRouter.DELETE("/auth/session", h.logout)

	authRouter.GET("/me", h.getMe)
	authRouter.PUT("/me", h.updateMe)
	router.POST("/profiles", h.getProfiles)
	authRouter.GET("/dashboard", h.getDashboard)

	viewerRouter.GET("/events", h.getEvents)
	viewerRouter.GET("/events/:id", h.getEvent)
	authRouter.POST("/events", h.createEvent)
	authRouter.PUT("/events/:id", h.updateEvent)
	authRouter.POST("/events/:id/cancel", h.cancelEvent)

	authRouter.POST("/events/:id/register", h.register)
	authRouter.GET("/events/:id/team", h.getEventTeam)

	authRouter.GET("/events/:id/submission", h.getMySubmission)
	authRouter.PUT("/events/:id/submission", h.saveSubmission)
	viewerRouter.GET("/events/:id/submissions", h.getSubmissions)
	authRouter.POST("/submissions/:id/vote", h.vote)

	authRouter.POST("/teams", h.createTeam)
	authRouter.GET("/teams/:id", h.getTeam)
	authRouter.POST("/teams/:id/members", h.addTeamMember)
	authRouter.DELETE("/teams/:id/members/:user", h.removeTeamMember)
}
