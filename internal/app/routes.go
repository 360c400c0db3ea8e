package app

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/triponation/core/internal/middleware"
	"github.com/triponation/core/internal/modules/blog"
	"github.com/triponation/core/internal/modules/contact"
	"github.com/triponation/core/internal/modules/enquiry"
	"github.com/triponation/core/internal/modules/importer"
	"github.com/triponation/core/internal/modules/media"
	"github.com/triponation/core/internal/modules/reel"
	"github.com/triponation/core/internal/modules/review"
	"github.com/triponation/core/internal/modules/story"
	"github.com/triponation/core/internal/modules/user"
	"github.com/triponation/core/internal/pkg/cache"
	"github.com/triponation/core/internal/pkg/jwt"
	"github.com/triponation/core/internal/pkg/mail"
	"github.com/triponation/core/internal/pkg/response"
	"github.com/triponation/core/internal/pkg/uploads"
)

// deps carries the shared collaborators handed to every module.
type deps struct {
	cache    *cache.Client
	uploads  *uploads.Manager
	tokens   *jwt.Manager
	otp      mail.OTPSender
	mediaSvc *media.Service
}

func (a *App) registerRoutes(d deps) {
	r := a.router
	db := a.db
	log := a.logger
	authMW := middleware.Auth(d.tokens)

	r.NoRoute(func(c *gin.Context) {
		response.NotFound(c, "Route not found")
	})
	r.NoMethod(func(c *gin.Context) {
		c.AbortWithStatusJSON(http.StatusMethodNotAllowed, gin.H{"success": false, "message": "Method not allowed"})
	})

	root := r.Group("")

	// Each handler mounts its own path family (/blogs, /story, ...);
	// user routes live at the root like the original deployment.
	user.NewHandler(user.NewService(db, d.uploads, d.tokens, d.otp, log), log).RegisterRoutes(root, authMW)
	blog.NewHandler(blog.NewService(db, d.cache, d.uploads, a.cfg.Cache, log), log).RegisterRoutes(root, authMW)
	story.NewHandler(story.NewService(db, d.cache, d.uploads, a.cfg.Cache, log), log).RegisterRoutes(root, authMW)
	reel.NewHandler(reel.NewService(db, d.cache, d.uploads, a.cfg.Cache, log), log).RegisterRoutes(root, authMW)
	review.NewHandler(review.NewService(db), log).RegisterRoutes(root, authMW)
	enquiry.NewHandler(enquiry.NewService(db), log).RegisterRoutes(root, authMW)
	contact.NewHandler(contact.NewService(db), log).RegisterRoutes(root, authMW)
	media.NewHandler(d.mediaSvc, log).RegisterRoutes(root, authMW)
	importer.NewHandler(importer.NewService(db, log), log).RegisterRoutes(root, authMW)
}
