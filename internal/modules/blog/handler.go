package blog

import (
	"errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/triponation/core/internal/middleware"
	"github.com/triponation/core/internal/models"
	"github.com/triponation/core/internal/pkg/form"
	"github.com/triponation/core/internal/pkg/moderation"
	"github.com/triponation/core/internal/pkg/pagination"
	"github.com/triponation/core/internal/pkg/response"
	"github.com/triponation/core/internal/pkg/uploads"
)

type Handler struct {
	svc *Service
	log *zap.Logger
}

func NewHandler(svc *Service, log *zap.Logger) *Handler {
	return &Handler{svc: svc, log: log}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	g := rg.Group("/blogs")

	g.GET("/approvedBlogs", h.approved)
	g.GET("/slug/:slug", h.getBySlug)
	g.GET("/id/:id", h.getByID)
	g.GET("/id/:id/rendered", h.rendered)

	a := g.Group("", authMW)
	a.GET("/allBlogs", middleware.RequireAdmin(), h.list)
	a.POST("/create", h.create)
	a.PUT("/update/:id", middleware.RequireAdmin(), h.update)
	a.PATCH("/status/:id", middleware.RequireAdmin(), h.setStatus)
	a.PATCH("/likeUnlike/:id", h.toggleLike)
	a.DELETE("/delete/:id", middleware.RequireAdmin(), h.delete)
}

// clientError maps the known input failures to a 400 and reports whether
// it handled err.
func clientError(c *gin.Context, err error) bool {
	var ve *ErrValidation
	if errors.As(err, &ve) {
		response.BadRequest(c, ve.Msg)
		return true
	}
	var pe *form.ParseError
	if errors.As(err, &pe) {
		response.BadRequest(c, pe.Error())
		return true
	}
	var ue *uploads.UnsupportedTypeError
	if errors.As(err, &ue) {
		response.BadRequest(c, ue.Error())
		return true
	}
	if moderation.IsPolicyError(err) {
		response.BadRequest(c, err.Error())
		return true
	}
	return false
}

func (h *Handler) create(c *gin.Context) {
	dto, err := parseCreateDTO(c)
	if err != nil {
		clientError(c, err)
		return
	}

	b, err := h.svc.Create(c.Request.Context(), middleware.CurrentUserID(c), dto)
	if err != nil {
		if clientError(c, err) {
			return
		}
		h.log.Error("create blog failed", zap.Error(err))
		response.InternalError(c)
		return
	}
	response.Created(c, gin.H{"message": "Blog created successfully", "blog": b})
}

func (h *Handler) list(c *gin.Context) {
	q := pagination.FromContext(c)
	items, pag, err := h.svc.List(c.Request.Context(), q, c.Query("search"), models.Status(c.Query("status")))
	if err != nil {
		h.log.Error("list blogs failed", zap.Error(err))
		response.InternalError(c)
		return
	}
	response.Paged(c, items, pag)
}

func (h *Handler) approved(c *gin.Context) {
	q := pagination.FromContext(c)
	items, pag, cached, err := h.svc.Approved(c.Request.Context(), q, c.Query("category"), c.Query("tags"))
	if err != nil {
		h.log.Error("list approved blogs failed", zap.Error(err))
		response.InternalError(c)
		return
	}
	response.PagedEnv(c, response.NewPaged(items, pag), cached)
}

func (h *Handler) getBySlug(c *gin.Context) {
	b, err := h.svc.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		h.log.Error("get blog by slug failed", zap.Error(err))
		response.InternalError(c)
		return
	}
	if b == nil {
		response.NotFound(c, "Blog not found")
		return
	}
	response.OK(c, gin.H{"message": "Blog fetched successfully", "blog": b})
}

func (h *Handler) getByID(c *gin.Context) {
	b, cached, err := h.svc.GetByIDCached(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.log.Error("get blog failed", zap.Error(err))
		response.InternalError(c)
		return
	}
	if b == nil {
		response.NotFound(c, "Blog not found")
		return
	}
	response.OK(c, gin.H{"blog": b, "cached": cached})
}

func (h *Handler) rendered(c *gin.Context) {
	b, html, err := h.svc.Rendered(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.log.Error("render blog failed", zap.Error(err))
		response.InternalError(c)
		return
	}
	if b == nil {
		response.NotFound(c, "Blog not found")
		return
	}
	response.OK(c, gin.H{"blog": b, "html": html})
}

func (h *Handler) update(c *gin.Context) {
	dto, err := parseUpdateDTO(c)
	if err != nil {
		clientError(c, err)
		return
	}

	b, err := h.svc.Update(c.Request.Context(), c.Param("id"), dto)
	if err != nil {
		if clientError(c, err) {
			return
		}
		h.log.Error("update blog failed", zap.Error(err))
		response.InternalError(c)
		return
	}
	if b == nil {
		response.NotFound(c, "Blog not found")
		return
	}
	response.OK(c, gin.H{"message": "Blog updated successfully", "blog": b})
}

func (h *Handler) setStatus(c *gin.Context) {
	var dto StatusDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	b, err := h.svc.SetStatus(c.Request.Context(), c.Param("id"), dto.Status)
	if err != nil {
		if clientError(c, err) {
			return
		}
		h.log.Error("update blog status failed", zap.Error(err))
		response.InternalError(c)
		return
	}
	if b == nil {
		response.NotFound(c, "Blog not found")
		return
	}
	response.OK(c, gin.H{"message": "Blog marked as " + string(b.Status) + " successfully", "blog": b})
}

func (h *Handler) toggleLike(c *gin.Context) {
	b, liked, err := h.svc.ToggleLike(c.Request.Context(), c.Param("id"), middleware.CurrentUserID(c))
	if err != nil {
		h.log.Error("toggle blog like failed", zap.Error(err))
		response.InternalError(c)
		return
	}
	if b == nil {
		response.NotFound(c, "Blog not found")
		return
	}
	msg := "Blog liked successfully"
	if !liked {
		msg = "Blog unliked successfully"
	}
	response.OK(c, gin.H{"message": msg, "liked": liked, "totalLikes": len(b.LikedBy)})
}

func (h *Handler) delete(c *gin.Context) {
	found, err := h.svc.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.log.Error("delete blog failed", zap.Error(err))
		response.InternalError(c)
		return
	}
	if !found {
		response.NotFound(c, "Blog not found")
		return
	}
	response.Message(c, "Blog deleted successfully")
}
