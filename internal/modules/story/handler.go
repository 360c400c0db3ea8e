package story

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
	g := rg.Group("/story")

	g.GET("/approvedStories", h.approved)
	g.GET("/:id", h.getByID)

	a := g.Group("", authMW)
	a.GET("/allStory", middleware.RequireAdmin(), h.list)
	a.POST("/createStory", h.create)
	a.PUT("/update/:id", middleware.RequireAdmin(), h.update)
	a.PATCH("/status/:id", middleware.RequireAdmin(), h.setStatus)
	a.DELETE("/delete/:id", middleware.RequireAdmin(), h.delete)
}

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

	st, err := h.svc.Create(c.Request.Context(), middleware.CurrentUserID(c), dto)
	if err != nil {
		if clientError(c, err) {
			return
		}
		h.log.Error("create story failed", zap.Error(err))
		response.InternalError(c)
		return
	}
	response.Created(c, gin.H{"message": "Story created successfully", "story": st})
}

func (h *Handler) list(c *gin.Context) {
	q := pagination.FromContext(c)
	items, pag, err := h.svc.List(c.Request.Context(), q, c.Query("search"), models.Status(c.Query("status")))
	if err != nil {
		h.log.Error("list stories failed", zap.Error(err))
		response.InternalError(c)
		return
	}
	response.Paged(c, items, pag)
}

func (h *Handler) approved(c *gin.Context) {
	q := pagination.FromContext(c)
	items, pag, cached, err := h.svc.Approved(c.Request.Context(), q, c.Query("destination"), c.Query("category"))
	if err != nil {
		h.log.Error("list approved stories failed", zap.Error(err))
		response.InternalError(c)
		return
	}
	response.PagedEnv(c, response.NewPaged(items, pag), cached)
}

func (h *Handler) getByID(c *gin.Context) {
	st, err := h.svc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.log.Error("get story failed", zap.Error(err))
		response.InternalError(c)
		return
	}
	if st == nil {
		response.NotFound(c, "Story not found")
		return
	}
	response.OK(c, gin.H{"story": st})
}

func (h *Handler) update(c *gin.Context) {
	dto, err := parseUpdateDTO(c)
	if err != nil {
		clientError(c, err)
		return
	}

	st, err := h.svc.Update(c.Request.Context(), c.Param("id"), dto)
	if err != nil {
		if clientError(c, err) {
			return
		}
		h.log.Error("update story failed", zap.Error(err))
		response.InternalError(c)
		return
	}
	if st == nil {
		response.NotFound(c, "Story not found")
		return
	}
	response.OK(c, gin.H{"message": "Story updated successfully", "story": st})
}

func (h *Handler) setStatus(c *gin.Context) {
	var dto StatusDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	st, err := h.svc.SetStatus(c.Request.Context(), c.Param("id"), dto.Status)
	if err != nil {
		if clientError(c, err) {
			return
		}
		h.log.Error("update story status failed", zap.Error(err))
		response.InternalError(c)
		return
	}
	if st == nil {
		response.NotFound(c, "Story not found")
		return
	}
	response.OK(c, gin.H{"message": "Story status updated to " + string(st.Status) + " successfully", "story": st})
}

func (h *Handler) delete(c *gin.Context) {
	found, err := h.svc.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.log.Error("delete story failed", zap.Error(err))
		response.InternalError(c)
		return
	}
	if !found {
		response.NotFound(c, "Story not found")
		return
	}
	response.Message(c, "Story deleted successfully")
}
