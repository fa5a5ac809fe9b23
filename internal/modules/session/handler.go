package session

import (
	"errors"

	"github.com/Tkay6677/Ndu-attendance/internal/config"
	"github.com/Tkay6677/Ndu-attendance/internal/middleware"
	"github.com/Tkay6677/Ndu-attendance/internal/models"
	"github.com/Tkay6677/Ndu-attendance/internal/pkg/pagination"
	"github.com/Tkay6677/Ndu-attendance/internal/pkg/qrimage"
	"github.com/Tkay6677/Ndu-attendance/internal/pkg/qrtoken"
	"github.com/Tkay6677/Ndu-attendance/internal/pkg/response"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type Handler struct {
	svc   *Service
	codec *qrtoken.Codec
	cfg   *config.AppConfig
	db    *gorm.DB
}

func NewHandler(svc *Service, codec *qrtoken.Codec, cfg *config.AppConfig, db *gorm.DB) *Handler {
	return &Handler{svc: svc, codec: codec, cfg: cfg, db: db}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	g := rg.Group("/sessions", authMW)

	g.GET("", h.list)
	g.GET("/:id", h.get)

	lecturer := g.Group("", middleware.RequireRole(models.RoleLecturer))
	lecturer.POST("", h.create)
	lecturer.PATCH("/:id", h.update)
	lecturer.GET("/:id/qrcode", h.qrCode)
}

// POST /sessions
func (h *Handler) create(c *gin.Context) {
	var dto CreateSessionDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	var owner models.UserModel
	if err := h.db.First(&owner, "id = ?", middleware.CurrentUserID(c)).Error; err != nil {
		response.InternalError(c, err)
		return
	}

	sess, err := h.svc.Create(&owner, &dto)
	if err != nil {
		if errors.Is(err, errInvalidDuration) {
			response.BadRequest(c, err.Error())
			return
		}
		response.InternalError(c, err)
		return
	}
	response.Created(c, sess)
}

// GET /sessions?lecturer=<id>
func (h *Handler) list(c *gin.Context) {
	q := pagination.FromContext(c)

	lecturerID := c.Query("lecturer")
	if middleware.CurrentRole(c) == models.RoleLecturer {
		// Lecturers always see their own sessions.
		lecturerID = middleware.CurrentUserID(c)
	}

	items, pag, err := h.svc.List(q, lecturerID)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Paged(c, items, pag)
}

// GET /sessions/:id
func (h *Handler) get(c *gin.Context) {
	sess, err := h.svc.GetByID(c.Param("id"))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if sess == nil {
		response.NotFoundMsg(c, "Session not found")
		return
	}
	response.OK(c, sess)
}

// PATCH /sessions/:id
func (h *Handler) update(c *gin.Context) {
	var dto UpdateSessionDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	sess, err := h.svc.SetActive(c.Param("id"), middleware.CurrentUserID(c), *dto.IsActive)
	if err != nil {
		if errors.Is(err, ErrNotOwner) {
			response.Forbidden(c)
			return
		}
		response.InternalError(c, err)
		return
	}
	if sess == nil {
		response.NotFoundMsg(c, "Session not found")
		return
	}
	response.OK(c, sess)
}

// GET /sessions/:id/qrcode
//
// Issues a fresh token each call. Previously issued tokens stay valid until
// their own expiry; re-opening the QR display is not a revocation.
func (h *Handler) qrCode(c *gin.Context) {
	sess, err := h.svc.GetByID(c.Param("id"))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if sess == nil {
		response.NotFoundMsg(c, "Session not found")
		return
	}
	if sess.LecturerID != middleware.CurrentUserID(c) {
		response.Forbidden(c)
		return
	}

	token, expiresAt, err := h.codec.Issue(sess.ID)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	scanURL := h.cfg.ScanURL(token)
	dataURL, err := qrimage.DataURL(scanURL)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, qrCodeResponse{
		Token:     token,
		ScanURL:   scanURL,
		QRCode:    dataURL,
		ExpiresAt: expiresAt,
	})
}
