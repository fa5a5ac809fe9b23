package attendance

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"time"

	"github.com/Tkay6677/Ndu-attendance/internal/middleware"
	"github.com/Tkay6677/Ndu-attendance/internal/models"
	sessionmod "github.com/Tkay6677/Ndu-attendance/internal/modules/session"
	"github.com/Tkay6677/Ndu-attendance/internal/pkg/pagination"
	"github.com/Tkay6677/Ndu-attendance/internal/pkg/response"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type Handler struct {
	redeemer *Redeemer
	ledger   *Service
	sessions *sessionmod.Service
	db       *gorm.DB
}

func NewHandler(redeemer *Redeemer, ledger *Service, sessions *sessionmod.Service, db *gorm.DB) *Handler {
	return &Handler{redeemer: redeemer, ledger: ledger, sessions: sessions, db: db}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	g := rg.Group("/attendance", authMW)

	g.POST("", middleware.RequireRole(models.RoleStudent), h.redeem)
	g.GET("", h.list)

	s := rg.Group("/sessions", authMW, middleware.RequireRole(models.RoleLecturer))
	s.GET("/:id/attendance.csv", h.exportCSV)
}

// POST /attendance
func (h *Handler) redeem(c *gin.Context) {
	var dto RedeemDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	var student models.UserModel
	if err := h.db.First(&student, "id = ?", middleware.CurrentUserID(c)).Error; err != nil {
		response.InternalError(c, err)
		return
	}

	res, err := h.redeemer.Redeem(dto.Token, &student, time.Now())
	if err != nil {
		response.InternalError(c, err)
		return
	}

	switch res.Status {
	case StatusRecorded:
		response.Created(c, gin.H{
			"message": res.Message,
			"record":  res.Record,
			"session": gin.H{
				"title":  res.Session.Title,
				"course": res.Session.Course,
			},
		})
	case StatusAlreadyRecorded:
		response.Conflict(c, res.Message)
	case StatusSessionNotFound:
		response.NotFoundMsg(c, res.Message)
	default:
		// TokenInvalid and all window rejections.
		response.BadRequest(c, res.Message)
	}
}

// GET /attendance?sessionId=<id>
//
// Students see their own history; lecturers see one of their sessions.
func (h *Handler) list(c *gin.Context) {
	q := pagination.FromContext(c)

	if middleware.CurrentRole(c) == models.RoleStudent {
		items, pag, err := h.ledger.ListByStudent(middleware.CurrentUserID(c), q)
		if err != nil {
			response.InternalError(c, err)
			return
		}
		response.Paged(c, items, pag)
		return
	}

	sessionID := c.Query("sessionId")
	if sessionID == "" {
		response.BadRequest(c, "sessionId is required")
		return
	}
	sess, err := h.sessions.GetByID(sessionID)
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

	items, pag, err := h.ledger.ListBySession(sessionID, q)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Paged(c, items, pag)
}

// GET /sessions/:id/attendance.csv
func (h *Handler) exportCSV(c *gin.Context) {
	sess, err := h.sessions.GetByID(c.Param("id"))
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

	records, err := h.ledger.AllBySession(sess.ID)
	if err != nil {
		response.InternalError(c, err)
		return
	}

	filename := fmt.Sprintf("attendance_%s_%s.csv", sess.Course, time.Now().Format("2006-01-02"))
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Status(http.StatusOK)

	studentIDs := h.studentIDsFor(records)

	w := csv.NewWriter(c.Writer)
	_ = w.Write([]string{"Name", "Email", "Student ID", "Timestamp"})
	for _, rec := range records {
		_ = w.Write([]string{
			rec.StudentName,
			rec.StudentEmail,
			studentIDs[rec.StudentID],
			rec.RecordedAt.Format(time.RFC3339),
		})
	}
	w.Flush()
}

// studentIDsFor resolves ledger user ids to registrar student numbers in one
// query.
func (h *Handler) studentIDsFor(records []models.AttendanceModel) map[string]string {
	if len(records) == 0 {
		return nil
	}
	ids := make([]string, 0, len(records))
	for _, rec := range records {
		ids = append(ids, rec.StudentID)
	}
	var users []models.UserModel
	if err := h.db.Select("id, student_id").Where("id IN ?", ids).Find(&users).Error; err != nil {
		return nil
	}
	out := make(map[string]string, len(users))
	for _, u := range users {
		out[u.ID] = u.StudentID
	}
	return out
}
