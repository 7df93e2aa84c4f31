package report

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"

	"screener-backend/internal/screening"
	"screener-backend/internal/shared/metrics"
	"screener-backend/internal/shared/server/respond"
	"screener-backend/internal/shared/storage/reports"
	"screener-backend/internal/shared/telemetry"
)

// Handler renders analysis results into stored report files.
type Handler struct {
	History *screening.History
	Store   *reports.Store
}

// NewHandler constructs a Handler.
func NewHandler(history *screening.History, store *reports.Store) *Handler {
	return &Handler{History: history, Store: store}
}

// RegisterRoutes attaches report routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/analyses/:id/report", h.createReport)
	rg.GET("/reports/:name", h.downloadReport)
}

type createReportRequest struct {
	Format string `json:"format"`
}

func (h *Handler) createReport(c *gin.Context) {
	id := c.Param("id")
	result, ok := h.History.Get(id)
	if !ok {
		respond.Error(c, http.StatusNotFound, screening.CodeNotFound, "analysis not found", nil)
		return
	}

	var req createReportRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			respond.Error(c, http.StatusBadRequest, screening.CodeValidation, "invalid request body", nil)
			return
		}
	}

	rendered, ext, err := Render(strings.TrimSpace(req.Format), Report{
		Analysis:  result.Analysis,
		Questions: result.Questions,
		Meta: Metadata{
			GeneratedAt:  result.CreatedAt,
			MessageCount: result.MessageCount,
			MatchScore:   result.MatchScore,
		},
	})
	if err != nil {
		if errors.Is(err, ErrUnknownFormat) {
			respond.Error(c, http.StatusBadRequest, screening.CodeValidation, err.Error(), nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, screening.CodeInternal, "failed to render report", nil)
		return
	}

	stored, err := h.Store.Save(c.Request.Context(), fmt.Sprintf("candidate_evaluation_%s%s", id, ext), rendered)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, screening.CodeInternal, "failed to store report", nil)
		return
	}

	metrics.IncReportWritten()
	telemetry.Info("report.written", map[string]any{
		"analysis_id": id,
		"file":        stored,
		"bytes":       len(rendered),
	})
	respond.JSON(c, http.StatusCreated, gin.H{
		"file":  stored,
		"bytes": len(rendered),
	})
}

func contentTypeForName(name string) string {
	switch {
	case strings.HasSuffix(name, ".pdf"):
		return "application/pdf"
	case strings.HasSuffix(name, ".docx"):
		return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	default:
		return "text/plain; charset=utf-8"
	}
}

func (h *Handler) downloadReport(c *gin.Context) {
	name := c.Param("name")
	rc, err := h.Store.Open(c.Request.Context(), name)
	if err != nil {
		if os.IsNotExist(err) {
			respond.Error(c, http.StatusNotFound, screening.CodeNotFound, "report not found", nil)
			return
		}
		respond.Error(c, http.StatusBadRequest, screening.CodeValidation, "invalid report name", nil)
		return
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, screening.CodeInternal, "failed to read report", nil)
		return
	}
	c.Data(http.StatusOK, contentTypeForName(name), data)
}
