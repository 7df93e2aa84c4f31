package screening

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"screener-backend/internal/extract"
	"screener-backend/internal/shared/server/respond"
)

const maxUploadSize = 10 << 20 // 10MB

// Handler wires HTTP handlers to the screening service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches session and analysis routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/session", h.sessionStatus)
	rg.DELETE("/session", h.clearSession)
	rg.POST("/session/job", h.loadJobDescription)
	rg.POST("/session/resumes", h.loadResume)
	rg.POST("/session/messages", h.postMessage)
	rg.GET("/session/messages", h.listMessages)
	rg.GET("/session/suggestions", h.listSuggestions)
	rg.POST("/session/score", h.score)
	rg.POST("/analyses", h.runAnalysis)
	rg.GET("/analyses", h.listAnalyses)
	rg.GET("/analyses/:id", h.getAnalysis)
}

type textPayload struct {
	Name string `json:"name"`
	Text string `json:"text"`
}

// documentBytes pulls the uploaded document out of the request, either a
// multipart "file" part or a JSON body with a "text" field.
func documentBytes(c *gin.Context) ([]byte, string, bool) {
	if strings.HasPrefix(c.ContentType(), "multipart/form-data") {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadSize)
		fileHeader, err := c.FormFile("file")
		if err != nil {
			respond.Error(c, http.StatusBadRequest, CodeValidation, "file is required", nil)
			return nil, "", false
		}
		file, err := fileHeader.Open()
		if err != nil {
			respond.Error(c, http.StatusBadRequest, CodeValidation, "unable to read file", nil)
			return nil, "", false
		}
		defer file.Close()

		data, err := io.ReadAll(file)
		if err != nil {
			respond.Error(c, http.StatusBadRequest, CodeValidation, "unable to read file", nil)
			return nil, "", false
		}
		return data, fileHeader.Filename, true
	}

	var req textPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, CodeValidation, "invalid request body", nil)
		return nil, "", false
	}
	if strings.TrimSpace(req.Text) == "" {
		respond.Error(c, http.StatusBadRequest, CodeValidation, "text is required", nil)
		return nil, "", false
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		name = "pasted.txt"
	}
	return []byte(req.Text), name, true
}

func (h *Handler) loadJobDescription(c *gin.Context) {
	data, fileName, ok := documentBytes(c)
	if !ok {
		return
	}

	ctx := WithRequestID(c.Request.Context(), c.GetString("requestId"))
	chars, err := h.Svc.LoadJobDescription(ctx, data, fileName)
	if err != nil {
		if errors.Is(err, extract.ErrFileRead) {
			respond.Error(c, http.StatusBadRequest, CodeFileRead, "unable to extract text from document", nil)
			return
		}
		respond.Error(c, http.StatusBadRequest, CodeValidation, err.Error(), nil)
		return
	}

	status := h.Svc.Status(ctx)
	respond.JSON(c, http.StatusOK, gin.H{
		"file":   fileName,
		"chars":  chars,
		"status": status,
	})
}

func (h *Handler) loadResume(c *gin.Context) {
	data, fileName, ok := documentBytes(c)
	if !ok {
		return
	}

	ctx := WithRequestID(c.Request.Context(), c.GetString("requestId"))
	loaded, err := h.Svc.LoadResume(ctx, data, fileName)
	if err != nil {
		if errors.Is(err, extract.ErrFileRead) {
			respond.Error(c, http.StatusBadRequest, CodeFileRead, "unable to extract text from document", nil)
			return
		}
		respond.Error(c, http.StatusBadRequest, CodeValidation, err.Error(), nil)
		return
	}

	respond.JSON(c, http.StatusCreated, gin.H{
		"resume": loaded,
		"status": h.Svc.Status(ctx),
	})
}

func (h *Handler) sessionStatus(c *gin.Context) {
	ctx := WithRequestID(c.Request.Context(), c.GetString("requestId"))
	respond.OK(c, h.Svc.Status(ctx))
}

func (h *Handler) clearSession(c *gin.Context) {
	h.Svc.Clear()
	respond.OK(c, gin.H{"cleared": true})
}

type postMessageRequest struct {
	Sender string `json:"sender"`
	Text   string `json:"text"`
}

func (h *Handler) postMessage(c *gin.Context) {
	var req postMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, CodeValidation, "invalid request body", nil)
		return
	}

	ctx := WithRequestID(c.Request.Context(), c.GetString("requestId"))
	outcome, err := h.Svc.AppendMessage(ctx, req.Sender, req.Text)
	if err != nil {
		respond.Error(c, http.StatusBadRequest, CodeValidation, err.Error(), nil)
		return
	}
	respond.OK(c, outcome)
}

func (h *Handler) listMessages(c *gin.Context) {
	respond.OK(c, gin.H{"messages": h.Svc.Session.Messages()})
}

func (h *Handler) listSuggestions(c *gin.Context) {
	respond.OK(c, gin.H{"suggestions": h.Svc.Session.Suggestions()})
}

func (h *Handler) score(c *gin.Context) {
	ctx := WithRequestID(c.Request.Context(), c.GetString("requestId"))
	score, err := h.Svc.Score(ctx)
	if err != nil {
		if IsPrecondition(err) {
			respond.Error(c, http.StatusBadRequest, CodePrecondition, err.Error(), nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, CodeInternal, "failed to compute match score", nil)
		return
	}
	respond.OK(c, gin.H{"match_score": score})
}

func (h *Handler) runAnalysis(c *gin.Context) {
	ctx := WithRequestID(c.Request.Context(), c.GetString("requestId"))
	result, err := h.Svc.Analyze(ctx)
	if err != nil {
		switch {
		case IsPrecondition(err):
			respond.Error(c, http.StatusBadRequest, CodePrecondition, err.Error(), nil)
		case errors.Is(err, ErrAnalysis):
			respond.Error(c, http.StatusBadGateway, CodeAnalysis, "analysis failed, conversation and documents are unchanged", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, CodeInternal, "failed to run analysis", nil)
		}
		return
	}
	respond.OK(c, result)
}

func (h *Handler) listAnalyses(c *gin.Context) {
	respond.OK(c, gin.H{"analyses": h.Svc.History.List()})
}

func (h *Handler) getAnalysis(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		respond.Error(c, http.StatusBadRequest, CodeValidation, "analysis id is required", nil)
		return
	}
	result, ok := h.Svc.History.Get(id)
	if !ok {
		respond.Error(c, http.StatusNotFound, CodeNotFound, "analysis not found", nil)
		return
	}
	respond.OK(c, result)
}
