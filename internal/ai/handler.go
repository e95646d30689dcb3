package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/sandeshm/portfolio-backend/config"
)

// Abandoned chat connections are cut off after this long even if the
// upstream keeps streaming.
const streamTimeout = 5 * time.Minute

type Handler struct {
	Service *Service
	cfg     *config.Config
}

func NewHandler(s *Service, cfg *config.Config) *Handler {
	return &Handler{Service: s, cfg: cfg}
}

func (h *Handler) internalError(c *gin.Context, err error) {
	msg := "internal server error"
	if !h.cfg.IsProduction() {
		msg = err.Error()
	}
	c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": msg})
}

func (h *Handler) generationError(c *gin.Context, err error) {
	var upstream *UpstreamError
	switch {
	case errors.Is(err, ErrMissingAPIKey):
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": err.Error()})
	case errors.As(err, &upstream):
		c.JSON(http.StatusBadGateway, gin.H{
			"success": false,
			"message": fmt.Sprintf("AI provider returned status %d", upstream.Status),
		})
	default:
		h.internalError(c, err)
	}
}

// ===========================
// 💬 Chat - POST /ai/chat
// Streams incremental {content} chunks as server-sent events, terminated
// by {done:true}. The stream ends on upstream completion, client
// disconnect, or the timeout.
func (h *Handler) Chat(c *gin.Context) {
	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid input: " + err.Error()})
		return
	}
	if len(req.Messages) == 0 && req.Message == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "message or messages is required"})
		return
	}
	if h.cfg.AIAPIKey == "" {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": ErrMissingAPIKey.Error()})
		return
	}

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Writer.Flush()

	ctx, cancel := context.WithTimeout(c.Request.Context(), streamTimeout)
	defer cancel()

	err := h.Service.Client.Stream(ctx, h.Service.ChatMessages(&req), func(content string) error {
		return writeSSE(c, gin.H{"content": content})
	})
	if err != nil {
		var upstream *UpstreamError
		if errors.As(err, &upstream) {
			writeSSE(c, gin.H{"error": fmt.Sprintf("AI provider returned status %d", upstream.Status)})
		} else if !errors.Is(err, context.Canceled) {
			writeSSE(c, gin.H{"error": "stream interrupted"})
		}
	}
	writeSSE(c, gin.H{"done": true})
}

func writeSSE(c *gin.Context, payload gin.H) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(c.Writer, "data: %s\n\n", data); err != nil {
		return err
	}
	c.Writer.Flush()
	return nil
}

// ===========================
// ✉️ Email reply - POST /ai/email-reply
func (h *Handler) EmailReply(c *gin.Context) {
	var req EmailReplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid input: " + err.Error()})
		return
	}
	if req.OriginalEmail == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "originalEmail is required"})
		return
	}

	text, err := h.Service.EmailReply(c.Request.Context(), &req)
	if err != nil {
		h.generationError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "reply": text})
}

// ===========================
// 💼 LinkedIn post - POST /ai/linkedin-post
func (h *Handler) LinkedInPost(c *gin.Context) {
	var req LinkedInPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid input: " + err.Error()})
		return
	}
	if req.Topic == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "topic is required"})
		return
	}

	text, err := h.Service.LinkedInPost(c.Request.Context(), &req)
	if err != nil {
		h.generationError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "post": text})
}

// ===========================
// 📈 Business plan - POST /ai/business-plan
func (h *Handler) BusinessPlan(c *gin.Context) {
	var req BusinessPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid input: " + err.Error()})
		return
	}
	if req.BusinessIdea == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "businessIdea is required"})
		return
	}

	text, err := h.Service.BusinessPlan(c.Request.Context(), &req)
	if err != nil {
		h.generationError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "plan": text})
}

// ===========================
// 📄 Business plan PDF - POST /ai/business-plan/pdf
func (h *Handler) BusinessPlanPDF(c *gin.Context) {
	var req BusinessPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid input: " + err.Error()})
		return
	}
	if req.BusinessIdea == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "businessIdea is required"})
		return
	}

	text, err := h.Service.BusinessPlan(c.Request.Context(), &req)
	if err != nil {
		h.generationError(c, err)
		return
	}

	pdfBytes, err := RenderBusinessPlanPDF("Business Plan: "+req.BusinessIdea, text)
	if err != nil {
		h.internalError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="business_plan.pdf"`)
	c.Data(http.StatusOK, "application/pdf", pdfBytes)
}

// ===========================
// 🚀 Startup names - POST /ai/startup-names
func (h *Handler) StartupNames(c *gin.Context) {
	var req StartupNamesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid input: " + err.Error()})
		return
	}
	if req.Industry == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "industry is required"})
		return
	}

	items, structured, err := h.Service.StartupNames(c.Request.Context(), &req)
	if err != nil {
		h.generationError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "names": items, "structured": structured})
}

// ===========================
// 💡 Project ideas - POST /ai/project-ideas
func (h *Handler) ProjectIdeas(c *gin.Context) {
	var req ProjectIdeasRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid input: " + err.Error()})
		return
	}
	if req.Field == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "field is required"})
		return
	}

	items, structured, err := h.Service.ProjectIdeas(c.Request.Context(), &req)
	if err != nil {
		h.generationError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "ideas": items, "structured": structured})
}
