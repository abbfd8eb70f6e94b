package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"rag-assistant/internal/app"
	"rag-assistant/internal/transport/http/response"
)

type AskHandler struct {
	ragService *app.RAGService
}

type AskRequest struct {
	Question string `json:"question" binding:"required"`
}

func NewAskHandler(ragService *app.RAGService) *AskHandler {
	return &AskHandler{ragService: ragService}
}

// Ask answers a question with sources and timing.
func (h *AskHandler) Ask(c *gin.Context) {
	var req AskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid request payload")
		return
	}

	result, err := h.ragService.DetailedAnswer(c.Request.Context(), req.Question)
	if err != nil {
		writeAnswerError(c, err)
		return
	}
	response.OK(c, result)
}

// SimpleAsk answers a question with just the answer text. Kept for callers
// of the original plain endpoint.
func (h *AskHandler) SimpleAsk(c *gin.Context) {
	var req AskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid request payload")
		return
	}

	answer, err := h.ragService.Answer(c.Request.Context(), req.Question)
	if err != nil {
		writeAnswerError(c, err)
		return
	}
	response.OK(c, gin.H{"answer": answer})
}

func writeAnswerError(c *gin.Context, err error) {
	var svcErr *app.ServiceError
	switch {
	case errors.Is(err, app.ErrEmptyQuestion):
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, err.Error())
	case errors.As(err, &svcErr):
		response.Error(c, http.StatusBadGateway, response.CodeUpstreamFailed, "answer failed: "+svcErr.Error())
	default:
		response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "answer failed")
	}
}
