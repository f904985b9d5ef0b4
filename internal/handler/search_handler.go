package handler

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/xxxsen/docchat/internal/pkg/errcode"
	"github.com/xxxsen/docchat/internal/pkg/response"
	"github.com/xxxsen/docchat/internal/service"
)

type SearchHandler struct {
	chat *service.ChatService
}

func NewSearchHandler(chat *service.ChatService) *SearchHandler {
	return &SearchHandler{chat: chat}
}

type searchRequest struct {
	SessionID string `json:"session_id"`
	Query     string `json:"query"`
	TopK      int    `json:"top_k"`
}

// Search exposes the retrieval engine directly. An empty or unmatched
// query still succeeds; the reason field tells the outcome apart.
func (h *SearchHandler) Search(c *gin.Context) {
	var req searchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, errcode.ErrInvalid, "invalid request body")
		return
	}
	result, err := h.chat.Search(c.Request.Context(), strings.TrimSpace(req.SessionID), strings.TrimSpace(req.Query), req.TopK)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, result)
}

// SessionSearch is the query-string variant scoped under a session path.
func (h *SearchHandler) SessionSearch(c *gin.Context) {
	query := strings.TrimSpace(c.Query("q"))
	topK, _ := strconv.Atoi(c.Query("k"))
	result, err := h.chat.Search(c.Request.Context(), c.Param("id"), query, topK)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, result)
}
