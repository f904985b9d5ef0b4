package handler

import (
	"io"
	"mime"
	"net/http"
	"path/filepath"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/xxxsen/docchat/internal/pkg/errcode"
	"github.com/xxxsen/docchat/internal/pkg/response"
	"github.com/xxxsen/docchat/internal/service"
)

type SessionHandler struct {
	sessions *service.SessionService
	chat     *service.ChatService
}

func NewSessionHandler(sessions *service.SessionService, chat *service.ChatService) *SessionHandler {
	return &SessionHandler{sessions: sessions, chat: chat}
}

func (h *SessionHandler) Create(c *gin.Context) {
	ses, err := h.sessions.Ensure(c.Request.Context(), "")
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, ses)
}

func (h *SessionHandler) ListFiles(c *gin.Context) {
	docs, err := h.sessions.ListFiles(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, docs)
}

// Upload adds one file to an existing-or-new session outside the chat
// flow, for clients that manage files separately.
func (h *SessionHandler) Upload(c *gin.Context) {
	ses, err := h.sessions.Ensure(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleError(c, err)
		return
	}
	fh, err := c.FormFile("file")
	if err != nil {
		response.Error(c, errcode.ErrInvalidFile, "file is required")
		return
	}
	opened, err := fh.Open()
	if err != nil {
		response.Error(c, errcode.ErrInvalidFile, "failed to open file")
		return
	}
	defer opened.Close()
	data, err := io.ReadAll(opened)
	if err != nil {
		response.Error(c, errcode.ErrInvalidFile, "failed to read file")
		return
	}
	doc, err := h.sessions.AddFile(c.Request.Context(), ses.ID, fh.Filename, fh.Header.Get("Content-Type"), data)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, doc)
}

// GetFile streams the stored original bytes back to the client.
func (h *SessionHandler) GetFile(c *gin.Context) {
	doc, rc, err := h.sessions.OpenFile(c.Request.Context(), c.Param("id"), c.Param("name"))
	if err != nil {
		response.ErrorStatus(c, http.StatusNotFound, errcode.ErrNotFound, "file not found")
		return
	}
	defer rc.Close()
	contentType := doc.ContentType
	if contentType == "" {
		contentType = mime.TypeByExtension(filepath.Ext(doc.Name))
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	c.Header("Content-Type", contentType)
	c.Header("Content-Length", strconv.FormatInt(doc.Size, 10))
	_, _ = io.Copy(c.Writer, rc)
}

func (h *SessionHandler) Messages(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	msgs, err := h.chat.History(c.Request.Context(), c.Param("id"), limit)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, msgs)
}
