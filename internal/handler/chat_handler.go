package handler

import (
	"fmt"
	"io"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/xxxsen/docchat/internal/model"
	"github.com/xxxsen/docchat/internal/pkg/errcode"
	appErr "github.com/xxxsen/docchat/internal/pkg/errors"
	"github.com/xxxsen/docchat/internal/pkg/response"
	"github.com/xxxsen/docchat/internal/service"
)

type ChatHandler struct {
	sessions *service.SessionService
	chat     *service.ChatService
}

type chatJSONRequest struct {
	SessionID string `json:"session_id"`
	Message   string `json:"message"`
	TopK      int    `json:"top_k"`
}

type chatResponse struct {
	SessionID    string            `json:"session_id"`
	Reply        string            `json:"reply"`
	Mode         string            `json:"mode"`
	Hits         []model.SearchHit `json:"hits,omitempty"`
	SavedFiles   []string          `json:"saved_files,omitempty"`
	UploadErrors []string          `json:"upload_errors,omitempty"`
}

func NewChatHandler(sessions *service.SessionService, chat *service.ChatService) *ChatHandler {
	return &ChatHandler{sessions: sessions, chat: chat}
}

// Chat is one conversational turn. It accepts JSON for plain messages and
// multipart form data when files ride along with the message; uploaded
// files join the session before the message is answered.
func (h *ChatHandler) Chat(c *gin.Context) {
	var req chatJSONRequest
	isMultipart := strings.HasPrefix(c.ContentType(), "multipart/form-data")
	if isMultipart {
		req.SessionID = c.PostForm("session_id")
		req.Message = c.PostForm("message")
	} else if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, errcode.ErrInvalid, "invalid request body")
		return
	}

	ses, err := h.sessions.Ensure(c.Request.Context(), strings.TrimSpace(req.SessionID))
	if err != nil {
		handleError(c, err)
		return
	}

	var saved []string
	var uploadErrors []string
	if isMultipart {
		form, err := c.MultipartForm()
		if err != nil {
			response.Error(c, errcode.ErrInvalidFile, "invalid multipart form")
			return
		}
		for _, fh := range form.File["files"] {
			opened, err := fh.Open()
			if err != nil {
				uploadErrors = append(uploadErrors, fmt.Sprintf("%s: unreadable", fh.Filename))
				continue
			}
			data, err := io.ReadAll(opened)
			opened.Close()
			if err != nil {
				uploadErrors = append(uploadErrors, fmt.Sprintf("%s: unreadable", fh.Filename))
				continue
			}
			doc, err := h.sessions.AddFile(c.Request.Context(), ses.ID, fh.Filename, fh.Header.Get("Content-Type"), data)
			if err != nil {
				uploadErrors = append(uploadErrors, fmt.Sprintf("%s: %s", fh.Filename, uploadErrorText(err)))
				continue
			}
			saved = append(saved, doc.Name)
		}
	}

	reply, err := h.chat.Handle(c.Request.Context(), ses.ID, req.Message, req.TopK)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, chatResponse{
		SessionID:    ses.ID,
		Reply:        reply.Reply,
		Mode:         reply.Mode,
		Hits:         reply.Hits,
		SavedFiles:   saved,
		UploadErrors: uploadErrors,
	})
}

func uploadErrorText(err error) string {
	switch {
	case appErr.IsUnsupportedFile(err):
		return "tipo de archivo no permitido"
	case err == appErr.ErrFileTooLarge:
		return "supera el tamaño máximo"
	case err == appErr.ErrConflict:
		return "ya existe un archivo con ese nombre"
	default:
		return "no se pudo guardar"
	}
}
