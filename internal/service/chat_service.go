package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/xxxsen/docchat/internal/ai"
	"github.com/xxxsen/docchat/internal/model"
	"github.com/xxxsen/docchat/internal/pkg/timeutil"
	"github.com/xxxsen/docchat/internal/repo"
	"github.com/xxxsen/docchat/internal/retrieval"
)

const defaultMaxPromptChars = 6000

type ChatService struct {
	sessions   *SessionService
	messages   *repo.MessageRepo
	engine     *retrieval.Engine
	gen        ai.IGenerator
	genTimeout time.Duration
	maxPrompt  int
}

type ChatReply struct {
	SessionID string            `json:"session_id"`
	Reply     string            `json:"reply"`
	Mode      string            `json:"mode"`
	Hits      []model.SearchHit `json:"hits,omitempty"`
	UsedFiles []string          `json:"used_files,omitempty"`
}

type SearchResult struct {
	Hits     []model.SearchHit `json:"hits"`
	Reason   string            `json:"reason"`
	Strategy string            `json:"strategy"`
}

func NewChatService(sessions *SessionService, messages *repo.MessageRepo, engine *retrieval.Engine, gen ai.IGenerator, genTimeout time.Duration, maxPromptChars int) *ChatService {
	if genTimeout <= 0 {
		genTimeout = 30 * time.Second
	}
	if maxPromptChars <= 0 {
		maxPromptChars = defaultMaxPromptChars
	}
	return &ChatService{
		sessions:   sessions,
		messages:   messages,
		engine:     engine,
		gen:        gen,
		genTimeout: genTimeout,
		maxPrompt:  maxPromptChars,
	}
}

// Handle answers one chat turn. An empty message reports session status;
// otherwise the documents are searched first and the reply degrades to
// plain conversation when nothing matches.
func (s *ChatService) Handle(ctx context.Context, sessionID, message string, topK int) (*ChatReply, error) {
	logger := logutil.GetLogger(ctx).With(zap.String("session_id", sessionID))
	message = strings.TrimSpace(message)
	snapshot, err := s.sessions.Snapshot(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if message == "" {
		return &ChatReply{
			SessionID: sessionID,
			Reply:     statusReply(snapshot),
			Mode:      model.ModeStatus,
			UsedFiles: documentNames(snapshot),
		}, nil
	}

	reply := &ChatReply{SessionID: sessionID, UsedFiles: documentNames(snapshot)}
	if len(snapshot) > 0 {
		resp := s.engine.Search(snapshot, message, topK)
		if resp.Reason == retrieval.ReasonOK {
			reply.Mode = model.ModeDocSearch
			reply.Hits = toSearchHits(resp.Results)
			reply.Reply = s.answerFromHits(ctx, message, reply.Hits)
		} else {
			reply.Mode = model.ModeChatFallback
			reply.Reply = smalltalkReply(message) + "\n\nNo encontré coincidencias claras en los documentos de esta sesión. Prueba con otras palabras o sube el archivo que te interese."
		}
	} else {
		reply.Mode = model.ModeChat
		reply.Reply = smalltalkReply(message)
	}

	now := timeutil.NowUnix()
	userMsg := &model.Message{ID: newID(), SessionID: sessionID, Role: model.RoleUser, Content: message, Ctime: now}
	assistantMsg := &model.Message{ID: newID(), SessionID: sessionID, Role: model.RoleAssistant, Mode: reply.Mode, Content: reply.Reply, Ctime: now}
	if err := s.messages.Append(ctx, userMsg); err != nil {
		logger.Error("persist user message failed", zap.Error(err))
		return nil, err
	}
	if err := s.messages.Append(ctx, assistantMsg); err != nil {
		logger.Error("persist assistant message failed", zap.Error(err))
		return nil, err
	}
	return reply, nil
}

// Search runs a bare document search without touching chat history. The
// session must already exist.
func (s *ChatService) Search(ctx context.Context, sessionID, query string, topK int) (*SearchResult, error) {
	if _, err := s.sessions.Get(ctx, sessionID); err != nil {
		return nil, err
	}
	snapshot, err := s.sessions.Snapshot(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	resp := s.engine.Search(snapshot, query, topK)
	return &SearchResult{
		Hits:     toSearchHits(resp.Results),
		Reason:   string(resp.Reason),
		Strategy: string(resp.Strategy),
	}, nil
}

func (s *ChatService) History(ctx context.Context, sessionID string, limit int) ([]model.Message, error) {
	if _, err := s.sessions.Get(ctx, sessionID); err != nil {
		return nil, err
	}
	return s.messages.ListBySession(ctx, sessionID, limit)
}

// answerFromHits builds the extractive reply and, when a generator is
// configured, tries to rewrite it into a grounded natural answer. Any
// generation failure falls back to the extractive form.
func (s *ChatService) answerFromHits(ctx context.Context, question string, hits []model.SearchHit) string {
	extractive := formatHits(hits)
	if s.gen == nil {
		return extractive
	}
	genCtx, cancel := context.WithTimeout(ctx, s.genTimeout)
	defer cancel()
	answer, err := s.gen.Generate(genCtx, s.buildPrompt(question, hits))
	if err != nil {
		logutil.GetLogger(ctx).Warn("ai generation failed, using extractive reply", zap.Error(err))
		return extractive
	}
	answer = strings.TrimSpace(answer)
	if answer == "" {
		return extractive
	}
	return answer
}

func (s *ChatService) buildPrompt(question string, hits []model.SearchHit) string {
	var sb strings.Builder
	sb.WriteString("Eres un asistente documental. Responde en español a la pregunta usando solo los fragmentos citados. Si los fragmentos no bastan, dilo.\n\nFragmentos:\n")
	for _, hit := range hits {
		line := fmt.Sprintf("- %s (%s)\n", hit.Snippet, hitSource(hit))
		if sb.Len()+len(line) > s.maxPrompt {
			break
		}
		sb.WriteString(line)
	}
	sb.WriteString("\nPregunta: ")
	sb.WriteString(question)
	return sb.String()
}

func formatHits(hits []model.SearchHit) string {
	var sb strings.Builder
	sb.WriteString("Esto es lo más relevante que encontré en tus documentos:\n")
	for _, hit := range hits {
		sb.WriteString(fmt.Sprintf("\n• %s\n  (%s)", hit.Snippet, hitSource(hit)))
	}
	sb.WriteString("\n\n¿Quieres que busque algo más específico?")
	return sb.String()
}

func hitSource(hit model.SearchHit) string {
	if hit.PageNumber != nil {
		return fmt.Sprintf("%s, página %d", hit.DocumentName, *hit.PageNumber)
	}
	return hit.DocumentName
}

func statusReply(snapshot []retrieval.Document) string {
	if len(snapshot) == 0 {
		return "Esta sesión todavía no tiene documentos. Sube un archivo y podré buscar en él."
	}
	names := documentNames(snapshot)
	return fmt.Sprintf("Tienes %d documento(s) en esta sesión: %s. Pregúntame algo sobre ellos.", len(names), strings.Join(names, ", "))
}

func documentNames(snapshot []retrieval.Document) []string {
	if len(snapshot) == 0 {
		return nil
	}
	names := make([]string, 0, len(snapshot))
	for _, doc := range snapshot {
		names = append(names, doc.Name)
	}
	return names
}

func toSearchHits(results []retrieval.Result) []model.SearchHit {
	if len(results) == 0 {
		return nil
	}
	hits := make([]model.SearchHit, 0, len(results))
	for _, r := range results {
		hit := model.SearchHit{
			DocumentName: r.Document,
			Score:        r.Score,
			Snippet:      r.Snippet,
		}
		if r.Page > 0 {
			page := r.Page
			hit.PageNumber = &page
		}
		hits = append(hits, hit)
	}
	return hits
}
