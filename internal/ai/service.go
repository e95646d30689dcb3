package ai

import (
	"context"
	"fmt"
	"strings"
)

// ============================
// 🟡 Generator Requests
type ChatRequest struct {
	Messages []Message `json:"messages"`
	Message  string    `json:"message"`
}

type EmailReplyRequest struct {
	OriginalEmail string `json:"originalEmail"`
	Tone          string `json:"tone"`
	KeyPoints     string `json:"keyPoints"`
}

type LinkedInPostRequest struct {
	Topic    string `json:"topic"`
	Tone     string `json:"tone"`
	Audience string `json:"audience"`
}

type BusinessPlanRequest struct {
	BusinessIdea string `json:"businessIdea"`
	Industry     string `json:"industry"`
	TargetMarket string `json:"targetMarket"`
}

type StartupNamesRequest struct {
	Industry string `json:"industry"`
	Keywords string `json:"keywords"`
	Count    int    `json:"count"`
}

type ProjectIdeasRequest struct {
	Field      string `json:"field"`
	SkillLevel string `json:"skillLevel"`
	Count      int    `json:"count"`
}

const chatSystemPrompt = "You are a helpful assistant on a software engineer's portfolio site. " +
	"Answer questions about software, careers and technology concisely and honestly."

type Service struct {
	Client      *Client
	IdeasParser ItemParser
	NamesParser ItemParser
}

func NewService(client *Client) *Service {
	return &Service{
		Client:      client,
		IdeasParser: NewProjectIdeasParser(),
		NamesParser: NewStartupNamesParser(),
	}
}

// ===========================
// 💬 Chat prepends the system preamble, keeps the caller's prior turns and
// appends the new message. History lives client-side; nothing is stored here.
func (s *Service) ChatMessages(req *ChatRequest) []Message {
	messages := make([]Message, 0, len(req.Messages)+2)
	messages = append(messages, Message{Role: "system", Content: chatSystemPrompt})
	for _, m := range req.Messages {
		if m.Role == "" || m.Content == "" {
			continue
		}
		messages = append(messages, m)
	}
	if strings.TrimSpace(req.Message) != "" {
		messages = append(messages, Message{Role: "user", Content: req.Message})
	}
	return messages
}

// ===========================
// ✉️ Email reply generator
func (s *Service) EmailReply(ctx context.Context, req *EmailReplyRequest) (string, error) {
	tone := req.Tone
	if tone == "" {
		tone = "professional"
	}
	prompt := fmt.Sprintf("Write a %s reply to the following email.\n\nEmail:\n%s\n", tone, req.OriginalEmail)
	if req.KeyPoints != "" {
		prompt += "\nMake sure the reply covers these points:\n" + req.KeyPoints
	}
	return s.complete(ctx, "You are an assistant that drafts clear, well-structured email replies.", prompt)
}

// ===========================
// 💼 LinkedIn post generator
func (s *Service) LinkedInPost(ctx context.Context, req *LinkedInPostRequest) (string, error) {
	tone := req.Tone
	if tone == "" {
		tone = "professional"
	}
	prompt := fmt.Sprintf("Write a %s LinkedIn post about: %s.", tone, req.Topic)
	if req.Audience != "" {
		prompt += " The audience is " + req.Audience + "."
	}
	prompt += " Keep it under 200 words and end with 3 relevant hashtags."
	return s.complete(ctx, "You are a social media copywriter.", prompt)
}

// ===========================
// 📈 Business plan generator
func (s *Service) BusinessPlan(ctx context.Context, req *BusinessPlanRequest) (string, error) {
	prompt := fmt.Sprintf(
		"Write a concise business plan for the following idea: %s.\n"+
			"Industry: %s\nTarget market: %s\n\n"+
			"Structure it with these sections: Executive Summary, Market Analysis, "+
			"Product, Marketing Strategy, Financial Outlook.",
		req.BusinessIdea, req.Industry, req.TargetMarket)
	return s.complete(ctx, "You are a startup advisor who writes pragmatic business plans.", prompt)
}

// ===========================
// 🚀 Startup names generator. Output goes through the lenient parser.
func (s *Service) StartupNames(ctx context.Context, req *StartupNamesRequest) ([]GeneratedItem, bool, error) {
	count := req.Count
	if count < 1 || count > 20 {
		count = 10
	}
	prompt := fmt.Sprintf("Suggest %d startup names for a company in the %s industry.", count, req.Industry)
	if req.Keywords != "" {
		prompt += " Incorporate or evoke these keywords: " + req.Keywords + "."
	}
	prompt += " Return a numbered list, one name per line, with a short tagline after a dash."

	raw, err := s.complete(ctx, "You are a branding expert.", prompt)
	if err != nil {
		return nil, false, err
	}
	items, structured := s.NamesParser.Parse(raw)
	return items, structured, nil
}

// ===========================
// 💡 Project ideas generator. Output goes through the lenient parser.
func (s *Service) ProjectIdeas(ctx context.Context, req *ProjectIdeasRequest) ([]GeneratedItem, bool, error) {
	count := req.Count
	if count < 1 || count > 20 {
		count = 5
	}
	level := req.SkillLevel
	if level == "" {
		level = "intermediate"
	}
	prompt := fmt.Sprintf(
		"Suggest %d %s-level project ideas in the field of %s. "+
			"Return a numbered list with the project name followed by a dash and a one-sentence description.",
		count, level, req.Field)

	raw, err := s.complete(ctx, "You are a mentor who suggests practical portfolio projects.", prompt)
	if err != nil {
		return nil, false, err
	}
	items, structured := s.IdeasParser.Parse(raw)
	return items, structured, nil
}

func (s *Service) complete(ctx context.Context, system, user string) (string, error) {
	return s.Client.Complete(ctx, []Message{
		{Role: "system", Content: system},
		{Role: "user", Content: user},
	})
}
