package services

import (
	"fmt"
	"strings"

	"ctrip-server/internal/models"
	"ctrip-server/internal/repositories"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// securityTopic is one advice entry. Each topic carries its trigger
// keywords and a response branched on role privilege.
type securityTopic struct {
	id       string
	keywords []string
	respond  func(privileged bool) string
}

type ChatbotService struct {
	chatRepo   *repositories.ChatRepository
	reportRepo *repositories.ReportRepository
	auditSvc   *AuditService
	topics     []securityTopic
}

func NewChatbotService(db *gorm.DB, auditSvc *AuditService) *ChatbotService {
	return &ChatbotService{
		chatRepo:   repositories.NewChatRepository(db),
		reportRepo: repositories.NewReportRepository(db),
		auditSvc:   auditSvc,
		topics:     securityTopics(),
	}
}

// Answer resolves a query to a response. Precedence: stats intent,
// then summary intent, then the best-scoring topic, then fallback.
// Every exchange is persisted and audited.
func (s *ChatbotService) Answer(userID uuid.UUID, role models.Role, query string) (string, error) {
	lower := strings.ToLower(query)
	privileged := role.IsPrivileged()

	var best *securityTopic
	bestScore := 0
	for i := range s.topics {
		score := matchScore(lower, s.topics[i].keywords)
		if score > bestScore {
			bestScore = score
			best = &s.topics[i]
		}
	}

	isStats := containsAny(lower, []string{"how many", "stats", "count", "numbers", "statistics", "total"})
	isSummary := containsAny(lower, []string{"summarize", "summary", "latest", "recent", "overview", "show me", "my reports", "list reports"})

	var answer string
	var err error
	switch {
	case isStats:
		answer, err = s.statsAnswer(userID, privileged)
	case isSummary:
		answer, err = s.summaryAnswer(userID, privileged)
	case best != nil && bestScore >= 1:
		answer = best.respond(privileged)
	default:
		answer = s.fallbackAnswer(query, lower)
	}
	if err != nil {
		return "", err
	}

	message := &models.ChatMessage{
		UserID:   userID,
		Role:     role,
		Query:    query,
		Response: answer,
	}
	if err := s.chatRepo.Create(message); err != nil {
		return "", fmt.Errorf("failed to persist chat message: %w", err)
	}

	if err := s.auditSvc.Record(&userID, "CHATBOT_QUERY", "Query: "+truncate(query, 50), "", ""); err != nil {
		return "", err
	}

	return answer, nil
}

// History returns the caller's most recent exchanges, newest first.
func (s *ChatbotService) History(userID uuid.UUID, limit int) ([]models.ChatMessage, error) {
	return s.chatRepo.ListByUser(userID, limit)
}

// matchScore counts keyword hits. Keywords longer than four characters
// are more specific and count double.
func matchScore(query string, keywords []string) int {
	score := 0
	for _, keyword := range keywords {
		if strings.Contains(query, keyword) {
			if len(keyword) > 4 {
				score += 2
			} else {
				score++
			}
		}
	}
	return score
}

func containsAny(query string, keywords []string) bool {
	for _, keyword := range keywords {
		if strings.Contains(query, keyword) {
			return true
		}
	}
	return false
}

// truncate cuts s to at most n runes without splitting a multibyte
// character.
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

func (s *ChatbotService) statsAnswer(userID uuid.UUID, privileged bool) (string, error) {
	if privileged {
		total, err := s.reportRepo.Count()
		if err != nil {
			return "", fmt.Errorf("failed to count reports: %w", err)
		}
		open, err := s.reportRepo.CountByStatus(models.ReportStatusOpen)
		if err != nil {
			return "", fmt.Errorf("failed to count open reports: %w", err)
		}
		resolved, err := s.reportRepo.CountByStatus(models.ReportStatusResolved)
		if err != nil {
			return "", fmt.Errorf("failed to count resolved reports: %w", err)
		}
		critical, err := s.reportRepo.CountByPriority(models.PriorityCritical)
		if err != nil {
			return "", fmt.Errorf("failed to count critical reports: %w", err)
		}
		return fmt.Sprintf("**Platform-Wide Statistics**\n\n"+
			"**Total Reports**: %d\n"+
			"**Open Issues**: %d\n"+
			"**Resolved**: %d\n"+
			"**Critical Priority**: %d", total, open, resolved, critical), nil
	}

	mine, err := s.reportRepo.ListByAuthor(userID)
	if err != nil {
		return "", fmt.Errorf("failed to list reports: %w", err)
	}
	var open, resolved int
	for _, r := range mine {
		switch r.Status {
		case models.ReportStatusOpen:
			open++
		case models.ReportStatusResolved:
			resolved++
		}
	}
	return fmt.Sprintf("**Your Report Statistics**\n\n"+
		"**Your Total Reports**: %d\n"+
		"**Open**: %d\n"+
		"**Resolved**: %d\n\n"+
		"_Based on reports you have submitted._", len(mine), open, resolved), nil
}

func (s *ChatbotService) summaryAnswer(userID uuid.UUID, privileged bool) (string, error) {
	const take = 5

	if privileged {
		reports, _, err := s.reportRepo.List(1, take, "", "", "")
		if err != nil {
			return "", fmt.Errorf("failed to list reports: %w", err)
		}
		if len(reports) == 0 {
			return "No reports found in the system.", nil
		}
		var b strings.Builder
		b.WriteString("**Latest Threat Reports (System-Wide)**\n\n")
		for _, r := range reports {
			author := "Anonymous"
			if !r.IsAnonymous && r.Author != nil {
				author = r.Author.Email
			}
			fmt.Fprintf(&b, "• [%s] **%s** (%s)\n  _Author: %s_\n\n", r.Priority, r.Title, r.Status, author)
		}
		fmt.Fprintf(&b, "*Showing last %d reports.*", take)
		return b.String(), nil
	}

	reports, err := s.reportRepo.ListByAuthor(userID)
	if err != nil {
		return "", fmt.Errorf("failed to list reports: %w", err)
	}
	if len(reports) == 0 {
		return "**Your Reports**\n\nYou haven't submitted any reports yet.\n\nUse the **Submit Report** page to report security incidents.", nil
	}
	if len(reports) > take {
		reports = reports[:take]
	}
	var b strings.Builder
	b.WriteString("**Your Recent Reports**\n\n")
	for _, r := range reports {
		fmt.Fprintf(&b, "• [%s] **%s** (%s)\n", r.Priority, r.Title, r.Status)
	}
	b.WriteString("\n_Based on reports you submitted._")
	return b.String(), nil
}

func (s *ChatbotService) fallbackAnswer(original, lower string) string {
	wantsToReport := containsAny(lower, []string{"report", "submit", "notify", "tell"})
	needsHelp := containsAny(lower, []string{"help", "assist", "support", "confused", "don't know"})
	askingAboutPlatform := containsAny(lower, []string{"this platform", "v-ctrip", "this system", "how does"})

	if askingAboutPlatform {
		return "**About V-CTRIP**\n\n" +
			"The Veritas Cyber Threat Reporting & Intelligence Platform helps you:\n\n" +
			"• **Report** security incidents and suspicious activity\n" +
			"• **Track** the status of your reports\n" +
			"• **Learn** about security best practices\n" +
			"• **Stay informed** about campus security alerts\n\n" +
			"How can I help you today?"
	}

	if wantsToReport {
		return "**Ready to Report an Incident?**\n\n" +
			"Use the **Submit Report** page in the navigation to:\n" +
			"• Describe the security incident\n" +
			"• Select the type and priority\n" +
			"• Attach evidence if available\n" +
			"• Submit anonymously if preferred\n\n" +
			"Would you like guidance on a specific type of incident?"
	}

	if needsHelp {
		return "**I'm Here to Help!**\n\n" +
			"I can assist you with:\n\n" +
			"**Security Questions:**\n" +
			"• \"What should I do if I clicked a suspicious link?\"\n" +
			"• \"How do I protect myself from phishing?\"\n" +
			"• \"I think my account was hacked\"\n\n" +
			"**Platform Questions:**\n" +
			"• \"How do I submit a report?\"\n" +
			"• \"Show me my reports\"\n" +
			"• \"How many reports are there?\"\n\n" +
			"Just ask in your own words!"
	}

	return fmt.Sprintf("**I understand you're asking about: %q**\n\n", original) +
		"I can help with many security topics including:\n\n" +
		"* Account security & passwords\n" +
		"* Phishing & email scams\n" +
		"* Malware & ransomware\n" +
		"* Mobile & device security\n" +
		"* Remote work security\n" +
		"* Incident reporting\n\n" +
		"Could you tell me more about what you need help with?"
}
