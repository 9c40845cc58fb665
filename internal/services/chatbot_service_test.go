package services

import (
	"strings"
	"testing"
	"unicode/utf8"

	"ctrip-server/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestChatbot(db *gorm.DB) *ChatbotService {
	return NewChatbotService(db, NewAuditService(db))
}

func seedReports(t *testing.T, db *gorm.DB, authorID uuid.UUID, statuses ...models.ReportStatus) {
	t.Helper()
	for i, status := range statuses {
		report := &models.Report{
			Title:       "Seed report",
			Description: "d",
			Type:        models.ReportTypeOther,
			Status:      status,
			Priority:    models.PriorityMedium,
			AuthorID:    &authorID,
		}
		require.NoError(t, db.Create(report).Error, "seed %d", i)
	}
}

func TestAnswer_MatchesSecurityTopic(t *testing.T) {
	db := newTestDB(t)
	bot := newTestChatbot(db)
	student := createTestUser(t, db, "student@veritas.edu", models.RoleStudent)

	answer, err := bot.Answer(student.ID, models.RoleStudent, "I got a phishing email asking me to verify my account")
	require.NoError(t, err)
	assert.Contains(t, answer, "Phishing Email Defense")
}

func TestAnswer_PrivilegedRoleGetsOperationalGuidance(t *testing.T) {
	db := newTestDB(t)
	bot := newTestChatbot(db)
	security := createTestUser(t, db, "security@veritas.edu", models.RoleSecurity)

	answer, err := bot.Answer(security.ID, models.RoleSecurity, "we are dealing with a phishing campaign")
	require.NoError(t, err)
	assert.Contains(t, answer, "Phishing Incident Response Protocol")
}

func TestAnswer_StatsIntentTakesPrecedenceOverTopics(t *testing.T) {
	db := newTestDB(t)
	bot := newTestChatbot(db)
	student := createTestUser(t, db, "student@veritas.edu", models.RoleStudent)
	seedReports(t, db, student.ID, models.ReportStatusOpen, models.ReportStatusResolved)

	// "phishing" would match a topic, but the stats intent wins.
	answer, err := bot.Answer(student.ID, models.RoleStudent, "how many phishing reports do I have")
	require.NoError(t, err)
	assert.Contains(t, answer, "Your Report Statistics")
	assert.Contains(t, answer, "**Your Total Reports**: 2")
}

func TestAnswer_StatsForPrivilegedRoleIsPlatformWide(t *testing.T) {
	db := newTestDB(t)
	bot := newTestChatbot(db)
	student := createTestUser(t, db, "student@veritas.edu", models.RoleStudent)
	security := createTestUser(t, db, "security@veritas.edu", models.RoleSecurity)
	seedReports(t, db, student.ID, models.ReportStatusOpen, models.ReportStatusOpen, models.ReportStatusResolved)
	require.NoError(t, db.Create(&models.Report{
		Title:       "Seed report",
		Description: "d",
		Type:        models.ReportTypeMalware,
		Status:      models.ReportStatusOpen,
		Priority:    models.PriorityCritical,
		AuthorID:    &student.ID,
	}).Error)

	answer, err := bot.Answer(security.ID, models.RoleSecurity, "show report statistics")
	require.NoError(t, err)
	assert.Contains(t, answer, "Platform-Wide Statistics")
	assert.Contains(t, answer, "**Total Reports**: 4")
	assert.Contains(t, answer, "**Open Issues**: 3")
	assert.Contains(t, answer, "**Critical Priority**: 1")
}

func TestAnswer_SummaryIntent(t *testing.T) {
	db := newTestDB(t)
	bot := newTestChatbot(db)
	student := createTestUser(t, db, "student@veritas.edu", models.RoleStudent)
	seedReports(t, db, student.ID, models.ReportStatusOpen)

	answer, err := bot.Answer(student.ID, models.RoleStudent, "show me my reports")
	require.NoError(t, err)
	assert.Contains(t, answer, "Your Recent Reports")
	assert.Contains(t, answer, "Seed report")
}

func TestAnswer_SummaryWithoutReports(t *testing.T) {
	db := newTestDB(t)
	bot := newTestChatbot(db)
	student := createTestUser(t, db, "student@veritas.edu", models.RoleStudent)

	answer, err := bot.Answer(student.ID, models.RoleStudent, "summarize my reports")
	require.NoError(t, err)
	assert.Contains(t, answer, "haven't submitted any reports yet")
}

func TestAnswer_FallbackMentionsPlatform(t *testing.T) {
	db := newTestDB(t)
	bot := newTestChatbot(db)
	student := createTestUser(t, db, "student@veritas.edu", models.RoleStudent)

	answer, err := bot.Answer(student.ID, models.RoleStudent, "what is v-ctrip exactly")
	require.NoError(t, err)
	assert.Contains(t, answer, "About V-CTRIP")
}

func TestAnswer_UnrecognizedQueryFallsBack(t *testing.T) {
	db := newTestDB(t)
	bot := newTestChatbot(db)
	student := createTestUser(t, db, "student@veritas.edu", models.RoleStudent)

	answer, err := bot.Answer(student.ID, models.RoleStudent, "banana bread recipe")
	require.NoError(t, err)
	assert.Contains(t, answer, "banana bread recipe")
	assert.Contains(t, answer, "security topics")
}

func TestAnswer_PersistsExchangeAndAuditsTruncatedQuery(t *testing.T) {
	db := newTestDB(t)
	bot := newTestChatbot(db)
	student := createTestUser(t, db, "student@veritas.edu", models.RoleStudent)

	long := strings.Repeat("a", 80)
	_, err := bot.Answer(student.ID, models.RoleStudent, long)
	require.NoError(t, err)

	var message models.ChatMessage
	require.NoError(t, db.First(&message, "user_id = ?", student.ID).Error)
	assert.Equal(t, long, message.Query, "the full query is persisted")
	assert.NotEmpty(t, message.Response)

	var audit models.AuditLog
	require.NoError(t, db.Where("action = ?", "CHATBOT_QUERY").First(&audit).Error)
	assert.Equal(t, "Query: "+strings.Repeat("a", 50), audit.Details, "the audit detail is capped at 50 characters")
}

func TestAnswer_TruncationKeepsValidUTF8(t *testing.T) {
	db := newTestDB(t)
	bot := newTestChatbot(db)
	student := createTestUser(t, db, "student@veritas.edu", models.RoleStudent)

	// 49 ASCII characters followed by multibyte runes: a byte-wise cut
	// at 50 would split the first one.
	long := strings.Repeat("a", 49) + strings.Repeat("ü", 10)
	_, err := bot.Answer(student.ID, models.RoleStudent, long)
	require.NoError(t, err)

	var audit models.AuditLog
	require.NoError(t, db.Where("action = ?", "CHATBOT_QUERY").First(&audit).Error)
	assert.Equal(t, "Query: "+strings.Repeat("a", 49)+"ü", audit.Details)
	assert.True(t, utf8.ValidString(audit.Details))
}

func TestHistory_NewestFirstWithLimit(t *testing.T) {
	db := newTestDB(t)
	bot := newTestChatbot(db)
	student := createTestUser(t, db, "student@veritas.edu", models.RoleStudent)

	for _, q := range []string{"first question", "second question", "third question"} {
		_, err := bot.Answer(student.ID, models.RoleStudent, q)
		require.NoError(t, err)
	}

	history, err := bot.History(student.ID, 2)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, "third question", history[0].Query)
	assert.Equal(t, "second question", history[1].Query)
}
