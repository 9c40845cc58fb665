package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Role is the closed set of user roles. Role checks go through the
// helper methods below instead of ad-hoc string comparisons.
type Role string

const (
	RoleStudent  Role = "STUDENT"
	RoleStaff    Role = "STAFF"
	RoleSecurity Role = "SECURITY"
	RoleAdmin    Role = "ADMIN"
)

// Valid reports whether r is one of the defined roles.
func (r Role) Valid() bool {
	switch r {
	case RoleStudent, RoleStaff, RoleSecurity, RoleAdmin:
		return true
	}
	return false
}

// IsPrivileged reports whether the role sees platform-wide data and
// operational chatbot responses.
func (r Role) IsPrivileged() bool {
	return r == RoleSecurity || r == RoleAdmin
}

// IsStaff reports whether the role belongs to the staff cohort
// (report triage, lab access, staff-wide notifications).
func (r Role) IsStaff() bool {
	return r == RoleStaff || r == RoleSecurity || r == RoleAdmin
}

// StaffRoles is the cohort notified about every new report.
func StaffRoles() []Role {
	return []Role{RoleStaff, RoleSecurity, RoleAdmin}
}

// ReportType classifies the kind of incident being reported.
type ReportType string

const (
	ReportTypePhishing   ReportType = "PHISHING"
	ReportTypeMalware    ReportType = "MALWARE"
	ReportTypeHarassment ReportType = "HARASSMENT"
	ReportTypeDataLeak   ReportType = "DATA_LEAK"
	ReportTypeOther      ReportType = "OTHER"
)

func (t ReportType) Valid() bool {
	switch t {
	case ReportTypePhishing, ReportTypeMalware, ReportTypeHarassment, ReportTypeDataLeak, ReportTypeOther:
		return true
	}
	return false
}

// ReportStatus is the report lifecycle state. The API does not enforce
// transition legality server-side; any triage role may set any status.
type ReportStatus string

const (
	ReportStatusOpen          ReportStatus = "OPEN"
	ReportStatusInvestigating ReportStatus = "INVESTIGATING"
	ReportStatusResolved      ReportStatus = "RESOLVED"
	ReportStatusDismissed     ReportStatus = "DISMISSED"
)

func (s ReportStatus) Valid() bool {
	switch s {
	case ReportStatusOpen, ReportStatusInvestigating, ReportStatusResolved, ReportStatusDismissed:
		return true
	}
	return false
}

// ReportPriority is the triage priority of a report.
type ReportPriority string

const (
	PriorityLow      ReportPriority = "LOW"
	PriorityMedium   ReportPriority = "MEDIUM"
	PriorityHigh     ReportPriority = "HIGH"
	PriorityCritical ReportPriority = "CRITICAL"
)

func (p ReportPriority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical:
		return true
	}
	return false
}

// IsUrgent reports whether reports of this priority are pushed over the
// realtime channel at creation time.
func (p ReportPriority) IsUrgent() bool {
	return p == PriorityHigh || p == PriorityCritical
}

// InstanceStatus is the lifecycle state of an investigation sandbox.
type InstanceStatus string

const (
	InstanceProvisioning InstanceStatus = "PROVISIONING"
	InstanceRunning      InstanceStatus = "RUNNING"
	InstanceStopped      InstanceStatus = "STOPPED"
	InstanceTerminated   InstanceStatus = "TERMINATED"
)

// User represents a portal account.
type User struct {
	ID                  uuid.UUID `json:"id" gorm:"type:uuid;primary_key"`
	Email               string    `json:"email" gorm:"not null;uniqueIndex;size:255"`
	PasswordHash        string    `json:"-" gorm:"not null;size:255"`
	Role                Role      `json:"role" gorm:"not null;default:'STUDENT';size:20;index"`
	IsLocked            bool      `json:"is_locked" gorm:"default:false"`
	FailedLoginAttempts int       `json:"failed_login_attempts" gorm:"default:0"`
	HashedRefreshToken  *string   `json:"-" gorm:"size:255"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`

	Reports       []Report       `json:"reports,omitempty" gorm:"foreignKey:AuthorID"`
	Notifications []Notification `json:"notifications,omitempty" gorm:"foreignKey:UserID"`
}

// PublicUser is the author shape exposed on report and comment reads.
type PublicUser struct {
	ID    uuid.UUID `json:"id"`
	Email string    `json:"email"`
	Role  Role      `json:"role"`
}

// Public strips everything but the identity fields.
func (u *User) Public() *PublicUser {
	if u == nil {
		return nil
	}
	return &PublicUser{ID: u.ID, Email: u.Email, Role: u.Role}
}

// Report represents a submitted security-incident ticket.
// When IsAnonymous is true the author is suppressed on every read path,
// regardless of what the row carries.
type Report struct {
	ID          uuid.UUID      `json:"id" gorm:"type:uuid;primary_key"`
	Title       string         `json:"title" gorm:"not null;size:500"`
	Description string         `json:"description" gorm:"not null;type:text"`
	Type        ReportType     `json:"type" gorm:"not null;size:20;index"`
	Status      ReportStatus   `json:"status" gorm:"not null;default:'OPEN';size:20;index"`
	Priority    ReportPriority `json:"priority" gorm:"not null;default:'MEDIUM';size:20;index"`
	IsAnonymous bool           `json:"is_anonymous" gorm:"default:false"`
	AuthorID    *uuid.UUID     `json:"author_id" gorm:"type:uuid;index"`
	CreatedAt   time.Time      `json:"created_at" gorm:"index"`
	UpdatedAt   time.Time      `json:"updated_at"`

	Author   *User                  `json:"-" gorm:"foreignKey:AuthorID"`
	Evidence []Evidence             `json:"evidence,omitempty" gorm:"foreignKey:ReportID"`
	Comments []Comment              `json:"comments,omitempty" gorm:"foreignKey:ReportID"`
	Votes    []Vote                 `json:"votes,omitempty" gorm:"foreignKey:ReportID"`
	Instance *InvestigationInstance `json:"instance,omitempty" gorm:"foreignKey:ReportID"`

	// AuthorPublic is the only author shape that leaves the API. It is
	// populated from Author at the read boundary and never persisted.
	AuthorPublic *PublicUser `json:"author,omitempty" gorm:"-"`
}

// Evidence is an uploaded file attached to a report. Immutable after creation.
type Evidence struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primary_key"`
	ReportID  uuid.UUID `json:"report_id" gorm:"type:uuid;not null;index"`
	FileURL   string    `json:"file_url" gorm:"not null;size:500"`
	FileType  string    `json:"file_type" gorm:"size:100"`
	FileSize  int64     `json:"file_size"`
	CreatedAt time.Time `json:"created_at"`
}

// Comment is an append-only discussion entry on a report.
type Comment struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primary_key"`
	ReportID  uuid.UUID `json:"report_id" gorm:"type:uuid;not null;index"`
	AuthorID  uuid.UUID `json:"author_id" gorm:"type:uuid;not null;index"`
	Content   string    `json:"content" gorm:"not null;type:text"`
	CreatedAt time.Time `json:"created_at"`

	Author *User `json:"-" gorm:"foreignKey:AuthorID"`

	AuthorPublic *PublicUser `json:"author,omitempty" gorm:"-"`
}

// Vote is one user's vote on one report. The composite key makes the
// write an upsert: last value wins, never an accumulating tally.
type Vote struct {
	ReportID  uuid.UUID `json:"report_id" gorm:"type:uuid;primary_key"`
	UserID    uuid.UUID `json:"user_id" gorm:"type:uuid;primary_key"`
	Value     int       `json:"value" gorm:"not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// InvestigationInstance is a simulated sandbox tied to a report.
// At most one non-TERMINATED instance may exist per report.
type InvestigationInstance struct {
	ID         uuid.UUID      `json:"id" gorm:"type:uuid;primary_key"`
	ReportID   uuid.UUID      `json:"report_id" gorm:"type:uuid;not null;index"`
	CreatorID  uuid.UUID      `json:"creator_id" gorm:"type:uuid;not null;index"`
	Name       string         `json:"name" gorm:"not null;size:255"`
	TargetIP   string         `json:"target_ip" gorm:"size:45"`
	SSHCommand string         `json:"ssh_command" gorm:"size:255"`
	Status     InstanceStatus `json:"status" gorm:"not null;default:'PROVISIONING';size:20;index"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`

	Report *Report `json:"report,omitempty" gorm:"foreignKey:ReportID"`
}

// IsActive reports whether the instance still occupies its report's slot.
func (i *InvestigationInstance) IsActive() bool {
	return i.Status != InstanceTerminated
}

// Notification is an in-app message for a single user.
type Notification struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primary_key"`
	UserID    uuid.UUID `json:"user_id" gorm:"type:uuid;not null;index"`
	Title     string    `json:"title" gorm:"not null;size:255"`
	Message   string    `json:"message" gorm:"not null;type:text"`
	IsRead    bool      `json:"is_read" gorm:"default:false;index"`
	CreatedAt time.Time `json:"created_at" gorm:"index"`
}

// AuditLog is an append-only record of a user-visible action.
// Rows are never mutated or deleted.
type AuditLog struct {
	ID        uuid.UUID  `json:"id" gorm:"type:uuid;primary_key"`
	UserID    *uuid.UUID `json:"user_id" gorm:"type:uuid;index"`
	Action    string     `json:"action" gorm:"not null;size:100;index"`
	Details   string     `json:"details" gorm:"type:text"`
	IPAddress string     `json:"ip_address" gorm:"size:45"`
	UserAgent string     `json:"user_agent" gorm:"type:text"`
	CreatedAt time.Time  `json:"created_at" gorm:"index"`

	User *User `json:"user,omitempty" gorm:"foreignKey:UserID"`
}

// ChatMessage is one persisted chatbot exchange.
type ChatMessage struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primary_key"`
	UserID    uuid.UUID `json:"user_id" gorm:"type:uuid;not null;index"`
	Role      Role      `json:"role" gorm:"not null;size:20"`
	Query     string    `json:"query" gorm:"not null;type:text"`
	Response  string    `json:"response" gorm:"not null;type:text"`
	CreatedAt time.Time `json:"created_at"`
}

// Custom table names
func (User) TableName() string                  { return "users" }
func (Report) TableName() string                { return "reports" }
func (Evidence) TableName() string              { return "evidence" }
func (Comment) TableName() string               { return "comments" }
func (Vote) TableName() string                  { return "votes" }
func (InvestigationInstance) TableName() string { return "investigation_instances" }
func (Notification) TableName() string          { return "notifications" }
func (AuditLog) TableName() string              { return "audit_logs" }
func (ChatMessage) TableName() string           { return "chat_messages" }

// BeforeCreate hooks
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

func (r *Report) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

func (e *Evidence) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}

func (c *Comment) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

func (i *InvestigationInstance) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

func (n *Notification) BeforeCreate(tx *gorm.DB) error {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	return nil
}

func (a *AuditLog) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

func (m *ChatMessage) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
