package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Base model with common fields
type BaseModel struct {
	ID        uint      `gorm:"primaryKey"`
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// Contact represents an individual person (a lead or a customer contact)
type Contact struct {
	BaseModel
	FirstName        string          `gorm:"type:varchar(100);not null;column:first_name"`
	LastName         string          `gorm:"type:varchar(100);not null;column:last_name"`
	Email            string          `gorm:"type:varchar(255);not null;uniqueIndex"`
	Phone            string          `gorm:"type:varchar(50)"`
	CompanyID        *uint           `gorm:"index;column:company_id"`
	Company          *Company        `gorm:"foreignKey:CompanyID;constraint:OnDelete:SET NULL"`
	Salesperson      string          `gorm:"type:varchar(200)"`
	UTMSource        string          `gorm:"type:varchar(200);column:utm_source"`
	UTMMedium        string          `gorm:"type:varchar(200);column:utm_medium"`
	UTMCampaign      string          `gorm:"type:varchar(200);column:utm_campaign"`
	UTMTerm          string          `gorm:"type:varchar(200);column:utm_term"`
	UTMContent       string          `gorm:"type:varchar(200);column:utm_content"`
	LandingPage      string          `gorm:"type:varchar(500);column:landing_page"`
	Referrer         string          `gorm:"type:varchar(500)"`
	DealValue        decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0;column:deal_value"`
	DealClosedDate   *time.Time      `gorm:"type:date;column:deal_closed_date"`
	LastActivityDate *time.Time      `gorm:"column:last_activity_date"`
	Notes            string          `gorm:"type:text"`
}

// FullName returns the contact's full name
func (c *Contact) FullName() string {
	return strings.TrimSpace(c.FirstName + " " + c.LastName)
}

// HasAttribution reports whether any UTM field has been recorded.
// First-touch policy: once set, attribution is never overwritten.
func (c *Contact) HasAttribution() bool {
	return c.UTMSource != "" || c.UTMMedium != "" || c.UTMCampaign != "" ||
		c.UTMTerm != "" || c.UTMContent != ""
}

// Company represents a customer organization
type Company struct {
	BaseModel
	Name       string `gorm:"type:varchar(200);not null;uniqueIndex"`
	Phone      string `gorm:"type:varchar(50)"`
	Email      string `gorm:"type:varchar(255)"`
	Website    string `gorm:"type:varchar(500)"`
	Address    string `gorm:"type:varchar(500)"`
	City       string `gorm:"type:varchar(100)"`
	State      string `gorm:"type:varchar(50)"`
	PostalCode string `gorm:"type:varchar(20);column:postal_code"`
	Notes      string `gorm:"type:text"`
}

// DealStage represents the stage of a deal in the sales pipeline
type DealStage string

const (
	DealStageNew         DealStage = "new"
	DealStageProposal    DealStage = "proposal"
	DealStageNegotiation DealStage = "negotiation"
	DealStageClosedWon   DealStage = "closed_won"
	DealStageClosedLost  DealStage = "closed_lost"
)

// IsValid checks if the DealStage is a valid enum value
func (s DealStage) IsValid() bool {
	switch s {
	case DealStageNew, DealStageProposal, DealStageNegotiation, DealStageClosedWon, DealStageClosedLost:
		return true
	}
	return false
}

// IsClosed reports whether the stage is a terminal (closed) stage
func (s DealStage) IsClosed() bool {
	return s == DealStageClosedWon || s == DealStageClosedLost
}

// Deal represents a sales opportunity in the pipeline
type Deal struct {
	BaseModel
	Name              string          `gorm:"type:varchar(200);not null;index"`
	Value             decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0"`
	Stage             DealStage       `gorm:"type:varchar(50);not null;default:'new';index"`
	SalespersonID     *uint           `gorm:"index;column:salesperson_id"`
	Salesperson       *Salesperson    `gorm:"foreignKey:SalespersonID;constraint:OnDelete:SET NULL"`
	CompanyID         *uint           `gorm:"index;column:company_id"`
	Company           *Company        `gorm:"foreignKey:CompanyID;constraint:OnDelete:SET NULL"`
	UTMSource         string          `gorm:"type:varchar(200);column:utm_source"`
	UTMMedium         string          `gorm:"type:varchar(200);column:utm_medium"`
	UTMCampaign       string          `gorm:"type:varchar(200);column:utm_campaign"`
	ReportedSource    string          `gorm:"type:varchar(200);column:reported_source"`
	SourceVerified    bool            `gorm:"not null;default:false;column:source_verified"`
	CloseReason       string          `gorm:"type:varchar(500);column:close_reason"`
	ExpectedCloseDate *time.Time      `gorm:"type:date;column:expected_close_date"`
	ActualCloseDate   *time.Time      `gorm:"type:date;column:actual_close_date"`
	Notes             string          `gorm:"type:text"`
	Contacts          []DealContact   `gorm:"foreignKey:DealID;constraint:OnDelete:CASCADE"`
}

// DealContact links a contact to a deal with a role
type DealContact struct {
	ID        uint      `gorm:"primaryKey"`
	DealID    uint      `gorm:"not null;uniqueIndex:idx_deal_contact;column:deal_id"`
	ContactID uint      `gorm:"not null;uniqueIndex:idx_deal_contact;column:contact_id"`
	Contact   *Contact  `gorm:"foreignKey:ContactID;constraint:OnDelete:CASCADE"`
	Role      string    `gorm:"type:varchar(50);not null;default:'primary'"`
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// DealStageHistory tracks stage changes for audit purposes
type DealStageHistory struct {
	ID          uint       `gorm:"primaryKey"`
	DealID      uint       `gorm:"not null;index;column:deal_id"`
	Deal        *Deal      `gorm:"foreignKey:DealID;constraint:OnDelete:CASCADE"`
	FromStage   *DealStage `gorm:"type:varchar(50);column:from_stage"`
	ToStage     DealStage  `gorm:"type:varchar(50);not null;column:to_stage"`
	Reason      string     `gorm:"type:varchar(500)"`
	ChangedByID uint       `gorm:"column:changed_by_id"`
	ChangedBy   string     `gorm:"type:varchar(200);column:changed_by"`
	ChangedAt   time.Time  `gorm:"not null;default:CURRENT_TIMESTAMP;column:changed_at"`
}

// TableName overrides the default table name
func (DealStageHistory) TableName() string {
	return "deal_stage_history"
}

// QuoteStatus represents the lifecycle status of a quote
type QuoteStatus string

const (
	QuoteStatusDraft    QuoteStatus = "draft"
	QuoteStatusSent     QuoteStatus = "sent"
	QuoteStatusAccepted QuoteStatus = "accepted"
	QuoteStatusDeclined QuoteStatus = "declined"
	QuoteStatusExpired  QuoteStatus = "expired"
)

// IsValid checks if the QuoteStatus is a valid enum value
func (s QuoteStatus) IsValid() bool {
	switch s {
	case QuoteStatusDraft, QuoteStatusSent, QuoteStatusAccepted, QuoteStatusDeclined, QuoteStatusExpired:
		return true
	}
	return false
}

// Quote represents a priced sales proposal.
//
// Salesperson contact details are snapshotted onto the quote at creation
// time so historical quotes are immune to later salesperson edits. The
// money fields subtotal, discount_amount, tax_amount and total are always
// derived: they are recomputed from the line items on every mutation and
// never trusted from input.
type Quote struct {
	BaseModel
	QuoteNumber      string          `gorm:"type:varchar(20);not null;uniqueIndex;column:quote_number"`
	Title            string          `gorm:"type:varchar(200);not null"`
	Status           QuoteStatus     `gorm:"type:varchar(50);not null;default:'draft';index"`
	DealID           *uint           `gorm:"index;column:deal_id"`
	Deal             *Deal           `gorm:"foreignKey:DealID;constraint:OnDelete:SET NULL"`
	ContactID        *uint           `gorm:"index;column:contact_id"`
	Contact          *Contact        `gorm:"foreignKey:ContactID;constraint:OnDelete:SET NULL"`
	CompanyID        *uint           `gorm:"index;column:company_id"`
	Company          *Company        `gorm:"foreignKey:CompanyID;constraint:OnDelete:SET NULL"`
	CustomerName     string          `gorm:"type:varchar(200);column:customer_name"`
	CustomerEmail    string          `gorm:"type:varchar(255);column:customer_email"`
	CustomerPhone    string          `gorm:"type:varchar(50);column:customer_phone"`
	CustomerCompany  string          `gorm:"type:varchar(200);column:customer_company"`
	SalespersonID    *uint           `gorm:"index;column:salesperson_id"`
	SalespersonName  string          `gorm:"type:varchar(200);column:salesperson_name"`
	SalespersonEmail string          `gorm:"type:varchar(255);column:salesperson_email"`
	SalespersonPhone string          `gorm:"type:varchar(50);column:salesperson_phone"`
	Subtotal         decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0"`
	DiscountPercent  decimal.Decimal `gorm:"type:decimal(5,2);not null;default:0;column:discount_percent"`
	DiscountAmount   decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0;column:discount_amount"`
	TaxPercent       decimal.Decimal `gorm:"type:decimal(5,2);not null;default:0;column:tax_percent"`
	TaxAmount        decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0;column:tax_amount"`
	Total            decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0"`
	QuoteDate        *time.Time      `gorm:"type:date;column:quote_date"`
	ExpiryDate       *time.Time      `gorm:"type:date;column:expiry_date"`
	UTMSource        string          `gorm:"type:varchar(200);column:utm_source"`
	UTMMedium        string          `gorm:"type:varchar(200);column:utm_medium"`
	UTMCampaign      string          `gorm:"type:varchar(200);column:utm_campaign"`
	ReportedSource   string          `gorm:"type:varchar(200);column:reported_source"`
	Notes            string          `gorm:"type:text"`
	Terms            string          `gorm:"type:text"`
	Items            []QuoteItem     `gorm:"foreignKey:QuoteID;constraint:OnDelete:CASCADE"`
}

// QuoteItem represents a line item on a quote. Product name, SKU and price
// are snapshotted so deactivating or editing a product leaves historical
// quotes untouched.
type QuoteItem struct {
	BaseModel
	QuoteID         uint            `gorm:"not null;index;column:quote_id"`
	ProductID       *uint           `gorm:"index;column:product_id"`
	Product         *Product        `gorm:"foreignKey:ProductID;constraint:OnDelete:SET NULL"`
	ProductName     string          `gorm:"type:varchar(200);not null;column:product_name"`
	ProductSKU      string          `gorm:"type:varchar(100);column:product_sku"`
	Description     string          `gorm:"type:text"`
	Quantity        decimal.Decimal `gorm:"type:decimal(10,2);not null;default:1"`
	UnitPrice       decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0;column:unit_price"`
	DiscountPercent decimal.Decimal `gorm:"type:decimal(5,2);not null;default:0;column:discount_percent"`
	LineTotal       decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0;column:line_total"`
	SortOrder       int             `gorm:"not null;default:0;column:sort_order"`
}

// QuoteSequence holds the per-year counter behind quote numbers.
// Format: Q-YYYY-NNNN, monotonically increasing within a year.
type QuoteSequence struct {
	ID           uint      `gorm:"primaryKey"`
	Year         int       `gorm:"not null;uniqueIndex"`
	LastSequence int       `gorm:"not null;default:0;column:last_sequence"`
	CreatedAt    time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt    time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// Product represents a sellable item from the catalog
type Product struct {
	BaseModel
	Name        string          `gorm:"type:varchar(200);not null;index"`
	SKU         string          `gorm:"type:varchar(100);uniqueIndex;column:sku"`
	Description string          `gorm:"type:text"`
	Price       decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0"`
	IsActive    bool            `gorm:"not null;default:true;column:is_active"`
}

// Salesperson represents a member of the sales team
type Salesperson struct {
	BaseModel
	Name      string `gorm:"type:varchar(200);not null;uniqueIndex"`
	FirstName string `gorm:"type:varchar(100);column:first_name"`
	LastName  string `gorm:"type:varchar(100);column:last_name"`
	Email     string `gorm:"type:varchar(255)"`
	Phone     string `gorm:"type:varchar(50)"`
}

// UserRole represents the role of an application user
type UserRole string

const (
	RoleAdmin       UserRole = "admin"
	RoleSalesperson UserRole = "salesperson"
)

// IsValid checks if the UserRole is a valid enum value
func (r UserRole) IsValid() bool {
	return r == RoleAdmin || r == RoleSalesperson
}

// User represents an application login
type User struct {
	BaseModel
	Username     string     `gorm:"type:varchar(100);not null;uniqueIndex"`
	PasswordHash string     `gorm:"type:varchar(255);not null;column:password_hash"`
	Email        string     `gorm:"type:varchar(255)"`
	FirstName    string     `gorm:"type:varchar(100);column:first_name"`
	LastName     string     `gorm:"type:varchar(100);column:last_name"`
	Role         UserRole   `gorm:"type:varchar(50);not null;default:'salesperson'"`
	IsActive     bool       `gorm:"not null;default:true;column:is_active"`
	LastLoginAt  *time.Time `gorm:"column:last_login_at"`
}

// DisplayName returns the user's full name, or username if names not set
func (u *User) DisplayName() string {
	name := strings.TrimSpace(u.FirstName + " " + u.LastName)
	if name != "" {
		return name
	}
	return u.Username
}

// MailProvider identifies a connected mailbox provider
type MailProvider string

const (
	MailProviderOutlook MailProvider = "outlook"
	MailProviderGmail   MailProvider = "gmail"
)

// IsValid checks if the MailProvider is a valid enum value
func (p MailProvider) IsValid() bool {
	return p == MailProviderOutlook || p == MailProviderGmail
}

// MailToken stores an OAuth token pair for a user's connected mailbox.
// Access tokens are refreshed transparently when expired.
type MailToken struct {
	BaseModel
	UserID       uint         `gorm:"not null;uniqueIndex:idx_user_provider;column:user_id"`
	Provider     MailProvider `gorm:"type:varchar(50);not null;uniqueIndex:idx_user_provider"`
	Email        string       `gorm:"type:varchar(255)"`
	AccessToken  string       `gorm:"type:text;not null;column:access_token"`
	RefreshToken string       `gorm:"type:text;column:refresh_token"`
	Expiry       time.Time    `gorm:"column:expiry"`
}
