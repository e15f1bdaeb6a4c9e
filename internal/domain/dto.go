package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaginatedResponse wraps list results with paging metadata
type PaginatedResponse struct {
	Data       interface{} `json:"data"`
	Total      int64       `json:"total"`
	Page       int         `json:"page"`
	PageSize   int         `json:"pageSize"`
	TotalPages int         `json:"totalPages"`
}

// --- Auth ---

// LoginRequest carries login credentials
type LoginRequest struct {
	Username string `json:"username" validate:"required,max=100"`
	Password string `json:"password" validate:"required"`
}

// SetupRequest creates the first (admin) user during bootstrap
type SetupRequest struct {
	Username  string `json:"username" validate:"required,min=3,max=100"`
	Password  string `json:"password" validate:"required,min=6"`
	Email     string `json:"email" validate:"omitempty,email"`
	FirstName string `json:"firstName" validate:"max=100"`
	LastName  string `json:"lastName" validate:"max=100"`
}

// SessionDTO describes the authenticated user of the current session
type SessionDTO struct {
	UserID      uint     `json:"userId"`
	Username    string   `json:"username"`
	DisplayName string   `json:"displayName"`
	Role        UserRole `json:"role"`
}

// --- Users ---

// CreateUserRequest creates an application user (admin only)
type CreateUserRequest struct {
	Username  string   `json:"username" validate:"required,min=3,max=100"`
	Password  string   `json:"password" validate:"required,min=6"`
	Email     string   `json:"email" validate:"omitempty,email"`
	FirstName string   `json:"firstName" validate:"max=100"`
	LastName  string   `json:"lastName" validate:"max=100"`
	Role      UserRole `json:"role" validate:"required,oneof=admin salesperson"`
}

// UpdateUserRequest updates an application user. Password is optional;
// empty means unchanged.
type UpdateUserRequest struct {
	Password  string    `json:"password" validate:"omitempty,min=6"`
	Email     string    `json:"email" validate:"omitempty,email"`
	FirstName string    `json:"firstName" validate:"max=100"`
	LastName  string    `json:"lastName" validate:"max=100"`
	Role      *UserRole `json:"role" validate:"omitempty,oneof=admin salesperson"`
	IsActive  *bool     `json:"isActive"`
}

// UserDTO is the API representation of a user (never exposes the hash)
type UserDTO struct {
	ID          uint       `json:"id"`
	Username    string     `json:"username"`
	Email       string     `json:"email,omitempty"`
	FirstName   string     `json:"firstName,omitempty"`
	LastName    string     `json:"lastName,omitempty"`
	DisplayName string     `json:"displayName"`
	Role        UserRole   `json:"role"`
	IsActive    bool       `json:"isActive"`
	LastLoginAt *time.Time `json:"lastLoginAt,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
}

// --- Contacts ---

// CreateContactRequest creates a contact
type CreateContactRequest struct {
	FirstName   string `json:"firstName" validate:"required,max=100"`
	LastName    string `json:"lastName" validate:"max=100"`
	Email       string `json:"email" validate:"required,email"`
	Phone       string `json:"phone" validate:"max=50"`
	CompanyID   *uint  `json:"companyId"`
	Salesperson string `json:"salesperson" validate:"max=200"`
	UTMSource   string `json:"utmSource" validate:"max=200"`
	UTMMedium   string `json:"utmMedium" validate:"max=200"`
	UTMCampaign string `json:"utmCampaign" validate:"max=200"`
	UTMTerm     string `json:"utmTerm" validate:"max=200"`
	UTMContent  string `json:"utmContent" validate:"max=200"`
	Notes       string `json:"notes"`
}

// UpdateContactRequest updates a contact
type UpdateContactRequest struct {
	FirstName   string `json:"firstName" validate:"required,max=100"`
	LastName    string `json:"lastName" validate:"max=100"`
	Email       string `json:"email" validate:"required,email"`
	Phone       string `json:"phone" validate:"max=50"`
	CompanyID   *uint  `json:"companyId"`
	Salesperson string `json:"salesperson" validate:"max=200"`
	UTMSource   string `json:"utmSource" validate:"max=200"`
	UTMMedium   string `json:"utmMedium" validate:"max=200"`
	UTMCampaign string `json:"utmCampaign" validate:"max=200"`
	UTMTerm     string `json:"utmTerm" validate:"max=200"`
	UTMContent  string `json:"utmContent" validate:"max=200"`
	Notes       string `json:"notes"`
}

// LeadSubmissionRequest is the payload of the public lead-capture endpoint
type LeadSubmissionRequest struct {
	FirstName   string `json:"first_name" validate:"max=100"`
	LastName    string `json:"last_name" validate:"max=100"`
	Email       string `json:"email" validate:"required,email"`
	Phone       string `json:"phone" validate:"max=50"`
	Message     string `json:"message"`
	UTMSource   string `json:"utm_source" validate:"max=200"`
	UTMMedium   string `json:"utm_medium" validate:"max=200"`
	UTMCampaign string `json:"utm_campaign" validate:"max=200"`
	UTMTerm     string `json:"utm_term" validate:"max=200"`
	UTMContent  string `json:"utm_content" validate:"max=200"`
	LandingPage string `json:"landing_page" validate:"max=500"`
	Referrer    string `json:"referrer" validate:"max=500"`
}

// ContactDTO is the API representation of a contact
type ContactDTO struct {
	ID               uint            `json:"id"`
	FirstName        string          `json:"firstName"`
	LastName         string          `json:"lastName"`
	FullName         string          `json:"fullName"`
	Email            string          `json:"email"`
	Phone            string          `json:"phone,omitempty"`
	CompanyID        *uint           `json:"companyId,omitempty"`
	CompanyName      string          `json:"companyName,omitempty"`
	Salesperson      string          `json:"salesperson,omitempty"`
	UTMSource        string          `json:"utmSource,omitempty"`
	UTMMedium        string          `json:"utmMedium,omitempty"`
	UTMCampaign      string          `json:"utmCampaign,omitempty"`
	UTMTerm          string          `json:"utmTerm,omitempty"`
	UTMContent       string          `json:"utmContent,omitempty"`
	LandingPage      string          `json:"landingPage,omitempty"`
	Referrer         string          `json:"referrer,omitempty"`
	DealValue        decimal.Decimal `json:"dealValue"`
	DealClosedDate   *time.Time      `json:"dealClosedDate,omitempty"`
	LastActivityDate *time.Time      `json:"lastActivityDate,omitempty"`
	Notes            string          `json:"notes,omitempty"`
	CreatedAt        time.Time       `json:"createdAt"`
	UpdatedAt        time.Time       `json:"updatedAt"`
}

// --- Companies ---

// CreateCompanyRequest creates a company
type CreateCompanyRequest struct {
	Name       string `json:"name" validate:"required,max=200"`
	Phone      string `json:"phone" validate:"max=50"`
	Email      string `json:"email" validate:"omitempty,email"`
	Website    string `json:"website" validate:"omitempty,url,max=500"`
	Address    string `json:"address" validate:"max=500"`
	City       string `json:"city" validate:"max=100"`
	State      string `json:"state" validate:"max=50"`
	PostalCode string `json:"postalCode" validate:"max=20"`
	Notes      string `json:"notes"`
}

// UpdateCompanyRequest updates a company
type UpdateCompanyRequest = CreateCompanyRequest

// CompanyDTO is the API representation of a company
type CompanyDTO struct {
	ID         uint      `json:"id"`
	Name       string    `json:"name"`
	Phone      string    `json:"phone,omitempty"`
	Email      string    `json:"email,omitempty"`
	Website    string    `json:"website,omitempty"`
	Address    string    `json:"address,omitempty"`
	City       string    `json:"city,omitempty"`
	State      string    `json:"state,omitempty"`
	PostalCode string    `json:"postalCode,omitempty"`
	Notes      string    `json:"notes,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// --- Deals ---

// CreateDealRequest creates a deal
type CreateDealRequest struct {
	Name              string          `json:"name" validate:"required,max=200"`
	Value             decimal.Decimal `json:"value"`
	Stage             DealStage       `json:"stage" validate:"omitempty,oneof=new proposal negotiation closed_won closed_lost"`
	CloseReason       string          `json:"closeReason" validate:"max=500"`
	SalespersonID     *uint           `json:"salespersonId"`
	CompanyID         *uint           `json:"companyId"`
	ContactID         *uint           `json:"contactId"`
	UTMSource         string          `json:"utmSource" validate:"max=200"`
	UTMMedium         string          `json:"utmMedium" validate:"max=200"`
	UTMCampaign       string          `json:"utmCampaign" validate:"max=200"`
	ReportedSource    string          `json:"reportedSource" validate:"max=200"`
	ExpectedCloseDate *time.Time      `json:"expectedCloseDate"`
	Notes             string          `json:"notes"`
}

// UpdateDealRequest updates deal fields other than the stage
type UpdateDealRequest struct {
	Name              string          `json:"name" validate:"required,max=200"`
	Value             decimal.Decimal `json:"value"`
	SalespersonID     *uint           `json:"salespersonId"`
	CompanyID         *uint           `json:"companyId"`
	UTMSource         string          `json:"utmSource" validate:"max=200"`
	UTMMedium         string          `json:"utmMedium" validate:"max=200"`
	UTMCampaign       string          `json:"utmCampaign" validate:"max=200"`
	ReportedSource    string          `json:"reportedSource" validate:"max=200"`
	SourceVerified    *bool           `json:"sourceVerified"`
	CloseReason       *string         `json:"closeReason" validate:"omitempty,max=500"`
	ExpectedCloseDate *time.Time      `json:"expectedCloseDate"`
	Notes             string          `json:"notes"`
}

// UpdateDealStageRequest moves a deal to another pipeline stage.
// CloseReason is mandatory when the target stage is closed_won/closed_lost
// and must arrive in the same request: the transition is atomic.
type UpdateDealStageRequest struct {
	Stage       DealStage `json:"stage" validate:"required,oneof=new proposal negotiation closed_won closed_lost"`
	CloseReason string    `json:"closeReason" validate:"max=500"`
}

// DealDTO is the API representation of a deal
type DealDTO struct {
	ID                uint            `json:"id"`
	Name              string          `json:"name"`
	Value             decimal.Decimal `json:"value"`
	Stage             DealStage       `json:"stage"`
	SalespersonID     *uint           `json:"salespersonId,omitempty"`
	SalespersonName   string          `json:"salespersonName,omitempty"`
	CompanyID         *uint           `json:"companyId,omitempty"`
	CompanyName       string          `json:"companyName,omitempty"`
	UTMSource         string          `json:"utmSource,omitempty"`
	UTMMedium         string          `json:"utmMedium,omitempty"`
	UTMCampaign       string          `json:"utmCampaign,omitempty"`
	ReportedSource    string          `json:"reportedSource,omitempty"`
	SourceVerified    bool            `json:"sourceVerified"`
	CloseReason       string          `json:"closeReason,omitempty"`
	ExpectedCloseDate *time.Time      `json:"expectedCloseDate,omitempty"`
	ActualCloseDate   *time.Time      `json:"actualCloseDate,omitempty"`
	Notes             string          `json:"notes,omitempty"`
	Contacts          []ContactDTO    `json:"contacts,omitempty"`
	CreatedAt         time.Time       `json:"createdAt"`
	UpdatedAt         time.Time       `json:"updatedAt"`
}

// DealStageHistoryDTO is one stage transition record
type DealStageHistoryDTO struct {
	ID        uint       `json:"id"`
	DealID    uint       `json:"dealId"`
	FromStage *DealStage `json:"fromStage,omitempty"`
	ToStage   DealStage  `json:"toStage"`
	Reason    string     `json:"reason,omitempty"`
	ChangedBy string     `json:"changedBy,omitempty"`
	ChangedAt time.Time  `json:"changedAt"`
}

// PipelineColumnDTO is one kanban column: a stage plus its deals
type PipelineColumnDTO struct {
	Stage      DealStage       `json:"stage"`
	Deals      []DealDTO       `json:"deals"`
	TotalValue decimal.Decimal `json:"totalValue"`
}

// --- Quotes ---

// CreateQuoteRequest creates a quote. When no DealID is given a deal is
// created automatically, inheriting the quote's attribution fields.
type CreateQuoteRequest struct {
	Title           string             `json:"title" validate:"required,max=200"`
	SalespersonID   *uint              `json:"salespersonId"`
	DealID          *uint              `json:"dealId"`
	ContactID       *uint              `json:"contactId"`
	CompanyID       *uint              `json:"companyId"`
	NewCompanyName  string             `json:"newCompanyName" validate:"max=200"`
	CustomerFirst   string             `json:"customerFirstName" validate:"max=100"`
	CustomerLast    string             `json:"customerLastName" validate:"max=100"`
	CustomerEmail   string             `json:"customerEmail" validate:"omitempty,email"`
	CustomerPhone   string             `json:"customerPhone" validate:"max=50"`
	QuoteDate       *time.Time         `json:"quoteDate"`
	ExpiryDate      *time.Time         `json:"expiryDate"`
	DiscountPercent decimal.Decimal    `json:"discountPercent"`
	TaxPercent      decimal.Decimal    `json:"taxPercent"`
	UTMSource       string             `json:"utmSource" validate:"max=200"`
	UTMMedium       string             `json:"utmMedium" validate:"max=200"`
	UTMCampaign     string             `json:"utmCampaign" validate:"max=200"`
	ReportedSource  string             `json:"reportedSource" validate:"max=200"`
	Notes           string             `json:"notes"`
	Terms           string             `json:"terms"`
	Items           []QuoteItemRequest `json:"items" validate:"dive"`
}

// UpdateQuoteRequest updates a quote header. DiscountAmount, when supplied,
// overrides the percent-derived discount; the percent is then back-computed
// for display only.
type UpdateQuoteRequest struct {
	Title           string             `json:"title" validate:"required,max=200"`
	SalespersonID   *uint              `json:"salespersonId"`
	ContactID       *uint              `json:"contactId"`
	CompanyID       *uint              `json:"companyId"`
	CustomerName    string             `json:"customerName" validate:"max=200"`
	CustomerEmail   string             `json:"customerEmail" validate:"omitempty,email"`
	CustomerPhone   string             `json:"customerPhone" validate:"max=50"`
	CustomerCompany string             `json:"customerCompany" validate:"max=200"`
	QuoteDate       *time.Time         `json:"quoteDate"`
	ExpiryDate      *time.Time         `json:"expiryDate"`
	DiscountPercent decimal.Decimal    `json:"discountPercent"`
	DiscountAmount  *decimal.Decimal   `json:"discountAmount"`
	TaxPercent      decimal.Decimal    `json:"taxPercent"`
	Notes           string             `json:"notes"`
	Terms           string             `json:"terms"`
	Items           []QuoteItemRequest `json:"items" validate:"dive"`
}

// UpdateQuoteStatusRequest sets a quote's status explicitly
type UpdateQuoteStatusRequest struct {
	Status QuoteStatus `json:"status" validate:"required,oneof=draft sent accepted declined expired"`
}

// QuoteItemRequest adds or updates a line item
type QuoteItemRequest struct {
	ProductID       *uint           `json:"productId"`
	ProductName     string          `json:"productName" validate:"max=200"`
	ProductSKU      string          `json:"productSku" validate:"max=100"`
	Description     string          `json:"description"`
	Quantity        decimal.Decimal `json:"quantity"`
	UnitPrice       decimal.Decimal `json:"unitPrice"`
	DiscountPercent decimal.Decimal `json:"discountPercent"`
	SortOrder       int             `json:"sortOrder"`
}

// QuoteItemDTO is the API representation of a quote line item
type QuoteItemDTO struct {
	ID              uint            `json:"id"`
	ProductID       *uint           `json:"productId,omitempty"`
	ProductName     string          `json:"productName"`
	ProductSKU      string          `json:"productSku,omitempty"`
	Description     string          `json:"description,omitempty"`
	Quantity        decimal.Decimal `json:"quantity"`
	UnitPrice       decimal.Decimal `json:"unitPrice"`
	DiscountPercent decimal.Decimal `json:"discountPercent"`
	LineTotal       decimal.Decimal `json:"lineTotal"`
	SortOrder       int             `json:"sortOrder"`
}

// QuoteDTO is the API representation of a quote
type QuoteDTO struct {
	ID               uint            `json:"id"`
	QuoteNumber      string          `json:"quoteNumber"`
	Title            string          `json:"title"`
	Status           QuoteStatus     `json:"status"`
	DealID           *uint           `json:"dealId,omitempty"`
	ContactID        *uint           `json:"contactId,omitempty"`
	CompanyID        *uint           `json:"companyId,omitempty"`
	CustomerName     string          `json:"customerName,omitempty"`
	CustomerEmail    string          `json:"customerEmail,omitempty"`
	CustomerPhone    string          `json:"customerPhone,omitempty"`
	CustomerCompany  string          `json:"customerCompany,omitempty"`
	SalespersonID    *uint           `json:"salespersonId,omitempty"`
	SalespersonName  string          `json:"salespersonName,omitempty"`
	SalespersonEmail string          `json:"salespersonEmail,omitempty"`
	SalespersonPhone string          `json:"salespersonPhone,omitempty"`
	Subtotal         decimal.Decimal `json:"subtotal"`
	DiscountPercent  decimal.Decimal `json:"discountPercent"`
	DiscountAmount   decimal.Decimal `json:"discountAmount"`
	TaxPercent       decimal.Decimal `json:"taxPercent"`
	TaxAmount        decimal.Decimal `json:"taxAmount"`
	Total            decimal.Decimal `json:"total"`
	QuoteDate        *time.Time      `json:"quoteDate,omitempty"`
	ExpiryDate       *time.Time      `json:"expiryDate,omitempty"`
	UTMSource        string          `json:"utmSource,omitempty"`
	UTMMedium        string          `json:"utmMedium,omitempty"`
	UTMCampaign      string          `json:"utmCampaign,omitempty"`
	ReportedSource   string          `json:"reportedSource,omitempty"`
	Notes            string          `json:"notes,omitempty"`
	Terms            string          `json:"terms,omitempty"`
	Items            []QuoteItemDTO  `json:"items"`
	CreatedAt        time.Time       `json:"createdAt"`
	UpdatedAt        time.Time       `json:"updatedAt"`
}

// --- Products ---

// CreateProductRequest creates a catalog product
type CreateProductRequest struct {
	Name        string          `json:"name" validate:"required,max=200"`
	SKU         string          `json:"sku" validate:"required,max=100"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
}

// UpdateProductRequest updates a catalog product
type UpdateProductRequest struct {
	Name        string          `json:"name" validate:"required,max=200"`
	SKU         string          `json:"sku" validate:"required,max=100"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	IsActive    *bool           `json:"isActive"`
}

// ProductDTO is the API representation of a product
type ProductDTO struct {
	ID          uint            `json:"id"`
	Name        string          `json:"name"`
	SKU         string          `json:"sku"`
	Description string          `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"`
	IsActive    bool            `json:"isActive"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// --- Salespeople ---

// CreateSalespersonRequest creates a salesperson
type CreateSalespersonRequest struct {
	Name      string `json:"name" validate:"required,max=200"`
	FirstName string `json:"firstName" validate:"max=100"`
	LastName  string `json:"lastName" validate:"max=100"`
	Email     string `json:"email" validate:"omitempty,email"`
	Phone     string `json:"phone" validate:"max=50"`
}

// UpdateSalespersonRequest updates a salesperson
type UpdateSalespersonRequest = CreateSalespersonRequest

// SalespersonDTO is the API representation of a salesperson
type SalespersonDTO struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	FirstName string    `json:"firstName,omitempty"`
	LastName  string    `json:"lastName,omitempty"`
	Email     string    `json:"email,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// --- Shipping ---

// ShippingEstimateRequest asks for a freight cost estimate between two ZIPs
type ShippingEstimateRequest struct {
	OriginZip      string           `json:"originZip" validate:"required,len=5,numeric"`
	DestinationZip string           `json:"destinationZip" validate:"required,len=5,numeric"`
	RatePerMile    *decimal.Decimal `json:"ratePerMile"`
	TruckCount     int              `json:"truckCount" validate:"omitempty,gte=1"`
	OverridePrice  *decimal.Decimal `json:"overridePricePerTruck"`
}

// ShippingEstimateDTO is the result of a shipping estimate. Distance and
// rate are always surfaced, even when a manual override replaced the
// computed cost, so the caller can show how the figure was reached.
type ShippingEstimateDTO struct {
	OriginZip        string          `json:"originZip"`
	OriginCity       string          `json:"originCity,omitempty"`
	OriginState      string          `json:"originState,omitempty"`
	DestinationZip   string          `json:"destinationZip"`
	DestinationCity  string          `json:"destinationCity,omitempty"`
	DestinationState string          `json:"destinationState,omitempty"`
	DistanceMiles    decimal.Decimal `json:"distanceMiles"`
	RatePerMile      decimal.Decimal `json:"ratePerMile"`
	CostPerTruck     decimal.Decimal `json:"costPerTruck"`
	TruckCount       int             `json:"truckCount"`
	Total            decimal.Decimal `json:"total"`
	MinimumApplied   bool            `json:"minimumApplied"`
	OverrideApplied  bool            `json:"overrideApplied"`
}

// --- Mail ---

// MailStatusDTO reports which providers the user has connected
type MailStatusDTO struct {
	Outlook      bool   `json:"outlook"`
	OutlookEmail string `json:"outlookEmail,omitempty"`
	Gmail        bool   `json:"gmail"`
	GmailEmail   string `json:"gmailEmail,omitempty"`
}

// MailMessageDTO is a read-only mail message summary or detail
type MailMessageDTO struct {
	ID       string       `json:"id"`
	Provider MailProvider `json:"provider"`
	Subject  string       `json:"subject"`
	From     string       `json:"from"`
	To       string       `json:"to,omitempty"`
	Date     time.Time    `json:"date"`
	Snippet  string       `json:"snippet,omitempty"`
	Body     string       `json:"body,omitempty"`
}

// --- Dashboard / analytics ---

// DashboardDTO aggregates headline CRM numbers
type DashboardDTO struct {
	ContactCount    int64               `json:"contactCount"`
	DealCount       int64               `json:"dealCount"`
	OpenDealCount   int64               `json:"openDealCount"`
	QuoteCount      int64               `json:"quoteCount"`
	PipelineValue   decimal.Decimal     `json:"pipelineValue"`
	WonValue        decimal.Decimal     `json:"wonValue"`
	StageBreakdown  []StageBreakdownDTO `json:"stageBreakdown"`
	UntouchedLeads  []ContactDTO        `json:"untouchedLeads"`
	RecentQuotes    []QuoteDTO          `json:"recentQuotes"`
}

// StageBreakdownDTO is deal count and value for one pipeline stage
type StageBreakdownDTO struct {
	Stage      DealStage       `json:"stage"`
	DealCount  int64           `json:"dealCount"`
	TotalValue decimal.Decimal `json:"totalValue"`
}

// MonthlyBreakdownDTO is a count/value bucket for one month and one
// attribution medium (chart data)
type MonthlyBreakdownDTO struct {
	Month      string          `json:"month"` // YYYY-MM
	Medium     string          `json:"medium"`
	Count      int64           `json:"count"`
	TotalValue decimal.Decimal `json:"totalValue"`
}

// LeadBreakdownDTO is a lead count bucket for one month and one
// attribution source (chart data)
type LeadBreakdownDTO struct {
	Month  string `json:"month"` // YYYY-MM
	Source string `json:"source"`
	Count  int64  `json:"count"`
}
