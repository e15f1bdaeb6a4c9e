package mapper

import (
	"github.com/steelstack/crm-api/internal/domain"
)

// ToContactDTO converts a Contact model to its DTO
func ToContactDTO(c *domain.Contact) domain.ContactDTO {
	dto := domain.ContactDTO{
		ID:               c.ID,
		FirstName:        c.FirstName,
		LastName:         c.LastName,
		FullName:         c.FullName(),
		Email:            c.Email,
		Phone:            c.Phone,
		CompanyID:        c.CompanyID,
		Salesperson:      c.Salesperson,
		UTMSource:        c.UTMSource,
		UTMMedium:        c.UTMMedium,
		UTMCampaign:      c.UTMCampaign,
		UTMTerm:          c.UTMTerm,
		UTMContent:       c.UTMContent,
		LandingPage:      c.LandingPage,
		Referrer:         c.Referrer,
		DealValue:        c.DealValue,
		DealClosedDate:   c.DealClosedDate,
		LastActivityDate: c.LastActivityDate,
		Notes:            c.Notes,
		CreatedAt:        c.CreatedAt,
		UpdatedAt:        c.UpdatedAt,
	}
	if c.Company != nil {
		dto.CompanyName = c.Company.Name
	}
	return dto
}

// ToContactDTOs converts a slice of contacts
func ToContactDTOs(contacts []domain.Contact) []domain.ContactDTO {
	dtos := make([]domain.ContactDTO, len(contacts))
	for i := range contacts {
		dtos[i] = ToContactDTO(&contacts[i])
	}
	return dtos
}

// ToCompanyDTO converts a Company model to its DTO
func ToCompanyDTO(c *domain.Company) domain.CompanyDTO {
	return domain.CompanyDTO{
		ID:         c.ID,
		Name:       c.Name,
		Phone:      c.Phone,
		Email:      c.Email,
		Website:    c.Website,
		Address:    c.Address,
		City:       c.City,
		State:      c.State,
		PostalCode: c.PostalCode,
		Notes:      c.Notes,
		CreatedAt:  c.CreatedAt,
		UpdatedAt:  c.UpdatedAt,
	}
}

// ToCompanyDTOs converts a slice of companies
func ToCompanyDTOs(companies []domain.Company) []domain.CompanyDTO {
	dtos := make([]domain.CompanyDTO, len(companies))
	for i := range companies {
		dtos[i] = ToCompanyDTO(&companies[i])
	}
	return dtos
}

// ToDealDTO converts a Deal model to its DTO
func ToDealDTO(d *domain.Deal) domain.DealDTO {
	dto := domain.DealDTO{
		ID:                d.ID,
		Name:              d.Name,
		Value:             d.Value,
		Stage:             d.Stage,
		SalespersonID:     d.SalespersonID,
		CompanyID:         d.CompanyID,
		UTMSource:         d.UTMSource,
		UTMMedium:         d.UTMMedium,
		UTMCampaign:       d.UTMCampaign,
		ReportedSource:    d.ReportedSource,
		SourceVerified:    d.SourceVerified,
		CloseReason:       d.CloseReason,
		ExpectedCloseDate: d.ExpectedCloseDate,
		ActualCloseDate:   d.ActualCloseDate,
		Notes:             d.Notes,
		CreatedAt:         d.CreatedAt,
		UpdatedAt:         d.UpdatedAt,
	}
	if d.Salesperson != nil {
		dto.SalespersonName = d.Salesperson.Name
	}
	if d.Company != nil {
		dto.CompanyName = d.Company.Name
	}
	for i := range d.Contacts {
		if d.Contacts[i].Contact != nil {
			dto.Contacts = append(dto.Contacts, ToContactDTO(d.Contacts[i].Contact))
		}
	}
	return dto
}

// ToDealDTOs converts a slice of deals
func ToDealDTOs(deals []domain.Deal) []domain.DealDTO {
	dtos := make([]domain.DealDTO, len(deals))
	for i := range deals {
		dtos[i] = ToDealDTO(&deals[i])
	}
	return dtos
}

// ToDealStageHistoryDTO converts a stage history record to its DTO
func ToDealStageHistoryDTO(h *domain.DealStageHistory) domain.DealStageHistoryDTO {
	return domain.DealStageHistoryDTO{
		ID:        h.ID,
		DealID:    h.DealID,
		FromStage: h.FromStage,
		ToStage:   h.ToStage,
		Reason:    h.Reason,
		ChangedBy: h.ChangedBy,
		ChangedAt: h.ChangedAt,
	}
}

// ToDealStageHistoryDTOs converts a slice of stage history records
func ToDealStageHistoryDTOs(history []domain.DealStageHistory) []domain.DealStageHistoryDTO {
	dtos := make([]domain.DealStageHistoryDTO, len(history))
	for i := range history {
		dtos[i] = ToDealStageHistoryDTO(&history[i])
	}
	return dtos
}

// ToQuoteItemDTO converts a QuoteItem model to its DTO
func ToQuoteItemDTO(item *domain.QuoteItem) domain.QuoteItemDTO {
	return domain.QuoteItemDTO{
		ID:              item.ID,
		ProductID:       item.ProductID,
		ProductName:     item.ProductName,
		ProductSKU:      item.ProductSKU,
		Description:     item.Description,
		Quantity:        item.Quantity,
		UnitPrice:       item.UnitPrice,
		DiscountPercent: item.DiscountPercent,
		LineTotal:       item.LineTotal,
		SortOrder:       item.SortOrder,
	}
}

// ToQuoteDTO converts a Quote model to its DTO
func ToQuoteDTO(q *domain.Quote) domain.QuoteDTO {
	dto := domain.QuoteDTO{
		ID:               q.ID,
		QuoteNumber:      q.QuoteNumber,
		Title:            q.Title,
		Status:           q.Status,
		DealID:           q.DealID,
		ContactID:        q.ContactID,
		CompanyID:        q.CompanyID,
		CustomerName:     q.CustomerName,
		CustomerEmail:    q.CustomerEmail,
		CustomerPhone:    q.CustomerPhone,
		CustomerCompany:  q.CustomerCompany,
		SalespersonID:    q.SalespersonID,
		SalespersonName:  q.SalespersonName,
		SalespersonEmail: q.SalespersonEmail,
		SalespersonPhone: q.SalespersonPhone,
		Subtotal:         q.Subtotal,
		DiscountPercent:  q.DiscountPercent,
		DiscountAmount:   q.DiscountAmount,
		TaxPercent:       q.TaxPercent,
		TaxAmount:        q.TaxAmount,
		Total:            q.Total,
		QuoteDate:        q.QuoteDate,
		ExpiryDate:       q.ExpiryDate,
		UTMSource:        q.UTMSource,
		UTMMedium:        q.UTMMedium,
		UTMCampaign:      q.UTMCampaign,
		ReportedSource:   q.ReportedSource,
		Notes:            q.Notes,
		Terms:            q.Terms,
		Items:            make([]domain.QuoteItemDTO, len(q.Items)),
		CreatedAt:        q.CreatedAt,
		UpdatedAt:        q.UpdatedAt,
	}
	for i := range q.Items {
		dto.Items[i] = ToQuoteItemDTO(&q.Items[i])
	}
	return dto
}

// ToQuoteDTOs converts a slice of quotes
func ToQuoteDTOs(quotes []domain.Quote) []domain.QuoteDTO {
	dtos := make([]domain.QuoteDTO, len(quotes))
	for i := range quotes {
		dtos[i] = ToQuoteDTO(&quotes[i])
	}
	return dtos
}

// ToProductDTO converts a Product model to its DTO
func ToProductDTO(p *domain.Product) domain.ProductDTO {
	return domain.ProductDTO{
		ID:          p.ID,
		Name:        p.Name,
		SKU:         p.SKU,
		Description: p.Description,
		Price:       p.Price,
		IsActive:    p.IsActive,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

// ToProductDTOs converts a slice of products
func ToProductDTOs(products []domain.Product) []domain.ProductDTO {
	dtos := make([]domain.ProductDTO, len(products))
	for i := range products {
		dtos[i] = ToProductDTO(&products[i])
	}
	return dtos
}

// ToSalespersonDTO converts a Salesperson model to its DTO
func ToSalespersonDTO(sp *domain.Salesperson) domain.SalespersonDTO {
	return domain.SalespersonDTO{
		ID:        sp.ID,
		Name:      sp.Name,
		FirstName: sp.FirstName,
		LastName:  sp.LastName,
		Email:     sp.Email,
		Phone:     sp.Phone,
		CreatedAt: sp.CreatedAt,
		UpdatedAt: sp.UpdatedAt,
	}
}

// ToSalespersonDTOs converts a slice of salespeople
func ToSalespersonDTOs(people []domain.Salesperson) []domain.SalespersonDTO {
	dtos := make([]domain.SalespersonDTO, len(people))
	for i := range people {
		dtos[i] = ToSalespersonDTO(&people[i])
	}
	return dtos
}

// ToUserDTO converts a User model to its DTO. The password hash never
// leaves the service layer.
func ToUserDTO(u *domain.User) domain.UserDTO {
	return domain.UserDTO{
		ID:          u.ID,
		Username:    u.Username,
		Email:       u.Email,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		DisplayName: u.DisplayName(),
		Role:        u.Role,
		IsActive:    u.IsActive,
		LastLoginAt: u.LastLoginAt,
		CreatedAt:   u.CreatedAt,
	}
}

// ToUserDTOs converts a slice of users
func ToUserDTOs(users []domain.User) []domain.UserDTO {
	dtos := make([]domain.UserDTO, len(users))
	for i := range users {
		dtos[i] = ToUserDTO(&users[i])
	}
	return dtos
}
