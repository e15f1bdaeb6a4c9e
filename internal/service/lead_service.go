package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/steelstack/crm-api/internal/domain"
	"github.com/steelstack/crm-api/internal/mapper"
	"github.com/steelstack/crm-api/internal/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// LeadService ingests submissions from the public website form.
//
// A submission upserts a contact keyed on email. Attribution is
// first-touch: a returning lead's new UTM values are ignored if the
// contact already has any recorded, while the message is always appended
// to the notes so nothing is lost.
type LeadService struct {
	contactRepo *repository.ContactRepository
	logger      *zap.Logger
}

func NewLeadService(contactRepo *repository.ContactRepository, logger *zap.Logger) *LeadService {
	return &LeadService{
		contactRepo: contactRepo,
		logger:      logger,
	}
}

func (s *LeadService) Submit(ctx context.Context, req *domain.LeadSubmissionRequest) (*domain.ContactDTO, error) {
	existing, err := s.contactRepo.GetByEmail(ctx, req.Email)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to look up lead: %w", err)
	}

	now := time.Now().UTC()

	if existing == nil {
		contact := &domain.Contact{
			FirstName:   req.FirstName,
			LastName:    req.LastName,
			Email:       req.Email,
			Phone:       req.Phone,
			UTMSource:   req.UTMSource,
			UTMMedium:   req.UTMMedium,
			UTMCampaign: req.UTMCampaign,
			UTMTerm:     req.UTMTerm,
			UTMContent:  req.UTMContent,
			LandingPage: req.LandingPage,
			Referrer:    req.Referrer,
			Notes:       formatLeadNote(now, req.Message),
		}
		if err := s.contactRepo.Create(ctx, contact); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				// Raced with another submission for the same email; treat
				// it as a returning lead
				existing, err = s.contactRepo.GetByEmail(ctx, req.Email)
				if err != nil {
					return nil, fmt.Errorf("failed to look up lead: %w", err)
				}
				return s.updateReturningLead(ctx, existing, req, now)
			}
			return nil, fmt.Errorf("failed to create lead: %w", err)
		}

		s.logger.Info("lead captured",
			zap.Uint("contact_id", contact.ID),
			zap.String("utm_source", contact.UTMSource),
		)

		dto := mapper.ToContactDTO(contact)
		return &dto, nil
	}

	return s.updateReturningLead(ctx, existing, req, now)
}

func (s *LeadService) updateReturningLead(ctx context.Context, contact *domain.Contact, req *domain.LeadSubmissionRequest, now time.Time) (*domain.ContactDTO, error) {
	if contact.FirstName == "" {
		contact.FirstName = req.FirstName
	}
	if contact.LastName == "" {
		contact.LastName = req.LastName
	}
	if contact.Phone == "" {
		contact.Phone = req.Phone
	}
	if !contact.HasAttribution() {
		contact.UTMSource = req.UTMSource
		contact.UTMMedium = req.UTMMedium
		contact.UTMCampaign = req.UTMCampaign
		contact.UTMTerm = req.UTMTerm
		contact.UTMContent = req.UTMContent
		contact.LandingPage = req.LandingPage
		contact.Referrer = req.Referrer
	}
	if req.Message != "" {
		if contact.Notes != "" {
			contact.Notes += "\n\n"
		}
		contact.Notes += formatLeadNote(now, req.Message)
	}

	if err := s.contactRepo.Update(ctx, contact); err != nil {
		return nil, fmt.Errorf("failed to update returning lead: %w", err)
	}

	s.logger.Info("returning lead updated", zap.Uint("contact_id", contact.ID))

	dto := mapper.ToContactDTO(contact)
	return &dto, nil
}

func formatLeadNote(at time.Time, message string) string {
	message = strings.TrimSpace(message)
	if message == "" {
		return ""
	}
	return fmt.Sprintf("[Web form %s] %s", at.Format("2006-01-02"), message)
}
