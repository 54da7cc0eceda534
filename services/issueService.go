// Package services orchestrates validation, scoring, persistence and
// authorization behind the HTTP handlers.
package services

import (
	"context"
	"strings"
	"time"

	"civicreport-be/apperrors"
	"civicreport-be/models"
	"civicreport-be/repository"
	"civicreport-be/urgency"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// IssueService coordinates the urgency calculator and the issue repository.
// Role checks for mutations live here, not in the HTTP layer, so they hold
// for any caller of the service.
type IssueService struct {
	repo *repository.IssueRepository
	log  zerolog.Logger
	now  func() time.Time
}

func NewIssueService(repo *repository.IssueRepository, log zerolog.Logger) *IssueService {
	return &IssueService{repo: repo, log: log, now: time.Now}
}

// CreateIssueInput is the reporter-supplied part of a new issue. Identity
// fields come from the verified caller context, never from the body.
type CreateIssueInput struct {
	Type        string
	Location    string
	Description string
	Latitude    *float64
	Longitude   *float64
	ImageURL    *string
}

// Create validates the input, scores it and persists the resulting issue.
func (s *IssueService) Create(ctx context.Context, identity models.Identity, in CreateIssueInput) (*models.Issue, *urgency.Result, error) {
	if strings.TrimSpace(in.Type) == "" || strings.TrimSpace(in.Location) == "" {
		return nil, nil, apperrors.NewValidationError("Missing required fields")
	}

	now := s.now().UTC()
	result := urgency.Calculate(urgency.Input{
		IssueType:   in.Type,
		Location:    in.Location,
		Description: in.Description,
	}, now)

	issue := &models.Issue{
		ID:             uuid.NewString(),
		Type:           in.Type,
		Location:       in.Location,
		Latitude:       in.Latitude,
		Longitude:      in.Longitude,
		Description:    in.Description,
		ImageURL:       in.ImageURL,
		Status:         models.Pending,
		Urgency:        result.Level,
		UrgencyScore:   result.Score,
		ReportedByID:   identity.ID,
		ReportedBy:     identity.Email,
		ReportedByName: identity.Name,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.repo.Create(ctx, issue); err != nil {
		return nil, nil, err
	}

	s.log.Info().
		Str("issue_id", issue.ID).
		Str("type", issue.Type).
		Int("urgency_score", issue.UrgencyScore).
		Str("urgency", string(issue.Urgency)).
		Msg("issue created")
	return issue, &result, nil
}

// List returns the issues visible to the caller, newest first.
func (s *IssueService) List(ctx context.Context, identity models.Identity) ([]models.Issue, error) {
	return s.repo.ListVisibleTo(ctx, identity)
}

// Get returns a single issue. Citizens can only fetch their own reports;
// anyone else's issue reads as not-found so existence is not leaked.
func (s *IssueService) Get(ctx context.Context, identity models.Identity, id string) (*models.Issue, error) {
	issue, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !identity.IsAdmin() && issue.ReportedByID != identity.ID {
		return nil, apperrors.NewNotFoundError("Issue not found")
	}
	return issue, nil
}

// Update merges admin-updatable fields into an issue. Non-admin callers are
// rejected regardless of ownership.
func (s *IssueService) Update(ctx context.Context, identity models.Identity, id string, fields repository.UpdateFields) (*models.Issue, error) {
	if !identity.IsAdmin() {
		return nil, apperrors.NewForbiddenError("Admin access required")
	}

	if fields.Status != nil {
		current, err := s.repo.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if !models.ValidStatusTransition(current.Status, *fields.Status) {
			return nil, apperrors.NewValidationError("Invalid status")
		}
	}
	if fields.Type != nil && strings.TrimSpace(*fields.Type) == "" {
		return nil, apperrors.NewValidationError("Type cannot be empty")
	}
	if fields.Location != nil && strings.TrimSpace(*fields.Location) == "" {
		return nil, apperrors.NewValidationError("Location cannot be empty")
	}

	issue, err := s.repo.Update(ctx, id, fields)
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("issue_id", id).Msg("issue updated")
	return issue, nil
}

// Delete removes an issue. Admin only.
func (s *IssueService) Delete(ctx context.Context, identity models.Identity, id string) error {
	if !identity.IsAdmin() {
		return apperrors.NewForbiddenError("Admin access required")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info().Str("issue_id", id).Msg("issue deleted")
	return nil
}

// Stats aggregates the caller-visible issues.
func (s *IssueService) Stats(ctx context.Context, identity models.Identity) (*models.IssueStats, error) {
	return s.repo.Aggregate(ctx, identity)
}
