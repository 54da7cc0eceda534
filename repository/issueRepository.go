// Package repository implements issue and user persistence on top of the
// key-value store. Visibility filtering lives here so it cannot be bypassed
// by calling the repository directly.
package repository

import (
	"context"
	"encoding/json"
	"math"
	"sort"
	"sync"
	"time"

	"civicreport-be/apperrors"
	"civicreport-be/kvstore"
	"civicreport-be/models"

	"github.com/montanaflynn/stats"
	"github.com/rs/zerolog"
)

const (
	issueKeyPrefix      = "issue:"
	userIssuesKeyPrefix = "user_issues:"
)

// IssueRepository stores issues under issue:<id> and maintains a per-user
// index of issue ids under user_issues:<creatorId>. The index write is a
// read-modify-write on a plain key-value store, so it is serialized behind
// indexMu; with a single service instance (the deployment model here) that
// closes the lost-update race between concurrent creates by the same user.
type IssueRepository struct {
	store   kvstore.Store
	log     zerolog.Logger
	indexMu sync.Mutex
}

func NewIssueRepository(store kvstore.Store, log zerolog.Logger) *IssueRepository {
	return &IssueRepository{store: store, log: log}
}

func issueKey(id string) string {
	return issueKeyPrefix + id
}

func userIssuesKey(userID string) string {
	return userIssuesKeyPrefix + userID
}

// Create persists the issue and appends its id to the creator's index.
func (r *IssueRepository) Create(ctx context.Context, issue *models.Issue) error {
	data, err := json.Marshal(issue)
	if err != nil {
		return apperrors.NewStoreError("Failed to encode issue", err)
	}
	if err := r.store.Set(ctx, issueKey(issue.ID), data); err != nil {
		return apperrors.NewStoreError("Failed to create issue", err)
	}

	if err := r.appendToUserIndex(ctx, issue.ReportedByID, issue.ID); err != nil {
		return err
	}
	return nil
}

func (r *IssueRepository) appendToUserIndex(ctx context.Context, userID, issueID string) error {
	r.indexMu.Lock()
	defer r.indexMu.Unlock()

	ids, err := r.readUserIndex(ctx, userID)
	if err != nil {
		return err
	}
	ids = append(ids, issueID)
	return r.writeUserIndex(ctx, userID, ids)
}

func (r *IssueRepository) removeFromUserIndex(ctx context.Context, userID, issueID string) error {
	r.indexMu.Lock()
	defer r.indexMu.Unlock()

	ids, err := r.readUserIndex(ctx, userID)
	if err != nil {
		return err
	}
	kept := ids[:0]
	for _, id := range ids {
		if id != issueID {
			kept = append(kept, id)
		}
	}
	return r.writeUserIndex(ctx, userID, kept)
}

func (r *IssueRepository) readUserIndex(ctx context.Context, userID string) ([]string, error) {
	data, ok, err := r.store.Get(ctx, userIssuesKey(userID))
	if err != nil {
		return nil, apperrors.NewStoreError("Failed to read user issue index", err)
	}
	if !ok {
		return nil, nil
	}
	var ids []string
	if err := json.Unmarshal(data, &ids); err != nil {
		return nil, apperrors.NewStoreError("Failed to decode user issue index", err)
	}
	return ids, nil
}

func (r *IssueRepository) writeUserIndex(ctx context.Context, userID string, ids []string) error {
	if ids == nil {
		ids = []string{}
	}
	data, err := json.Marshal(ids)
	if err != nil {
		return apperrors.NewStoreError("Failed to encode user issue index", err)
	}
	if err := r.store.Set(ctx, userIssuesKey(userID), data); err != nil {
		return apperrors.NewStoreError("Failed to write user issue index", err)
	}
	return nil
}

// GetByID returns the issue stored under the given id.
func (r *IssueRepository) GetByID(ctx context.Context, id string) (*models.Issue, error) {
	data, ok, err := r.store.Get(ctx, issueKey(id))
	if err != nil {
		return nil, apperrors.NewStoreError("Failed to retrieve issue", err)
	}
	if !ok {
		return nil, apperrors.NewNotFoundError("Issue not found")
	}
	var issue models.Issue
	if err := json.Unmarshal(data, &issue); err != nil {
		return nil, apperrors.NewStoreError("Failed to decode issue", err)
	}
	return &issue, nil
}

// IssueIDsForUser returns the ids in the creator's index, in insertion order.
func (r *IssueRepository) IssueIDsForUser(ctx context.Context, userID string) ([]string, error) {
	r.indexMu.Lock()
	defer r.indexMu.Unlock()
	return r.readUserIndex(ctx, userID)
}

// ListVisibleTo scans all issues and filters them to what the identity may
// see: administrators get everything, citizens only their own reports.
// Results are sorted newest first; ties break on id so ordering is stable.
func (r *IssueRepository) ListVisibleTo(ctx context.Context, identity models.Identity) ([]models.Issue, error) {
	entries, err := r.store.GetByPrefix(ctx, issueKeyPrefix)
	if err != nil {
		return nil, apperrors.NewStoreError("Failed to retrieve issues", err)
	}

	issues := make([]models.Issue, 0, len(entries))
	for _, entry := range entries {
		var issue models.Issue
		if err := json.Unmarshal(entry.Value, &issue); err != nil {
			r.log.Warn().Str("key", entry.Key).Err(err).Msg("skipping undecodable issue record")
			continue
		}
		if !identity.IsAdmin() && issue.ReportedByID != identity.ID {
			continue
		}
		issues = append(issues, issue)
	}

	sort.Slice(issues, func(i, j int) bool {
		if issues[i].CreatedAt.Equal(issues[j].CreatedAt) {
			return issues[i].ID < issues[j].ID
		}
		return issues[i].CreatedAt.After(issues[j].CreatedAt)
	})
	return issues, nil
}

// UpdateFields are the mutable issue fields. Everything not listed here,
// notably id, reporter identity, urgency and createdAt, is preserved from
// the stored record on every update.
type UpdateFields struct {
	Type        *string             `json:"type,omitempty"`
	Location    *string             `json:"location,omitempty"`
	Description *string             `json:"description,omitempty"`
	ImageURL    *string             `json:"imageUrl,omitempty"`
	Status      *models.IssueStatus `json:"status,omitempty"`
	Latitude    *float64            `json:"latitude,omitempty"`
	Longitude   *float64            `json:"longitude,omitempty"`
}

// Update merges the given fields into the stored record and refreshes
// updatedAt. It fails with not-found if the issue does not exist.
func (r *IssueRepository) Update(ctx context.Context, id string, fields UpdateFields) (*models.Issue, error) {
	issue, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if fields.Type != nil {
		issue.Type = *fields.Type
	}
	if fields.Location != nil {
		issue.Location = *fields.Location
	}
	if fields.Description != nil {
		issue.Description = *fields.Description
	}
	if fields.ImageURL != nil {
		issue.ImageURL = fields.ImageURL
	}
	if fields.Status != nil {
		issue.Status = *fields.Status
	}
	if fields.Latitude != nil {
		issue.Latitude = fields.Latitude
	}
	if fields.Longitude != nil {
		issue.Longitude = fields.Longitude
	}
	issue.UpdatedAt = time.Now().UTC()

	data, err := json.Marshal(issue)
	if err != nil {
		return nil, apperrors.NewStoreError("Failed to encode issue", err)
	}
	if err := r.store.Set(ctx, issueKey(id), data); err != nil {
		return nil, apperrors.NewStoreError("Failed to update issue", err)
	}
	return issue, nil
}

// Delete removes the issue and reconciles the creator's index so the two
// views stay consistent. Deleting an absent issue is a no-op.
func (r *IssueRepository) Delete(ctx context.Context, id string) error {
	data, ok, err := r.store.Get(ctx, issueKey(id))
	if err != nil {
		return apperrors.NewStoreError("Failed to retrieve issue", err)
	}
	if !ok {
		return nil
	}

	var issue models.Issue
	if err := json.Unmarshal(data, &issue); err != nil {
		// The record is corrupt; still remove the direct key.
		r.log.Warn().Str("id", id).Err(err).Msg("deleting undecodable issue record")
		if err := r.store.Delete(ctx, issueKey(id)); err != nil {
			return apperrors.NewStoreError("Failed to delete issue", err)
		}
		return nil
	}

	if err := r.store.Delete(ctx, issueKey(id)); err != nil {
		return apperrors.NewStoreError("Failed to delete issue", err)
	}
	return r.removeFromUserIndex(ctx, issue.ReportedByID, id)
}

// Aggregate computes counts by status and urgency, plus a score summary,
// over the same visibility-filtered set ListVisibleTo returns.
func (r *IssueRepository) Aggregate(ctx context.Context, identity models.Identity) (*models.IssueStats, error) {
	issues, err := r.ListVisibleTo(ctx, identity)
	if err != nil {
		return nil, err
	}

	result := &models.IssueStats{Total: len(issues)}
	scores := make([]float64, 0, len(issues))
	for _, issue := range issues {
		switch issue.Status {
		case models.Pending:
			result.Pending++
		case models.InProgress:
			result.InProgress++
		case models.Resolved:
			result.Resolved++
		}
		switch issue.Urgency {
		case models.UrgencyCritical:
			result.ByUrgency.Critical++
		case models.UrgencyHigh:
			result.ByUrgency.High++
		case models.UrgencyMedium:
			result.ByUrgency.Medium++
		case models.UrgencyLow:
			result.ByUrgency.Low++
		}
		scores = append(scores, float64(issue.UrgencyScore))
	}

	if len(scores) > 0 {
		if mean, err := stats.Mean(scores); err == nil {
			result.AverageUrgencyScore = math.Round(mean*100) / 100
		}
		if max, err := stats.Max(scores); err == nil {
			result.MaxUrgencyScore = max
		}
	}
	return result, nil
}
