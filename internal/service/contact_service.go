package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"contactbook/internal/cache"
	"contactbook/internal/model"
	"contactbook/internal/repository"
)

const contactListCacheTTL = 5 * time.Minute

// ContactService exposes owner-scoped contact operations.
type ContactService interface {
	Create(ctx context.Context, ownerID string, fields model.ContactFields) (*model.Contact, error)
	List(ctx context.Context, ownerID string) ([]model.Contact, error)
	Delete(ctx context.Context, id, ownerID string) error
}

type contactService struct {
	repo  repository.ContactRepository
	cache *cache.Client
	log   *zap.Logger
}

// NewContactService builds a ContactService with repository and cache.
func NewContactService(repo repository.ContactRepository, cache *cache.Client, log *zap.Logger) ContactService {
	return &contactService{repo: repo, cache: cache, log: log.Named("contacts")}
}

// Cached lists live under contacts:<owner>:<generation>. Writers bump the
// generation after the store write, so a list read that raced a write can
// only fill a key no later reader looks up.
func (s *contactService) generationKey(ownerID string) string {
	return fmt.Sprintf("contacts:gen:%s", ownerID)
}

func (s *contactService) listKey(ctx context.Context, ownerID string) string {
	gen := "0"
	if data, _ := s.cache.Get(ctx, s.generationKey(ownerID)); data != nil {
		gen = string(data)
	}
	return fmt.Sprintf("contacts:%s:%s", ownerID, gen)
}

func (s *contactService) invalidate(ctx context.Context, ownerID string) {
	_, _ = s.cache.Incr(ctx, s.generationKey(ownerID))
}

// Create stores a contact owned by ownerID, stamped with the current time.
func (s *contactService) Create(ctx context.Context, ownerID string, fields model.ContactFields) (*model.Contact, error) {
	contact := &model.Contact{
		UserID:  ownerID,
		Name:    fields.Name,
		Email:   fields.Email,
		Phone:   fields.Phone,
		Message: fields.Message,
		Date:    time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, contact); err != nil {
		s.log.Error("create contact", zap.String("owner", ownerID), zap.Error(err))
		return nil, fmt.Errorf("create contact: %w", err)
	}
	s.invalidate(ctx, ownerID)
	return contact, nil
}

// List returns the owner's contacts, newest first.
func (s *contactService) List(ctx context.Context, ownerID string) ([]model.Contact, error) {
	key := s.listKey(ctx, ownerID)
	if data, _ := s.cache.Get(ctx, key); data != nil {
		var cached []model.Contact
		if err := json.Unmarshal(data, &cached); err == nil && cached != nil {
			return cached, nil
		}
	}

	contacts, err := s.repo.ListByOwner(ctx, ownerID)
	if err != nil {
		s.log.Error("list contacts", zap.String("owner", ownerID), zap.Error(err))
		return nil, fmt.Errorf("list contacts: %w", err)
	}

	if payload, err := json.Marshal(contacts); err == nil {
		_ = s.cache.Set(ctx, key, payload, contactListCacheTTL)
	}
	return contacts, nil
}

// Delete removes the contact when ownerID owns it; otherwise it does nothing.
func (s *contactService) Delete(ctx context.Context, id, ownerID string) error {
	if err := s.repo.DeleteByIDAndOwner(ctx, id, ownerID); err != nil {
		s.log.Error("delete contact", zap.String("id", id), zap.String("owner", ownerID), zap.Error(err))
		return fmt.Errorf("delete contact: %w", err)
	}
	s.invalidate(ctx, ownerID)
	return nil
}
