package usecase

import (
	"context"
	"errors"
	"fmt"

	"salon-booking/internal/data/entity"
	"salon-booking/internal/data/repository"
	"salon-booking/internal/dto/request"
	"salon-booking/internal/dto/response"
	"salon-booking/internal/notification"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ContactService interface {
	CreateMessage(ctx context.Context, req *request.CreateContactRequest) (*response.ContactResponse, error)
	ListMessages(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.ContactResponse], error)
	GetMessage(ctx context.Context, messageID string) (*response.ContactResponse, error)
	UpdateMessage(ctx context.Context, messageID string, req *request.UpdateContactRequest) (*response.ContactResponse, error)
	DeleteMessage(ctx context.Context, messageID string) error
	MarkRead(ctx context.Context, req *request.IDsRequest) (*response.BulkActionResponse, error)
	MarkReplied(ctx context.Context, req *request.IDsRequest) (*response.BulkActionResponse, error)
}

type contactService struct {
	repo       *repository.Repository
	notifier   notification.Notifier
	adminEmail string
	now        Clock
	log        *zap.Logger
}

func NewContactService(repo *repository.Repository, notifier notification.Notifier, adminEmail string, now Clock, log *zap.Logger) ContactService {
	return &contactService{
		repo:       repo,
		notifier:   notifier,
		adminEmail: adminEmail,
		now:        now,
		log:        log.With(zap.String("service", "contact")),
	}
}

func (s *contactService) CreateMessage(ctx context.Context, req *request.CreateContactRequest) (*response.ContactResponse, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	message := &entity.ContactMessage{
		BaseSimple: entity.BaseSimple{ID: uuid.New(), CreatedAt: s.now()},
		Name:       req.Name,
		Email:      req.Email,
		Subject:    req.Subject,
		Message:    req.Message,
	}

	if err := s.repo.Contact.Create(ctx, message); err != nil {
		return nil, fmt.Errorf("create contact message: %w", err)
	}

	s.log.Info("Contact message received", zap.String("message_id", message.ID.String()))

	settings, err := s.repo.Settings.GetOrCreate(ctx)
	if err != nil {
		s.log.Warn("Could not load settings, skipping admin alert", zap.Error(err))
	} else if settings.AdminNotificationEnabled {
		if to := adminRecipient(settings, s.adminEmail); to != "" {
			s.notifier.Enqueue(notification.ContactAlert(to, message))
		}
	}

	resp := response.ContactToResponse(message)
	return &resp, nil
}

func (s *contactService) ListMessages(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.ContactResponse], error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	messages, err := s.repo.Contact.FindAll(ctx, req.Limit(), req.Offset())
	if err != nil {
		return nil, fmt.Errorf("list contact messages: %w", err)
	}

	total, err := s.repo.Contact.CountAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("count contact messages: %w", err)
	}

	return response.NewPaginatedResponse(response.ContactsToResponse(messages), req.Page, req.Limit(), total), nil
}

func (s *contactService) GetMessage(ctx context.Context, messageID string) (*response.ContactResponse, error) {
	message, err := s.find(ctx, messageID)
	if err != nil {
		return nil, err
	}

	resp := response.ContactToResponse(message)
	return &resp, nil
}

func (s *contactService) UpdateMessage(ctx context.Context, messageID string, req *request.UpdateContactRequest) (*response.ContactResponse, error) {
	message, err := s.find(ctx, messageID)
	if err != nil {
		return nil, err
	}

	if req.IsRead != nil {
		message.IsRead = *req.IsRead
	}
	if req.Replied != nil {
		message.Replied = *req.Replied
	}

	if err := s.repo.Contact.Update(ctx, message); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, NotFoundError("Message not found")
		}
		return nil, fmt.Errorf("update contact message %s: %w", message.ID, err)
	}

	resp := response.ContactToResponse(message)
	return &resp, nil
}

func (s *contactService) DeleteMessage(ctx context.Context, messageID string) error {
	id, err := uuid.Parse(messageID)
	if err != nil {
		return NotFoundError("Message not found")
	}

	if err := s.repo.Contact.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return NotFoundError("Message not found")
		}
		return fmt.Errorf("delete contact message %s: %w", id, err)
	}
	return nil
}

func (s *contactService) MarkRead(ctx context.Context, req *request.IDsRequest) (*response.BulkActionResponse, error) {
	return s.bulk(ctx, req, "read", s.repo.Contact.MarkRead)
}

func (s *contactService) MarkReplied(ctx context.Context, req *request.IDsRequest) (*response.BulkActionResponse, error) {
	return s.bulk(ctx, req, "replied", s.repo.Contact.MarkReplied)
}

func (s *contactService) bulk(ctx context.Context, req *request.IDsRequest, action string, apply func(context.Context, []uuid.UUID) (int64, error)) (*response.BulkActionResponse, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	ids, err := parseIDs(req.IDs)
	if err != nil {
		return nil, err
	}

	updated, err := apply(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("mark contact messages %s: %w", action, err)
	}

	s.log.Info("Contact messages marked", zap.String("action", action), zap.Int64("updated", updated))
	return &response.BulkActionResponse{Updated: updated}, nil
}

func (s *contactService) find(ctx context.Context, messageID string) (*entity.ContactMessage, error) {
	id, err := uuid.Parse(messageID)
	if err != nil {
		return nil, NotFoundError("Message not found")
	}

	message, err := s.repo.Contact.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load contact message %s: %w", id, err)
	}
	if message == nil {
		return nil, NotFoundError("Message not found")
	}
	return message, nil
}
