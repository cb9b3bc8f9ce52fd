package service

import (
	"context"

	"github.com/agrimarket/agrimarket-api/internal/domain/entity"
	"github.com/agrimarket/agrimarket-api/internal/domain/enum"
	"github.com/agrimarket/agrimarket-api/internal/domain/repository"
	"github.com/agrimarket/agrimarket-api/pkg/apperror"
	"github.com/google/uuid"
)

// MessageService handles storefront contact messages
type MessageService struct {
	messageRepo repository.MessageRepository
}

// NewMessageService creates a new message service
func NewMessageService(messageRepo repository.MessageRepository) *MessageService {
	return &MessageService{messageRepo: messageRepo}
}

// CreateMessageInput represents a contact form submission
type CreateMessageInput struct {
	Name    string
	Email   string
	Phone   *string
	Subject string
	Body    string
}

// CreateMessage records a contact form submission
func (s *MessageService) CreateMessage(ctx context.Context, input *CreateMessageInput) (*entity.Message, error) {
	message := &entity.Message{
		Name:    input.Name,
		Email:   input.Email,
		Phone:   input.Phone,
		Subject: input.Subject,
		Body:    input.Body,
		Status:  enum.MessageStatusNew,
	}
	if err := s.messageRepo.Create(ctx, message); err != nil {
		return nil, err
	}
	return message, nil
}

// GetMessage retrieves a message and marks it read on first open
func (s *MessageService) GetMessage(ctx context.Context, id uuid.UUID) (*entity.Message, error) {
	message, err := s.messageRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if message == nil {
		return nil, apperror.NewNotFoundError("Message")
	}

	if message.Status == enum.MessageStatusNew {
		message.Status = enum.MessageStatusRead
		if err := s.messageRepo.Update(ctx, message); err != nil {
			return nil, err
		}
	}
	return message, nil
}

// ListMessages returns a filtered page of messages
func (s *MessageService) ListMessages(ctx context.Context, params *repository.MessageFilterParams) ([]entity.Message, int64, error) {
	return s.messageRepo.List(ctx, params)
}

// UpdateMessageStatus moves a message along its handling lifecycle
func (s *MessageService) UpdateMessageStatus(ctx context.Context, id uuid.UUID, status enum.MessageStatus) (*entity.Message, error) {
	if !status.IsValid() {
		return nil, apperror.NewBadRequestError("Invalid message status")
	}

	message, err := s.messageRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if message == nil {
		return nil, apperror.NewNotFoundError("Message")
	}

	message.Status = status
	if err := s.messageRepo.Update(ctx, message); err != nil {
		return nil, err
	}
	return message, nil
}

// DeleteMessage removes a message
func (s *MessageService) DeleteMessage(ctx context.Context, id uuid.UUID) error {
	message, err := s.messageRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if message == nil {
		return apperror.NewNotFoundError("Message")
	}
	return s.messageRepo.Delete(ctx, id)
}
