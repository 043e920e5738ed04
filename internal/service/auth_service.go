// FILE: internal/service/auth_service.go
package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"keep-notes-be/internal/dto"
	"keep-notes-be/internal/entity"
	"keep-notes-be/internal/pkg/apperror"
	"keep-notes-be/internal/pkg/logger"
	"keep-notes-be/internal/pkg/token"
	"keep-notes-be/internal/repository/specification"
	"keep-notes-be/internal/repository/unitofwork"
	"keep-notes-be/pkg/events"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type IAuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.UserResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error)
	Me(ctx context.Context, userId uuid.UUID) (*dto.UserResponse, error)
}

type authService struct {
	uowFactory       unitofwork.RepositoryFactory
	tokens           *token.Manager
	publisherService IPublisherService
	eventPublisher   events.Publisher
	log              logger.ILogger
	clock            Clock
}

func NewAuthService(
	uowFactory unitofwork.RepositoryFactory,
	tokens *token.Manager,
	publisherService IPublisherService,
	eventPublisher events.Publisher,
	log logger.ILogger,
	clock Clock,
) IAuthService {
	if clock == nil {
		clock = time.Now
	}
	return &authService{
		uowFactory:       uowFactory,
		tokens:           tokens,
		publisherService: publisherService,
		eventPublisher:   eventPublisher,
		log:              log,
		clock:            clock,
	}
}

// bcryptCost is lowered by tests.
var bcryptCost = bcrypt.DefaultCost

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func toUserResponse(user *entity.User) *dto.UserResponse {
	return &dto.UserResponse{
		Id:        user.Id,
		Name:      user.Name,
		Email:     user.Email,
		IsActive:  user.IsActive,
		CreatedAt: user.CreatedAt,
	}
}

func (s *authService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.UserResponse, error) {
	email := normalizeEmail(req.Email)

	uow := s.uowFactory.NewUnitOfWork(ctx)
	taken, err := uow.UserRepository().Count(ctx, specification.ByEmail{Email: email})
	if err != nil {
		return nil, err
	}
	if taken > 0 {
		return nil, apperror.Conflict("User already exists")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		return nil, err
	}

	user := &entity.User{
		Id:           uuid.New(),
		Name:         strings.TrimSpace(req.Name),
		Email:        email,
		PasswordHash: string(hash),
		IsActive:     true,
		CreatedAt:    s.clock().UTC().Truncate(time.Microsecond),
	}
	if err := uow.UserRepository().Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperror.Conflict("User already exists")
		}
		return nil, err
	}

	s.notifyRegistered(ctx, user)

	return toUserResponse(user), nil
}

// notifyRegistered queues the welcome mail and announces the new account.
// Neither may fail the registration.
func (s *authService) notifyRegistered(ctx context.Context, user *entity.User) {
	msg, err := json.Marshal(dto.PublishWelcomeEmailMessage{Email: user.Email, Name: user.Name})
	if err == nil {
		err = s.publisherService.Publish(ctx, msg)
	}
	if err != nil {
		s.log.Warn("AUTH_SERVICE", "Failed to queue welcome email", map[string]interface{}{
			"user_id": user.Id.String(),
			"error":   err.Error(),
		})
	}

	if err := s.eventPublisher.Publish(ctx, events.NewUserRegistered(user.Id, user.Email, user.CreatedAt)); err != nil {
		s.log.Warn("AUTH_SERVICE", "Failed to publish event", map[string]interface{}{
			"event": events.TypeUserRegistered,
			"error": err.Error(),
		})
	}
}

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		return nil, apperror.Validation("Missing email or password")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	user, err := uow.UserRepository().FindOne(ctx, specification.ByEmail{Email: req.Email})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.Unauthorized("Invalid email or password")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, apperror.Unauthorized("Invalid email or password")
	}

	accessToken, err := s.tokens.Generate(user.Id, user.Name, user.Email)
	if err != nil {
		return nil, err
	}

	return &dto.LoginResponse{
		AccessToken: accessToken,
		User:        *toUserResponse(user),
	}, nil
}

func (s *authService) Me(ctx context.Context, userId uuid.UUID) (*dto.UserResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.NotFound("User not found")
	}
	return toUserResponse(user), nil
}
