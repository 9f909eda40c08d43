package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/shenikar/family_locator/internal/models"
	"github.com/shenikar/family_locator/internal/realtime"
	"github.com/sirupsen/logrus"
)

// ProfileRepository определяет контракт для работы с бд профилей
type ProfileRepository interface {
	GetByID(ctx context.Context, uid string) (*models.UserProfile, error)
	Create(ctx context.Context, profile *models.UserProfile) error
	FindByEmail(ctx context.Context, email string) ([]*models.UserProfile, error)
	AddFollow(ctx context.Context, uid, target string) error
	RemoveFollow(ctx context.Context, uid, target string) error
	AddLocationRequest(ctx context.Context, uid, target string) error
	AcceptLocationRequest(ctx context.Context, uid, requester string) error
	RejectLocationRequest(ctx context.Context, uid, requester string) error
	PublishProfile(ctx context.Context, uid string) error
	WatchProfile(ctx context.Context, uid string) (realtime.Subscription[models.UserProfile], error)
}

// NotificationRepository определяет контракт для работы с уведомлениями пользователя
type NotificationRepository interface {
	Append(ctx context.Context, notification *models.NotificationRecord) error
	ListByUser(ctx context.Context, uid string, page, pageSize int) ([]*models.NotificationRecord, error)
}

// ProfileService определяет контракт бизнес-логики профилей и подписок
type ProfileService interface {
	EnsureProfile(ctx context.Context, uid, email string) (*models.UserProfile, error)
	GetProfile(ctx context.Context, uid string) (*models.UserProfile, error)
	SearchByEmail(ctx context.Context, requesterID, email string) ([]*models.UserProfile, error)
	Follow(ctx context.Context, uid, target string) error
	Unfollow(ctx context.Context, uid, target string) error
	SendLocationRequest(ctx context.Context, uid, target string) error
	AcceptLocationRequest(ctx context.Context, uid, requester string) error
	RejectLocationRequest(ctx context.Context, uid, requester string) error
	ListNotifications(ctx context.Context, uid string, page, pageSize int) ([]*models.NotificationRecord, error)
	WatchProfile(ctx context.Context, uid string) (realtime.Subscription[models.UserProfile], error)
}

type profileService struct {
	repo          ProfileRepository
	notifications NotificationRepository
	logger        *logrus.Logger
}

func NewProfileService(repo ProfileRepository, notifications NotificationRepository, logger *logrus.Logger) ProfileService {
	return &profileService{
		repo:          repo,
		notifications: notifications,
		logger:        logger,
	}
}

// EnsureProfile возвращает профиль, создавая профиль по умолчанию, если его еще нет
func (s *profileService) EnsureProfile(ctx context.Context, uid, email string) (*models.UserProfile, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service": "profile",
		"method":  "EnsureProfile",
		"user_id": uid,
	})

	profile, err := s.repo.GetByID(ctx, uid)
	if err == nil {
		return profile, nil
	}
	if !errors.Is(err, models.ErrProfileNotFound) {
		log.WithError(err).Error("Failed to get profile from repository")
		return nil, fmt.Errorf("service: could not get profile: %w", err)
	}

	log.Info("Profile is missing, creating default profile")
	profile = models.NewDefaultProfile(uid, email)
	if err := s.repo.Create(ctx, profile); err != nil {
		log.WithError(err).Error("Failed to create default profile")
		return nil, fmt.Errorf("service: could not create profile: %w", err)
	}
	return profile, nil
}

// GetProfile получает профиль по ID
func (s *profileService) GetProfile(ctx context.Context, uid string) (*models.UserProfile, error) {
	profile, err := s.repo.GetByID(ctx, uid)
	if err != nil {
		s.logger.WithFields(logrus.Fields{
			"service": "profile",
			"method":  "GetProfile",
			"user_id": uid,
		}).WithError(err).Warn("Failed to get profile from repository")
		return nil, fmt.Errorf("service: could not get profile: %w", err)
	}
	return profile, nil
}

// SearchByEmail ищет пользователей по email, исключая самого запрашивающего
func (s *profileService) SearchByEmail(ctx context.Context, requesterID, email string) ([]*models.UserProfile, error) {
	profiles, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("service: could not search profiles: %w", err)
	}

	result := make([]*models.UserProfile, 0, len(profiles))
	for _, p := range profiles {
		if p.UID != requesterID {
			result = append(result, p)
		}
	}
	return result, nil
}

// Follow подписывает uid на target и включает взаимный обмен геопозицией
func (s *profileService) Follow(ctx context.Context, uid, target string) error {
	return s.mutate(ctx, "Follow", uid, target, s.repo.AddFollow)
}

// Unfollow отменяет подписку и обмен геопозицией
func (s *profileService) Unfollow(ctx context.Context, uid, target string) error {
	return s.mutate(ctx, "Unfollow", uid, target, s.repo.RemoveFollow)
}

func (s *profileService) SendLocationRequest(ctx context.Context, uid, target string) error {
	return s.mutate(ctx, "SendLocationRequest", uid, target, s.repo.AddLocationRequest)
}

func (s *profileService) AcceptLocationRequest(ctx context.Context, uid, requester string) error {
	return s.mutate(ctx, "AcceptLocationRequest", uid, requester, s.repo.AcceptLocationRequest)
}

func (s *profileService) RejectLocationRequest(ctx context.Context, uid, requester string) error {
	return s.mutate(ctx, "RejectLocationRequest", uid, requester, s.repo.RejectLocationRequest)
}

// mutate выполняет изменение связи двух профилей и рассылает оба профиля подписчикам
func (s *profileService) mutate(ctx context.Context, method, uid, other string, op func(ctx context.Context, uid, other string) error) error {
	log := s.logger.WithFields(logrus.Fields{
		"service": "profile",
		"method":  method,
		"user_id": uid,
		"other":   other,
	})

	if uid == "" || other == "" || uid == other {
		log.Warn("Rejected relation change with invalid target")
		return fmt.Errorf("service: %s: %w", method, models.ErrInvalidTarget)
	}

	if err := op(ctx, uid, other); err != nil {
		log.WithError(err).Error("Failed to update profiles in repository")
		return fmt.Errorf("service: could not %s: %w", method, err)
	}

	for _, id := range []string{uid, other} {
		if err := s.repo.PublishProfile(ctx, id); err != nil {
			log.WithError(err).WithField("published_user_id", id).Warn("Failed to publish profile change")
		}
	}

	log.Info("Profiles updated successfully")
	return nil
}

// ListNotifications возвращает уведомления пользователя, новые первыми
func (s *profileService) ListNotifications(ctx context.Context, uid string, page, pageSize int) ([]*models.NotificationRecord, error) {
	if page < 1 {
		page = 1
	}

	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	log := s.logger.WithFields(logrus.Fields{
		"service":   "profile",
		"method":    "ListNotifications",
		"user_id":   uid,
		"page":      page,
		"page_size": pageSize,
	})

	notifications, err := s.notifications.ListByUser(ctx, uid, page, pageSize)
	if err != nil {
		log.WithError(err).Error("Failed to list notifications from repository")
		return nil, fmt.Errorf("service: could not list notifications: %w", err)
	}

	log.WithField("count", len(notifications)).Debug("Notifications listed successfully")
	return notifications, nil
}

func (s *profileService) WatchProfile(ctx context.Context, uid string) (realtime.Subscription[models.UserProfile], error) {
	return s.repo.WatchProfile(ctx, uid)
}
