package services

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Abdalla343/kushof/internal/access"
	"github.com/Abdalla343/kushof/internal/apperrors"
	"github.com/Abdalla343/kushof/internal/models"
	"github.com/Abdalla343/kushof/internal/repository"
)

// AdminService представляет сервис администрирования пользователей
type AdminService struct {
	userRepo repository.UserRepository
}

// NewAdminService создает новый сервис администрирования
func NewAdminService(userRepo repository.UserRepository) *AdminService {
	return &AdminService{userRepo: userRepo}
}

// ListUsers возвращает всех учеников и преподавателей с их классами
func (s *AdminService) ListUsers(req access.Requester) ([]models.User, error) {
	decision := access.Authorize(req, access.ActionListUsers, access.Resource{})
	if !decision.Allowed {
		return nil, apperrors.New(apperrors.KindForbidden, decision.Reason)
	}

	users, err := s.userRepo.ListByRoles(models.RoleStudent, models.RoleTeacher)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return users, nil
}

// ApproveTeacher подтверждает аккаунт преподавателя
func (s *AdminService) ApproveTeacher(req access.Requester, userID uuid.UUID) (*models.User, error) {
	decision := access.Authorize(req, access.ActionApproveTeacher, access.Resource{})
	if !decision.Allowed {
		return nil, apperrors.New(apperrors.KindForbidden, decision.Reason)
	}

	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.New(apperrors.KindNotFound, "User not found")
		}
		return nil, apperrors.Internal(err)
	}

	if user.Role != models.RoleTeacher {
		return nil, apperrors.New(apperrors.KindValidation, "Only teacher accounts can be approved")
	}

	user.IsApproved = true
	if err := s.userRepo.Update(user); err != nil {
		return nil, apperrors.Internal(err)
	}

	return user, nil
}

// DeleteUser удаляет пользователя. Администраторы не удаляются никогда,
// даже другим администратором.
func (s *AdminService) DeleteUser(req access.Requester, userID uuid.UUID) error {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.New(apperrors.KindNotFound, "User not found")
		}
		return apperrors.Internal(err)
	}

	decision := access.Authorize(req, access.ActionDeleteUser, access.Resource{TargetRole: user.Role})
	if !decision.Allowed {
		return apperrors.New(apperrors.KindForbidden, decision.Reason)
	}

	if err := s.userRepo.Delete(userID); err != nil {
		return apperrors.Internal(err)
	}

	return nil
}
