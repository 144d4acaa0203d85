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

// ClassService представляет сервис классов и зачислений
type ClassService struct {
	classRepo repository.ClassRepository
	userRepo  repository.UserRepository
}

// NewClassService создает новый сервис классов
func NewClassService(classRepo repository.ClassRepository, userRepo repository.UserRepository) *ClassService {
	return &ClassService{
		classRepo: classRepo,
		userRepo:  userRepo,
	}
}

// CreateClass создает новый класс за указанным преподавателем
func (s *ClassService) CreateClass(teacherID uuid.UUID, name, description string) (*models.Class, error) {
	class := &models.Class{
		ID:          uuid.New(),
		Name:        name,
		Description: description,
		TeacherID:   teacherID,
	}

	if err := s.classRepo.Create(class); err != nil {
		return nil, apperrors.Internal(err)
	}

	return class, nil
}

// ListClasses возвращает свои классы для преподавателя и зачисленные для ученика
func (s *ClassService) ListClasses(req access.Requester) ([]models.Class, error) {
	switch req.Role {
	case models.RoleTeacher:
		classes, err := s.classRepo.ListByTeacher(req.ID)
		if err != nil {
			return nil, apperrors.Internal(err)
		}
		return classes, nil
	case models.RoleStudent:
		classes, err := s.classRepo.ListByStudent(req.ID)
		if err != nil {
			return nil, apperrors.Internal(err)
		}
		return classes, nil
	}
	return nil, apperrors.New(apperrors.KindForbidden, access.ReasonAccessDenied)
}

// AvailableStudents возвращает учеников без единого зачисления.
// Доступно только преподавателям с премиум-аккаунтом.
func (s *ClassService) AvailableStudents(req access.Requester) ([]models.User, error) {
	decision := access.Authorize(req, access.ActionListAvailableStudents, access.Resource{})
	if !decision.Allowed {
		return nil, apperrors.New(apperrors.KindForbidden, decision.Reason)
	}

	students, err := s.userRepo.ListUnenrolledStudents()
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return students, nil
}

// GetClass возвращает класс владельцу или зачисленному ученику
func (s *ClassService) GetClass(req access.Requester, classID uuid.UUID) (*models.Class, error) {
	class, err := s.classRepo.GetByID(classID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.New(apperrors.KindNotFound, "Class not found")
		}
		return nil, apperrors.Internal(err)
	}

	res := access.Resource{TeacherID: class.TeacherID}
	if req.Role == models.RoleStudent {
		res.Enrolled, err = s.classRepo.IsEnrolled(req.ID, classID)
		if err != nil {
			return nil, apperrors.Internal(err)
		}
	}

	decision := access.Authorize(req, access.ActionViewClass, res)
	if !decision.Allowed {
		return nil, apperrors.New(apperrors.KindForbidden, decision.Reason)
	}

	return class, nil
}

// AddStudents зачисляет учеников в класс; дубликаты игнорируются
func (s *ClassService) AddStudents(req access.Requester, classID uuid.UUID, studentIDs []uuid.UUID) error {
	if len(studentIDs) == 0 {
		return apperrors.New(apperrors.KindValidation, "Please provide an array of student IDs")
	}

	class, err := s.classRepo.GetByID(classID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.New(apperrors.KindNotFound, "Class not found")
		}
		return apperrors.Internal(err)
	}

	decision := access.Authorize(req, access.ActionManageClass, access.Resource{TeacherID: class.TeacherID})
	if !decision.Allowed {
		return apperrors.New(apperrors.KindForbidden, decision.Reason)
	}

	if err := s.classRepo.AddStudents(classID, studentIDs); err != nil {
		return apperrors.Internal(err)
	}

	return nil
}
