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

// SubjectService представляет сервис предметов
type SubjectService struct {
	subjectRepo repository.SubjectRepository
	classRepo   repository.ClassRepository
}

// NewSubjectService создает новый сервис предметов
func NewSubjectService(subjectRepo repository.SubjectRepository, classRepo repository.ClassRepository) *SubjectService {
	return &SubjectService{
		subjectRepo: subjectRepo,
		classRepo:   classRepo,
	}
}

// SubjectDetails представляет предмет с ведомостью учеников для владельца
type SubjectDetails struct {
	Subject  *models.Subject `json:"subject"`
	Students []models.User   `json:"students,omitempty"`
}

// CreateSubject создает предмет в классе, принадлежащем преподавателю.
// Чужой или несуществующий класс не раскрывается: в обоих случаях 404.
func (s *SubjectService) CreateSubject(req access.Requester, name, description string, classID uuid.UUID) (*models.Subject, error) {
	class, err := s.classRepo.GetByID(classID)
	if err != nil || class.TeacherID != req.ID {
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.Internal(err)
		}
		return nil, apperrors.New(apperrors.KindNotFound, "Class not found or access denied")
	}

	subject := &models.Subject{
		ID:          uuid.New(),
		Name:        name,
		Description: description,
		ClassID:     classID,
	}

	if err := s.subjectRepo.Create(subject); err != nil {
		return nil, apperrors.Internal(err)
	}

	return subject, nil
}

// ListByClass возвращает предметы класса владельцу или зачисленному ученику
func (s *SubjectService) ListByClass(req access.Requester, classID uuid.UUID) ([]models.Subject, error) {
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

	decision := access.Authorize(req, access.ActionViewSubject, res)
	if !decision.Allowed {
		return nil, apperrors.New(apperrors.KindForbidden, decision.Reason)
	}

	subjects, err := s.subjectRepo.ListByClass(classID)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return subjects, nil
}

// GetSubject возвращает предмет; владелец дополнительно получает список учеников класса
func (s *SubjectService) GetSubject(req access.Requester, subjectID uuid.UUID) (*SubjectDetails, error) {
	subject, err := s.subjectRepo.GetByID(subjectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.New(apperrors.KindNotFound, "Subject not found")
		}
		return nil, apperrors.Internal(err)
	}

	res := access.Resource{TeacherID: subject.Class.TeacherID}
	if req.Role == models.RoleStudent {
		res.Enrolled, err = s.classRepo.IsEnrolled(req.ID, subject.ClassID)
		if err != nil {
			return nil, apperrors.Internal(err)
		}
	}

	decision := access.Authorize(req, access.ActionViewSubject, res)
	if !decision.Allowed {
		return nil, apperrors.New(apperrors.KindForbidden, decision.Reason)
	}

	details := &SubjectDetails{Subject: subject}

	// Ведомость учеников видит только владелец класса
	if req.Role == models.RoleTeacher {
		class, err := s.classRepo.GetByID(subject.ClassID)
		if err != nil {
			return nil, apperrors.Internal(err)
		}
		details.Students = class.Students
	}

	return details, nil
}

// UpdateSubject обновляет предмет; доступно только владельцу класса
func (s *SubjectService) UpdateSubject(req access.Requester, subjectID uuid.UUID, name, description string) (*models.Subject, error) {
	subject, err := s.subjectRepo.GetByID(subjectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.New(apperrors.KindNotFound, "Subject not found")
		}
		return nil, apperrors.Internal(err)
	}

	decision := access.Authorize(req, access.ActionManageClass, access.Resource{TeacherID: subject.Class.TeacherID})
	if !decision.Allowed {
		return nil, apperrors.New(apperrors.KindForbidden, decision.Reason)
	}

	subject.Name = name
	subject.Description = description
	if err := s.subjectRepo.Update(subject); err != nil {
		return nil, apperrors.Internal(err)
	}

	return subject, nil
}
