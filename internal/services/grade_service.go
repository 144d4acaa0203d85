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

// GradeService представляет сервис оценок
type GradeService struct {
	gradeRepo   repository.GradeRepository
	subjectRepo repository.SubjectRepository
	classRepo   repository.ClassRepository
}

// NewGradeService создает новый сервис оценок
func NewGradeService(gradeRepo repository.GradeRepository, subjectRepo repository.SubjectRepository, classRepo repository.ClassRepository) *GradeService {
	return &GradeService{
		gradeRepo:   gradeRepo,
		subjectRepo: subjectRepo,
		classRepo:   classRepo,
	}
}

// GradeEntry представляет одну оценку в пакете выставления
type GradeEntry struct {
	StudentID  uuid.UUID `json:"studentId"`
	Grade      *float64  `json:"grade"`
	Assignment *string   `json:"assignment,omitempty"`
	Comments   string    `json:"comments,omitempty"`
}

// AssignGrades выставляет пакет оценок по предмету по принципу все-или-ничего.
// Любая невалидная запись отклоняет весь пакет до записи в базу.
func (s *GradeService) AssignGrades(req access.Requester, subjectID uuid.UUID, entries []GradeEntry) ([]models.Grade, error) {
	if len(entries) == 0 {
		return nil, apperrors.New(apperrors.KindValidation, "Please provide an array of grades")
	}

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

	grades := make([]models.Grade, 0, len(entries))
	for _, entry := range entries {
		if entry.StudentID == uuid.Nil || entry.Grade == nil {
			return nil, apperrors.New(apperrors.KindValidation, "Student ID and grade are required for each entry")
		}
		if *entry.Grade < 0 || *entry.Grade > 100 {
			return nil, apperrors.New(apperrors.KindValidation, "Grade must be between 0 and 100")
		}

		enrolled, err := s.classRepo.IsEnrolled(entry.StudentID, subject.ClassID)
		if err != nil {
			return nil, apperrors.Internal(err)
		}
		if !enrolled {
			return nil, apperrors.Newf(apperrors.KindValidation, "Student with ID %s is not enrolled in this class", entry.StudentID)
		}

		grades = append(grades, models.Grade{
			ID:         uuid.New(),
			StudentID:  entry.StudentID,
			SubjectID:  subjectID,
			Grade:      *entry.Grade,
			Assignment: entry.Assignment,
			Comments:   entry.Comments,
		})
	}

	if err := s.gradeRepo.UpsertBatch(grades); err != nil {
		return nil, apperrors.Internal(err)
	}

	// Перечитываем сохраненные строки: при обновлении существующей оценки
	// идентификатор берется из хранилища, а не из подготовленного пакета
	stored := make([]models.Grade, 0, len(grades))
	for _, grade := range grades {
		row, err := s.gradeRepo.GetByKey(grade.StudentID, grade.SubjectID, grade.Assignment)
		if err != nil {
			return nil, apperrors.Internal(err)
		}
		stored = append(stored, *row)
	}

	return stored, nil
}

// SubjectGrades возвращает оценки всех учеников по предмету владельцу класса
func (s *GradeService) SubjectGrades(req access.Requester, subjectID uuid.UUID) ([]models.Grade, error) {
	subject, err := s.subjectRepo.GetByID(subjectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.New(apperrors.KindNotFound, "Subject not found")
		}
		return nil, apperrors.Internal(err)
	}

	decision := access.Authorize(req, access.ActionViewSubjectGrades, access.Resource{TeacherID: subject.Class.TeacherID})
	if !decision.Allowed {
		return nil, apperrors.New(apperrors.KindForbidden, decision.Reason)
	}

	grades, err := s.gradeRepo.ListBySubject(subjectID)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return grades, nil
}

// MyGrades возвращает ученику все его оценки по всем предметам
func (s *GradeService) MyGrades(req access.Requester) ([]models.Grade, error) {
	decision := access.Authorize(req, access.ActionViewOwnGrades, access.Resource{})
	if !decision.Allowed {
		return nil, apperrors.New(apperrors.KindForbidden, decision.Reason)
	}

	grades, err := s.gradeRepo.ListByStudent(req.ID)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return grades, nil
}

// MySubjectGrade возвращает ученику его оценки по конкретному предмету
func (s *GradeService) MySubjectGrade(req access.Requester, subjectID uuid.UUID) ([]models.Grade, error) {
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

	decision := access.Authorize(req, access.ActionViewOwnSubjectGrade, res)
	if !decision.Allowed {
		return nil, apperrors.New(apperrors.KindForbidden, decision.Reason)
	}

	grades, err := s.gradeRepo.ListByStudentAndSubject(req.ID, subjectID)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return grades, nil
}
