package services

import (
	"errors"
	"mime/multipart"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Abdalla343/kushof/internal/access"
	"github.com/Abdalla343/kushof/internal/apperrors"
	"github.com/Abdalla343/kushof/internal/models"
	"github.com/Abdalla343/kushof/internal/repository"
	"github.com/Abdalla343/kushof/pkg/storage"
)

// ExamService представляет сервис экзаменов и сдачи ответов
type ExamService struct {
	examRepo    repository.ExamRepository
	subjectRepo repository.SubjectRepository
	classRepo   repository.ClassRepository
	storage     *storage.Storage
}

// NewExamService создает новый сервис экзаменов
func NewExamService(examRepo repository.ExamRepository, subjectRepo repository.SubjectRepository, classRepo repository.ClassRepository, st *storage.Storage) *ExamService {
	return &ExamService{
		examRepo:    examRepo,
		subjectRepo: subjectRepo,
		classRepo:   classRepo,
		storage:     st,
	}
}

// PublishExam публикует экзамен с PDF-файлом по предмету.
// Файл сохраняется первым; при любой последующей ошибке он удаляется,
// чтобы не оставлять сирот на диске.
func (s *ExamService) PublishExam(req access.Requester, subjectID uuid.UUID, title, description string, file *multipart.FileHeader) (*models.Exam, error) {
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

	filePath, err := s.storage.SaveExam(file)
	if err != nil {
		return nil, fileError(err)
	}

	created := false
	defer func() {
		if !created {
			s.storage.Remove(filePath)
		}
	}()

	exam := &models.Exam{
		ID:          uuid.New(),
		SubjectID:   subjectID,
		Title:       title,
		Description: description,
		ExamPdfPath: filePath,
		ExamPdfName: file.Filename,
		CreatedBy:   req.ID,
	}

	if err := s.examRepo.Create(exam); err != nil {
		return nil, apperrors.Internal(err)
	}

	created = true
	return exam, nil
}

// ListExams возвращает экзамены: преподавателю по его классам со всеми
// ответами, ученику по его зачислениям с собственными ответами
func (s *ExamService) ListExams(req access.Requester) ([]models.Exam, error) {
	switch req.Role {
	case models.RoleTeacher:
		exams, err := s.examRepo.ListByTeacher(req.ID)
		if err != nil {
			return nil, apperrors.Internal(err)
		}
		return exams, nil
	case models.RoleStudent:
		exams, err := s.examRepo.ListForStudent(req.ID)
		if err != nil {
			return nil, apperrors.Internal(err)
		}
		return exams, nil
	}
	return nil, apperrors.New(apperrors.KindForbidden, access.ReasonAccessDenied)
}

// GetExam возвращает экзамен владельцу класса или зачисленному ученику
func (s *ExamService) GetExam(req access.Requester, examID uuid.UUID) (*models.Exam, error) {
	exam, res, err := s.loadExam(req, examID)
	if err != nil {
		return nil, err
	}

	decision := access.Authorize(req, access.ActionViewExam, res)
	if !decision.Allowed {
		return nil, apperrors.New(apperrors.KindForbidden, decision.Reason)
	}

	return exam, nil
}

// SubmitAnswer принимает PDF-ответ ученика на экзамен.
// Повторная сдача отклоняется, первый ответ остается нетронутым.
func (s *ExamService) SubmitAnswer(req access.Requester, examID uuid.UUID, file *multipart.FileHeader) (*models.ExamAnswer, error) {
	_, res, err := s.loadExam(req, examID)
	if err != nil {
		return nil, err
	}

	decision := access.Authorize(req, access.ActionSubmitAnswer, res)
	if !decision.Allowed {
		return nil, apperrors.New(apperrors.KindForbidden, decision.Reason)
	}

	exists, err := s.examRepo.HasAnswer(examID, req.ID)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	if exists {
		return nil, apperrors.New(apperrors.KindConflict, "You have already submitted an answer for this exam")
	}

	filePath, err := s.storage.SaveAnswer(file)
	if err != nil {
		return nil, fileError(err)
	}

	created := false
	defer func() {
		if !created {
			s.storage.Remove(filePath)
		}
	}()

	answer := &models.ExamAnswer{
		ID:            uuid.New(),
		ExamID:        examID,
		StudentID:     req.ID,
		AnswerPdfPath: filePath,
		AnswerPdfName: file.Filename,
	}

	if err := s.examRepo.CreateAnswer(answer); err != nil {
		// Гонка двух одновременных сдач: уникальный индекс побеждает
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.New(apperrors.KindConflict, "You have already submitted an answer for this exam")
		}
		return nil, apperrors.Internal(err)
	}

	created = true
	return answer, nil
}

// DownloadExam возвращает путь и исходное имя PDF экзамена
func (s *ExamService) DownloadExam(req access.Requester, examID uuid.UUID) (string, string, error) {
	exam, res, err := s.loadExam(req, examID)
	if err != nil {
		return "", "", err
	}

	decision := access.Authorize(req, access.ActionDownloadExam, res)
	if !decision.Allowed {
		return "", "", apperrors.New(apperrors.KindForbidden, decision.Reason)
	}

	if !s.storage.Exists(exam.ExamPdfPath) {
		return "", "", apperrors.New(apperrors.KindNotFound, "File not found on server")
	}

	return exam.ExamPdfPath, exam.ExamPdfName, nil
}

// DownloadAnswer возвращает путь и исходное имя PDF ответа ученика.
// Доступно только преподавателю, владеющему классом экзамена.
func (s *ExamService) DownloadAnswer(req access.Requester, answerID uuid.UUID) (string, string, error) {
	answer, err := s.examRepo.GetAnswerByID(answerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", "", apperrors.New(apperrors.KindNotFound, "Answer not found")
		}
		return "", "", apperrors.Internal(err)
	}

	decision := access.Authorize(req, access.ActionDownloadAnswer, access.Resource{TeacherID: answer.Exam.Subject.Class.TeacherID})
	if !decision.Allowed {
		return "", "", apperrors.New(apperrors.KindForbidden, decision.Reason)
	}

	if !s.storage.Exists(answer.AnswerPdfPath) {
		return "", "", apperrors.New(apperrors.KindNotFound, "File not found on server")
	}

	return answer.AnswerPdfPath, answer.AnswerPdfName, nil
}

// loadExam загружает экзамен и собирает факты доступа для проверки
func (s *ExamService) loadExam(req access.Requester, examID uuid.UUID) (*models.Exam, access.Resource, error) {
	exam, err := s.examRepo.GetByID(examID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, access.Resource{}, apperrors.New(apperrors.KindNotFound, "Exam not found")
		}
		return nil, access.Resource{}, apperrors.Internal(err)
	}

	res := access.Resource{TeacherID: exam.Subject.Class.TeacherID}
	if req.Role == models.RoleStudent {
		res.Enrolled, err = s.classRepo.IsEnrolled(req.ID, exam.Subject.ClassID)
		if err != nil {
			return nil, access.Resource{}, apperrors.Internal(err)
		}
	}

	return exam, res, nil
}

// fileError переводит ошибки валидации файла в ошибки уровня запроса
func fileError(err error) error {
	switch {
	case errors.Is(err, storage.ErrFileTooLarge):
		return apperrors.New(apperrors.KindValidation, "File size exceeds maximum allowed size")
	case errors.Is(err, storage.ErrNotPDF):
		return apperrors.New(apperrors.KindValidation, "Only PDF files are allowed")
	}
	return apperrors.Internal(err)
}
