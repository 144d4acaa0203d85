package access

import (
	"github.com/google/uuid"

	"github.com/Abdalla343/kushof/internal/models"
)

// Action определяет охраняемую операцию
type Action int

const (
	ActionViewClass Action = iota
	ActionManageClass
	ActionListAvailableStudents
	ActionViewSubject
	ActionViewExam
	ActionSubmitAnswer
	ActionDownloadExam
	ActionDownloadAnswer
	ActionViewSubjectGrades
	ActionViewOwnGrades
	ActionViewOwnSubjectGrade
	ActionListUsers
	ActionApproveTeacher
	ActionDeleteUser
)

// Причины отказа в доступе
const (
	ReasonAccessDenied      = "Access denied"
	ReasonCannotDeleteAdmin = "Cannot delete admin users"
	ReasonNotEnrolled       = "Access denied. Not enrolled in this subject."
	ReasonPremiumOnly       = "This feature is available for Premium users. Please upgrade your account or subscribe to enjoy it."
)

// Requester описывает субъекта запроса
type Requester struct {
	ID      uuid.UUID
	Role    models.UserRole
	IsPrime bool
}

// Resource описывает факты о целевом ресурсе на момент проверки
type Resource struct {
	TeacherID  uuid.UUID       // владелец класса, к поддереву которого относится ресурс
	Enrolled   bool            // зачислен ли запрашивающий в этот класс
	TargetRole models.UserRole // роль целевого пользователя (для операций администратора)
}

// Decision представляет результат проверки доступа
type Decision struct {
	Allowed bool
	Reason  string
}

func allow() Decision {
	return Decision{Allowed: true}
}

func deny(reason string) Decision {
	return Decision{Reason: reason}
}

// Authorize выполняет чистую проверку доступа по переданным фактам.
// Никаких обращений к хранилищу: владение и зачисление передаются вызывающим.
func Authorize(r Requester, action Action, res Resource) Decision {
	switch action {
	case ActionListUsers, ActionApproveTeacher:
		if r.Role == models.RoleAdmin {
			return allow()
		}
		return deny(ReasonAccessDenied)

	case ActionDeleteUser:
		if r.Role != models.RoleAdmin {
			return deny(ReasonAccessDenied)
		}
		if res.TargetRole == models.RoleAdmin {
			return deny(ReasonCannotDeleteAdmin)
		}
		return allow()

	case ActionManageClass, ActionViewSubjectGrades, ActionDownloadAnswer:
		if r.Role == models.RoleTeacher && res.TeacherID == r.ID {
			return allow()
		}
		return deny(ReasonAccessDenied)

	case ActionListAvailableStudents:
		if r.Role != models.RoleTeacher {
			return deny(ReasonAccessDenied)
		}
		if !r.IsPrime {
			return deny(ReasonPremiumOnly)
		}
		return allow()

	case ActionViewClass, ActionViewSubject, ActionViewExam, ActionDownloadExam:
		if r.Role == models.RoleTeacher && res.TeacherID == r.ID {
			return allow()
		}
		if r.Role == models.RoleStudent && res.Enrolled {
			return allow()
		}
		return deny(ReasonAccessDenied)

	case ActionSubmitAnswer:
		if r.Role == models.RoleStudent && res.Enrolled {
			return allow()
		}
		return deny(ReasonAccessDenied)

	case ActionViewOwnGrades:
		if r.Role == models.RoleStudent {
			return allow()
		}
		return deny(ReasonAccessDenied)

	case ActionViewOwnSubjectGrade:
		if r.Role != models.RoleStudent {
			return deny(ReasonAccessDenied)
		}
		if !res.Enrolled {
			return deny(ReasonNotEnrolled)
		}
		return allow()
	}

	return deny(ReasonAccessDenied)
}
