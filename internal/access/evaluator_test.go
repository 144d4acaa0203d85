package access

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/Abdalla343/kushof/internal/models"
)

func TestAuthorize(t *testing.T) {
	teacherID := uuid.New()
	otherTeacherID := uuid.New()
	studentID := uuid.New()
	adminID := uuid.New()

	owner := Requester{ID: teacherID, Role: models.RoleTeacher}
	primeOwner := Requester{ID: teacherID, Role: models.RoleTeacher, IsPrime: true}
	stranger := Requester{ID: otherTeacherID, Role: models.RoleTeacher}
	student := Requester{ID: studentID, Role: models.RoleStudent}
	admin := Requester{ID: adminID, Role: models.RoleAdmin}

	owned := Resource{TeacherID: teacherID}
	enrolled := Resource{TeacherID: teacherID, Enrolled: true}

	tests := []struct {
		name       string
		req        Requester
		action     Action
		res        Resource
		allowed    bool
		wantReason string
	}{
		{name: "owner manages class", req: owner, action: ActionManageClass, res: owned, allowed: true},
		{name: "other teacher cannot manage class", req: stranger, action: ActionManageClass, res: owned, wantReason: ReasonAccessDenied},
		{name: "student cannot manage class", req: student, action: ActionManageClass, res: enrolled, wantReason: ReasonAccessDenied},
		{name: "admin cannot manage class", req: admin, action: ActionManageClass, res: owned, wantReason: ReasonAccessDenied},

		{name: "owner views class", req: owner, action: ActionViewClass, res: owned, allowed: true},
		{name: "enrolled student views class", req: student, action: ActionViewClass, res: enrolled, allowed: true},
		{name: "unenrolled student denied", req: student, action: ActionViewClass, res: owned, wantReason: ReasonAccessDenied},
		{name: "other teacher cannot view class", req: stranger, action: ActionViewClass, res: owned, wantReason: ReasonAccessDenied},

		{name: "enrolled student views subject", req: student, action: ActionViewSubject, res: enrolled, allowed: true},
		{name: "enrolled student views exam", req: student, action: ActionViewExam, res: enrolled, allowed: true},
		{name: "enrolled student downloads exam", req: student, action: ActionDownloadExam, res: enrolled, allowed: true},
		{name: "unenrolled student cannot download exam", req: student, action: ActionDownloadExam, res: owned, wantReason: ReasonAccessDenied},

		{name: "enrolled student submits answer", req: student, action: ActionSubmitAnswer, res: enrolled, allowed: true},
		{name: "unenrolled student cannot submit", req: student, action: ActionSubmitAnswer, res: owned, wantReason: ReasonAccessDenied},
		{name: "teacher cannot submit answer", req: owner, action: ActionSubmitAnswer, res: owned, wantReason: ReasonAccessDenied},

		{name: "owner downloads answer", req: owner, action: ActionDownloadAnswer, res: owned, allowed: true},
		{name: "other teacher cannot download answer", req: stranger, action: ActionDownloadAnswer, res: owned, wantReason: ReasonAccessDenied},
		{name: "student cannot download answer", req: student, action: ActionDownloadAnswer, res: enrolled, wantReason: ReasonAccessDenied},

		{name: "prime teacher lists available students", req: primeOwner, action: ActionListAvailableStudents, res: Resource{}, allowed: true},
		{name: "non-prime teacher gets premium message", req: owner, action: ActionListAvailableStudents, res: Resource{}, wantReason: ReasonPremiumOnly},
		{name: "student cannot list available students", req: student, action: ActionListAvailableStudents, res: Resource{}, wantReason: ReasonAccessDenied},

		{name: "owner views subject grades", req: owner, action: ActionViewSubjectGrades, res: owned, allowed: true},
		{name: "student views own grades", req: student, action: ActionViewOwnGrades, res: Resource{}, allowed: true},
		{name: "teacher cannot view own grades", req: owner, action: ActionViewOwnGrades, res: Resource{}, wantReason: ReasonAccessDenied},
		{name: "enrolled student views own subject grade", req: student, action: ActionViewOwnSubjectGrade, res: enrolled, allowed: true},
		{name: "unenrolled student gets enrollment message", req: student, action: ActionViewOwnSubjectGrade, res: owned, wantReason: ReasonNotEnrolled},

		{name: "admin lists users", req: admin, action: ActionListUsers, res: Resource{}, allowed: true},
		{name: "teacher cannot list users", req: owner, action: ActionListUsers, res: Resource{}, wantReason: ReasonAccessDenied},
		{name: "admin approves teacher", req: admin, action: ActionApproveTeacher, res: Resource{}, allowed: true},
		{name: "admin deletes student", req: admin, action: ActionDeleteUser, res: Resource{TargetRole: models.RoleStudent}, allowed: true},
		{name: "admin deletes teacher", req: admin, action: ActionDeleteUser, res: Resource{TargetRole: models.RoleTeacher}, allowed: true},
		{name: "admin cannot delete admin", req: admin, action: ActionDeleteUser, res: Resource{TargetRole: models.RoleAdmin}, wantReason: ReasonCannotDeleteAdmin},
		{name: "teacher cannot delete user", req: owner, action: ActionDeleteUser, res: Resource{TargetRole: models.RoleStudent}, wantReason: ReasonAccessDenied},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decision := Authorize(tt.req, tt.action, tt.res)
			assert.Equal(t, tt.allowed, decision.Allowed)
			if !tt.allowed {
				assert.Equal(t, tt.wantReason, decision.Reason)
			}
		})
	}
}
