// file: internals/features/dashboard/service/dashboard_service.go
package service

import (
	"context"
	"time"

	classModel "schoolerp_backend/internals/features/academics/model"
	consentModel "schoolerp_backend/internals/features/consent/model"
	disciplineModel "schoolerp_backend/internals/features/discipline/model"
	examModel "schoolerp_backend/internals/features/exams/model"
	feeModel "schoolerp_backend/internals/features/fees/model"
	frontModel "schoolerp_backend/internals/features/frontoffice/model"
	homeworkModel "schoolerp_backend/internals/features/homework/model"
	hrModel "schoolerp_backend/internals/features/hr/model"
	libraryModel "schoolerp_backend/internals/features/library/model"
	noticeModel "schoolerp_backend/internals/features/notices/model"
	studentModel "schoolerp_backend/internals/features/students/model"
	"schoolerp_backend/internals/resource"

	"github.com/google/uuid"
)

const recentLimit = 5

// Service composes read-only summaries from the module stores. Nothing is
// cached: every call recomputes from the current data.
type Service struct {
	Students    resource.Store[studentModel.StudentModel]
	Classes     resource.Store[classModel.ClassModel]
	Staff       resource.Store[hrModel.StaffModel]
	Leaves      resource.Store[hrModel.LeaveRequestModel]
	Payments    resource.Store[feeModel.FeePaymentModel]
	Issues      resource.Store[libraryModel.BookIssueModel]
	Incidents   resource.Store[disciplineModel.IncidentModel]
	Enquiries   resource.Store[frontModel.EnquiryModel]
	Visitors    resource.Store[frontModel.VisitorModel]
	Homework    resource.Store[homeworkModel.HomeworkModel]
	Submissions resource.Store[homeworkModel.SubmissionModel]
	Results     resource.Store[examModel.ExamResultModel]
	Consents    resource.Store[consentModel.ConsentLetterModel]
	Notices     resource.Store[noticeModel.NoticeModel]
}

func NewService(be resource.Backend) *Service {
	return &Service{
		Students:    resource.StoreFor[studentModel.StudentModel](be, studentModel.StudentRelations...),
		Classes:     resource.StoreFor[classModel.ClassModel](be, classModel.ClassRelations...),
		Staff:       resource.StoreFor[hrModel.StaffModel](be),
		Leaves:      resource.StoreFor[hrModel.LeaveRequestModel](be, hrModel.LeaveRequestRelations...),
		Payments:    resource.StoreFor[feeModel.FeePaymentModel](be, feeModel.FeePaymentRelations...),
		Issues:      resource.StoreFor[libraryModel.BookIssueModel](be, libraryModel.BookIssueRelations...),
		Incidents:   resource.StoreFor[disciplineModel.IncidentModel](be, disciplineModel.IncidentRelations...),
		Enquiries:   resource.StoreFor[frontModel.EnquiryModel](be),
		Visitors:    resource.StoreFor[frontModel.VisitorModel](be),
		Homework:    resource.StoreFor[homeworkModel.HomeworkModel](be, homeworkModel.HomeworkRelations...),
		Submissions: resource.StoreFor[homeworkModel.SubmissionModel](be, homeworkModel.SubmissionRelations...),
		Results:     resource.StoreFor[examModel.ExamResultModel](be, examModel.ExamResultRelations...),
		Consents:    resource.StoreFor[consentModel.ConsentLetterModel](be, consentModel.ConsentLetterRelations...),
		Notices:     resource.StoreFor[noticeModel.NoticeModel](be, noticeModel.NoticeRelations...),
	}
}

/* ===============================
   Shapes
=================================*/

type FeeSummary struct {
	Outstanding float64          `json:"outstanding"`
	ByStatus    map[string]int64 `json:"by_status"`
}

type AdminSummary struct {
	Students        map[string]any                  `json:"students"`
	StaffTotal      int64                           `json:"staff_total"`
	ClassTotal      int64                           `json:"class_total"`
	Fees            FeeSummary                      `json:"fees"`
	PendingLeaves   int64                           `json:"pending_leaves"`
	OpenEnquiries   int64                           `json:"open_enquiries"`
	VisitorsToday   int64                           `json:"visitors_today"`
	OpenIncidents   int64                           `json:"open_incidents"`
	OverdueBooks    int64                           `json:"overdue_books"`
	RecentNotices   []noticeModel.NoticeModel       `json:"recent_notices"`
	RecentIncidents []disciplineModel.IncidentModel `json:"recent_incidents"`
}

type HomeworkProgress struct {
	Homework  homeworkModel.HomeworkModel `json:"homework"`
	Submitted int64                       `json:"submitted"`
	ToGrade   int64                       `json:"to_grade"`
}

type TeacherSummary struct {
	Classes        []classModel.ClassModel   `json:"classes"`
	ActiveHomework []HomeworkProgress        `json:"active_homework"`
	ToGrade        int64                     `json:"to_grade"`
	RecentNotices  []noticeModel.NoticeModel `json:"recent_notices"`
}

type StudentSummary struct {
	Student          studentModel.StudentModel     `json:"student"`
	UpcomingHomework []homeworkModel.HomeworkModel `json:"upcoming_homework"`
	Fees             FeeSummary                    `json:"fees"`
	BorrowedBooks    []libraryModel.BookIssueModel `json:"borrowed_books"`
	RecentResults    []examModel.ExamResultModel   `json:"recent_results"`
	RecentNotices    []noticeModel.NoticeModel     `json:"recent_notices"`
}

type ChildSummary struct {
	Student         studentModel.StudentModel         `json:"student"`
	Fees            FeeSummary                        `json:"fees"`
	RecentResults   []examModel.ExamResultModel       `json:"recent_results"`
	OpenIncidents   int64                             `json:"open_incidents"`
	PendingConsents []consentModel.ConsentLetterModel `json:"pending_consents"`
}

type ParentSummary struct {
	Children      []ChildSummary            `json:"children"`
	RecentNotices []noticeModel.NoticeModel `json:"recent_notices"`
}

/* ===============================
   Admin
=================================*/

func (s *Service) Admin(ctx context.Context, schoolID uuid.UUID, now time.Time) (AdminSummary, error) {
	var out AdminSummary
	q := resource.Query{SchoolID: schoolID}

	st, err := s.Students.Stats(ctx, q, []resource.EnumField{
		{Name: "status", Column: "status", Values: studentModel.StudentStatuses},
		{Name: "gender", Column: "gender", Values: studentModel.Genders},
	})
	if err != nil {
		return out, err
	}
	out.Students = st.Map()

	if out.StaffTotal, err = s.Staff.Count(ctx, q.Eq("status", hrModel.StaffStatusActive)); err != nil {
		return out, err
	}
	if out.ClassTotal, err = s.Classes.Count(ctx, q); err != nil {
		return out, err
	}
	if out.Fees, err = s.fees(ctx, q); err != nil {
		return out, err
	}
	if out.PendingLeaves, err = s.Leaves.Count(ctx, q.Eq("status", hrModel.LeaveStatusPending)); err != nil {
		return out, err
	}
	if out.OpenEnquiries, err = s.Enquiries.Count(ctx, q.Eq("status", frontModel.EnquiryOpen)); err != nil {
		return out, err
	}

	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	visitors := q
	visitors.Ranges = []resource.Range{{Column: "check_in", From: &dayStart, To: &now}}
	if out.VisitorsToday, err = s.Visitors.Count(ctx, visitors); err != nil {
		return out, err
	}

	pending, err := s.Incidents.Count(ctx, q.Eq("status", disciplineModel.IncidentStatusPending))
	if err != nil {
		return out, err
	}
	investigating, err := s.Incidents.Count(ctx, q.Eq("status", disciplineModel.IncidentStatusInvestigating))
	if err != nil {
		return out, err
	}
	out.OpenIncidents = pending + investigating

	if out.OverdueBooks, err = s.Issues.Count(ctx, q.Eq("status", libraryModel.IssueOverdue)); err != nil {
		return out, err
	}

	recent := q
	recent.Sort = resource.Sort{Column: "incident_date", Desc: true}
	recent.Limit = recentLimit
	if out.RecentIncidents, err = s.Incidents.Find(ctx, recent); err != nil {
		return out, err
	}
	out.RecentNotices, err = s.notices(ctx, schoolID, noticeModel.AudienceStaff, now)
	return out, err
}

/* ===============================
   Teacher
=================================*/

// Teacher resolves the staff record linked to userID; a teacher without one
// still gets the homework they assigned and the notices.
func (s *Service) Teacher(ctx context.Context, schoolID, userID uuid.UUID, now time.Time) (TeacherSummary, error) {
	out := TeacherSummary{Classes: []classModel.ClassModel{}, ActiveHomework: []HomeworkProgress{}}
	q := resource.Query{SchoolID: schoolID}

	staff, err := s.Staff.Find(ctx, resource.Query{SchoolID: schoolID, Where: map[string]any{"user_id": userID}, Limit: 1})
	if err != nil {
		return out, err
	}
	if len(staff) > 0 {
		cq := q.Eq("class_teacher_id", staff[0].ID)
		cq.Sort = resource.Sort{Column: "name"}
		if out.Classes, err = s.Classes.Find(ctx, cq); err != nil {
			return out, err
		}
	}

	hq := q.Eq("assigned_by_id", userID).Eq("status", homeworkModel.HomeworkActive)
	hq.Sort = resource.Sort{Column: "due_date"}
	hq.Limit = 20
	hw, err := s.Homework.Find(ctx, hq)
	if err != nil {
		return out, err
	}
	for _, h := range hw {
		sq := q.Eq("homework_id", h.ID)
		total, err := s.Submissions.Count(ctx, sq)
		if err != nil {
			return out, err
		}
		graded, err := s.Submissions.Count(ctx, sq.Eq("status", homeworkModel.SubmissionGraded))
		if err != nil {
			return out, err
		}
		p := HomeworkProgress{Homework: h, Submitted: total, ToGrade: total - graded}
		out.ToGrade += p.ToGrade
		out.ActiveHomework = append(out.ActiveHomework, p)
	}

	out.RecentNotices, err = s.notices(ctx, schoolID, noticeModel.AudienceTeachers, now)
	return out, err
}

/* ===============================
   Student / Parent
=================================*/

func (s *Service) Student(ctx context.Context, schoolID, studentID uuid.UUID, now time.Time) (StudentSummary, error) {
	var out StudentSummary
	st, err := s.Students.Get(ctx, schoolID, studentID)
	if err != nil {
		return out, err
	}
	out.Student = *st

	q := resource.Query{SchoolID: schoolID}
	hq := q.Eq("class_id", st.ClassID).Eq("status", homeworkModel.HomeworkActive)
	hq.Ranges = []resource.Range{{Column: "due_date", From: &now}}
	hq.Sort = resource.Sort{Column: "due_date"}
	hq.Limit = recentLimit
	if out.UpcomingHomework, err = s.Homework.Find(ctx, hq); err != nil {
		return out, err
	}

	own := q.Eq("student_id", studentID)
	if out.Fees, err = s.fees(ctx, own); err != nil {
		return out, err
	}
	if out.BorrowedBooks, err = s.borrowed(ctx, own); err != nil {
		return out, err
	}
	if out.RecentResults, err = s.results(ctx, own); err != nil {
		return out, err
	}
	out.RecentNotices, err = s.notices(ctx, schoolID, noticeModel.AudienceStudents, now)
	return out, err
}

func (s *Service) Parent(ctx context.Context, schoolID, userID uuid.UUID, now time.Time) (ParentSummary, error) {
	out := ParentSummary{Children: []ChildSummary{}}
	q := resource.Query{SchoolID: schoolID}

	kq := q.Eq("parent_user_id", userID)
	kq.Sort = resource.Sort{Column: "first_name"}
	kids, err := s.Students.Find(ctx, kq)
	if err != nil {
		return out, err
	}
	for _, k := range kids {
		own := q.Eq("student_id", k.ID)
		child := ChildSummary{Student: k}
		if child.Fees, err = s.fees(ctx, own); err != nil {
			return out, err
		}
		if child.RecentResults, err = s.results(ctx, own); err != nil {
			return out, err
		}
		pending, err := s.Incidents.Count(ctx, own.Eq("status", disciplineModel.IncidentStatusPending))
		if err != nil {
			return out, err
		}
		investigating, err := s.Incidents.Count(ctx, own.Eq("status", disciplineModel.IncidentStatusInvestigating))
		if err != nil {
			return out, err
		}
		child.OpenIncidents = pending + investigating
		if child.PendingConsents, err = s.Consents.Find(ctx, own.Eq("status", consentModel.ConsentPending)); err != nil {
			return out, err
		}
		out.Children = append(out.Children, child)
	}

	out.RecentNotices, err = s.notices(ctx, schoolID, noticeModel.AudienceParents, now)
	return out, err
}

/* ===============================
   Pieces
=================================*/

// fees buckets payments by status and sums what is still owed.
func (s *Service) fees(ctx context.Context, q resource.Query) (FeeSummary, error) {
	st, err := s.Payments.Stats(ctx, q, []resource.EnumField{
		{Name: "status", Column: "status", Values: feeModel.PaymentStatuses},
	})
	if err != nil {
		return FeeSummary{}, err
	}
	out := FeeSummary{ByStatus: st.Buckets["status"]}
	for _, status := range []string{feeModel.PaymentUnpaid, feeModel.PaymentPartial, feeModel.PaymentOverdue} {
		rows, err := s.Payments.Find(ctx, q.Eq("status", status))
		if err != nil {
			return FeeSummary{}, err
		}
		for i := range rows {
			out.Outstanding += rows[i].Outstanding()
		}
	}
	return out, nil
}

func (s *Service) borrowed(ctx context.Context, q resource.Query) ([]libraryModel.BookIssueModel, error) {
	var out []libraryModel.BookIssueModel
	for _, status := range []string{libraryModel.IssueIssued, libraryModel.IssueOverdue} {
		bq := q.Eq("status", status)
		bq.Sort = resource.Sort{Column: "due_date"}
		rows, err := s.Issues.Find(ctx, bq)
		if err != nil {
			return nil, err
		}
		out = append(out, rows...)
	}
	if out == nil {
		out = []libraryModel.BookIssueModel{}
	}
	return out, nil
}

func (s *Service) results(ctx context.Context, q resource.Query) ([]examModel.ExamResultModel, error) {
	q.Limit = recentLimit
	return s.Results.Find(ctx, q)
}

// notices returns the newest published, unexpired notices addressed to
// everyone or to audience.
func (s *Service) notices(ctx context.Context, schoolID uuid.UUID, audience string, now time.Time) ([]noticeModel.NoticeModel, error) {
	q := resource.Query{
		SchoolID: schoolID,
		Ranges:   []resource.Range{{Column: "publish_date", To: &now}},
		Sort:     resource.Sort{Column: "publish_date", Desc: true},
		Limit:    50,
	}
	rows, err := s.Notices.Find(ctx, q)
	if err != nil {
		return nil, err
	}
	out := make([]noticeModel.NoticeModel, 0, recentLimit)
	for _, n := range rows {
		if n.Audience != noticeModel.AudienceAll && n.Audience != audience {
			continue
		}
		if n.ExpiryDate != nil && n.ExpiryDate.Before(now) {
			continue
		}
		out = append(out, n)
		if len(out) == recentLimit {
			break
		}
	}
	return out, nil
}
