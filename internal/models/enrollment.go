package models

import "time"

// CourseCategory is the requirement bucket a course counts toward.
type CourseCategory string

// Requirement buckets tracked independently for degree progress.
const (
	CategoryRequired         CourseCategory = "REQUIRED"
	CategoryRequiredElective CourseCategory = "REQUIRED_ELECTIVE"
	CategoryElective         CourseCategory = "ELECTIVE"
	CategoryFree             CourseCategory = "FREE"
)

// EnrollmentStatus represents the lifecycle of a course enrollment.
type EnrollmentStatus string

// Possible enrollment statuses. Enrollments are never deleted; status
// transitions model history.
const (
	EnrollmentStatusRegistered EnrollmentStatus = "REGISTERED"
	EnrollmentStatusCompleted  EnrollmentStatus = "COMPLETED"
	EnrollmentStatusDropped    EnrollmentStatus = "DROPPED"
	EnrollmentStatusFailed     EnrollmentStatus = "FAILED"
	EnrollmentStatusWaitlisted EnrollmentStatus = "WAITLISTED"
)

// LetterGrade is a posted final grade code (A+ .. F).
type LetterGrade string

// Semester identifies the term within an academic year.
type Semester string

// Semester codes in chronological order within a year.
const (
	SemesterSpring Semester = "SPRING"
	SemesterSummer Semester = "SUMMER"
	SemesterFall   Semester = "FALL"
)

// Enrollment captures a student's registration in one course offering for one
// academic-year/semester pair. GradePoints is only meaningful once FinalGrade
// is posted.
type Enrollment struct {
	ID           string           `db:"id" json:"id"`
	StudentID    string           `db:"student_id" json:"student_id"`
	CourseID     string           `db:"course_id" json:"course_id"`
	CourseCode   string           `db:"course_code" json:"course_code"`
	CourseName   string           `db:"course_name" json:"course_name"`
	Credits      int              `db:"credits" json:"credits"`
	Category     CourseCategory   `db:"category" json:"category"`
	Status       EnrollmentStatus `db:"status" json:"status"`
	AcademicYear int              `db:"academic_year" json:"academic_year"`
	Semester     Semester         `db:"semester" json:"semester"`
	FinalGrade   *LetterGrade     `db:"final_grade" json:"final_grade,omitempty"`
	GradePoints  *float64         `db:"grade_points" json:"grade_points,omitempty"`
	RegisteredAt time.Time        `db:"registered_at" json:"registered_at"`
	CompletedAt  *time.Time       `db:"completed_at" json:"completed_at,omitempty"`
	DroppedAt    *time.Time       `db:"dropped_at" json:"dropped_at,omitempty"`
}

// EnrollmentFilter provides filters for listing a student's enrollments.
type EnrollmentFilter struct {
	AcademicYear int
	Semester     Semester
	Status       EnrollmentStatus
	Category     CourseCategory
}
