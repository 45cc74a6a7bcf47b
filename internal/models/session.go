package models

import "time"

// ActivityType categorises a study session.
type ActivityType string

// Study session activity types.
const (
	ActivityLecture    ActivityType = "LECTURE"
	ActivityStudy      ActivityType = "STUDY"
	ActivityAssignment ActivityType = "ASSIGNMENT"
	ActivityExam       ActivityType = "EXAM"
	ActivityReview     ActivityType = "REVIEW"
)

// StudyLocation identifies where a session took place.
type StudyLocation string

// Study session locations.
const (
	LocationClassroom StudyLocation = "CLASSROOM"
	LocationLibrary   StudyLocation = "LIBRARY"
	LocationHome      StudyLocation = "HOME"
	LocationOnline    StudyLocation = "ONLINE"
)

// StudySession is one timed learning activity with a 1-5 efficiency
// self-rating. Manual sessions may be updated or deleted; derived sessions
// are immutable.
type StudySession struct {
	ID              string        `db:"id" json:"id"`
	StudentID       string        `db:"student_id" json:"student_id"`
	Subject         string        `db:"subject" json:"subject"`
	StartedAt       time.Time     `db:"started_at" json:"started_at"`
	DurationMinutes int           `db:"duration_minutes" json:"duration_minutes"`
	Activity        ActivityType  `db:"activity" json:"activity"`
	Location        StudyLocation `db:"location" json:"location"`
	Efficiency      int           `db:"efficiency" json:"efficiency"`
	Manual          bool          `db:"manual" json:"manual"`
	CreatedAt       time.Time     `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time     `db:"updated_at" json:"updated_at"`
}

// StudySessionFilter narrows session queries to an optional time window and
// subject.
type StudySessionFilter struct {
	Subject  string
	DateFrom *time.Time
	DateTo   *time.Time
}

// SubjectPerformance is a per-subject-per-semester snapshot consumed by the
// recommendation and pattern layers. The engine never mutates it.
type SubjectPerformance struct {
	ID                 string      `db:"id" json:"id"`
	StudentID          string      `db:"student_id" json:"student_id"`
	Subject            string      `db:"subject" json:"subject"`
	AcademicYear       int         `db:"academic_year" json:"academic_year"`
	Semester           Semester    `db:"semester" json:"semester"`
	CurrentGrade       LetterGrade `db:"current_grade" json:"current_grade"`
	AttendanceRate     float64     `db:"attendance_rate" json:"attendance_rate"`
	StudyHours         float64     `db:"study_hours" json:"study_hours"`
	DifficultyRating   int         `db:"difficulty_rating" json:"difficulty_rating"`
	SatisfactionRating int         `db:"satisfaction_rating" json:"satisfaction_rating"`
}
