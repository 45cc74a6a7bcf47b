package models

// HonorType classifies a semester distinction.
type HonorType string

// ProbationType classifies a semester sanction.
type ProbationType string

// Honor and probation categories attached retroactively to semester records.
const (
	HonorDeansList   HonorType     = "DEANS_LIST"
	HonorRoll        HonorType     = "HONOR_ROLL"
	ProbationWarning ProbationType = "ACADEMIC_WARNING"
)

// Honor marks a semester whose GPA crossed a distinction threshold.
type Honor struct {
	Type         HonorType `json:"type"`
	AcademicYear int       `json:"academic_year"`
	Semester     Semester  `json:"semester"`
	SemesterGPA  float64   `json:"semester_gpa"`
}

// Probation marks a semester whose GPA fell below the warning threshold.
type Probation struct {
	Type         ProbationType `json:"type"`
	AcademicYear int           `json:"academic_year"`
	Semester     Semester      `json:"semester"`
	SemesterGPA  float64       `json:"semester_gpa"`
}

// SemesterRecord is a read-only aggregation of one (academicYear, semester)
// pair. It is recomputed on demand and always derivable from the enrollment
// set it was built from.
type SemesterRecord struct {
	AcademicYear    int          `json:"academic_year"`
	Semester        Semester     `json:"semester"`
	SemesterGPA     float64      `json:"semester_gpa"`
	SemesterCredits int          `json:"semester_credits"`
	Enrollments     []Enrollment `json:"enrollments"`
}

// AcademicRecord aggregates a student's full enrollment history.
type AcademicRecord struct {
	StudentID              string           `json:"student_id"`
	CumulativeGPA          float64          `json:"cumulative_gpa"`
	TotalCreditsEarned     int              `json:"total_credits_earned"`
	TotalCreditsAttempted  int              `json:"total_credits_attempted"`
	TotalCreditsInProgress int              `json:"total_credits_in_progress"`
	SemesterRecords        []SemesterRecord `json:"semester_records"`
	Honors                 []Honor          `json:"honors"`
	Probations             []Probation      `json:"probations"`
	// DataQualityNotes flags malformed fields that were skipped during
	// aggregation (unknown grade codes, negative credits).
	DataQualityNotes []string `json:"data_quality_notes,omitempty"`
}

// RecordSummary is the minimal textual form of an academic record.
type RecordSummary struct {
	StudentID          string  `json:"student_id"`
	CumulativeGPA      float64 `json:"cumulative_gpa"`
	TotalCreditsEarned int     `json:"total_credits_earned"`
}

// TranscriptLine is one graded enrollment row in a transcript.
type TranscriptLine struct {
	CourseCode   string      `json:"course_code"`
	CourseName   string      `json:"course_name"`
	Credits      int         `json:"credits"`
	AcademicYear int         `json:"academic_year"`
	Semester     Semester    `json:"semester"`
	Grade        LetterGrade `json:"grade"`
	GradePoints  float64     `json:"grade_points"`
}

// Transcript is the chronological, semester-grouped transcript view.
type Transcript struct {
	StudentID          string           `json:"student_id"`
	StudentName        string           `json:"student_name"`
	CumulativeGPA      float64          `json:"cumulative_gpa"`
	TotalCreditsEarned int              `json:"total_credits_earned"`
	Lines              []TranscriptLine `json:"lines"`
}
