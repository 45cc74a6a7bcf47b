package service

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/noah-isme/uni-portal-api/internal/models"
	appErrors "github.com/noah-isme/uni-portal-api/pkg/errors"
	"github.com/noah-isme/uni-portal-api/pkg/export"
)

var transcriptHeaders = []string{"course code", "name", "credits", "year", "semester", "grade", "GPA"}

// TranscriptService flattens enrollment history into an exportable
// chronological transcript.
type TranscriptService struct {
	enrollments enrollmentLister
	students    studentReader
	csv         *export.CSVExporter
	pdf         *export.PDFExporter
	logger      *zap.Logger
}

// NewTranscriptService constructs a TranscriptService.
func NewTranscriptService(enrollments enrollmentLister, students studentReader, csv *export.CSVExporter, pdf *export.PDFExporter, logger *zap.Logger) *TranscriptService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TranscriptService{
		enrollments: enrollments,
		students:    students,
		csv:         csv,
		pdf:         pdf,
		logger:      logger,
	}
}

// Assemble builds the transcript view for a student. A student with no
// academic record fails with NotFound; a known student whose courses are all
// still ungraded gets a transcript with zero lines. The two cases stay
// distinguishable for callers.
func (s *TranscriptService) Assemble(ctx context.Context, studentID string) (*models.Transcript, error) {
	if studentID == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "student id is required")
	}
	student, err := s.students.FindByID(ctx, studentID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "no academic record for student")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load student")
	}

	enrollments, err := s.enrollments.ListByStudent(ctx, studentID, models.EnrollmentFilter{})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list enrollments")
	}

	transcript := &models.Transcript{
		StudentID:   studentID,
		StudentName: student.FullName,
		Lines:       []models.TranscriptLine{},
	}

	var points, credits float64
	for _, e := range enrollments {
		if e.FinalGrade == nil {
			continue
		}
		gradePoints, known := GradePoints(*e.FinalGrade)
		if !known {
			s.logger.Warn("skipping transcript line with unrecognized grade",
				zap.String("enrollment_id", e.ID), zap.String("grade", string(*e.FinalGrade)))
		}
		transcript.Lines = append(transcript.Lines, models.TranscriptLine{
			CourseCode:   e.CourseCode,
			CourseName:   e.CourseName,
			Credits:      e.Credits,
			AcademicYear: e.AcademicYear,
			Semester:     e.Semester,
			Grade:        *e.FinalGrade,
			GradePoints:  gradePoints,
		})
		if *e.FinalGrade != failingGrade && e.Status != models.EnrollmentStatusDropped && e.Status != models.EnrollmentStatusFailed {
			points += gradePoints * float64(e.Credits)
			credits += float64(e.Credits)
			transcript.TotalCreditsEarned += e.Credits
		}
	}
	if credits > 0 {
		transcript.CumulativeGPA = Round2(points / credits)
	}

	// Copy-before-sort happens implicitly: Lines is built fresh above, so the
	// caller's enrollment slice is never reordered.
	sort.SliceStable(transcript.Lines, func(i, j int) bool {
		a, b := transcript.Lines[i], transcript.Lines[j]
		if a.AcademicYear != b.AcademicYear {
			return a.AcademicYear < b.AcademicYear
		}
		if SemesterIndex(a.Semester) != SemesterIndex(b.Semester) {
			return SemesterIndex(a.Semester) < SemesterIndex(b.Semester)
		}
		return a.CourseCode < b.CourseCode
	})

	return transcript, nil
}

// RenderCSV serialises a transcript to the row-oriented export format.
func (s *TranscriptService) RenderCSV(transcript *models.Transcript) ([]byte, error) {
	dataset := transcriptDataset(transcript)
	payload, err := s.csv.Render(dataset)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render transcript csv")
	}
	return payload, nil
}

// RenderPDF serialises a transcript to a printable document.
func (s *TranscriptService) RenderPDF(transcript *models.Transcript) ([]byte, error) {
	dataset := transcriptDataset(transcript)
	preamble := []string{
		fmt.Sprintf("Student: %s (%s)", transcript.StudentName, transcript.StudentID),
		fmt.Sprintf("Cumulative GPA: %.2f", transcript.CumulativeGPA),
		fmt.Sprintf("Credits earned: %d", transcript.TotalCreditsEarned),
	}
	payload, err := s.pdf.Render(dataset, "Academic Transcript", preamble)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render transcript pdf")
	}
	return payload, nil
}

// RenderText produces the minimal textual summary form.
func (s *TranscriptService) RenderText(transcript *models.Transcript) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "student id: %s\n", transcript.StudentID)
	fmt.Fprintf(&b, "cumulative gpa: %.2f\n", transcript.CumulativeGPA)
	fmt.Fprintf(&b, "total earned credits: %d\n", transcript.TotalCreditsEarned)
	return []byte(b.String())
}

func transcriptDataset(transcript *models.Transcript) export.Dataset {
	rows := make([][]string, 0, len(transcript.Lines))
	for _, line := range transcript.Lines {
		rows = append(rows, []string{
			line.CourseCode,
			line.CourseName,
			strconv.Itoa(line.Credits),
			strconv.Itoa(line.AcademicYear),
			string(line.Semester),
			string(line.Grade),
			strconv.FormatFloat(line.GradePoints, 'f', 2, 64),
		})
	}
	return export.Dataset{Headers: transcriptHeaders, Rows: rows}
}
