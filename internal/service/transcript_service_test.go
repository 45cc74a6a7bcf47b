package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/uni-portal-api/internal/models"
	appErrors "github.com/noah-isme/uni-portal-api/pkg/errors"
	"github.com/noah-isme/uni-portal-api/pkg/export"
)

func newTranscriptService(students studentReader, enrollments enrollmentLister) *TranscriptService {
	return NewTranscriptService(enrollments, students, export.NewCSVExporter(), export.NewPDFExporter(), nil)
}

func transcriptEnrollment(id, code string, credits int, grade models.LetterGrade, year int, semester models.Semester) models.Enrollment {
	return models.Enrollment{
		ID: id, StudentID: "stu-1", CourseCode: code, CourseName: "Course " + code,
		Credits: credits, Category: models.CategoryRequired, Status: models.EnrollmentStatusCompleted,
		AcademicYear: year, Semester: semester, FinalGrade: gradePtr(grade),
	}
}

func TestAssembleSortsChronologically(t *testing.T) {
	enrollments := &fakeEnrollments{enrollments: []models.Enrollment{
		transcriptEnrollment("e1", "CS201", 4, "B+", 2026, models.SemesterSpring),
		transcriptEnrollment("e2", "CS102", 3, "A", 2025, models.SemesterFall),
		transcriptEnrollment("e3", "CS101", 3, "A-", 2025, models.SemesterSpring),
		transcriptEnrollment("e4", "CS103", 3, "B", 2025, models.SemesterFall),
	}}
	svc := newTranscriptService(knownStudent("stu-1"), enrollments)

	transcript, err := svc.Assemble(context.Background(), "stu-1")
	require.NoError(t, err)
	require.Len(t, transcript.Lines, 4)
	assert.Equal(t, "CS101", transcript.Lines[0].CourseCode)
	assert.Equal(t, "CS102", transcript.Lines[1].CourseCode)
	assert.Equal(t, "CS103", transcript.Lines[2].CourseCode)
	assert.Equal(t, "CS201", transcript.Lines[3].CourseCode)
	assert.Equal(t, "Test Student", transcript.StudentName)
}

func TestAssembleExcludesUngradedAndRecomputesGPA(t *testing.T) {
	ungraded := models.Enrollment{
		ID: "e3", StudentID: "stu-1", CourseCode: "CS300", Credits: 3,
		Status: models.EnrollmentStatusRegistered, AcademicYear: 2026, Semester: models.SemesterSpring,
	}
	enrollments := &fakeEnrollments{enrollments: []models.Enrollment{
		transcriptEnrollment("e1", "CS101", 2, "A", 2025, models.SemesterSpring),
		transcriptEnrollment("e2", "CS102", 2, "B", 2025, models.SemesterSpring),
		ungraded,
	}}
	svc := newTranscriptService(knownStudent("stu-1"), enrollments)

	transcript, err := svc.Assemble(context.Background(), "stu-1")
	require.NoError(t, err)
	require.Len(t, transcript.Lines, 2)
	assert.InDelta(t, 3.5, transcript.CumulativeGPA, 0.001)
	assert.Equal(t, 4, transcript.TotalCreditsEarned)
}

func TestAssembleFailedGradeListedButNotEarned(t *testing.T) {
	failed := transcriptEnrollment("e2", "CS102", 3, "F", 2025, models.SemesterSpring)
	failed.Status = models.EnrollmentStatusFailed
	enrollments := &fakeEnrollments{enrollments: []models.Enrollment{
		transcriptEnrollment("e1", "CS101", 3, "A", 2025, models.SemesterSpring),
		failed,
	}}
	svc := newTranscriptService(knownStudent("stu-1"), enrollments)

	transcript, err := svc.Assemble(context.Background(), "stu-1")
	require.NoError(t, err)
	// The F appears on the transcript but contributes no earned credits.
	require.Len(t, transcript.Lines, 2)
	assert.Equal(t, 3, transcript.TotalCreditsEarned)
	assert.InDelta(t, 4.0, transcript.CumulativeGPA, 0.001)
}

func TestAssembleUnknownStudent(t *testing.T) {
	svc := newTranscriptService(&fakeStudents{students: map[string]*models.Student{}}, &fakeEnrollments{})

	_, err := svc.Assemble(context.Background(), "missing")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestRenderCSVEscapesAndOrdersColumns(t *testing.T) {
	enrollments := &fakeEnrollments{enrollments: []models.Enrollment{
		transcriptEnrollment("e1", "CS101", 3, "A", 2025, models.SemesterSpring),
	}}
	svc := newTranscriptService(knownStudent("stu-1"), enrollments)

	transcript, err := svc.Assemble(context.Background(), "stu-1")
	require.NoError(t, err)
	payload, err := svc.RenderCSV(transcript)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(payload)), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "course code,name,credits,year,semester,grade,GPA", lines[0])
	assert.Equal(t, "CS101,Course CS101,3,2025,SPRING,A,4.00", lines[1])
}

func TestRenderTextSummary(t *testing.T) {
	enrollments := &fakeEnrollments{enrollments: []models.Enrollment{
		transcriptEnrollment("e1", "CS101", 3, "B", 2025, models.SemesterSpring),
	}}
	svc := newTranscriptService(knownStudent("stu-1"), enrollments)

	transcript, err := svc.Assemble(context.Background(), "stu-1")
	require.NoError(t, err)
	text := string(svc.RenderText(transcript))
	assert.Contains(t, text, "student id: stu-1")
	assert.Contains(t, text, "cumulative gpa: 3.00")
	assert.Contains(t, text, "total earned credits: 3")
}

func TestRenderPDFProducesDocument(t *testing.T) {
	enrollments := &fakeEnrollments{enrollments: []models.Enrollment{
		transcriptEnrollment("e1", "CS101", 3, "A", 2025, models.SemesterSpring),
	}}
	svc := newTranscriptService(knownStudent("stu-1"), enrollments)

	transcript, err := svc.Assemble(context.Background(), "stu-1")
	require.NoError(t, err)
	payload, err := svc.RenderPDF(transcript)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(payload), "%PDF"))
}
