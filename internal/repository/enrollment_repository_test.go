package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/uni-portal-api/internal/models"
)

func newRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func enrollmentColumns() []string {
	return []string{"id", "student_id", "course_id", "course_code", "course_name", "credits", "category", "status",
		"academic_year", "semester", "final_grade", "grade_points", "registered_at", "completed_at", "dropped_at"}
}

func TestEnrollmentRepositoryListByStudent(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewEnrollmentRepository(db)

	rows := sqlmock.NewRows(enrollmentColumns()).
		AddRow("enr-1", "stu-1", "course-1", "CS101", "Intro to CS", 3, models.CategoryRequired, models.EnrollmentStatusCompleted,
			2025, models.SemesterSpring, "A", 4.0, time.Now(), time.Now(), nil)
	mock.ExpectQuery(regexp.QuoteMeta("FROM enrollments WHERE student_id = $1 ORDER BY academic_year ASC, registered_at ASC, course_code ASC")).
		WithArgs("stu-1").
		WillReturnRows(rows)

	enrollments, err := repo.ListByStudent(context.Background(), "stu-1", models.EnrollmentFilter{})
	require.NoError(t, err)
	require.Len(t, enrollments, 1)
	require.Equal(t, "CS101", enrollments[0].CourseCode)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestEnrollmentRepositoryListByStudentAppliesFilters(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewEnrollmentRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE student_id = $1 AND academic_year = $2 AND semester = $3 AND status = $4")).
		WithArgs("stu-1", 2025, models.SemesterFall, models.EnrollmentStatusCompleted).
		WillReturnRows(sqlmock.NewRows(enrollmentColumns()))

	enrollments, err := repo.ListByStudent(context.Background(), "stu-1", models.EnrollmentFilter{
		AcademicYear: 2025,
		Semester:     models.SemesterFall,
		Status:       models.EnrollmentStatusCompleted,
	})
	require.NoError(t, err)
	require.Empty(t, enrollments)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestEnrollmentRepositoryInsertGeneratesID(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewEnrollmentRepository(db)

	mock.ExpectExec("INSERT INTO enrollments").
		WillReturnResult(sqlmock.NewResult(1, 1))

	enrollment := &models.Enrollment{
		StudentID: "stu-1", CourseID: "course-1", CourseCode: "CS101", CourseName: "Intro to CS",
		Credits: 3, Category: models.CategoryRequired, Status: models.EnrollmentStatusRegistered,
		AcademicYear: 2025, Semester: models.SemesterSpring,
	}
	require.NoError(t, repo.Insert(context.Background(), enrollment))
	require.NotEmpty(t, enrollment.ID)
	require.False(t, enrollment.RegisteredAt.IsZero())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestEnrollmentRepositoryUpdateStatusPostsGrade(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewEnrollmentRepository(db)

	grade := models.LetterGrade("A")
	points := 4.0
	mock.ExpectExec(regexp.QuoteMeta("UPDATE enrollments SET status = $1")).
		WithArgs(models.EnrollmentStatusCompleted, &grade, points, sqlmock.AnyArg(), nil, "enr-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.UpdateStatus(context.Background(), "enr-1", models.EnrollmentStatusCompleted, &grade, &points)
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}
