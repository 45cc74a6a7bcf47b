// Command seed loads a demo student with enrollments, study sessions,
// performance snapshots and goals into a development database.
package main

import (
	"context"
	"flag"
	"log"
	"time"

	"github.com/noah-isme/uni-portal-api/internal/models"
	"github.com/noah-isme/uni-portal-api/internal/repository"
	"github.com/noah-isme/uni-portal-api/pkg/config"
	"github.com/noah-isme/uni-portal-api/pkg/database"
)

func main() {
	var (
		studentNumber string
		programID     string
		timeout       time.Duration
	)
	flag.StringVar(&studentNumber, "number", "S-2026-0001", "institutional number for the demo student")
	flag.StringVar(&programID, "program", "prog-cs", "program ID to enroll the demo student in")
	flag.DurationVar(&timeout, "timeout", 30*time.Second, "overall timeout")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		log.Fatalf("failed to connect to postgres: %v", err)
	}
	defer db.Close() //nolint:errcheck

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	students := repository.NewStudentRepository(db)
	enrollments := repository.NewEnrollmentRepository(db)
	sessions := repository.NewStudySessionRepository(db)
	performances := repository.NewSubjectPerformanceRepository(db)
	goals := repository.NewLearningGoalRepository(db)

	student := &models.Student{
		Number:    studentNumber,
		FullName:  "Demo Student",
		ProgramID: programID,
		Active:    true,
	}
	if err := students.Insert(ctx, student); err != nil {
		log.Fatalf("failed to insert student: %v", err)
	}
	log.Printf("seeded student %s (%s)", student.ID, student.Number)

	gradeA := models.LetterGrade("A")
	gradeBPlus := models.LetterGrade("B+")
	gradeC := models.LetterGrade("C")
	for _, e := range []models.Enrollment{
		{
			StudentID: student.ID, CourseID: "crs-101", CourseCode: "CS101", CourseName: "Intro to Programming",
			Credits: 4, Category: models.CategoryRequired, Status: models.EnrollmentStatusCompleted,
			AcademicYear: 2025, Semester: models.SemesterSpring, FinalGrade: &gradeA,
		},
		{
			StudentID: student.ID, CourseID: "crs-102", CourseCode: "MA101", CourseName: "Calculus I",
			Credits: 3, Category: models.CategoryRequired, Status: models.EnrollmentStatusCompleted,
			AcademicYear: 2025, Semester: models.SemesterSpring, FinalGrade: &gradeBPlus,
		},
		{
			StudentID: student.ID, CourseID: "crs-201", CourseCode: "PH110", CourseName: "Physics for Engineers",
			Credits: 3, Category: models.CategoryRequiredElective, Status: models.EnrollmentStatusCompleted,
			AcademicYear: 2025, Semester: models.SemesterFall, FinalGrade: &gradeC,
		},
		{
			StudentID: student.ID, CourseID: "crs-202", CourseCode: "CS201", CourseName: "Data Structures",
			Credits: 4, Category: models.CategoryRequired, Status: models.EnrollmentStatusRegistered,
			AcademicYear: 2026, Semester: models.SemesterSpring,
		},
	} {
		enrollment := e
		if err := enrollments.Insert(ctx, &enrollment); err != nil {
			log.Fatalf("failed to insert enrollment %s: %v", enrollment.CourseCode, err)
		}
	}

	now := time.Now().UTC()
	for day := 0; day < 10; day++ {
		session := models.StudySession{
			StudentID:       student.ID,
			Subject:         "Data Structures",
			StartedAt:       now.AddDate(0, 0, -day).Add(-3 * time.Hour),
			DurationMinutes: 60 + day*10,
			Activity:        models.ActivityStudy,
			Location:        models.LocationLibrary,
			Efficiency:      3 + day%3,
			Manual:          true,
		}
		if err := sessions.Insert(ctx, &session); err != nil {
			log.Fatalf("failed to insert session: %v", err)
		}
	}

	perf := models.SubjectPerformance{
		StudentID:          student.ID,
		Subject:            "Physics for Engineers",
		AcademicYear:       2025,
		Semester:           models.SemesterFall,
		CurrentGrade:       gradeC,
		AttendanceRate:     0.82,
		StudyHours:         24,
		DifficultyRating:   4,
		SatisfactionRating: 3,
	}
	if err := performances.Upsert(ctx, &perf); err != nil {
		log.Fatalf("failed to upsert performance: %v", err)
	}

	goal := models.LearningGoal{
		StudentID:    student.ID,
		Category:     "study-hours",
		Title:        "40 study hours this month",
		TargetValue:  40,
		CurrentValue: 12,
		Unit:         "hours",
		Deadline:     now.AddDate(0, 1, 0),
		Status:       models.GoalStatusActive,
	}
	if err := goals.Insert(ctx, &goal); err != nil {
		log.Fatalf("failed to insert goal: %v", err)
	}

	log.Printf("seed complete for student %s", student.ID)
}
