package controllers

import (
	"lms/models"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupProgressDb(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Course{},
		&models.CourseSection{},
		&models.Lesson{},
		&models.Enrollment{},
		&models.LessonProgress{},
	))
	return db
}

// seedCourse creates a course with lessons spread over two sections and an
// active enrollment for user 1. Returns the enrollment and the lesson ids.
func seedCourse(t *testing.T, db *gorm.DB, lessonCount int) (*models.Enrollment, []uint) {
	user := models.User{Name: "Student", Email: "student@example.com", Password: "x", Role: models.RoleStudent}
	require.NoError(t, db.Create(&user).Error)

	course := models.Course{Title: "Testing in Go", Slug: "testing-in-go", InstructorID: user.ID, CategoryID: 1, IsPublished: true}
	require.NoError(t, db.Create(&course).Error)

	sections := []models.CourseSection{
		{CourseID: course.ID, Title: "Part 1", Order: 1},
		{CourseID: course.ID, Title: "Part 2", Order: 2},
	}
	for i := range sections {
		require.NoError(t, db.Create(&sections[i]).Error)
	}

	lessonIDs := make([]uint, 0, lessonCount)
	for i := 0; i < lessonCount; i++ {
		lesson := models.Lesson{
			SectionID: sections[i%2].ID,
			Title:     "Lesson",
			Type:      models.LessonTypeArticle,
			Content:   "text",
			Order:     i,
		}
		require.NoError(t, db.Create(&lesson).Error)
		lessonIDs = append(lessonIDs, lesson.ID)
	}

	enrollment := models.Enrollment{
		UserID:     user.ID,
		CourseID:   course.ID,
		Status:     models.EnrollmentActive,
		EnrolledAt: time.Now(),
	}
	require.NoError(t, db.Create(&enrollment).Error)
	return &enrollment, lessonIDs
}

func completeLesson(t *testing.T, db *gorm.DB, userID, lessonID uint, done bool) {
	var progress models.LessonProgress
	err := db.Where("user_id = ? AND lesson_id = ?", userID, lessonID).First(&progress).Error
	if err == gorm.ErrRecordNotFound {
		progress = models.LessonProgress{UserID: userID, LessonID: lessonID}
	} else {
		require.NoError(t, err)
	}
	progress.IsCompleted = done
	if done {
		now := time.Now()
		progress.CompletedAt = &now
	} else {
		progress.CompletedAt = nil
	}
	require.NoError(t, db.Save(&progress).Error)
}

func TestCourseProgressRounding(t *testing.T) {
	db := setupProgressDb(t)
	enrollment, lessons := seedCourse(t, db, 3)

	completeLesson(t, db, enrollment.UserID, lessons[0], true)
	require.NoError(t, updateCourseProgress(db, enrollment))
	assert.Equal(t, 33.33, enrollment.ProgressPercentage)

	completeLesson(t, db, enrollment.UserID, lessons[1], true)
	require.NoError(t, updateCourseProgress(db, enrollment))
	assert.Equal(t, 66.67, enrollment.ProgressPercentage)
}

func TestCourseProgressEmptyCourse(t *testing.T) {
	db := setupProgressDb(t)
	enrollment, _ := seedCourse(t, db, 0)

	require.NoError(t, updateCourseProgress(db, enrollment))
	assert.Equal(t, 0.00, enrollment.ProgressPercentage)
	assert.Nil(t, enrollment.CompletedAt)
}

func TestCourseProgressRecomputeIsIdempotent(t *testing.T) {
	db := setupProgressDb(t)
	enrollment, lessons := seedCourse(t, db, 4)

	completeLesson(t, db, enrollment.UserID, lessons[0], true)
	completeLesson(t, db, enrollment.UserID, lessons[2], true)

	require.NoError(t, updateCourseProgress(db, enrollment))
	first := enrollment.ProgressPercentage
	require.NoError(t, updateCourseProgress(db, enrollment))
	require.NoError(t, updateCourseProgress(db, enrollment))

	assert.Equal(t, 50.00, first)
	assert.Equal(t, first, enrollment.ProgressPercentage)
}

func TestCourseCompletionTimestampIsMonotonic(t *testing.T) {
	db := setupProgressDb(t)
	enrollment, lessons := seedCourse(t, db, 2)

	for _, id := range lessons {
		completeLesson(t, db, enrollment.UserID, id, true)
	}
	require.NoError(t, updateCourseProgress(db, enrollment))
	assert.Equal(t, 100.00, enrollment.ProgressPercentage)
	require.NotNil(t, enrollment.CompletedAt)
	completedAt := *enrollment.CompletedAt

	// Un-completing a lesson drops the percentage but keeps the timestamp
	completeLesson(t, db, enrollment.UserID, lessons[0], false)
	require.NoError(t, updateCourseProgress(db, enrollment))
	assert.Equal(t, 50.00, enrollment.ProgressPercentage)
	require.NotNil(t, enrollment.CompletedAt)
	assert.Equal(t, completedAt, *enrollment.CompletedAt)

	// Re-completing does not move the original timestamp either
	completeLesson(t, db, enrollment.UserID, lessons[0], true)
	require.NoError(t, updateCourseProgress(db, enrollment))
	assert.Equal(t, 100.00, enrollment.ProgressPercentage)
	assert.Equal(t, completedAt, *enrollment.CompletedAt)
}

func TestCourseProgressIgnoresOtherCourses(t *testing.T) {
	db := setupProgressDb(t)
	enrollment, lessons := seedCourse(t, db, 2)

	// A second course with its own lesson, completed by the same user
	other := models.Course{Title: "Other", Slug: "other", InstructorID: 1, CategoryID: 1}
	require.NoError(t, db.Create(&other).Error)
	otherSection := models.CourseSection{CourseID: other.ID, Title: "S", Order: 1}
	require.NoError(t, db.Create(&otherSection).Error)
	otherLesson := models.Lesson{SectionID: otherSection.ID, Title: "L", Type: models.LessonTypeArticle, Content: "x"}
	require.NoError(t, db.Create(&otherLesson).Error)
	completeLesson(t, db, enrollment.UserID, otherLesson.ID, true)

	completeLesson(t, db, enrollment.UserID, lessons[0], true)
	require.NoError(t, updateCourseProgress(db, enrollment))

	// Only the enrolled course's lessons count
	assert.Equal(t, 50.00, enrollment.ProgressPercentage)
}
