package controllers

import (
	"errors"
	"lms/database"
	"lms/middleware"
	"lms/models"
	"math"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// RecordLessonProgress upserts the student's progress on a lesson and
// recomputes the course-level percentage, all in one transaction. Called from
// the lesson player.
func RecordLessonProgress(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	db := database.Database.Db
	lessonID := c.Locals("lessonID").(int)

	lesson, enrollment, errResp := loadLessonEnrollment(c, db, user.ID, lessonID)
	if lesson == nil {
		return errResp
	}

	reqData, ok := c.Locals("validatedProgress").(*struct {
		LastPosition *int `json:"last_position"`
		IsCompleted  bool `json:"is_completed"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	lastPosition := 0
	if reqData.LastPosition != nil {
		lastPosition = *reqData.LastPosition
	}

	var progress models.LessonProgress
	err := db.Transaction(func(tx *gorm.DB) error {
		// Upsert the (user, lesson) progress row
		err := tx.Where("user_id = ? AND lesson_id = ?", user.ID, lesson.ID).First(&progress).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			progress = models.LessonProgress{
				UserID:   user.ID,
				LessonID: lesson.ID,
			}
		} else if err != nil {
			return err
		}

		progress.LastPosition = lastPosition
		progress.IsCompleted = reqData.IsCompleted
		if reqData.IsCompleted {
			now := time.Now()
			progress.CompletedAt = &now
		} else {
			progress.CompletedAt = nil
		}

		if err := tx.Save(&progress).Error; err != nil {
			return err
		}

		// Recompute the aggregate percentage from the full completion set
		return updateCourseProgress(tx, enrollment)
	})
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save progress!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Progress saved successfully!", fiber.Map{
		"progress":        progress,
		"course_progress": enrollment.ProgressPercentage,
	})
}

// GetLessonProgress returns the student's progress on a lesson, creating a
// zeroed record on first access so the lesson player always has a row to load
func GetLessonProgress(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	db := database.Database.Db
	lessonID := c.Locals("lessonID").(int)

	lesson, _, errResp := loadLessonEnrollment(c, db, user.ID, lessonID)
	if lesson == nil {
		return errResp
	}

	var progress models.LessonProgress
	err := db.Where("user_id = ? AND lesson_id = ?", user.ID, lesson.ID).First(&progress).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		progress = models.LessonProgress{
			UserID:       user.ID,
			LessonID:     lesson.ID,
			LastPosition: 0,
			IsCompleted:  false,
		}
		if err := db.Create(&progress).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to load progress!", nil)
		}
	} else if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to load progress!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Progress fetched successfully!", progress)
}

// GetCourseProgress returns the enrollment and completed lesson ids for the
// course player sidebar
func GetCourseProgress(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	db := database.Database.Db
	courseID := c.Locals("courseID").(int)

	var enrollment models.Enrollment
	if err := db.Where("user_id = ? AND course_id = ? AND status = ?", user.ID, courseID, models.EnrollmentActive).
		First(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You are not enrolled in this course.", nil)
	}

	var completedIDs []uint
	db.Model(&models.LessonProgress{}).
		Joins("JOIN lessons ON lessons.id = lesson_progress.lesson_id").
		Joins("JOIN course_sections ON course_sections.id = lessons.section_id").
		Where("lesson_progress.user_id = ? AND lesson_progress.is_completed = ? AND course_sections.course_id = ?",
			user.ID, true, courseID).
		Pluck("lesson_progress.lesson_id", &completedIDs)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Progress fetched successfully!", fiber.Map{
		"enrollment":    enrollment,
		"completed_ids": completedIDs,
	})
}

// loadLessonEnrollment resolves a lesson and the caller's active enrollment
// on the course owning it. Progress actions require an active enrollment.
func loadLessonEnrollment(c *fiber.Ctx, db *gorm.DB, userID uint, lessonID int) (*models.Lesson, *models.Enrollment, error) {
	var lesson models.Lesson
	if err := db.Preload("Section").Where("id = ?", lessonID).First(&lesson).Error; err != nil {
		return nil, nil, middleware.JsonResponse(c, fiber.StatusNotFound, false, "Lesson not found!", nil)
	}

	var enrollment models.Enrollment
	if err := db.Where("user_id = ? AND course_id = ? AND status = ?",
		userID, lesson.Section.CourseID, models.EnrollmentActive).First(&enrollment).Error; err != nil {
		return nil, nil, middleware.JsonResponse(c, fiber.StatusForbidden, false, "You are not enrolled in this course.", nil)
	}
	return &lesson, &enrollment, nil
}

// updateCourseProgress recomputes the enrollment's progress percentage from
// the full completed-lesson count. The recompute is idempotent: it always
// derives the same percentage from the same underlying completion set.
// CompletedAt is set exactly once, when the percentage first reaches 100,
// and is never cleared afterwards.
func updateCourseProgress(db *gorm.DB, enrollment *models.Enrollment) error {
	var totalLessons int64
	if err := db.Model(&models.Lesson{}).
		Joins("JOIN course_sections ON course_sections.id = lessons.section_id").
		Where("course_sections.course_id = ?", enrollment.CourseID).
		Count(&totalLessons).Error; err != nil {
		return err
	}

	// A course with no lessons always sits at 0.00
	percentage := 0.00
	if totalLessons > 0 {
		var completedLessons int64
		if err := db.Model(&models.LessonProgress{}).
			Joins("JOIN lessons ON lessons.id = lesson_progress.lesson_id").
			Joins("JOIN course_sections ON course_sections.id = lessons.section_id").
			Where("lesson_progress.user_id = ? AND lesson_progress.is_completed = ? AND course_sections.course_id = ?",
				enrollment.UserID, true, enrollment.CourseID).
			Count(&completedLessons).Error; err != nil {
			return err
		}

		percentage = round2(float64(completedLessons) / float64(totalLessons) * 100)
	}

	enrollment.ProgressPercentage = percentage
	if percentage >= 100 && enrollment.CompletedAt == nil {
		now := time.Now()
		enrollment.CompletedAt = &now
	}

	return db.Save(enrollment).Error
}

// round2 rounds to two decimal places
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
