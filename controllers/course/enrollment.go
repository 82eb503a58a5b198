package controllers

import (
	"lms/database"
	"lms/middleware"
	"lms/models"
	"lms/utils"
	"time"

	"github.com/gofiber/fiber/v2"
)

// EnrollInCourse enrolls the authenticated student in a published course.
// Only free courses can be self-enrolled; paid courses go through the
// payment ledger, which creates the enrollment when the payment is marked paid.
func EnrollInCourse(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	db := database.Database.Db
	slug := c.Params("slug")

	var course models.Course
	if err := db.Where("slug = ? AND is_published = ?", slug, true).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	// Check if user is already enrolled
	if err := db.Where("user_id = ? AND course_id = ?", user.ID, course.ID).First(&models.Enrollment{}).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "You are already enrolled in this course!", nil)
	}

	if !course.IsFree() {
		return middleware.JsonResponse(c, fiber.StatusPaymentRequired, false, "This course is paid. Please complete the payment to enroll.", nil)
	}

	enrollment := models.Enrollment{
		UserID:             user.ID,
		CourseID:           course.ID,
		ProgressPercentage: 0.00,
		Status:             models.EnrollmentActive,
		EnrolledAt:         time.Now(),
	}

	if err := db.Create(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to enroll in course!", nil)
	}

	utils.SendEnrollmentEmail(user.Email, user.Name, course.Title)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "You have successfully enrolled in \""+course.Title+"\"!", enrollment)
}

// GetCourseEnrollments lists the students enrolled in a course for its
// instructor or an admin
func GetCourseEnrollments(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(int)

	course, errResp := loadOwnedCourse(c, courseID)
	if course == nil {
		return errResp
	}

	db := database.Database.Db
	page, limit, offset := paginationParams(c)

	query := db.Model(&models.Enrollment{}).Where("course_id = ?", course.ID)

	var total int64
	query.Count(&total)

	var enrollments []models.Enrollment
	if err := query.Preload("User").Order("enrolled_at desc").
		Offset(offset).Limit(limit).Find(&enrollments).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch enrollments!", nil)
	}
	for i := range enrollments {
		enrollments[i].User.Password = ""
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrollments fetched successfully!", fiber.Map{
		"enrollments": enrollments,
		"pagination": fiber.Map{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	})
}

// RemoveEnrollment hard-deletes an enrollment from a course. Lesson progress
// rows are left untouched as orphaned history.
func RemoveEnrollment(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(int)
	enrollmentID := c.Locals("enrollmentID").(int)

	course, errResp := loadOwnedCourse(c, courseID)
	if course == nil {
		return errResp
	}

	db := database.Database.Db

	var enrollment models.Enrollment
	if err := db.Where("id = ? AND course_id = ?", enrollmentID, course.ID).First(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Enrollment not found!", nil)
	}

	if err := db.Unscoped().Delete(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to remove student!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Student removed from the course successfully!", nil)
}
