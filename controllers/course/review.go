package controllers

import (
	"lms/database"
	"lms/middleware"
	"lms/models"

	"github.com/gofiber/fiber/v2"
)

// CreateReview stores a new review for a published course. Only enrolled
// students may review, and only once per course.
func CreateReview(c *fiber.Ctx) error {
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

	// Only enrolled students may leave a review
	if err := db.Where("user_id = ? AND course_id = ?", user.ID, course.ID).First(&models.Enrollment{}).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You must be enrolled in the course to leave a review.", nil)
	}

	// One review per student per course
	if err := db.Where("user_id = ? AND course_id = ?", user.ID, course.ID).First(&models.Review{}).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "You have already reviewed this course!", nil)
	}

	reqData, ok := c.Locals("validatedReview").(*struct {
		Rating  int    `json:"rating"`
		Comment string `json:"comment"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	review := models.Review{
		UserID:     user.ID,
		CourseID:   course.ID,
		Rating:     reqData.Rating,
		Comment:    reqData.Comment,
		IsApproved: true, // Visible immediately; moderation can hide it later
	}

	if err := db.Create(&review).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to submit review!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Thank you! Your review has been submitted successfully.", review)
}

// UpdateReview edits the caller's own review
func UpdateReview(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	db := database.Database.Db
	courseID := c.Locals("courseID").(int)
	reviewID := c.Locals("reviewID").(int)

	var review models.Review
	if err := db.Where("id = ? AND course_id = ?", reviewID, courseID).First(&review).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Review not found!", nil)
	}

	if review.UserID != user.ID {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You are not authorized to edit this review!", nil)
	}

	reqData, ok := c.Locals("validatedReview").(*struct {
		Rating  int    `json:"rating"`
		Comment string `json:"comment"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	review.Rating = reqData.Rating
	review.Comment = reqData.Comment

	if err := db.Save(&review).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update review!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Your review has been updated successfully.", review)
}

// DeleteReview removes a review. Allowed for the review's owner, the course
// instructor, or an admin.
func DeleteReview(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	db := database.Database.Db
	courseID := c.Locals("courseID").(int)
	reviewID := c.Locals("reviewID").(int)

	var course models.Course
	if err := db.Where("id = ?", courseID).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	var review models.Review
	if err := db.Where("id = ? AND course_id = ?", reviewID, course.ID).First(&review).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Review not found!", nil)
	}

	if review.UserID != user.ID {
		if decision := middleware.Authorize(user, middleware.ActionModerateReview, &course); !decision.Allowed {
			return middleware.Forbid(c, decision)
		}
	}

	if err := db.Delete(&review).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete review!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Review deleted successfully.", nil)
}

// ToggleReviewApproval hides or shows a review (moderation)
func ToggleReviewApproval(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	db := database.Database.Db
	courseID := c.Locals("courseID").(int)
	reviewID := c.Locals("reviewID").(int)

	var course models.Course
	if err := db.Where("id = ?", courseID).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	if decision := middleware.Authorize(user, middleware.ActionModerateReview, &course); !decision.Allowed {
		return middleware.Forbid(c, decision)
	}

	var review models.Review
	if err := db.Where("id = ? AND course_id = ?", reviewID, course.ID).First(&review).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Review not found!", nil)
	}

	review.IsApproved = !review.IsApproved
	if err := db.Save(&review).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update review!", nil)
	}

	message := "Review has been hidden."
	if review.IsApproved {
		message = "Review has been approved."
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, message, review)
}
