package controllers

import (
	"lms/database"
	"lms/middleware"
	"lms/models"

	"github.com/gofiber/fiber/v2"
)

// loadOwnedCourse fetches a course and checks the manage capability
func loadOwnedCourse(c *fiber.Ctx, courseID int) (*models.Course, error) {
	user, ok := currentUser(c)
	if !ok {
		return nil, middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var course models.Course
	if err := database.Database.Db.Where("id = ?", courseID).First(&course).Error; err != nil {
		return nil, middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	if decision := middleware.Authorize(user, middleware.ActionManageCourse, &course); !decision.Allowed {
		return nil, middleware.Forbid(c, decision)
	}
	return &course, nil
}

// GetSections lists the sections of a course for the dashboard
func GetSections(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(int)

	course, errResp := loadOwnedCourse(c, courseID)
	if course == nil {
		return errResp
	}

	var sections []models.CourseSection
	if err := database.Database.Db.Where("course_id = ?", course.ID).
		Order(sectionOrderExpr).Find(&sections).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch sections!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Sections fetched successfully!", sections)
}

// CreateSection adds a section to a course. When no order is given, it
// defaults to last order + 1.
func CreateSection(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(int)

	course, errResp := loadOwnedCourse(c, courseID)
	if course == nil {
		return errResp
	}

	reqData, ok := c.Locals("validatedSection").(*struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		Order       *int   `json:"order"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	order := 0
	if reqData.Order != nil {
		order = *reqData.Order
	} else {
		var maxOrder *int
		db.Model(&models.CourseSection{}).Where("course_id = ?", course.ID).
			Select(`MAX("order")`).Scan(&maxOrder)
		if maxOrder != nil {
			order = *maxOrder + 1
		}
	}

	section := models.CourseSection{
		CourseID:    course.ID,
		Title:       reqData.Title,
		Description: reqData.Description,
		Order:       order,
	}

	if err := db.Create(&section).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create section!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Section created successfully!", section)
}

// UpdateSection edits a section; the section must belong to the course
func UpdateSection(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(int)
	sectionID := c.Locals("sectionID").(int)

	course, errResp := loadOwnedCourse(c, courseID)
	if course == nil {
		return errResp
	}

	db := database.Database.Db

	var section models.CourseSection
	if err := db.Where("id = ? AND course_id = ?", sectionID, course.ID).First(&section).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Section not found!", nil)
	}

	reqData, ok := c.Locals("validatedSection").(*struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		Order       *int   `json:"order"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	section.Title = reqData.Title
	section.Description = reqData.Description
	if reqData.Order != nil {
		section.Order = *reqData.Order
	}

	if err := db.Save(&section).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update section!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Section updated successfully!", section)
}

// DeleteSection removes a section and cascades to its lessons
func DeleteSection(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(int)
	sectionID := c.Locals("sectionID").(int)

	course, errResp := loadOwnedCourse(c, courseID)
	if course == nil {
		return errResp
	}

	db := database.Database.Db

	var section models.CourseSection
	if err := db.Where("id = ? AND course_id = ?", sectionID, course.ID).First(&section).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Section not found!", nil)
	}

	if err := db.Delete(&section).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete section!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Section deleted successfully!", nil)
}
