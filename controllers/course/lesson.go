package controllers

import (
	"lms/database"
	"lms/middleware"
	"lms/models"
	"lms/utils"

	"github.com/gofiber/fiber/v2"
)

// lessonRequest is the validated payload for create/update. The required
// content field depends on Type; the validator enforces that.
type lessonRequest struct {
	Title       string `json:"title"`
	Type        string `json:"type"`
	Description string `json:"description"`
	VideoURL    string `json:"video_url"`
	Content     string `json:"content"`
	Duration    int    `json:"duration"`
	IsFree      bool   `json:"is_free"`
	Order       int    `json:"order"`
}

// validatedLesson reads the payload the lesson validator stashed in locals
func validatedLesson(c *fiber.Ctx) (*lessonRequest, bool) {
	body, ok := c.Locals("validatedLesson").(*struct {
		Title       string `json:"title" form:"title"`
		Type        string `json:"type" form:"type"`
		Description string `json:"description" form:"description"`
		VideoURL    string `json:"video_url" form:"video_url"`
		Content     string `json:"content" form:"content"`
		Duration    int    `json:"duration" form:"duration"`
		IsFree      bool   `json:"is_free" form:"is_free"`
		Order       int    `json:"order" form:"order"`
	})
	if !ok {
		return nil, false
	}
	return (*lessonRequest)(body), true
}

// loadOwnedSection checks course ownership and the section/course parentage
func loadOwnedSection(c *fiber.Ctx, courseID, sectionID int) (*models.CourseSection, error) {
	course, errResp := loadOwnedCourse(c, courseID)
	if course == nil {
		return nil, errResp
	}

	var section models.CourseSection
	if err := database.Database.Db.Where("id = ? AND course_id = ?", sectionID, course.ID).First(&section).Error; err != nil {
		return nil, middleware.JsonResponse(c, fiber.StatusNotFound, false, "Section not found!", nil)
	}
	return &section, nil
}

// GetLessons lists the lessons of a section for the dashboard
func GetLessons(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(int)
	sectionID := c.Locals("sectionID").(int)

	section, errResp := loadOwnedSection(c, courseID, sectionID)
	if section == nil {
		return errResp
	}

	var lessons []models.Lesson
	if err := database.Database.Db.Where("section_id = ?", section.ID).
		Order(sectionOrderExpr).Find(&lessons).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch lessons!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lessons fetched successfully!", lessons)
}

// CreateLesson adds a lesson to a section
func CreateLesson(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(int)
	sectionID := c.Locals("sectionID").(int)

	section, errResp := loadOwnedSection(c, courseID, sectionID)
	if section == nil {
		return errResp
	}

	reqData, ok := validatedLesson(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	lesson := models.Lesson{
		SectionID:   section.ID,
		Title:       reqData.Title,
		Type:        reqData.Type,
		Description: reqData.Description,
		Duration:    reqData.Duration,
		IsFree:      reqData.IsFree,
		Order:       reqData.Order,
	}
	applyTypedFields(&lesson, reqData)

	// Download lessons carry an uploaded attachment
	if reqData.Type == models.LessonTypeDownload {
		file, err := c.FormFile("attachment")
		if err != nil {
			return middleware.JsonResponse(c, fiber.StatusUnprocessableEntity, false, "Attachment file is required for download lessons!", nil)
		}
		path, err := utils.SaveUploadedFile(file, "lessons/attachments")
		if err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save attachment!", nil)
		}
		lesson.AttachmentURL = path
	}

	if err := database.Database.Db.Create(&lesson).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create lesson!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Lesson created successfully!", lesson)
}

// UpdateLesson edits a lesson. Fields belonging to other lesson types are
// cleared so exactly one content field stays populated.
func UpdateLesson(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(int)
	sectionID := c.Locals("sectionID").(int)
	lessonID := c.Locals("lessonID").(int)

	section, errResp := loadOwnedSection(c, courseID, sectionID)
	if section == nil {
		return errResp
	}

	db := database.Database.Db

	var lesson models.Lesson
	if err := db.Where("id = ? AND section_id = ?", lessonID, section.ID).First(&lesson).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Lesson not found!", nil)
	}

	reqData, ok := validatedLesson(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	lesson.Title = reqData.Title
	lesson.Type = reqData.Type
	lesson.Description = reqData.Description
	lesson.Duration = reqData.Duration
	lesson.IsFree = reqData.IsFree
	lesson.Order = reqData.Order
	applyTypedFields(&lesson, reqData)

	if reqData.Type == models.LessonTypeDownload {
		// A new attachment replaces the old one; keeping the old one is fine too
		if file, err := c.FormFile("attachment"); err == nil {
			path, err := utils.SaveUploadedFile(file, "lessons/attachments")
			if err != nil {
				return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save attachment!", nil)
			}
			utils.DeleteUploadedFile(lesson.AttachmentURL)
			lesson.AttachmentURL = path
		}
		if lesson.AttachmentURL == "" {
			return middleware.JsonResponse(c, fiber.StatusUnprocessableEntity, false, "Attachment file is required for download lessons!", nil)
		}
	}

	if err := db.Save(&lesson).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update lesson!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lesson updated successfully!", lesson)
}

// DeleteLesson removes a lesson along with any stored attachment
func DeleteLesson(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(int)
	sectionID := c.Locals("sectionID").(int)
	lessonID := c.Locals("lessonID").(int)

	section, errResp := loadOwnedSection(c, courseID, sectionID)
	if section == nil {
		return errResp
	}

	db := database.Database.Db

	var lesson models.Lesson
	if err := db.Where("id = ? AND section_id = ?", lessonID, section.ID).First(&lesson).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Lesson not found!", nil)
	}

	utils.DeleteUploadedFile(lesson.AttachmentURL)

	if err := db.Delete(&lesson).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete lesson!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lesson deleted successfully!", nil)
}

// applyTypedFields sets the content field matching the lesson type and clears
// the fields belonging to the other types
func applyTypedFields(lesson *models.Lesson, reqData *lessonRequest) {
	lesson.VideoURL = ""
	lesson.Content = ""

	switch reqData.Type {
	case models.LessonTypeVideo:
		lesson.VideoURL = reqData.VideoURL
		if lesson.AttachmentURL != "" {
			utils.DeleteUploadedFile(lesson.AttachmentURL)
			lesson.AttachmentURL = ""
		}
	case models.LessonTypeArticle, models.LessonTypeQuiz:
		lesson.Content = reqData.Content
		if lesson.AttachmentURL != "" {
			utils.DeleteUploadedFile(lesson.AttachmentURL)
			lesson.AttachmentURL = ""
		}
	}
}
