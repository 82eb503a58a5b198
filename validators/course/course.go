package courseValidator

import (
	"lms/middleware"
	"lms/models"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// paramID parses a numeric route parameter and stashes it in locals
func paramID(param, localKey string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt(param)
		if err != nil || id < 1 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid "+param+" parameter!", nil)
		}
		c.Locals(localKey, id)
		return c.Next()
	}
}

func CourseID() fiber.Handler  { return paramID("courseId", "courseID") }
func SectionID() fiber.Handler { return paramID("sectionId", "sectionID") }
func LessonID() fiber.Handler  { return paramID("lessonId", "lessonID") }
func ReviewID() fiber.Handler  { return paramID("reviewId", "reviewID") }

func EnrollmentID() fiber.Handler { return paramID("enrollmentId", "enrollmentID") }

// Course validator middleware for create/update
func Course() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Title            string  `json:"title" form:"title"`
			ShortDescription string  `json:"short_description" form:"short_description"`
			Description      string  `json:"description" form:"description"`
			CategoryID       uint    `json:"category_id" form:"category_id"`
			Price            float64 `json:"price" form:"price"`
			Level            string  `json:"level" form:"level"`
			IsPublished      bool    `json:"is_published" form:"is_published"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if err := validate.Var(reqData.Title, "required,min=3,max=200"); err != nil {
			errors["title"] = "Title must be between 3 and 200 characters long!"
		}
		if err := validate.Var(reqData.ShortDescription, "max=500"); err != nil {
			errors["short_description"] = "Short description must be at most 500 characters long!"
		}
		if err := validate.Var(reqData.CategoryID, "required,gt=0"); err != nil {
			errors["category_id"] = "Category is required!"
		}
		if err := validate.Var(reqData.Price, "gte=0"); err != nil {
			errors["price"] = "Price cannot be negative!"
		}
		switch reqData.Level {
		case "", models.LevelBeginner, models.LevelIntermediate, models.LevelAdvanced:
		default:
			errors["level"] = "Level must be Beginner, Intermediate or Advanced!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		if reqData.Level == "" {
			reqData.Level = models.LevelBeginner
		}

		c.Locals("validatedCourse", reqData)
		return c.Next()
	}
}

// Section validator middleware for create/update
func Section() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Title       string `json:"title"`
			Description string `json:"description"`
			Order       *int   `json:"order"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if err := validate.Var(reqData.Title, "required,min=2,max=200"); err != nil {
			errors["title"] = "Title must be between 2 and 200 characters long!"
		}
		if reqData.Order != nil && *reqData.Order < 0 {
			errors["order"] = "Order cannot be negative!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedSection", reqData)
		return c.Next()
	}
}

// Lesson validator middleware for create/update. The required content field
// depends on the lesson type.
func Lesson() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Title       string `json:"title" form:"title"`
			Type        string `json:"type" form:"type"`
			Description string `json:"description" form:"description"`
			VideoURL    string `json:"video_url" form:"video_url"`
			Content     string `json:"content" form:"content"`
			Duration    int    `json:"duration" form:"duration"`
			IsFree      bool   `json:"is_free" form:"is_free"`
			Order       int    `json:"order" form:"order"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if err := validate.Var(reqData.Title, "required,min=2,max=200"); err != nil {
			errors["title"] = "Title must be between 2 and 200 characters long!"
		}

		switch reqData.Type {
		case models.LessonTypeVideo:
			if err := validate.Var(reqData.VideoURL, "required,url"); err != nil {
				errors["video_url"] = "A valid video URL is required for video lessons!"
			}
		case models.LessonTypeArticle, models.LessonTypeQuiz:
			if err := validate.Var(reqData.Content, "required"); err != nil {
				errors["content"] = "Content is required for " + reqData.Type + " lessons!"
			}
		case models.LessonTypeDownload:
			// Attachment file is checked by the controller
		default:
			errors["type"] = "Type must be video, article, quiz or download!"
		}

		if reqData.Duration < 0 {
			errors["duration"] = "Duration cannot be negative!"
		}
		if reqData.Order < 0 {
			errors["order"] = "Order cannot be negative!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedLesson", reqData)
		return c.Next()
	}
}

// Progress validator middleware for the lesson player
func Progress() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			LastPosition *int `json:"last_position"`
			IsCompleted  bool `json:"is_completed"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.LastPosition != nil && *reqData.LastPosition < 0 {
			errors["last_position"] = "Last position cannot be negative!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedProgress", reqData)
		return c.Next()
	}
}

// Review validator middleware for create/update
func Review() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Rating  int    `json:"rating"`
			Comment string `json:"comment"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if err := validate.Var(reqData.Rating, "required,min=1,max=5"); err != nil {
			errors["rating"] = "Rating must be between 1 and 5!"
		}
		if err := validate.Var(reqData.Comment, "max=2000"); err != nil {
			errors["comment"] = "Comment must be at most 2000 characters long!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedReview", reqData)
		return c.Next()
	}
}
