package courseRoutes

import (
	controllers "lms/controllers/course"
	"lms/middleware"
	validators "lms/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupCourseRoutes mounts the public catalog, the student-facing enrollment,
// progress and review endpoints, and the instructor dashboard.
func SetupCourseRoutes(app *fiber.App) {
	// Public catalog
	courseGroup := app.Group("/courses")
	courseGroup.Get("/", controllers.GetPublicCourses)
	courseGroup.Get("/my", middleware.JWTMiddleware, controllers.GetMyCourses)
	courseGroup.Get("/:slug", middleware.OptionalJWTMiddleware, controllers.GetPublicCourse)

	// Enrollment and reviews hang off the public slug
	courseGroup.Post("/:slug/enroll", middleware.JWTMiddleware, controllers.EnrollInCourse)
	courseGroup.Post("/:slug/reviews", middleware.JWTMiddleware, validators.Review(), controllers.CreateReview)

	// Review moderation and editing work on ids
	reviewGroup := app.Group("/course/:courseId/review/:reviewId",
		middleware.JWTMiddleware, validators.CourseID(), validators.ReviewID())
	reviewGroup.Put("/", validators.Review(), controllers.UpdateReview)
	reviewGroup.Delete("/", controllers.DeleteReview)
	reviewGroup.Patch("/approval", controllers.ToggleReviewApproval)

	// Student progress
	progressGroup := app.Group("/progress", middleware.JWTMiddleware)
	progressGroup.Get("/course/:courseId", validators.CourseID(), controllers.GetCourseProgress)
	progressGroup.Get("/lesson/:lessonId", validators.LessonID(), controllers.GetLessonProgress)
	progressGroup.Post("/lesson/:lessonId", validators.LessonID(), validators.Progress(), controllers.RecordLessonProgress)

	// Instructor dashboard
	dashGroup := app.Group("/dashboard/courses", middleware.JWTMiddleware)
	dashGroup.Get("/", controllers.GetDashboardCourses)
	dashGroup.Post("/", validators.Course(), controllers.CreateCourse)

	ownedGroup := app.Group("/dashboard/course/:courseId", middleware.JWTMiddleware, validators.CourseID())
	ownedGroup.Put("/", validators.Course(), controllers.UpdateCourse)
	ownedGroup.Delete("/", controllers.DeleteCourse)

	// Sections
	ownedGroup.Get("/sections", controllers.GetSections)
	ownedGroup.Post("/sections", validators.Section(), controllers.CreateSection)

	sectionGroup := app.Group("/dashboard/course/:courseId/section/:sectionId",
		middleware.JWTMiddleware, validators.CourseID(), validators.SectionID())
	sectionGroup.Put("/", validators.Section(), controllers.UpdateSection)
	sectionGroup.Delete("/", controllers.DeleteSection)

	// Lessons
	sectionGroup.Get("/lessons", controllers.GetLessons)
	sectionGroup.Post("/lessons", validators.Lesson(), controllers.CreateLesson)
	sectionGroup.Put("/lesson/:lessonId", validators.LessonID(), validators.Lesson(), controllers.UpdateLesson)
	sectionGroup.Delete("/lesson/:lessonId", validators.LessonID(), controllers.DeleteLesson)

	// Roster
	ownedGroup.Get("/enrollments", controllers.GetCourseEnrollments)
	ownedGroup.Delete("/enrollment/:enrollmentId", validators.EnrollmentID(), controllers.RemoveEnrollment)
}
