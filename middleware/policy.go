package middleware

import (
	"lms/models"

	"github.com/gofiber/fiber/v2"
)

// Action names accepted by Authorize
const (
	ActionManageCourse       = "course.manage"        // edit/delete a course, its sections, lessons, enrollments
	ActionCreateCourse       = "course.create"        // instructor or admin
	ActionManageCategory     = "category.manage"      // admin only
	ActionViewPayment        = "payment.view"         // owner, instructor of the course, or admin
	ActionMarkPaymentPaid    = "payment.mark-paid"    // admin only
	ActionChangePaymentState = "payment.change-state" // admin, or instructor for payments on own courses
	ActionManageSubscription = "subscription.manage"  // admin only
	ActionModerateReview     = "review.moderate"      // instructor-owner or admin
)

// Decision is the outcome of a capability check
type Decision struct {
	Allowed bool
	Reason  string
}

func allow() Decision          { return Decision{Allowed: true} }
func deny(why string) Decision { return Decision{Allowed: false, Reason: why} }

// Authorize resolves whether a user may perform an action on a resource. All
// role/ownership policy lives here; controllers must not compare roles directly.
// The resource is the entity the action targets (a *models.Course for course
// actions, a payment or nil where ownership does not apply).
func Authorize(user *models.User, action string, resource interface{}) Decision {
	if user == nil {
		return deny("Unauthorized!")
	}

	// Admins can do everything
	if user.IsAdmin() {
		return allow()
	}

	switch action {
	case ActionCreateCourse:
		if user.IsInstructor() {
			return allow()
		}
		return deny("Only instructors can create courses!")

	case ActionManageCourse, ActionModerateReview:
		course, ok := resource.(*models.Course)
		if ok && user.IsInstructor() && course.InstructorID == user.ID {
			return allow()
		}
		return deny("You are not authorized to manage this course!")

	case ActionViewPayment:
		switch p := resource.(type) {
		case *models.CoursePayment:
			if p.UserID == user.ID {
				return allow()
			}
			if user.IsInstructor() && p.Course.InstructorID == user.ID {
				return allow()
			}
		case *models.SubscriptionPayment:
			if p.UserID == user.ID {
				return allow()
			}
		}
		return deny("You are not authorized to view this payment!")

	case ActionChangePaymentState:
		// Instructors may change the status of payments on their own courses
		if p, ok := resource.(*models.CoursePayment); ok && user.IsInstructor() && p.Course.InstructorID == user.ID {
			return allow()
		}
		return deny("You are not authorized to update this payment!")

	case ActionManageCategory, ActionManageSubscription, ActionMarkPaymentPaid:
		return deny("Admin access required!")
	}

	return deny("You are not authorized to perform this action!")
}

// Forbid writes the standard rejection for a denied decision
func Forbid(c *fiber.Ctx, d Decision) error {
	return JsonResponse(c, fiber.StatusForbidden, false, d.Reason, nil)
}
