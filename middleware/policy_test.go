package middleware

import (
	"lms/models"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAuthorizeAdminAllowsEverything(t *testing.T) {
	admin := &models.User{Role: models.RoleAdmin}
	admin.ID = 1

	for _, action := range []string{
		ActionManageCourse, ActionCreateCourse, ActionManageCategory,
		ActionViewPayment, ActionMarkPaymentPaid, ActionChangePaymentState,
		ActionManageSubscription, ActionModerateReview,
	} {
		assert.True(t, Authorize(admin, action, nil).Allowed, action)
	}
}

func TestAuthorizeCourseOwnership(t *testing.T) {
	owner := &models.User{Role: models.RoleInstructor}
	owner.ID = 10
	other := &models.User{Role: models.RoleInstructor}
	other.ID = 11
	student := &models.User{Role: models.RoleStudent}
	student.ID = 12

	course := &models.Course{InstructorID: 10}

	assert.True(t, Authorize(owner, ActionManageCourse, course).Allowed)
	assert.False(t, Authorize(other, ActionManageCourse, course).Allowed)
	assert.False(t, Authorize(student, ActionManageCourse, course).Allowed)

	assert.True(t, Authorize(owner, ActionModerateReview, course).Allowed)
	assert.False(t, Authorize(other, ActionModerateReview, course).Allowed)
}

func TestAuthorizeCreateCourse(t *testing.T) {
	instructor := &models.User{Role: models.RoleInstructor}
	student := &models.User{Role: models.RoleStudent}

	assert.True(t, Authorize(instructor, ActionCreateCourse, nil).Allowed)
	assert.False(t, Authorize(student, ActionCreateCourse, nil).Allowed)
}

func TestAuthorizePaymentVisibility(t *testing.T) {
	student := &models.User{Role: models.RoleStudent}
	student.ID = 5
	instructor := &models.User{Role: models.RoleInstructor}
	instructor.ID = 6
	stranger := &models.User{Role: models.RoleStudent}
	stranger.ID = 7

	payment := &models.CoursePayment{UserID: 5, Course: models.Course{InstructorID: 6}}

	assert.True(t, Authorize(student, ActionViewPayment, payment).Allowed)
	assert.True(t, Authorize(instructor, ActionViewPayment, payment).Allowed)
	assert.False(t, Authorize(stranger, ActionViewPayment, payment).Allowed)

	subPayment := &models.SubscriptionPayment{UserID: 5}
	assert.True(t, Authorize(student, ActionViewPayment, subPayment).Allowed)
	assert.False(t, Authorize(stranger, ActionViewPayment, subPayment).Allowed)
}

func TestAuthorizeAdminOnlyActions(t *testing.T) {
	instructor := &models.User{Role: models.RoleInstructor}
	student := &models.User{Role: models.RoleStudent}

	for _, user := range []*models.User{instructor, student} {
		assert.False(t, Authorize(user, ActionManageCategory, nil).Allowed)
		assert.False(t, Authorize(user, ActionManageSubscription, nil).Allowed)
		assert.False(t, Authorize(user, ActionMarkPaymentPaid, nil).Allowed)
	}
}

func TestAuthorizeNilUser(t *testing.T) {
	assert.False(t, Authorize(nil, ActionCreateCourse, nil).Allowed)
}
