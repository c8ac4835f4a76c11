package validation

import (
	"placement/internal/models"
)

// Assignment validates a mentor-student pairing request.
func (v *Validator) Assignment(mentorID, studentID uint) {
	v.Required("mentor_id", mentorID)
	v.Required("student_id", studentID)

	if mentorID != 0 && mentorID == studentID {
		v.AddError("student_id", "a user cannot be assigned to themselves")
	}
}

// ItemType validates an artifact type tag from the URL.
func (v *Validator) ItemType(tag string) {
	v.Check(models.IsValidItemType(tag), "item_type", "unknown item type")
}

// Decision validates a review decision request.
func (v *Validator) Decision(feedback string) {
	// Feedback is optional, even on reject.
	v.MaxLength("feedback", feedback, MaxFeedbackLength)
}

// Registration validates a new account request.
func (v *Validator) Registration(email, password, name, role string) {
	v.Email("email", email)
	v.Password("password", password)
	v.Required("name", name)
	v.MaxLength("name", name, MaxTitleLength)
	v.Check(models.IsValidRole(role), "role", "must be admin, mentor or student")
}
