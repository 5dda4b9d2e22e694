package models

type UserStatus string
type JobStatus string
type JobType string
type WorkMode string
type ExperienceLevel string
type ApplicationStatus string
type PostVisibility string
type PaymentStatus string
type NotificationType string

const (
	UserStatusActive    UserStatus = "active"
	UserStatusSuspended UserStatus = "suspended"

	JobStatusDraft  JobStatus = "draft"
	JobStatusActive JobStatus = "active"
	JobStatusClosed JobStatus = "closed"

	JobTypeFullTime   JobType = "full-time"
	JobTypePartTime   JobType = "part-time"
	JobTypeContract   JobType = "contract"
	JobTypeInternship JobType = "internship"

	WorkModeOnsite WorkMode = "onsite"
	WorkModeRemote WorkMode = "remote"
	WorkModeHybrid WorkMode = "hybrid"

	ExperienceLevelEntry  ExperienceLevel = "entry"
	ExperienceLevelMid    ExperienceLevel = "mid"
	ExperienceLevelSenior ExperienceLevel = "senior"
	ExperienceLevelLead   ExperienceLevel = "lead"

	ApplicationStatusPending  ApplicationStatus = "pending"
	ApplicationStatusReviewed ApplicationStatus = "reviewed"
	ApplicationStatusAccepted ApplicationStatus = "accepted"
	ApplicationStatusRejected ApplicationStatus = "rejected"

	PostVisibilityPublic      PostVisibility = "public"
	PostVisibilityConnections PostVisibility = "connections"
	PostVisibilityPrivate     PostVisibility = "private"

	// Payments are recorded as confirmed immediately: the service trusts the
	// client-supplied transaction hash and never checks the chain.
	PaymentStatusConfirmed PaymentStatus = "confirmed"

	NotificationTypePostLiked           NotificationType = "post_liked"
	NotificationTypePostCommented       NotificationType = "post_commented"
	NotificationTypeConnectionRequest   NotificationType = "connection_request"
	NotificationTypeConnectionAccepted  NotificationType = "connection_accepted"
	NotificationTypeProfileViewed       NotificationType = "profile_viewed"
	NotificationTypeJobPosted           NotificationType = "job_posted"
	NotificationTypeApplicationReceived NotificationType = "job_application_received"
	NotificationTypeNewMessage          NotificationType = "new_message"
)

// ValidNotificationTypes is the closed set accepted by the notification
// service. Anything else is rejected with a validation error.
var ValidNotificationTypes = map[NotificationType]bool{
	NotificationTypePostLiked:           true,
	NotificationTypePostCommented:       true,
	NotificationTypeConnectionRequest:   true,
	NotificationTypeConnectionAccepted:  true,
	NotificationTypeProfileViewed:       true,
	NotificationTypeJobPosted:           true,
	NotificationTypeApplicationReceived: true,
	NotificationTypeNewMessage:          true,
}
