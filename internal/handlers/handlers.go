package handlers

// AppHandlers bundles every HTTP handler for route registration.
type AppHandlers struct {
	Auth         *AuthHandler
	User         *UserHandler
	Job          *JobHandler
	Post         *PostHandler
	Message      *MessageHandler
	Notification *NotificationHandler
	Payment      *PaymentHandler
}
