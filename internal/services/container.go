package services

import "contacts_backend/internal/email"

// ServiceContainer bundles the service layer for wiring.
type ServiceContainer struct {
	AuthService    AuthService
	UserService    UserService
	ContactService ContactService
	EmailService   email.Provider
}
