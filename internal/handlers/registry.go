package handlers

// AppHandlers groups every HTTP handler so routing gets one dependency.
type AppHandlers struct {
	Auth    *AuthHandler
	User    *UserHandler
	Contact *ContactHandler
}
