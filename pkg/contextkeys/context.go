package contextkeys

// Custom type so keys cannot collide with values set by other packages
type contextKey string

// DBContextKey is the key under which the request-scoped *gorm.DB is stored
const DBContextKey = contextKey("db")

// CurrentUserKey is the gin context key for the resolved authenticated user
const CurrentUserKey = "currentUser"
