package contextkeys

type ContextKey string

// DBContextKey carries the request-scoped *gorm.DB (pool or transaction).
const DBContextKey ContextKey = "db"
