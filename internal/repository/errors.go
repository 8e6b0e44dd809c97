package repository

import "errors"

// ErrNotFound is returned when a conversation does not exist. The service
// layer translates it into the application-level app_errors.ErrNotFound,
// keeping driver errors such as sql.ErrNoRows or redis.Nil out of it.
var ErrNotFound = errors.New("repository: not found")
