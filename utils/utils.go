package utils

import (
	"strconv"

	"github.com/getsentry/sentry-go"
	"github.com/sirupsen/logrus"
)

// Pointer returns a pointer to the given value
func Pointer[T any](v T) *T {
	return &v
}

// ParseUint safely parses a string to uint
func ParseUint(s string) uint {
	i, _ := strconv.ParseUint(s, 10, 32)
	return uint(i)
}

// CaptureError logs an unexpected failure and forwards it to Sentry.
// CaptureException is a no-op when Sentry was never initialized.
func CaptureError(log *logrus.Entry, err error, msg string) {
	log.WithError(err).Error(msg)
	sentry.WithScope(func(scope *sentry.Scope) {
		scope.SetExtra("message", msg)
		sentry.CaptureException(err)
	})
}
