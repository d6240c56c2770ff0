package utils

import "time"

func Now() time.Time {
	return time.Now().UTC()
}

func ToPtr[T any](v T) *T {
	return &v
}
