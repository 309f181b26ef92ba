package pure_utils

// Map returns a new slice with the same length as src, but with values transformed by f
func Map[T, U any](src []T, f func(T) U) []U {
	us := make([]U, len(src))
	for i := range src {
		us[i] = f(src[i])
	}
	return us
}

// MapValues return a new map with the same keys as src, but with values transformed by f
func MapValues[Key comparable, T any, U any](src map[Key]T, f func(T) U) map[Key]U {
	result := make(map[Key]U, len(src))
	for key, value := range src {
		result[key] = f(value)
	}
	return result
}
