//go:build unit || e2e

package testutil

// Field sets key to value in a DtoMap mutation; a nil value removes the key,
// which models a missing required field.
func Field(key string, value any) func(m map[string]any) {
	return func(m map[string]any) {
		if value == nil {
			delete(m, key)
			return
		}
		m[key] = value
	}
}
