package stringutil

// Empty returns true if any of the values are empty.
func Empty(vals ...string) bool {
	for _, val := range vals {
		if val == "" {
			return true
		}
	}
	return false
}

// Override returns the last non-empty value, or an empty string if there is none.
func Override(vals ...string) string {
	var result string
	for _, val := range vals {
		if val != "" {
			result = val
		}
	}
	return result
}
