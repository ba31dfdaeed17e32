package models

// ShortIDLength is the number of characters shown for abbreviated IDs
const ShortIDLength = 7

// ShortID returns the first ShortIDLength characters of an object ID
func ShortID(id string) string {
	if len(id) > ShortIDLength {
		return id[:ShortIDLength]
	}
	return id
}

// IsHexID reports whether s is a non-empty lowercase hex string
func IsHexID(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if (r < '0' || r > '9') && (r < 'a' || r > 'f') {
			return false
		}
	}
	return true
}
