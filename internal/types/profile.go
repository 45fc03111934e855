package types

// ExtractedProfile holds the contact and education facts found in a resume.
// A nil field means the fact was not found; absence is never an error.
type ExtractedProfile struct {
	Name      *string  `json:"name,omitempty"`
	Email     *string  `json:"email,omitempty"`
	Phone     *string  `json:"phone,omitempty"`
	Education []string `json:"education"`
}

// StringOrDefault dereferences an optional field, returning fallback when absent.
func StringOrDefault(value *string, fallback string) string {
	if value == nil {
		return fallback
	}
	return *value
}

// StringPtr returns a pointer to s, or nil if s is empty.
func StringPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
