package utils

import (
	"encoding/json"
	"net/http"
)

const (
	DefaultPageLimit = 20
	MaxPageLimit     = 100
)

func StrPtr(s string) *string {
	return &s
}

func PtrString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func PtrInt32(i *int32) int32 {
	if i == nil {
		return 0
	}
	return *i
}

func WriteJSONError(w http.ResponseWriter, message string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}

// Paginate turns optional limit/page arguments into a SQL limit and offset.
// Pages start at 1.
func Paginate(limit, page *int32) (int, int) {
	l := int(PtrInt32(limit))
	if l <= 0 {
		l = DefaultPageLimit
	}
	if l > MaxPageLimit {
		l = MaxPageLimit
	}

	p := int(PtrInt32(page))
	if p < 1 {
		p = 1
	}
	return l, (p - 1) * l
}
