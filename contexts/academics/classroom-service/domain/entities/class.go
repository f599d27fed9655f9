package entities

import (
	"strings"

	domainerrors "classtrack/contexts/academics/classroom-service/domain/errors"
)

const MinClassCodeLength = 3

type Class struct {
	ClassID   int64
	Name      string
	Code      string
	TeacherID *int64
}

func (c Class) TaughtBy(userID int64) bool {
	return c.TeacherID != nil && *c.TeacherID == userID
}

func NormalizeClassName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", domainerrors.ErrInvalidClassName
	}
	return name, nil
}

// NormalizeClassCode returns the stored (uppercase) form of a class code.
// Uniqueness is always compared on this form.
func NormalizeClassCode(code string) (string, error) {
	code = strings.TrimSpace(code)
	if len([]rune(code)) < MinClassCodeLength {
		return "", domainerrors.ErrInvalidClassCode
	}
	return strings.ToUpper(code), nil
}
