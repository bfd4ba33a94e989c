package domain

import "strings"

// Local storage keys owned by the session.
const (
	KeyStudentID    = "studentId"
	KeyStudentName  = "studentName"
	KeyTargetCareer = "targetCareer"
)

var Keys = []string{KeyStudentID, KeyStudentName, KeyTargetCareer}

// Session identifies the signed-in student on this machine.
type Session struct {
	StudentID    string `json:"studentId"`
	StudentName  string `json:"studentName"`
	TargetCareer string `json:"targetCareer"`
}

// Valid reports whether the session grants access to the dashboard.
func (s Session) Valid() bool {
	return strings.TrimSpace(s.StudentID) != ""
}

func (s Session) Values() map[string]string {
	return map[string]string{
		KeyStudentID:    s.StudentID,
		KeyStudentName:  s.StudentName,
		KeyTargetCareer: s.TargetCareer,
	}
}

func FromValues(values map[string]string) Session {
	return Session{
		StudentID:    values[KeyStudentID],
		StudentName:  values[KeyStudentName],
		TargetCareer: values[KeyTargetCareer],
	}
}
