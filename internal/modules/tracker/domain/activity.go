package domain

import (
	"strings"
	"time"

	apperrors "careercompass/internal/platform/errors"
)

type Category string

const (
	CategoryDataScientist Category = "Data Scientist"
	CategoryFrontendDev   Category = "Frontend Dev"
	CategoryBackendDev    Category = "Backend Dev"
	CategoryArt           Category = "Art"
	CategoryOther         Category = "Other"

	DefaultCategory = CategoryFrontendDev
)

var Categories = []Category{
	CategoryDataScientist,
	CategoryFrontendDev,
	CategoryBackendDev,
	CategoryArt,
	CategoryOther,
}

func (c Category) Label() string {
	if c == CategoryArt {
		return "Art (Irrelevant)"
	}
	return string(c)
}

// ParseCategory matches case-insensitively; dashes and underscores count as spaces.
func ParseCategory(raw string) (Category, error) {
	norm := strings.ToLower(strings.NewReplacer("-", " ", "_", " ").Replace(strings.TrimSpace(raw)))
	for _, c := range Categories {
		if strings.ToLower(string(c)) == norm {
			return c, nil
		}
	}
	return "", apperrors.Invalid("known category")
}

// TypeLearning is the only activity type this client creates.
const TypeLearning = "Learning"

type Activity struct {
	ID        string
	StudentID string
	Name      string
	Category  Category
	Type      string
	Timestamp time.Time
}

// NewActivity builds a learning activity. Blank names are rejected.
func NewActivity(studentID, name string, category Category) (Activity, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Activity{}, apperrors.Invalid("activity name")
	}
	if strings.TrimSpace(studentID) == "" {
		return Activity{}, apperrors.Invalid("student id")
	}
	if _, err := ParseCategory(string(category)); err != nil {
		return Activity{}, err
	}
	return Activity{StudentID: studentID, Name: name, Category: category, Type: TypeLearning}, nil
}

type Profile struct {
	StudentID    string
	Name         string
	TargetCareer string
}
