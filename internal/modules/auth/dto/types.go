package dto

type LoginInput struct {
	Email    string
	Password string
}

type RegisterInput struct {
	Name         string
	Email        string
	Password     string
	TargetCareer string
}

type CreateProfileInput struct {
	Name         string
	TargetCareer string
}

type AuthOutput struct {
	StudentID    string
	Name         string
	TargetCareer string
}

type CareerOutput struct {
	ID      string
	Label   string
	Icon    string
	Summary string
}
