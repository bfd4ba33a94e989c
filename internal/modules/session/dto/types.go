package dto

type EstablishInput struct {
	StudentID    string
	StudentName  string
	TargetCareer string
}

type RefreshInput struct {
	// StudentID, when set, must match the stored session or nothing is written.
	StudentID    string
	StudentName  string
	TargetCareer string
}

type SessionOutput struct {
	StudentID    string
	StudentName  string
	TargetCareer string
}
