package domain

import "errors"

var (
	// ErrTaskNotFound is returned when a task id is not part of the catalog.
	ErrTaskNotFound = errors.New("task not found")
	// ErrQuestionNotFound indicates a question id is not part of the catalog.
	ErrQuestionNotFound = errors.New("question not found")
	// ErrInvalidOption indicates a letter that does not address one of the question's options.
	ErrInvalidOption = errors.New("option not found")
	// ErrInvalidCatalog is returned when catalog content breaks its structural rules.
	ErrInvalidCatalog = errors.New("invalid catalog")
	// ErrNoExam is returned when an exam action arrives before any exam was generated.
	ErrNoExam = errors.New("no exam in progress")
	// ErrQuestionNotInExam indicates an answer for a question outside the current exam set.
	ErrQuestionNotInExam = errors.New("question not in exam")
	// ErrAlreadySubmitted is returned when answering an exam that has been submitted.
	ErrAlreadySubmitted = errors.New("exam already submitted")
	// ErrAlreadyAnswered is returned when re-answering a locked study question.
	ErrAlreadyAnswered = errors.New("question already answered")
	// ErrUnknownTab indicates a tab that is neither a task nor the exam.
	ErrUnknownTab = errors.New("unknown tab")
	// ErrSessionNotFound is returned when a client session has not been initialized.
	ErrSessionNotFound = errors.New("study session not found")
	// ErrInvalidIdentity is returned when an identity token cannot be verified.
	ErrInvalidIdentity = errors.New("invalid identity")
	// ErrInvalidProgress indicates a persisted progress document that must be discarded.
	ErrInvalidProgress = errors.New("invalid progress document")
)
