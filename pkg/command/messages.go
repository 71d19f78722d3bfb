package command

const (
	MessageInvalidCommandFormat = "Invalid command format! \n%s"
	MessageUnknownCommand       = "Unknown command"
	MessageInvalidStudentIndex  = "The student index provided is invalid"
	MessageInvalidSessionIndex  = "The session index provided is invalid"
	MessageDuplicateStudent     = "This student already exists in the student list"
	MessageDuplicateSession     = "This session already exists in the session list"
	MessageNoSessionEntered     = "No session has been entered, use enterses first"
	MessageNothingToUndo        = "There is nothing to undo"
	MessageNothingToRedo        = "There is nothing to redo"
	MessageNoStudents           = "There are no students in the list"

	// ConfirmChoices is appended to every confirmation question.
	ConfirmChoices = "(yes/no)"
)
