package app

import "fmt"

// Alert messages shown to the user when a mutation fails, matching the
// UI's language.
const (
	msgAddFailed    = "할 일 추가에 실패했습니다."
	msgToggleFailed = "할 일 상태 변경에 실패했습니다."
	msgDeleteFailed = "할 일 삭제에 실패했습니다."
	msgSignInFailed = "로그인에 실패했습니다."
)

// AlertError is a mutation failure carrying the message the UI shows the
// user. The wrapped error keeps the technical cause for logs.
type AlertError struct {
	Message string
	Err     error
}

func (e *AlertError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AlertError) Unwrap() error {
	return e.Err
}
