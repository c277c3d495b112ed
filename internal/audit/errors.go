package audit

import (
	"context"
	"errors"
	"fmt"
)

// Этапы, на которых может упасть аудит
const (
	StageLaunch = "launch"
	StageAudit  = "audit"
	StageReport = "report"
)

// ErrEmptyReport возвращается, когда движок аудита не вернул отчет
var ErrEmptyReport = errors.New("empty audit report")

// Failure описывает неудачный аудит одного URL
type Failure struct {
	URL   string
	Stage string
	Err   error
}

// Error возвращает сообщение исходной ошибки, чтобы оно попадало в отчет без обертки
func (f *Failure) Error() string {
	if f.Err == nil {
		return fmt.Sprintf("audit failed at %s stage", f.Stage)
	}
	return f.Err.Error()
}

// Unwrap возвращает исходную ошибку
func (f *Failure) Unwrap() error {
	return f.Err
}

// IsFailure сообщает, является ли ошибка ошибкой аудита
func IsFailure(err error) bool {
	var f *Failure
	return errors.As(err, &f)
}

// isContextError сообщает, что аудит прерван по таймауту или отмене
func isContextError(err error) bool {
	return errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled)
}
