// Package errors 애플리케이션 전역에서 사용하는 분류형 에러를 제공합니다.
//
// 모든 에러는 ErrorType을 가지며, 원인 에러를 감싸 체인을 구성할 수 있습니다.
// %+v 형식으로 출력하면 생성 지점의 스택과 원인 체인이 함께 기록됩니다.
package errors

import (
	"errors"
	"fmt"
	"io"
	"strings"
)

// AppError 분류, 메시지, 원인, 생성 지점 스택을 함께 담는 에러입니다.
type AppError struct {
	errType ErrorType
	message string
	cause   error
	stack   callers
}

func (e *AppError) Type() ErrorType { return e.errType }

func (e *AppError) Message() string { return e.message }

// Stack 생성 지점의 호출 스택을 반환합니다.
func (e *AppError) Stack() []StackFrame { return e.stack.frames() }

func (e *AppError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.errType, e.message, e.cause)
	}
	return fmt.Sprintf("[%s] %s", e.errType, e.message)
}

func (e *AppError) Unwrap() error {
	return e.cause
}

// Format fmt.Formatter 구현입니다.
//
// %+v 는 가장 안쪽 AppError의 스택만 출력하여 중복된 스택이 반복되지 않도록 합니다.
func (e *AppError) Format(s fmt.State, verb rune) {
	switch verb {
	case 'v':
		if s.Flag('+') {
			fmt.Fprintf(s, "[%s] %s", e.errType, e.message)

			var inner *AppError
			if e.cause == nil || !errors.As(e.cause, &inner) {
				if frames := e.stack.frames(); len(frames) > 0 {
					io.WriteString(s, "\nStack trace:")
					for _, frame := range frames {
						fn := frame.Function
						if idx := strings.LastIndex(fn, "/"); idx != -1 {
							fn = fn[idx+1:]
						}
						fmt.Fprintf(s, "\n\t%s:%d %s", frame.File, frame.Line, fn)
					}
				}
			}

			if e.cause != nil {
				io.WriteString(s, "\nCaused by:\n")
				if f, ok := e.cause.(fmt.Formatter); ok {
					f.Format(s, verb)
				} else {
					fmt.Fprintf(s, "\t%v", e.cause)
				}
			}
			return
		}
		fallthrough
	case 's':
		io.WriteString(s, e.Error())
	case 'q':
		fmt.Fprintf(s, "%q", e.Error())
	}
}

// New 새로운 AppError를 생성합니다.
func New(errType ErrorType, message string) error {
	return &AppError{
		errType: errType,
		message: message,
		stack:   captureStack(defaultCallerSkip),
	}
}

// Newf 형식 문자열로 메시지를 만들어 AppError를 생성합니다.
func Newf(errType ErrorType, format string, args ...any) error {
	return &AppError{
		errType: errType,
		message: fmt.Sprintf(format, args...),
		stack:   captureStack(defaultCallerSkip),
	}
}

// Wrap 원인 에러를 감싼 AppError를 생성합니다. err가 nil이면 nil을 반환합니다.
func Wrap(err error, errType ErrorType, message string) error {
	if err == nil {
		return nil
	}
	return &AppError{
		errType: errType,
		message: message,
		cause:   err,
		stack:   captureStack(defaultCallerSkip),
	}
}

// Wrapf Wrap의 형식 문자열 버전입니다.
func Wrapf(err error, errType ErrorType, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return &AppError{
		errType: errType,
		message: fmt.Sprintf(format, args...),
		cause:   err,
		stack:   captureStack(defaultCallerSkip),
	}
}

// Is 에러 체인 안에 주어진 ErrorType의 AppError가 하나라도 있는지 확인합니다.
func Is(err error, errType ErrorType) bool {
	for err != nil {
		if appErr, ok := err.(*AppError); ok && appErr.errType == errType {
			return true
		}
		err = errors.Unwrap(err)
	}
	return false
}

// As 표준 errors.As 와 동일합니다.
func As(err error, target any) bool {
	return errors.As(err, target)
}

// RootCause 에러 체인의 가장 안쪽 에러를 반환합니다.
func RootCause(err error) error {
	if err == nil {
		return nil
	}
	for {
		next := errors.Unwrap(err)
		if next == nil {
			return err
		}
		err = next
	}
}

// UnderlyingType 에러 체인에서 가장 안쪽에 있는 AppError의 ErrorType을 반환합니다.
// AppError가 없으면 Unknown을 반환합니다.
func UnderlyingType(err error) ErrorType {
	last := Unknown
	for err != nil {
		if appErr, ok := err.(*AppError); ok {
			last = appErr.errType
		}
		err = errors.Unwrap(err)
	}
	return last
}
