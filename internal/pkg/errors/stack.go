package errors

import (
	"path/filepath"
	"runtime"
)

const (
	// defaultCallerSkip runtime.Callers, captureStack, 생성 함수(New/Wrap 등)를 건너뜁니다.
	defaultCallerSkip = 3

	maxStackFrames = 5
)

// StackFrame 에러가 생성된 지점의 호출 정보입니다.
type StackFrame struct {
	File     string
	Line     int
	Function string
}

// callers 생성 시점의 프로그램 카운터입니다. 파일과 줄 번호는 출력할 때만 해석합니다.
type callers []uintptr

func captureStack(skip int) callers {
	pc := make([]uintptr, maxStackFrames)
	n := runtime.Callers(skip, pc)
	if n == 0 {
		return nil
	}
	return callers(pc[:n])
}

func (c callers) frames() []StackFrame {
	if len(c) == 0 {
		return nil
	}

	frames := make([]StackFrame, 0, len(c))
	it := runtime.CallersFrames(c)
	for {
		frame, more := it.Next()
		frames = append(frames, StackFrame{
			File:     filepath.Base(frame.File),
			Line:     frame.Line,
			Function: frame.Function,
		})
		if !more {
			return frames
		}
	}
}
