package log

import "github.com/sirupsen/logrus"

// 호출부가 logrus를 직접 import하지 않도록 자주 쓰는 타입과 상수를 재노출합니다.

type (
	Level     = logrus.Level
	Fields    = logrus.Fields
	Entry     = logrus.Entry
	Logger    = logrus.Logger
	Formatter = logrus.Formatter
)

const (
	PanicLevel = logrus.PanicLevel
	FatalLevel = logrus.FatalLevel
	ErrorLevel = logrus.ErrorLevel
	WarnLevel  = logrus.WarnLevel
	InfoLevel  = logrus.InfoLevel
	DebugLevel = logrus.DebugLevel
	TraceLevel = logrus.TraceLevel
)

var AllLevels = logrus.AllLevels
