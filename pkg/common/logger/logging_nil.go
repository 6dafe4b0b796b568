package logger

type NilLogger struct{}

func (n NilLogger) Info(format string, v ...interface{}) {
}

func (n NilLogger) Debug(format string, v ...interface{}) {
}

func (n NilLogger) Warn(format string, v ...interface{}) {
}

func (n NilLogger) Error(format string, v ...interface{}) {
}

func (n NilLogger) Panic(format string, v ...interface{}) {
}
