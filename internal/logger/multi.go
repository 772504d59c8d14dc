package logger

// Multi returns a Logger that forwards every entry to each target, so a
// command can log to the console and a run file at once.
func Multi(targets ...Logger) Logger {
	return multiLogger{targets: targets}
}

type multiLogger struct {
	targets []Logger
}

func (m multiLogger) Debugf(format string, args ...interface{}) {
	for _, t := range m.targets {
		t.Debugf(format, args...)
	}
}

func (m multiLogger) Infof(format string, args ...interface{}) {
	for _, t := range m.targets {
		t.Infof(format, args...)
	}
}

func (m multiLogger) Warnf(format string, args ...interface{}) {
	for _, t := range m.targets {
		t.Warnf(format, args...)
	}
}

func (m multiLogger) Errorf(format string, args ...interface{}) {
	for _, t := range m.targets {
		t.Errorf(format, args...)
	}
}
