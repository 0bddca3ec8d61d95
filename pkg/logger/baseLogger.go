package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"sync"
)

type BaseLogger struct {
	mu     sync.Mutex
	prefix string
	writer io.Writer
}

func NewLogger(writer io.Writer, prefix string) *BaseLogger {
	if writer == nil {
		writer = os.Stdout
	}
	return &BaseLogger{
		writer: writer,
		prefix: prefix,
	}
}

func (l *BaseLogger) Log(format string, v ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()

	message := fmt.Sprintf(l.prefix+" "+format, v...)
	fmt.Fprintln(l.writer, message)
	if l.writer != os.Stdout {
		log.Print(message)
	}
}

func (l *BaseLogger) FatalLog(format string, v ...interface{}) {
	l.mu.Lock()
	message := fmt.Sprintf(l.prefix+" "+format, v...)
	fmt.Fprintln(l.writer, message)
	l.mu.Unlock()
	log.Fatal(message)
}

// WithPrefix returns a copy of the logger with an extra prefix appended,
// sharing the same writer.
func (l *BaseLogger) WithPrefix(extraPrefix string) *BaseLogger {
	return &BaseLogger{
		writer: l.writer,
		prefix: l.prefix + " " + extraPrefix,
	}
}

func (l *BaseLogger) SetPrefix(prefix string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.prefix = prefix
}
