package errors

import (
	"fmt"
	"os"
	"strings"
	"sync"
)

var (
	defaultHandler *ErrorHandler
	defaultOptions = DefaultLogOptions()
	once           sync.Once
)

// SetLogOptions configures the default handler. It has no effect once the
// handler has been created.
func SetLogOptions(opts LogOptions) {
	defaultOptions = opts
}

func GetDefaultHandler() (*ErrorHandler, error) {
	var err error
	once.Do(func() {
		defaultHandler, err = NewErrorHandler(defaultOptions)
	})
	if err == nil && defaultHandler == nil {
		err = fmt.Errorf("error handler unavailable")
	}
	return defaultHandler, err
}

// HandleError reports err on stderr, through the default handler when it
// could be created.
func HandleError(err error) {
	if err == nil {
		return
	}
	if handler, handlerErr := GetDefaultHandler(); handlerErr == nil {
		handler.Handle(err)
		return
	}
	fmt.Fprintf(os.Stderr, "Error: %s\n", strings.Join(strings.Fields(err.Error()), " "))
}

// resetDefaultHandler resets the singleton for testing purposes
func resetDefaultHandler() {
	defaultHandler = nil
	defaultOptions = DefaultLogOptions()
	once = sync.Once{}
}
