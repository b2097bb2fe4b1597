package logconf

import "errors"

var (
	// ErrInvalidLogLevel is returned when a source's log level is not one of
	// the severity names the host's logging module understands.
	ErrInvalidLogLevel = errors.New("log level must be one of NOTSET, DEBUG, INFO, WARNING, ERROR, CRITICAL")
	// ErrInvalidLogGroupARN is returned when a log group ARN does not have the
	// arn:<partition>:logs:<region>:<account>:log-group:<name> shape.
	ErrInvalidLogGroupARN = errors.New("malformed log group ARN")
)
