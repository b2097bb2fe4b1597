package logconf

import (
	"fmt"
	"strings"
)

// LogGroupARN is a parsed CloudWatch Logs log group ARN.
type LogGroupARN struct {
	Partition string
	Region    string
	AccountID string
	Name      string
}

// ParseLogGroupARN parses and validates a log group ARN of the form
// arn:<partition>:logs:<region>:<account>:log-group:<name>, with or without
// the trailing ":*" CloudWatch appends to described ARNs.
func ParseLogGroupARN(raw string) (LogGroupARN, error) {
	trimmed := strings.TrimSpace(raw)
	parts := strings.SplitN(trimmed, ":", 7)
	if len(parts) != 7 {
		return LogGroupARN{}, fmt.Errorf("%w: %q", ErrInvalidLogGroupARN, raw)
	}
	if parts[0] != "arn" || parts[2] != "logs" || parts[5] != "log-group" {
		return LogGroupARN{}, fmt.Errorf("%w: %q", ErrInvalidLogGroupARN, raw)
	}

	arn := LogGroupARN{
		Partition: parts[1],
		Region:    parts[3],
		AccountID: parts[4],
		Name:      strings.TrimSuffix(parts[6], ":*"),
	}
	if arn.Partition == "" || arn.Region == "" || arn.AccountID == "" || arn.Name == "" {
		return LogGroupARN{}, fmt.Errorf("%w: %q", ErrInvalidLogGroupARN, raw)
	}
	return arn, nil
}

// String reassembles the canonical ARN without the trailing ":*".
func (a LogGroupARN) String() string {
	return fmt.Sprintf("arn:%s:logs:%s:%s:log-group:%s", a.Partition, a.Region, a.AccountID, a.Name)
}
