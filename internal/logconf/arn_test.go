package logconf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLogGroupARN(t *testing.T) {
	arn, err := ParseLogGroupARN("arn:aws:logs:eu-west-1:123456789012:log-group:airflow-prod-Task")
	require.NoError(t, err)

	assert.Equal(t, "aws", arn.Partition)
	assert.Equal(t, "eu-west-1", arn.Region)
	assert.Equal(t, "123456789012", arn.AccountID)
	assert.Equal(t, "airflow-prod-Task", arn.Name)
}

func TestParseLogGroupARNTrimsWildcardSuffix(t *testing.T) {
	arn, err := ParseLogGroupARN("arn:aws-us-gov:logs:us-gov-west-1:123456789012:log-group:/aws/airflow/env:*")
	require.NoError(t, err)

	assert.Equal(t, "/aws/airflow/env", arn.Name)
	assert.Equal(t, "arn:aws-us-gov:logs:us-gov-west-1:123456789012:log-group:/aws/airflow/env", arn.String())
}

func TestParseLogGroupARNRejectsMalformedInput(t *testing.T) {
	cases := []string{
		"",
		"not-an-arn",
		"arn:aws:s3:::bucket",
		"arn:aws:logs:us-east-1:123456789012:destination:foo",
		"arn:aws:logs:us-east-1::log-group:name",
		"arn:aws:logs::123456789012:log-group:name",
		"arn:aws:logs:us-east-1:123456789012:log-group:",
	}

	for _, raw := range cases {
		_, err := ParseLogGroupARN(raw)
		assert.ErrorIsf(t, err, ErrInvalidLogGroupARN, "input %q", raw)
	}
}
