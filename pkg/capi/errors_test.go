package capi

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProtocolError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *ProtocolError
		expected string
	}{
		{
			name:     "with status code",
			err:      &ProtocolError{Method: "PUT", URL: "http://api/v2/apps/1", StatusCode: 500, Message: "Internal Server Error"},
			expected: "unexpected response code from PUT http://api/v2/apps/1 is 500, message Internal Server Error",
		},
		{
			name:     "without status code",
			err:      &ProtocolError{Method: "GET", URL: "http://api/info", Message: "missing token_endpoint"},
			expected: "unexpected response from GET http://api/info: missing token_endpoint",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Error())
		})
	}
}

func TestProtocolError_Unwrap(t *testing.T) {
	err := &ProtocolError{Method: "GET", URL: "http://api/info", Err: ErrMissingEndpoint}

	assert.ErrorIs(t, err, ErrMissingEndpoint)
}

func TestErrorHelpers(t *testing.T) {
	protoErr := fmt.Errorf("listing apps: %w", &ProtocolError{Method: "GET", StatusCode: 503})
	authErr := fmt.Errorf("logging in: %w", &AuthenticationError{StatusCode: 401})
	notFound := fmt.Errorf("resolving: %w", &NotFoundError{Kind: "application", Name: "test"})
	plain := errors.New("boom")

	assert.True(t, IsProtocolError(protoErr))
	assert.False(t, IsProtocolError(authErr))
	assert.True(t, IsAuthenticationError(authErr))
	assert.False(t, IsAuthenticationError(plain))
	assert.True(t, IsNotFound(notFound))
	assert.False(t, IsNotFound(protoErr))

	assert.Equal(t, 503, StatusCode(protoErr))
	assert.Equal(t, 401, StatusCode(authErr))
	assert.Equal(t, 0, StatusCode(plain))
}

func TestNotFoundError_Error(t *testing.T) {
	err := &NotFoundError{Kind: "route", Name: "test_host.test_domain"}

	assert.Equal(t, `route "test_host.test_domain" not found`, err.Error())
}

func TestParseCommand(t *testing.T) {
	tests := []struct {
		input   string
		want    Command
		wantErr bool
	}{
		{input: "STOP", want: CommandStop},
		{input: "start", want: CommandStart},
		{input: " Restart ", want: CommandRestart},
		{input: "delete", want: CommandDelete},
		{input: "scale", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseCommand(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnsupportedCommand)

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCredential(t *testing.T) {
	var empty Credential
	assert.True(t, empty.IsZero())

	cred := Credential{TokenType: "bearer", AccessToken: "abc"}
	assert.False(t, cred.IsZero())
	assert.Equal(t, "bearer abc", cred.Header())
}

func TestAppKey_String(t *testing.T) {
	key := AppKey{Org: "test_org", Space: "test_space", App: "test"}

	assert.Equal(t, "test_org/test_space/test", key.String())
}
