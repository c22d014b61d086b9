package common

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "with cause",
			err:  WrapError(ErrCodeGitHubAPI, "list starred", errors.New("boom")),
			want: "[GITHUB_API_ERROR] list starred: boom",
		},
		{
			name: "without cause",
			err:  NewError(ErrCodeConfig, "missing GITHUB_TOKEN"),
			want: "[CONFIG_ERROR] missing GITHUB_TOKEN",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.EqualError(t, tt.err, tt.want)
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := fmt.Errorf("outer: %w", WrapError(ErrCodeStorage, "write", cause))

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, ErrCodeStorage, CodeOf(err))
	assert.Equal(t, "", CodeOf(cause))
	assert.Equal(t, "", CodeOf(nil))
}
