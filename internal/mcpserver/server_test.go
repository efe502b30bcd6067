package mcpserver

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "nil error",
			err:  nil,
			want: "",
		},
		{
			name: "no path",
			err:  errors.New("something went wrong"),
			want: "something went wrong",
		},
		{
			name: "home path stripped",
			err:  errors.New("open /home/alice/secrets/integration.yml: no such file"),
			want: "open <path>: no such file",
		},
		{
			name: "tmp path stripped",
			err:  errors.New("read /tmp/foo-123/x.yml failed"),
			want: "read <path> failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, sanitizeError(tt.err))
		})
	}
}

func TestMakeSlice(t *testing.T) {
	assert.Nil(t, makeSlice[string](0))

	s := makeSlice[int](3)
	assert.NotNil(t, s)
	assert.Empty(t, s)
	assert.Equal(t, 3, cap(s))
}
