package serr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Error(t *testing.T) {
	dbErr := fmt.Errorf("disk on fire")

	testCases := []struct {
		name      string
		err       Error
		expectMsg string
		expectIs  []error
		expectNot []error
	}{
		{
			name:      "message only",
			err:       New("bad thing"),
			expectMsg: "bad thing",
			expectNot: []error{ErrDB, ErrNotFound},
		},
		{
			name:      "message and cause",
			err:       New("user not found", ErrNotFound),
			expectMsg: "user not found: " + ErrNotFound.Error(),
			expectIs:  []error{ErrNotFound},
			expectNot: []error{ErrDB},
		},
		{
			name:      "nil causes are skipped",
			err:       New("username cannot be blank", nil, ErrBadArgument),
			expectMsg: "username cannot be blank: " + ErrBadArgument.Error(),
			expectIs:  []error{ErrBadArgument},
		},
		{
			name:      "wrapped DB error keeps message",
			err:       WrapDB("could not get user", dbErr),
			expectMsg: "could not get user: disk on fire",
			expectIs:  []error{ErrDB, dbErr},
			expectNot: []error{ErrNotFound},
		},
		{
			name:      "wrapped DB error without message",
			err:       WrapDB("", dbErr),
			expectMsg: "disk on fire",
			expectIs:  []error{ErrDB, dbErr},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			assert.Equal(tc.expectMsg, tc.err.Error())
			for _, target := range tc.expectIs {
				assert.True(errors.Is(tc.err, target), "expected to match %v", target)
			}
			for _, target := range tc.expectNot {
				assert.False(errors.Is(tc.err, target), "expected not to match %v", target)
			}

			wrapped := fmt.Errorf("outer: %w", tc.err)
			assert.True(errors.Is(wrapped, tc.err))
		})
	}
}
