package pgerrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestIsConcurrentConflict(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"serialization failure", &pq.Error{Code: "40001"}, true},
		{"deadlock", &pq.Error{Code: "40P01"}, true},
		{"exclusion violation", &pq.Error{Code: "23P01"}, true},
		{"wrapped exclusion", fmt.Errorf("insert: %w", &pq.Error{Code: "23P01"}), true},
		{"foreign key", &pq.Error{Code: "23503"}, false},
		{"plain error", errors.New("boom"), false},
		{"nil", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsConcurrentConflict(tt.err))
		})
	}
}

func TestWrap(t *testing.T) {
	assert.Nil(t, Wrap("op", nil))

	plain := errors.New("boom")
	assert.Same(t, plain, Wrap("op", plain))

	wrapped := Wrap("commit", &pq.Error{Code: "40001"})
	assert.ErrorIs(t, wrapped, ErrConcurrentConflict)
	assert.Contains(t, wrapped.Error(), "commit")
}
