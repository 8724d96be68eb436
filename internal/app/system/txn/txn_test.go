package txn

import (
	"errors"
	"testing"

	"go.mongodb.org/mongo-driver/mongo"
)

func TestIsNotSupported(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{
			name: "nil error",
			err:  nil,
			want: false,
		},
		{
			name: "unrelated error",
			err:  errors.New("connection reset by peer"),
			want: false,
		},
		{
			name: "command error code 20",
			err:  mongo.CommandError{Code: 20, Message: "Transaction numbers are only allowed on a replica set member"},
			want: true,
		},
		{
			name: "command error code 51",
			err:  mongo.CommandError{Code: 51, Message: "Illegal operation"},
			want: true,
		},
		{
			name: "command error code 263",
			err:  mongo.CommandError{Code: 263, Message: "Cannot run in a multi-document transaction"},
			want: true,
		},
		{
			name: "command error with other code",
			err:  mongo.CommandError{Code: 11000, Message: "duplicate key"},
			want: false,
		},
		{
			name: "keyword match: transaction on non replica set",
			err:  errors.New("transaction failed: server is not a replica set member"),
			want: true,
		},
		{
			name: "keyword match: sessions not supported",
			err:  errors.New("session operations are not supported on this server"),
			want: true,
		},
		{
			name: "keyword match: illegal operation",
			err:  errors.New("illegal operation during transaction"),
			want: true,
		},
		{
			name: "single keyword is not enough",
			err:  errors.New("transaction aborted"),
			want: false,
		},
		{
			name: "keywords matched case-insensitively",
			err:  errors.New("TRANSACTION not allowed outside REPLICA SET"),
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := IsNotSupported(tt.err)
			if got != tt.want {
				t.Errorf("IsNotSupported(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}
