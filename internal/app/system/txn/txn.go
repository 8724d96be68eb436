// internal/app/system/txn/txn.go

// Package txn wraps multi-document writes in a MongoDB transaction when the
// server supports one, and degrades to plain sequential writes when it does
// not (standalone servers without a replica set).
//
// The project store uses this for its paired mutations: insert project +
// append to the owner's project list, and pull from the owner's list +
// delete the project document. On a replica set both writes commit or roll
// back together; on a standalone server the writes run in order and a crash
// between them can still leave the owner list inconsistent.
package txn

import (
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Run executes fn inside a transaction if possible.
//
// fn must use the context it is given for every collection call so the
// driver can attach the session. If starting or committing the transaction
// fails because the server does not support transactions, fn runs once more
// without one.
func Run(ctx context.Context, db *mongo.Database, log *zap.Logger, fn func(ctx context.Context) error) error {
	sess, err := db.Client().StartSession()
	if err != nil {
		if IsNotSupported(err) {
			log.Debug("sessions unavailable; running writes without a transaction", zap.Error(err))
			return fn(ctx)
		}
		return err
	}
	defer sess.EndSession(ctx)

	_, err = sess.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, fn(sc)
	})
	if err != nil && IsNotSupported(err) {
		log.Debug("transactions unavailable; running writes without a transaction", zap.Error(err))
		return fn(ctx)
	}
	return err
}

// IsNotSupported reports whether err indicates the server cannot run
// transactions, as opposed to the transaction body failing.
//
// Known server codes: 20 (IllegalOperation on standalone), 51, 263.
// For wrapped/driver-mangled errors we fall back to keyword matching.
func IsNotSupported(err error) bool {
	if err == nil {
		return false
	}

	var ce mongo.CommandError
	if errors.As(err, &ce) {
		switch ce.Code {
		case 20, 51, 263:
			return true
		}
		return false
	}

	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "illegal operation") {
		return true
	}
	if strings.Contains(msg, "transaction") &&
		(strings.Contains(msg, "replica set") || strings.Contains(msg, "session")) {
		return true
	}
	if strings.Contains(msg, "session") && strings.Contains(msg, "not supported") {
		return true
	}
	return false
}
