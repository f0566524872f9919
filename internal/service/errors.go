package service

import (
	"context"

	"github.com/haierkeys/note-graph-service/pkg/code"
	"github.com/haierkeys/note-graph-service/pkg/writequeue"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// toCodeError maps a storage error onto a response code.
// A *code.Code already in the chain passes through untouched.
// toCodeError 将存储层错误映射为业务错误码
func toCodeError(err error, notFound, conflict *code.Code) error {
	if err == nil {
		return nil
	}

	var c *code.Code
	if errors.As(err, &c) {
		return c
	}

	switch {
	case notFound != nil && errors.Is(err, gorm.ErrRecordNotFound):
		return notFound
	case conflict != nil && errors.Is(err, gorm.ErrDuplicatedKey):
		return conflict
	case errors.Is(err, writequeue.ErrWriteQueueFull),
		errors.Is(err, writequeue.ErrWriteQueueClosed),
		errors.Is(err, writequeue.ErrWriteTimeout),
		errors.Is(err, context.DeadlineExceeded):
		return code.ErrorServerBusy.WithDetails(err.Error())
	}
	return code.ErrorDBQuery.WithDetails(err.Error())
}

// isExpected 判断是否为预期的业务错误（不记录错误日志）
func isExpected(err error) bool {
	var c *code.Code
	return errors.As(err, &c) && c.Code() != code.ErrorDBQuery.Code() && c.Code() != code.ErrorServerBusy.Code()
}
