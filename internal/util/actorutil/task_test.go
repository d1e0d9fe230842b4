package actorutil

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

type taskOutcome struct {
	value int
	err   error
}

func TestBackgroundTaskSuccess(t *testing.T) {
	var got *taskOutcome
	NewBackgroundTask(nil, func() (*taskOutcome, error) {
		return &taskOutcome{value: 42}, nil
	}).OnSuccess(func(r taskOutcome) {
		got = &r
	}).Run()

	assert.NotNil(t, got)
	assert.Equal(t, 42, got.value)
	assert.NoError(t, got.err)
}

func TestBackgroundTaskRecoveredValueReachesOnSuccess(t *testing.T) {
	taskErr := errors.New("fetch failed")

	var got *taskOutcome
	NewBackgroundTask(nil, func() (*taskOutcome, error) {
		return nil, taskErr
	}).Recover(func(err error) taskOutcome {
		return taskOutcome{err: err}
	}).OnSuccess(func(r taskOutcome) {
		got = &r
	}).Run()

	assert.NotNil(t, got)
	assert.ErrorIs(t, got.err, taskErr)
	assert.Zero(t, got.value)
}

func TestBackgroundTaskErrorWithoutRecover(t *testing.T) {
	var gotErr error
	called := false
	NewBackgroundTask(nil, func() (*taskOutcome, error) {
		return nil, errors.New("fetch failed")
	}).OnError(func(err error) {
		gotErr = err
	}).OnSuccess(func(r taskOutcome) {
		called = true
	}).Run()

	assert.Error(t, gotErr)
	assert.False(t, called)
}
