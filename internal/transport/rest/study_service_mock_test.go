package rest

import (
	"context"
	"sync"

	"github.com/rsimmons/yukawa/internal/domain"
	"github.com/rsimmons/yukawa/internal/service/study"
)

var _ studyService = &studyServiceMock{}

type studyServiceMock struct {
	PickActivityFunc func(ctx context.Context, input study.PickActivityInput) (*domain.Activity, error)
	RecordResultFunc func(ctx context.Context, input study.RecordResultInput) (study.Report, error)

	calls struct {
		PickActivity []study.PickActivityInput
		RecordResult []study.RecordResultInput
	}
	lockPickActivity sync.RWMutex
	lockRecordResult sync.RWMutex
}

func (mock *studyServiceMock) PickActivity(ctx context.Context, input study.PickActivityInput) (*domain.Activity, error) {
	if mock.PickActivityFunc == nil {
		panic("studyServiceMock.PickActivityFunc: method is nil but studyService.PickActivity was just called")
	}
	mock.lockPickActivity.Lock()
	mock.calls.PickActivity = append(mock.calls.PickActivity, input)
	mock.lockPickActivity.Unlock()
	return mock.PickActivityFunc(ctx, input)
}

func (mock *studyServiceMock) PickActivityCalls() []study.PickActivityInput {
	mock.lockPickActivity.RLock()
	defer mock.lockPickActivity.RUnlock()
	return mock.calls.PickActivity
}

func (mock *studyServiceMock) RecordResult(ctx context.Context, input study.RecordResultInput) (study.Report, error) {
	if mock.RecordResultFunc == nil {
		panic("studyServiceMock.RecordResultFunc: method is nil but studyService.RecordResult was just called")
	}
	mock.lockRecordResult.Lock()
	mock.calls.RecordResult = append(mock.calls.RecordResult, input)
	mock.lockRecordResult.Unlock()
	return mock.RecordResultFunc(ctx, input)
}

func (mock *studyServiceMock) RecordResultCalls() []study.RecordResultInput {
	mock.lockRecordResult.RLock()
	defer mock.lockRecordResult.RUnlock()
	return mock.calls.RecordResult
}
