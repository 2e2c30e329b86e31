package study

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/rsimmons/yukawa/internal/catalog"
	"github.com/rsimmons/yukawa/internal/domain"
)

var _ retentionRepo = &retentionRepoMock{}

type retentionRepoMock struct {
	GetFunc          func(ctx context.Context, userID uuid.UUID, lang string) (domain.RetentionTable, error)
	GetForUpdateFunc func(ctx context.Context, userID uuid.UUID, lang string) (domain.RetentionTable, error)
	SaveFunc         func(ctx context.Context, userID uuid.UUID, lang string, table domain.RetentionTable) error

	calls struct {
		Get []struct {
			UserID uuid.UUID
			Lang   string
		}
		GetForUpdate []struct {
			UserID uuid.UUID
			Lang   string
		}
		Save []struct {
			UserID uuid.UUID
			Lang   string
			Table  domain.RetentionTable
		}
	}
	lockGet          sync.RWMutex
	lockGetForUpdate sync.RWMutex
	lockSave         sync.RWMutex
}

func (mock *retentionRepoMock) Get(ctx context.Context, userID uuid.UUID, lang string) (domain.RetentionTable, error) {
	if mock.GetFunc == nil {
		panic("retentionRepoMock.GetFunc: method is nil but retentionRepo.Get was just called")
	}
	callInfo := struct {
		UserID uuid.UUID
		Lang   string
	}{UserID: userID, Lang: lang}
	mock.lockGet.Lock()
	mock.calls.Get = append(mock.calls.Get, callInfo)
	mock.lockGet.Unlock()
	return mock.GetFunc(ctx, userID, lang)
}

func (mock *retentionRepoMock) GetCalls() []struct {
	UserID uuid.UUID
	Lang   string
} {
	mock.lockGet.RLock()
	calls := mock.calls.Get
	mock.lockGet.RUnlock()
	return calls
}

func (mock *retentionRepoMock) GetForUpdate(ctx context.Context, userID uuid.UUID, lang string) (domain.RetentionTable, error) {
	if mock.GetForUpdateFunc == nil {
		panic("retentionRepoMock.GetForUpdateFunc: method is nil but retentionRepo.GetForUpdate was just called")
	}
	callInfo := struct {
		UserID uuid.UUID
		Lang   string
	}{UserID: userID, Lang: lang}
	mock.lockGetForUpdate.Lock()
	mock.calls.GetForUpdate = append(mock.calls.GetForUpdate, callInfo)
	mock.lockGetForUpdate.Unlock()
	return mock.GetForUpdateFunc(ctx, userID, lang)
}

func (mock *retentionRepoMock) GetForUpdateCalls() []struct {
	UserID uuid.UUID
	Lang   string
} {
	mock.lockGetForUpdate.RLock()
	calls := mock.calls.GetForUpdate
	mock.lockGetForUpdate.RUnlock()
	return calls
}

func (mock *retentionRepoMock) Save(ctx context.Context, userID uuid.UUID, lang string, table domain.RetentionTable) error {
	if mock.SaveFunc == nil {
		panic("retentionRepoMock.SaveFunc: method is nil but retentionRepo.Save was just called")
	}
	callInfo := struct {
		UserID uuid.UUID
		Lang   string
		Table  domain.RetentionTable
	}{UserID: userID, Lang: lang, Table: table}
	mock.lockSave.Lock()
	mock.calls.Save = append(mock.calls.Save, callInfo)
	mock.lockSave.Unlock()
	return mock.SaveFunc(ctx, userID, lang, table)
}

func (mock *retentionRepoMock) SaveCalls() []struct {
	UserID uuid.UUID
	Lang   string
	Table  domain.RetentionTable
} {
	mock.lockSave.RLock()
	calls := mock.calls.Save
	mock.lockSave.RUnlock()
	return calls
}

var _ catalogSource = &catalogSourceMock{}

type catalogSourceMock struct {
	GetFunc func(lang string) (*catalog.Catalog, error)

	calls struct {
		Get []struct {
			Lang string
		}
	}
	lockGet sync.RWMutex
}

func (mock *catalogSourceMock) Get(lang string) (*catalog.Catalog, error) {
	if mock.GetFunc == nil {
		panic("catalogSourceMock.GetFunc: method is nil but catalogSource.Get was just called")
	}
	callInfo := struct{ Lang string }{Lang: lang}
	mock.lockGet.Lock()
	mock.calls.Get = append(mock.calls.Get, callInfo)
	mock.lockGet.Unlock()
	return mock.GetFunc(lang)
}

func (mock *catalogSourceMock) GetCalls() []struct {
	Lang string
} {
	mock.lockGet.RLock()
	calls := mock.calls.Get
	mock.lockGet.RUnlock()
	return calls
}

var _ txManager = &txManagerMock{}

type txManagerMock struct {
	RunInTxFunc func(ctx context.Context, fn func(ctx context.Context) error) error

	calls struct {
		RunInTx []struct {
			Ctx context.Context
		}
	}
	lockRunInTx sync.RWMutex
}

func (mock *txManagerMock) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if mock.RunInTxFunc == nil {
		panic("txManagerMock.RunInTxFunc: method is nil but txManager.RunInTx was just called")
	}
	callInfo := struct{ Ctx context.Context }{Ctx: ctx}
	mock.lockRunInTx.Lock()
	mock.calls.RunInTx = append(mock.calls.RunInTx, callInfo)
	mock.lockRunInTx.Unlock()
	return mock.RunInTxFunc(ctx, fn)
}

func (mock *txManagerMock) RunInTxCalls() []struct {
	Ctx context.Context
} {
	mock.lockRunInTx.RLock()
	calls := mock.calls.RunInTx
	mock.lockRunInTx.RUnlock()
	return calls
}
