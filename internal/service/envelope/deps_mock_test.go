package envelope

import (
	"context"
	"sync"
	"time"

	"github.com/heartmarshall/signroom-backend/internal/domain"
)

var _ envelopeRepo = &envelopeRepoMock{}

type envelopeRepoMock struct {
	CreateFunc            func(ctx context.Context, e *domain.Envelope) (*domain.Envelope, error)
	GetByKeyFunc          func(ctx context.Context, key domain.EnvelopeKey) (*domain.Envelope, error)
	ListByCompanyFunc     func(ctx context.Context, companyID string, limit int, offset int) ([]domain.Envelope, error)
	CountByCompanyFunc    func(ctx context.Context, companyID string) (int, error)
	TransitionStatusFunc  func(ctx context.Context, key domain.EnvelopeKey, from []domain.EnvelopeStatus, to domain.EnvelopeStatus) (*domain.Envelope, error)
	UpdateAccessTokenFunc func(ctx context.Context, key domain.EnvelopeKey, hash string, at time.Time) (*domain.Envelope, error)

	calls struct {
		Create []struct {
			Ctx context.Context
			E   *domain.Envelope
		}
		GetByKey []struct {
			Ctx context.Context
			Key domain.EnvelopeKey
		}
		ListByCompany []struct {
			Ctx       context.Context
			CompanyID string
			Limit     int
			Offset    int
		}
		CountByCompany []struct {
			Ctx       context.Context
			CompanyID string
		}
		TransitionStatus []struct {
			Ctx  context.Context
			Key  domain.EnvelopeKey
			From []domain.EnvelopeStatus
			To   domain.EnvelopeStatus
		}
		UpdateAccessToken []struct {
			Ctx  context.Context
			Key  domain.EnvelopeKey
			Hash string
			At   time.Time
		}
	}
	lockCreate            sync.RWMutex
	lockGetByKey          sync.RWMutex
	lockListByCompany     sync.RWMutex
	lockCountByCompany    sync.RWMutex
	lockTransitionStatus  sync.RWMutex
	lockUpdateAccessToken sync.RWMutex
}

func (mock *envelopeRepoMock) Create(ctx context.Context, e *domain.Envelope) (*domain.Envelope, error) {
	if mock.CreateFunc == nil {
		panic("envelopeRepoMock.CreateFunc: method is nil but envelopeRepo.Create was just called")
	}
	callInfo := struct {
		Ctx context.Context
		E   *domain.Envelope
	}{Ctx: ctx, E: e}
	mock.lockCreate.Lock()
	mock.calls.Create = append(mock.calls.Create, callInfo)
	mock.lockCreate.Unlock()
	return mock.CreateFunc(ctx, e)
}

func (mock *envelopeRepoMock) CreateCalls() []struct {
	Ctx context.Context
	E   *domain.Envelope
} {
	mock.lockCreate.RLock()
	calls := mock.calls.Create
	mock.lockCreate.RUnlock()
	return calls
}

func (mock *envelopeRepoMock) GetByKey(ctx context.Context, key domain.EnvelopeKey) (*domain.Envelope, error) {
	if mock.GetByKeyFunc == nil {
		panic("envelopeRepoMock.GetByKeyFunc: method is nil but envelopeRepo.GetByKey was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Key domain.EnvelopeKey
	}{Ctx: ctx, Key: key}
	mock.lockGetByKey.Lock()
	mock.calls.GetByKey = append(mock.calls.GetByKey, callInfo)
	mock.lockGetByKey.Unlock()
	return mock.GetByKeyFunc(ctx, key)
}

func (mock *envelopeRepoMock) GetByKeyCalls() []struct {
	Ctx context.Context
	Key domain.EnvelopeKey
} {
	mock.lockGetByKey.RLock()
	calls := mock.calls.GetByKey
	mock.lockGetByKey.RUnlock()
	return calls
}

func (mock *envelopeRepoMock) ListByCompany(ctx context.Context, companyID string, limit int, offset int) ([]domain.Envelope, error) {
	if mock.ListByCompanyFunc == nil {
		panic("envelopeRepoMock.ListByCompanyFunc: method is nil but envelopeRepo.ListByCompany was just called")
	}
	callInfo := struct {
		Ctx       context.Context
		CompanyID string
		Limit     int
		Offset    int
	}{Ctx: ctx, CompanyID: companyID, Limit: limit, Offset: offset}
	mock.lockListByCompany.Lock()
	mock.calls.ListByCompany = append(mock.calls.ListByCompany, callInfo)
	mock.lockListByCompany.Unlock()
	return mock.ListByCompanyFunc(ctx, companyID, limit, offset)
}

func (mock *envelopeRepoMock) ListByCompanyCalls() []struct {
	Ctx       context.Context
	CompanyID string
	Limit     int
	Offset    int
} {
	mock.lockListByCompany.RLock()
	calls := mock.calls.ListByCompany
	mock.lockListByCompany.RUnlock()
	return calls
}

func (mock *envelopeRepoMock) CountByCompany(ctx context.Context, companyID string) (int, error) {
	if mock.CountByCompanyFunc == nil {
		panic("envelopeRepoMock.CountByCompanyFunc: method is nil but envelopeRepo.CountByCompany was just called")
	}
	callInfo := struct {
		Ctx       context.Context
		CompanyID string
	}{Ctx: ctx, CompanyID: companyID}
	mock.lockCountByCompany.Lock()
	mock.calls.CountByCompany = append(mock.calls.CountByCompany, callInfo)
	mock.lockCountByCompany.Unlock()
	return mock.CountByCompanyFunc(ctx, companyID)
}

func (mock *envelopeRepoMock) CountByCompanyCalls() []struct {
	Ctx       context.Context
	CompanyID string
} {
	mock.lockCountByCompany.RLock()
	calls := mock.calls.CountByCompany
	mock.lockCountByCompany.RUnlock()
	return calls
}

func (mock *envelopeRepoMock) TransitionStatus(ctx context.Context, key domain.EnvelopeKey, from []domain.EnvelopeStatus, to domain.EnvelopeStatus) (*domain.Envelope, error) {
	if mock.TransitionStatusFunc == nil {
		panic("envelopeRepoMock.TransitionStatusFunc: method is nil but envelopeRepo.TransitionStatus was just called")
	}
	callInfo := struct {
		Ctx  context.Context
		Key  domain.EnvelopeKey
		From []domain.EnvelopeStatus
		To   domain.EnvelopeStatus
	}{Ctx: ctx, Key: key, From: from, To: to}
	mock.lockTransitionStatus.Lock()
	mock.calls.TransitionStatus = append(mock.calls.TransitionStatus, callInfo)
	mock.lockTransitionStatus.Unlock()
	return mock.TransitionStatusFunc(ctx, key, from, to)
}

func (mock *envelopeRepoMock) TransitionStatusCalls() []struct {
	Ctx  context.Context
	Key  domain.EnvelopeKey
	From []domain.EnvelopeStatus
	To   domain.EnvelopeStatus
} {
	mock.lockTransitionStatus.RLock()
	calls := mock.calls.TransitionStatus
	mock.lockTransitionStatus.RUnlock()
	return calls
}

func (mock *envelopeRepoMock) UpdateAccessToken(ctx context.Context, key domain.EnvelopeKey, hash string, at time.Time) (*domain.Envelope, error) {
	if mock.UpdateAccessTokenFunc == nil {
		panic("envelopeRepoMock.UpdateAccessTokenFunc: method is nil but envelopeRepo.UpdateAccessToken was just called")
	}
	callInfo := struct {
		Ctx  context.Context
		Key  domain.EnvelopeKey
		Hash string
		At   time.Time
	}{Ctx: ctx, Key: key, Hash: hash, At: at}
	mock.lockUpdateAccessToken.Lock()
	mock.calls.UpdateAccessToken = append(mock.calls.UpdateAccessToken, callInfo)
	mock.lockUpdateAccessToken.Unlock()
	return mock.UpdateAccessTokenFunc(ctx, key, hash, at)
}

func (mock *envelopeRepoMock) UpdateAccessTokenCalls() []struct {
	Ctx  context.Context
	Key  domain.EnvelopeKey
	Hash string
	At   time.Time
} {
	mock.lockUpdateAccessToken.RLock()
	calls := mock.calls.UpdateAccessToken
	mock.lockUpdateAccessToken.RUnlock()
	return calls
}

var _ auditRepo = &auditRepoMock{}

type auditRepoMock struct {
	LogEventFunc         func(ctx context.Context, ev domain.EnvelopeEvent) error
	ListEventsFunc       func(ctx context.Context, key domain.EnvelopeKey) ([]domain.EnvelopeEvent, error)
	GetSigningRecordFunc func(ctx context.Context, key domain.EnvelopeKey) (domain.SigningAudit, error)

	calls struct {
		LogEvent []struct {
			Ctx context.Context
			Ev  domain.EnvelopeEvent
		}
		ListEvents []struct {
			Ctx context.Context
			Key domain.EnvelopeKey
		}
		GetSigningRecord []struct {
			Ctx context.Context
			Key domain.EnvelopeKey
		}
	}
	lockLogEvent         sync.RWMutex
	lockListEvents       sync.RWMutex
	lockGetSigningRecord sync.RWMutex
}

func (mock *auditRepoMock) LogEvent(ctx context.Context, ev domain.EnvelopeEvent) error {
	if mock.LogEventFunc == nil {
		panic("auditRepoMock.LogEventFunc: method is nil but auditRepo.LogEvent was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Ev  domain.EnvelopeEvent
	}{Ctx: ctx, Ev: ev}
	mock.lockLogEvent.Lock()
	mock.calls.LogEvent = append(mock.calls.LogEvent, callInfo)
	mock.lockLogEvent.Unlock()
	return mock.LogEventFunc(ctx, ev)
}

func (mock *auditRepoMock) LogEventCalls() []struct {
	Ctx context.Context
	Ev  domain.EnvelopeEvent
} {
	mock.lockLogEvent.RLock()
	calls := mock.calls.LogEvent
	mock.lockLogEvent.RUnlock()
	return calls
}

func (mock *auditRepoMock) ListEvents(ctx context.Context, key domain.EnvelopeKey) ([]domain.EnvelopeEvent, error) {
	if mock.ListEventsFunc == nil {
		panic("auditRepoMock.ListEventsFunc: method is nil but auditRepo.ListEvents was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Key domain.EnvelopeKey
	}{Ctx: ctx, Key: key}
	mock.lockListEvents.Lock()
	mock.calls.ListEvents = append(mock.calls.ListEvents, callInfo)
	mock.lockListEvents.Unlock()
	return mock.ListEventsFunc(ctx, key)
}

func (mock *auditRepoMock) ListEventsCalls() []struct {
	Ctx context.Context
	Key domain.EnvelopeKey
} {
	mock.lockListEvents.RLock()
	calls := mock.calls.ListEvents
	mock.lockListEvents.RUnlock()
	return calls
}

func (mock *auditRepoMock) GetSigningRecord(ctx context.Context, key domain.EnvelopeKey) (domain.SigningAudit, error) {
	if mock.GetSigningRecordFunc == nil {
		panic("auditRepoMock.GetSigningRecordFunc: method is nil but auditRepo.GetSigningRecord was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Key domain.EnvelopeKey
	}{Ctx: ctx, Key: key}
	mock.lockGetSigningRecord.Lock()
	mock.calls.GetSigningRecord = append(mock.calls.GetSigningRecord, callInfo)
	mock.lockGetSigningRecord.Unlock()
	return mock.GetSigningRecordFunc(ctx, key)
}

func (mock *auditRepoMock) GetSigningRecordCalls() []struct {
	Ctx context.Context
	Key domain.EnvelopeKey
} {
	mock.lockGetSigningRecord.RLock()
	calls := mock.calls.GetSigningRecord
	mock.lockGetSigningRecord.RUnlock()
	return calls
}

var _ blobStore = &blobStoreMock{}

type blobStoreMock struct {
	PutFunc func(ctx context.Context, key string, data []byte, contentType string) error
	URLFunc func(ctx context.Context, key string) (string, error)

	calls struct {
		Put []struct {
			Ctx         context.Context
			Key         string
			Data        []byte
			ContentType string
		}
		URL []struct {
			Ctx context.Context
			Key string
		}
	}
	lockPut sync.RWMutex
	lockURL sync.RWMutex
}

func (mock *blobStoreMock) Put(ctx context.Context, key string, data []byte, contentType string) error {
	if mock.PutFunc == nil {
		panic("blobStoreMock.PutFunc: method is nil but blobStore.Put was just called")
	}
	callInfo := struct {
		Ctx         context.Context
		Key         string
		Data        []byte
		ContentType string
	}{Ctx: ctx, Key: key, Data: data, ContentType: contentType}
	mock.lockPut.Lock()
	mock.calls.Put = append(mock.calls.Put, callInfo)
	mock.lockPut.Unlock()
	return mock.PutFunc(ctx, key, data, contentType)
}

func (mock *blobStoreMock) PutCalls() []struct {
	Ctx         context.Context
	Key         string
	Data        []byte
	ContentType string
} {
	mock.lockPut.RLock()
	calls := mock.calls.Put
	mock.lockPut.RUnlock()
	return calls
}

func (mock *blobStoreMock) URL(ctx context.Context, key string) (string, error) {
	if mock.URLFunc == nil {
		panic("blobStoreMock.URLFunc: method is nil but blobStore.URL was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Key string
	}{Ctx: ctx, Key: key}
	mock.lockURL.Lock()
	mock.calls.URL = append(mock.calls.URL, callInfo)
	mock.lockURL.Unlock()
	return mock.URLFunc(ctx, key)
}

func (mock *blobStoreMock) URLCalls() []struct {
	Ctx context.Context
	Key string
} {
	mock.lockURL.RLock()
	calls := mock.calls.URL
	mock.lockURL.RUnlock()
	return calls
}

var _ txManager = &txManagerMock{}

type txManagerMock struct {
	RunInTxFunc     func(ctx context.Context, fn func(ctx context.Context) error) error
	RunReadOnlyFunc func(ctx context.Context, fn func(ctx context.Context) error) error

	calls struct {
		RunInTx []struct {
			Ctx context.Context
			Fn  func(ctx context.Context) error
		}
		RunReadOnly []struct {
			Ctx context.Context
			Fn  func(ctx context.Context) error
		}
	}
	lockRunInTx     sync.RWMutex
	lockRunReadOnly sync.RWMutex
}

func (mock *txManagerMock) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if mock.RunInTxFunc == nil {
		panic("txManagerMock.RunInTxFunc: method is nil but txManager.RunInTx was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Fn  func(ctx context.Context) error
	}{Ctx: ctx, Fn: fn}
	mock.lockRunInTx.Lock()
	mock.calls.RunInTx = append(mock.calls.RunInTx, callInfo)
	mock.lockRunInTx.Unlock()
	return mock.RunInTxFunc(ctx, fn)
}

func (mock *txManagerMock) RunInTxCalls() []struct {
	Ctx context.Context
	Fn  func(ctx context.Context) error
} {
	mock.lockRunInTx.RLock()
	calls := mock.calls.RunInTx
	mock.lockRunInTx.RUnlock()
	return calls
}

func (mock *txManagerMock) RunReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	if mock.RunReadOnlyFunc == nil {
		panic("txManagerMock.RunReadOnlyFunc: method is nil but txManager.RunReadOnly was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Fn  func(ctx context.Context) error
	}{Ctx: ctx, Fn: fn}
	mock.lockRunReadOnly.Lock()
	mock.calls.RunReadOnly = append(mock.calls.RunReadOnly, callInfo)
	mock.lockRunReadOnly.Unlock()
	return mock.RunReadOnlyFunc(ctx, fn)
}

func (mock *txManagerMock) RunReadOnlyCalls() []struct {
	Ctx context.Context
	Fn  func(ctx context.Context) error
} {
	mock.lockRunReadOnly.RLock()
	calls := mock.calls.RunReadOnly
	mock.lockRunReadOnly.RUnlock()
	return calls
}
