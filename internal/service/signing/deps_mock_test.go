package signing

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/signroom-backend/internal/domain"
	"github.com/heartmarshall/signroom-backend/internal/seal"
)

var _ envelopeRepo = &envelopeRepoMock{}

type envelopeRepoMock struct {
	GetByKeyFunc     func(ctx context.Context, key domain.EnvelopeKey) (*domain.Envelope, error)
	ClaimSealFunc    func(ctx context.Context, key domain.EnvelopeKey, tokenHash string, claim uuid.UUID, now time.Time, leaseCutoff time.Time) (*domain.Envelope, error)
	ReleaseSealFunc  func(ctx context.Context, key domain.EnvelopeKey, claim uuid.UUID) error
	CompleteSealFunc func(ctx context.Context, key domain.EnvelopeKey, claim uuid.UUID, values domain.FieldValues, signedURL string, storagePath string, signedAt time.Time) (*domain.Envelope, error)

	calls struct {
		GetByKey []struct {
			Ctx context.Context
			Key domain.EnvelopeKey
		}
		ClaimSeal []struct {
			Ctx         context.Context
			Key         domain.EnvelopeKey
			TokenHash   string
			Claim       uuid.UUID
			Now         time.Time
			LeaseCutoff time.Time
		}
		ReleaseSeal []struct {
			Ctx   context.Context
			Key   domain.EnvelopeKey
			Claim uuid.UUID
		}
		CompleteSeal []struct {
			Ctx         context.Context
			Key         domain.EnvelopeKey
			Claim       uuid.UUID
			Values      domain.FieldValues
			SignedURL   string
			StoragePath string
			SignedAt    time.Time
		}
	}
	lockGetByKey     sync.RWMutex
	lockClaimSeal    sync.RWMutex
	lockReleaseSeal  sync.RWMutex
	lockCompleteSeal sync.RWMutex
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

func (mock *envelopeRepoMock) ClaimSeal(ctx context.Context, key domain.EnvelopeKey, tokenHash string, claim uuid.UUID, now time.Time, leaseCutoff time.Time) (*domain.Envelope, error) {
	if mock.ClaimSealFunc == nil {
		panic("envelopeRepoMock.ClaimSealFunc: method is nil but envelopeRepo.ClaimSeal was just called")
	}
	callInfo := struct {
		Ctx         context.Context
		Key         domain.EnvelopeKey
		TokenHash   string
		Claim       uuid.UUID
		Now         time.Time
		LeaseCutoff time.Time
	}{Ctx: ctx, Key: key, TokenHash: tokenHash, Claim: claim, Now: now, LeaseCutoff: leaseCutoff}
	mock.lockClaimSeal.Lock()
	mock.calls.ClaimSeal = append(mock.calls.ClaimSeal, callInfo)
	mock.lockClaimSeal.Unlock()
	return mock.ClaimSealFunc(ctx, key, tokenHash, claim, now, leaseCutoff)
}

func (mock *envelopeRepoMock) ClaimSealCalls() []struct {
	Ctx         context.Context
	Key         domain.EnvelopeKey
	TokenHash   string
	Claim       uuid.UUID
	Now         time.Time
	LeaseCutoff time.Time
} {
	mock.lockClaimSeal.RLock()
	calls := mock.calls.ClaimSeal
	mock.lockClaimSeal.RUnlock()
	return calls
}

func (mock *envelopeRepoMock) ReleaseSeal(ctx context.Context, key domain.EnvelopeKey, claim uuid.UUID) error {
	if mock.ReleaseSealFunc == nil {
		panic("envelopeRepoMock.ReleaseSealFunc: method is nil but envelopeRepo.ReleaseSeal was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Key   domain.EnvelopeKey
		Claim uuid.UUID
	}{Ctx: ctx, Key: key, Claim: claim}
	mock.lockReleaseSeal.Lock()
	mock.calls.ReleaseSeal = append(mock.calls.ReleaseSeal, callInfo)
	mock.lockReleaseSeal.Unlock()
	return mock.ReleaseSealFunc(ctx, key, claim)
}

func (mock *envelopeRepoMock) ReleaseSealCalls() []struct {
	Ctx   context.Context
	Key   domain.EnvelopeKey
	Claim uuid.UUID
} {
	mock.lockReleaseSeal.RLock()
	calls := mock.calls.ReleaseSeal
	mock.lockReleaseSeal.RUnlock()
	return calls
}

func (mock *envelopeRepoMock) CompleteSeal(ctx context.Context, key domain.EnvelopeKey, claim uuid.UUID, values domain.FieldValues, signedURL string, storagePath string, signedAt time.Time) (*domain.Envelope, error) {
	if mock.CompleteSealFunc == nil {
		panic("envelopeRepoMock.CompleteSealFunc: method is nil but envelopeRepo.CompleteSeal was just called")
	}
	callInfo := struct {
		Ctx         context.Context
		Key         domain.EnvelopeKey
		Claim       uuid.UUID
		Values      domain.FieldValues
		SignedURL   string
		StoragePath string
		SignedAt    time.Time
	}{Ctx: ctx, Key: key, Claim: claim, Values: values, SignedURL: signedURL, StoragePath: storagePath, SignedAt: signedAt}
	mock.lockCompleteSeal.Lock()
	mock.calls.CompleteSeal = append(mock.calls.CompleteSeal, callInfo)
	mock.lockCompleteSeal.Unlock()
	return mock.CompleteSealFunc(ctx, key, claim, values, signedURL, storagePath, signedAt)
}

func (mock *envelopeRepoMock) CompleteSealCalls() []struct {
	Ctx         context.Context
	Key         domain.EnvelopeKey
	Claim       uuid.UUID
	Values      domain.FieldValues
	SignedURL   string
	StoragePath string
	SignedAt    time.Time
} {
	mock.lockCompleteSeal.RLock()
	calls := mock.calls.CompleteSeal
	mock.lockCompleteSeal.RUnlock()
	return calls
}

var _ auditRepo = &auditRepoMock{}

type auditRepoMock struct {
	CreateSigningRecordFunc func(ctx context.Context, rec domain.SigningAudit) (domain.SigningAudit, error)
	GetSigningRecordFunc    func(ctx context.Context, key domain.EnvelopeKey) (domain.SigningAudit, error)
	LogEventFunc            func(ctx context.Context, ev domain.EnvelopeEvent) error

	calls struct {
		CreateSigningRecord []struct {
			Ctx context.Context
			Rec domain.SigningAudit
		}
		GetSigningRecord []struct {
			Ctx context.Context
			Key domain.EnvelopeKey
		}
		LogEvent []struct {
			Ctx context.Context
			Ev  domain.EnvelopeEvent
		}
	}
	lockCreateSigningRecord sync.RWMutex
	lockGetSigningRecord    sync.RWMutex
	lockLogEvent            sync.RWMutex
}

func (mock *auditRepoMock) CreateSigningRecord(ctx context.Context, rec domain.SigningAudit) (domain.SigningAudit, error) {
	if mock.CreateSigningRecordFunc == nil {
		panic("auditRepoMock.CreateSigningRecordFunc: method is nil but auditRepo.CreateSigningRecord was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Rec domain.SigningAudit
	}{Ctx: ctx, Rec: rec}
	mock.lockCreateSigningRecord.Lock()
	mock.calls.CreateSigningRecord = append(mock.calls.CreateSigningRecord, callInfo)
	mock.lockCreateSigningRecord.Unlock()
	return mock.CreateSigningRecordFunc(ctx, rec)
}

func (mock *auditRepoMock) CreateSigningRecordCalls() []struct {
	Ctx context.Context
	Rec domain.SigningAudit
} {
	mock.lockCreateSigningRecord.RLock()
	calls := mock.calls.CreateSigningRecord
	mock.lockCreateSigningRecord.RUnlock()
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

var _ blobStore = &blobStoreMock{}

type blobStoreMock struct {
	GetFunc    func(ctx context.Context, key string) ([]byte, error)
	PutFunc    func(ctx context.Context, key string, data []byte, contentType string) error
	URLFunc    func(ctx context.Context, key string) (string, error)
	DeleteFunc func(ctx context.Context, key string) error

	calls struct {
		Get []struct {
			Ctx context.Context
			Key string
		}
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
		Delete []struct {
			Ctx context.Context
			Key string
		}
	}
	lockGet    sync.RWMutex
	lockPut    sync.RWMutex
	lockURL    sync.RWMutex
	lockDelete sync.RWMutex
}

func (mock *blobStoreMock) Get(ctx context.Context, key string) ([]byte, error) {
	if mock.GetFunc == nil {
		panic("blobStoreMock.GetFunc: method is nil but blobStore.Get was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Key string
	}{Ctx: ctx, Key: key}
	mock.lockGet.Lock()
	mock.calls.Get = append(mock.calls.Get, callInfo)
	mock.lockGet.Unlock()
	return mock.GetFunc(ctx, key)
}

func (mock *blobStoreMock) GetCalls() []struct {
	Ctx context.Context
	Key string
} {
	mock.lockGet.RLock()
	calls := mock.calls.Get
	mock.lockGet.RUnlock()
	return calls
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

func (mock *blobStoreMock) Delete(ctx context.Context, key string) error {
	if mock.DeleteFunc == nil {
		panic("blobStoreMock.DeleteFunc: method is nil but blobStore.Delete was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Key string
	}{Ctx: ctx, Key: key}
	mock.lockDelete.Lock()
	mock.calls.Delete = append(mock.calls.Delete, callInfo)
	mock.lockDelete.Unlock()
	return mock.DeleteFunc(ctx, key)
}

func (mock *blobStoreMock) DeleteCalls() []struct {
	Ctx context.Context
	Key string
} {
	mock.lockDelete.RLock()
	calls := mock.calls.Delete
	mock.lockDelete.RUnlock()
	return calls
}

var _ templateFetcher = &templateFetcherMock{}

type templateFetcherMock struct {
	FetchFunc func(ctx context.Context, url string) ([]byte, error)

	calls struct {
		Fetch []struct {
			Ctx context.Context
			Url string
		}
	}
	lockFetch sync.RWMutex
}

func (mock *templateFetcherMock) Fetch(ctx context.Context, url string) ([]byte, error) {
	if mock.FetchFunc == nil {
		panic("templateFetcherMock.FetchFunc: method is nil but templateFetcher.Fetch was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Url string
	}{Ctx: ctx, Url: url}
	mock.lockFetch.Lock()
	mock.calls.Fetch = append(mock.calls.Fetch, callInfo)
	mock.lockFetch.Unlock()
	return mock.FetchFunc(ctx, url)
}

func (mock *templateFetcherMock) FetchCalls() []struct {
	Ctx context.Context
	Url string
} {
	mock.lockFetch.RLock()
	calls := mock.calls.Fetch
	mock.lockFetch.RUnlock()
	return calls
}

var _ sealer = &sealerMock{}

type sealerMock struct {
	SealFunc func(ctx context.Context, in seal.Input) (seal.Output, error)

	calls struct {
		Seal []struct {
			Ctx context.Context
			In  seal.Input
		}
	}
	lockSeal sync.RWMutex
}

func (mock *sealerMock) Seal(ctx context.Context, in seal.Input) (seal.Output, error) {
	if mock.SealFunc == nil {
		panic("sealerMock.SealFunc: method is nil but sealer.Seal was just called")
	}
	callInfo := struct {
		Ctx context.Context
		In  seal.Input
	}{Ctx: ctx, In: in}
	mock.lockSeal.Lock()
	mock.calls.Seal = append(mock.calls.Seal, callInfo)
	mock.lockSeal.Unlock()
	return mock.SealFunc(ctx, in)
}

func (mock *sealerMock) SealCalls() []struct {
	Ctx context.Context
	In  seal.Input
} {
	mock.lockSeal.RLock()
	calls := mock.calls.Seal
	mock.lockSeal.RUnlock()
	return calls
}

var _ txManager = &txManagerMock{}

type txManagerMock struct {
	RunInTxFunc func(ctx context.Context, fn func(ctx context.Context) error) error

	calls struct {
		RunInTx []struct {
			Ctx context.Context
			Fn  func(ctx context.Context) error
		}
	}
	lockRunInTx sync.RWMutex
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
