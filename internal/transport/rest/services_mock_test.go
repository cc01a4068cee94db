package rest

import (
	"context"
	"sync"

	"github.com/heartmarshall/signroom-backend/internal/domain"
	"github.com/heartmarshall/signroom-backend/internal/service/envelope"
	"github.com/heartmarshall/signroom-backend/internal/service/signing"
)

var _ signingService = &signingServiceMock{}

type signingServiceMock struct {
	GetPublicEnvelopeFunc    func(ctx context.Context, input signing.PublicEnvelopeInput) (*domain.EnvelopeView, error)
	SubmitPublicEnvelopeFunc func(ctx context.Context, input signing.SubmitInput) (*signing.SubmitResult, error)
	VerifySealFunc           func(ctx context.Context, key domain.EnvelopeKey) (*signing.Verification, error)

	calls struct {
		GetPublicEnvelope []struct {
			Ctx   context.Context
			Input signing.PublicEnvelopeInput
		}
		SubmitPublicEnvelope []struct {
			Ctx   context.Context
			Input signing.SubmitInput
		}
		VerifySeal []struct {
			Ctx context.Context
			Key domain.EnvelopeKey
		}
	}
	lockGetPublicEnvelope    sync.RWMutex
	lockSubmitPublicEnvelope sync.RWMutex
	lockVerifySeal           sync.RWMutex
}

func (mock *signingServiceMock) GetPublicEnvelope(ctx context.Context, input signing.PublicEnvelopeInput) (*domain.EnvelopeView, error) {
	if mock.GetPublicEnvelopeFunc == nil {
		panic("signingServiceMock.GetPublicEnvelopeFunc: method is nil but signingService.GetPublicEnvelope was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Input signing.PublicEnvelopeInput
	}{Ctx: ctx, Input: input}
	mock.lockGetPublicEnvelope.Lock()
	mock.calls.GetPublicEnvelope = append(mock.calls.GetPublicEnvelope, callInfo)
	mock.lockGetPublicEnvelope.Unlock()
	return mock.GetPublicEnvelopeFunc(ctx, input)
}

func (mock *signingServiceMock) GetPublicEnvelopeCalls() []struct {
	Ctx   context.Context
	Input signing.PublicEnvelopeInput
} {
	mock.lockGetPublicEnvelope.RLock()
	calls := mock.calls.GetPublicEnvelope
	mock.lockGetPublicEnvelope.RUnlock()
	return calls
}

func (mock *signingServiceMock) SubmitPublicEnvelope(ctx context.Context, input signing.SubmitInput) (*signing.SubmitResult, error) {
	if mock.SubmitPublicEnvelopeFunc == nil {
		panic("signingServiceMock.SubmitPublicEnvelopeFunc: method is nil but signingService.SubmitPublicEnvelope was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Input signing.SubmitInput
	}{Ctx: ctx, Input: input}
	mock.lockSubmitPublicEnvelope.Lock()
	mock.calls.SubmitPublicEnvelope = append(mock.calls.SubmitPublicEnvelope, callInfo)
	mock.lockSubmitPublicEnvelope.Unlock()
	return mock.SubmitPublicEnvelopeFunc(ctx, input)
}

func (mock *signingServiceMock) SubmitPublicEnvelopeCalls() []struct {
	Ctx   context.Context
	Input signing.SubmitInput
} {
	mock.lockSubmitPublicEnvelope.RLock()
	calls := mock.calls.SubmitPublicEnvelope
	mock.lockSubmitPublicEnvelope.RUnlock()
	return calls
}

func (mock *signingServiceMock) VerifySeal(ctx context.Context, key domain.EnvelopeKey) (*signing.Verification, error) {
	if mock.VerifySealFunc == nil {
		panic("signingServiceMock.VerifySealFunc: method is nil but signingService.VerifySeal was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Key domain.EnvelopeKey
	}{Ctx: ctx, Key: key}
	mock.lockVerifySeal.Lock()
	mock.calls.VerifySeal = append(mock.calls.VerifySeal, callInfo)
	mock.lockVerifySeal.Unlock()
	return mock.VerifySealFunc(ctx, key)
}

func (mock *signingServiceMock) VerifySealCalls() []struct {
	Ctx context.Context
	Key domain.EnvelopeKey
} {
	mock.lockVerifySeal.RLock()
	calls := mock.calls.VerifySeal
	mock.lockVerifySeal.RUnlock()
	return calls
}

var _ envelopeService = &envelopeServiceMock{}

type envelopeServiceMock struct {
	CreateEnvelopeFunc     func(ctx context.Context, input envelope.CreateEnvelopeInput) (*envelope.CreatedEnvelope, error)
	DispatchFunc           func(ctx context.Context, requestID string) (*domain.Envelope, error)
	RotateAccessTokenFunc  func(ctx context.Context, requestID string) (*envelope.CreatedEnvelope, error)
	ListEnvelopesFunc      func(ctx context.Context, input envelope.ListInput) ([]domain.Envelope, int, error)
	GetEnvelopeFunc        func(ctx context.Context, requestID string) (*domain.Envelope, error)
	GetHistoryFunc         func(ctx context.Context, requestID string) (*envelope.History, error)
	ResolveDownloadURLFunc func(ctx context.Context, requestID string) (string, error)
	UploadTemplateFunc     func(ctx context.Context, data []byte) (*envelope.UploadedTemplate, error)

	calls struct {
		CreateEnvelope []struct {
			Ctx   context.Context
			Input envelope.CreateEnvelopeInput
		}
		Dispatch []struct {
			Ctx       context.Context
			RequestID string
		}
		RotateAccessToken []struct {
			Ctx       context.Context
			RequestID string
		}
		ListEnvelopes []struct {
			Ctx   context.Context
			Input envelope.ListInput
		}
		GetEnvelope []struct {
			Ctx       context.Context
			RequestID string
		}
		GetHistory []struct {
			Ctx       context.Context
			RequestID string
		}
		ResolveDownloadURL []struct {
			Ctx       context.Context
			RequestID string
		}
		UploadTemplate []struct {
			Ctx  context.Context
			Data []byte
		}
	}
	lockCreateEnvelope     sync.RWMutex
	lockDispatch           sync.RWMutex
	lockRotateAccessToken  sync.RWMutex
	lockListEnvelopes      sync.RWMutex
	lockGetEnvelope        sync.RWMutex
	lockGetHistory         sync.RWMutex
	lockResolveDownloadURL sync.RWMutex
	lockUploadTemplate     sync.RWMutex
}

func (mock *envelopeServiceMock) CreateEnvelope(ctx context.Context, input envelope.CreateEnvelopeInput) (*envelope.CreatedEnvelope, error) {
	if mock.CreateEnvelopeFunc == nil {
		panic("envelopeServiceMock.CreateEnvelopeFunc: method is nil but envelopeService.CreateEnvelope was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Input envelope.CreateEnvelopeInput
	}{Ctx: ctx, Input: input}
	mock.lockCreateEnvelope.Lock()
	mock.calls.CreateEnvelope = append(mock.calls.CreateEnvelope, callInfo)
	mock.lockCreateEnvelope.Unlock()
	return mock.CreateEnvelopeFunc(ctx, input)
}

func (mock *envelopeServiceMock) CreateEnvelopeCalls() []struct {
	Ctx   context.Context
	Input envelope.CreateEnvelopeInput
} {
	mock.lockCreateEnvelope.RLock()
	calls := mock.calls.CreateEnvelope
	mock.lockCreateEnvelope.RUnlock()
	return calls
}

func (mock *envelopeServiceMock) Dispatch(ctx context.Context, requestID string) (*domain.Envelope, error) {
	if mock.DispatchFunc == nil {
		panic("envelopeServiceMock.DispatchFunc: method is nil but envelopeService.Dispatch was just called")
	}
	callInfo := struct {
		Ctx       context.Context
		RequestID string
	}{Ctx: ctx, RequestID: requestID}
	mock.lockDispatch.Lock()
	mock.calls.Dispatch = append(mock.calls.Dispatch, callInfo)
	mock.lockDispatch.Unlock()
	return mock.DispatchFunc(ctx, requestID)
}

func (mock *envelopeServiceMock) DispatchCalls() []struct {
	Ctx       context.Context
	RequestID string
} {
	mock.lockDispatch.RLock()
	calls := mock.calls.Dispatch
	mock.lockDispatch.RUnlock()
	return calls
}

func (mock *envelopeServiceMock) RotateAccessToken(ctx context.Context, requestID string) (*envelope.CreatedEnvelope, error) {
	if mock.RotateAccessTokenFunc == nil {
		panic("envelopeServiceMock.RotateAccessTokenFunc: method is nil but envelopeService.RotateAccessToken was just called")
	}
	callInfo := struct {
		Ctx       context.Context
		RequestID string
	}{Ctx: ctx, RequestID: requestID}
	mock.lockRotateAccessToken.Lock()
	mock.calls.RotateAccessToken = append(mock.calls.RotateAccessToken, callInfo)
	mock.lockRotateAccessToken.Unlock()
	return mock.RotateAccessTokenFunc(ctx, requestID)
}

func (mock *envelopeServiceMock) RotateAccessTokenCalls() []struct {
	Ctx       context.Context
	RequestID string
} {
	mock.lockRotateAccessToken.RLock()
	calls := mock.calls.RotateAccessToken
	mock.lockRotateAccessToken.RUnlock()
	return calls
}

func (mock *envelopeServiceMock) ListEnvelopes(ctx context.Context, input envelope.ListInput) ([]domain.Envelope, int, error) {
	if mock.ListEnvelopesFunc == nil {
		panic("envelopeServiceMock.ListEnvelopesFunc: method is nil but envelopeService.ListEnvelopes was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Input envelope.ListInput
	}{Ctx: ctx, Input: input}
	mock.lockListEnvelopes.Lock()
	mock.calls.ListEnvelopes = append(mock.calls.ListEnvelopes, callInfo)
	mock.lockListEnvelopes.Unlock()
	return mock.ListEnvelopesFunc(ctx, input)
}

func (mock *envelopeServiceMock) ListEnvelopesCalls() []struct {
	Ctx   context.Context
	Input envelope.ListInput
} {
	mock.lockListEnvelopes.RLock()
	calls := mock.calls.ListEnvelopes
	mock.lockListEnvelopes.RUnlock()
	return calls
}

func (mock *envelopeServiceMock) GetEnvelope(ctx context.Context, requestID string) (*domain.Envelope, error) {
	if mock.GetEnvelopeFunc == nil {
		panic("envelopeServiceMock.GetEnvelopeFunc: method is nil but envelopeService.GetEnvelope was just called")
	}
	callInfo := struct {
		Ctx       context.Context
		RequestID string
	}{Ctx: ctx, RequestID: requestID}
	mock.lockGetEnvelope.Lock()
	mock.calls.GetEnvelope = append(mock.calls.GetEnvelope, callInfo)
	mock.lockGetEnvelope.Unlock()
	return mock.GetEnvelopeFunc(ctx, requestID)
}

func (mock *envelopeServiceMock) GetEnvelopeCalls() []struct {
	Ctx       context.Context
	RequestID string
} {
	mock.lockGetEnvelope.RLock()
	calls := mock.calls.GetEnvelope
	mock.lockGetEnvelope.RUnlock()
	return calls
}

func (mock *envelopeServiceMock) GetHistory(ctx context.Context, requestID string) (*envelope.History, error) {
	if mock.GetHistoryFunc == nil {
		panic("envelopeServiceMock.GetHistoryFunc: method is nil but envelopeService.GetHistory was just called")
	}
	callInfo := struct {
		Ctx       context.Context
		RequestID string
	}{Ctx: ctx, RequestID: requestID}
	mock.lockGetHistory.Lock()
	mock.calls.GetHistory = append(mock.calls.GetHistory, callInfo)
	mock.lockGetHistory.Unlock()
	return mock.GetHistoryFunc(ctx, requestID)
}

func (mock *envelopeServiceMock) GetHistoryCalls() []struct {
	Ctx       context.Context
	RequestID string
} {
	mock.lockGetHistory.RLock()
	calls := mock.calls.GetHistory
	mock.lockGetHistory.RUnlock()
	return calls
}

func (mock *envelopeServiceMock) ResolveDownloadURL(ctx context.Context, requestID string) (string, error) {
	if mock.ResolveDownloadURLFunc == nil {
		panic("envelopeServiceMock.ResolveDownloadURLFunc: method is nil but envelopeService.ResolveDownloadURL was just called")
	}
	callInfo := struct {
		Ctx       context.Context
		RequestID string
	}{Ctx: ctx, RequestID: requestID}
	mock.lockResolveDownloadURL.Lock()
	mock.calls.ResolveDownloadURL = append(mock.calls.ResolveDownloadURL, callInfo)
	mock.lockResolveDownloadURL.Unlock()
	return mock.ResolveDownloadURLFunc(ctx, requestID)
}

func (mock *envelopeServiceMock) ResolveDownloadURLCalls() []struct {
	Ctx       context.Context
	RequestID string
} {
	mock.lockResolveDownloadURL.RLock()
	calls := mock.calls.ResolveDownloadURL
	mock.lockResolveDownloadURL.RUnlock()
	return calls
}

func (mock *envelopeServiceMock) UploadTemplate(ctx context.Context, data []byte) (*envelope.UploadedTemplate, error) {
	if mock.UploadTemplateFunc == nil {
		panic("envelopeServiceMock.UploadTemplateFunc: method is nil but envelopeService.UploadTemplate was just called")
	}
	callInfo := struct {
		Ctx  context.Context
		Data []byte
	}{Ctx: ctx, Data: data}
	mock.lockUploadTemplate.Lock()
	mock.calls.UploadTemplate = append(mock.calls.UploadTemplate, callInfo)
	mock.lockUploadTemplate.Unlock()
	return mock.UploadTemplateFunc(ctx, data)
}

func (mock *envelopeServiceMock) UploadTemplateCalls() []struct {
	Ctx  context.Context
	Data []byte
} {
	mock.lockUploadTemplate.RLock()
	calls := mock.calls.UploadTemplate
	mock.lockUploadTemplate.RUnlock()
	return calls
}
