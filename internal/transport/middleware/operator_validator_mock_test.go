package middleware

import (
	"sync"

	"github.com/heartmarshall/signroom-backend/internal/auth"
)

var _ operatorValidator = &operatorValidatorMock{}

type operatorValidatorMock struct {
	ValidateOperatorTokenFunc func(token string) (auth.Operator, error)

	calls struct {
		ValidateOperatorToken []struct {
			Token string
		}
	}
	lockValidateOperatorToken sync.RWMutex
}

func (mock *operatorValidatorMock) ValidateOperatorToken(token string) (auth.Operator, error) {
	if mock.ValidateOperatorTokenFunc == nil {
		panic("operatorValidatorMock.ValidateOperatorTokenFunc: method is nil but operatorValidator.ValidateOperatorToken was just called")
	}
	callInfo := struct {
		Token string
	}{Token: token}
	mock.lockValidateOperatorToken.Lock()
	mock.calls.ValidateOperatorToken = append(mock.calls.ValidateOperatorToken, callInfo)
	mock.lockValidateOperatorToken.Unlock()
	return mock.ValidateOperatorTokenFunc(token)
}

func (mock *operatorValidatorMock) ValidateOperatorTokenCalls() []struct {
	Token string
} {
	mock.lockValidateOperatorToken.RLock()
	calls := mock.calls.ValidateOperatorToken
	mock.lockValidateOperatorToken.RUnlock()
	return calls
}
