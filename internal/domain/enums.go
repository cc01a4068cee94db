package domain

// EnvelopeStatus is the lifecycle state of an envelope.
type EnvelopeStatus string

const (
	EnvelopeStatusDraft       EnvelopeStatus = "draft"
	EnvelopeStatusPendingSeal EnvelopeStatus = "pending_seal"
	EnvelopeStatusSent        EnvelopeStatus = "sent"
	EnvelopeStatusSigned      EnvelopeStatus = "signed"
)

func (s EnvelopeStatus) String() string { return string(s) }

func (s EnvelopeStatus) IsValid() bool {
	switch s {
	case EnvelopeStatusDraft, EnvelopeStatusPendingSeal, EnvelopeStatusSent, EnvelopeStatusSigned:
		return true
	}
	return false
}

// envelopeTransitions lists the allowed edges of the envelope state machine.
// pending_seal -> sent is the release edge taken when sealing fails.
var envelopeTransitions = map[EnvelopeStatus][]EnvelopeStatus{
	EnvelopeStatusDraft:       {EnvelopeStatusSent},
	EnvelopeStatusSent:        {EnvelopeStatusPendingSeal, EnvelopeStatusSigned},
	EnvelopeStatusPendingSeal: {EnvelopeStatusSigned, EnvelopeStatusSent},
}

// CanTransitionTo reports whether the state machine allows s -> next.
func (s EnvelopeStatus) CanTransitionTo(next EnvelopeStatus) bool {
	for _, to := range envelopeTransitions[s] {
		if to == next {
			return true
		}
	}
	return false
}

// FieldKind identifies the kind of an interactive field.
type FieldKind string

const (
	FieldKindText      FieldKind = "text"
	FieldKindDate      FieldKind = "date"
	FieldKindCheckbox  FieldKind = "checkbox"
	FieldKindSignature FieldKind = "signature"
)

// FieldKinds returns every supported field kind.
func FieldKinds() []FieldKind {
	return []FieldKind{FieldKindText, FieldKindDate, FieldKindCheckbox, FieldKindSignature}
}

func (k FieldKind) String() string { return string(k) }

func (k FieldKind) IsValid() bool {
	switch k {
	case FieldKindText, FieldKindDate, FieldKindCheckbox, FieldKindSignature:
		return true
	}
	return false
}

// SizeUnit tells how FieldSpec.Width and Height are expressed.
// The zero value means "unspecified" and falls back to the legacy inference.
type SizeUnit string

const (
	SizeUnitUnspecified SizeUnit = ""
	SizeUnitPercent     SizeUnit = "percent"
	SizeUnitPixels      SizeUnit = "px"
)

func (u SizeUnit) String() string { return string(u) }

func (u SizeUnit) IsValid() bool {
	switch u {
	case SizeUnitUnspecified, SizeUnitPercent, SizeUnitPixels:
		return true
	}
	return false
}

// EnvelopeEventType identifies an entry in an envelope's history.
type EnvelopeEventType string

const (
	EnvelopeEventCreated      EnvelopeEventType = "created"
	EnvelopeEventDispatched   EnvelopeEventType = "dispatched"
	EnvelopeEventTokenRotated EnvelopeEventType = "token_rotated"
	EnvelopeEventViewed       EnvelopeEventType = "viewed"
	EnvelopeEventSealStarted  EnvelopeEventType = "seal_started"
	EnvelopeEventSealFailed   EnvelopeEventType = "seal_failed"
	EnvelopeEventSealReleased EnvelopeEventType = "seal_released"
	EnvelopeEventSigned       EnvelopeEventType = "signed"
)

func (e EnvelopeEventType) String() string { return string(e) }

func (e EnvelopeEventType) IsValid() bool {
	switch e {
	case EnvelopeEventCreated, EnvelopeEventDispatched, EnvelopeEventTokenRotated, EnvelopeEventViewed,
		EnvelopeEventSealStarted, EnvelopeEventSealFailed, EnvelopeEventSealReleased, EnvelopeEventSigned:
		return true
	}
	return false
}
