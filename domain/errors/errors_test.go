package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/motoko-tools/ttlex/domain/entities"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInputRejected_DropsDetail(t *testing.T) {
	cause := fmt.Errorf("unterminated text literal at offset 3")
	err := InputRejected(cause)

	assert.Equal(t, MsgInputRejected, err.Error())
	assert.Equal(t, KindInputRejected, err.Kind)
	assert.True(t, errors.Is(err, cause))
	assert.Equal(t, &entities.ErrorDetail{Message: "Unable to parse input string"}, err.ToErrorDetail())
	assert.True(t, IsInputRejected(err))
}

func TestSerializationFailed_KeepsDetail(t *testing.T) {
	cause := errors.New("integer 9007199254740992 is not representable by the host: out of range")
	err := SerializationFailed(cause)

	assert.Equal(t, "Serialization error (integer 9007199254740992 is not representable by the host: out of range)", err.Error())
	assert.Equal(t, KindInternal, err.Kind)
	assert.False(t, IsInputRejected(err))
}

func TestPanicRecovered(t *testing.T) {
	t.Run("string", func(t *testing.T) {
		err := PanicRecovered("index out of range")
		assert.Equal(t, "Unexpected panic (index out of range)", err.Error())

		var pe *PanicError
		require.True(t, errors.As(err, &pe))
		assert.Equal(t, "index out of range", pe.Value)
	})

	t.Run("error", func(t *testing.T) {
		cause := errors.New("boom")
		err := PanicRecovered(cause)
		assert.Equal(t, "Unexpected panic (boom)", err.Error())
		assert.True(t, errors.Is(err, cause))
	})
}

func TestToErrorDetail(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want *entities.ErrorDetail
	}{
		{name: "nil", err: nil, want: nil},
		{name: "boundary", err: InputRejected(nil), want: &entities.ErrorDetail{Message: MsgInputRejected}},
		{name: "wrapped boundary", err: fmt.Errorf("call: %w", InputRejected(nil)), want: &entities.ErrorDetail{Message: MsgInputRejected}},
		{name: "detail", err: entities.NewErrorDetail("as is"), want: &entities.ErrorDetail{Message: "as is"}},
		{name: "generic", err: errors.New("plain"), want: &entities.ErrorDetail{Message: "plain"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ToErrorDetail(tt.err))
		})
	}
}

func TestAsBoundary(t *testing.T) {
	assert.Nil(t, AsBoundary(nil))

	be := InputRejected(nil)
	assert.Same(t, be, AsBoundary(fmt.Errorf("wrapped: %w", be)))

	foreign := AsBoundary(errors.New("disk on fire"))
	assert.Equal(t, KindInternal, foreign.Kind)
	assert.Equal(t, "disk on fire", foreign.Message)
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "input_rejected", KindInputRejected.String())
	assert.Equal(t, "internal", KindInternal.String())
	assert.Equal(t, "unknown", Kind(0).String())
}
