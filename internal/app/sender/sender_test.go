package sender

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/PoorDoomer/gym-saas-sub000/internal/lib/rabbitmq"
	senderservice "github.com/PoorDoomer/gym-saas-sub000/internal/services/sender"
)

func TestPermanent(t *testing.T) {
	transient := errors.New("smtp: dial timeout")

	tests := []struct {
		name          string
		handlerErr    error
		wantPermanent bool
	}{
		{name: "success", handlerErr: nil},
		{name: "transient", handlerErr: transient},
		{
			name:          "malformed",
			handlerErr:    fmt.Errorf("services.sender.SendWelcome: %w", senderservice.ErrMalformedMessage),
			wantPermanent: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := permanent(func([]byte) error { return tt.handlerErr })
			err := h([]byte(`{}`))
			if tt.handlerErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.handlerErr)
			assert.Equal(t, tt.wantPermanent, errors.Is(err, rabbitmq.ErrPermanent))
		})
	}
}
