package sanitize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "plain", in: "Knee injury in 2023", want: "Knee injury in 2023"},
		{name: "script removed", in: `<script>alert(1)</script>Prefers mornings`, want: "Prefers mornings"},
		{name: "tags stripped", in: "<b>Strong</b> lifter", want: "Strong lifter"},
		{name: "ampersand kept", in: "Yoga & Pilates", want: "Yoga & Pilates"},
		{name: "trimmed", in: "  note  ", want: "note"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Text(tt.in))
		})
	}
}
