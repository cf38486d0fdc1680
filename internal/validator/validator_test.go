package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type phoneForm struct {
	Phone string `validate:"notblank,max=20"`
}

type roleForm struct {
	Role string `validate:"oneof=organizer participant"`
}

func TestValidate(t *testing.T) {
	v := New()

	tests := []struct {
		name    string
		input   interface{}
		wantErr string
	}{
		{name: "any non-empty phone", input: phoneForm{Phone: "not-a-number"}},
		{name: "blank phone", input: phoneForm{Phone: "   "}, wantErr: "phone failed notblank"},
		{name: "empty phone", input: phoneForm{}, wantErr: "phone failed notblank"},
		{name: "overlong phone", input: phoneForm{Phone: "123456789012345678901"}, wantErr: "phone failed max"},
		{name: "organizer role", input: roleForm{Role: "organizer"}},
		{name: "unknown role", input: roleForm{Role: "admin"}, wantErr: "role failed oneof"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(tt.input)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.EqualError(t, err, tt.wantErr)
		})
	}
}
