package auth

import (
	"testing"

	"github.com/dmitrijs2005/ledgerkeeper/internal/common"
	"github.com/stretchr/testify/assert"
)

func TestTokenFromHeader(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		header  string
		want    string
		wantErr error
	}{
		{name: "raw token", header: "abc.def.ghi", want: "abc.def.ghi"},
		{name: "bearer", header: "Bearer abc.def.ghi", want: "abc.def.ghi"},
		{name: "bearer lowercase", header: "bearer abc", want: "abc"},
		{name: "surrounding spaces", header: "  Bearer   abc  ", want: "abc"},
		{name: "empty", header: "", wantErr: common.ErrMissingToken},
		{name: "blank", header: "   ", wantErr: common.ErrMissingToken},
		{name: "bearer only", header: "Bearer", wantErr: common.ErrMissingToken},
		{name: "bearer and space", header: "Bearer  ", wantErr: common.ErrMissingToken},
		{name: "extra words", header: "Bearer abc def", wantErr: common.ErrInvalidToken},
		{name: "other scheme", header: "Basic dXNlcjpwYXNz", wantErr: common.ErrInvalidToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := TokenFromHeader(tt.header)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
