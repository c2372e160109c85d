package identifier

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    BBL
		wantErr bool
	}{
		{
			name: "Compact ten digit form",
			raw:  "1008760001",
			want: BBL("1008760001"),
		},
		{
			name: "Dash separated form",
			raw:  "1-00876-0001",
			want: BBL("1008760001"),
		},
		{
			name: "Dot separated form",
			raw:  "4.00123.7502",
			want: BBL("4001237502"),
		},
		{
			name: "Surrounding whitespace",
			raw:  "  3012340050 ",
			want: BBL("3012340050"),
		},
		{
			name:    "Too short",
			raw:     "100876001",
			wantErr: true,
		},
		{
			name:    "Non-numeric",
			raw:     "1OO8760001",
			wantErr: true,
		},
		{
			name:    "Borough digit out of range",
			raw:     "6008760001",
			wantErr: true,
		},
		{
			name:    "Empty",
			raw:     "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.raw)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrIdentifierParse)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBBL_Components(t *testing.T) {
	b := MustParse("1008760001")
	assert.Equal(t, 1, b.Borough())
	assert.Equal(t, 876, b.Block())
	assert.Equal(t, 1, b.Lot())

	b = MustParse("4123457502")
	assert.Equal(t, 4, b.Borough())
	assert.Equal(t, 12345, b.Block())
	assert.Equal(t, 7502, b.Lot())
}
