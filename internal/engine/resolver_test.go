package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wegnite/dreisatz-rechner-org-sub000/internal/common"
	"github.com/wegnite/dreisatz-rechner-org-sub000/internal/model"
)

func q(value float64, unit string, index int) model.Quantity {
	return model.Quantity{Value: value, Unit: unit, Index: index}
}

func TestResolveTriple(t *testing.T) {
	tests := []struct {
		name     string
		target   string
		pairs    []model.Quantity
		want     model.Triple
		wantCode common.Code
	}{
		{
			name:   "target picks b1",
			target: "euro",
			pairs:  []model.Quantity{q(5, "apple", 0), q(2.5, "euro", 3), q(3, "apple", 10)},
			want:   model.Triple{A1: q(5, "apple", 0), B1: q(2.5, "euro", 3), A2: q(3, "apple", 10)},
		},
		{
			name:  "first pair is b1 without target",
			pairs: []model.Quantity{q(8, "liter", 0), q(100, "km", 3), q(350, "km", 9)},
			want:  model.Triple{A1: q(100, "km", 3), B1: q(8, "liter", 0), A2: q(350, "km", 9)},
		},
		{
			name:   "unknown target falls back to first pair",
			target: "kg",
			pairs:  []model.Quantity{q(8, "liter", 0), q(100, "km", 3), q(350, "km", 9)},
			want:   model.Triple{A1: q(100, "km", 3), B1: q(8, "liter", 0), A2: q(350, "km", 9)},
		},
		{
			name:   "extra quantities are ignored",
			target: "hour",
			pairs:  []model.Quantity{q(3, "painter", 0), q(5, "hour", 2), q(2, "wall", 4), q(5, "painter", 8)},
			want:   model.Triple{A1: q(3, "painter", 0), B1: q(5, "hour", 2), A2: q(5, "painter", 8)},
		},
		{
			name:  "generic units pair with each other",
			pairs: []model.Quantity{q(2, "euro", 0), q(4, "", 2), q(6, "", 5)},
			want:  model.Triple{A1: q(4, "", 2), B1: q(2, "euro", 0), A2: q(6, "", 5)},
		},
		{
			name:     "too few",
			pairs:    []model.Quantity{q(1, "km", 0), q(2, "h", 1)},
			wantCode: common.CodeMissingNumbers,
		},
		{
			name:     "single dimension",
			pairs:    []model.Quantity{q(1, "apple", 0), q(2, "apple", 1), q(3, "apple", 2)},
			wantCode: common.CodeParseError,
		},
		{
			name:     "base unit only once",
			pairs:    []model.Quantity{q(1, "euro", 0), q(2, "apple", 1), q(3, "euro", 2)},
			wantCode: common.CodeParseError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveTriple(tt.pairs, tt.target)
			if tt.wantCode != "" {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, common.CodeOf(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)

			assert.Equal(t, got.A1.Unit, got.A2.Unit)
			assert.NotEqual(t, got.A1.Unit, got.B1.Unit)
			assert.NotEqual(t, got.A1.Index, got.A2.Index)
			assert.NotEqual(t, got.A1.Index, got.B1.Index)
			assert.NotEqual(t, got.A2.Index, got.B1.Index)
		})
	}
}
