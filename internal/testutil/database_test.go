package testutil

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wegnite/dreisatz-rechner-org-sub000/internal/model"
)

func TestSetupTestStore(t *testing.T) {
	store := SetupTestStore(t,
		SolvedRecord("3 Äpfel kosten 6 Euro. Was kosten 5 Äpfel?", model.LocaleDE, 10),
		FailedRecord("zu kurz", model.LocaleDE, "TOO_SHORT"),
	)

	stats, err := store.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Total)
	assert.Equal(t, 1, stats.ByCode[model.OutcomeOK])
	assert.Equal(t, 1, stats.ByCode["TOO_SHORT"])
}
