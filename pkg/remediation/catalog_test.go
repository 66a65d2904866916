package remediation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCatalog(t *testing.T) {
	records, err := DefaultCatalog()
	require.NoError(t, err)
	require.NotEmpty(t, records)

	seen := map[string]bool{}
	for _, r := range records {
		assert.Equal(t, StatusProposed, r.Status)
		assert.NotEmpty(t, r.ID)
		assert.NotEmpty(t, r.Category)
		assert.NotEmpty(t, r.Description)
		assert.NotEmpty(t, r.ProposedCode)
		assert.False(t, seen[r.ID], "duplicate id %s", r.ID)
		seen[r.ID] = true
	}
}

func TestParseCatalogRejectsDuplicates(t *testing.T) {
	data := []byte("- id: a\n  category: security\n- id: a\n  category: cost\n")
	_, err := ParseCatalog(data)
	assert.ErrorContains(t, err, "duplicate fix id")
}

func TestParseCatalogRejectsMissingID(t *testing.T) {
	data := []byte("- category: security\n  description: x\n")
	_, err := ParseCatalog(data)
	assert.ErrorContains(t, err, "no id")
}
