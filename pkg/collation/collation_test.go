package collation_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/farmacia-pos/pkg/collation"
)

func TestSortBy_OrdenEspanol(t *testing.T) {
	names := []string{"Zinc", "ácido fólico", "Nistatina", "Amoxicilina", "Benzonatato"}
	collation.SortBy(names, func(s string) string { return s })
	assert.Equal(t, []string{"ácido fólico", "Amoxicilina", "Benzonatato", "Nistatina", "Zinc"}, names)
}

func TestContains_IgnoraTildesYMayusculas(t *testing.T) {
	assert.True(t, collation.Contains("Ácido Acetilsalicílico", "acido"))
	assert.True(t, collation.Contains("Loratadina", ""))
	assert.False(t, collation.Contains("Loratadina", "ibupro"))
}

func TestEqual(t *testing.T) {
	assert.True(t, collation.Equal("Analgésicos", "analgesicos"))
	assert.False(t, collation.Equal("Analgésicos", "Antibióticos"))
}
