package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultCategories(t *testing.T) {
	t.Parallel()
	c := DefaultCategories()
	assert.Equal(t, []string{"Features", "Enhancements", "Bugfix", "Maintenance"}, c.Names())
	assert.True(t, c.IsValid("Bugfix"))
	assert.False(t, c.IsValid("bugfix"))
	assert.False(t, c.IsValid(""))
}

func TestNewCategories(t *testing.T) {
	t.Parallel()
	c := NewCategories(" Features ", "", "Bugfix", "Features")
	assert.Equal(t, []string{"Features", "Bugfix"}, c.Names())
	assert.Equal(t, 2, c.Len())
}

func TestCategories_NamesIsCopy(t *testing.T) {
	t.Parallel()
	c := DefaultCategories()
	names := c.Names()
	names[0] = "Changed"
	assert.Equal(t, "Features", c.Names()[0])
}

func TestCategories_Quoted(t *testing.T) {
	t.Parallel()
	assert.Equal(t, `"Features", "Enhancements", "Bugfix", "Maintenance"`, DefaultCategories().Quoted())
	assert.Equal(t, "", NewCategories().Quoted())
}
