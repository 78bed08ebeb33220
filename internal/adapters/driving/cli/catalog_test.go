package cli

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/dexter-cli/internal/core/domain"
)

func TestList_RequiresLogin(t *testing.T) {
	ts := setupTestServices(t)

	_, err := runCommand(t, "", "list")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNotAuthenticated)
	assert.Zero(t, ts.catalog.initialRuns)
}

func TestList_FirstPage(t *testing.T) {
	ts := setupTestServices(t)
	ts.login(t)

	out, err := runCommand(t, "", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "#001  Entry 1")
	assert.Contains(t, out, "#021  Entry 21")
	assert.NotContains(t, out, "#022")
	assert.Contains(t, out, "Showing 21 entries")
	assert.Contains(t, out, "More available: dexter list --pages 2")
}

func TestList_Pages(t *testing.T) {
	ts := setupTestServices(t)
	ts.login(t)

	out, err := runCommand(t, "", "list", "--pages", "5")
	require.NoError(t, err)
	assert.Contains(t, out, "#042  Entry 42")
	assert.Contains(t, out, "Showing 42 entries")
	assert.NotContains(t, out, "More available")
}

func TestList_InvalidPages(t *testing.T) {
	ts := setupTestServices(t)
	ts.login(t)

	_, err := runCommand(t, "", "list", "--pages", "0")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestList_JSON(t *testing.T) {
	ts := setupTestServices(t)
	ts.login(t)

	out, err := runCommand(t, "", "list", "--json")
	require.NoError(t, err)

	var items []itemJSON
	require.NoError(t, json.Unmarshal([]byte(out), &items))
	require.Len(t, items, 21)
	assert.Equal(t, 1, items[0].ID)
	assert.Equal(t, "entry-1", items[0].Name)
	assert.Equal(t, []string{"normal"}, items[0].Types)
}

func TestList_ServiceError(t *testing.T) {
	ts := setupTestServices(t)
	ts.login(t)
	ts.catalog.err = errors.New("connection refused")

	_, err := runCommand(t, "", "list")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "list failed")
	assert.Contains(t, err.Error(), "connection refused")
}

func TestShow(t *testing.T) {
	ts := setupTestServices(t)
	ts.login(t)

	out, err := runCommand(t, "", "show", "pikachu")
	require.NoError(t, err)
	assert.Contains(t, out, "#025 Pikachu")
	assert.Contains(t, out, "HP       45")
	assert.Contains(t, out, "Type     Electric")
	assert.Contains(t, out, "Ability  Static")
	assert.Contains(t, out, "Colour   yellow")
	assert.Contains(t, out, "https://img.example/25.png")
}

func TestShow_NotFound(t *testing.T) {
	ts := setupTestServices(t)
	ts.login(t)

	_, err := runCommand(t, "", "show", "missingno")
	require.Error(t, err)
	assert.Equal(t, `no entry named "missingno"`, err.Error())
}

func TestShow_RequiresArgument(t *testing.T) {
	ts := setupTestServices(t)
	ts.login(t)

	_, err := runCommand(t, "", "show")
	assert.Error(t, err)
}
