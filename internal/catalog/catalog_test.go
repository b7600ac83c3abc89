package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateRoutes(t *testing.T) {
	_, err := GenerateRoutes("  ")
	assert.ErrorIs(t, err, ErrDestinationRequired)

	routes, err := GenerateRoutes("Central Library")
	require.NoError(t, err)
	assert.Equal(t, Routes(), routes)
}

func TestRouteByID(t *testing.T) {
	r, err := RouteByID(2)
	require.NoError(t, err)
	assert.Equal(t, "Balanced Route", r.Name)

	_, err = RouteByID(9)
	assert.ErrorIs(t, err, ErrRouteNotFound)
}

func TestOnlyEmergencyServicesIsProtected(t *testing.T) {
	for _, c := range Contacts() {
		assert.Equal(t, c.ID == EmergencyServicesID, c.Protected, c.Name)
	}
}

func TestCopiesAreIndependent(t *testing.T) {
	a := Routes()
	a[0].Waypoints[0] = "Changed"
	assert.Equal(t, "Main St", Routes()[0].Waypoints[0])
}

func TestSequencesLineUp(t *testing.T) {
	assert.Len(t, VoiceSteps(), len(NavigationSteps()))
}
