// Copyright (c) 2026 Motoria. All rights reserved.
// Author: danu.arta.dev@gmail.com

package car

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danuarta/motoria/pkg/pointer"
)

/*
TestPopulateRefs verifies that reads hydrate the taxonomy references from the
joined values, and that a deleted (orphaned) reference leaves the raw id in
place with no hydrated ref.
*/
func TestPopulateRefs(t *testing.T) {
	t.Run("full_hydration", func(t *testing.T) {
		car := &Car{
			BrandID:   brandID,
			AgentID:   pointer.To(agentID),
			CarNameID: carNameID,
			GradeID:   gradeID,
			YearID:    yearID,
		}

		populateRefs(car,
			pointer.To("Toyota"), pointer.To("Downtown Motors"),
			pointer.To("Camry"), pointer.To("SE"), pointer.To(2024))

		require.NotNil(t, car.Brand)
		assert.Equal(t, Ref{ID: brandID, Name: "Toyota"}, *car.Brand)
		require.NotNil(t, car.Agent)
		assert.Equal(t, Ref{ID: agentID, Name: "Downtown Motors"}, *car.Agent)
		require.NotNil(t, car.CarName)
		assert.Equal(t, "Camry", car.CarName.Name)
		require.NotNil(t, car.Grade)
		assert.Equal(t, "SE", car.Grade.Name)
		require.NotNil(t, car.Year)
		assert.Equal(t, YearRef{ID: yearID, Value: 2024}, *car.Year)
	})

	t.Run("orphaned_references_stay_unhydrated", func(t *testing.T) {
		car := &Car{
			BrandID:   brandID,
			CarNameID: carNameID,
			GradeID:   gradeID,
			YearID:    yearID,
		}

		// Brand and grade rows were deleted after this car was written
		populateRefs(car, nil, nil, pointer.To("Camry"), nil, pointer.To(2024))

		assert.Nil(t, car.Brand)
		assert.Equal(t, brandID, car.BrandID)
		assert.Nil(t, car.Agent)
		assert.Nil(t, car.Grade)
		require.NotNil(t, car.CarName)
		require.NotNil(t, car.Year)
	})

	t.Run("no_agent_means_no_agent_ref", func(t *testing.T) {
		car := &Car{BrandID: brandID, CarNameID: carNameID, GradeID: gradeID, YearID: yearID}

		populateRefs(car,
			pointer.To("Toyota"), nil,
			pointer.To("Camry"), pointer.To("SE"), pointer.To(2024))

		assert.Nil(t, car.Agent)
	})
}

/*
TestCarSerialization verifies that a hydrated car exposes the taxonomy names
in its JSON payload alongside the raw reference ids.
*/
func TestCarSerialization(t *testing.T) {
	car := &Car{
		ID:        "01890000-0000-7000-8000-0000000000ca",
		BrandID:   brandID,
		CarNameID: carNameID,
		GradeID:   gradeID,
		YearID:    yearID,
		Chassis:   []Chassis{{Number: "VIN-1", Status: StatusAvailable, Transmission: TransmissionAutomatic}},
		Images:    []string{},
	}
	populateRefs(car,
		pointer.To("Toyota"), nil,
		pointer.To("Camry"), pointer.To("SE"), pointer.To(2024))

	payload, err := json.Marshal(car)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(payload, &decoded))

	brand, ok := decoded["brand"].(map[string]any)
	require.True(t, ok, "payload should carry a populated brand object")
	assert.Equal(t, "Toyota", brand["name"])

	year, ok := decoded["year"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(2024), year["value"])

	// Raw ids remain for clients that key on them
	assert.Equal(t, brandID, decoded["brand_id"])

	// Absent agent serializes as neither id nor object
	_, hasAgent := decoded["agent"]
	assert.False(t, hasAgent)
}
