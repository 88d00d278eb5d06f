package estimator

import "estimmo/server/internal/models"

// AdjustForStanding applies the standing coefficient to the reference
// price per m². Pure function; the standing table is closed and constant.
func AdjustForStanding(referencePrice float64, standing models.Standing) float64 {
	return referencePrice * standing.Coefficient()
}
