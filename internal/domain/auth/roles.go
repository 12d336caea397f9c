package auth

// Role names carried in JWT claims.
const (
	// RoleGrower is production staff: batches, events, splits.
	RoleGrower = "grower"

	// RoleOffice is sales and admin staff: catalogs, intake review,
	// allocations.
	RoleOffice = "office"
)
