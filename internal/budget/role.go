package budget

import "finanzas/internal/models"

// Names that identified the fixed-role buckets before roles were stored.
const (
	legacyLivingName  = "Gastos para Vivir"
	legacyLeisureName = "Disfrute"
)

// ResolveRole returns the bucket's stored role, or infers it the way
// role-less documents were matched: leisure by name, investment by kind,
// then living by name.
func ResolveRole(b models.Bucket) models.BucketRole {
	if b.Role != "" {
		return b.Role
	}
	switch {
	case b.Name == legacyLeisureName:
		return models.BucketRoleLeisure
	case b.Kind == models.BucketKindInvestment:
		return models.BucketRoleInvestment
	case b.Name == legacyLivingName:
		return models.BucketRoleLiving
	}
	return models.BucketRoleOther
}

// ExtraListFor maps a role to the extra-entry list it consumes.
func ExtraListFor(role models.BucketRole) (models.ExtraList, bool) {
	switch role {
	case models.BucketRoleLiving:
		return models.ExtraListLiving, true
	case models.BucketRoleInvestment:
		return models.ExtraListInvestment, true
	case models.BucketRoleLeisure:
		return models.ExtraListLeisure, true
	}
	return "", false
}
