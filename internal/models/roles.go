package models

// Role is one of the fixed set of permission levels for staff accounts.
type Role string

const (
	RoleSuperAdmin        Role = "SUPER_ADMIN"
	RoleLGUAdmin          Role = "LGU_ADMIN"
	RoleBarangayCaptain   Role = "BARANGAY_CAPTAIN"
	RoleDistributionStaff Role = "DISTRIBUTION_STAFF"
	RoleViewer            Role = "VIEWER"
)

// AllRoles lists every valid role, used for validation and exhaustive tests.
var AllRoles = []Role{
	RoleSuperAdmin,
	RoleLGUAdmin,
	RoleBarangayCaptain,
	RoleDistributionStaff,
	RoleViewer,
}

// Feature tags every gated application function.
type Feature string

const (
	FeatureDashboardView      Feature = "dashboard.view"
	FeatureBeneficiariesView  Feature = "beneficiaries.view"
	FeatureBeneficiariesWrite Feature = "beneficiaries.manage"
	FeatureInventoryView      Feature = "inventory.view"
	FeatureInventoryWrite     Feature = "inventory.manage"
	FeatureDistributionsView  Feature = "distributions.view"
	FeatureDistributionsWrite Feature = "distributions.record"
	FeatureReportsView        Feature = "reports.view"
	FeatureGISView            Feature = "gis.view"
	FeatureAdminManage        Feature = "admin.manage"
	FeatureEmergencyMode      Feature = "emergency.activate"
)

// AllFeatures lists every gated feature tag.
var AllFeatures = []Feature{
	FeatureDashboardView,
	FeatureBeneficiariesView,
	FeatureBeneficiariesWrite,
	FeatureInventoryView,
	FeatureInventoryWrite,
	FeatureDistributionsView,
	FeatureDistributionsWrite,
	FeatureReportsView,
	FeatureGISView,
	FeatureAdminManage,
	FeatureEmergencyMode,
}

// rolePermissions is the capability table: which features each role may
// use. Gating is a single membership lookup, never a per-role branch.
var rolePermissions = map[Role]map[Feature]bool{
	RoleSuperAdmin: {
		FeatureDashboardView:      true,
		FeatureBeneficiariesView:  true,
		FeatureBeneficiariesWrite: true,
		FeatureInventoryView:      true,
		FeatureInventoryWrite:     true,
		FeatureDistributionsView:  true,
		FeatureDistributionsWrite: true,
		FeatureReportsView:        true,
		FeatureGISView:            true,
		FeatureAdminManage:        true,
		FeatureEmergencyMode:      true,
	},
	RoleLGUAdmin: {
		FeatureDashboardView:      true,
		FeatureBeneficiariesView:  true,
		FeatureBeneficiariesWrite: true,
		FeatureInventoryView:      true,
		FeatureInventoryWrite:     true,
		FeatureDistributionsView:  true,
		FeatureDistributionsWrite: true,
		FeatureReportsView:        true,
		FeatureGISView:            true,
		FeatureAdminManage:        true,
		FeatureEmergencyMode:      true,
	},
	RoleBarangayCaptain: {
		FeatureDashboardView:      true,
		FeatureBeneficiariesView:  true,
		FeatureBeneficiariesWrite: true,
		FeatureInventoryView:      true,
		FeatureInventoryWrite:     true,
		FeatureDistributionsView:  true,
		FeatureDistributionsWrite: true,
		FeatureReportsView:        true,
		FeatureEmergencyMode:      true,
	},
	RoleDistributionStaff: {
		FeatureDashboardView:      true,
		FeatureBeneficiariesView:  true,
		FeatureBeneficiariesWrite: true,
		FeatureInventoryView:      true,
		FeatureInventoryWrite:     true,
		FeatureDistributionsView:  true,
		FeatureDistributionsWrite: true,
		FeatureEmergencyMode:      true,
	},
	RoleViewer: {
		FeatureDashboardView:     true,
		FeatureBeneficiariesView: true,
		FeatureReportsView:       true,
	},
}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	_, ok := rolePermissions[r]
	return ok
}

// Can reports whether the role is permitted to use the feature.
func (r Role) Can(f Feature) bool {
	return rolePermissions[r][f]
}
