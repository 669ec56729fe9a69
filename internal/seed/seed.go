// Package seed holds the built-in collections used when a snapshot key has
// never been written. Ids are derived deterministically from the legacy
// slugs so reseeded environments stay stable across restarts.
package seed

import (
	"time"

	"github.com/google/uuid"

	"github.com/cloudcrave/craveops/internal/models"
)

// ReservedEmail identifies the platform support account. It can never be
// deleted or suspended, so an organization always keeps at least one admin.
const ReservedEmail = "support@cloudcraves.com"

// ReportingPeriod is stamped onto newly submitted tasks.
const ReportingPeriod = "Nov 2024"

func id(slug string) uuid.UUID {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(slug))
}

func ref(slug string) *uuid.UUID {
	u := id(slug)
	return &u
}

var (
	OrgCloudCrave = id("org-cloudcrave")

	UserRoot        = id("u-root")
	UserAdemuyiwa   = id("u-ademuyiwa")
	UserAdeola      = id("u-adeola")
	UserSheriff     = id("u-sheriff")
	UserBlessing    = id("u-blessing")
	UserEsther      = id("u-faramade")
	UserAdesewa     = id("u-adesewa")
	UserKingzy      = id("u-kingzy")
	UserHealthyMind = id("u-healthymind-member")
	UserAJ          = id("u-aj")

	BrandCloudCrave = id("b-cloudcrave")
	BrandHomeEtal   = id("b-homeetal")
)

func Organizations() []models.Organization {
	return []models.Organization{
		{
			ID:        OrgCloudCrave,
			Name:      "CloudCrave Solutions",
			Slug:      "cloudcrave",
			CreatedAt: time.Date(2024, 11, 20, 0, 0, 0, 0, time.UTC),
		},
	}
}

func Brands() []models.Brand {
	return []models.Brand{
		{
			ID: BrandCloudCrave, OrgID: OrgCloudCrave, Name: "CloudCrave",
			Services: []models.ServiceType{models.ServiceSocialMedia, models.ServiceGeneralOps},
			LeadID:   ref("u-ademuyiwa"),
		},
		{
			ID: BrandHomeEtal, OrgID: OrgCloudCrave, Name: "HomeEtal x Microdia",
			Services: []models.ServiceType{models.ServiceSocialMedia, models.ServiceDigitalSolutions},
			LeadID:   ref("u-ademuyiwa"),
		},
		{
			ID: id("b-switch2tech"), OrgID: OrgCloudCrave, Name: "Switch2Tech",
			Services: []models.ServiceType{models.ServiceTraining, models.ServiceDigitalSolutions},
			LeadID:   ref("u-ademuyiwa"),
		},
		{
			ID: id("b-kingzy"), OrgID: OrgCloudCrave, Name: "Kingzy",
			Services: []models.ServiceType{models.ServiceDigitalSolutions},
			LeadID:   ref("u-sheriff"),
		},
		{
			ID: id("b-heritage"), OrgID: OrgCloudCrave, Name: "Heritage Plate",
			Services: []models.ServiceType{models.ServiceDigitalSolutions},
			LeadID:   ref("u-sheriff"),
		},
		{
			ID: id("b-sheedah"), OrgID: OrgCloudCrave, Name: "Sheedah Fabrics",
			Services: []models.ServiceType{models.ServiceSocialMedia},
			LeadID:   ref("u-adeola"),
		},
		{
			ID: id("b-social-shield"), OrgID: OrgCloudCrave, Name: "Social Shield",
			Services: []models.ServiceType{models.ServiceSocialMedia},
			LeadID:   ref("u-adeola"),
		},
		{
			ID: id("b-healthy-mind"), OrgID: OrgCloudCrave, Name: "Healthy Mind",
			Services: []models.ServiceType{models.ServiceSocialMedia, models.ServiceDigitalSolutions},
			LeadID:   ref("u-healthymind-member"),
		},
	}
}

func Users() []models.User {
	return []models.User{
		{ID: UserRoot, OrgID: OrgCloudCrave, Name: "Platform Support", Email: ReservedEmail, Role: models.RoleAdmin, RegistrationStatus: models.RegistrationApproved},
		{ID: UserAdemuyiwa, OrgID: OrgCloudCrave, Name: "Ademuyiwa", Email: "ademuyiwa.ogunnowo@cloudcraves.com", Role: models.RoleStaffLead, RegistrationStatus: models.RegistrationApproved},
		{ID: UserAdeola, OrgID: OrgCloudCrave, Name: "Adeola Lois", Email: "adeola.lois@cloudcraves.com", Role: models.RoleStaffLead, RegistrationStatus: models.RegistrationApproved},
		{ID: UserSheriff, OrgID: OrgCloudCrave, Name: "Sheriff Saka", Email: "sheriff.saka@cloudcraves.com", Role: models.RoleStaffLead, RegistrationStatus: models.RegistrationApproved},
		{ID: UserBlessing, OrgID: OrgCloudCrave, Name: "Blessing Bassey", Email: "blessing.bassey@cloudcraves.com", Role: models.RoleStaffMember, RegistrationStatus: models.RegistrationApproved},
		{ID: UserEsther, OrgID: OrgCloudCrave, Name: "Esther Afolayan", Email: "afolayan.esther@cloudcraves.com", Role: models.RoleStaffMember, RegistrationStatus: models.RegistrationApproved},
		{ID: UserAdesewa, OrgID: OrgCloudCrave, Name: "Adesewa Alago", Email: "alago.adeshewa@cloudcraves.com", Role: models.RoleStaffMember, RegistrationStatus: models.RegistrationApproved},
		{ID: UserKingzy, OrgID: OrgCloudCrave, Name: "Kingzy", Email: "kingzy@cloudcraves.com", Role: models.RoleStaffMember, RegistrationStatus: models.RegistrationApproved},
		{ID: UserHealthyMind, OrgID: OrgCloudCrave, Name: "Healthy Mind Member", Email: "healthymind@cloudcraves.com", Role: models.RoleStaffMember, RegistrationStatus: models.RegistrationApproved},
		{ID: UserAJ, OrgID: OrgCloudCrave, Name: "AJ", Email: "aj@gmail.com", Role: models.RoleMentee, RegistrationStatus: models.RegistrationApproved},
	}
}

func Tasks() []models.StaffTask {
	return []models.StaffTask{
		{
			ID: id("t-cc-adem-1"), OrgID: OrgCloudCrave, BrandID: BrandCloudCrave,
			ServiceType: models.ServiceSocialMedia,
			OwnerID:     UserAdemuyiwa, StaffName: "Ademuyiwa", AssignedBy: "Platform Support",
			Title:       "CloudCrave Brand Awareness",
			Description: "Execute primary social media strategy for CloudCrave ecosystem. Focus on LinkedIn and professional networking posts.",
			Category:    models.CategoryContentOptimisation,
			Type:        models.TypeRecurring, Frequency: models.FrequencyDaily,
			Status: models.StatusInProgress, DueDate: "2024-12-30",
			ProgressUpdate: "Consistent daily updates logged.",
			EstimatedHours: 10, HoursSpent: 4,
			Comments: []models.TaskComment{}, ReportingPeriod: ReportingPeriod,
		},
		{
			ID: id("t-cc-aj-1"), OrgID: OrgCloudCrave, BrandID: BrandCloudCrave,
			ServiceType: models.ServiceSocialMedia,
			OwnerID:     UserAJ, StaffName: "AJ", AssignedBy: "Ademuyiwa",
			Title:       "CloudCrave Engagement Coordination",
			Description: "Coordinating response strategy and engagement for CloudCrave social channels.",
			Category:    models.CategoryEngagementOptimisation,
			Type:        models.TypeRecurring, Frequency: models.FrequencyDaily,
			Status: models.StatusInProgress, DueDate: "2024-12-30",
			EstimatedHours: 8, HoursSpent: 2,
			Comments: []models.TaskComment{}, ReportingPeriod: ReportingPeriod,
		},
		{
			ID: id("t-hm-adem-1"), OrgID: OrgCloudCrave, BrandID: BrandHomeEtal,
			ServiceType: models.ServiceSocialMedia,
			OwnerID:     UserAdemuyiwa, StaffName: "Ademuyiwa", AssignedBy: "Platform Support",
			Title:       "HomeEtal x Microdia SMM Execution",
			Description: "Full social media lifecycle management for the HomeEtal collaboration.",
			Category:    models.CategoryContentOptimisation,
			Type:        models.TypeRecurring, Frequency: models.FrequencyWeekly,
			Status: models.StatusInProgress, DueDate: "2024-12-15",
			ProgressUpdate: "Campaign assets approved.",
			EstimatedHours: 12, HoursSpent: 3,
			Comments: []models.TaskComment{}, ReportingPeriod: ReportingPeriod,
		},
	}
}
