package account

import "github.com/broady/stripe/enum"

// Type is the account type. Open in responses.
type Type string

const (
	TypeCustom   Type = "custom"
	TypeExpress  Type = "express"
	TypeNone     Type = "none"
	TypeStandard Type = "standard"
)

var typeValues = enum.NewSet(TypeCustom, TypeExpress, TypeNone, TypeStandard)

func (t Type) IsKnown() bool { return typeValues.Contains(t) }

// TypeValues returns the known account types.
func TypeValues() []Type { return typeValues.Values() }

// BusinessType is the legal form of the account holder. Open in responses.
type BusinessType string

const (
	BusinessTypeCompany          BusinessType = "company"
	BusinessTypeGovernmentEntity BusinessType = "government_entity"
	BusinessTypeIndividual       BusinessType = "individual"
	BusinessTypeNonProfit        BusinessType = "non_profit"
)

var businessTypeValues = enum.NewSet(
	BusinessTypeCompany,
	BusinessTypeGovernmentEntity,
	BusinessTypeIndividual,
	BusinessTypeNonProfit,
)

func (t BusinessType) IsKnown() bool { return businessTypeValues.Contains(t) }

func BusinessTypeValues() []BusinessType { return businessTypeValues.Values() }

// CompanyStructure is the detailed legal structure of a company. Open in
// responses; the server adds structures per country over time.
type CompanyStructure string

const (
	CompanyStructureFreeZoneEstablishment              CompanyStructure = "free_zone_establishment"
	CompanyStructureFreeZoneLLC                        CompanyStructure = "free_zone_llc"
	CompanyStructureGovernmentInstrumentality          CompanyStructure = "government_instrumentality"
	CompanyStructureGovernmentalUnit                   CompanyStructure = "governmental_unit"
	CompanyStructureIncorporatedNonProfit              CompanyStructure = "incorporated_non_profit"
	CompanyStructureLimitedLiabilityPartnership        CompanyStructure = "limited_liability_partnership"
	CompanyStructureLLC                                CompanyStructure = "llc"
	CompanyStructureMultiMemberLLC                     CompanyStructure = "multi_member_llc"
	CompanyStructurePrivateCompany                     CompanyStructure = "private_company"
	CompanyStructurePrivateCorporation                 CompanyStructure = "private_corporation"
	CompanyStructurePrivatePartnership                 CompanyStructure = "private_partnership"
	CompanyStructurePublicCompany                      CompanyStructure = "public_company"
	CompanyStructurePublicCorporation                  CompanyStructure = "public_corporation"
	CompanyStructurePublicPartnership                  CompanyStructure = "public_partnership"
	CompanyStructureSingleMemberLLC                    CompanyStructure = "single_member_llc"
	CompanyStructureSoleEstablishment                  CompanyStructure = "sole_establishment"
	CompanyStructureSoleProprietorship                 CompanyStructure = "sole_proprietorship"
	CompanyStructureTaxExemptGovernmentInstrumentality CompanyStructure = "tax_exempt_government_instrumentality"
	CompanyStructureUnincorporatedAssociation          CompanyStructure = "unincorporated_association"
	CompanyStructureUnincorporatedNonProfit            CompanyStructure = "unincorporated_non_profit"
)

var companyStructureValues = enum.NewSet(
	CompanyStructureFreeZoneEstablishment,
	CompanyStructureFreeZoneLLC,
	CompanyStructureGovernmentInstrumentality,
	CompanyStructureGovernmentalUnit,
	CompanyStructureIncorporatedNonProfit,
	CompanyStructureLimitedLiabilityPartnership,
	CompanyStructureLLC,
	CompanyStructureMultiMemberLLC,
	CompanyStructurePrivateCompany,
	CompanyStructurePrivateCorporation,
	CompanyStructurePrivatePartnership,
	CompanyStructurePublicCompany,
	CompanyStructurePublicCorporation,
	CompanyStructurePublicPartnership,
	CompanyStructureSingleMemberLLC,
	CompanyStructureSoleEstablishment,
	CompanyStructureSoleProprietorship,
	CompanyStructureTaxExemptGovernmentInstrumentality,
	CompanyStructureUnincorporatedAssociation,
	CompanyStructureUnincorporatedNonProfit,
)

func (s CompanyStructure) IsKnown() bool { return companyStructureValues.Contains(s) }

func CompanyStructureValues() []CompanyStructure { return companyStructureValues.Values() }

// PayoutInterval is how often payouts are made. Closed.
type PayoutInterval string

const (
	PayoutIntervalDaily   PayoutInterval = "daily"
	PayoutIntervalManual  PayoutInterval = "manual"
	PayoutIntervalMonthly PayoutInterval = "monthly"
	PayoutIntervalWeekly  PayoutInterval = "weekly"
)

var payoutIntervalValues = enum.NewSet(
	PayoutIntervalDaily,
	PayoutIntervalManual,
	PayoutIntervalMonthly,
	PayoutIntervalWeekly,
)

func (i PayoutInterval) IsKnown() bool { return payoutIntervalValues.Contains(i) }

func PayoutIntervalValues() []PayoutInterval { return payoutIntervalValues.Values() }

// Weekday anchors weekly payouts. Closed.
type Weekday string

const (
	WeekdayMonday    Weekday = "monday"
	WeekdayTuesday   Weekday = "tuesday"
	WeekdayWednesday Weekday = "wednesday"
	WeekdayThursday  Weekday = "thursday"
	WeekdayFriday    Weekday = "friday"
	WeekdaySaturday  Weekday = "saturday"
	WeekdaySunday    Weekday = "sunday"
)

var weekdayValues = enum.NewSet(
	WeekdayMonday,
	WeekdayTuesday,
	WeekdayWednesday,
	WeekdayThursday,
	WeekdayFriday,
	WeekdaySaturday,
	WeekdaySunday,
)

func (w Weekday) IsKnown() bool { return weekdayValues.Contains(w) }

func WeekdayValues() []Weekday { return weekdayValues.Values() }

// RejectReason is why a platform rejects an account. Closed.
type RejectReason string

const (
	RejectReasonFraud          RejectReason = "fraud"
	RejectReasonTermsOfService RejectReason = "terms_of_service"
	RejectReasonOther          RejectReason = "other"
)

var rejectReasonValues = enum.NewSet(RejectReasonFraud, RejectReasonTermsOfService, RejectReasonOther)

func (r RejectReason) IsKnown() bool { return rejectReasonValues.Contains(r) }

func RejectReasonValues() []RejectReason { return rejectReasonValues.Values() }
