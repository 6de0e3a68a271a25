package taxid

import "github.com/broady/stripe/enum"

// Type is the kind of tax identifier. Open in responses; closed in requests.
type Type string

const (
	TypeADNRT  Type = "ad_nrt"
	TypeAETRN  Type = "ae_trn"
	TypeAUABN  Type = "au_abn"
	TypeBRCNPJ Type = "br_cnpj"
	TypeCABN   Type = "ca_bn"
	TypeCHVAT  Type = "ch_vat"
	TypeEUVAT  Type = "eu_vat"
	TypeGBVAT  Type = "gb_vat"
	TypeINGST  Type = "in_gst"
	TypeJPCN   Type = "jp_cn"
	TypeMXRFC  Type = "mx_rfc"
	TypeNOVAT  Type = "no_vat"
	TypeUSEIN  Type = "us_ein"
	TypeZAVAT  Type = "za_vat"
)

var typeValues = enum.NewSet(
	TypeADNRT,
	TypeAETRN,
	TypeAUABN,
	TypeBRCNPJ,
	TypeCABN,
	TypeCHVAT,
	TypeEUVAT,
	TypeGBVAT,
	TypeINGST,
	TypeJPCN,
	TypeMXRFC,
	TypeNOVAT,
	TypeUSEIN,
	TypeZAVAT,
)

func (t Type) IsKnown() bool { return typeValues.Contains(t) }

func TypeValues() []Type { return typeValues.Values() }

// OwnerType is the union tag of Owner.
type OwnerType string

const (
	OwnerTypeAccount     OwnerType = "account"
	OwnerTypeApplication OwnerType = "application"
	OwnerTypeCustomer    OwnerType = "customer"
	OwnerTypeSelf        OwnerType = "self"
)

var ownerTypeValues = enum.NewSet(OwnerTypeAccount, OwnerTypeApplication, OwnerTypeCustomer, OwnerTypeSelf)

func (t OwnerType) IsKnown() bool { return ownerTypeValues.Contains(t) }

func OwnerTypeValues() []OwnerType { return ownerTypeValues.Values() }

type VerificationStatus string

const (
	VerificationStatusPending     VerificationStatus = "pending"
	VerificationStatusUnavailable VerificationStatus = "unavailable"
	VerificationStatusUnverified  VerificationStatus = "unverified"
	VerificationStatusVerified    VerificationStatus = "verified"
)

var verificationStatusValues = enum.NewSet(
	VerificationStatusPending,
	VerificationStatusUnavailable,
	VerificationStatusUnverified,
	VerificationStatusVerified,
)

func (s VerificationStatus) IsKnown() bool { return verificationStatusValues.Contains(s) }

func VerificationStatusValues() []VerificationStatus { return verificationStatusValues.Values() }
