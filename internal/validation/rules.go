package validation

const passwordMessage = "password must be between 3 and 12 characters long"

// SignUpRules validates account registration.
var SignUpRules = RuleSet{
	{Field: "tenantId", Tag: "required", Message: "tenantId should not be empty"},
	{Field: "email", Tag: "required,email", Message: "invalid email"},
	{Field: "password", Tag: "min=3,max=12", Message: passwordMessage},
}

// OfficerCreateRules validates officer creation.
var OfficerCreateRules = RuleSet{
	{Field: "email", Tag: "required,email", Message: "invalid email"},
	{Field: "password", Tag: "min=3,max=12", Message: passwordMessage},
}

// OfficerUpdateRules validates officer patches.
var OfficerUpdateRules = RuleSet{
	{Field: "password", Presence: Optional, Tag: "min=3,max=12", Message: passwordMessage},
}

// CaseCreateRules validates case creation by officers.
var CaseCreateRules = RuleSet{
	{Field: "licenseNumber", Tag: "required", Message: "licenseNumber should not be empty"},
	{Field: "ownerFullName", Tag: "required", Message: "ownerFullName should not be empty"},
	{Field: "type", Tag: "oneof=sport general", Message: "type value is not valid"},
	{Field: "date", Presence: Optional, Tag: "isodate", Message: "date value is not valid"},
}

// PublicReportRules validates unauthenticated case submissions.
var PublicReportRules = append(RuleSet{
	{Field: "tenantId", Tag: "required", Message: "tenantId should not be empty"},
}, CaseCreateRules...)

// CaseUpdateRules validates case patches.
var CaseUpdateRules = RuleSet{
	{Field: "status", Presence: Optional, Tag: "oneof=new in_progress done", Message: "status is not valid"},
	{Field: "type", Presence: Optional, Tag: "oneof=sport general", Message: "type is not valid"},
	{Field: "licenseNumber", Presence: Optional, Tag: "required", Message: "licenseNumber should not be empty"},
	{Field: "ownerFullName", Presence: Optional, Tag: "required", Message: "ownerFullName should not be empty"},
	{Field: "date", Presence: Optional, Tag: "isodate", Message: "date value is not valid"},
}

// CaseListRules validates the case list query.
var CaseListRules = RuleSet{
	{Field: "status", Presence: Optional, Tag: "oneof=new in_progress done", Message: "status is not valid"},
}
