package leave

// KindPolicy describes which optional sub-flows a leave kind activates.
type KindPolicy struct {
	Code             string `json:"code"`
	Name             string `json:"name"`
	AllowsHalfDay    bool   `json:"allowsHalfDay"`
	ConsumesWorkDays bool   `json:"consumesWorkDays"`
	HasTimeOfDay     bool   `json:"hasTimeOfDay"`
}

var kindPolicies = map[string]KindPolicy{
	KindCL: {
		Code:          KindCL,
		Name:          "Casual Leave",
		AllowsHalfDay: true,
	},
	KindCCL: {
		Code:             KindCCL,
		Name:             "Compensatory Casual Leave",
		AllowsHalfDay:    true,
		ConsumesWorkDays: true,
	},
	KindOD: {
		Code:         KindOD,
		Name:         "On Duty",
		HasTimeOfDay: true,
	},
}

func PolicyFor(code string) (KindPolicy, bool) {
	policy, ok := kindPolicies[code]
	return policy, ok
}

func Kinds() []KindPolicy {
	return []KindPolicy{kindPolicies[KindCL], kindPolicies[KindCCL], kindPolicies[KindOD]}
}
