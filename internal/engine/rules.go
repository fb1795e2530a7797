package engine

// Rule maps keyword groups to a target scenario. A rule fires when any
// keyword in any group is a case-insensitive substring of the input; rule
// order is part of the contract, first match wins. Narrow rules (proper-noun
// client names) must stay ahead of broad industry-term rules to avoid being
// shadowed.
type Rule struct {
	ID         string
	Groups     [][]string
	ScenarioID string
}

func (r Rule) matches(inputLower string) bool {
	for _, group := range r.Groups {
		if containsAny(inputLower, group) {
			return true
		}
	}
	return false
}

// matchRules returns the target scenario of the first firing rule.
func matchRules(rules []Rule, inputLower string) (string, bool) {
	for _, rule := range rules {
		if rule.matches(inputLower) {
			return rule.ScenarioID, true
		}
	}
	return "", false
}

// generalRules is the ordered cascade for free-form input, most specific
// scenarios first.
var generalRules = []Rule{
	{
		ID: "manufacturing",
		Groups: [][]string{
			{"penn stainless"},
			{"stainless steel", "fabrication", "tanks", "asme"},
			{"316l", "pressure vessel", "welding"},
		},
		ScenarioID: "manufacturing-custom-fabrication",
	},
	{
		ID: "construction",
		Groups: [][]string{
			{"tiny's construction"},
			{"construction", "bidding", "retail addition"},
			{"concrete foundation", "steel frame", "shopping center"},
		},
		ScenarioID: "construction-project-bid",
	},
	{
		ID: "energy",
		Groups: [][]string{
			{"novitium energy"},
			{"250 mw", "solar farm", "battery energy storage"},
			{"photovoltaic", "grid interconnection", "138kv"},
		},
		ScenarioID: "energy-renewable-project",
	},
	{
		ID: "legal",
		Groups: [][]string{
			{"globaltech"},
			{"eu ai act", "compliance", "chatbot"},
			{"ce marking", "dpia", "conformity assessment"},
		},
		ScenarioID: "legal-compliance-inquiry",
	},
	{
		ID: "emergency",
		Groups: [][]string{
			{"metro transit"},
			{"urgent", "water main break", "flooded"},
			{"union station", "tunnel", "50,000 gallons"},
		},
		ScenarioID: "emergency-service-request",
	},
	{
		ID: "billing",
		Groups: [][]string{
			{"acc-789456"},
			{"invoice", "charged $299", "basic plan"},
			{"downgraded", "refund", "account number"},
		},
		ScenarioID: "support-billing",
	},
	{
		ID: "technical",
		Groups: [][]string{
			{"app-2024-x71"},
			{"api integration", "403 forbidden", "1,200+ users"},
			{"sync user data", "stopped working", "app id"},
		},
		ScenarioID: "technical-support",
	},
	{
		ID: "rfp",
		Groups: [][]string{
			{"500-employee", "comprehensive software"},
			{"project management", "crm", "enterprise security"},
			{"annual licensing", "api integrations"},
		},
		ScenarioID: "rfp-enterprise",
	},
}

// emailRules is the shorter cascade used when the input is email-shaped.
var emailRules = []Rule{
	{
		ID:         "email-billing",
		Groups:     [][]string{{"billing", "invoice", "charged"}},
		ScenarioID: "support-billing",
	},
	{
		ID:         "email-technical",
		Groups:     [][]string{{"technical", "api", "error", "403"}},
		ScenarioID: "technical-support",
	},
	{
		ID:         "email-feature",
		Groups:     [][]string{{"feature request", "export", "functionality"}},
		ScenarioID: "feature-request",
	},
	{
		ID:         "email-account",
		Groups:     [][]string{{"account", "settings", "notification"}},
		ScenarioID: "account-question",
	},
}

// ruleScenarioIDs lists every scenario the cascades can target, for
// fail-fast validation against the loaded library.
func ruleScenarioIDs() []string {
	seen := map[string]bool{}
	ids := []string{}
	for _, rule := range append(append([]Rule{}, generalRules...), emailRules...) {
		if !seen[rule.ScenarioID] {
			seen[rule.ScenarioID] = true
			ids = append(ids, rule.ScenarioID)
		}
	}
	return ids
}
