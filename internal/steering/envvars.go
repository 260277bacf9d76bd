package steering

import "strings"

// envVarDescriptions resolves well-known variable names exactly. Exact
// matches always win over the substring rules below, so STRIPE_SECRET_KEY
// reads "Stripe secret key" rather than the generic "Secret key".
var envVarDescriptions = map[string]string{
	"DATABASE_URL":                  "Database connection string",
	"NEXT_PUBLIC_SUPABASE_URL":      "Supabase project URL",
	"NEXT_PUBLIC_SUPABASE_ANON_KEY": "Supabase anonymous key (public)",
	"SUPABASE_SERVICE_ROLE_KEY":     "Supabase service role key (server-only)",
	"NEXTAUTH_SECRET":               "NextAuth.js secret",
	"NEXTAUTH_URL":                  "NextAuth.js URL",
	"OPENAI_API_KEY":                "OpenAI API key",
	"STRIPE_SECRET_KEY":             "Stripe secret key",
	"STRIPE_PUBLISHABLE_KEY":        "Stripe publishable key",
}

type envVarRule struct {
	all  []string // every substring must appear
	any  []string // at least one substring must appear
	desc string
}

func (r envVarRule) matches(name string) bool {
	for _, s := range r.all {
		if !strings.Contains(name, s) {
			return false
		}
	}
	if len(r.any) == 0 {
		return true
	}
	for _, s := range r.any {
		if strings.Contains(name, s) {
			return true
		}
	}
	return false
}

// envVarRules are substring fallbacks over the upper-cased name, checked in
// order; the first hit wins. The order is load-bearing: SECRET is checked
// before URL, so a name carrying both resolves as a secret.
var envVarRules = []envVarRule{
	{all: []string{"SUPABASE", "URL"}, desc: "Supabase project URL"},
	{all: []string{"SUPABASE", "ANON"}, desc: "Supabase anonymous key"},
	{all: []string{"SUPABASE", "SERVICE"}, desc: "Supabase service role key"},
	{any: []string{"DATABASE", "DB_"}, desc: "Database connection"},
	{any: []string{"API_KEY", "APIKEY"}, desc: "API key"},
	{any: []string{"SECRET"}, desc: "Secret key"},
	{any: []string{"URL"}, desc: "Service URL"},
}

// describeEnvVar returns a human description for an environment variable
// name. It is total: names nothing matches get the literal "Required".
func describeEnvVar(name string) string {
	if desc, ok := envVarDescriptions[name]; ok {
		return desc
	}
	upper := strings.ToUpper(name)
	for _, rule := range envVarRules {
		if rule.matches(upper) {
			return rule.desc
		}
	}
	return "Required"
}
