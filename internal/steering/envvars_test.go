package steering

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDescribeEnvVar_ExactMatches(t *testing.T) {
	cases := map[string]string{
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
	for name, want := range cases {
		assert.Equal(t, want, describeEnvVar(name), name)
	}
}

func TestDescribeEnvVar_ExactBeatsSubstring(t *testing.T) {
	// STRIPE_SECRET_KEY contains SECRET, but the exact table wins.
	assert.Equal(t, "Stripe secret key", describeEnvVar("STRIPE_SECRET_KEY"))
}

func TestDescribeEnvVar_SubstringRules(t *testing.T) {
	cases := []struct {
		name string
		want string
	}{
		{"MY_SUPABASE_URL", "Supabase project URL"},
		{"SUPABASE_ANON_TOKEN", "Supabase anonymous key"},
		{"SUPABASE_SERVICE_TOKEN", "Supabase service role key"},
		{"POSTGRES_DATABASE", "Database connection"},
		{"DB_HOST", "Database connection"},
		{"GITHUB_API_KEY", "API key"},
		{"MYAPIKEY", "API key"},
		{"JWT_SECRET", "Secret key"},
		{"WEBHOOK_URL", "Service URL"},
		{"SOMETHING_ELSE", "Required"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, describeEnvVar(tc.name))
		})
	}
}

func TestDescribeEnvVar_PriorityOrder(t *testing.T) {
	// SECRET is checked before URL, so a name carrying both resolves as a
	// secret. That ordering is an observable contract.
	assert.Equal(t, "Secret key", describeEnvVar("API_SECRET_URL"))

	// API_KEY outranks SECRET.
	assert.Equal(t, "API key", describeEnvVar("SECRET_API_KEY"))

	// Supabase compound rules outrank the generic URL rule.
	assert.Equal(t, "Supabase project URL", describeEnvVar("VITE_SUPABASE_URL"))
}

func TestDescribeEnvVar_CaseInsensitive(t *testing.T) {
	assert.Equal(t, "Database connection", describeEnvVar("database_host"))
	assert.Equal(t, "Secret key", describeEnvVar("session_secret"))
}
